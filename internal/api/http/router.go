package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"workshop-backend/internal/logger"
	"workshop-backend/internal/service"
)

// Services bundles everything the router needs.
type Services struct {
	Pricing   service.PricingService
	Products  service.ProductService
	Artisans  service.ArtisanService
	Jobs      service.JobService
	Inventory service.InventoryService
	Customers service.CustomerService
	Orders    service.OrderService
	Payslips  service.PayslipService
}

// NewRouter builds the full API surface under /api.
func NewRouter(s Services) *mux.Router {
	root := mux.NewRouter()
	root.Use(requestLogging)
	root.HandleFunc("/health", handleHealth).Methods(http.MethodGet)

	api := root.PathPrefix("/api").Subrouter()
	api.StrictSlash(true)

	products := NewProductHandler(s.Products, s.Pricing)
	api.HandleFunc("/products/", products.List).Methods(http.MethodGet)
	api.HandleFunc("/products/", products.Create).Methods(http.MethodPost)
	// get_price must register before {id} so mux does not treat it as an id.
	api.HandleFunc("/products/get_price/", products.GetPrice).Methods(http.MethodGet)
	api.HandleFunc("/products/{id:[0-9]+}/", products.Get).Methods(http.MethodGet)
	api.HandleFunc("/products/{id:[0-9]+}/", products.Update).Methods(http.MethodPut)
	api.HandleFunc("/products/{id:[0-9]+}/", products.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/products/{id:[0-9]+}/price-history/", products.PriceHistory).Methods(http.MethodGet)
	api.HandleFunc("/service-rates/", products.ListRates).Methods(http.MethodGet)
	api.HandleFunc("/service-rates/", products.UpsertRate).Methods(http.MethodPost, http.MethodPut)

	artisans := NewArtisanHandler(s.Artisans)
	api.HandleFunc("/artisans/", artisans.List).Methods(http.MethodGet)
	api.HandleFunc("/artisans/", artisans.Create).Methods(http.MethodPost)
	api.HandleFunc("/artisans/{id:[0-9]+}/", artisans.Get).Methods(http.MethodGet)
	api.HandleFunc("/artisans/{id:[0-9]+}/", artisans.Update).Methods(http.MethodPut)
	api.HandleFunc("/artisans/{id:[0-9]+}/", artisans.Delete).Methods(http.MethodDelete)

	jobs := NewJobHandler(s.Jobs)
	api.HandleFunc("/jobs/", jobs.List).Methods(http.MethodGet)
	api.HandleFunc("/jobs/", jobs.Create).Methods(http.MethodPost)
	api.HandleFunc("/jobs/dashboard/", jobs.Dashboard).Methods(http.MethodGet)
	api.HandleFunc("/jobs/{job_id:[0-9]+}/", jobs.Get).Methods(http.MethodGet)
	api.HandleFunc("/jobs/{job_id:[0-9]+}/", jobs.Update).Methods(http.MethodPut)
	api.HandleFunc("/jobs/{job_id:[0-9]+}/", jobs.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/jobs/{job_id:[0-9]+}/items/", jobs.ListItems).Methods(http.MethodGet)
	api.HandleFunc("/jobs/{job_id:[0-9]+}/items/{item_id:[0-9]+}/", jobs.GetItem).Methods(http.MethodGet)
	api.HandleFunc("/jobs/{job_id:[0-9]+}/items/{item_id:[0-9]+}/", jobs.DeleteItem).Methods(http.MethodDelete)
	api.HandleFunc("/jobs/{job_id:[0-9]+}/items/{item_id:[0-9]+}/rating/", jobs.RateItem).Methods(http.MethodPost)
	api.HandleFunc("/jobs/{job_id:[0-9]+}/items/{item_id:[0-9]+}/deliveries/", jobs.ListDeliveries).Methods(http.MethodGet)
	api.HandleFunc("/jobs/{job_id:[0-9]+}/items/{item_id:[0-9]+}/deliveries/", jobs.RecordDelivery).Methods(http.MethodPost)

	inventory := NewInventoryHandler(s.Inventory)
	api.HandleFunc("/inventory/", inventory.ListInventory).Methods(http.MethodGet)
	api.HandleFunc("/finished-stock/", inventory.ListFinishedStock).Methods(http.MethodGet)

	customers := NewCustomerHandler(s.Customers)
	api.HandleFunc("/customers/", customers.List).Methods(http.MethodGet)
	api.HandleFunc("/customers/", customers.Create).Methods(http.MethodPost)
	api.HandleFunc("/customers/{id:[0-9]+}/", customers.Get).Methods(http.MethodGet)
	api.HandleFunc("/customers/{id:[0-9]+}/", customers.Update).Methods(http.MethodPut)
	api.HandleFunc("/customers/{id:[0-9]+}/", customers.Delete).Methods(http.MethodDelete)

	orders := NewOrderHandler(s.Orders)
	api.HandleFunc("/orders/", orders.List).Methods(http.MethodGet)
	api.HandleFunc("/orders/", orders.Create).Methods(http.MethodPost)
	api.HandleFunc("/orders/{order_id:[0-9]+}/", orders.Get).Methods(http.MethodGet)
	api.HandleFunc("/orders/{order_id:[0-9]+}/status/", orders.UpdateStatus).Methods(http.MethodPatch)

	payslips := NewPayslipHandler(s.Payslips)
	api.HandleFunc("/payslips/", payslips.List).Methods(http.MethodGet)
	api.HandleFunc("/payslips/", payslips.Generate).Methods(http.MethodPost)
	api.HandleFunc("/payslips/generate/", payslips.Generate).Methods(http.MethodPost)
	api.HandleFunc("/payslips/{id:[0-9]+}/", payslips.Get).Methods(http.MethodGet)
	api.HandleFunc("/payslips/{id:[0-9]+}/", payslips.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/payslips/{id:[0-9]+}/download/", payslips.Download).Methods(http.MethodGet)
	api.HandleFunc("/payslips/{id:[0-9]+}/document/", payslips.AttachDocument).Methods(http.MethodPut)

	return root
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug("request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start))
	})
}
