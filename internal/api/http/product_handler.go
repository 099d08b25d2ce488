package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"workshop-backend/internal/domain"
	"workshop-backend/internal/service"
)

// ProductHandler serves the product catalog, its price history, the service
// rate table, and price quotes.
type ProductHandler struct {
	products service.ProductService
	pricing  service.PricingService
}

func NewProductHandler(products service.ProductService, pricing service.PricingService) *ProductHandler {
	return &ProductHandler{products: products, pricing: pricing}
}

type productInput struct {
	ProductType  string          `json:"product_type"`
	AnimalType   string          `json:"animal_type"`
	SizeCategory string          `json:"size_category"`
	BasePrice    decimal.Decimal `json:"base_price"`
	IsActive     *bool           `json:"is_active"`
	ChangedBy    string          `json:"changed_by"`
	Reason       string          `json:"reason"`
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	products, count, err := h.products.List(r.Context(), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, count, products)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in productInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, err)
		return
	}
	p := domain.Product{
		ProductType:  in.ProductType,
		AnimalType:   in.AnimalType,
		SizeCategory: in.SizeCategory,
		BasePrice:    in.BasePrice,
		IsActive:     true,
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	if err := h.products.Create(r.Context(), &p); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, mux.Vars(r), "id")
	if err != nil {
		writeError(w, err)
		return
	}
	p, err := h.products.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, mux.Vars(r), "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var in productInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, err)
		return
	}
	p := domain.Product{
		ID:           id,
		ProductType:  in.ProductType,
		AnimalType:   in.AnimalType,
		SizeCategory: in.SizeCategory,
		BasePrice:    in.BasePrice,
		IsActive:     true,
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	updated, err := h.products.Update(r.Context(), service.UpdateProductInput{
		Product:   p,
		ChangedBy: in.ChangedBy,
		Reason:    in.Reason,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, mux.Vars(r), "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.products.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// GetPrice quotes the base price and stage rate for a product spec. A quote
// never fails on a missing rate table entry; it answers with the fallback
// rate and fallback_used set so the caller can decide what to do.
func (h *ProductHandler) GetPrice(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	category := domain.ServiceCategory(q.Get("service_category"))
	quote, err := h.pricing.Quote(r.Context(),
		q.Get("product_type"), q.Get("animal_type"), category, q.Get("size_category"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

func (h *ProductHandler) PriceHistory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, mux.Vars(r), "id")
	if err != nil {
		writeError(w, err)
		return
	}
	history, err := h.products.PriceHistory(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, len(history), history)
}

func (h *ProductHandler) ListRates(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	rates, count, err := h.products.ListRates(r.Context(), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, count, rates)
}

type serviceRateInput struct {
	ProductID       int64                  `json:"product_id"`
	ServiceCategory domain.ServiceCategory `json:"service_category"`
	RatePerUnit     decimal.Decimal        `json:"rate_per_unit"`
}

func (h *ProductHandler) UpsertRate(w http.ResponseWriter, r *http.Request) {
	var in serviceRateInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, err)
		return
	}
	rate := domain.ServiceRate{
		ProductID:       in.ProductID,
		ServiceCategory: in.ServiceCategory,
		RatePerUnit:     in.RatePerUnit,
	}
	if err := h.products.UpsertRate(r.Context(), &rate); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rate)
}
