package service

import (
	"context"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"workshop-backend/internal/domain"
	"workshop-backend/internal/pricing"
	"workshop-backend/internal/repository"
)

// PriceQuote answers a price lookup for a product spec: the customer-facing
// base price and the artisan rate for the requested stage. FallbackUsed is
// set when the rate came from the global fallback constant, which means the
// rate table is missing an entry.
type PriceQuote struct {
	ProductID          int64           `json:"id,omitempty"`
	Price              decimal.Decimal `json:"price"`
	ServiceRatePerUnit decimal.Decimal `json:"service_rate_per_unit"`
	FallbackUsed       bool            `json:"fallback_used"`
}

// CreateJobItemInput is one requested line of a new job.
type CreateJobItemInput struct {
	ArtisanID       int64 `json:"artisan"`
	ProductID       int64 `json:"product"`
	QuantityOrdered int   `json:"quantity_ordered"`
}

// CreateJobInput describes a new job.
type CreateJobInput struct {
	CreatedBy       string                 `json:"created_by"`
	ServiceCategory domain.ServiceCategory `json:"service_category"`
	Notes           string                 `json:"notes"`
	Items           []CreateJobItemInput   `json:"items"`
}

// DeliveryInput describes one delivery submission. ClientKey is the
// client-generated idempotency key; when empty the server assigns one.
type DeliveryInput struct {
	QuantityReceived int                     `json:"quantity_received"`
	QuantityAccepted int                     `json:"quantity_accepted"`
	RejectionReason  *domain.RejectionReason `json:"rejection_reason,omitempty"`
	Notes            string                  `json:"notes"`
	ClientKey        string                  `json:"client_key"`
}

// CreateOrderItemInput is one requested line of a new order.
type CreateOrderItemInput struct {
	ProductID int64 `json:"product"`
	Quantity  int   `json:"quantity"`
}

// CreateOrderInput describes a new customer order.
type CreateOrderInput struct {
	CustomerID int64                  `json:"customer"`
	Notes      string                 `json:"notes"`
	Items      []CreateOrderItemInput `json:"items"`
}

// GeneratePayslipInput selects the job items to pay out.
type GeneratePayslipInput struct {
	ArtisanID       int64
	ServiceCategory *domain.ServiceCategory
	PeriodStart     time.Time
	PeriodEnd       time.Time
}

// UpdateProductInput carries the editable product fields plus the audit
// context for price changes.
type UpdateProductInput struct {
	Product   domain.Product
	ChangedBy string
	Reason    string
}

type PricingService interface {
	// Quote resolves the base price and artisan rate for a product spec.
	Quote(ctx context.Context, productType, animalType string, category domain.ServiceCategory, sizeCategory string) (*PriceQuote, error)
	// ResolveRate walks the fallback chain for a rate.
	ResolveRate(ctx context.Context, productType, animalType string, category domain.ServiceCategory, sizeCategory string) (pricing.Resolution, error)
	// Invalidate drops the cached rate table after a rate write.
	Invalidate()
}

type ProductService interface {
	Create(ctx context.Context, p *domain.Product) error
	Get(ctx context.Context, id int64) (*domain.Product, error)
	Update(ctx context.Context, in UpdateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, page, pageSize int) ([]domain.Product, int, error)
	PriceHistory(ctx context.Context, productID int64) ([]domain.PriceHistory, error)

	ListRates(ctx context.Context, page, pageSize int) ([]domain.ServiceRate, int, error)
	UpsertRate(ctx context.Context, r *domain.ServiceRate) error
}

type ArtisanService interface {
	Create(ctx context.Context, a *domain.Artisan) error
	Get(ctx context.Context, id int64) (*domain.Artisan, *domain.ArtisanStats, error)
	Update(ctx context.Context, a *domain.Artisan) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, page, pageSize int) ([]domain.Artisan, int, error)
}

type JobService interface {
	Create(ctx context.Context, in CreateJobInput) (*domain.Job, error)
	Get(ctx context.Context, id int64) (*domain.Job, error)
	Update(ctx context.Context, id int64, notes string) (*domain.Job, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter repository.JobFilter, page, pageSize int) ([]domain.Job, int, error)
	Dashboard(ctx context.Context) (*repository.DashboardStats, error)

	ListItems(ctx context.Context, jobID int64) ([]domain.JobItem, error)
	GetItem(ctx context.Context, jobID, itemID int64) (*domain.JobItem, error)
	DeleteItem(ctx context.Context, jobID, itemID int64) error
	RateItem(ctx context.Context, jobID, itemID int64, rating decimal.Decimal) error

	// RecordDelivery validates and appends a delivery, returning the updated
	// item. replayed is true when the client key matched an existing
	// delivery and no new state was written.
	RecordDelivery(ctx context.Context, jobID, itemID int64, in DeliveryInput) (item *domain.JobItem, replayed bool, err error)
	ListDeliveries(ctx context.Context, jobID, itemID int64) ([]domain.JobDelivery, error)
}

type InventoryService interface {
	ListInventory(ctx context.Context, page, pageSize int) ([]domain.Inventory, int, error)
	ListFinishedStock(ctx context.Context, page, pageSize int) ([]domain.FinishedStock, int, error)
}

type CustomerService interface {
	Create(ctx context.Context, c *domain.Customer) error
	Get(ctx context.Context, id int64) (*domain.Customer, error)
	Update(ctx context.Context, c *domain.Customer) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, page, pageSize int) ([]domain.Customer, int, error)
}

type OrderService interface {
	Create(ctx context.Context, in CreateOrderInput) (*domain.Order, error)
	Get(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context, page, pageSize int) ([]domain.Order, int, error)
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error)
}

type PayslipService interface {
	Generate(ctx context.Context, in GeneratePayslipInput) (*domain.Payslip, error)
	Get(ctx context.Context, id int64) (*domain.Payslip, error)
	List(ctx context.Context, artisanID int64, page, pageSize int) ([]domain.Payslip, int, error)
	Delete(ctx context.Context, id int64) error
	// Download streams the attached payslip document.
	Download(ctx context.Context, id int64) (io.ReadCloser, string, error)
	// AttachDocument stores an externally rendered document for a payslip.
	AttachDocument(ctx context.Context, id int64, filename string, content io.Reader) error
}
