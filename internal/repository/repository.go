package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"workshop-backend/internal/domain"
)

// RateRow is one denormalized service-rate table entry, joined with its
// product attributes for rate resolution.
type RateRow struct {
	ProductType     string
	AnimalType      string
	SizeCategory    string
	ServiceCategory domain.ServiceCategory
	RatePerUnit     decimal.Decimal
}

// JobFilter narrows job listings.
type JobFilter struct {
	Status          domain.JobStatus
	ServiceCategory domain.ServiceCategory
	Search          string
}

// DashboardStats summarizes the job book.
type DashboardStats struct {
	TotalJobs         int             `json:"total_jobs"`
	InProgress        int             `json:"in_progress"`
	PartiallyReceived int             `json:"partially_received"`
	Completed         int             `json:"completed"`
	TotalCost         decimal.Decimal `json:"total_cost"`
	TotalFinalPayment decimal.Decimal `json:"total_final_payment"`
}

type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	FindBySpec(ctx context.Context, productType, animalType, sizeCategory string) (*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, page, pageSize int) ([]domain.Product, int, error)

	AddPriceHistory(ctx context.Context, h *domain.PriceHistory) error
	ListPriceHistory(ctx context.Context, productID int64) ([]domain.PriceHistory, error)
}

type ServiceRateRepository interface {
	Upsert(ctx context.Context, r *domain.ServiceRate) error
	GetByProductAndCategory(ctx context.Context, productID int64, category domain.ServiceCategory) (*domain.ServiceRate, error)
	List(ctx context.Context, page, pageSize int) ([]domain.ServiceRate, int, error)
	ListRateRows(ctx context.Context) ([]RateRow, error)
}

type ArtisanRepository interface {
	Create(ctx context.Context, a *domain.Artisan) error
	GetByID(ctx context.Context, id int64) (*domain.Artisan, error)
	Update(ctx context.Context, a *domain.Artisan) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, page, pageSize int) ([]domain.Artisan, int, error)
	Stats(ctx context.Context, artisanID int64) (*domain.ArtisanStats, error)
}

type JobRepository interface {
	// Create persists the job and its items in one transaction.
	Create(ctx context.Context, j *domain.Job) error
	GetByID(ctx context.Context, id int64) (*domain.Job, error)
	Update(ctx context.Context, j *domain.Job) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter JobFilter, page, pageSize int) ([]domain.Job, int, error)
	Dashboard(ctx context.Context) (*DashboardStats, error)

	GetItem(ctx context.Context, jobID, itemID int64) (*domain.JobItem, error)
	ListItems(ctx context.Context, jobID int64) ([]domain.JobItem, error)
	DeleteItem(ctx context.Context, jobID, itemID int64) error
	SetItemRating(ctx context.Context, jobID, itemID int64, rating decimal.Decimal) error

	ListDeliveries(ctx context.Context, itemID int64) ([]domain.JobDelivery, error)
	// GetDeliveryByClientKey looks a key up across all deliveries. Keys are
	// globally unique; the caller checks which item the hit belongs to.
	GetDeliveryByClientKey(ctx context.Context, clientKey string) (*domain.JobDelivery, error)
	// SaveDelivery inserts the delivery and writes the item's updated totals
	// and the job's derived status in a single transaction.
	SaveDelivery(ctx context.Context, d *domain.JobDelivery, item *domain.JobItem, status domain.JobStatus) error

	// ReconcileStatuses rewrites any stored job status that disagrees with
	// the status derived from item totals, returning the repair count.
	ReconcileStatuses(ctx context.Context) (int64, error)
	// ClearDeliveryKeys drops idempotency keys older than the cutoff; keys
	// only matter within the client retry window.
	ClearDeliveryKeys(ctx context.Context, before time.Time) (int64, error)
}

type InventoryRepository interface {
	ListInventory(ctx context.Context, page, pageSize int) ([]domain.Inventory, int, error)
	ListFinishedStock(ctx context.Context, page, pageSize int) ([]domain.FinishedStock, int, error)
	// AbsorbAccepted folds accepted pieces into the stage inventory (or
	// finished stock for the FINISHED stage), creating the record on first
	// use and maintaining the moving average cost.
	AbsorbAccepted(ctx context.Context, productID int64, category domain.ServiceCategory, quantity int, unitCost decimal.Decimal) error
}

type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) error
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	Update(ctx context.Context, c *domain.Customer) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, page, pageSize int) ([]domain.Customer, int, error)
}

type OrderRepository interface {
	// Create persists the order and its lines in one transaction.
	Create(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error
	// UpdateStatusConsumingStock deducts every line's quantity from finished
	// stock and writes the new status in one transaction. A line with too
	// little stock rolls the whole transition back with a ConflictError.
	UpdateStatusConsumingStock(ctx context.Context, o *domain.Order, status domain.OrderStatus) error
	// UpdateStatusRestoringStock returns every line's quantity to finished
	// stock and writes the new status in one transaction.
	UpdateStatusRestoringStock(ctx context.Context, o *domain.Order, status domain.OrderStatus) error
	List(ctx context.Context, page, pageSize int) ([]domain.Order, int, error)
}

type PayslipRepository interface {
	// CreateForItems inserts the payslip and marks the covered items as
	// slipped in one transaction, so a failure cannot leave paid items
	// eligible for a second run.
	CreateForItems(ctx context.Context, p *domain.Payslip, itemIDs []int64) error
	GetByID(ctx context.Context, id int64) (*domain.Payslip, error)
	List(ctx context.Context, artisanID int64, page, pageSize int) ([]domain.Payslip, int, error)
	// DeleteReleasingItems clears the slipped flag on the items the payslip
	// covered and deletes it, in one transaction.
	DeleteReleasingItems(ctx context.Context, p *domain.Payslip) error
	AttachFile(ctx context.Context, id int64, path string) error

	// ListEligibleItems returns items with accepted pieces and no payslip
	// yet, for the artisan and period (and stage, when given).
	ListEligibleItems(ctx context.Context, artisanID int64, periodStart, periodEnd time.Time, category *domain.ServiceCategory) ([]domain.JobItem, error)
}
