package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceCategory is a production stage. Each stage carries its own piece
// rate per product.
type ServiceCategory string

const (
	ServiceCategoryCarving   ServiceCategory = "CARVING"
	ServiceCategoryCutting   ServiceCategory = "CUTTING"
	ServiceCategoryPainting  ServiceCategory = "PAINTING"
	ServiceCategorySanding   ServiceCategory = "SANDING"
	ServiceCategoryFinishing ServiceCategory = "FINISHING"
	ServiceCategoryFinished  ServiceCategory = "FINISHED"
)

// ValidServiceCategory reports whether c is one of the known stages.
func ValidServiceCategory(c ServiceCategory) bool {
	switch c {
	case ServiceCategoryCarving, ServiceCategoryCutting, ServiceCategoryPainting,
		ServiceCategorySanding, ServiceCategoryFinishing, ServiceCategoryFinished:
		return true
	}
	return false
}

// Product is a sellable or produceable SKU. BasePrice is the customer-facing
// price of the finished piece; artisan labor is priced separately per stage by
// ServiceRate. The two must never be conflated.
type Product struct {
	ID           int64           `json:"id"`
	ProductType  string          `json:"product_type"`
	AnimalType   string          `json:"animal_type"`
	SizeCategory string          `json:"size_category"`
	BasePrice    decimal.Decimal `json:"base_price"`
	IsActive     bool            `json:"is_active"`
	CreatedOn    time.Time       `json:"created_on"`
	UpdatedOn    time.Time       `json:"updated_on"`
}

// PriceHistory records a base price change. Prices are tracked, never
// overwritten in place, so historical order lines stay explainable.
type PriceHistory struct {
	ID            int64           `json:"id"`
	ProductID     int64           `json:"product_id"`
	OldPrice      decimal.Decimal `json:"old_price"`
	NewPrice      decimal.Decimal `json:"new_price"`
	EffectiveDate time.Time       `json:"effective_date"`
	ChangedBy     string          `json:"changed_by"`
	Reason        string          `json:"reason"`
}

// ServiceRate is the piece rate paid to an artisan per accepted unit for one
// (product, service category) pair. At most one rate exists per pair.
type ServiceRate struct {
	ID              int64           `json:"id"`
	ProductID       int64           `json:"product_id"`
	ServiceCategory ServiceCategory `json:"service_category"`
	RatePerUnit     decimal.Decimal `json:"rate_per_unit"`
	UpdatedOn       time.Time       `json:"updated_on"`
}
