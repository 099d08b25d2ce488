package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payslip records one payment run for an artisan over a period. The rendered
// document is produced outside this service; FilePath points at the attached
// file when one has been stored.
type Payslip struct {
	ID              int64            `json:"id"`
	ArtisanID       int64            `json:"artisan_id"`
	ServiceCategory *ServiceCategory `json:"service_category,omitempty"`
	GeneratedDate   time.Time        `json:"generated_date"`
	TotalPayment    decimal.Decimal  `json:"total_payment"`
	PeriodStart     time.Time        `json:"period_start"`
	PeriodEnd       time.Time        `json:"period_end"`
	FilePath        string           `json:"-"`
}
