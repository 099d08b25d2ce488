package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Artisan is a worker assigned job items and paid per accepted piece.
type Artisan struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	IsActive  bool      `json:"is_active"`
	CreatedOn time.Time `json:"created_on"`
}

// ArtisanStats are read-only aggregates computed from jobs and payslips.
// They are derived on the server; clients must not treat local copies as
// authoritative.
type ArtisanStats struct {
	TotalJobs      int               `json:"total_jobs"`
	TotalEarnings  decimal.Decimal   `json:"total_earnings"`
	PendingPayment decimal.Decimal   `json:"pending_payment"`
	AverageRating  decimal.Decimal   `json:"average_rating"`
	Specialties    []ServiceCategory `json:"specialties"`
	LastJobDate    *time.Time        `json:"last_job_date,omitempty"`
}
