package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JobStatus is derived from item totals, never set directly.
type JobStatus string

const (
	JobStatusInProgress        JobStatus = "IN_PROGRESS"
	JobStatusPartiallyReceived JobStatus = "PARTIALLY_RECEIVED"
	JobStatusCompleted         JobStatus = "COMPLETED"
)

// RejectionReason classifies why delivered pieces failed acceptance.
type RejectionReason string

const (
	RejectionQuality RejectionReason = "QUALITY"
	RejectionDamage  RejectionReason = "DAMAGE"
	RejectionOther   RejectionReason = "OTHER"
)

// ValidRejectionReason reports whether r is a known reason.
func ValidRejectionReason(r RejectionReason) bool {
	switch r {
	case RejectionQuality, RejectionDamage, RejectionOther:
		return true
	}
	return false
}

// Job is a work order assigning production of quantities of products to one
// or more artisans at a single stage.
type Job struct {
	ID              int64           `json:"job_id"`
	CreatedDate     time.Time       `json:"created_date"`
	CreatedBy       string          `json:"created_by"`
	ServiceCategory ServiceCategory `json:"service_category"`
	Status          JobStatus       `json:"status"`
	Notes           string          `json:"notes"`
	Items           []JobItem       `json:"items,omitempty"`
}

// JobItem is one (artisan, product) line of a Job.
//
// Rate snapshot: RatePerUnit is captured from the service rate table when the
// item is created. All payment calculations use this snapshot, not live
// rates, so later price-table edits never alter existing items.
type JobItem struct {
	ID               int64            `json:"id"`
	JobID            int64            `json:"job_id"`
	ArtisanID        int64            `json:"artisan_id"`
	ProductID        int64            `json:"product_id"`
	QuantityOrdered  int              `json:"quantity_ordered"`
	QuantityReceived int              `json:"quantity_received"`
	QuantityAccepted int              `json:"quantity_accepted"`
	RatePerUnit      decimal.Decimal  `json:"rate_per_unit"`
	OriginalAmount   decimal.Decimal  `json:"original_amount"`
	FinalPayment     decimal.Decimal  `json:"final_payment"`
	RejectionReason  *RejectionReason `json:"rejection_reason,omitempty"`
	PayslipGenerated bool             `json:"payslip_generated"`
	Rating           *decimal.Decimal `json:"rating,omitempty"`
	Deliveries       []JobDelivery    `json:"deliveries,omitempty"`
}

// JobDelivery is an immutable event: one physical hand-in of pieces against a
// JobItem. ClientKey deduplicates retries of the same physical delivery.
type JobDelivery struct {
	ID               int64            `json:"id"`
	JobItemID        int64            `json:"job_item_id"`
	ClientKey        string           `json:"client_key"`
	QuantityReceived int              `json:"quantity_received"`
	QuantityAccepted int              `json:"quantity_accepted"`
	RejectionReason  *RejectionReason `json:"rejection_reason,omitempty"`
	Notes            string           `json:"notes"`
	DeliveryDate     time.Time        `json:"delivery_date"`
}

// Remaining is the quantity the item can still receive.
func (it *JobItem) Remaining() int {
	return it.QuantityOrdered - it.QuantityReceived
}

// ValidateDelivery checks a prospective delivery against the item without
// mutating anything. All rules are checked here so callers fail fast with no
// partial effects.
func (it *JobItem) ValidateDelivery(received, accepted int, reason *RejectionReason) error {
	if received <= 0 {
		return NewValidationError("quantity_received must be greater than zero, got %d", received)
	}
	if accepted < 0 {
		return NewValidationError("quantity_accepted must not be negative, got %d", accepted)
	}
	if accepted > received {
		return NewValidationError("quantity_accepted %d exceeds quantity_received %d", accepted, received)
	}
	if remaining := it.Remaining(); received > remaining {
		return &OverDeliveryError{Requested: received, Remaining: remaining}
	}
	if accepted < received {
		if reason == nil {
			return NewValidationError("rejection_reason is required when quantity_accepted is below quantity_received")
		}
		if !ValidRejectionReason(*reason) {
			return NewValidationError("unknown rejection_reason %q", *reason)
		}
	} else if reason != nil {
		return NewValidationError("rejection_reason must be absent when all pieces are accepted")
	}
	return nil
}

// ApplyDelivery appends d to the item's ledger and brings the running totals
// and final payment up to date. The delivery must already have passed
// ValidateDelivery.
func (it *JobItem) ApplyDelivery(d JobDelivery) {
	it.Deliveries = append(it.Deliveries, d)
	it.QuantityReceived += d.QuantityReceived
	it.QuantityAccepted += d.QuantityAccepted
	if d.QuantityAccepted < d.QuantityReceived {
		it.RejectionReason = d.RejectionReason
	} else {
		it.RejectionReason = nil
	}
	it.FinalPayment = ComputeFinalPayment(it.QuantityAccepted, it.RatePerUnit)
}

// ComputeOriginalAmount prices an item at creation: ordered quantity times
// the snapshotted rate. Frozen afterwards.
func ComputeOriginalAmount(quantityOrdered int, ratePerUnit decimal.Decimal) decimal.Decimal {
	return ratePerUnit.Mul(decimal.NewFromInt(int64(quantityOrdered)))
}

// ComputeFinalPayment prices the accepted quantity at the snapshotted rate.
// Recomputed after every delivery.
func ComputeFinalPayment(quantityAccepted int, ratePerUnit decimal.Decimal) decimal.Decimal {
	return ratePerUnit.Mul(decimal.NewFromInt(int64(quantityAccepted)))
}

// DeriveStatus computes the job's status from its item totals. Pure: same
// items, same answer. A job with no items derives IN_PROGRESS.
func (j *Job) DeriveStatus() JobStatus {
	totalOrdered, totalReceived := 0, 0
	for i := range j.Items {
		totalOrdered += j.Items[i].QuantityOrdered
		totalReceived += j.Items[i].QuantityReceived
	}
	switch {
	case totalReceived == 0:
		return JobStatusInProgress
	case totalReceived < totalOrdered:
		return JobStatusPartiallyReceived
	default:
		return JobStatusCompleted
	}
}

// TotalCost sums the frozen original amounts of all items.
func (j *Job) TotalCost() decimal.Decimal {
	total := decimal.Zero
	for i := range j.Items {
		total = total.Add(j.Items[i].OriginalAmount)
	}
	return total
}

// TotalFinalPayment sums the current final payments of all items.
func (j *Job) TotalFinalPayment() decimal.Decimal {
	total := decimal.Zero
	for i := range j.Items {
		total = total.Add(j.Items[i].FinalPayment)
	}
	return total
}
