package domain

import "fmt"

// ValidationError reports malformed or out-of-range input. It is always
// raised before any state mutation, so a caller seeing it can assume no
// partial effects.
type ValidationError struct {
	Rule string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Rule)
}

// NewValidationError builds a ValidationError with a formatted rule message.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Rule: fmt.Sprintf(format, args...)}
}

// OverDeliveryError is returned when a delivery would push an item's received
// quantity past its ordered quantity. Remaining names the exact quantity the
// item can still accept.
type OverDeliveryError struct {
	Requested int
	Remaining int
}

func (e *OverDeliveryError) Error() string {
	return fmt.Sprintf("cannot receive %d pieces, only %d remain to be delivered", e.Requested, e.Remaining)
}

// PriceNotFoundError is returned when no service rate exists for a lookup
// tuple and the caller did not opt into the fallback rate.
type PriceNotFoundError struct {
	ProductType     string
	AnimalType      string
	ServiceCategory string
	SizeCategory    string
}

func (e *PriceNotFoundError) Error() string {
	return fmt.Sprintf("no service rate for (%s, %s, %s, %s)",
		e.ProductType, e.AnimalType, e.ServiceCategory, e.SizeCategory)
}

// NotFoundError reports a missing entity by name and id.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// ConflictError reports a business-rule conflict that is not an
// over-delivery, e.g. insufficient finished stock for an order line.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return e.Reason
}

// NewConflictError builds a ConflictError with a formatted reason.
func NewConflictError(format string, args ...any) *ConflictError {
	return &ConflictError{Reason: fmt.Sprintf(format, args...)}
}
