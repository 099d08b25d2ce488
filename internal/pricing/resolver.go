// Package pricing resolves artisan piece rates from a rate table using a
// most-specific-first fallback chain.
package pricing

import (
	"github.com/shopspring/decimal"

	"workshop-backend/internal/domain"
)

// Wildcard marks a table entry field that matches any value.
const Wildcard = "*"

// FallbackRate is the rate applied when no table entry matches at all, down
// to and including the service-category default. Hitting it means the price
// table is missing an entry; resolutions that use it are flagged so callers
// can surface the gap instead of silently paying this rate.
var FallbackRate = decimal.RequireFromString("20.00")

// Key identifies one rate table entry. Any of ProductType, AnimalType and
// SizeCategory may be Wildcard; ServiceCategory is always concrete.
type Key struct {
	ProductType     string
	AnimalType      string
	ServiceCategory domain.ServiceCategory
	SizeCategory    string
}

// Resolution is the outcome of a rate lookup.
type Resolution struct {
	Rate         decimal.Decimal
	Matched      Key
	FallbackUsed bool
}

// Table is an immutable snapshot of the rate table. Lookups are pure and
// safe for concurrent use; a new snapshot replaces the table wholesale.
type Table struct {
	entries map[Key]decimal.Decimal
}

// NewTable builds an empty snapshot.
func NewTable() *Table {
	return &Table{entries: make(map[Key]decimal.Decimal)}
}

// Set stores the rate for a key, replacing any previous value.
func (t *Table) Set(key Key, rate decimal.Decimal) {
	t.entries[key] = rate
}

// Len reports the number of entries in the snapshot.
func (t *Table) Len() int {
	return len(t.entries)
}

// Resolve walks the fallback chain for the given tuple, most specific first:
//
//  1. exact (productType, animalType, serviceCategory, sizeCategory)
//  2. size wildcard (productType, animalType, serviceCategory, *)
//  3. animal wildcard (productType, *, serviceCategory, *)
//  4. service-category default (*, *, serviceCategory, *)
//  5. FallbackRate, with FallbackUsed set
//
// Resolution is a pure function of the tuple and the snapshot.
func (t *Table) Resolve(productType, animalType string, serviceCategory domain.ServiceCategory, sizeCategory string) Resolution {
	chain := []Key{
		{productType, animalType, serviceCategory, sizeCategory},
		{productType, animalType, serviceCategory, Wildcard},
		{productType, Wildcard, serviceCategory, Wildcard},
		{Wildcard, Wildcard, serviceCategory, Wildcard},
	}
	for _, key := range chain {
		if rate, ok := t.entries[key]; ok {
			return Resolution{Rate: rate, Matched: key}
		}
	}
	return Resolution{Rate: FallbackRate, FallbackUsed: true}
}
