package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Inventory tracks pieces of a product sitting at one production stage.
type Inventory struct {
	ID               int64           `json:"id"`
	ProductID        int64           `json:"product_id"`
	ServiceCategory  ServiceCategory `json:"service_category"`
	Quantity         int             `json:"quantity"`
	AverageCost      decimal.Decimal `json:"average_cost"`
	PriceAtThisStage decimal.Decimal `json:"price_at_this_stage"`
	IsActive         bool            `json:"is_active"`
	LastUpdated      time.Time       `json:"last_updated"`
}

// FinishedStock tracks completed pieces ready for sale. One record per
// product.
type FinishedStock struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"product_id"`
	Quantity    int             `json:"quantity"`
	AverageCost decimal.Decimal `json:"average_cost"`
	IsActive    bool            `json:"is_active"`
	LastUpdated time.Time       `json:"last_updated"`
}

// MovingAverageCost folds an incoming batch into an existing position and
// returns the new per-unit cost. With an empty resulting position it falls
// back to the unit cost of the batch. The inventory repository applies this
// same rule inside its absorb upsert; the two must stay in step.
func MovingAverageCost(currentQty int, currentCost decimal.Decimal, addedQty int, unitCost decimal.Decimal) decimal.Decimal {
	totalQty := currentQty + addedQty
	if totalQty <= 0 {
		return unitCost
	}
	currentValue := currentCost.Mul(decimal.NewFromInt(int64(currentQty)))
	addedValue := unitCost.Mul(decimal.NewFromInt(int64(addedQty)))
	return currentValue.Add(addedValue).Div(decimal.NewFromInt(int64(totalQty)))
}
