package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"workshop-backend/internal/domain"
	"workshop-backend/internal/repository"
)

type inventoryRepository struct {
	db *sql.DB
}

func NewInventoryRepository(db *sql.DB) repository.InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) ListInventory(ctx context.Context, page, pageSize int) ([]domain.Inventory, int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM inventory WHERE is_active = TRUE`).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, product_id, service_category, quantity, average_cost, price_at_this_stage, is_active, last_updated
	          FROM inventory WHERE is_active = TRUE ORDER BY product_id, service_category LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []domain.Inventory
	for rows.Next() {
		var inv domain.Inventory
		if err := rows.Scan(&inv.ID, &inv.ProductID, &inv.ServiceCategory, &inv.Quantity, &inv.AverageCost, &inv.PriceAtThisStage, &inv.IsActive, &inv.LastUpdated); err != nil {
			return nil, 0, err
		}
		out = append(out, inv)
	}
	return out, count, rows.Err()
}

func (r *inventoryRepository) ListFinishedStock(ctx context.Context, page, pageSize int) ([]domain.FinishedStock, int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM finished_stock WHERE is_active = TRUE`).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, product_id, quantity, average_cost, is_active, last_updated
	          FROM finished_stock WHERE is_active = TRUE ORDER BY product_id LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []domain.FinishedStock
	for rows.Next() {
		var fs domain.FinishedStock
		if err := rows.Scan(&fs.ID, &fs.ProductID, &fs.Quantity, &fs.AverageCost, &fs.IsActive, &fs.LastUpdated); err != nil {
			return nil, 0, err
		}
		out = append(out, fs)
	}
	return out, count, rows.Err()
}

// AbsorbAccepted folds the accepted batch into the stage position as a single
// upsert. The quantity increment and the moving average are computed in SQL
// against the stored row, so concurrent absorbs serialize on the conflict
// target even when both race to create the row. Mirrors
// domain.MovingAverageCost; the added quantity is always positive, so the
// denominator never reaches zero.
func (r *inventoryRepository) AbsorbAccepted(ctx context.Context, productID int64, category domain.ServiceCategory, quantity int, unitCost decimal.Decimal) error {
	if category == domain.ServiceCategoryFinished {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO finished_stock (product_id, quantity, average_cost, is_active, last_updated)
			 VALUES ($1, $2, $3, TRUE, $4)
			 ON CONFLICT (product_id) DO UPDATE SET
			     average_cost = (finished_stock.average_cost * finished_stock.quantity + EXCLUDED.average_cost * EXCLUDED.quantity)
			                    / (finished_stock.quantity + EXCLUDED.quantity),
			     quantity = finished_stock.quantity + EXCLUDED.quantity,
			     last_updated = EXCLUDED.last_updated`,
			productID, quantity, unitCost, time.Now())
		return err
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO inventory (product_id, service_category, quantity, average_cost, price_at_this_stage, is_active, last_updated)
		 VALUES ($1, $2, $3, $4, $4, TRUE, $5)
		 ON CONFLICT (product_id, service_category) DO UPDATE SET
		     average_cost = (inventory.average_cost * inventory.quantity + EXCLUDED.average_cost * EXCLUDED.quantity)
		                    / (inventory.quantity + EXCLUDED.quantity),
		     price_at_this_stage = (inventory.average_cost * inventory.quantity + EXCLUDED.average_cost * EXCLUDED.quantity)
		                    / (inventory.quantity + EXCLUDED.quantity),
		     quantity = inventory.quantity + EXCLUDED.quantity,
		     last_updated = EXCLUDED.last_updated`,
		productID, category, quantity, unitCost, time.Now())
	return err
}
