package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"workshop-backend/internal/domain"
	"workshop-backend/internal/repository"
)

type orderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, o *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	o.CreatedDate = time.Now()
	err = tx.QueryRowContext(ctx,
		`INSERT INTO orders (customer_id, created_date, status, total_amount, notes) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		o.CustomerID, o.CreatedDate, o.Status, o.TotalAmount, o.Notes).Scan(&o.ID)
	if err != nil {
		return err
	}

	for i := range o.Items {
		it := &o.Items[i]
		it.OrderID = o.ID
		err = tx.QueryRowContext(ctx,
			`INSERT INTO order_items (order_id, product_id, quantity, unit_price) VALUES ($1, $2, $3, $4) RETURNING id`,
			it.OrderID, it.ProductID, it.Quantity, it.UnitPrice).Scan(&it.ID)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	o := &domain.Order{}
	query := `SELECT id, customer_id, created_date, status, total_amount, notes FROM orders WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&o.ID, &o.CustomerID, &o.CreatedDate, &o.Status, &o.TotalAmount, &o.Notes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Entity: "order", ID: id}
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, order_id, product_id, quantity, unit_price FROM order_items WHERE order_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, it)
	}
	return o, rows.Err()
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE orders SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &domain.NotFoundError{Entity: "order", ID: id}
	}
	return nil
}

// UpdateStatusConsumingStock deducts every order line from finished stock and
// writes the new status in one transaction. A line with too little stock
// rolls everything back, so a failed transition leaves no stock missing.
func (r *orderRepository) UpdateStatusConsumingStock(ctx context.Context, o *domain.Order, status domain.OrderStatus) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, it := range o.Items {
		res, err := tx.ExecContext(ctx,
			`UPDATE finished_stock SET quantity = quantity - $1, last_updated = $2 WHERE product_id = $3 AND quantity >= $1`,
			it.Quantity, time.Now(), it.ProductID)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return domain.NewConflictError("insufficient finished stock for product %d: %d requested", it.ProductID, it.Quantity)
		}
	}

	if err := updateOrderStatusTx(ctx, tx, o.ID, status); err != nil {
		return err
	}
	return tx.Commit()
}

// UpdateStatusRestoringStock puts every order line back into finished stock
// and writes the new status in one transaction. Used when cancelling an order
// that already consumed its stock.
func (r *orderRepository) UpdateStatusRestoringStock(ctx context.Context, o *domain.Order, status domain.OrderStatus) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, it := range o.Items {
		if _, err := tx.ExecContext(ctx,
			`UPDATE finished_stock SET quantity = quantity + $1, last_updated = $2 WHERE product_id = $3`,
			it.Quantity, time.Now(), it.ProductID); err != nil {
			return err
		}
	}

	if err := updateOrderStatusTx(ctx, tx, o.ID, status); err != nil {
		return err
	}
	return tx.Commit()
}

func updateOrderStatusTx(ctx context.Context, tx *sql.Tx, id int64, status domain.OrderStatus) error {
	res, err := tx.ExecContext(ctx, `UPDATE orders SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &domain.NotFoundError{Entity: "order", ID: id}
	}
	return nil
}

func (r *orderRepository) List(ctx context.Context, page, pageSize int) ([]domain.Order, int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM orders`).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, customer_id, created_date, status, total_amount, notes FROM orders ORDER BY created_date DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.CreatedDate, &o.Status, &o.TotalAmount, &o.Notes); err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	return orders, count, rows.Err()
}
