package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"workshop-backend/internal/domain"
	"workshop-backend/internal/repository"
)

type productRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, p *domain.Product) error {
	query := `INSERT INTO products (product_type, animal_type, size_category, base_price, is_active, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	now := time.Now()
	p.CreatedOn = now
	p.UpdatedOn = now
	return r.db.QueryRowContext(ctx, query, p.ProductType, p.AnimalType, p.SizeCategory, p.BasePrice, p.IsActive, now, now).Scan(&p.ID)
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	p := &domain.Product{}
	query := `SELECT id, product_type, animal_type, size_category, base_price, is_active, created_on, updated_on FROM products WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.ProductType, &p.AnimalType, &p.SizeCategory, &p.BasePrice, &p.IsActive, &p.CreatedOn, &p.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Entity: "product", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *productRepository) FindBySpec(ctx context.Context, productType, animalType, sizeCategory string) (*domain.Product, error) {
	p := &domain.Product{}
	query := `SELECT id, product_type, animal_type, size_category, base_price, is_active, created_on, updated_on
	          FROM products WHERE product_type = $1 AND animal_type = $2 AND size_category = $3 AND is_active = TRUE`
	err := r.db.QueryRowContext(ctx, query, productType, animalType, sizeCategory).Scan(&p.ID, &p.ProductType, &p.AnimalType, &p.SizeCategory, &p.BasePrice, &p.IsActive, &p.CreatedOn, &p.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Entity: "product", ID: 0}
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *productRepository) Update(ctx context.Context, p *domain.Product) error {
	query := `UPDATE products SET product_type=$1, animal_type=$2, size_category=$3, base_price=$4, is_active=$5, updated_on=$6 WHERE id=$7`
	_, err := r.db.ExecContext(ctx, query, p.ProductType, p.AnimalType, p.SizeCategory, p.BasePrice, p.IsActive, time.Now(), p.ID)
	return err
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	// Soft delete; historical job items keep referencing the product.
	_, err := r.db.ExecContext(ctx, `UPDATE products SET is_active = FALSE, updated_on = $1 WHERE id = $2`, time.Now(), id)
	return err
}

func (r *productRepository) List(ctx context.Context, page, pageSize int) ([]domain.Product, int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM products WHERE is_active = TRUE`).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := `SELECT id, product_type, animal_type, size_category, base_price, is_active, created_on, updated_on
	          FROM products WHERE is_active = TRUE ORDER BY product_type, animal_type, size_category LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.ProductType, &p.AnimalType, &p.SizeCategory, &p.BasePrice, &p.IsActive, &p.CreatedOn, &p.UpdatedOn); err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	return products, count, rows.Err()
}

func (r *productRepository) AddPriceHistory(ctx context.Context, h *domain.PriceHistory) error {
	query := `INSERT INTO price_history (product_id, old_price, new_price, effective_date, changed_by, reason)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	h.EffectiveDate = time.Now()
	return r.db.QueryRowContext(ctx, query, h.ProductID, h.OldPrice, h.NewPrice, h.EffectiveDate, h.ChangedBy, h.Reason).Scan(&h.ID)
}

func (r *productRepository) ListPriceHistory(ctx context.Context, productID int64) ([]domain.PriceHistory, error) {
	query := `SELECT id, product_id, old_price, new_price, effective_date, changed_by, reason
	          FROM price_history WHERE product_id = $1 ORDER BY effective_date DESC`
	rows, err := r.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []domain.PriceHistory
	for rows.Next() {
		var h domain.PriceHistory
		if err := rows.Scan(&h.ID, &h.ProductID, &h.OldPrice, &h.NewPrice, &h.EffectiveDate, &h.ChangedBy, &h.Reason); err != nil {
			return nil, err
		}
		history = append(history, h)
	}
	return history, rows.Err()
}
