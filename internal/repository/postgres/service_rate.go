package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"workshop-backend/internal/domain"
	"workshop-backend/internal/repository"
)

type serviceRateRepository struct {
	db *sql.DB
}

func NewServiceRateRepository(db *sql.DB) repository.ServiceRateRepository {
	return &serviceRateRepository{db: db}
}

func (r *serviceRateRepository) Upsert(ctx context.Context, sr *domain.ServiceRate) error {
	// The unique constraint on (product_id, service_category) keeps at most
	// one rate per pair.
	query := `INSERT INTO service_rates (product_id, service_category, rate_per_unit, updated_on)
	          VALUES ($1, $2, $3, $4)
	          ON CONFLICT (product_id, service_category)
	          DO UPDATE SET rate_per_unit = EXCLUDED.rate_per_unit, updated_on = EXCLUDED.updated_on
	          RETURNING id`
	sr.UpdatedOn = time.Now()
	return r.db.QueryRowContext(ctx, query, sr.ProductID, sr.ServiceCategory, sr.RatePerUnit, sr.UpdatedOn).Scan(&sr.ID)
}

func (r *serviceRateRepository) GetByProductAndCategory(ctx context.Context, productID int64, category domain.ServiceCategory) (*domain.ServiceRate, error) {
	sr := &domain.ServiceRate{}
	query := `SELECT id, product_id, service_category, rate_per_unit, updated_on
	          FROM service_rates WHERE product_id = $1 AND service_category = $2`
	err := r.db.QueryRowContext(ctx, query, productID, category).Scan(&sr.ID, &sr.ProductID, &sr.ServiceCategory, &sr.RatePerUnit, &sr.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Entity: "service rate", ID: productID}
	}
	if err != nil {
		return nil, err
	}
	return sr, nil
}

func (r *serviceRateRepository) List(ctx context.Context, page, pageSize int) ([]domain.ServiceRate, int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM service_rates`).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := `SELECT id, product_id, service_category, rate_per_unit, updated_on
	          FROM service_rates ORDER BY product_id, service_category LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var rates []domain.ServiceRate
	for rows.Next() {
		var sr domain.ServiceRate
		if err := rows.Scan(&sr.ID, &sr.ProductID, &sr.ServiceCategory, &sr.RatePerUnit, &sr.UpdatedOn); err != nil {
			return nil, 0, err
		}
		rates = append(rates, sr)
	}
	return rates, count, rows.Err()
}

func (r *serviceRateRepository) ListRateRows(ctx context.Context) ([]repository.RateRow, error) {
	query := `SELECT p.product_type, p.animal_type, p.size_category, sr.service_category, sr.rate_per_unit
	          FROM service_rates sr JOIN products p ON p.id = sr.product_id
	          WHERE p.is_active = TRUE`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []repository.RateRow
	for rows.Next() {
		var row repository.RateRow
		if err := rows.Scan(&row.ProductType, &row.AnimalType, &row.SizeCategory, &row.ServiceCategory, &row.RatePerUnit); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
