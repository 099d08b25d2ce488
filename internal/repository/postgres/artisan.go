package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"workshop-backend/internal/domain"
	"workshop-backend/internal/repository"
)

type artisanRepository struct {
	db *sql.DB
}

func NewArtisanRepository(db *sql.DB) repository.ArtisanRepository {
	return &artisanRepository{db: db}
}

func (r *artisanRepository) Create(ctx context.Context, a *domain.Artisan) error {
	query := `INSERT INTO artisans (name, phone, is_active, created_on) VALUES ($1, $2, $3, $4) RETURNING id`
	a.CreatedOn = time.Now()
	return r.db.QueryRowContext(ctx, query, a.Name, a.Phone, a.IsActive, a.CreatedOn).Scan(&a.ID)
}

func (r *artisanRepository) GetByID(ctx context.Context, id int64) (*domain.Artisan, error) {
	a := &domain.Artisan{}
	query := `SELECT id, name, phone, is_active, created_on FROM artisans WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&a.ID, &a.Name, &a.Phone, &a.IsActive, &a.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Entity: "artisan", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *artisanRepository) Update(ctx context.Context, a *domain.Artisan) error {
	query := `UPDATE artisans SET name=$1, phone=$2, is_active=$3 WHERE id=$4`
	_, err := r.db.ExecContext(ctx, query, a.Name, a.Phone, a.IsActive, a.ID)
	return err
}

func (r *artisanRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE artisans SET is_active = FALSE WHERE id = $1`, id)
	return err
}

func (r *artisanRepository) List(ctx context.Context, page, pageSize int) ([]domain.Artisan, int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM artisans WHERE is_active = TRUE`).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := `SELECT id, name, phone, is_active, created_on FROM artisans WHERE is_active = TRUE ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var artisans []domain.Artisan
	for rows.Next() {
		var a domain.Artisan
		if err := rows.Scan(&a.ID, &a.Name, &a.Phone, &a.IsActive, &a.CreatedOn); err != nil {
			return nil, 0, err
		}
		artisans = append(artisans, a)
	}
	return artisans, count, rows.Err()
}

func (r *artisanRepository) Stats(ctx context.Context, artisanID int64) (*domain.ArtisanStats, error) {
	stats := &domain.ArtisanStats{}

	query := `SELECT count(*),
	                 COALESCE(sum(ji.final_payment) FILTER (WHERE NOT ji.payslip_generated AND j.status = 'COMPLETED'), 0),
	                 COALESCE(avg(ji.rating), 0),
	                 max(j.created_date)
	          FROM job_items ji JOIN jobs j ON j.id = ji.job_id
	          WHERE ji.artisan_id = $1`
	var lastJob sql.NullTime
	err := r.db.QueryRowContext(ctx, query, artisanID).Scan(&stats.TotalJobs, &stats.PendingPayment, &stats.AverageRating, &lastJob)
	if err != nil {
		return nil, err
	}
	if lastJob.Valid {
		stats.LastJobDate = &lastJob.Time
	}

	err = r.db.QueryRowContext(ctx,
		`SELECT COALESCE(sum(total_payment), 0) FROM payslips WHERE artisan_id = $1`, artisanID).
		Scan(&stats.TotalEarnings)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT j.service_category FROM job_items ji JOIN jobs j ON j.id = ji.job_id WHERE ji.artisan_id = $1 ORDER BY j.service_category`,
		artisanID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var c domain.ServiceCategory
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		stats.Specialties = append(stats.Specialties, c)
	}
	return stats, rows.Err()
}
