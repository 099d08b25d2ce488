package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"workshop-backend/internal/domain"
	"workshop-backend/internal/repository"
)

type payslipRepository struct {
	db *sql.DB
}

func NewPayslipRepository(db *sql.DB) repository.PayslipRepository {
	return &payslipRepository{db: db}
}

// CreateForItems inserts the payslip and flags the items it pays in one
// transaction. A failure after the insert would otherwise leave the items
// unslipped and a re-run would pay them twice.
func (r *payslipRepository) CreateForItems(ctx context.Context, p *domain.Payslip, itemIDs []int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var category sql.NullString
	if p.ServiceCategory != nil {
		category = sql.NullString{String: string(*p.ServiceCategory), Valid: true}
	}
	p.GeneratedDate = time.Now()
	query := `INSERT INTO payslips (artisan_id, service_category, generated_date, total_payment, period_start, period_end, file_path)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err = tx.QueryRowContext(ctx, query,
		p.ArtisanID, category, p.GeneratedDate, p.TotalPayment, p.PeriodStart, p.PeriodEnd, p.FilePath).Scan(&p.ID)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE job_items SET payslip_generated = TRUE WHERE id = ANY($1)`, pq.Array(itemIDs)); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *payslipRepository) GetByID(ctx context.Context, id int64) (*domain.Payslip, error) {
	p := &domain.Payslip{}
	var category sql.NullString
	query := `SELECT id, artisan_id, service_category, generated_date, total_payment, period_start, period_end, COALESCE(file_path, '')
	          FROM payslips WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&p.ID, &p.ArtisanID, &category, &p.GeneratedDate, &p.TotalPayment, &p.PeriodStart, &p.PeriodEnd, &p.FilePath)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Entity: "payslip", ID: id}
	}
	if err != nil {
		return nil, err
	}
	if category.Valid {
		c := domain.ServiceCategory(category.String)
		p.ServiceCategory = &c
	}
	return p, nil
}

func (r *payslipRepository) List(ctx context.Context, artisanID int64, page, pageSize int) ([]domain.Payslip, int, error) {
	query := `SELECT id, artisan_id, service_category, generated_date, total_payment, period_start, period_end, COALESCE(file_path, '')
	          FROM payslips`
	args := []interface{}{}
	argIdx := 1
	if artisanID != 0 {
		query += fmt.Sprintf(" WHERE artisan_id = $%d", argIdx)
		args = append(args, artisanID)
		argIdx++
	}

	var count int
	countQuery := "SELECT count(*) FROM (" + query + ") AS sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY generated_date DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var payslips []domain.Payslip
	for rows.Next() {
		var p domain.Payslip
		var category sql.NullString
		if err := rows.Scan(&p.ID, &p.ArtisanID, &category, &p.GeneratedDate, &p.TotalPayment, &p.PeriodStart, &p.PeriodEnd, &p.FilePath); err != nil {
			return nil, 0, err
		}
		if category.Valid {
			c := domain.ServiceCategory(category.String)
			p.ServiceCategory = &c
		}
		payslips = append(payslips, p)
	}
	return payslips, count, rows.Err()
}

// DeleteReleasingItems clears the slipped flag on the items the payslip
// covered and deletes it, committing both or neither.
func (r *payslipRepository) DeleteReleasingItems(ctx context.Context, p *domain.Payslip) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `UPDATE job_items SET payslip_generated = FALSE
	          WHERE id IN (
	              SELECT ji.id FROM job_items ji JOIN jobs j ON j.id = ji.job_id
	              WHERE ji.artisan_id = $1
	                AND j.created_date >= $2 AND j.created_date <= $3
	                AND ji.payslip_generated`
	args := []interface{}{p.ArtisanID, p.PeriodStart, p.PeriodEnd}
	if p.ServiceCategory != nil {
		query += " AND j.service_category = $4"
		args = append(args, *p.ServiceCategory)
	}
	query += ")"
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM payslips WHERE id = $1`, p.ID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *payslipRepository) AttachFile(ctx context.Context, id int64, path string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE payslips SET file_path = $1 WHERE id = $2`, path, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &domain.NotFoundError{Entity: "payslip", ID: id}
	}
	return nil
}

func (r *payslipRepository) ListEligibleItems(ctx context.Context, artisanID int64, periodStart, periodEnd time.Time, category *domain.ServiceCategory) ([]domain.JobItem, error) {
	query := `SELECT ` + prefixedJobItemColumns("ji") + `
	          FROM job_items ji JOIN jobs j ON j.id = ji.job_id
	          WHERE ji.artisan_id = $1
	            AND j.created_date >= $2 AND j.created_date <= $3
	            AND ji.quantity_accepted > 0
	            AND NOT ji.payslip_generated`
	args := []interface{}{artisanID, periodStart, periodEnd}
	if category != nil {
		query += " AND j.service_category = $4"
		args = append(args, *category)
	}
	query += " ORDER BY ji.id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.JobItem
	for rows.Next() {
		it, err := scanJobItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

// prefixedJobItemColumns qualifies the shared job item column list with a
// table alias for joined queries.
func prefixedJobItemColumns(alias string) string {
	return alias + ".id, " + alias + ".job_id, " + alias + ".artisan_id, " + alias + ".product_id, " +
		alias + ".quantity_ordered, " + alias + ".quantity_received, " + alias + ".quantity_accepted, " +
		alias + ".rate_per_unit, " + alias + ".original_amount, " + alias + ".final_payment, " +
		alias + ".rejection_reason, " + alias + ".payslip_generated, " + alias + ".rating"
}
