package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"workshop-backend/internal/domain"
	"workshop-backend/internal/repository"
)

type jobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) repository.JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(ctx context.Context, j *domain.Job) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	j.CreatedDate = time.Now()
	j.Status = domain.JobStatusInProgress
	err = tx.QueryRowContext(ctx,
		`INSERT INTO jobs (created_date, created_by, service_category, status, notes) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		j.CreatedDate, j.CreatedBy, j.ServiceCategory, j.Status, j.Notes).Scan(&j.ID)
	if err != nil {
		return err
	}

	for i := range j.Items {
		it := &j.Items[i]
		it.JobID = j.ID
		err = tx.QueryRowContext(ctx,
			`INSERT INTO job_items (job_id, artisan_id, product_id, quantity_ordered, quantity_received, quantity_accepted, rate_per_unit, original_amount, final_payment, payslip_generated)
			 VALUES ($1, $2, $3, $4, 0, 0, $5, $6, $7, FALSE) RETURNING id`,
			it.JobID, it.ArtisanID, it.ProductID, it.QuantityOrdered, it.RatePerUnit, it.OriginalAmount, it.FinalPayment).Scan(&it.ID)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *jobRepository) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	j := &domain.Job{}
	query := `SELECT id, created_date, created_by, service_category, status, notes FROM jobs WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&j.ID, &j.CreatedDate, &j.CreatedBy, &j.ServiceCategory, &j.Status, &j.Notes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Entity: "job", ID: id}
	}
	if err != nil {
		return nil, err
	}

	items, err := r.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}
	for i := range items {
		deliveries, err := r.ListDeliveries(ctx, items[i].ID)
		if err != nil {
			return nil, err
		}
		items[i].Deliveries = deliveries
	}
	j.Items = items
	return j, nil
}

func (r *jobRepository) Update(ctx context.Context, j *domain.Job) error {
	query := `UPDATE jobs SET notes=$1, created_by=$2 WHERE id=$3`
	_, err := r.db.ExecContext(ctx, query, j.Notes, j.CreatedBy, j.ID)
	return err
}

func (r *jobRepository) Delete(ctx context.Context, id int64) error {
	var slipped bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM job_items WHERE job_id = $1 AND payslip_generated)`, id).Scan(&slipped)
	if err != nil {
		return err
	}
	if slipped {
		return domain.NewConflictError("cannot delete job %d: items have generated payslips", id)
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	return err
}

func (r *jobRepository) List(ctx context.Context, filter repository.JobFilter, page, pageSize int) ([]domain.Job, int, error) {
	query := `SELECT id, created_date, created_by, service_category, status, notes FROM jobs WHERE 1=1`
	args := []interface{}{}
	argIdx := 1
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, filter.Status)
		argIdx++
	}
	if filter.ServiceCategory != "" {
		query += fmt.Sprintf(" AND service_category = $%d", argIdx)
		args = append(args, filter.ServiceCategory)
		argIdx++
	}
	if filter.Search != "" {
		query += fmt.Sprintf(" AND (created_by ILIKE $%d OR notes ILIKE $%d OR id::text = $%d)", argIdx, argIdx, argIdx+1)
		args = append(args, "%"+filter.Search+"%", filter.Search)
		argIdx += 2
	}

	var count int
	countQuery := "SELECT count(*) FROM (" + query + ") AS sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_date DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		var j domain.Job
		if err := rows.Scan(&j.ID, &j.CreatedDate, &j.CreatedBy, &j.ServiceCategory, &j.Status, &j.Notes); err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range jobs {
		items, err := r.ListItems(ctx, jobs[i].ID)
		if err != nil {
			return nil, 0, err
		}
		jobs[i].Items = items
	}
	return jobs, count, nil
}

func (r *jobRepository) Dashboard(ctx context.Context) (*repository.DashboardStats, error) {
	stats := &repository.DashboardStats{}
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*),
		        count(*) FILTER (WHERE status = 'IN_PROGRESS'),
		        count(*) FILTER (WHERE status = 'PARTIALLY_RECEIVED'),
		        count(*) FILTER (WHERE status = 'COMPLETED')
		 FROM jobs`).
		Scan(&stats.TotalJobs, &stats.InProgress, &stats.PartiallyReceived, &stats.Completed)
	if err != nil {
		return nil, err
	}
	err = r.db.QueryRowContext(ctx,
		`SELECT COALESCE(sum(original_amount), 0), COALESCE(sum(final_payment), 0) FROM job_items`).
		Scan(&stats.TotalCost, &stats.TotalFinalPayment)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

const jobItemColumns = `id, job_id, artisan_id, product_id, quantity_ordered, quantity_received, quantity_accepted,
	rate_per_unit, original_amount, final_payment, rejection_reason, payslip_generated, rating`

func scanJobItem(row interface{ Scan(...interface{}) error }) (*domain.JobItem, error) {
	it := &domain.JobItem{}
	var reason sql.NullString
	var rating decimal.NullDecimal
	err := row.Scan(&it.ID, &it.JobID, &it.ArtisanID, &it.ProductID, &it.QuantityOrdered, &it.QuantityReceived,
		&it.QuantityAccepted, &it.RatePerUnit, &it.OriginalAmount, &it.FinalPayment, &reason, &it.PayslipGenerated, &rating)
	if err != nil {
		return nil, err
	}
	if reason.Valid {
		rr := domain.RejectionReason(reason.String)
		it.RejectionReason = &rr
	}
	if rating.Valid {
		it.Rating = &rating.Decimal
	}
	return it, nil
}

func (r *jobRepository) GetItem(ctx context.Context, jobID, itemID int64) (*domain.JobItem, error) {
	query := `SELECT ` + jobItemColumns + ` FROM job_items WHERE job_id = $1 AND id = $2`
	it, err := scanJobItem(r.db.QueryRowContext(ctx, query, jobID, itemID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Entity: "job item", ID: itemID}
	}
	if err != nil {
		return nil, err
	}
	return it, nil
}

func (r *jobRepository) ListItems(ctx context.Context, jobID int64) ([]domain.JobItem, error) {
	query := `SELECT ` + jobItemColumns + ` FROM job_items WHERE job_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, jobID)
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

func (r *jobRepository) DeleteItem(ctx context.Context, jobID, itemID int64) error {
	var slipped bool
	err := r.db.QueryRowContext(ctx,
		`SELECT payslip_generated FROM job_items WHERE job_id = $1 AND id = $2`, jobID, itemID).Scan(&slipped)
	if errors.Is(err, sql.ErrNoRows) {
		return &domain.NotFoundError{Entity: "job item", ID: itemID}
	}
	if err != nil {
		return err
	}
	if slipped {
		return domain.NewConflictError("cannot delete job item %d: payslip already generated", itemID)
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM job_items WHERE job_id = $1 AND id = $2`, jobID, itemID)
	return err
}

func (r *jobRepository) SetItemRating(ctx context.Context, jobID, itemID int64, rating decimal.Decimal) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE job_items SET rating = $1 WHERE job_id = $2 AND id = $3`, rating, jobID, itemID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &domain.NotFoundError{Entity: "job item", ID: itemID}
	}
	return nil
}

func (r *jobRepository) ListDeliveries(ctx context.Context, itemID int64) ([]domain.JobDelivery, error) {
	query := `SELECT id, job_item_id, COALESCE(client_key, ''), quantity_received, quantity_accepted, rejection_reason, notes, delivery_date
	          FROM job_deliveries WHERE job_item_id = $1 ORDER BY delivery_date DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deliveries []domain.JobDelivery
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, *d)
	}
	return deliveries, rows.Err()
}

func scanDelivery(row interface{ Scan(...interface{}) error }) (*domain.JobDelivery, error) {
	d := &domain.JobDelivery{}
	var reason sql.NullString
	err := row.Scan(&d.ID, &d.JobItemID, &d.ClientKey, &d.QuantityReceived, &d.QuantityAccepted, &reason, &d.Notes, &d.DeliveryDate)
	if err != nil {
		return nil, err
	}
	if reason.Valid {
		rr := domain.RejectionReason(reason.String)
		d.RejectionReason = &rr
	}
	return d, nil
}

// GetDeliveryByClientKey matches the global unique index on client_key, so a
// key reused against a different item surfaces as a hit on the original
// delivery rather than a miss.
func (r *jobRepository) GetDeliveryByClientKey(ctx context.Context, clientKey string) (*domain.JobDelivery, error) {
	query := `SELECT id, job_item_id, COALESCE(client_key, ''), quantity_received, quantity_accepted, rejection_reason, notes, delivery_date
	          FROM job_deliveries WHERE client_key = $1`
	d, err := scanDelivery(r.db.QueryRowContext(ctx, query, clientKey))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *jobRepository) SaveDelivery(ctx context.Context, d *domain.JobDelivery, item *domain.JobItem, status domain.JobStatus) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var reason sql.NullString
	if d.RejectionReason != nil {
		reason = sql.NullString{String: string(*d.RejectionReason), Valid: true}
	}
	var key sql.NullString
	if d.ClientKey != "" {
		key = sql.NullString{String: d.ClientKey, Valid: true}
	}
	d.DeliveryDate = time.Now()
	err = tx.QueryRowContext(ctx,
		`INSERT INTO job_deliveries (job_item_id, client_key, quantity_received, quantity_accepted, rejection_reason, notes, delivery_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		d.JobItemID, key, d.QuantityReceived, d.QuantityAccepted, reason, d.Notes, d.DeliveryDate).Scan(&d.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			// Unique client_key violation: a concurrent retry already
			// recorded this delivery.
			return domain.NewConflictError("delivery with client key %s already recorded", d.ClientKey)
		}
		return err
	}

	var itemReason sql.NullString
	if item.RejectionReason != nil {
		itemReason = sql.NullString{String: string(*item.RejectionReason), Valid: true}
	}
	_, err = tx.ExecContext(ctx,
		`UPDATE job_items SET quantity_received=$1, quantity_accepted=$2, rejection_reason=$3, final_payment=$4 WHERE id=$5`,
		item.QuantityReceived, item.QuantityAccepted, itemReason, item.FinalPayment, item.ID)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `UPDATE jobs SET status=$1 WHERE id=$2`, status, item.JobID)
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (r *jobRepository) ReconcileStatuses(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE jobs SET status = derived.status
		FROM (
			SELECT j.id,
			       CASE WHEN COALESCE(sum(ji.quantity_received), 0) = 0 THEN 'IN_PROGRESS'
			            WHEN sum(ji.quantity_received) < sum(ji.quantity_ordered) THEN 'PARTIALLY_RECEIVED'
			            ELSE 'COMPLETED' END AS status
			FROM jobs j LEFT JOIN job_items ji ON ji.job_id = j.id
			GROUP BY j.id
		) AS derived
		WHERE derived.id = jobs.id AND jobs.status <> derived.status`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *jobRepository) ClearDeliveryKeys(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE job_deliveries SET client_key = NULL WHERE client_key IS NOT NULL AND delivery_date < $1`, before)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
