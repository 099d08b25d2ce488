package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"workshop-backend/internal/domain"
)

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestJobRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	repo := NewJobRepository(db)

	job := &domain.Job{
		CreatedBy:       "supervisor",
		ServiceCategory: domain.ServiceCategoryCarving,
		Items: []domain.JobItem{newTestItem()},
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO jobs").
		WithArgs(sqlmock.AnyArg(), "supervisor", domain.ServiceCategoryCarving, domain.JobStatusInProgress, "").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectQuery("INSERT INTO job_items").
		WithArgs(int64(5), int64(3), int64(7), 20, money("30.00"), money("600.00"), decimal.Zero).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectCommit()

	assert.NoError(t, repo.Create(context.Background(), job))
	assert.Equal(t, int64(5), job.ID)
	assert.Equal(t, int64(11), job.Items[0].ID)
	assert.Equal(t, domain.JobStatusInProgress, job.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func newTestItem() domain.JobItem {
	return domain.JobItem{
		ArtisanID:       3,
		ProductID:       7,
		QuantityOrdered: 20,
		RatePerUnit:     money("30.00"),
		OriginalAmount:  money("600.00"),
		FinalPayment:    decimal.Zero,
	}
}

func TestJobRepository_SaveDelivery(t *testing.T) {
	t.Run("CommitsDeliveryItemAndStatusTogether", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()
		repo := NewJobRepository(db)

		item := &domain.JobItem{
			ID: 11, JobID: 5, QuantityOrdered: 20,
			QuantityReceived: 5, QuantityAccepted: 5,
			FinalPayment: money("150.00"),
		}
		delivery := &domain.JobDelivery{
			JobItemID: 11, ClientKey: "key-1",
			QuantityReceived: 5, QuantityAccepted: 5,
		}

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO job_deliveries").
			WithArgs(int64(11), sqlmock.AnyArg(), 5, 5, sqlmock.AnyArg(), "", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectExec("UPDATE job_items SET").
			WithArgs(5, 5, sqlmock.AnyArg(), money("150.00"), int64(11)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE jobs SET status").
			WithArgs(domain.JobStatusPartiallyReceived, int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = repo.SaveDelivery(context.Background(), delivery, item, domain.JobStatusPartiallyReceived)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), delivery.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DuplicateClientKeyIsConflict", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()
		repo := NewJobRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO job_deliveries").
			WillReturnError(&pq.Error{Code: "23505"})
		mock.ExpectRollback()

		err = repo.SaveDelivery(context.Background(),
			&domain.JobDelivery{JobItemID: 11, ClientKey: "key-1", QuantityReceived: 5, QuantityAccepted: 5},
			&domain.JobItem{ID: 11, JobID: 5}, domain.JobStatusPartiallyReceived)
		var conflict *domain.ConflictError
		assert.ErrorAs(t, err, &conflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestJobRepository_GetItem(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	repo := NewJobRepository(db)

	t.Run("ScansNullableColumns", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{
			"id", "job_id", "artisan_id", "product_id", "quantity_ordered", "quantity_received",
			"quantity_accepted", "rate_per_unit", "original_amount", "final_payment",
			"rejection_reason", "payslip_generated", "rating",
		}).AddRow(11, 5, 3, 7, 20, 15, 7, "30.00", "600.00", "210.00", "QUALITY", false, nil)
		mock.ExpectQuery("FROM job_items WHERE job_id = \\$1 AND id = \\$2").
			WithArgs(int64(5), int64(11)).
			WillReturnRows(rows)

		item, err := repo.GetItem(context.Background(), 5, 11)
		assert.NoError(t, err)
		assert.Equal(t, 15, item.QuantityReceived)
		assert.NotNil(t, item.RejectionReason)
		assert.Equal(t, domain.RejectionQuality, *item.RejectionReason)
		assert.Nil(t, item.Rating)
		assert.True(t, item.FinalPayment.Equal(money("210.00")))
	})

	t.Run("MissingItemIsNotFound", func(t *testing.T) {
		mock.ExpectQuery("FROM job_items WHERE job_id = \\$1 AND id = \\$2").
			WithArgs(int64(5), int64(99)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetItem(context.Background(), 5, 99)
		var notFound *domain.NotFoundError
		assert.ErrorAs(t, err, &notFound)
	})
}

func TestJobRepository_ReconcileStatuses(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	repo := NewJobRepository(db)

	mock.ExpectExec("UPDATE jobs SET status = derived.status").
		WillReturnResult(sqlmock.NewResult(0, 3))

	repaired, err := repo.ReconcileStatuses(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(3), repaired)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepository_ClearDeliveryKeys(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	repo := NewJobRepository(db)

	cutoff := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec("UPDATE job_deliveries SET client_key = NULL").
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 12))

	cleared, err := repo.ClearDeliveryKeys(context.Background(), cutoff)
	assert.NoError(t, err)
	assert.Equal(t, int64(12), cleared)
	assert.NoError(t, mock.ExpectationsWereMet())
}
