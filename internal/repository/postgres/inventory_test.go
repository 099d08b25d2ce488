package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"workshop-backend/internal/domain"
)

func TestInventoryRepository_AbsorbAccepted(t *testing.T) {
	t.Run("StageAbsorbIsOneAtomicUpsert", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()
		repo := NewInventoryRepository(db)

		mock.ExpectExec(`(?s)INSERT INTO inventory.*ON CONFLICT \(product_id, service_category\) DO UPDATE SET.*quantity = inventory\.quantity \+ EXCLUDED\.quantity`).
			WithArgs(int64(7), domain.ServiceCategoryCarving, 5, money("30.00"), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.AbsorbAccepted(context.Background(), 7, domain.ServiceCategoryCarving, 5, money("30.00"))
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("FinishedAbsorbIsOneAtomicUpsert", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()
		repo := NewInventoryRepository(db)

		mock.ExpectExec(`(?s)INSERT INTO finished_stock.*ON CONFLICT \(product_id\) DO UPDATE SET.*quantity = finished_stock\.quantity \+ EXCLUDED\.quantity`).
			WithArgs(int64(7), 5, money("120.00"), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.AbsorbAccepted(context.Background(), 7, domain.ServiceCategoryFinished, 5, money("120.00"))
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
