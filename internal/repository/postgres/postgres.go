package postgres

import (
	"database/sql"

	"workshop-backend/internal/repository"

	_ "github.com/lib/pq"
)

// Store bundles all Postgres-backed repositories behind the repository
// interfaces.
type Store struct {
	db *sql.DB
	repository.ProductRepository
	repository.ServiceRateRepository
	repository.ArtisanRepository
	repository.JobRepository
	repository.InventoryRepository
	repository.CustomerRepository
	repository.OrderRepository
	repository.PayslipRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                    db,
		ProductRepository:     NewProductRepository(db),
		ServiceRateRepository: NewServiceRateRepository(db),
		ArtisanRepository:     NewArtisanRepository(db),
		JobRepository:         NewJobRepository(db),
		InventoryRepository:   NewInventoryRepository(db),
		CustomerRepository:    NewCustomerRepository(db),
		OrderRepository:       NewOrderRepository(db),
		PayslipRepository:     NewPayslipRepository(db),
	}
}
