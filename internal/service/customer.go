package service

import (
	"context"

	"workshop-backend/internal/domain"
	"workshop-backend/internal/repository"
)

type customerService struct {
	customerRepo repository.CustomerRepository
}

func NewCustomerService(customerRepo repository.CustomerRepository) CustomerService {
	return &customerService{customerRepo: customerRepo}
}

func (s *customerService) Create(ctx context.Context, c *domain.Customer) error {
	if c.Name == "" {
		return domain.NewValidationError("customer name is required")
	}
	return s.customerRepo.Create(ctx, c)
}

func (s *customerService) Get(ctx context.Context, id int64) (*domain.Customer, error) {
	return s.customerRepo.GetByID(ctx, id)
}

func (s *customerService) Update(ctx context.Context, c *domain.Customer) error {
	if c.Name == "" {
		return domain.NewValidationError("customer name is required")
	}
	if _, err := s.customerRepo.GetByID(ctx, c.ID); err != nil {
		return err
	}
	return s.customerRepo.Update(ctx, c)
}

func (s *customerService) Delete(ctx context.Context, id int64) error {
	return s.customerRepo.Delete(ctx, id)
}

func (s *customerService) List(ctx context.Context, page, pageSize int) ([]domain.Customer, int, error) {
	return s.customerRepo.List(ctx, page, pageSize)
}
