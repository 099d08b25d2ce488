package service

import (
	"context"

	"workshop-backend/internal/domain"
	"workshop-backend/internal/logger"
	"workshop-backend/internal/repository"
)

type productService struct {
	productRepo repository.ProductRepository
	rateRepo    repository.ServiceRateRepository
	pricingSvc  PricingService
}

func NewProductService(productRepo repository.ProductRepository, rateRepo repository.ServiceRateRepository, pricingSvc PricingService) ProductService {
	return &productService{
		productRepo: productRepo,
		rateRepo:    rateRepo,
		pricingSvc:  pricingSvc,
	}
}

func (s *productService) Create(ctx context.Context, p *domain.Product) error {
	if p.ProductType == "" || p.AnimalType == "" || p.SizeCategory == "" {
		return domain.NewValidationError("product_type, animal_type and size_category are required")
	}
	if p.BasePrice.IsNegative() {
		return domain.NewValidationError("base_price must not be negative")
	}
	p.IsActive = true
	return s.productRepo.Create(ctx, p)
}

func (s *productService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return s.productRepo.GetByID(ctx, id)
}

func (s *productService) Update(ctx context.Context, in UpdateProductInput) (*domain.Product, error) {
	if in.Product.BasePrice.IsNegative() {
		return nil, domain.NewValidationError("base_price must not be negative")
	}
	current, err := s.productRepo.GetByID(ctx, in.Product.ID)
	if err != nil {
		return nil, err
	}

	if !current.BasePrice.Equal(in.Product.BasePrice) {
		history := &domain.PriceHistory{
			ProductID: current.ID,
			OldPrice:  current.BasePrice,
			NewPrice:  in.Product.BasePrice,
			ChangedBy: in.ChangedBy,
			Reason:    in.Reason,
		}
		if err := s.productRepo.AddPriceHistory(ctx, history); err != nil {
			return nil, err
		}
		logger.Info("base price changed",
			"product_id", current.ID, "old", current.BasePrice, "new", in.Product.BasePrice, "changed_by", in.ChangedBy)
	}

	if err := s.productRepo.Update(ctx, &in.Product); err != nil {
		return nil, err
	}
	return s.productRepo.GetByID(ctx, in.Product.ID)
}

func (s *productService) Delete(ctx context.Context, id int64) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.pricingSvc.Invalidate()
	return nil
}

func (s *productService) List(ctx context.Context, page, pageSize int) ([]domain.Product, int, error) {
	return s.productRepo.List(ctx, page, pageSize)
}

func (s *productService) PriceHistory(ctx context.Context, productID int64) ([]domain.PriceHistory, error) {
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	return s.productRepo.ListPriceHistory(ctx, productID)
}

func (s *productService) ListRates(ctx context.Context, page, pageSize int) ([]domain.ServiceRate, int, error) {
	return s.rateRepo.List(ctx, page, pageSize)
}

func (s *productService) UpsertRate(ctx context.Context, r *domain.ServiceRate) error {
	if !domain.ValidServiceCategory(r.ServiceCategory) {
		return domain.NewValidationError("unknown service_category %q", r.ServiceCategory)
	}
	if r.RatePerUnit.IsNegative() {
		return domain.NewValidationError("rate_per_unit must not be negative")
	}
	if _, err := s.productRepo.GetByID(ctx, r.ProductID); err != nil {
		return err
	}
	if err := s.rateRepo.Upsert(ctx, r); err != nil {
		return err
	}
	// Rate writes make the cached table stale immediately.
	s.pricingSvc.Invalidate()
	return nil
}
