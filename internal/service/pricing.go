package service

import (
	"context"
	"errors"

	"workshop-backend/internal/domain"
	"workshop-backend/internal/logger"
	"workshop-backend/internal/pricing"
	"workshop-backend/internal/repository"
)

type pricingService struct {
	productRepo repository.ProductRepository
	rateRepo    repository.ServiceRateRepository
	cache       *pricing.Cache
}

// NewPricingService builds the pricing service around an injected rate table
// cache.
func NewPricingService(productRepo repository.ProductRepository, rateRepo repository.ServiceRateRepository, cache *pricing.Cache) PricingService {
	return &pricingService{
		productRepo: productRepo,
		rateRepo:    rateRepo,
		cache:       cache,
	}
}

// NewRateTableLoader adapts the rate repository into a pricing.Loader.
func NewRateTableLoader(rateRepo repository.ServiceRateRepository) pricing.Loader {
	return func(ctx context.Context) (*pricing.Table, error) {
		rows, err := rateRepo.ListRateRows(ctx)
		if err != nil {
			return nil, err
		}
		table := pricing.NewTable()
		for _, row := range rows {
			table.Set(pricing.Key{
				ProductType:     row.ProductType,
				AnimalType:      row.AnimalType,
				ServiceCategory: row.ServiceCategory,
				SizeCategory:    row.SizeCategory,
			}, row.RatePerUnit)
		}
		return table, nil
	}
}

func (s *pricingService) ResolveRate(ctx context.Context, productType, animalType string, category domain.ServiceCategory, sizeCategory string) (pricing.Resolution, error) {
	table, err := s.cache.Snapshot(ctx)
	if err != nil {
		return pricing.Resolution{}, err
	}
	res := table.Resolve(productType, animalType, category, sizeCategory)
	if res.FallbackUsed {
		logger.Warn("fallback price used, rate table entry missing",
			"product_type", productType, "animal_type", animalType,
			"service_category", category, "size_category", sizeCategory,
			"rate", pricing.FallbackRate)
	}
	return res, nil
}

func (s *pricingService) Quote(ctx context.Context, productType, animalType string, category domain.ServiceCategory, sizeCategory string) (*PriceQuote, error) {
	res, err := s.ResolveRate(ctx, productType, animalType, category, sizeCategory)
	if err != nil {
		return nil, err
	}

	quote := &PriceQuote{
		ServiceRatePerUnit: res.Rate,
		FallbackUsed:       res.FallbackUsed,
	}
	product, err := s.productRepo.FindBySpec(ctx, productType, animalType, sizeCategory)
	if err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			// Rate quotes still work for specs without a catalog entry.
			return quote, nil
		}
		return nil, err
	}
	quote.ProductID = product.ID
	quote.Price = product.BasePrice
	return quote, nil
}

func (s *pricingService) Invalidate() {
	s.cache.Invalidate()
}
