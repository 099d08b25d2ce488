package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"workshop-backend/internal/domain"
	"workshop-backend/internal/pricing"
	"workshop-backend/internal/repository"
)

func TestPricingService_Quote(t *testing.T) {
	ctx := context.Background()

	t.Run("QuoteWithCatalogEntry", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		svc := fixedPricing(productRepo, new(MockServiceRateRepository), carvingTable("30.00"))

		productRepo.On("FindBySpec", ctx, "woodcraft", "elephant", "large").
			Return(&domain.Product{ID: 7, BasePrice: money("120.00")}, nil)

		quote, err := svc.Quote(ctx, "woodcraft", "elephant", domain.ServiceCategoryCarving, "large")
		assert.NoError(t, err)
		assert.Equal(t, int64(7), quote.ProductID)
		assert.True(t, quote.Price.Equal(money("120.00")))
		assert.True(t, quote.ServiceRatePerUnit.Equal(money("30.00")))
		assert.False(t, quote.FallbackUsed)
	})

	t.Run("FallbackIsFlaggedNotFatal", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		svc := fixedPricing(productRepo, new(MockServiceRateRepository), pricing.NewTable())

		productRepo.On("FindBySpec", ctx, "woodcraft", "elephant", "large").
			Return(nil, &domain.NotFoundError{Entity: "product"})

		quote, err := svc.Quote(ctx, "woodcraft", "elephant", domain.ServiceCategoryPainting, "large")
		assert.NoError(t, err)
		assert.True(t, quote.FallbackUsed)
		assert.True(t, quote.ServiceRatePerUnit.Equal(pricing.FallbackRate))
		assert.Zero(t, quote.ProductID)
	})

	t.Run("LoaderBuildsTableFromRateRows", func(t *testing.T) {
		rateRepo := new(MockServiceRateRepository)
		rateRepo.On("ListRateRows", ctx).Return([]repository.RateRow{
			{ProductType: "woodcraft", AnimalType: "elephant", SizeCategory: "large",
				ServiceCategory: domain.ServiceCategoryCarving, RatePerUnit: money("45.00")},
		}, nil)

		table, err := NewRateTableLoader(rateRepo)(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 1, table.Len())
		res := table.Resolve("woodcraft", "elephant", domain.ServiceCategoryCarving, "large")
		assert.True(t, res.Rate.Equal(money("45.00")))
	})
}
