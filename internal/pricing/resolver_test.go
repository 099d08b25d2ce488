package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"workshop-backend/internal/domain"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func buildTable() *Table {
	t := NewTable()
	t.Set(Key{"woodcraft", "elephant", domain.ServiceCategoryCarving, "large"}, d("45.00"))
	t.Set(Key{"woodcraft", "elephant", domain.ServiceCategoryCarving, Wildcard}, d("40.00"))
	t.Set(Key{"woodcraft", Wildcard, domain.ServiceCategoryCarving, Wildcard}, d("35.00"))
	t.Set(Key{Wildcard, Wildcard, domain.ServiceCategoryCarving, Wildcard}, d("30.00"))
	return t
}

func TestTable_Resolve(t *testing.T) {
	table := buildTable()

	t.Run("ExactMatchWinsOverWildcards", func(t *testing.T) {
		res := table.Resolve("woodcraft", "elephant", domain.ServiceCategoryCarving, "large")
		assert.True(t, res.Rate.Equal(d("45.00")), "got %s", res.Rate)
		assert.False(t, res.FallbackUsed)
		assert.Equal(t, "large", res.Matched.SizeCategory)
	})

	t.Run("SizeWildcard", func(t *testing.T) {
		res := table.Resolve("woodcraft", "elephant", domain.ServiceCategoryCarving, "small")
		assert.True(t, res.Rate.Equal(d("40.00")), "got %s", res.Rate)
		assert.False(t, res.FallbackUsed)
	})

	t.Run("AnimalWildcard", func(t *testing.T) {
		res := table.Resolve("woodcraft", "giraffe", domain.ServiceCategoryCarving, "small")
		assert.True(t, res.Rate.Equal(d("35.00")), "got %s", res.Rate)
		assert.False(t, res.FallbackUsed)
	})

	t.Run("CategoryDefault", func(t *testing.T) {
		res := table.Resolve("stonecraft", "giraffe", domain.ServiceCategoryCarving, "small")
		assert.True(t, res.Rate.Equal(d("30.00")), "got %s", res.Rate)
		assert.False(t, res.FallbackUsed)
	})

	t.Run("FallbackRateWhenNothingMatches", func(t *testing.T) {
		res := table.Resolve("woodcraft", "elephant", domain.ServiceCategoryPainting, "large")
		assert.True(t, res.Rate.Equal(FallbackRate))
		assert.True(t, res.FallbackUsed)
		assert.True(t, res.Rate.Equal(d("20.00")))
	})

	t.Run("EmptyTableAlwaysFallsBack", func(t *testing.T) {
		empty := NewTable()
		res := empty.Resolve("woodcraft", "elephant", domain.ServiceCategoryCarving, "large")
		assert.True(t, res.FallbackUsed)
		assert.True(t, res.Rate.Equal(FallbackRate))
	})

	t.Run("ResolutionIsPure", func(t *testing.T) {
		first := table.Resolve("woodcraft", "giraffe", domain.ServiceCategoryCarving, "small")
		for i := 0; i < 3; i++ {
			again := table.Resolve("woodcraft", "giraffe", domain.ServiceCategoryCarving, "small")
			assert.Equal(t, first, again)
		}
	})
}
