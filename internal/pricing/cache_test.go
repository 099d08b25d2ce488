package pricing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache_Snapshot(t *testing.T) {
	ctx := context.Background()

	t.Run("ServesCachedTableWithinTTL", func(t *testing.T) {
		loads := 0
		c := NewCache(time.Minute, func(ctx context.Context) (*Table, error) {
			loads++
			return NewTable(), nil
		})

		_, err := c.Snapshot(ctx)
		assert.NoError(t, err)
		_, err = c.Snapshot(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 1, loads)
	})

	t.Run("ReloadsAfterTTL", func(t *testing.T) {
		loads := 0
		c := NewCache(time.Minute, func(ctx context.Context) (*Table, error) {
			loads++
			return NewTable(), nil
		})
		current := time.Now()
		c.now = func() time.Time { return current }

		_, err := c.Snapshot(ctx)
		assert.NoError(t, err)

		current = current.Add(2 * time.Minute)
		_, err = c.Snapshot(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 2, loads)
	})

	t.Run("ServesStaleSnapshotOnReloadFailure", func(t *testing.T) {
		loads := 0
		c := NewCache(time.Minute, func(ctx context.Context) (*Table, error) {
			loads++
			if loads > 1 {
				return nil, errors.New("db down")
			}
			return NewTable(), nil
		})
		current := time.Now()
		c.now = func() time.Time { return current }

		table, err := c.Snapshot(ctx)
		assert.NoError(t, err)

		current = current.Add(2 * time.Minute)
		stale, err := c.Snapshot(ctx)
		assert.NoError(t, err)
		assert.Same(t, table, stale)
	})

	t.Run("ColdCachePropagatesError", func(t *testing.T) {
		c := NewCache(time.Minute, func(ctx context.Context) (*Table, error) {
			return nil, errors.New("db down")
		})
		_, err := c.Snapshot(ctx)
		assert.Error(t, err)
	})

	t.Run("InvalidateForcesReload", func(t *testing.T) {
		loads := 0
		c := NewCache(time.Hour, func(ctx context.Context) (*Table, error) {
			loads++
			return NewTable(), nil
		})

		_, err := c.Snapshot(ctx)
		assert.NoError(t, err)
		c.Invalidate()
		_, err = c.Snapshot(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 2, loads)
	})
}
