package bookv1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPriceLevel(t *testing.T) {
	level := NewPriceLevel(5_510_000_000)

	assert.NotNil(t, level)
	assert.Equal(t, int64(5_510_000_000), level.Price)
	assert.Equal(t, uint64(0), level.TotalSize)
	assert.Equal(t, 0, level.OrderCount())
	assert.True(t, level.IsEmpty())
}

func TestPriceLevel_AddOrder(t *testing.T) {
	level := NewPriceLevel(5_510_000_000)

	level.AddOrder(1, 100)
	level.AddOrder(2, 50)

	assert.Equal(t, uint64(150), level.TotalSize)
	assert.Equal(t, 2, level.OrderCount())
	assert.True(t, level.HasOrder(1))
	assert.True(t, level.HasOrder(2))
	assert.False(t, level.IsEmpty())
}

func TestPriceLevel_RemoveOrder(t *testing.T) {
	level := NewPriceLevel(5_510_000_000)
	level.AddOrder(1, 100)
	level.AddOrder(2, 50)

	t.Run("Remove existing order", func(t *testing.T) {
		removed := level.RemoveOrder(1)

		assert.True(t, removed)
		assert.Equal(t, uint64(50), level.TotalSize)
		assert.Equal(t, 1, level.OrderCount())
		assert.False(t, level.HasOrder(1))
	})

	t.Run("Remove unknown order", func(t *testing.T) {
		removed := level.RemoveOrder(99)

		assert.False(t, removed)
		assert.Equal(t, uint64(50), level.TotalSize)
		assert.Equal(t, 1, level.OrderCount())
	})

	t.Run("Removing the last order empties the level", func(t *testing.T) {
		removed := level.RemoveOrder(2)

		assert.True(t, removed)
		assert.Equal(t, uint64(0), level.TotalSize)
		assert.True(t, level.IsEmpty())
	})
}

func TestPriceLevel_UpdateOrder(t *testing.T) {
	level := NewPriceLevel(5_510_000_000)
	level.AddOrder(1, 100)
	level.AddOrder(2, 50)

	t.Run("Shrink order size", func(t *testing.T) {
		updated := level.UpdateOrder(1, 30)

		assert.True(t, updated)
		assert.Equal(t, uint64(80), level.TotalSize)

		size, ok := level.OrderSize(1)
		require.True(t, ok)
		assert.Equal(t, uint32(30), size)
	})

	t.Run("Grow order size", func(t *testing.T) {
		updated := level.UpdateOrder(2, 120)

		assert.True(t, updated)
		assert.Equal(t, uint64(150), level.TotalSize)
	})

	t.Run("Update unknown order", func(t *testing.T) {
		updated := level.UpdateOrder(99, 10)

		assert.False(t, updated)
		assert.Equal(t, uint64(150), level.TotalSize)
		assert.Equal(t, 2, level.OrderCount())
	})
}

func TestPriceLevel_View(t *testing.T) {
	level := NewPriceLevel(5_510_000_000)
	level.AddOrder(1, 100)
	level.AddOrder(2, 50)

	view := level.View()

	assert.Equal(t, int64(5_510_000_000), view.Price)
	assert.Equal(t, uint64(150), view.Size)
	assert.Equal(t, uint32(2), view.Count)
	assert.False(t, view.IsEmpty())

	// The view is detached from the live level.
	level.RemoveOrder(1)
	assert.Equal(t, uint64(150), view.Size)
}

func TestEmptyLevelView(t *testing.T) {
	view := EmptyLevelView()

	assert.Equal(t, UndefPrice, view.Price)
	assert.Equal(t, uint64(0), view.Size)
	assert.Equal(t, uint32(0), view.Count)
	assert.True(t, view.IsEmpty())
}
