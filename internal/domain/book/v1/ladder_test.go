package bookv1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectPrices(ld *ladder) []int64 {
	var prices []int64
	ld.walk(func(level *PriceLevel) bool {
		prices = append(prices, level.Price)
		return true
	})
	return prices
}

func TestLadder_Ordering(t *testing.T) {
	t.Run("Descending ladder keeps highest price first", func(t *testing.T) {
		ld := newLadder(true)
		for _, price := range []int64{100, 300, 200, 50, 250} {
			ld.getOrCreate(price)
		}

		assert.Equal(t, []int64{300, 250, 200, 100, 50}, collectPrices(ld))
		assert.Equal(t, int64(300), ld.best().Price)
	})

	t.Run("Ascending ladder keeps lowest price first", func(t *testing.T) {
		ld := newLadder(false)
		for _, price := range []int64{100, 300, 200, 50, 250} {
			ld.getOrCreate(price)
		}

		assert.Equal(t, []int64{50, 100, 200, 250, 300}, collectPrices(ld))
		assert.Equal(t, int64(50), ld.best().Price)
	})
}

func TestLadder_GetOrCreate(t *testing.T) {
	ld := newLadder(true)

	first := ld.getOrCreate(100)
	second := ld.getOrCreate(100)

	assert.Same(t, first, second)
	assert.Equal(t, 1, ld.len())
}

func TestLadder_Remove(t *testing.T) {
	ld := newLadder(true)
	for _, price := range []int64{100, 200, 300} {
		ld.getOrCreate(price)
	}

	t.Run("Remove middle level", func(t *testing.T) {
		ld.remove(200)

		assert.Equal(t, []int64{300, 100}, collectPrices(ld))
		_, ok := ld.get(200)
		assert.False(t, ok)
	})

	t.Run("Remove unknown price is a no-op", func(t *testing.T) {
		ld.remove(999)

		assert.Equal(t, 2, ld.len())
	})

	t.Run("Remove best promotes the next level", func(t *testing.T) {
		ld.remove(300)

		require.NotNil(t, ld.best())
		assert.Equal(t, int64(100), ld.best().Price)
	})
}

func TestLadder_Walk(t *testing.T) {
	ld := newLadder(false)
	for _, price := range []int64{10, 20, 30, 40} {
		ld.getOrCreate(price)
	}

	var visited []int64
	ld.walk(func(level *PriceLevel) bool {
		visited = append(visited, level.Price)
		return len(visited) < 2
	})

	assert.Equal(t, []int64{10, 20}, visited)
}

func TestLadder_Reset(t *testing.T) {
	ld := newLadder(true)
	ld.getOrCreate(100)
	ld.getOrCreate(200)

	ld.reset()

	assert.Equal(t, 0, ld.len())
	assert.Nil(t, ld.best())
	assert.Empty(t, collectPrices(ld))
}
