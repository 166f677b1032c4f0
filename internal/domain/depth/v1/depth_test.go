package depthv1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookv1 "github.com/muhammadchandra19/market-depth/internal/domain/book/v1"
)

func populateBook(t *testing.T, book *bookv1.Book) {
	t.Helper()
	events := []bookv1.Event{
		{Action: bookv1.ActionAdd, Side: bookv1.SideBid, Price: 5_500_000_000, Size: 10, OrderID: 1},
		{Action: bookv1.ActionAdd, Side: bookv1.SideBid, Price: 5_510_000_000, Size: 20, OrderID: 2},
		{Action: bookv1.ActionAdd, Side: bookv1.SideAsk, Price: 5_520_000_000, Size: 30, OrderID: 3},
	}
	for _, event := range events {
		require.NoError(t, book.Apply(event))
	}
}

func TestBuild(t *testing.T) {
	t.Run("Unfilled slots are sentinel-padded to the requested width", func(t *testing.T) {
		book := bookv1.NewBook()
		populateBook(t, book)

		depth := Build(book, 5)

		require.Len(t, depth.Bids, 5)
		require.Len(t, depth.Asks, 5)

		assert.Equal(t, Level{Price: 5_510_000_000, Size: 20, Count: 1}, depth.Bids[0])
		assert.Equal(t, Level{Price: 5_500_000_000, Size: 10, Count: 1}, depth.Bids[1])
		for _, slot := range depth.Bids[2:] {
			assert.True(t, slot.IsEmpty())
			assert.Equal(t, uint64(0), slot.Size)
			assert.Equal(t, uint32(0), slot.Count)
		}

		assert.Equal(t, Level{Price: 5_520_000_000, Size: 30, Count: 1}, depth.Asks[0])
		for _, slot := range depth.Asks[1:] {
			assert.True(t, slot.IsEmpty())
		}
	})

	t.Run("Empty book yields fully padded sides", func(t *testing.T) {
		depth := Build(bookv1.NewBook(), 3)

		require.Len(t, depth.Bids, 3)
		require.Len(t, depth.Asks, 3)
		for i := 0; i < 3; i++ {
			assert.True(t, depth.Bids[i].IsEmpty())
			assert.True(t, depth.Asks[i].IsEmpty())
		}
	})

	t.Run("Book deeper than n is truncated to the best levels", func(t *testing.T) {
		book := bookv1.NewBook()
		populateBook(t, book)

		depth := Build(book, 1)

		require.Len(t, depth.Bids, 1)
		assert.Equal(t, int64(5_510_000_000), depth.Bids[0].Price)
		require.Len(t, depth.Asks, 1)
		assert.Equal(t, int64(5_520_000_000), depth.Asks[0].Price)
	})
}
