package depthv1

import (
	bookv1 "github.com/muhammadchandra19/market-depth/internal/domain/book/v1"
)

// DefaultLevels is the standard number of levels per side in an MBP view.
const DefaultLevels = 10

// Level is one fixed-width slot in a depth view.
type Level struct {
	Price int64  `json:"price"`
	Size  uint64 `json:"size"`
	Count uint32 `json:"count"`
}

// IsEmpty reports whether the slot is sentinel-padded.
func (l Level) IsEmpty() bool {
	return l.Price == bookv1.UndefPrice
}

// Depth is a constant-width top-N view of both sides: exactly n slots per
// side regardless of current book depth, unfilled slots padded with the
// sentinel price, zero size and zero count. Downstream consumers rely on the
// fixed width.
type Depth struct {
	Bids []Level `json:"bids"`
	Asks []Level `json:"asks"`
}

// Build captures the top n levels per side of the book into a padded,
// fixed-width depth view.
func Build(book *bookv1.Book, n int) Depth {
	return Depth{
		Bids: buildSide(book, bookv1.SideBid, n),
		Asks: buildSide(book, bookv1.SideAsk, n),
	}
}

func buildSide(book *bookv1.Book, side bookv1.Side, n int) []Level {
	slots := make([]Level, n)
	for i := range slots {
		slots[i] = Level{Price: bookv1.UndefPrice}
	}
	for i, view := range book.TopLevels(side, n) {
		slots[i] = Level{
			Price: view.Price,
			Size:  view.Size,
			Count: view.Count,
		}
	}
	return slots
}
