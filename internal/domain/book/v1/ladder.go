package bookv1

import "sort"

// ladder is one side's collection of price levels: a map keyed by exact
// integer price plus a price slice kept in best-first order. Bids are
// descending (best bid = highest price), asks ascending.
type ladder struct {
	levels     map[int64]*PriceLevel
	prices     []int64
	descending bool
}

func newLadder(descending bool) *ladder {
	return &ladder{
		levels:     make(map[int64]*PriceLevel),
		descending: descending,
	}
}

func (ld *ladder) get(price int64) (*PriceLevel, bool) {
	level, ok := ld.levels[price]
	return level, ok
}

// getOrCreate returns the level at price, creating and ordering it on demand.
func (ld *ladder) getOrCreate(price int64) *PriceLevel {
	if level, ok := ld.levels[price]; ok {
		return level
	}
	level := NewPriceLevel(price)
	ld.levels[price] = level

	idx := ld.searchIndex(price)
	ld.prices = append(ld.prices, 0)
	copy(ld.prices[idx+1:], ld.prices[idx:])
	ld.prices[idx] = price

	return level
}

// remove drops the level at price from both the map and the ordered slice.
func (ld *ladder) remove(price int64) {
	if _, ok := ld.levels[price]; !ok {
		return
	}
	delete(ld.levels, price)

	idx := ld.searchIndex(price)
	if idx < len(ld.prices) && ld.prices[idx] == price {
		ld.prices = append(ld.prices[:idx], ld.prices[idx+1:]...)
	}
}

// searchIndex returns the position of price in the best-first ordering.
func (ld *ladder) searchIndex(price int64) int {
	if ld.descending {
		return sort.Search(len(ld.prices), func(i int) bool {
			return ld.prices[i] <= price
		})
	}
	return sort.Search(len(ld.prices), func(i int) bool {
		return ld.prices[i] >= price
	})
}

// best returns the level at the top of this side, or nil when empty.
func (ld *ladder) best() *PriceLevel {
	if len(ld.prices) == 0 {
		return nil
	}
	return ld.levels[ld.prices[0]]
}

// walk visits levels best-first until the visitor returns false.
func (ld *ladder) walk(visit func(*PriceLevel) bool) {
	for _, price := range ld.prices {
		if !visit(ld.levels[price]) {
			return
		}
	}
}

func (ld *ladder) len() int {
	return len(ld.levels)
}

func (ld *ladder) reset() {
	ld.levels = make(map[int64]*PriceLevel)
	ld.prices = ld.prices[:0]
}
