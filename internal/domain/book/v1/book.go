package bookv1

import (
	"fmt"

	"github.com/muhammadchandra19/market-depth/pkg/errors"
)

// orderLocation records where an order currently rests. The index stores only
// keys into the ladders, never references, so levels stay exclusively owned
// by their side.
type orderLocation struct {
	side  Side
	price int64
}

// Book is the live order book state for one instrument stream: two
// independently ordered sides, an order index for O(1) lookup, and a dirty
// flag tracking whether visible depth changed since the last snapshot.
//
// The book has no internal locking. Apply is the only mutator; queries are
// safe between Apply calls but must not run concurrently with one.
type Book struct {
	bids       *ladder
	asks       *ladder
	orders     map[uint64]orderLocation
	hasChanges bool
}

// NewBook creates an empty book.
func NewBook() *Book {
	return &Book{
		bids:   newLadder(true),
		asks:   newLadder(false),
		orders: make(map[uint64]orderLocation),
	}
}

// Apply applies one MBO event to the book. Precondition violations and
// duplicate adds fail before any mutation, leaving the book exactly as it
// was. Trade, Fill and None events do not mutate state and do not set the
// dirty flag.
func (b *Book) Apply(event Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	switch event.Action {
	case ActionAdd:
		return b.addOrder(event)
	case ActionCancel:
		b.cancelOrder(event.OrderID)
		return nil
	case ActionModify:
		return b.modifyOrder(event)
	case ActionClear:
		b.Clear()
		return nil
	case ActionTrade, ActionFill, ActionNone:
		// Informational relative to book depth; nothing to do.
		return nil
	}

	return errors.NewErrorDetails(
		fmt.Sprintf("unknown action %q", string(event.Action)),
		errors.UnknownActionError,
		"action",
	)
}

func (b *Book) addOrder(event Event) error {
	if _, exists := b.orders[event.OrderID]; exists {
		return errors.NewErrorDetails(
			fmt.Sprintf("order %d already exists", event.OrderID),
			errors.DuplicateOrderError,
			"order_id",
		)
	}

	side, err := b.sideLadder(event.Side)
	if err != nil {
		return err
	}

	level := side.getOrCreate(event.Price)
	level.AddOrder(event.OrderID, event.Size)
	b.orders[event.OrderID] = orderLocation{side: event.Side, price: event.Price}

	b.markChanged()
	return nil
}

// cancelOrder removes a resting order. An unknown order identifier is a
// silent no-op: upstream feeds may have already consumed the removal.
func (b *Book) cancelOrder(orderID uint64) {
	location, ok := b.orders[orderID]
	if !ok {
		return
	}

	side, _ := b.sideLadder(location.side)
	if level, exists := side.get(location.price); exists {
		level.RemoveOrder(orderID)
		if level.IsEmpty() {
			side.remove(location.price)
		}
	}
	delete(b.orders, orderID)

	b.markChanged()
}

// modifyOrder updates a resting order. An unknown order identifier is
// treated as an add, self-healing late-arriving adds. A changed price or
// side moves the order between levels; otherwise only the size is adjusted.
func (b *Book) modifyOrder(event Event) error {
	location, ok := b.orders[event.OrderID]
	if !ok {
		return b.addOrder(event)
	}

	newSide, err := b.sideLadder(event.Side)
	if err != nil {
		return err
	}

	if location.side == event.Side && location.price == event.Price {
		if level, exists := newSide.get(location.price); exists {
			level.UpdateOrder(event.OrderID, event.Size)
		}
		b.markChanged()
		return nil
	}

	oldSide, _ := b.sideLadder(location.side)
	if level, exists := oldSide.get(location.price); exists {
		level.RemoveOrder(event.OrderID)
		if level.IsEmpty() {
			oldSide.remove(location.price)
		}
	}

	level := newSide.getOrCreate(event.Price)
	level.AddOrder(event.OrderID, event.Size)
	b.orders[event.OrderID] = orderLocation{side: event.Side, price: event.Price}

	b.markChanged()
	return nil
}

// Clear empties both sides and the order index unconditionally.
func (b *Book) Clear() {
	b.bids.reset()
	b.asks.reset()
	b.orders = make(map[uint64]orderLocation)
	b.markChanged()
}

// TopLevels returns up to n level views for the requested side in best-first
// order. Empty levels are skipped defensively; they should never exist.
func (b *Book) TopLevels(side Side, n int) []LevelView {
	ld, err := b.sideLadder(side)
	if err != nil || n <= 0 {
		return nil
	}

	views := make([]LevelView, 0, n)
	ld.walk(func(level *PriceLevel) bool {
		if level.IsEmpty() {
			return true
		}
		views = append(views, level.View())
		return len(views) < n
	})
	return views
}

// BestBidAsk returns the best level view per side, or the sentinel view for
// an empty side.
func (b *Book) BestBidAsk() (bid, ask LevelView) {
	bid, ask = EmptyLevelView(), EmptyLevelView()
	if level := b.bids.best(); level != nil {
		bid = level.View()
	}
	if level := b.asks.best(); level != nil {
		ask = level.View()
	}
	return bid, ask
}

// Statistics summarizes book state for observability.
type Statistics struct {
	BidLevels   int
	AskLevels   int
	TotalOrders int
	BestBid     int64
	BestAsk     int64
}

// Statistics returns level counts per side, total tracked orders and the
// best prices. Empty sides report the sentinel price.
func (b *Book) Statistics() Statistics {
	stats := Statistics{
		BidLevels:   b.bids.len(),
		AskLevels:   b.asks.len(),
		TotalOrders: len(b.orders),
		BestBid:     UndefPrice,
		BestAsk:     UndefPrice,
	}
	if level := b.bids.best(); level != nil {
		stats.BestBid = level.Price
	}
	if level := b.asks.best(); level != nil {
		stats.BestAsk = level.Price
	}
	return stats
}

// HasChanges reports whether visible depth changed since the last reset.
// Reading does not clear the flag.
func (b *Book) HasChanges() bool {
	return b.hasChanges
}

// ResetChanges clears the dirty flag after a snapshot has been emitted.
func (b *Book) ResetChanges() {
	b.hasChanges = false
}

// OrderCount returns the number of orders currently tracked by the index.
func (b *Book) OrderCount() int {
	return len(b.orders)
}

func (b *Book) markChanged() {
	b.hasChanges = true
}

func (b *Book) sideLadder(side Side) (*ladder, error) {
	switch side {
	case SideBid:
		return b.bids, nil
	case SideAsk:
		return b.asks, nil
	}
	return nil, errors.NewErrorDetails(
		fmt.Sprintf("side %q cannot hold orders", string(side)),
		errors.InvalidRecordError,
		"side",
	)
}
