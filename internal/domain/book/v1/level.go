package bookv1

// PriceLevel represents the aggregate of all resting orders at one price on
// one side of the book. A level with zero orders is removed from its side
// immediately; it is never observable through queries.
type PriceLevel struct {
	Price     int64
	TotalSize uint64
	orders    map[uint64]uint32 // orderID -> size
}

// NewPriceLevel creates an empty level at the given price.
func NewPriceLevel(price int64) *PriceLevel {
	return &PriceLevel{
		Price:  price,
		orders: make(map[uint64]uint32),
	}
}

// AddOrder admits an order to this level and updates the total size.
func (l *PriceLevel) AddOrder(orderID uint64, size uint32) {
	l.orders[orderID] = size
	l.TotalSize += uint64(size)
}

// RemoveOrder removes an order from this level. It reports whether the order
// was present.
func (l *PriceLevel) RemoveOrder(orderID uint64) bool {
	size, ok := l.orders[orderID]
	if !ok {
		return false
	}
	l.TotalSize -= uint64(size)
	delete(l.orders, orderID)
	return true
}

// UpdateOrder replaces an order's size in place, adjusting the total by the
// delta. It reports whether the order was present.
func (l *PriceLevel) UpdateOrder(orderID uint64, size uint32) bool {
	old, ok := l.orders[orderID]
	if !ok {
		return false
	}
	l.TotalSize -= uint64(old)
	l.TotalSize += uint64(size)
	l.orders[orderID] = size
	return true
}

// OrderSize returns the resting size of an order at this level.
func (l *PriceLevel) OrderSize(orderID uint64) (uint32, bool) {
	size, ok := l.orders[orderID]
	return size, ok
}

// HasOrder reports whether the order rests at this level.
func (l *PriceLevel) HasOrder(orderID uint64) bool {
	_, ok := l.orders[orderID]
	return ok
}

// OrderCount returns the number of orders resting at this level.
func (l *PriceLevel) OrderCount() int {
	return len(l.orders)
}

// IsEmpty reports whether the level has no orders left.
func (l *PriceLevel) IsEmpty() bool {
	return len(l.orders) == 0
}

// View captures the level's aggregate state as an immutable snapshot.
func (l *PriceLevel) View() LevelView {
	return LevelView{
		Price: l.Price,
		Size:  l.TotalSize,
		Count: uint32(len(l.orders)),
	}
}

// LevelView is an immutable point-in-time snapshot of one price level,
// decoupled from the live level so it can be held after the book moves on.
type LevelView struct {
	Price int64
	Size  uint64
	Count uint32
}

// EmptyLevelView returns the sentinel view used when a side has no levels.
func EmptyLevelView() LevelView {
	return LevelView{Price: UndefPrice}
}

// IsEmpty reports whether the view is the "no level" sentinel.
func (v LevelView) IsEmpty() bool {
	return v.Price == UndefPrice
}
