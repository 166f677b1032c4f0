package bookv1

import (
	"fmt"
	"math"

	"github.com/muhammadchandra19/market-depth/pkg/errors"
)

// UndefPrice is the sentinel for "no price" / "level does not exist".
// It must never collide with a legitimate price.
const UndefPrice int64 = math.MaxInt64

// Action represents the kind of an MBO event.
type Action byte

const (
	// ActionAdd places a new resting order.
	ActionAdd Action = 'A'
	// ActionCancel removes a resting order.
	ActionCancel Action = 'C'
	// ActionModify changes a resting order's price, side or size.
	ActionModify Action = 'M'
	// ActionClear empties the whole book.
	ActionClear Action = 'R'
	// ActionTrade reports a trade; it does not mutate book depth.
	ActionTrade Action = 'T'
	// ActionFill reports a fill; it does not mutate book depth.
	ActionFill Action = 'F'
	// ActionNone is a no-op event.
	ActionNone Action = 'N'
)

// Side represents the side of the book an event refers to.
type Side byte

const (
	// SideBid is the buy side.
	SideBid Side = 'B'
	// SideAsk is the sell side.
	SideAsk Side = 'A'
	// SideNeutral is used by events that do not address one side, e.g. trades.
	SideNeutral Side = 'N'
)

// Event is a single order-level (MBO) event applied to the book.
type Event struct {
	Action  Action
	Side    Side
	Price   int64 // fixed-point, scale 1e-9
	Size    uint32
	OrderID uint64
}

// IsValidPrice reports whether price is a legitimate, non-sentinel value.
// Zero and negative prices are rejected; venues quoting signed prices would
// need this relaxed.
func IsValidPrice(price int64) bool {
	return price != UndefPrice && price > 0
}

// IsValidSide reports whether side is one of bid, ask or neutral.
func IsValidSide(side Side) bool {
	return side == SideBid || side == SideAsk || side == SideNeutral
}

// IsValidAction reports whether action is in the recognized set.
func IsValidAction(action Action) bool {
	switch action {
	case ActionAdd, ActionCancel, ActionModify, ActionClear, ActionTrade, ActionFill, ActionNone:
		return true
	}
	return false
}

// Validate checks the event preconditions without touching book state.
// Clear events are exempt from the price and size requirements.
func (e Event) Validate() error {
	if !IsValidAction(e.Action) {
		return errors.NewErrorDetails(
			fmt.Sprintf("unknown action %q", string(e.Action)),
			errors.UnknownActionError,
			"action",
		)
	}
	if !IsValidSide(e.Side) {
		return errors.NewErrorDetails(
			fmt.Sprintf("invalid side %q", string(e.Side)),
			errors.InvalidRecordError,
			"side",
		)
	}
	if e.Action == ActionClear {
		return nil
	}
	if !IsValidPrice(e.Price) {
		return errors.NewErrorDetails(
			fmt.Sprintf("invalid price %d", e.Price),
			errors.InvalidRecordError,
			"price",
		)
	}
	if e.Size == 0 {
		return errors.NewErrorDetails(
			"size must be positive",
			errors.InvalidRecordError,
			"size",
		)
	}
	return nil
}

// SnapshotTrigger reports whether an event of this action kind qualifies for
// depth snapshot emission once the book reports changes.
func SnapshotTrigger(action Action) bool {
	return action == ActionAdd || action == ActionCancel || action == ActionClear || action == ActionTrade
}
