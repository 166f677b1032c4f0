package feedv1

import (
	"fmt"
	"strconv"
	"strings"

	bookv1 "github.com/muhammadchandra19/market-depth/internal/domain/book/v1"
	depthv1 "github.com/muhammadchandra19/market-depth/internal/domain/depth/v1"
	"github.com/muhammadchandra19/market-depth/pkg/errors"
)

// MBPRType is the record type identifier for aggregated depth records.
const MBPRType uint8 = 10

// MBPRecord is a single Market-By-Price output record: the triggering
// event's echoed metadata plus a fixed-width top-N depth view per side.
type MBPRecord struct {
	TsRecv       string          `json:"ts_recv"`
	TsEvent      string          `json:"ts_event"`
	RType        uint8           `json:"rtype"`
	PublisherID  uint16          `json:"publisher_id"`
	InstrumentID uint32          `json:"instrument_id"`
	Action       bookv1.Action   `json:"action"`
	Side         bookv1.Side     `json:"side"`
	Depth        uint32          `json:"depth"`
	Price        int64           `json:"price"`
	Size         uint32          `json:"size"`
	Flags        uint8           `json:"flags"`
	TsInDelta    int32           `json:"ts_in_delta"`
	Sequence     uint32          `json:"sequence"`
	Bids         []depthv1.Level `json:"bids"`
	Asks         []depthv1.Level `json:"asks"`
	Symbol       string          `json:"symbol"`
	OrderID      uint64          `json:"order_id"`
}

// NewMBPRecord builds an output record from the triggering MBO record and a
// padded depth view.
func NewMBPRecord(mbo *MBORecord, depth depthv1.Depth) *MBPRecord {
	record := &MBPRecord{
		TsRecv:       mbo.TsRecv,
		TsEvent:      mbo.TsEvent,
		RType:        MBPRType,
		PublisherID:  mbo.PublisherID,
		InstrumentID: mbo.InstrumentID,
		Action:       mbo.Action,
		Side:         mbo.Side,
		Price:        mbo.Price,
		Size:         mbo.Size,
		Flags:        mbo.Flags,
		TsInDelta:    mbo.TsInDelta,
		Sequence:     mbo.Sequence,
		Bids:         depth.Bids,
		Asks:         depth.Asks,
		Symbol:       mbo.Symbol,
		OrderID:      mbo.OrderID,
	}

	// Cancel records carry depth 1 in the upstream MBP scheme.
	if mbo.Action == bookv1.ActionCancel {
		record.Depth = 1
	}

	return record
}

// Levels returns the number of depth slots per side.
func (r *MBPRecord) Levels() int {
	return len(r.Bids)
}

// MarshalCSV renders the record as one CSV line, prefixed with the running
// output index. Bid and ask slots are interleaved per level.
func (r *MBPRecord) MarshalCSV(index uint64) string {
	var sb strings.Builder

	sb.WriteString(strconv.FormatUint(index, 10))
	sb.WriteByte(',')
	sb.WriteString(r.TsRecv)
	sb.WriteByte(',')
	sb.WriteString(r.TsEvent)
	sb.WriteByte(',')
	sb.WriteString(strconv.FormatUint(uint64(r.RType), 10))
	sb.WriteByte(',')
	sb.WriteString(strconv.FormatUint(uint64(r.PublisherID), 10))
	sb.WriteByte(',')
	sb.WriteString(strconv.FormatUint(uint64(r.InstrumentID), 10))
	sb.WriteByte(',')
	sb.WriteString(r.Action.String())
	sb.WriteByte(',')
	sb.WriteString(r.Side.String())
	sb.WriteByte(',')
	sb.WriteString(strconv.FormatUint(uint64(r.Depth), 10))
	sb.WriteByte(',')
	sb.WriteString(FormatPrice(r.Price))
	sb.WriteByte(',')
	sb.WriteString(strconv.FormatUint(uint64(r.Size), 10))
	sb.WriteByte(',')
	sb.WriteString(strconv.FormatUint(uint64(r.Flags), 10))
	sb.WriteByte(',')
	sb.WriteString(strconv.FormatInt(int64(r.TsInDelta), 10))
	sb.WriteByte(',')
	sb.WriteString(strconv.FormatUint(uint64(r.Sequence), 10))
	sb.WriteByte(',')

	for i := range r.Bids {
		writeLevel(&sb, r.Bids[i])
		writeLevel(&sb, r.Asks[i])
	}

	sb.WriteString(r.Symbol)
	sb.WriteByte(',')
	sb.WriteString(strconv.FormatUint(r.OrderID, 10))

	return sb.String()
}

func writeLevel(sb *strings.Builder, level depthv1.Level) {
	sb.WriteString(FormatPrice(level.Price))
	sb.WriteByte(',')
	sb.WriteString(strconv.FormatUint(level.Size, 10))
	sb.WriteByte(',')
	sb.WriteString(strconv.FormatUint(uint64(level.Count), 10))
	sb.WriteByte(',')
}

// MBPHeader renders the CSV header row for an n-level output file. Level
// columns use zero-padded two-digit suffixes, bid and ask interleaved.
func MBPHeader(n int) string {
	var sb strings.Builder

	sb.WriteString(",ts_recv,ts_event,rtype,publisher_id,instrument_id,action,side,depth,price,size,flags,ts_in_delta,sequence")
	for i := 0; i < n; i++ {
		sb.WriteString(fmt.Sprintf(",bid_px_%02d,bid_sz_%02d,bid_ct_%02d", i, i, i))
		sb.WriteString(fmt.Sprintf(",ask_px_%02d,ask_sz_%02d,ask_ct_%02d", i, i, i))
	}
	sb.WriteString(",symbol,order_id")

	return sb.String()
}

// Validate checks the output record before it is written: the record type,
// action and side must be valid and no slot may carry a real price with a
// zero size or count.
func (r *MBPRecord) Validate() error {
	if r.RType != MBPRType {
		return errors.NewErrorDetails(
			fmt.Sprintf("invalid MBP record type %d", r.RType),
			errors.InvalidRecordError,
			"rtype",
		)
	}
	if !bookv1.IsValidAction(r.Action) {
		return errors.NewErrorDetails(
			fmt.Sprintf("invalid action %q in MBP record", r.Action.String()),
			errors.InvalidRecordError,
			"action",
		)
	}
	if !bookv1.IsValidSide(r.Side) {
		return errors.NewErrorDetails(
			fmt.Sprintf("invalid side %q in MBP record", r.Side.String()),
			errors.InvalidRecordError,
			"side",
		)
	}
	if err := validateSlots(r.Bids, "bid"); err != nil {
		return err
	}
	return validateSlots(r.Asks, "ask")
}

func validateSlots(slots []depthv1.Level, side string) error {
	for i, slot := range slots {
		if slot.IsEmpty() {
			continue
		}
		if slot.Size == 0 || slot.Count == 0 {
			return errors.NewErrorDetails(
				fmt.Sprintf("%s level %d has a price but zero size or count", side, i),
				errors.InvalidRecordError,
				fmt.Sprintf("%s_%02d", side, i),
			)
		}
	}
	return nil
}
