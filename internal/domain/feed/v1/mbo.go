package feedv1

import (
	"fmt"
	"strconv"
	"strings"

	bookv1 "github.com/muhammadchandra19/market-depth/internal/domain/book/v1"
	"github.com/muhammadchandra19/market-depth/pkg/errors"
)

// Record flags carried by the upstream feed.
const (
	// FlagLast marks the last message in an event.
	FlagLast uint8 = 128
	// FlagTOB marks a top-of-book message.
	FlagTOB uint8 = 64
	// FlagSnapshot marks a snapshot message.
	FlagSnapshot uint8 = 32
	// FlagMBP marks an aggregated message.
	FlagMBP uint8 = 16
)

// mboFieldCount is the number of CSV columns in an MBO record.
const mboFieldCount = 15

// MBORecord is a single Market-By-Order feed record: one order-level event
// plus its transport metadata. The JSON tags cover the streaming payload
// encoding; the CSV layout is handled by ParseMBORecord.
type MBORecord struct {
	TsRecv       string        `json:"ts_recv"`
	TsEvent      string        `json:"ts_event"`
	RType        uint8         `json:"rtype"`
	PublisherID  uint16        `json:"publisher_id"`
	InstrumentID uint32        `json:"instrument_id"`
	Action       bookv1.Action `json:"action"`
	Side         bookv1.Side   `json:"side"`
	Price        int64         `json:"price"`
	Size         uint32        `json:"size"`
	ChannelID    uint8         `json:"channel_id"`
	OrderID      uint64        `json:"order_id"`
	Flags        uint8         `json:"flags"`
	TsInDelta    int32         `json:"ts_in_delta"`
	Sequence     uint32        `json:"sequence"`
	Symbol       string        `json:"symbol"`
}

// ParseMBORecord parses one CSV line into an MBO record. All rounding of
// prices to the fixed-point grid happens here; the book only ever sees exact
// integer prices.
func ParseMBORecord(line string) (*MBORecord, error) {
	fields := strings.Split(line, ",")
	if len(fields) != mboFieldCount {
		return nil, errors.NewErrorDetails(
			fmt.Sprintf("expected %d fields, got %d", mboFieldCount, len(fields)),
			errors.InvalidRecordError,
			"line",
		)
	}

	record := &MBORecord{
		TsRecv:  fields[0],
		TsEvent: fields[1],
		Symbol:  fields[14],
	}

	var err error
	if record.RType, err = parseUint8(fields[2], "rtype"); err != nil {
		return nil, err
	}
	if record.PublisherID, err = parseUint16(fields[3], "publisher_id"); err != nil {
		return nil, err
	}
	if record.InstrumentID, err = parseUint32(fields[4], "instrument_id"); err != nil {
		return nil, err
	}
	if err = record.Action.UnmarshalText([]byte(fields[5])); err != nil {
		return nil, err
	}
	if err = record.Side.UnmarshalText([]byte(fields[6])); err != nil {
		return nil, err
	}
	if record.Price, err = ParsePrice(fields[7]); err != nil {
		return nil, err
	}
	if record.Size, err = parseUint32(fields[8], "size"); err != nil {
		return nil, err
	}
	if record.ChannelID, err = parseUint8(fields[9], "channel_id"); err != nil {
		return nil, err
	}
	if record.OrderID, err = parseUint64(fields[10], "order_id"); err != nil {
		return nil, err
	}
	if record.Flags, err = parseUint8(fields[11], "flags"); err != nil {
		return nil, err
	}
	if record.TsInDelta, err = parseInt32(fields[12], "ts_in_delta"); err != nil {
		return nil, err
	}
	if record.Sequence, err = parseUint32(fields[13], "sequence"); err != nil {
		return nil, err
	}

	return record, nil
}

// Event extracts the book-level event from the record.
func (r *MBORecord) Event() bookv1.Event {
	return bookv1.Event{
		Action:  r.Action,
		Side:    r.Side,
		Price:   r.Price,
		Size:    r.Size,
		OrderID: r.OrderID,
	}
}

// AffectsBook reports whether the record's action mutates book depth.
func (r *MBORecord) AffectsBook() bool {
	switch r.Action {
	case bookv1.ActionAdd, bookv1.ActionCancel, bookv1.ActionModify, bookv1.ActionClear:
		return true
	}
	return false
}

// IsLast reports whether this is the last message in an event.
func (r *MBORecord) IsLast() bool {
	return r.Flags&FlagLast != 0
}

// IsTopOfBook reports whether this is a top-of-book message.
func (r *MBORecord) IsTopOfBook() bool {
	return r.Flags&FlagTOB != 0
}

// IsSnapshot reports whether this is a snapshot message.
func (r *MBORecord) IsSnapshot() bool {
	return r.Flags&FlagSnapshot != 0
}

// IsMBP reports whether this is an aggregated message.
func (r *MBORecord) IsMBP() bool {
	return r.Flags&FlagMBP != 0
}

func parseUint64(s, field string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, invalidField(s, field)
	}
	return v, nil
}

func parseUint32(s, field string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, invalidField(s, field)
	}
	return uint32(v), nil
}

func parseUint16(s, field string) (uint16, error) {
	v, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, invalidField(s, field)
	}
	return uint16(v), nil
}

func parseUint8(s, field string) (uint8, error) {
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, invalidField(s, field)
	}
	return uint8(v), nil
}

func parseInt32(s, field string) (int32, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, invalidField(s, field)
	}
	return int32(v), nil
}

func invalidField(value, field string) error {
	return errors.NewErrorDetails(
		fmt.Sprintf("invalid %s %q", field, value),
		errors.InvalidRecordError,
		field,
	)
}
