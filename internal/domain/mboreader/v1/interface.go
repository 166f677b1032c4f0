package mboreaderv1

import (
	"context"

	"github.com/segmentio/kafka-go"

	feedv1 "github.com/muhammadchandra19/market-depth/internal/domain/feed/v1"
)

// MBOReader defines the interface for consuming MBO event records from a
// stream source.
type MBOReader interface {
	// ReadMessage reads one message and returns it with the parsed record.
	ReadMessage(ctx context.Context) (kafka.Message, *feedv1.MBORecord, error)
	// SetOffset sets the offset for the reader.
	SetOffset(offset int64) error
	// CommitMessages commits the messages after processing.
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	// Close closes the reader.
	Close() error
}
