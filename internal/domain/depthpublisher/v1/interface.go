package depthpublisherv1

import (
	"context"

	feedv1 "github.com/muhammadchandra19/market-depth/internal/domain/feed/v1"
)

// DepthPublisher defines the interface for publishing MBP depth records.
type DepthPublisher interface {
	// PublishDepth publishes one depth record to the sink topic.
	PublishDepth(ctx context.Context, record *feedv1.MBPRecord) error
	// Close closes the publisher.
	Close() error
}
