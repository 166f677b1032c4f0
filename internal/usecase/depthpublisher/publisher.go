package depthpublisher

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	feedv1 "github.com/muhammadchandra19/market-depth/internal/domain/feed/v1"
	"github.com/muhammadchandra19/market-depth/pkg/config"
	"github.com/muhammadchandra19/market-depth/pkg/errors"
	"github.com/muhammadchandra19/market-depth/pkg/logger"
)

// Publisher represents a Kafka Publisher for publishing MBP depth records.
type Publisher struct {
	kafkaWriter *kafka.Writer
	logger      logger.Interface
}

// NewPublisher creates a new Kafka publisher for MBP depth records.
func NewPublisher(cfg config.PublisherConfig, log logger.Interface) *Publisher {
	kafkaWriter := kafka.NewWriter(kafka.WriterConfig{
		Brokers: cfg.Brokers,
		Topic:   cfg.Topic,
	})

	return &Publisher{
		kafkaWriter: kafkaWriter,
		logger:      log,
	}
}

// PublishDepth publishes one depth record to the sink topic.
func (p *Publisher) PublishDepth(ctx context.Context, record *feedv1.MBPRecord) error {
	value, err := json.Marshal(record)
	if err != nil {
		return errors.NewErrorDetails(err.Error(), errors.KafkaPublishError, "")
	}

	msg := kafka.Message{
		Key:   []byte(record.Symbol),
		Value: value,
	}

	if err := p.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		p.logger.Error(errors.TracerFromError(err),
			logger.Field{Key: "operation", Value: "PublishDepth"},
			logger.Field{Key: "sequence", Value: record.Sequence},
		)
		return errors.NewErrorDetails(err.Error(), errors.KafkaPublishError, "")
	}
	return nil
}

// Close properly closes the Kafka writer.
func (p *Publisher) Close() error {
	return p.kafkaWriter.Close()
}
