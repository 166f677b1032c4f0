package mboreader

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	feedv1 "github.com/muhammadchandra19/market-depth/internal/domain/feed/v1"
	"github.com/muhammadchandra19/market-depth/pkg/config"
	"github.com/muhammadchandra19/market-depth/pkg/errors"
	"github.com/muhammadchandra19/market-depth/pkg/logger"
)

// Reader represents a Kafka Reader for consuming MBO event records.
type Reader struct {
	kafkaReader *kafka.Reader
	logger      logger.Interface
}

// NewReader creates a new Kafka reader for consuming MBO records.
// It returns an implementation of the MBOReader interface.
func NewReader(cfg config.KafkaConfig, log logger.Interface) *Reader {
	kafkaReader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		Topic:       cfg.Topic,
		GroupID:     cfg.GroupID,
		MinBytes:    1,
		MaxBytes:    10 << 20,
		StartOffset: kafka.LastOffset,
	})

	return &Reader{
		kafkaReader: kafkaReader,
		logger:      log,
	}
}

// ReadMessage fetches a message from the topic and parses it as an MBO
// record. It fetches without committing: the offset moves only through an
// explicit CommitMessages call after the record has been processed, so a
// crash mid-processing replays the record instead of dropping it.
func (r *Reader) ReadMessage(ctx context.Context) (kafka.Message, *feedv1.MBORecord, error) {
	msg, err := r.kafkaReader.FetchMessage(ctx)
	if err != nil {
		r.logError(errors.TracerFromError(err), "FetchMessage")
		return kafka.Message{}, nil, errors.NewErrorDetails(err.Error(), errors.KafkaReadError, "")
	}

	var record feedv1.MBORecord
	if err := json.Unmarshal(msg.Value, &record); err != nil {
		r.logError(err, "UnmarshalRecord")
		return msg, nil, errors.NewErrorDetails(err.Error(), errors.InvalidRecordError, "")
	}

	return msg, &record, nil
}

// SetOffset sets the offset for the Kafka reader.
func (r *Reader) SetOffset(offset int64) error {
	if err := r.kafkaReader.SetOffset(offset); err != nil {
		r.logError(err, "SetOffset")
		return err
	}
	return nil
}

// CommitMessages commits the messages to Kafka after processing.
func (r *Reader) CommitMessages(ctx context.Context, msgs ...kafka.Message) error {
	if err := r.kafkaReader.CommitMessages(ctx, msgs...); err != nil {
		r.logError(err, "CommitMessages")
		return err
	}
	return nil
}

// Close properly closes the Kafka reader.
func (r *Reader) Close() error {
	if err := r.kafkaReader.Close(); err != nil {
		r.logError(err, "Close")
		return err
	}
	return nil
}

// logError is a helper method to log errors consistently.
func (r *Reader) logError(err error, operation string) {
	r.logger.Error(err,
		logger.Field{Key: "operation", Value: operation},
	)
}
