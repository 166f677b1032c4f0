package engine

import (
	"context"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	bookv1 "github.com/muhammadchandra19/market-depth/internal/domain/book/v1"
	depthv1 "github.com/muhammadchandra19/market-depth/internal/domain/depth/v1"
	depthpublisherv1 "github.com/muhammadchandra19/market-depth/internal/domain/depthpublisher/v1"
	feedv1 "github.com/muhammadchandra19/market-depth/internal/domain/feed/v1"
	mboreaderv1 "github.com/muhammadchandra19/market-depth/internal/domain/mboreader/v1"
	"github.com/muhammadchandra19/market-depth/pkg/logger"
)

// Engine is the streaming pipeline: it consumes MBO event records, applies
// them to the book and publishes MBP depth snapshots under the same emission
// rule as the file converter.
type Engine struct {
	book      *bookv1.Book
	reader    mboreaderv1.MBOReader
	publisher depthpublisherv1.DepthPublisher
	logger    *logger.Logger
	metrics   *Metrics
	opts      *Options

	runID string

	// Shutdown coordination
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewEngine creates a new instance of Engine with the provided dependencies.
func NewEngine(
	reader mboreaderv1.MBOReader,
	publisher depthpublisherv1.DepthPublisher,
	log *logger.Logger,
	opts *Options,
) *Engine {
	if opts == nil {
		opts = DefaultEngineOptions()
	}
	return &Engine{
		book:      bookv1.NewBook(),
		reader:    reader,
		publisher: publisher,
		logger:    log,
		metrics:   NewMetrics(),
		opts:      opts,
		runID:     ulid.Make().String(),
	}
}

// Metrics returns the engine's metrics for serving.
func (e *Engine) Metrics() *Metrics {
	return e.metrics
}

// Start launches the event processing loop.
func (e *Engine) Start(ctx context.Context) error {
	e.ctx, e.cancel = context.WithCancel(ctx)

	e.wg.Add(1)
	go e.runEventProcessor()

	e.logger.Info("Depth engine started",
		logger.Field{Key: "runID", Value: e.runID},
		logger.Field{Key: "symbol", Value: e.opts.Symbol},
		logger.Field{Key: "levels", Value: e.opts.Levels},
	)

	return nil
}

// Stop gracefully shuts down the engine.
func (e *Engine) Stop(ctx context.Context) error {
	if e.cancel != nil {
		e.cancel()
	}

	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		e.logger.Info("Depth engine stopped gracefully",
			logger.Field{Key: "runID", Value: e.runID},
		)
		return nil
	case <-ctx.Done():
		e.logger.Warn("Engine stop timeout exceeded")
		return ctx.Err()
	}
}

// runEventProcessor reads and applies events in a single goroutine; the book
// has no internal locking and relies on this single-writer discipline.
func (e *Engine) runEventProcessor() {
	defer e.wg.Done()

	e.logger.Info("Starting event processor",
		logger.Field{Key: "symbol", Value: e.opts.Symbol},
	)

	for {
		select {
		case <-e.ctx.Done():
			e.logger.Info("Event processor shutting down")
			e.reader.Close()
			return
		default:
			msg, record, err := e.reader.ReadMessage(e.ctx)
			if err != nil {
				if e.ctx.Err() != nil {
					continue
				}
				e.metrics.RecordsSkipped.Inc()
				// Simple backoff
				time.Sleep(100 * time.Millisecond)
				continue
			}

			if err := e.processRecord(record); err != nil {
				e.metrics.RecordsSkipped.Inc()
				e.logger.Error(err,
					logger.Field{Key: "action", Value: "process_record"},
					logger.Field{Key: "offset", Value: msg.Offset},
				)
				continue
			}

			if err := e.reader.CommitMessages(e.ctx, msg); err != nil {
				e.logger.Error(err,
					logger.Field{Key: "action", Value: "commit_record"},
				)
			}
		}
	}
}

// processRecord applies one record and publishes a depth snapshot when the
// event qualifies. The dirty flag is reset after each publication.
func (e *Engine) processRecord(record *feedv1.MBORecord) error {
	if err := e.book.Apply(record.Event()); err != nil {
		return err
	}
	e.metrics.RecordsConsumed.Inc()

	if !bookv1.SnapshotTrigger(record.Action) {
		return nil
	}
	if !e.book.HasChanges() && record.Action != bookv1.ActionClear {
		return nil
	}

	mbp := feedv1.NewMBPRecord(record, depthv1.Build(e.book, e.opts.Levels))
	if err := e.publisher.PublishDepth(e.ctx, mbp); err != nil {
		return err
	}
	e.metrics.SnapshotsPublished.Inc()
	e.book.ResetChanges()

	return nil
}

// BookStatistics returns the current book statistics.
func (e *Engine) BookStatistics() bookv1.Statistics {
	return e.book.Statistics()
}
