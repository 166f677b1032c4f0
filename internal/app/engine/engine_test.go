package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookv1 "github.com/muhammadchandra19/market-depth/internal/domain/book/v1"
	depthpublisherv1 "github.com/muhammadchandra19/market-depth/internal/domain/depthpublisher/v1"
	feedv1 "github.com/muhammadchandra19/market-depth/internal/domain/feed/v1"
	"github.com/muhammadchandra19/market-depth/pkg/logger"
)

// fakeReader serves a fixed set of records and then blocks until the context
// is cancelled, mimicking an idle consumer.
type fakeReader struct {
	records chan *feedv1.MBORecord

	mu        sync.Mutex
	offset    int64
	committed int
	closed    bool
}

func newFakeReader(records ...*feedv1.MBORecord) *fakeReader {
	ch := make(chan *feedv1.MBORecord, len(records))
	for _, record := range records {
		ch <- record
	}
	return &fakeReader{records: ch}
}

func (f *fakeReader) ReadMessage(ctx context.Context) (kafka.Message, *feedv1.MBORecord, error) {
	select {
	case <-ctx.Done():
		return kafka.Message{}, nil, ctx.Err()
	case record := <-f.records:
		f.mu.Lock()
		f.offset++
		offset := f.offset
		f.mu.Unlock()
		return kafka.Message{Offset: offset}, record, nil
	}
}

func (f *fakeReader) SetOffset(offset int64) error {
	return nil
}

func (f *fakeReader) CommitMessages(ctx context.Context, msgs ...kafka.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.committed += len(msgs)
	return nil
}

func (f *fakeReader) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeReader) committedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.committed
}

func (f *fakeReader) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

type fakePublisher struct {
	mu        sync.Mutex
	published []*feedv1.MBPRecord
}

func (f *fakePublisher) PublishDepth(ctx context.Context, record *feedv1.MBPRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, record)
	return nil
}

func (f *fakePublisher) Close() error {
	return nil
}

func (f *fakePublisher) publishedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.published)
}

func (f *fakePublisher) record(i int) *feedv1.MBPRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.published[i]
}

func mboRecord(action bookv1.Action, side bookv1.Side, price int64, size uint32, orderID uint64) *feedv1.MBORecord {
	return &feedv1.MBORecord{
		TsRecv:       "1000",
		TsEvent:      "1000",
		RType:        160,
		PublisherID:  1,
		InstrumentID: 5482,
		Action:       action,
		Side:         side,
		Price:        price,
		Size:         size,
		OrderID:      orderID,
		Symbol:       "UST10Y",
	}
}

func newTestEngine(t *testing.T, reader *fakeReader, publisher depthpublisherv1.DepthPublisher) *Engine {
	t.Helper()
	log, err := logger.NewLogger()
	require.NoError(t, err)
	return NewEngine(reader, publisher, log, &Options{Levels: 2, Symbol: "UST10Y"})
}

func stopEngine(t *testing.T, engine *Engine) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, engine.Stop(ctx))
}

func TestEngine_PublishesQualifyingSnapshots(t *testing.T) {
	reader := newFakeReader(
		mboRecord(bookv1.ActionAdd, bookv1.SideBid, 5_510_000_000, 100, 1),
		mboRecord(bookv1.ActionModify, bookv1.SideBid, 5_510_000_000, 60, 1),
		mboRecord(bookv1.ActionTrade, bookv1.SideNeutral, 5_510_000_000, 10, 0),
		mboRecord(bookv1.ActionCancel, bookv1.SideBid, 5_510_000_000, 100, 999),
		mboRecord(bookv1.ActionCancel, bookv1.SideBid, 5_510_000_000, 60, 1),
	)
	publisher := &fakePublisher{}
	engine := newTestEngine(t, reader, publisher)

	require.NoError(t, engine.Start(context.Background()))
	require.Eventually(t, func() bool {
		return reader.committedCount() == 5
	}, 5*time.Second, 10*time.Millisecond)
	stopEngine(t, engine)

	// Add, trade-after-modify and the real cancel publish; the standalone
	// modify and the unknown-order cancel do not.
	require.Equal(t, 3, publisher.publishedCount())

	first := publisher.record(0)
	assert.Equal(t, feedv1.MBPRType, first.RType)
	assert.Equal(t, bookv1.ActionAdd, first.Action)
	require.Len(t, first.Bids, 2)
	assert.Equal(t, int64(5_510_000_000), first.Bids[0].Price)
	assert.Equal(t, uint64(100), first.Bids[0].Size)
	assert.True(t, first.Bids[1].IsEmpty())

	second := publisher.record(1)
	assert.Equal(t, bookv1.ActionTrade, second.Action)
	assert.Equal(t, uint64(60), second.Bids[0].Size)

	third := publisher.record(2)
	assert.Equal(t, bookv1.ActionCancel, third.Action)
	assert.Equal(t, uint32(1), third.Depth)
	assert.True(t, third.Bids[0].IsEmpty())

	stats := engine.BookStatistics()
	assert.Equal(t, 0, stats.TotalOrders)
}

func TestEngine_SkipsRejectedRecords(t *testing.T) {
	reader := newFakeReader(
		mboRecord(bookv1.ActionAdd, bookv1.SideBid, 5_510_000_000, 0, 1),
		mboRecord(bookv1.ActionAdd, bookv1.SideBid, 5_510_000_000, 100, 1),
	)
	publisher := &fakePublisher{}
	engine := newTestEngine(t, reader, publisher)

	require.NoError(t, engine.Start(context.Background()))
	require.Eventually(t, func() bool {
		return publisher.publishedCount() == 1
	}, 5*time.Second, 10*time.Millisecond)
	stopEngine(t, engine)

	// The zero-size add is rejected and not committed; the valid one lands.
	assert.Equal(t, 1, reader.committedCount())
	assert.Equal(t, float64(1), testutil.ToFloat64(engine.Metrics().RecordsSkipped))
	assert.Equal(t, float64(1), testutil.ToFloat64(engine.Metrics().RecordsConsumed))
	assert.Equal(t, float64(1), testutil.ToFloat64(engine.Metrics().SnapshotsPublished))
}

type failingPublisher struct {
	fakePublisher
}

func (f *failingPublisher) PublishDepth(ctx context.Context, record *feedv1.MBPRecord) error {
	return errors.New("broker unavailable")
}

func TestEngine_DoesNotCommitUnpublishedSnapshots(t *testing.T) {
	reader := newFakeReader(
		mboRecord(bookv1.ActionAdd, bookv1.SideBid, 5_510_000_000, 100, 1),
	)
	publisher := &failingPublisher{}
	engine := newTestEngine(t, reader, publisher)

	require.NoError(t, engine.Start(context.Background()))
	require.Eventually(t, func() bool {
		return testutil.ToFloat64(engine.Metrics().RecordsSkipped) == 1
	}, 5*time.Second, 10*time.Millisecond)
	stopEngine(t, engine)

	// The offset must only move once the snapshot is out; a failed publish
	// leaves the record uncommitted for redelivery.
	assert.Equal(t, 0, reader.committedCount())
	assert.Equal(t, float64(0), testutil.ToFloat64(engine.Metrics().SnapshotsPublished))
}

func TestEngine_StopClosesReader(t *testing.T) {
	reader := newFakeReader()
	publisher := &fakePublisher{}
	engine := newTestEngine(t, reader, publisher)

	require.NoError(t, engine.Start(context.Background()))
	stopEngine(t, engine)

	assert.True(t, reader.isClosed())
	assert.Equal(t, 0, publisher.publishedCount())
}

func TestMetrics_Handler(t *testing.T) {
	metrics := NewMetrics()
	assert.NotNil(t, metrics.Handler())

	metrics.RecordsConsumed.Inc()
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.RecordsConsumed))
}
