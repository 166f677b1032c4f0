package converter

import (
	"bufio"
	"context"
	"io"
	"time"

	bookv1 "github.com/muhammadchandra19/market-depth/internal/domain/book/v1"
	depthv1 "github.com/muhammadchandra19/market-depth/internal/domain/depth/v1"
	feedv1 "github.com/muhammadchandra19/market-depth/internal/domain/feed/v1"
	"github.com/muhammadchandra19/market-depth/pkg/errors"
	"github.com/muhammadchandra19/market-depth/pkg/logger"
)

// outputBufferSize is the size of the buffered output writer.
const outputBufferSize = 64 * 1024

// Options represents configuration options for the Converter.
type Options struct {
	// Levels is the number of depth slots per side in the output.
	Levels int
	// ValidateOutput enables validation of every MBP record before writing.
	ValidateOutput bool
}

// DefaultOptions returns the default converter options.
func DefaultOptions() *Options {
	return &Options{
		Levels:         depthv1.DefaultLevels,
		ValidateOutput: true,
	}
}

// Stats summarizes one conversion run.
type Stats struct {
	RecordsProcessed uint64
	SnapshotsEmitted uint64
	RecordsSkipped   uint64
	Elapsed          time.Duration
	RecordsPerSec    float64
}

// Converter rebuilds the aggregated depth view from an MBO record stream and
// writes one MBP record per qualifying event. Malformed or rejected records
// are logged and skipped; the stream always continues.
type Converter struct {
	book    *bookv1.Book
	logger  logger.Interface
	opts    *Options
	stats   Stats
	emitted uint64
}

// New creates a Converter with the given options.
func New(log logger.Interface, opts *Options) *Converter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Converter{
		book:   bookv1.NewBook(),
		logger: log,
		opts:   opts,
	}
}

// Run reads MBO CSV records from in, applies them to the book and writes MBP
// CSV records to out. The first input line is the feed header and is
// skipped. Run returns the stats for the completed run.
func (c *Converter) Run(ctx context.Context, in io.Reader, out io.Writer) (*Stats, error) {
	start := time.Now()

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, outputBufferSize), 1024*1024)

	writer := bufio.NewWriterSize(out, outputBufferSize)
	if _, err := writer.WriteString(feedv1.MBPHeader(c.opts.Levels) + "\n"); err != nil {
		return nil, errors.NewTracer("writing MBP header").Wrap(err)
	}

	header := true
	line := uint64(0)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if header {
			header = false
			continue
		}
		line++

		record, err := feedv1.ParseMBORecord(scanner.Text())
		if err != nil {
			c.skip(err, line)
			continue
		}

		if err := c.process(record, writer); err != nil {
			c.skip(err, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.NewTracer("reading MBO stream").Wrap(err)
	}

	if err := writer.Flush(); err != nil {
		return nil, errors.NewTracer("flushing MBP output").Wrap(err)
	}

	c.stats.Elapsed = time.Since(start)
	if c.stats.Elapsed > 0 {
		c.stats.RecordsPerSec = float64(c.stats.RecordsProcessed) / c.stats.Elapsed.Seconds()
	}

	stats := c.stats
	return &stats, nil
}

// process applies one record and emits an MBP record when the event
// qualifies: its action is Add, Cancel, Clear or Trade and visible depth
// changed. Clear always forces exactly one emission, and the dirty flag is
// reset after every emission.
func (c *Converter) process(record *feedv1.MBORecord, writer *bufio.Writer) error {
	if err := c.book.Apply(record.Event()); err != nil {
		return err
	}
	c.stats.RecordsProcessed++

	if !bookv1.SnapshotTrigger(record.Action) {
		return nil
	}
	if !c.book.HasChanges() && record.Action != bookv1.ActionClear {
		return nil
	}

	mbp := feedv1.NewMBPRecord(record, depthv1.Build(c.book, c.opts.Levels))
	if c.opts.ValidateOutput {
		if err := mbp.Validate(); err != nil {
			return err
		}
	}

	if _, err := writer.WriteString(mbp.MarshalCSV(c.emitted) + "\n"); err != nil {
		return errors.NewErrorDetails(err.Error(), errors.FeedWriteError, "")
	}
	c.emitted++
	c.stats.SnapshotsEmitted++
	c.book.ResetChanges()

	return nil
}

func (c *Converter) skip(err error, line uint64) {
	c.stats.RecordsSkipped++
	c.logger.Error(err,
		logger.Field{Key: "action", Value: "skip_record"},
		logger.Field{Key: "line", Value: line},
	)
}

// BookStatistics returns the final book statistics for reporting.
func (c *Converter) BookStatistics() bookv1.Statistics {
	return c.book.Statistics()
}
