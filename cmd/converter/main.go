package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	depthv1 "github.com/muhammadchandra19/market-depth/internal/domain/depth/v1"
	feedv1 "github.com/muhammadchandra19/market-depth/internal/domain/feed/v1"
	"github.com/muhammadchandra19/market-depth/internal/usecase/converter"
	"github.com/muhammadchandra19/market-depth/pkg/logger"
)

const defaultOutput = "mbp_output.csv"

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] <input_mbo_file> [output_mbp_file]\n\n", os.Args[0])
	fmt.Fprintln(os.Stderr, "Converts Market By Order (MBO) data to Market By Price (MBP) format")
	fmt.Fprintln(os.Stderr, "with the top N price levels for both bid and ask sides.")
	fmt.Fprintln(os.Stderr, "\nFlags:")
	flag.PrintDefaults()
}

func main() {
	levels := flag.Int("levels", depthv1.DefaultLevels, "depth levels per side in the output")
	validate := flag.Bool("validate", true, "validate output records before writing")
	flag.Usage = printUsage
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 || len(args) > 2 {
		printUsage()
		os.Exit(1)
	}
	inputPath := args[0]
	outputPath := defaultOutput
	if len(args) == 2 {
		outputPath = args[1]
	}

	log, err := logger.NewLogger()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	input, err := os.Open(inputPath)
	if err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "open_input"})
		os.Exit(1)
	}
	defer input.Close()

	output, err := os.Create(outputPath)
	if err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "create_output"})
		os.Exit(1)
	}
	defer output.Close()

	conv := converter.New(log, &converter.Options{
		Levels:         *levels,
		ValidateOutput: *validate,
	})

	stats, err := conv.Run(context.Background(), input, output)
	if err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "run_converter"})
		os.Exit(1)
	}

	log.Info("Conversion complete",
		logger.Field{Key: "input", Value: inputPath},
		logger.Field{Key: "output", Value: outputPath},
		logger.Field{Key: "recordsProcessed", Value: stats.RecordsProcessed},
		logger.Field{Key: "snapshotsEmitted", Value: stats.SnapshotsEmitted},
		logger.Field{Key: "recordsSkipped", Value: stats.RecordsSkipped},
		logger.Field{Key: "elapsed", Value: stats.Elapsed.String()},
		logger.Field{Key: "recordsPerSec", Value: stats.RecordsPerSec},
	)

	bookStats := conv.BookStatistics()
	log.Info("Final book state",
		logger.Field{Key: "bidLevels", Value: bookStats.BidLevels},
		logger.Field{Key: "askLevels", Value: bookStats.AskLevels},
		logger.Field{Key: "totalOrders", Value: bookStats.TotalOrders},
		logger.Field{Key: "bestBid", Value: feedv1.FormatPrice(bookStats.BestBid)},
		logger.Field{Key: "bestAsk", Value: feedv1.FormatPrice(bookStats.BestAsk)},
	)
}
