package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	app "github.com/muhammadchandra19/market-depth/internal/app/engine"
	"github.com/muhammadchandra19/market-depth/internal/usecase/depthpublisher"
	"github.com/muhammadchandra19/market-depth/internal/usecase/mboreader"
	"github.com/muhammadchandra19/market-depth/pkg/config"
	"github.com/muhammadchandra19/market-depth/pkg/httplib/healthcheck"
	"github.com/muhammadchandra19/market-depth/pkg/logger"
)

var cfg *config.Config
var log *logger.Logger

func init() {
	var err error
	cfg = &config.Config{}
	err = config.Load(cfg)
	if err != nil {
		panic(err)
	}

	logger, err := logger.NewLogger()
	if err != nil {
		panic(err)
	}

	log = logger
}

func main() {
	// Create a context that can be cancelled
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Initialize components
	reader := mboreader.NewReader(cfg.KafkaConfig, log)
	publisher := depthpublisher.NewPublisher(cfg.PublisherConfig, log)
	engine := app.NewEngine(
		reader,
		publisher,
		log,
		&app.Options{
			Levels: cfg.Levels,
			Symbol: cfg.Symbol,
		},
	)

	// Expose metrics and the health probe over HTTP
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", engine.Metrics().Handler())
	metricsServer := &http.Server{
		Addr:    cfg.MetricsAddr,
		Handler: healthcheck.HealthCheck{}.Handler(metricsMux),
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(err, logger.Field{
				Key:   "action",
				Value: "serve_metrics",
			})
		}
	}()

	// Start the engine
	if err := engine.Start(ctx); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "start_engine",
		})
		return
	}

	log.Info("Depth streamer started successfully", logger.Field{
		Key:   "symbol",
		Value: cfg.Symbol,
	})

	// Wait for shutdown signal
	sig := <-sigChan
	log.Info("Received shutdown signal", logger.Field{
		Key:   "signal",
		Value: sig.String(),
	})

	// Cancel the main context to signal shutdown
	cancel()

	// Create a timeout context for graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Stop the engine gracefully
	if err := engine.Stop(shutdownCtx); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "stop_engine",
		})
	}

	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "stop_metrics_server",
		})
	}

	if err := publisher.Close(); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "close_publisher",
		})
	}

	log.Info("Depth streamer shutdown complete")
}
