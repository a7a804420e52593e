// main package for the nsw-service
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/book-expert/logger"
	"github.com/book-expert/nsw-normalizer/internal/config"
	"github.com/book-expert/nsw-normalizer/internal/fsutil"
	"github.com/book-expert/nsw-normalizer/internal/lexicon"
	"github.com/book-expert/nsw-normalizer/internal/nsw"
	"github.com/book-expert/nsw-normalizer/internal/objectstore"
	"github.com/book-expert/nsw-normalizer/internal/pipeline"
	"github.com/book-expert/nsw-normalizer/internal/pronounce"
	"github.com/book-expert/nsw-normalizer/internal/segment"
	"github.com/book-expert/nsw-normalizer/internal/worker"
	"github.com/nats-io/nats.go"
)

const (
	bootstrapLogFile = "nsw-service-bootstrap.log"
	serviceLogFile   = "nsw-service.log"
)

func setupLogger(logPath, fileName string) (*logger.Logger, error) {
	log, err := logger.New(logPath, fileName)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return log, nil
}

// buildPipeline loads the dictionary and wires the normalizer and mapper on top of it.
func buildPipeline(cfg *config.Config, log *logger.Logger) (*pipeline.Pipeline, error) {
	dictionary := lexicon.Default()

	if cfg.Normalizer.DictionaryPath != "" {
		path, err := fsutil.GetDictionaryPath(cfg.Normalizer.DictionaryPath)
		if err != nil {
			return nil, err
		}

		dictionary, err = lexicon.LoadFile(path)
		if err != nil {
			return nil, err
		}

		log.Info("Loaded %d dictionary entries from %s", dictionary.Len(), path)
	} else {
		log.Info("Using the embedded dictionary (%d entries)", dictionary.Len())
	}

	splitter, err := segment.New(dictionary, cfg.Normalizer.SplitCacheSize)
	if err != nil {
		return nil, err
	}

	return pipeline.New(nsw.New(dictionary, splitter), pronounce.New(dictionary)), nil
}

func run() error {
	// 1. Create a temporary logger for the bootstrap process
	bootstrapLog, err := setupLogger(os.TempDir(), bootstrapLogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to create bootstrap logger: %v\n", err)

		return err
	}

	defer func() { _ = bootstrapLog.Close() }()

	// 2. Load configuration using the central configurator
	cfg, err := config.Load(bootstrapLog)
	if err != nil {
		bootstrapLog.Error("Failed to load configuration: %v", err)

		return fmt.Errorf("failed to load configuration: %w", err)
	}

	err = cfg.Validate()
	if err != nil {
		bootstrapLog.Error("Invalid configuration: %v", err)

		return fmt.Errorf("invalid configuration: %w", err)
	}

	// 3. Initialize the final logger based on the loaded configuration
	err = fsutil.EnsureDir(cfg.Paths.BaseLogsDir)
	if err != nil {
		return err
	}

	finalLog, err := setupLogger(cfg.Paths.BaseLogsDir, serviceLogFile)
	if err != nil {
		bootstrapLog.Error("Failed to create final logger: %v", err)

		return fmt.Errorf("failed to create final logger: %w", err)
	}

	defer func() {
		closeErr := finalLog.Close()
		if closeErr != nil {
			fmt.Fprintf(os.Stderr, "error closing final logger: %v\n", closeErr)
		}
	}()

	// 4. Build the normalization pipeline
	textPipeline, err := buildPipeline(cfg, finalLog)
	if err != nil {
		finalLog.Error("Failed to build pipeline: %v", err)

		return fmt.Errorf("failed to build pipeline: %w", err)
	}

	// 5. Connect to NATS and bind the object store
	natsConnection, err := nats.Connect(cfg.NATS.URL)
	if err != nil {
		finalLog.Error("Failed to connect to NATS at %s: %v", cfg.NATS.URL, err)

		return fmt.Errorf("failed to connect to NATS: %w", err)
	}
	defer natsConnection.Close()

	jetstreamContext, err := natsConnection.JetStream()
	if err != nil {
		return fmt.Errorf("failed to create JetStream context: %w", err)
	}

	store, err := objectstore.New(jetstreamContext, cfg.NATS.ObjectStoreBucket)
	if err != nil {
		finalLog.Error("Failed to bind object store: %v", err)

		return err
	}

	natsWorker, err := worker.NewNatsWorker(
		natsConnection,
		cfg.NATS.TextProcessedSubject,
		cfg.NATS.TextNormalizedSubject,
		store,
		textPipeline,
		finalLog,
	)
	if err != nil {
		return fmt.Errorf("failed to create worker: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	finalLog.System("NSW-Service initialized. Listening for jobs on subject: %s", cfg.NATS.TextProcessedSubject)

	err = natsWorker.Run(ctx)
	if err != nil {
		finalLog.Error("Worker stopped with error: %v", err)

		return err
	}

	finalLog.System("NSW-Service stopped.")

	return nil
}

func main() {
	err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Service exited with error: %v\n", err)
		os.Exit(1)
	}
}
