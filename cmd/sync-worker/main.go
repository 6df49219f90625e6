package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"budgetize/internal/amqp"
	"budgetize/internal/cli"
	gsheet "budgetize/internal/tabular/google"
	"budgetize/internal/worker"

	"golang.org/x/sync/errgroup"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	logger.Info("Starting sync-worker")

	cfg := cli.LoadAndValidateConfig(logger)
	if cfg.GoogleSpreadsheetID == "" {
		logger.Error("Sync worker requires GOOGLE_SPREADSHEET_ID")
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("Sync worker requires AMQP_URL")
		os.Exit(1)
	}

	period := cli.ResolvePeriod(logger, cfg)
	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath, period)
	defer repo.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sheetsClient, err := gsheet.NewFromEnv(ctx)
	if err != nil {
		logger.Error("Failed to initialize Google Sheets client", "error", err)
		os.Exit(1)
	}
	logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	syncWorker := worker.NewSyncWorker(repo, sheetsClient)

	// On startup, push anything that accumulated while the worker was down.
	logger.Info("Performing startup resync...")
	if err := syncWorker.ResyncAll(ctx); err != nil {
		logger.Error("Startup resync failed", "error", err)
		// Don't exit - continue with normal operation
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())
		cancel()
	}()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return amqpClient.ConsumeSnapshotSync(gctx, func(msg *amqp.SnapshotSyncMessage) error {
			return syncWorker.HandleSyncMessage(gctx, msg)
		})
	})

	g.Go(func() error {
		ticker := time.NewTicker(cfg.SyncInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case <-ticker.C:
				if err := syncWorker.ResyncAll(gctx); err != nil {
					logger.Error("Periodic resync failed", "error", err)
				}
			}
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Sync worker stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("Sync worker shutdown complete")
}
