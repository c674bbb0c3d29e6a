// The budget-worker mirrors the transaction table into a Google Sheet,
// re-syncing on every ledger change event.
package main

import (
	"context"
	"os"

	"golang.org/x/sync/errgroup"

	"budget/internal/amqp"
	"budget/internal/backend"
	"budget/internal/cli"
	applog "budget/internal/log"
	"budget/internal/sheets/google"
	"budget/internal/worker"
)

func main() {
	slogger := cli.SetupLogger()
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(slogger)

	logger := applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentWorker)

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the mirror worker")
		os.Exit(1)
	}

	ctx, stop := cli.SignalContext(context.Background())
	defer stop()

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", applog.FieldError, err)
		os.Exit(1)
	}
	stores, err := backend.NewFactory(slogger).CreateStores(ctx, backendCfg)
	if err != nil {
		logger.Error("Failed to initialize storage", applog.FieldError, err)
		os.Exit(1)
	}
	defer func() {
		if stores.Cleanup != nil {
			if err := stores.Cleanup(); err != nil {
				logger.Error("Storage cleanup failed", applog.FieldError, err)
			}
		}
	}()

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to connect to AMQP", applog.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	mirror, err := google.NewFromEnv(ctx)
	if err != nil {
		logger.Error("Failed to initialize Sheets client", applog.FieldError, err)
		os.Exit(1)
	}

	w := worker.NewMirrorWorker(stores.Transactions, mirror, amqpClient)

	if err := w.SyncOnce(ctx); err != nil {
		logger.Error("Initial mirror sync failed", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Initial mirror sync completed")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return w.Run(gctx)
	})

	if err := g.Wait(); err != nil && gctx.Err() == nil {
		logger.Error("Worker exited with error", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Worker stopped")
}
