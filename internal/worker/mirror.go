// Package worker mirrors the ledger table to an external spreadsheet in
// response to AMQP change events.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"budget/internal/amqp"
	"budget/internal/sheets"
	"budget/internal/storage"
)

// EventSource is the consuming side of the AMQP client.
type EventSource interface {
	ConsumeTransactionEvents(ctx context.Context, handler func(*amqp.TransactionEvent) error) error
}

// MirrorWorker re-reads the full transaction table on every event and
// replaces the mirror with it. Idempotent: replaying an event is harmless.
type MirrorWorker struct {
	txs    storage.TransactionRepository
	mirror sheets.LedgerMirror
	events EventSource
}

func NewMirrorWorker(txs storage.TransactionRepository, mirror sheets.LedgerMirror, events EventSource) *MirrorWorker {
	return &MirrorWorker{txs: txs, mirror: mirror, events: events}
}

// SyncOnce pushes the current table to the mirror. Run at startup so the
// mirror catches up on events missed while the worker was down.
func (w *MirrorWorker) SyncOnce(ctx context.Context) error {
	txs, err := w.txs.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("load transactions: %w", err)
	}
	if err := w.mirror.ReplaceAll(ctx, txs); err != nil {
		return fmt.Errorf("replace mirror: %w", err)
	}
	return nil
}

// Run consumes change events until ctx is cancelled.
func (w *MirrorWorker) Run(ctx context.Context) error {
	return w.events.ConsumeTransactionEvents(ctx, func(ev *amqp.TransactionEvent) error {
		slog.InfoContext(ctx, "Mirroring ledger change",
			"action", ev.Action,
			"customer", ev.Customer)
		return w.SyncOnce(ctx)
	})
}
