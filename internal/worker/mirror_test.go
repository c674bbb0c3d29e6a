package worker

import (
	"context"
	"errors"
	"testing"

	"budget/internal/amqp"
	"budget/internal/core"
	"budget/internal/storage/memory"
)

type fakeMirror struct {
	replaced [][]core.Transaction
	err      error
}

func (f *fakeMirror) ReplaceAll(_ context.Context, txs []core.Transaction) error {
	if f.err != nil {
		return f.err
	}
	f.replaced = append(f.replaced, txs)
	return nil
}

type fakeEvents struct {
	events []*amqp.TransactionEvent
}

func (f *fakeEvents) ConsumeTransactionEvents(ctx context.Context, handler func(*amqp.TransactionEvent) error) error {
	for _, ev := range f.events {
		if err := handler(ev); err != nil {
			return err
		}
	}
	return ctx.Err()
}

func seedStore(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.New()
	err := store.Append(context.Background(), core.Transaction{
		ID:       "tx-1",
		Date:     "2024-01-05",
		Customer: "alice",
		Category: core.Groceries,
		Amount:   core.Money{Cents: 5000},
		Type:     core.Expense,
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return store
}

func TestSyncOnce(t *testing.T) {
	mirror := &fakeMirror{}
	w := NewMirrorWorker(seedStore(t), mirror, &fakeEvents{})

	if err := w.SyncOnce(context.Background()); err != nil {
		t.Fatalf("SyncOnce: %v", err)
	}
	if len(mirror.replaced) != 1 {
		t.Fatalf("expected 1 replace call, got %d", len(mirror.replaced))
	}
	if len(mirror.replaced[0]) != 1 || mirror.replaced[0][0].ID != "tx-1" {
		t.Errorf("mirrored rows = %+v", mirror.replaced[0])
	}
}

func TestSyncOncePropagatesMirrorError(t *testing.T) {
	wantErr := errors.New("sheet unavailable")
	w := NewMirrorWorker(seedStore(t), &fakeMirror{err: wantErr}, &fakeEvents{})

	if err := w.SyncOnce(context.Background()); !errors.Is(err, wantErr) {
		t.Errorf("error = %v, want %v", err, wantErr)
	}
}

func TestRunSyncsPerEvent(t *testing.T) {
	mirror := &fakeMirror{}
	events := &fakeEvents{events: []*amqp.TransactionEvent{
		amqp.NewTransactionEvent(amqp.ActionCreated, "tx-1", "alice"),
		amqp.NewTransactionEvent(amqp.ActionCleared, "", "alice"),
	}}
	w := NewMirrorWorker(seedStore(t), mirror, events)

	if err := w.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(mirror.replaced) != 2 {
		t.Errorf("expected one sync per event, got %d", len(mirror.replaced))
	}
}
