package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"budget/internal/amqp"
	"budget/internal/core"
	"budget/internal/storage"
	"budget/internal/storage/csvfile"
)

// Ledger manages the append-only transaction table, scoped per identity by
// the Customer column. Change events go to AMQP when a client is wired;
// publish failures are logged and never fail the user operation.
type Ledger struct {
	mu         sync.Mutex
	txs        storage.TransactionRepository
	amqpClient *amqp.Client
}

func NewLedger(txs storage.TransactionRepository, amqpClient *amqp.Client) *Ledger {
	return &Ledger{txs: txs, amqpClient: amqpClient}
}

// Add appends a transaction owned by the identity and returns it with its
// generated ID. The date is stored verbatim; category, type and amount are
// validated at this boundary.
func (l *Ledger) Add(ctx context.Context, id core.Identity, date string, category core.Category, amount core.Money, typ core.TxType) (core.Transaction, error) {
	tx := core.Transaction{
		ID:       uuid.NewString(),
		Date:     date,
		Customer: id.Username,
		Category: category,
		Amount:   amount,
		Type:     typ,
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.txs.Append(ctx, tx); err != nil {
		return core.Transaction{}, fmt.Errorf("append transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction added",
		"tx_id", tx.ID,
		"customer", tx.Customer,
		"category", tx.Category,
		"amount_cents", tx.Amount.Cents,
		"type", tx.Type)

	l.publish(ctx, amqp.ActionCreated, tx.ID, tx.Customer)
	return tx, nil
}

// List returns the identity's transactions in insertion order.
func (l *Ledger) List(ctx context.Context, id core.Identity) ([]core.Transaction, error) {
	txs, err := l.txs.ListByCustomer(ctx, id.Username)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

// DeleteByID removes one transaction by its own identifier. A missing ID
// is a no-op reported as count 0; a record owned by someone else is
// invisible to the caller and reported as ErrRecordNotFound.
func (l *Ledger) DeleteByID(ctx context.Context, id core.Identity, txID string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	tx, err := l.txs.GetByID(ctx, txID)
	if err != nil {
		return 0, fmt.Errorf("lookup transaction: %w", err)
	}
	if tx == nil {
		return 0, nil
	}
	if tx.Customer != id.Username {
		return 0, core.ErrRecordNotFound
	}

	n, err := l.txs.DeleteByID(ctx, txID)
	if err != nil {
		return 0, fmt.Errorf("delete transaction: %w", err)
	}
	if n > 0 {
		l.publish(ctx, amqp.ActionDeleted, txID, id.Username)
	}
	return n, nil
}

// DeleteAllOwned removes every transaction owned by the identity. Zero
// deletions is not an error.
func (l *Ledger) DeleteAllOwned(ctx context.Context, id core.Identity) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	n, err := l.txs.DeleteByCustomer(ctx, id.Username)
	if err != nil {
		return 0, fmt.Errorf("delete transactions: %w", err)
	}
	if n > 0 {
		l.publish(ctx, amqp.ActionCleared, "", id.Username)
	}
	return n, nil
}

// Summarize totals the identity's rows; the empty set yields the zero
// summary.
func (l *Ledger) Summarize(ctx context.Context, id core.Identity) (core.Summary, error) {
	txs, err := l.List(ctx, id)
	if err != nil {
		return core.Summary{}, err
	}
	return core.Summarize(txs), nil
}

// BreakdownByCategory sums the identity's expenses per category.
func (l *Ledger) BreakdownByCategory(ctx context.Context, id core.Identity) ([]core.CategoryAmount, error) {
	txs, err := l.List(ctx, id)
	if err != nil {
		return nil, err
	}
	return core.BreakdownByCategory(txs), nil
}

// MonthlyTrend buckets the identity's rows by year-month.
func (l *Ledger) MonthlyTrend(ctx context.Context, id core.Identity) ([]core.MonthlyPoint, error) {
	txs, err := l.List(ctx, id)
	if err != nil {
		return nil, err
	}
	return core.MonthlyTrend(txs), nil
}

// ExportCSV re-serializes the identity's rows in the persisted layout.
func (l *Ledger) ExportCSV(ctx context.Context, id core.Identity) ([]byte, error) {
	txs, err := l.List(ctx, id)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := csvfile.EncodeTransactions(&buf, txs); err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}
	return buf.Bytes(), nil
}

func (l *Ledger) publish(ctx context.Context, action, txID, customer string) {
	if l.amqpClient == nil {
		return
	}
	ev := amqp.NewTransactionEvent(action, txID, customer)
	if err := l.amqpClient.PublishTransactionEvent(ctx, ev); err != nil {
		slog.ErrorContext(ctx, "Failed to publish transaction event",
			"action", action, "tx_id", txID, "error", err)
	}
}
