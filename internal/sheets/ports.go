// Package sheets defines the outbound port for mirroring the ledger table
// to an external spreadsheet.
package sheets

import (
	"context"

	"budget/internal/core"
)

// LedgerMirror replaces the mirrored table with the given rows. Full
// replacement mirrors the full-rewrite semantics of the primary store.
type LedgerMirror interface {
	ReplaceAll(ctx context.Context, txs []core.Transaction) error
}
