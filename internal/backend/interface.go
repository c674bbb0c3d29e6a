// Package backend selects and wires a storage backend from configuration.
package backend

import (
	"context"

	"budget/internal/storage"
)

// Stores bundles the two repositories a backend provides, plus an optional
// cleanup function.
type Stores struct {
	Users        storage.UserRepository
	Transactions storage.TransactionRepository
	Cleanup      func() error
}

// Factory creates backends based on configuration.
type Factory interface {
	CreateStores(ctx context.Context, cfg Config) (*Stores, error)
}

// Config holds backend creation settings.
type Config struct {
	Type Type

	// csv backend
	UsersFile        string
	TransactionsFile string

	// sqlite backend
	SQLiteDBPath string
}

// Type is the storage backend kind.
type Type string

const (
	CSVBackend    Type = "csv"
	SQLiteBackend Type = "sqlite"
	MemoryBackend Type = "memory"
)

func (t Type) String() string {
	return string(t)
}

// IsValid reports whether the backend type is known.
func (t Type) IsValid() bool {
	switch t {
	case CSVBackend, SQLiteBackend, MemoryBackend:
		return true
	}
	return false
}
