package backend

import (
	"context"
	"fmt"
	"log/slog"

	"budget/internal/storage/csvfile"
	"budget/internal/storage/memory"
	"budget/internal/storage/sqlite"
)

// DefaultFactory implements Factory.
type DefaultFactory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{logger: logger}
}

func (f *DefaultFactory) CreateStores(ctx context.Context, cfg Config) (*Stores, error) {
	if !cfg.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", cfg.Type)
	}

	switch cfg.Type {
	case CSVBackend:
		store, err := csvfile.Open(cfg.UsersFile, cfg.TransactionsFile)
		if err != nil {
			return nil, fmt.Errorf("open csv store: %w", err)
		}
		f.logger.Info("Initialized csv backend",
			"users_file", cfg.UsersFile,
			"transactions_file", cfg.TransactionsFile)
		return &Stores{Users: store, Transactions: store}, nil

	case SQLiteBackend:
		repo, err := sqlite.Open(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite repository: %w", err)
		}
		f.logger.Info("Initialized sqlite backend", "db_path", cfg.SQLiteDBPath)
		return &Stores{Users: repo, Transactions: repo, Cleanup: repo.Close}, nil

	case MemoryBackend:
		store := memory.New()
		f.logger.Info("Initialized memory backend")
		return &Stores{Users: store, Transactions: store}, nil
	}
	return nil, fmt.Errorf("unsupported backend type: %s", cfg.Type)
}
