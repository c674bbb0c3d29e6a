// Package storage defines the persistence ports implemented by the csvfile,
// sqlite and memory backends.
package storage

import (
	"context"

	"budget/internal/core"
)

type (
	// UserRepository persists the credential table.
	UserRepository interface {
		// GetUserByUsername returns (nil, nil) when no row matches.
		GetUserByUsername(ctx context.Context, username string) (*core.User, error)
		CreateUser(ctx context.Context, u core.User) error
		ListUsers(ctx context.Context) ([]core.User, error)
	}

	// TransactionRepository persists the ledger table. Listing preserves
	// insertion order; deletes report the number of rows removed and never
	// treat zero matches as an error.
	TransactionRepository interface {
		Append(ctx context.Context, t core.Transaction) error
		// GetByID returns (nil, nil) when no row matches.
		GetByID(ctx context.Context, id string) (*core.Transaction, error)
		ListByCustomer(ctx context.Context, customer string) ([]core.Transaction, error)
		ListAll(ctx context.Context) ([]core.Transaction, error)
		DeleteByID(ctx context.Context, id string) (int, error)
		DeleteByCustomer(ctx context.Context, customer string) (int, error)
	}
)
