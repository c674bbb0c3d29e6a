// Package sqlite is the documented improvement over the flat tables: the
// same ports backed by a real database, so writes are row-level instead of
// whole-table rewrites. Insertion order is preserved via a sequence column.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"budget/internal/core"

	_ "modernc.org/sqlite"
)

type Repository struct {
	db *sql.DB
}

func Open(dbPath string) (*Repository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*core.User, error) {
	var u core.User
	err := r.db.QueryRowContext(ctx,
		`SELECT username, digest, customer_id FROM users WHERE username = ?`, username,
	).Scan(&u.Username, &u.Digest, &u.CustomerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

func (r *Repository) CreateUser(ctx context.Context, u core.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, digest, customer_id) VALUES (?, ?, ?)`,
		u.Username, u.Digest, u.CustomerID)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *Repository) ListUsers(ctx context.Context) ([]core.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT username, digest, customer_id FROM users ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []core.User
	for rows.Next() {
		var u core.User
		if err := rows.Scan(&u.Username, &u.Digest, &u.CustomerID); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *Repository) Append(ctx context.Context, t core.Transaction) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (id, date, customer, category, amount_cents, type)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID, t.Date, t.Customer, string(t.Category), t.Amount.Cents, string(t.Type))
	if err != nil {
		return fmt.Errorf("append transaction: %w", err)
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*core.Transaction, error) {
	var t core.Transaction
	var category, typ string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, date, customer, category, amount_cents, type
		 FROM transactions WHERE id = ?`, id,
	).Scan(&t.ID, &t.Date, &t.Customer, &category, &t.Amount.Cents, &typ)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	t.Category = core.Category(category)
	t.Type = core.TxType(typ)
	return &t, nil
}

func (r *Repository) ListByCustomer(ctx context.Context, customer string) ([]core.Transaction, error) {
	return r.list(ctx,
		`SELECT id, date, customer, category, amount_cents, type
		 FROM transactions WHERE customer = ? ORDER BY seq`, customer)
}

func (r *Repository) ListAll(ctx context.Context) ([]core.Transaction, error) {
	return r.list(ctx,
		`SELECT id, date, customer, category, amount_cents, type
		 FROM transactions ORDER BY seq`)
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txs []core.Transaction
	for rows.Next() {
		var t core.Transaction
		var category, typ string
		if err := rows.Scan(&t.ID, &t.Date, &t.Customer, &category, &t.Amount.Cents, &typ); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.Category = core.Category(category)
		t.Type = core.TxType(typ)
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

func (r *Repository) DeleteByID(ctx context.Context, id string) (int, error) {
	return r.delete(ctx, `DELETE FROM transactions WHERE id = ?`, id)
}

func (r *Repository) DeleteByCustomer(ctx context.Context, customer string) (int, error) {
	return r.delete(ctx, `DELETE FROM transactions WHERE customer = ?`, customer)
}

func (r *Repository) delete(ctx context.Context, query string, args ...any) (int, error) {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete transactions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return int(n), nil
}
