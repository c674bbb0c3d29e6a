// Package csvfile is the canonical backend: two flat CSV tables, fully
// re-read on every load and fully re-serialized on every write. A missing
// or empty file is an empty table. Writes go through a temp file and a
// rename so a failed write leaves the previous table intact, and a mutex
// serializes read-modify-write cycles within the process.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"budget/internal/core"
)

var (
	usersHeader        = []string{"Username", "Password", "CustomerID"}
	transactionsHeader = []string{"ID", "Date", "Customer", "Category", "Amount", "Type"}
)

type Store struct {
	mu        sync.Mutex
	usersPath string
	txPath    string
}

// Open prepares a Store over the two table files, creating their directory
// if needed. The files themselves are created lazily on first write.
func Open(usersPath, txPath string) (*Store, error) {
	for _, p := range []string{usersPath, txPath} {
		if dir := filepath.Dir(p); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create data directory: %w", err)
			}
		}
	}
	return &Store{usersPath: usersPath, txPath: txPath}, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users, err := s.loadUsers()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (s *Store) CreateUser(ctx context.Context, u core.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	users, err := s.loadUsers()
	if err != nil {
		return err
	}
	for _, existing := range users {
		if existing.Username == u.Username {
			return core.ErrDuplicateUsername
		}
	}
	return s.saveUsers(append(users, u))
}

func (s *Store) ListUsers(ctx context.Context) ([]core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadUsers()
}

func (s *Store) Append(ctx context.Context, t core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	txs, err := s.loadTransactions()
	if err != nil {
		return err
	}
	return s.saveTransactions(append(txs, t))
}

func (s *Store) GetByID(ctx context.Context, id string) (*core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	txs, err := s.loadTransactions()
	if err != nil {
		return nil, err
	}
	for _, t := range txs {
		if t.ID == id {
			t := t
			return &t, nil
		}
	}
	return nil, nil
}

func (s *Store) ListByCustomer(ctx context.Context, customer string) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	txs, err := s.loadTransactions()
	if err != nil {
		return nil, err
	}
	var out []core.Transaction
	for _, t := range txs {
		if t.Customer == customer {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *Store) ListAll(ctx context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadTransactions()
}

func (s *Store) DeleteByID(ctx context.Context, id string) (int, error) {
	return s.deleteWhere(func(t core.Transaction) bool { return t.ID == id })
}

func (s *Store) DeleteByCustomer(ctx context.Context, customer string) (int, error) {
	return s.deleteWhere(func(t core.Transaction) bool { return t.Customer == customer })
}

func (s *Store) deleteWhere(match func(core.Transaction) bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	txs, err := s.loadTransactions()
	if err != nil {
		return 0, err
	}
	kept := txs[:0]
	removed := 0
	for _, t := range txs {
		if match(t) {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	if removed == 0 {
		return 0, nil
	}
	if err := s.saveTransactions(kept); err != nil {
		return 0, err
	}
	return removed, nil
}

func (s *Store) loadUsers() ([]core.User, error) {
	rows, err := readTable(s.usersPath, len(usersHeader))
	if err != nil {
		return nil, err
	}
	users := make([]core.User, 0, len(rows))
	for _, rec := range rows {
		users = append(users, core.User{
			Username:   rec[0],
			Digest:     rec[1],
			CustomerID: rec[2],
		})
	}
	return users, nil
}

func (s *Store) saveUsers(users []core.User) error {
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{u.Username, u.Digest, u.CustomerID})
	}
	return writeTable(s.usersPath, usersHeader, rows)
}

func (s *Store) loadTransactions() ([]core.Transaction, error) {
	rows, err := readTable(s.txPath, len(transactionsHeader))
	if err != nil {
		return nil, err
	}
	txs := make([]core.Transaction, 0, len(rows))
	for _, rec := range rows {
		txs = append(txs, decodeTransaction(rec))
	}
	return txs, nil
}

func (s *Store) saveTransactions(txs []core.Transaction) error {
	rows := make([][]string, 0, len(txs))
	for _, t := range txs {
		rows = append(rows, encodeTransaction(t))
	}
	return writeTable(s.txPath, transactionsHeader, rows)
}

// decodeTransaction trusts the stored row; category, type and date are not
// re-validated on read.
func decodeTransaction(rec []string) core.Transaction {
	amount, err := core.ParseMoney(rec[4])
	if err != nil {
		amount = core.Money{}
	}
	return core.Transaction{
		ID:       rec[0],
		Date:     rec[1],
		Customer: rec[2],
		Category: core.Category(rec[3]),
		Amount:   amount,
		Type:     core.TxType(rec[5]),
	}
}

func encodeTransaction(t core.Transaction) []string {
	return []string{t.ID, t.Date, t.Customer, string(t.Category), t.Amount.String(), string(t.Type)}
}

// EncodeTransactions writes the header plus one row per transaction in the
// persisted layout. The CSV download handler reuses it so the export is
// byte-compatible with the table on disk.
func EncodeTransactions(w io.Writer, txs []core.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(transactionsHeader); err != nil {
		return err
	}
	for _, t := range txs {
		if err := cw.Write(encodeTransaction(t)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// readTable returns the data rows of a table file, skipping the header.
// A missing or empty file is an empty table, not an error.
func readTable(path string, width int) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open table %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = width
	var rows [][]string
	first := true
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read table %s: %w", path, err)
		}
		if first {
			first = false
			continue
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

// writeTable re-serializes the whole table: temp file in the same
// directory, fsync, then rename over the old file.
func writeTable(path string, header []string, rows [][]string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp table: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(header); err != nil {
		tmp.Close()
		return fmt.Errorf("write header: %w", err)
	}
	for _, rec := range rows {
		if err := w.Write(rec); err != nil {
			tmp.Close()
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush table: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync table: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp table: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace table %s: %w", path, err)
	}
	return nil
}
