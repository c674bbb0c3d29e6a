package csvfile

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"budget/internal/core"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "users.csv"), filepath.Join(dir, "budget_data.csv"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return s
}

func sampleTx(id, customer string) core.Transaction {
	return core.Transaction{
		ID:       id,
		Date:     "2024-01-05",
		Customer: customer,
		Category: core.Groceries,
		Amount:   core.Money{Cents: 5000},
		Type:     core.Expense,
	}
}

func TestMissingFilesAreEmptyTables(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	users, err := s.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 0 {
		t.Errorf("expected no users, got %d", len(users))
	}

	txs, err := s.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(txs) != 0 {
		t.Errorf("expected no transactions, got %d", len(txs))
	}
}

func TestUserRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := core.User{Username: "alice", Digest: core.Digest("pw"), CustomerID: "abc12345"}
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	got, err := s.GetUserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if got == nil || *got != u {
		t.Errorf("got %+v, want %+v", got, u)
	}

	absent, err := s.GetUserByUsername(ctx, "bob")
	if err != nil {
		t.Fatalf("GetUserByUsername(bob): %v", err)
	}
	if absent != nil {
		t.Errorf("expected nil for absent user, got %+v", absent)
	}
}

func TestCreateUserDuplicate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := core.User{Username: "alice", Digest: core.Digest("pw"), CustomerID: "abc12345"}
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	err := s.CreateUser(ctx, core.User{Username: "alice", Digest: core.Digest("other"), CustomerID: "zzz99999"})
	if !errors.Is(err, core.ErrDuplicateUsername) {
		t.Errorf("error = %v, want ErrDuplicateUsername", err)
	}

	users, _ := s.ListUsers(ctx)
	if len(users) != 1 {
		t.Errorf("duplicate create changed the table: %d users", len(users))
	}
}

func TestTransactionRoundTripAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	usersPath := filepath.Join(dir, "users.csv")
	txPath := filepath.Join(dir, "budget_data.csv")
	ctx := context.Background()

	s, err := Open(usersPath, txPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	want := sampleTx("tx-1", "alice")
	if err := s.Append(ctx, want); err != nil {
		t.Fatalf("Append: %v", err)
	}

	// A fresh store over the same files sees the same rows.
	s2, err := Open(usersPath, txPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	txs, err := s2.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(txs) != 1 || txs[0] != want {
		t.Errorf("got %+v, want [%+v]", txs, want)
	}
}

func TestTransactionsFileLayout(t *testing.T) {
	dir := t.TempDir()
	txPath := filepath.Join(dir, "budget_data.csv")
	s, err := Open(filepath.Join(dir, "users.csv"), txPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Append(context.Background(), sampleTx("tx-1", "alice")); err != nil {
		t.Fatalf("Append: %v", err)
	}

	data, err := os.ReadFile(txPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	if lines[0] != "ID,Date,Customer,Category,Amount,Type" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "tx-1,2024-01-05,alice,Groceries,50,Expense" {
		t.Errorf("row = %q", lines[1])
	}
}

func TestInsertionOrderPreserved(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ids := []string{"tx-1", "tx-2", "tx-3"}
	for _, id := range ids {
		if err := s.Append(ctx, sampleTx(id, "alice")); err != nil {
			t.Fatalf("Append(%s): %v", id, err)
		}
	}

	txs, err := s.ListByCustomer(ctx, "alice")
	if err != nil {
		t.Fatalf("ListByCustomer: %v", err)
	}
	for i, id := range ids {
		if txs[i].ID != id {
			t.Errorf("position %d = %s, want %s", i, txs[i].ID, id)
		}
	}
}

func TestListByCustomerScoping(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.Append(ctx, sampleTx("tx-a", "alice"))
	s.Append(ctx, sampleTx("tx-b", "bob"))
	s.Append(ctx, sampleTx("tx-a2", "alice"))

	txs, err := s.ListByCustomer(ctx, "alice")
	if err != nil {
		t.Fatalf("ListByCustomer: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("expected 2 rows for alice, got %d", len(txs))
	}
	for _, tx := range txs {
		if tx.Customer != "alice" {
			t.Errorf("foreign row leaked: %+v", tx)
		}
	}
}

func TestDeleteByID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.Append(ctx, sampleTx("tx-1", "alice"))
	s.Append(ctx, sampleTx("tx-2", "alice"))

	n, err := s.DeleteByID(ctx, "tx-1")
	if err != nil {
		t.Fatalf("DeleteByID: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted %d, want 1", n)
	}

	n, err = s.DeleteByID(ctx, "tx-1")
	if err != nil {
		t.Fatalf("DeleteByID again: %v", err)
	}
	if n != 0 {
		t.Errorf("second delete removed %d, want 0", n)
	}

	txs, _ := s.ListAll(ctx)
	if len(txs) != 1 || txs[0].ID != "tx-2" {
		t.Errorf("remaining = %+v", txs)
	}
}

func TestDeleteByCustomer(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.Append(ctx, sampleTx("tx-1", "alice"))
	s.Append(ctx, sampleTx("tx-2", "alice"))
	s.Append(ctx, sampleTx("tx-3", "bob"))

	n, err := s.DeleteByCustomer(ctx, "alice")
	if err != nil {
		t.Fatalf("DeleteByCustomer: %v", err)
	}
	if n != 2 {
		t.Errorf("deleted %d, want 2", n)
	}

	n, _ = s.DeleteByCustomer(ctx, "alice")
	if n != 0 {
		t.Errorf("repeat delete removed %d, want 0", n)
	}

	txs, _ := s.ListAll(ctx)
	if len(txs) != 1 || txs[0].Customer != "bob" {
		t.Errorf("remaining = %+v", txs)
	}
}

func TestNoStrayTempFilesAfterWrites(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "users.csv"), filepath.Join(dir, "budget_data.csv"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := s.Append(ctx, sampleTx("tx-"+string(rune('a'+i)), "alice")); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	s.DeleteByCustomer(ctx, "alice")

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp-") {
			t.Errorf("stray temp file left behind: %s", e.Name())
		}
	}
}

func TestEncodeTransactions(t *testing.T) {
	var buf bytes.Buffer
	err := EncodeTransactions(&buf, []core.Transaction{sampleTx("tx-1", "alice")})
	if err != nil {
		t.Fatalf("EncodeTransactions: %v", err)
	}
	want := "ID,Date,Customer,Category,Amount,Type\ntx-1,2024-01-05,alice,Groceries,50,Expense\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}
