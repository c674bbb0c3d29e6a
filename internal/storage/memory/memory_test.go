package memory

import (
	"context"
	"errors"
	"testing"

	"budget/internal/core"
)

func sampleTx(id, customer string) core.Transaction {
	return core.Transaction{
		ID:       id,
		Date:     "2024-01-05",
		Customer: customer,
		Category: core.Bills,
		Amount:   core.Money{Cents: 1200},
		Type:     core.Expense,
	}
}

func TestUserLifecycle(t *testing.T) {
	s := New()
	ctx := context.Background()

	if got, _ := s.GetUserByUsername(ctx, "alice"); got != nil {
		t.Errorf("expected nil for absent user, got %+v", got)
	}

	u := core.User{Username: "alice", Digest: core.Digest("pw"), CustomerID: "abc12345"}
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if err := s.CreateUser(ctx, u); !errors.Is(err, core.ErrDuplicateUsername) {
		t.Errorf("duplicate error = %v, want ErrDuplicateUsername", err)
	}

	got, err := s.GetUserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if got == nil || *got != u {
		t.Errorf("got %+v, want %+v", got, u)
	}
}

func TestTransactionLifecycle(t *testing.T) {
	s := New()
	ctx := context.Background()

	s.Append(ctx, sampleTx("tx-1", "alice"))
	s.Append(ctx, sampleTx("tx-2", "bob"))
	s.Append(ctx, sampleTx("tx-3", "alice"))

	if got, _ := s.GetByID(ctx, "missing"); got != nil {
		t.Errorf("expected nil for absent id, got %+v", got)
	}
	got, err := s.GetByID(ctx, "tx-2")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || got.Customer != "bob" {
		t.Errorf("GetByID = %+v", got)
	}

	mine, _ := s.ListByCustomer(ctx, "alice")
	if len(mine) != 2 || mine[0].ID != "tx-1" || mine[1].ID != "tx-3" {
		t.Errorf("ListByCustomer = %+v", mine)
	}

	n, _ := s.DeleteByID(ctx, "tx-1")
	if n != 1 {
		t.Errorf("DeleteByID removed %d, want 1", n)
	}
	n, _ = s.DeleteByCustomer(ctx, "alice")
	if n != 1 {
		t.Errorf("DeleteByCustomer removed %d, want 1", n)
	}

	all, _ := s.ListAll(ctx)
	if len(all) != 1 || all[0].ID != "tx-2" {
		t.Errorf("remaining = %+v", all)
	}
}

func TestListAllReturnsCopy(t *testing.T) {
	s := New()
	ctx := context.Background()
	s.Append(ctx, sampleTx("tx-1", "alice"))

	all, _ := s.ListAll(ctx)
	all[0].Customer = "mallory"

	again, _ := s.ListAll(ctx)
	if again[0].Customer != "alice" {
		t.Error("caller mutation leaked into the store")
	}
}
