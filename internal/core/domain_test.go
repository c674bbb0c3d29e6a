package core

import (
	"errors"
	"testing"
)

func TestDigestIsDeterministic(t *testing.T) {
	a := Digest("hunter2")
	b := Digest("hunter2")
	if a != b {
		t.Errorf("expected identical digests, got %s and %s", a, b)
	}
	if len(a) != 64 {
		t.Errorf("expected 64 hex characters, got %d", len(a))
	}
}

func TestDigestKnownValue(t *testing.T) {
	// sha256("password") hex
	want := "5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8"
	if got := Digest("password"); got != want {
		t.Errorf("Digest(\"password\") = %s, want %s", got, want)
	}
}

func TestDigestDiffersByPassword(t *testing.T) {
	if Digest("alpha") == Digest("beta") {
		t.Error("different passwords produced the same digest")
	}
}

func TestParseCategory(t *testing.T) {
	for _, c := range Categories() {
		got, err := ParseCategory(string(c))
		if err != nil {
			t.Errorf("ParseCategory(%q) unexpected error: %v", c, err)
		}
		if got != c {
			t.Errorf("ParseCategory(%q) = %q", c, got)
		}
	}

	for _, s := range []string{"", "groceries", "Food", "SALARY"} {
		if _, err := ParseCategory(s); !errors.Is(err, ErrInvalidCategory) {
			t.Errorf("ParseCategory(%q) error = %v, want ErrInvalidCategory", s, err)
		}
	}
}

func TestParseTxType(t *testing.T) {
	for _, s := range []string{"Income", "Expense"} {
		if _, err := ParseTxType(s); err != nil {
			t.Errorf("ParseTxType(%q) unexpected error: %v", s, err)
		}
	}
	for _, s := range []string{"", "income", "Transfer"} {
		if _, err := ParseTxType(s); !errors.Is(err, ErrInvalidType) {
			t.Errorf("ParseTxType(%q) error = %v, want ErrInvalidType", s, err)
		}
	}
}

func TestTransactionValidate(t *testing.T) {
	valid := Transaction{
		ID:       "tx-1",
		Date:     "2024-01-05",
		Customer: "alice",
		Category: Groceries,
		Amount:   Money{Cents: 5000},
		Type:     Expense,
	}

	tests := []struct {
		name    string
		mutate  func(*Transaction)
		wantErr error
	}{
		{"valid", func(*Transaction) {}, nil},
		{"zero amount is valid", func(tx *Transaction) { tx.Amount = Money{} }, nil},
		{"garbage date is valid", func(tx *Transaction) { tx.Date = "not-a-date" }, nil},
		{"bad category", func(tx *Transaction) { tx.Category = "Food" }, ErrInvalidCategory},
		{"bad type", func(tx *Transaction) { tx.Type = "Transfer" }, ErrInvalidType},
		{"negative amount", func(tx *Transaction) { tx.Amount = Money{Cents: -1} }, ErrNegativeAmount},
		{"blank customer", func(tx *Transaction) { tx.Customer = "  " }, ErrEmptyUsername},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tx := valid
			tc.mutate(&tx)
			err := tx.Validate()
			if tc.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestUserValidate(t *testing.T) {
	u := User{Username: "alice", Digest: Digest("pw"), CustomerID: "abc12345"}
	if err := u.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := (User{Digest: "d"}).Validate(); !errors.Is(err, ErrEmptyUsername) {
		t.Errorf("blank username error = %v, want ErrEmptyUsername", err)
	}
	if err := (User{Username: "alice"}).Validate(); !errors.Is(err, ErrEmptyPassword) {
		t.Errorf("blank digest error = %v, want ErrEmptyPassword", err)
	}
}
