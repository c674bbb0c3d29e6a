package core

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
)

const (
	Salary        Category = "Salary"
	Groceries     Category = "Groceries"
	Bills         Category = "Bills"
	Entertainment Category = "Entertainment"
	Transport     Category = "Transport"
	Other         Category = "Other"
)

const (
	Income  TxType = "Income"
	Expense TxType = "Expense"
)

type (
	Category string

	TxType string

	// User is one row of the credential table. Digest is the unsalted
	// SHA-256 of the password; identical passwords produce identical
	// digests across users. This mirrors the historic on-disk format and
	// is kept deliberately (changing it would invalidate existing tables).
	User struct {
		Username   string
		Digest     string
		CustomerID string
	}

	// Identity is the authenticated principal.
	Identity struct {
		Username   string
		CustomerID string
	}

	// Transaction is one row of the ledger table. ID identifies this
	// transaction alone; Customer is the owning username, captured at
	// creation time and never re-validated against the credential table.
	// Date is stored verbatim; rows with unparseable dates still count
	// toward summaries and are only skipped by the monthly trend.
	Transaction struct {
		ID       string
		Date     string
		Customer string
		Category Category
		Amount   Money
		Type     TxType
	}
)

var (
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrRecordNotFound     = errors.New("record not found")
	ErrEmptyUsername      = errors.New("empty username")
	ErrEmptyPassword      = errors.New("empty password")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrInvalidType        = errors.New("invalid transaction type")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrNegativeAmount     = errors.New("amount must not be negative")
)

// Digest returns the hex-encoded SHA-256 of the password. Deterministic
// and unsalted, matching the stored Password column.
func Digest(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// Categories returns the fixed category set in display order.
func Categories() []Category {
	return []Category{Salary, Groceries, Bills, Entertainment, Transport, Other}
}

func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", ErrInvalidCategory
}

func ParseTxType(s string) (TxType, error) {
	switch TxType(s) {
	case Income, Expense:
		return TxType(s), nil
	}
	return "", ErrInvalidType
}

func (c Category) Validate() error {
	_, err := ParseCategory(string(c))
	return err
}

func (t TxType) Validate() error {
	_, err := ParseTxType(string(t))
	return err
}

func (u User) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return ErrEmptyUsername
	}
	if u.Digest == "" {
		return ErrEmptyPassword
	}
	return nil
}

// Validate checks the ledger-boundary constraints: category and type must
// be members of their enums and the amount must not be negative. The date
// is intentionally not validated here.
func (t Transaction) Validate() error {
	if err := t.Category.Validate(); err != nil {
		return err
	}
	if err := t.Type.Validate(); err != nil {
		return err
	}
	if t.Amount.Cents < 0 {
		return ErrNegativeAmount
	}
	if strings.TrimSpace(t.Customer) == "" {
		return ErrEmptyUsername
	}
	return nil
}
