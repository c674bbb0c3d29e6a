package http

import (
	"errors"
	"net"
	"net/http"
	"strings"

	"budget/internal/core"
)

// maxFormCents caps the add-transaction form at 10,000. This is an input
// surface limit only; the ledger itself accepts any non-negative amount.
const maxFormCents = 10_000 * 100

func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// userMessage translates core errors into user-facing text.
func userMessage(err error) string {
	switch {
	case errors.Is(err, core.ErrDuplicateUsername):
		return "Username already exists! Choose another."
	case errors.Is(err, core.ErrInvalidCredentials):
		return "Invalid username or password."
	case errors.Is(err, core.ErrRecordNotFound):
		return "Transaction not found."
	case errors.Is(err, core.ErrEmptyUsername):
		return "Username must not be empty."
	case errors.Is(err, core.ErrEmptyPassword):
		return "Password must not be empty."
	case errors.Is(err, core.ErrInvalidCategory):
		return "Unknown category."
	case errors.Is(err, core.ErrInvalidType):
		return "Type must be Income or Expense."
	case errors.Is(err, core.ErrNegativeAmount), errors.Is(err, core.ErrInvalidAmount):
		return "Amount must be a number between 0 and 10,000."
	}
	return "Something went wrong. Please try again."
}
