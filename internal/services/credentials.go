// Package services implements the two core components over the storage
// ports: the credential store and the transaction ledger. Each serializes
// its read-modify-write cycles behind a mutex so concurrent sessions cannot
// lose updates at the table level.
package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"budget/internal/core"
	"budget/internal/storage"
)

// CredentialStore manages registration and password verification against
// the users table.
type CredentialStore struct {
	mu    sync.Mutex
	users storage.UserRepository
}

func NewCredentialStore(users storage.UserRepository) *CredentialStore {
	return &CredentialStore{users: users}
}

// Register creates a new user with a fresh customer ID. The store is left
// untouched when the username is already taken.
func (s *CredentialStore) Register(ctx context.Context, username, password string) (core.Identity, error) {
	if strings.TrimSpace(username) == "" {
		return core.Identity{}, core.ErrEmptyUsername
	}
	if password == "" {
		return core.Identity{}, core.ErrEmptyPassword
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return core.Identity{}, fmt.Errorf("lookup username: %w", err)
	}
	if existing != nil {
		return core.Identity{}, core.ErrDuplicateUsername
	}

	customerID, err := s.newCustomerID(ctx)
	if err != nil {
		return core.Identity{}, err
	}

	user := core.User{
		Username:   username,
		Digest:     core.Digest(password),
		CustomerID: customerID,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return core.Identity{}, fmt.Errorf("create user: %w", err)
	}

	slog.InfoContext(ctx, "User registered", "username", username, "customer_id", customerID)
	return core.Identity{Username: username, CustomerID: customerID}, nil
}

// Authenticate verifies (username, digest) with a constant-time digest
// comparison and returns the identity issued at registration.
func (s *CredentialStore) Authenticate(ctx context.Context, username, password string) (core.Identity, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return core.Identity{}, fmt.Errorf("lookup username: %w", err)
	}
	if user == nil {
		return core.Identity{}, core.ErrInvalidCredentials
	}

	digest := core.Digest(password)
	if subtle.ConstantTimeCompare([]byte(digest), []byte(user.Digest)) != 1 {
		return core.Identity{}, core.ErrInvalidCredentials
	}
	return core.Identity{Username: user.Username, CustomerID: user.CustomerID}, nil
}

// newCustomerID draws 8 hex characters from a fresh UUID, regenerating on
// the unlikely clash with an issued ID.
func (s *CredentialStore) newCustomerID(ctx context.Context) (string, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return "", fmt.Errorf("list users: %w", err)
	}
	issued := make(map[string]struct{}, len(users))
	for _, u := range users {
		issued[u.CustomerID] = struct{}{}
	}
	for {
		id := uuid.NewString()[:8]
		if _, taken := issued[id]; !taken {
			return id, nil
		}
	}
}
