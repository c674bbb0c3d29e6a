// Package memory is an in-process backend with the same semantics as the
// csvfile store; it backs tests and throwaway deployments.
package memory

import (
	"context"
	"sync"

	"budget/internal/core"
)

type Store struct {
	mu    sync.Mutex
	users []core.User
	txs   []core.Transaction
}

func New() *Store {
	return &Store{}
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (*core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (s *Store) CreateUser(_ context.Context, u core.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == u.Username {
			return core.ErrDuplicateUsername
		}
	}
	s.users = append(s.users, u)
	return nil
}

func (s *Store) ListUsers(_ context.Context) ([]core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.User(nil), s.users...), nil
}

func (s *Store) Append(_ context.Context, t core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txs = append(s.txs, t)
	return nil
}

func (s *Store) GetByID(_ context.Context, id string) (*core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.txs {
		if t.ID == id {
			t := t
			return &t, nil
		}
	}
	return nil, nil
}

func (s *Store) ListByCustomer(_ context.Context, customer string) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Transaction
	for _, t := range s.txs {
		if t.Customer == customer {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *Store) ListAll(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.txs...), nil
}

func (s *Store) DeleteByID(_ context.Context, id string) (int, error) {
	return s.deleteWhere(func(t core.Transaction) bool { return t.ID == id })
}

func (s *Store) DeleteByCustomer(_ context.Context, customer string) (int, error) {
	return s.deleteWhere(func(t core.Transaction) bool { return t.Customer == customer })
}

func (s *Store) deleteWhere(match func(core.Transaction) bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.txs[:0]
	removed := 0
	for _, t := range s.txs {
		if match(t) {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	s.txs = kept
	return removed, nil
}
