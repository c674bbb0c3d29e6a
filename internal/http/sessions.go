package http

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"sync"

	"budget/internal/core"
)

const sessionCookie = "budget_session"

// sessionStore maps opaque tokens to identities. Sessions have no expiry;
// they last until logout or process restart.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]core.Identity
}

func newSessionStore() *sessionStore {
	return &sessionStore{sessions: make(map[string]core.Identity)}
}

func (s *sessionStore) Create(id core.Identity) string {
	token := newToken()
	s.mu.Lock()
	s.sessions[token] = id
	s.mu.Unlock()
	return token
}

func (s *sessionStore) Get(token string) (core.Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.sessions[token]
	return id, ok
}

func (s *sessionStore) Delete(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

func newToken() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// currentIdentity resolves the session cookie to an identity.
func (s *Server) currentIdentity(r *http.Request) (core.Identity, bool) {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return core.Identity{}, false
	}
	return s.sessions.Get(c.Value)
}

func (s *Server) setSession(w http.ResponseWriter, id core.Identity) {
	token := s.sessions.Create(id)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSession(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(sessionCookie); err == nil {
		s.sessions.Delete(c.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
