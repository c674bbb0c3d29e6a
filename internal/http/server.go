// Package http is the presentation layer: server-rendered pages over the
// credential store and the ledger. It holds no business rules; every
// operation is delegated and every result is translated into a page or a
// redirect.
package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"budget/internal/cache"
	"budget/internal/core"
	applog "budget/internal/log"
	"budget/internal/middleware/ratelimit"
	"budget/internal/middleware/security"
	"budget/internal/services"
	appweb "budget/web"
)

// dashboardView is everything the dashboard template needs, cached per
// customer between requests and invalidated on every mutation.
type dashboardView struct {
	Username     string
	Transactions []core.Transaction
	Summary      core.Summary
	Breakdown    []core.CategoryAmount
	Trend        []core.MonthlyPoint
}

type Server struct {
	http.Server

	templates *template.Template
	creds     *services.CredentialStore
	ledger    *services.Ledger
	sessions  *sessionStore

	rateLimiter *ratelimit.Limiter
	dashCache   *cache.LRUCache[dashboardView]

	stopCacheCleanup chan struct{}
	shutdownOnce     sync.Once
	logger           *applog.Logger
}

// NewServer configures routes, middleware and templates, returning a
// ready-to-run http.Server.
func NewServer(addr string, creds *services.CredentialStore, ledger *services.Ledger, logger *applog.Logger) *Server {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}

	mux := http.NewServeMux()
	s := &Server{
		creds:            creds,
		ledger:           ledger,
		sessions:         newSessionStore(),
		rateLimiter:      ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		dashCache:        cache.NewLRUCache[dashboardView](100, 5*time.Minute),
		stopCacheCleanup: make(chan struct{}),
		logger:           logger.WithComponent(applog.ComponentHTTP),
	}

	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		s.logger.Warn("Failed parsing templates", applog.FieldError, err)
	}
	s.templates = t

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		s.logger.Warn("Failed to mount embedded static FS", applog.FieldError, err)
	}

	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	mux.HandleFunc("/signup", s.handleSignup)
	mux.HandleFunc("/login", s.handleLogin)
	mux.HandleFunc("/logout", s.handleLogout)
	mux.HandleFunc("/transactions", s.handleAddTransaction)
	mux.HandleFunc("/transactions/delete", s.handleDeleteTransaction)
	mux.HandleFunc("/transactions/clear", s.handleClearTransactions)
	mux.HandleFunc("/export.csv", s.handleExportCSV)

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	handler := applog.RequestLogger(logger)(mux)
	handler = s.rateLimiter.Middleware(clientIP)(handler)
	handler = headers.Middleware(handler)

	s.Server = http.Server{
		Addr:    addr,
		Handler: handler,
	}

	go s.startCacheCleanup()
	return s
}

func (s *Server) startCacheCleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if cleaned := s.dashCache.CleanExpired(); cleaned > 0 {
				s.logger.Debug("Cache cleanup completed", "entries_removed", cleaned)
			}
		case <-s.stopCacheCleanup:
			return
		}
	}
}

// Shutdown stops the cleanup goroutines and the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		close(s.stopCacheCleanup)
		s.rateLimiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
