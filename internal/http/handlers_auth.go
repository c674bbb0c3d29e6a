package http

import (
	"net/http"
	"net/url"

	applog "budget/internal/log"
)

type loginPage struct {
	Error   string
	Message string
}

func (s *Server) renderLogin(w http.ResponseWriter, status int, page loginPage) {
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(status)
	if err := s.templates.ExecuteTemplate(w, "login.html", page); err != nil {
		s.logger.Error("Failed rendering login page", applog.FieldError, err)
	}
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	username := sanitizeInput(r.FormValue("username"))
	password := r.FormValue("password")

	if _, err := s.creds.Register(r.Context(), username, password); err != nil {
		s.renderLogin(w, http.StatusUnprocessableEntity, loginPage{Error: userMessage(err)})
		return
	}
	s.renderLogin(w, http.StatusOK, loginPage{Message: "Signup successful! Please log in."})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	username := sanitizeInput(r.FormValue("username"))
	password := r.FormValue("password")

	id, err := s.creds.Authenticate(r.Context(), username, password)
	if err != nil {
		s.renderLogin(w, http.StatusUnauthorized, loginPage{Error: userMessage(err)})
		return
	}

	s.setSession(w, id)
	s.logger.InfoContext(r.Context(), "User logged in",
		applog.FieldUsername, id.Username,
		applog.FieldCustomerID, id.CustomerID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.clearSession(w, r)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// redirectWithMessage sends the browser back to the dashboard with a flash
// message in the query string.
func redirectWithMessage(w http.ResponseWriter, r *http.Request, msg string) {
	http.Redirect(w, r, "/?msg="+url.QueryEscape(msg), http.StatusSeeOther)
}
