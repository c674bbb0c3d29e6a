package http

import (
	"errors"
	"net/http"
	"strconv"

	"budget/internal/core"
	applog "budget/internal/log"
)

func (s *Server) handleAddTransaction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id, ok := s.currentIdentity(r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	date := sanitizeInput(r.FormValue("date"))
	category, err := core.ParseCategory(r.FormValue("category"))
	if err != nil {
		redirectWithMessage(w, r, userMessage(err))
		return
	}
	typ, err := core.ParseTxType(r.FormValue("type"))
	if err != nil {
		redirectWithMessage(w, r, userMessage(err))
		return
	}
	amount, err := core.ParseMoney(r.FormValue("amount"))
	if err != nil || amount.Cents > maxFormCents {
		redirectWithMessage(w, r, userMessage(core.ErrInvalidAmount))
		return
	}

	tx, err := s.ledger.Add(r.Context(), id, date, category, amount, typ)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Failed adding transaction",
			applog.FieldUsername, id.Username,
			applog.FieldError, err)
		redirectWithMessage(w, r, userMessage(err))
		return
	}

	s.dashCache.Delete(id.CustomerID)
	s.logger.InfoContext(r.Context(), "Transaction recorded",
		applog.FieldTxID, tx.ID,
		applog.FieldCustomerID, id.CustomerID)
	redirectWithMessage(w, r, "Transaction added!")
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id, ok := s.currentIdentity(r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	txID := sanitizeInput(r.FormValue("id"))
	if txID == "" {
		redirectWithMessage(w, r, "Transaction not found.")
		return
	}

	n, err := s.ledger.DeleteByID(r.Context(), id, txID)
	if err != nil {
		if errors.Is(err, core.ErrRecordNotFound) {
			redirectWithMessage(w, r, userMessage(err))
			return
		}
		s.logger.ErrorContext(r.Context(), "Failed deleting transaction",
			applog.FieldTxID, txID,
			applog.FieldError, err)
		redirectWithMessage(w, r, userMessage(err))
		return
	}

	s.dashCache.Delete(id.CustomerID)
	if n == 0 {
		redirectWithMessage(w, r, "Transaction not found.")
		return
	}
	redirectWithMessage(w, r, "Transaction deleted.")
}

func (s *Server) handleClearTransactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id, ok := s.currentIdentity(r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	n, err := s.ledger.DeleteAllOwned(r.Context(), id)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Failed clearing transactions",
			applog.FieldUsername, id.Username,
			applog.FieldError, err)
		redirectWithMessage(w, r, userMessage(err))
		return
	}

	s.dashCache.Delete(id.CustomerID)
	redirectWithMessage(w, r, "Removed "+strconv.Itoa(n)+" transactions.")
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id, ok := s.currentIdentity(r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data, err := s.ledger.ExportCSV(r.Context(), id)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Failed exporting transactions",
			applog.FieldUsername, id.Username,
			applog.FieldError, err)
		http.Error(w, "failed to export transactions", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="budget_data.csv"`)
	w.Write(data)
}
