package core

import (
	"sort"
	"time"
)

type (
	// Summary holds the per-identity totals shown on the dashboard.
	// Balance is always TotalIncome - TotalExpense.
	Summary struct {
		TotalIncome  Money
		TotalExpense Money
		Balance      Money
	}

	// CategoryAmount is an expense total for one category.
	CategoryAmount struct {
		Category Category
		Amount   Money
	}

	// MonthlyPoint carries both totals for one year-month bucket.
	MonthlyPoint struct {
		Month   string // YYYY-MM
		Income  Money
		Expense Money
	}
)

// dateLayouts are tried in order when bucketing rows by month. The form
// writes 2006-01-02; the rest cover rows imported from older tables.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
}

// ParseDate parses a stored date string. The second return is false for
// unparseable dates, which are excluded from trend buckets only.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Summarize totals the rows by type. Rows with unparseable dates still
// count. An empty slice yields the zero Summary.
func Summarize(txs []Transaction) Summary {
	var s Summary
	for _, t := range txs {
		switch t.Type {
		case Income:
			s.TotalIncome = s.TotalIncome.Add(t.Amount)
		case Expense:
			s.TotalExpense = s.TotalExpense.Add(t.Amount)
		}
	}
	s.Balance = s.TotalIncome.Sub(s.TotalExpense)
	return s
}

// BreakdownByCategory sums expense rows per category, in the enum's display
// order. Categories with no expense are omitted rather than zero-filled.
func BreakdownByCategory(txs []Transaction) []CategoryAmount {
	sums := make(map[Category]Money)
	for _, t := range txs {
		if t.Type != Expense {
			continue
		}
		sums[t.Category] = sums[t.Category].Add(t.Amount)
	}
	out := make([]CategoryAmount, 0, len(sums))
	for _, c := range Categories() {
		if amt, ok := sums[c]; ok {
			out = append(out, CategoryAmount{Category: c, Amount: amt})
		}
	}
	return out
}

// MonthlyTrend buckets rows by year-month and type, ascending by month.
// Rows whose date does not parse are silently dropped; months with no rows
// are absent rather than zero-filled.
func MonthlyTrend(txs []Transaction) []MonthlyPoint {
	buckets := make(map[string]*MonthlyPoint)
	for _, t := range txs {
		when, ok := ParseDate(t.Date)
		if !ok {
			continue
		}
		month := when.Format("2006-01")
		p, ok := buckets[month]
		if !ok {
			p = &MonthlyPoint{Month: month}
			buckets[month] = p
		}
		switch t.Type {
		case Income:
			p.Income = p.Income.Add(t.Amount)
		case Expense:
			p.Expense = p.Expense.Add(t.Amount)
		}
	}
	out := make([]MonthlyPoint, 0, len(buckets))
	for _, p := range buckets {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}
