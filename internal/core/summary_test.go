package core

import (
	"reflect"
	"testing"
)

func tx(date string, cat Category, cents int64, typ TxType) Transaction {
	return Transaction{
		ID:       "tx-" + date + string(cat),
		Date:     date,
		Customer: "alice",
		Category: cat,
		Amount:   Money{Cents: cents},
		Type:     typ,
	}
}

func TestSummarize(t *testing.T) {
	txs := []Transaction{
		tx("2024-01-05", Groceries, 5000, Expense),
		tx("2024-01-10", Salary, 200000, Income),
	}

	got := Summarize(txs)
	want := Summary{
		TotalIncome:  Money{Cents: 200000},
		TotalExpense: Money{Cents: 5000},
		Balance:      Money{Cents: 195000},
	}
	if got != want {
		t.Errorf("Summarize = %+v, want %+v", got, want)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if got := Summarize(nil); got != (Summary{}) {
		t.Errorf("Summarize(nil) = %+v, want zero summary", got)
	}
}

func TestSummarizeCountsUnparseableDates(t *testing.T) {
	txs := []Transaction{
		tx("garbage", Bills, 3000, Expense),
		tx("2024-02-01", Salary, 100000, Income),
	}
	got := Summarize(txs)
	if got.TotalExpense.Cents != 3000 {
		t.Errorf("TotalExpense = %d, want 3000", got.TotalExpense.Cents)
	}
	if got.Balance.Cents != 97000 {
		t.Errorf("Balance = %d, want 97000", got.Balance.Cents)
	}
}

func TestBalanceInvariant(t *testing.T) {
	txs := []Transaction{
		tx("2024-01-01", Salary, 150000, Income),
		tx("2024-01-02", Bills, 40000, Expense),
		tx("2024-02-03", Transport, 2500, Expense),
		tx("bad-date", Other, 999, Income),
	}
	s := Summarize(txs)
	if s.Balance != s.TotalIncome.Sub(s.TotalExpense) {
		t.Errorf("balance %d != income %d - expense %d",
			s.Balance.Cents, s.TotalIncome.Cents, s.TotalExpense.Cents)
	}
}

func TestBreakdownByCategory(t *testing.T) {
	txs := []Transaction{
		tx("2024-01-05", Groceries, 5000, Expense),
		tx("2024-01-10", Salary, 200000, Income), // income never appears
		tx("2024-01-12", Groceries, 2500, Expense),
		tx("2024-01-15", Bills, 8000, Expense),
	}

	got := BreakdownByCategory(txs)
	want := []CategoryAmount{
		{Category: Groceries, Amount: Money{Cents: 7500}},
		{Category: Bills, Amount: Money{Cents: 8000}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BreakdownByCategory = %+v, want %+v", got, want)
	}
}

func TestBreakdownOmitsZeroCategories(t *testing.T) {
	got := BreakdownByCategory([]Transaction{
		tx("2024-01-05", Transport, 1200, Expense),
	})
	if len(got) != 1 || got[0].Category != Transport {
		t.Errorf("BreakdownByCategory = %+v, want only Transport", got)
	}
}

func TestMonthlyTrend(t *testing.T) {
	txs := []Transaction{
		tx("2024-02-10", Salary, 200000, Income),
		tx("2024-01-05", Groceries, 5000, Expense),
		tx("2024-01-10", Salary, 200000, Income),
		tx("not-a-date", Bills, 99999, Expense), // dropped from the trend
	}

	got := MonthlyTrend(txs)
	want := []MonthlyPoint{
		{Month: "2024-01", Income: Money{Cents: 200000}, Expense: Money{Cents: 5000}},
		{Month: "2024-02", Income: Money{Cents: 200000}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MonthlyTrend = %+v, want %+v", got, want)
	}
}

func TestParseDateLayouts(t *testing.T) {
	for _, s := range []string{
		"2024-01-05",
		"2024-01-05 13:30:00",
		"2024-01-05T13:30:00Z",
		"01/05/2024",
	} {
		if _, ok := ParseDate(s); !ok {
			t.Errorf("ParseDate(%q) failed", s)
		}
	}
	if _, ok := ParseDate("5th of January"); ok {
		t.Error("ParseDate accepted garbage")
	}
}

func TestDashboardScenario(t *testing.T) {
	// One expense and one income in the same month.
	txs := []Transaction{
		tx("2024-01-05", Groceries, 5000, Expense),
		tx("2024-01-10", Salary, 200000, Income),
	}

	summary := Summarize(txs)
	if summary.TotalIncome.Cents != 200000 || summary.TotalExpense.Cents != 5000 || summary.Balance.Cents != 195000 {
		t.Errorf("summary = %+v", summary)
	}

	breakdown := BreakdownByCategory(txs)
	if len(breakdown) != 1 || breakdown[0].Category != Groceries || breakdown[0].Amount.Cents != 5000 {
		t.Errorf("breakdown = %+v", breakdown)
	}

	trend := MonthlyTrend(txs)
	if len(trend) != 1 || trend[0].Month != "2024-01" ||
		trend[0].Income.Cents != 200000 || trend[0].Expense.Cents != 5000 {
		t.Errorf("trend = %+v", trend)
	}
}
