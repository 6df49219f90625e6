// Package memory is an in-memory tabular adapter, used by tests and for
// seeding a fresh setup from plain text files.
package memory

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"budgetize/internal/core"
	"budgetize/internal/ledger"
	"budgetize/internal/tabular"
)

// Store holds every tabular form in memory.
type Store struct {
	mu           sync.Mutex
	transactions []core.Transaction
	recurring    []ledger.RecurringTransaction
	balances     tabular.BalanceSheet
	totals       []ledger.TotalGroup
	actuals      map[tabular.Period][]core.Transaction
	budgets      map[tabular.Period]*core.MonthlyBudget
	reports      []*ledger.Report
}

// New creates an empty store.
func New() *Store {
	return &Store{
		actuals: make(map[tabular.Period][]core.Transaction),
		budgets: make(map[tabular.Period]*core.MonthlyBudget),
	}
}

// NewFromFiles seeds a store from pipe-separated text files under base:
// transactions.txt, recurring.txt, balances.txt, burndown.txt. Missing files
// leave the corresponding form empty; malformed rows are dropped.
func NewFromFiles(base string) *Store {
	s := New()
	for _, line := range readLines(filepath.Join(base, "transactions.txt")) {
		if f := splitRow(line, 4); f != nil {
			if t, err := tabular.ParseTransactionRow(f[0], f[1], f[2], f[3]); err == nil {
				s.transactions = append(s.transactions, t)
			}
		}
	}
	for _, line := range readLines(filepath.Join(base, "recurring.txt")) {
		if f := splitRow(line, 4); f != nil {
			if r, err := tabular.ParseRecurringRow(f[0], f[1], f[2], f[3]); err == nil {
				s.recurring = append(s.recurring, r)
			}
		}
	}
	for i, line := range readLines(filepath.Join(base, "balances.txt")) {
		if i == 0 {
			// Header row: start|end reporting window.
			if f := splitRow(line, 2); f != nil {
				s.balances.Start, _ = core.ParseDate(f[0])
				s.balances.End, _ = core.ParseDate(f[1])
			}
			continue
		}
		if f := splitRow(line, 3); f != nil {
			if b, err := tabular.ParseBalanceRow(f[0], f[1], f[2]); err == nil {
				s.balances.Summaries = append(s.balances.Summaries, b)
			}
		}
	}
	for _, line := range readLines(filepath.Join(base, "burndown.txt")) {
		if f := splitRow(line, 2); f != nil {
			if g, ok := tabular.ParseTotalGroupRow(f[0], f[1]); ok {
				s.totals = append(s.totals, g)
			}
		}
	}
	return s
}

// Seed helpers for tests.

func (s *Store) SeedTransactions(ts ...core.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = append(s.transactions, ts...)
}

func (s *Store) SeedRecurring(rs ...ledger.RecurringTransaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recurring = append(s.recurring, rs...)
}

func (s *Store) SeedBalances(sheet tabular.BalanceSheet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balances = sheet
}

func (s *Store) SeedTotals(groups ...ledger.TotalGroup) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.totals = append(s.totals, groups...)
}

func (s *Store) SeedActuals(period tabular.Period, ts ...core.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actuals[period] = append(s.actuals[period], ts...)
}

// Transactions implements tabular.TransactionSource.
func (s *Store) Transactions(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.transactions...), nil
}

// RecurringTransactions implements tabular.RecurringSource.
func (s *Store) RecurringTransactions(_ context.Context) ([]ledger.RecurringTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ledger.RecurringTransaction(nil), s.recurring...), nil
}

// Balances implements tabular.BalanceStore.
func (s *Store) Balances(_ context.Context) (tabular.BalanceSheet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.balances.Summaries) == 0 {
		return tabular.BalanceSheet{}, &core.EmptyFormError{Form: "Balances"}
	}
	sheet := s.balances
	sheet.Summaries = append([]core.AccountSummary(nil), s.balances.Summaries...)
	return sheet, nil
}

// WriteBalances implements tabular.BalanceStore.
func (s *Store) WriteBalances(_ context.Context, summaries []core.AccountSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balances.Summaries = append([]core.AccountSummary(nil), summaries...)
	return nil
}

// TotalGroups implements tabular.BurndownConfigSource.
func (s *Store) TotalGroups(_ context.Context) ([]ledger.TotalGroup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ledger.TotalGroup(nil), s.totals...), nil
}

// WriteBurndown implements tabular.ReportSink.
func (s *Store) WriteBurndown(_ context.Context, report *ledger.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = append(s.reports, report)
	return nil
}

// LastReport returns the most recently written burndown report, for tests.
func (s *Store) LastReport() *ledger.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.reports) == 0 {
		return nil
	}
	return s.reports[len(s.reports)-1]
}

// Actuals implements tabular.ActualsSource.
func (s *Store) Actuals(_ context.Context, period tabular.Period) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.actuals[period]...), nil
}

// ReadBudget implements tabular.BudgetStore.
func (s *Store) ReadBudget(_ context.Context, period tabular.Period) (*core.MonthlyBudget, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	budget, ok := s.budgets[period]
	return budget, ok, nil
}

// WriteBudget implements tabular.BudgetStore.
func (s *Store) WriteBudget(_ context.Context, period tabular.Period, budget *core.MonthlyBudget) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.budgets[period] = budget
	return nil
}

func readLines(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out
}

func splitRow(line string, want int) []string {
	fields := strings.Split(line, "|")
	if len(fields) != want {
		return nil
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}
