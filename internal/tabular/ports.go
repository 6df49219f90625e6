// Package tabular defines the typed ports onto the tabular storage
// collaborators (spreadsheet, SQLite, in-memory). Rows cross this boundary
// as domain records, never as untyped column maps; parsing of dates,
// amounts, schedule rules and payment targets happens inside the adapters.
package tabular

import (
	"context"
	"fmt"
	"time"

	"budgetize/internal/core"
	"budgetize/internal/ledger"
)

// Period identifies one budgeting month.
type Period struct {
	Year  int
	Month int
}

// String renders the period as "YYYY-MM".
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// ParsePeriod parses "YYYY-MM".
func ParsePeriod(s string) (Period, error) {
	var p Period
	if _, err := fmt.Sscanf(s, "%4d-%2d", &p.Year, &p.Month); err != nil {
		return Period{}, fmt.Errorf("invalid period %q: want YYYY-MM", s)
	}
	if p.Month < 1 || p.Month > 12 {
		return Period{}, fmt.Errorf("invalid period %q: month out of range", s)
	}
	return p, nil
}

// PeriodOf returns the period containing t.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: int(t.Month())}
}

// BalanceSheet is the persisted starting-balance form: the account summaries
// plus the reporting window the form is headed with.
type BalanceSheet struct {
	Start     core.Date
	End       core.Date
	Summaries []core.AccountSummary
}

// Ports for the tabular collaborators.
type (
	// TransactionSource lists one-off transactions. No date filtering
	// happens at read time.
	TransactionSource interface {
		Transactions(ctx context.Context) ([]core.Transaction, error)
	}

	// RecurringSource lists recurring transaction rules. Schedule text is
	// parsed at load; a bad rule surfaces ScheduleFormatError here.
	RecurringSource interface {
		RecurringTransactions(ctx context.Context) ([]ledger.RecurringTransaction, error)
	}

	// BalanceStore reads and writes the account balance form. A form with
	// zero data rows fails with EmptyFormError.
	BalanceStore interface {
		Balances(ctx context.Context) (BalanceSheet, error)
		WriteBalances(ctx context.Context, summaries []core.AccountSummary) error
	}

	// BurndownConfigSource supplies the configured group-total columns.
	BurndownConfigSource interface {
		TotalGroups(ctx context.Context) ([]ledger.TotalGroup, error)
	}

	// ReportSink receives a completed burndown report.
	ReportSink interface {
		WriteBurndown(ctx context.Context, report *ledger.Report) error
	}

	// ActualsSource lists the actual monthly transactions to reconcile
	// against the budget.
	ActualsSource interface {
		Actuals(ctx context.Context, period Period) ([]core.Transaction, error)
	}

	// BudgetStore reads and writes a period's budget snapshot. The bool
	// result reports whether a snapshot existed; re-running a period must
	// re-read existing state rather than recreate it.
	BudgetStore interface {
		ReadBudget(ctx context.Context, period Period) (*core.MonthlyBudget, bool, error)
		WriteBudget(ctx context.Context, period Period, budget *core.MonthlyBudget) error
	}
)
