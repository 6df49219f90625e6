// Package services orchestrates a full budgeting run: burndown projection,
// actuals reconciliation and snapshot write-back, over any tabular backend.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"budgetize/internal/amqp"
	"budgetize/internal/core"
	"budgetize/internal/ledger"
	"budgetize/internal/tabular"
)

// Store is the full set of tabular collaborators a run needs.
type Store interface {
	tabular.TransactionSource
	tabular.RecurringSource
	tabular.BalanceStore
	tabular.BurndownConfigSource
	tabular.ReportSink
	tabular.ActualsSource
	tabular.BudgetStore
}

// RevisionSource is implemented by stores that version budget snapshots.
// The revision rides on the sync message so the worker can skip stale ones.
type RevisionSource interface {
	Revision(ctx context.Context, period tabular.Period) (int64, error)
}

// DefaultsLoader builds a fresh budget when a period has no snapshot yet.
type DefaultsLoader func() (*core.MonthlyBudget, error)

// RunResult carries everything a run produced, for callers that render or
// assert on the outcome.
type RunResult struct {
	Report  *ledger.Report
	Budget  *core.MonthlyBudget
	Created bool // budget was bootstrapped from defaults this run
}

// PeriodService runs one budgeting period end to end.
type PeriodService struct {
	store      Store
	amqpClient *amqp.Client
	defaults   DefaultsLoader
	period     tabular.Period
	now        func() time.Time
}

func NewPeriodService(store Store, amqpClient *amqp.Client, defaults DefaultsLoader, period tabular.Period) *PeriodService {
	return &PeriodService{
		store:      store,
		amqpClient: amqpClient,
		defaults:   defaults,
		period:     period,
		now:        time.Now,
	}
}

// WithClock overrides the reconciliation clock. Tests use it to pin "today".
func (s *PeriodService) WithClock(now func() time.Time) *PeriodService {
	s.now = now
	return s
}

// Run executes the full pipeline for the service's period:
// burndown projection over the reporting window, balance write-back,
// budget reconciliation against actuals, expected period-end balances,
// snapshot write-back, and an optional sync notification.
func (s *PeriodService) Run(ctx context.Context) (*RunResult, error) {
	// The snapshot is read before the burndown writes replayed balances
	// back: stores that rebuild account state from the balance form must
	// see the form as it stood at the start of the run.
	budget, created, err := s.loadBudget(ctx)
	if err != nil {
		return nil, err
	}

	report, sheet, err := s.runBurndown(ctx)
	if err != nil {
		return nil, err
	}

	// Reconciliation works on the live account state from the balance form,
	// not the projected window-end balances the burndown wrote back.
	if len(budget.Accounts) == 0 {
		for _, summary := range sheet.Summaries {
			budget.Accounts = append(budget.Accounts, summary.Restore())
		}
	}

	actuals, err := s.store.Actuals(ctx, s.period)
	if err != nil {
		return nil, fmt.Errorf("read actuals: %w", err)
	}
	if err := budget.ApplyActuals(s.now(), actuals); err != nil {
		return nil, fmt.Errorf("reconcile actuals: %w", err)
	}

	// Project period-end balances from a clean slate so a re-run does not
	// stack projections on top of the previous one.
	for _, account := range budget.Accounts {
		account.ExpectedEndBalance = account.CurrentBalance
	}
	if err := budget.CalculateExpectedBalances(); err != nil {
		return nil, fmt.Errorf("calculate expected balances: %w", err)
	}

	if err := s.store.WriteBudget(ctx, s.period, budget); err != nil {
		return nil, fmt.Errorf("write budget: %w", err)
	}

	s.publishSyncMessage(ctx)

	slog.InfoContext(ctx, "Period run complete",
		"period", s.period.String(),
		"rows", len(report.Rows),
		"actuals", len(actuals),
		"budget_created", created)

	return &RunResult{Report: report, Budget: budget, Created: created}, nil
}

func (s *PeriodService) runBurndown(ctx context.Context) (*ledger.Report, tabular.BalanceSheet, error) {
	sheet, err := s.store.Balances(ctx)
	if err != nil {
		return nil, sheet, fmt.Errorf("read balances: %w", err)
	}

	oneOff, err := s.store.Transactions(ctx)
	if err != nil {
		return nil, sheet, fmt.Errorf("read transactions: %w", err)
	}
	recurring, err := s.store.RecurringTransactions(ctx)
	if err != nil {
		return nil, sheet, fmt.Errorf("read recurring transactions: %w", err)
	}
	totals, err := s.store.TotalGroups(ctx)
	if err != nil {
		return nil, sheet, fmt.Errorf("read burndown config: %w", err)
	}

	entries := ledger.Build(oneOff, recurring, sheet.Start, sheet.End)
	registry := ledger.NewRegistry(sheet.Summaries)

	report, err := ledger.NewCalculator(registry, totals).Run(entries, sheet.Start, sheet.End)
	if err != nil {
		return nil, sheet, fmt.Errorf("run burndown: %w", err)
	}

	if err := s.store.WriteBurndown(ctx, report); err != nil {
		return nil, sheet, fmt.Errorf("write burndown report: %w", err)
	}
	if err := s.store.WriteBalances(ctx, registry.Summaries()); err != nil {
		return nil, sheet, fmt.Errorf("write balances: %w", err)
	}
	return report, sheet, nil
}

func (s *PeriodService) loadBudget(ctx context.Context) (*core.MonthlyBudget, bool, error) {
	budget, exists, err := s.store.ReadBudget(ctx, s.period)
	if err != nil {
		return nil, false, fmt.Errorf("read budget: %w", err)
	}
	if exists {
		return budget, false, nil
	}
	if s.defaults == nil {
		return &core.MonthlyBudget{}, true, nil
	}
	budget, err = s.defaults()
	if err != nil {
		return nil, false, fmt.Errorf("load budget defaults: %w", err)
	}
	slog.InfoContext(ctx, "Budget bootstrapped from defaults", "period", s.period.String())
	return budget, true, nil
}

func (s *PeriodService) publishSyncMessage(ctx context.Context) {
	if s.amqpClient == nil {
		return
	}
	revision := int64(1)
	if rs, ok := s.store.(RevisionSource); ok {
		if rev, err := rs.Revision(ctx, s.period); err == nil {
			revision = rev
		} else {
			slog.WarnContext(ctx, "Failed to read snapshot revision", "error", err)
		}
	}
	if err := s.amqpClient.PublishSnapshotSync(ctx, s.period.String(), revision); err != nil {
		// The snapshot is already persisted locally; sync will catch up.
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"period", s.period.String(), "error", err)
	}
}
