package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"budgetize/internal/core"
	"budgetize/internal/tabular"
)

// SeedSource supplies form rows to copy into a period. The file-backed
// memory store satisfies it, so a period can be populated from seed files.
type SeedSource interface {
	tabular.TransactionSource
	tabular.RecurringSource
	tabular.BalanceStore
	tabular.BurndownConfigSource
	tabular.ActualsSource
}

// Seed copies a source store's rows into the repository's period: the
// reporting window and balance form, one-off and recurring transactions,
// total group columns and the period's actuals. A source without a balance
// form still seeds the rest; the window is left to EnsurePeriod.
func (r *Repository) Seed(ctx context.Context, src SeedSource) error {
	sheet, err := src.Balances(ctx)
	switch {
	case err == nil:
		if err := r.EnsurePeriod(ctx, sheet.Start, sheet.End); err != nil {
			return err
		}
		if err := r.WriteBalances(ctx, sheet.Summaries); err != nil {
			return err
		}
	default:
		var empty *core.EmptyFormError
		if !errors.As(err, &empty) {
			return fmt.Errorf("read seed balances: %w", err)
		}
	}

	transactions, err := src.Transactions(ctx)
	if err != nil {
		return fmt.Errorf("read seed transactions: %w", err)
	}
	for _, tx := range transactions {
		if err := r.InsertTransaction(ctx, tx); err != nil {
			return err
		}
	}

	recurring, err := src.RecurringTransactions(ctx)
	if err != nil {
		return fmt.Errorf("read seed recurring rules: %w", err)
	}
	for _, rule := range recurring {
		if err := r.InsertRecurring(ctx, rule); err != nil {
			return err
		}
	}

	groups, err := src.TotalGroups(ctx)
	if err != nil {
		return fmt.Errorf("read seed total groups: %w", err)
	}
	if len(groups) > 0 {
		if err := r.ReplaceTotalGroups(ctx, groups); err != nil {
			return err
		}
	}

	actuals, err := src.Actuals(ctx, r.period)
	if err != nil {
		return fmt.Errorf("read seed actuals: %w", err)
	}
	for _, tx := range actuals {
		if err := r.InsertActual(ctx, r.period, tx); err != nil {
			return err
		}
	}

	slog.InfoContext(ctx, "Period seeded",
		"period", r.period.String(),
		"transactions", len(transactions),
		"recurring", len(recurring),
		"actuals", len(actuals))
	return nil
}
