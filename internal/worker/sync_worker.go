// Package worker pushes completed period snapshots from the local SQLite
// store to the household spreadsheet.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"budgetize/internal/amqp"
	"budgetize/internal/storage"
	"budgetize/internal/tabular"
)

// SheetSink is the spreadsheet surface the worker writes to.
type SheetSink interface {
	tabular.ReportSink
	tabular.BudgetStore
}

// SyncWorker mirrors period snapshots from SQLite to Google Sheets. A sync
// message names a (period, revision); the worker reads the full snapshot
// locally and rewrites the spreadsheet. Stale revisions are skipped.
type SyncWorker struct {
	storage *storage.Repository
	sheets  SheetSink

	mu     sync.Mutex
	synced map[string]int64 // period -> last revision pushed
}

func NewSyncWorker(storage *storage.Repository, sheets SheetSink) *SyncWorker {
	return &SyncWorker{
		storage: storage,
		sheets:  sheets,
		synced:  make(map[string]int64),
	}
}

// HandleSyncMessage processes a single snapshot sync message from AMQP.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.SnapshotSyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message",
		"period", msg.Period,
		"revision", msg.Revision)

	period, err := tabular.ParsePeriod(msg.Period)
	if err != nil {
		// Malformed periods can never succeed; report, don't requeue forever.
		slog.ErrorContext(ctx, "Dropping sync message with bad period",
			"period", msg.Period, "error", err)
		return nil
	}

	if w.alreadySynced(msg.Period, msg.Revision) {
		slog.InfoContext(ctx, "Snapshot already synced, skipping",
			"period", msg.Period, "revision", msg.Revision)
		return nil
	}

	if err := w.syncPeriod(ctx, period); err != nil {
		return err
	}
	w.markSynced(msg.Period, msg.Revision)
	return nil
}

// ResyncAll pushes the current snapshot of every known period whose revision
// has moved past the last one pushed. This is the backup mechanism for lost
// AMQP messages and worker downtime; it runs at startup and on a timer.
func (w *SyncWorker) ResyncAll(ctx context.Context) error {
	periods, err := w.storage.Periods(ctx)
	if err != nil {
		return fmt.Errorf("list periods: %w", err)
	}
	if len(periods) == 0 {
		slog.InfoContext(ctx, "No periods to resync")
		return nil
	}

	successCount := 0
	errorCount := 0
	for _, period := range periods {
		revision, err := w.storage.Revision(ctx, period)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to read revision",
				"period", period.String(), "error", err)
			errorCount++
			continue
		}
		if w.alreadySynced(period.String(), revision) {
			continue
		}
		if err := w.syncPeriod(ctx, period); err != nil {
			slog.ErrorContext(ctx, "Failed to resync period",
				"period", period.String(), "error", err)
			errorCount++
			continue
		}
		w.markSynced(period.String(), revision)
		successCount++
	}

	slog.InfoContext(ctx, "Resync pass completed",
		"total", len(periods),
		"synced", successCount,
		"errors", errorCount)
	return nil
}

func (w *SyncWorker) syncPeriod(ctx context.Context, period tabular.Period) error {
	repo := w.storage.ForPeriod(period)

	report, err := repo.LatestReport(ctx, period)
	if err != nil {
		return fmt.Errorf("read burndown report: %w", err)
	}
	if report != nil {
		if err := w.sheets.WriteBurndown(ctx, report); err != nil {
			return fmt.Errorf("write burndown to sheets: %w", err)
		}
	}

	budget, exists, err := repo.ReadBudget(ctx, period)
	if err != nil {
		return fmt.Errorf("read budget snapshot: %w", err)
	}
	if exists {
		if err := w.sheets.WriteBudget(ctx, period, budget); err != nil {
			return fmt.Errorf("write budget to sheets: %w", err)
		}
	}

	slog.InfoContext(ctx, "Period snapshot synced",
		"period", period.String(),
		"has_report", report != nil,
		"has_budget", exists)
	return nil
}

func (w *SyncWorker) alreadySynced(period string, revision int64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	last, ok := w.synced[period]
	return ok && last >= revision
}

func (w *SyncWorker) markSynced(period string, revision int64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.synced[period] < revision {
		w.synced[period] = revision
	}
}
