package worker

import (
	"context"
	"path/filepath"
	"testing"

	"budgetize/internal/amqp"
	"budgetize/internal/core"
	"budgetize/internal/ledger"
	"budgetize/internal/storage"
	"budgetize/internal/tabular"
)

type fakeSheets struct {
	reports []*ledger.Report
	budgets map[tabular.Period]*core.MonthlyBudget
}

func newFakeSheets() *fakeSheets {
	return &fakeSheets{budgets: make(map[tabular.Period]*core.MonthlyBudget)}
}

func (f *fakeSheets) WriteBurndown(_ context.Context, report *ledger.Report) error {
	f.reports = append(f.reports, report)
	return nil
}

func (f *fakeSheets) ReadBudget(_ context.Context, period tabular.Period) (*core.MonthlyBudget, bool, error) {
	b, ok := f.budgets[period]
	return b, ok, nil
}

func (f *fakeSheets) WriteBudget(_ context.Context, period tabular.Period, budget *core.MonthlyBudget) error {
	f.budgets[period] = budget
	return nil
}

var testPeriod = tabular.Period{Year: 2026, Month: 9}

func seededRepo(t *testing.T) *storage.Repository {
	t.Helper()
	repo, err := storage.NewRepository(filepath.Join(t.TempDir(), "budgetize.db"), testPeriod)
	if err != nil {
		t.Fatalf("NewRepository() error = %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	ctx := context.Background()
	report := &ledger.Report{
		Start:        core.NewDate(2026, 9, 1),
		End:          core.NewDate(2026, 9, 30),
		AccountNames: []string{"Checking"},
		Rows: []ledger.Row{
			{Date: core.NewDate(2026, 9, 1), Description: "Starting Balance", Balances: []core.Money{{Cents: 100000}}},
		},
	}
	if err := repo.WriteBurndown(ctx, report); err != nil {
		t.Fatalf("WriteBurndown() error = %v", err)
	}
	budget := &core.MonthlyBudget{
		Incomes: []*core.Income{{Description: "Paycheck", AccountName: "Checking", Expected: core.Money{Cents: 400000}}},
	}
	if err := repo.WriteBudget(ctx, testPeriod, budget); err != nil {
		t.Fatalf("WriteBudget() error = %v", err)
	}
	return repo
}

func TestHandleSyncMessage(t *testing.T) {
	repo := seededRepo(t)
	sheets := newFakeSheets()
	w := NewSyncWorker(repo, sheets)

	msg := amqp.NewSnapshotSyncMessage(testPeriod.String(), 1)
	if err := w.HandleSyncMessage(context.Background(), msg); err != nil {
		t.Fatalf("HandleSyncMessage() error = %v", err)
	}

	if len(sheets.reports) != 1 {
		t.Fatalf("reports pushed = %d, want 1", len(sheets.reports))
	}
	budget, ok := sheets.budgets[testPeriod]
	if !ok {
		t.Fatalf("budget not pushed")
	}
	if budget.Incomes[0].Description != "Paycheck" {
		t.Errorf("budget = %+v", budget)
	}
}

func TestHandleSyncMessage_SkipsStaleRevision(t *testing.T) {
	repo := seededRepo(t)
	sheets := newFakeSheets()
	w := NewSyncWorker(repo, sheets)

	ctx := context.Background()
	if err := w.HandleSyncMessage(ctx, amqp.NewSnapshotSyncMessage(testPeriod.String(), 2)); err != nil {
		t.Fatalf("HandleSyncMessage() error = %v", err)
	}
	if err := w.HandleSyncMessage(ctx, amqp.NewSnapshotSyncMessage(testPeriod.String(), 1)); err != nil {
		t.Fatalf("HandleSyncMessage() error = %v", err)
	}
	if err := w.HandleSyncMessage(ctx, amqp.NewSnapshotSyncMessage(testPeriod.String(), 2)); err != nil {
		t.Fatalf("HandleSyncMessage() error = %v", err)
	}

	if len(sheets.reports) != 1 {
		t.Errorf("reports pushed = %d, want 1", len(sheets.reports))
	}

	// A newer revision goes through.
	if err := w.HandleSyncMessage(ctx, amqp.NewSnapshotSyncMessage(testPeriod.String(), 3)); err != nil {
		t.Fatalf("HandleSyncMessage() error = %v", err)
	}
	if len(sheets.reports) != 2 {
		t.Errorf("reports pushed = %d, want 2", len(sheets.reports))
	}
}

func TestHandleSyncMessage_DropsBadPeriod(t *testing.T) {
	repo := seededRepo(t)
	sheets := newFakeSheets()
	w := NewSyncWorker(repo, sheets)

	// Unparseable periods are dropped, not requeued.
	if err := w.HandleSyncMessage(context.Background(), amqp.NewSnapshotSyncMessage("september", 1)); err != nil {
		t.Fatalf("HandleSyncMessage() error = %v", err)
	}
	if len(sheets.reports) != 0 {
		t.Errorf("bad period produced a push")
	}
}

func TestResyncAll(t *testing.T) {
	repo := seededRepo(t)
	sheets := newFakeSheets()
	w := NewSyncWorker(repo, sheets)

	ctx := context.Background()
	if err := w.ResyncAll(ctx); err != nil {
		t.Fatalf("ResyncAll() error = %v", err)
	}
	if len(sheets.reports) != 1 {
		t.Fatalf("reports pushed = %d, want 1", len(sheets.reports))
	}

	// Unchanged revisions are skipped on the next pass.
	if err := w.ResyncAll(ctx); err != nil {
		t.Fatalf("second ResyncAll() error = %v", err)
	}
	if len(sheets.reports) != 1 {
		t.Errorf("reports pushed = %d, want 1 after idle pass", len(sheets.reports))
	}

	// A new snapshot revision triggers another push.
	budget := &core.MonthlyBudget{
		Incomes: []*core.Income{{Description: "Paycheck", AccountName: "Checking", Expected: core.Money{Cents: 400000}}},
	}
	if err := repo.WriteBudget(ctx, testPeriod, budget); err != nil {
		t.Fatalf("WriteBudget() error = %v", err)
	}
	if err := w.ResyncAll(ctx); err != nil {
		t.Fatalf("third ResyncAll() error = %v", err)
	}
	if len(sheets.reports) != 2 {
		t.Errorf("reports pushed = %d, want 2 after revision bump", len(sheets.reports))
	}
}

func TestResyncAll_EmptyStore(t *testing.T) {
	repo, err := storage.NewRepository(filepath.Join(t.TempDir(), "budgetize.db"), testPeriod)
	if err != nil {
		t.Fatalf("NewRepository() error = %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	w := NewSyncWorker(repo, newFakeSheets())
	if err := w.ResyncAll(context.Background()); err != nil {
		t.Fatalf("ResyncAll() error = %v", err)
	}
}
