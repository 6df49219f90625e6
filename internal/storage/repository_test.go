package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"budgetize/internal/core"
	"budgetize/internal/ledger"
	"budgetize/internal/tabular"
)

var testPeriod = tabular.Period{Year: 2026, Month: 9}

func openRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(filepath.Join(t.TempDir(), "budgetize.db"), testPeriod)
	if err != nil {
		t.Fatalf("NewRepository() error = %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestBalances_EmptyPeriod(t *testing.T) {
	repo := openRepo(t)

	_, err := repo.Balances(context.Background())
	var empty *core.EmptyFormError
	if !errors.As(err, &empty) {
		t.Fatalf("error = %v, want EmptyFormError", err)
	}
}

func TestBalancesRoundTrip(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	if err := repo.EnsurePeriod(ctx, core.NewDate(2026, 9, 1), core.NewDate(2026, 9, 30)); err != nil {
		t.Fatalf("EnsurePeriod() error = %v", err)
	}

	// A recorded window with no balance rows is still an empty form.
	_, err := repo.Balances(ctx)
	var empty *core.EmptyFormError
	if !errors.As(err, &empty) {
		t.Fatalf("error = %v, want EmptyFormError", err)
	}

	summaries := []core.AccountSummary{
		{Name: "Checking", StartingBalance: core.Money{Cents: 100000}, CurrentBalance: core.Money{Cents: 95000}},
		{Name: "Savings", StartingBalance: core.Money{Cents: 500000}, CurrentBalance: core.Money{Cents: 500000}},
	}
	if err := repo.WriteBalances(ctx, summaries); err != nil {
		t.Fatalf("WriteBalances() error = %v", err)
	}

	sheet, err := repo.Balances(ctx)
	if err != nil {
		t.Fatalf("Balances() error = %v", err)
	}
	if !sheet.Start.Equal(core.NewDate(2026, 9, 1)) || !sheet.End.Equal(core.NewDate(2026, 9, 30)) {
		t.Errorf("window = %s..%s", sheet.Start.Format(), sheet.End.Format())
	}
	if len(sheet.Summaries) != 2 {
		t.Fatalf("summaries = %d, want 2", len(sheet.Summaries))
	}
	if sheet.Summaries[0].Name != "Checking" || sheet.Summaries[0].CurrentBalance.Cents != 95000 {
		t.Errorf("summary = %+v", sheet.Summaries[0])
	}
}

func TestTransactionsRoundTrip(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	tx := core.Transaction{
		Date:        core.NewDate(2026, 9, 5),
		Description: "Dentist",
		Amount:      core.Money{Cents: -15000},
		AccountName: "Checking",
	}
	if err := repo.InsertTransaction(ctx, tx); err != nil {
		t.Fatalf("InsertTransaction() error = %v", err)
	}

	got, err := repo.Transactions(ctx)
	if err != nil {
		t.Fatalf("Transactions() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("transactions = %d, want 1", len(got))
	}
	if !got[0].Date.Equal(tx.Date) || got[0].Amount.Cents != -15000 {
		t.Errorf("round trip = %+v", got[0])
	}
}

func TestRecurringRoundTrip(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	rec, err := tabular.ParseRecurringRow("Rent", "-1200.00", "Checking", "monthly on 1")
	if err != nil {
		t.Fatalf("ParseRecurringRow() error = %v", err)
	}
	if err := repo.InsertRecurring(ctx, rec); err != nil {
		t.Fatalf("InsertRecurring() error = %v", err)
	}

	got, err := repo.RecurringTransactions(ctx)
	if err != nil {
		t.Fatalf("RecurringTransactions() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("recurring = %d, want 1", len(got))
	}
	if got[0].Rule.String() != "monthly on 1" {
		t.Errorf("schedule = %q", got[0].Rule.String())
	}
}

func TestBurndownRoundTrip(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	report := &ledger.Report{
		Start:        core.NewDate(2026, 9, 1),
		End:          core.NewDate(2026, 9, 30),
		AccountNames: []string{"Checking", "Savings"},
		TotalNames:   []string{"Liquid"},
		Rows: []ledger.Row{
			{
				Date:        core.NewDate(2026, 9, 1),
				Description: "Starting Balance",
				Balances:    []core.Money{{Cents: 100000}, {Cents: 500000}},
				Totals:      []core.Money{{Cents: 600000}},
			},
			{
				Date:        core.NewDate(2026, 9, 5),
				Description: "Dentist",
				Amount:      core.Money{Cents: -15000},
				AccountName: "Checking",
				Balances:    []core.Money{{Cents: 85000}, {Cents: 500000}},
				Totals:      []core.Money{{Cents: 585000}},
			},
		},
	}
	if err := repo.WriteBurndown(ctx, report); err != nil {
		t.Fatalf("WriteBurndown() error = %v", err)
	}

	got, err := repo.LatestReport(ctx, testPeriod)
	if err != nil {
		t.Fatalf("LatestReport() error = %v", err)
	}
	if got == nil {
		t.Fatalf("LatestReport() = nil")
	}
	if len(got.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(got.Rows))
	}
	if got.Rows[1].Balances[0].Cents != 85000 || got.Rows[1].Totals[0].Cents != 585000 {
		t.Errorf("row = %+v", got.Rows[1])
	}
	if len(got.AccountNames) != 2 || got.AccountNames[1] != "Savings" {
		t.Errorf("account names = %v", got.AccountNames)
	}

	if latest, err := repo.LatestReport(ctx, tabular.Period{Year: 2026, Month: 10}); err != nil || latest != nil {
		t.Errorf("LatestReport(other period) = %+v, %v", latest, err)
	}
}

func TestActualsPerPeriod(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()
	oct := tabular.Period{Year: 2026, Month: 10}

	actual := core.Transaction{
		Date:        core.NewDate(2026, 9, 10),
		Description: "Weekly shop",
		Category:    "Groceries",
		Amount:      core.Money{Cents: -5000},
		AccountName: "Checking",
	}
	if err := repo.InsertActual(ctx, testPeriod, actual); err != nil {
		t.Fatalf("InsertActual() error = %v", err)
	}

	got, err := repo.Actuals(ctx, testPeriod)
	if err != nil {
		t.Fatalf("Actuals() error = %v", err)
	}
	if len(got) != 1 || got[0].Category != "Groceries" {
		t.Errorf("actuals = %+v", got)
	}

	got, err = repo.Actuals(ctx, oct)
	if err != nil {
		t.Fatalf("Actuals() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("actuals leaked across periods: %+v", got)
	}
}

func TestBudgetRoundTripAndRevision(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	if _, exists, err := repo.ReadBudget(ctx, testPeriod); err != nil || exists {
		t.Fatalf("ReadBudget() before write = exists %v, err %v", exists, err)
	}

	loan := core.NewLoan("Car Loan", 0.06, core.Money{Cents: 1000000})
	loan.EndingBalance = core.Money{Cents: 965000}
	budget := &core.MonthlyBudget{
		Sections: []core.ExpenseSection{
			{
				Category: "Debt",
				Items: []*core.BudgetedExpense{
					{
						Description: "Car payment",
						Target:      core.ParsePaymentTarget("transfer(Checking,Car Loan)"),
						Budgeted:    core.Money{Cents: 35000},
						Spent:       core.Money{Cents: 35000},
					},
				},
			},
		},
		Incomes: []*core.Income{
			{Description: "Paycheck", AccountName: "Checking", Expected: core.Money{Cents: 400000}, Received: core.Money{Cents: 200000}},
		},
		Funds: []core.SinkingFund{
			{Description: "Vacation", AccountName: "Savings", StartingBalance: core.Money{Cents: 50000}, CurrentBalance: core.Money{Cents: 60000}},
		},
		Loans: []*core.Loan{loan},
	}
	if err := repo.WriteBudget(ctx, testPeriod, budget); err != nil {
		t.Fatalf("WriteBudget() error = %v", err)
	}

	got, exists, err := repo.ReadBudget(ctx, testPeriod)
	if err != nil {
		t.Fatalf("ReadBudget() error = %v", err)
	}
	if !exists {
		t.Fatalf("budget missing after write")
	}

	item := got.Sections[0].Items[0]
	if !item.Target.IsTransfer() || item.Target.Loan != "Car Loan" {
		t.Errorf("target = %+v", item.Target)
	}
	if item.Spent.Cents != 35000 {
		t.Errorf("Spent = %d", item.Spent.Cents)
	}
	if got.Incomes[0].Received.Cents != 200000 {
		t.Errorf("Received = %d", got.Incomes[0].Received.Cents)
	}
	if len(got.Funds) != 1 || got.Funds[0].CurrentBalance.Cents != 60000 {
		t.Errorf("funds = %+v", got.Funds)
	}
	if len(got.Loans) != 1 || got.Loans[0].EndingBalance.Cents != 965000 {
		t.Errorf("loans = %+v", got.Loans)
	}

	// The derived payoff period lands in the snapshot row.
	var payoff string
	err = repo.db.QueryRowContext(ctx,
		"SELECT payoff FROM budget_loans WHERE period = ? AND name = ?",
		testPeriod.String(), "Car Loan").Scan(&payoff)
	if err != nil {
		t.Fatalf("read payoff column: %v", err)
	}
	if payoff != "30 mo" {
		t.Errorf("payoff = %q, want %q", payoff, "30 mo")
	}

	rev, err := repo.Revision(ctx, testPeriod)
	if err != nil {
		t.Fatalf("Revision() error = %v", err)
	}
	if rev != 1 {
		t.Errorf("revision = %d, want 1", rev)
	}

	// A second snapshot bumps the revision.
	if err := repo.WriteBudget(ctx, testPeriod, budget); err != nil {
		t.Fatalf("second WriteBudget() error = %v", err)
	}
	rev, err = repo.Revision(ctx, testPeriod)
	if err != nil {
		t.Fatalf("Revision() error = %v", err)
	}
	if rev != 2 {
		t.Errorf("revision = %d, want 2", rev)
	}
}

func TestPeriodsAndForPeriod(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	if err := repo.EnsurePeriod(ctx, core.NewDate(2026, 9, 1), core.NewDate(2026, 9, 30)); err != nil {
		t.Fatalf("EnsurePeriod() error = %v", err)
	}
	oct := repo.ForPeriod(tabular.Period{Year: 2026, Month: 10})
	if err := oct.EnsurePeriod(ctx, core.NewDate(2026, 10, 1), core.NewDate(2026, 10, 31)); err != nil {
		t.Fatalf("EnsurePeriod() error = %v", err)
	}

	periods, err := repo.Periods(ctx)
	if err != nil {
		t.Fatalf("Periods() error = %v", err)
	}
	if len(periods) != 2 || periods[0].Month != 9 || periods[1].Month != 10 {
		t.Errorf("periods = %v", periods)
	}

	// A per-period view keeps its own balance rows.
	if err := oct.WriteBalances(ctx, []core.AccountSummary{
		{Name: "Checking", StartingBalance: core.Money{Cents: 42}, CurrentBalance: core.Money{Cents: 42}},
	}); err != nil {
		t.Fatalf("WriteBalances() error = %v", err)
	}
	if _, err := repo.Balances(ctx); err == nil {
		t.Errorf("september sees october's balances")
	}
}

func TestTotalGroupsRoundTrip(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	groups := []ledger.TotalGroup{
		{Name: "Liquid", Accounts: []string{"Checking", "Savings"}},
		{Name: "Everything", Accounts: []string{"Checking", "Savings", "Brokerage"}},
	}
	if err := repo.ReplaceTotalGroups(ctx, groups); err != nil {
		t.Fatalf("ReplaceTotalGroups() error = %v", err)
	}

	got, err := repo.TotalGroups(ctx)
	if err != nil {
		t.Fatalf("TotalGroups() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("groups = %d, want 2", len(got))
	}
	if got[1].Name != "Everything" || len(got[1].Accounts) != 3 {
		t.Errorf("group = %+v", got[1])
	}
}
