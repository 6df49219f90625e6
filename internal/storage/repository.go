// Package storage is the SQLite tabular adapter: the period store every
// budgeting run reads from and writes back to when no live spreadsheet is
// attached.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"budgetize/internal/core"
	"budgetize/internal/ledger"
	"budgetize/internal/schedule"
	"budgetize/internal/tabular"

	_ "modernc.org/sqlite"
)

const dbDateLayout = "2006-01-02"

// Repository implements every tabular port over SQLite. The period-less
// ports (transactions, recurring rules, balances, burndown config) operate
// on the period the repository was opened for.
type Repository struct {
	db     *sql.DB
	period tabular.Period
}

var (
	_ tabular.TransactionSource    = (*Repository)(nil)
	_ tabular.RecurringSource      = (*Repository)(nil)
	_ tabular.BalanceStore         = (*Repository)(nil)
	_ tabular.BurndownConfigSource = (*Repository)(nil)
	_ tabular.ReportSink           = (*Repository)(nil)
	_ tabular.ActualsSource        = (*Repository)(nil)
	_ tabular.BudgetStore          = (*Repository)(nil)
)

func NewRepository(dbPath string, period tabular.Period) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db, period: period}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// ForPeriod returns a view of the same database bound to another period.
func (r *Repository) ForPeriod(period tabular.Period) *Repository {
	return &Repository{db: r.db, period: period}
}

// EnsurePeriod records the reporting window for the repository's period.
func (r *Repository) EnsurePeriod(ctx context.Context, start, end core.Date) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO periods (period, start_date, end_date) VALUES (?, ?, ?)
		ON CONFLICT(period) DO UPDATE SET start_date = excluded.start_date, end_date = excluded.end_date`,
		r.period.String(), start.Time.Format(dbDateLayout), end.Time.Format(dbDateLayout))
	if err != nil {
		return fmt.Errorf("ensure period %s: %w", r.period, err)
	}
	return nil
}

// Periods lists every period recorded in the store, oldest first.
func (r *Repository) Periods(ctx context.Context) ([]tabular.Period, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT period FROM periods ORDER BY period`)
	if err != nil {
		return nil, fmt.Errorf("list periods: %w", err)
	}
	defer rows.Close()

	var out []tabular.Period
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan period: %w", err)
		}
		p, err := tabular.ParsePeriod(s)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Revision returns the budget snapshot revision for a period.
func (r *Repository) Revision(ctx context.Context, period tabular.Period) (int64, error) {
	var rev int64
	err := r.db.QueryRowContext(ctx,
		`SELECT revision FROM periods WHERE period = ?`, period.String()).Scan(&rev)
	if err != nil {
		return 0, fmt.Errorf("read revision for %s: %w", period, err)
	}
	return rev, nil
}

// Transactions implements tabular.TransactionSource.
func (r *Repository) Transactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT date, description, amount_cents, account FROM transactions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		var date, description, account string
		var cents int64
		if err := rows.Scan(&date, &description, &cents, &account); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		d, err := parseDBDate(date)
		if err != nil {
			return nil, fmt.Errorf("transaction %q: %w", description, err)
		}
		out = append(out, core.Transaction{
			Date:        d,
			Description: description,
			Amount:      core.Money{Cents: cents},
			AccountName: account,
		})
	}
	return out, rows.Err()
}

// InsertTransaction appends a one-off transaction row.
func (r *Repository) InsertTransaction(ctx context.Context, t core.Transaction) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (date, description, amount_cents, account) VALUES (?, ?, ?, ?)`,
		t.Date.Time.Format(dbDateLayout), t.Description, t.Amount.Cents, t.AccountName)
	if err != nil {
		return fmt.Errorf("insert transaction %q: %w", t.Description, err)
	}
	return nil
}

// RecurringTransactions implements tabular.RecurringSource. Schedule text is
// parsed here; a bad rule fails the load with ScheduleFormatError.
func (r *Repository) RecurringTransactions(ctx context.Context) ([]ledger.RecurringTransaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT description, amount_cents, account, schedule FROM recurring_transactions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list recurring transactions: %w", err)
	}
	defer rows.Close()

	var out []ledger.RecurringTransaction
	for rows.Next() {
		var description, account, scheduleText string
		var cents int64
		if err := rows.Scan(&description, &cents, &account, &scheduleText); err != nil {
			return nil, fmt.Errorf("scan recurring transaction: %w", err)
		}
		rule, err := schedule.Parse(scheduleText)
		if err != nil {
			return nil, err
		}
		out = append(out, ledger.RecurringTransaction{
			Template: core.Transaction{
				Description: description,
				Amount:      core.Money{Cents: cents},
				AccountName: account,
			},
			Rule: rule,
		})
	}
	return out, rows.Err()
}

// InsertRecurring appends a recurring transaction rule.
func (r *Repository) InsertRecurring(ctx context.Context, rt ledger.RecurringTransaction) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO recurring_transactions (description, amount_cents, account, schedule) VALUES (?, ?, ?, ?)`,
		rt.Template.Description, rt.Template.Amount.Cents, rt.Template.AccountName, rt.Rule.String())
	if err != nil {
		return fmt.Errorf("insert recurring %q: %w", rt.Template.Description, err)
	}
	return nil
}

// Balances implements tabular.BalanceStore.
func (r *Repository) Balances(ctx context.Context) (tabular.BalanceSheet, error) {
	var sheet tabular.BalanceSheet
	var start, end string
	err := r.db.QueryRowContext(ctx,
		`SELECT start_date, end_date FROM periods WHERE period = ?`, r.period.String()).Scan(&start, &end)
	if err == sql.ErrNoRows {
		return sheet, &core.EmptyFormError{Form: "Balances"}
	}
	if err != nil {
		return sheet, fmt.Errorf("read period window: %w", err)
	}
	if sheet.Start, err = parseDBDate(start); err != nil {
		return sheet, err
	}
	if sheet.End, err = parseDBDate(end); err != nil {
		return sheet, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT account, starting_cents, ending_cents FROM balances
		WHERE period = ? ORDER BY position`, r.period.String())
	if err != nil {
		return sheet, fmt.Errorf("list balances: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var account string
		var starting, ending int64
		if err := rows.Scan(&account, &starting, &ending); err != nil {
			return sheet, fmt.Errorf("scan balance: %w", err)
		}
		sheet.Summaries = append(sheet.Summaries, core.AccountSummary{
			Name:            account,
			StartingBalance: core.Money{Cents: starting},
			CurrentBalance:  core.Money{Cents: ending},
		})
	}
	if err := rows.Err(); err != nil {
		return sheet, err
	}
	if len(sheet.Summaries) == 0 {
		return sheet, &core.EmptyFormError{Form: "Balances"}
	}
	return sheet, nil
}

// WriteBalances implements tabular.BalanceStore.
func (r *Repository) WriteBalances(ctx context.Context, summaries []core.AccountSummary) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin write balances: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM balances WHERE period = ?`, r.period.String()); err != nil {
		return fmt.Errorf("clear balances: %w", err)
	}
	for i, s := range summaries {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO balances (period, position, account, starting_cents, ending_cents)
			VALUES (?, ?, ?, ?, ?)`,
			r.period.String(), i, s.Name, s.StartingBalance.Cents, s.CurrentBalance.Cents)
		if err != nil {
			return fmt.Errorf("write balance for %q: %w", s.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit balances: %w", err)
	}
	slog.InfoContext(ctx, "Balances written", "period", r.period.String(), "accounts", len(summaries))
	return nil
}

// TotalGroups implements tabular.BurndownConfigSource.
func (r *Repository) TotalGroups(ctx context.Context) ([]ledger.TotalGroup, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT name, accounts FROM burndown_config WHERE period = ? ORDER BY position`,
		r.period.String())
	if err != nil {
		return nil, fmt.Errorf("list burndown config: %w", err)
	}
	defer rows.Close()

	var out []ledger.TotalGroup
	for rows.Next() {
		var name, accounts string
		if err := rows.Scan(&name, &accounts); err != nil {
			return nil, fmt.Errorf("scan burndown config: %w", err)
		}
		group := ledger.TotalGroup{Name: name}
		for _, a := range strings.Split(accounts, ",") {
			if a = strings.TrimSpace(a); a != "" {
				group.Accounts = append(group.Accounts, a)
			}
		}
		out = append(out, group)
	}
	return out, rows.Err()
}

// ReplaceTotalGroups rewrites the burndown configuration for the period.
func (r *Repository) ReplaceTotalGroups(ctx context.Context, groups []ledger.TotalGroup) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace totals: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM burndown_config WHERE period = ?`, r.period.String()); err != nil {
		return fmt.Errorf("clear burndown config: %w", err)
	}
	for i, g := range groups {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO burndown_config (period, position, name, accounts) VALUES (?, ?, ?, ?)`,
			r.period.String(), i, g.Name, strings.Join(g.Accounts, ","))
		if err != nil {
			return fmt.Errorf("write total group %q: %w", g.Name, err)
		}
	}
	return tx.Commit()
}

// WriteBurndown implements tabular.ReportSink.
func (r *Repository) WriteBurndown(ctx context.Context, report *ledger.Report) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin write burndown: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO burndown_reports (period, start_date, end_date, account_names, total_names)
		VALUES (?, ?, ?, ?, ?)`,
		r.period.String(),
		report.Start.Time.Format(dbDateLayout),
		report.End.Time.Format(dbDateLayout),
		strings.Join(report.AccountNames, ","),
		strings.Join(report.TotalNames, ","))
	if err != nil {
		return fmt.Errorf("insert burndown report: %w", err)
	}
	reportID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("burndown report id: %w", err)
	}

	for i, row := range report.Rows {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO burndown_rows (report_id, seq, date, description, amount_cents, account, balances, totals)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			reportID, i,
			row.Date.Time.Format(dbDateLayout),
			row.Description, row.Amount.Cents, row.AccountName,
			joinCents(row.Balances), joinCents(row.Totals))
		if err != nil {
			return fmt.Errorf("insert burndown row %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit burndown report: %w", err)
	}
	slog.InfoContext(ctx, "Burndown report written",
		"period", r.period.String(), "rows", len(report.Rows))
	return nil
}

// LatestReport returns the most recent burndown report for a period, or nil
// if none has been written.
func (r *Repository) LatestReport(ctx context.Context, period tabular.Period) (*ledger.Report, error) {
	var reportID int64
	var start, end, accountNames, totalNames string
	err := r.db.QueryRowContext(ctx, `
		SELECT id, start_date, end_date, account_names, total_names
		FROM burndown_reports WHERE period = ? ORDER BY id DESC LIMIT 1`,
		period.String()).Scan(&reportID, &start, &end, &accountNames, &totalNames)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read burndown report: %w", err)
	}

	report := &ledger.Report{
		AccountNames: splitNames(accountNames),
		TotalNames:   splitNames(totalNames),
	}
	if report.Start, err = parseDBDate(start); err != nil {
		return nil, err
	}
	if report.End, err = parseDBDate(end); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT date, description, amount_cents, account, balances, totals
		FROM burndown_rows WHERE report_id = ? ORDER BY seq`, reportID)
	if err != nil {
		return nil, fmt.Errorf("list burndown rows: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var date, description, account, balances, totals string
		var cents int64
		if err := rows.Scan(&date, &description, &cents, &account, &balances, &totals); err != nil {
			return nil, fmt.Errorf("scan burndown row: %w", err)
		}
		row := ledger.Row{
			Description: description,
			Amount:      core.Money{Cents: cents},
			AccountName: account,
		}
		if row.Date, err = parseDBDate(date); err != nil {
			return nil, err
		}
		if row.Balances, err = splitCents(balances); err != nil {
			return nil, err
		}
		if row.Totals, err = splitCents(totals); err != nil {
			return nil, err
		}
		report.Rows = append(report.Rows, row)
	}
	return report, rows.Err()
}

// Actuals implements tabular.ActualsSource.
func (r *Repository) Actuals(ctx context.Context, period tabular.Period) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT date, description, category, amount_cents, account
		FROM actuals WHERE period = ? ORDER BY id`, period.String())
	if err != nil {
		return nil, fmt.Errorf("list actuals: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		var date, description, category, account string
		var cents int64
		if err := rows.Scan(&date, &description, &category, &cents, &account); err != nil {
			return nil, fmt.Errorf("scan actual: %w", err)
		}
		d, err := parseDBDate(date)
		if err != nil {
			return nil, fmt.Errorf("actual %q: %w", description, err)
		}
		out = append(out, core.Transaction{
			Date:        d,
			Description: description,
			Category:    category,
			Amount:      core.Money{Cents: cents},
			AccountName: account,
		})
	}
	return out, rows.Err()
}

// InsertActual appends a monthly actual transaction.
func (r *Repository) InsertActual(ctx context.Context, period tabular.Period, t core.Transaction) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO actuals (period, date, description, category, amount_cents, account)
		VALUES (?, ?, ?, ?, ?, ?)`,
		period.String(), t.Date.Time.Format(dbDateLayout),
		t.Description, t.Category, t.Amount.Cents, t.AccountName)
	if err != nil {
		return fmt.Errorf("insert actual %q: %w", t.Description, err)
	}
	return nil
}

// ReadBudget implements tabular.BudgetStore.
func (r *Repository) ReadBudget(ctx context.Context, period tabular.Period) (*core.MonthlyBudget, bool, error) {
	budget := &core.MonthlyBudget{}

	expenses, err := r.db.QueryContext(ctx, `
		SELECT category, description, account, budgeted_cents, spent_cents
		FROM budget_expenses WHERE period = ? ORDER BY section_pos, position`, period.String())
	if err != nil {
		return nil, false, fmt.Errorf("list budget expenses: %w", err)
	}
	defer expenses.Close()

	for expenses.Next() {
		var category, description, account string
		var budgeted, spent int64
		if err := expenses.Scan(&category, &description, &account, &budgeted, &spent); err != nil {
			return nil, false, fmt.Errorf("scan budget expense: %w", err)
		}
		item := &core.BudgetedExpense{
			Description: description,
			Target:      core.ParsePaymentTarget(account),
			Budgeted:    core.Money{Cents: budgeted},
			Spent:       core.Money{Cents: spent},
		}
		if section, ok := budget.Section(category); ok {
			section.Items = append(section.Items, item)
		} else {
			budget.Sections = append(budget.Sections, core.ExpenseSection{
				Category: category,
				Items:    []*core.BudgetedExpense{item},
			})
		}
	}
	if err := expenses.Err(); err != nil {
		return nil, false, err
	}

	incomes, err := r.db.QueryContext(ctx, `
		SELECT description, account, expected_cents, received_cents
		FROM budget_incomes WHERE period = ? ORDER BY position`, period.String())
	if err != nil {
		return nil, false, fmt.Errorf("list budget incomes: %w", err)
	}
	defer incomes.Close()

	for incomes.Next() {
		var description, account string
		var expected, received int64
		if err := incomes.Scan(&description, &account, &expected, &received); err != nil {
			return nil, false, fmt.Errorf("scan budget income: %w", err)
		}
		budget.Incomes = append(budget.Incomes, &core.Income{
			Description: description,
			AccountName: account,
			Expected:    core.Money{Cents: expected},
			Received:    core.Money{Cents: received},
		})
	}
	if err := incomes.Err(); err != nil {
		return nil, false, err
	}

	funds, err := r.db.QueryContext(ctx, `
		SELECT description, account, starting_cents, current_cents, expected_cents
		FROM budget_funds WHERE period = ? ORDER BY position`, period.String())
	if err != nil {
		return nil, false, fmt.Errorf("list budget funds: %w", err)
	}
	defer funds.Close()

	for funds.Next() {
		var description, account string
		var starting, current, expected int64
		if err := funds.Scan(&description, &account, &starting, &current, &expected); err != nil {
			return nil, false, fmt.Errorf("scan budget fund: %w", err)
		}
		budget.Funds = append(budget.Funds, core.SinkingFund{
			Description:        description,
			AccountName:        account,
			StartingBalance:    core.Money{Cents: starting},
			CurrentBalance:     core.Money{Cents: current},
			ExpectedEndBalance: core.Money{Cents: expected},
		})
	}
	if err := funds.Err(); err != nil {
		return nil, false, err
	}

	loans, err := r.db.QueryContext(ctx, `
		SELECT name, apr, starting_cents, ending_cents
		FROM budget_loans WHERE period = ? ORDER BY position`, period.String())
	if err != nil {
		return nil, false, fmt.Errorf("list budget loans: %w", err)
	}
	defer loans.Close()

	for loans.Next() {
		var name string
		var apr float64
		var starting, ending int64
		if err := loans.Scan(&name, &apr, &starting, &ending); err != nil {
			return nil, false, fmt.Errorf("scan budget loan: %w", err)
		}
		loan := core.NewLoan(name, apr, core.Money{Cents: starting})
		loan.EndingBalance = core.Money{Cents: ending}
		budget.Loans = append(budget.Loans, loan)
	}
	if err := loans.Err(); err != nil {
		return nil, false, err
	}

	// Rebuild live account state from the balance form.
	sheet, err := r.ForPeriod(period).Balances(ctx)
	if err == nil {
		for _, s := range sheet.Summaries {
			budget.Accounts = append(budget.Accounts, s.Restore())
		}
	}

	exists := len(budget.Sections) > 0 || len(budget.Incomes) > 0
	if !exists {
		return nil, false, nil
	}
	return budget, true, nil
}

// WriteBudget implements tabular.BudgetStore. The write replaces the
// period's snapshot wholesale and bumps its revision.
func (r *Repository) WriteBudget(ctx context.Context, period tabular.Period, budget *core.MonthlyBudget) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin write budget: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"budget_expenses", "budget_incomes", "budget_funds", "budget_loans"} {
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM "+table+" WHERE period = ?", period.String()); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for si, section := range budget.Sections {
		for i, item := range section.Items {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO budget_expenses (period, category, section_pos, position, description, account, budgeted_cents, spent_cents)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				period.String(), section.Category, si, i,
				item.Description, item.Target.String(), item.Budgeted.Cents, item.Spent.Cents)
			if err != nil {
				return fmt.Errorf("write expense %q: %w", item.Description, err)
			}
		}
	}
	for i, income := range budget.Incomes {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO budget_incomes (period, position, description, account, expected_cents, received_cents)
			VALUES (?, ?, ?, ?, ?, ?)`,
			period.String(), i, income.Description, income.AccountName,
			income.Expected.Cents, income.Received.Cents)
		if err != nil {
			return fmt.Errorf("write income %q: %w", income.Description, err)
		}
	}
	for i, fund := range budget.Funds {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO budget_funds (period, position, description, account, starting_cents, current_cents, expected_cents)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			period.String(), i, fund.Description, fund.AccountName,
			fund.StartingBalance.Cents, fund.CurrentBalance.Cents, fund.ExpectedEndBalance.Cents)
		if err != nil {
			return fmt.Errorf("write fund %q: %w", fund.Description, err)
		}
	}
	for i, loan := range budget.Loans {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO budget_loans (period, position, name, apr, starting_cents, ending_cents, payoff)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			period.String(), i, loan.Name, loan.APR,
			loan.StartingBalance.Cents, loan.EndingBalance.Cents, loan.PayoffLabel())
		if err != nil {
			return fmt.Errorf("write loan %q: %w", loan.Name, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO periods (period, start_date, end_date, revision) VALUES (?, '', '', 1)
		ON CONFLICT(period) DO UPDATE SET revision = revision + 1`,
		period.String()); err != nil {
		return fmt.Errorf("bump revision: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit budget: %w", err)
	}
	slog.InfoContext(ctx, "Budget snapshot written",
		"period", period.String(),
		"sections", len(budget.Sections),
		"incomes", len(budget.Incomes))
	return nil
}

func parseDBDate(s string) (core.Date, error) {
	t, err := time.Parse(dbDateLayout, s)
	if err != nil {
		return core.Date{}, fmt.Errorf("invalid stored date %q: %w", s, err)
	}
	return core.DateOf(t), nil
}

func joinCents(amounts []core.Money) string {
	parts := make([]string, len(amounts))
	for i, m := range amounts {
		parts[i] = strconv.FormatInt(m.Cents, 10)
	}
	return strings.Join(parts, ",")
}

func splitCents(s string) ([]core.Money, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]core.Money, len(parts))
	for i, p := range parts {
		cents, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid stored amount %q: %w", p, err)
		}
		out[i] = core.Money{Cents: cents}
	}
	return out, nil
}

func splitNames(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
