// Package google adapts a Google Sheets spreadsheet to the tabular ports.
// The spreadsheet is the household-facing surface: transactions and balances
// are read from entry sheets, the burndown table and budget snapshot are
// written back.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"budgetize/internal/core"
	"budgetize/internal/ledger"
	"budgetize/internal/schedule"
	"budgetize/internal/tabular"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

const currencyPattern = "$#,##0.00"

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string

	transactionsSheet string
	recurringSheet    string
	balancesSheet     string
	configSheet       string
	burndownSheet     string
	budgetSheet       string
	actualsSheet      string
}

// Ensure interface conformance
var (
	_ tabular.TransactionSource    = (*Client)(nil)
	_ tabular.RecurringSource      = (*Client)(nil)
	_ tabular.BalanceStore         = (*Client)(nil)
	_ tabular.BurndownConfigSource = (*Client)(nil)
	_ tabular.ReportSink           = (*Client)(nil)
	_ tabular.ActualsSource        = (*Client)(nil)
	_ tabular.BudgetStore          = (*Client)(nil)
)

// NewFromEnv creates a Sheets client using environment variables.
// Required: GOOGLE_SPREADSHEET_ID.
// Sheet names are overridable via TRANSACTIONS_SHEET_NAME,
// RECURRING_SHEET_NAME, BALANCES_SHEET_NAME, CONFIG_SHEET_NAME,
// BURNDOWN_SHEET_NAME, BUDGET_SHEET_NAME and ACTUALS_SHEET_NAME.
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:               svc,
		spreadsheetID:     spreadsheetID,
		transactionsSheet: envOr("TRANSACTIONS_SHEET_NAME", "Transactions"),
		recurringSheet:    envOr("RECURRING_SHEET_NAME", "Recurring Transactions"),
		balancesSheet:     envOr("BALANCES_SHEET_NAME", "Balances"),
		configSheet:       envOr("CONFIG_SHEET_NAME", "Config"),
		burndownSheet:     envOr("BURNDOWN_SHEET_NAME", "Burndown Table"),
		budgetSheet:       envOr("BUDGET_SHEET_NAME", "Monthly Budget"),
		actualsSheet:      envOr("ACTUALS_SHEET_NAME", "Actuals"),
	}, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// newSheetsService initializes a Sheets Service using Service Account credentials.
// Uses GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

func (c *Client) readRange(ctx context.Context, sheetName, cells string) ([][]string, error) {
	rng := fmt.Sprintf("%s!%s", sheetName, cells)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	out := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		out = append(out, toStrings(row))
	}
	return out, nil
}

func (c *Client) writeRange(ctx context.Context, sheetName, cells string, values [][]any) error {
	rng := fmt.Sprintf("%s!%s", sheetName, cells)
	vr := &gsheet.ValueRange{Values: values}
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update %s: %w", rng, err)
	}
	return nil
}

func (c *Client) clearRange(ctx context.Context, sheetName, cells string) error {
	rng := fmt.Sprintf("%s!%s", sheetName, cells)
	_, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, rng, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clear %s: %w", rng, err)
	}
	return nil
}

// Transactions reads the one-off entry sheet. Columns: Date, Description,
// Amount, Account, data rows from row 2.
func (c *Client) Transactions(ctx context.Context) ([]core.Transaction, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	rows, err := c.readRange(ctx, c.transactionsSheet, "A2:D")
	if err != nil {
		return nil, err
	}
	var out []core.Transaction
	for i, cols := range rows {
		if isBlank(cols) {
			continue
		}
		if len(cols) < 4 {
			return nil, fmt.Errorf("sheet %s row %d: expected 4 columns, got %d", c.transactionsSheet, i+2, len(cols))
		}
		t, err := parseTransaction(cols[0], cols[1], cols[2], cols[3])
		if err != nil {
			return nil, fmt.Errorf("sheet %s row %d: %w", c.transactionsSheet, i+2, err)
		}
		out = append(out, t)
	}
	return out, nil
}

// RecurringTransactions reads the recurring entry sheet. Columns:
// Description, Amount, Account, Schedule.
func (c *Client) RecurringTransactions(ctx context.Context) ([]ledger.RecurringTransaction, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	rows, err := c.readRange(ctx, c.recurringSheet, "A2:D")
	if err != nil {
		return nil, err
	}
	var out []ledger.RecurringTransaction
	for i, cols := range rows {
		if isBlank(cols) {
			continue
		}
		if len(cols) < 4 {
			return nil, fmt.Errorf("sheet %s row %d: expected 4 columns, got %d", c.recurringSheet, i+2, len(cols))
		}
		amount, ok := parseAmountCents(cols[1])
		if !ok {
			return nil, fmt.Errorf("sheet %s row %d: invalid amount %q", c.recurringSheet, i+2, cols[1])
		}
		rule, err := schedule.Parse(cols[3])
		if err != nil {
			return nil, err
		}
		out = append(out, ledger.RecurringTransaction{
			Template: core.Transaction{
				Description: strings.TrimSpace(cols[0]),
				Amount:      core.Money{Cents: amount},
				AccountName: strings.TrimSpace(cols[2]),
			},
			Rule: rule,
		})
	}
	return out, nil
}

// Balances reads the balance sheet. Row 1 holds the reporting window in D1
// and E1; data rows from row 2 are Account, Starting, Ending.
func (c *Client) Balances(ctx context.Context) (tabular.BalanceSheet, error) {
	var sheet tabular.BalanceSheet
	if c.svc == nil {
		return sheet, errors.New("sheets service not initialized")
	}
	rows, err := c.readRange(ctx, c.balancesSheet, "A1:E")
	if err != nil {
		return sheet, err
	}
	if len(rows) == 0 || len(rows[0]) < 5 {
		return sheet, &core.EmptyFormError{Form: c.balancesSheet}
	}
	if sheet.Start, err = core.ParseDate(rows[0][3]); err != nil {
		return sheet, fmt.Errorf("sheet %s window start: %w", c.balancesSheet, err)
	}
	if sheet.End, err = core.ParseDate(rows[0][4]); err != nil {
		return sheet, fmt.Errorf("sheet %s window end: %w", c.balancesSheet, err)
	}
	for i, cols := range rows[1:] {
		if isBlank(cols) {
			continue
		}
		if len(cols) < 2 {
			return sheet, fmt.Errorf("sheet %s row %d: expected at least 2 columns", c.balancesSheet, i+2)
		}
		starting, ok := parseAmountCents(cols[1])
		if !ok {
			return sheet, fmt.Errorf("sheet %s row %d: invalid starting balance %q", c.balancesSheet, i+2, cols[1])
		}
		summary := core.AccountSummary{
			Name:            strings.TrimSpace(cols[0]),
			StartingBalance: core.Money{Cents: starting},
			CurrentBalance:  core.Money{Cents: starting},
		}
		if len(cols) >= 3 && strings.TrimSpace(cols[2]) != "" {
			ending, ok := parseAmountCents(cols[2])
			if !ok {
				return sheet, fmt.Errorf("sheet %s row %d: invalid ending balance %q", c.balancesSheet, i+2, cols[2])
			}
			summary.CurrentBalance = core.Money{Cents: ending}
		}
		sheet.Summaries = append(sheet.Summaries, summary)
	}
	if len(sheet.Summaries) == 0 {
		return sheet, &core.EmptyFormError{Form: c.balancesSheet}
	}
	return sheet, nil
}

// WriteBalances rewrites the ending-balance column in entry order.
func (c *Client) WriteBalances(ctx context.Context, summaries []core.AccountSummary) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}
	values := make([][]any, 0, len(summaries))
	for _, s := range summaries {
		values = append(values, []any{s.Name, cellAmount(s.StartingBalance), cellAmount(s.CurrentBalance)})
	}
	cells := fmt.Sprintf("A2:C%d", len(summaries)+1)
	if err := c.writeRange(ctx, c.balancesSheet, cells, values); err != nil {
		return err
	}
	c.applyCurrencyFormat(ctx, c.balancesSheet, 1, 3, 1, int64(len(summaries)+1))
	slog.InfoContext(ctx, "Balances written", "sheet", c.balancesSheet, "accounts", len(summaries))
	return nil
}

// TotalGroups reads the config sheet: key/value rows where a "total:<name>"
// key maps to a comma-separated account list.
func (c *Client) TotalGroups(ctx context.Context) ([]ledger.TotalGroup, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	rows, err := c.readRange(ctx, c.configSheet, "A1:B")
	if err != nil {
		return nil, err
	}
	var out []ledger.TotalGroup
	for _, cols := range rows {
		if len(cols) < 2 {
			continue
		}
		if group, ok := tabular.ParseTotalGroupRow(cols[0], cols[1]); ok {
			out = append(out, group)
		}
	}
	return out, nil
}

// WriteBurndown replaces the burndown sheet with the full projection table.
func (c *Client) WriteBurndown(ctx context.Context, report *ledger.Report) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}
	if err := c.clearRange(ctx, c.burndownSheet, "A:Z"); err != nil {
		return err
	}

	header := []any{"Date", "Description", "Amount", "Account"}
	for _, name := range report.AccountNames {
		header = append(header, name)
	}
	for _, name := range report.TotalNames {
		header = append(header, name)
	}
	values := [][]any{header}
	for _, row := range report.Rows {
		cells := []any{row.Date.Format(), row.Description, cellAmount(row.Amount), row.AccountName}
		for _, b := range row.Balances {
			cells = append(cells, cellAmount(b))
		}
		for _, t := range row.Totals {
			cells = append(cells, cellAmount(t))
		}
		values = append(values, cells)
	}

	lastCol := columnLetter(len(header))
	cells := fmt.Sprintf("A1:%s%d", lastCol, len(values))
	if err := c.writeRange(ctx, c.burndownSheet, cells, values); err != nil {
		return err
	}
	c.applyCurrencyFormat(ctx, c.burndownSheet, 2, int64(len(header)), 1, int64(len(values)))
	slog.InfoContext(ctx, "Burndown report written", "sheet", c.burndownSheet, "rows", len(report.Rows))
	return nil
}

// Actuals reads the spent-money sheet for a period. Columns: Description,
// Category, Date, Amount, Account.
func (c *Client) Actuals(ctx context.Context, period tabular.Period) ([]core.Transaction, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	rows, err := c.readRange(ctx, c.actualsSheet, "A2:E")
	if err != nil {
		return nil, err
	}
	var out []core.Transaction
	for i, cols := range rows {
		if isBlank(cols) {
			continue
		}
		if len(cols) < 5 {
			return nil, fmt.Errorf("sheet %s row %d: expected 5 columns, got %d", c.actualsSheet, i+2, len(cols))
		}
		t, err := parseTransaction(cols[2], cols[0], cols[3], cols[4])
		if err != nil {
			return nil, fmt.Errorf("sheet %s row %d: %w", c.actualsSheet, i+2, err)
		}
		t.Category = strings.TrimSpace(cols[1])
		if t.Date.Month() != period.Month || t.Date.Year() != period.Year {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

// Budget snapshot rows are tagged in column A so the sheet round-trips
// without positional guessing:
//
//	income  | description | account | expected | received
//	expense | category | description | account | budgeted | spent
//	fund    | description | account | starting | current | expected
//	loan    | name | apr | starting | ending | payoff
//	account | name | starting | current | expected

// ReadBudget implements tabular.BudgetStore.
func (c *Client) ReadBudget(ctx context.Context, period tabular.Period) (*core.MonthlyBudget, bool, error) {
	if c.svc == nil {
		return nil, false, errors.New("sheets service not initialized")
	}
	rows, err := c.readRange(ctx, c.budgetSheet, "A1:F")
	if err != nil {
		return nil, false, err
	}

	budget := &core.MonthlyBudget{}
	for i, cols := range rows {
		if isBlank(cols) {
			continue
		}
		tag := strings.ToLower(strings.TrimSpace(cols[0]))
		rest := cols[1:]
		var rowErr error
		switch tag {
		case "income":
			rowErr = c.readIncomeRow(budget, rest)
		case "expense":
			rowErr = c.readExpenseRow(budget, rest)
		case "fund":
			rowErr = c.readFundRow(budget, rest)
		case "loan":
			rowErr = c.readLoanRow(budget, rest)
		case "account":
			rowErr = c.readAccountRow(budget, rest)
		default:
			continue
		}
		if rowErr != nil {
			return nil, false, fmt.Errorf("sheet %s row %d: %w", c.budgetSheet, i+1, rowErr)
		}
	}
	if len(budget.Sections) == 0 && len(budget.Incomes) == 0 {
		return nil, false, nil
	}
	return budget, true, nil
}

func (c *Client) readIncomeRow(budget *core.MonthlyBudget, cols []string) error {
	if len(cols) < 4 {
		return errors.New("income row needs description, account, expected, received")
	}
	expected, ok := parseAmountCents(cols[2])
	if !ok {
		return fmt.Errorf("invalid expected amount %q", cols[2])
	}
	received, ok := parseAmountCents(cols[3])
	if !ok {
		return fmt.Errorf("invalid received amount %q", cols[3])
	}
	budget.Incomes = append(budget.Incomes, &core.Income{
		Description: strings.TrimSpace(cols[0]),
		AccountName: strings.TrimSpace(cols[1]),
		Expected:    core.Money{Cents: expected},
		Received:    core.Money{Cents: received},
	})
	return nil
}

func (c *Client) readExpenseRow(budget *core.MonthlyBudget, cols []string) error {
	if len(cols) < 5 {
		return errors.New("expense row needs category, description, account, budgeted, spent")
	}
	budgeted, ok := parseAmountCents(cols[3])
	if !ok {
		return fmt.Errorf("invalid budgeted amount %q", cols[3])
	}
	spent, ok := parseAmountCents(cols[4])
	if !ok {
		return fmt.Errorf("invalid spent amount %q", cols[4])
	}
	category := strings.TrimSpace(cols[0])
	item := &core.BudgetedExpense{
		Description: strings.TrimSpace(cols[1]),
		Target:      core.ParsePaymentTarget(strings.TrimSpace(cols[2])),
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
	return nil
}

func (c *Client) readFundRow(budget *core.MonthlyBudget, cols []string) error {
	if len(cols) < 5 {
		return errors.New("fund row needs description, account, starting, current, expected")
	}
	amounts := make([]int64, 3)
	for i, col := range cols[2:5] {
		v, ok := parseAmountCents(col)
		if !ok {
			return fmt.Errorf("invalid fund amount %q", col)
		}
		amounts[i] = v
	}
	budget.Funds = append(budget.Funds, core.SinkingFund{
		Description:        strings.TrimSpace(cols[0]),
		AccountName:        strings.TrimSpace(cols[1]),
		StartingBalance:    core.Money{Cents: amounts[0]},
		CurrentBalance:     core.Money{Cents: amounts[1]},
		ExpectedEndBalance: core.Money{Cents: amounts[2]},
	})
	return nil
}

func (c *Client) readLoanRow(budget *core.MonthlyBudget, cols []string) error {
	if len(cols) < 4 {
		return errors.New("loan row needs name, apr, starting, ending")
	}
	apr, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(cols[1], "%")), 64)
	if err != nil {
		return fmt.Errorf("invalid APR %q", cols[1])
	}
	starting, ok := parseAmountCents(cols[2])
	if !ok {
		return fmt.Errorf("invalid starting balance %q", cols[2])
	}
	ending, ok := parseAmountCents(cols[3])
	if !ok {
		return fmt.Errorf("invalid ending balance %q", cols[3])
	}
	loan := core.NewLoan(strings.TrimSpace(cols[0]), apr, core.Money{Cents: starting})
	loan.EndingBalance = core.Money{Cents: ending}
	budget.Loans = append(budget.Loans, loan)
	return nil
}

func (c *Client) readAccountRow(budget *core.MonthlyBudget, cols []string) error {
	if len(cols) < 4 {
		return errors.New("account row needs name, starting, current, expected")
	}
	amounts := make([]int64, 3)
	for i, col := range cols[1:4] {
		v, ok := parseAmountCents(col)
		if !ok {
			return fmt.Errorf("invalid account amount %q", col)
		}
		amounts[i] = v
	}
	budget.Accounts = append(budget.Accounts, &core.Account{
		Name:               strings.TrimSpace(cols[0]),
		StartingBalance:    core.Money{Cents: amounts[0]},
		CurrentBalance:     core.Money{Cents: amounts[1]},
		ExpectedEndBalance: core.Money{Cents: amounts[2]},
	})
	return nil
}

// WriteBudget implements tabular.BudgetStore.
func (c *Client) WriteBudget(ctx context.Context, period tabular.Period, budget *core.MonthlyBudget) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}
	if err := c.clearRange(ctx, c.budgetSheet, "A:F"); err != nil {
		return err
	}

	values := budgetRows(budget)
	if len(values) == 0 {
		return nil
	}

	cells := fmt.Sprintf("A1:F%d", len(values))
	if err := c.writeRange(ctx, c.budgetSheet, cells, values); err != nil {
		return err
	}
	c.applyCurrencyFormat(ctx, c.budgetSheet, 3, 6, 0, int64(len(values)))
	slog.InfoContext(ctx, "Budget snapshot written",
		"sheet", c.budgetSheet, "period", period.String(), "rows", len(values))
	return nil
}

// budgetRows flattens a budget into tagged sheet rows.
func budgetRows(budget *core.MonthlyBudget) [][]any {
	var values [][]any
	for _, income := range budget.Incomes {
		values = append(values, []any{"income", income.Description, income.AccountName,
			cellAmount(income.Expected), cellAmount(income.Received)})
	}
	for _, section := range budget.Sections {
		for _, item := range section.Items {
			values = append(values, []any{"expense", section.Category, item.Description,
				item.Target.String(), cellAmount(item.Budgeted), cellAmount(item.Spent)})
		}
	}
	for _, fund := range budget.Funds {
		values = append(values, []any{"fund", fund.Description, fund.AccountName,
			cellAmount(fund.StartingBalance), cellAmount(fund.CurrentBalance), cellAmount(fund.ExpectedEndBalance)})
	}
	for _, loan := range budget.Loans {
		values = append(values, []any{"loan", loan.Name, loan.APR,
			cellAmount(loan.StartingBalance), cellAmount(loan.EndingBalance), loan.PayoffLabel()})
	}
	for _, account := range budget.Accounts {
		values = append(values, []any{"account", account.Name,
			cellAmount(account.StartingBalance), cellAmount(account.CurrentBalance), cellAmount(account.ExpectedEndBalance)})
	}
	return values
}

// applyCurrencyFormat sets the currency number format on the amount columns.
// Formatting is a display hint only, so a failure logs and moves on.
// Column and row bounds are zero-based, end exclusive, per the API.
func (c *Client) applyCurrencyFormat(ctx context.Context, sheetName string, startCol, endCol, startRow, endRow int64) {
	sheetID, err := c.sheetID(ctx, sheetName)
	if err != nil {
		slog.WarnContext(ctx, "Currency format skipped", "sheet", sheetName, "error", err)
		return
	}
	req := &gsheet.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheet.Request{{
			RepeatCell: &gsheet.RepeatCellRequest{
				Range: &gsheet.GridRange{
					SheetId:          sheetID,
					StartColumnIndex: startCol,
					EndColumnIndex:   endCol,
					StartRowIndex:    startRow,
					EndRowIndex:      endRow,
				},
				Cell: &gsheet.CellData{
					UserEnteredFormat: &gsheet.CellFormat{
						NumberFormat: &gsheet.NumberFormat{
							Type:    "CURRENCY",
							Pattern: currencyPattern,
						},
					},
				},
				Fields: "userEnteredFormat.numberFormat",
			},
		}},
	}
	if _, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		slog.WarnContext(ctx, "Currency format skipped", "sheet", sheetName, "error", err)
	}
}

func (c *Client) sheetID(ctx context.Context, sheetName string) (int64, error) {
	meta, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("read spreadsheet metadata: %w", err)
	}
	for _, sheet := range meta.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == sheetName {
			return sheet.Properties.SheetId, nil
		}
	}
	return 0, fmt.Errorf("sheet %q not found", sheetName)
}

func parseTransaction(date, description, amount, account string) (core.Transaction, error) {
	d, err := core.ParseDate(date)
	if err != nil {
		return core.Transaction{}, err
	}
	cents, ok := parseAmountCents(amount)
	if !ok {
		return core.Transaction{}, fmt.Errorf("invalid amount %q", amount)
	}
	t := core.Transaction{
		Date:        d,
		Description: strings.TrimSpace(description),
		Amount:      core.Money{Cents: cents},
		AccountName: strings.TrimSpace(account),
	}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	return t, nil
}

func toStrings(in []any) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

func isBlank(cols []string) bool {
	for _, c := range cols {
		if c != "" {
			return false
		}
	}
	return true
}

// parseAmountCents accepts formatted cell values like "$1,234.50" or
// "-12,34" and rounds to cents.
func parseAmountCents(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", ".")
	// Keep only the final dot as the decimal separator.
	if n := strings.Count(s, "."); n > 1 {
		last := strings.LastIndex(s, ".")
		s = strings.ReplaceAll(s[:last], ".", "") + s[last:]
	}
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if f < 0 {
		return int64(f*100.0 - 0.5), true
	}
	return int64(f*100.0 + 0.5), true
}

func cellAmount(m core.Money) float64 {
	return float64(m.Cents) / 100.0
}

func columnLetter(n int) string {
	s := ""
	for n > 0 {
		n--
		s = string(rune('A'+n%26)) + s
		n /= 26
	}
	return s
}
