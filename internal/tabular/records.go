package tabular

import (
	"fmt"
	"strconv"
	"strings"

	"budgetize/internal/core"
	"budgetize/internal/ledger"
	"budgetize/internal/schedule"
)

// Record mapping for the tabular boundary. Every adapter reads cells as
// strings and converts them here, so engine code only ever sees domain
// values.

// ParseTransactionRow maps a one-off transaction row:
// Date | Description | Amount | Account.
func ParseTransactionRow(date, description, amount, account string) (core.Transaction, error) {
	d, err := core.ParseDate(date)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("transaction %q: %w", description, err)
	}
	m, err := core.ParseSignedCents(amount)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("transaction %q: %w", description, err)
	}
	t := core.Transaction{
		Date:        d,
		Description: strings.TrimSpace(description),
		Amount:      m,
		AccountName: strings.TrimSpace(account),
	}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, fmt.Errorf("transaction %q: %w", description, err)
	}
	return t, nil
}

// ParseActualRow maps a monthly actual row:
// Description | Category | Date | Amount | Account.
func ParseActualRow(description, category, date, amount, account string) (core.Transaction, error) {
	t, err := ParseTransactionRow(date, description, amount, account)
	if err != nil {
		return core.Transaction{}, err
	}
	t.Category = strings.TrimSpace(category)
	return t, nil
}

// ParseRecurringRow maps a recurring transaction row:
// Description | Amount | Account | Schedule. The schedule text is parsed
// here, once, so a bad rule fails at load time.
func ParseRecurringRow(description, amount, account, scheduleText string) (ledger.RecurringTransaction, error) {
	m, err := core.ParseSignedCents(amount)
	if err != nil {
		return ledger.RecurringTransaction{}, fmt.Errorf("recurring %q: %w", description, err)
	}
	rule, err := schedule.Parse(scheduleText)
	if err != nil {
		return ledger.RecurringTransaction{}, err
	}
	return ledger.RecurringTransaction{
		Template: core.Transaction{
			Description: strings.TrimSpace(description),
			Amount:      m,
			AccountName: strings.TrimSpace(account),
		},
		Rule: rule,
	}, nil
}

// ParseBalanceRow maps a balance form row: Account | Starting | Ending.
func ParseBalanceRow(name, starting, ending string) (core.AccountSummary, error) {
	s, err := core.ParseSignedCents(starting)
	if err != nil {
		return core.AccountSummary{}, fmt.Errorf("balance for %q: %w", name, err)
	}
	e, err := core.ParseSignedCents(ending)
	if err != nil {
		return core.AccountSummary{}, fmt.Errorf("balance for %q: %w", name, err)
	}
	return core.AccountSummary{
		Name:            strings.TrimSpace(name),
		StartingBalance: s,
		CurrentBalance:  e,
	}, nil
}

// ParseTotalGroupRow maps one burndown configuration row. Keys of the form
// "total:<name>" define a group column; the value is a comma-separated
// account list. Other keys are ignored.
func ParseTotalGroupRow(key, value string) (ledger.TotalGroup, bool) {
	const prefix = "total:"
	key = strings.TrimSpace(key)
	if !strings.HasPrefix(key, prefix) {
		return ledger.TotalGroup{}, false
	}
	group := ledger.TotalGroup{Name: strings.TrimPrefix(key, prefix)}
	for _, account := range strings.Split(value, ",") {
		if account = strings.TrimSpace(account); account != "" {
			group.Accounts = append(group.Accounts, account)
		}
	}
	return group, true
}

// ParseExpenseItemRow maps a budgeted expense row:
// Description | Account | Budgeted | Spent. The account column may carry the
// "transfer(source,loan)" form; it becomes a tagged PaymentTarget here and is
// never re-parsed downstream.
func ParseExpenseItemRow(description, account, budgeted, spent string) (*core.BudgetedExpense, error) {
	b, err := core.ParseSignedCents(budgeted)
	if err != nil {
		return nil, fmt.Errorf("expense %q: %w", description, err)
	}
	sp, err := core.ParseSignedCents(spent)
	if err != nil {
		return nil, fmt.Errorf("expense %q: %w", description, err)
	}
	return &core.BudgetedExpense{
		Description: strings.TrimSpace(description),
		Target:      core.ParsePaymentTarget(account),
		Budgeted:    b,
		Spent:       sp,
	}, nil
}

// ParseIncomeRow maps an income row: Description | Account | Expected | Received.
func ParseIncomeRow(description, account, expected, received string) (*core.Income, error) {
	e, err := core.ParseSignedCents(expected)
	if err != nil {
		return nil, fmt.Errorf("income %q: %w", description, err)
	}
	r, err := core.ParseSignedCents(received)
	if err != nil {
		return nil, fmt.Errorf("income %q: %w", description, err)
	}
	return &core.Income{
		Description: strings.TrimSpace(description),
		AccountName: strings.TrimSpace(account),
		Expected:    e,
		Received:    r,
	}, nil
}

// ParseFundRow maps a sinking fund row:
// Description | Account | Starting | Current | Expected.
func ParseFundRow(description, account, starting, current, expected string) (core.SinkingFund, error) {
	s, err := core.ParseSignedCents(starting)
	if err != nil {
		return core.SinkingFund{}, fmt.Errorf("fund %q: %w", description, err)
	}
	c, err := core.ParseSignedCents(current)
	if err != nil {
		return core.SinkingFund{}, fmt.Errorf("fund %q: %w", description, err)
	}
	e, err := core.ParseSignedCents(expected)
	if err != nil {
		return core.SinkingFund{}, fmt.Errorf("fund %q: %w", description, err)
	}
	return core.SinkingFund{
		Description:        strings.TrimSpace(description),
		AccountName:        strings.TrimSpace(account),
		StartingBalance:    s,
		CurrentBalance:     c,
		ExpectedEndBalance: e,
	}, nil
}

// ParseLoanRow maps a loan row: Name | APR | Starting | Ending.
func ParseLoanRow(name, apr, starting, ending string) (*core.Loan, error) {
	rate, err := strconv.ParseFloat(strings.TrimSpace(apr), 64)
	if err != nil || rate < 0 {
		return nil, fmt.Errorf("loan %q: invalid APR %q", name, apr)
	}
	s, err := core.ParseSignedCents(starting)
	if err != nil {
		return nil, fmt.Errorf("loan %q: %w", name, err)
	}
	e, err := core.ParseSignedCents(ending)
	if err != nil {
		return nil, fmt.Errorf("loan %q: %w", name, err)
	}
	loan := core.NewLoan(strings.TrimSpace(name), rate, s)
	loan.EndingBalance = e
	return loan, nil
}
