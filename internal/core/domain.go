package core

import "strings"

// Transaction is a single ledger movement. Values are immutable once
// constructed; applying one to an account is the only mutation path.
type Transaction struct {
	Date        Date
	Description string
	Amount      Money
	AccountName string
	Category    string // set for monthly actuals, empty on burndown rows
}

// ApplyTo adds the signed amount to the account's running balance.
func (t Transaction) ApplyTo(a *Account) {
	a.Apply(t.Amount)
}

// Validate checks the fields every tabular source must provide.
func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.Description) == "" {
		return ErrEmptyDescription
	}
	if strings.TrimSpace(t.AccountName) == "" {
		return ErrEmptyAccount
	}
	return nil
}

// Account is the mutable balance state for one named account during a
// single replay pass. CurrentBalance always equals StartingBalance plus the
// sum of applied transaction amounts, in application order.
type Account struct {
	Name               string
	StartingBalance    Money
	CurrentBalance     Money
	ExpectedEndBalance Money
}

// NewAccount creates an account from its persisted starting-balance snapshot.
func NewAccount(name string, starting Money) *Account {
	return &Account{
		Name:               name,
		StartingBalance:    starting,
		CurrentBalance:     starting,
		ExpectedEndBalance: starting,
	}
}

// Apply adds a signed amount to the running balance.
func (a *Account) Apply(diff Money) {
	a.CurrentBalance = a.CurrentBalance.Add(diff)
}

// AddExpected adds a signed amount to the projected period-end balance.
func (a *Account) AddExpected(diff Money) {
	a.ExpectedEndBalance = a.ExpectedEndBalance.Add(diff)
}

// Summary snapshots the account for write-back to the persisted form.
func (a *Account) Summary() AccountSummary {
	return AccountSummary{
		Name:               a.Name,
		StartingBalance:    a.StartingBalance,
		CurrentBalance:     a.CurrentBalance,
		ExpectedEndBalance: a.ExpectedEndBalance,
	}
}

// AccountSummary is the persisted shape of an account: the starting balance
// for the period, the replayed current balance, and the projected period-end
// balance. The ending state of one period is the starting snapshot of the
// next.
type AccountSummary struct {
	Name               string
	StartingBalance    Money
	CurrentBalance     Money
	ExpectedEndBalance Money
}

// Restore rebuilds a live account from a persisted summary.
func (s AccountSummary) Restore() *Account {
	return &Account{
		Name:               s.Name,
		StartingBalance:    s.StartingBalance,
		CurrentBalance:     s.CurrentBalance,
		ExpectedEndBalance: s.ExpectedEndBalance,
	}
}

// SinkingFund is a dedicated savings bucket tracked like an account but
// outside the main balance-replay loop. It rides along in snapshots.
type SinkingFund struct {
	Description        string
	AccountName        string
	StartingBalance    Money
	CurrentBalance     Money
	ExpectedEndBalance Money
}
