package core

import (
	"errors"
	"fmt"
)

// Field-level validation sentinels.
var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyAccount     = errors.New("empty account name")
)

// Every failure below is a data-entry signal: nothing recovers automatically,
// the message names the offending entity so the user can find the bad row,
// and re-running after fixing the source data is the expected recovery path.

// ScheduleFormatError reports an unparseable recurrence rule.
type ScheduleFormatError struct {
	Text string
}

func (e *ScheduleFormatError) Error() string {
	return fmt.Sprintf("unparseable schedule %q", e.Text)
}

// UnknownAccountError reports a transaction referencing an account that is
// not in the registry. Fatal for the replay: no partial write-back happens.
type UnknownAccountError struct {
	Account string
}

func (e *UnknownAccountError) Error() string {
	return fmt.Sprintf("no account named %q", e.Account)
}

// EmptyFormError reports a required tabular source with zero data rows.
type EmptyFormError struct {
	Form string
}

func (e *EmptyFormError) Error() string {
	return fmt.Sprintf("form %q has no data rows", e.Form)
}

// UnbudgetedCategoryError reports an actual expense whose category is not in
// the budget.
type UnbudgetedCategoryError struct {
	Category string
}

func (e *UnbudgetedCategoryError) Error() string {
	return fmt.Sprintf("category %q is not accounted for in the budget", e.Category)
}

// UnbudgetedLineItemError reports an actual transaction whose description has
// no line item within a known category.
type UnbudgetedLineItemError struct {
	Category string
	LineItem string
}

func (e *UnbudgetedLineItemError) Error() string {
	if e.Category == "" {
		return fmt.Sprintf("line item %q is not accounted for in the budget", e.LineItem)
	}
	return fmt.Sprintf("line item %q is not accounted for in category %q", e.LineItem, e.Category)
}

// AccountMismatchError reports an actual transaction whose account disagrees
// with the budgeted line item's configured account.
type AccountMismatchError struct {
	LineItem        string
	BudgetedAccount string
	ActualAccount   string
}

func (e *AccountMismatchError) Error() string {
	return fmt.Sprintf("%s should use account %q, but actually used %q",
		e.LineItem, e.BudgetedAccount, e.ActualAccount)
}

// InvalidPayoffError reports degenerate loan amortization inputs: a
// non-positive net payment for the period, or an interest rate high enough
// that the payment never covers accrued interest.
type InvalidPayoffError struct {
	Loan string
}

func (e *InvalidPayoffError) Error() string {
	return fmt.Sprintf("loan %q: payment for the period does not reduce the balance", e.Loan)
}
