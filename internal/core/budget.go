package core

import (
	"regexp"
	"strings"
	"time"
)

// PaymentTarget says where a budgeted expense draws from: an ordinary
// account debit, or a loan-principal transfer that debits a source account
// while reducing a loan's balance. The variant is decided once when the row
// is loaded, never re-parsed during calculation.
type PaymentTarget struct {
	Account string
	Loan    string // empty for ordinary debits
}

// IsTransfer reports whether this target is a loan-principal transfer.
func (t PaymentTarget) IsTransfer() bool {
	return t.Loan != ""
}

var transferPattern = regexp.MustCompile(`^transfer\(([^,]*),([^,)]*)\)$`)

// ParsePaymentTarget interprets the account column of a budgeted expense.
// The legacy "transfer(sourceAccount,targetLoan)" encoding becomes a
// transfer target; anything else is an ordinary account name. This is the
// only place the string form is interpreted.
func ParsePaymentTarget(accountName string) PaymentTarget {
	if m := transferPattern.FindStringSubmatch(strings.TrimSpace(accountName)); m != nil {
		return PaymentTarget{
			Account: strings.TrimSpace(m[1]),
			Loan:    strings.TrimSpace(m[2]),
		}
	}
	return PaymentTarget{Account: strings.TrimSpace(accountName)}
}

// String renders the target back into its column form.
func (t PaymentTarget) String() string {
	if t.IsTransfer() {
		return "transfer(" + t.Account + "," + t.Loan + ")"
	}
	return t.Account
}

// BudgetedExpense is one expense line item within a category section.
// Spent accumulates only transactions matched to this exact
// (category, description) pair.
type BudgetedExpense struct {
	Description string
	Target      PaymentTarget
	Budgeted    Money // magnitude
	Spent       Money // magnitude, accumulated
}

// Spend accumulates an actual expense. amount is the signed transaction
// amount; its magnitude is added to Spent.
func (e *BudgetedExpense) Spend(amount Money) {
	e.Spent = e.Spent.Add(amount.Abs())
}

// Remaining returns budgeted minus spent.
func (e *BudgetedExpense) Remaining() Money {
	return e.Budgeted.Sub(e.Spent)
}

// Income is one expected income line item.
type Income struct {
	Description string
	AccountName string
	Expected    Money // magnitude
	Received    Money // magnitude, accumulated
}

// Receive accumulates an actual income amount.
func (i *Income) Receive(amount Money) {
	i.Received = i.Received.Add(amount.Abs())
}

// ExpenseSection groups line items under a category name. Section order is
// preserved from the source form.
type ExpenseSection struct {
	Category string
	Items    []*BudgetedExpense
}

// MonthlyBudget is the aggregate root for one budgeting period: categorized
// expense line items, expected incomes, account summaries, sinking funds and
// loans. It is created from the defaults configuration or a persisted
// snapshot, mutated by a batch of actual transactions, and written back as
// the authoritative record.
type MonthlyBudget struct {
	Sections []ExpenseSection
	Incomes  []*Income
	Accounts []*Account
	Funds    []SinkingFund
	Loans    []*Loan
}

// Section returns the expense section for a category.
func (b *MonthlyBudget) Section(category string) (*ExpenseSection, bool) {
	for i := range b.Sections {
		if b.Sections[i].Category == category {
			return &b.Sections[i], true
		}
	}
	return nil, false
}

// BudgetedExpenseFor finds the line item matching an actual expense by exact
// (category, description).
func (b *MonthlyBudget) BudgetedExpenseFor(t Transaction) (*BudgetedExpense, error) {
	section, ok := b.Section(t.Category)
	if !ok {
		return nil, &UnbudgetedCategoryError{Category: t.Category}
	}
	for _, item := range section.Items {
		if item.Description == t.Description {
			return item, nil
		}
	}
	return nil, &UnbudgetedLineItemError{Category: t.Category, LineItem: t.Description}
}

// BudgetedIncomeFor finds the income matching an actual income transaction
// by description.
func (b *MonthlyBudget) BudgetedIncomeFor(t Transaction) (*Income, error) {
	for _, income := range b.Incomes {
		if income.Description == t.Description {
			return income, nil
		}
	}
	return nil, &UnbudgetedLineItemError{LineItem: t.Description}
}

// AccountByName looks up an account summary by its unique name.
func (b *MonthlyBudget) AccountByName(name string) (*Account, error) {
	for _, a := range b.Accounts {
		if a.Name == name {
			return a, nil
		}
	}
	return nil, &UnknownAccountError{Account: name}
}

// LoanByName looks up a loan by name.
func (b *MonthlyBudget) LoanByName(name string) (*Loan, error) {
	for _, l := range b.Loans {
		if l.Name == name {
			return l, nil
		}
	}
	return nil, &UnknownAccountError{Account: name}
}

func (b *MonthlyBudget) applyExpense(t Transaction) error {
	item, err := b.BudgetedExpenseFor(t)
	if err != nil {
		return err
	}
	if item.Target.Account != t.AccountName {
		return &AccountMismatchError{
			LineItem:        item.Description,
			BudgetedAccount: item.Target.Account,
			ActualAccount:   t.AccountName,
		}
	}
	account, err := b.AccountByName(item.Target.Account)
	if err != nil {
		return err
	}
	item.Spend(t.Amount)
	account.Apply(t.Amount)
	return nil
}

func (b *MonthlyBudget) applyIncome(t Transaction) error {
	income, err := b.BudgetedIncomeFor(t)
	if err != nil {
		return err
	}
	if income.AccountName != t.AccountName {
		return &AccountMismatchError{
			LineItem:        income.Description,
			BudgetedAccount: income.AccountName,
			ActualAccount:   t.AccountName,
		}
	}
	account, err := b.AccountByName(income.AccountName)
	if err != nil {
		return err
	}
	income.Receive(t.Amount)
	account.Apply(t.Amount)
	return nil
}

// ApplyActuals reconciles a batch of actual transactions against the budget.
// Future-dated rows (after now) are skipped: they haven't happened yet.
// Negative amounts take the expense path, others the income path. There is
// no deduplication; applying the same batch twice accumulates twice.
func (b *MonthlyBudget) ApplyActuals(now time.Time, actuals []Transaction) error {
	today := DateOf(now)
	for _, t := range actuals {
		if t.Date.After(today) {
			continue
		}
		if t.Amount.IsDebit() {
			if err := b.applyExpense(t); err != nil {
				return err
			}
		} else {
			if err := b.applyIncome(t); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *MonthlyBudget) expectExpense(item *BudgetedExpense) error {
	if item.Target.IsTransfer() {
		loan, err := b.LoanByName(item.Target.Loan)
		if err != nil {
			return err
		}
		account, err := b.AccountByName(item.Target.Account)
		if err != nil {
			return err
		}
		// A transfer is a budgeted expense for the source account that
		// simultaneously reduces loan principal.
		loan.ReducePrincipal(item.Budgeted)
		account.AddExpected(item.Budgeted.Neg())
		return nil
	}
	account, err := b.AccountByName(item.Target.Account)
	if err != nil {
		return err
	}
	account.AddExpected(item.Budgeted.Neg())
	return nil
}

// CalculateExpectedBalances projects each account's period-end balance from
// its current balance: every budgeted income adds, every budgeted expense
// subtracts, and loan transfers also reduce the target loan. Run once per
// period setup. A budget bootstrapped from defaults has no accounts and the
// pass is a no-op.
func (b *MonthlyBudget) CalculateExpectedBalances() error {
	if len(b.Accounts) == 0 {
		return nil
	}
	for _, income := range b.Incomes {
		account, err := b.AccountByName(income.AccountName)
		if err != nil {
			return err
		}
		account.AddExpected(income.Expected)
	}
	for _, section := range b.Sections {
		for _, item := range section.Items {
			if err := b.expectExpense(item); err != nil {
				return err
			}
		}
	}
	return nil
}
