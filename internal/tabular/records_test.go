package tabular

import (
	"errors"
	"testing"

	"budgetize/internal/core"
)

func TestParseTransactionRow(t *testing.T) {
	tx, err := ParseTransactionRow("09/15/26", " Groceries ", "-54.30", " Checking ")
	if err != nil {
		t.Fatalf("ParseTransactionRow() error = %v", err)
	}
	if !tx.Date.Equal(core.NewDate(2026, 9, 15)) {
		t.Errorf("Date = %s", tx.Date.Format())
	}
	if tx.Description != "Groceries" || tx.AccountName != "Checking" {
		t.Errorf("fields not trimmed: %+v", tx)
	}
	if tx.Amount.Cents != -5430 {
		t.Errorf("Amount = %d, want -5430", tx.Amount.Cents)
	}
}

func TestParseTransactionRow_Invalid(t *testing.T) {
	tests := []struct {
		name                            string
		date, desc, amount, accountName string
	}{
		{"bad date", "2026-09-15", "Groceries", "-54.30", "Checking"},
		{"bad amount", "09/15/26", "Groceries", "lots", "Checking"},
		{"empty description", "09/15/26", "  ", "-54.30", "Checking"},
		{"empty account", "09/15/26", "Groceries", "-54.30", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseTransactionRow(tt.date, tt.desc, tt.amount, tt.accountName); err == nil {
				t.Errorf("ParseTransactionRow() accepted %v", tt)
			}
		})
	}
}

func TestParseActualRow(t *testing.T) {
	tx, err := ParseActualRow("Weekly shop", " Groceries ", "09/10/26", "-50.00", "Checking")
	if err != nil {
		t.Fatalf("ParseActualRow() error = %v", err)
	}
	if tx.Category != "Groceries" {
		t.Errorf("Category = %q", tx.Category)
	}
	if tx.Amount.Cents != -5000 {
		t.Errorf("Amount = %d", tx.Amount.Cents)
	}
}

func TestParseRecurringRow(t *testing.T) {
	rec, err := ParseRecurringRow("Rent", "-1200.00", "Checking", "monthly on 1")
	if err != nil {
		t.Fatalf("ParseRecurringRow() error = %v", err)
	}
	if rec.Template.Amount.Cents != -120000 {
		t.Errorf("Amount = %d", rec.Template.Amount.Cents)
	}
	if rec.Rule.String() != "monthly on 1" {
		t.Errorf("Rule = %q", rec.Rule.String())
	}
}

func TestParseRecurringRow_BadSchedule(t *testing.T) {
	_, err := ParseRecurringRow("Rent", "-1200.00", "Checking", "whenever")
	var fmtErr *core.ScheduleFormatError
	if !errors.As(err, &fmtErr) {
		t.Fatalf("error = %v, want ScheduleFormatError", err)
	}
}

func TestParseBalanceRow(t *testing.T) {
	summary, err := ParseBalanceRow(" Checking ", "1000.00", "-25.50")
	if err != nil {
		t.Fatalf("ParseBalanceRow() error = %v", err)
	}
	if summary.Name != "Checking" {
		t.Errorf("Name = %q", summary.Name)
	}
	if summary.StartingBalance.Cents != 100000 || summary.CurrentBalance.Cents != -2550 {
		t.Errorf("balances = %+v", summary)
	}
}

func TestParseTotalGroupRow(t *testing.T) {
	group, ok := ParseTotalGroupRow("total:Liquid", "Checking, Savings, ")
	if !ok {
		t.Fatalf("row not recognized as a total group")
	}
	if group.Name != "Liquid" {
		t.Errorf("Name = %q", group.Name)
	}
	if len(group.Accounts) != 2 || group.Accounts[0] != "Checking" || group.Accounts[1] != "Savings" {
		t.Errorf("Accounts = %v", group.Accounts)
	}

	if _, ok := ParseTotalGroupRow("period_start", "09/01/26"); ok {
		t.Errorf("non-total key recognized as a group")
	}
}

func TestParseExpenseItemRow(t *testing.T) {
	item, err := ParseExpenseItemRow("Car payment", "transfer(Checking,Car Loan)", "350.00", "0.00")
	if err != nil {
		t.Fatalf("ParseExpenseItemRow() error = %v", err)
	}
	if !item.Target.IsTransfer() {
		t.Fatalf("Target = %+v, want transfer", item.Target)
	}
	if item.Target.Account != "Checking" || item.Target.Loan != "Car Loan" {
		t.Errorf("Target = %+v", item.Target)
	}
	if item.Budgeted.Cents != 35000 || item.Spent.Cents != 0 {
		t.Errorf("amounts = %+v", item)
	}
}

func TestParseIncomeRow(t *testing.T) {
	income, err := ParseIncomeRow("Paycheck", "Checking", "4000.00", "2000.00")
	if err != nil {
		t.Fatalf("ParseIncomeRow() error = %v", err)
	}
	if income.Expected.Cents != 400000 || income.Received.Cents != 200000 {
		t.Errorf("amounts = %+v", income)
	}
}

func TestParseLoanRow(t *testing.T) {
	loan, err := ParseLoanRow("Car Loan", "0.06", "10000.00", "9700.00")
	if err != nil {
		t.Fatalf("ParseLoanRow() error = %v", err)
	}
	if loan.APR != 0.06 {
		t.Errorf("APR = %v", loan.APR)
	}
	if loan.StartingBalance.Cents != 1000000 || loan.EndingBalance.Cents != 970000 {
		t.Errorf("balances = %+v", loan)
	}

	if _, err := ParseLoanRow("Car Loan", "six percent", "10000.00", "9700.00"); err == nil {
		t.Errorf("bad APR accepted")
	}
	if _, err := ParseLoanRow("Car Loan", "-0.01", "10000.00", "9700.00"); err == nil {
		t.Errorf("negative APR accepted")
	}
}

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("2026-09")
	if err != nil {
		t.Fatalf("ParsePeriod() error = %v", err)
	}
	if p.Year != 2026 || p.Month != 9 {
		t.Errorf("period = %+v", p)
	}
	if p.String() != "2026-09" {
		t.Errorf("String() = %q", p.String())
	}

	for _, bad := range []string{"", "2026", "2026-13", "2026-00", "september"} {
		if _, err := ParsePeriod(bad); err == nil {
			t.Errorf("ParsePeriod(%q) accepted", bad)
		}
	}
}
