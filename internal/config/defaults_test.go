package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeDefaults(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "budget.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing defaults file: %v", err)
	}
	return path
}

func TestLoadBudgetDefaults(t *testing.T) {
	path := writeDefaults(t, `
default_account = "Checking"

[Incomes]
"Paycheck" = "4000.00"

[Groceries]
"Weekly shop" = "600.00"

[Debt]
"Car payment" = { amount = "350.00", account = "transfer(Checking,Car Loan)" }

[Bills]
"Electric" = { amount = "120.00", account = "Bills Account" }
"Internet" = "80.00"
`)

	budget, err := LoadBudgetDefaults(path)
	if err != nil {
		t.Fatalf("LoadBudgetDefaults() error = %v", err)
	}

	if len(budget.Incomes) != 1 {
		t.Fatalf("incomes = %d, want 1", len(budget.Incomes))
	}
	paycheck := budget.Incomes[0]
	if paycheck.Description != "Paycheck" || paycheck.AccountName != "Checking" {
		t.Errorf("income = %+v", paycheck)
	}
	if paycheck.Expected.Cents != 400000 {
		t.Errorf("Expected = %d", paycheck.Expected.Cents)
	}

	// Categories come out alphabetically.
	if len(budget.Sections) != 3 {
		t.Fatalf("sections = %d, want 3", len(budget.Sections))
	}
	for i, want := range []string{"Bills", "Debt", "Groceries"} {
		if budget.Sections[i].Category != want {
			t.Fatalf("section %d = %q, want %q", i, budget.Sections[i].Category, want)
		}
	}

	bills := budget.Sections[0]
	if len(bills.Items) != 2 {
		t.Fatalf("bills items = %d, want 2", len(bills.Items))
	}
	electric := bills.Items[0]
	if electric.Target.Account != "Bills Account" {
		t.Errorf("explicit account not honored: %+v", electric.Target)
	}
	internet := bills.Items[1]
	if internet.Target.Account != "Checking" {
		t.Errorf("default account not applied: %+v", internet.Target)
	}

	car := budget.Sections[1].Items[0]
	if !car.Target.IsTransfer() || car.Target.Loan != "Car Loan" {
		t.Errorf("transfer target = %+v", car.Target)
	}
	if car.Budgeted.Cents != 35000 {
		t.Errorf("Budgeted = %d", car.Budgeted.Cents)
	}
	if car.Spent.Cents != 0 {
		t.Errorf("fresh item carries spend: %d", car.Spent.Cents)
	}
}

func TestLoadBudgetDefaults_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad amount", "[Groceries]\n\"Weekly shop\" = \"lots\"\n"},
		{"non-table category", "Groceries = \"600.00\"\n"},
		{"inline table without amount", "[Debt]\n\"Car payment\" = { account = \"Checking\" }\n"},
		{"unsupported value type", "[Groceries]\n\"Weekly shop\" = 600\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeDefaults(t, tt.content)
			if _, err := LoadBudgetDefaults(path); err == nil {
				t.Errorf("LoadBudgetDefaults() accepted %q", tt.content)
			}
		})
	}
}

func TestLoadBudgetDefaults_MissingFile(t *testing.T) {
	if _, err := LoadBudgetDefaults(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Errorf("LoadBudgetDefaults() accepted a missing file")
	}
}
