package config

import (
	"fmt"
	"sort"

	"budgetize/internal/core"

	"github.com/BurntSushi/toml"
)

// defaultAccountKey names the top-level TOML key holding the account used
// when a line item carries no account of its own.
const defaultAccountKey = "default_account"

// incomesTable is the reserved table name for expected incomes. Every other
// table is an expense category.
const incomesTable = "Incomes"

// LoadBudgetDefaults builds a fresh monthly budget from a TOML defaults
// file. Line items are either a plain amount string:
//
//	[Groceries]
//	"Weekly shop" = "600.00"
//
// or an inline table when the item needs its own account or transfer target:
//
//	[Debt]
//	"Car payment" = { amount = "350.00", account = "transfer(Checking,Car Loan)" }
//
// Categories and items are ordered alphabetically; TOML tables carry no
// document order through decoding.
func LoadBudgetDefaults(path string) (*core.MonthlyBudget, error) {
	var raw map[string]any
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, fmt.Errorf("decode budget defaults %s: %w", path, err)
	}

	defaultAccount, _ := raw[defaultAccountKey].(string)
	budget := &core.MonthlyBudget{}

	categories := make([]string, 0, len(raw))
	for name, value := range raw {
		if name == defaultAccountKey {
			continue
		}
		table, ok := value.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("budget defaults %s: %q is not a table", path, name)
		}
		if name == incomesTable {
			incomes, err := parseIncomeTable(table, defaultAccount)
			if err != nil {
				return nil, fmt.Errorf("budget defaults %s: %w", path, err)
			}
			budget.Incomes = incomes
			continue
		}
		categories = append(categories, name)
	}
	sort.Strings(categories)

	for _, category := range categories {
		table := raw[category].(map[string]any)
		section, err := parseCategoryTable(category, table, defaultAccount)
		if err != nil {
			return nil, fmt.Errorf("budget defaults %s: %w", path, err)
		}
		budget.Sections = append(budget.Sections, section)
	}
	return budget, nil
}

func parseIncomeTable(table map[string]any, defaultAccount string) ([]*core.Income, error) {
	names := sortedKeys(table)
	out := make([]*core.Income, 0, len(names))
	for _, name := range names {
		amount, account, err := parseItemValue(table[name], defaultAccount)
		if err != nil {
			return nil, fmt.Errorf("income %q: %w", name, err)
		}
		out = append(out, &core.Income{
			Description: name,
			AccountName: account,
			Expected:    amount,
		})
	}
	return out, nil
}

func parseCategoryTable(category string, table map[string]any, defaultAccount string) (core.ExpenseSection, error) {
	section := core.ExpenseSection{Category: category}
	for _, name := range sortedKeys(table) {
		amount, account, err := parseItemValue(table[name], defaultAccount)
		if err != nil {
			return core.ExpenseSection{}, fmt.Errorf("category %q item %q: %w", category, name, err)
		}
		section.Items = append(section.Items, &core.BudgetedExpense{
			Description: name,
			Target:      core.ParsePaymentTarget(account),
			Budgeted:    amount,
		})
	}
	return section, nil
}

func parseItemValue(value any, defaultAccount string) (core.Money, string, error) {
	switch v := value.(type) {
	case string:
		amount, err := core.ParseSignedCents(v)
		if err != nil {
			return core.Money{}, "", err
		}
		return amount, defaultAccount, nil
	case map[string]any:
		text, ok := v["amount"].(string)
		if !ok {
			return core.Money{}, "", fmt.Errorf("inline table needs a string %q key", "amount")
		}
		amount, err := core.ParseSignedCents(text)
		if err != nil {
			return core.Money{}, "", err
		}
		account := defaultAccount
		if a, ok := v["account"].(string); ok && a != "" {
			account = a
		}
		return amount, account, nil
	default:
		return core.Money{}, "", fmt.Errorf("unsupported value type %T", value)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
