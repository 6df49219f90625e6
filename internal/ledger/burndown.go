package ledger

import (
	"budgetize/internal/core"
)

// Registry holds the accounts tracked by a single replay pass. It is
// exclusively owned by one Calculator run; nothing else writes to it.
type Registry struct {
	names    []string
	accounts map[string]*core.Account
}

// NewRegistry builds a registry from persisted starting-balance summaries.
// Account order is preserved for report columns.
func NewRegistry(summaries []core.AccountSummary) *Registry {
	r := &Registry{accounts: make(map[string]*core.Account, len(summaries))}
	for _, s := range summaries {
		r.names = append(r.names, s.Name)
		r.accounts[s.Name] = core.NewAccount(s.Name, s.StartingBalance)
	}
	return r
}

// Lookup finds an account by name.
func (r *Registry) Lookup(name string) (*core.Account, error) {
	a, ok := r.accounts[name]
	if !ok {
		return nil, &core.UnknownAccountError{Account: name}
	}
	return a, nil
}

// Names returns account names in registry order.
func (r *Registry) Names() []string {
	return r.names
}

// Summaries snapshots every account for write-back, in registry order.
func (r *Registry) Summaries() []core.AccountSummary {
	out := make([]core.AccountSummary, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, r.accounts[name].Summary())
	}
	return out
}

func (r *Registry) balances() []core.Money {
	out := make([]core.Money, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, r.accounts[name].CurrentBalance)
	}
	return out
}

// TotalGroup names a set of accounts whose balances are summed into an extra
// report column after every row.
type TotalGroup struct {
	Name     string
	Accounts []string
}

// Row is one line of the burndown report: the applied transaction plus the
// balance of every tracked account at that instant and the configured group
// totals.
type Row struct {
	Date        core.Date
	Description string
	Amount      core.Money
	AccountName string
	Balances    []core.Money // registry order
	Totals      []core.Money // group order
}

// Report is the result of one burndown replay. Summaries carries the final
// account state for the caller to persist: starting balances unchanged,
// current balances replayed to the end of the window.
type Report struct {
	Start        core.Date
	End          core.Date
	AccountNames []string
	TotalNames   []string
	Rows         []Row
	Summaries    []core.AccountSummary
}

// Calculator replays a pre-sorted ledger against a fresh account registry.
type Calculator struct {
	registry *Registry
	totals   []TotalGroup
}

// NewCalculator wires a registry and the configured group totals.
func NewCalculator(registry *Registry, totals []TotalGroup) *Calculator {
	return &Calculator{registry: registry, totals: totals}
}

// groupTotals re-sums each group from live account state. Deliberately
// O(rows x accounts-per-total): row counts are human-entered monthly data.
func (c *Calculator) groupTotals() ([]core.Money, error) {
	out := make([]core.Money, 0, len(c.totals))
	for _, group := range c.totals {
		var sum core.Money
		for _, name := range group.Accounts {
			account, err := c.registry.Lookup(name)
			if err != nil {
				return nil, err
			}
			sum = sum.Add(account.CurrentBalance)
		}
		out = append(out, sum)
	}
	return out, nil
}

// Run replays the ledger over [start, end]:
//
//   - rows dated before start are skipped without being applied;
//   - the first row dated after end stops processing (the ledger is sorted);
//   - every applied row is emitted with all account balances and group totals.
//
// The report opens with a synthetic "Starting Balance" row at start, before
// any transactions. An unknown account aborts the run with no write-back.
func (c *Calculator) Run(transactions []core.Transaction, start, end core.Date) (*Report, error) {
	report := &Report{Start: start, End: end, AccountNames: c.registry.Names()}
	for _, g := range c.totals {
		report.TotalNames = append(report.TotalNames, g.Name)
	}

	totals, err := c.groupTotals()
	if err != nil {
		return nil, err
	}
	report.Rows = append(report.Rows, Row{
		Date:        start,
		Description: "Starting Balance",
		Balances:    c.registry.balances(),
		Totals:      totals,
	})

	for _, t := range transactions {
		if t.Date.Before(start) {
			continue
		}
		if t.Date.After(end) {
			break
		}
		account, err := c.registry.Lookup(t.AccountName)
		if err != nil {
			return nil, err
		}
		t.ApplyTo(account)

		totals, err := c.groupTotals()
		if err != nil {
			return nil, err
		}
		report.Rows = append(report.Rows, Row{
			Date:        t.Date,
			Description: t.Description,
			Amount:      t.Amount,
			AccountName: t.AccountName,
			Balances:    c.registry.balances(),
			Totals:      totals,
		})
	}

	report.Summaries = c.registry.Summaries()
	return report, nil
}
