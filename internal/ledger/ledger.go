// Package ledger merges transaction sources into a single time-ordered
// ledger and replays it against account state to produce a burndown report.
package ledger

import (
	"sort"

	"budgetize/internal/core"
	"budgetize/internal/schedule"
)

// RecurringTransaction binds a schedule rule to a template transaction.
// The template's date varies per occurrence; everything else is fixed.
type RecurringTransaction struct {
	Template core.Transaction
	Rule     schedule.Rule
}

// Expand produces one dated clone of the template per occurrence in
// (start, end]. The first occurrence past end is computed and discarded,
// which terminates the expansion. Expanding twice over the same window
// yields identical results.
func (r RecurringTransaction) Expand(start, end core.Date) []core.Transaction {
	var out []core.Transaction
	for date := r.Rule.NextOccurrence(start); !date.After(end); date = r.Rule.NextOccurrence(date) {
		entry := r.Template
		entry.Date = date
		out = append(out, entry)
	}
	return out
}

// Build merges one-off transactions with expanded recurring occurrences into
// one sequence sorted ascending by date. One-offs are taken unfiltered; rules
// are expanded over (start, end]. The sort is stable on date only: same-date
// entries keep their insertion order (one-offs first, then expansion order).
// An empty ledger is valid.
func Build(oneOff []core.Transaction, recurring []RecurringTransaction, start, end core.Date) []core.Transaction {
	merged := make([]core.Transaction, 0, len(oneOff))
	merged = append(merged, oneOff...)
	for _, r := range recurring {
		merged = append(merged, r.Expand(start, end)...)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Date.Before(merged[j].Date)
	})
	return merged
}
