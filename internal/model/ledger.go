// Package model defines domain types for spendplan budgets and ledgers.
package model

import "time"

// DateLayout is the calendar date format used for display and snapshots.
const DateLayout = "2006-01-02"

// LedgerEntry is one row of the spending plan: either a materialized
// obligation (zero Date) or a single calendar day.
type LedgerEntry struct {
	Date    time.Time
	Label   string
	Planned float64
	Actual  float64

	// Remaining is derived by the recalculation pass. It is a cache of
	// TotalBudget minus every Actual up to and including this row.
	Remaining float64
}

// IsObligation reports whether the entry came from an obligation rather than a day.
func (e LedgerEntry) IsObligation() bool {
	return e.Date.IsZero()
}

// OverBudget reports whether the running balance has gone negative at this row.
func (e LedgerEntry) OverBudget() bool {
	return e.Remaining < 0
}

// DateString returns the entry date as YYYY-MM-DD, or "" for obligation rows.
func (e LedgerEntry) DateString() string {
	if e.IsObligation() {
		return ""
	}
	return e.Date.Format(DateLayout)
}

// BudgetState is the whole persisted plan: the budget, its ledger and the
// obligation list the ledger was built from.
type BudgetState struct {
	TotalBudget float64
	Entries     []LedgerEntry
	Obligations Obligations
}

// Days returns only the date-derived entries, in ledger order.
func (s *BudgetState) Days() []LedgerEntry {
	for i, e := range s.Entries {
		if !e.IsObligation() {
			return s.Entries[i:]
		}
	}
	return nil
}

// Totals is the aggregate triple shown under the ledger.
type Totals struct {
	Planned   float64
	Actual    float64
	Remaining float64
}
