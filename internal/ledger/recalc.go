package ledger

import "github.com/theirongolddev/spendplan/internal/model"

// Recalculate walks the ledger once, in order, and rewrites every entry's
// Remaining as TotalBudget minus the actual spend accumulated so far.
// Planned amounts only feed the returned totals; unspent allowance never
// lowers the balance.
func Recalculate(st *model.BudgetState) model.Totals {
	var cumActual, cumPlanned float64
	remaining := model.RoundCents(st.TotalBudget)

	for i := range st.Entries {
		e := &st.Entries[i]
		cumActual += e.Actual
		cumPlanned += e.Planned
		remaining = model.RoundCents(st.TotalBudget - cumActual)
		e.Remaining = remaining
	}

	return model.Totals{
		Planned:   cumPlanned,
		Actual:    cumActual,
		Remaining: remaining,
	}
}

// Summarize computes the totals triple from the entries as stored, without
// rewriting any Remaining. Restored snapshots are shown through this.
func Summarize(st *model.BudgetState) model.Totals {
	t := model.Totals{Remaining: model.RoundCents(st.TotalBudget)}
	for _, e := range st.Entries {
		t.Planned += e.Planned
		t.Actual += e.Actual
	}
	if n := len(st.Entries); n > 0 {
		t.Remaining = st.Entries[n-1].Remaining
	}
	return t
}

// OverBudgetDays counts the day rows whose running balance is negative.
func OverBudgetDays(st *model.BudgetState) int {
	n := 0
	for _, e := range st.Entries {
		if !e.IsObligation() && e.OverBudget() {
			n++
		}
	}
	return n
}
