// Package planner owns the budget state for one session. Every mutation of
// the ledger or the obligation list goes through a Planner, which keeps the
// running balance current and hands snapshots to the store.
package planner

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/theirongolddev/spendplan/internal/ledger"
	"github.com/theirongolddev/spendplan/internal/model"
)

var (
	// ErrNoEntry is returned when an edit targets a row or date not in the ledger.
	ErrNoEntry = errors.New("no such ledger entry")
	// ErrNotBuilt is returned for ledger edits before any ledger exists.
	ErrNotBuilt = errors.New("no ledger generated yet")
)

// Gateway persists whole budget states under a plan name.
type Gateway interface {
	Save(plan string, st *model.BudgetState) error
	Load(plan string) (*model.BudgetState, bool, error)
}

// Planner is the application state: the current BudgetState plus the plan
// name it is saved under. It is not safe for concurrent use; callers run one
// event handler at a time.
type Planner struct {
	gw     Gateway
	plan   string
	log    logrus.FieldLogger
	state  *model.BudgetState
	totals model.Totals
}

// New returns a planner with no ledger and the given seed obligations.
func New(gw Gateway, plan string, seed model.Obligations, log logrus.FieldLogger) *Planner {
	st := &model.BudgetState{Obligations: seed.Clone()}
	return &Planner{
		gw:     gw,
		plan:   plan,
		log:    log.WithField("plan", plan),
		state:  st,
		totals: ledger.Summarize(st),
	}
}

// Plan returns the name the state is saved under.
func (p *Planner) Plan() string { return p.plan }

// State returns the live state. Callers must treat it as read-only and
// mutate through the Planner.
func (p *Planner) State() *model.BudgetState { return p.state }

// Totals returns the aggregate planned/actual/remaining triple.
func (p *Planner) Totals() model.Totals { return p.totals }

// Built reports whether a ledger exists.
func (p *Planner) Built() bool { return len(p.state.Entries) > 0 }

// Restore replaces the state with the saved snapshot, if any. The snapshot is
// taken verbatim; running balances are not recomputed.
func (p *Planner) Restore() (bool, error) {
	st, found, err := p.gw.Load(p.plan)
	if err != nil {
		p.log.WithError(err).Warn("restore failed")
		return false, fmt.Errorf("loading plan %q: %w", p.plan, err)
	}
	if !found {
		p.log.Debug("no saved plan")
		return false, nil
	}
	p.state = st
	p.totals = ledger.Summarize(st)
	p.log.WithField("entries", len(st.Entries)).Info("plan restored")
	return true, nil
}

// Generate builds a fresh ledger from params and the current obligation list.
// On error the existing state is left untouched.
func (p *Planner) Generate(params ledger.Params) error {
	st, err := ledger.Build(params, p.state.Obligations)
	if err != nil {
		p.log.WithError(err).Info("ledger not generated")
		return err
	}
	p.state = st
	p.totals = ledger.Summarize(st)
	p.log.WithFields(logrus.Fields{
		"entries": len(st.Entries),
		"start":   params.Start.Format(model.DateLayout),
		"end":     params.End.Format(model.DateLayout),
		"total":   params.TotalBudget,
	}).Info("ledger generated")
	return nil
}

// SetActual records the actual spend for the row at index i and recomputes
// the running balance.
func (p *Planner) SetActual(i int, raw string) error {
	if !p.Built() {
		return ErrNotBuilt
	}
	if i < 0 || i >= len(p.state.Entries) {
		return fmt.Errorf("%w: row %d of %d", ErrNoEntry, i+1, len(p.state.Entries))
	}
	p.state.Entries[i].Actual = model.ParseAmount(raw)
	p.totals = ledger.Recalculate(p.state)
	p.log.WithFields(logrus.Fields{
		"index":  i,
		"actual": p.state.Entries[i].Actual,
	}).Debug("actual updated")
	return nil
}

// SetActualOn records the actual spend for the given calendar day.
func (p *Planner) SetActualOn(day time.Time, raw string) error {
	if !p.Built() {
		return ErrNotBuilt
	}
	i := p.IndexOf(day)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNoEntry, ledger.Day(day).Format(model.DateLayout))
	}
	return p.SetActual(i, raw)
}

// IndexOf returns the ledger row for day, or -1.
func (p *Planner) IndexOf(day time.Time) int {
	d := ledger.Day(day)
	for i, e := range p.state.Entries {
		if !e.IsObligation() && e.Date.Equal(d) {
			return i
		}
	}
	return -1
}

// AddObligation appends an empty obligation to the list.
func (p *Planner) AddObligation() {
	p.state.Obligations.Add()
	p.log.WithField("count", len(p.state.Obligations)).Debug("obligation added")
}

// RemoveObligation deletes the obligation at i. Out-of-range indexes are ignored.
func (p *Planner) RemoveObligation(i int) {
	if !p.state.Obligations.Remove(i) {
		p.log.WithField("index", i).Debug("remove ignored: index out of range")
		return
	}
	p.log.WithField("count", len(p.state.Obligations)).Debug("obligation removed")
}

// UpdateObligation sets one field of the obligation at i. Rows already
// materialized in the ledger keep their original amounts until the next
// Generate.
func (p *Planner) UpdateObligation(i int, field model.ObligationField, value string) {
	p.state.Obligations.Update(i, field, value)
}

// Save snapshots the current state. A failure leaves the in-memory state as is.
func (p *Planner) Save() error {
	if err := p.gw.Save(p.plan, p.state); err != nil {
		p.log.WithError(err).Error("save failed")
		return fmt.Errorf("saving plan %q: %w", p.plan, err)
	}
	p.log.WithField("entries", len(p.state.Entries)).Info("plan saved")
	return nil
}

// Replace swaps in an externally decoded state, for example an import.
func (p *Planner) Replace(st *model.BudgetState) {
	p.state = st
	p.totals = ledger.Summarize(st)
	p.log.WithField("entries", len(st.Entries)).Info("plan replaced")
}
