package planner

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/theirongolddev/spendplan/internal/ledger"
	"github.com/theirongolddev/spendplan/internal/logging"
	"github.com/theirongolddev/spendplan/internal/model"
)

// memGateway keeps snapshots in memory. Save stores a deep copy so later
// edits do not leak into the "persisted" state.
type memGateway struct {
	plans   map[string]*model.BudgetState
	saveErr error
	loadErr error
}

func newMemGateway() *memGateway {
	return &memGateway{plans: make(map[string]*model.BudgetState)}
}

func (g *memGateway) Save(plan string, st *model.BudgetState) error {
	if g.saveErr != nil {
		return g.saveErr
	}
	cp := *st
	cp.Entries = append([]model.LedgerEntry(nil), st.Entries...)
	cp.Obligations = st.Obligations.Clone()
	g.plans[plan] = &cp
	return nil
}

func (g *memGateway) Load(plan string) (*model.BudgetState, bool, error) {
	if g.loadErr != nil {
		return nil, false, g.loadErr
	}
	st, ok := g.plans[plan]
	return st, ok, nil
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ledger.ParseDate(s)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func weekendParams(t *testing.T) ledger.Params {
	t.Helper()
	return ledger.Params{
		TotalBudget:   1000,
		Start:         mustDate(t, "2024-01-06"),
		End:           mustDate(t, "2024-01-07"),
		WeekdayAmount: 20,
		WeekendAmount: 50,
	}
}

func newBuilt(t *testing.T) (*Planner, *memGateway) {
	t.Helper()
	gw := newMemGateway()
	p := New(gw, "budgetData", model.Obligations{{Description: "Gift", Amount: 300}}, logging.Discard())
	if err := p.Generate(weekendParams(t)); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return p, gw
}

func TestNewIsEmpty(t *testing.T) {
	seed := model.Obligations{{Description: "Trip", Amount: 500}}
	p := New(newMemGateway(), "x", seed, logging.Discard())

	if p.Built() {
		t.Fatal("new planner reports a ledger")
	}
	if p.Plan() != "x" {
		t.Fatalf("Plan() = %q, want x", p.Plan())
	}
	seed[0].Amount = 1
	if got := p.State().Obligations[0].Amount; got != 500 {
		t.Fatalf("seed aliased: amount = %v, want 500", got)
	}
	if err := p.SetActual(0, "10"); !errors.Is(err, ErrNotBuilt) {
		t.Fatalf("SetActual before build = %v, want ErrNotBuilt", err)
	}
}

func TestGenerateTotals(t *testing.T) {
	p, _ := newBuilt(t)

	want := model.Totals{Planned: 400, Actual: 300, Remaining: 700}
	if got := p.Totals(); got != want {
		t.Fatalf("Totals() = %+v, want %+v", got, want)
	}
	if n := len(p.State().Entries); n != 3 {
		t.Fatalf("entries = %d, want 3", n)
	}
}

func TestGenerateInvalidRangeKeepsState(t *testing.T) {
	p, _ := newBuilt(t)
	before := p.State()

	params := weekendParams(t)
	params.Start, params.End = params.End, params.Start
	if err := p.Generate(params); !errors.Is(err, ledger.ErrInvalidRange) {
		t.Fatalf("Generate = %v, want ErrInvalidRange", err)
	}
	if p.State() != before {
		t.Fatal("state replaced after rejected generate")
	}
}

func TestSetActual(t *testing.T) {
	p, _ := newBuilt(t)

	if err := p.SetActual(1, "50"); err != nil {
		t.Fatalf("SetActual: %v", err)
	}
	var got []float64
	for _, e := range p.State().Entries {
		got = append(got, e.Remaining)
	}
	if want := []float64{700, 650, 650}; !reflect.DeepEqual(got, want) {
		t.Fatalf("remaining = %v, want %v", got, want)
	}
	if r := p.Totals().Remaining; r != 650 {
		t.Fatalf("Totals().Remaining = %v, want 650", r)
	}

	// Unparseable text counts as zero.
	if err := p.SetActual(1, "abc"); err != nil {
		t.Fatalf("SetActual: %v", err)
	}
	if r := p.Totals().Remaining; r != 700 {
		t.Fatalf("after garbage input remaining = %v, want 700", r)
	}

	if err := p.SetActual(7, "1"); !errors.Is(err, ErrNoEntry) {
		t.Fatalf("SetActual(7) = %v, want ErrNoEntry", err)
	}
}

func TestSetActualOn(t *testing.T) {
	p, _ := newBuilt(t)

	if err := p.SetActualOn(mustDate(t, "2024-01-07"), "80.5"); err != nil {
		t.Fatalf("SetActualOn: %v", err)
	}
	if got := p.State().Entries[2].Actual; got != 80.5 {
		t.Fatalf("Sunday actual = %v, want 80.5", got)
	}

	err := p.SetActualOn(mustDate(t, "2024-01-09"), "1")
	if !errors.Is(err, ErrNoEntry) {
		t.Fatalf("SetActualOn outside range = %v, want ErrNoEntry", err)
	}
	if p.IndexOf(mustDate(t, "2024-01-06")) != 1 {
		t.Fatal("IndexOf(2024-01-06) != 1")
	}
}

func TestObligationEditsAreSnapshotted(t *testing.T) {
	p, _ := newBuilt(t)
	before := append([]model.LedgerEntry(nil), p.State().Entries...)

	p.AddObligation()
	p.UpdateObligation(1, model.FieldDescription, "Rent")
	p.UpdateObligation(1, model.FieldAmount, "450")
	p.RemoveObligation(0)
	p.RemoveObligation(9)

	obs := p.State().Obligations
	if len(obs) != 1 || obs[0] != (model.Obligation{Description: "Rent", Amount: 450}) {
		t.Fatalf("obligations = %+v", obs)
	}
	if !reflect.DeepEqual(p.State().Entries, before) {
		t.Fatal("ledger changed after obligation edits")
	}

	// The next generate picks up the edited list.
	if err := p.Generate(weekendParams(t)); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if e := p.State().Entries[0]; e.Label != "Rent" || e.Planned != 450 || e.Remaining != 550 {
		t.Fatalf("first row = %+v", e)
	}
}

func TestSaveRestore(t *testing.T) {
	p, gw := newBuilt(t)
	if err := p.SetActual(1, "50"); err != nil {
		t.Fatal(err)
	}
	if err := p.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	q := New(gw, "budgetData", nil, logging.Discard())
	found, err := q.Restore()
	if err != nil || !found {
		t.Fatalf("Restore = %v, %v", found, err)
	}
	if !reflect.DeepEqual(q.State(), p.State()) {
		t.Fatalf("restored state differs:\n got %+v\nwant %+v", q.State(), p.State())
	}
	if q.Totals() != p.Totals() {
		t.Fatalf("restored totals = %+v, want %+v", q.Totals(), p.Totals())
	}
}

func TestRestoreMissingKeepsSeed(t *testing.T) {
	p := New(newMemGateway(), "none", model.Obligations{{Description: "Trip", Amount: 500}}, logging.Discard())
	found, err := p.Restore()
	if err != nil || found {
		t.Fatalf("Restore = %v, %v, want false, nil", found, err)
	}
	if len(p.State().Obligations) != 1 {
		t.Fatal("seed lost after empty restore")
	}
}

func TestRestoreError(t *testing.T) {
	gw := newMemGateway()
	gw.loadErr = errors.New("corrupt")
	p := New(gw, "bad", nil, logging.Discard())

	if _, err := p.Restore(); err == nil {
		t.Fatal("Restore swallowed the load error")
	}
}

func TestSaveFailureKeepsState(t *testing.T) {
	p, gw := newBuilt(t)
	gw.saveErr = errors.New("disk full")
	before := append([]model.LedgerEntry(nil), p.State().Entries...)

	if err := p.Save(); err == nil || !errors.Is(err, gw.saveErr) {
		t.Fatalf("Save = %v, want wrapped disk full", err)
	}
	if !reflect.DeepEqual(p.State().Entries, before) {
		t.Fatal("entries changed after failed save")
	}
}

func TestReplaceUsesStoredBalances(t *testing.T) {
	p, _ := newBuilt(t)
	st := &model.BudgetState{
		TotalBudget: 100,
		Entries: []model.LedgerEntry{
			{Date: mustDate(t, "2024-02-01"), Label: "Thursday", Planned: 10, Actual: 5, Remaining: 42},
		},
	}
	p.Replace(st)

	if r := p.Totals().Remaining; r != 42 {
		t.Fatalf("Totals().Remaining = %v, want stored 42", r)
	}
	if p.State().Entries[0].Remaining != 42 {
		t.Fatal("Replace recomputed the running balance")
	}
}
