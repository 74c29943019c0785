package cmd

import (
	"errors"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/spendplan/internal/config"
	"github.com/theirongolddev/spendplan/internal/ledger"
	"github.com/theirongolddev/spendplan/internal/logging"
	"github.com/theirongolddev/spendplan/internal/model"
	"github.com/theirongolddev/spendplan/internal/planner"
	"github.com/theirongolddev/spendplan/internal/store"
)

func fixedNow(t *testing.T, s string) {
	t.Helper()
	d, err := ledger.ParseDate(s)
	if err != nil {
		t.Fatal(err)
	}
	restore := timeNow
	timeNow = func() time.Time { return d.Add(9 * time.Hour) }
	t.Cleanup(func() { timeNow = restore })
}

// newBuildCmd binds the build flags to a fresh flag set so Changed state
// does not leak between tests.
func newBuildCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{}
	c.Flags().StringVar(&flagTotal, "total", "", "")
	c.Flags().StringVar(&flagStart, "start", "", "")
	c.Flags().StringVar(&flagEnd, "end", "", "")
	c.Flags().StringVar(&flagWeekday, "weekday", "", "")
	c.Flags().StringVar(&flagWeekend, "weekend", "", "")
	if err := c.Flags().Parse(args); err != nil {
		t.Fatalf("parse %v: %v", args, err)
	}
	return c
}

func TestBuildParamsDefaultsFromConfig(t *testing.T) {
	fixedNow(t, "2024-05-01")
	cfg = config.DefaultConfig()
	cfg.Budget.Days = 7
	log = logging.Discard()

	params, err := buildParams(newBuildCmd(t))
	if err != nil {
		t.Fatalf("buildParams: %v", err)
	}
	if params.TotalBudget != 2000 || params.WeekdayAmount != 40 || params.WeekendAmount != 60 {
		t.Fatalf("amounts = %+v", params)
	}
	if got := params.Start.Format(model.DateLayout); got != "2024-05-01" {
		t.Fatalf("start = %s, want 2024-05-01", got)
	}
	if got := params.End.Format(model.DateLayout); got != "2024-05-07" {
		t.Fatalf("end = %s, want 2024-05-07", got)
	}
}

func TestBuildParamsFlagsOverride(t *testing.T) {
	cfg = config.DefaultConfig()
	log = logging.Discard()

	c := newBuildCmd(t, "--total", "0", "--start", "2024-01-06", "--end", "2024-01-07", "--weekend", "50")
	params, err := buildParams(c)
	if err != nil {
		t.Fatalf("buildParams: %v", err)
	}
	// An explicit zero still counts as set.
	if params.TotalBudget != 0 {
		t.Fatalf("total = %v, want 0", params.TotalBudget)
	}
	if params.WeekendAmount != 50 || params.WeekdayAmount != 40 {
		t.Fatalf("weekday/weekend = %v/%v, want 40/50", params.WeekdayAmount, params.WeekendAmount)
	}
	if ledger.DayCount(params.Start, params.End) != 2 {
		t.Fatalf("range = %v..%v", params.Start, params.End)
	}

	if _, err := buildParams(newBuildCmd(t, "--start", "06/01/2024")); err == nil {
		t.Fatal("bad start date accepted")
	}
}

type memGateway map[string]*model.BudgetState

func (g memGateway) Save(plan string, st *model.BudgetState) error {
	g[plan] = st
	return nil
}

func (g memGateway) Load(plan string) (*model.BudgetState, bool, error) {
	st, ok := g[plan]
	return st, ok, nil
}

func TestApplySpend(t *testing.T) {
	fixedNow(t, "2024-01-07")

	p := planner.New(memGateway{}, store.DefaultPlan, model.Obligations{{Description: "Gift", Amount: 300}}, logging.Discard())
	if err := applySpend(p, "today", "5"); !errors.Is(err, planner.ErrNotBuilt) {
		t.Fatalf("spend before build = %v, want ErrNotBuilt", err)
	}

	start, _ := ledger.ParseDate("2024-01-06")
	end, _ := ledger.ParseDate("2024-01-07")
	err := p.Generate(ledger.Params{TotalBudget: 1000, Start: start, End: end, WeekdayAmount: 20, WeekendAmount: 50})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		target string
		row    int
		amount string
		want   float64
	}{
		{"2024-01-06", 1, "50", 50},
		{"#3", 2, "12.5", 12.5},
		{"1", 0, "310", 310},
		{"today", 2, "7 EUR", 7},
		{"TODAY", 2, "oops", 0},
	}
	for _, tc := range tests {
		if err := applySpend(p, tc.target, tc.amount); err != nil {
			t.Fatalf("applySpend(%q): %v", tc.target, err)
		}
		if got := p.State().Entries[tc.row].Actual; got != tc.want {
			t.Fatalf("applySpend(%q, %q): row %d actual = %v, want %v", tc.target, tc.amount, tc.row, got, tc.want)
		}
	}

	for _, bad := range []string{"#0", "#9", "2024-02-01"} {
		if err := applySpend(p, bad, "1"); !errors.Is(err, planner.ErrNoEntry) {
			t.Fatalf("applySpend(%q) = %v, want ErrNoEntry", bad, err)
		}
	}
	if err := applySpend(p, "yesterday", "1"); err == nil {
		t.Fatal("unparseable target accepted")
	}
}

func TestLedgerRowsNumbering(t *testing.T) {
	start, _ := ledger.ParseDate("2024-01-06")
	st, err := ledger.Build(ledger.Params{TotalBudget: 100, Start: start, End: start, WeekendAmount: 50},
		model.Obligations{{Description: "Gift", Amount: 300}})
	if err != nil {
		t.Fatal(err)
	}

	rows, _ := ledgerRows(st)
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0][0] != "1" || rows[1][0] != "2" {
		t.Fatalf("row numbers = %q, %q", rows[0][0], rows[1][0])
	}
	if rows[1][1] != "2024-01-06" || rows[1][2] != "Saturday" {
		t.Fatalf("day row = %v", rows[1])
	}
}

func TestBuildParamsLenientAmounts(t *testing.T) {
	cfg = config.DefaultConfig()
	log = logging.Discard()

	c := newBuildCmd(t, "--total", "NaN", "--weekday", "abc", "--weekend", "12.5 EUR")
	params, err := buildParams(c)
	if err != nil {
		t.Fatalf("buildParams: %v", err)
	}
	if params.TotalBudget != 0 || params.WeekdayAmount != 0 || params.WeekendAmount != 12.5 {
		t.Fatalf("amounts = %v/%v/%v, want 0/0/12.5",
			params.TotalBudget, params.WeekdayAmount, params.WeekendAmount)
	}

	if _, err := buildParams(newBuildCmd(t, "--total", "-Inf")); err != nil {
		t.Fatalf("buildParams(-Inf): %v", err)
	}
	if flagTotal != "-Inf" {
		t.Fatalf("flagTotal = %q", flagTotal)
	}
}

// brokenGateway fails every Load, like a plan whose stored snapshot is corrupt.
type brokenGateway struct {
	memGateway
}

func (g brokenGateway) Load(string) (*model.BudgetState, bool, error) {
	return nil, false, errors.New("corrupt snapshot")
}

func TestImportOverCorruptPlan(t *testing.T) {
	log = logging.Discard()
	gw := brokenGateway{memGateway{}}

	data := []byte(`{"entries":[{"date":"2024-01-06","label":"Saturday","plannedAmount":50,` +
		`"actualAmount":20,"runningRemaining":"80.00"}],"totalBudget":100,"obligations":[]}`)
	p, err := importSnapshot(gw, "budgetData", data)
	if err != nil {
		t.Fatalf("importSnapshot: %v", err)
	}
	if p.Totals().Remaining != 80 {
		t.Fatalf("remaining = %v, want stored 80", p.Totals().Remaining)
	}
	saved, ok := gw.memGateway["budgetData"]
	if !ok || len(saved.Entries) != 1 || saved.Entries[0].Actual != 20 {
		t.Fatalf("saved = %+v", saved)
	}

	if _, err := importSnapshot(gw, "budgetData", []byte("{")); err == nil {
		t.Fatal("malformed import accepted")
	}
}

func TestPeriodLabel(t *testing.T) {
	start, _ := ledger.ParseDate("2024-01-06")
	end, _ := ledger.ParseDate("2024-01-08")
	st, err := ledger.Build(ledger.Params{Start: start, End: end}, nil)
	if err != nil {
		t.Fatal(err)
	}

	want := "Sat 2024-01-06 → Mon 2024-01-08 (3 days)"
	if got := periodLabel(st.Days()); got != want {
		t.Fatalf("periodLabel = %q, want %q", got, want)
	}
	if got := periodLabel(nil); got != "—" {
		t.Fatalf("periodLabel(nil) = %q", got)
	}
}
