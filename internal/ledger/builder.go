// Package ledger expands budget parameters into a day-by-day spending plan
// and keeps its running balance in sync.
package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/theirongolddev/spendplan/internal/model"
)

// ErrInvalidRange is returned by Build when the start date is after the end date.
var ErrInvalidRange = errors.New("start date is after end date")

// ErrDateOutOfRange is returned for dates on or before 0001-01-01. The zero
// time marks obligation rows, so no day row may use it.
var ErrDateOutOfRange = errors.New("date must be after 0001-01-01")

// Params are the form inputs a ledger is built from.
type Params struct {
	TotalBudget   float64
	Start         time.Time
	End           time.Time
	WeekdayAmount float64
	WeekendAmount float64
}

// Validate checks the date range. The budget amounts are taken as entered.
func (p Params) Validate() error {
	start, end := Day(p.Start), Day(p.End)
	if !inRange(start) {
		return fmt.Errorf("%w (start %s)", ErrDateOutOfRange, start.Format(model.DateLayout))
	}
	if start.After(end) {
		return fmt.Errorf("%w (%s > %s)", ErrInvalidRange,
			start.Format(model.DateLayout), end.Format(model.DateLayout))
	}
	return nil
}

// Build materializes a ledger: one row per obligation in list order, then one
// row per calendar day in [Start, End]. The obligation amounts are copied, so
// later edits to the list do not reach the built rows.
func Build(p Params, obligations model.Obligations) (*model.BudgetState, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	start, end := Day(p.Start), Day(p.End)
	n := DayCount(start, end)

	entries := make([]model.LedgerEntry, 0, len(obligations)+n)
	for _, ob := range obligations {
		entries = append(entries, model.LedgerEntry{
			Label:   ob.Description,
			Planned: ob.Amount,
			Actual:  ob.Amount,
		})
	}

	for i := 0; i < n; i++ {
		d := start.AddDate(0, 0, i)
		planned := p.WeekdayAmount
		if IsWeekend(d) {
			planned = p.WeekendAmount
		}
		entries = append(entries, model.LedgerEntry{
			Date:    d,
			Label:   d.Weekday().String(),
			Planned: planned,
		})
	}

	st := &model.BudgetState{
		TotalBudget: p.TotalBudget,
		Entries:     entries,
		Obligations: obligations.Clone(),
	}
	Recalculate(st)
	return st, nil
}

// Day truncates t to midnight UTC of its calendar day, ignoring its zone.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

const secondsPerDay = 24 * 60 * 60

// DayCount returns the number of calendar days in [start, end], inclusive.
// It is 0 when start is after end.
func DayCount(start, end time.Time) int {
	start, end = Day(start), Day(end)
	if start.After(end) {
		return 0
	}
	return int((end.Unix()-start.Unix())/secondsPerDay) + 1
}

// IsWeekend reports whether t falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(model.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	if !inRange(d) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrDateOutOfRange, s)
	}
	return d, nil
}

func inRange(day time.Time) bool {
	return day.After(time.Time{})
}
