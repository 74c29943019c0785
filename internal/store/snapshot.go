package store

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/theirongolddev/spendplan/internal/model"
)

// snapshot is the persisted JSON shape. Field names and the two-decimal text
// form of runningRemaining are kept stable so older saves stay readable.
type snapshot struct {
	Entries     []snapshotEntry      `json:"entries"`
	TotalBudget float64              `json:"totalBudget"`
	Obligations []snapshotObligation `json:"obligations"`
}

type snapshotEntry struct {
	Date             string  `json:"date,omitempty"`
	Label            string  `json:"label"`
	PlannedAmount    float64 `json:"plannedAmount"`
	ActualAmount     float64 `json:"actualAmount"`
	RunningRemaining string  `json:"runningRemaining"`
}

type snapshotObligation struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// Encode serializes a budget state into the snapshot JSON format.
func Encode(st *model.BudgetState) ([]byte, error) {
	snap := snapshot{
		Entries:     make([]snapshotEntry, 0, len(st.Entries)),
		TotalBudget: st.TotalBudget,
		Obligations: make([]snapshotObligation, 0, len(st.Obligations)),
	}
	for _, e := range st.Entries {
		snap.Entries = append(snap.Entries, snapshotEntry{
			Date:             e.DateString(),
			Label:            e.Label,
			PlannedAmount:    e.Planned,
			ActualAmount:     e.Actual,
			RunningRemaining: strconv.FormatFloat(e.Remaining, 'f', 2, 64),
		})
	}
	for _, ob := range st.Obligations {
		snap.Obligations = append(snap.Obligations, snapshotObligation{
			Description: ob.Description,
			Amount:      ob.Amount,
		})
	}
	return json.Marshal(snap)
}

// Decode restores a budget state verbatim from snapshot JSON. Running balances
// are read back as stored, not recomputed.
func Decode(data []byte) (*model.BudgetState, error) {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}

	st := &model.BudgetState{TotalBudget: snap.TotalBudget}
	if len(snap.Entries) > 0 {
		st.Entries = make([]model.LedgerEntry, 0, len(snap.Entries))
	}
	for i, se := range snap.Entries {
		e := model.LedgerEntry{
			Label:   se.Label,
			Planned: se.PlannedAmount,
			Actual:  se.ActualAmount,
		}
		if se.Date != "" {
			d, err := time.Parse(model.DateLayout, se.Date)
			if err != nil {
				return nil, fmt.Errorf("entry %d: bad date %q: %w", i, se.Date, err)
			}
			if d.IsZero() {
				return nil, fmt.Errorf("entry %d: date %q is reserved for obligation rows", i, se.Date)
			}
			e.Date = d
		}
		if se.RunningRemaining != "" {
			r, err := strconv.ParseFloat(se.RunningRemaining, 64)
			if err != nil {
				return nil, fmt.Errorf("entry %d: bad runningRemaining %q: %w", i, se.RunningRemaining, err)
			}
			e.Remaining = r
		}
		st.Entries = append(st.Entries, e)
	}

	if len(snap.Obligations) > 0 {
		st.Obligations = make(model.Obligations, 0, len(snap.Obligations))
	}
	for _, so := range snap.Obligations {
		st.Obligations = append(st.Obligations, model.Obligation{
			Description: so.Description,
			Amount:      so.Amount,
		})
	}
	return st, nil
}
