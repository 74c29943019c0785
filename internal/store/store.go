// Package store provides the SQLite-backed snapshot store for saved plans.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/spendplan/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// DefaultPlan is the key a plan is saved under when none is chosen.
const DefaultPlan = "budgetData"

// Store keeps one JSON snapshot per plan name.
type Store struct {
	db *sql.DB
}

// PlanInfo describes a saved plan without decoding it.
type PlanInfo struct {
	Name        string
	Entries     int
	TotalBudget float64
	SavedAt     time.Time
}

// Open opens or creates the snapshot database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening snapshot db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the snapshot database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save overwrites the snapshot stored under plan.
func (s *Store) Save(plan string, st *model.BudgetState) error {
	payload, err := Encode(st)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.Exec(`INSERT OR REPLACE INTO snapshots
		(plan, payload, entry_count, total_budget, saved_at)
		VALUES (?, ?, ?, ?, ?)`,
		plan, payload, len(st.Entries), st.TotalBudget, now,
	)
	if err != nil {
		return fmt.Errorf("writing snapshot %q: %w", plan, err)
	}
	return nil
}

// Load returns the snapshot stored under plan. found is false when the plan
// has never been saved.
func (s *Store) Load(plan string) (st *model.BudgetState, found bool, err error) {
	var payload []byte
	err = s.db.QueryRow("SELECT payload FROM snapshots WHERE plan = ?", plan).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading snapshot %q: %w", plan, err)
	}

	st, err = Decode(payload)
	if err != nil {
		return nil, false, fmt.Errorf("snapshot %q is corrupt: %w", plan, err)
	}
	return st, true, nil
}

// List returns every saved plan, most recently saved first.
func (s *Store) List() ([]PlanInfo, error) {
	rows, err := s.db.Query(`SELECT plan, entry_count, total_budget, saved_at
		FROM snapshots ORDER BY saved_at DESC, plan`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var plans []PlanInfo
	for rows.Next() {
		var p PlanInfo
		var savedAt string
		if err := rows.Scan(&p.Name, &p.Entries, &p.TotalBudget, &savedAt); err != nil {
			return nil, err
		}
		p.SavedAt, _ = time.Parse(time.RFC3339, savedAt)
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

// Delete removes a saved plan. Deleting a missing plan is not an error.
func (s *Store) Delete(plan string) error {
	_, err := s.db.Exec("DELETE FROM snapshots WHERE plan = ?", plan)
	return err
}
