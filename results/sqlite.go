// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package results

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps outcomes of named runs in an SQLite database.
// A missing response is stored as NULL in the correct column.
type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

// Init opens the database and creates the tables if needed
func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("results: sqlite path is required")
	}
	if s.db != nil {
		return nil
	}
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}
	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}
	s.db = db
	return nil
}

// SaveOutcomes stores the outcomes of a run, replacing trials already
// stored under the same run and trial number
func (s *SQLiteStore) SaveOutcomes(ctx context.Context, run string, ocs []Outcome) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, oc := range ocs {
		var correct sql.NullBool
		if oc.Response != NoResp {
			correct = sql.NullBool{Bool: oc.Response == Correct, Valid: true}
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO outcomes (run, trial, correct, rt, decision, in0, in1)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(run, trial) DO UPDATE SET
				correct = excluded.correct,
				rt = excluded.rt,
				decision = excluded.decision,
				in0 = excluded.in0,
				in1 = excluded.in1
		`, run, oc.Trial, correct, float64(oc.RT), oc.Decision, oc.Pattern[0], oc.Pattern[1])
		if err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// GetOutcomes returns the outcomes of a run in trial order
func (s *SQLiteStore) GetOutcomes(ctx context.Context, run string) ([]Outcome, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, false, err
	}
	rows, err := db.QueryContext(ctx, `
		SELECT trial, correct, rt, decision, in0, in1
		FROM outcomes
		WHERE run = ?
		ORDER BY trial
	`, run)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()

	var ocs []Outcome
	for rows.Next() {
		var oc Outcome
		var correct sql.NullBool
		var rt float64
		if err := rows.Scan(&oc.Trial, &correct, &rt, &oc.Decision, &oc.Pattern[0], &oc.Pattern[1]); err != nil {
			return nil, false, err
		}
		oc.RT = float32(rt)
		switch {
		case !correct.Valid:
			oc.Response = NoResp
		case correct.Bool:
			oc.Response = Correct
		default:
			oc.Response = Incorrect
		}
		ocs = append(ocs, oc)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	return ocs, len(ocs) > 0, nil
}

// Runs returns the names of all stored runs
func (s *SQLiteStore) Runs(ctx context.Context) ([]string, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, `SELECT DISTINCT run FROM outcomes ORDER BY run`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var runs []string
	for rows.Next() {
		var run string
		if err := rows.Scan(&run); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, errors.New("results: sqlite store is not initialized")
	}
	return s.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS outcomes (
			run TEXT NOT NULL,
			trial INTEGER NOT NULL,
			correct INTEGER,
			rt REAL NOT NULL,
			decision INTEGER NOT NULL,
			in0 INTEGER NOT NULL,
			in1 INTEGER NOT NULL,
			PRIMARY KEY (run, trial)
		)
	`)
	return err
}
