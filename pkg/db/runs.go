package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	KindOptimize = "optimize"
	KindResearch = "research"

	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Run is one recorded invocation.
type Run struct {
	RunID          string
	Kind           string
	Input          string
	Status         string
	FailedStage    string
	Title          string
	OriginalPrice  float64
	SuggestedPrice float64
	Confidence     float64
	OutputPath     string
	ErrorMessage   string
	Duration       time.Duration
	CreatedAt      time.Time
}

// InsertRun stores r, assigning a RunID and CreatedAt when unset, and
// returns the RunID.
func (db *DB) InsertRun(r *Run) (string, error) {
	if r.RunID == "" {
		r.RunID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	r.CreatedAt = r.CreatedAt.UTC()

	_, err := db.Exec(`
		INSERT INTO runs (run_id, kind, input, status, failed_stage, title, original_price,
		                  suggested_price, confidence, output_path, error_message, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.RunID, r.Kind, r.Input, r.Status, r.FailedStage, r.Title, r.OriginalPrice,
		r.SuggestedPrice, r.Confidence, r.OutputPath, r.ErrorMessage, r.Duration.Milliseconds(), r.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}
	return r.RunID, nil
}

const runColumns = `run_id, kind, input, status, COALESCE(failed_stage, ''), COALESCE(title, ''),
	original_price, suggested_price, confidence, COALESCE(output_path, ''),
	COALESCE(error_message, ''), duration_ms, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (*Run, error) {
	var r Run
	var durationMS int64
	if err := s.Scan(&r.RunID, &r.Kind, &r.Input, &r.Status, &r.FailedStage, &r.Title,
		&r.OriginalPrice, &r.SuggestedPrice, &r.Confidence, &r.OutputPath,
		&r.ErrorMessage, &durationMS, &r.CreatedAt); err != nil {
		return nil, err
	}
	r.Duration = time.Duration(durationMS) * time.Millisecond
	return &r, nil
}

// GetRun returns the run with the given ID.
func (db *DB) GetRun(runID string) (*Run, error) {
	r, err := scanRun(db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE run_id = ?`, runID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s not found", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return r, nil
}

// ListRuns returns the newest runs first, optionally only failures.
func (db *DB) ListRuns(limit int, failedOnly bool) ([]Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs`
	var args []any
	if failedOnly {
		query += ` WHERE status = ?`
		args = append(args, StatusFailed)
	}
	query += ` ORDER BY created_at DESC, rowid DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, *r)
	}
	return runs, rows.Err()
}
