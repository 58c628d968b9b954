package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/petervass/lineup/internal/domain"
)

// CreateRun inserts a new running record and returns it.
func (db *DB) CreateRun(runType domain.RunType) (*domain.Run, error) {
	run := &domain.Run{
		ID:        uuid.NewString(),
		Type:      runType,
		Status:    domain.RunStatusRunning,
		StartedAt: time.Now().UTC(),
	}

	query := `INSERT INTO runs (id, type, status, artists, matched, started_at)
		VALUES (:id, :type, :status, :artists, :matched, :started_at)`
	if _, err := db.NamedExec(query, run); err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}
	return run, nil
}

// FinishRun marks a run completed with its final counts.
func (db *DB) FinishRun(id string, artists, matched int) error {
	query := `UPDATE runs SET status = ?, artists = ?, matched = ?, finished_at = ? WHERE id = ?`
	if _, err := db.Exec(query, domain.RunStatusCompleted, artists, matched, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	return nil
}

// FailRun marks a run failed with an error message.
func (db *DB) FailRun(id string, errMsg string) error {
	query := `UPDATE runs SET status = ?, error = ?, finished_at = ? WHERE id = ?`
	if _, err := db.Exec(query, domain.RunStatusFailed, errMsg, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("failed to mark run failed: %w", err)
	}
	return nil
}

// GetRun fetches a single run by id.
func (db *DB) GetRun(id string) (*domain.Run, error) {
	var run domain.Run
	if err := db.Get(&run, `SELECT * FROM runs WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &run, nil
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(limit int) ([]domain.Run, error) {
	runs := []domain.Run{}
	query := `SELECT * FROM runs ORDER BY started_at DESC LIMIT ?`
	if err := db.Select(&runs, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}
