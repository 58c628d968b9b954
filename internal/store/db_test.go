package store

import (
	"path/filepath"
	"testing"

	"github.com/petervass/lineup/internal/domain"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewSQLiteDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open db: %v", err)
	}
	t.Cleanup(func() {
		if cErr := db.Close(); cErr != nil {
			t.Logf("db.Close error: %v", cErr)
		}
	})
	return db
}

func TestDB_RunLifecycle(t *testing.T) {
	db := setupTestDB(t)

	run, err := db.CreateRun(domain.RunTypeScrape)
	if err != nil {
		t.Fatalf("CreateRun failed: %v", err)
	}
	if run.ID == "" {
		t.Error("Expected a run id")
	}
	if run.Status != domain.RunStatusRunning {
		t.Errorf("Expected status running, got %s", run.Status)
	}

	fetched, err := db.GetRun(run.ID)
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if fetched.Type != domain.RunTypeScrape {
		t.Errorf("Expected type scrape, got %s", fetched.Type)
	}
	if fetched.FinishedAt != nil {
		t.Error("Expected finished_at to be unset")
	}

	if err := db.FinishRun(run.ID, 42, 30); err != nil {
		t.Fatalf("FinishRun failed: %v", err)
	}

	fetched, err = db.GetRun(run.ID)
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if fetched.Status != domain.RunStatusCompleted {
		t.Errorf("Expected status completed, got %s", fetched.Status)
	}
	if fetched.Artists != 42 || fetched.Matched != 30 {
		t.Errorf("Expected counts 42/30, got %d/%d", fetched.Artists, fetched.Matched)
	}
	if fetched.FinishedAt == nil {
		t.Error("Expected finished_at to be set")
	}
}

func TestDB_FailRun(t *testing.T) {
	db := setupTestDB(t)

	run, err := db.CreateRun(domain.RunTypeEnrich)
	if err != nil {
		t.Fatalf("CreateRun failed: %v", err)
	}

	if err := db.FailRun(run.ID, "live scrape failed: timeout"); err != nil {
		t.Fatalf("FailRun failed: %v", err)
	}

	fetched, err := db.GetRun(run.ID)
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if fetched.Status != domain.RunStatusFailed {
		t.Errorf("Expected status failed, got %s", fetched.Status)
	}
	if fetched.Error == nil || *fetched.Error != "live scrape failed: timeout" {
		t.Errorf("Expected error message, got %v", fetched.Error)
	}
}

func TestDB_ListRuns(t *testing.T) {
	db := setupTestDB(t)

	for i := 0; i < 3; i++ {
		if _, err := db.CreateRun(domain.RunTypeScrape); err != nil {
			t.Fatalf("CreateRun failed: %v", err)
		}
	}

	runs, err := db.ListRuns(2)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("Expected 2 runs with limit, got %d", len(runs))
	}

	runs, err = db.ListRuns(10)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 3 {
		t.Errorf("Expected 3 runs, got %d", len(runs))
	}
}
