package database

import (
	"path/filepath"
	"testing"
)

// newTestDB opens a fresh file-backed database with migrations applied.
func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := NewConnection(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewConnection: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})

	if _, _, err := RunMigrations(db); err != nil {
		t.Fatalf("RunMigrations: %v", err)
	}

	return db
}

func TestRunMigrationsIsIdempotent(t *testing.T) {
	db := newTestDB(t)

	version, dirty, err := RunMigrations(db)
	if err != nil {
		t.Fatalf("second RunMigrations: %v", err)
	}
	if dirty {
		t.Error("migrations left dirty")
	}
	if version == 0 {
		t.Error("expected non-zero migration version")
	}
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }
