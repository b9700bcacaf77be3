package migration

import (
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestApplyRunsPendingInOrder(t *testing.T) {
	fsys := fstest.MapFS{
		"002_add_notes.sql": {Data: []byte("CREATE TABLE notes (id INTEGER PRIMARY KEY);")},
		"001_init.sql":      {Data: []byte("CREATE TABLE activities (id INTEGER PRIMARY KEY);")},
	}
	r := NewRunner(openTestDB(t), fsys, DialectSQLite)

	version, err := r.CurrentVersion()
	if err != nil {
		t.Fatalf("CurrentVersion: %v", err)
	}
	if version != 0 {
		t.Fatalf("fresh database version = %d, want 0", version)
	}

	applied, err := r.Apply(nil)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if applied != 2 {
		t.Errorf("applied = %d, want 2", applied)
	}

	version, err = r.CurrentVersion()
	if err != nil {
		t.Fatalf("CurrentVersion: %v", err)
	}
	if version != 2 {
		t.Errorf("version after Apply = %d, want 2", version)
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	fsys := fstest.MapFS{
		"001_init.sql": {Data: []byte("CREATE TABLE activities (id INTEGER PRIMARY KEY);")},
	}
	r := NewRunner(openTestDB(t), fsys, DialectSQLite)

	if _, err := r.Apply(nil); err != nil {
		t.Fatalf("first Apply: %v", err)
	}
	applied, err := r.Apply(nil)
	if err != nil {
		t.Fatalf("second Apply: %v", err)
	}
	if applied != 0 {
		t.Errorf("second Apply applied = %d, want 0", applied)
	}
}

func TestReadMigrationFilesRejectsBadNames(t *testing.T) {
	tests := []struct {
		name     string
		filename string
	}{
		{"missing version", "init.sql"},
		{"non-numeric version", "abc_init.sql"},
		{"zero version", "000_init.sql"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := fstest.MapFS{
				tt.filename: {Data: []byte("SELECT 1;")},
			}
			r := NewRunner(openTestDB(t), fsys, DialectSQLite)
			if _, err := r.ReadMigrationFiles(); err == nil {
				t.Errorf("expected error for filename %q", tt.filename)
			}
		})
	}
}

func TestReadMigrationFilesRejectsDuplicateVersions(t *testing.T) {
	fsys := fstest.MapFS{
		"001_init.sql":  {Data: []byte("SELECT 1;")},
		"001_other.sql": {Data: []byte("SELECT 1;")},
	}
	r := NewRunner(openTestDB(t), fsys, DialectSQLite)
	if _, err := r.ReadMigrationFiles(); err == nil {
		t.Error("expected duplicate version error")
	}
}

func TestValidateVersionRejectsNewerSchema(t *testing.T) {
	db := openTestDB(t)
	fsys := fstest.MapFS{
		"001_init.sql": {Data: []byte("CREATE TABLE activities (id INTEGER PRIMARY KEY);")},
	}
	r := NewRunner(db, fsys, DialectSQLite)
	if _, err := r.Apply(nil); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("bump version: %v", err)
	}

	if err := r.ValidateVersion(); err == nil {
		t.Error("expected error for schema newer than supported")
	}
	if _, err := r.Apply(nil); err == nil {
		t.Error("Apply should refuse a schema newer than supported")
	}
}

func TestApplyRollsBackFailedMigration(t *testing.T) {
	db := openTestDB(t)
	fsys := fstest.MapFS{
		"001_init.sql": {Data: []byte("CREATE TABLE activities (id INTEGER PRIMARY KEY);")},
		"002_bad.sql":  {Data: []byte("THIS IS NOT SQL;")},
	}
	r := NewRunner(db, fsys, DialectSQLite)

	applied, err := r.Apply(nil)
	if err == nil {
		t.Fatal("expected error from bad migration")
	}
	if applied != 1 {
		t.Errorf("applied = %d, want 1", applied)
	}

	version, err := r.CurrentVersion()
	if err != nil {
		t.Fatalf("CurrentVersion: %v", err)
	}
	if version != 1 {
		t.Errorf("version after failed migration = %d, want 1", version)
	}
}
