package database

import (
	"context"
	"io/fs"
	"testing"
	"testing/fstest"
)

// withMigrationsFS swaps the registered migrations filesystem for the
// duration of a test. Tests in this file cannot run in parallel because
// MigrationsFS is package state.
func withMigrationsFS(t *testing.T, fsys fs.FS) {
	t.Helper()
	orig := MigrationsFS
	MigrationsFS = fsys
	t.Cleanup(func() { MigrationsFS = orig })
}

func TestMigrate_AppliesInOrder(t *testing.T) {
	withMigrationsFS(t, fstest.MapFS{
		"002_add_column.sql": &fstest.MapFile{
			Data: []byte("ALTER TABLE things ADD COLUMN label TEXT"),
		},
		"001_create_table.sql": &fstest.MapFile{
			Data: []byte("CREATE TABLE things (id INTEGER PRIMARY KEY)"),
		},
	})

	db := openTestDB(t)
	defer db.Close() //nolint:errcheck // Test cleanup

	ctx := context.Background()
	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	// The ALTER in 002 only succeeds if 001 ran first.
	if _, err := db.ExecContext(ctx, "INSERT INTO things (label) VALUES (?)", "x"); err != nil {
		t.Errorf("schema incomplete after Migrate(): %v", err)
	}

	version, err := db.SchemaVersion(ctx)
	if err != nil {
		t.Fatalf("SchemaVersion() error = %v", err)
	}
	if version != "002" {
		t.Errorf("SchemaVersion() = %q, want %q", version, "002")
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	withMigrationsFS(t, fstest.MapFS{
		"001_create_table.sql": &fstest.MapFile{
			Data: []byte("CREATE TABLE once_only (id INTEGER PRIMARY KEY)"),
		},
	})

	db := openTestDB(t)
	defer db.Close() //nolint:errcheck // Test cleanup

	ctx := context.Background()
	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("first Migrate() error = %v", err)
	}
	// A second run must skip the already-applied migration; re-executing
	// the CREATE TABLE would fail.
	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("second Migrate() error = %v", err)
	}
}

func TestMigrate_FailureRollsBack(t *testing.T) {
	withMigrationsFS(t, fstest.MapFS{
		"001_good.sql": &fstest.MapFile{
			Data: []byte("CREATE TABLE good (id INTEGER PRIMARY KEY)"),
		},
		"002_bad.sql": &fstest.MapFile{
			Data: []byte("THIS IS NOT SQL"),
		},
	})

	db := openTestDB(t)
	defer db.Close() //nolint:errcheck // Test cleanup

	ctx := context.Background()
	if err := db.Migrate(ctx); err == nil {
		t.Fatal("Migrate() expected error from bad migration, got nil")
	}

	// 001 stays committed, 002 is not recorded.
	version, err := db.SchemaVersion(ctx)
	if err != nil {
		t.Fatalf("SchemaVersion() error = %v", err)
	}
	if version != "001" {
		t.Errorf("SchemaVersion() = %q, want %q", version, "001")
	}
}

func TestMigrate_NoFilesystemRegistered(t *testing.T) {
	withMigrationsFS(t, nil)

	db := openTestDB(t)
	defer db.Close() //nolint:errcheck // Test cleanup

	if err := db.Migrate(context.Background()); err != nil {
		t.Errorf("Migrate() with no registered filesystem error = %v", err)
	}
}

func TestParseMigrationFilename(t *testing.T) {
	tests := []struct {
		filename    string
		wantVersion string
		wantName    string
		wantOK      bool
	}{
		{"001_monitor_schema.sql", "001", "monitor_schema", true},
		{"010_wider_state.sql", "010", "wider_state", true},
		{"README.md", "", "", false},
		{"no_version.sql", "", "", false},
		{"001.sql", "", "", false},
		{"_orphan.sql", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			version, name, ok := parseMigrationFilename(tt.filename)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if version != tt.wantVersion || name != tt.wantName {
				t.Errorf("parsed = (%q, %q), want (%q, %q)", version, name, tt.wantVersion, tt.wantName)
			}
		})
	}
}
