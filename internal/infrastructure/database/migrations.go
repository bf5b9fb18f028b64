package database

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"
)

// MigrationsFS should be set by the migrations package to the filesystem
// holding the schema files. Keeping it an fs.FS (rather than embed.FS
// directly) lets tests substitute an in-memory filesystem.
//
// Usage:
//
//	//go:embed *.sql
//	var migrationsFS embed.FS
//
//	func init() {
//	    database.MigrationsFS = migrationsFS
//	}
var MigrationsFS fs.FS

// Migration represents a single schema migration.
//
// Migration files are forward-only and named NNN_description.sql; the
// numeric prefix is the version and orders application. The recording
// schema never needs rollbacks: a failed migration is fixed by shipping
// the next version.
type Migration struct {
	// Version is the numeric filename prefix (e.g. "001").
	Version string

	// Name is the human-readable part of the filename.
	Name string

	// SQL is the statement batch to apply.
	SQL string
}

// MigrationRecord represents a row in the schema_migrations table.
type MigrationRecord struct {
	Version   string
	AppliedAt time.Time
}

// Migrate applies all pending migrations to the database.
// Migrations are applied in version order (oldest first).
//
// Each migration runs in its own transaction: if migration N fails it is
// rolled back, earlier migrations stay committed, and later ones are not
// attempted. Re-running Migrate() after fixing the issue continues from N.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//
// Returns:
//   - error: If any migration fails (that migration is rolled back)
func (db *DB) Migrate(ctx context.Context) error {
	if err := db.createMigrationsTable(ctx); err != nil {
		return fmt.Errorf("creating migrations table: %w", err)
	}

	migrations, err := loadMigrations()
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}
	if len(migrations) == 0 {
		return nil
	}

	applied, err := db.appliedVersions(ctx)
	if err != nil {
		return fmt.Errorf("getting applied migrations: %w", err)
	}

	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}
		if err := db.applyMigration(ctx, m); err != nil {
			return fmt.Errorf("applying migration %s (%s): %w", m.Version, m.Name, err)
		}
	}

	return nil
}

// SchemaVersion returns the most recently applied migration version, or
// the empty string when no migration has run. Used by the startup log and
// health reporting.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
func (db *DB) SchemaVersion(ctx context.Context) (string, error) {
	if err := db.createMigrationsTable(ctx); err != nil {
		return "", fmt.Errorf("creating migrations table: %w", err)
	}

	var version string
	err := db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(version), '') FROM schema_migrations",
	).Scan(&version)
	if err != nil {
		return "", fmt.Errorf("querying schema version: %w", err)
	}
	return version, nil
}

// createMigrationsTable creates the schema_migrations table if it doesn't exist.
func (db *DB) createMigrationsTable(ctx context.Context) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			applied_at TEXT NOT NULL
		)
	`)
	return err
}

// appliedVersions returns the set of migration versions already applied.
func (db *DB) appliedVersions(ctx context.Context) (map[string]bool, error) {
	rows, err := db.DB.QueryContext(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("querying migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("scanning migration row: %w", err)
		}
		applied[version] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating migrations: %w", err)
	}
	return applied, nil
}

// applyMigration applies a single migration within a transaction.
func (db *DB) applyMigration(ctx context.Context, m Migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // Rollback is no-op after commit

	if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
		return fmt.Errorf("executing SQL: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)",
		m.Version,
		time.Now().UTC().Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("recording migration: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing migration: %w", err)
	}
	return nil
}

// loadMigrations loads all migration files from MigrationsFS, sorted by
// version (oldest first). Returns nil when no filesystem is registered.
func loadMigrations() ([]Migration, error) {
	if MigrationsFS == nil {
		return nil, nil
	}

	entries, err := fs.ReadDir(MigrationsFS, ".")
	if err != nil {
		return nil, fmt.Errorf("reading migrations directory: %w", err)
	}

	var migrations []Migration
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		version, name, ok := parseMigrationFilename(entry.Name())
		if !ok {
			continue
		}

		sql, err := fs.ReadFile(MigrationsFS, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", entry.Name(), err)
		}

		migrations = append(migrations, Migration{
			Version: version,
			Name:    name,
			SQL:     string(sql),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	return migrations, nil
}

// parseMigrationFilename splits "001_monitor_schema.sql" into its version
// ("001") and name ("monitor_schema"). Files that don't match the pattern
// are skipped.
func parseMigrationFilename(filename string) (version, name string, ok bool) {
	if !strings.HasSuffix(filename, ".sql") {
		return "", "", false
	}
	base := strings.TrimSuffix(filename, ".sql")

	version, name, found := strings.Cut(base, "_")
	if !found || version == "" || name == "" {
		return "", "", false
	}
	for _, r := range version {
		if r < '0' || r > '9' {
			return "", "", false
		}
	}
	return version, name, true
}
