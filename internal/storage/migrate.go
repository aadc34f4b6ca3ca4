package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func migrateUp(db *sql.DB) error {
	return applyMigrations(context.Background(), db, ".up.sql")
}

func migrateDown(db *sql.DB) error {
	return applyMigrations(context.Background(), db, ".down.sql")
}

func applyMigrations(ctx context.Context, db execer, suffix string) error {
	entries, err := fs.Glob(migrationFiles, "migrations/*"+suffix)
	if err != nil {
		return fmt.Errorf("glob migrations: %w", err)
	}
	sort.Strings(entries)
	if suffix == ".down.sql" {
		sort.Sort(sort.Reverse(sort.StringSlice(entries)))
	}
	for _, name := range entries {
		sqlBytes, readErr := migrationFiles.ReadFile(name)
		if readErr != nil {
			return fmt.Errorf("read migration %s: %w", name, readErr)
		}
		if _, execErr := db.ExecContext(ctx, string(sqlBytes)); execErr != nil {
			return fmt.Errorf("apply migration %s: %w", name, execErr)
		}
	}
	return nil
}

func schemaVersion(ctx context.Context, db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("get user_version: %w", err)
	}
	return version, nil
}

// upgrade brings the file to target. It reports whether the schema had to
// be (re)defined, which only happens on first open or a version increase.
func upgrade(ctx context.Context, db *sql.DB, target int) (bool, error) {
	current, err := schemaVersion(ctx, db)
	if err != nil {
		return false, err
	}
	if current > target {
		return false, fmt.Errorf("%w: stored %d, requested %d", ErrVersionTooLow, current, target)
	}
	if current == target {
		return false, nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin upgrade: %w", err)
	}
	defer tx.Rollback()

	if err := applyMigrations(ctx, tx, ".up.sql"); err != nil {
		return false, err
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", target)); err != nil {
		return false, fmt.Errorf("set user_version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit upgrade: %w", err)
	}
	return true, nil
}
