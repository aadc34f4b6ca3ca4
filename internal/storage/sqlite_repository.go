package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sandeepkv93/todolist/internal/model"
)

type SQLiteStore struct {
	db       *sql.DB
	upgraded bool
}

var _ Store = (*SQLiteStore)(nil)

// newSQLiteStore wraps an already migrated database.
func newSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Open creates or opens the database file at path and upgrades its schema
// to version. Opening with a version lower than the stored one fails with
// ErrVersionTooLow.
func Open(ctx context.Context, path string, version int) (*SQLiteStore, error) {
	if version <= 0 {
		return nil, fmt.Errorf("storage: invalid schema version %d", version)
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect sqlite: %w", err)
	}
	// One connection: SQLite has a single writer and pragmas are per connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	upgraded, err := upgrade(ctx, db, version)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db, upgraded: upgraded}, nil
}

func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("execute %q: %w", pragma, err)
		}
	}
	return nil
}

// Upgraded reports whether Open had to define the schema.
func (s *SQLiteStore) Upgraded() bool {
	return s.upgraded
}

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	db := s.db
	s.db = nil
	return db.Close()
}

func (s *SQLiteStore) Scan(ctx context.Context) ([]model.Item, error) {
	if s.db == nil {
		return nil, ErrClosed
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id, note, ticked FROM toDoList ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Item, 0)
	for rows.Next() {
		item, scanErr := scanItem(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	if s.db == nil {
		return 0, ErrClosed
	}
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM toDoList`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *SQLiteStore) Get(ctx context.Context, id int64) (model.Item, error) {
	if s.db == nil {
		return model.Item{}, ErrClosed
	}
	return getItem(ctx, s.db, id)
}

func (s *SQLiteStore) Insert(ctx context.Context, in model.Payload) (int64, error) {
	var id int64
	err := s.ReadWrite(ctx, func(tx Tx) error {
		var insertErr error
		id, insertErr = tx.Insert(ctx, in)
		return insertErr
	})
	return id, err
}

func (s *SQLiteStore) Replace(ctx context.Context, in model.Item) error {
	return s.ReadWrite(ctx, func(tx Tx) error {
		return tx.Put(ctx, in)
	})
}

func (s *SQLiteStore) Remove(ctx context.Context, id int64) error {
	return s.ReadWrite(ctx, func(tx Tx) error {
		return tx.Delete(ctx, id)
	})
}

func (s *SQLiteStore) RemoveAll(ctx context.Context) error {
	return s.ReadWrite(ctx, func(tx Tx) error {
		return tx.Clear(ctx)
	})
}

func (s *SQLiteStore) ReadWrite(ctx context.Context, fn func(Tx) error) error {
	if s.db == nil {
		return ErrClosed
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&sqliteTx{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

type sqliteTx struct {
	tx *sql.Tx
}

func (t *sqliteTx) Get(ctx context.Context, id int64) (model.Item, error) {
	return getItem(ctx, t.tx, id)
}

func (t *sqliteTx) Put(ctx context.Context, in model.Item) error {
	if err := in.Validate(); err != nil {
		return err
	}
	res, err := t.tx.ExecContext(ctx, `UPDATE toDoList SET note = ?, ticked = ? WHERE id = ?`,
		in.Note, boolInt(in.Ticked), in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (t *sqliteTx) Insert(ctx context.Context, in model.Payload) (int64, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}
	res, err := t.tx.ExecContext(ctx, `INSERT INTO toDoList (note, ticked) VALUES (?, ?)`,
		in.Note, boolInt(in.Ticked),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (t *sqliteTx) Delete(ctx context.Context, id int64) error {
	res, err := t.tx.ExecContext(ctx, `DELETE FROM toDoList WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (t *sqliteTx) Clear(ctx context.Context) error {
	// DELETE keeps the AUTOINCREMENT sequence, so cleared ids are never reused.
	_, err := t.tx.ExecContext(ctx, `DELETE FROM toDoList`)
	return err
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getItem(ctx context.Context, q queryRower, id int64) (model.Item, error) {
	row := q.QueryRowContext(ctx, `SELECT id, note, ticked FROM toDoList WHERE id = ?`, id)
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Item{}, ErrNotFound
		}
		return model.Item{}, err
	}
	return item, nil
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (model.Item, error) {
	var out model.Item
	var ticked int
	if err := s.Scan(&out.ID, &out.Note, &ticked); err != nil {
		return model.Item{}, err
	}
	out.Ticked = ticked == 1
	return out, nil
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
