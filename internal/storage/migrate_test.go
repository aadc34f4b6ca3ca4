package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/sandeepkv93/todolist/internal/model"
)

func TestMigrateRoundTripCompatibility(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate-roundtrip.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := migrateUp(db); err != nil {
		t.Fatalf("first migrate up failed: %v", err)
	}

	if err := migrateDown(db); err != nil {
		t.Fatalf("migrate down failed: %v", err)
	}

	if err := migrateUp(db); err != nil {
		t.Fatalf("second migrate up failed: %v", err)
	}

	store, err := newSQLiteStore(db)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	id, err := store.Insert(context.Background(), model.Payload{Note: "Roundtrip item"})
	if err != nil {
		t.Fatalf("insert after roundtrip failed: %v", err)
	}

	got, err := store.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get after roundtrip failed: %v", err)
	}
	if got.Note != "Roundtrip item" {
		t.Fatalf("unexpected note after roundtrip: %q", got.Note)
	}
}

func TestMigrationDeclaresLookupIndexes(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "indexes.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := migrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	rows, err := db.Query(`SELECT name, "unique" FROM pragma_index_list('toDoList')`)
	if err != nil {
		t.Fatalf("index list: %v", err)
	}
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		var unique int
		if err := rows.Scan(&name, &unique); err != nil {
			t.Fatalf("scan index: %v", err)
		}
		if unique != 0 {
			t.Fatalf("index %s must be non-unique", name)
		}
		found[name] = true
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("rows: %v", err)
	}
	if !found["toDoList_note"] || !found["toDoList_ticked"] {
		t.Fatalf("missing lookup indexes: %v", found)
	}
}
