package cachedb

import (
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "covers.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestReadMissingKey(t *testing.T) {
	db := openTestDB(t)
	_, found, err := db.Read(t.Context(), "absent")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if found {
		t.Error("absent key reported as found")
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := t.Context()

	if err := db.Write(ctx, "k", `{"value":null}`); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	payload, found, err := db.Read(ctx, "k")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if !found || payload != `{"value":null}` {
		t.Errorf("got %q found=%v", payload, found)
	}
}

func TestWriteOverwrites(t *testing.T) {
	db := openTestDB(t)
	ctx := t.Context()

	db.Write(ctx, "k", "old")
	db.Write(ctx, "k", "new")

	payload, _, err := db.Read(ctx, "k")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if payload != "new" {
		t.Errorf("payload = %q, want overwrite", payload)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	ctx := t.Context()

	db.Write(ctx, "k", "v")
	if err := db.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := db.Delete(ctx, "k"); err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}

	if _, found, _ := db.Read(ctx, "k"); found {
		t.Error("deleted key still present")
	}
}

func TestListAndClear(t *testing.T) {
	db := openTestDB(t)
	ctx := t.Context()

	db.Write(ctx, "a", "1")
	db.Write(ctx, "b", "2")

	rows, err := db.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("List returned %d rows, want 2", len(rows))
	}

	count, err := db.Count(ctx)
	if err != nil || count != 2 {
		t.Fatalf("Count = %d (%v), want 2", count, err)
	}

	if err := db.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if count, _ := db.Count(ctx); count != 0 {
		t.Errorf("Count after Clear = %d", count)
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}
