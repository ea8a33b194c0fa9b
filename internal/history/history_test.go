package history

import (
	"path/filepath"
	"testing"
	"time"
)

func TestStore(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewStore(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	t.Run("Append and Recent", func(t *testing.T) {
		base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
		records := []Record{
			{ID: "1", Query: "first", Intent: "search", Success: true, AskedAt: base},
			{ID: "2", Query: "second", Intent: "recommend", Success: true, AskedAt: base.Add(time.Minute)},
			{ID: "3", Query: "third", Intent: "search", Success: false, AskedAt: base.Add(2 * time.Minute)},
		}
		for _, rec := range records {
			if err := store.Append(rec); err != nil {
				t.Fatalf("Append failed: %v", err)
			}
		}

		got, err := store.Recent(10)
		if err != nil {
			t.Fatalf("Recent failed: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("Expected 3 records, got %d", len(got))
		}
		if got[0].Query != "third" || got[2].Query != "first" {
			t.Errorf("Expected newest first, got %v", got)
		}
	})

	t.Run("Recent respects the limit", func(t *testing.T) {
		got, err := store.Recent(2)
		if err != nil {
			t.Fatalf("Recent failed: %v", err)
		}
		if len(got) != 2 {
			t.Errorf("Expected 2 records, got %d", len(got))
		}
	})

	t.Run("Clear", func(t *testing.T) {
		if err := store.Clear(); err != nil {
			t.Fatalf("Clear failed: %v", err)
		}
		got, _ := store.Recent(10)
		if len(got) != 0 {
			t.Errorf("Expected empty history, got %d records", len(got))
		}
	})

	t.Run("Append fills AskedAt", func(t *testing.T) {
		if err := store.Append(Record{ID: "4", Query: "untimed", Intent: "search"}); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
		got, _ := store.Recent(1)
		if len(got) != 1 || got[0].AskedAt.IsZero() {
			t.Errorf("Expected AskedAt to be set, got %v", got)
		}
	})
}

func TestStorePersistence(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "persist.db")

	store1, err := NewStore(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store1: %v", err)
	}
	store1.Append(Record{ID: "p1", Query: "survives reopen", Intent: "search", Success: true})
	store1.Close()

	store2, err := NewStore(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store2: %v", err)
	}
	defer store2.Close()

	got, err := store2.Recent(10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(got) != 1 || got[0].Query != "survives reopen" {
		t.Errorf("Expected persisted record, got %v", got)
	}
}
