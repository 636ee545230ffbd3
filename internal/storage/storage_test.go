package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"family-meal-planner/internal/room"
)

func TestSnapshotStore(t *testing.T) {
	tempDir := t.TempDir()

	store, err := NewSnapshotStore(tempDir)
	if err != nil {
		t.Fatalf("Failed to create SnapshotStore: %v", err)
	}

	r, err := room.New("Smiths", "pw1", room.Starter())
	if err != nil {
		t.Fatalf("Failed to build room: %v", err)
	}
	r.UpdatedAt = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	first := version(r.UpdatedAt)

	t.Run("NoVersionsYet", func(t *testing.T) {
		if versions, err := store.Versions(r.ID); err != nil || len(versions) != 0 {
			t.Errorf("Expected no versions, got %v, %v", versions, err)
		}
	})

	t.Run("Save", func(t *testing.T) {
		path, err := store.Save(r)
		if err != nil {
			t.Fatalf("Failed to save snapshot: %v", err)
		}
		want := filepath.Join(tempDir, r.ID+"_20240501T100000Z.json")
		if path != want {
			t.Errorf("Expected path %s, got %s", want, path)
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			t.Errorf("Expected file '%s' to be created, but it wasn't", path)
		}
	})

	t.Run("Read", func(t *testing.T) {
		loaded, err := ReadSnapshot(store.versionedPath(r.ID, first))
		if err != nil {
			t.Fatalf("Failed to load snapshot: %v", err)
		}
		if loaded.Name != "Smiths" || len(loaded.Recipes) != len(r.Recipes) {
			t.Errorf("Loaded room mismatch: %+v", loaded)
		}
	})

	t.Run("Latest", func(t *testing.T) {
		r.UpdatedAt = r.UpdatedAt.Add(time.Hour)
		r.Name = "Smiths Renamed"
		if _, err := store.Save(r); err != nil {
			t.Fatalf("Failed to save snapshot: %v", err)
		}
		latest, err := store.Latest(r.ID)
		if err != nil {
			t.Fatalf("Failed to load latest: %v", err)
		}
		if latest.Name != "Smiths Renamed" {
			t.Errorf("Expected the newest snapshot, got %q", latest.Name)
		}
	})

	t.Run("RemoveStaleVersions", func(t *testing.T) {
		removed, err := store.RemoveStaleVersions(r.ID, 1)
		if err != nil {
			t.Fatalf("Failed to remove stale versions: %v", err)
		}
		if removed != 1 {
			t.Errorf("Expected 1 removed, got %d", removed)
		}
		versions, _ := store.Versions(r.ID)
		if len(versions) != 1 || versions[0] == first {
			t.Errorf("Expected one version left, got %v", versions)
		}
	})

	t.Run("LatestOfUnknownRoom", func(t *testing.T) {
		if _, err := store.Latest("nope"); !errors.Is(err, room.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("ReadSnapshotRejectsGarbage", func(t *testing.T) {
		path := filepath.Join(tempDir, "garbage.json")
		if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := ReadSnapshot(path); !errors.Is(err, room.ErrValidation) {
			t.Errorf("Expected ErrValidation, got %v", err)
		}
	})

	t.Run("ReadSnapshotRequiresCredentials", func(t *testing.T) {
		for _, doc := range []string{`{"id":"r9","name":"","password":"pw"}`, `{"id":"r9","name":"Smiths","password":" "}`} {
			path := filepath.Join(tempDir, "blank.json")
			if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := ReadSnapshot(path); !errors.Is(err, room.ErrValidation) {
				t.Errorf("Expected ErrValidation for %s, got %v", doc, err)
			}
		}
	})
}
