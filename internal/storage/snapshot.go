package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"family-meal-planner/internal/room"
)

const snapshotTimeLayout = "20060102T150405Z"

// SnapshotStore keeps versioned JSON exports of rooms on disk.
type SnapshotStore struct {
	basePath string
}

// NewSnapshotStore creates a new SnapshotStore and ensures the base directory exists.
func NewSnapshotStore(basePath string) (*SnapshotStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory %s: %w", basePath, err)
	}
	return &SnapshotStore{basePath: basePath}, nil
}

func version(t time.Time) string {
	return t.UTC().Format(snapshotTimeLayout)
}

func (s *SnapshotStore) versionedPath(roomID, v string) string {
	return filepath.Join(s.basePath, fmt.Sprintf("%s_%s.json", roomID, v))
}

// Save writes r as the version stamped with its UpdatedAt and returns the file path.
func (s *SnapshotStore) Save(r *room.Room) (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal room: %w", err)
	}

	path := s.versionedPath(r.ID, version(r.UpdatedAt))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write snapshot file: %w", err)
	}
	return path, nil
}

// Versions lists the stored versions of a room, oldest first.
func (s *SnapshotStore) Versions(roomID string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(s.basePath, roomID+"_*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to glob snapshot files: %w", err)
	}
	versions := make([]string, 0, len(matches))
	prefix := roomID + "_"
	for _, m := range matches {
		base := strings.TrimSuffix(filepath.Base(m), ".json")
		versions = append(versions, strings.TrimPrefix(base, prefix))
	}
	sort.Strings(versions)
	return versions, nil
}

// Latest loads the newest snapshot of a room.
func (s *SnapshotStore) Latest(roomID string) (*room.Room, error) {
	versions, err := s.Versions(roomID)
	if err != nil {
		return nil, err
	}
	if len(versions) == 0 {
		return nil, fmt.Errorf("%w: no snapshot of room %s", room.ErrNotFound, roomID)
	}
	return ReadSnapshot(s.versionedPath(roomID, versions[len(versions)-1]))
}

// RemoveStaleVersions deletes all but the newest keep snapshots of a room.
func (s *SnapshotStore) RemoveStaleVersions(roomID string, keep int) (int, error) {
	versions, err := s.Versions(roomID)
	if err != nil {
		return 0, err
	}
	if keep < 0 {
		keep = 0
	}
	removed := 0
	for i := 0; i < len(versions)-keep; i++ {
		path := s.versionedPath(roomID, versions[i])
		if err := os.Remove(path); err != nil {
			return removed, fmt.Errorf("failed to remove stale file %s: %w", path, err)
		}
		removed++
	}
	return removed, nil
}

// ReadSnapshot decodes a room export from any path.
func ReadSnapshot(path string) (*room.Room, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: snapshot %s", room.ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	var r room.Room
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal room: %v", room.ErrValidation, err)
	}
	if err := room.CheckCredentials(r.Name, r.Password); err != nil {
		return nil, err
	}
	r.Normalize()
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}
