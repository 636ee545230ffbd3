package app

import (
	"context"
	"fmt"

	"family-meal-planner/internal/room"
	"family-meal-planner/internal/storage"
)

// ExportRoom writes the current state of a room as its only snapshot and
// returns the file path.
func (a *App) ExportRoom(ctx context.Context, roomID string, snapshots *storage.SnapshotStore) (string, error) {
	r, err := a.store.Get(ctx, roomID)
	if err != nil {
		return "", err
	}
	path, err := snapshots.Save(r)
	if err != nil {
		return "", fmt.Errorf("%w: %v", room.ErrUnavailable, err)
	}
	removed, err := snapshots.RemoveStaleVersions(roomID, 1)
	if err != nil {
		a.logger.Warn("failed to prune snapshots", "room_id", roomID, "error", err)
	}
	a.logger.Info("room exported", "room_id", roomID, "path", path, "pruned", removed)
	return path, nil
}

// ImportRoom recreates a room from a snapshot file, keeping its id.
func (a *App) ImportRoom(ctx context.Context, path string) (*room.Room, error) {
	r, err := storage.ReadSnapshot(path)
	if err != nil {
		return nil, err
	}
	return a.restore(ctx, r, path)
}

// ImportLatest recreates a room from its newest snapshot in snapshots.
func (a *App) ImportLatest(ctx context.Context, roomID string, snapshots *storage.SnapshotStore) (*room.Room, error) {
	r, err := snapshots.Latest(roomID)
	if err != nil {
		return nil, err
	}
	return a.restore(ctx, r, "latest")
}

func (a *App) restore(ctx context.Context, r *room.Room, source string) (*room.Room, error) {
	if r.ID == "" {
		r.ID = a.newID()
	}
	if err := a.store.Create(ctx, r); err != nil {
		return nil, err
	}
	a.logger.Info("room imported", "room_id", r.ID, "source", source)
	return r, nil
}
