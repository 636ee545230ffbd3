// Package storage defines how rooms are persisted.
package storage

import (
	"context"

	"family-meal-planner/internal/room"
)

// Store persists one document per room.
//
// Implementations report room.ErrNotFound for unknown rooms,
// room.ErrConflict for a taken room name and room.ErrUnavailable when the
// backend itself fails.
type Store interface {
	// Create persists a new room. The name must not be in use.
	Create(ctx context.Context, r *room.Room) error

	// Get loads a room by id.
	Get(ctx context.Context, id string) (*room.Room, error)

	// FindByName loads the room with exactly this name.
	FindByName(ctx context.Context, name string) (*room.Room, error)

	// Patch replaces only the fields named by p and returns the room as
	// stored afterwards. Fields outside p keep their current stored value.
	Patch(ctx context.Context, id string, p room.Patch) (*room.Room, error)

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
