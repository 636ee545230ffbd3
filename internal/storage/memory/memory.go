// Package memory provides an in-process storage.Store for tests and
// single-instance deployments without a database.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"family-meal-planner/internal/room"
	"family-meal-planner/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store keeps rooms in a map guarded by a mutex. Rooms are cloned on the
// way in and out so callers never share state with the store.
type Store struct {
	mu     sync.RWMutex
	rooms  map[string]*room.Room
	byName map[string]string
	now    func() time.Time
}

// New returns an empty store.
func New() *Store {
	return &Store{
		rooms:  make(map[string]*room.Room),
		byName: make(map[string]string),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) Create(_ context.Context, r *room.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byName[r.Name]; taken {
		return fmt.Errorf("%w: room name %q is taken", room.ErrConflict, r.Name)
	}
	if _, exists := s.rooms[r.ID]; exists {
		return fmt.Errorf("%w: room id %s exists", room.ErrConflict, r.ID)
	}
	s.rooms[r.ID] = r.Clone()
	s.byName[r.Name] = r.ID
	return nil
}

func (s *Store) Get(_ context.Context, id string) (*room.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.rooms[id]
	if !ok {
		return nil, fmt.Errorf("%w: room %s", room.ErrNotFound, id)
	}
	return r.Clone(), nil
}

func (s *Store) FindByName(_ context.Context, name string) (*room.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: room %s", room.ErrNotFound, name)
	}
	return s.rooms[id].Clone(), nil
}

func (s *Store) Patch(_ context.Context, id string, p room.Patch) (*room.Room, error) {
	p = p.Normalized()
	if err := p.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.rooms[id]
	if !ok {
		return nil, fmt.Errorf("%w: room %s", room.ErrNotFound, id)
	}

	next := current.Clone()
	p.ApplyTo(next, s.now())
	if next.Name != current.Name {
		if _, taken := s.byName[next.Name]; taken {
			return nil, fmt.Errorf("%w: room name %q is taken", room.ErrConflict, next.Name)
		}
		delete(s.byName, current.Name)
		s.byName[next.Name] = id
	}
	// Clone again so the caller's patch slices are not retained.
	s.rooms[id] = next.Clone()
	return next, nil
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close() error { return nil }
