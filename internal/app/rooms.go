package app

import (
	"context"
	"errors"
	"fmt"

	"family-meal-planner/internal/room"
)

// CreateRoomInput is the body of a room creation.
type CreateRoomInput struct {
	Name         string
	Password     string
	WithDefaults bool
	Seed         room.Seed
}

// CreateRoom persists a new household. With WithDefaults and no seed of
// its own the room starts with the demo household.
func (a *App) CreateRoom(ctx context.Context, in CreateRoomInput) (*room.Room, error) {
	seed := in.Seed
	if in.WithDefaults && seed.Empty() {
		seed = room.Starter()
	}
	a.assignSeedIDs(&seed)

	r, err := room.New(in.Name, in.Password, seed)
	if err != nil {
		return nil, err
	}
	if err := a.store.Create(ctx, r); err != nil {
		return nil, err
	}
	a.logger.Info("room created", "room_id", r.ID, "users", len(r.Users), "recipes", len(r.Recipes))
	return r, nil
}

func (a *App) assignSeedIDs(seed *room.Seed) {
	for i := range seed.Users {
		if seed.Users[i].ID == "" {
			seed.Users[i].ID = a.newID()
		}
	}
	for i := range seed.Recipes {
		if seed.Recipes[i].ID == "" {
			seed.Recipes[i].ID = a.newID()
		}
	}
	for i := range seed.ShoppingList {
		if seed.ShoppingList[i].ID == "" {
			seed.ShoppingList[i].ID = a.newID()
		}
	}
	for i := range seed.WishLists {
		if seed.WishLists[i].ID == "" {
			seed.WishLists[i].ID = a.newID()
		}
	}
}

// EnterRoom finds the room whose name and password both match exactly.
// Either mismatch fails the same way.
func (a *App) EnterRoom(ctx context.Context, name, password string) (*room.Room, error) {
	r, err := a.store.FindByName(ctx, name)
	if errors.Is(err, room.ErrNotFound) {
		return nil, fmt.Errorf("%w: invalid room name or password", room.ErrUnauthorized)
	}
	if err != nil {
		return nil, err
	}
	if r.Password != password {
		return nil, fmt.Errorf("%w: invalid room name or password", room.ErrUnauthorized)
	}
	return r, nil
}

// GetRoom loads a room by id.
func (a *App) GetRoom(ctx context.Context, id string) (*room.Room, error) {
	return a.store.Get(ctx, id)
}

// ApplyUpdate replaces the given top-level fields and returns the full room.
func (a *App) ApplyUpdate(ctx context.Context, id string, p room.Patch) (*room.Room, error) {
	if p.Empty() {
		return a.store.Get(ctx, id)
	}
	return a.store.Patch(ctx, id, p)
}

// UpsertUser replaces the user with the same id in place or appends it.
// Names are not checked for uniqueness here.
func (a *App) UpsertUser(ctx context.Context, roomID string, u room.User) (*room.Room, error) {
	if u.ID == "" {
		u.ID = a.newID()
	}
	if !u.Role.Valid() {
		return nil, validationf("unknown role %q", u.Role)
	}
	r, err := a.store.Get(ctx, roomID)
	if err != nil {
		return nil, err
	}
	users := room.UpsertUser(r.Users, u)
	return a.store.Patch(ctx, roomID, room.Patch{Users: &users})
}

// RemoveUser drops a user; removing an absent user succeeds.
func (a *App) RemoveUser(ctx context.Context, roomID, userID string) (*room.Room, error) {
	r, err := a.store.Get(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if _, ok := r.FindUser(userID); !ok {
		return r, nil
	}
	users := room.RemoveUser(r.Users, userID)
	return a.store.Patch(ctx, roomID, room.Patch{Users: &users})
}
