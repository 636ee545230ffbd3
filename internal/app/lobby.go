package app

import (
	"context"
	"fmt"
	"strings"

	"family-meal-planner/internal/room"
	"family-meal-planner/internal/session"
)

// MinPreferences is how many dishes per meal a saved preference list needs.
const MinPreferences = 6

// RegisterInput describes a new household member.
type RegisterInput struct {
	Name     string
	Role     string
	Password string
}

// Session is a signed-in user of a room.
type Session struct {
	Token string    `json:"token"`
	User  room.User `json:"user"`
}

// RegisterUser adds a member whose name is not yet used in the room,
// ignoring case.
func (a *App) RegisterUser(ctx context.Context, roomID string, in RegisterInput) (room.User, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Password == "" {
		return room.User{}, validationf("name and password are required")
	}
	role, err := room.ParseRole(in.Role)
	if err != nil {
		return room.User{}, err
	}

	r, err := a.store.Get(ctx, roomID)
	if err != nil {
		return room.User{}, err
	}
	if room.NameTaken(r.Users, name) {
		return room.User{}, fmt.Errorf("%w: a user named %q already exists", room.ErrConflict, name)
	}

	u := room.User{ID: a.newID(), Name: name, Role: role, Password: in.Password}
	users := append(append([]room.User{}, r.Users...), u)
	if _, err := a.store.Patch(ctx, roomID, room.Patch{Users: &users}); err != nil {
		return room.User{}, err
	}
	a.logger.Info("user registered", "room_id", roomID, "user_id", u.ID, "role", u.Role)
	return u, nil
}

// Login checks a user's password verbatim and issues a session token.
func (a *App) Login(ctx context.Context, roomID, userID, password string) (Session, error) {
	r, err := a.store.Get(ctx, roomID)
	if err != nil {
		return Session{}, err
	}
	u, ok := r.FindUser(userID)
	if !ok || u.Password != password {
		return Session{}, fmt.Errorf("%w: invalid user or password", room.ErrUnauthorized)
	}
	token, err := a.sessions.Issue(session.Actor{RoomID: roomID, UserID: userID})
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, User: u}, nil
}

// Authenticate turns a bearer token into an actor of an existing user.
func (a *App) Authenticate(ctx context.Context, token string) (session.Actor, room.User, error) {
	actor, err := a.sessions.Validate(token)
	if err != nil {
		return session.Actor{}, room.User{}, fmt.Errorf("%w: %v", room.ErrUnauthorized, err)
	}
	_, u, err := a.resolve(ctx, actor)
	if err != nil {
		return session.Actor{}, room.User{}, err
	}
	return actor, u, nil
}

// SavePreferences replaces the actor's own preferences.
func (a *App) SavePreferences(ctx context.Context, actor session.Actor, prefs room.Preferences) (*room.Room, error) {
	clean := room.Preferences{
		Breakfast: nonBlank(prefs.Breakfast),
		Lunch:     nonBlank(prefs.Lunch),
		Dinner:    nonBlank(prefs.Dinner),
	}
	for _, m := range []struct {
		meal   string
		dishes []string
	}{{"breakfast", clean.Breakfast}, {"lunch", clean.Lunch}, {"dinner", clean.Dinner}} {
		if len(m.dishes) < MinPreferences {
			return nil, validationf("at least %d %s preferences are required, got %d", MinPreferences, m.meal, len(m.dishes))
		}
	}

	return a.mutate(ctx, actor, nil, func(r *room.Room, u room.User) (room.Patch, error) {
		u.Preferences = &clean
		users := room.UpsertUser(r.Users, u)
		return room.Patch{Users: &users}, nil
	})
}

func nonBlank(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
