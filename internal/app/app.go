// Package app is the command layer: every household operation resolves
// the acting user against the stored room, checks the capability, and
// applies a read-modify-write patch through the store.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"family-meal-planner/internal/chef"
	"family-meal-planner/internal/llm"
	"family-meal-planner/internal/recipe"
	"family-meal-planner/internal/room"
	"family-meal-planner/internal/session"
	"family-meal-planner/internal/storage"
)

// Notifier announces finalized menus outside the app.
type Notifier interface {
	AnnounceMenu(ctx context.Context, r *room.Room, date string) error
}

// RecipeImporter turns a web page into a recipe.
type RecipeImporter interface {
	ClipURL(ctx context.Context, url string) (recipe.Recipe, error)
}

type noopNotifier struct{}

func (noopNotifier) AnnounceMenu(context.Context, *room.Room, string) error { return nil }

// App holds the application's dependencies.
type App struct {
	store    storage.Store
	sessions *session.Manager
	gateway  chef.Gateway
	importer RecipeImporter
	notifier Notifier
	logger   *slog.Logger
	newID    func() string
}

// Option configures an App.
type Option func(*App)

// WithGateway sets the AI suggestion gateway.
func WithGateway(g chef.Gateway) Option {
	return func(a *App) { a.gateway = g }
}

// WithImporter enables recipe import from URLs.
func WithImporter(i RecipeImporter) Option {
	return func(a *App) { a.importer = i }
}

// WithNotifier sets where finalized menus are announced.
func WithNotifier(n Notifier) Option {
	return func(a *App) { a.notifier = n }
}

// WithLogger replaces the default logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) { a.logger = l }
}

// NewApp creates and initializes a new App instance. Without options the
// gateway always answers with fallbacks and nothing is announced.
func NewApp(store storage.Store, sessions *session.Manager, opts ...Option) *App {
	a := &App{
		store:    store,
		sessions: sessions,
		notifier: noopNotifier{},
		logger:   slog.Default(),
		newID:    func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.gateway == nil {
		a.gateway = chef.New(llm.Disabled(), chef.WithLogger(a.logger))
	}
	return a
}

// Store exposes the backing store for health checks.
func (a *App) Store() storage.Store {
	return a.store
}

// resolve loads the actor's room and the actor's current user record.
// Tokens only carry ids; a user removed since login is rejected here.
func (a *App) resolve(ctx context.Context, actor session.Actor) (*room.Room, room.User, error) {
	r, err := a.store.Get(ctx, actor.RoomID)
	if err != nil {
		return nil, room.User{}, err
	}
	u, ok := r.FindUser(actor.UserID)
	if !ok {
		return nil, room.User{}, fmt.Errorf("%w: user %s is not a member of room %s", room.ErrUnauthorized, actor.UserID, actor.RoomID)
	}
	return r, u, nil
}

// requireRole is the capability check wrapped around privileged commands.
func requireRole(u room.User, roles ...room.Role) error {
	for _, r := range roles {
		if u.Role == r {
			return nil
		}
	}
	return fmt.Errorf("%w: %s may not do this", room.ErrForbidden, u.Role)
}

// mutation builds a patch from the current room state and the acting user.
type mutation func(r *room.Room, u room.User) (room.Patch, error)

// mutate resolves the actor, checks roles (none means anyone), and writes
// the patch that fn derives. Only the fields fn sets are written.
func (a *App) mutate(ctx context.Context, actor session.Actor, roles []room.Role, fn mutation) (*room.Room, error) {
	r, u, err := a.resolve(ctx, actor)
	if err != nil {
		return nil, err
	}
	if len(roles) > 0 {
		if err := requireRole(u, roles...); err != nil {
			return nil, err
		}
	}
	p, err := fn(r, u)
	if err != nil {
		return nil, err
	}
	if p.Empty() {
		return r, nil
	}
	return a.store.Patch(ctx, r.ID, p)
}

var homemakerOnly = []room.Role{room.RoleHomemaker}

func validationf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{room.ErrValidation}, args...)...)
}

func notFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{room.ErrNotFound}, args...)...)
}
