// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"family-meal-planner/internal/room"
	"family-meal-planner/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore keeps each room in one row with a JSON column per top-level
// field, so a patch only rewrites the columns it names.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// New wraps an open, migrated database.
func New(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Ping checks the database connection.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", room.ErrUnavailable, err)
	}
	return nil
}

const selectRoom = `SELECT id, name, password, users, recipes, inventory, shopping_list, daily_plans, wish_lists, created_at, updated_at FROM rooms`

// Create persists a new room to the database.
func (s *SQLiteStore) Create(ctx context.Context, r *room.Room) error {
	cols, err := encodeRoom(r)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO rooms (id, name, password, users, recipes, inventory, shopping_list, daily_plans, wish_lists, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Name, r.Password,
		cols[room.FieldUsers], cols[room.FieldRecipes], cols[room.FieldInventory],
		cols[room.FieldShoppingList], cols[room.FieldDailyPlans], cols[room.FieldWishLists],
		r.CreatedAt.UnixMilli(), r.UpdatedAt.UnixMilli(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: room %q already exists", room.ErrConflict, r.Name)
		}
		return fmt.Errorf("%w: failed to insert room: %v", room.ErrUnavailable, err)
	}
	return nil
}

// Get retrieves a room by ID.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*room.Room, error) {
	return scanRoom(s.db.QueryRowContext(ctx, selectRoom+` WHERE id = ?`, id), id)
}

// FindByName retrieves the room with exactly this name.
func (s *SQLiteStore) FindByName(ctx context.Context, name string) (*room.Room, error) {
	return scanRoom(s.db.QueryRowContext(ctx, selectRoom+` WHERE name = ?`, name), name)
}

// Patch rewrites the named columns in a single statement and reads the row back.
func (s *SQLiteStore) Patch(ctx context.Context, id string, p room.Patch) (*room.Room, error) {
	p = p.Normalized()
	if err := p.Validate(); err != nil {
		return nil, err
	}

	sets := []string{"updated_at = ?"}
	args := []any{s.now().UnixMilli()}
	for _, f := range p.Fields() {
		v, err := patchValue(p, f)
		if err != nil {
			return nil, err
		}
		sets = append(sets, column(f)+" = ?")
		args = append(args, v)
	}
	args = append(args, id)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to begin transaction: %v", room.ErrUnavailable, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `UPDATE rooms SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: room name is taken", room.ErrConflict)
		}
		return nil, fmt.Errorf("%w: failed to update room: %v", room.ErrUnavailable, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, fmt.Errorf("%w: room %s", room.ErrNotFound, id)
	}

	r, err := scanRoom(tx.QueryRowContext(ctx, selectRoom+` WHERE id = ?`, id), id)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: failed to commit transaction: %v", room.ErrUnavailable, err)
	}
	return r, nil
}

func column(f room.Field) string {
	switch f {
	case room.FieldShoppingList:
		return "shopping_list"
	case room.FieldDailyPlans:
		return "daily_plans"
	case room.FieldWishLists:
		return "wish_lists"
	default:
		return string(f)
	}
}

func patchValue(p room.Patch, f room.Field) (any, error) {
	switch f {
	case room.FieldName:
		return *p.Name, nil
	case room.FieldPassword:
		return *p.Password, nil
	case room.FieldUsers:
		return encode(f, *p.Users)
	case room.FieldRecipes:
		return encode(f, *p.Recipes)
	case room.FieldInventory:
		return encode(f, *p.Inventory)
	case room.FieldShoppingList:
		return encode(f, *p.ShoppingList)
	case room.FieldDailyPlans:
		return encode(f, *p.DailyPlans)
	case room.FieldWishLists:
		return encode(f, *p.WishLists)
	default:
		return nil, fmt.Errorf("%w: unknown field %q", room.ErrValidation, f)
	}
}

func encode(f room.Field, v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s: %w", f, err)
	}
	return string(data), nil
}

func encodeRoom(r *room.Room) (map[room.Field]string, error) {
	values := map[room.Field]any{
		room.FieldUsers:        r.Users,
		room.FieldRecipes:      r.Recipes,
		room.FieldInventory:    r.Inventory,
		room.FieldShoppingList: r.ShoppingList,
		room.FieldDailyPlans:   r.DailyPlans,
		room.FieldWishLists:    r.WishLists,
	}
	cols := make(map[room.Field]string, len(values))
	for f, v := range values {
		s, err := encode(f, v)
		if err != nil {
			return nil, err
		}
		cols[f] = s
	}
	return cols, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoom(row rowScanner, key string) (*room.Room, error) {
	var (
		r                                                  room.Room
		users, recipes, inventory, shopping, plans, wishes string
		createdAt, updatedAt                               int64
	)
	err := row.Scan(&r.ID, &r.Name, &r.Password, &users, &recipes, &inventory, &shopping, &plans, &wishes, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: room %s", room.ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get room: %v", room.ErrUnavailable, err)
	}

	for _, c := range []struct {
		raw string
		dst any
	}{
		{users, &r.Users},
		{recipes, &r.Recipes},
		{inventory, &r.Inventory},
		{shopping, &r.ShoppingList},
		{plans, &r.DailyPlans},
		{wishes, &r.WishLists},
	} {
		if err := json.Unmarshal([]byte(c.raw), c.dst); err != nil {
			return nil, fmt.Errorf("%w: corrupt room document %s: %v", room.ErrUnavailable, r.ID, err)
		}
	}
	r.CreatedAt = time.UnixMilli(createdAt).UTC()
	r.UpdatedAt = time.UnixMilli(updatedAt).UTC()
	r.Normalize()
	return &r, nil
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
	}
	return false
}
