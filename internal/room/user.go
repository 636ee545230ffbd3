package room

import (
	"fmt"
	"strings"
)

// Role decides what a user may do in the room.
type Role string

const (
	RoleHomemaker Role = "homemaker"
	RoleMember    Role = "member"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleHomemaker, RoleMember:
		return true
	default:
		return false
	}
}

// ParseRole converts a user supplied string into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("%w: unknown role %q", ErrValidation, s)
	}
	return r, nil
}

// Preferences are the dishes a user enjoys, per meal. They feed weekly plan generation.
type Preferences struct {
	Breakfast []string `json:"breakfast"`
	Lunch     []string `json:"lunch"`
	Dinner    []string `json:"dinner"`
}

// User is a member of the household.
type User struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Role        Role         `json:"role"`
	Password    string       `json:"password,omitempty"`
	Preferences *Preferences `json:"preferences,omitempty"`
}

// UpsertUser replaces the user with the same id in place, or appends u.
func UpsertUser(users []User, u User) []User {
	out := make([]User, 0, len(users)+1)
	replaced := false
	for _, existing := range users {
		if existing.ID == u.ID {
			out = append(out, u)
			replaced = true
			continue
		}
		out = append(out, existing)
	}
	if !replaced {
		out = append(out, u)
	}
	return out
}

// RemoveUser drops the user with the given id. Unknown ids are ignored.
func RemoveUser(users []User, id string) []User {
	out := make([]User, 0, len(users))
	for _, u := range users {
		if u.ID != id {
			out = append(out, u)
		}
	}
	return out
}

// NameTaken reports whether a user with this name exists, ignoring case
// and surrounding whitespace.
func NameTaken(users []User, name string) bool {
	name = strings.TrimSpace(name)
	for _, u := range users {
		if strings.EqualFold(strings.TrimSpace(u.Name), name) {
			return true
		}
	}
	return false
}
