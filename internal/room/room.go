// Package room models the shared document of one household: its users,
// cookbook, pantry, shopping list, daily plans and wish lists.
package room

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"family-meal-planner/internal/planner"
	"family-meal-planner/internal/recipe"
	"family-meal-planner/internal/shopping"
	"family-meal-planner/internal/wishlist"
)

// Room is the aggregate root. Nothing inside it references another room.
type Room struct {
	ID           string                       `json:"id"`
	Name         string                       `json:"name"`
	Password     string                       `json:"password"`
	Users        []User                       `json:"users"`
	Recipes      []recipe.Recipe              `json:"recipes"`
	Inventory    []shopping.Ingredient        `json:"inventory"`
	ShoppingList []shopping.Item              `json:"shoppingList"`
	DailyPlans   map[string]planner.DailyPlan `json:"dailyPlans"`
	WishLists    []wishlist.Item              `json:"wishLists"`
	CreatedAt    time.Time                    `json:"createdAt"`
	UpdatedAt    time.Time                    `json:"updatedAt"`
}

// Seed holds the optional starter collections of a new room.
type Seed struct {
	Users        []User          `json:"users,omitempty"`
	Recipes      []recipe.Recipe `json:"recipes,omitempty"`
	ShoppingList []shopping.Item `json:"shoppingList,omitempty"`
	WishLists    []wishlist.Item `json:"wishLists,omitempty"`
}

// Empty reports whether the seed carries no collections at all.
func (s Seed) Empty() bool {
	return len(s.Users) == 0 && len(s.Recipes) == 0 && len(s.ShoppingList) == 0 && len(s.WishLists) == 0
}

// New builds a room with a fresh id, an empty pantry and no daily plans.
func New(name, password string, seed Seed) (*Room, error) {
	if err := CheckCredentials(name, password); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	r := &Room{
		ID:           uuid.New().String(),
		Name:         name,
		Password:     password,
		Users:        seed.Users,
		Recipes:      seed.Recipes,
		Inventory:    []shopping.Ingredient{},
		ShoppingList: seed.ShoppingList,
		DailyPlans:   map[string]planner.DailyPlan{},
		WishLists:    seed.WishLists,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.Normalize()
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// CheckCredentials rejects a blank room name or password. Both are kept
// verbatim otherwise.
func CheckCredentials(name, password string) error {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(password) == "" {
		return fmt.Errorf("%w: room name and password are required", ErrValidation)
	}
	return nil
}

// Normalize replaces nil collections with empty ones and repairs plan dates.
func (r *Room) Normalize() {
	if r.Users == nil {
		r.Users = []User{}
	}
	if r.Recipes == nil {
		r.Recipes = []recipe.Recipe{}
	}
	if r.Inventory == nil {
		r.Inventory = []shopping.Ingredient{}
	}
	if r.ShoppingList == nil {
		r.ShoppingList = []shopping.Item{}
	}
	if r.WishLists == nil {
		r.WishLists = []wishlist.Item{}
	}
	r.DailyPlans = normalizePlans(r.DailyPlans)
}

// Validate checks the closed enumerations and plan keys of the room.
func (r *Room) Validate() error {
	if err := validateUsers(r.Users); err != nil {
		return err
	}
	if err := validateRecipes(r.Recipes); err != nil {
		return err
	}
	if err := validateWishes(r.WishLists); err != nil {
		return err
	}
	return validatePlans(r.DailyPlans)
}

// Clone returns a deep copy of the room.
func (r *Room) Clone() *Room {
	data, err := json.Marshal(r)
	if err != nil {
		panic(fmt.Sprintf("room: marshal clone: %v", err))
	}
	var out Room
	if err := json.Unmarshal(data, &out); err != nil {
		panic(fmt.Sprintf("room: unmarshal clone: %v", err))
	}
	return &out
}

// FindUser looks up a user of the room by id.
func (r *Room) FindUser(id string) (User, bool) {
	for _, u := range r.Users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

// Plan returns the plan of date; dates without a stored plan read as empty.
func (r *Room) Plan(date string) planner.DailyPlan {
	return planner.For(r.DailyPlans, date)
}

// VoterNames resolves who voted for recipeID on date, in user directory
// order, joined for display. Votes of removed users are skipped.
func (r *Room) VoterNames(date, recipeID string) string {
	return r.namesOf(r.Plan(date).VoterIDs(recipeID))
}

// Tallies returns the vote count and voter names of each proposed recipe of date.
func (r *Room) Tallies(date string) []planner.Tally {
	return r.Plan(date).Tallies(r.namesOf)
}

func (r *Room) namesOf(ids []string) string {
	var names []string
	for _, u := range r.Users {
		for _, id := range ids {
			if u.ID == id {
				names = append(names, u.Name)
				break
			}
		}
	}
	return strings.Join(names, ", ")
}

func normalizePlans(plans map[string]planner.DailyPlan) map[string]planner.DailyPlan {
	out := make(map[string]planner.DailyPlan, len(plans))
	for date, p := range plans {
		out[date] = p.Normalize(date)
	}
	return out
}

func validateUsers(users []User) error {
	seen := make(map[string]bool, len(users))
	for _, u := range users {
		if u.ID == "" {
			return fmt.Errorf("%w: user %q has no id", ErrValidation, u.Name)
		}
		if seen[u.ID] {
			return fmt.Errorf("%w: duplicate user id %q", ErrValidation, u.ID)
		}
		seen[u.ID] = true
		if !u.Role.Valid() {
			return fmt.Errorf("%w: user %q has unknown role %q", ErrValidation, u.ID, u.Role)
		}
	}
	return nil
}

func validateRecipes(recipes []recipe.Recipe) error {
	for _, rc := range recipes {
		if !rc.Type.Valid() {
			return fmt.Errorf("%w: recipe %q has unknown meal type %q", ErrValidation, rc.ID, rc.Type)
		}
	}
	return nil
}

func validateWishes(wishes []wishlist.Item) error {
	for _, w := range wishes {
		if !w.MealType.Valid() {
			return fmt.Errorf("%w: wish %q has unknown meal type %q", ErrValidation, w.ID, w.MealType)
		}
	}
	return nil
}

func validatePlans(plans map[string]planner.DailyPlan) error {
	for date, p := range plans {
		if _, err := planner.ParseDate(date); err != nil {
			return fmt.Errorf("%w: %v", ErrValidation, err)
		}
		if p.Date != date {
			return fmt.Errorf("%w: plan stored under %s is dated %s", ErrValidation, date, p.Date)
		}
	}
	return nil
}
