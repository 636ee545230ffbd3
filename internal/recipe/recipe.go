package recipe

import (
	"fmt"
	"slices"
	"strings"
)

// MealType is the meal slot a dish is cooked for.
type MealType string

const (
	Breakfast MealType = "breakfast"
	Lunch     MealType = "lunch"
	Dinner    MealType = "dinner"
	Snack     MealType = "snack"
)

// MealTypes lists every meal type in display order.
var MealTypes = []MealType{Breakfast, Lunch, Dinner, Snack}

// Valid reports whether m is one of the known meal types.
func (m MealType) Valid() bool {
	return slices.Contains(MealTypes, m)
}

// ParseMealType converts a user supplied string into a MealType.
func ParseMealType(s string) (MealType, error) {
	m := MealType(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("unknown meal type %q, want one of %v", s, MealTypes)
	}
	return m, nil
}

// Recipe is a dish in the household cookbook.
type Recipe struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Type         MealType `json:"type"`
	Description  string   `json:"description,omitempty"`
	IsSpecial    bool     `json:"isSpecial"`
	Instructions string   `json:"instructions,omitempty"`
}

// Add returns a copy of book with r appended.
func Add(book []Recipe, r Recipe) []Recipe {
	out := make([]Recipe, 0, len(book)+1)
	out = append(out, book...)
	return append(out, r)
}

// Remove returns a copy of book without the recipe with the given id.
// Removing an unknown id returns an unchanged copy.
func Remove(book []Recipe, id string) []Recipe {
	out := make([]Recipe, 0, len(book))
	for _, r := range book {
		if r.ID != id {
			out = append(out, r)
		}
	}
	return out
}

// Find looks up a recipe by id.
func Find(book []Recipe, id string) (Recipe, bool) {
	i := slices.IndexFunc(book, func(r Recipe) bool { return r.ID == id })
	if i < 0 {
		return Recipe{}, false
	}
	return book[i], true
}

// Names returns the recipe names in cookbook order.
func Names(book []Recipe) []string {
	names := make([]string, len(book))
	for i, r := range book {
		names[i] = r.Name
	}
	return names
}
