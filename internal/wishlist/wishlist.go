// Package wishlist holds the per-user dish requests of a household.
package wishlist

import "family-meal-planner/internal/recipe"

// Item is a standing request for a dish, not tied to a date.
type Item struct {
	ID       string          `json:"id"`
	UserID   string          `json:"userId"`
	DishName string          `json:"dishName"`
	MealType recipe.MealType `json:"mealType"`
	Notes    string          `json:"notes,omitempty"`
}

// Add returns a copy of list with item appended.
func Add(list []Item, item Item) []Item {
	out := make([]Item, 0, len(list)+1)
	out = append(out, list...)
	return append(out, item)
}

// Remove returns a copy of list without the wish with the given id.
func Remove(list []Item, id string) []Item {
	out := make([]Item, 0, len(list))
	for _, w := range list {
		if w.ID != id {
			out = append(out, w)
		}
	}
	return out
}

// Find looks up a wish by id.
func Find(list []Item, id string) (Item, bool) {
	for _, w := range list {
		if w.ID == id {
			return w, true
		}
	}
	return Item{}, false
}

// ForUser returns the wishes made by one user.
func ForUser(list []Item, userID string) []Item {
	out := []Item{}
	for _, w := range list {
		if w.UserID == userID {
			out = append(out, w)
		}
	}
	return out
}
