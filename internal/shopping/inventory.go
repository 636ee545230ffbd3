package shopping

import "strings"

// emptyPantry is what the assistant is told when nothing is stocked.
const emptyPantry = "Nothing specific"

// AddIngredient returns a copy of inv with ing appended.
func AddIngredient(inv []Ingredient, ing Ingredient) []Ingredient {
	out := make([]Ingredient, 0, len(inv)+1)
	out = append(out, inv...)
	return append(out, ing)
}

// RemoveIngredient returns a copy of inv without the given id.
func RemoveIngredient(inv []Ingredient, id string) []Ingredient {
	out := make([]Ingredient, 0, len(inv))
	for _, ing := range inv {
		if ing.ID != id {
			out = append(out, ing)
		}
	}
	return out
}

// UpdateQuantity replaces the quantity of one ingredient in place.
func UpdateQuantity(inv []Ingredient, id, quantity string) ([]Ingredient, error) {
	out := make([]Ingredient, len(inv))
	copy(out, inv)
	for i := range out {
		if out[i].ID == id {
			out[i].Quantity = quantity
			return out, nil
		}
	}
	return nil, ErrItemNotFound
}

// PantryDescription renders the pantry as "name (quantity)" pairs.
func PantryDescription(inv []Ingredient) string {
	if len(inv) == 0 {
		return emptyPantry
	}
	parts := make([]string, len(inv))
	for i, ing := range inv {
		parts[i] = ing.Name + " (" + ing.Quantity + ")"
	}
	return strings.Join(parts, ", ")
}
