package room

import (
	"strings"
	"time"

	"family-meal-planner/internal/planner"
	"family-meal-planner/internal/recipe"
	"family-meal-planner/internal/shopping"
	"family-meal-planner/internal/wishlist"
)

// Field names a top-level, independently replaceable part of a room.
type Field string

const (
	FieldName         Field = "name"
	FieldPassword     Field = "password"
	FieldUsers        Field = "users"
	FieldRecipes      Field = "recipes"
	FieldInventory    Field = "inventory"
	FieldShoppingList Field = "shoppingList"
	FieldDailyPlans   Field = "dailyPlans"
	FieldWishLists    Field = "wishLists"
)

// Patch is a partial room update. Every non-nil field replaces the stored
// field wholesale; nothing is merged element by element, and fields left
// nil keep whatever the store currently holds.
type Patch struct {
	Name         *string                       `json:"name,omitempty"`
	Password     *string                       `json:"password,omitempty"`
	Users        *[]User                       `json:"users,omitempty"`
	Recipes      *[]recipe.Recipe              `json:"recipes,omitempty"`
	Inventory    *[]shopping.Ingredient        `json:"inventory,omitempty"`
	ShoppingList *[]shopping.Item              `json:"shoppingList,omitempty"`
	DailyPlans   *map[string]planner.DailyPlan `json:"dailyPlans,omitempty"`
	WishLists    *[]wishlist.Item              `json:"wishLists,omitempty"`
}

// Fields lists which fields the patch replaces.
func (p Patch) Fields() []Field {
	var fields []Field
	if p.Name != nil {
		fields = append(fields, FieldName)
	}
	if p.Password != nil {
		fields = append(fields, FieldPassword)
	}
	if p.Users != nil {
		fields = append(fields, FieldUsers)
	}
	if p.Recipes != nil {
		fields = append(fields, FieldRecipes)
	}
	if p.Inventory != nil {
		fields = append(fields, FieldInventory)
	}
	if p.ShoppingList != nil {
		fields = append(fields, FieldShoppingList)
	}
	if p.DailyPlans != nil {
		fields = append(fields, FieldDailyPlans)
	}
	if p.WishLists != nil {
		fields = append(fields, FieldWishLists)
	}
	return fields
}

// Empty reports whether the patch replaces nothing.
func (p Patch) Empty() bool {
	return len(p.Fields()) == 0
}

// Normalized returns the patch with nil collections replaced by empty ones.
func (p Patch) Normalized() Patch {
	if p.Users != nil && *p.Users == nil {
		p.Users = &[]User{}
	}
	if p.Recipes != nil && *p.Recipes == nil {
		p.Recipes = &[]recipe.Recipe{}
	}
	if p.Inventory != nil && *p.Inventory == nil {
		p.Inventory = &[]shopping.Ingredient{}
	}
	if p.ShoppingList != nil && *p.ShoppingList == nil {
		p.ShoppingList = &[]shopping.Item{}
	}
	if p.DailyPlans != nil {
		plans := normalizePlans(*p.DailyPlans)
		p.DailyPlans = &plans
	}
	if p.WishLists != nil && *p.WishLists == nil {
		p.WishLists = &[]wishlist.Item{}
	}
	return p
}

// Validate checks the replacement values the same way a whole room is checked.
func (p Patch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return errorf(ErrValidation, "room name must not be empty")
	}
	if p.Password != nil && strings.TrimSpace(*p.Password) == "" {
		return errorf(ErrValidation, "room password must not be empty")
	}
	if p.Users != nil {
		if err := validateUsers(*p.Users); err != nil {
			return err
		}
	}
	if p.Recipes != nil {
		if err := validateRecipes(*p.Recipes); err != nil {
			return err
		}
	}
	if p.WishLists != nil {
		if err := validateWishes(*p.WishLists); err != nil {
			return err
		}
	}
	if p.DailyPlans != nil {
		return validatePlans(*p.DailyPlans)
	}
	return nil
}

// ApplyTo replaces the patched fields of r and stamps UpdatedAt.
func (p Patch) ApplyTo(r *Room, now time.Time) {
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.Password != nil {
		r.Password = *p.Password
	}
	if p.Users != nil {
		r.Users = *p.Users
	}
	if p.Recipes != nil {
		r.Recipes = *p.Recipes
	}
	if p.Inventory != nil {
		r.Inventory = *p.Inventory
	}
	if p.ShoppingList != nil {
		r.ShoppingList = *p.ShoppingList
	}
	if p.DailyPlans != nil {
		r.DailyPlans = *p.DailyPlans
	}
	if p.WishLists != nil {
		r.WishLists = *p.WishLists
	}
	r.UpdatedAt = now
	r.Normalize()
}
