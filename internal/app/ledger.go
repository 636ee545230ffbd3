package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"family-meal-planner/internal/recipe"
	"family-meal-planner/internal/room"
	"family-meal-planner/internal/session"
	"family-meal-planner/internal/shopping"
	"family-meal-planner/internal/wishlist"
)

func itemErr(err error, id string) error {
	if errors.Is(err, shopping.ErrItemNotFound) {
		return notFoundf("item %s", id)
	}
	return err
}

// AddShoppingItem puts an item on the shared list. Items added by the
// homemaker are marked as such; everyone else is recorded by user id.
func (a *App) AddShoppingItem(ctx context.Context, actor session.Actor, name, quantity string) (shopping.Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return shopping.Item{}, validationf("item name is required")
	}
	var added shopping.Item
	_, err := a.mutate(ctx, actor, nil, func(r *room.Room, u room.User) (room.Patch, error) {
		added = shopping.Item{ID: a.newID(), Name: name, Quantity: strings.TrimSpace(quantity), AddedBy: u.ID}
		if u.Role == room.RoleHomemaker {
			added.AddedBy = shopping.AddedByHomemaker
		}
		list := shopping.Add(r.ShoppingList, added)
		return room.Patch{ShoppingList: &list}, nil
	})
	if err != nil {
		return shopping.Item{}, err
	}
	return added, nil
}

// RemoveShoppingItem deletes an item; removing an absent item succeeds.
func (a *App) RemoveShoppingItem(ctx context.Context, actor session.Actor, itemID string) (*room.Room, error) {
	return a.mutate(ctx, actor, homemakerOnly, func(r *room.Room, _ room.User) (room.Patch, error) {
		list := shopping.Remove(r.ShoppingList, itemID)
		if len(list) == len(r.ShoppingList) {
			return room.Patch{}, nil
		}
		return room.Patch{ShoppingList: &list}, nil
	})
}

// ToggleBought flips the bought flag of an item.
func (a *App) ToggleBought(ctx context.Context, actor session.Actor, itemID string) (*room.Room, error) {
	return a.mutate(ctx, actor, nil, func(r *room.Room, _ room.User) (room.Patch, error) {
		list, err := shopping.ToggleBought(r.ShoppingList, itemID)
		if err != nil {
			return room.Patch{}, itemErr(err, itemID)
		}
		return room.Patch{ShoppingList: &list}, nil
	})
}

// AssignShoppingItem makes a user responsible for buying an item. An empty
// userID clears the assignment.
func (a *App) AssignShoppingItem(ctx context.Context, actor session.Actor, itemID, userID string) (*room.Room, error) {
	return a.mutate(ctx, actor, homemakerOnly, func(r *room.Room, _ room.User) (room.Patch, error) {
		if userID != "" {
			if _, ok := r.FindUser(userID); !ok {
				return room.Patch{}, notFoundf("user %s", userID)
			}
		}
		list, err := shopping.Assign(r.ShoppingList, itemID, userID)
		if err != nil {
			return room.Patch{}, itemErr(err, itemID)
		}
		return room.Patch{ShoppingList: &list}, nil
	})
}

// ClearBought drops every bought item from the list.
func (a *App) ClearBought(ctx context.Context, actor session.Actor) (*room.Room, error) {
	return a.mutate(ctx, actor, homemakerOnly, func(r *room.Room, _ room.User) (room.Patch, error) {
		list := shopping.ClearBought(r.ShoppingList)
		if len(list) == len(r.ShoppingList) {
			return room.Patch{}, nil
		}
		return room.Patch{ShoppingList: &list}, nil
	})
}

// AddIngredient stocks the pantry.
func (a *App) AddIngredient(ctx context.Context, actor session.Actor, name, quantity string) (shopping.Ingredient, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return shopping.Ingredient{}, validationf("ingredient name is required")
	}
	ing := shopping.Ingredient{ID: a.newID(), Name: name, Quantity: strings.TrimSpace(quantity)}
	_, err := a.mutate(ctx, actor, homemakerOnly, func(r *room.Room, _ room.User) (room.Patch, error) {
		inv := shopping.AddIngredient(r.Inventory, ing)
		return room.Patch{Inventory: &inv}, nil
	})
	if err != nil {
		return shopping.Ingredient{}, err
	}
	return ing, nil
}

// UpdateIngredient replaces the quantity of a pantry ingredient.
func (a *App) UpdateIngredient(ctx context.Context, actor session.Actor, id, quantity string) (*room.Room, error) {
	return a.mutate(ctx, actor, homemakerOnly, func(r *room.Room, _ room.User) (room.Patch, error) {
		inv, err := shopping.UpdateQuantity(r.Inventory, id, strings.TrimSpace(quantity))
		if err != nil {
			return room.Patch{}, itemErr(err, id)
		}
		return room.Patch{Inventory: &inv}, nil
	})
}

// RemoveIngredient takes an ingredient out of the pantry.
func (a *App) RemoveIngredient(ctx context.Context, actor session.Actor, id string) (*room.Room, error) {
	return a.mutate(ctx, actor, homemakerOnly, func(r *room.Room, _ room.User) (room.Patch, error) {
		inv := shopping.RemoveIngredient(r.Inventory, id)
		if len(inv) == len(r.Inventory) {
			return room.Patch{}, nil
		}
		return room.Patch{Inventory: &inv}, nil
	})
}

// WishInput is a dish request.
type WishInput struct {
	DishName string
	MealType string
	Notes    string
}

// AddWish records a dish request made by the actor.
func (a *App) AddWish(ctx context.Context, actor session.Actor, in WishInput) (wishlist.Item, error) {
	dish := strings.TrimSpace(in.DishName)
	if dish == "" {
		return wishlist.Item{}, validationf("dish name is required")
	}
	mt, err := recipe.ParseMealType(in.MealType)
	if err != nil {
		return wishlist.Item{}, fmt.Errorf("%w: %v", room.ErrValidation, err)
	}
	var wish wishlist.Item
	_, err = a.mutate(ctx, actor, nil, func(r *room.Room, u room.User) (room.Patch, error) {
		wish = wishlist.Item{ID: a.newID(), UserID: u.ID, DishName: dish, MealType: mt, Notes: strings.TrimSpace(in.Notes)}
		wishes := wishlist.Add(r.WishLists, wish)
		return room.Patch{WishLists: &wishes}, nil
	})
	if err != nil {
		return wishlist.Item{}, err
	}
	return wish, nil
}

// Wishes lists the wishes the actor may see: all of them for the homemaker,
// a member's own otherwise.
func (a *App) Wishes(ctx context.Context, actor session.Actor) ([]wishlist.Item, error) {
	r, u, err := a.resolve(ctx, actor)
	if err != nil {
		return nil, err
	}
	if u.Role == room.RoleHomemaker {
		return r.WishLists, nil
	}
	return wishlist.ForUser(r.WishLists, u.ID), nil
}

// RemoveWish deletes a wish. Members may only remove their own.
func (a *App) RemoveWish(ctx context.Context, actor session.Actor, wishID string) (*room.Room, error) {
	return a.mutate(ctx, actor, nil, func(r *room.Room, u room.User) (room.Patch, error) {
		w, ok := wishlist.Find(r.WishLists, wishID)
		if !ok {
			return room.Patch{}, nil
		}
		if u.Role != room.RoleHomemaker && w.UserID != u.ID {
			return room.Patch{}, fmt.Errorf("%w: only the homemaker may remove another user's wish", room.ErrForbidden)
		}
		wishes := wishlist.Remove(r.WishLists, wishID)
		return room.Patch{WishLists: &wishes}, nil
	})
}
