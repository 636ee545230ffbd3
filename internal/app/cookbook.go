package app

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"family-meal-planner/internal/recipe"
	"family-meal-planner/internal/room"
	"family-meal-planner/internal/session"
)

// RecipeInput is a dish as typed into the cookbook form.
type RecipeInput struct {
	Name         string
	Type         string
	Description  string
	IsSpecial    bool
	Instructions string
}

// AddRecipe appends a dish to the cookbook.
func (a *App) AddRecipe(ctx context.Context, actor session.Actor, in RecipeInput) (recipe.Recipe, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return recipe.Recipe{}, validationf("recipe name is required")
	}
	mt, err := recipe.ParseMealType(in.Type)
	if err != nil {
		return recipe.Recipe{}, fmt.Errorf("%w: %v", room.ErrValidation, err)
	}
	rec := recipe.Recipe{
		ID:           a.newID(),
		Name:         name,
		Type:         mt,
		Description:  strings.TrimSpace(in.Description),
		IsSpecial:    in.IsSpecial,
		Instructions: in.Instructions,
	}
	if err := a.saveRecipe(ctx, actor, rec); err != nil {
		return recipe.Recipe{}, err
	}
	return rec, nil
}

func (a *App) saveRecipe(ctx context.Context, actor session.Actor, rec recipe.Recipe) error {
	_, err := a.mutate(ctx, actor, homemakerOnly, func(r *room.Room, _ room.User) (room.Patch, error) {
		book := recipe.Add(r.Recipes, rec)
		return room.Patch{Recipes: &book}, nil
	})
	return err
}

// DeleteRecipe removes a dish from the cookbook. Plans keep their own
// copies of the recipe.
func (a *App) DeleteRecipe(ctx context.Context, actor session.Actor, recipeID string) (*room.Room, error) {
	return a.mutate(ctx, actor, homemakerOnly, func(r *room.Room, _ room.User) (room.Patch, error) {
		if _, ok := recipe.Find(r.Recipes, recipeID); !ok {
			return room.Patch{}, nil
		}
		book := recipe.Remove(r.Recipes, recipeID)
		return room.Patch{Recipes: &book}, nil
	})
}

// ImportRecipe clips a recipe from a web page into the cookbook.
func (a *App) ImportRecipe(ctx context.Context, actor session.Actor, rawURL string) (recipe.Recipe, error) {
	if a.importer == nil {
		return recipe.Recipe{}, fmt.Errorf("%w: recipe import is not configured", room.ErrUnavailable)
	}
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return recipe.Recipe{}, validationf("invalid recipe url %q", rawURL)
	}

	// Check the role before spending a fetch and an AI call.
	_, user, err := a.resolve(ctx, actor)
	if err != nil {
		return recipe.Recipe{}, err
	}
	if err := requireRole(user, homemakerOnly...); err != nil {
		return recipe.Recipe{}, err
	}

	rec, err := a.importer.ClipURL(ctx, u.String())
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return recipe.Recipe{}, err
		}
		a.logger.Warn("recipe import failed", "room_id", actor.RoomID, "url", u.String(), "error", err)
		return recipe.Recipe{}, fmt.Errorf("%w: could not import recipe: %v", room.ErrValidation, err)
	}
	rec.ID = a.newID()
	if err := a.saveRecipe(ctx, actor, rec); err != nil {
		return recipe.Recipe{}, err
	}
	a.logger.Info("recipe imported", "room_id", actor.RoomID, "recipe_id", rec.ID, "name", rec.Name)
	return rec, nil
}
