package app

import (
	"context"
	"fmt"
	"strings"

	"family-meal-planner/internal/chef"
	"family-meal-planner/internal/llm"
	"family-meal-planner/internal/recipe"
	"family-meal-planner/internal/room"
	"family-meal-planner/internal/session"
	"family-meal-planner/internal/shopping"
)

// Suggest asks the gateway for dishes that fit the room's pantry.
func (a *App) Suggest(ctx context.Context, actor session.Actor, scope, history string) (chef.Suggestions, error) {
	sc, err := chef.ParseScope(scope)
	if err != nil {
		return chef.Suggestions{}, fmt.Errorf("%w: %v", room.ErrValidation, err)
	}
	r, _, err := a.resolve(ctx, actor)
	if err != nil {
		return chef.Suggestions{}, err
	}
	return a.gateway.SuggestDishes(ctx, chef.SuggestRequest{
		Pantry:     shopping.PantryDescription(r.Inventory),
		KnownNames: recipe.Names(r.Recipes),
		Scope:      sc,
		History:    strings.TrimSpace(history),
	}), nil
}

// RecipeDetails asks the gateway how to cook a dish.
func (a *App) RecipeDetails(ctx context.Context, actor session.Actor, dish string) (string, error) {
	dish = strings.TrimSpace(dish)
	if dish == "" {
		return "", validationf("dish name is required")
	}
	if _, _, err := a.resolve(ctx, actor); err != nil {
		return "", err
	}
	return a.gateway.RecipeDetails(ctx, dish), nil
}

// Chat continues a conversation with the kitchen assistant.
func (a *App) Chat(ctx context.Context, actor session.Actor, message string, history []llm.Message) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", validationf("message is required")
	}
	for _, m := range history {
		if m.Role != llm.RoleUser && m.Role != llm.RoleModel {
			return "", validationf("unknown chat role %q", m.Role)
		}
	}
	if _, _, err := a.resolve(ctx, actor); err != nil {
		return "", err
	}
	return a.gateway.Chat(ctx, message, history), nil
}

// WeeklyPlan drafts a seven day menu from the household's preferences.
func (a *App) WeeklyPlan(ctx context.Context, actor session.Actor) ([]chef.DayPlan, error) {
	r, u, err := a.resolve(ctx, actor)
	if err != nil {
		return nil, err
	}
	if err := requireRole(u, homemakerOnly...); err != nil {
		return nil, err
	}
	return a.gateway.WeeklyPlan(ctx, dinersOf(r.Users)), nil
}

func dinersOf(users []room.User) []chef.Diner {
	diners := make([]chef.Diner, 0, len(users))
	for _, u := range users {
		d := chef.Diner{Name: u.Name}
		if u.Preferences != nil {
			d.Breakfast = u.Preferences.Breakfast
			d.Lunch = u.Preferences.Lunch
			d.Dinner = u.Preferences.Dinner
		}
		diners = append(diners, d)
	}
	return diners
}
