package app

import (
	"context"
	"errors"
	"fmt"

	"family-meal-planner/internal/planner"
	"family-meal-planner/internal/recipe"
	"family-meal-planner/internal/room"
	"family-meal-planner/internal/session"
)

// PlanView is a daily plan with its resolved vote tallies. MyVote is the
// recipe the viewing user voted for, if any.
type PlanView struct {
	Plan    planner.DailyPlan  `json:"plan"`
	Status  planner.PlanStatus `json:"status"`
	Tallies []planner.Tally    `json:"tallies"`
	MyVote  string             `json:"myVote,omitempty"`
}

func viewOf(r *room.Room, date, userID string) PlanView {
	p := r.Plan(date)
	v := PlanView{Plan: p, Status: p.Status(), Tallies: r.Tallies(date)}
	if vote, ok := p.VoteOf(userID); ok {
		v.MyVote = vote.RecipeID
	}
	return v
}

// GetPlan returns the plan of a date, empty when nobody touched it yet.
func (a *App) GetPlan(ctx context.Context, actor session.Actor, date string) (PlanView, error) {
	d, err := planner.ParseDate(date)
	if err != nil {
		return PlanView{}, fmt.Errorf("%w: %v", room.ErrValidation, err)
	}
	r, u, err := a.resolve(ctx, actor)
	if err != nil {
		return PlanView{}, err
	}
	return viewOf(r, d, u.ID), nil
}

// planMutation edits one day's plan of the room.
type planMutation func(r *room.Room, u room.User, p planner.DailyPlan) (planner.DailyPlan, error)

func (a *App) updatePlan(ctx context.Context, actor session.Actor, date string, roles []room.Role, fn planMutation) (PlanView, error) {
	d, err := planner.ParseDate(date)
	if err != nil {
		return PlanView{}, fmt.Errorf("%w: %v", room.ErrValidation, err)
	}
	r, err := a.mutate(ctx, actor, roles, func(r *room.Room, u room.User) (room.Patch, error) {
		p, err := fn(r, u, r.Plan(d))
		if err != nil {
			return room.Patch{}, err
		}
		plans := planner.Put(r.DailyPlans, p)
		return room.Patch{DailyPlans: &plans}, nil
	})
	if err != nil {
		return PlanView{}, err
	}
	return viewOf(r, d, actor.UserID), nil
}

// ToggleProposal adds a cookbook recipe to the day's proposals, or takes
// it off again together with its votes.
func (a *App) ToggleProposal(ctx context.Context, actor session.Actor, date, recipeID string) (PlanView, error) {
	return a.updatePlan(ctx, actor, date, homemakerOnly, func(r *room.Room, _ room.User, p planner.DailyPlan) (planner.DailyPlan, error) {
		rec, ok := recipe.Find(r.Recipes, recipeID)
		if !ok {
			if !p.IsProposed(recipeID) {
				return p, notFoundf("recipe %s", recipeID)
			}
			// Deleted from the cookbook but still proposed: toggles off.
			rec = recipe.Recipe{ID: recipeID}
		}
		return p.Toggle(rec), nil
	})
}

// Unpropose takes a recipe off the day's proposals.
func (a *App) Unpropose(ctx context.Context, actor session.Actor, date, recipeID string) (PlanView, error) {
	return a.updatePlan(ctx, actor, date, homemakerOnly, func(_ *room.Room, _ room.User, p planner.DailyPlan) (planner.DailyPlan, error) {
		return p.Unpropose(recipeID), nil
	})
}

// CastVote records the actor's choice for the day, replacing any earlier one.
func (a *App) CastVote(ctx context.Context, actor session.Actor, date, recipeID string) (PlanView, error) {
	return a.updatePlan(ctx, actor, date, nil, func(_ *room.Room, u room.User, p planner.DailyPlan) (planner.DailyPlan, error) {
		next, err := p.CastVote(u.ID, recipeID)
		if errors.Is(err, planner.ErrNotProposed) {
			return p, fmt.Errorf("%w: %v", room.ErrValidation, err)
		}
		return next, err
	})
}

// RetractVote withdraws the actor's vote for the day.
func (a *App) RetractVote(ctx context.Context, actor session.Actor, date string) (PlanView, error) {
	return a.updatePlan(ctx, actor, date, nil, func(_ *room.Room, u room.User, p planner.DailyPlan) (planner.DailyPlan, error) {
		return p.RetractVote(u.ID), nil
	})
}

// FinalizePlan locks in the day's menu, either the chosen recipes or the
// top-voted ones, and announces it. A failed announcement does not undo
// the finalization.
func (a *App) FinalizePlan(ctx context.Context, actor session.Actor, date string, recipeIDs []string) (PlanView, error) {
	view, err := a.updatePlan(ctx, actor, date, homemakerOnly, func(_ *room.Room, _ room.User, p planner.DailyPlan) (planner.DailyPlan, error) {
		next, err := p.Finalize(recipeIDs)
		if errors.Is(err, planner.ErrNotProposed) || errors.Is(err, planner.ErrNoVotes) {
			return p, fmt.Errorf("%w: %v", room.ErrValidation, err)
		}
		return next, err
	})
	if err != nil {
		return PlanView{}, err
	}
	a.logger.Info("plan finalized", "room_id", actor.RoomID, "date", view.Plan.Date, "recipes", len(view.Plan.FinalizedRecipes))

	r, err := a.store.Get(ctx, actor.RoomID)
	if err != nil {
		a.logger.Warn("menu announcement skipped", "room_id", actor.RoomID, "error", err)
		return view, nil
	}
	if err := a.notifier.AnnounceMenu(ctx, r, view.Plan.Date); err != nil {
		a.logger.Warn("menu announcement failed", "room_id", actor.RoomID, "date", view.Plan.Date, "error", err)
	}
	return view, nil
}
