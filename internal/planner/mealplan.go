package planner

import (
	"fmt"
	"time"

	"family-meal-planner/internal/recipe"
)

// DateLayout is the key format of daily plans.
const DateLayout = "2006-01-02"

// PlanStatus represents the lifecycle state of a daily plan.
type PlanStatus string

const (
	StatusOpen  PlanStatus = "OPEN"
	StatusFinal PlanStatus = "FINAL"
)

// Vote is one user's active choice for a date.
type Vote struct {
	UserID   string `json:"userId"`
	RecipeID string `json:"recipeId"`
	Comment  string `json:"comment,omitempty"`
}

// DailyPlan is the proposal and voting state of one date.
// Proposed and finalized recipes are snapshots, so later cookbook edits
// never rewrite a past day.
type DailyPlan struct {
	Date             string          `json:"date"`
	ProposedRecipes  []recipe.Recipe `json:"proposedRecipes"`
	FinalizedRecipes []recipe.Recipe `json:"finalizedRecipes"`
	Votes            []Vote          `json:"votes"`
}

// ParseDate validates a YYYY-MM-DD plan key.
func ParseDate(s string) (string, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid plan date %q: want YYYY-MM-DD", s)
	}
	return t.Format(DateLayout), nil
}

// Empty returns the plan of a date nobody has touched yet.
func Empty(date string) DailyPlan {
	return DailyPlan{
		Date:             date,
		ProposedRecipes:  []recipe.Recipe{},
		FinalizedRecipes: []recipe.Recipe{},
		Votes:            []Vote{},
	}
}

// For returns the stored plan of date, or the empty plan when none exists.
func For(plans map[string]DailyPlan, date string) DailyPlan {
	p, ok := plans[date]
	if !ok {
		return Empty(date)
	}
	return p.normalized(date)
}

// Put returns a copy of plans with plan stored under its date.
func Put(plans map[string]DailyPlan, plan DailyPlan) map[string]DailyPlan {
	out := make(map[string]DailyPlan, len(plans)+1)
	for k, v := range plans {
		out[k] = v
	}
	out[plan.Date] = plan
	return out
}

// Status reports whether the menu of the day has been locked in.
func (p DailyPlan) Status() PlanStatus {
	if len(p.FinalizedRecipes) > 0 {
		return StatusFinal
	}
	return StatusOpen
}

// Normalize fills missing collections so the plan always serializes with
// empty arrays, and makes sure Date matches the key it is stored under.
func (p DailyPlan) Normalize(date string) DailyPlan {
	return p.normalized(date)
}

func (p DailyPlan) normalized(date string) DailyPlan {
	if p.Date == "" {
		p.Date = date
	}
	if p.ProposedRecipes == nil {
		p.ProposedRecipes = []recipe.Recipe{}
	}
	if p.FinalizedRecipes == nil {
		p.FinalizedRecipes = []recipe.Recipe{}
	}
	if p.Votes == nil {
		p.Votes = []Vote{}
	}
	return p
}
