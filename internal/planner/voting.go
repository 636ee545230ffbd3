package planner

import (
	"errors"
	"slices"

	"family-meal-planner/internal/recipe"
)

var (
	// ErrNotProposed is returned when a vote or finalization names a recipe
	// that is not on the day's proposal list.
	ErrNotProposed = errors.New("recipe is not proposed for this date")
	// ErrNoVotes is returned when finalizing by votes before anyone voted.
	ErrNoVotes = errors.New("no votes cast for this date")
)

// Tally is the vote count of one proposed recipe.
type Tally struct {
	RecipeID string `json:"recipeId"`
	Count    int    `json:"count"`
	Voters   string `json:"voters"`
}

// IsProposed reports whether recipeID is on the day's proposal list.
func (p DailyPlan) IsProposed(recipeID string) bool {
	return slices.ContainsFunc(p.ProposedRecipes, func(r recipe.Recipe) bool { return r.ID == recipeID })
}

// Propose adds a snapshot of r to the proposal list. Proposing twice is a no-op.
func (p DailyPlan) Propose(r recipe.Recipe) DailyPlan {
	if p.IsProposed(r.ID) {
		return p
	}
	p.ProposedRecipes = recipe.Add(p.ProposedRecipes, r)
	return p
}

// Unpropose drops a recipe from the proposal list together with the votes
// cast for it, so every remaining vote points at a proposed recipe.
func (p DailyPlan) Unpropose(recipeID string) DailyPlan {
	p.ProposedRecipes = recipe.Remove(p.ProposedRecipes, recipeID)
	votes := make([]Vote, 0, len(p.Votes))
	for _, v := range p.Votes {
		if v.RecipeID != recipeID {
			votes = append(votes, v)
		}
	}
	p.Votes = votes
	return p
}

// Toggle proposes r when it is not proposed yet and unproposes it otherwise.
func (p DailyPlan) Toggle(r recipe.Recipe) DailyPlan {
	if p.IsProposed(r.ID) {
		return p.Unpropose(r.ID)
	}
	return p.Propose(r)
}

// CastVote replaces whatever vote userID had for the day with a vote for
// recipeID. A user holds at most one vote per date.
func (p DailyPlan) CastVote(userID, recipeID string) (DailyPlan, error) {
	if !p.IsProposed(recipeID) {
		return p, ErrNotProposed
	}
	p = p.RetractVote(userID)
	p.Votes = append(p.Votes, Vote{UserID: userID, RecipeID: recipeID})
	return p, nil
}

// RetractVote removes userID's vote for the day, if any.
func (p DailyPlan) RetractVote(userID string) DailyPlan {
	votes := make([]Vote, 0, len(p.Votes)+1)
	for _, v := range p.Votes {
		if v.UserID != userID {
			votes = append(votes, v)
		}
	}
	p.Votes = votes
	return p
}

// VoteOf returns the active vote of userID.
func (p DailyPlan) VoteOf(userID string) (Vote, bool) {
	for _, v := range p.Votes {
		if v.UserID == userID {
			return v, true
		}
	}
	return Vote{}, false
}

// Tally counts the votes for recipeID.
func (p DailyPlan) Tally(recipeID string) int {
	n := 0
	for _, v := range p.Votes {
		if v.RecipeID == recipeID {
			n++
		}
	}
	return n
}

// VoterIDs returns the ids of the users who voted for recipeID, in vote order.
func (p DailyPlan) VoterIDs(recipeID string) []string {
	var ids []string
	for _, v := range p.Votes {
		if v.RecipeID == recipeID {
			ids = append(ids, v.UserID)
		}
	}
	return ids
}

// TopVoted returns the proposed recipes sharing the highest vote count, in
// proposal order. It returns nil when nobody voted.
func (p DailyPlan) TopVoted() []recipe.Recipe {
	best := 0
	for _, r := range p.ProposedRecipes {
		best = max(best, p.Tally(r.ID))
	}
	if best == 0 {
		return nil
	}
	var top []recipe.Recipe
	for _, r := range p.ProposedRecipes {
		if p.Tally(r.ID) == best {
			top = append(top, r)
		}
	}
	return top
}

// Finalize locks in the menu of the day. With recipeIDs the named proposed
// recipes are chosen; without, the top-voted ones are.
func (p DailyPlan) Finalize(recipeIDs []string) (DailyPlan, error) {
	if len(recipeIDs) == 0 {
		top := p.TopVoted()
		if len(top) == 0 {
			return p, ErrNoVotes
		}
		p.FinalizedRecipes = top
		return p, nil
	}

	for _, id := range recipeIDs {
		if !p.IsProposed(id) {
			return p, ErrNotProposed
		}
	}
	chosen := make([]recipe.Recipe, 0, len(recipeIDs))
	for _, r := range p.ProposedRecipes {
		if slices.Contains(recipeIDs, r.ID) {
			chosen = append(chosen, r)
		}
	}
	p.FinalizedRecipes = chosen
	return p, nil
}

// Tallies returns one Tally per proposed recipe. names resolves the voter
// ids of a recipe into a display string.
func (p DailyPlan) Tallies(names func(voterIDs []string) string) []Tally {
	out := make([]Tally, len(p.ProposedRecipes))
	for i, r := range p.ProposedRecipes {
		out[i] = Tally{
			RecipeID: r.ID,
			Count:    p.Tally(r.ID),
			Voters:   names(p.VoterIDs(r.ID)),
		}
	}
	return out
}
