package chef

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"family-meal-planner/internal/llm"
)

// SuggestionCount is how many dishes a suggestion carries at most.
const SuggestionCount = 4

// Scope limits where suggested dishes may come from.
type Scope string

const (
	ScopeCookbook Scope = "cookbook"
	ScopeGlobal   Scope = "global"
)

// ParseScope accepts cookbook or global; empty means cookbook.
func ParseScope(s string) (Scope, error) {
	switch Scope(strings.ToLower(strings.TrimSpace(s))) {
	case "", ScopeCookbook:
		return ScopeCookbook, nil
	case ScopeGlobal:
		return ScopeGlobal, nil
	default:
		return "", fmt.Errorf("unknown suggestion scope %q", s)
	}
}

// SuggestRequest is the room context a suggestion is based on.
type SuggestRequest struct {
	Pantry     string
	KnownNames []string
	Scope      Scope
	History    string
}

// Suggestions is the answer to SuggestDishes.
type Suggestions struct {
	Suggestions []string `json:"suggestions"`
	Reasoning   string   `json:"reasoning"`
}

// SuggestDishes proposes up to four dishes. With cookbook scope every
// suggestion is one of req.KnownNames, spelled as in the cookbook.
func (c *Chef) SuggestDishes(ctx context.Context, req SuggestRequest) Suggestions {
	cookbook := req.Scope != ScopeGlobal
	if cookbook && len(req.KnownNames) == 0 {
		return Suggestions{Suggestions: []string{}, Reasoning: EmptyCookbook}
	}

	pantry := strings.TrimSpace(req.Pantry)
	if pantry == "" {
		pantry = "Not specified"
	}
	prompt, err := render("suggest_prompt.md", map[string]any{
		"Pantry":   pantry,
		"Known":    req.KnownNames,
		"Cookbook": cookbook,
		"Count":    SuggestionCount,
		"History":  strings.TrimSpace(req.History),
	})
	if err != nil {
		c.logger.Error("failed to build prompt", "operation", OpSuggest, "error", err)
		return fallbackSuggestions()
	}

	text, err := c.generate(ctx, OpSuggest, prompt, llm.WithJSON())
	if err != nil {
		return fallbackSuggestions()
	}

	var out Suggestions
	if err := json.Unmarshal([]byte(stripFences(text)), &out); err != nil {
		c.malformed(ctx, OpSuggest, err)
		return fallbackSuggestions()
	}

	if cookbook {
		out.Suggestions = restrictTo(out.Suggestions, req.KnownNames)
	} else {
		out.Suggestions = dedupe(out.Suggestions)
	}
	if len(out.Suggestions) > SuggestionCount {
		out.Suggestions = out.Suggestions[:SuggestionCount]
	}
	if strings.TrimSpace(out.Reasoning) == "" {
		out.Reasoning = DefaultReasoning
	}
	return out
}

func fallbackSuggestions() Suggestions {
	return Suggestions{Suggestions: []string{}, Reasoning: FallbackReasoning}
}

// restrictTo keeps the names found in known, matched case-insensitively
// and rewritten to the cookbook spelling.
func restrictTo(names, known []string) []string {
	canonical := make(map[string]string, len(known))
	for _, k := range known {
		canonical[strings.ToLower(strings.TrimSpace(k))] = k
	}
	out := []string{}
	seen := map[string]bool{}
	for _, n := range names {
		key := strings.ToLower(strings.TrimSpace(n))
		name, ok := canonical[key]
		if !ok || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, name)
	}
	return out
}

func dedupe(names []string) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, n := range names {
		n = strings.TrimSpace(n)
		key := strings.ToLower(n)
		if n == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, n)
	}
	return out
}
