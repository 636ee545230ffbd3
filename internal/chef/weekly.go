package chef

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"family-meal-planner/internal/llm"
)

// Weekdays in plan order.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Diner is one household member's stated preferences.
type Diner struct {
	Name      string
	Breakfast []string
	Lunch     []string
	Dinner    []string
}

func (d Diner) hasPreferences() bool {
	return len(d.Breakfast)+len(d.Lunch)+len(d.Dinner) > 0
}

// DayPlan is one day of a generated weekly plan.
type DayPlan struct {
	Day       string `json:"day"`
	Breakfast string `json:"breakfast"`
	Lunch     string `json:"lunch"`
	Dinner    string `json:"dinner"`
}

// WeeklyPlan picks one shared dish per meal for seven days. It returns an
// empty plan when nobody has stated preferences or the provider fails.
func (c *Chef) WeeklyPlan(ctx context.Context, diners []Diner) []DayPlan {
	var withPrefs []Diner
	for _, d := range diners {
		if d.hasPreferences() {
			withPrefs = append(withPrefs, d)
		}
	}
	if len(withPrefs) == 0 {
		return []DayPlan{}
	}

	prompt, err := render("weekly_plan_prompt.md", map[string]any{"Diners": withPrefs})
	if err != nil {
		c.logger.Error("failed to build prompt", "operation", OpWeeklyPlan, "error", err)
		return []DayPlan{}
	}

	text, err := c.generate(ctx, OpWeeklyPlan, prompt, llm.WithJSON())
	if err != nil {
		return []DayPlan{}
	}

	days, err := parseWeek(stripFences(text))
	if err != nil {
		c.malformed(ctx, OpWeeklyPlan, err)
		return []DayPlan{}
	}
	return days
}

// parseWeek accepts {"days": [...]} or a bare array and requires seven days.
func parseWeek(text string) ([]DayPlan, error) {
	var days []DayPlan
	if strings.HasPrefix(text, "[") {
		if err := json.Unmarshal([]byte(text), &days); err != nil {
			return nil, err
		}
	} else {
		var wrapped struct {
			Days []DayPlan `json:"days"`
		}
		if err := json.Unmarshal([]byte(text), &wrapped); err != nil {
			return nil, err
		}
		days = wrapped.Days
	}

	if len(days) < len(Weekdays) {
		return nil, fmt.Errorf("expected %d days, got %d", len(Weekdays), len(days))
	}
	days = days[:len(Weekdays)]
	for i := range days {
		if strings.TrimSpace(days[i].Day) == "" {
			days[i].Day = Weekdays[i]
		}
	}
	return days, nil
}
