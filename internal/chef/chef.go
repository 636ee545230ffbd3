// Package chef is the AI suggestion gateway. Every operation returns a
// usable answer: provider failures, timeouts and malformed output all
// degrade to a fixed fallback instead of an error.
package chef

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"text/template"
	"time"

	"family-meal-planner/internal/llm"
	"family-meal-planner/internal/shared"
)

// ErrGatewayUnavailable classifies failed calls in logs and metrics.
var ErrGatewayUnavailable = errors.New("ai gateway unavailable")

// Fallback texts returned when the provider cannot be used.
const (
	FallbackReasoning = "AI is currently taking a nap. Please try again later."
	DefaultReasoning  = "Here are some ideas based on your pantry."
	EmptyCookbook     = "Your cookbook is empty. Add a few recipes first."
	FallbackDetails   = "Failed to connect to AI Chef. Please check your internet connection or API key."
	EmptyDetails      = "Could not generate recipe."
	FallbackChat      = "Sorry, I'm having trouble thinking right now."
	EmptyChat         = "I didn't catch that."
)

// Operation names used in logs and metrics.
const (
	OpSuggest       = "suggest_dishes"
	OpRecipeDetails = "recipe_details"
	OpChat          = "chat"
	OpWeeklyPlan    = "weekly_plan"
)

const defaultTimeout = 20 * time.Second

//go:embed chat_system.md
var chatSystem string

var prompts = template.Must(template.New("chef").
	Funcs(template.FuncMap{"join": strings.Join}).
	ParseFS(promptFS, "*_prompt.md"))

// Gateway is what the command layer needs from the AI.
type Gateway interface {
	SuggestDishes(ctx context.Context, req SuggestRequest) Suggestions
	RecipeDetails(ctx context.Context, dish string) string
	Chat(ctx context.Context, message string, history []llm.Message) string
	WeeklyPlan(ctx context.Context, diners []Diner) []DayPlan
}

// Recorder receives one entry per provider call.
type Recorder interface {
	RecordCall(ctx context.Context, meta shared.CallMeta)
}

// Chef implements Gateway on top of a text generator.
type Chef struct {
	textGen  llm.TextGenerator
	timeout  time.Duration
	recorder Recorder
	logger   *slog.Logger
}

var _ Gateway = (*Chef)(nil)

// Option configures a Chef.
type Option func(*Chef)

// WithTimeout bounds every provider call.
func WithTimeout(d time.Duration) Option {
	return func(c *Chef) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithRecorder reports every call to r.
func WithRecorder(r Recorder) Option {
	return func(c *Chef) { c.recorder = r }
}

// WithLogger replaces the default logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Chef) { c.logger = l }
}

// New creates a Chef.
func New(textGen llm.TextGenerator, opts ...Option) *Chef {
	c := &Chef{
		textGen: textGen,
		timeout: defaultTimeout,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RecipeDetails returns short markdown with ingredients and numbered steps.
func (c *Chef) RecipeDetails(ctx context.Context, dish string) string {
	prompt, err := render("recipe_details_prompt.md", map[string]string{"Dish": strings.TrimSpace(dish)})
	if err != nil {
		c.logger.Error("failed to build prompt", "operation", OpRecipeDetails, "error", err)
		return FallbackDetails
	}
	text, err := c.generate(ctx, OpRecipeDetails, prompt, llm.WithTemperature(0.4))
	if err != nil {
		return FallbackDetails
	}
	if strings.TrimSpace(text) == "" {
		return EmptyDetails
	}
	return text
}

// Chat answers one message. The caller keeps the transcript and passes
// earlier turns as history.
func (c *Chef) Chat(ctx context.Context, message string, history []llm.Message) string {
	text, err := c.generate(ctx, OpChat, message,
		llm.WithSystem(strings.TrimSpace(chatSystem)),
		llm.WithHistory(history),
	)
	if err != nil {
		return FallbackChat
	}
	if strings.TrimSpace(text) == "" {
		return EmptyChat
	}
	return text
}

// generate runs one provider call under the timeout, records it and
// classifies failures.
func (c *Chef) generate(ctx context.Context, op, prompt string, opts ...llm.Option) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.textGen.GenerateContent(ctx, prompt, opts...)
	meta := shared.CallMeta{
		Operation: op,
		Usage:     resp.Usage,
		Latency:   time.Since(start),
		Outcome:   shared.OutcomeOK,
	}
	if err != nil {
		err = fmt.Errorf("%w: %s: %v", ErrGatewayUnavailable, op, err)
		meta.Outcome = shared.OutcomeFallback
		c.logger.Warn("ai call failed", "operation", op, "latency_ms", meta.Latency.Milliseconds(), "error", err)
	} else {
		c.logger.Debug("ai call", "operation", op, "latency_ms", meta.Latency.Milliseconds(),
			"prompt_tokens", resp.Usage.PromptTokens, "completion_tokens", resp.Usage.CompletionTokens)
	}
	c.record(ctx, meta)
	return resp.Content, err
}

// malformed records a call whose output could not be used.
func (c *Chef) malformed(ctx context.Context, op string, err error) {
	c.logger.Warn("ai response unusable", "operation", op, "error", fmt.Errorf("%w: %v", ErrGatewayUnavailable, err))
	c.record(ctx, shared.CallMeta{Operation: op, Outcome: shared.OutcomeFallback})
}

func (c *Chef) record(ctx context.Context, meta shared.CallMeta) {
	if c.recorder != nil {
		c.recorder.RecordCall(context.WithoutCancel(ctx), meta)
	}
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := prompts.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}

// stripFences removes a markdown code fence around a JSON answer.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
