// Package llm wraps the text generation providers behind one interface.
package llm

import (
	"context"
	"errors"

	"family-meal-planner/internal/shared"
)

// ErrDisabled is returned by the generator used when no provider is configured.
var ErrDisabled = errors.New("ai provider disabled")

// ContentResponse contains the generated text and metadata like token usage.
type ContentResponse struct {
	Content string
	Usage   shared.TokenUsage
}

// TextGenerator is an interface for generating text from a prompt.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string, opts ...Option) (ContentResponse, error)
}

// Closer is an interface for closing resources.
type Closer interface {
	Close() error
}

// Role of a prior chat turn.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Message is one earlier turn of a conversation.
type Message struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Request collects the per-call settings of a generation.
type Request struct {
	System      string
	JSON        bool
	Temperature *float32
	History     []Message
}

// Option customizes a single GenerateContent call.
type Option func(*Request)

// WithSystem sets the system instruction.
func WithSystem(instruction string) Option {
	return func(r *Request) { r.System = instruction }
}

// WithJSON asks the provider for a JSON object response.
func WithJSON() Option {
	return func(r *Request) { r.JSON = true }
}

// WithTemperature overrides the sampling temperature.
func WithTemperature(t float32) Option {
	return func(r *Request) { r.Temperature = &t }
}

// WithHistory prepends earlier turns of a conversation.
func WithHistory(history []Message) Option {
	return func(r *Request) { r.History = history }
}

// NewRequest applies opts to an empty request.
func NewRequest(opts ...Option) Request {
	var r Request
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

type disabled struct{}

// Disabled returns a generator that always fails with ErrDisabled.
func Disabled() TextGenerator { return disabled{} }

func (disabled) GenerateContent(context.Context, string, ...Option) (ContentResponse, error) {
	return ContentResponse{}, ErrDisabled
}
