package llm

import (
	"context"
	"fmt"

	"family-meal-planner/internal/config"
)

// New builds the generator selected by cfg.AIProvider. The returned Closer
// must be closed on shutdown.
func New(ctx context.Context, cfg *config.Config) (TextGenerator, Closer, error) {
	switch cfg.AIProvider {
	case config.ProviderGemini:
		c, err := NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, nil, err
		}
		return c, c, nil
	case config.ProviderGroq:
		return NewGroqClient(cfg.GroqAPIKey, cfg.GroqModel), nopCloser{}, nil
	case config.ProviderNone:
		return Disabled(), nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("unknown ai provider %q", cfg.AIProvider)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
