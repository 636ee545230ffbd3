package shared

import (
	"time"
)

// TokenUsage tracks the tokens consumed by a request.
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	Model            string
}

// Outcome of a gateway call as recorded in metrics.
const (
	OutcomeOK       = "ok"
	OutcomeFallback = "fallback"
)

// CallMeta holds operational metadata for one AI gateway call.
type CallMeta struct {
	Operation string
	Usage     TokenUsage
	Latency   time.Duration
	Outcome   string
}
