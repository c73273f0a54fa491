package llm

import (
	"context"
	"time"
)

// Provider identifiers form a closed set; unknown identifiers fail the
// factory immediately instead of silently defaulting.
const (
	ProviderOpenAI   = "openai"
	ProviderReserved = "reserved"
)

// Config for a completion backend.
type Config struct {
	Provider    string
	APIKey      string
	BaseURL     string        // default https://api.openai.com/v1
	Model       string        // e.g. "gpt-4o-mini"
	Temperature float32       // 0..2
	Timeout     time.Duration // per-call http timeout
}

// Options carries optional per-call overrides.
type Options struct {
	Model string
}

// Client is the capability the structuring engine depends on: send one text
// prompt, get one text completion. No conversation state.
type Client interface {
	GenerateText(ctx context.Context, prompt string, opts Options) (string, error)
}
