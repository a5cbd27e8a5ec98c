// Package llm wraps the chat completion providers the assistant can plan with.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrEmptyResponse = errors.New("llm: empty completion")
	ErrNotConfigured = errors.New("llm: provider is not configured")
)

const (
	temperature = 0.1
	maxTokens   = 700
)

// Completer returns the text completion for one system/user exchange.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
	Model() string
}

type Config struct {
	Provider string // openai | gemini
	APIKey   string
	Model    string
	BaseURL  string
	Timeout  time.Duration
}

// New builds the Completer for cfg.Provider.
func New(ctx context.Context, cfg *Config) (Completer, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNotConfigured
	}

	switch strings.ToLower(cfg.Provider) {
	case "", "openai", "xai", "grok":
		return NewOpenAI(cfg)
	case "gemini", "google":
		return NewGemini(ctx, cfg)
	default:
		return nil, fmt.Errorf("llm: unknown provider %q", cfg.Provider)
	}
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
