package llm

import (
	"context"
	"fmt"

	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/types"
)

// Client is the narrow interface every pipeline stage talks to.
// History carries prior conversational turns; non-chat callers pass nil.
type Client interface {
	// Generate produces a text completion for the prompt using the given model tier
	Generate(ctx context.Context, prompt string, history []types.ChatMessage, tier ModelTier) (string, error)
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates an LLM client from configuration. A configured proxy URL
// takes precedence over a direct provider API key, matching the deployment
// preference of keeping keys out of the calling environment.
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	if config.ProxyURL != "" {
		return NewProxyClient(config.ProxyURL), nil
	}

	switch config.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, config, apiKey)
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", config.Provider)
	}
}
