package llm

import (
	"context"
	"time"
)

// Chat roles shared by all providers.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a chat exchange.
type Message struct {
	Role    string
	Content string
}

// ChatOptions tune a single completion call.
type ChatOptions struct {
	Temperature float64
	MaxTokens   int
}

// Provider defines the interface for chat-completion backends.
// An empty completion with a nil error is valid output and distinct
// from failure; callers that treat empty answers as a problem must
// decide that themselves.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Chat sends the messages and returns the completion text
	Chat(ctx context.Context, messages []Message, opts ChatOptions) (string, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (OpenAI-compatible servers, Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout time.Duration

	// ProxyURL for outbound requests; empty means environment settings
	ProxyURL string
}
