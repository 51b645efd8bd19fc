package llm

import (
	"context"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
	System      string // System prompt
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func WithSystem(prompt string) Option {
	return func(o *Options) {
		o.System = prompt
	}
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}

// MaxContextPairs is the number of user/assistant turn pairs kept when a
// conversation is truncated before being sent to the provider.
const MaxContextPairs = 2

// PrepareContext bounds the history sent to the provider. When the list is
// longer than maxContext*2+1 entries, only the most recent maxContext pairs
// plus the newest message survive, oldest-first. Shorter lists pass through
// unchanged.
func PrepareContext(messages []Message, maxContext int) []Message {
	window := maxContext*2 + 1
	if len(messages) <= window {
		return messages
	}
	return messages[len(messages)-window:]
}
