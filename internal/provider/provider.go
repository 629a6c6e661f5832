package provider

import (
	"context"
	"fmt"
	"log"
	"os"
)

// Message roles on the chat completion wire.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

type Message struct {
	Role    string
	Content string
}

type Options struct {
	Temperature float32
	MaxTokens   int
}

// Stream yields incremental text fragments from a streaming completion.
// Recv returns io.EOF when the stream is exhausted.
type Stream interface {
	Recv() (string, error)
	Close() error
}

// Provider is the interface every completion backend satisfies.
type Provider interface {
	// Complete issues a synchronous completion and returns the full text.
	Complete(ctx context.Context, model string, messages []Message, opts Options) (string, error)
	// Stream opens a streaming completion.
	Stream(ctx context.Context, model string, messages []Message, opts Options) (Stream, error)
}

// FromEnv selects the provider backend: "mock" for local dev,
// "anthropic" for the direct Anthropic API, OpenRouter otherwise.
func FromEnv() (Provider, error) {
	switch os.Getenv("PROVIDER") {
	case "mock":
		log.Println("Provider: mock data")
		return NewMock(), nil
	case "anthropic":
		key := os.Getenv("ANTHROPIC_API_KEY")
		if key == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY not set")
		}
		log.Println("Provider: Anthropic API")
		return NewAnthropic(key), nil
	default:
		key := os.Getenv("OPENROUTER_API_KEY")
		if key == "" {
			return nil, fmt.Errorf("OPENROUTER_API_KEY not set")
		}
		log.Println("Provider: OpenRouter")
		return NewOpenRouter(key), nil
	}
}
