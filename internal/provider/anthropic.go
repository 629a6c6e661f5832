package provider

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/param"
	"github.com/anthropics/anthropic-sdk-go/packages/ssestream"
)

// Anthropic talks directly to the Anthropic API instead of OpenRouter.
// Only anthropic/* models from the configured map are reachable through it.
type Anthropic struct {
	client *anthropic.Client
}

func NewAnthropic(apiKey string) *Anthropic {
	client := anthropic.NewClient(
		option.WithAPIKey(apiKey),
	)
	return &Anthropic{client: &client}
}

func (p *Anthropic) Complete(ctx context.Context, model string, messages []Message, opts Options) (string, error) {
	params, err := messageParams(model, messages, opts)
	if err != nil {
		return "", err
	}

	message, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic completion: %w", err)
	}

	for _, block := range message.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("anthropic completion: no text content in response")
}

func (p *Anthropic) Stream(ctx context.Context, model string, messages []Message, opts Options) (Stream, error) {
	params, err := messageParams(model, messages, opts)
	if err != nil {
		return nil, err
	}
	return &anthropicStream{stream: p.client.Messages.NewStreaming(ctx, params)}, nil
}

func messageParams(model string, messages []Message, opts Options) (anthropic.MessageNewParams, error) {
	// Model IDs arrive in OpenRouter form ("anthropic/claude-...").
	id, ok := strings.CutPrefix(model, "anthropic/")
	if !ok {
		return anthropic.MessageNewParams{}, fmt.Errorf("model %q is not served by the Anthropic provider", model)
	}

	maxTokens := opts.MaxTokens
	if maxTokens == 0 {
		maxTokens = 8192
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(id),
		MaxTokens:   int64(maxTokens),
		Temperature: param.NewOpt(float64(opts.Temperature)),
	}
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			params.System = append(params.System, anthropic.TextBlockParam{Text: m.Content})
		default:
			params.Messages = append(params.Messages, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		}
	}
	return params, nil
}

type anthropicStream struct {
	stream *ssestream.Stream[anthropic.MessageStreamEventUnion]
}

func (s *anthropicStream) Recv() (string, error) {
	for s.stream.Next() {
		event := s.stream.Current()
		switch ev := event.AsAny().(type) {
		case anthropic.ContentBlockDeltaEvent:
			switch delta := ev.Delta.AsAny().(type) {
			case anthropic.TextDelta:
				if delta.Text != "" {
					return delta.Text, nil
				}
			}
		}
	}
	if err := s.stream.Err(); err != nil {
		return "", fmt.Errorf("anthropic stream: %w", err)
	}
	return "", io.EOF
}

func (s *anthropicStream) Close() error {
	return s.stream.Close()
}
