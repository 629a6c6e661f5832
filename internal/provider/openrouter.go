package provider

import (
	"context"
	"fmt"
	"math"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

const openRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouter talks to the OpenRouter chat-completion endpoint through the
// OpenAI wire protocol.
type OpenRouter struct {
	client *openai.Client
}

func NewOpenRouter(apiKey string) *OpenRouter {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = openRouterBaseURL
	cfg.HTTPClient = &http.Client{
		Transport: &attributionTransport{base: http.DefaultTransport},
	}
	return &OpenRouter{client: openai.NewClientWithConfig(cfg)}
}

// attributionTransport adds the app-attribution headers OpenRouter asks for.
type attributionTransport struct {
	base http.RoundTripper
}

func (t *attributionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("HTTP-Referer", "http://localhost:8080")
	req.Header.Set("X-Title", "Legal Benchmark Generator")
	return t.base.RoundTrip(req)
}

func (p *OpenRouter) Complete(ctx context.Context, model string, messages []Message, opts Options) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, chatRequest(model, messages, opts))
	if err != nil {
		return "", fmt.Errorf("openrouter completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openrouter completion: no choices in response")
	}
	return resp.Choices[0].Message.Content, nil
}

func (p *OpenRouter) Stream(ctx context.Context, model string, messages []Message, opts Options) (Stream, error) {
	req := chatRequest(model, messages, opts)
	req.Stream = true
	stream, err := p.client.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("openrouter stream: %w", err)
	}
	return &openRouterStream{stream: stream}, nil
}

func chatRequest(model string, messages []Message, opts Options) openai.ChatCompletionRequest {
	msgs := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}
	temp := opts.Temperature
	if temp == 0 {
		// go-openai drops a literal zero through omitempty, which would fall
		// back to the API default of 1.
		temp = math.SmallestNonzeroFloat32
	}
	return openai.ChatCompletionRequest{
		Model:       model,
		Messages:    msgs,
		Temperature: temp,
		MaxTokens:   opts.MaxTokens,
	}
}

type openRouterStream struct {
	stream *openai.ChatCompletionStream
}

func (s *openRouterStream) Recv() (string, error) {
	for {
		resp, err := s.stream.Recv()
		if err != nil {
			// io.EOF passes through untouched to mark end of stream.
			return "", err
		}
		if len(resp.Choices) == 0 {
			continue
		}
		if delta := resp.Choices[0].Delta.Content; delta != "" {
			return delta, nil
		}
	}
}

func (s *openRouterStream) Close() error {
	return s.stream.Close()
}
