package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/legal-bench/backend/internal/models"
	"github.com/legal-bench/backend/internal/provider"
)

// Event is the tagged union emitted while generating one question: any number
// of Chunk events followed by exactly one terminal Parsed or Err event.
type Event struct {
	Chunk  string
	Parsed *models.GeneratedQuestion
	Err    string
}

// EventFunc receives per-slot progress during a batch.
type EventFunc func(slot int, ev Event)

// Generator drives streaming question generation against a completion provider.
type Generator struct {
	provider provider.Provider
	modelIDs map[string]string
}

func New(p provider.Provider, modelIDs map[string]string) *Generator {
	return &Generator{provider: p, modelIDs: modelIDs}
}

const generationTemperature = 0.8

// GenerateOne streams one question generation. Every provider fragment is
// emitted as a Chunk while being buffered; when the stream ends the buffer is
// parsed and the result emitted as the single terminal event. The channel is
// closed after the terminal event. No retries happen at this layer.
func (g *Generator) GenerateOne(ctx context.Context, topic, modelName string, ref *models.ReferenceSet) <-chan Event {
	ch := make(chan Event)
	go func() {
		defer close(ch)

		modelID, ok := g.modelIDs[modelName]
		if !ok {
			ch <- Event{Err: fmt.Sprintf("unknown model %q", modelName)}
			return
		}

		messages := []provider.Message{
			{Role: provider.RoleSystem, Content: GenerationSystemPrompt},
			{Role: provider.RoleUser, Content: BuildGenerationPrompt(topic, ref)},
		}

		stream, err := g.provider.Stream(ctx, modelID, messages, provider.Options{Temperature: generationTemperature})
		if err != nil {
			ch <- Event{Err: "API Error: " + err.Error()}
			return
		}
		defer stream.Close()

		var buf strings.Builder
		for {
			frag, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				ch <- Event{Err: "API Error: " + err.Error()}
				return
			}
			buf.WriteString(frag)
			ch <- Event{Chunk: frag}
		}

		q, err := ParseQuestion(buf.String())
		if err != nil {
			var perr *ParseError
			if errors.As(err, &perr) {
				log.Printf("generation parse failed: %s (raw: %.200s)", perr.Msg, perr.Snippet)
			}
			ch <- Event{Err: err.Error()}
			return
		}

		q.Topic = topic
		q.GeneratedBy = modelName
		ch <- Event{Parsed: q}
	}()
	return ch
}

// GenerateBatch runs quantity generation slots strictly in sequence and
// returns the successfully parsed questions in slot order. A slot that errors
// is omitted, so the result may be shorter than quantity. onEvent, when
// non-nil, observes every event of every slot.
func (g *Generator) GenerateBatch(ctx context.Context, topic, modelName string, quantity int, ref *models.ReferenceSet, onEvent EventFunc) []*models.GeneratedQuestion {
	var collected []*models.GeneratedQuestion

	for slot := 0; slot < quantity; slot++ {
		for ev := range g.GenerateOne(ctx, topic, modelName, ref) {
			if onEvent != nil {
				onEvent(slot, ev)
			}
			if ev.Parsed != nil {
				collected = append(collected, ev.Parsed)
			}
			if ev.Err != "" {
				log.Printf("generation slot %d/%d failed: %s", slot+1, quantity, ev.Err)
			}
		}
	}

	log.Printf("generation batch done: %d/%d questions", len(collected), quantity)
	return collected
}
