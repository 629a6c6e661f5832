package generator

import (
	"context"
	"log"

	"github.com/legal-bench/backend/internal/models"
	"github.com/legal-bench/backend/internal/provider"
)

const (
	extractionTemperature = 0.3
	noMCQsMessage         = "No multiple-choice questions detected in the provided text."
)

// Analyzer extracts reference MCQs from pasted text through the provider.
type Analyzer struct {
	provider provider.Provider
	modelIDs map[string]string
}

func NewAnalyzer(p provider.Provider, modelIDs map[string]string) *Analyzer {
	return &Analyzer{provider: p, modelIDs: modelIDs}
}

// Analyze runs the extraction prompt over text. Provider and parse failures
// come back as a ReferenceSet with Count 0 and Error set; this never returns
// an error. Count 0 is terminal for the caller either way. Filling in missing
// answers is the caller's protocol, via ReferenceSet.Incomplete and Correct.
func (a *Analyzer) Analyze(ctx context.Context, text, modelName string) *models.ReferenceSet {
	modelID, ok := a.modelIDs[modelName]
	if !ok {
		return failedSet("unknown model " + modelName)
	}

	messages := []provider.Message{
		{Role: provider.RoleUser, Content: BuildExtractionPrompt(text)},
	}
	resp, err := a.provider.Complete(ctx, modelID, messages, provider.Options{Temperature: extractionTemperature})
	if err != nil {
		log.Printf("reference extraction failed: %v", err)
		return failedSet("API Error: " + err.Error())
	}

	var set models.ReferenceSet
	if perr := ExtractJSON(resp, &set); perr != nil {
		log.Printf("reference extraction parse failed: %s (raw: %.200s)", perr.Msg, perr.Snippet)
		return failedSet(perr.Error())
	}

	// Keep the count invariant even when the model miscounts.
	set.Count = len(set.Questions)
	if set.Count == 0 && set.Error == "" {
		set.Error = noMCQsMessage
	}
	return &set
}

func failedSet(msg string) *models.ReferenceSet {
	return &models.ReferenceSet{Count: 0, Questions: nil, Error: msg}
}
