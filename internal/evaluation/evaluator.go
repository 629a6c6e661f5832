package evaluation

import (
	"context"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/legal-bench/backend/internal/generator"
	"github.com/legal-bench/backend/internal/models"
	"github.com/legal-bench/backend/internal/provider"
)

const evaluationMaxTokens = 10

// Evaluator runs persisted questions against models, one pair at a time.
type Evaluator struct {
	provider provider.Provider
	modelIDs map[string]string
}

func NewEvaluator(p provider.Provider, modelIDs map[string]string) *Evaluator {
	return &Evaluator{provider: p, modelIDs: modelIDs}
}

// EvaluateOne asks one model one question at temperature 0 and records the
// answer. Provider failures become a result with Selected "ERROR"; this never
// returns an error.
func (e *Evaluator) EvaluateOne(ctx context.Context, q models.Question, modelName string) models.EvaluationResult {
	result := models.EvaluationResult{
		QuestionID: q.ID,
		Model:      modelName,
		Timestamp:  time.Now(),
	}

	modelID, ok := e.modelIDs[modelName]
	if !ok {
		result.Selected = models.SelectedError
		result.Error = "unknown model " + modelName
		return result
	}

	prompt := generator.BuildEvaluationPrompt(q.Question, q.Options)
	resp, err := e.provider.Complete(ctx, modelID, []provider.Message{
		{Role: provider.RoleUser, Content: prompt},
	}, provider.Options{Temperature: 0, MaxTokens: evaluationMaxTokens})
	if err != nil {
		result.Selected = models.SelectedError
		result.Error = err.Error()
		return result
	}

	result.Selected = ExtractAnswerLetter(resp)
	result.Correct = result.Selected == q.CorrectAnswer
	return result
}

// ExtractAnswerLetter pulls the chosen letter out of a model response: the
// first A-D character, else the first character of the trimmed upper-cased
// response, else "?".
func ExtractAnswerLetter(resp string) string {
	answer := strings.ToUpper(strings.TrimSpace(resp))
	for i := 0; i < len(answer); i++ {
		if answer[i] >= 'A' && answer[i] <= 'D' {
			return string(answer[i])
		}
	}
	if answer != "" {
		r, _ := utf8.DecodeRuneInString(answer)
		return string(r)
	}
	return models.SelectedUnknown
}

// ProgressFunc reports completed pairs out of the total.
type ProgressFunc func(done, total int)

// EvaluateBatch evaluates every (question, model) pair sequentially,
// questions outer, models inner. Every attempted pair yields a result, so
// the aggregate denominator matches the attempt count.
func (e *Evaluator) EvaluateBatch(ctx context.Context, questions []models.Question, modelNames []string, progress ProgressFunc) []models.EvaluationResult {
	total := len(questions) * len(modelNames)
	results := make([]models.EvaluationResult, 0, total)

	for _, q := range questions {
		for _, name := range modelNames {
			r := e.EvaluateOne(ctx, q, name)
			results = append(results, r)
			if r.Error != "" {
				log.Printf("evaluation question %d x %s failed: %s", q.ID, name, r.Error)
			}
			if progress != nil {
				progress(len(results), total)
			}
		}
	}
	return results
}
