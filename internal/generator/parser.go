package generator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/legal-bench/backend/internal/models"
)

// ParseError reports non-JSON or malformed model output. Snippet carries the
// head of the raw response for diagnostics.
type ParseError struct {
	Msg     string
	Snippet string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse JSON: %s", e.Msg)
}

const snippetLen = 200

// ExtractJSON strips optional markdown code fences from raw model output and
// unmarshals the remainder into v. All parse failures come back as a
// *ParseError; it never panics.
func ExtractJSON(raw string, v any) *ParseError {
	cleaned := stripCodeFences(raw)
	if err := json.Unmarshal([]byte(cleaned), v); err != nil {
		snippet := raw
		if len(snippet) > snippetLen {
			snippet = snippet[:snippetLen]
		}
		return &ParseError{Msg: err.Error(), Snippet: snippet}
	}
	return nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSpace(s)
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSpace(s)
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}

// ValidationError reports a structurally broken generated question.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

var optionLabels = []string{"A) ", "B) ", "C) ", "D) "}

// ParseQuestion extracts and validates one generated question from raw model
// output.
func ParseQuestion(raw string) (*models.GeneratedQuestion, error) {
	var q models.GeneratedQuestion
	if perr := ExtractJSON(raw, &q); perr != nil {
		return nil, perr
	}
	if err := validateQuestion(&q); err != nil {
		return nil, err
	}
	return &q, nil
}

func validateQuestion(q *models.GeneratedQuestion) error {
	var errs []string

	if q.Question == "" {
		errs = append(errs, "empty question text")
	}
	if len(q.Options) != 4 {
		errs = append(errs, fmt.Sprintf("expected 4 options, got %d", len(q.Options)))
	} else {
		for i, opt := range q.Options {
			if !strings.HasPrefix(opt, optionLabels[i]) {
				errs = append(errs, fmt.Sprintf("option %d missing label %q", i+1, strings.TrimSpace(optionLabels[i])))
			}
		}
	}
	if !models.IsAnswerLetter(q.CorrectAnswer) {
		errs = append(errs, fmt.Sprintf("invalid correct_answer %q", q.CorrectAnswer))
	} else if len(q.Options) == 4 {
		// The correct answer must match the label of exactly one option.
		matched := false
		for _, opt := range q.Options {
			if strings.HasPrefix(opt, q.CorrectAnswer+") ") {
				matched = true
			}
		}
		if !matched {
			errs = append(errs, fmt.Sprintf("correct_answer %q matches no option label", q.CorrectAnswer))
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}
