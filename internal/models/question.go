package models

import "time"

// AnswerLetters are the valid correct-answer labels.
var AnswerLetters = []string{"A", "B", "C", "D"}

func IsAnswerLetter(s string) bool {
	return s == "A" || s == "B" || s == "C" || s == "D"
}

// Question is a persisted, approved exam question. ID and CreatedAt are
// assigned by the store at approval time; the record is immutable after that.
type Question struct {
	ID            int       `json:"id"`
	Question      string    `json:"question"`
	Options       []string  `json:"options"`
	CorrectAnswer string    `json:"correct_answer"`
	Reasoning     string    `json:"reasoning"`
	Topic         string    `json:"topic"`
	GeneratedBy   string    `json:"generated_by"`
	CreatedAt     time.Time `json:"created_at"`
}

// GeneratedQuestion is a candidate question held by the review workflow.
// It becomes a Question when approved and is discarded on skip.
type GeneratedQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Reasoning     string   `json:"reasoning"`
	Topic         string   `json:"topic"`
	GeneratedBy   string   `json:"generated_by"`
}

// ReasoningText is the display form of the reasoning trace. The stored value
// stays empty when the model supplied none; defaulting happens only here.
func (q *GeneratedQuestion) ReasoningText() string {
	if q.Reasoning == "" {
		return "No reasoning provided"
	}
	return q.Reasoning
}
