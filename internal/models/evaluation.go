package models

import "time"

// Selected values outside A-D.
const (
	SelectedUnknown = "?"
	SelectedError   = "ERROR"
)

// EvaluationResult records one (question, model) evaluation. Append-only;
// Error is set when the provider call itself failed.
type EvaluationResult struct {
	QuestionID int       `json:"question_id"`
	Model      string    `json:"model"`
	Selected   string    `json:"selected"`
	Correct    bool      `json:"correct"`
	Timestamp  time.Time `json:"timestamp"`
	Error      string    `json:"error,omitempty"`
}

// LeaderboardEntry is one row of the ranked per-model accuracy summary.
type LeaderboardEntry struct {
	Rank     int     `json:"rank"`
	Model    string  `json:"model"`
	Correct  int     `json:"correct"`
	Total    int     `json:"total"`
	Accuracy float64 `json:"accuracy"`
}
