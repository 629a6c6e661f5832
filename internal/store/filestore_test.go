package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/legal-bench/backend/internal/models"
)

func tempStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	dir := t.TempDir()
	return NewFileStore(filepath.Join(dir, "questions.json"), filepath.Join(dir, "eval_results.json")), dir
}

func generated(text string) models.GeneratedQuestion {
	return models.GeneratedQuestion{
		Question:      text,
		Options:       []string{"A) one", "B) two", "C) three", "D) four"},
		CorrectAnswer: "A",
		Reasoning:     "A is correct.",
		Topic:         "Evidence",
		GeneratedBy:   "Test Model",
	}
}

func TestFileStore_LoadQuestionsMissingFile(t *testing.T) {
	s, _ := tempStore(t)

	questions, err := s.LoadQuestions()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(questions) != 0 {
		t.Errorf("expected empty slice, got %d questions", len(questions))
	}
}

func TestFileStore_AppendAssignsSequentialIDs(t *testing.T) {
	s, _ := tempStore(t)

	first, err := s.AppendQuestion(generated("first"))
	if err != nil {
		t.Fatalf("append failed: %v", err)
	}
	second, err := s.AppendQuestion(generated("second"))
	if err != nil {
		t.Fatalf("append failed: %v", err)
	}

	if first.ID != 1 || second.ID != 2 {
		t.Errorf("expected IDs 1 and 2, got %d and %d", first.ID, second.ID)
	}
	if first.CreatedAt.IsZero() {
		t.Error("created_at not stamped")
	}

	questions, err := s.LoadQuestions()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
	if questions[0].Question != "first" || questions[1].Question != "second" {
		t.Error("questions out of order")
	}
}

func TestFileStore_IDsSurviveReopen(t *testing.T) {
	s, dir := tempStore(t)

	if _, err := s.AppendQuestion(generated("first")); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	reopened := NewFileStore(filepath.Join(dir, "questions.json"), filepath.Join(dir, "eval_results.json"))
	saved, err := reopened.AppendQuestion(generated("second"))
	if err != nil {
		t.Fatalf("append after reopen failed: %v", err)
	}
	if saved.ID != 2 {
		t.Errorf("expected ID 2 after reopen, got %d", saved.ID)
	}
}

func TestFileStore_ResultsRoundTrip(t *testing.T) {
	s, _ := tempStore(t)

	empty, err := s.LoadResults()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected no results, got %d", len(empty))
	}

	want := []models.EvaluationResult{
		{QuestionID: 1, Model: "Model One", Selected: "A", Correct: true, Timestamp: time.Now().UTC().Truncate(time.Second)},
		{QuestionID: 1, Model: "Model Two", Selected: models.SelectedError, Error: "timeout", Timestamp: time.Now().UTC().Truncate(time.Second)},
	}
	if err := s.SaveResults(want); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := s.LoadResults()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].Model != "Model One" || !got[0].Correct {
		t.Errorf("unexpected first result: %+v", got[0])
	}
	if got[1].Selected != models.SelectedError || got[1].Error != "timeout" {
		t.Errorf("unexpected second result: %+v", got[1])
	}
}

func TestFileStore_SaveResultsReplacesWholesale(t *testing.T) {
	s, _ := tempStore(t)

	if err := s.SaveResults([]models.EvaluationResult{{QuestionID: 1, Model: "Old", Selected: "A"}}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := s.SaveResults([]models.EvaluationResult{{QuestionID: 2, Model: "New", Selected: "B"}}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := s.LoadResults()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(got) != 1 || got[0].Model != "New" {
		t.Errorf("save should replace prior results, got %+v", got)
	}
}

func TestFileStore_WritesIndentedJSON(t *testing.T) {
	s, dir := tempStore(t)

	if _, err := s.AppendQuestion(generated("first")); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "questions.json"))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !strings.Contains(string(data), "\n  ") {
		t.Error("questions file should be indented")
	}

	// No stray temp files left behind.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir failed: %v", err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp-") {
			t.Errorf("leftover temp file %s", e.Name())
		}
	}
}
