package review

import (
	"fmt"
	"testing"
	"time"

	"github.com/legal-bench/backend/internal/models"
)

// memStore is an in-memory store for workflow tests.
type memStore struct {
	questions []models.Question
	results   []models.EvaluationResult
	appendErr error
}

func (s *memStore) LoadQuestions() ([]models.Question, error) {
	return s.questions, nil
}

func (s *memStore) AppendQuestion(q models.GeneratedQuestion) (*models.Question, error) {
	if s.appendErr != nil {
		return nil, s.appendErr
	}
	maxID := 0
	for _, existing := range s.questions {
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}
	saved := models.Question{
		ID:            maxID + 1,
		Question:      q.Question,
		Options:       q.Options,
		CorrectAnswer: q.CorrectAnswer,
		Reasoning:     q.Reasoning,
		Topic:         q.Topic,
		GeneratedBy:   q.GeneratedBy,
		CreatedAt:     time.Now().UTC(),
	}
	s.questions = append(s.questions, saved)
	return &saved, nil
}

func (s *memStore) LoadResults() ([]models.EvaluationResult, error) {
	return s.results, nil
}

func (s *memStore) SaveResults(results []models.EvaluationResult) error {
	s.results = results
	return nil
}

func batchOf(n int) []*models.GeneratedQuestion {
	items := make([]*models.GeneratedQuestion, n)
	for i := range items {
		items[i] = &models.GeneratedQuestion{
			Question:      fmt.Sprintf("question %d", i+1),
			Options:       []string{"A) one", "B) two", "C) three", "D) four"},
			CorrectAnswer: "A",
			Topic:         "Evidence",
			GeneratedBy:   "Test Model",
		}
	}
	return items
}

func startReviewing(t *testing.T, w *Workflow, n int) {
	t.Helper()
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := w.FinishGeneration(batchOf(n)); err != nil {
		t.Fatalf("FinishGeneration failed: %v", err)
	}
}

func TestWorkflow_ApproveApproveSkip(t *testing.T) {
	w := New()
	st := &memStore{}
	startReviewing(t, w, 3)

	if w.Phase() != PhaseReviewing {
		t.Fatalf("expected reviewing, got %s", w.Phase())
	}

	if _, err := w.Approve(st); err != nil {
		t.Fatalf("approve 1 failed: %v", err)
	}
	if _, err := w.Approve(st); err != nil {
		t.Fatalf("approve 2 failed: %v", err)
	}
	if err := w.Skip(); err != nil {
		t.Fatalf("skip failed: %v", err)
	}

	snap := w.Snapshot()
	if snap.Phase != string(PhaseComplete) {
		t.Errorf("expected complete, got %s", snap.Phase)
	}
	if snap.ApprovedCount != 2 || snap.SkippedCount != 1 {
		t.Errorf("expected approved=2 skipped=1, got %d/%d", snap.ApprovedCount, snap.SkippedCount)
	}

	if len(st.questions) != 2 {
		t.Fatalf("expected 2 stored questions, got %d", len(st.questions))
	}
	for i, q := range st.questions {
		if q.ID != i+1 {
			t.Errorf("question %d: expected ID %d, got %d", i, i+1, q.ID)
		}
	}
	if st.questions[0].Question != "question 1" || st.questions[1].Question != "question 2" {
		t.Error("stored questions out of order")
	}
}

func TestWorkflow_BackThenReapproveDoesNotDuplicate(t *testing.T) {
	w := New()
	st := &memStore{}
	startReviewing(t, w, 2)

	saved, err := w.Approve(st)
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if saved == nil || saved.ID != 1 {
		t.Fatal("first approve should persist with ID 1")
	}

	w.Back()
	cur, ok := w.Current()
	if !ok || cur.Question != "question 1" {
		t.Fatal("back should return the cursor to the first item")
	}

	saved, err = w.Approve(st)
	if err != nil {
		t.Fatalf("re-approve failed: %v", err)
	}
	if saved != nil {
		t.Error("re-approving a persisted item should not write again")
	}
	if len(st.questions) != 1 {
		t.Errorf("expected 1 stored question, got %d", len(st.questions))
	}

	snap := w.Snapshot()
	if snap.ApprovedCount != 1 {
		t.Errorf("approved count should stay 1, got %d", snap.ApprovedCount)
	}
	if snap.Cursor != 1 {
		t.Errorf("cursor should advance to 1, got %d", snap.Cursor)
	}
}

func TestWorkflow_BackNoopAtStart(t *testing.T) {
	w := New()
	startReviewing(t, w, 2)

	w.Back()
	snap := w.Snapshot()
	if snap.Cursor != 0 {
		t.Errorf("back at cursor 0 should be a no-op, got cursor %d", snap.Cursor)
	}
}

func TestWorkflow_EmptyBatchReturnsToIdle(t *testing.T) {
	w := New()
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	err := w.FinishGeneration(nil)
	if err != ErrNoQuestions {
		t.Fatalf("expected ErrNoQuestions, got %v", err)
	}
	if w.Phase() != PhaseIdle {
		t.Errorf("expected idle, got %s", w.Phase())
	}
}

func TestWorkflow_StartRejectedWhileGenerating(t *testing.T) {
	w := New()
	if err := w.Start(); err != nil {
		t.Fatalf("first start failed: %v", err)
	}
	err := w.Start()
	if _, ok := err.(*StateError); !ok {
		t.Fatalf("expected StateError, got %v", err)
	}
}

func TestWorkflow_ReviewTransitionsOutsideReviewing(t *testing.T) {
	w := New()
	st := &memStore{}

	if _, err := w.Approve(st); err == nil {
		t.Error("approve while idle should fail")
	}
	if err := w.Skip(); err == nil {
		t.Error("skip while idle should fail")
	}
	if _, ok := w.Current(); ok {
		t.Error("no current item while idle")
	}
}

func TestWorkflow_AppendErrorLeavesCursor(t *testing.T) {
	w := New()
	st := &memStore{appendErr: fmt.Errorf("disk full")}
	startReviewing(t, w, 2)

	if _, err := w.Approve(st); err == nil {
		t.Fatal("expected store error")
	}
	snap := w.Snapshot()
	if snap.Cursor != 0 || snap.ApprovedCount != 0 {
		t.Errorf("failed approve should not advance: cursor=%d approved=%d", snap.Cursor, snap.ApprovedCount)
	}
	if w.Phase() != PhaseReviewing {
		t.Errorf("still reviewing after failed approve, got %s", w.Phase())
	}
}

func TestWorkflow_ResetClearsEverything(t *testing.T) {
	w := New()
	st := &memStore{}
	startReviewing(t, w, 3)

	if _, err := w.Approve(st); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	w.Reset()

	snap := w.Snapshot()
	if snap.Phase != string(PhaseIdle) || snap.Total != 0 || snap.ApprovedCount != 0 {
		t.Errorf("reset should return to an empty idle machine: %+v", snap)
	}
}

func TestWorkflow_SnapshotCarriesCurrentAndReasoning(t *testing.T) {
	w := New()
	startReviewing(t, w, 1)

	snap := w.Snapshot()
	if snap.Current == nil {
		t.Fatal("snapshot missing current item")
	}
	if snap.Reasoning != "No reasoning provided" {
		t.Errorf("expected reasoning fallback, got %q", snap.Reasoning)
	}
}
