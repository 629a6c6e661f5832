package review

import (
	"errors"

	"github.com/legal-bench/backend/internal/models"
	"github.com/legal-bench/backend/internal/store"
)

type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseGenerating Phase = "generating"
	PhaseReviewing  Phase = "reviewing"
	PhaseComplete   Phase = "complete"
)

// ErrNoQuestions marks a batch where every generation slot failed.
var ErrNoQuestions = errors.New("no questions were generated successfully")

// StateError reports a transition attempted from the wrong phase.
type StateError struct {
	Msg string
}

func (e *StateError) Error() string {
	return "invalid workflow state: " + e.Msg
}

// Workflow is the review state machine for one generation batch. Items are
// fixed once generation finishes; the cursor walks them forward under
// Approve/Skip and backward under Back. Approve is the only transition with
// an external side effect. Not safe for concurrent use; the owning service
// serializes access.
type Workflow struct {
	items     []*models.GeneratedQuestion
	cursor    int
	phase     Phase
	approved  int
	skipped   int
	persisted []bool
}

func New() *Workflow {
	return &Workflow{phase: PhaseIdle}
}

func (w *Workflow) Phase() Phase { return w.phase }

// Start clears any prior batch and enters the generating phase. Rejected
// while a generation is already in flight.
func (w *Workflow) Start() error {
	if w.phase == PhaseGenerating {
		return &StateError{Msg: "a generation batch is already running"}
	}
	w.clear()
	w.phase = PhaseGenerating
	return nil
}

func (w *Workflow) clear() {
	w.items = nil
	w.cursor = 0
	w.approved = 0
	w.skipped = 0
	w.persisted = nil
	w.phase = PhaseIdle
}

// FinishGeneration installs the collected batch. An empty batch returns the
// machine to idle and surfaces ErrNoQuestions.
func (w *Workflow) FinishGeneration(items []*models.GeneratedQuestion) error {
	if w.phase != PhaseGenerating {
		return &StateError{Msg: "finish outside generating phase"}
	}
	if len(items) == 0 {
		w.phase = PhaseIdle
		return ErrNoQuestions
	}
	w.items = items
	w.cursor = 0
	w.persisted = make([]bool, len(items))
	w.phase = PhaseReviewing
	return nil
}

// ensureReviewing guards every review transition. Reviewing with no items is
// an invalid state reached only through caller error; it self-corrects to
// idle instead of propagating.
func (w *Workflow) ensureReviewing() error {
	if w.phase != PhaseReviewing {
		return &StateError{Msg: "not in reviewing phase"}
	}
	if len(w.items) == 0 {
		w.clear()
		return &StateError{Msg: "reviewing with no items"}
	}
	return nil
}

// Approve persists the current item and advances. Re-approving an item that
// an earlier forward pass already persisted advances without writing a
// duplicate.
func (w *Workflow) Approve(st store.Store) (*models.Question, error) {
	if err := w.ensureReviewing(); err != nil {
		return nil, err
	}
	if w.persisted[w.cursor] {
		w.advance()
		return nil, nil
	}

	saved, err := st.AppendQuestion(*w.items[w.cursor])
	if err != nil {
		return nil, err
	}
	w.persisted[w.cursor] = true
	w.approved++
	w.advance()
	return saved, nil
}

// Skip discards the current item and advances.
func (w *Workflow) Skip() error {
	if err := w.ensureReviewing(); err != nil {
		return err
	}
	w.skipped++
	w.advance()
	return nil
}

func (w *Workflow) advance() {
	w.cursor++
	if w.cursor >= len(w.items) {
		w.phase = PhaseComplete
	}
}

// Back moves the cursor to the previous item; no-op at the start of the
// batch or outside reviewing. Counters are untouched.
func (w *Workflow) Back() {
	if w.phase == PhaseReviewing && w.cursor > 0 {
		w.cursor--
	}
}

// Reset returns to idle, discarding any unreviewed items.
func (w *Workflow) Reset() {
	w.clear()
}

// Current returns the item under the cursor during review.
func (w *Workflow) Current() (*models.GeneratedQuestion, bool) {
	if w.phase != PhaseReviewing || w.cursor >= len(w.items) {
		return nil, false
	}
	return w.items[w.cursor], true
}

func (w *Workflow) Snapshot() models.ReviewSnapshot {
	snap := models.ReviewSnapshot{
		Phase:         string(w.phase),
		Cursor:        w.cursor,
		Total:         len(w.items),
		ApprovedCount: w.approved,
		SkippedCount:  w.skipped,
	}
	if cur, ok := w.Current(); ok {
		snap.Current = cur
		snap.Reasoning = cur.ReasoningText()
	}
	return snap
}
