package review

import (
	"context"
	"sync"

	"github.com/legal-bench/backend/internal/generator"
	"github.com/legal-bench/backend/internal/models"
	"github.com/legal-bench/backend/internal/store"
)

// Service owns the session state of the generation/review pipeline: the
// workflow machine and the optional reference set. All mutations go through
// the workflow transitions.
type Service struct {
	mu        sync.Mutex
	wf        *Workflow
	generator *generator.Generator
	analyzer  *generator.Analyzer
	store     store.Store
	reference *models.ReferenceSet
}

func NewService(gen *generator.Generator, an *generator.Analyzer, st store.Store) *Service {
	return &Service{
		wf:        New(),
		generator: gen,
		analyzer:  an,
		store:     st,
	}
}

// StartBatch runs one generation batch and hands the collected questions to
// the review workflow. Returns the collected count; ErrNoQuestions when every
// slot failed. The workflow lock is released while the provider streams, so
// snapshot reads stay responsive; competing transitions are rejected by the
// generating phase.
func (s *Service) StartBatch(ctx context.Context, topic, modelName string, quantity int, onEvent generator.EventFunc) (int, error) {
	s.mu.Lock()
	if err := s.wf.Start(); err != nil {
		s.mu.Unlock()
		return 0, err
	}
	// Snapshot the reference set: the generator reads it outside the lock,
	// and a concurrent answer correction mutates the stored one in place.
	ref := s.reference.Clone()
	s.mu.Unlock()

	items := s.generator.GenerateBatch(ctx, topic, modelName, quantity, ref, onEvent)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.wf.FinishGeneration(items); err != nil {
		return len(items), err
	}
	return len(items), nil
}

func (s *Service) Approve() (*models.Question, models.ReviewSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	saved, err := s.wf.Approve(s.store)
	return saved, s.wf.Snapshot(), err
}

func (s *Service) Skip() (models.ReviewSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.wf.Skip()
	return s.wf.Snapshot(), err
}

func (s *Service) Back() models.ReviewSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wf.Back()
	return s.wf.Snapshot()
}

func (s *Service) Reset() models.ReviewSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wf.Reset()
	return s.wf.Snapshot()
}

func (s *Service) Snapshot() models.ReviewSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wf.Snapshot()
}

// AnalyzeReference extracts reference MCQs from pasted text. A non-empty
// result becomes the session reference set; a count of zero is terminal and
// leaves any previous set untouched.
func (s *Service) AnalyzeReference(ctx context.Context, text, modelName string) *models.ReferenceSet {
	set := s.analyzer.Analyze(ctx, text, modelName)
	if set.Count > 0 {
		s.mu.Lock()
		s.reference = set
		s.mu.Unlock()
		// Callers marshal the result outside the lock; hand them a copy so a
		// concurrent correction cannot touch it.
		return set.Clone()
	}
	return set
}

// ApplyReferenceAnswers writes user-supplied answers onto incomplete entries.
func (s *Service) ApplyReferenceAnswers(answers []models.ReferenceAnswer) (*models.ReferenceSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reference == nil {
		return nil, &StateError{Msg: "no reference set loaded"}
	}
	for _, a := range answers {
		if err := s.reference.Correct(a.Index, a.Answer); err != nil {
			return nil, err
		}
	}
	return s.reference.Clone(), nil
}

func (s *Service) ClearReference() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reference = nil
}

func (s *Service) Reference() *models.ReferenceSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reference.Clone()
}
