package evaluation

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/legal-bench/backend/internal/models"
	"github.com/legal-bench/backend/internal/store"
)

// ErrNoQuestions marks an evaluation request with nothing to evaluate.
var ErrNoQuestions = errors.New("no approved questions to evaluate")

type Service struct {
	evaluator *Evaluator
	store     store.Store
}

func NewService(e *Evaluator, st store.Store) *Service {
	return &Service{evaluator: e, store: st}
}

// Run evaluates every persisted question (optionally filtered by topic)
// against the given models and appends the batch to the historical results.
// Results are persisted once, after the whole batch; a crash mid-batch loses
// only the in-progress batch.
func (s *Service) Run(ctx context.Context, modelNames []string, topic string) ([]models.EvaluationResult, error) {
	questions, err := s.store.LoadQuestions()
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	if topic != "" {
		filtered := questions[:0]
		for _, q := range questions {
			if q.Topic == topic {
				filtered = append(filtered, q)
			}
		}
		questions = filtered
	}
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	batch := s.evaluator.EvaluateBatch(ctx, questions, modelNames, func(done, total int) {
		log.Printf("evaluation progress: %d/%d", done, total)
	})

	all, err := s.store.LoadResults()
	if err != nil {
		return nil, fmt.Errorf("load results: %w", err)
	}
	all = append(all, batch...)
	if err := s.store.SaveResults(all); err != nil {
		return nil, fmt.Errorf("save results: %w", err)
	}
	return batch, nil
}

func (s *Service) Leaderboard() ([]models.LeaderboardEntry, error) {
	results, err := s.store.LoadResults()
	if err != nil {
		return nil, fmt.Errorf("load results: %w", err)
	}
	return ComputeLeaderboard(results), nil
}

func (s *Service) Results() ([]models.EvaluationResult, error) {
	return s.store.LoadResults()
}

func (s *Service) Questions(topic string) ([]models.Question, error) {
	questions, err := s.store.LoadQuestions()
	if err != nil {
		return nil, err
	}
	if topic == "" {
		return questions, nil
	}
	filtered := []models.Question{}
	for _, q := range questions {
		if q.Topic == topic {
			filtered = append(filtered, q)
		}
	}
	return filtered, nil
}
