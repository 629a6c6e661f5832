package store

import (
	"log"
	"os"

	"github.com/legal-bench/backend/internal/config"
	"github.com/legal-bench/backend/internal/models"
)

// Store persists approved questions and evaluation results. Question IDs are
// assigned on append as max(existing)+1, starting at 1. SaveResults replaces
// the persisted collection wholesale, so callers load, extend, then save.
type Store interface {
	LoadQuestions() ([]models.Question, error)
	AppendQuestion(q models.GeneratedQuestion) (*models.Question, error)
	LoadResults() ([]models.EvaluationResult, error)
	SaveResults(results []models.EvaluationResult) error
}

// FromEnv picks the backend: Postgres when DATABASE_URL is set, flat JSON
// files otherwise.
func FromEnv() (Store, error) {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		log.Println("Store: postgres")
		return NewPostgres(dsn)
	}
	log.Printf("Store: flat files (%s, %s)", config.QuestionsFile(), config.ResultsFile())
	return NewFileStore(config.QuestionsFile(), config.ResultsFile()), nil
}
