package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/legal-bench/backend/internal/models"
)

// FileStore keeps questions and results in two pretty-printed JSON documents.
// Single-writer: the mutex serializes this process, nothing guards against a
// second process on the same files.
type FileStore struct {
	mu            sync.Mutex
	questionsPath string
	resultsPath   string
}

func NewFileStore(questionsPath, resultsPath string) *FileStore {
	return &FileStore{questionsPath: questionsPath, resultsPath: resultsPath}
}

func (s *FileStore) LoadQuestions() ([]models.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadQuestions()
}

func (s *FileStore) loadQuestions() ([]models.Question, error) {
	data, err := os.ReadFile(s.questionsPath)
	if os.IsNotExist(err) {
		return []models.Question{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read questions file: %w", err)
	}
	var questions []models.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("decode questions file: %w", err)
	}
	return questions, nil
}

func (s *FileStore) AppendQuestion(q models.GeneratedQuestion) (*models.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	questions, err := s.loadQuestions()
	if err != nil {
		return nil, err
	}

	maxID := 0
	for _, existing := range questions {
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
		CreatedAt:     time.Now(),
	}
	questions = append(questions, saved)

	if err := writeJSONFile(s.questionsPath, questions); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (s *FileStore) LoadResults() ([]models.EvaluationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.resultsPath)
	if os.IsNotExist(err) {
		return []models.EvaluationResult{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read results file: %w", err)
	}
	var results []models.EvaluationResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("decode results file: %w", err)
	}
	return results, nil
}

func (s *FileStore) SaveResults(results []models.EvaluationResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeJSONFile(s.resultsPath, results)
}

// writeJSONFile writes through a temp file and rename so a crash mid-write
// cannot truncate the document.
func writeJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
