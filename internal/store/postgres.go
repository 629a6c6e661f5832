package store

import (
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"github.com/legal-bench/backend/internal/models"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Postgres is the SQL-backed store. It keeps the same load/append/save
// semantics as the flat-file store, including wholesale result replacement.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	if err := runMigrations(db); err != nil {
		return nil, err
	}
	return &Postgres{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}
	driver, err := migratepg.WithInstance(db, &migratepg.Config{})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

func (s *Postgres) Close() error {
	return s.db.Close()
}

func (s *Postgres) LoadQuestions() ([]models.Question, error) {
	rows, err := s.db.Query(
		`SELECT id, question, options, correct_answer, reasoning, topic, generated_by, created_at
		 FROM questions ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	defer rows.Close()

	questions := []models.Question{}
	for rows.Next() {
		var q models.Question
		var options []byte
		if err := rows.Scan(&q.ID, &q.Question, &options, &q.CorrectAnswer,
			&q.Reasoning, &q.Topic, &q.GeneratedBy, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		if err := json.Unmarshal(options, &q.Options); err != nil {
			return nil, fmt.Errorf("decode options for question %d: %w", q.ID, err)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func (s *Postgres) AppendQuestion(q models.GeneratedQuestion) (*models.Question, error) {
	options, err := json.Marshal(q.Options)
	if err != nil {
		return nil, fmt.Errorf("encode options: %w", err)
	}

	saved := models.Question{
		Question:      q.Question,
		Options:       q.Options,
		CorrectAnswer: q.CorrectAnswer,
		Reasoning:     q.Reasoning,
		Topic:         q.Topic,
		GeneratedBy:   q.GeneratedBy,
		CreatedAt:     time.Now(),
	}

	err = s.db.QueryRow(
		`INSERT INTO questions (id, question, options, correct_answer, reasoning, topic, generated_by, created_at)
		 VALUES ((SELECT COALESCE(MAX(id), 0) + 1 FROM questions), $1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		q.Question, options, q.CorrectAnswer, q.Reasoning, q.Topic, q.GeneratedBy, saved.CreatedAt,
	).Scan(&saved.ID)
	if err != nil {
		return nil, fmt.Errorf("append question: %w", err)
	}
	return &saved, nil
}

func (s *Postgres) LoadResults() ([]models.EvaluationResult, error) {
	rows, err := s.db.Query(
		`SELECT question_id, model, selected, correct, ts, COALESCE(error, '')
		 FROM eval_results ORDER BY seq`,
	)
	if err != nil {
		return nil, fmt.Errorf("load results: %w", err)
	}
	defer rows.Close()

	results := []models.EvaluationResult{}
	for rows.Next() {
		var r models.EvaluationResult
		if err := rows.Scan(&r.QuestionID, &r.Model, &r.Selected, &r.Correct, &r.Timestamp, &r.Error); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

func (s *Postgres) SaveResults(results []models.EvaluationResult) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM eval_results`); err != nil {
		return fmt.Errorf("clear results: %w", err)
	}
	for _, r := range results {
		var errCol any
		if r.Error != "" {
			errCol = r.Error
		}
		if _, err := tx.Exec(
			`INSERT INTO eval_results (question_id, model, selected, correct, ts, error)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			r.QuestionID, r.Model, r.Selected, r.Correct, r.Timestamp, errCol,
		); err != nil {
			return fmt.Errorf("insert result: %w", err)
		}
	}
	return tx.Commit()
}
