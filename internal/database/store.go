package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
)

// Store defines the data access operations used by the application.
type Store interface {
	// ListCannedAnswers returns all canned answers ordered by position.
	ListCannedAnswers(ctx context.Context) ([]CannedAnswer, error)
}

type sqlStore struct {
	db  *sqlx.DB
	log *slog.Logger
}

// NewStore creates a Store backed by the given database connection pool.
func NewStore(db *sqlx.DB, log *slog.Logger) Store {
	return &sqlStore{
		db:  db,
		log: log.With("component", "store"),
	}
}

func (s *sqlStore) ListCannedAnswers(ctx context.Context) ([]CannedAnswer, error) {
	var answers []CannedAnswer
	query := `SELECT position, topic, answer FROM canned_answers ORDER BY position`
	if err := s.db.SelectContext(ctx, &answers, query); err != nil {
		return nil, fmt.Errorf("failed to list canned answers: %w", err)
	}

	s.log.DebugContext(ctx, "Loaded canned answers", "count", len(answers))
	return answers, nil
}
