package database_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/edgard/nichirin/internal/database"
)

// TestListCannedAnswers verifies the migration seed and the ordering
// guarantee of the canned answer table.
func TestListCannedAnswers(t *testing.T) {
	t.Parallel()

	db, err := database.NewDB(":memory:")
	if err != nil {
		t.Fatalf("NewDB failed: %v", err)
	}
	t.Cleanup(func() { database.CloseDB(db) })

	store := database.NewStore(db, slog.New(slog.DiscardHandler))
	answers, err := store.ListCannedAnswers(context.Background())
	if err != nil {
		t.Fatalf("ListCannedAnswers failed: %v", err)
	}

	wantTopics := []string{"life story", "superpower", "grow", "misconception", "boundaries"}
	if len(answers) != len(wantTopics) {
		t.Fatalf("got %d canned answers, want %d", len(answers), len(wantTopics))
	}

	for i, want := range wantTopics {
		if answers[i].Topic != want {
			t.Errorf("answers[%d].Topic = %q, want %q", i, answers[i].Topic, want)
		}
		if answers[i].Answer == "" {
			t.Errorf("answers[%d].Answer is empty", i)
		}
		if answers[i].Position != int64(i+1) {
			t.Errorf("answers[%d].Position = %d, want %d", i, answers[i].Position, i+1)
		}
	}
}
