package services

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"news-editorial-api/models"
)

func TestCurrentReviewPicksLatestRecord(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile(`SELECT \* FROM .review_records. WHERE content_id = \? ORDER BY review_id DESC`),
			args:    []driver.Value{int64(7)},
			columns: []string{"review_id", "content_id", "review_status", "priority"},
			rows: [][]driver.Value{
				{int64(42), int64(7), models.ReviewStatusChangesRequested, models.PriorityHigh},
			},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	store := NewWorkflowStore(db)
	record, err := store.CurrentReview(7)
	if err != nil {
		t.Fatalf("CurrentReview failed: %v", err)
	}
	if record == nil || record.ReviewID != 42 {
		t.Fatalf("expected review 42, got %+v", record)
	}
	if record.ReviewStatus != models.ReviewStatusChangesRequested {
		t.Fatalf("unexpected status %q", record.ReviewStatus)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestCurrentReviewNilWhenNeverSubmitted(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile(`SELECT \* FROM .review_records. WHERE content_id = \?`),
			args:    []driver.Value{int64(9)},
			columns: []string{"review_id"},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	store := NewWorkflowStore(db)
	record, err := store.CurrentReview(9)
	if err != nil {
		t.Fatalf("CurrentReview failed: %v", err)
	}
	if record != nil {
		t.Fatalf("expected nil record, got %+v", record)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestTransitionContentGuardsOnStatus(t *testing.T) {
	updatedAt := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	pattern := regexp.MustCompile(
		`UPDATE .content_items. SET .status.=\?,.update_at.=\? WHERE content_id = \? AND status = \? AND delete_at IS NULL`)

	t.Run("applies when status matches", func(t *testing.T) {
		steps := []*queryStep{
			{
				kind:    kindExec,
				pattern: pattern,
				args:    []driver.Value{models.ContentStatusInReview, updatedAt, int64(5), models.ContentStatusPendingReview},
				result:  scriptedResult{rowsAffected: 1},
			},
		}
		db, state, cleanup := newScriptedGormDB(t, steps)
		defer cleanup()

		store := NewWorkflowStore(db)
		err := store.TransitionContent(5, models.ContentStatusPendingReview, map[string]interface{}{
			"status":    models.ContentStatusInReview,
			"update_at": updatedAt,
		})
		if err != nil {
			t.Fatalf("TransitionContent failed: %v", err)
		}
		if err := state.verifyComplete(); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("stale status when no row matched", func(t *testing.T) {
		steps := []*queryStep{
			{
				kind:    kindExec,
				pattern: pattern,
				args:    []driver.Value{models.ContentStatusInReview, updatedAt, int64(5), models.ContentStatusPendingReview},
				result:  scriptedResult{rowsAffected: 0},
			},
		}
		db, state, cleanup := newScriptedGormDB(t, steps)
		defer cleanup()

		store := NewWorkflowStore(db)
		err := store.TransitionContent(5, models.ContentStatusPendingReview, map[string]interface{}{
			"status":    models.ContentStatusInReview,
			"update_at": updatedAt,
		})
		if !errors.Is(err, ErrStaleStatus) {
			t.Fatalf("expected ErrStaleStatus, got %v", err)
		}
		if err := state.verifyComplete(); err != nil {
			t.Fatal(err)
		}
	})
}

func TestContentByIDNotFound(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile(`SELECT \* FROM .content_items. WHERE content_id = \? AND delete_at IS NULL`),
			args:    []driver.Value{int64(404)},
			columns: []string{"content_id"},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	store := NewWorkflowStore(db)
	_, err := store.ContentByID(404)
	if we := AsWorkflowError(err); we == nil || we.Kind != ErrNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}
