package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"news-editorial-api/models"
)

// ErrStaleStatus is returned by TransitionContent when the row was not in
// the expected status anymore. The engine maps it to a Conflict rejection.
var ErrStaleStatus = errors.New("content status changed concurrently")

// WorkflowStore is the persistence surface the engine needs. The GORM
// implementation below is the production store; engine tests use an
// in-memory fake.
type WorkflowStore interface {
	ContentByID(contentID int) (*models.ContentItem, error)
	// TransitionContent updates the content row only if it still has
	// fromStatus, returning ErrStaleStatus otherwise.
	TransitionContent(contentID int, fromStatus string, updates map[string]interface{}) error
	// CurrentReview returns the most recent review record for the item, or
	// nil when the item has never been submitted.
	CurrentReview(contentID int) (*models.ReviewRecord, error)
	SaveReview(r *models.ReviewRecord) error
	UpdateReview(reviewID int, updates map[string]interface{}) error
	AppendFeedback(f *models.FeedbackEntry) error
	// InTransaction runs fn against a transaction-bound store. Any error
	// rolls the whole transition back.
	InTransaction(fn func(WorkflowStore) error) error
}

type gormWorkflowStore struct {
	db *gorm.DB
}

// NewWorkflowStore returns the GORM-backed store used in production.
func NewWorkflowStore(db *gorm.DB) WorkflowStore {
	return &gormWorkflowStore{db: db}
}

func (s *gormWorkflowStore) ContentByID(contentID int) (*models.ContentItem, error) {
	var item models.ContentItem
	err := s.db.Where("content_id = ? AND delete_at IS NULL", contentID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("content item %d not found", contentID)
		}
		return nil, dependencyError("failed to load content item", err)
	}
	return &item, nil
}

func (s *gormWorkflowStore) TransitionContent(contentID int, fromStatus string, updates map[string]interface{}) error {
	if _, ok := updates["update_at"]; !ok {
		updates["update_at"] = time.Now()
	}
	res := s.db.Model(&models.ContentItem{}).
		Where("content_id = ? AND status = ? AND delete_at IS NULL", contentID, fromStatus).
		Updates(updates)
	if res.Error != nil {
		return dependencyError("failed to update content status", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrStaleStatus
	}
	return nil
}

func (s *gormWorkflowStore) CurrentReview(contentID int) (*models.ReviewRecord, error) {
	var record models.ReviewRecord
	err := s.db.Where("content_id = ?", contentID).
		Order("review_id DESC").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, dependencyError("failed to load review record", err)
	}
	return &record, nil
}

func (s *gormWorkflowStore) SaveReview(r *models.ReviewRecord) error {
	if err := s.db.Save(r).Error; err != nil {
		return dependencyError("failed to save review record", err)
	}
	return nil
}

func (s *gormWorkflowStore) UpdateReview(reviewID int, updates map[string]interface{}) error {
	if _, ok := updates["update_at"]; !ok {
		updates["update_at"] = time.Now()
	}
	err := s.db.Model(&models.ReviewRecord{}).
		Where("review_id = ?", reviewID).
		Updates(updates).Error
	if err != nil {
		return dependencyError("failed to update review record", err)
	}
	return nil
}

func (s *gormWorkflowStore) AppendFeedback(f *models.FeedbackEntry) error {
	if err := s.db.Create(f).Error; err != nil {
		return dependencyError("failed to append feedback", err)
	}
	return nil
}

func (s *gormWorkflowStore) InTransaction(fn func(WorkflowStore) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormWorkflowStore{db: tx})
	})
}
