package services

import (
	"gorm.io/gorm"

	"news-editorial-api/models"
)

// FeedbackService reads review feedback threads. Writes happen inside the
// engine transaction through WorkflowStore.AppendFeedback.
type FeedbackService struct {
	db *gorm.DB
}

func NewFeedbackService(db *gorm.DB) *FeedbackService {
	return &FeedbackService{db: db}
}

// ListByContent returns the feedback thread for a content item in
// chronological order (or reverse when newestFirst). Internal entries are
// filtered out unless includeInternal is set; authors never see internal
// editor comments.
func (s *FeedbackService) ListByContent(contentID int, newestFirst, includeInternal bool) ([]models.FeedbackEntry, error) {
	order := "feedback_id ASC"
	if newestFirst {
		order = "feedback_id DESC"
	}
	q := s.db.Where("content_id = ?", contentID).Order(order)
	if !includeInternal {
		q = q.Where("is_internal = ?", false)
	}
	var entries []models.FeedbackEntry
	if err := q.Find(&entries).Error; err != nil {
		return nil, dependencyError("failed to list feedback", err)
	}
	return entries, nil
}
