package services

import (
	"encoding/json"
	"log"
	"time"

	"gorm.io/gorm"

	"news-editorial-api/models"
)

// ActivityService is the append-only audit sink plus its read contract.
// As an event subscriber it persists one ActivityLogEntry per workflow
// action attempt; write failures are logged and never propagated, so an
// audit outage cannot take down the workflow.
type ActivityService struct {
	db *gorm.DB
}

func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{db: db}
}

// HandleWorkflowEvent implements EventSubscriber.
func (s *ActivityService) HandleWorkflowEvent(ev WorkflowEvent) {
	entry := models.ActivityLogEntry{
		ContentID: ev.ContentID,
		ActorID:   ev.Actor.ID,
		ActorName: ev.Actor.DisplayName,
		ActorRole: ev.Actor.Role,
		Action:    ev.Action,
		Detail:    ev.Detail,
		Success:   ev.Success,
		CreateAt:  ev.OccurredAt,
	}
	if !ev.Success && ev.Reason != "" {
		meta, err := json.Marshal(map[string]string{"rejection_reason": ev.Reason})
		if err == nil {
			m := string(meta)
			entry.Metadata = &m
		}
	}
	if err := s.Record(&entry); err != nil {
		log.Printf("activity log write failed for action %s on content %d: %v",
			ev.Action, ev.ContentID, err)
	}
}

// Record appends a single audit entry.
func (s *ActivityService) Record(entry *models.ActivityLogEntry) error {
	if entry.CreateAt.IsZero() {
		entry.CreateAt = time.Now()
	}
	if err := s.db.Create(entry).Error; err != nil {
		return dependencyError("failed to write activity log entry", err)
	}
	return nil
}

// ListByContent returns the audit trail for one content item, oldest first
// unless newestFirst is set.
func (s *ActivityService) ListByContent(contentID int, newestFirst bool) ([]models.ActivityLogEntry, error) {
	order := "log_id ASC"
	if newestFirst {
		order = "log_id DESC"
	}
	var entries []models.ActivityLogEntry
	err := s.db.Where("content_id = ?", contentID).Order(order).Find(&entries).Error
	if err != nil {
		return nil, dependencyError("failed to list activity log", err)
	}
	return entries, nil
}

// ListByActor returns everything one actor has done, newest first.
func (s *ActivityService) ListByActor(actorID int, limit int) ([]models.ActivityLogEntry, error) {
	q := s.db.Where("actor_id = ?", actorID).Order("log_id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var entries []models.ActivityLogEntry
	if err := q.Find(&entries).Error; err != nil {
		return nil, dependencyError("failed to list activity log", err)
	}
	return entries, nil
}

// ActionCount is one row of the grouped audit aggregates.
type ActionCount struct {
	Key   string `gorm:"column:grouping_key" json:"key"`
	Total int64  `gorm:"column:total" json:"total"`
}

// CountByAction returns entry counts grouped by action name.
func (s *ActivityService) CountByAction() ([]ActionCount, error) {
	var rows []ActionCount
	err := s.db.Model(&models.ActivityLogEntry{}).
		Select("action AS grouping_key, COUNT(*) AS total").
		Group("action").
		Order("total DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, dependencyError("failed to aggregate activity log", err)
	}
	return rows, nil
}

// CountByActor returns entry counts grouped by actor display name.
func (s *ActivityService) CountByActor() ([]ActionCount, error) {
	var rows []ActionCount
	err := s.db.Model(&models.ActivityLogEntry{}).
		Select("actor_name AS grouping_key, COUNT(*) AS total").
		Group("actor_name").
		Order("total DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, dependencyError("failed to aggregate activity log", err)
	}
	return rows, nil
}
