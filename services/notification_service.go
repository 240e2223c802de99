package services

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"news-editorial-api/config"
	"news-editorial-api/models"
)

// NotificationService turns workflow events into in-app notifications and
// submission emails. Everything here is fire-and-forget: failures are logged
// and swallowed, never surfaced to the engine.
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// HandleWorkflowEvent implements EventSubscriber.
func (s *NotificationService) HandleWorkflowEvent(ev WorkflowEvent) {
	if !ev.Success {
		return
	}
	switch ev.Action {
	case models.ActionSubmitted, models.ActionAutoApproved:
		s.notifySubmission(ev)
	case models.ActionChangesRequested, models.ActionApproved, models.ActionRecommendApproval,
		models.ActionRejected, models.ActionPublished, models.ActionScheduled:
		s.notifyAuthor(ev)
	}
}

func (s *NotificationService) notifySubmission(ev WorkflowEvent) {
	// Email the rule's submission recipients.
	if len(ev.Recipients) > 0 {
		subject := fmt.Sprintf("New submission in %s: %s", ev.Category, ev.ContentTitle)
		body := fmt.Sprintf(
			"<p><strong>%s</strong> submitted <strong>%s</strong> for review in category <strong>%s</strong>.</p>",
			ev.Actor.DisplayName, ev.ContentTitle, ev.Category)
		if err := config.SendMail(ev.Recipients, subject, body); err != nil {
			log.Printf("submission email failed for content %d: %v", ev.ContentID, err)
		}
	}

	// In-app rows for every editor assigned to the category.
	var editorIDs []int
	err := s.db.Model(&models.Assignment{}).
		Where("category = ? AND delete_at IS NULL", ev.Category).
		Pluck("editor_id", &editorIDs).Error
	if err != nil {
		log.Printf("failed to resolve editors for category %q: %v", ev.Category, err)
		return
	}
	for _, editorID := range editorIDs {
		s.insert(editorID, ev.ContentID, "info",
			"New submission awaiting review",
			fmt.Sprintf("%q was submitted in %s by %s.", ev.ContentTitle, ev.Category, ev.Actor.DisplayName))
	}
}

func (s *NotificationService) notifyAuthor(ev WorkflowEvent) {
	if ev.AuthorID == 0 || ev.AuthorID == ev.Actor.ID {
		return
	}
	kind := "info"
	switch ev.Action {
	case models.ActionApproved, models.ActionRecommendApproval, models.ActionAutoApproved,
		models.ActionPublished, models.ActionScheduled:
		kind = "success"
	case models.ActionRejected:
		kind = "error"
	case models.ActionChangesRequested:
		kind = "warning"
	}
	s.insert(ev.AuthorID, ev.ContentID, kind,
		fmt.Sprintf("Your article was %s", humanAction(ev.Action)),
		fmt.Sprintf("%s %s %q.", ev.Actor.DisplayName, humanAction(ev.Action), ev.ContentTitle))
}

func (s *NotificationService) insert(userID, contentID int, kind, title, message string) {
	related := uint(contentID)
	n := models.Notification{
		UserID:           uint(userID),
		Title:            title,
		Message:          message,
		Type:             kind,
		RelatedContentID: &related,
		CreateAt:         time.Now(),
	}
	if err := s.db.Create(&n).Error; err != nil {
		log.Printf("failed to insert notification for user %d: %v", userID, err)
	}
}

func humanAction(action string) string {
	switch action {
	case models.ActionApproved, models.ActionRecommendApproval:
		return "approved"
	case models.ActionAutoApproved:
		return "auto-approved"
	case models.ActionRejected:
		return "rejected"
	case models.ActionChangesRequested:
		return "sent back for changes"
	case models.ActionPublished:
		return "published"
	case models.ActionScheduled:
		return "scheduled"
	}
	return action
}
