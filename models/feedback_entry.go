package models

import "time"

// Feedback entry types.
const (
	FeedbackRevisionRequest = "revision_request"
	FeedbackRejection       = "rejection"
	FeedbackApproval        = "approval"
	FeedbackComment         = "comment"
	FeedbackSuggestion      = "suggestion"
)

// FeedbackEntry is one message on a review thread. Entries are append-only;
// nothing in the system updates or deletes them.
type FeedbackEntry struct {
	FeedbackID int       `gorm:"primaryKey;column:feedback_id" json:"feedback_id"`
	ReviewID   int       `gorm:"column:review_id" json:"review_id"`
	ContentID  int       `gorm:"column:content_id" json:"content_id"`
	AuthorID   int       `gorm:"column:author_id" json:"author_id"`
	AuthorName string    `gorm:"column:author_name" json:"author_name"`
	AuthorRole string    `gorm:"column:author_role" json:"author_role"`
	EntryType  string    `gorm:"column:entry_type" json:"entry_type"`
	Body       string    `gorm:"column:body" json:"body"`
	IsInternal bool      `gorm:"column:is_internal" json:"is_internal"`
	CreateAt   time.Time `gorm:"column:create_at" json:"create_at"`
}

func (FeedbackEntry) TableName() string {
	return "feedback_entries"
}
