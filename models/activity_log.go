package models

import "time"

// SystemContentID is the content_id sentinel for entries that are not tied
// to a single content item (startup events, configuration changes).
const SystemContentID = 0

// Audit action names recorded by the workflow engine.
const (
	ActionSubmitted         = "submitted"
	ActionAutoApproved      = "auto_approved"
	ActionAssigned          = "assigned"
	ActionReviewStarted     = "review_started"
	ActionChangesRequested  = "changes_requested"
	ActionApproved          = "approved"
	ActionRecommendApproval = "recommend_approval"
	ActionRejected          = "rejected"
	ActionPublished         = "published"
	ActionScheduled         = "scheduled"
	ActionHeld              = "held"
	ActionNoteAdded         = "note_added"
	ActionUnpublished       = "unpublished"
	ActionSocialShareIntent = "social_share_intent"
)

// ActivityLogEntry is the append-only audit record for every workflow action
// attempt. Success=false rows record rejected attempts together with the
// rejection reason in Detail. Rows are never updated or deleted.
type ActivityLogEntry struct {
	LogID     int       `gorm:"primaryKey;column:log_id" json:"log_id"`
	ContentID int       `gorm:"column:content_id" json:"content_id"`
	ActorID   int       `gorm:"column:actor_id" json:"actor_id"`
	ActorName string    `gorm:"column:actor_name" json:"actor_name"`
	ActorRole string    `gorm:"column:actor_role" json:"actor_role"`
	Action    string    `gorm:"column:action" json:"action"`
	Detail    string    `gorm:"column:detail" json:"detail"`
	Success   bool      `gorm:"column:success" json:"success"`
	Metadata  *string   `gorm:"column:metadata" json:"metadata,omitempty"`
	CreateAt  time.Time `gorm:"column:create_at" json:"create_at"`
}

func (ActivityLogEntry) TableName() string {
	return "activity_log"
}
