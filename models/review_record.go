package models

import "time"

// Review record statuses. These track the reviewer-facing pipeline and run in
// parallel with the content item status.
const (
	ReviewStatusPending          = "pending"
	ReviewStatusAssigned         = "assigned"
	ReviewStatusInReview         = "in_review"
	ReviewStatusApproved         = "approved"
	ReviewStatusRejected         = "rejected"
	ReviewStatusChangesRequested = "changes_requested"
	ReviewStatusOnHold           = "on_hold"
	ReviewStatusPublished        = "published"
)

// Review priorities set on assignment.
const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// ReviewRecord pairs with a ContentItem once it enters review. The most
// recent row for a content_id is the canonical record; resubmission after
// changes_requested updates that row rather than inserting a second one.
type ReviewRecord struct {
	ReviewID     int        `gorm:"primaryKey;column:review_id" json:"review_id"`
	ContentID    int        `gorm:"column:content_id" json:"content_id"`
	ReviewStatus string     `gorm:"column:review_status" json:"review_status"`
	Priority     string     `gorm:"column:priority" json:"priority"`
	ReviewerID   *int       `gorm:"column:reviewer_id" json:"reviewer_id,omitempty"`
	Notes        *string    `gorm:"column:notes" json:"notes,omitempty"`
	SubmittedAt  time.Time  `gorm:"column:submitted_at" json:"submitted_at"`
	AssignedAt   *time.Time `gorm:"column:assigned_at" json:"assigned_at,omitempty"`
	ReviewedAt   *time.Time `gorm:"column:reviewed_at" json:"reviewed_at,omitempty"`
	PublishedAt  *time.Time `gorm:"column:published_at" json:"published_at,omitempty"`
	CreateAt     *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt     *time.Time `gorm:"column:update_at" json:"update_at"`

	Reviewer *User `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
}

func (ReviewRecord) TableName() string {
	return "review_records"
}

// IsTerminal reports whether the review pipeline is finished for this record.
func (r *ReviewRecord) IsTerminal() bool {
	switch r.ReviewStatus {
	case ReviewStatusApproved, ReviewStatusRejected, ReviewStatusPublished:
		return true
	}
	return false
}

// ValidPriority reports whether p is one of the accepted priority values.
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}
