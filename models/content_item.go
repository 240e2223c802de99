package models

import (
	"strings"
	"time"
)

// Content item statuses. All status writes go through the workflow engine;
// the only exception is the initial draft row created by the author.
const (
	ContentStatusDraft            = "draft"
	ContentStatusPendingReview    = "pending_review"
	ContentStatusInReview         = "in_review"
	ContentStatusChangesRequested = "changes_requested"
	ContentStatusApproved         = "approved"
	ContentStatusScheduled        = "scheduled"
	ContentStatusPublished        = "published"
	ContentStatusRejected         = "rejected"
)

// ContentItem is the reviewable article. WordCount and TagCount are derived
// from the body/tags whenever the author saves, so the engine never has to
// parse content at decision time.
type ContentItem struct {
	ContentID        int        `gorm:"primaryKey;column:content_id" json:"content_id"`
	UUID             string     `gorm:"column:uuid;unique" json:"uuid"`
	Title            string     `gorm:"column:title" json:"title"`
	Body             string     `gorm:"column:body" json:"body"`
	Category         string     `gorm:"column:category" json:"category"`
	Status           string     `gorm:"column:status" json:"status"`
	AuthorID         int        `gorm:"column:author_id" json:"author_id"`
	WordCount        int        `gorm:"column:word_count" json:"word_count"`
	FeaturedImageURL *string    `gorm:"column:featured_image_url" json:"featured_image_url,omitempty"`
	Excerpt          *string    `gorm:"column:excerpt" json:"excerpt,omitempty"`
	MetaDescription  *string    `gorm:"column:meta_description" json:"meta_description,omitempty"`
	TagCount         int        `gorm:"column:tag_count" json:"tag_count"`
	ScheduledAt      *time.Time `gorm:"column:scheduled_at" json:"scheduled_at,omitempty"`
	PublishedAt      *time.Time `gorm:"column:published_at" json:"published_at,omitempty"`
	CreateAt         *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt         *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt         *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	Author *User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

func (ContentItem) TableName() string {
	return "content_items"
}

func (c *ContentItem) HasFeaturedImage() bool {
	return c.FeaturedImageURL != nil && strings.TrimSpace(*c.FeaturedImageURL) != ""
}

func (c *ContentItem) HasExcerpt() bool {
	return c.Excerpt != nil && strings.TrimSpace(*c.Excerpt) != ""
}

func (c *ContentItem) HasMetaDescription() bool {
	return c.MetaDescription != nil && strings.TrimSpace(*c.MetaDescription) != ""
}

// IsTerminal reports whether the item can leave its current status without a
// privileged admin action.
func (c *ContentItem) IsTerminal() bool {
	return c.Status == ContentStatusPublished || c.Status == ContentStatusRejected
}
