package models

import (
	"strings"
	"time"
)

// PublishingRule is the per-category quality gate evaluated on submission.
// A category without a rule row has no constraints.
type PublishingRule struct {
	RuleID                  int        `gorm:"primaryKey;column:rule_id" json:"rule_id"`
	Category                string     `gorm:"column:category;unique" json:"category"`
	MinWordCount            int        `gorm:"column:min_word_count" json:"min_word_count"`
	MaxWordCount            *int       `gorm:"column:max_word_count" json:"max_word_count,omitempty"`
	RequiresFeaturedImage   bool       `gorm:"column:requires_featured_image" json:"requires_featured_image"`
	RequiresExcerpt         bool       `gorm:"column:requires_excerpt" json:"requires_excerpt"`
	RequiresMetaDescription bool       `gorm:"column:requires_meta_description" json:"requires_meta_description"`
	RequiredTagCount        int        `gorm:"column:required_tag_count" json:"required_tag_count"`
	AutoPublishTrusted      bool       `gorm:"column:auto_publish_trusted" json:"auto_publish_trusted"`
	NotifyOnSubmission      string     `gorm:"column:notify_on_submission" json:"notify_on_submission"`
	CreateAt                *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt                *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt                *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

func (PublishingRule) TableName() string {
	return "publishing_rules"
}

// Recipients splits the stored notify_on_submission list into addresses.
func (r *PublishingRule) Recipients() []string {
	if r == nil || strings.TrimSpace(r.NotifyOnSubmission) == "" {
		return nil
	}
	parts := strings.Split(r.NotifyOnSubmission, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if addr := strings.TrimSpace(p); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}
