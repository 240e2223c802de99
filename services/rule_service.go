package services

import (
	"errors"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"gorm.io/gorm"

	"news-editorial-api/models"
)

// RuleSource resolves the publishing rule for a category. The production
// implementation is the cached RuleService below.
type RuleSource interface {
	ForCategory(category string) (*models.PublishingRule, error)
}

// RuleService resolves per-category publishing rules. Rules are read-mostly
// configuration, so lookups go through a short-TTL cache.
type RuleService struct {
	db    *gorm.DB
	cache *gocache.Cache
}

const ruleCacheTTL = 5 * time.Minute

func NewRuleService(db *gorm.DB) *RuleService {
	return &RuleService{
		db:    db,
		cache: gocache.New(ruleCacheTTL, 10*time.Minute),
	}
}

// ForCategory returns the rule for the category, or nil when the category
// has no rule (which means no constraints).
func (s *RuleService) ForCategory(category string) (*models.PublishingRule, error) {
	if cached, ok := s.cache.Get(category); ok {
		if cached == nil {
			return nil, nil
		}
		rule := cached.(models.PublishingRule)
		return &rule, nil
	}

	var rule models.PublishingRule
	err := s.db.Where("category = ? AND delete_at IS NULL", category).First(&rule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.cache.Set(category, nil, gocache.DefaultExpiration)
			return nil, nil
		}
		return nil, dependencyError("failed to load publishing rule", err)
	}

	s.cache.Set(category, rule, gocache.DefaultExpiration)
	return &rule, nil
}

// Invalidate drops the cached rule for a category after an admin update.
func (s *RuleService) Invalidate(category string) {
	s.cache.Delete(category)
}

// ValidateSubmission checks the item against its category rule and returns
// every violated constraint, not just the first, so the author gets the
// complete correction list. An empty slice means the gate passes.
func ValidateSubmission(item *models.ContentItem, rule *models.PublishingRule) []string {
	if rule == nil {
		return nil
	}

	var violations []string
	if rule.MinWordCount > 0 && item.WordCount < rule.MinWordCount {
		violations = append(violations,
			fmt.Sprintf("word count %d is below the minimum of %d for category %q",
				item.WordCount, rule.MinWordCount, rule.Category))
	}
	if rule.MaxWordCount != nil && item.WordCount > *rule.MaxWordCount {
		violations = append(violations,
			fmt.Sprintf("word count %d exceeds the maximum of %d for category %q",
				item.WordCount, *rule.MaxWordCount, rule.Category))
	}
	if rule.RequiresFeaturedImage && !item.HasFeaturedImage() {
		violations = append(violations, "a featured image is required")
	}
	if rule.RequiresExcerpt && !item.HasExcerpt() {
		violations = append(violations, "an excerpt is required")
	}
	if rule.RequiresMetaDescription && !item.HasMetaDescription() {
		violations = append(violations, "a meta description is required")
	}
	if rule.RequiredTagCount > 0 && item.TagCount < rule.RequiredTagCount {
		violations = append(violations,
			fmt.Sprintf("at least %d tags are required, got %d", rule.RequiredTagCount, item.TagCount))
	}
	return violations
}
