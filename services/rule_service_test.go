package services

import (
	"database/sql/driver"
	"regexp"
	"testing"

	"news-editorial-api/models"
)

func intPtr(v int) *int { return &v }

func TestValidateSubmissionReportsEveryViolation(t *testing.T) {
	rule := &models.PublishingRule{
		Category:                "business",
		MinWordCount:            300,
		MaxWordCount:            intPtr(2000),
		RequiresFeaturedImage:   true,
		RequiresExcerpt:         true,
		RequiresMetaDescription: true,
		RequiredTagCount:        3,
	}

	item := &models.ContentItem{
		ContentID: 1,
		Category:  "business",
		WordCount: 120,
		TagCount:  1,
	}

	violations := ValidateSubmission(item, rule)
	if len(violations) != 5 {
		t.Fatalf("expected 5 violations, got %d: %v", len(violations), violations)
	}
}

func TestValidateSubmissionPassesWhenRuleSatisfied(t *testing.T) {
	rule := &models.PublishingRule{
		Category:              "business",
		MinWordCount:          300,
		MaxWordCount:          intPtr(2000),
		RequiresFeaturedImage: true,
		RequiredTagCount:      2,
	}

	item := &models.ContentItem{
		Category:         "business",
		WordCount:        850,
		TagCount:         4,
		FeaturedImageURL: strPtr("https://cdn.example.org/cover.jpg"),
	}

	if violations := ValidateSubmission(item, rule); len(violations) != 0 {
		t.Fatalf("expected no violations, got %v", violations)
	}
}

func TestValidateSubmissionMaxWordCount(t *testing.T) {
	rule := &models.PublishingRule{Category: "briefs", MaxWordCount: intPtr(200)}
	item := &models.ContentItem{Category: "briefs", WordCount: 500}

	violations := ValidateSubmission(item, rule)
	if len(violations) != 1 {
		t.Fatalf("expected 1 violation, got %v", violations)
	}
}

func TestValidateSubmissionBlankFieldsDoNotCount(t *testing.T) {
	rule := &models.PublishingRule{Category: "news", RequiresExcerpt: true}
	item := &models.ContentItem{Category: "news", Excerpt: strPtr("   ")}

	violations := ValidateSubmission(item, rule)
	if len(violations) != 1 {
		t.Fatalf("whitespace-only excerpt must not satisfy the rule, got %v", violations)
	}
}

func TestValidateSubmissionNilRuleMeansNoConstraints(t *testing.T) {
	item := &models.ContentItem{Category: "letters", WordCount: 3}
	if violations := ValidateSubmission(item, nil); violations != nil {
		t.Fatalf("expected nil, got %v", violations)
	}
}

func TestForCategoryCachesRule(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile(`SELECT \* FROM .publishing_rules. WHERE category = \? AND delete_at IS NULL`),
			args:    []driver.Value{"business"},
			columns: []string{"rule_id", "category", "min_word_count"},
			rows: [][]driver.Value{
				{int64(3), "business", int64(300)},
			},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewRuleService(db)
	for i := 0; i < 2; i++ {
		rule, err := svc.ForCategory("business")
		if err != nil {
			t.Fatalf("ForCategory call %d failed: %v", i+1, err)
		}
		if rule == nil || rule.MinWordCount != 300 {
			t.Fatalf("call %d: unexpected rule %+v", i+1, rule)
		}
	}
	// One scripted query, two calls: the second must hit the cache.
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestForCategoryCachesAbsence(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile(`SELECT \* FROM .publishing_rules. WHERE category = \? AND delete_at IS NULL`),
			args:    []driver.Value{"letters"},
			columns: []string{"rule_id"},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewRuleService(db)
	for i := 0; i < 2; i++ {
		rule, err := svc.ForCategory("letters")
		if err != nil {
			t.Fatalf("ForCategory call %d failed: %v", i+1, err)
		}
		if rule != nil {
			t.Fatalf("call %d: expected no rule, got %+v", i+1, rule)
		}
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestInvalidateForcesReload(t *testing.T) {
	pattern := regexp.MustCompile(`SELECT \* FROM .publishing_rules. WHERE category = \? AND delete_at IS NULL`)
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: pattern,
			args:    []driver.Value{"tech"},
			columns: []string{"rule_id", "category", "min_word_count"},
			rows:    [][]driver.Value{{int64(4), "tech", int64(200)}},
		},
		{
			kind:    kindQuery,
			pattern: pattern,
			args:    []driver.Value{"tech"},
			columns: []string{"rule_id", "category", "min_word_count"},
			rows:    [][]driver.Value{{int64(4), "tech", int64(500)}},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewRuleService(db)
	if _, err := svc.ForCategory("tech"); err != nil {
		t.Fatalf("first load failed: %v", err)
	}

	svc.Invalidate("tech")

	rule, err := svc.ForCategory("tech")
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if rule.MinWordCount != 500 {
		t.Fatalf("expected the reloaded rule, got %+v", rule)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}
