package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"news-editorial-api/config"
	"news-editorial-api/models"
	"news-editorial-api/services"
	"news-editorial-api/utils"
)

type publishingRuleRequest struct {
	Category                string `json:"category" binding:"required"`
	MinWordCount            int    `json:"min_word_count"`
	MaxWordCount            *int   `json:"max_word_count"`
	RequiresFeaturedImage   bool   `json:"requires_featured_image"`
	RequiresExcerpt         bool   `json:"requires_excerpt"`
	RequiresMetaDescription bool   `json:"requires_meta_description"`
	RequiredTagCount        int    `json:"required_tag_count"`
	AutoPublishTrusted      bool   `json:"auto_publish_trusted"`
	NotifyOnSubmission      string `json:"notify_on_submission"`
}

// GetPublishingRules lists every category rule.
func GetPublishingRules(c *gin.Context) {
	var rules []models.PublishingRule
	if err := config.DB.Where("delete_at IS NULL").Order("category ASC").Find(&rules).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch publishing rules"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "rules": rules, "total": len(rules)})
}

// CreatePublishingRule adds the quality gate for one category.
func CreatePublishingRule(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User context missing"})
		return
	}

	var req publishingRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	category := utils.SanitizeInput(req.Category)

	if req.MaxWordCount != nil && *req.MaxWordCount < req.MinWordCount {
		c.JSON(http.StatusBadRequest, gin.H{"error": "max_word_count cannot be below min_word_count"})
		return
	}

	var existing models.PublishingRule
	err := config.DB.Where("category = ? AND delete_at IS NULL", category).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "A rule for this category already exists", "rule": existing})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing rule"})
		return
	}

	now := time.Now()
	rule := models.PublishingRule{
		Category:                category,
		MinWordCount:            req.MinWordCount,
		MaxWordCount:            req.MaxWordCount,
		RequiresFeaturedImage:   req.RequiresFeaturedImage,
		RequiresExcerpt:         req.RequiresExcerpt,
		RequiresMetaDescription: req.RequiresMetaDescription,
		RequiredTagCount:        req.RequiredTagCount,
		AutoPublishTrusted:      req.AutoPublishTrusted,
		NotifyOnSubmission:      req.NotifyOnSubmission,
		CreateAt:                &now,
		UpdateAt:                &now,
	}
	if err := config.DB.Create(&rule).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create publishing rule"})
		return
	}

	deps.Rules.Invalidate(category)
	deps.Bus.Publish(services.SystemEvent("publishing_rule_created",
		fmt.Sprintf("created publishing rule for category %q", category), actor))

	c.JSON(http.StatusCreated, gin.H{"success": true, "rule": rule})
}

// UpdatePublishingRule replaces the gate parameters for a category.
func UpdatePublishingRule(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User context missing"})
		return
	}

	ruleID, err := strconv.Atoi(c.Param("id"))
	if err != nil || ruleID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid rule ID"})
		return
	}

	var req publishingRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.MaxWordCount != nil && *req.MaxWordCount < req.MinWordCount {
		c.JSON(http.StatusBadRequest, gin.H{"error": "max_word_count cannot be below min_word_count"})
		return
	}

	var rule models.PublishingRule
	if err := config.DB.Where("rule_id = ? AND delete_at IS NULL", ruleID).First(&rule).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Publishing rule not found"})
		return
	}

	updates := map[string]interface{}{
		"min_word_count":            req.MinWordCount,
		"max_word_count":            req.MaxWordCount,
		"requires_featured_image":   req.RequiresFeaturedImage,
		"requires_excerpt":          req.RequiresExcerpt,
		"requires_meta_description": req.RequiresMetaDescription,
		"required_tag_count":        req.RequiredTagCount,
		"auto_publish_trusted":      req.AutoPublishTrusted,
		"notify_on_submission":      req.NotifyOnSubmission,
		"update_at":                 time.Now(),
	}
	if err := config.DB.Model(&rule).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update publishing rule"})
		return
	}

	deps.Rules.Invalidate(rule.Category)
	deps.Bus.Publish(services.SystemEvent("publishing_rule_updated",
		fmt.Sprintf("updated publishing rule for category %q", rule.Category), actor))

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Publishing rule updated"})
}

// DeletePublishingRule removes a category gate; the category then has no
// constraints.
func DeletePublishingRule(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User context missing"})
		return
	}

	ruleID, err := strconv.Atoi(c.Param("id"))
	if err != nil || ruleID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid rule ID"})
		return
	}

	var rule models.PublishingRule
	if err := config.DB.Where("rule_id = ? AND delete_at IS NULL", ruleID).First(&rule).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Publishing rule not found"})
		return
	}

	if err := config.DB.Model(&rule).Update("delete_at", time.Now()).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete publishing rule"})
		return
	}

	deps.Rules.Invalidate(rule.Category)
	deps.Bus.Publish(services.SystemEvent("publishing_rule_deleted",
		fmt.Sprintf("deleted publishing rule for category %q", rule.Category), actor))

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Publishing rule deleted"})
}
