package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"news-editorial-api/config"
	"news-editorial-api/models"
)

var reviewQueueStatuses = map[string][]string{
	"":          {models.ReviewStatusPending, models.ReviewStatusAssigned},
	"pending":   {models.ReviewStatusPending},
	"assigned":  {models.ReviewStatusAssigned},
	"in_review": {models.ReviewStatusInReview},
	"on_hold":   {models.ReviewStatusOnHold},
	"all": {
		models.ReviewStatusPending, models.ReviewStatusAssigned,
		models.ReviewStatusInReview, models.ReviewStatusOnHold,
		models.ReviewStatusChangesRequested,
	},
}

// GetReviewQueue lists open review records. Editors only see the categories
// they are assigned to; admins see everything.
func GetReviewQueue(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User context missing"})
		return
	}

	statusKey := strings.TrimSpace(c.Query("status"))
	statuses, found := reviewQueueStatuses[statusKey]
	if !found {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
		return
	}

	query := config.DB.Preload("Reviewer").
		Joins("JOIN content_items ON content_items.content_id = review_records.content_id").
		Where("content_items.delete_at IS NULL").
		Where("review_records.review_status IN ?", statuses)

	if !models.IsAdminRole(actor.Role) {
		query = query.Where(
			"content_items.category IN (?)",
			config.DB.Model(&models.Assignment{}).
				Select("category").
				Where("editor_id = ? AND delete_at IS NULL", actor.ID),
		)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("content_items.category = ?", category)
	}

	var records []models.ReviewRecord
	if err := query.Order("review_records.submitted_at DESC").Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch review queue"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "reviews": records, "total": len(records)})
}

// GetAssignedReviews lists open reviews assigned to the requesting editor.
func GetAssignedReviews(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User context missing"})
		return
	}

	var records []models.ReviewRecord
	err := config.DB.
		Where("reviewer_id = ?", actor.ID).
		Where("review_status IN ?", []string{
			models.ReviewStatusAssigned, models.ReviewStatusInReview, models.ReviewStatusOnHold,
		}).
		Order("FIELD(priority, 'urgent', 'high', 'normal', 'low'), submitted_at ASC").
		Find(&records).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch assigned reviews"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "reviews": records, "total": len(records)})
}

// GetContentReview returns the canonical (most recent) review record for a
// content item.
func GetContentReview(c *gin.Context) {
	_, item, ok := loadContentForActor(c)
	if !ok {
		return
	}

	var record models.ReviewRecord
	err := config.DB.Preload("Reviewer").
		Where("content_id = ?", item.ContentID).
		Order("review_id DESC").
		First(&record).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No review record for this content item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "review": record})
}
