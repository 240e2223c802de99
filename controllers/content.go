package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"news-editorial-api/config"
	"news-editorial-api/models"
	"news-editorial-api/services"
	"news-editorial-api/utils"
)

type contentRequest struct {
	Title            string  `json:"title" binding:"required"`
	Body             string  `json:"body" binding:"required"`
	Category         string  `json:"category" binding:"required"`
	Excerpt          *string `json:"excerpt"`
	MetaDescription  *string `json:"meta_description"`
	FeaturedImageURL *string `json:"featured_image_url"`
	Tags             string  `json:"tags"`
}

// CreateContent creates a new draft owned by the requesting author.
func CreateContent(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User context missing"})
		return
	}

	var req contentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	item := models.ContentItem{
		UUID:             uuid.NewString(),
		Title:            utils.SanitizeInput(req.Title),
		Body:             req.Body,
		Category:         utils.SanitizeInput(req.Category),
		Status:           models.ContentStatusDraft,
		AuthorID:         actor.ID,
		WordCount:        utils.CountWords(req.Body),
		FeaturedImageURL: req.FeaturedImageURL,
		Excerpt:          req.Excerpt,
		MetaDescription:  req.MetaDescription,
		TagCount:         utils.CountTags(req.Tags),
		CreateAt:         &now,
		UpdateAt:         &now,
	}

	if err := config.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create content item"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "content": item})
}

// GetContents lists content items. Writers see their own; editors and
// admins see everything, filterable by status and category.
func GetContents(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User context missing"})
		return
	}

	query := config.DB.Preload("Author").Where("delete_at IS NULL")
	if models.IsWriterRole(actor.Role) {
		query = query.Where("author_id = ?", actor.ID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var items []models.ContentItem
	if err := query.Order("update_at DESC").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch content items"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "content": items, "total": len(items)})
}

// GetContent returns one content item if the requester may read it.
func GetContent(c *gin.Context) {
	_, item, ok := loadContentForActor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "content": item})
}

// UpdateContent lets the author edit while the item is a draft or sent back
// for changes. Derived fields are recomputed on every save so the engine
// never parses content at decision time.
func UpdateContent(c *gin.Context) {
	actor, item, ok := loadContentForActor(c)
	if !ok {
		return
	}
	if item.AuthorID != actor.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the author may edit this item"})
		return
	}
	if item.Status != models.ContentStatusDraft && item.Status != models.ContentStatusChangesRequested {
		c.JSON(http.StatusConflict, gin.H{"error": "Content can only be edited as a draft or after changes were requested"})
		return
	}

	var req contentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{
		"title":              utils.SanitizeInput(req.Title),
		"body":               req.Body,
		"word_count":         utils.CountWords(req.Body),
		"excerpt":            req.Excerpt,
		"meta_description":   req.MetaDescription,
		"featured_image_url": req.FeaturedImageURL,
		"tag_count":          utils.CountTags(req.Tags),
		"update_at":          time.Now(),
	}

	if err := config.DB.Model(&models.ContentItem{}).
		Where("content_id = ?", item.ContentID).
		Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update content item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Content updated"})
}

// DeleteContent soft-deletes a draft. Only the author may delete, and only
// while the item has never left draft.
func DeleteContent(c *gin.Context) {
	actor, item, ok := loadContentForActor(c)
	if !ok {
		return
	}
	if item.AuthorID != actor.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the author may delete this item"})
		return
	}
	if item.Status != models.ContentStatusDraft {
		c.JSON(http.StatusConflict, gin.H{"error": "Only drafts can be deleted"})
		return
	}

	now := time.Now()
	if err := config.DB.Model(&models.ContentItem{}).
		Where("content_id = ? AND status = ?", item.ContentID, models.ContentStatusDraft).
		Update("delete_at", now).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete content item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Draft deleted"})
}

// loadContentForActor loads the :id item and enforces read access: authors
// read their own items, editors and admins read everything.
func loadContentForActor(c *gin.Context) (actor services.Actor, item *models.ContentItem, ok bool) {
	a, okCtx := actorFromContext(c)
	if !okCtx {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User context missing"})
		return a, nil, false
	}

	contentID, err := strconv.Atoi(c.Param("id"))
	if err != nil || contentID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid content ID"})
		return a, nil, false
	}

	var loaded models.ContentItem
	if err := config.DB.Where("content_id = ? AND delete_at IS NULL", contentID).
		First(&loaded).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Content item not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load content item"})
		}
		return a, nil, false
	}

	if models.IsWriterRole(a.Role) && loaded.AuthorID != a.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "No access to this content item"})
		return a, nil, false
	}

	return a, &loaded, true
}
