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

type assignmentRequest struct {
	EditorID   int    `json:"editor_id" binding:"required"`
	Category   string `json:"category" binding:"required"`
	CanApprove bool   `json:"can_approve"`
	CanPublish bool   `json:"can_publish"`
}

// GetAssignments lists editor assignments, filterable by category or editor.
func GetAssignments(c *gin.Context) {
	query := config.DB.Preload("Editor").Where("delete_at IS NULL")
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if editorID := c.Query("editor_id"); editorID != "" {
		query = query.Where("editor_id = ?", editorID)
	}

	var assignments []models.Assignment
	if err := query.Order("category ASC, editor_id ASC").Find(&assignments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch assignments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "assignments": assignments, "total": len(assignments)})
}

// CreateAssignment grants an editor capabilities in one category.
func CreateAssignment(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User context missing"})
		return
	}

	var req assignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	category := utils.SanitizeInput(req.Category)

	var editor models.User
	if err := config.DB.Where("user_id = ? AND role = ? AND delete_at IS NULL", req.EditorID, models.RoleEditor).
		First(&editor).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "editor_id must reference an existing editor"})
		return
	}

	var existing models.Assignment
	err := config.DB.Where("editor_id = ? AND category = ? AND delete_at IS NULL", req.EditorID, category).
		First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Assignment already exists", "assignment": existing})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing assignment"})
		return
	}

	now := time.Now()
	assignment := models.Assignment{
		EditorID:   req.EditorID,
		Category:   category,
		CanApprove: req.CanApprove,
		CanPublish: req.CanPublish,
		CreateAt:   &now,
		UpdateAt:   &now,
	}
	if err := config.DB.Create(&assignment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create assignment"})
		return
	}

	deps.Assignments.Invalidate(req.EditorID, category)
	deps.Bus.Publish(services.SystemEvent("assignment_created",
		fmt.Sprintf("granted editor %d access to category %q (approve=%t publish=%t)",
			req.EditorID, category, req.CanApprove, req.CanPublish), actor))

	c.JSON(http.StatusCreated, gin.H{"success": true, "assignment": assignment})
}

// UpdateAssignment changes an assignment's capabilities.
func UpdateAssignment(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User context missing"})
		return
	}

	assignmentID, err := strconv.Atoi(c.Param("id"))
	if err != nil || assignmentID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignment ID"})
		return
	}

	var req struct {
		CanApprove *bool `json:"can_approve"`
		CanPublish *bool `json:"can_publish"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var assignment models.Assignment
	if err := config.DB.Where("assignment_id = ? AND delete_at IS NULL", assignmentID).
		First(&assignment).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Assignment not found"})
		return
	}

	updates := map[string]interface{}{"update_at": time.Now()}
	if req.CanApprove != nil {
		updates["can_approve"] = *req.CanApprove
	}
	if req.CanPublish != nil {
		updates["can_publish"] = *req.CanPublish
	}
	if err := config.DB.Model(&assignment).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update assignment"})
		return
	}

	deps.Assignments.Invalidate(assignment.EditorID, assignment.Category)
	deps.Bus.Publish(services.SystemEvent("assignment_updated",
		fmt.Sprintf("updated capabilities for editor %d in category %q", assignment.EditorID, assignment.Category), actor))

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Assignment updated"})
}

// DeleteAssignment revokes an editor's category access.
func DeleteAssignment(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User context missing"})
		return
	}

	assignmentID, err := strconv.Atoi(c.Param("id"))
	if err != nil || assignmentID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignment ID"})
		return
	}

	var assignment models.Assignment
	if err := config.DB.Where("assignment_id = ? AND delete_at IS NULL", assignmentID).
		First(&assignment).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Assignment not found"})
		return
	}

	if err := config.DB.Model(&assignment).Update("delete_at", time.Now()).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete assignment"})
		return
	}

	deps.Assignments.Invalidate(assignment.EditorID, assignment.Category)
	deps.Bus.Publish(services.SystemEvent("assignment_revoked",
		fmt.Sprintf("revoked editor %d access to category %q", assignment.EditorID, assignment.Category), actor))

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Assignment revoked"})
}
