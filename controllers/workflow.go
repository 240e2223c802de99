package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"news-editorial-api/services"
)

type actionRequest struct {
	Action      string     `json:"action" binding:"required"`
	Feedback    string     `json:"feedback"`
	Priority    string     `json:"priority"`
	ReviewerID  int        `json:"reviewer_id"`
	ScheduledAt *time.Time `json:"scheduled_at"`
}

// ExecuteAction is the single endpoint through which every workflow action
// flows. The engine decides everything; this handler only translates.
func ExecuteAction(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User context missing"})
		return
	}

	contentID, err := strconv.Atoi(c.Param("id"))
	if err != nil || contentID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid content ID"})
		return
	}

	var req actionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	action, ok := services.ParseAction(req.Action)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown action", "action": req.Action})
		return
	}

	result, err := deps.Workflow.Execute(actor, contentID, services.ActionRequest{
		Action:      action,
		Feedback:    req.Feedback,
		Priority:    req.Priority,
		ReviewerID:  req.ReviewerID,
		ScheduledAt: req.ScheduledAt,
	})
	if err != nil {
		writeWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"content_status": result.ContentStatus,
		"review_status":  result.ReviewStatus,
	})
}

// writeWorkflowError maps the engine's rejection taxonomy onto HTTP.
func writeWorkflowError(c *gin.Context, err error) {
	we := services.AsWorkflowError(err)
	status := http.StatusInternalServerError
	switch we.Kind {
	case services.ErrValidation:
		status = http.StatusBadRequest
	case services.ErrPermissionDenied:
		status = http.StatusForbidden
	case services.ErrNotFound:
		status = http.StatusNotFound
	case services.ErrInvalidTransition, services.ErrConflict:
		status = http.StatusConflict
	}

	body := gin.H{"error": we.Message, "kind": we.Kind}
	if len(we.Violations) > 0 {
		body["violations"] = we.Violations
	}
	if we.Kind == services.ErrConflict {
		body["retryable"] = true
	}
	c.JSON(status, body)
}
