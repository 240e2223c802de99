package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"news-editorial-api/models"
)

// GetContentFeedback returns the feedback thread for a content item.
// Internal entries are only visible to editors and admins; authors see the
// rest of their thread.
func GetContentFeedback(c *gin.Context) {
	actor, item, ok := loadContentForActor(c)
	if !ok {
		return
	}

	newestFirst := c.Query("order") == "desc"
	includeInternal := actor.Role == models.RoleEditor || models.IsAdminRole(actor.Role)

	entries, err := deps.Feedback.ListByContent(item.ContentID, newestFirst, includeInternal)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch feedback"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "feedback": entries, "total": len(entries)})
}
