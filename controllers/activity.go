package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetContentActivity returns the audit trail for one content item.
func GetContentActivity(c *gin.Context) {
	_, item, ok := loadContentForActor(c)
	if !ok {
		return
	}

	newestFirst := c.Query("order") == "desc"
	entries, err := deps.Activity.ListByContent(item.ContentID, newestFirst)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch activity log"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "activity": entries, "total": len(entries)})
}

// GetActivity lists audit entries by actor, admin-only dashboard feed.
func GetActivity(c *gin.Context) {
	actorID, err := strconv.Atoi(c.Query("actor_id"))
	if err != nil || actorID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "actor_id is required"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	entries, err := deps.Activity.ListByActor(actorID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch activity log"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "activity": entries, "total": len(entries)})
}

// GetActivityStats returns audit counts grouped by action or actor for the
// operational dashboards.
func GetActivityStats(c *gin.Context) {
	groupBy := c.DefaultQuery("group_by", "action")

	var (
		rows interface{}
		err  error
	)
	switch groupBy {
	case "action":
		rows, err = deps.Activity.CountByAction()
	case "actor":
		rows, err = deps.Activity.CountByActor()
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "group_by must be 'action' or 'actor'"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate activity log"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "group_by": groupBy, "stats": rows})
}
