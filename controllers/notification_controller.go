package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"news-editorial-api/config"
	"news-editorial-api/models"
)

// GetNotifications lists the requester's in-app notifications, newest first.
func GetNotifications(c *gin.Context) {
	userID, _ := c.Get("userID")

	q := config.DB.Where("user_id = ?", userID).Order("notification_id DESC")
	if c.Query("unread") == "1" {
		q = q.Where("is_read = ?", false)
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "50")); err == nil && limit > 0 {
		q = q.Limit(limit)
	}

	var notifications []models.Notification
	if err := q.Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "notifications": notifications, "total": len(notifications)})
}

// MarkNotificationRead marks one of the requester's notifications as read.
func MarkNotificationRead(c *gin.Context) {
	userID, _ := c.Get("userID")

	notificationID, err := strconv.Atoi(c.Param("id"))
	if err != nil || notificationID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
		return
	}

	now := time.Now()
	res := config.DB.Model(&models.Notification{}).
		Where("notification_id = ? AND user_id = ?", notificationID, userID).
		Updates(map[string]interface{}{"is_read": true, "update_at": now})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// MarkAllNotificationsRead clears the requester's unread counter.
func MarkAllNotificationsRead(c *gin.Context) {
	userID, _ := c.Get("userID")

	now := time.Now()
	err := config.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{"is_read": true, "update_at": now}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
