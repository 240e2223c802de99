package routes

import (
	"github.com/gin-gonic/gin"

	"news-editorial-api/controllers"
	"news-editorial-api/middleware"
	"news-editorial-api/models"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			public.POST("/login", controllers.Login)

			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Editorial API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// User profile
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Content items
			content := protected.Group("/content")
			{
				content.GET("", controllers.GetContents)
				content.GET("/:id", controllers.GetContent)

				// Writers create and edit their own drafts
				writers := middleware.RequireRole(
					models.RoleContributor, models.RoleAuthor, models.RoleSeniorWriter,
					models.RoleAdmin, models.RoleSuperAdmin,
				)
				content.POST("", writers, controllers.CreateContent)
				content.PUT("/:id", writers, controllers.UpdateContent)
				content.DELETE("/:id", writers, controllers.DeleteContent)

				// Every workflow action goes through this one endpoint
				content.POST("/:id/actions", controllers.ExecuteAction)

				content.GET("/:id/review", controllers.GetContentReview)
				content.GET("/:id/feedback", controllers.GetContentFeedback)
				content.GET("/:id/activity", controllers.GetContentActivity)
			}

			// Review queues (editors and admins)
			reviews := protected.Group("/reviews")
			reviews.Use(middleware.RequireRole(models.RoleEditor, models.RoleAdmin, models.RoleSuperAdmin))
			{
				reviews.GET("", controllers.GetReviewQueue)
				reviews.GET("/assigned", controllers.GetAssignedReviews)
			}

			// Notifications
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", controllers.GetNotifications)
				notifications.PUT("/:id/read", controllers.MarkNotificationRead)
				notifications.PUT("/read-all", controllers.MarkAllNotificationsRead)
			}

			// Admin: audit dashboards and workflow configuration
			admin := protected.Group("/admin")
			admin.Use(middleware.RequireAdmin())
			{
				admin.GET("/activity", controllers.GetActivity)
				admin.GET("/activity/stats", controllers.GetActivityStats)

				assignments := admin.Group("/assignments")
				{
					assignments.GET("", controllers.GetAssignments)
					assignments.POST("", controllers.CreateAssignment)
					assignments.PUT("/:id", controllers.UpdateAssignment)
					assignments.DELETE("/:id", controllers.DeleteAssignment)
				}

				rules := admin.Group("/publishing-rules")
				{
					rules.GET("", controllers.GetPublishingRules)
					rules.POST("", controllers.CreatePublishingRule)
					rules.PUT("/:id", controllers.UpdatePublishingRule)
					rules.DELETE("/:id", controllers.DeletePublishingRule)
				}
			}
		}
	}
}
