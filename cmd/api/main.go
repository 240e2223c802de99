package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"news-editorial-api/config"
	"news-editorial-api/controllers"
	"news-editorial-api/middleware"
	"news-editorial-api/routes"
	"news-editorial-api/services"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logFile, _ := config.InitLogging()
	if logFile != nil {
		defer logFile.Close()
	}

	// Initialize database
	config.InitDB()

	// Wire the workflow engine and its side-effect consumers
	store := services.NewWorkflowStore(config.DB)
	ruleSvc := services.NewRuleService(config.DB)
	assignments := services.NewAssignmentStore(config.DB)
	permSvc := services.NewPermissionService(assignments)
	activitySvc := services.NewActivityService(config.DB)
	notificationSvc := services.NewNotificationService(config.DB)

	bus := services.NewEventBus(activitySvc, notificationSvc)
	defer bus.Close()

	workflowSvc := services.NewWorkflowService(store, ruleSvc, permSvc, bus)

	controllers.Setup(controllers.Services{
		Workflow:    workflowSvc,
		Activity:    activitySvc,
		Feedback:    services.NewFeedbackService(config.DB),
		Rules:       ruleSvc,
		Assignments: assignments,
		Bus:         bus,
	})

	// Set Gin mode
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin router
	router := gin.New()

	// Add logging middleware
	router.Use(gin.Logger())

	// Add recovery middleware
	router.Use(gin.Recovery())

	// Add security headers middleware
	router.Use(func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Content-Security-Policy", "default-src 'self'")
		c.Next()
	})

	// Add CORS middleware
	router.Use(middleware.CORSMiddleware())

	// Setup routes
	routes.SetupRoutes(router)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Editorial API listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
