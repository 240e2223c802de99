package controllers

import (
	"github.com/gin-gonic/gin"

	"news-editorial-api/services"
)

// Services bundles everything the handlers need. main wires it once at
// startup; handlers stay package-level functions using this shared set.
type Services struct {
	Workflow    *services.WorkflowService
	Activity    *services.ActivityService
	Feedback    *services.FeedbackService
	Rules       *services.RuleService
	Assignments *services.AssignmentStore
	Bus         services.EventPublisher
}

var deps Services

// Setup injects the service layer into the handler package.
func Setup(s Services) {
	deps = s
}

// actorFromContext rebuilds the authenticated actor the middleware stored.
func actorFromContext(c *gin.Context) (services.Actor, bool) {
	userID, ok := c.Get("userID")
	if !ok {
		return services.Actor{}, false
	}
	name, _ := c.Get("displayName")
	role, _ := c.Get("role")

	actor := services.Actor{ID: userID.(int)}
	if s, ok := name.(string); ok {
		actor.DisplayName = s
	}
	if s, ok := role.(string); ok {
		actor.Role = s
	}
	return actor, actor.ID != 0 && actor.Role != ""
}
