package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/harvestplan/backend/internal/middleware"
	"github.com/pageza/harvestplan/backend/internal/service"
)

// Services groups everything the HTTP layer calls into.
type Services struct {
	Auth        service.IAuthService
	Inventory   service.IInventoryService
	Recipes     service.IRecipeService
	Suggestions service.ISuggestionService
	Plans       service.IPlanService
	SchoolMenu  service.ISchoolMenuService
	Events      service.IEventService
	// PlanLimiter throttles week plan generation; nil disables it.
	PlanLimiter *middleware.RateLimiter
}

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Harvest Planner API is running",
		"version": "v1.0.0",
	})
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, svc Services) {
	router.GET("/health", HealthCheck)
	router.GET("/api/health", HealthCheck)

	v1 := router.Group("/api/v1")
	NewAuthHandler(svc.Auth).RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(svc.Auth))
	NewInventoryHandler(svc.Inventory).RegisterRoutes(protected)
	NewRecipeHandler(svc.Recipes).RegisterRoutes(protected)
	NewSuggestionHandler(svc.Suggestions).RegisterRoutes(protected)
	NewPlanHandler(svc.Plans, svc.SchoolMenu, svc.PlanLimiter).RegisterRoutes(protected)
	NewEventHandler(svc.Events).RegisterRoutes(protected)
}
