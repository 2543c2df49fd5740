package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/harvestplan/backend/internal/apperr"
	"github.com/pageza/harvestplan/backend/internal/middleware"
	"github.com/pageza/harvestplan/backend/internal/service"
	"github.com/pageza/harvestplan/backend/internal/types"
)

const queryDateLayout = "2006-01-02"

type PlanHandler struct {
	plans       service.IPlanService
	schoolMenu  service.ISchoolMenuService
	planLimiter *middleware.RateLimiter
}

// NewPlanHandler wires week planning and the school menu. A nil limiter
// leaves plan generation unthrottled.
func NewPlanHandler(plans service.IPlanService, schoolMenu service.ISchoolMenuService, planLimiter *middleware.RateLimiter) *PlanHandler {
	return &PlanHandler{plans: plans, schoolMenu: schoolMenu, planLimiter: planLimiter}
}

func (h *PlanHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/plans/week", h.planLimiter.RateLimitMiddleware(), h.GenerateWeek)
	router.GET("/rate-limits/week-plan", h.RateLimitStatus)

	menu := router.Group("/school-menu")
	{
		menu.GET("", h.ListSchoolMenu)
		menu.POST("", h.AddSchoolMenu)
	}
}

func (h *PlanHandler) GenerateWeek(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req types.WeekPlanRequest
	if !bindJSON(c, &req) {
		return
	}
	plan, err := h.plans.GenerateWeek(c.Request.Context(), userID, &req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plan": plan})
}

// RateLimitStatus reports how many plan generations remain in the window.
func (h *PlanHandler) RateLimitStatus(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if !h.planLimiter.Enabled() {
		c.JSON(http.StatusOK, gin.H{"enabled": false})
		return
	}

	remaining, resetTime, err := h.planLimiter.GetRemainingRequests(c.Request.Context(), userID.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check rate limit"})
		return
	}

	cfg := h.planLimiter.Config()
	c.JSON(http.StatusOK, gin.H{
		"enabled":    true,
		"limit":      cfg.Limit,
		"remaining":  remaining,
		"reset_time": resetTime.Unix(),
		"window":     cfg.Window.String(),
	})
}

// ListSchoolMenu handles GET /school-menu?from=YYYY-MM-DD&to=YYYY-MM-DD.
// Both bounds are optional and inclusive.
func (h *PlanHandler) ListSchoolMenu(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	from, err := queryDate(c, "from")
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	to, err := queryDate(c, "to")
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	if !to.IsZero() {
		to = to.AddDate(0, 0, 1)
	}

	entries, err := h.schoolMenu.ListEntries(c.Request.Context(), userID, from, to)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (h *PlanHandler) AddSchoolMenu(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req types.SchoolMenuRequest
	if !bindJSON(c, &req) {
		return
	}
	entries, err := h.schoolMenu.AddEntries(c.Request.Context(), userID, &req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"entries": entries})
}

func queryDate(c *gin.Context, name string) (time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(queryDateLayout, raw, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be YYYY-MM-DD", apperr.ErrInvalidInput, name)
	}
	return t, nil
}
