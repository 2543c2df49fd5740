package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/harvestplan/backend/internal/middleware"
	"github.com/pageza/harvestplan/backend/internal/service"
	"github.com/pageza/harvestplan/backend/internal/types"
)

type EventHandler struct {
	events service.IEventService
}

func NewEventHandler(events service.IEventService) *EventHandler {
	return &EventHandler{events: events}
}

func (h *EventHandler) RegisterRoutes(router *gin.RouterGroup) {
	events := router.Group("/events")
	{
		events.GET("", h.ListEvents)
		events.POST("", h.CreateEvent)
		events.GET("/:id", h.GetEvent)
		events.DELETE("/:id", h.DeleteEvent)
		events.POST("/:id/dishes", h.AddDish)
		events.GET("/:id/timeline", h.Timeline)
	}
}

func (h *EventHandler) ListEvents(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	events, err := h.events.ListEvents(c.Request.Context(), userID)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

func (h *EventHandler) CreateEvent(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req types.EventRequest
	if !bindJSON(c, &req) {
		return
	}
	event, err := h.events.CreateEvent(c.Request.Context(), userID, &req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"event": event})
}

func (h *EventHandler) GetEvent(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	event, err := h.events.GetEvent(c.Request.Context(), userID, id)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"event": event})
}

func (h *EventHandler) DeleteEvent(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.events.DeleteEvent(c.Request.Context(), userID, id); err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *EventHandler) AddDish(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req types.DishRequest
	if !bindJSON(c, &req) {
		return
	}
	dish, err := h.events.AddDish(c.Request.Context(), userID, id, &req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"dish": dish})
}

// Timeline returns the make-ahead list and the day-of schedule.
func (h *EventHandler) Timeline(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	tl, err := h.events.Timeline(c.Request.Context(), userID, id)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"timeline": tl})
}
