package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/harvestplan/backend/internal/middleware"
	"github.com/pageza/harvestplan/backend/internal/service"
	"github.com/pageza/harvestplan/backend/internal/types"
)

type InventoryHandler struct {
	inventory service.IInventoryService
}

func NewInventoryHandler(inventory service.IInventoryService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

func (h *InventoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	inv := router.Group("/inventory")
	{
		inv.GET("", h.List)
		inv.POST("", h.Create)
		inv.POST("/bulk", h.BulkCreate)
		inv.GET("/urgency", h.Urgency)
		inv.PUT("/:id", h.Update)
		inv.DELETE("/:id", h.Delete)
		inv.POST("/:id/used", h.MarkUsed)
		inv.DELETE("/:id/used", h.MarkUnused)
	}
}

// List returns unused items; ?include_used=true adds consumed ones.
func (h *InventoryHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	items, err := h.inventory.List(c.Request.Context(), userID, c.Query("include_used") == "true")
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *InventoryHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req types.InventoryItemRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.inventory.Create(c.Request.Context(), userID, &req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": item})
}

func (h *InventoryHandler) BulkCreate(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req types.BulkInventoryRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.inventory.BulkCreate(c.Request.Context(), userID, &req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *InventoryHandler) Urgency(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	report, err := h.inventory.Urgency(c.Request.Context(), userID)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": report})
}

func (h *InventoryHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req types.UpdateInventoryItemRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.inventory.Update(c.Request.Context(), userID, id, &req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

func (h *InventoryHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.inventory.Delete(c.Request.Context(), userID, id); err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *InventoryHandler) MarkUsed(c *gin.Context) {
	h.setUsed(c, true)
}

func (h *InventoryHandler) MarkUnused(c *gin.Context) {
	h.setUsed(c, false)
}

func (h *InventoryHandler) setUsed(c *gin.Context, used bool) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	mark := h.inventory.MarkUnused
	if used {
		mark = h.inventory.MarkUsed
	}
	item, err := mark(c.Request.Context(), userID, id)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}
