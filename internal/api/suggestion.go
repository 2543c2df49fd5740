package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pageza/harvestplan/backend/internal/apperr"
	"github.com/pageza/harvestplan/backend/internal/middleware"
	"github.com/pageza/harvestplan/backend/internal/service"
)

const defaultSuggestionLimit = 10

type SuggestionHandler struct {
	suggestions service.ISuggestionService
}

func NewSuggestionHandler(suggestions service.ISuggestionService) *SuggestionHandler {
	return &SuggestionHandler{suggestions: suggestions}
}

func (h *SuggestionHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/suggestions", h.Suggest)
}

// Suggest ranks the household's recipes against what is in the fridge.
// ?limit=0 returns every match.
func (h *SuggestionHandler) Suggest(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	limit := defaultSuggestionLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			middleware.RespondError(c, fmt.Errorf("%w: limit must be a non-negative integer", apperr.ErrInvalidInput))
			return
		}
		limit = n
	}

	suggestions, err := h.suggestions.Suggest(c.Request.Context(), userID, limit)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}
