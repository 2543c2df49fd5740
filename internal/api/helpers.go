package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/harvestplan/backend/internal/apperr"
	"github.com/pageza/harvestplan/backend/internal/middleware"
)

// currentUser reads the authenticated household or answers 401.
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
	}
	return id, ok
}

// pathID parses the named path parameter as a UUID or answers 400.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		middleware.RespondError(c, fmt.Errorf("%w: %s must be a UUID", apperr.ErrInvalidInput, name))
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON decodes the body or answers 400 with the binding error.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}
