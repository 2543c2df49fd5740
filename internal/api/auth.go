package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/harvestplan/backend/internal/middleware"
	"github.com/pageza/harvestplan/backend/internal/service"
	"github.com/pageza/harvestplan/backend/internal/types"
)

type AuthHandler struct {
	authService service.IAuthService
}

func NewAuthHandler(authService service.IAuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, token, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, types.AuthResponse{Token: token, User: user})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.AuthResponse{Token: token, User: user})
}
