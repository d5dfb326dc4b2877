// internal/handlers/auth/auth_handler.go
package auth

import (
	"net/http"

	"alamin-service/internal/middleware"
	"alamin-service/internal/pkg/response"
	service "alamin-service/internal/service/auth"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates a user and returns a token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.FromError(c, "login failed", err)
		return
	}

	response.Success(c, http.StatusOK, "login successful", result)
}

// Logout revokes the current session.
func (h *AuthHandler) Logout(c *gin.Context) {
	actor := middleware.MustGetActor(c)
	jti, ok := middleware.GetJTI(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "no session", nil)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), actor.Username, jti); err != nil {
		response.FromError(c, "logout failed", err)
		return
	}

	response.Success(c, http.StatusOK, "logged out", nil)
}

// Me returns the authenticated actor.
func (h *AuthHandler) Me(c *gin.Context) {
	actor := middleware.MustGetActor(c)
	response.Success(c, http.StatusOK, "authenticated", actor)
}
