package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bintangginanjar/Personal-Portfolio-API/internal/middleware"
	"github.com/bintangginanjar/Personal-Portfolio-API/internal/repository"
	"github.com/bintangginanjar/Personal-Portfolio-API/internal/service"
)

type registerUserRequest struct {
	Username string `json:"username" binding:"required,max=128"`
	Password string `json:"password" binding:"required,max=128"`
	Role     string `json:"role" binding:"required,max=16"`
}

type userResponse struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

func (h HandlerSet) RegisterUser(c *gin.Context) {
	var req registerUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, "Validation failed")
		return
	}

	user, err := h.authService.Register(c.Request.Context(), service.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateUsername):
			respondFail(c, http.StatusBadRequest, "Username already registered")
		case errors.Is(err, repository.ErrRoleNotFound):
			respondFail(c, http.StatusNotFound, "Role not found")
		default:
			h.log.Error().Err(err).Msg("user registration failed")
			respondFail(c, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondOK(c, "User registration success", userResponse{
		Username: user.Username,
		Roles:    user.Roles,
	})
}

func (h HandlerSet) CurrentUser(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondFail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	respondOK(c, "User fetching success", userResponse{
		Username: user.Username,
		Roles:    user.Roles,
	})
}

type updateUserRequest struct {
	Password *string `json:"password" binding:"omitempty,max=128"`
}

// UpdateCurrentUser patches the caller's own record. An absent password is a
// no-op, never "clear this field".
func (h HandlerSet) UpdateCurrentUser(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondFail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, "Validation failed")
		return
	}

	if req.Password != nil {
		if err := h.authService.UpdatePassword(c.Request.Context(), user, *req.Password); err != nil {
			h.log.Error().Err(err).Msg("password update failed")
			respondFail(c, http.StatusInternalServerError, "Internal server error")
			return
		}
	}

	respondOK(c, "User password update success", userResponse{
		Username: user.Username,
		Roles:    user.Roles,
	})
}
