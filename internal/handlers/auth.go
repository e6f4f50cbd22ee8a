package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bintangginanjar/Personal-Portfolio-API/internal/middleware"
	"github.com/bintangginanjar/Personal-Portfolio-API/internal/service"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	Username  string   `json:"username"`
	Token     string   `json:"token"`
	TokenType string   `json:"tokenType"`
	Roles     []string `json:"roles"`
}

func (h HandlerSet) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, "Validation failed")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondFail(c, http.StatusUnauthorized, "Wrong username or password")
			return
		}
		h.log.Error().Err(err).Msg("login failed")
		respondFail(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondOK(c, "Login success", tokenResponse{
		Username:  result.Username,
		Token:     result.Token,
		TokenType: "Bearer ",
		Roles:     result.Roles,
	})
}

func (h HandlerSet) Logout(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondFail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), user); err != nil {
		h.log.Error().Err(err).Msg("logout failed")
		respondFail(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondOK(c, "Logout success", nil)
}
