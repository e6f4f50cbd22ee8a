package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bintangginanjar/Personal-Portfolio-API/internal/middleware"
	"github.com/bintangginanjar/Personal-Portfolio-API/internal/models"
	"github.com/bintangginanjar/Personal-Portfolio-API/internal/repository"
)

type registerProfileRequest struct {
	Firstname string `json:"firstname" binding:"required"`
	Lastname  string `json:"lastname" binding:"required"`
	About     string `json:"about" binding:"required"`
}

type updateProfileRequest struct {
	Firstname *string `json:"firstname"`
	Lastname  *string `json:"lastname"`
	About     *string `json:"about"`
}

type profileResponse struct {
	ID        int64     `json:"id"`
	Firstname string    `json:"firstname"`
	Lastname  string    `json:"lastname"`
	About     string    `json:"about"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toProfileResponse(profile models.Profile) profileResponse {
	return profileResponse{
		ID:        profile.ID,
		Firstname: profile.Firstname,
		Lastname:  profile.Lastname,
		About:     profile.About,
		CreatedAt: profile.CreatedAt,
		UpdatedAt: profile.UpdatedAt,
	}
}

func (h HandlerSet) RegisterProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondFail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req registerProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, "Validation failed")
		return
	}

	profile := models.Profile{
		UserID:    user.ID,
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		About:     req.About,
	}
	if err := h.profiles.Create(c.Request.Context(), &profile); err != nil {
		if errors.Is(err, repository.ErrProfileExists) {
			respondFail(c, http.StatusBadRequest, "Profile already registered")
			return
		}
		h.log.Error().Err(err).Msg("profile create failed")
		respondFail(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondOK(c, "Profile register success", toProfileResponse(profile))
}

func (h HandlerSet) GetProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondFail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	profile, err := h.profiles.FindByUser(c.Request.Context(), user.ID)
	if err != nil {
		respondLookupError(c, err, repository.ErrProfileNotFound, "Profile not found")
		return
	}

	respondOK(c, "Profile fetching success", toProfileResponse(profile))
}

func (h HandlerSet) UpdateProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondFail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, "Validation failed")
		return
	}

	profile, err := h.profiles.FindByUser(c.Request.Context(), user.ID)
	if err != nil {
		respondLookupError(c, err, repository.ErrProfileNotFound, "Profile not found")
		return
	}

	if req.Firstname != nil {
		profile.Firstname = *req.Firstname
	}
	if req.Lastname != nil {
		profile.Lastname = *req.Lastname
	}
	if req.About != nil {
		profile.About = *req.About
	}

	if err := h.profiles.Update(c.Request.Context(), profile); err != nil {
		h.log.Error().Err(err).Msg("profile update failed")
		respondFail(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondOK(c, "Profile update success", toProfileResponse(profile))
}

func (h HandlerSet) DeleteProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondFail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.profiles.Delete(c.Request.Context(), user.ID); err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			respondFail(c, http.StatusNotFound, "Profile not found")
			return
		}
		h.log.Error().Err(err).Msg("profile delete failed")
		respondFail(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondOK(c, "Profile delete success", nil)
}
