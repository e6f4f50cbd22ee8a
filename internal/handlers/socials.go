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

type registerSocialAccountRequest struct {
	Name        string `json:"name" binding:"required"`
	URL         string `json:"url" binding:"required"`
	ImageURL    string `json:"imageUrl" binding:"required"`
	IsPublished *bool  `json:"isPublished" binding:"required"`
}

type updateSocialAccountRequest struct {
	Name        *string `json:"name"`
	URL         *string `json:"url"`
	ImageURL    *string `json:"imageUrl"`
	IsPublished *bool   `json:"isPublished"`
}

type socialAccountResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	ImageURL    string    `json:"imageUrl"`
	IsPublished bool      `json:"isPublished"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toSocialAccountResponse(account models.SocialAccount) socialAccountResponse {
	return socialAccountResponse{
		ID:          account.ID,
		Name:        account.Name,
		URL:         account.URL,
		ImageURL:    account.ImageURL,
		IsPublished: account.IsPublished,
		CreatedAt:   account.CreatedAt,
		UpdatedAt:   account.UpdatedAt,
	}
}

func (h HandlerSet) RegisterSocialAccount(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondFail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req registerSocialAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, "Validation failed")
		return
	}

	account := models.SocialAccount{
		UserID:      user.ID,
		Name:        req.Name,
		URL:         req.URL,
		ImageURL:    req.ImageURL,
		IsPublished: *req.IsPublished,
	}
	if err := h.socials.Create(c.Request.Context(), &account); err != nil {
		h.log.Error().Err(err).Msg("social account create failed")
		respondFail(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondOK(c, "Social account registration success", toSocialAccountResponse(account))
}

func (h HandlerSet) GetSocialAccount(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondFail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	socialID, ok := parseID(c, "socialId")
	if !ok {
		return
	}

	account, err := h.socials.FindByID(c.Request.Context(), user.ID, socialID)
	if err != nil {
		respondLookupError(c, err, repository.ErrSocialAccountNotFound, "Social account not found")
		return
	}

	respondOK(c, "Social account fetching success", toSocialAccountResponse(account))
}

func (h HandlerSet) ListSocialAccounts(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondFail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	accounts, err := h.socials.ListByUser(c.Request.Context(), user.ID)
	if err != nil {
		h.log.Error().Err(err).Msg("social account list failed")
		respondFail(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	resp := make([]socialAccountResponse, 0, len(accounts))
	for _, account := range accounts {
		resp = append(resp, toSocialAccountResponse(account))
	}

	respondOK(c, "Social account fetching success", resp)
}

func (h HandlerSet) UpdateSocialAccount(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondFail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	socialID, ok := parseID(c, "socialId")
	if !ok {
		return
	}

	var req updateSocialAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, "Validation failed")
		return
	}

	account, err := h.socials.FindByID(c.Request.Context(), user.ID, socialID)
	if err != nil {
		respondLookupError(c, err, repository.ErrSocialAccountNotFound, "Social account not found")
		return
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.URL != nil {
		account.URL = *req.URL
	}
	if req.ImageURL != nil {
		account.ImageURL = *req.ImageURL
	}
	if req.IsPublished != nil {
		account.IsPublished = *req.IsPublished
	}

	if err := h.socials.Update(c.Request.Context(), account); err != nil {
		h.log.Error().Err(err).Msg("social account update failed")
		respondFail(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondOK(c, "Social account update success", toSocialAccountResponse(account))
}

func (h HandlerSet) DeleteSocialAccount(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondFail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	socialID, ok := parseID(c, "socialId")
	if !ok {
		return
	}

	if err := h.socials.Delete(c.Request.Context(), user.ID, socialID); err != nil {
		if errors.Is(err, repository.ErrSocialAccountNotFound) {
			respondFail(c, http.StatusNotFound, "Social account not found")
			return
		}
		h.log.Error().Err(err).Msg("social account delete failed")
		respondFail(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondOK(c, "Social account delete success", nil)
}
