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

type registerServiceRequest struct {
	Name        string `json:"name" binding:"required"`
	ImageURL    string `json:"imageUrl" binding:"required"`
	Description string `json:"description" binding:"required"`
	IsPublished *bool  `json:"isPublished" binding:"required"`
}

type updateServiceRequest struct {
	Name        *string `json:"name"`
	ImageURL    *string `json:"imageUrl"`
	Description *string `json:"description"`
	IsPublished *bool   `json:"isPublished"`
}

type serviceResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	ImageURL    string    `json:"imageUrl"`
	Description string    `json:"description"`
	IsPublished bool      `json:"isPublished"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toServiceResponse(service models.Service) serviceResponse {
	return serviceResponse{
		ID:          service.ID,
		Name:        service.Name,
		ImageURL:    service.ImageURL,
		Description: service.Description,
		IsPublished: service.IsPublished,
		CreatedAt:   service.CreatedAt,
		UpdatedAt:   service.UpdatedAt,
	}
}

func (h HandlerSet) RegisterService(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondFail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req registerServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, "Validation failed")
		return
	}

	service := models.Service{
		UserID:      user.ID,
		Name:        req.Name,
		ImageURL:    req.ImageURL,
		Description: req.Description,
		IsPublished: *req.IsPublished,
	}
	if err := h.services.Create(c.Request.Context(), &service); err != nil {
		h.log.Error().Err(err).Msg("service create failed")
		respondFail(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondOK(c, "Service registration success", toServiceResponse(service))
}

func (h HandlerSet) GetService(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondFail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	serviceID, ok := parseID(c, "serviceId")
	if !ok {
		return
	}

	service, err := h.services.FindByID(c.Request.Context(), user.ID, serviceID)
	if err != nil {
		respondLookupError(c, err, repository.ErrServiceNotFound, "Service not found")
		return
	}

	respondOK(c, "Service fetching success", toServiceResponse(service))
}

func (h HandlerSet) ListServices(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondFail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	services, err := h.services.ListByUser(c.Request.Context(), user.ID)
	if err != nil {
		h.log.Error().Err(err).Msg("service list failed")
		respondFail(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	resp := make([]serviceResponse, 0, len(services))
	for _, service := range services {
		resp = append(resp, toServiceResponse(service))
	}

	respondOK(c, "Service fetching success", resp)
}

func (h HandlerSet) UpdateService(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondFail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	serviceID, ok := parseID(c, "serviceId")
	if !ok {
		return
	}

	var req updateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, "Validation failed")
		return
	}

	service, err := h.services.FindByID(c.Request.Context(), user.ID, serviceID)
	if err != nil {
		respondLookupError(c, err, repository.ErrServiceNotFound, "Service not found")
		return
	}

	if req.Name != nil {
		service.Name = *req.Name
	}
	if req.ImageURL != nil {
		service.ImageURL = *req.ImageURL
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.IsPublished != nil {
		service.IsPublished = *req.IsPublished
	}

	if err := h.services.Update(c.Request.Context(), service); err != nil {
		h.log.Error().Err(err).Msg("service update failed")
		respondFail(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondOK(c, "Service update success", toServiceResponse(service))
}

func (h HandlerSet) DeleteService(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondFail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	serviceID, ok := parseID(c, "serviceId")
	if !ok {
		return
	}

	if err := h.services.Delete(c.Request.Context(), user.ID, serviceID); err != nil {
		if errors.Is(err, repository.ErrServiceNotFound) {
			respondFail(c, http.StatusNotFound, "Service not found")
			return
		}
		h.log.Error().Err(err).Msg("service delete failed")
		respondFail(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondOK(c, "Service delete success", nil)
}
