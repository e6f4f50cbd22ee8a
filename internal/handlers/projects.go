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

type registerProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	ImageURL    string `json:"imageUrl" binding:"required"`
	URL         string `json:"url" binding:"required"`
	Description string `json:"description" binding:"required"`
	Hashtag     string `json:"hashtag" binding:"required"`
	IsPublished *bool  `json:"isPublished" binding:"required"`
	IsOpen      *bool  `json:"isOpen" binding:"required"`
}

type updateProjectRequest struct {
	Name        *string `json:"name"`
	ImageURL    *string `json:"imageUrl"`
	URL         *string `json:"url"`
	Description *string `json:"description"`
	Hashtag     *string `json:"hashtag"`
	IsPublished *bool   `json:"isPublished"`
	IsOpen      *bool   `json:"isOpen"`
}

type projectResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	ImageURL    string    `json:"imageUrl"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	Hashtag     string    `json:"hashtag"`
	IsPublished bool      `json:"isPublished"`
	IsOpen      bool      `json:"isOpen"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toProjectResponse(project models.Project) projectResponse {
	return projectResponse{
		ID:          project.ID,
		Name:        project.Name,
		ImageURL:    project.ImageURL,
		URL:         project.URL,
		Description: project.Description,
		Hashtag:     project.Hashtag,
		IsPublished: project.IsPublished,
		IsOpen:      project.IsOpen,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}

func (h HandlerSet) RegisterProject(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondFail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req registerProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, "Validation failed")
		return
	}

	project := models.Project{
		UserID:      user.ID,
		Name:        req.Name,
		ImageURL:    req.ImageURL,
		URL:         req.URL,
		Description: req.Description,
		Hashtag:     req.Hashtag,
		IsPublished: *req.IsPublished,
		IsOpen:      *req.IsOpen,
	}
	if err := h.projects.Create(c.Request.Context(), &project); err != nil {
		h.log.Error().Err(err).Msg("project create failed")
		respondFail(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondOK(c, "Project registration success", toProjectResponse(project))
}

func (h HandlerSet) GetProject(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondFail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	projectID, ok := parseID(c, "projectId")
	if !ok {
		return
	}

	project, err := h.projects.FindByID(c.Request.Context(), user.ID, projectID)
	if err != nil {
		respondLookupError(c, err, repository.ErrProjectNotFound, "Project not found")
		return
	}

	respondOK(c, "Project fetching success", toProjectResponse(project))
}

func (h HandlerSet) ListProjects(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondFail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	projects, err := h.projects.ListByUser(c.Request.Context(), user.ID)
	if err != nil {
		h.log.Error().Err(err).Msg("project list failed")
		respondFail(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	resp := make([]projectResponse, 0, len(projects))
	for _, project := range projects {
		resp = append(resp, toProjectResponse(project))
	}

	respondOK(c, "Project fetching success", resp)
}

func (h HandlerSet) UpdateProject(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondFail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	projectID, ok := parseID(c, "projectId")
	if !ok {
		return
	}

	var req updateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, "Validation failed")
		return
	}

	project, err := h.projects.FindByID(c.Request.Context(), user.ID, projectID)
	if err != nil {
		respondLookupError(c, err, repository.ErrProjectNotFound, "Project not found")
		return
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.ImageURL != nil {
		project.ImageURL = *req.ImageURL
	}
	if req.URL != nil {
		project.URL = *req.URL
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Hashtag != nil {
		project.Hashtag = *req.Hashtag
	}
	if req.IsPublished != nil {
		project.IsPublished = *req.IsPublished
	}
	if req.IsOpen != nil {
		project.IsOpen = *req.IsOpen
	}

	if err := h.projects.Update(c.Request.Context(), project); err != nil {
		h.log.Error().Err(err).Msg("project update failed")
		respondFail(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondOK(c, "Project update success", toProjectResponse(project))
}

func (h HandlerSet) DeleteProject(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondFail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	projectID, ok := parseID(c, "projectId")
	if !ok {
		return
	}

	if err := h.projects.Delete(c.Request.Context(), user.ID, projectID); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			respondFail(c, http.StatusNotFound, "Project not found")
			return
		}
		h.log.Error().Err(err).Msg("project delete failed")
		respondFail(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondOK(c, "Project delete success", nil)
}
