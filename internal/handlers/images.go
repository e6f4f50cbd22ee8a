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

type registerImageRequest struct {
	Name     string `json:"name" binding:"required"`
	ImageURL string `json:"imageUrl" binding:"required"`
}

type updateImageRequest struct {
	Name     *string `json:"name"`
	ImageURL *string `json:"imageUrl"`
}

type imageResponse struct {
	ID        int64     `json:"id"`
	ProjectID int64     `json:"projectId"`
	Name      string    `json:"name"`
	ImageURL  string    `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toImageResponse(image models.ProjectImage) imageResponse {
	return imageResponse{
		ID:        image.ID,
		ProjectID: image.ProjectID,
		Name:      image.Name,
		ImageURL:  image.ImageURL,
		CreatedAt: image.CreatedAt,
		UpdatedAt: image.UpdatedAt,
	}
}

// resolveProject looks up the path project with ownership scoping; it writes
// the error response itself when the lookup fails.
func (h HandlerSet) resolveProject(c *gin.Context) (models.Project, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondFail(c, http.StatusUnauthorized, "Unauthorized")
		return models.Project{}, false
	}

	projectID, ok := parseID(c, "projectId")
	if !ok {
		return models.Project{}, false
	}

	project, err := h.projects.FindByID(c.Request.Context(), user.ID, projectID)
	if err != nil {
		respondLookupError(c, err, repository.ErrProjectNotFound, "Project not found")
		return models.Project{}, false
	}
	return project, true
}

func (h HandlerSet) RegisterImage(c *gin.Context) {
	project, ok := h.resolveProject(c)
	if !ok {
		return
	}

	var req registerImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, "Validation failed")
		return
	}

	image := models.ProjectImage{
		ProjectID: project.ID,
		Name:      req.Name,
		ImageURL:  req.ImageURL,
	}
	if err := h.images.Create(c.Request.Context(), &image); err != nil {
		h.log.Error().Err(err).Msg("image create failed")
		respondFail(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondOK(c, "Image registration success", toImageResponse(image))
}

func (h HandlerSet) GetImage(c *gin.Context) {
	project, ok := h.resolveProject(c)
	if !ok {
		return
	}

	imageID, ok := parseID(c, "imageId")
	if !ok {
		return
	}

	image, err := h.images.FindByID(c.Request.Context(), project.ID, imageID)
	if err != nil {
		respondLookupError(c, err, repository.ErrImageNotFound, "Image not found")
		return
	}

	respondOK(c, "Image fetching success", toImageResponse(image))
}

func (h HandlerSet) ListImages(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondFail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	images, err := h.images.ListByUser(c.Request.Context(), user.ID)
	if err != nil {
		h.log.Error().Err(err).Msg("image list failed")
		respondFail(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	resp := make([]imageResponse, 0, len(images))
	for _, image := range images {
		resp = append(resp, toImageResponse(image))
	}

	respondOK(c, "Image fetching success", resp)
}

func (h HandlerSet) UpdateImage(c *gin.Context) {
	project, ok := h.resolveProject(c)
	if !ok {
		return
	}

	imageID, ok := parseID(c, "imageId")
	if !ok {
		return
	}

	var req updateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, "Validation failed")
		return
	}

	image, err := h.images.FindByID(c.Request.Context(), project.ID, imageID)
	if err != nil {
		respondLookupError(c, err, repository.ErrImageNotFound, "Image not found")
		return
	}

	if req.Name != nil {
		image.Name = *req.Name
	}
	if req.ImageURL != nil {
		image.ImageURL = *req.ImageURL
	}

	if err := h.images.Update(c.Request.Context(), image); err != nil {
		h.log.Error().Err(err).Msg("image update failed")
		respondFail(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondOK(c, "Image update success", toImageResponse(image))
}

func (h HandlerSet) DeleteImage(c *gin.Context) {
	project, ok := h.resolveProject(c)
	if !ok {
		return
	}

	imageID, ok := parseID(c, "imageId")
	if !ok {
		return
	}

	if err := h.images.Delete(c.Request.Context(), project.ID, imageID); err != nil {
		if errors.Is(err, repository.ErrImageNotFound) {
			respondFail(c, http.StatusNotFound, "Image not found")
			return
		}
		h.log.Error().Err(err).Msg("image delete failed")
		respondFail(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondOK(c, "Image delete success", nil)
}
