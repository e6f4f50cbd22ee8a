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

type registerSkillRequest struct {
	Name        string `json:"name" binding:"required"`
	ImageURL    string `json:"imageUrl" binding:"required"`
	IsPublished *bool  `json:"isPublished" binding:"required"`
}

type updateSkillRequest struct {
	Name        *string `json:"name"`
	ImageURL    *string `json:"imageUrl"`
	IsPublished *bool   `json:"isPublished"`
}

type skillResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	ImageURL    string    `json:"imageUrl"`
	IsPublished bool      `json:"isPublished"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toSkillResponse(skill models.Skill) skillResponse {
	return skillResponse{
		ID:          skill.ID,
		Name:        skill.Name,
		ImageURL:    skill.ImageURL,
		IsPublished: skill.IsPublished,
		CreatedAt:   skill.CreatedAt,
		UpdatedAt:   skill.UpdatedAt,
	}
}

func (h HandlerSet) RegisterSkill(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondFail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req registerSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, "Validation failed")
		return
	}

	skill := models.Skill{
		UserID:      user.ID,
		Name:        req.Name,
		ImageURL:    req.ImageURL,
		IsPublished: *req.IsPublished,
	}
	if err := h.skills.Create(c.Request.Context(), &skill); err != nil {
		h.log.Error().Err(err).Msg("skill create failed")
		respondFail(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondOK(c, "Skill register success", toSkillResponse(skill))
}

func (h HandlerSet) GetSkill(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondFail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	skillID, ok := parseID(c, "skillId")
	if !ok {
		return
	}

	skill, err := h.skills.FindByID(c.Request.Context(), user.ID, skillID)
	if err != nil {
		respondLookupError(c, err, repository.ErrSkillNotFound, "Skill not found")
		return
	}

	respondOK(c, "Skill fetching success", toSkillResponse(skill))
}

func (h HandlerSet) ListSkills(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondFail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	skills, err := h.skills.ListByUser(c.Request.Context(), user.ID)
	if err != nil {
		h.log.Error().Err(err).Msg("skill list failed")
		respondFail(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	resp := make([]skillResponse, 0, len(skills))
	for _, skill := range skills {
		resp = append(resp, toSkillResponse(skill))
	}

	respondOK(c, "Skill fetching success", resp)
}

func (h HandlerSet) UpdateSkill(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondFail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	skillID, ok := parseID(c, "skillId")
	if !ok {
		return
	}

	var req updateSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, "Validation failed")
		return
	}

	skill, err := h.skills.FindByID(c.Request.Context(), user.ID, skillID)
	if err != nil {
		respondLookupError(c, err, repository.ErrSkillNotFound, "Skill not found")
		return
	}

	if req.Name != nil {
		skill.Name = *req.Name
	}
	if req.ImageURL != nil {
		skill.ImageURL = *req.ImageURL
	}
	if req.IsPublished != nil {
		skill.IsPublished = *req.IsPublished
	}

	if err := h.skills.Update(c.Request.Context(), skill); err != nil {
		h.log.Error().Err(err).Msg("skill update failed")
		respondFail(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondOK(c, "Skill update success", toSkillResponse(skill))
}

func (h HandlerSet) DeleteSkill(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondFail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	skillID, ok := parseID(c, "skillId")
	if !ok {
		return
	}

	if err := h.skills.Delete(c.Request.Context(), user.ID, skillID); err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			respondFail(c, http.StatusNotFound, "Skill not found")
			return
		}
		h.log.Error().Err(err).Msg("skill delete failed")
		respondFail(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondOK(c, "Skill delete success", nil)
}
