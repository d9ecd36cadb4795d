package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/devporto/backend/internal/dto"
	"github.com/devporto/backend/internal/service"
	"github.com/devporto/backend/pkg/ratelimit"
	"github.com/devporto/backend/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProjectHandler struct {
	service service.ProjectService
}

func NewProjectHandler(service service.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	project, err := h.service.CreateProject(c.Request.Context(), userID, req)
	if err != nil {
		writeRateLimited(c, err)
		return
	}

	response.Success(c, http.StatusCreated, project)
}

func (h *ProjectHandler) GetProject(c *gin.Context) {
	projectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var viewerID *uuid.UUID
	if id, err := response.GetUserID(c); err == nil {
		viewerID = &id
	}

	project, err := h.service.GetProject(c.Request.Context(), projectID, viewerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, project)
}

func (h *ProjectHandler) GetProjects(c *gin.Context) {
	var filter dto.ProjectFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		bindError(c, err)
		return
	}

	projects, meta, err := h.service.GetProjects(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessPaginated(c, projects, meta)
}

func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	projectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	project, err := h.service.UpdateProject(c.Request.Context(), userID, projectID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, project)
}

func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	projectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteProject(c.Request.Context(), userID, projectID); err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessMessage(c, http.StatusOK, "project deleted successfully")
}

func (h *ProjectHandler) RateProject(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	projectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req dto.RateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	project, err := h.service.AddRating(c.Request.Context(), projectID, userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, project)
}

func (h *ProjectHandler) ToggleLike(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	projectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	status, err := h.service.ToggleLike(c.Request.Context(), projectID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, status)
}

func (h *ProjectHandler) GetLikeStatus(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	projectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	status, err := h.service.GetLikeStatus(c.Request.Context(), projectID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, status)
}

// writeRateLimited is response.Error plus a Retry-After header when the
// failure is a cooldown.
func writeRateLimited(c *gin.Context, err error) {
	var rlErr *ratelimit.RateLimitError
	if errors.As(err, &rlErr) {
		c.Header("Retry-After", fmt.Sprintf("%.0f", rlErr.RetryAfter.Seconds()))
	}
	response.Error(c, err)
}
