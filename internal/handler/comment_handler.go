package handler

import (
	"net/http"

	"github.com/devporto/backend/internal/dto"
	"github.com/devporto/backend/internal/service"
	commonDto "github.com/devporto/backend/pkg/dto"
	"github.com/devporto/backend/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CommentHandler struct {
	service service.CommentService
}

func NewCommentHandler(service service.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	comment, err := h.service.AddComment(c.Request.Context(), userID, req)
	if err != nil {
		writeRateLimited(c, err)
		return
	}

	response.Success(c, http.StatusCreated, comment)
}

func (h *CommentHandler) GetProjectComments(c *gin.Context) {
	projectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var filter commonDto.PageFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		bindError(c, err)
		return
	}

	var viewerID *uuid.UUID
	if id, err := response.GetUserID(c); err == nil {
		viewerID = &id
	}

	comments, meta, err := h.service.GetComments(c.Request.Context(), projectID, viewerID, filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessPaginated(c, comments, meta)
}

func (h *CommentHandler) UpdateComment(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	commentID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	comment, err := h.service.UpdateComment(c.Request.Context(), userID, commentID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, comment)
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	commentID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteComment(c.Request.Context(), userID, commentID); err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessMessage(c, http.StatusOK, "comment deleted successfully")
}

func (h *CommentHandler) ToggleLike(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	commentID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	status, err := h.service.ToggleLike(c.Request.Context(), commentID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, status)
}
