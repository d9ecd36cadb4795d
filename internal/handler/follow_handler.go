package handler

import (
	"net/http"

	"github.com/devporto/backend/internal/service"
	commonDto "github.com/devporto/backend/pkg/dto"
	"github.com/devporto/backend/pkg/response"
	"github.com/gin-gonic/gin"
)

type FollowHandler struct {
	service service.FollowService
}

func NewFollowHandler(service service.FollowService) *FollowHandler {
	return &FollowHandler{service: service}
}

func (h *FollowHandler) Follow(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	targetID, ok := pathUUID(c, "userId")
	if !ok {
		return
	}

	if err := h.service.Follow(c.Request.Context(), userID, targetID); err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessMessage(c, http.StatusCreated, "user followed successfully")
}

func (h *FollowHandler) Unfollow(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	targetID, ok := pathUUID(c, "userId")
	if !ok {
		return
	}

	if err := h.service.Unfollow(c.Request.Context(), userID, targetID); err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessMessage(c, http.StatusOK, "user unfollowed successfully")
}

func (h *FollowHandler) GetFollowers(c *gin.Context) {
	userID, ok := pathUUID(c, "userId")
	if !ok {
		return
	}

	var filter commonDto.PageFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		bindError(c, err)
		return
	}

	followers, meta, err := h.service.GetFollowers(c.Request.Context(), userID, filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessPaginated(c, followers, meta)
}

func (h *FollowHandler) GetFollowing(c *gin.Context) {
	userID, ok := pathUUID(c, "userId")
	if !ok {
		return
	}

	var filter commonDto.PageFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		bindError(c, err)
		return
	}

	following, meta, err := h.service.GetFollowing(c.Request.Context(), userID, filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessPaginated(c, following, meta)
}

func (h *FollowHandler) CheckFollowStatus(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	targetID, ok := pathUUID(c, "userId")
	if !ok {
		return
	}

	status, err := h.service.CheckFollowStatus(c.Request.Context(), userID, targetID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, status)
}
