package handler

import (
	"net/http"

	"github.com/devporto/backend/internal/service"
	"github.com/devporto/backend/pkg/response"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	service service.AdminService
}

func NewAdminHandler(service service.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, users)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	adminID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	userID, ok := pathUUID(c, "userId")
	if !ok {
		return
	}

	if err := h.service.DeleteUser(c.Request.Context(), adminID, userID); err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessMessage(c, http.StatusOK, "user deleted successfully")
}
