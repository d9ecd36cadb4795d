package handler

import (
	"net/http"

	"github.com/devporto/backend/internal/service"
	"github.com/devporto/backend/pkg/response"
	"github.com/gin-gonic/gin"
)

type StatHandler struct {
	service service.StatService
}

func NewStatHandler(service service.StatService) *StatHandler {
	return &StatHandler{service: service}
}

func (h *StatHandler) GetPlatformStats(c *gin.Context) {
	stats, err := h.service.GetPlatformStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, stats)
}

func (h *StatHandler) GetTrendingProjects(c *gin.Context) {
	projects, err := h.service.GetTrendingProjects(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, projects)
}
