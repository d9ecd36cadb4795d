package handler

import (
	"net/http"

	"github.com/devporto/backend/pkg/response"
	"github.com/devporto/backend/pkg/storage"
	"github.com/gin-gonic/gin"
)

const maxUploadSize = 10 << 20 // 10 MiB

type UploadHandler struct {
	storage storage.MediaStorage
}

func NewUploadHandler(storage storage.MediaStorage) *UploadHandler {
	return &UploadHandler{storage: storage}
}

// Upload stores a project media file and returns its public URL.
func (h *UploadHandler) Upload(c *gin.Context) {
	if _, err := response.GetUserID(c); err != nil {
		response.Error(c, err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Envelope{Success: false, Message: "file is required"})
		return
	}

	if fileHeader.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, response.Envelope{Success: false, Message: "file exceeds the 10MB limit"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Envelope{Success: false, Message: "could not read uploaded file"})
		return
	}
	defer file.Close()

	url, err := h.storage.UploadMedia(c.Request.Context(), file, "projects", fileHeader.Filename)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"url": url})
}
