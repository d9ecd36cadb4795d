package handler

import (
	"net/http"

	"github.com/devporto/backend/pkg/response"
	"github.com/devporto/backend/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// bindError writes a 400 with a human readable validation message.
func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, response.Envelope{Success: false, Message: validator.FormatValidationError(err)})
}

// pathUUID parses a UUID path parameter, writing a 400 on failure.
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Envelope{Success: false, Message: "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}
