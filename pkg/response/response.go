package response

import (
	"log"
	"net/http"

	"github.com/devporto/backend/pkg/apperror"
	"github.com/devporto/backend/pkg/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Envelope is the shape every endpoint responds with.
type Envelope struct {
	Success    bool                `json:"success"`
	Data       interface{}         `json:"data,omitempty"`
	Message    string              `json:"message,omitempty"`
	Pagination *dto.PaginationMeta `json:"pagination,omitempty"`
}

// GetUserID retrieves the authenticated user ID from the context
func GetUserID(c *gin.Context) (uuid.UUID, error) {
	userIDStr, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	return userID, nil
}

func Success(c *gin.Context, code int, data interface{}) {
	c.JSON(code, Envelope{Success: true, Data: data})
}

func SuccessMessage(c *gin.Context, code int, message string) {
	c.JSON(code, Envelope{Success: true, Message: message})
}

func SuccessPaginated(c *gin.Context, data interface{}, meta dto.PaginationMeta) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data, Pagination: &meta})
}

// Error writes a standardized failure envelope for err.
func Error(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	// Log internal errors, hide their detail from clients
	if code == http.StatusInternalServerError {
		log.Printf("[Internal Error]: %v", err)
		c.JSON(code, Envelope{Success: false, Message: "internal server error"})
		return
	}

	c.JSON(code, Envelope{Success: false, Message: err.Error()})
}
