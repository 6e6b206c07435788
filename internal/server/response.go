package server

import (
	"errors"
	"net/http"

	"StockProphet/internal/auth"

	"github.com/gin-gonic/gin"
)

// Response is the envelope of every API reply.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func respond(c *gin.Context, status int, data any, message string) {
	c.JSON(status, Response{Success: true, Message: message, Data: data})
}

func respondError(c *gin.Context, status int, err error) {
	c.AbortWithStatusJSON(status, Response{Success: false, Error: err.Error()})
}

// authStatus maps auth errors to HTTP status codes.
func authStatus(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrUserExists):
		return http.StatusConflict
	case errors.Is(err, auth.ErrSessionNotFound):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
