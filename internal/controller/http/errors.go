package http

import (
	"errors"
	"net/http"

	"maltlog/internal/usecase"
	"maltlog/pkg/logger"

	"github.com/gin-gonic/gin"
)

// respondError maps usecase sentinels onto HTTP statuses. Anything unmapped
// is a backend failure: logged and returned as a 500 carrying the message.
func respondError(c *gin.Context, log *logger.Logger, err error) {
	switch {
	case errors.Is(err, usecase.ErrAuthRequired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	case errors.Is(err, usecase.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, usecase.ErrBadCursor), errors.Is(err, usecase.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Error("Request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
