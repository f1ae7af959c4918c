package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"voltport/services/booking"
)

// getLogger retrieves a Zap logger from the Gin context or creates a new one.
func getLogger(c *gin.Context) *zap.Logger {
	if l, exists := c.Get("logger"); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	logger, _ := zap.NewProduction()
	return logger
}

// currentUserID returns the authenticated user ID set by the auth middleware.
func currentUserID(c *gin.Context) (string, bool) {
	val, exists := c.Get("userID")
	if !exists {
		return "", false
	}
	id, ok := val.(string)
	return id, ok && id != ""
}

// respondServiceError translates booking service errors into HTTP responses.
func respondServiceError(c *gin.Context, logger *zap.Logger, err error) {
	switch e := err.(type) {
	case *booking.ValidationError:
		c.JSON(http.StatusBadRequest, gin.H{"error": e.Error()})
	case *booking.NotFoundError:
		c.JSON(http.StatusNotFound, gin.H{"error": e.Error()})
	case *booking.ConflictError:
		c.JSON(http.StatusConflict, gin.H{"error": e.Error()})
	case *booking.ForbiddenError:
		c.JSON(http.StatusForbidden, gin.H{"error": e.Error()})
	default:
		logger.Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
