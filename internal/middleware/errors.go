package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/cycleradar/internal/domain/dto"
	"github.com/guttosm/cycleradar/internal/logger"
)

// ErrorHandler converts errors attached with c.Error into a JSON ErrorResponse.
//
// Behavior:
//   - Runs after the handler chain.
//   - Does nothing when the response was already written.
//   - A dto.ErrorResponse attached as error is sent as-is; anything else becomes a 500.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	last := c.Errors.Last().Err
	log := logger.Component("http")
	log.Error().Str("request_id", RequestIDFrom(c)).Err(last).Msg("request failed")

	var resp dto.ErrorResponse
	if errors.As(last, &resp) {
		c.JSON(statusOr(c.Writer.Status(), http.StatusInternalServerError), resp)
		return
	}
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error", last))
}

// AbortWithError stops the chain and writes a standardized error body.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}

func statusOr(status, fallback int) int {
	if status < http.StatusBadRequest {
		return fallback
	}
	return status
}
