package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"insightiq/backend"
	"insightiq/service"
	"insightiq/workspace"
)

var errBackendUnavailable = errors.New("backend is not configured (demo mode)")

// statusFor maps an error to the HTTP status returned to API clients.
func statusFor(err error) int {
	switch {
	case workspace.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, workspace.ErrSuperseded):
		return http.StatusConflict
	case errors.Is(err, workspace.ErrUploadUnavailable), errors.Is(err, errBackendUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, workspace.ErrDatasetNotFound):
		return http.StatusNotFound
	case errors.Is(err, workspace.ErrQueryFailed), errors.Is(err, workspace.ErrUploadFailed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrInvalidFilename), errors.Is(err, service.ErrUnsupportedFormat),
		errors.Is(err, service.ErrNoResult):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	if code := backend.StatusCode(err); code != 0 {
		return code
	}
	return http.StatusBadGateway
}

func (h *Handlers) respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("session", c.GetString(sessionKey)),
			zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
