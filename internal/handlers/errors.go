package handlers

import (
	"errors"

	"github.com/clubstack/backend/internal/services"
	"github.com/clubstack/backend/pkg/response"
	"github.com/gin-gonic/gin"
)

// writeServiceError maps service sentinels onto HTTP responses.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		response.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrUnauthorized):
		response.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrNoTenant):
		response.Forbidden(c, "no club membership")
	case errors.Is(err, services.ErrNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, services.ErrConflict):
		response.Conflict(c, err.Error())
	case errors.Is(err, services.ErrBackendUnavailable):
		response.Unavailable(c, "storage backend unavailable")
	default:
		response.ServerError(c, err.Error())
	}
}
