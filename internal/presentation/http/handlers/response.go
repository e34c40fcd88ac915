// Package handlers provides HTTP request handlers for the presentation layer.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PuneetGOTO/business-website-sub000/internal/application/services"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/contentstore"
)

func respondOK(c *gin.Context, body gin.H) {
	body["success"] = true
	c.JSON(http.StatusOK, body)
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// statusFor maps service errors onto HTTP statuses.
func statusFor(err error) int {
	var verr *services.ValidationError
	var berr *contentstore.BackendError
	switch {
	case errors.As(err, &verr), errors.Is(err, contentstore.ErrUnknownSection):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrContactDisabled):
		return http.StatusServiceUnavailable
	case errors.Is(err, contentstore.ErrQuotaExceeded):
		return http.StatusInsufficientStorage
	case errors.As(err, &berr):
		return http.StatusBadGateway
	case errors.Is(err, contentstore.ErrUnreachable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	message := err.Error()
	if errors.Is(err, contentstore.ErrQuotaExceeded) {
		message = contentstore.ErrQuotaExceeded.Error()
	}
	respondMessage(c, status, message)
}
