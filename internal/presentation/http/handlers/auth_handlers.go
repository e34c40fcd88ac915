package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/PuneetGOTO/business-website-sub000/internal/application/services"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/observability/logging"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/observability/performance"
	"github.com/PuneetGOTO/business-website-sub000/internal/presentation/http/middleware"
)

// LoginRequest represents the structure for login requests
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthHandlers contains all authentication-related HTTP handlers
type AuthHandlers struct {
	authService *services.AuthService
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewAuthHandlers creates auth handlers with injected dependencies
func NewAuthHandlers(authService *services.AuthService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// PostLogin handles POST /api/auth/login
func (h *AuthHandlers) PostLogin(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("post_login_request")
	defer marker.Complete()
	h.logger.Auth().Debug("Received login request", "method", c.Request.Method, "path", c.Request.URL.Path)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Auth().Error("Login request JSON binding failed", "error", err.Error())
		respondMessage(c, http.StatusBadRequest, "email and password are required")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Auth().Warn("Login attempt failed", "error", err.Error(), "duration", time.Since(start))
		marker.SetError(err)
		respondError(c, err)
		return
	}

	h.logger.Auth().Info("Login request completed", "userId", result.User.ID, "duration", time.Since(start))
	marker.SetSuccess(true)
	respondOK(c, gin.H{
		"token":     result.Token,
		"expiresAt": result.ExpiresAt,
		"user":      result.User,
	})
}

// GetMe handles GET /api/auth/me
func (h *AuthHandlers) GetMe(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		respondMessage(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	u, err := h.authService.CurrentUser(c.Request.Context(), claims.Subject)
	if err != nil {
		if statusFor(err) == http.StatusNotFound {
			respondMessage(c, http.StatusUnauthorized, "account no longer exists")
			return
		}
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"user": u})
}
