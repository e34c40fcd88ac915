package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/PuneetGOTO/business-website-sub000/internal/domain/user"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/observability/logging"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/observability/performance"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/security"
)

// AuthService handles authentication workflows and JWT operations
type AuthService struct {
	users       user.Repository
	jwtSecret   string
	tokenTTL    time.Duration
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewAuthService creates a new authentication service
func NewAuthService(users user.Repository, jwtSecret string, tokenTTL time.Duration,
	logger *logging.ChanneledLogger, perfTracker *performance.Tracker,
) *AuthService {
	return &AuthService{
		users:       users,
		jwtSecret:   jwtSecret,
		tokenTTL:    tokenTTL,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// LoginResult holds authentication result data
type LoginResult struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expiresAt"`
	User      *user.User `json:"user"`
}

// Login verifies credentials and issues a signed token
func (a *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	marker := a.perfTracker.StartOperation("auth_login")
	defer marker.Complete()

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, invalid("email and password are required")
	}

	u, err := a.users.FindByEmail(ctx, email)
	if err != nil {
		marker.SetError(err)
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if u == nil {
		a.logger.Auth().Warn("Login failed, unknown email", "email", email)
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		a.logger.Auth().Warn("Login failed, wrong password", "email", email)
		return nil, ErrInvalidCredentials
	}

	token, expires, err := security.GenerateJWT(u.ID, u.Email, u.IsAdmin, a.jwtSecret, a.tokenTTL)
	if err != nil {
		marker.SetError(err)
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Auth().Info("User logged in", "userId", u.ID, "isAdmin", u.IsAdmin)
	marker.SetSuccess(true)
	return &LoginResult{Token: token, ExpiresAt: expires, User: u}, nil
}

// ValidateToken parses a bearer token issued by Login
func (a *AuthService) ValidateToken(token string) (*security.Claims, error) {
	if token == "" {
		return nil, errors.New("empty token")
	}
	return security.ValidateJWT(token, a.jwtSecret)
}

// CurrentUser loads the user a token was issued to
func (a *AuthService) CurrentUser(ctx context.Context, id string) (*user.User, error) {
	u, err := a.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load user %s: %w", id, err)
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}
