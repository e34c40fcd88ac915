// Package user provides the SQL-based implementation of the user repository.
package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuneetGOTO/business-website-sub000/internal/domain/user"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/observability/logging"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/persistence/database"
	"github.com/PuneetGOTO/business-website-sub000/pkg/config"
)

// SQLUserRepository is the SQL-based implementation of user.Repository.
type SQLUserRepository struct {
	db     *sql.DB
	logger *logging.ChanneledLogger
}

// NewSQLUserRepository creates a new instance of the repository.
func NewSQLUserRepository(db *sql.DB, logger *logging.ChanneledLogger) *SQLUserRepository {
	return &SQLUserRepository{
		db:     db,
		logger: logger,
	}
}

// FindByEmail retrieves a user by email address. Emails are stored lowercased.
func (r *SQLUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	const query = `SELECT id, email, password_hash, is_admin, created_at FROM users WHERE email = ?`

	start := time.Now()
	email = strings.ToLower(strings.TrimSpace(email))
	r.logger.Database().Debug("Loading user by email", "email", email)

	u, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	database.CheckAndLogSlowQuery(r.logger, query, start, config.SlowQueryThreshold)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.logger.Database().Debug("User not found by email", "email", email)
			return nil, nil
		}
		r.logger.Database().Error("Failed to load user by email", "error", err.Error(), "email", email)
		return nil, err
	}
	return u, nil
}

// FindByID retrieves a user by id.
func (r *SQLUserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	const query = `SELECT id, email, password_hash, is_admin, created_at FROM users WHERE id = ?`

	start := time.Now()
	u, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	database.CheckAndLogSlowQuery(r.logger, query, start, config.SlowQueryThreshold)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Database().Error("Failed to load user by ID", "error", err.Error(), "id", id)
		return nil, err
	}
	return u, nil
}

// Store inserts a new user.
func (r *SQLUserRepository) Store(ctx context.Context, u *user.User) error {
	const query = `INSERT INTO users (id, email, password_hash, is_admin, created_at) VALUES (?, ?, ?, ?, ?)`

	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))

	if _, err := r.db.ExecContext(ctx, query, u.ID, u.Email, u.PasswordHash, u.IsAdmin, u.CreatedAt); err != nil {
		r.logger.Database().Error("Failed to store user", "error", err.Error(), "email", u.Email)
		return fmt.Errorf("failed to insert user: %w", err)
	}
	r.logger.Database().Info("User stored", "id", u.ID)
	return nil
}

func scanUser(row *sql.Row) (*user.User, error) {
	var u user.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}
