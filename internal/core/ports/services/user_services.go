package services

import (
	"context"
	"time"

	"github.com/dianadimla/walo_backend/internal/core/domain"
	"github.com/dianadimla/walo_backend/internal/dto"
)

// UserSvcFacade defines user account operations.
type UserSvcFacade interface {
	// CreateUser registers a new local user with a bcrypt-hashed password.
	CreateUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// AuthenticateUser verifies email/password credentials and returns the
	// user on success, apperrors.ErrUnauthorized otherwise.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)

	// FindOrCreateGoogleUser resolves the user for a validated Google identity,
	// creating the account on first sign-in.
	FindOrCreateGoogleUser(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error)

	// UpdateUser updates mutable profile fields.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error)

	// DeleteUser soft-deletes the user.
	DeleteUser(ctx context.Context, userID string) error

	// StoreRefreshToken persists the hash and expiry of a newly issued refresh
	// token; nil values clear any stored token (logout).
	StoreRefreshToken(ctx context.Context, userID string, tokenHash *string, expiresAt *time.Time) error
}
