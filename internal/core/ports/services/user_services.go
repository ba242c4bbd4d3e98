package services

import (
	"context"
	"time"

	"github.com/groupsoftware/minhasfinancas/internal/core/domain"
	"github.com/groupsoftware/minhasfinancas/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// IsEmailTaken reports whether a user is already registered with the
	// given email. Exposed for validation-only callers.
	IsEmailTaken(ctx context.Context, email string) (bool, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// RegisterUser creates a new user with a hashed password. Fails with
	// apperrors.ErrDuplicateEmail when the email is taken.
	RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)

	// UpdateUser applies the non-nil fields of the request to the user's
	// profile. Fails with apperrors.ErrNotFound when the user is absent.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error)

	// FindOrCreateFromGoogle returns the user for a Google-verified email,
	// registering one with a random password when absent.
	FindOrCreateFromGoogle(ctx context.Context, name, email string) (*domain.User, error)

	// UpdateRefreshToken updates the refresh token details for a user.
	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error

	// ClearRefreshToken clears the refresh token for a user.
	ClearRefreshToken(ctx context.Context, userID string) error
}

// UserAuthSvc defines operations for user authentication
type UserAuthSvc interface {
	// AuthenticateUser authenticates a user with email and password. Fails
	// with apperrors.ErrUserNotFound when the email is unknown and with
	// apperrors.ErrInvalidCredentials when the password does not match.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthSvc
}
