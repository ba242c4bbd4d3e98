package services

import (
	"context"
	"time"

	"github.com/groupsoftware/minhasfinancas/internal/core/domain"
	"github.com/groupsoftware/minhasfinancas/internal/utils"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// TokenSvcFacade defines the interface for token management services.
type TokenSvcFacade interface {
	// GenerateAccessToken creates a signed, time-bounded JWT asserting the
	// user's identity (subject = email).
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// GenerateRefreshToken creates an opaque refresh token for the user.
	GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// ValidateAndParseRefreshToken validates a refresh token string against
	// a user's stored token details. It returns the user if the token is
	// valid and not expired.
	ValidateAndParseRefreshToken(ctx context.Context, userID string, refreshTokenString string) (*domain.User, error)

	// ValidateToken reports whether the token's signature is valid and its
	// expiry has not passed.
	ValidateToken(ctx context.Context, tokenString string) bool

	// ParseClaims returns the signed payload of a token. Fails with
	// apperrors.ErrTokenExpired when the embedded expiry has passed.
	ParseClaims(ctx context.Context, tokenString string) (*utils.AccessTokenClaims, error)

	// SubjectFromToken extracts the subject without validating the token.
	// Callers must still check validity before trusting it.
	SubjectFromToken(tokenString string) (string, error)
}

// GoogleOAuthSvcFacade defines the interface for Google OAuth operations.
type GoogleOAuthSvcFacade interface {
	// GenerateStateString creates a secure random string to be used as a
	// CSRF token for the OAuth flow.
	GenerateStateString(ctx context.Context) (string, error)

	// GetGoogleLoginURL returns the URL to redirect the user to for Google login.
	GetGoogleLoginURL(ctx context.Context, state string) string

	// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)

	// ValidateGoogleIDToken validates an ID token string from Google and
	// returns its payload.
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error)
}
