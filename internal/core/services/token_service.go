package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/groupsoftware/minhasfinancas/internal/apperrors"
	"github.com/groupsoftware/minhasfinancas/internal/core/domain"
	portssvc "github.com/groupsoftware/minhasfinancas/internal/core/ports/services"
	"github.com/groupsoftware/minhasfinancas/internal/platform/config"
	"github.com/groupsoftware/minhasfinancas/internal/utils"
)

// tokenService implements the TokenSvcFacade for handling JWT and refresh
// tokens. It is pure computation over the configured secrets; it persists
// nothing itself.
type tokenService struct {
	cfg         *config.Config
	userService portssvc.UserSvcFacade
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config, userService portssvc.UserSvcFacade) portssvc.TokenSvcFacade {
	return &tokenService{
		cfg:         cfg,
		userService: userService,
	}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

// GenerateAccessToken creates a new JWT access token for the given user.
// The subject is the user's email, the login identifier.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiryTime := time.Now().Add(s.cfg.JWTExpiryDuration)

	accessToken, err := utils.GenerateJWT(user.Email, user.UserID, user.Name, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, err
	}
	return accessToken, expiryTime, nil
}

// GenerateRefreshToken creates a new opaque refresh token for the given user.
func (s *tokenService) GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	// 32 random bytes give a 64-character hex string.
	rawRefreshToken, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate secure random string for refresh token: %w", err)
	}

	expiryTime := time.Now().Add(s.cfg.RefreshTokenExpiryDuration)
	return rawRefreshToken, expiryTime, nil
}

// ValidateAndParseRefreshToken validates a refresh token string against the
// hash stored for the user and returns the user when it matches.
func (s *tokenService) ValidateAndParseRefreshToken(ctx context.Context, userID string, refreshTokenString string) (*domain.User, error) {
	user, err := s.userService.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to retrieve user for refresh token validation: %w", err)
	}

	if user.RefreshTokenHash == "" || user.RefreshTokenExpiryTime == nil {
		return nil, apperrors.ErrUnauthorized
	}
	if time.Now().After(*user.RefreshTokenExpiryTime) {
		return nil, apperrors.ErrTokenExpired
	}
	if !utils.CompareRefreshTokenHash(refreshTokenString, user.RefreshTokenHash) {
		return nil, apperrors.ErrUnauthorized
	}

	return user, nil
}

// ValidateToken reports whether the token has a valid signature and has not
// expired.
func (s *tokenService) ValidateToken(ctx context.Context, tokenString string) bool {
	_, err := utils.ParseAndValidateJWT(tokenString, s.cfg.JWTSecret)
	return err == nil
}

// ParseClaims returns the signed payload of an access token. An expired
// token yields apperrors.ErrTokenExpired.
func (s *tokenService) ParseClaims(ctx context.Context, tokenString string) (*utils.AccessTokenClaims, error) {
	claims, err := utils.ParseAndValidateJWT(tokenString, s.cfg.JWTSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, err
	}
	return claims, nil
}

// SubjectFromToken extracts the subject claim without validating the token.
func (s *tokenService) SubjectFromToken(tokenString string) (string, error) {
	return utils.ExtractSubjectUnverified(tokenString)
}
