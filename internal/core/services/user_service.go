package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/groupsoftware/minhasfinancas/internal/apperrors"
	"github.com/groupsoftware/minhasfinancas/internal/core/domain"
	portsrepo "github.com/groupsoftware/minhasfinancas/internal/core/ports/repositories"
	portssvc "github.com/groupsoftware/minhasfinancas/internal/core/ports/services"
	"github.com/groupsoftware/minhasfinancas/internal/dto"
	"github.com/groupsoftware/minhasfinancas/internal/utils"
)

// userService owns user identity records and the email-uniqueness rule.
// Password hashing is delegated to the bcrypt helpers in utils.
type userService struct {
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new user service backed by the given repository.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// RegisterUser creates a new user, rejecting duplicate emails. Only the
// bcrypt hash of the password is persisted.
func (s *userService) RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	taken, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email availability: %w", err)
	}
	if taken {
		return nil, apperrors.ErrDuplicateEmail
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:        uuid.NewString(),
		Name:          req.Name,
		Email:         req.Email,
		PasswordHash:  passwordHash,
		CreatedAt:     now,
		LastUpdatedAt: now,
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	return &user, nil
}

// AuthenticateUser verifies the password for the user registered with the
// given email and returns the stored record on success.
func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user by email: %w", err)
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// IsEmailTaken reports whether the email is already registered.
func (s *userService) IsEmailTaken(ctx context.Context, email string) (bool, error) {
	return s.userRepo.ExistsByEmail(ctx, email)
}

// UpdateUser applies the non-nil request fields to the user's profile. When
// nothing changes the stored record is returned without a storage write.
func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	changed := false
	if req.Name != nil && *req.Name != user.Name {
		user.Name = *req.Name
		changed = true
	}
	if !changed {
		return user, nil
	}

	user.LastUpdatedAt = time.Now()
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, fmt.Errorf("failed to update user %s: %w", userID, err)
	}
	return user, nil
}

// FindOrCreateFromGoogle returns the user for a Google-verified email,
// registering one when absent. Federated users get a random password they
// never see; they can only sign in through Google until they reset it.
func (s *userService) FindOrCreateFromGoogle(ctx context.Context, name, email string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user by email: %w", err)
	}
	if user != nil {
		return user, nil
	}

	randomPassword, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate password for federated user: %w", err)
	}
	return s.RegisterUser(ctx, dto.RegisterUserRequest{
		Name:     name,
		Email:    email,
		Password: randomPassword,
	})
}

func (s *userService) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	return s.userRepo.UpdateRefreshToken(ctx, userID, refreshTokenHash, refreshTokenExpiryTime)
}

func (s *userService) ClearRefreshToken(ctx context.Context, userID string) error {
	return s.userRepo.ClearRefreshToken(ctx, userID)
}
