package dto

import (
	"github.com/groupsoftware/minhasfinancas/internal/core/domain"
)

// RegisterUserRequest defines the data required to register a new user.
type RegisterUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// UpdateUserRequest carries the updatable profile fields. Nil fields are
// left untouched. Email is the login identifier and is not updatable.
type UpdateUserRequest struct {
	Name *string `json:"name" binding:"omitempty,min=1"`
}

// UserResponse is the transport representation of a user. The password hash
// is never exposed.
type UserResponse struct {
	UserID string `json:"userID"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// ToUserResponse converts a domain.User to its transport representation.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID: user.UserID,
		Name:   user.Name,
		Email:  user.Email,
	}
}
