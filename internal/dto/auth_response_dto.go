package dto

import "time"

// LoginRequest represents the credentials supplied on login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response for a successful login.
// Name mirrors the original API, which returned the user's display name
// alongside the token.
type LoginResponse struct {
	Name      string    `json:"name"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// RefreshTokenResponse represents the response for a successful token refresh.
type RefreshTokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// GoogleExchangeCodeRequest is the body of the Google code-exchange endpoint.
type GoogleExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}
