package domain

import "time"

// User represents a registered user of the application.
// PasswordHash holds the bcrypt hash of the password; the raw password is
// never stored after registration.
type User struct {
	UserID       string `json:"userID"` // Primary Key (UUID)
	Name         string `json:"name"`
	Email        string `json:"email"` // Unique across all users
	PasswordHash string `json:"-"`

	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`

	// Refresh token state. Only the SHA-256 hash of the token is kept.
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
}
