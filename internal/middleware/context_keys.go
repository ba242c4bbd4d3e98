package middleware

import "github.com/gin-gonic/gin"

// userIDKey is the key used to store the authenticated user's ID in the
// request context.
const userIDKey = contextKey("userID")

// userEmailKey is the key used to store the authenticated user's email
// (the token subject) in the request context.
const userEmailKey = contextKey("userEmail")

// GetUserIDFromContext retrieves the authenticated user ID from the Gin
// context. It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal := c.Request.Context().Value(userIDKey)
	if userIDVal == nil {
		return "", false
	}
	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}
	return userID, true
}

// GetUserEmailFromContext retrieves the authenticated user's email from the
// Gin context.
func GetUserEmailFromContext(c *gin.Context) (string, bool) {
	emailVal := c.Request.Context().Value(userEmailKey)
	if emailVal == nil {
		return "", false
	}
	email, ok := emailVal.(string)
	if !ok {
		return "", false
	}
	return email, true
}
