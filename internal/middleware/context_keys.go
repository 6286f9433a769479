package middleware

import "github.com/gin-gonic/gin"

// userIDKey and organizationIDKey store the caller identity resolved from the
// upstream auth token. Using a custom type prevents collisions.
const (
	userIDKey         = contextKey("userID")
	organizationIDKey = contextKey("organizationID")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	val, exists := c.Get(string(userIDKey))
	if !exists {
		return "", false
	}
	userID, ok := val.(string)
	if !ok {
		return "", false
	}
	return userID, true
}

// GetOrganizationIDFromContext retrieves the caller's organization ID from the
// Gin context. Every finance operation is scoped by it.
func GetOrganizationIDFromContext(c *gin.Context) (string, bool) {
	val, exists := c.Get(string(organizationIDKey))
	if !exists {
		return "", false
	}
	orgID, ok := val.(string)
	if !ok {
		return "", false
	}
	return orgID, true
}
