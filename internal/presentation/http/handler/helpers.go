package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetBearerToken returns the raw bearer token of the request. Handlers
// that proxy to the upstream platform pass it along explicitly; there
// is no ambient credential.
func GetBearerToken(c *gin.Context) string {
	return c.GetString("bearer_token")
}
