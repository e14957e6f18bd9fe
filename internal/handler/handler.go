package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobledger/pkg/response"
)

// currentUserID extracts the authenticated user id set by the auth
// middleware. On failure it writes a 401 and returns ok=false.
func currentUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "User ID not found in context"))
		return "", false
	}

	id, ok := v.(string)
	if !ok || id == "" {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid User ID format"))
		return "", false
	}

	return id, true
}
