package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// currentUserID pulls the authenticated user's ID set by AuthMiddleware
func currentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("userId")
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// parseIDParam parses a numeric :param path segment
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
