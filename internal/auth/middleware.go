package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContextKeyUserName is the gin context key set for authenticated requests.
const ContextKeyUserName = "auth_user_name"

// RequireLogin rejects anonymous requests with 401 and stores the session
// username in the gin context for handlers behind it.
func (sm *SessionManager) RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		userName := sm.GetUserName(c.Request)
		if userName == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
			})
			return
		}
		c.Set(ContextKeyUserName, userName)
		c.Next()
	}
}

// UserName retrieves the authenticated username from the gin context, ""
// for anonymous requests.
func UserName(c *gin.Context) string {
	if name, exists := c.Get(ContextKeyUserName); exists {
		if userName, ok := name.(string); ok {
			return userName
		}
	}
	return ""
}
