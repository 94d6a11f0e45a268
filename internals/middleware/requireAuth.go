package middleware

import (
	"net/http"

	"go-job/internals/utils"

	"github.com/gin-gonic/gin"
)

type RequireAuthMiddleware struct {
	Sessions *utils.SessionManager
}

func NewRequireAuthMiddleware(sessions *utils.SessionManager) *RequireAuthMiddleware {
	return &RequireAuthMiddleware{
		Sessions: sessions,
	}
}

// RequireAuth guards routes behind a valid session: both cookies must be
// present and the user_data signature and expiry must check out. The parsed
// claims are injected into the context under "user".
func (m *RequireAuthMiddleware) RequireAuth(c *gin.Context) {
	if _, err := c.Cookie(utils.SessionCookie); err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Not logged in"})
		return
	}

	userDataStr, err := c.Cookie(utils.UserDataCookie)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Not logged in"})
		return
	}

	claims, err := m.Sessions.ParseUserData(userDataStr)
	if err != nil {
		// Tampered or expired cookie; make the client start over.
		m.Sessions.ClearSession(c)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Session expired. Please log in again."})
		return
	}

	c.Set("user", claims)
	c.Next() // continue to the next handler
}
