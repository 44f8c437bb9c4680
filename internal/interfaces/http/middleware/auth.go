// internal/interfaces/http/middleware/auth.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/rental-backend/internal/config"
	"github.com/your-org/rental-backend/internal/domain/user"
	"github.com/your-org/rental-backend/internal/pkg/session"
	"gorm.io/gorm"
)

// AuthMiddleware authenticates requests via the opaque session cookie. The
// user row is re-read on every request so role changes and deletions take
// effect immediately.
func AuthMiddleware(cfg *config.Config, sessions *session.Manager, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(cfg.Session.CookieName)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			c.Abort()
			return
		}

		sess, err := sessions.Get(c.Request.Context(), sessionID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired session",
			})
			c.Abort()
			return
		}

		var u user.User
		if err := db.First(&u, sess.UserID).Error; err != nil {
			// Session outlived its user; kill it.
			sessions.Destroy(c.Request.Context(), sessionID)
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired session",
			})
			c.Abort()
			return
		}

		// Store user information in context
		c.Set("user_id", u.ID)
		c.Set("username", u.Username)
		c.Set("user_role", u.Role)
		c.Set("is_superuser", u.IsSuperuser)
		c.Set("current_user", &u)
		c.Set("session", sess)

		c.Next()
	}
}

// SuperuserMiddleware ensures the user is a superuser
func SuperuserMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		isSuperuser, exists := c.Get("is_superuser")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			c.Abort()
			return
		}

		if !isSuperuser.(bool) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Superuser access required",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// SellerMiddleware ensures the user holds the seller role
func SellerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("user_role")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			c.Abort()
			return
		}

		if role.(user.Role) != user.RoleSeller {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Seller access required",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetUserIDFromContext extracts user ID from gin context
func GetUserIDFromContext(c *gin.Context) (uint, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	return userID.(uint), true
}

// GetCurrentUserFromContext extracts the authenticated user from gin context
func GetCurrentUserFromContext(c *gin.Context) (*user.User, bool) {
	u, exists := c.Get("current_user")
	if !exists {
		return nil, false
	}
	return u.(*user.User), true
}

// GetSessionFromContext extracts the session from gin context
func GetSessionFromContext(c *gin.Context) (*session.Session, bool) {
	s, exists := c.Get("session")
	if !exists {
		return nil, false
	}
	return s.(*session.Session), true
}

// IsSuperuserFromContext checks if user is a superuser from gin context
func IsSuperuserFromContext(c *gin.Context) bool {
	isSuperuser, exists := c.Get("is_superuser")
	if !exists {
		return false
	}
	return isSuperuser.(bool)
}
