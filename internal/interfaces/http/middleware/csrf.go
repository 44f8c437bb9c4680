// internal/interfaces/http/middleware/csrf.go
package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/rental-backend/internal/config"
)

// safe methods never mutate state and skip the CSRF check
var safeMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodOptions: true,
}

// CSRF enforces the double-submit cookie check on mutating requests: the
// token in the X-CSRF-Token header must match the csrftoken cookie. Cross-site
// requests can send the cookie but cannot read or set the header.
func CSRF(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if safeMethods[c.Request.Method] {
			c.Next()
			return
		}

		cookie, err := c.Cookie(cfg.Session.CSRFCookieName)
		if err != nil || cookie == "" {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "CSRF cookie not set",
			})
			c.Abort()
			return
		}

		header := c.GetHeader(cfg.Session.CSRFHeaderName)
		if subtle.ConstantTimeCompare([]byte(cookie), []byte(header)) != 1 {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "CSRF token missing or incorrect",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
