package testutil

import (
	"time"

	"github.com/your-org/rental-backend/internal/config"
	"golang.org/x/crypto/bcrypt"
)

// TestConfig returns a config suitable for service tests. The bcrypt cost is
// the minimum so password hashing does not dominate test time.
func TestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "Rental Marketplace Backend",
			Environment: "test",
		},
		Session: config.SessionConfig{
			CookieName:     "sessionid",
			CSRFCookieName: "csrftoken",
			CSRFHeaderName: "X-CSRF-Token",
			TTL:            time.Hour,
		},
		Security: config.SecurityConfig{
			BcryptCost:      bcrypt.MinCost,
			SuperuserSecret: "test-superuser-secret",
		},
	}
}
