package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/your-org/rental-backend/internal/config"
)

func csrfTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		Session: config.SessionConfig{
			CSRFCookieName: "csrftoken",
			CSRFHeaderName: "X-CSRF-Token",
		},
	}

	r := gin.New()
	r.Use(CSRF(cfg))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestCSRF(t *testing.T) {
	t.Run("get_passes_without_token", func(t *testing.T) {
		r := csrfTestRouter()
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", w.Code)
		}
	})

	t.Run("post_without_cookie_forbidden", func(t *testing.T) {
		r := csrfTestRouter()
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/ping", nil)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Errorf("expected 403, got %d", w.Code)
		}
	})

	t.Run("post_with_mismatched_header_forbidden", func(t *testing.T) {
		r := csrfTestRouter()
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/ping", nil)
		req.AddCookie(&http.Cookie{Name: "csrftoken", Value: "token-a"})
		req.Header.Set("X-CSRF-Token", "token-b")
		r.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Errorf("expected 403, got %d", w.Code)
		}
	})

	t.Run("post_with_matching_token_passes", func(t *testing.T) {
		r := csrfTestRouter()
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/ping", nil)
		req.AddCookie(&http.Cookie{Name: "csrftoken", Value: "token-a"})
		req.Header.Set("X-CSRF-Token", "token-a")
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", w.Code)
		}
	})
}
