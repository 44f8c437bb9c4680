// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/rental-backend/internal/config"
	"github.com/your-org/rental-backend/internal/domain/user"
	"github.com/your-org/rental-backend/internal/interfaces/http/middleware"
	"github.com/your-org/rental-backend/internal/pkg/media"
	"github.com/your-org/rental-backend/internal/pkg/session"
	"gorm.io/gorm"
)

// AuthHandler handles account and session endpoints
type AuthHandler struct {
	userService *user.Service
	sessions    *session.Manager
	uploader    media.Uploader
	config      *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(db *gorm.DB, sessions *session.Manager, uploader media.Uploader, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		userService: user.NewService(db, cfg),
		sessions:    sessions,
		uploader:    uploader,
		config:      cfg,
	}
}

// setSessionCookies writes the session and CSRF cookies. The session cookie
// is HttpOnly; the CSRF cookie must be readable by frontend JavaScript so it
// can echo the token back in a header.
func (h *AuthHandler) setSessionCookies(c *gin.Context, sess *session.Session) {
	maxAge := int(h.config.Session.TTL.Seconds())
	c.SetCookie(h.config.Session.CookieName, sess.ID, maxAge, "/",
		h.config.Session.CookieDomain, h.config.Session.CookieSecure, true)
	c.SetCookie(h.config.Session.CSRFCookieName, sess.CSRFToken, maxAge, "/",
		h.config.Session.CookieDomain, h.config.Session.CookieSecure, false)
}

// clearSessionCookies expires both cookies client-side.
func (h *AuthHandler) clearSessionCookies(c *gin.Context) {
	c.SetCookie(h.config.Session.CookieName, "", -1, "/",
		h.config.Session.CookieDomain, h.config.Session.CookieSecure, true)
	c.SetCookie(h.config.Session.CSRFCookieName, "", -1, "/",
		h.config.Session.CookieDomain, h.config.Session.CookieSecure, false)
}

// CSRFCookie handles GET /auth/csrf. It hands an anonymous client a CSRF
// cookie so the subsequent login or register POST passes the double-submit
// check.
func (h *AuthHandler) CSRFCookie(c *gin.Context) {
	token := session.NewCSRFToken()
	maxAge := int(h.config.Session.TTL.Seconds())
	c.SetCookie(h.config.Session.CSRFCookieName, token, maxAge, "/",
		h.config.Session.CookieDomain, h.config.Session.CookieSecure, false)

	c.JSON(http.StatusOK, gin.H{
		"message": "CSRF cookie set",
	})
}

// Register handles POST /auth/register. A successful registration logs the
// new account in immediately.
func (h *AuthHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	newUser, err := h.userService.Register(&req)
	if err != nil {
		// Duplicate email/username is a validation failure, not a conflict.
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	sess, err := h.sessions.Create(c.Request.Context(), newUser.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to establish session",
		})
		return
	}
	h.setSessionCookies(c, sess)

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"data":    newUser,
	})
}

// Login handles POST /auth/login. Unknown usernames and wrong passwords are
// indistinguishable in the response.
func (h *AuthHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	authedUser, err := h.userService.Authenticate(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid credentials",
		})
		return
	}

	sess, err := h.sessions.Create(c.Request.Context(), authedUser.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to establish session",
		})
		return
	}
	h.setSessionCookies(c, sess)

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"data":    authedUser,
	})
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if sess, ok := middleware.GetSessionFromContext(c); ok {
		h.sessions.Destroy(c.Request.Context(), sess.ID)
	}
	h.clearSessionCookies(c)

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// WhoAmI handles GET /auth/whoami
func (h *AuthHandler) WhoAmI(c *gin.Context) {
	currentUser, exists := middleware.GetCurrentUserFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User retrieved successfully",
		"data":    currentUser,
	})
}

// GetProfile handles GET /auth/profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	profile, err := h.userService.GetProfile(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile retrieved successfully",
		"data":    profile,
	})
}

// UpdateProfile handles PATCH /auth/profile. The request is multipart so the
// profile image can be replaced in the same call; text fields absent from the
// form are left unchanged.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	req := user.UpdateProfileRequest{}
	if v, ok := c.GetPostForm("name"); ok {
		req.Name = &v
	}
	if v, ok := c.GetPostForm("phone"); ok {
		req.Phone = &v
	}
	if v, ok := c.GetPostForm("address"); ok {
		req.Address = &v
	}

	picURL, err := h.resolveProfilePic(c)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Failed to upload profile image",
		})
		return
	}
	if picURL != "" {
		req.ProfilePic = &picURL
	}

	profile, err := h.userService.UpdateProfile(userID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"data":    profile,
	})
}

// CompleteProfile handles POST /auth/profile/complete. Phone and address are
// mandatory here even though the profile PATCH treats them as optional.
func (h *AuthHandler) CompleteProfile(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	phone := c.PostForm("phone")
	address := c.PostForm("address")

	picURL, err := h.resolveProfilePic(c)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Failed to upload profile image",
		})
		return
	}

	profile, err := h.userService.CompleteProfile(userID, phone, address, picURL)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile completed successfully",
		"data":    profile,
	})
}

// DeleteSelf handles DELETE /auth/me/delete
func (h *AuthHandler) DeleteSelf(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	if err := h.userService.DeleteSelf(userID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	if sess, ok := middleware.GetSessionFromContext(c); ok {
		h.sessions.Destroy(c.Request.Context(), sess.ID)
	}
	h.clearSessionCookies(c)

	c.JSON(http.StatusOK, gin.H{
		"message": "Account deleted successfully",
	})
}

// CreateSuperuser handles POST /auth/create-superuser. The endpoint is gated
// by a shared secret and is disabled entirely when no secret is configured.
func (h *AuthHandler) CreateSuperuser(c *gin.Context) {
	if c.ContentType() != "application/json" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "JSON body required",
		})
		return
	}

	var req struct {
		Secret   string `json:"secret"`
		Username string `json:"username"`
		Email    string `json:"email"`
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	secret := h.config.Security.SuperuserSecret
	if secret == "" || req.Secret != secret {
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Invalid secret key",
		})
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "username, email and password are required",
		})
		return
	}

	superuser, err := h.userService.CreateSuperuser(&user.CreateSuperuserRequest{
		Username: req.Username,
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Superuser created successfully",
		"data":    superuser,
	})
}

// resolveProfilePic returns the new profile image URL: an uploaded file wins
// over a URL passed as a plain form field. Empty means no change requested.
func (h *AuthHandler) resolveProfilePic(c *gin.Context) (string, error) {
	file, err := c.FormFile("profile_pic")
	if err == nil && h.uploader != nil {
		return h.uploader.Upload(c.Request.Context(), file)
	}
	return c.PostForm("profile_pic"), nil
}
