// internal/domain/user/service.go
package user

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/your-org/rental-backend/internal/config"
	"github.com/your-org/rental-backend/internal/pkg/auth"
	"gorm.io/gorm"
)

// Sentinel errors the HTTP layer maps to status codes.
var (
	ErrEmailTaken         = errors.New("email already in use")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrSuperuserProtected = errors.New("cannot delete superuser")
	ErrProfileIncomplete  = errors.New("phone and address required")
)

// Service handles user business logic
type Service struct {
	db              *gorm.DB
	config          *config.Config
	passwordManager *auth.PasswordManager
}

// NewService creates a new user service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:              db,
		config:          cfg,
		passwordManager: auth.NewPasswordManager(cfg),
	}
}

// RegisterRequest represents user registration data
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     Role   `json:"role"`
}

// LoginRequest represents user login data
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest represents a partial profile update. Nil fields are
// left untouched.
type UpdateProfileRequest struct {
	Name       *string
	Phone      *string
	Address    *string
	ProfilePic *string
}

// Register creates a new user account
func (s *Service) Register(req *RegisterRequest) (*User, error) {
	role := req.Role
	if role == "" {
		role = RoleRenter
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role %q", req.Role)
	}

	// Duplicate email is checked case-insensitively; emails are stored
	// lowercased by the BeforeCreate hook.
	var count int64
	s.db.Model(&User{}).Where("email = ?", strings.ToLower(req.Email)).Count(&count)
	if count > 0 {
		return nil, ErrEmailTaken
	}

	s.db.Model(&User{}).Where("username = ?", req.Username).Count(&count)
	if count > 0 {
		return nil, ErrUsernameTaken
	}

	hashedPassword, err := s.passwordManager.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := User{
		Username: req.Username,
		Email:    req.Email,
		Password: hashedPassword,
		Name:     req.Name,
		Role:     role,
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
	}).Info("user registered")

	// Clear password from response
	user.Password = ""
	return &user, nil
}

// Authenticate verifies a username/password pair. The caller is responsible
// for establishing the session.
func (s *Service) Authenticate(req *LoginRequest) (*User, error) {
	var user User
	result := s.db.Where("username = ?", req.Username).First(&user)
	if result.Error != nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.passwordManager.VerifyPassword(req.Password, user.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	user.Password = ""
	return &user, nil
}

// GetProfile gets user profile by ID
func (s *Service) GetProfile(userID uint) (*User, error) {
	var user User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	user.Password = ""
	return &user, nil
}

// UpdateProfile applies a partial update of name/phone/address/profile image.
func (s *Service) UpdateProfile(userID uint, req *UpdateProfileRequest) (*User, error) {
	var user User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.ProfilePic != nil {
		updates["profile_pic"] = *req.ProfilePic
	}

	if len(updates) > 0 {
		if err := s.db.Model(&user).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
	}

	user.Password = ""
	return &user, nil
}

// CompleteProfile enforces the post-registration gate: phone and address are
// mandatory, the profile image optional.
func (s *Service) CompleteProfile(userID uint, phone, address, profilePic string) (*User, error) {
	if phone == "" || address == "" {
		return nil, ErrProfileIncomplete
	}

	var user User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	updates := map[string]interface{}{
		"phone":   phone,
		"address": address,
	}
	if profilePic != "" {
		updates["profile_pic"] = profilePic
	}

	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to complete profile: %w", err)
	}

	user.Password = ""
	return &user, nil
}

// DeleteSelf removes the caller's own account. Listings, transactions and
// wishlist rows go with it via foreign-key cascade.
func (s *Service) DeleteSelf(userID uint) error {
	result := s.db.Delete(&User{}, userID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	logrus.WithField("user_id", userID).Info("user deleted own account")
	return nil
}

// CreateSuperuserRequest carries the guarded one-time superuser creation
// payload. The shared secret is checked by the handler before this runs.
type CreateSuperuserRequest struct {
	Username string
	Email    string
	Name     string
	Password string
}

// CreateSuperuser creates an administrative account.
func (s *Service) CreateSuperuser(req *CreateSuperuserRequest) (*User, error) {
	var count int64
	s.db.Model(&User{}).Where("username = ?", req.Username).Count(&count)
	if count > 0 {
		return nil, ErrUsernameTaken
	}

	hashedPassword, err := s.passwordManager.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := User{
		Username:    req.Username,
		Email:       req.Email,
		Password:    hashedPassword,
		Name:        req.Name,
		Role:        RoleSeller,
		IsSuperuser: true,
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create superuser: %w", err)
	}

	logrus.WithField("username", user.Username).Warn("superuser account created")

	user.Password = ""
	return &user, nil
}
