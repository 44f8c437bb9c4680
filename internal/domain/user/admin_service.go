// internal/domain/user/admin_service.go
package user

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/rental-backend/internal/config"
	"gorm.io/gorm"
)

// AdminService handles administrative user management
type AdminService struct {
	db     *gorm.DB
	config *config.Config
}

// NewAdminService creates a new admin service
func NewAdminService(db *gorm.DB, cfg *config.Config) *AdminService {
	return &AdminService{
		db:     db,
		config: cfg,
	}
}

// UserListRequest represents the admin user listing query
type UserListRequest struct {
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=20"`
	Role   string `form:"role"`
	Search string `form:"search"`
}

// UserListResponse represents a paginated user listing
type UserListResponse struct {
	Users      []User `json:"users"`
	Total      int64  `json:"total"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalPages int    `json:"total_pages"`
}

// GetUsers returns a paginated, filterable user listing.
func (s *AdminService) GetUsers(req *UserListRequest) (*UserListResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	query := s.db.Model(&User{})

	if req.Role != "" {
		query = query.Where("role = ?", req.Role)
	}
	if req.Search != "" {
		like := "%" + req.Search + "%"
		query = query.Where("username LIKE ? OR email LIKE ? OR name LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	var users []User
	offset := (req.Page - 1) * req.Limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(req.Limit).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	for i := range users {
		users[i].Password = ""
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	return &UserListResponse{
		Users:      users,
		Total:      total,
		Page:       req.Page,
		Limit:      req.Limit,
		TotalPages: totalPages,
	}, nil
}

// GetUser returns a single user by ID.
func (s *AdminService) GetUser(userID uint) (*User, error) {
	var user User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, ErrUserNotFound
	}
	user.Password = ""
	return &user, nil
}

// DeleteUser removes a user by ID. Superusers cannot be deleted through this
// path.
func (s *AdminService) DeleteUser(userID, adminID uint) error {
	var target User
	if err := s.db.First(&target, userID).Error; err != nil {
		return ErrUserNotFound
	}

	if target.IsSuperuser {
		return ErrSuperuserProtected
	}

	if err := s.db.Delete(&target).Error; err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id":  userID,
		"admin_id": adminID,
	}).Info("user deleted by admin")
	return nil
}
