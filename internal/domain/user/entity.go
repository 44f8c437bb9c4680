// internal/domain/user/entity.go
package user

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Role discriminates the two kinds of accounts on the marketplace. A seller
// owns listings; a renter borrows them. A renter corresponds to the legacy
// "customer" flag being set.
type Role string

const (
	RoleSeller Role = "seller"
	RoleRenter Role = "renter"
)

// IsValid reports whether the role is one of the two known values.
func (r Role) IsValid() bool {
	return r == RoleSeller || r == RoleRenter
}

// User represents a marketplace account. Rows are hard-deleted so that
// listings, transactions and wishlist entries cascade away with the account.
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Username    string    `gorm:"uniqueIndex;not null;size:150" json:"username"`
	Email       string    `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Password    string    `gorm:"not null;size:255" json:"-"` // Don't return in JSON
	Name        string    `gorm:"size:150" json:"name"`
	Phone       string    `gorm:"size:20" json:"phone"`
	Address     string    `gorm:"type:text" json:"address"`
	ProfilePic  string    `gorm:"size:500" json:"profile_pic"` // media host URL
	Role        Role      `gorm:"not null;size:10;default:'renter'" json:"role"`
	IsSuperuser bool      `gorm:"default:false" json:"is_superuser"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

// BeforeCreate hook to handle business logic before user creation
func (u *User) BeforeCreate(tx *gorm.DB) error {
	// Email should be lowercase so the unique index is case-insensitive
	u.Email = strings.ToLower(u.Email)
	if u.Role == "" {
		u.Role = RoleRenter
	}
	return nil
}

// IsSeller reports whether the account may create and own listings.
func (u *User) IsSeller() bool {
	return u.Role == RoleSeller
}

// IsCustomer reports whether the account is a renter. Kept as the wire-level
// name used by older clients.
func (u *User) IsCustomer() bool {
	return u.Role != RoleSeller
}

// HasCompleteProfile reports whether the post-registration profile gate has
// been satisfied.
func (u *User) HasCompleteProfile() bool {
	return u.Phone != "" && u.Address != ""
}
