// internal/domain/rental/entity.go
package rental

import (
	"time"

	"github.com/your-org/rental-backend/internal/domain/user"
)

// ModerationStatus is the admin review state of a listing. A listing starts
// pending, and an admin moves it to approved or rejected; the rejection
// reason is only meaningful while rejected.
type ModerationStatus string

const (
	ModerationPending  ModerationStatus = "pending"
	ModerationApproved ModerationStatus = "approved"
	ModerationRejected ModerationStatus = "rejected"
)

// PriceUnit is the duration a listing's headline price applies to.
type PriceUnit string

const (
	PriceUnitHour  PriceUnit = "hour"
	PriceUnitDay   PriceUnit = "day"
	PriceUnitWeek  PriceUnit = "week"
	PriceUnitMonth PriceUnit = "month"
	PriceUnitYear  PriceUnit = "year"
)

// IsValid reports whether the price unit is one of the known durations.
func (u PriceUnit) IsValid() bool {
	switch u {
	case PriceUnitHour, PriceUnitDay, PriceUnitWeek, PriceUnitMonth, PriceUnitYear:
		return true
	}
	return false
}

// RentalProduct represents a seller's listing. Images live on the external
// media host and are referenced by URL; prices are in cents, one per rental
// duration the seller chooses to offer.
type RentalProduct struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OwnerID     uint      `gorm:"not null;index" json:"owner_id"`
	Owner       user.User `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Title       string    `gorm:"not null;size:255" json:"title"`
	Description string    `gorm:"type:text" json:"description"`

	MainImage string `gorm:"size:500" json:"main_image"`
	Image2    string `gorm:"size:500" json:"image_2"`
	Image3    string `gorm:"size:500" json:"image_3"`

	PricePerHour  *int64    `json:"price_per_hour"`
	PricePerDay   *int64    `json:"price_per_day"`
	PricePerWeek  *int64    `json:"price_per_week"`
	PricePerMonth *int64    `json:"price_per_month"`
	PricePerYear  *int64    `json:"price_per_year"`
	PriceUnit     PriceUnit `gorm:"not null;size:10;default:'day'" json:"price_unit"`

	PickupAddress string     `gorm:"type:text" json:"pickup_address"`
	PickupDate    *time.Time `json:"pickup_date"`

	ModerationStatus ModerationStatus `gorm:"not null;size:10;default:'pending';index" json:"moderation_status"`
	RejectionReason  string           `gorm:"type:text" json:"rejection_reason"`

	ExpirationDate *time.Time `json:"expiration_date"`
	IsActive       bool       `gorm:"default:true;index" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (RentalProduct) TableName() string {
	return "rental_products"
}

// IsApproved reports whether an admin has approved the listing.
func (p *RentalProduct) IsApproved() bool {
	return p.ModerationStatus == ModerationApproved
}

// IsRejected reports whether an admin has rejected the listing.
func (p *RentalProduct) IsRejected() bool {
	return p.ModerationStatus == ModerationRejected
}

// IsExpired reports whether the listing's expiration date has passed.
func (p *RentalProduct) IsExpired(now time.Time) bool {
	return p.ExpirationDate != nil && p.ExpirationDate.Before(now)
}
