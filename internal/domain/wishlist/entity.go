package wishlist

import (
	"time"

	"github.com/your-org/rental-backend/internal/domain/rental"
	"github.com/your-org/rental-backend/internal/domain/user"
)

// Wishlist is a customer's saved listing with an optional desired date
// range. A customer may save a given listing only once.
type Wishlist struct {
	ID         uint                 `gorm:"primaryKey" json:"id"`
	CustomerID uint                 `gorm:"not null;uniqueIndex:idx_wishlist_customer_product" json:"customer"`
	Customer   user.User            `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	ProductID  uint                 `gorm:"not null;uniqueIndex:idx_wishlist_customer_product" json:"product"`
	Product    rental.RentalProduct `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	AddedAt   time.Time  `gorm:"autoCreateTime" json:"added_at"`
}

// TableName overrides the table name
func (Wishlist) TableName() string {
	return "wishlists"
}
