// internal/domain/rental/service.go
package rental

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/rental-backend/internal/config"
	"github.com/your-org/rental-backend/internal/domain/user"
	"gorm.io/gorm"
)

// Sentinel errors the HTTP layer maps to status codes.
var (
	ErrSellerOnly      = errors.New("only sellers may create rental products")
	ErrProductNotFound = errors.New("rental product not found")
)

// Service handles listing business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new rental service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreateProductRequest represents listing creation data. Image fields carry
// media-host URLs; the HTTP layer resolves uploaded files to URLs first.
type CreateProductRequest struct {
	Title          string     `json:"title" form:"title" binding:"required"`
	Description    string     `json:"description" form:"description"`
	MainImage      string     `json:"main_image" form:"main_image"`
	Image2         string     `json:"image_2" form:"image_2"`
	Image3         string     `json:"image_3" form:"image_3"`
	PricePerHour   *int64     `json:"price_per_hour" form:"price_per_hour"`
	PricePerDay    *int64     `json:"price_per_day" form:"price_per_day"`
	PricePerWeek   *int64     `json:"price_per_week" form:"price_per_week"`
	PricePerMonth  *int64     `json:"price_per_month" form:"price_per_month"`
	PricePerYear   *int64     `json:"price_per_year" form:"price_per_year"`
	PriceUnit      PriceUnit  `json:"price_unit" form:"price_unit"`
	PickupAddress  string     `json:"pickup_address" form:"pickup_address"`
	PickupDate     *time.Time `json:"pickup_date" form:"pickup_date"`
	ExpirationDate *time.Time `json:"expiration_date" form:"expiration_date"`
}

// CreateProduct creates a listing owned by the requesting seller. The owner
// is always the caller; a client-supplied owner is never honored.
func (s *Service) CreateProduct(owner *user.User, req *CreateProductRequest) (*RentalProduct, error) {
	if !owner.IsSeller() {
		return nil, ErrSellerOnly
	}

	unit := req.PriceUnit
	if unit == "" {
		unit = PriceUnitDay
	}
	if !unit.IsValid() {
		return nil, fmt.Errorf("invalid price unit %q", req.PriceUnit)
	}

	product := RentalProduct{
		OwnerID:          owner.ID,
		Title:            req.Title,
		Description:      req.Description,
		MainImage:        req.MainImage,
		Image2:           req.Image2,
		Image3:           req.Image3,
		PricePerHour:     req.PricePerHour,
		PricePerDay:      req.PricePerDay,
		PricePerWeek:     req.PricePerWeek,
		PricePerMonth:    req.PricePerMonth,
		PricePerYear:     req.PricePerYear,
		PriceUnit:        unit,
		PickupAddress:    req.PickupAddress,
		PickupDate:       req.PickupDate,
		ModerationStatus: ModerationPending,
		ExpirationDate:   req.ExpirationDate,
		IsActive:         true,
	}

	if err := s.db.Create(&product).Error; err != nil {
		return nil, fmt.Errorf("failed to create rental product: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"product_id": product.ID,
		"owner_id":   owner.ID,
	}).Info("rental product created, pending moderation")

	return &product, nil
}

// ListForUser returns the listings visible to the given account: sellers see
// every approved active listing plus their own in any moderation state;
// renters see approved active listings only.
func (s *Service) ListForUser(u *user.User) ([]RentalProduct, error) {
	if err := s.ExpireStale(); err != nil {
		return nil, err
	}

	query := s.db.Where("is_active = ?", true).Order("created_at DESC")

	if u.IsSeller() {
		query = query.Where("moderation_status = ? OR owner_id = ?", ModerationApproved, u.ID)
	} else {
		query = query.Where("moderation_status = ?", ModerationApproved)
	}

	var products []RentalProduct
	if err := query.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list rental products: %w", err)
	}
	return products, nil
}

// GetProduct fetches a single listing by ID under the same visibility rules
// as ListForUser. A listing the caller may not see is indistinguishable from
// a missing one.
func (s *Service) GetProduct(u *user.User, id uint) (*RentalProduct, error) {
	if err := s.ExpireStale(); err != nil {
		return nil, err
	}

	query := s.db.Where("id = ? AND is_active = ?", id, true)
	if u.IsSeller() {
		query = query.Where("moderation_status = ? OR owner_id = ?", ModerationApproved, u.ID)
	} else {
		query = query.Where("moderation_status = ?", ModerationApproved)
	}

	var product RentalProduct
	if err := query.First(&product).Error; err != nil {
		return nil, ErrProductNotFound
	}
	return &product, nil
}

// ExpireStale deactivates every listing whose expiration date has passed.
// Expiration is evaluated on access rather than by a background sweep.
func (s *Service) ExpireStale() error {
	result := s.db.Model(&RentalProduct{}).
		Where("is_active = ? AND expiration_date IS NOT NULL AND expiration_date < ?", true, time.Now().UTC()).
		Update("is_active", false)
	if result.Error != nil {
		return fmt.Errorf("failed to expire stale listings: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		logrus.WithField("count", result.RowsAffected).Info("deactivated expired listings")
	}
	return nil
}
