package wishlist

import (
	"errors"
	"fmt"
	"time"

	"github.com/your-org/rental-backend/internal/config"
	"github.com/your-org/rental-backend/internal/domain/rental"
	"gorm.io/gorm"
)

// Sentinel errors the HTTP layer maps to status codes.
var (
	ErrDuplicateEntry  = errors.New("product already in wishlist")
	ErrEntryNotFound   = errors.New("wishlist entry not found")
	ErrProductNotFound = errors.New("rental product not found")
)

// Service handles wishlist business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new wishlist service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// AddRequest represents a save-for-later request. The customer is always the
// caller; a client-supplied customer is never honored.
type AddRequest struct {
	ProductID uint       `json:"product" binding:"required"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

// EntryResponse mirrors a wishlist row plus the product title.
type EntryResponse struct {
	Wishlist
	ProductTitle string `json:"product_name"`
}

// List returns the caller's saved listings, newest first.
func (s *Service) List(customerID uint) ([]EntryResponse, error) {
	var entries []Wishlist
	if err := s.db.Preload("Product").
		Where("customer_id = ?", customerID).
		Order("added_at DESC").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list wishlist: %w", err)
	}

	responses := make([]EntryResponse, len(entries))
	for i, entry := range entries {
		responses[i] = EntryResponse{Wishlist: entry, ProductTitle: entry.Product.Title}
	}
	return responses, nil
}

// Add saves a listing for the caller. A second save of the same listing is
// rejected before it ever reaches the unique index.
func (s *Service) Add(customerID uint, req *AddRequest) (*EntryResponse, error) {
	var product rental.RentalProduct
	if err := s.db.First(&product, req.ProductID).Error; err != nil {
		return nil, ErrProductNotFound
	}

	var count int64
	s.db.Model(&Wishlist{}).
		Where("customer_id = ? AND product_id = ?", customerID, req.ProductID).
		Count(&count)
	if count > 0 {
		return nil, ErrDuplicateEntry
	}

	entry := Wishlist{
		CustomerID: customerID,
		ProductID:  req.ProductID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	}

	if err := s.db.Create(&entry).Error; err != nil {
		// The unique index is the backstop against a racing duplicate.
		return nil, ErrDuplicateEntry
	}

	return &EntryResponse{Wishlist: entry, ProductTitle: product.Title}, nil
}

// Remove deletes one of the caller's own entries. Entries belonging to other
// customers are indistinguishable from missing ones.
func (s *Service) Remove(customerID, entryID uint) error {
	result := s.db.Where("id = ? AND customer_id = ?", entryID, customerID).Delete(&Wishlist{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove wishlist entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}
