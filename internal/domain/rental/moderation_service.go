// internal/domain/rental/moderation_service.go
package rental

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/rental-backend/internal/config"
	"gorm.io/gorm"
)

// ModerationService handles the administrative approve/reject workflow over
// listings. It sits outside the public listing API.
type ModerationService struct {
	db     *gorm.DB
	config *config.Config
}

// NewModerationService creates a new moderation service
func NewModerationService(db *gorm.DB, cfg *config.Config) *ModerationService {
	return &ModerationService{
		db:     db,
		config: cfg,
	}
}

// ModerationListRequest filters the admin listing view
type ModerationListRequest struct {
	Status string `form:"status"`
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=20"`
}

// ModerationListResponse is a paginated admin listing view
type ModerationListResponse struct {
	Products []RentalProduct `json:"products"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	Limit    int             `json:"limit"`
}

// ListProducts returns every listing regardless of moderation state,
// optionally filtered by status.
func (s *ModerationService) ListProducts(req *ModerationListRequest) (*ModerationListResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	query := s.db.Model(&RentalProduct{})
	if req.Status != "" {
		query = query.Where("moderation_status = ?", req.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count listings: %w", err)
	}

	var products []RentalProduct
	offset := (req.Page - 1) * req.Limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(req.Limit).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products for moderation: %w", err)
	}

	return &ModerationListResponse{
		Products: products,
		Total:    total,
		Page:     req.Page,
		Limit:    req.Limit,
	}, nil
}

// Approve marks a listing approved. Any previous rejection reason is cleared;
// approved and rejected are never simultaneously meaningful.
func (s *ModerationService) Approve(productID uint) (*RentalProduct, error) {
	var product RentalProduct
	if err := s.db.First(&product, productID).Error; err != nil {
		return nil, ErrProductNotFound
	}

	updates := map[string]interface{}{
		"moderation_status": ModerationApproved,
		"rejection_reason":  "",
	}
	if err := s.db.Model(&product).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to approve listing: %w", err)
	}

	logrus.WithField("product_id", productID).Info("listing approved")
	return &product, nil
}

// Reject marks a listing rejected with a reason for the seller.
func (s *ModerationService) Reject(productID uint, reason string) (*RentalProduct, error) {
	var product RentalProduct
	if err := s.db.First(&product, productID).Error; err != nil {
		return nil, ErrProductNotFound
	}

	updates := map[string]interface{}{
		"moderation_status": ModerationRejected,
		"rejection_reason":  reason,
	}
	if err := s.db.Model(&product).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to reject listing: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"product_id": productID,
		"reason":     reason,
	}).Info("listing rejected")
	return &product, nil
}

// BulkApprove approves the given listings and returns how many rows changed.
func (s *ModerationService) BulkApprove(productIDs []uint) (int64, error) {
	result := s.db.Model(&RentalProduct{}).
		Where("id IN ?", productIDs).
		Updates(map[string]interface{}{
			"moderation_status": ModerationApproved,
			"rejection_reason":  "",
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to bulk-approve listings: %w", result.Error)
	}

	logrus.WithField("count", result.RowsAffected).Info("listings bulk-approved")
	return result.RowsAffected, nil
}

// BulkReject rejects the given listings with a shared reason.
func (s *ModerationService) BulkReject(productIDs []uint, reason string) (int64, error) {
	result := s.db.Model(&RentalProduct{}).
		Where("id IN ?", productIDs).
		Updates(map[string]interface{}{
			"moderation_status": ModerationRejected,
			"rejection_reason":  reason,
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to bulk-reject listings: %w", result.Error)
	}

	logrus.WithField("count", result.RowsAffected).Info("listings bulk-rejected")
	return result.RowsAffected, nil
}
