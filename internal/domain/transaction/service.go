// internal/domain/transaction/service.go
package transaction

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/rental-backend/internal/config"
	"github.com/your-org/rental-backend/internal/domain/rental"
	"gorm.io/gorm"
)

// Sentinel errors the HTTP layer maps to status codes.
var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrProductUnavailable  = errors.New("rental product not available")
	ErrInvalidDateRange    = errors.New("end date must be after start date")
	ErrDateConflict        = errors.New("requested dates overlap an existing rental")
	ErrInvalidTransition   = errors.New("status transition not allowed")
)

// Service handles the transaction ledger
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new transaction service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreateTransactionRequest represents a renter's booking request. The renter
// is always the caller; a client-supplied renter is never honored.
type CreateTransactionRequest struct {
	ProductID uint      `json:"product" binding:"required"`
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required"`
}

// TransactionResponse mirrors a ledger row with the display names the
// frontend shows alongside it.
type TransactionResponse struct {
	Transaction
	ProductTitle string `json:"product_name"`
	OwnerName    string `json:"owner_name"`
	RenterName   string `json:"renter_name"`
}

// Create books a listing for the requesting renter. The listing must be
// approved and active, and the dates must not overlap another open
// transaction for the same product.
func (s *Service) Create(renterID uint, req *CreateTransactionRequest) (*TransactionResponse, error) {
	if !req.EndDate.After(req.StartDate) {
		return nil, ErrInvalidDateRange
	}

	var product rental.RentalProduct
	result := s.db.Where("id = ? AND moderation_status = ? AND is_active = ?",
		req.ProductID, rental.ModerationApproved, true).First(&product)
	if result.Error != nil {
		return nil, ErrProductUnavailable
	}

	// Reject double-booking against open (pending or picked-up) rentals.
	var conflicts int64
	s.db.Model(&Transaction{}).
		Where("product_id = ? AND status IN ?", req.ProductID, []Status{StatusPending, StatusPickedUp}).
		Where("start_date < ? AND end_date > ?", req.EndDate, req.StartDate).
		Count(&conflicts)
	if conflicts > 0 {
		return nil, ErrDateConflict
	}

	tx := Transaction{
		ProductID: product.ID,
		OwnerID:   product.OwnerID,
		RenterID:  renterID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Status:    StatusPending,
	}

	if err := s.db.Create(&tx).Error; err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"transaction_id": tx.ID,
		"product_id":     product.ID,
		"renter_id":      renterID,
	}).Info("rental transaction created")

	return s.getResponse(tx.ID)
}

// ListForRenter returns the caller's own transactions.
func (s *Service) ListForRenter(renterID uint) ([]TransactionResponse, error) {
	return s.list(s.db.Where("renter_id = ?", renterID))
}

// ListForOwner returns transactions against the caller's own listings.
func (s *Service) ListForOwner(ownerID uint) ([]TransactionResponse, error) {
	return s.list(s.db.Where("owner_id = ?", ownerID))
}

// UpdateStatus moves an owner's transaction along the guarded transition
// graph. Only the owning seller may drive pickup and return.
func (s *Service) UpdateStatus(ownerID, transactionID uint, next Status) (*TransactionResponse, error) {
	if !next.IsValid() {
		return nil, ErrInvalidTransition
	}

	var tx Transaction
	result := s.db.Where("id = ? AND owner_id = ?", transactionID, ownerID).First(&tx)
	if result.Error != nil {
		return nil, ErrTransactionNotFound
	}

	if !tx.Status.CanTransitionTo(next) {
		return nil, ErrInvalidTransition
	}

	if err := s.db.Model(&tx).Update("status", next).Error; err != nil {
		return nil, fmt.Errorf("failed to update transaction status: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"transaction_id": transactionID,
		"from":           tx.Status,
		"to":             next,
	}).Info("transaction status updated")

	return s.getResponse(transactionID)
}

// Cancel lets the renter back out of a transaction that is still pending.
func (s *Service) Cancel(renterID, transactionID uint) (*TransactionResponse, error) {
	var tx Transaction
	result := s.db.Where("id = ? AND renter_id = ?", transactionID, renterID).First(&tx)
	if result.Error != nil {
		return nil, ErrTransactionNotFound
	}

	if !tx.CanBeCancelled() {
		return nil, ErrInvalidTransition
	}

	if err := s.db.Model(&tx).Update("status", StatusCancelled).Error; err != nil {
		return nil, fmt.Errorf("failed to cancel transaction: %w", err)
	}

	logrus.WithField("transaction_id", transactionID).Info("transaction cancelled by renter")
	return s.getResponse(transactionID)
}

// GetForParty fetches a transaction visible to the given user, who must be
// either the renter or the listing owner.
func (s *Service) GetForParty(userID, transactionID uint) (*TransactionResponse, error) {
	var tx Transaction
	result := s.db.Preload("Product").Preload("Owner").Preload("Renter").
		Where("id = ? AND (renter_id = ? OR owner_id = ?)", transactionID, userID, userID).
		First(&tx)
	if result.Error != nil {
		return nil, ErrTransactionNotFound
	}
	resp := buildResponse(tx)
	return &resp, nil
}

func (s *Service) getResponse(transactionID uint) (*TransactionResponse, error) {
	var tx Transaction
	result := s.db.Preload("Product").Preload("Owner").Preload("Renter").First(&tx, transactionID)
	if result.Error != nil {
		return nil, ErrTransactionNotFound
	}
	resp := buildResponse(tx)
	return &resp, nil
}

func (s *Service) list(query *gorm.DB) ([]TransactionResponse, error) {
	var txs []Transaction
	if err := query.Preload("Product").Preload("Owner").Preload("Renter").
		Order("created_at DESC").Find(&txs).Error; err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	responses := make([]TransactionResponse, len(txs))
	for i, tx := range txs {
		responses[i] = buildResponse(tx)
	}
	return responses, nil
}

func buildResponse(tx Transaction) TransactionResponse {
	return TransactionResponse{
		Transaction:  tx,
		ProductTitle: tx.Product.Title,
		OwnerName:    tx.Owner.Username,
		RenterName:   tx.Renter.Username,
	}
}
