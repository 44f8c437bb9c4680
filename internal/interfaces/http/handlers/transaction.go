// internal/interfaces/http/handlers/transaction.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/rental-backend/internal/config"
	"github.com/your-org/rental-backend/internal/domain/transaction"
	"github.com/your-org/rental-backend/internal/interfaces/http/middleware"
	"github.com/your-org/rental-backend/internal/pkg/pdf"
	"gorm.io/gorm"
)

// TransactionHandler handles rental transaction endpoints
type TransactionHandler struct {
	transactionService *transaction.Service
	pdfService         *pdf.Service
	config             *config.Config
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(db *gorm.DB, cfg *config.Config) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transaction.NewService(db, cfg),
		pdfService:         pdf.NewService(cfg),
		config:             cfg,
	}
}

// GetCustomerTransactions handles GET /transactions/customer/transactions
func (h *TransactionHandler) GetCustomerTransactions(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	transactions, err := h.transactionService.ListForRenter(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve transactions",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Transactions retrieved successfully",
		"data":    transactions,
	})
}

// CreateTransaction handles POST /transactions/customer/transactions
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	var req transaction.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	tx, err := h.transactionService.Create(userID, &req)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, transaction.ErrDateConflict) {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Transaction created successfully",
		"data":    tx,
	})
}

// CancelTransaction handles POST /transactions/customer/transactions/:id/cancel
func (h *TransactionHandler) CancelTransaction(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	transactionID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid transaction ID",
		})
		return
	}

	tx, err := h.transactionService.Cancel(userID, uint(transactionID))
	if err != nil {
		switch {
		case errors.Is(err, transaction.ErrTransactionNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": err.Error(),
			})
		case errors.Is(err, transaction.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Only pending transactions can be cancelled",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to cancel transaction",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Transaction cancelled successfully",
		"data":    tx,
	})
}

// GetReceipt handles GET /transactions/customer/transactions/:id/receipt. The
// receipt is rendered on demand and never stored.
func (h *TransactionHandler) GetReceipt(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	if !h.config.External.PDF.Enabled {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Receipt generation is disabled",
		})
		return
	}

	transactionID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid transaction ID",
		})
		return
	}

	tx, err := h.transactionService.GetForParty(userID, uint(transactionID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	if tx.Status != transaction.StatusReturned {
		c.JSON(http.StatusConflict, gin.H{
			"error": "Receipts are only available for returned transactions",
		})
		return
	}

	receipt, err := h.pdfService.GenerateReceipt(tx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate receipt",
		})
		return
	}

	filename := fmt.Sprintf("receipt-%d.pdf", tx.ID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", receipt.Bytes())
}

// GetSellerTransactions handles GET /transactions/seller/transactions
func (h *TransactionHandler) GetSellerTransactions(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	transactions, err := h.transactionService.ListForOwner(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve transactions",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Transactions retrieved successfully",
		"data":    transactions,
	})
}

// UpdateTransactionStatus handles PUT /transactions/seller/transactions/:id/status
func (h *TransactionHandler) UpdateTransactionStatus(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	transactionID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid transaction ID",
		})
		return
	}

	var req struct {
		Status transaction.Status `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	tx, err := h.transactionService.UpdateStatus(userID, uint(transactionID), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, transaction.ErrTransactionNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": err.Error(),
			})
		case errors.Is(err, transaction.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{
				"error": err.Error(),
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to update transaction status",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Transaction status updated successfully",
		"data":    tx,
	})
}
