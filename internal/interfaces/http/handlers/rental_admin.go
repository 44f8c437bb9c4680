// internal/interfaces/http/handlers/rental_admin.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/rental-backend/internal/config"
	"github.com/your-org/rental-backend/internal/domain/rental"
	"gorm.io/gorm"
)

// RentalAdminHandler handles the listing moderation endpoints
type RentalAdminHandler struct {
	moderationService *rental.ModerationService
	config            *config.Config
}

// NewRentalAdminHandler creates a new rental admin handler
func NewRentalAdminHandler(db *gorm.DB, cfg *config.Config) *RentalAdminHandler {
	return &RentalAdminHandler{
		moderationService: rental.NewModerationService(db, cfg),
		config:            cfg,
	}
}

// GetProducts handles GET /admin/rentals
func (h *RentalAdminHandler) GetProducts(c *gin.Context) {
	var req rental.ModerationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameters",
			"details": err.Error(),
		})
		return
	}

	response, err := h.moderationService.ListProducts(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve listings",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Listings retrieved successfully",
		"data":    response,
	})
}

// ApproveProduct handles POST /admin/rentals/:id/approve
func (h *RentalAdminHandler) ApproveProduct(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	product, err := h.moderationService.Approve(uint(productID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Listing approved successfully",
		"data":    product,
	})
}

// RejectProduct handles POST /admin/rentals/:id/reject
func (h *RentalAdminHandler) RejectProduct(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	var req struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	product, err := h.moderationService.Reject(uint(productID), req.Reason)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Listing rejected",
		"data":    product,
	})
}

// BulkApprove handles POST /admin/rentals/bulk-approve
func (h *RentalAdminHandler) BulkApprove(c *gin.Context) {
	var req struct {
		ProductIDs []uint `json:"product_ids" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	count, err := h.moderationService.BulkApprove(req.ProductIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to approve listings",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Listings approved successfully",
		"data": gin.H{
			"approved": count,
		},
	})
}

// BulkReject handles POST /admin/rentals/bulk-reject
func (h *RentalAdminHandler) BulkReject(c *gin.Context) {
	var req struct {
		ProductIDs []uint `json:"product_ids" binding:"required,min=1"`
		Reason     string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	count, err := h.moderationService.BulkReject(req.ProductIDs, req.Reason)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to reject listings",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Listings rejected",
		"data": gin.H{
			"rejected": count,
		},
	})
}
