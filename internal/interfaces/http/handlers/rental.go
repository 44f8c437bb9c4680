// internal/interfaces/http/handlers/rental.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/your-org/rental-backend/internal/config"
	"github.com/your-org/rental-backend/internal/domain/rental"
	"github.com/your-org/rental-backend/internal/interfaces/http/middleware"
	"github.com/your-org/rental-backend/internal/pkg/media"
	"gorm.io/gorm"
)

// RentalHandler handles listing endpoints
type RentalHandler struct {
	rentalService *rental.Service
	uploader      media.Uploader
	config        *config.Config
}

// NewRentalHandler creates a new rental handler
func NewRentalHandler(db *gorm.DB, uploader media.Uploader, cfg *config.Config) *RentalHandler {
	return &RentalHandler{
		rentalService: rental.NewService(db, cfg),
		uploader:      uploader,
		config:        cfg,
	}
}

// ListProducts handles GET /rentals/products. Visibility depends on the
// caller's role: sellers also see their own unapproved listings.
func (h *RentalHandler) ListProducts(c *gin.Context) {
	currentUser, exists := middleware.GetCurrentUserFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	products, err := h.rentalService.ListForUser(currentUser)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve rental products",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Rental products retrieved successfully",
		"data":    products,
	})
}

// GetProduct handles GET /rentals/products/:id. The same visibility rules as
// the listing read apply, so an unapproved listing 404s for everyone but its
// owner.
func (h *RentalHandler) GetProduct(c *gin.Context) {
	currentUser, exists := middleware.GetCurrentUserFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	product, err := h.rentalService.GetProduct(currentUser, uint(productID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Rental product retrieved successfully",
		"data":    product,
	})
}

// CreateProduct handles POST /rentals/products. Accepts multipart form data
// so listing images can be uploaded inline; plain JSON with image URLs works
// too.
func (h *RentalHandler) CreateProduct(c *gin.Context) {
	currentUser, exists := middleware.GetCurrentUserFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	var req rental.CreateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if err := h.resolveImages(c, &req); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{
				"error": "Failed to upload listing images",
			})
			return
		}
	}

	product, err := h.rentalService.CreateProduct(currentUser, &req)
	if err != nil {
		if errors.Is(err, rental.ErrSellerOnly) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": err.Error(),
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Rental product submitted for approval",
		"data":    product,
	})
}

// resolveImages replaces image form fields with media-host URLs for any
// uploaded files. Fields already holding URLs pass through untouched.
func (h *RentalHandler) resolveImages(c *gin.Context, req *rental.CreateProductRequest) error {
	if h.uploader == nil {
		return nil
	}

	fields := []struct {
		name string
		dest *string
	}{
		{"main_image", &req.MainImage},
		{"image_2", &req.Image2},
		{"image_3", &req.Image3},
	}

	for _, f := range fields {
		file, err := c.FormFile(f.name)
		if err != nil {
			continue
		}
		url, err := h.uploader.Upload(c.Request.Context(), file)
		if err != nil {
			return err
		}
		*f.dest = url
	}
	return nil
}
