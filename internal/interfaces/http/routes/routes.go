// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/rental-backend/internal/config"
	"github.com/your-org/rental-backend/internal/infrastructure/database/redis"
	"github.com/your-org/rental-backend/internal/interfaces/http/handlers"
	"github.com/your-org/rental-backend/internal/interfaces/http/middleware"
	"github.com/your-org/rental-backend/internal/pkg/media"
	"github.com/your-org/rental-backend/internal/pkg/session"
	"gorm.io/gorm"
)

// SetupRoutes wires every API route group under the given base group.
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	sessions := session.NewManager(redisClient, cfg)
	uploader := media.NewCloudinaryUploader(cfg)

	SetupAuthRoutes(rg, db, sessions, uploader, cfg)
	SetupRentalRoutes(rg, db, sessions, uploader, cfg)
	SetupTransactionRoutes(rg, db, sessions, cfg)
	SetupAdminRoutes(rg, db, sessions, cfg)
}

// SetupAuthRoutes sets up account and session routes
func SetupAuthRoutes(rg *gin.RouterGroup, db *gorm.DB, sessions *session.Manager, uploader media.Uploader, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(db, sessions, uploader, cfg)
	userAdminHandler := handlers.NewUserAdminHandler(db, cfg)

	auth := rg.Group("/auth")
	{
		// Public auth endpoints
		auth.GET("/csrf", authHandler.CSRFCookie)
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/create-superuser", authHandler.CreateSuperuser)

		// Protected auth endpoints
		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(cfg, sessions, db))
		{
			protected.POST("/logout", authHandler.Logout)
			protected.GET("/whoami", authHandler.WhoAmI)
			protected.GET("/profile", authHandler.GetProfile)
			protected.PATCH("/profile", authHandler.UpdateProfile)
			protected.POST("/profile/complete", authHandler.CompleteProfile)
			protected.DELETE("/me/delete", authHandler.DeleteSelf)
		}

		// Superuser-only account deletion
		adminOnly := auth.Group("/admin")
		adminOnly.Use(middleware.AuthMiddleware(cfg, sessions, db))
		adminOnly.Use(middleware.SuperuserMiddleware())
		{
			adminOnly.DELETE("/delete/:id", userAdminHandler.DeleteUser)
		}
	}
}

// SetupRentalRoutes sets up listing routes
func SetupRentalRoutes(rg *gin.RouterGroup, db *gorm.DB, sessions *session.Manager, uploader media.Uploader, cfg *config.Config) {
	rentalHandler := handlers.NewRentalHandler(db, uploader, cfg)

	rentals := rg.Group("/rentals")
	rentals.Use(middleware.AuthMiddleware(cfg, sessions, db))
	{
		rentals.GET("/products", rentalHandler.ListProducts)
		rentals.GET("/products/:id", rentalHandler.GetProduct)

		// Only sellers may list items for rent
		sellerOnly := rentals.Group("")
		sellerOnly.Use(middleware.SellerMiddleware())
		{
			sellerOnly.POST("/products", rentalHandler.CreateProduct)
		}
	}
}

// SetupTransactionRoutes sets up the rental ledger and wishlist routes
func SetupTransactionRoutes(rg *gin.RouterGroup, db *gorm.DB, sessions *session.Manager, cfg *config.Config) {
	transactionHandler := handlers.NewTransactionHandler(db, cfg)
	wishlistHandler := handlers.NewWishlistHandler(db, cfg)

	transactions := rg.Group("/transactions")
	transactions.Use(middleware.AuthMiddleware(cfg, sessions, db))
	{
		customer := transactions.Group("/customer/transactions")
		{
			customer.GET("", transactionHandler.GetCustomerTransactions)
			customer.POST("", transactionHandler.CreateTransaction)
			customer.POST("/:id/cancel", transactionHandler.CancelTransaction)
			customer.GET("/:id/receipt", transactionHandler.GetReceipt)
		}

		seller := transactions.Group("/seller/transactions")
		seller.Use(middleware.SellerMiddleware())
		{
			seller.GET("", transactionHandler.GetSellerTransactions)
			seller.PUT("/:id/status", transactionHandler.UpdateTransactionStatus)
		}

		wishlist := transactions.Group("/wishlist")
		{
			wishlist.GET("", wishlistHandler.GetWishlist)
			wishlist.POST("", wishlistHandler.AddToWishlist)
			wishlist.DELETE("/:id", wishlistHandler.RemoveFromWishlist)
		}
	}
}

// SetupAdminRoutes sets up superuser-only routes
func SetupAdminRoutes(rg *gin.RouterGroup, db *gorm.DB, sessions *session.Manager, cfg *config.Config) {
	userAdminHandler := handlers.NewUserAdminHandler(db, cfg)
	rentalAdminHandler := handlers.NewRentalAdminHandler(db, cfg)

	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg, sessions, db))
	admin.Use(middleware.SuperuserMiddleware())
	{
		// User management
		admin.GET("/users", userAdminHandler.GetUsers)
		admin.GET("/users/:id", userAdminHandler.GetUser)

		// Listing moderation
		admin.GET("/rentals", rentalAdminHandler.GetProducts)
		admin.POST("/rentals/:id/approve", rentalAdminHandler.ApproveProduct)
		admin.POST("/rentals/:id/reject", rentalAdminHandler.RejectProduct)
		admin.POST("/rentals/bulk-approve", rentalAdminHandler.BulkApprove)
		admin.POST("/rentals/bulk-reject", rentalAdminHandler.BulkReject)
	}
}
