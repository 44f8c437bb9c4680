package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/your-org/rental-backend/internal/domain/rental"
	"github.com/your-org/rental-backend/internal/domain/transaction"
	"github.com/your-org/rental-backend/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestSeller creates a seller account with a hashed password.
func CreateTestSeller(t *testing.T, db *gorm.DB) *user.User {
	t.Helper()
	return createTestUser(t, db, user.RoleSeller, false)
}

// CreateTestRenter creates a renter account with a hashed password.
func CreateTestRenter(t *testing.T, db *gorm.DB) *user.User {
	t.Helper()
	return createTestUser(t, db, user.RoleRenter, false)
}

// CreateTestSuperuser creates a superuser account.
func CreateTestSuperuser(t *testing.T, db *gorm.DB) *user.User {
	t.Helper()
	return createTestUser(t, db, user.RoleSeller, true)
}

func createTestUser(t *testing.T, db *gorm.DB, role user.Role, superuser bool) *user.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	id := nextID()
	u := &user.User{
		Username:    fmt.Sprintf("user%d", id),
		Email:       fmt.Sprintf("user%d@test.com", id),
		Password:    string(hash),
		Name:        fmt.Sprintf("Test User %d", id),
		Role:        role,
		IsSuperuser: superuser,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// CreateTestProduct creates an approved, active listing owned by the seller.
func CreateTestProduct(t *testing.T, db *gorm.DB, ownerID uint) *rental.RentalProduct {
	t.Helper()
	return CreateTestProductWithStatus(t, db, ownerID, rental.ModerationApproved)
}

// CreateTestProductWithStatus creates an active listing in the given
// moderation state.
func CreateTestProductWithStatus(t *testing.T, db *gorm.DB, ownerID uint, status rental.ModerationStatus) *rental.RentalProduct {
	t.Helper()

	price := int64(2500)
	product := &rental.RentalProduct{
		OwnerID:          ownerID,
		Title:            fmt.Sprintf("Test Listing %d", nextID()),
		Description:      "A thing available for rent",
		PricePerDay:      &price,
		PriceUnit:        rental.PriceUnitDay,
		PickupAddress:    "12 Test Street",
		ModerationStatus: status,
		IsActive:         true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("failed to create test product: %v", err)
	}
	return product
}

// CreateTestTransaction creates a transaction in the given status spanning
// the given dates.
func CreateTestTransaction(t *testing.T, db *gorm.DB, product *rental.RentalProduct, renterID uint, status transaction.Status, start, end time.Time) *transaction.Transaction {
	t.Helper()

	tx := &transaction.Transaction{
		ProductID: product.ID,
		OwnerID:   product.OwnerID,
		RenterID:  renterID,
		StartDate: start,
		EndDate:   end,
		Status:    status,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}
