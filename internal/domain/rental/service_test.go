package rental_test

import (
	"testing"
	"time"

	"github.com/your-org/rental-backend/internal/domain/rental"
	"github.com/your-org/rental-backend/internal/testutil"
)

func TestCreateProduct(t *testing.T) {
	t.Run("seller_creates_pending_listing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := rental.NewService(db, testutil.TestConfig())
		seller := testutil.CreateTestSeller(t, db)

		price := int64(5000)
		product, err := svc.CreateProduct(seller, &rental.CreateProductRequest{
			Title:       "Cargo bike",
			Description: "Fits two kids",
			PricePerDay: &price,
		})
		testutil.AssertNoError(t, err)

		if product.OwnerID != seller.ID {
			t.Errorf("expected owner %d, got %d", seller.ID, product.OwnerID)
		}
		if product.ModerationStatus != rental.ModerationPending {
			t.Errorf("expected pending moderation, got %s", product.ModerationStatus)
		}
		if product.PriceUnit != rental.PriceUnitDay {
			t.Errorf("expected default price unit day, got %s", product.PriceUnit)
		}
		if !product.IsActive {
			t.Error("expected new listing to be active")
		}
	})

	t.Run("renter_forbidden", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := rental.NewService(db, testutil.TestConfig())
		renter := testutil.CreateTestRenter(t, db)

		_, err := svc.CreateProduct(renter, &rental.CreateProductRequest{Title: "Nope"})
		testutil.AssertErrorIs(t, err, rental.ErrSellerOnly)
	})

	t.Run("invalid_price_unit", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := rental.NewService(db, testutil.TestConfig())
		seller := testutil.CreateTestSeller(t, db)

		_, err := svc.CreateProduct(seller, &rental.CreateProductRequest{
			Title:     "Ladder",
			PriceUnit: "fortnight",
		})
		if err == nil {
			t.Fatal("expected error for unknown price unit")
		}
	})
}

func TestListForUser(t *testing.T) {
	t.Run("renter_sees_approved_only", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := rental.NewService(db, testutil.TestConfig())

		seller := testutil.CreateTestSeller(t, db)
		renter := testutil.CreateTestRenter(t, db)

		approved := testutil.CreateTestProduct(t, db, seller.ID)
		testutil.CreateTestProductWithStatus(t, db, seller.ID, rental.ModerationPending)
		testutil.CreateTestProductWithStatus(t, db, seller.ID, rental.ModerationRejected)

		products, err := svc.ListForUser(renter)
		testutil.AssertNoError(t, err)

		if len(products) != 1 {
			t.Fatalf("expected 1 visible listing, got %d", len(products))
		}
		if products[0].ID != approved.ID {
			t.Errorf("expected listing %d, got %d", approved.ID, products[0].ID)
		}
	})

	t.Run("seller_sees_own_unapproved_listings", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := rental.NewService(db, testutil.TestConfig())

		seller := testutil.CreateTestSeller(t, db)
		other := testutil.CreateTestSeller(t, db)

		testutil.CreateTestProductWithStatus(t, db, seller.ID, rental.ModerationPending)
		testutil.CreateTestProduct(t, db, other.ID)
		testutil.CreateTestProductWithStatus(t, db, other.ID, rental.ModerationPending)

		products, err := svc.ListForUser(seller)
		testutil.AssertNoError(t, err)

		// Own pending listing plus the other seller's approved one; the other
		// seller's pending listing stays hidden.
		if len(products) != 2 {
			t.Fatalf("expected 2 visible listings, got %d", len(products))
		}
		for _, p := range products {
			if p.ModerationStatus != rental.ModerationApproved && p.OwnerID != seller.ID {
				t.Errorf("listing %d should not be visible", p.ID)
			}
		}
	})

	t.Run("expired_listings_deactivated_and_hidden", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := rental.NewService(db, testutil.TestConfig())

		seller := testutil.CreateTestSeller(t, db)
		renter := testutil.CreateTestRenter(t, db)

		expired := testutil.CreateTestProduct(t, db, seller.ID)
		past := time.Now().UTC().Add(-24 * time.Hour)
		testutil.AssertNoError(t, db.Model(expired).Update("expiration_date", past).Error)

		products, err := svc.ListForUser(renter)
		testutil.AssertNoError(t, err)

		if len(products) != 0 {
			t.Fatalf("expected expired listing to be hidden, got %d listings", len(products))
		}

		var reloaded rental.RentalProduct
		testutil.AssertNoError(t, db.First(&reloaded, expired.ID).Error)
		if reloaded.IsActive {
			t.Error("expected expired listing to be deactivated")
		}
	})
}

func TestGetProduct(t *testing.T) {
	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := rental.NewService(db, testutil.TestConfig())
		renter := testutil.CreateTestRenter(t, db)

		_, err := svc.GetProduct(renter, 99999)
		testutil.AssertErrorIs(t, err, rental.ErrProductNotFound)
	})

	t.Run("renter_reads_approved_listing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := rental.NewService(db, testutil.TestConfig())

		seller := testutil.CreateTestSeller(t, db)
		renter := testutil.CreateTestRenter(t, db)
		approved := testutil.CreateTestProduct(t, db, seller.ID)

		product, err := svc.GetProduct(renter, approved.ID)
		testutil.AssertNoError(t, err)
		if product.ID != approved.ID {
			t.Errorf("expected listing %d, got %d", approved.ID, product.ID)
		}
	})

	t.Run("renter_cannot_read_unapproved_listing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := rental.NewService(db, testutil.TestConfig())

		seller := testutil.CreateTestSeller(t, db)
		renter := testutil.CreateTestRenter(t, db)
		pending := testutil.CreateTestProductWithStatus(t, db, seller.ID, rental.ModerationPending)
		rejected := testutil.CreateTestProductWithStatus(t, db, seller.ID, rental.ModerationRejected)

		_, err := svc.GetProduct(renter, pending.ID)
		testutil.AssertErrorIs(t, err, rental.ErrProductNotFound)

		_, err = svc.GetProduct(renter, rejected.ID)
		testutil.AssertErrorIs(t, err, rental.ErrProductNotFound)
	})

	t.Run("owner_reads_own_pending_listing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := rental.NewService(db, testutil.TestConfig())

		seller := testutil.CreateTestSeller(t, db)
		pending := testutil.CreateTestProductWithStatus(t, db, seller.ID, rental.ModerationPending)

		product, err := svc.GetProduct(seller, pending.ID)
		testutil.AssertNoError(t, err)
		if product.ID != pending.ID {
			t.Errorf("expected listing %d, got %d", pending.ID, product.ID)
		}
	})

	t.Run("rival_seller_cannot_read_unapproved_listing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := rental.NewService(db, testutil.TestConfig())

		seller := testutil.CreateTestSeller(t, db)
		rival := testutil.CreateTestSeller(t, db)
		pending := testutil.CreateTestProductWithStatus(t, db, seller.ID, rental.ModerationPending)

		_, err := svc.GetProduct(rival, pending.ID)
		testutil.AssertErrorIs(t, err, rental.ErrProductNotFound)
	})
}
