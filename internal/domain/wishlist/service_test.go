package wishlist_test

import (
	"testing"

	"github.com/your-org/rental-backend/internal/domain/wishlist"
	"github.com/your-org/rental-backend/internal/testutil"
)

func TestAdd(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := wishlist.NewService(db, testutil.TestConfig())

		seller := testutil.CreateTestSeller(t, db)
		renter := testutil.CreateTestRenter(t, db)
		product := testutil.CreateTestProduct(t, db, seller.ID)

		entry, err := svc.Add(renter.ID, &wishlist.AddRequest{ProductID: product.ID})
		testutil.AssertNoError(t, err)

		if entry.CustomerID != renter.ID {
			t.Errorf("expected customer %d, got %d", renter.ID, entry.CustomerID)
		}
		if entry.ProductTitle != product.Title {
			t.Errorf("expected product title %q, got %q", product.Title, entry.ProductTitle)
		}
	})

	t.Run("duplicate_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := wishlist.NewService(db, testutil.TestConfig())

		seller := testutil.CreateTestSeller(t, db)
		renter := testutil.CreateTestRenter(t, db)
		product := testutil.CreateTestProduct(t, db, seller.ID)

		_, err := svc.Add(renter.ID, &wishlist.AddRequest{ProductID: product.ID})
		testutil.AssertNoError(t, err)

		_, err = svc.Add(renter.ID, &wishlist.AddRequest{ProductID: product.ID})
		testutil.AssertErrorIs(t, err, wishlist.ErrDuplicateEntry)
	})

	t.Run("same_product_different_customers", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := wishlist.NewService(db, testutil.TestConfig())

		seller := testutil.CreateTestSeller(t, db)
		first := testutil.CreateTestRenter(t, db)
		second := testutil.CreateTestRenter(t, db)
		product := testutil.CreateTestProduct(t, db, seller.ID)

		_, err := svc.Add(first.ID, &wishlist.AddRequest{ProductID: product.ID})
		testutil.AssertNoError(t, err)

		_, err = svc.Add(second.ID, &wishlist.AddRequest{ProductID: product.ID})
		testutil.AssertNoError(t, err)
	})

	t.Run("missing_product", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := wishlist.NewService(db, testutil.TestConfig())
		renter := testutil.CreateTestRenter(t, db)

		_, err := svc.Add(renter.ID, &wishlist.AddRequest{ProductID: 99999})
		testutil.AssertErrorIs(t, err, wishlist.ErrProductNotFound)
	})
}

func TestList(t *testing.T) {
	t.Run("scoped_to_customer", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := wishlist.NewService(db, testutil.TestConfig())

		seller := testutil.CreateTestSeller(t, db)
		mine := testutil.CreateTestRenter(t, db)
		other := testutil.CreateTestRenter(t, db)
		p1 := testutil.CreateTestProduct(t, db, seller.ID)
		p2 := testutil.CreateTestProduct(t, db, seller.ID)

		_, err := svc.Add(mine.ID, &wishlist.AddRequest{ProductID: p1.ID})
		testutil.AssertNoError(t, err)
		_, err = svc.Add(other.ID, &wishlist.AddRequest{ProductID: p2.ID})
		testutil.AssertNoError(t, err)

		entries, err := svc.List(mine.ID)
		testutil.AssertNoError(t, err)

		if len(entries) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(entries))
		}
		if entries[0].ProductID != p1.ID {
			t.Errorf("expected product %d, got %d", p1.ID, entries[0].ProductID)
		}
	})
}

func TestRemove(t *testing.T) {
	t.Run("removes_own_entry", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := wishlist.NewService(db, testutil.TestConfig())

		seller := testutil.CreateTestSeller(t, db)
		renter := testutil.CreateTestRenter(t, db)
		product := testutil.CreateTestProduct(t, db, seller.ID)

		entry, err := svc.Add(renter.ID, &wishlist.AddRequest{ProductID: product.ID})
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, svc.Remove(renter.ID, entry.ID))

		entries, err := svc.List(renter.ID)
		testutil.AssertNoError(t, err)
		if len(entries) != 0 {
			t.Errorf("expected empty wishlist, got %d entries", len(entries))
		}
	})

	t.Run("other_customers_entry_looks_missing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := wishlist.NewService(db, testutil.TestConfig())

		seller := testutil.CreateTestSeller(t, db)
		owner := testutil.CreateTestRenter(t, db)
		stranger := testutil.CreateTestRenter(t, db)
		product := testutil.CreateTestProduct(t, db, seller.ID)

		entry, err := svc.Add(owner.ID, &wishlist.AddRequest{ProductID: product.ID})
		testutil.AssertNoError(t, err)

		testutil.AssertErrorIs(t, svc.Remove(stranger.ID, entry.ID), wishlist.ErrEntryNotFound)
	})

	t.Run("missing_entry", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := wishlist.NewService(db, testutil.TestConfig())
		renter := testutil.CreateTestRenter(t, db)

		testutil.AssertErrorIs(t, svc.Remove(renter.ID, 99999), wishlist.ErrEntryNotFound)
	})
}
