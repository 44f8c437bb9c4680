package transaction_test

import (
	"testing"
	"time"

	"github.com/your-org/rental-backend/internal/domain/rental"
	"github.com/your-org/rental-backend/internal/domain/transaction"
	"github.com/your-org/rental-backend/internal/testutil"
)

func dateRange(daysFromNow, length int) (time.Time, time.Time) {
	start := time.Now().UTC().AddDate(0, 0, daysFromNow).Truncate(time.Hour)
	return start, start.AddDate(0, 0, length)
}

func TestCreateTransaction(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := transaction.NewService(db, testutil.TestConfig())

		seller := testutil.CreateTestSeller(t, db)
		renter := testutil.CreateTestRenter(t, db)
		product := testutil.CreateTestProduct(t, db, seller.ID)

		start, end := dateRange(1, 3)
		tx, err := svc.Create(renter.ID, &transaction.CreateTransactionRequest{
			ProductID: product.ID,
			StartDate: start,
			EndDate:   end,
		})
		testutil.AssertNoError(t, err)

		if tx.Status != transaction.StatusPending {
			t.Errorf("expected pending, got %s", tx.Status)
		}
		if tx.OwnerID != seller.ID {
			t.Errorf("expected owner %d copied from listing, got %d", seller.ID, tx.OwnerID)
		}
		if tx.RenterID != renter.ID {
			t.Errorf("expected renter %d, got %d", renter.ID, tx.RenterID)
		}
		if tx.ProductTitle != product.Title {
			t.Errorf("expected product title %q, got %q", product.Title, tx.ProductTitle)
		}
	})

	t.Run("end_before_start", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := transaction.NewService(db, testutil.TestConfig())

		seller := testutil.CreateTestSeller(t, db)
		renter := testutil.CreateTestRenter(t, db)
		product := testutil.CreateTestProduct(t, db, seller.ID)

		start, end := dateRange(1, 3)
		_, err := svc.Create(renter.ID, &transaction.CreateTransactionRequest{
			ProductID: product.ID,
			StartDate: end,
			EndDate:   start,
		})
		testutil.AssertErrorIs(t, err, transaction.ErrInvalidDateRange)
	})

	t.Run("unapproved_product_unavailable", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := transaction.NewService(db, testutil.TestConfig())

		seller := testutil.CreateTestSeller(t, db)
		renter := testutil.CreateTestRenter(t, db)
		product := testutil.CreateTestProductWithStatus(t, db, seller.ID, rental.ModerationPending)

		start, end := dateRange(1, 3)
		_, err := svc.Create(renter.ID, &transaction.CreateTransactionRequest{
			ProductID: product.ID,
			StartDate: start,
			EndDate:   end,
		})
		testutil.AssertErrorIs(t, err, transaction.ErrProductUnavailable)
	})

	t.Run("overlapping_open_rental_conflicts", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := transaction.NewService(db, testutil.TestConfig())

		seller := testutil.CreateTestSeller(t, db)
		first := testutil.CreateTestRenter(t, db)
		second := testutil.CreateTestRenter(t, db)
		product := testutil.CreateTestProduct(t, db, seller.ID)

		start, end := dateRange(1, 5)
		testutil.CreateTestTransaction(t, db, product, first.ID, transaction.StatusPickedUp, start, end)

		overlapStart, overlapEnd := dateRange(3, 5)
		_, err := svc.Create(second.ID, &transaction.CreateTransactionRequest{
			ProductID: product.ID,
			StartDate: overlapStart,
			EndDate:   overlapEnd,
		})
		testutil.AssertErrorIs(t, err, transaction.ErrDateConflict)
	})

	t.Run("cancelled_rental_does_not_block", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := transaction.NewService(db, testutil.TestConfig())

		seller := testutil.CreateTestSeller(t, db)
		first := testutil.CreateTestRenter(t, db)
		second := testutil.CreateTestRenter(t, db)
		product := testutil.CreateTestProduct(t, db, seller.ID)

		start, end := dateRange(1, 5)
		testutil.CreateTestTransaction(t, db, product, first.ID, transaction.StatusCancelled, start, end)

		_, err := svc.Create(second.ID, &transaction.CreateTransactionRequest{
			ProductID: product.ID,
			StartDate: start,
			EndDate:   end,
		})
		testutil.AssertNoError(t, err)
	})

	t.Run("adjacent_ranges_do_not_conflict", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := transaction.NewService(db, testutil.TestConfig())

		seller := testutil.CreateTestSeller(t, db)
		first := testutil.CreateTestRenter(t, db)
		second := testutil.CreateTestRenter(t, db)
		product := testutil.CreateTestProduct(t, db, seller.ID)

		start, end := dateRange(1, 3)
		testutil.CreateTestTransaction(t, db, product, first.ID, transaction.StatusPending, start, end)

		// Back-to-back booking starting exactly when the first one ends.
		_, err := svc.Create(second.ID, &transaction.CreateTransactionRequest{
			ProductID: product.ID,
			StartDate: end,
			EndDate:   end.AddDate(0, 0, 2),
		})
		testutil.AssertNoError(t, err)
	})
}

func TestListScoping(t *testing.T) {
	t.Run("renter_sees_only_own", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := transaction.NewService(db, testutil.TestConfig())

		seller := testutil.CreateTestSeller(t, db)
		mine := testutil.CreateTestRenter(t, db)
		other := testutil.CreateTestRenter(t, db)
		product := testutil.CreateTestProduct(t, db, seller.ID)

		s1, e1 := dateRange(1, 2)
		s2, e2 := dateRange(10, 2)
		testutil.CreateTestTransaction(t, db, product, mine.ID, transaction.StatusPending, s1, e1)
		testutil.CreateTestTransaction(t, db, product, other.ID, transaction.StatusPending, s2, e2)

		txs, err := svc.ListForRenter(mine.ID)
		testutil.AssertNoError(t, err)

		if len(txs) != 1 {
			t.Fatalf("expected 1 transaction, got %d", len(txs))
		}
		if txs[0].RenterID != mine.ID {
			t.Errorf("expected renter %d, got %d", mine.ID, txs[0].RenterID)
		}
	})

	t.Run("owner_sees_rentals_of_own_listings", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := transaction.NewService(db, testutil.TestConfig())

		seller := testutil.CreateTestSeller(t, db)
		otherSeller := testutil.CreateTestSeller(t, db)
		renter := testutil.CreateTestRenter(t, db)

		mine := testutil.CreateTestProduct(t, db, seller.ID)
		theirs := testutil.CreateTestProduct(t, db, otherSeller.ID)

		s1, e1 := dateRange(1, 2)
		s2, e2 := dateRange(5, 2)
		testutil.CreateTestTransaction(t, db, mine, renter.ID, transaction.StatusPending, s1, e1)
		testutil.CreateTestTransaction(t, db, theirs, renter.ID, transaction.StatusPending, s2, e2)

		txs, err := svc.ListForOwner(seller.ID)
		testutil.AssertNoError(t, err)

		if len(txs) != 1 {
			t.Fatalf("expected 1 transaction, got %d", len(txs))
		}
		if txs[0].OwnerID != seller.ID {
			t.Errorf("expected owner %d, got %d", seller.ID, txs[0].OwnerID)
		}
	})
}

func TestUpdateStatus(t *testing.T) {
	t.Run("pending_to_picked_up", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := transaction.NewService(db, testutil.TestConfig())

		seller := testutil.CreateTestSeller(t, db)
		renter := testutil.CreateTestRenter(t, db)
		product := testutil.CreateTestProduct(t, db, seller.ID)
		s, e := dateRange(1, 2)
		tx := testutil.CreateTestTransaction(t, db, product, renter.ID, transaction.StatusPending, s, e)

		updated, err := svc.UpdateStatus(seller.ID, tx.ID, transaction.StatusPickedUp)
		testutil.AssertNoError(t, err)
		if updated.Status != transaction.StatusPickedUp {
			t.Errorf("expected picked_up, got %s", updated.Status)
		}
	})

	t.Run("picked_up_to_returned", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := transaction.NewService(db, testutil.TestConfig())

		seller := testutil.CreateTestSeller(t, db)
		renter := testutil.CreateTestRenter(t, db)
		product := testutil.CreateTestProduct(t, db, seller.ID)
		s, e := dateRange(1, 2)
		tx := testutil.CreateTestTransaction(t, db, product, renter.ID, transaction.StatusPickedUp, s, e)

		updated, err := svc.UpdateStatus(seller.ID, tx.ID, transaction.StatusReturned)
		testutil.AssertNoError(t, err)
		if !updated.IsClosed() {
			t.Error("expected returned transaction to be closed")
		}
	})

	t.Run("pending_cannot_jump_to_returned", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := transaction.NewService(db, testutil.TestConfig())

		seller := testutil.CreateTestSeller(t, db)
		renter := testutil.CreateTestRenter(t, db)
		product := testutil.CreateTestProduct(t, db, seller.ID)
		s, e := dateRange(1, 2)
		tx := testutil.CreateTestTransaction(t, db, product, renter.ID, transaction.StatusPending, s, e)

		_, err := svc.UpdateStatus(seller.ID, tx.ID, transaction.StatusReturned)
		testutil.AssertErrorIs(t, err, transaction.ErrInvalidTransition)
	})

	t.Run("returned_is_terminal", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := transaction.NewService(db, testutil.TestConfig())

		seller := testutil.CreateTestSeller(t, db)
		renter := testutil.CreateTestRenter(t, db)
		product := testutil.CreateTestProduct(t, db, seller.ID)
		s, e := dateRange(1, 2)
		tx := testutil.CreateTestTransaction(t, db, product, renter.ID, transaction.StatusReturned, s, e)

		_, err := svc.UpdateStatus(seller.ID, tx.ID, transaction.StatusPickedUp)
		testutil.AssertErrorIs(t, err, transaction.ErrInvalidTransition)
	})

	t.Run("non_owner_cannot_update", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := transaction.NewService(db, testutil.TestConfig())

		seller := testutil.CreateTestSeller(t, db)
		stranger := testutil.CreateTestSeller(t, db)
		renter := testutil.CreateTestRenter(t, db)
		product := testutil.CreateTestProduct(t, db, seller.ID)
		s, e := dateRange(1, 2)
		tx := testutil.CreateTestTransaction(t, db, product, renter.ID, transaction.StatusPending, s, e)

		_, err := svc.UpdateStatus(stranger.ID, tx.ID, transaction.StatusPickedUp)
		testutil.AssertErrorIs(t, err, transaction.ErrTransactionNotFound)
	})
}

func TestCancel(t *testing.T) {
	t.Run("renter_cancels_pending", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := transaction.NewService(db, testutil.TestConfig())

		seller := testutil.CreateTestSeller(t, db)
		renter := testutil.CreateTestRenter(t, db)
		product := testutil.CreateTestProduct(t, db, seller.ID)
		s, e := dateRange(1, 2)
		tx := testutil.CreateTestTransaction(t, db, product, renter.ID, transaction.StatusPending, s, e)

		cancelled, err := svc.Cancel(renter.ID, tx.ID)
		testutil.AssertNoError(t, err)
		if cancelled.Status != transaction.StatusCancelled {
			t.Errorf("expected cancelled, got %s", cancelled.Status)
		}
	})

	t.Run("picked_up_cannot_be_cancelled", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := transaction.NewService(db, testutil.TestConfig())

		seller := testutil.CreateTestSeller(t, db)
		renter := testutil.CreateTestRenter(t, db)
		product := testutil.CreateTestProduct(t, db, seller.ID)
		s, e := dateRange(1, 2)
		tx := testutil.CreateTestTransaction(t, db, product, renter.ID, transaction.StatusPickedUp, s, e)

		_, err := svc.Cancel(renter.ID, tx.ID)
		testutil.AssertErrorIs(t, err, transaction.ErrInvalidTransition)
	})

	t.Run("other_renters_transaction_invisible", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := transaction.NewService(db, testutil.TestConfig())

		seller := testutil.CreateTestSeller(t, db)
		renter := testutil.CreateTestRenter(t, db)
		stranger := testutil.CreateTestRenter(t, db)
		product := testutil.CreateTestProduct(t, db, seller.ID)
		s, e := dateRange(1, 2)
		tx := testutil.CreateTestTransaction(t, db, product, renter.ID, transaction.StatusPending, s, e)

		_, err := svc.Cancel(stranger.ID, tx.ID)
		testutil.AssertErrorIs(t, err, transaction.ErrTransactionNotFound)
	})
}

func TestGetForParty(t *testing.T) {
	t.Run("renter_and_owner_can_read", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := transaction.NewService(db, testutil.TestConfig())

		seller := testutil.CreateTestSeller(t, db)
		renter := testutil.CreateTestRenter(t, db)
		stranger := testutil.CreateTestRenter(t, db)
		product := testutil.CreateTestProduct(t, db, seller.ID)
		s, e := dateRange(1, 2)
		tx := testutil.CreateTestTransaction(t, db, product, renter.ID, transaction.StatusPending, s, e)

		_, err := svc.GetForParty(renter.ID, tx.ID)
		testutil.AssertNoError(t, err)

		_, err = svc.GetForParty(seller.ID, tx.ID)
		testutil.AssertNoError(t, err)

		_, err = svc.GetForParty(stranger.ID, tx.ID)
		testutil.AssertErrorIs(t, err, transaction.ErrTransactionNotFound)
	})
}
