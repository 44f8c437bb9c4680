// internal/domain/transaction/entity.go
package transaction

import (
	"time"

	"github.com/your-org/rental-backend/internal/domain/rental"
	"github.com/your-org/rental-backend/internal/domain/user"
)

// Status represents the lifecycle state of a rental transaction
type Status string

const (
	StatusPending   Status = "pending"
	StatusPickedUp  Status = "picked_up"
	StatusReturned  Status = "returned"
	StatusCancelled Status = "cancelled"
)

// IsValid reports whether the status is one of the known states.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPickedUp, StatusReturned, StatusCancelled:
		return true
	}
	return false
}

// transitions is the guarded state graph: pending can be picked up or
// cancelled, a picked-up item can only come back returned. Returned and
// cancelled are terminal.
var transitions = map[Status][]Status{
	StatusPending:  {StatusPickedUp, StatusCancelled},
	StatusPickedUp: {StatusReturned},
}

// CanTransitionTo reports whether moving from s to next is allowed.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Transaction records a renter borrowing a specific listing for a date range.
// The owner is denormalized from the listing at creation time so the seller
// read surface stays a single-table filter.
type Transaction struct {
	ID        uint                 `gorm:"primaryKey" json:"id"`
	ProductID uint                 `gorm:"not null;index" json:"product"`
	Product   rental.RentalProduct `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	OwnerID   uint                 `gorm:"not null;index" json:"owner"`
	Owner     user.User            `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	RenterID  uint                 `gorm:"not null;index" json:"renter"`
	Renter    user.User            `gorm:"foreignKey:RenterID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	StartDate time.Time `gorm:"not null" json:"start_date"`
	EndDate   time.Time `gorm:"not null" json:"end_date"`
	Status    Status    `gorm:"not null;size:20;default:'pending';index" json:"status"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name
func (Transaction) TableName() string {
	return "transactions"
}

// CanBeCancelled reports whether the renter may still back out.
func (t *Transaction) CanBeCancelled() bool {
	return t.Status == StatusPending
}

// IsClosed reports whether the transaction reached a terminal state.
func (t *Transaction) IsClosed() bool {
	return t.Status == StatusReturned || t.Status == StatusCancelled
}
