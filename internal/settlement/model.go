package settlement

import (
	"time"

	"github.com/wayfarer-app/tripmate/pkg/money"
)

// Status represents the lifecycle of a recorded settlement payment
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPaid      Status = "PAID"
	StatusConfirmed Status = "CONFIRMED"
	StatusRejected  Status = "REJECTED"
)

// Settlement records a direct payment from one trip member to another,
// made outside any single expense. Only CONFIRMED settlements count
// toward balances.
type Settlement struct {
	ID         int64       `json:"id"`
	TripID     int64       `json:"trip_id"`
	FromUserID int64       `json:"from_user_id"`
	ToUserID   int64       `json:"to_user_id"`
	Amount     money.Cents `json:"amount"`
	Status     Status      `json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`

	// Populated via JOIN
	FromUsername string `json:"from_username,omitempty"`
	ToUsername   string `json:"to_username,omitempty"`
}

// MemberBalance is one member's aggregated position on a trip. TotalPaid
// includes confirmed settlements sent; TotalOwed includes confirmed
// settlements received.
type MemberBalance struct {
	UserID    int64
	Username  string
	TotalPaid money.Cents
	TotalOwed money.Cents
}

// Balance returns the member's net position: positive is owed money,
// negative owes money.
func (b *MemberBalance) Balance() money.Cents {
	return b.TotalPaid - b.TotalOwed
}
