package expense

import (
	"time"

	"github.com/wayfarer-app/tripmate/internal/expense/split"
	"github.com/wayfarer-app/tripmate/pkg/money"
)

// SplitStatus represents the lifecycle of one participant's share
type SplitStatus string

const (
	SplitStatusPending   SplitStatus = "PENDING"
	SplitStatusPaid      SplitStatus = "PAID"
	SplitStatusConfirmed SplitStatus = "CONFIRMED"
	SplitStatusDisputed  SplitStatus = "DISPUTED"
)

// Expense represents a shared expense on a trip
type Expense struct {
	ID          int64       `json:"id"`
	TripID      int64       `json:"trip_id"`
	PayerID     int64       `json:"payer_id"`
	Description string      `json:"description"`
	Amount      money.Cents `json:"amount"`
	SplitType   string      `json:"split_type"` // EQUAL, PERCENTAGE, CUSTOM
	CreatedAt   time.Time   `json:"created_at"`

	// Populated via JOIN
	PayerUsername string `json:"payer_username,omitempty"`
}

// Split represents one participant's share of an expense. The payer's own
// share is recorded too (it feeds the balance aggregation) and is confirmed
// at creation.
type Split struct {
	ID            int64       `json:"id"`
	ExpenseID     int64       `json:"expense_id"`
	UserID        int64       `json:"user_id"`
	Amount        money.Cents `json:"amount"`
	Status        SplitStatus `json:"status"`
	DisputeReason *string     `json:"dispute_reason,omitempty"`
	SettlementID  *int64      `json:"settlement_id,omitempty"`
	UpdatedAt     time.Time   `json:"updated_at"`

	// Populated via JOIN
	Username string `json:"username,omitempty"`
}

// ExpenseWithSplits combines an expense with its calculated splits
type ExpenseWithSplits struct {
	Expense *Expense
	Splits  []*Split
}

// Participant is one entry in a create-expense request
type Participant struct {
	UserID     int64    `json:"user_id"`
	Percentage *float64 `json:"percentage,omitempty"` // For PERCENTAGE split
	Amount     *float64 `json:"amount,omitempty"`     // For CUSTOM split
}

// ToInput converts to the split package's input type
func (p *Participant) ToInput() split.Input {
	return split.Input{
		UserID:     p.UserID,
		Percentage: p.Percentage,
		Amount:     p.Amount,
	}
}
