package notification

import "time"

// Notification represents an in-app notification
type Notification struct {
	ID          int64     `json:"id"`
	RecipientID int64     `json:"recipient_id"`
	Type        string    `json:"type"`
	Message     string    `json:"message"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
}

// Notification types emitted by the other services
const (
	TypeTripInvitation      = "TRIP_INVITATION"
	TypeExpenseAdded        = "EXPENSE_ADDED"
	TypeSplitPaid           = "SPLIT_PAID"
	TypeSettlementRequested = "SETTLEMENT_REQUESTED"
	TypeSettlementConfirmed = "SETTLEMENT_CONFIRMED"
	TypePollCreated         = "POLL_CREATED"
)
