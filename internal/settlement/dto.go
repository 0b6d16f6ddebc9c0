package settlement

import "github.com/wayfarer-app/tripmate/internal/settlement/settle"

// CreateSettlementRequest represents the request to record a payment
type CreateSettlementRequest struct {
	TripID   int64   `json:"trip_id" validate:"required"`
	ToUserID int64   `json:"to_user_id" validate:"required"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
}

// SettlementResponse represents the response for a recorded settlement
type SettlementResponse struct {
	ID           int64  `json:"id"`
	TripID       int64  `json:"trip_id"`
	FromUserID   int64  `json:"from_user_id"`
	FromUsername string `json:"from_username,omitempty"`
	ToUserID     int64  `json:"to_user_id"`
	ToUsername   string `json:"to_username,omitempty"`
	Amount       string `json:"amount"`
	Status       Status `json:"status"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// BalanceResponse represents one member's position on a trip. Amounts are
// fixed two-decimal strings.
type BalanceResponse struct {
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	TotalPaid string `json:"total_paid"`
	TotalOwed string `json:"total_owed"`
	Balance   string `json:"balance"`
}

// PlanResponse represents the suggested payments that zero out a trip
type PlanResponse struct {
	Settlements []*PlanEntry `json:"settlements"`
	Summary     PlanSummary  `json:"summary"`
}

// PlanEntry is one suggested payment
type PlanEntry struct {
	FromUserID   int64  `json:"from_user_id"`
	FromUsername string `json:"from_username"`
	ToUserID     int64  `json:"to_user_id"`
	ToUsername   string `json:"to_username"`
	Amount       string `json:"amount"`
}

// PlanSummary aggregates a plan
type PlanSummary struct {
	TotalTransactions int    `json:"total_transactions"`
	TotalAmount       string `json:"total_amount"`
}

// ToResponse converts a Settlement model to a SettlementResponse DTO
func (s *Settlement) ToResponse() *SettlementResponse {
	return &SettlementResponse{
		ID:           s.ID,
		TripID:       s.TripID,
		FromUserID:   s.FromUserID,
		FromUsername: s.FromUsername,
		ToUserID:     s.ToUserID,
		ToUsername:   s.ToUsername,
		Amount:       s.Amount.String(),
		Status:       s.Status,
		CreatedAt:    s.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:    s.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ToResponse converts a MemberBalance to a BalanceResponse DTO
func (b *MemberBalance) ToResponse() *BalanceResponse {
	return &BalanceResponse{
		UserID:    b.UserID,
		Username:  b.Username,
		TotalPaid: b.TotalPaid.String(),
		TotalOwed: b.TotalOwed.String(),
		Balance:   b.Balance().String(),
	}
}

// PlanToResponse converts an engine plan to its API shape
func PlanToResponse(plan *settle.Plan) *PlanResponse {
	entries := make([]*PlanEntry, len(plan.Transactions))
	for i, tx := range plan.Transactions {
		entries[i] = &PlanEntry{
			FromUserID:   tx.From.UserID,
			FromUsername: tx.From.UserName,
			ToUserID:     tx.To.UserID,
			ToUsername:   tx.To.UserName,
			Amount:       tx.Amount.String(),
		}
	}
	return &PlanResponse{
		Settlements: entries,
		Summary: PlanSummary{
			TotalTransactions: plan.Summary.TotalTransactions,
			TotalAmount:       plan.Summary.TotalAmount.String(),
		},
	}
}
