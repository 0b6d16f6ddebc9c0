package expense

// CreateExpenseRequest represents the request to create an expense
type CreateExpenseRequest struct {
	TripID       int64          `json:"trip_id" validate:"required"`
	Description  string         `json:"description" validate:"required,min=1,max=255"`
	Amount       float64        `json:"amount" validate:"required,gt=0"`
	SplitType    string         `json:"split_type" validate:"required,oneof=EQUAL PERCENTAGE CUSTOM"`
	Participants []*Participant `json:"participants" validate:"required,min=1"`
}

// DisputeSplitRequest represents the request to dispute a split
type DisputeSplitRequest struct {
	Reason string `json:"reason" validate:"required,min=1,max=500"`
}

// ExpenseResponse represents the response for an expense. Amounts are
// fixed two-decimal strings to avoid precision loss downstream.
type ExpenseResponse struct {
	ID            int64            `json:"id"`
	TripID        int64            `json:"trip_id"`
	PayerID       int64            `json:"payer_id"`
	PayerUsername string           `json:"payer_username,omitempty"`
	Description   string           `json:"description"`
	Amount        string           `json:"amount"`
	SplitType     string           `json:"split_type"`
	CreatedAt     string           `json:"created_at"`
	Splits        []*SplitResponse `json:"splits,omitempty"`
}

// SplitResponse represents the response for a split
type SplitResponse struct {
	ID            int64       `json:"id"`
	ExpenseID     int64       `json:"expense_id"`
	UserID        int64       `json:"user_id"`
	Username      string      `json:"username,omitempty"`
	Amount        string      `json:"amount"`
	Status        SplitStatus `json:"status"`
	DisputeReason *string     `json:"dispute_reason,omitempty"`
	SettlementID  *int64      `json:"settlement_id,omitempty"`
	UpdatedAt     string      `json:"updated_at"`
}

// ToResponse converts an Expense model to an ExpenseResponse DTO
func (e *Expense) ToResponse() *ExpenseResponse {
	return &ExpenseResponse{
		ID:            e.ID,
		TripID:        e.TripID,
		PayerID:       e.PayerID,
		PayerUsername: e.PayerUsername,
		Description:   e.Description,
		Amount:        e.Amount.String(),
		SplitType:     e.SplitType,
		CreatedAt:     e.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ToResponse converts a Split model to a SplitResponse DTO
func (s *Split) ToResponse() *SplitResponse {
	return &SplitResponse{
		ID:            s.ID,
		ExpenseID:     s.ExpenseID,
		UserID:        s.UserID,
		Username:      s.Username,
		Amount:        s.Amount.String(),
		Status:        s.Status,
		DisputeReason: s.DisputeReason,
		SettlementID:  s.SettlementID,
		UpdatedAt:     s.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
