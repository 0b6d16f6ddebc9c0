package trip

import "time"

const dateLayout = "2006-01-02"

// CreateTripRequest represents the request to create a new trip
type CreateTripRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Description *string `json:"description,omitempty"`
	Destination string  `json:"destination" validate:"required,min=1,max=100"`
	StartDate   *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate     *string `json:"end_date,omitempty"`   // YYYY-MM-DD
}

// UpdateTripRequest represents the request to update a trip
type UpdateTripRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description,omitempty"`
	Destination *string `json:"destination,omitempty" validate:"omitempty,min=1,max=100"`
	StartDate   *string `json:"start_date,omitempty"`
	EndDate     *string `json:"end_date,omitempty"`
}

// InviteMemberRequest represents the request to invite a user to a trip
type InviteMemberRequest struct {
	UserID int64      `json:"user_id" validate:"required"`
	Role   MemberRole `json:"role"`
}

// TripResponse represents the response for a trip
type TripResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Description *string           `json:"description,omitempty"`
	Destination string            `json:"destination"`
	StartDate   *string           `json:"start_date,omitempty"`
	EndDate     *string           `json:"end_date,omitempty"`
	CreatedBy   int64             `json:"created_by"`
	CreatedAt   string            `json:"created_at"`
	Members     []*MemberResponse `json:"members,omitempty"`
}

// MemberResponse represents a member in a trip response
type MemberResponse struct {
	ID       int64        `json:"id"`
	UserID   int64        `json:"user_id"`
	Username string       `json:"username"`
	Email    string       `json:"email"`
	Status   MemberStatus `json:"status"`
	Role     MemberRole   `json:"role"`
	JoinedAt *string      `json:"joined_at,omitempty"`
}

// InvitationResponse is returned to the inviter; the token is shared with
// the invitee out of band.
type InvitationResponse struct {
	TripID      int64  `json:"trip_id"`
	UserID      int64  `json:"user_id"`
	InviteToken string `json:"invite_token"`
}

// ToResponse converts a Trip model to a TripResponse DTO
func (t *Trip) ToResponse() *TripResponse {
	resp := &TripResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Destination: t.Destination,
		CreatedBy:   t.CreatedBy,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
	}
	if t.StartDate != nil {
		s := t.StartDate.Format(dateLayout)
		resp.StartDate = &s
	}
	if t.EndDate != nil {
		s := t.EndDate.Format(dateLayout)
		resp.EndDate = &s
	}
	return resp
}

// ToResponse converts a Member model to a MemberResponse DTO
func (m *Member) ToResponse() *MemberResponse {
	resp := &MemberResponse{
		ID:       m.ID,
		UserID:   m.UserID,
		Username: m.Username,
		Email:    m.Email,
		Status:   m.Status,
		Role:     m.Role,
	}
	if m.JoinedAt != nil {
		s := m.JoinedAt.Format(time.RFC3339)
		resp.JoinedAt = &s
	}
	return resp
}
