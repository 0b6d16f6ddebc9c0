package trip

import "time"

// MemberStatus represents the status of a trip member
type MemberStatus string

const (
	MemberStatusInvited MemberStatus = "INVITED"
	MemberStatusJoined  MemberStatus = "JOINED"
)

// MemberRole represents the role of a trip member
type MemberRole string

const (
	MemberRoleOrganizer MemberRole = "ORGANIZER"
	MemberRoleMember    MemberRole = "MEMBER"
)

// Trip represents a planned group trip
type Trip struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	Destination string     `json:"destination"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	CreatedBy   int64      `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Member represents a user's membership in a trip. A member starts out
// INVITED with an invite token and becomes JOINED once they accept.
type Member struct {
	ID          int64        `json:"id"`
	TripID      int64        `json:"trip_id"`
	UserID      int64        `json:"user_id"`
	Status      MemberStatus `json:"status"`
	Role        MemberRole   `json:"role"`
	InviteToken string       `json:"-"`
	JoinedAt    *time.Time   `json:"joined_at,omitempty"`

	// Populated from JOIN
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}
