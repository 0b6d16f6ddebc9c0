package poll

import "time"

// Status represents the lifecycle of a poll
type Status string

const (
	StatusOpen   Status = "OPEN"
	StatusClosed Status = "CLOSED"
)

// Poll represents a group decision on a trip
type Poll struct {
	ID        int64     `json:"id"`
	TripID    int64     `json:"trip_id"`
	CreatorID int64     `json:"creator_id"`
	Question  string    `json:"question"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`

	// Populated via JOIN
	CreatorUsername string `json:"creator_username,omitempty"`
}

// Option represents one choice in a poll
type Option struct {
	ID        int64  `json:"id"`
	PollID    int64  `json:"poll_id"`
	Text      string `json:"text"`
	VoteCount int    `json:"vote_count"`
}

// Vote records a member's choice. One vote per user per poll; revoting
// replaces the previous choice.
type Vote struct {
	ID       int64     `json:"id"`
	PollID   int64     `json:"poll_id"`
	OptionID int64     `json:"option_id"`
	UserID   int64     `json:"user_id"`
	VotedAt  time.Time `json:"voted_at"`
}
