package poll

// CreatePollRequest represents the request to create a poll
type CreatePollRequest struct {
	TripID   int64    `json:"trip_id" validate:"required"`
	Question string   `json:"question" validate:"required,min=1,max=255"`
	Options  []string `json:"options" validate:"required,min=2,dive,min=1,max=255"`
}

// VoteRequest represents the request to vote on a poll
type VoteRequest struct {
	OptionID int64 `json:"option_id" validate:"required"`
}

// PollResponse represents the response for a poll with its options
type PollResponse struct {
	ID              int64             `json:"id"`
	TripID          int64             `json:"trip_id"`
	CreatorID       int64             `json:"creator_id"`
	CreatorUsername string            `json:"creator_username,omitempty"`
	Question        string            `json:"question"`
	Status          Status            `json:"status"`
	CreatedAt       string            `json:"created_at"`
	Options         []*OptionResponse `json:"options,omitempty"`
	MyVote          *int64            `json:"my_vote,omitempty"` // Option ID the requester voted for
}

// OptionResponse represents one poll option with its tally
type OptionResponse struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	VoteCount int    `json:"vote_count"`
}

// ToResponse converts a Poll model to a PollResponse DTO
func (p *Poll) ToResponse(options []*Option, myVote *int64) *PollResponse {
	resp := &PollResponse{
		ID:              p.ID,
		TripID:          p.TripID,
		CreatorID:       p.CreatorID,
		CreatorUsername: p.CreatorUsername,
		Question:        p.Question,
		Status:          p.Status,
		CreatedAt:       p.CreatedAt.Format("2006-01-02T15:04:05Z"),
		MyVote:          myVote,
	}
	for _, o := range options {
		resp.Options = append(resp.Options, &OptionResponse{ID: o.ID, Text: o.Text, VoteCount: o.VoteCount})
	}
	return resp
}
