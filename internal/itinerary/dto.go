package itinerary

// CreateItemRequest represents the request to add an itinerary item
type CreateItemRequest struct {
	TripID   int64   `json:"trip_id" validate:"required"`
	Day      int     `json:"day" validate:"required,min=1"`
	Title    string  `json:"title" validate:"required,min=1,max=255"`
	Location *string `json:"location,omitempty" validate:"omitempty,max=255"`
	StartsAt *string `json:"starts_at,omitempty"` // RFC 3339
	EndsAt   *string `json:"ends_at,omitempty"`   // RFC 3339
	Notes    *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// UpdateItemRequest represents the request to update an itinerary item.
// Nil fields are left unchanged.
type UpdateItemRequest struct {
	Day      *int    `json:"day,omitempty" validate:"omitempty,min=1"`
	Title    *string `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Location *string `json:"location,omitempty" validate:"omitempty,max=255"`
	StartsAt *string `json:"starts_at,omitempty"`
	EndsAt   *string `json:"ends_at,omitempty"`
	Notes    *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}
