package itinerary

import "time"

// Item represents one scheduled entry in a trip's itinerary
type Item struct {
	ID        int64      `json:"id"`
	TripID    int64      `json:"trip_id"`
	CreatorID int64      `json:"creator_id"`
	Day       int        `json:"day"` // 1-based day of the trip
	Title     string     `json:"title"`
	Location  *string    `json:"location,omitempty"`
	StartsAt  *time.Time `json:"starts_at,omitempty"`
	EndsAt    *time.Time `json:"ends_at,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
