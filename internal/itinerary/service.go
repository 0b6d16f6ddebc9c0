package itinerary

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Common errors
var (
	ErrItemNotFound     = errors.New("itinerary item not found")
	ErrNotTripMember    = errors.New("user is not a member of this trip")
	ErrNotCreator       = errors.New("only the item creator can do this")
	ErrInvalidDay       = errors.New("day must be at least 1")
	ErrInvalidTimeRange = errors.New("end time cannot be before start time")
)

// TripMembership is the slice of the trip service the itinerary service needs
type TripMembership interface {
	IsMember(ctx context.Context, tripID, userID int64) (bool, error)
}

// Service handles itinerary business logic
type Service struct {
	repo  *Repository
	trips TripMembership
}

// NewService creates a new itinerary service with dependencies injected
func NewService(repo *Repository, trips TripMembership) *Service {
	return &Service{repo: repo, trips: trips}
}

// Create adds an item to the trip's itinerary
func (s *Service) Create(ctx context.Context, creatorID int64, req *CreateItemRequest) (*Item, error) {
	if req.Day < 1 {
		return nil, ErrInvalidDay
	}

	if err := s.requireMember(ctx, req.TripID, creatorID); err != nil {
		return nil, err
	}

	startsAt, endsAt, err := parseTimeRange(req.StartsAt, req.EndsAt)
	if err != nil {
		return nil, err
	}

	item := &Item{
		TripID:    req.TripID,
		CreatorID: creatorID,
		Day:       req.Day,
		Title:     req.Title,
		Location:  req.Location,
		StartsAt:  startsAt,
		EndsAt:    endsAt,
		Notes:     req.Notes,
	}

	return s.repo.Create(ctx, item)
}

// ListByTrip retrieves the itinerary for a trip the requester belongs to
func (s *Service) ListByTrip(ctx context.Context, tripID, userID int64) ([]*Item, error) {
	if err := s.requireMember(ctx, tripID, userID); err != nil {
		return nil, err
	}
	return s.repo.ListByTripID(ctx, tripID)
}

// Update modifies an item; only its creator may update it
func (s *Service) Update(ctx context.Context, itemID, userID int64, req *UpdateItemRequest) (*Item, error) {
	item, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	if item.CreatorID != userID {
		return nil, ErrNotCreator
	}
	if req.Day != nil && *req.Day < 1 {
		return nil, ErrInvalidDay
	}

	startsAt, endsAt, err := parseTimeRange(req.StartsAt, req.EndsAt)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, itemID, req.Day, req.Title, req.Location, startsAt, endsAt, req.Notes)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrItemNotFound
	}

	return updated, nil
}

// Delete removes an item; only its creator may delete it
func (s *Service) Delete(ctx context.Context, itemID, userID int64) error {
	item, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrItemNotFound
	}
	if item.CreatorID != userID {
		return ErrNotCreator
	}

	return s.repo.Delete(ctx, itemID)
}

func (s *Service) requireMember(ctx context.Context, tripID, userID int64) error {
	ok, err := s.trips.IsMember(ctx, tripID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotTripMember
	}
	return nil
}

func parseTimeRange(start, end *string) (*time.Time, *time.Time, error) {
	var startsAt, endsAt *time.Time

	if start != nil {
		t, err := time.Parse(time.RFC3339, *start)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid start time: %w", err)
		}
		startsAt = &t
	}
	if end != nil {
		t, err := time.Parse(time.RFC3339, *end)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid end time: %w", err)
		}
		endsAt = &t
	}
	if startsAt != nil && endsAt != nil && endsAt.Before(*startsAt) {
		return nil, nil, ErrInvalidTimeRange
	}

	return startsAt, endsAt, nil
}
