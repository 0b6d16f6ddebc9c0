package poll

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/wayfarer-app/tripmate/internal/notification"
)

// Common errors
var (
	ErrPollNotFound    = errors.New("poll not found")
	ErrOptionNotFound  = errors.New("option not found")
	ErrNotTripMember   = errors.New("user is not a member of this trip")
	ErrNotCreator      = errors.New("only the poll creator can do this")
	ErrPollClosed      = errors.New("poll is closed")
	ErrTooFewOptions   = errors.New("a poll needs at least two options")
	ErrDuplicateOption = errors.New("poll options must be distinct")
)

// TripMembership is the slice of the trip service the poll service needs
type TripMembership interface {
	IsMember(ctx context.Context, tripID, userID int64) (bool, error)
	JoinedMemberIDs(ctx context.Context, tripID int64) ([]int64, error)
}

// Notifier delivers in-app notifications; satisfied by the notification service
type Notifier interface {
	Notify(ctx context.Context, userID int64, notifType, message string) error
}

// Service handles poll business logic
type Service struct {
	repo     *Repository
	trips    TripMembership
	notifier Notifier
}

// NewService creates a new poll service with dependencies injected
func NewService(repo *Repository, trips TripMembership, notifier Notifier) *Service {
	return &Service{repo: repo, trips: trips, notifier: notifier}
}

// Create opens a new poll and notifies the other trip members
func (s *Service) Create(ctx context.Context, creatorID int64, req *CreatePollRequest) (*Poll, []*Option, error) {
	if err := s.requireMember(ctx, req.TripID, creatorID); err != nil {
		return nil, nil, err
	}

	options := make([]string, 0, len(req.Options))
	seen := make(map[string]bool)
	for _, o := range req.Options {
		o = strings.TrimSpace(o)
		if o == "" {
			continue
		}
		if seen[o] {
			return nil, nil, ErrDuplicateOption
		}
		seen[o] = true
		options = append(options, o)
	}
	if len(options) < 2 {
		return nil, nil, ErrTooFewOptions
	}

	poll := &Poll{TripID: req.TripID, CreatorID: creatorID, Question: req.Question}
	poll, created, err := s.repo.Create(ctx, poll, options)
	if err != nil {
		return nil, nil, err
	}

	s.notifyMembers(ctx, poll)

	return poll, created, nil
}

// GetByID retrieves a poll with its options and the requester's vote
func (s *Service) GetByID(ctx context.Context, pollID, userID int64) (*Poll, []*Option, *Vote, error) {
	poll, err := s.repo.GetByID(ctx, pollID)
	if err != nil {
		return nil, nil, nil, err
	}
	if poll == nil {
		return nil, nil, nil, ErrPollNotFound
	}

	if err := s.requireMember(ctx, poll.TripID, userID); err != nil {
		return nil, nil, nil, err
	}

	options, err := s.repo.GetOptions(ctx, pollID)
	if err != nil {
		return nil, nil, nil, err
	}

	vote, err := s.repo.GetVote(ctx, pollID, userID)
	if err != nil {
		return nil, nil, nil, err
	}

	return poll, options, vote, nil
}

// ListByTrip retrieves polls for a trip the requester belongs to
func (s *Service) ListByTrip(ctx context.Context, tripID, userID int64) ([]*Poll, error) {
	if err := s.requireMember(ctx, tripID, userID); err != nil {
		return nil, err
	}
	return s.repo.ListByTripID(ctx, tripID)
}

// Vote records the user's choice on an open poll. Voting again replaces
// the previous choice.
func (s *Service) Vote(ctx context.Context, pollID, userID int64, req *VoteRequest) error {
	poll, err := s.repo.GetByID(ctx, pollID)
	if err != nil {
		return err
	}
	if poll == nil {
		return ErrPollNotFound
	}
	if poll.Status == StatusClosed {
		return ErrPollClosed
	}

	if err := s.requireMember(ctx, poll.TripID, userID); err != nil {
		return err
	}

	option, err := s.repo.GetOption(ctx, req.OptionID)
	if err != nil {
		return err
	}
	if option == nil || option.PollID != pollID {
		return ErrOptionNotFound
	}

	return s.repo.Vote(ctx, pollID, req.OptionID, userID)
}

// Close marks a poll CLOSED; only the creator may close it
func (s *Service) Close(ctx context.Context, pollID, userID int64) (*Poll, []*Option, error) {
	poll, err := s.repo.GetByID(ctx, pollID)
	if err != nil {
		return nil, nil, err
	}
	if poll == nil {
		return nil, nil, ErrPollNotFound
	}
	if poll.CreatorID != userID {
		return nil, nil, ErrNotCreator
	}
	if poll.Status == StatusClosed {
		return nil, nil, ErrPollClosed
	}

	if err := s.repo.Close(ctx, pollID); err != nil {
		return nil, nil, err
	}
	poll.Status = StatusClosed

	options, err := s.repo.GetOptions(ctx, pollID)
	if err != nil {
		return nil, nil, err
	}

	return poll, options, nil
}

// Delete removes a poll; only the creator may delete it
func (s *Service) Delete(ctx context.Context, pollID, userID int64) error {
	poll, err := s.repo.GetByID(ctx, pollID)
	if err != nil {
		return err
	}
	if poll == nil {
		return ErrPollNotFound
	}
	if poll.CreatorID != userID {
		return ErrNotCreator
	}

	return s.repo.Delete(ctx, pollID)
}

// notifyMembers informs everyone but the creator about a new poll.
// Notification failures never fail the poll.
func (s *Service) notifyMembers(ctx context.Context, poll *Poll) {
	if s.notifier == nil {
		return
	}
	ids, err := s.trips.JoinedMemberIDs(ctx, poll.TripID)
	if err != nil {
		return
	}
	message := fmt.Sprintf("New poll: %q", poll.Question)
	for _, id := range ids {
		if id == poll.CreatorID {
			continue
		}
		_ = s.notifier.Notify(ctx, id, notification.TypePollCreated, message)
	}
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
