package trip

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrTripNotFound       = errors.New("trip not found")
	ErrMemberNotFound     = errors.New("member not found")
	ErrNotMember          = errors.New("user is not a member of this trip")
	ErrNotOrganizer       = errors.New("only the organizer can do this")
	ErrAlreadyMember      = errors.New("user is already a member of this trip")
	ErrInvitationNotFound = errors.New("invitation not found")
	ErrAlreadyJoined      = errors.New("invitation already accepted")
	ErrInvalidDateRange   = errors.New("end date cannot be before start date")
)

// Notifier delivers in-app notifications; satisfied by the notification service
type Notifier interface {
	Notify(ctx context.Context, userID int64, notifType, message string) error
}

// Service handles trip business logic
type Service struct {
	repo     *Repository
	notifier Notifier
}

// NewService creates a new trip service with dependencies injected
func NewService(repo *Repository, notifier Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

// Create creates a new trip with the creator as its organizer
func (s *Service) Create(ctx context.Context, creatorID int64, req *CreateTripRequest) (*Trip, error) {
	startDate, endDate, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, creatorID, req.Name, req.Description, req.Destination, startDate, endDate, uuid.NewString())
}

// GetByID retrieves a trip with its members; the requester must belong to it
func (s *Service) GetByID(ctx context.Context, tripID, userID int64) (*Trip, []*Member, error) {
	trip, err := s.repo.GetByID(ctx, tripID)
	if err != nil {
		return nil, nil, err
	}
	if trip == nil {
		return nil, nil, ErrTripNotFound
	}

	if err := s.requireMember(ctx, tripID, userID); err != nil {
		return nil, nil, err
	}

	members, err := s.repo.GetMembers(ctx, tripID)
	if err != nil {
		return nil, nil, err
	}

	return trip, members, nil
}

// ListByUserID retrieves trips the user belongs to
func (s *Service) ListByUserID(ctx context.Context, userID int64, page, perPage int) ([]*Trip, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByUserID(ctx, userID, perPage, offset)
}

// Update modifies a trip; only the organizer may update it
func (s *Service) Update(ctx context.Context, tripID, userID int64, req *UpdateTripRequest) (*Trip, error) {
	if err := s.requireOrganizer(ctx, tripID, userID); err != nil {
		return nil, err
	}

	startDate, endDate, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	trip, err := s.repo.Update(ctx, tripID, req.Name, req.Description, req.Destination, startDate, endDate)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, ErrTripNotFound
	}

	return trip, nil
}

// Delete removes a trip; only the organizer may delete it
func (s *Service) Delete(ctx context.Context, tripID, userID int64) error {
	if err := s.requireOrganizer(ctx, tripID, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, tripID)
}

// Invite adds a user to the trip as INVITED and returns the invite token
func (s *Service) Invite(ctx context.Context, tripID, inviterID int64, req *InviteMemberRequest) (*Member, error) {
	trip, err := s.repo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, ErrTripNotFound
	}

	if err := s.requireMember(ctx, tripID, inviterID); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetMember(ctx, tripID, req.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyMember
	}

	role := req.Role
	if role == "" {
		role = MemberRoleMember
	}

	member, err := s.repo.AddMember(ctx, tripID, req.UserID, role, uuid.NewString())
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		message := fmt.Sprintf("You have been invited to the trip %q", trip.Name)
		if err := s.notifier.Notify(ctx, req.UserID, "TRIP_INVITATION", message); err != nil {
			// Notification failure must not fail the invite
			return member, nil
		}
	}

	return member, nil
}

// AcceptInvitation marks the invitation matching the token as joined.
// Only the invited user may accept.
func (s *Service) AcceptInvitation(ctx context.Context, token string, userID int64) (*Member, error) {
	member, err := s.repo.GetMemberByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrInvitationNotFound
	}
	if member.UserID != userID {
		return nil, ErrInvitationNotFound
	}
	if member.Status == MemberStatusJoined {
		return nil, ErrAlreadyJoined
	}

	return s.repo.JoinMember(ctx, member.ID)
}

// DeclineInvitation removes the pending invitation matching the token
func (s *Service) DeclineInvitation(ctx context.Context, token string, userID int64) error {
	member, err := s.repo.GetMemberByToken(ctx, token)
	if err != nil {
		return err
	}
	if member == nil || member.UserID != userID {
		return ErrInvitationNotFound
	}
	if member.Status == MemberStatusJoined {
		return ErrAlreadyJoined
	}

	return s.repo.RemoveMember(ctx, member.ID)
}

// RemoveMember removes a member; organizers may remove anyone, members only themselves
func (s *Service) RemoveMember(ctx context.Context, tripID, targetUserID, requesterID int64) error {
	if targetUserID != requesterID {
		if err := s.requireOrganizer(ctx, tripID, requesterID); err != nil {
			return err
		}
	}

	member, err := s.repo.GetMember(ctx, tripID, targetUserID)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrMemberNotFound
	}

	return s.repo.RemoveMember(ctx, member.ID)
}

// IsMember reports whether the user is a joined member of the trip.
// Other feature services use this for access checks.
func (s *Service) IsMember(ctx context.Context, tripID, userID int64) (bool, error) {
	member, err := s.repo.GetMember(ctx, tripID, userID)
	if err != nil {
		return false, err
	}
	return member != nil && member.Status == MemberStatusJoined, nil
}

// JoinedMemberIDs returns the user IDs of all joined members of the trip
func (s *Service) JoinedMemberIDs(ctx context.Context, tripID int64) ([]int64, error) {
	members, err := s.repo.GetMembers(ctx, tripID)
	if err != nil {
		return nil, err
	}

	var ids []int64
	for _, m := range members {
		if m.Status == MemberStatusJoined {
			ids = append(ids, m.UserID)
		}
	}
	return ids, nil
}

func (s *Service) requireMember(ctx context.Context, tripID, userID int64) error {
	member, err := s.repo.GetMember(ctx, tripID, userID)
	if err != nil {
		return err
	}
	if member == nil || member.Status != MemberStatusJoined {
		return ErrNotMember
	}
	return nil
}

func (s *Service) requireOrganizer(ctx context.Context, tripID, userID int64) error {
	member, err := s.repo.GetMember(ctx, tripID, userID)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrNotMember
	}
	if member.Role != MemberRoleOrganizer {
		return ErrNotOrganizer
	}
	return nil
}

func parseDateRange(start, end *string) (*time.Time, *time.Time, error) {
	var startDate, endDate *time.Time

	if start != nil {
		d, err := time.Parse(dateLayout, *start)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid start date: %w", err)
		}
		startDate = &d
	}
	if end != nil {
		d, err := time.Parse(dateLayout, *end)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid end date: %w", err)
		}
		endDate = &d
	}
	if startDate != nil && endDate != nil && endDate.Before(*startDate) {
		return nil, nil, ErrInvalidDateRange
	}

	return startDate, endDate, nil
}
