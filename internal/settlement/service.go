package settlement

import (
	"context"
	"errors"
	"fmt"

	"github.com/wayfarer-app/tripmate/internal/notification"
	"github.com/wayfarer-app/tripmate/internal/settlement/settle"
	"github.com/wayfarer-app/tripmate/pkg/money"
)

// Common errors
var (
	ErrSettlementNotFound = errors.New("settlement not found")
	ErrNotTripMember      = errors.New("user is not a member of this trip")
	ErrNotSender          = errors.New("only the sender can do this")
	ErrNotRecipient       = errors.New("only the recipient can do this")
	ErrInvalidTransition  = errors.New("settlement cannot transition to that status")
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrSelfSettlement     = errors.New("cannot settle with yourself")
)

// TripMembership is the slice of the trip service the settlement service needs
type TripMembership interface {
	IsMember(ctx context.Context, tripID, userID int64) (bool, error)
}

// Notifier delivers in-app notifications; satisfied by the notification service
type Notifier interface {
	Notify(ctx context.Context, userID int64, notifType, message string) error
}

// Service handles settlement business logic
type Service struct {
	repo     *Repository
	trips    TripMembership
	notifier Notifier
}

// NewService creates a new settlement service with dependencies injected
func NewService(repo *Repository, trips TripMembership, notifier Notifier) *Service {
	return &Service{repo: repo, trips: trips, notifier: notifier}
}

// GetBalances returns every joined member's net position on the trip
func (s *Service) GetBalances(ctx context.Context, tripID, userID int64) ([]*MemberBalance, error) {
	if err := s.requireMember(ctx, tripID, userID); err != nil {
		return nil, err
	}
	return s.repo.GetTripBalances(ctx, tripID)
}

// GetPlan computes the suggested payments that bring every member's
// balance on the trip to zero
func (s *Service) GetPlan(ctx context.Context, tripID, userID int64) (*settle.Plan, error) {
	members, err := s.GetBalances(ctx, tripID, userID)
	if err != nil {
		return nil, err
	}

	balances := make([]settle.Balance, len(members))
	for i, m := range members {
		balances[i] = settle.Balance{
			UserID:   m.UserID,
			UserName: m.Username,
			Balance:  m.Balance(),
		}
	}

	return settle.Settle(balances), nil
}

// Create records a payment from the caller to another trip member
func (s *Service) Create(ctx context.Context, fromUserID int64, req *CreateSettlementRequest) (*Settlement, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if req.ToUserID == fromUserID {
		return nil, ErrSelfSettlement
	}

	if err := s.requireMember(ctx, req.TripID, fromUserID); err != nil {
		return nil, err
	}
	ok, err := s.trips.IsMember(ctx, req.TripID, req.ToUserID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotTripMember
	}

	settlement := &Settlement{
		TripID:     req.TripID,
		FromUserID: fromUserID,
		ToUserID:   req.ToUserID,
		Amount:     money.FromFloat(req.Amount),
	}

	settlement, err = s.repo.Create(ctx, settlement)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		message := fmt.Sprintf("A settlement of %s was recorded in your favor", settlement.Amount.String())
		_ = s.notifier.Notify(ctx, req.ToUserID, notification.TypeSettlementRequested, message)
	}

	return settlement, nil
}

// ListByTrip retrieves settlements for a trip the requester belongs to
func (s *Service) ListByTrip(ctx context.Context, tripID, userID int64) ([]*Settlement, error) {
	if err := s.requireMember(ctx, tripID, userID); err != nil {
		return nil, err
	}
	return s.repo.ListByTripID(ctx, tripID)
}

// MarkPaid transitions a PENDING settlement to PAID; only the sender may do so
func (s *Service) MarkPaid(ctx context.Context, id, userID int64) error {
	settlement, err := s.getSettlement(ctx, id)
	if err != nil {
		return err
	}
	if settlement.FromUserID != userID {
		return ErrNotSender
	}
	if settlement.Status != StatusPending {
		return ErrInvalidTransition
	}

	return s.repo.UpdateStatus(ctx, id, StatusPaid)
}

// Confirm lets the recipient acknowledge a PAID settlement. Confirmed
// settlements start counting toward balances.
func (s *Service) Confirm(ctx context.Context, id, userID int64) error {
	settlement, err := s.getSettlement(ctx, id)
	if err != nil {
		return err
	}
	if settlement.ToUserID != userID {
		return ErrNotRecipient
	}
	if settlement.Status != StatusPaid {
		return ErrInvalidTransition
	}

	if err := s.repo.UpdateStatus(ctx, id, StatusConfirmed); err != nil {
		return err
	}

	if s.notifier != nil {
		message := fmt.Sprintf("Your settlement of %s was confirmed", settlement.Amount.String())
		_ = s.notifier.Notify(ctx, settlement.FromUserID, notification.TypeSettlementConfirmed, message)
	}

	return nil
}

// Reject lets the recipient decline a settlement that is not yet confirmed
func (s *Service) Reject(ctx context.Context, id, userID int64) error {
	settlement, err := s.getSettlement(ctx, id)
	if err != nil {
		return err
	}
	if settlement.ToUserID != userID {
		return ErrNotRecipient
	}
	if settlement.Status != StatusPending && settlement.Status != StatusPaid {
		return ErrInvalidTransition
	}

	return s.repo.UpdateStatus(ctx, id, StatusRejected)
}

func (s *Service) getSettlement(ctx context.Context, id int64) (*Settlement, error) {
	settlement, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if settlement == nil {
		return nil, ErrSettlementNotFound
	}
	return settlement, nil
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
