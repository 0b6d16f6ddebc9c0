package expense

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/wayfarer-app/tripmate/internal/expense/split"
	"github.com/wayfarer-app/tripmate/internal/notification"
	"github.com/wayfarer-app/tripmate/pkg/money"
)

// Common errors
var (
	ErrExpenseNotFound        = errors.New("expense not found")
	ErrSplitNotFound          = errors.New("split not found")
	ErrNotTripMember          = errors.New("user is not a member of this trip")
	ErrParticipantNotMember   = errors.New("participant is not a member of this trip")
	ErrNotPayer               = errors.New("only the payer can do this")
	ErrNotSplitOwner          = errors.New("only the split owner can do this")
	ErrInvalidSplitTransition = errors.New("split cannot transition to that status")
	ErrInvalidAmount          = errors.New("amount must be positive")
	ErrNoParticipants         = errors.New("at least one participant is required")
	ErrPercentagesSum         = errors.New("percentages must sum to 100")
	ErrAmountsSum             = errors.New("custom amounts must sum to the expense total")
)

// percentageSumTolerance absorbs float representation error in request payloads
const percentageSumTolerance = 0.01

// TripMembership is the slice of the trip service the expense service needs
type TripMembership interface {
	IsMember(ctx context.Context, tripID, userID int64) (bool, error)
}

// Notifier delivers in-app notifications; satisfied by the notification service
type Notifier interface {
	Notify(ctx context.Context, userID int64, notifType, message string) error
}

// Service handles expense business logic
type Service struct {
	repo     *Repository
	trips    TripMembership
	factory  *split.Factory
	notifier Notifier
}

// NewService creates a new expense service with dependencies injected
func NewService(repo *Repository, trips TripMembership, factory *split.Factory, notifier Notifier) *Service {
	return &Service{repo: repo, trips: trips, factory: factory, notifier: notifier}
}

// Create validates the request, calculates per-participant shares with the
// strategy matching the split type, and persists the expense with its splits.
func (s *Service) Create(ctx context.Context, payerID int64, req *CreateExpenseRequest) (*Expense, []*Split, error) {
	if req.Amount <= 0 {
		return nil, nil, ErrInvalidAmount
	}
	if len(req.Participants) == 0 {
		return nil, nil, ErrNoParticipants
	}

	if err := s.requireMember(ctx, req.TripID, payerID); err != nil {
		return nil, nil, err
	}
	for _, p := range req.Participants {
		ok, err := s.trips.IsMember(ctx, req.TripID, p.UserID)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			return nil, nil, ErrParticipantNotMember
		}
	}

	strategy, err := s.factory.CreateFromString(req.SplitType)
	if err != nil {
		return nil, nil, err
	}

	total := money.FromFloat(req.Amount)
	inputs := make([]split.Input, len(req.Participants))
	for i, p := range req.Participants {
		inputs[i] = p.ToInput()
	}

	if err := s.validateSums(strategy.Type(), total, inputs); err != nil {
		return nil, nil, err
	}
	if err := strategy.Validate(total, inputs); err != nil {
		return nil, nil, err
	}

	results, err := strategy.Calculate(total, inputs)
	if err != nil {
		return nil, nil, err
	}

	expense := &Expense{
		TripID:      req.TripID,
		PayerID:     payerID,
		Description: req.Description,
		Amount:      total,
		SplitType:   string(strategy.Type()),
	}

	splits := make([]*Split, len(results))
	for i, res := range results {
		splits[i] = &Split{UserID: res.UserID, Amount: res.Amount}
	}

	expense, splits, err = s.repo.Create(ctx, expense, splits)
	if err != nil {
		return nil, nil, err
	}

	s.notifyParticipants(ctx, expense, splits)

	return expense, splits, nil
}

// GetByID retrieves an expense with its splits; the requester must belong
// to the expense's trip
func (s *Service) GetByID(ctx context.Context, expenseID, userID int64) (*Expense, []*Split, error) {
	expense, err := s.repo.GetByID(ctx, expenseID)
	if err != nil {
		return nil, nil, err
	}
	if expense == nil {
		return nil, nil, ErrExpenseNotFound
	}

	if err := s.requireMember(ctx, expense.TripID, userID); err != nil {
		return nil, nil, err
	}

	splits, err := s.repo.GetSplits(ctx, expenseID)
	if err != nil {
		return nil, nil, err
	}

	return expense, splits, nil
}

// ListByTrip retrieves expenses for a trip the requester belongs to
func (s *Service) ListByTrip(ctx context.Context, tripID, userID int64, page, perPage int) ([]*Expense, int, error) {
	if err := s.requireMember(ctx, tripID, userID); err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByTripID(ctx, tripID, perPage, offset)
}

// MarkSplitPaid transitions the caller's own split to PAID. Allowed from
// PENDING and DISPUTED.
func (s *Service) MarkSplitPaid(ctx context.Context, splitID, userID int64) error {
	sp, expense, err := s.getSplitWithExpense(ctx, splitID)
	if err != nil {
		return err
	}
	if sp.UserID != userID {
		return ErrNotSplitOwner
	}
	if sp.Status != SplitStatusPending && sp.Status != SplitStatusDisputed {
		return ErrInvalidSplitTransition
	}

	if err := s.repo.UpdateSplitStatus(ctx, splitID, SplitStatusPaid); err != nil {
		return err
	}

	if s.notifier != nil {
		message := fmt.Sprintf("A share of %s for %q was marked as paid", sp.Amount.String(), expense.Description)
		_ = s.notifier.Notify(ctx, expense.PayerID, notification.TypeSplitPaid, message)
	}

	return nil
}

// ConfirmSplit lets the payer confirm receipt of a PAID split
func (s *Service) ConfirmSplit(ctx context.Context, splitID, userID int64) error {
	sp, expense, err := s.getSplitWithExpense(ctx, splitID)
	if err != nil {
		return err
	}
	if expense.PayerID != userID {
		return ErrNotPayer
	}
	if sp.Status != SplitStatusPaid {
		return ErrInvalidSplitTransition
	}

	return s.repo.UpdateSplitStatus(ctx, splitID, SplitStatusConfirmed)
}

// DisputeSplit lets the split owner contest a PENDING share
func (s *Service) DisputeSplit(ctx context.Context, splitID, userID int64, reason string) error {
	sp, _, err := s.getSplitWithExpense(ctx, splitID)
	if err != nil {
		return err
	}
	if sp.UserID != userID {
		return ErrNotSplitOwner
	}
	if sp.Status != SplitStatusPending {
		return ErrInvalidSplitTransition
	}

	return s.repo.DisputeSplit(ctx, splitID, reason)
}

// Delete removes an expense. Only the payer may delete, and only while no
// other participant has paid or been confirmed.
func (s *Service) Delete(ctx context.Context, expenseID, userID int64) error {
	expense, err := s.repo.GetByID(ctx, expenseID)
	if err != nil {
		return err
	}
	if expense == nil {
		return ErrExpenseNotFound
	}
	if expense.PayerID != userID {
		return ErrNotPayer
	}

	settled, err := s.repo.CountSettledSplits(ctx, expenseID, expense.PayerID)
	if err != nil {
		return err
	}
	if settled > 0 {
		return ErrInvalidSplitTransition
	}

	return s.repo.Delete(ctx, expenseID)
}

func (s *Service) validateSums(splitType split.Type, total money.Cents, inputs []split.Input) error {
	switch splitType {
	case split.TypePercentage:
		var sum float64
		for _, in := range inputs {
			if in.Percentage == nil {
				return split.ErrMissingPercentage
			}
			sum += *in.Percentage
		}
		if math.Abs(sum-100) > percentageSumTolerance {
			return ErrPercentagesSum
		}
	case split.TypeCustom:
		var sum money.Cents
		for _, in := range inputs {
			if in.Amount == nil {
				return split.ErrMissingAmount
			}
			sum += money.FromFloat(*in.Amount)
		}
		if (sum - total).Abs() > money.SettlementTolerance {
			return ErrAmountsSum
		}
	}
	return nil
}

func (s *Service) getSplitWithExpense(ctx context.Context, splitID int64) (*Split, *Expense, error) {
	sp, err := s.repo.GetSplitByID(ctx, splitID)
	if err != nil {
		return nil, nil, err
	}
	if sp == nil {
		return nil, nil, ErrSplitNotFound
	}

	expense, err := s.repo.GetByID(ctx, sp.ExpenseID)
	if err != nil {
		return nil, nil, err
	}
	if expense == nil {
		return nil, nil, ErrExpenseNotFound
	}

	return sp, expense, nil
}

// notifyParticipants informs everyone but the payer about a new expense.
// Notification failures never fail the expense.
func (s *Service) notifyParticipants(ctx context.Context, expense *Expense, splits []*Split) {
	if s.notifier == nil {
		return
	}
	for _, sp := range splits {
		if sp.UserID == expense.PayerID {
			continue
		}
		message := fmt.Sprintf("New expense %q: your share is %s", expense.Description, sp.Amount.String())
		_ = s.notifier.Notify(ctx, sp.UserID, notification.TypeExpenseAdded, message)
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
