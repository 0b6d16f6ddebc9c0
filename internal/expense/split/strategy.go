package split

import (
	"errors"
	"fmt"

	"github.com/wayfarer-app/tripmate/pkg/money"
)

// Type identifies a splitting policy
type Type string

const (
	TypeEqual      Type = "EQUAL"
	TypePercentage Type = "PERCENTAGE"
	TypeCustom     Type = "CUSTOM"
)

// Input is one participant's entry in a split request. The optional fields
// are only read by the strategy that needs them.
type Input struct {
	UserID     int64    `json:"user_id"`
	Percentage *float64 `json:"percentage,omitempty"` // For PERCENTAGE split
	Amount     *float64 `json:"amount,omitempty"`     // For CUSTOM split
}

// Result is the calculated share for a single participant
type Result struct {
	UserID int64       `json:"user_id"`
	Amount money.Cents `json:"amount"`
}

// Strategy is the interface all splitting policies implement.
//
// Every strategy guarantees that the returned shares sum exactly to the
// input total, and that the order of results matches the order of the
// supplied participants. Callers must provide a stable participant order:
// it decides who absorbs rounding remainders.
type Strategy interface {
	// Calculate computes each participant's share of the total
	Calculate(total money.Cents, participants []Input) ([]Result, error)

	// Type returns the policy identifier
	Type() Type

	// Validate checks whether the inputs are in-domain for this policy
	Validate(total money.Cents, participants []Input) error
}

// Factory creates split strategies by policy type
type Factory struct{}

// NewFactory creates a new strategy factory
func NewFactory() *Factory {
	return &Factory{}
}

// Create returns the strategy implementation for the given type
func (f *Factory) Create(t Type) (Strategy, error) {
	switch t {
	case TypeEqual:
		return &EqualStrategy{}, nil
	case TypePercentage:
		return &PercentageStrategy{}, nil
	case TypeCustom:
		return &CustomStrategy{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, t)
	}
}

// CreateFromString creates a strategy from a raw string type (useful for API requests)
func (f *Factory) CreateFromString(t string) (Strategy, error) {
	return f.Create(Type(t))
}

var (
	ErrUnknownType        = errors.New("unknown split type")
	ErrNegativeTotal      = errors.New("total amount cannot be negative")
	ErrNegativePercentage = errors.New("percentage cannot be negative")
	ErrMissingPercentage  = errors.New("percentage value required for all participants")
	ErrNegativeAmount     = errors.New("custom amounts cannot be negative")
	ErrMissingAmount      = errors.New("custom amount required for all participants")
)
