package split

import "github.com/wayfarer-app/tripmate/pkg/money"

// CustomStrategy passes through caller-supplied absolute amounts.
//
// The strategy performs no computation beyond converting to cents; checking
// that the amounts sum to the expense total is the expense service's job.
type CustomStrategy struct{}

// Type returns the split type identifier
func (s *CustomStrategy) Type() Type {
	return TypeCustom
}

// Validate checks if the inputs are valid for a custom split
func (s *CustomStrategy) Validate(total money.Cents, participants []Input) error {
	if total < 0 {
		return ErrNegativeTotal
	}
	for _, p := range participants {
		if p.Amount == nil {
			return ErrMissingAmount
		}
		if *p.Amount < 0 {
			return ErrNegativeAmount
		}
	}
	return nil
}

// Calculate returns the caller-specified amounts unchanged
func (s *CustomStrategy) Calculate(total money.Cents, participants []Input) ([]Result, error) {
	if err := s.Validate(total, participants); err != nil {
		return nil, err
	}

	results := make([]Result, len(participants))
	for i, p := range participants {
		results[i] = Result{UserID: p.UserID, Amount: money.FromFloat(*p.Amount)}
	}

	return results, nil
}
