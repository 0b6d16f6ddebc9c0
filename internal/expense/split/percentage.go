package split

import "github.com/wayfarer-app/tripmate/pkg/money"

// PercentageStrategy divides the total according to per-participant
// percentages (expressed 0-100).
//
// Each share is rounded to the cent individually, so the rounded shares can
// drift from the total by a cent or two in either direction. The entire
// drift is applied to the participant with the largest percentage (first
// occurrence on ties), keeping the exact-sum guarantee.
//
// Whether the percentages sum to 100 is validated upstream; the strategy
// only rejects negative or missing percentages.
type PercentageStrategy struct{}

// Type returns the split type identifier
func (s *PercentageStrategy) Type() Type {
	return TypePercentage
}

// Validate checks if the inputs are valid for a percentage split
func (s *PercentageStrategy) Validate(total money.Cents, participants []Input) error {
	if total < 0 {
		return ErrNegativeTotal
	}
	for _, p := range participants {
		if p.Percentage == nil {
			return ErrMissingPercentage
		}
		if *p.Percentage < 0 {
			return ErrNegativePercentage
		}
	}
	return nil
}

// Calculate computes each participant's share from their percentage.
// An empty participant list yields an empty result, not an error.
func (s *PercentageStrategy) Calculate(total money.Cents, participants []Input) ([]Result, error) {
	if err := s.Validate(total, participants); err != nil {
		return nil, err
	}

	if len(participants) == 0 {
		return []Result{}, nil
	}

	results := make([]Result, len(participants))
	var sum money.Cents
	largest := 0

	for i, p := range participants {
		share := total.Percent(*p.Percentage)
		results[i] = Result{UserID: p.UserID, Amount: share}
		sum += share

		if *p.Percentage > *participants[largest].Percentage {
			largest = i
		}
	}

	// Drift can be positive or negative; the largest percentage absorbs it
	if drift := total - sum; drift != 0 {
		results[largest].Amount += drift
	}

	return results, nil
}
