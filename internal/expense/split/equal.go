package split

import "github.com/wayfarer-app/tripmate/pkg/money"

// EqualStrategy divides the total evenly among all participants.
//
// The base share is the total divided by the participant count, truncated
// at the cent. Everyone but the last participant gets the base share; the
// last participant gets whatever remains, so the shares always sum back to
// the total ($100 over 3 people comes out 33.33, 33.33, 33.34).
type EqualStrategy struct{}

// Type returns the split type identifier
func (s *EqualStrategy) Type() Type {
	return TypeEqual
}

// Validate checks if the inputs are valid for an equal split
func (s *EqualStrategy) Validate(total money.Cents, participants []Input) error {
	if total < 0 {
		return ErrNegativeTotal
	}
	return nil
}

// Calculate assigns each participant an equal share of the total.
// An empty participant list yields an empty result, not an error.
func (s *EqualStrategy) Calculate(total money.Cents, participants []Input) ([]Result, error) {
	if err := s.Validate(total, participants); err != nil {
		return nil, err
	}

	count := len(participants)
	if count == 0 {
		return []Result{}, nil
	}

	// Integer division truncates toward zero at the cent
	base := total / money.Cents(count)

	results := make([]Result, count)
	for i, p := range participants {
		results[i] = Result{UserID: p.UserID, Amount: base}
	}

	// The last participant absorbs the truncation remainder
	results[count-1].Amount = total - base*money.Cents(count-1)

	return results, nil
}
