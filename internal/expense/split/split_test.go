package split

import (
	"errors"
	"testing"

	"github.com/wayfarer-app/tripmate/pkg/money"
)

func ptr(f float64) *float64 { return &f }

func sumResults(results []Result) money.Cents {
	var sum money.Cents
	for _, r := range results {
		sum += r.Amount
	}
	return sum
}

func TestEqualStrategy(t *testing.T) {
	tests := []struct {
		name         string
		total        money.Cents
		participants []Input
		wantErr      error
		wantAmounts  []money.Cents
	}{
		{
			name:         "uneven division gives remainder to last",
			total:        10000,
			participants: []Input{{UserID: 1}, {UserID: 2}, {UserID: 3}},
			wantAmounts:  []money.Cents{3333, 3333, 3334},
		},
		{
			name:         "single cent over two people",
			total:        1,
			participants: []Input{{UserID: 1}, {UserID: 2}},
			wantAmounts:  []money.Cents{0, 1},
		},
		{
			name:         "single participant gets everything",
			total:        4250,
			participants: []Input{{UserID: 7}},
			wantAmounts:  []money.Cents{4250},
		},
		{
			name:         "even division has no remainder",
			total:        9000,
			participants: []Input{{UserID: 1}, {UserID: 2}, {UserID: 3}},
			wantAmounts:  []money.Cents{3000, 3000, 3000},
		},
		{
			name:         "zero total",
			total:        0,
			participants: []Input{{UserID: 1}, {UserID: 2}},
			wantAmounts:  []money.Cents{0, 0},
		},
		{
			name:         "empty participants yields empty result",
			total:        5000,
			participants: []Input{},
			wantAmounts:  []money.Cents{},
		},
		{
			name:         "negative total rejected",
			total:        -100,
			participants: []Input{{UserID: 1}},
			wantErr:      ErrNegativeTotal,
		},
	}

	s := &EqualStrategy{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := s.Calculate(tt.total, tt.participants)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Calculate() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Calculate() unexpected error: %v", err)
			}
			if len(results) != len(tt.wantAmounts) {
				t.Fatalf("got %d results, want %d", len(results), len(tt.wantAmounts))
			}
			for i, want := range tt.wantAmounts {
				if results[i].Amount != want {
					t.Errorf("share[%d] = %v, want %v", i, results[i].Amount, want)
				}
				if results[i].UserID != tt.participants[i].UserID {
					t.Errorf("share[%d] user = %d, want input order preserved (%d)",
						i, results[i].UserID, tt.participants[i].UserID)
				}
			}
			if got := sumResults(results); got != tt.total {
				t.Errorf("shares sum to %v, want %v", got, tt.total)
			}
		})
	}
}

func TestPercentageStrategy(t *testing.T) {
	tests := []struct {
		name         string
		total        money.Cents
		participants []Input
		wantErr      error
		validate     func(t *testing.T, results []Result)
	}{
		{
			name:  "shares sum exactly with drift on largest",
			total: 10000,
			participants: []Input{
				{UserID: 1, Percentage: ptr(10)},
				{UserID: 2, Percentage: ptr(40)},
				{UserID: 3, Percentage: ptr(50)},
			},
			validate: func(t *testing.T, results []Result) {
				want := []money.Cents{1000, 4000, 5000}
				for i, w := range want {
					if results[i].Amount != w {
						t.Errorf("share[%d] = %v, want %v", i, results[i].Amount, w)
					}
				}
			},
		},
		{
			name:  "rounding drift absorbed by largest percentage",
			total: 1000, // 3 x 33.33% rounds to 333 each, one cent short
			participants: []Input{
				{UserID: 1, Percentage: ptr(33.33)},
				{UserID: 2, Percentage: ptr(33.33)},
				{UserID: 3, Percentage: ptr(33.34)},
			},
			validate: func(t *testing.T, results []Result) {
				if results[2].Amount != 334 {
					t.Errorf("largest percentage share = %v, want 3.34", results[2].Amount)
				}
			},
		},
		{
			name:  "tie on largest goes to first occurrence",
			total: 1001,
			participants: []Input{
				{UserID: 1, Percentage: ptr(50)},
				{UserID: 2, Percentage: ptr(50)},
			},
			validate: func(t *testing.T, results []Result) {
				// 10.01 splits as 5.01 and 5.01 after rounding; the -0.01
				// drift lands on the first 50% holder
				if results[0].Amount != 500 {
					t.Errorf("first share = %v, want 5.00", results[0].Amount)
				}
				if results[1].Amount != 501 {
					t.Errorf("second share = %v, want 5.01", results[1].Amount)
				}
			},
		},
		{
			name:         "empty participants yields empty result",
			total:        5000,
			participants: []Input{},
			validate: func(t *testing.T, results []Result) {
				if len(results) != 0 {
					t.Errorf("got %d results, want 0", len(results))
				}
			},
		},
		{
			name:  "negative percentage rejected",
			total: 5000,
			participants: []Input{
				{UserID: 1, Percentage: ptr(-10)},
				{UserID: 2, Percentage: ptr(110)},
			},
			wantErr: ErrNegativePercentage,
		},
		{
			name:  "missing percentage rejected",
			total: 5000,
			participants: []Input{
				{UserID: 1, Percentage: ptr(50)},
				{UserID: 2},
			},
			wantErr: ErrMissingPercentage,
		},
		{
			name:         "negative total rejected",
			total:        -1,
			participants: []Input{{UserID: 1, Percentage: ptr(100)}},
			wantErr:      ErrNegativeTotal,
		},
	}

	s := &PercentageStrategy{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := s.Calculate(tt.total, tt.participants)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Calculate() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Calculate() unexpected error: %v", err)
			}
			if len(results) > 0 {
				if got := sumResults(results); got != tt.total {
					t.Errorf("shares sum to %v, want %v", got, tt.total)
				}
			}
			if tt.validate != nil {
				tt.validate(t, results)
			}
		})
	}
}

func TestCustomStrategy(t *testing.T) {
	s := &CustomStrategy{}

	t.Run("passes amounts through", func(t *testing.T) {
		results, err := s.Calculate(5000, []Input{
			{UserID: 1, Amount: ptr(30)},
			{UserID: 2, Amount: ptr(20)},
		})
		if err != nil {
			t.Fatalf("Calculate() unexpected error: %v", err)
		}
		if results[0].Amount != 3000 || results[1].Amount != 2000 {
			t.Errorf("got %v and %v, want 30.00 and 20.00", results[0].Amount, results[1].Amount)
		}
	})

	t.Run("negative amount rejected", func(t *testing.T) {
		_, err := s.Calculate(5000, []Input{{UserID: 1, Amount: ptr(-1)}})
		if !errors.Is(err, ErrNegativeAmount) {
			t.Fatalf("Calculate() error = %v, want %v", err, ErrNegativeAmount)
		}
	})

	t.Run("missing amount rejected", func(t *testing.T) {
		_, err := s.Calculate(5000, []Input{{UserID: 1}})
		if !errors.Is(err, ErrMissingAmount) {
			t.Fatalf("Calculate() error = %v, want %v", err, ErrMissingAmount)
		}
	})
}

func TestFactory(t *testing.T) {
	f := NewFactory()

	for _, typ := range []Type{TypeEqual, TypePercentage, TypeCustom} {
		s, err := f.Create(typ)
		if err != nil {
			t.Fatalf("Create(%s) unexpected error: %v", typ, err)
		}
		if s.Type() != typ {
			t.Errorf("Create(%s).Type() = %s", typ, s.Type())
		}
	}

	if _, err := f.CreateFromString("UNKNOWN"); err == nil {
		t.Error("CreateFromString(UNKNOWN) expected error")
	}
}

// Calling a strategy twice with identical input must yield identical output.
func TestCalculateIsDeterministic(t *testing.T) {
	participants := []Input{
		{UserID: 1, Percentage: ptr(33.33)},
		{UserID: 2, Percentage: ptr(33.33)},
		{UserID: 3, Percentage: ptr(33.34)},
	}

	s := &PercentageStrategy{}
	first, err := s.Calculate(9999, participants)
	if err != nil {
		t.Fatalf("Calculate() unexpected error: %v", err)
	}
	second, err := s.Calculate(9999, participants)
	if err != nil {
		t.Fatalf("Calculate() unexpected error: %v", err)
	}

	for i := range first {
		if first[i] != second[i] {
			t.Errorf("result[%d] differs between calls: %+v vs %+v", i, first[i], second[i])
		}
	}
}
