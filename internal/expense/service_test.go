package expense

import (
	"errors"
	"testing"

	"github.com/wayfarer-app/tripmate/internal/expense/split"
	"github.com/wayfarer-app/tripmate/pkg/money"
)

func TestValidateSums(t *testing.T) {
	svc := &Service{}

	tests := []struct {
		name      string
		splitType split.Type
		total     money.Cents
		inputs    []split.Input
		wantErr   error
	}{
		{
			name:      "equal split skips sum checks",
			splitType: split.TypeEqual,
			total:     10000,
			inputs:    []split.Input{{UserID: 1}, {UserID: 2}},
		},
		{
			name:      "percentages summing to 100",
			splitType: split.TypePercentage,
			total:     10000,
			inputs: []split.Input{
				{UserID: 1, Percentage: ptr(60)},
				{UserID: 2, Percentage: ptr(40)},
			},
		},
		{
			name:      "percentages within float tolerance",
			splitType: split.TypePercentage,
			total:     10000,
			inputs: []split.Input{
				{UserID: 1, Percentage: ptr(33.33)},
				{UserID: 2, Percentage: ptr(33.33)},
				{UserID: 3, Percentage: ptr(33.335)},
			},
		},
		{
			name:      "percentages summing short",
			splitType: split.TypePercentage,
			total:     10000,
			inputs: []split.Input{
				{UserID: 1, Percentage: ptr(50)},
				{UserID: 2, Percentage: ptr(40)},
			},
			wantErr: ErrPercentagesSum,
		},
		{
			name:      "percentage missing",
			splitType: split.TypePercentage,
			total:     10000,
			inputs: []split.Input{
				{UserID: 1, Percentage: ptr(50)},
				{UserID: 2},
			},
			wantErr: split.ErrMissingPercentage,
		},
		{
			name:      "custom amounts matching total",
			splitType: split.TypeCustom,
			total:     10000,
			inputs: []split.Input{
				{UserID: 1, Amount: ptr(75.50)},
				{UserID: 2, Amount: ptr(24.50)},
			},
		},
		{
			name:      "custom amounts off by one cent pass",
			splitType: split.TypeCustom,
			total:     10000,
			inputs: []split.Input{
				{UserID: 1, Amount: ptr(75.50)},
				{UserID: 2, Amount: ptr(24.49)},
			},
		},
		{
			name:      "custom amounts off by two cents fail",
			splitType: split.TypeCustom,
			total:     10000,
			inputs: []split.Input{
				{UserID: 1, Amount: ptr(75.50)},
				{UserID: 2, Amount: ptr(24.48)},
			},
			wantErr: ErrAmountsSum,
		},
		{
			name:      "custom amount missing",
			splitType: split.TypeCustom,
			total:     10000,
			inputs: []split.Input{
				{UserID: 1, Amount: ptr(100)},
				{UserID: 2},
			},
			wantErr: split.ErrMissingAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.validateSums(tt.splitType, tt.total, tt.inputs)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("validateSums() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func ptr(f float64) *float64 {
	return &f
}
