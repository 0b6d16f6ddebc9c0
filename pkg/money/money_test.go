package money

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Cents
		wantErr bool
	}{
		{name: "two decimals", input: "12.34", want: 1234},
		{name: "one decimal", input: "12.3", want: 1230},
		{name: "no decimals", input: "12", want: 1200},
		{name: "zero", input: "0.00", want: 0},
		{name: "negative", input: "-50.25", want: -5025},
		{name: "explicit plus", input: "+3.10", want: 310},
		{name: "bare fraction", input: ".05", want: 5},
		{name: "empty treated as zero", input: "", want: 0},
		{name: "whitespace treated as zero", input: "  ", want: 0},
		{name: "three decimals rejected", input: "1.005", wantErr: true},
		{name: "garbage rejected", input: "abc", wantErr: true},
		{name: "lone dot rejected", input: ".", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Parse(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		cents Cents
		want  string
	}{
		{1234, "12.34"},
		{0, "0.00"},
		{5, "0.05"},
		{-5025, "-50.25"},
		{100, "1.00"},
		{-1, "-0.01"},
	}

	for _, tt := range tests {
		if got := tt.cents.String(); got != tt.want {
			t.Errorf("Cents(%d).String() = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestFromFloat(t *testing.T) {
	tests := []struct {
		amount float64
		want   Cents
	}{
		{12.34, 1234},
		{0.1 + 0.2, 30}, // classic float drift must land on 30 cents
		{2.675, 268},    // half away from zero
		{-2.675, -268},
		{0, 0},
	}

	for _, tt := range tests {
		if got := FromFloat(tt.amount); got != tt.want {
			t.Errorf("FromFloat(%v) = %d, want %d", tt.amount, got, tt.want)
		}
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		cents Cents
		pct   float64
		want  Cents
	}{
		{10000, 10, 1000},
		{10000, 33.33, 3333},
		{1000, 33.33, 333}, // 333.3 rounds down
		{100, 50, 50},
		{1, 50, 1}, // 0.5 rounds away from zero
	}

	for _, tt := range tests {
		if got := tt.cents.Percent(tt.pct); got != tt.want {
			t.Errorf("Cents(%d).Percent(%v) = %d, want %d", tt.cents, tt.pct, got, tt.want)
		}
	}
}
