package formatting_test

import (
	"math"
	"testing"

	"github.com/rasidhq/rasid/pkg/formatting"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestPercent(t *testing.T) {
	tests := []struct {
		name     string
		fraction float64
		want     float64
	}{
		{"zero", 0, 0},
		{"half", 0.5, 50},
		{"full", 1, 100},
		{"third rounds to two decimals", 1.0 / 3.0, 33.33},
		{"rounding is half up", 0.123456, 12.35},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatting.Percent(tt.fraction); !almostEqual(got, tt.want) {
				t.Errorf("Percent(%v) = %v, want %v", tt.fraction, got, tt.want)
			}
		})
	}
}

func TestFraction(t *testing.T) {
	if got := formatting.Fraction(85); !almostEqual(got, 0.85) {
		t.Errorf("Fraction(85) = %v, want 0.85", got)
	}
}

func TestClampFraction(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		want float64
	}{
		{"below range", -0.5, 0},
		{"lower bound", 0, 0},
		{"inside", 0.42, 0.42},
		{"upper bound", 1, 1},
		{"above range", 1.7, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatting.ClampFraction(tt.v); !almostEqual(got, tt.want) {
				t.Errorf("ClampFraction(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestRatio(t *testing.T) {
	tests := []struct {
		name     string
		num, den int
		want     float64
	}{
		{"zero denominator", 5, 0, 0},
		{"zero numerator", 0, 5, 0},
		{"half", 1, 2, 0.5},
		{"whole", 7, 7, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatting.Ratio(tt.num, tt.den); !almostEqual(got, tt.want) {
				t.Errorf("Ratio(%d, %d) = %v, want %v", tt.num, tt.den, got, tt.want)
			}
		})
	}
}
