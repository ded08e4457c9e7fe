package formatting

import "math"

// Quality values are carried internally as fractions in [0,1]. Conversion to
// the percentage representation happens only at the presentation boundary;
// the two representations are never mixed within one field.

// Percent converts a fraction in [0,1] to a percentage in [0,100],
// rounded to two decimal places. Inputs outside [0,1] are clamped first.
func Percent(fraction float64) float64 {
	return math.Round(ClampFraction(fraction)*10000) / 100
}

// Fraction converts a percentage in [0,100] to a fraction in [0,1].
// Inputs outside the range are clamped.
func Fraction(percent float64) float64 {
	return ClampFraction(percent / 100)
}

// ClampFraction restricts a value to [0,1]. NaN clamps to 0.
func ClampFraction(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Ratio divides numerator by denominator as a fraction in [0,1].
// A zero denominator yields 0 rather than NaN.
func Ratio(numerator, denominator int) float64 {
	if denominator == 0 {
		return 0
	}
	return ClampFraction(float64(numerator) / float64(denominator))
}
