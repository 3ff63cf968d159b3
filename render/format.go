package render

import (
	"math"

	"github.com/dustin/go-humanize"
)

const fractionDigits = 3

// FormatValue groups thousands in numeric cells (2847 -> "2,847") and rounds them to at
// most three fraction digits. Every other value keeps its literal string form.
func FormatValue(v interface{}) string {
	n, ok := Number(v)
	if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
		return Stringify(v)
	}
	return humanize.Commaf(roundFraction(n))
}

// roundFraction rounds half away from zero. humanize.CommafWithDigits truncates and
// keeps trailing zeros, so the rounding happens here.
func roundFraction(n float64) float64 {
	scale := math.Pow10(fractionDigits)
	if math.Abs(n) >= math.MaxFloat64/scale {
		return n
	}
	r := math.Round(n*scale) / scale
	if r == 0 {
		return 0
	}
	return r
}
