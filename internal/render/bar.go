package render

import (
	"math"
	"strings"
)

// Ramp is the 4-symbol intensity ramp used by logarithmic bars, in
// increasing order of magnitude.
const Ramp = "-~=#"

// Bar returns a bar of '=' characters with length floor(value/scale),
// uncapped. The empty string is returned when value/scale < 1. scale must
// be positive; validating it is the caller's contract.
func Bar(value, scale float64) string {
	n := int(value / scale)
	if n < 1 {
		return ""
	}

	return strings.Repeat("=", n)
}

// LogBar returns a bar of length floor(value/scale) whose symbols climb the
// ramp with position: character k (0-indexed) is selected by the fraction
// k/maxWidth. Callers pass a log-transformed value and scale so that bar
// length stays proportional on a logarithmic axis. maxWidth must be
// positive.
func LogBar(value, scale float64, maxWidth int) string {
	n := int(value / scale)
	if n < 1 {
		return ""
	}

	bar := make([]byte, n)
	bar[0] = Ramp[0]

	for k := 1; k < n; k++ {
		bar[k] = Ramp[rampIndex(float64(k), float64(maxWidth))]
	}

	return string(bar)
}

// RampBar is the alternate symbol-selection strategy: bar length is
// floor(value/scale) as in Bar, but every character after the first is the
// ramp symbol for value relative to overallMax. overallMax must be positive.
func RampBar(value, scale, overallMax float64) string {
	n := int(value / scale)
	if n < 1 {
		return ""
	}

	bar := make([]byte, n)
	bar[0] = '='

	for k := 1; k < n; k++ {
		bar[k] = Ramp[rampIndex(value, overallMax)]
	}

	return string(bar)
}

// rampIndex maps the fraction part/whole onto a valid ramp index.
func rampIndex(part, whole float64) int {
	i := int(math.Ceil(float64(len(Ramp))*part/whole)) - 1

	if i < 0 {
		i = 0
	}

	if i >= len(Ramp) {
		i = len(Ramp) - 1
	}

	return i
}
