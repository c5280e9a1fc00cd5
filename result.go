package cardbrand

import "strings"

// Result is the outcome of a single Check. It never holds the full number.
type Result struct {
	Issuer Issuer `json:"issuer" yaml:"issuer"`
	// Valid is the Luhn outcome; false when the input was not numeric.
	Valid  bool   `json:"valid" yaml:"valid"`
	Length int    `json:"length" yaml:"length"`
	Masked string `json:"masked,omitempty" yaml:"masked,omitempty"`
}

// mask keeps the first six and last four digits of numbers long enough to
// hide something in between, otherwise only the last four.
func mask(digits string) string {
	n := len(digits)
	switch {
	case n >= 13:
		return digits[:6] + strings.Repeat("*", n-10) + digits[n-4:]
	case n > 4:
		return strings.Repeat("*", n-4) + digits[n-4:]
	default:
		return strings.Repeat("*", n)
	}
}
