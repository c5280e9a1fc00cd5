package cardbrand

import "strings"

// separators lists the only characters Normalize removes.
var separators = strings.NewReplacer(" ", "", "-", "")

// Normalize strips space and hyphen separators from raw. Every other
// character, letters included, is kept so that later digit checks can
// reject it.
func Normalize(raw string) string {
	return separators.Replace(raw)
}

// firstNonDigit returns the offset of the first byte outside '0'..'9', or -1.
func firstNonDigit(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return i
		}
	}
	return -1
}
