package cardbrand

// Luhn reports whether digits passes the Luhn checksum. Positions are counted
// from the rightmost digit starting at zero; digits at odd positions are
// doubled and reduced by 9 when the result exceeds 9.
//
// digits must be non-empty and contain only '0'..'9'. Anything else returns
// an Issues error with CodeInvalidFormat, which matches ErrInvalidFormat.
func Luhn(digits string) (bool, error) {
	if err := requireDigits(digits); err != nil {
		return false, err
	}
	return luhnSum(digits, false)%10 == 0, nil
}

// CheckDigit returns the digit that makes payload followed by that digit pass
// Luhn. It follows the same input contract as Luhn.
func CheckDigit(payload string) (byte, error) {
	if err := requireDigits(payload); err != nil {
		return 0, err
	}
	// payload shifts one position left once the check digit is appended.
	s := luhnSum(payload, true)
	return byte('0' + (10-s%10)%10), nil
}

// luhnSum assumes digits was already checked. With shifted set, the rightmost
// digit is treated as position 1.
func luhnSum(digits string, shifted bool) int {
	sum := 0
	double := shifted
	for i := len(digits) - 1; i >= 0; i-- {
		n := int(digits[i] - '0')
		if double {
			n *= 2
			if n > 9 {
				n -= 9
			}
		}
		sum += n
		double = !double
	}
	return sum
}

func requireDigits(s string) error {
	if s == "" {
		return Issues{issueAt(-1, CodeInvalidFormat, "empty input")}
	}
	if off := firstNonDigit(s); off >= 0 {
		return Issues{issueAt(off, CodeInvalidFormat, "non-digit character", "char", string(s[off]))}
	}
	return nil
}
