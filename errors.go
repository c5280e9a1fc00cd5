package cardbrand

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	// CodeInvalidFormat is reported by Luhn and CheckDigit for empty or
	// non-digit input.
	CodeInvalidFormat = "invalid_format"
	// Classification outcomes that collapse to Unknown.
	CodeNonNumeric     = "non_numeric"
	CodeChecksumFailed = "checksum_failed"
	CodeNoRuleMatch    = "no_rule_match"
	// CodeInvalidRule is used by rule table loaders.
	CodeInvalidRule = "invalid_rule"
)

// ErrInvalidFormat is matched by errors.Is for every Issues value carrying
// CodeInvalidFormat.
var ErrInvalidFormat = errors.New("cardbrand: invalid format")

// Issue represents a single reason why a number was rejected.
type Issue struct {
	Code    string // One of the codes listed above.
	Message string
	// Offset is the byte offset in the normalized input (-1 when unknown).
	Offset int
	// Rule optionally records the issuer of the rule involved.
	Rule string
	// Params carries structured parameters for i18n, e.g. {"char": "x"}.
	Params map[string]any
}

// Issues is a collection of rejection reasons that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := min(len(iss), maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		b.WriteString(it.Code)
		if it.Offset >= 0 {
			fmt.Fprintf(b, " at offset %d", it.Offset)
		}
		if it.Message != "" {
			fmt.Fprintf(b, ": %s", it.Message)
		}
	}
	if n := len(iss); n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Is lets errors.Is(err, ErrInvalidFormat) see through Issues.
func (iss Issues) Is(target error) bool {
	if target != ErrInvalidFormat {
		return false
	}
	for _, it := range iss {
		if it.Code == CodeInvalidFormat {
			return true
		}
	}
	return false
}

// Codes lists the issue codes in order.
func (iss Issues) Codes() []string {
	out := make([]string, 0, len(iss))
	for _, it := range iss {
		out = append(out, it.Code)
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// HasCode reports whether err carries an Issue with the given code.
func HasCode(err error, code string) bool {
	iss, ok := AsIssues(err)
	if !ok {
		return false
	}
	for _, it := range iss {
		if it.Code == code {
			return true
		}
	}
	return false
}
