package cardbrand

// Classifier checks and classifies numbers against a fixed rule table. It is
// immutable after construction and safe for concurrent use.
type Classifier struct {
	rules Rules
}

// NewClassifier builds a Classifier over a private copy of rules. A nil or
// empty table yields a classifier that never matches.
func NewClassifier(rules Rules) *Classifier {
	return &Classifier{rules: rules.Clone()}
}

// Rules returns a copy of the classifier's table.
func (c *Classifier) Rules() Rules { return c.rules.Clone() }

// Classify returns the issuer of raw, or Unknown.
func (c *Classifier) Classify(raw string) Issuer {
	res, _ := c.Check(raw)
	return res.Issuer
}

// Check runs normalize, digit check, Luhn and rule matching. The Result is
// always populated; when its Issuer is Unknown the returned error is Issues
// carrying exactly one of CodeNonNumeric, CodeChecksumFailed or
// CodeNoRuleMatch.
func (c *Classifier) Check(raw string) (Result, error) {
	digits := Normalize(raw)
	res := Result{Issuer: Unknown}

	if digits == "" {
		return res, Issues{issueAt(-1, CodeNonNumeric, "no digits after removing separators")}
	}
	if off := firstNonDigit(digits); off >= 0 {
		return res, Issues{issueAt(off, CodeNonNumeric, "non-digit character after removing separators")}
	}

	res.Length = len(digits)
	res.Masked = mask(digits)
	res.Valid = luhnSum(digits, false)%10 == 0
	if !res.Valid {
		return res, Issues{issueAt(-1, CodeChecksumFailed, "checksum does not match")}
	}

	rule, ok := c.rules.Match(digits)
	if !ok {
		return res, Issues{issueAt(-1, CodeNoRuleMatch, "no issuer prefix matches")}
	}
	res.Issuer = rule.Issuer
	return res, nil
}

var defaultClassifier = NewClassifier(defaultRules)

// Classify returns the issuer of raw using the built-in rule table, or
// Unknown when raw is not numeric, fails Luhn, or matches no rule.
func Classify(raw string) Issuer { return defaultClassifier.Classify(raw) }

// Check is Classifier.Check over the built-in rule table.
func Check(raw string) (Result, error) { return defaultClassifier.Check(raw) }
