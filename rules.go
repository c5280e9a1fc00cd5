package cardbrand

import (
	"slices"
	"strings"
)

// Rule maps one or more leading-digit prefixes to an issuer. A rule matches
// when the digit string starts with any of its prefixes.
type Rule struct {
	Prefixes []string
	Issuer   Issuer
}

// Matches reports whether digits starts with one of the rule prefixes. A rule
// whose Issuer is empty or Unknown never matches.
func (r Rule) Matches(digits string) bool {
	if !r.Issuer.Known() {
		return false
	}
	for _, p := range r.Prefixes {
		if p != "" && strings.HasPrefix(digits, p) {
			return true
		}
	}
	return false
}

// Rules is an ordered rule table. The first matching rule wins, so a longer
// prefix that overlaps a shorter one must be listed first.
type Rules []Rule

// Match returns the first rule matching digits.
func (rs Rules) Match(digits string) (Rule, bool) {
	for _, r := range rs {
		if r.Matches(digits) {
			return r, true
		}
	}
	return Rule{}, false
}

// Clone returns a deep copy of the table.
func (rs Rules) Clone() Rules {
	if rs == nil {
		return nil
	}
	out := make(Rules, len(rs))
	for i, r := range rs {
		out[i] = Rule{Prefixes: slices.Clone(r.Prefixes), Issuer: r.Issuer}
	}
	return out
}

// defaultRules is built once and never mutated; DefaultRules hands out copies.
// 6011 (DISCOVER) must stay ahead of 60|62 (HIPERCARD).
var defaultRules = Rules{
	{Prefixes: []string{"4"}, Issuer: Visa},
	{Prefixes: []string{"51", "52", "53", "54", "55"}, Issuer: Mastercard},
	{Prefixes: []string{"36", "38"}, Issuer: DinersClub},
	{Prefixes: []string{"6011"}, Issuer: Discover},
	{Prefixes: []string{"35"}, Issuer: JCB},
	{Prefixes: []string{"34", "37"}, Issuer: AmericanExpress},
	{Prefixes: []string{"20", "21"}, Issuer: EnRoute},
	{Prefixes: []string{"60", "62"}, Issuer: Hipercard},
	{Prefixes: []string{"50"}, Issuer: Aura},
}

// DefaultRules returns a copy of the built-in rule table in evaluation order.
func DefaultRules() Rules { return defaultRules.Clone() }
