package cardbrand_test

import (
	"errors"
	"strings"
	"sync"
	"testing"

	cardbrand "github.com/reoring/cardbrand"
)

func TestNormalize_StripsOnlySpacesAndHyphens(t *testing.T) {
	cases := map[string]string{
		"4539 1488 0343 6467": "4539148803436467",
		"4539-1488-0343-6467": "4539148803436467",
		"4539148803436467":    "4539148803436467",
		" - ":                 "",
		"4abc":                "4abc",
		"45_39.14":            "45_39.14",
		"":                    "",
	}
	for in, want := range cases {
		if got := cardbrand.Normalize(in); got != want {
			t.Fatalf("Normalize(%q)=%q want %q", in, got, want)
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	for _, in := range []string{"4539 1488-0343 6467", "abc def", "--", "12 34"} {
		once := cardbrand.Normalize(in)
		if twice := cardbrand.Normalize(once); twice != once {
			t.Fatalf("Normalize not idempotent for %q: %q vs %q", in, once, twice)
		}
	}
}

func TestLuhn_KnownVectors(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"0", true},
		{"00000", true},
		{"4539148803436467", true},
		{"4539148803436468", false},
		{"6011111111111117", true},
		{"1234567812345670", true},
		{"1234567812345678", false},
		{"79927398713", true},
		{"79927398710", false},
		{"18", true},
	}
	for _, tc := range cases {
		got, err := cardbrand.Luhn(tc.in)
		if err != nil {
			t.Fatalf("Luhn(%q) unexpected error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("Luhn(%q)=%v want %v", tc.in, got, tc.want)
		}
	}
}

func TestLuhn_LeadingZerosDoNotChangeResult(t *testing.T) {
	for _, in := range []string{"79927398713", "4539148803436468", "18"} {
		a, _ := cardbrand.Luhn(in)
		b, _ := cardbrand.Luhn("000" + in)
		if a != b {
			t.Fatalf("leading zeros changed result for %q", in)
		}
	}
}

func TestLuhn_RejectsNonDigits(t *testing.T) {
	for _, in := range []string{"", "4abc", "4539 1488", "١٢٣"} {
		ok, err := cardbrand.Luhn(in)
		if ok {
			t.Fatalf("Luhn(%q) must not report valid", in)
		}
		if !errors.Is(err, cardbrand.ErrInvalidFormat) {
			t.Fatalf("Luhn(%q) expected ErrInvalidFormat, got %v", in, err)
		}
	}
	_, err := cardbrand.Luhn("45x9")
	iss, ok := cardbrand.AsIssues(err)
	if !ok || len(iss) != 1 || iss[0].Offset != 2 {
		t.Fatalf("expected one issue at offset 2, got %v", err)
	}
}

func TestCheckDigit_ProducesValidNumbers(t *testing.T) {
	for _, payload := range []string{"0", "7992739871", "453914880343646", "123456781234567", "601111111111111"} {
		d, err := cardbrand.CheckDigit(payload)
		if err != nil {
			t.Fatalf("CheckDigit(%q): %v", payload, err)
		}
		ok, _ := cardbrand.Luhn(payload + string(d))
		if !ok {
			t.Fatalf("CheckDigit(%q)=%c does not yield a valid number", payload, d)
		}
	}
	if d, _ := cardbrand.CheckDigit("7992739871"); d != '3' {
		t.Fatalf("expected check digit 3, got %c", d)
	}
	if _, err := cardbrand.CheckDigit("12a"); !errors.Is(err, cardbrand.ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat, got %v", err)
	}
}

func TestClassify_Vectors(t *testing.T) {
	cases := []struct {
		in   string
		want cardbrand.Issuer
	}{
		{"4539 1488 0343 6467", cardbrand.Visa},
		{"4539-1488-0343-6467", cardbrand.Visa},
		{"4539148803436467", cardbrand.Visa},
		{"6011111111111117", cardbrand.Discover},
		{"1234567812345670", cardbrand.Unknown},
		{"4539148803436468", cardbrand.Unknown},
		{"4abc", cardbrand.Unknown},
		{"", cardbrand.Unknown},
		{"   ", cardbrand.Unknown},
		{"5555555555554444", cardbrand.Mastercard},
		{"378282246310005", cardbrand.AmericanExpress},
		{"3530111333300000", cardbrand.JCB},
		{"38520000023237", cardbrand.DinersClub},
	}
	for _, tc := range cases {
		if got := cardbrand.Classify(tc.in); got != tc.want {
			t.Fatalf("Classify(%q)=%q want %q", tc.in, got, tc.want)
		}
	}
}

// completeNumber appends the Luhn check digit to payload.
func completeNumber(t *testing.T, payload string) string {
	t.Helper()
	d, err := cardbrand.CheckDigit(payload)
	if err != nil {
		t.Fatalf("CheckDigit(%q): %v", payload, err)
	}
	return payload + string(d)
}

func TestClassify_EveryDefaultPrefix(t *testing.T) {
	cases := map[string]cardbrand.Issuer{
		"4":    cardbrand.Visa,
		"51":   cardbrand.Mastercard,
		"53":   cardbrand.Mastercard,
		"55":   cardbrand.Mastercard,
		"36":   cardbrand.DinersClub,
		"38":   cardbrand.DinersClub,
		"6011": cardbrand.Discover,
		"35":   cardbrand.JCB,
		"34":   cardbrand.AmericanExpress,
		"37":   cardbrand.AmericanExpress,
		"20":   cardbrand.EnRoute,
		"21":   cardbrand.EnRoute,
		"60":   cardbrand.Hipercard,
		"62":   cardbrand.Hipercard,
		"50":   cardbrand.Aura,
		"56":   cardbrand.Unknown,
		"61":   cardbrand.Unknown,
		"39":   cardbrand.Unknown,
	}
	for prefix, want := range cases {
		payload := prefix + strings.Repeat("0", 15-len(prefix))
		num := completeNumber(t, payload)
		if got := cardbrand.Classify(num); got != want {
			t.Fatalf("Classify(%q)=%q want %q", num, got, want)
		}
	}
}

func TestClassify_RuleOrderDiscoverBeforeHipercard(t *testing.T) {
	num := completeNumber(t, "601100000000000")
	if got := cardbrand.Classify(num); got != cardbrand.Discover {
		t.Fatalf("6011 prefix must classify as DISCOVER, got %q", got)
	}
	num = completeNumber(t, "601000000000000")
	if got := cardbrand.Classify(num); got != cardbrand.Hipercard {
		t.Fatalf("6010 prefix must classify as HIPERCARD, got %q", got)
	}
}

func TestCheck_ReportsReason(t *testing.T) {
	cases := []struct {
		in   string
		code string
	}{
		{"4abc", cardbrand.CodeNonNumeric},
		{"", cardbrand.CodeNonNumeric},
		{"4539148803436468", cardbrand.CodeChecksumFailed},
		{"1234567812345670", cardbrand.CodeNoRuleMatch},
	}
	for _, tc := range cases {
		res, err := cardbrand.Check(tc.in)
		if res.Issuer != cardbrand.Unknown {
			t.Fatalf("Check(%q) issuer=%q want unknown", tc.in, res.Issuer)
		}
		iss, ok := cardbrand.AsIssues(err)
		if !ok || len(iss) != 1 || iss[0].Code != tc.code {
			t.Fatalf("Check(%q) expected single %s issue, got %v", tc.in, tc.code, err)
		}
	}

	res, err := cardbrand.Check("4539 1488 0343 6467")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Issuer != cardbrand.Visa || !res.Valid || res.Length != 16 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Masked != "453914******6467" {
		t.Fatalf("unexpected mask %q", res.Masked)
	}
}

func TestCheck_ValidFlagTracksChecksum(t *testing.T) {
	res, _ := cardbrand.Check("1234567812345670")
	if !res.Valid {
		t.Fatalf("expected Valid for a checksum-correct number without issuer")
	}
	res, _ = cardbrand.Check("4539148803436468")
	if res.Valid {
		t.Fatalf("expected !Valid for a checksum failure")
	}
	res, _ = cardbrand.Check("4abc")
	if res.Valid || res.Length != 0 || res.Masked != "" {
		t.Fatalf("non-numeric input must not populate digits fields: %+v", res)
	}
}

func TestUnknownIsDistinctFromIssuers(t *testing.T) {
	for _, is := range cardbrand.Issuers() {
		if is == cardbrand.Unknown || !is.Known() {
			t.Fatalf("issuer %q collides with the fallback", is)
		}
	}
	if cardbrand.Unknown.Known() {
		t.Fatalf("Unknown must not be Known")
	}
}

func TestDefaultRules_OrderAndImmutability(t *testing.T) {
	rs := cardbrand.DefaultRules()
	want := cardbrand.Issuers()
	if len(rs) != len(want) {
		t.Fatalf("expected %d rules, got %d", len(want), len(rs))
	}
	for i, r := range rs {
		if r.Issuer != want[i] {
			t.Fatalf("rule %d: got %q want %q", i, r.Issuer, want[i])
		}
	}

	rs[0].Issuer = "TAMPERED"
	rs[3].Prefixes[0] = "9"
	again := cardbrand.DefaultRules()
	if again[0].Issuer != cardbrand.Visa || again[3].Prefixes[0] != "6011" {
		t.Fatalf("DefaultRules must return independent copies")
	}
	if got := cardbrand.Classify("6011111111111117"); got != cardbrand.Discover {
		t.Fatalf("mutating a copy leaked into the default classifier: %q", got)
	}
}

func TestClassifier_CustomRules(t *testing.T) {
	rules := cardbrand.Rules{
		{Prefixes: []string{"12"}, Issuer: "TEST"},
	}
	c := cardbrand.NewClassifier(rules)
	rules[0].Issuer = "CHANGED"
	if got := c.Classify("1234567812345670"); got != "TEST" {
		t.Fatalf("custom classifier got %q", got)
	}
	if got := c.Classify("4539148803436467"); got != cardbrand.Unknown {
		t.Fatalf("custom classifier must not fall back to default rules, got %q", got)
	}
	if got := cardbrand.NewClassifier(nil).Classify("4539148803436467"); got != cardbrand.Unknown {
		t.Fatalf("empty table must never match, got %q", got)
	}
}

func TestClassifier_ReservedIssuerNamesNeverMatch(t *testing.T) {
	rules := cardbrand.Rules{
		{Prefixes: []string{"4"}, Issuer: cardbrand.Unknown},
		{Prefixes: []string{"45"}, Issuer: ""},
		{Prefixes: []string{"453"}, Issuer: "TEST"},
	}
	res, err := cardbrand.NewClassifier(rules).Check("4539148803436467")
	if err != nil || res.Issuer != "TEST" {
		t.Fatalf("expected TEST past reserved rules, got %+v err=%v", res, err)
	}

	res, err = cardbrand.NewClassifier(rules[:2]).Check("4539148803436467")
	if res.Issuer != cardbrand.Unknown || !cardbrand.HasCode(err, cardbrand.CodeNoRuleMatch) {
		t.Fatalf("reserved rules must report no_rule_match, got %+v err=%v", res, err)
	}
}

func TestCheck_MaskShortNumbers(t *testing.T) {
	cases := map[string]string{
		"79927398713":      "*******8713",
		"0000":             "****",
		"18":               "**",
		"1234567812345670": "123456******5670",
	}
	for in, want := range cases {
		res, _ := cardbrand.Check(in)
		if res.Masked != want {
			t.Fatalf("Check(%q).Masked=%q want %q", in, res.Masked, want)
		}
	}
}

func TestClassify_ConcurrentCallers(t *testing.T) {
	var wg sync.WaitGroup
	errs := make(chan string, 64)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if got := cardbrand.Classify("6011-1111-1111-1117"); got != cardbrand.Discover {
					errs <- string(got)
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for got := range errs {
		t.Fatalf("concurrent Classify returned %q", got)
	}
}
