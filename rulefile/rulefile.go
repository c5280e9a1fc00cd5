// Package rulefile reads and writes ordered issuer rule tables as YAML or
// JSON documents. Document order is evaluation order.
package rulefile

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	j "github.com/goccy/go-json"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	cardbrand "github.com/reoring/cardbrand"
)

// Format selects the document encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ErrUnknownFormat is returned when a format cannot be determined.
var ErrUnknownFormat = errors.New("rulefile: unknown format")

// Document is the on-disk shape of a rule table.
type Document struct {
	Rules []Entry `json:"rules" yaml:"rules" validate:"required,min=1,dive"`
}

// Entry is a single rule as written in a file.
type Entry struct {
	Issuer   string   `json:"issuer" yaml:"issuer" validate:"required,issuer"`
	Prefixes []string `json:"prefixes" yaml:"prefixes" validate:"required,min=1,dive,required,digits"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// "numeric" would accept signs and decimals; prefixes are plain digits.
	_ = v.RegisterValidation("digits", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return false
		}
		for i := 0; i < len(s); i++ {
			if s[i] < '0' || s[i] > '9' {
				return false
			}
		}
		return true
	})
	// Blank names and the Unknown fallback are reserved.
	_ = v.RegisterValidation("issuer", func(fl validator.FieldLevel) bool {
		return cardbrand.Issuer(fl.Field().String()).Known()
	})
	return v
}

// FormatFromPath guesses the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, path)
}

// ParseFormat accepts "yaml", "yml" or "json".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// LoadFile reads and decodes the rule table at path.
func LoadFile(path string) (cardbrand.Rules, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rulefile: read %s: %w", path, err)
	}
	return Decode(data, format)
}

// Decode parses data and validates every entry. Validation failures are
// returned as cardbrand.Issues with code invalid_rule.
func Decode(data []byte, format Format) (cardbrand.Rules, error) {
	var doc Document
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("rulefile: decode yaml: %w", err)
		}
	case FormatJSON:
		dec := j.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("rulefile: decode json: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	for i := range doc.Rules {
		doc.Rules[i].Issuer = strings.TrimSpace(doc.Rules[i].Issuer)
	}
	if err := validateDocument(doc); err != nil {
		return nil, err
	}
	return doc.toRules(), nil
}

// Encode writes rules in the given format.
func Encode(rules cardbrand.Rules, format Format) ([]byte, error) {
	doc := fromRules(rules)
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("rulefile: encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("rulefile: encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	case FormatJSON:
		b, err := j.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("rulefile: encode json: %w", err)
		}
		return append(b, '\n'), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

func validateDocument(doc Document) error {
	err := validate.Struct(doc)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	var out cardbrand.Issues
	for _, fe := range verrs {
		it := cardbrand.Issue{
			Code:    cardbrand.CodeInvalidRule,
			Message: fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()),
			Offset:  -1,
			Params:  map[string]any{"field": fe.Namespace(), "tag": fe.Tag()},
		}
		if i := entryIndex(fe.Namespace()); i >= 0 && i < len(doc.Rules) {
			it.Rule = doc.Rules[i].Issuer
			it.Params["index"] = i
		}
		out = cardbrand.AppendIssues(out, it)
	}
	return out
}

// entryIndex extracts i from a namespace such as "Document.Rules[i].Prefixes[0]",
// or returns -1.
func entryIndex(ns string) int {
	const marker = ".Rules["
	start := strings.Index(ns, marker)
	if start < 0 {
		return -1
	}
	rest := ns[start+len(marker):]
	end := strings.IndexByte(rest, ']')
	if end < 0 {
		return -1
	}
	i, err := strconv.Atoi(rest[:end])
	if err != nil {
		return -1
	}
	return i
}

func (d Document) toRules() cardbrand.Rules {
	out := make(cardbrand.Rules, 0, len(d.Rules))
	for _, e := range d.Rules {
		out = append(out, cardbrand.Rule{
			Prefixes: append([]string(nil), e.Prefixes...),
			Issuer:   cardbrand.Issuer(e.Issuer),
		})
	}
	return out
}

func fromRules(rules cardbrand.Rules) Document {
	doc := Document{Rules: make([]Entry, 0, len(rules))}
	for _, r := range rules {
		doc.Rules = append(doc.Rules, Entry{Issuer: string(r.Issuer), Prefixes: append([]string(nil), r.Prefixes...)})
	}
	return doc
}
