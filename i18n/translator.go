// Package i18n localizes issue codes and command-line text. Issuer names are
// never translated.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"sync"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Translator retrieves localized messages for message ids (issue codes and
// CLI text). data fills template fields such as {{.Issuer}}.
type Translator interface {
	Message(id string, data map[string]any) string
}

//go:embed locales/*.yaml
var localeFS embed.FS

// Supported lists the built-in languages.
var Supported = []language.Tag{language.English, language.Portuguese}

var (
	bundleOnce sync.Once
	bundle     *goi18n.Bundle
)

// loadBundle parses every embedded locale once. The files ship with the
// binary, so a read or parse failure panics.
func loadBundle() *goi18n.Bundle {
	bundleOnce.Do(func() {
		b := goi18n.NewBundle(language.English)
		b.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)
		files, err := fs.ReadDir(localeFS, "locales")
		if err != nil {
			panic(fmt.Sprintf("i18n: read embedded locales: %v", err))
		}
		for _, f := range files {
			if f.IsDir() {
				continue
			}
			data, err := localeFS.ReadFile("locales/" + f.Name())
			if err != nil {
				panic(fmt.Sprintf("i18n: read %s: %v", f.Name(), err))
			}
			b.MustParseMessageFileBytes(data, f.Name())
		}
		bundle = b
	})
	return bundle
}

// bundleTranslator is the built-in go-i18n backed Translator.
type bundleTranslator struct {
	loc *goi18n.Localizer
}

// New returns the built-in Translator for lang (a BCP 47 tag such as "pt" or
// "pt-BR"). Unsupported languages fall back to English.
func New(lang string) Translator {
	return bundleTranslator{loc: goi18n.NewLocalizer(loadBundle(), Match(lang).String())}
}

func (t bundleTranslator) Message(id string, data map[string]any) string {
	msg, err := t.loc.Localize(&goi18n.LocalizeConfig{MessageID: id, TemplateData: data})
	if err != nil || msg == "" {
		return id
	}
	return msg
}

var matcher = language.NewMatcher(Supported)

// Match picks the closest supported language for lang.
func Match(lang string) language.Tag {
	tag, err := language.Parse(lang)
	if err != nil {
		return language.English
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return language.English
	}
	return Supported[idx]
}

var (
	mu                           = sync.RWMutex{}
	currentTranslator Translator = New("en")
)

// SetLanguage switches the built-in Translator language ("en"/"pt").
func SetLanguage(lang string) {
	tr := New(lang)
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// SetTranslator replaces the Translator implementation (not limited to the
// built-in one). nil restores English.
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = New("en")
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given id using the current Translator.
func T(id string, data map[string]any) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(id, data)
}
