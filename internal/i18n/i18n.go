// Package i18n resolves dotted translation keys against embedded locale
// tables with English fallback.
package i18n

import (
	"embed"
	"fmt"
	"path"
	"strings"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// DefaultLocale is the fallback locale and the one every table is
// completed against.
const DefaultLocale = "en"

//go:embed locales/*.yaml
var localeFS embed.FS

// Language is a selectable interface language.
type Language struct {
	Code  string
	Label string
}

var languages = []Language{
	{Code: "en", Label: "English"},
	{Code: "hi", Label: "हिन्दी"},
	{Code: "bn", Label: "বাংলা"},
	{Code: "ta", Label: "தமிழ்"},
	{Code: "te", Label: "తెలుగు"},
	{Code: "mr", Label: "मराठी"},
}

// Languages returns the supported languages in display order.
func Languages() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	return out
}

// IsSupported reports whether code names a supported language.
func IsSupported(code string) bool {
	for _, l := range languages {
		if l.Code == code {
			return true
		}
	}
	return false
}

// LanguageLabel returns the native label for code, or code itself.
func LanguageLabel(code string) string {
	for _, l := range languages {
		if l.Code == code {
			return l.Label
		}
	}
	return code
}

// Catalog holds the parsed locale tables.
type Catalog struct {
	tables map[string]map[string]any
	logger *zap.Logger
}

// Load parses the embedded locale tables.
func Load(logger *zap.Logger) (*Catalog, error) {
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("read locales: %w", err)
	}

	tables := make(map[string]map[string]any, len(entries))
	for _, e := range entries {
		name := e.Name()
		if path.Ext(name) != ".yaml" {
			continue
		}
		raw, err := localeFS.ReadFile(path.Join("locales", name))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		var table map[string]any
		if err := yaml.Unmarshal(raw, &table); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		tables[strings.TrimSuffix(name, ".yaml")] = table
	}

	if _, ok := tables[DefaultLocale]; !ok {
		return nil, fmt.Errorf("missing %s locale table", DefaultLocale)
	}
	return NewCatalog(tables, logger), nil
}

// NewCatalog builds a Catalog from already-parsed tables.
func NewCatalog(tables map[string]map[string]any, logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{tables: tables, logger: logger}
}

// Resolve returns the string at the dotted key for locale. A key missing
// from locale is looked up in English; a key missing there too is returned
// unchanged. args are placeholder name/value pairs applied in order; each
// replaces only the first literal "{name}" in the resolved string.
func (c *Catalog) Resolve(locale, key string, args ...string) string {
	s, ok := c.lookup(locale, strings.Split(key, "."))
	if !ok {
		c.logger.Warn("translation key not found",
			zap.String("locale", locale),
			zap.String("key", key),
		)
		return key
	}
	return substitute(s, args)
}

// ResolveOption returns the localized label of a constant option. Option
// texts are keys in their own right and may contain dots, so they are
// matched literally under constants.<group>. Unknown options resolve to
// their own text.
func (c *Catalog) ResolveOption(locale, group, option string) string {
	if s, ok := c.lookup(locale, []string{"constants", group, option}); ok {
		return s
	}
	return option
}

func (c *Catalog) lookup(locale string, parts []string) (string, bool) {
	if table, ok := c.tables[locale]; ok {
		if s, ok := walk(table, parts); ok {
			return s, true
		}
	}
	if locale == DefaultLocale {
		return "", false
	}
	return walk(c.tables[DefaultLocale], parts)
}

func walk(node map[string]any, parts []string) (string, bool) {
	if node == nil {
		return "", false
	}
	var cur any = node
	for _, p := range parts {
		m, ok := cur.(map[string]any)
		if !ok {
			return "", false
		}
		if cur, ok = m[p]; !ok {
			return "", false
		}
	}
	s, ok := cur.(string)
	return s, ok
}

func substitute(s string, args []string) string {
	for i := 0; i+1 < len(args); i += 2 {
		s = strings.Replace(s, "{"+args[i]+"}", args[i+1], 1)
	}
	return s
}

// Locale is the current interface language. Safe for concurrent use.
type Locale struct {
	mu   sync.RWMutex
	code string
}

// NewLocale returns a Locale set to code, or to English when code is not
// supported.
func NewLocale(code string) *Locale {
	l := &Locale{code: DefaultLocale}
	l.Set(code)
	return l
}

// Code returns the current language code.
func (l *Locale) Code() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.code
}

// Set changes the current language. Unsupported codes are ignored.
func (l *Locale) Set(code string) bool {
	if !IsSupported(code) {
		return false
	}
	l.mu.Lock()
	l.code = code
	l.mu.Unlock()
	return true
}

// Reset returns to English.
func (l *Locale) Reset() {
	l.mu.Lock()
	l.code = DefaultLocale
	l.mu.Unlock()
}

// Translator binds a Catalog to a Locale so lookups always see the
// current language.
type Translator struct {
	catalog *Catalog
	locale  *Locale
}

// NewTranslator creates a Translator.
func NewTranslator(c *Catalog, l *Locale) *Translator {
	return &Translator{catalog: c, locale: l}
}

// T resolves key in the current language.
func (t *Translator) T(key string, args ...string) string {
	return t.catalog.Resolve(t.locale.Code(), key, args...)
}

// Option resolves a constant option label in the current language.
func (t *Translator) Option(group, option string) string {
	return t.catalog.ResolveOption(t.locale.Code(), group, option)
}

// Locale returns the bound locale.
func (t *Translator) Locale() *Locale {
	return t.locale
}
