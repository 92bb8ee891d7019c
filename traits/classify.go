package traits

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NoTranslation is the override that classifies traits as written.
const NoTranslation = "en"

// LocaleSource supplies the ambient locale. It is read once per
// recompute.
type LocaleSource interface {
	Locale() string
}

// StaticLocale is a LocaleSource with a fixed value.
type StaticLocale string

func (s StaticLocale) Locale() string { return string(s) }

// Classifier maps trait text to a Category. It holds only read-only
// tables and is safe to share.
type Classifier struct {
	tables Tables
}

var defaultClassifier = &Classifier{tables: mustLoadEmbedded()}

// Default returns the classifier built from the embedded locale tables.
func Default() *Classifier {
	return defaultClassifier
}

// NewClassifier returns a classifier over tables.
func NewClassifier(tables Tables) *Classifier {
	return &Classifier{tables: tables}
}

// Classify returns the category of text. override is the region's
// language override ("" when the region has none) and ambient is the
// process-wide locale. Classify never fails: anything it cannot place is
// Normal.
func (c *Classifier) Classify(text string, _ Variant, override, ambient string) Category {
	key := c.Translate(normalize(text), override, ambient)
	if cat, ok := canonical[key]; ok {
		return cat
	}
	return Normal
}

// Class is Classify followed by Category.Class.
func (c *Classifier) Class(text string, v Variant, override, ambient string) string {
	return c.Classify(text, v, override, ambient).Class(v)
}

// Translate returns the English key for the normalized trait. A locale
// with a table that lacks the trait yields "", so a foreign word never
// matches the canonical table by accident.
func (c *Classifier) Translate(trait, override, ambient string) string {
	locale := ambient
	if o := strings.ToLower(strings.TrimSpace(override)); o != "" {
		if o == NoTranslation {
			return trait
		}
		locale = o
	}
	table, ok := c.table(locale)
	if !ok {
		return trait
	}
	return table[trait]
}

// table finds the table for locale: the exact lowercase key first, then
// the canonical BCP 47 form, then the base language.
func (c *Classifier) table(locale string) (map[string]string, bool) {
	key := strings.ToLower(strings.TrimSpace(locale))
	if key == "" {
		return nil, false
	}
	if t, ok := c.tables[key]; ok {
		return t, true
	}
	tag, err := language.Parse(key)
	if err != nil {
		return nil, false
	}
	if t, ok := c.tables[strings.ToLower(tag.String())]; ok {
		return t, true
	}
	base, conf := tag.Base()
	if conf == language.No {
		return nil, false
	}
	t, ok := c.tables[base.String()]
	return t, ok
}

// normalize trims and lowercases a trait. A Caser carries state, so one
// is made per call.
func normalize(s string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(s))
}
