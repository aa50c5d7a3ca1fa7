// Package locale holds the language-dependent parts of rendering: Yes/No labels,
// date layouts, string collation and header casing.
package locale

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

var supported = []language.Tag{
	language.AmericanEnglish,
	language.BritishEnglish,
	language.Dutch,
	language.German,
	language.French,
}

var matcher = language.NewMatcher(supported)

var dateLayouts = map[language.Tag]string{
	language.AmericanEnglish: "1/2/2006",
	language.BritishEnglish:  "02/01/2006",
	language.Dutch:           "2-1-2006",
	language.German:          "2.1.2006",
	language.French:          "02/01/2006",
}

func newCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.AmericanEnglish))
	for _, tag := range []language.Tag{language.AmericanEnglish, language.BritishEnglish} {
		_ = b.SetString(tag, "Yes", "Yes")
		_ = b.SetString(tag, "No", "No")
		_ = b.SetString(tag, "Object", "Object")
	}
	_ = b.SetString(language.Dutch, "Yes", "Ja")
	_ = b.SetString(language.Dutch, "No", "Nee")
	_ = b.SetString(language.Dutch, "Object", "Object")
	_ = b.SetString(language.German, "Yes", "Ja")
	_ = b.SetString(language.German, "No", "Nein")
	_ = b.SetString(language.German, "Object", "Objekt")
	_ = b.SetString(language.French, "Yes", "Oui")
	_ = b.SetString(language.French, "No", "Non")
	_ = b.SetString(language.French, "Object", "Objet")
	return b
}

var messages = newCatalog()

// Locale renders language-dependent values. It is safe for concurrent use.
type Locale struct {
	tag    language.Tag
	layout string
}

// New resolves a BCP 47 tag (or Accept-Language value) to the closest supported locale.
func New(preferred string) *Locale {
	tags, _, err := language.ParseAcceptLanguage(preferred)
	if err != nil || len(tags) == 0 {
		tags = []language.Tag{language.AmericanEnglish}
	}
	_, idx, _ := matcher.Match(tags...)
	tag := supported[idx]
	return &Locale{tag: tag, layout: dateLayouts[tag]}
}

func (l *Locale) sprint(key string) string {
	return message.NewPrinter(l.tag, message.Catalog(messages)).Sprintf(key)
}

// Default is American English.
func Default() *Locale {
	return New("en-US")
}

// Tag returns the resolved language tag.
func (l *Locale) Tag() language.Tag { return l.tag }

// Yes returns the localized affirmative label.
func (l *Locale) Yes() string { return l.sprint("Yes") }

// No returns the localized negative label.
func (l *Locale) No() string { return l.sprint("No") }

// Object is the opaque label for values that cannot be summarized.
func (l *Locale) Object() string { return "[" + l.sprint("Object") + "]" }

// FormatDate formats t as a short local date.
func (l *Locale) FormatDate(t time.Time) string {
	return t.Format(l.layout)
}

// Collator returns a new collator for the locale. Collators are not safe for
// concurrent use, so each sort takes its own.
func (l *Locale) Collator() *collate.Collator {
	return collate.New(l.tag)
}

// Header derives column header text from a field key: the key is split before
// every upper-case letter and at underscores, and each fragment is title-cased.
// streetNumber becomes "Street Number", wg_region_id becomes "Wg Region Id".
func Header(key string) string {
	caser := cases.Title(language.Und)
	fragments := splitKey(key)
	for i, f := range fragments {
		fragments[i] = caser.String(f)
	}
	return strings.Join(fragments, " ")
}

func splitKey(key string) []string {
	var (
		out     []string
		current []rune
	)
	flush := func() {
		if len(current) > 0 {
			out = append(out, string(current))
			current = current[:0]
		}
	}
	for _, r := range key {
		switch {
		case r == '_':
			flush()
		case unicode.IsUpper(r):
			flush()
			current = append(current, r)
		default:
			current = append(current, r)
		}
	}
	flush()
	return out
}
