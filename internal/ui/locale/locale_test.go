package locale

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestHeader(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"streetNumber", "Street Number"},
		{"name", "Name"},
		{"wg_region_id", "Wg Region Id"},
		{"wgRegionId", "Wg Region Id"},
		{"ID", "I D"},
		{"_leading", "Leading"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, Header(tt.key))
		})
	}
}

func TestNewMatchesSupportedLanguage(t *testing.T) {
	assert.Equal(t, language.Dutch, New("nl-BE").Tag())
	assert.Equal(t, language.German, New("de-DE,de;q=0.9").Tag())
	assert.Equal(t, language.AmericanEnglish, New("ja").Tag())
	assert.Equal(t, language.AmericanEnglish, New("%%%").Tag())
}

func TestLabels(t *testing.T) {
	tests := []struct {
		locale  string
		yes, no string
	}{
		{"en-US", "Yes", "No"},
		{"nl", "Ja", "Nee"},
		{"de", "Ja", "Nein"},
		{"fr", "Oui", "Non"},
	}
	for _, tt := range tests {
		l := New(tt.locale)
		assert.Equal(t, tt.yes, l.Yes(), tt.locale)
		assert.Equal(t, tt.no, l.No(), tt.locale)
	}
	assert.Equal(t, "[Object]", Default().Object())
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "3/5/2024", Default().FormatDate(d))
	assert.Equal(t, "5.3.2024", New("de").FormatDate(d))
	assert.Equal(t, "05/03/2024", New("en-GB").FormatDate(d))
}

func TestCollator(t *testing.T) {
	c := Default().Collator()
	assert.Negative(t, c.CompareString("alpha", "beta"))
	assert.Negative(t, c.CompareString("école", "zoo"))
}
