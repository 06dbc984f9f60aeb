package numerals

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"ascii passthrough", "120 mg/dL", "120 mg/dL"},
		{"persian digits", "۱۴۰۳/۰۵/۰۱", "1403/05/01"},
		{"arabic digits", "٢٨", "28"},
		{"mixed glyphs", "۱2٣", "123"},
		{"non-digit text untouched", "قند خون ۱۸۰", "قند خون 180"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"", "120", "۱۲۰", "٢٨", "abc۵def", "12.5"}
	for _, s := range inputs {
		once := Normalize(s)
		assert.Equal(t, once, Normalize(once), "Normalize must be idempotent for %q", s)
	}
}

func TestLocalize(t *testing.T) {
	assert.Equal(t, "۱۲۰", Localize("120", "fa"))
	assert.Equal(t, "120", Localize("120", "en"))
	assert.Equal(t, "", Localize("", "fa"))

	// Localize then Normalize restores the ASCII form.
	assert.Equal(t, "1403/05/01", Normalize(Localize("1403/05/01", "fa")))
}
