// Package numerals converts between ASCII and Persian/Arabic-Indic digit
// glyphs. Every numeric field in the log history is stored as entered by the
// user, so all arithmetic must go through Normalize before parsing.
package numerals

import "strings"

const (
	persianZero = '۰'
	arabicZero  = '٠'
)

var persianDigits = [10]rune{'۰', '۱', '۲', '۳', '۴', '۵', '۶', '۷', '۸', '۹'}

// Normalize maps Persian and Arabic-Indic digit glyphs in s to ASCII digits.
// All other characters pass through unchanged. Normalize is idempotent and a
// no-op on already-ASCII input.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= persianZero && r <= persianZero+9:
			b.WriteRune('0' + (r - persianZero))
		case r >= arabicZero && r <= arabicZero+9:
			b.WriteRune('0' + (r - arabicZero))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Localize renders ASCII digits in s as Persian glyphs for display when lang
// is "fa". It has no effect on computation and is the identity for "en".
func Localize(s, lang string) string {
	if lang == "en" || s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) * 2)
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(persianDigits[r-'0'])
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
