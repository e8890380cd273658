package application

import (
	"strings"
)

// Polish diacritics to their Latin equivalents, applied after lower-casing.
var slugReplacer = strings.NewReplacer(
	"ą", "a",
	"ć", "c",
	"ę", "e",
	"ł", "l",
	"ń", "n",
	"ó", "o",
	"ś", "s",
	"ź", "z",
	"ż", "z",
)

// Slugify maps a display name to a URL-safe identifier: lower-case,
// transliterate diacritics, drop everything but letters/digits/spaces/hyphens,
// then collapse whitespace and hyphen runs into single hyphens.
//
// The result may be empty when the input contains no usable characters;
// callers decide how to handle that.
func Slugify(name string) string {
	s := slugReplacer.Replace(strings.ToLower(name))

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ' ', r == '-':
			b.WriteRune(r)
		}
	}

	// Whitespace runs become single hyphens, then hyphen runs collapse.
	fields := strings.Fields(b.String())
	s = strings.Join(fields, "-")
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return strings.Trim(s, "-")
}
