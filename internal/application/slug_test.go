package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Sklep", "sklep"},
		{"already slug", "sklep", "sklep"},
		{"polish diacritics", "Sklep Łódź", "sklep-lodz"},
		{"special characters", "Sklep & Test!!!  123", "sklep-test-123"},
		{"multiple spaces", "a   b    c", "a-b-c"},
		{"existing hyphens", "hand-made goods", "hand-made-goods"},
		{"hyphen runs", "a -- b", "a-b"},
		{"leading and trailing junk", "  --Sklep--  ", "sklep"},
		{"digits kept", "Atelier 24", "atelier-24"},
		{"all special characters", "!!!&&&", ""},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Slugify(tc.in))
		})
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	for _, in := range []string{"Sklep Testowy", "Sklep Łódź", "Sklep & Test!!!  123", "abc-def"} {
		once := Slugify(in)
		assert.Equal(t, once, Slugify(once), "slug of %q should be stable", in)
	}
}

func TestSlugifyWellFormed(t *testing.T) {
	for _, in := range []string{"Sklep Testowy", "Żółć i Świt", "  A&B  Shop  ", "-x-"} {
		got := Slugify(in)
		for _, r := range got {
			ok := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
			assert.True(t, ok, "unexpected rune %q in slug %q", r, got)
		}
		assert.NotContains(t, got, "--")
		if got != "" {
			assert.NotEqual(t, byte('-'), got[0])
			assert.NotEqual(t, byte('-'), got[len(got)-1])
		}
	}
}
