package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "simple name", input: "Spice Bazaar", want: "spice-bazaar"},
		{name: "punctuation collapses", input: "Joe's Café & Grill", want: "joe-s-caf-grill"},
		{name: "leading and trailing junk trimmed", input: "  --Fresh Mart--  ", want: "fresh-mart"},
		{name: "digits kept", input: "24x7 Kirana", want: "24x7-kirana"},
		{name: "already clean", input: "greenleaf", want: "greenleaf"},
		{name: "empty", input: "", want: ""},
		{name: "only punctuation", input: "!!!", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.input))
		})
	}
}

func TestSlugifyDeterministic(t *testing.T) {
	first := Slugify("Mumbai Fresh Produce Co.")
	second := Slugify("Mumbai Fresh Produce Co.")

	assert.Equal(t, first, second)
	assert.Equal(t, "mumbai-fresh-produce-co", first)
}
