package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"accents stripped", "Alhué", "alhue"},
		{"punctuation removed", "Sta. Añita", "sta anita"},
		{"whitespace collapsed", "  Los   Tilos ", "los tilos"},
		{"already canonical", "don wilson", "don wilson"},
		{"mixed case and enye", "PEÑAFLOR Norte", "penaflor norte"},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.in))
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	in := "El Carmén  2"
	once := Normalize(in)
	assert.Equal(t, once, Normalize(once))
}
