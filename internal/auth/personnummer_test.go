package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePersonnummer(t *testing.T) {
	assert.Equal(t, "8112189876", NormalizePersonnummer("811218-9876"))
	assert.Equal(t, "8112189876", NormalizePersonnummer("8112189876"))
	assert.Equal(t, "8112189876", NormalizePersonnummer("19811218-9876"))
	assert.Equal(t, "8112189876", NormalizePersonnummer("198112189876"))
	assert.Equal(t, "", NormalizePersonnummer("81121-9876"))
	assert.Equal(t, "", NormalizePersonnummer("not a number"))
}

func TestValidPersonnummer(t *testing.T) {
	cases := []struct {
		name  string
		value string
		want  bool
	}{
		{"ten digit with dash", "811218-9876", true},
		{"ten digit without dash", "8112189876", true},
		{"twelve digit with dash", "19811218-9876", true},
		{"twelve digit without dash", "198112189876", true},
		{"wrong check digit", "811218-9875", false},
		{"too short", "81121-9876", false},
		{"too long", "1981121898761", false},
		{"letters", "811218-987a", false},
		{"empty", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ValidPersonnummer(tc.value))
		})
	}
}
