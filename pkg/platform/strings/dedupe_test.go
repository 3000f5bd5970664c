package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrimLower(t *testing.T) {
	cases := map[string]struct {
		in   []string
		want []string
	}{
		"nil stays nil":              {in: nil, want: nil},
		"empty stays empty":          {in: []string{}, want: []string{}},
		"lowercased":                 {in: []string{"FAV_PLACE", "Gender"}, want: []string{"fav_place", "gender"}},
		"first occurrence wins":      {in: []string{" gender", "fav_place", "GENDER "}, want: []string{"gender", "fav_place"}},
		"blank entries are dropped":  {in: []string{"", "   ", "age"}, want: []string{"age"}},
		"only blanks yields nothing": {in: []string{" ", ""}, want: []string{}},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, DedupeAndTrimLower(tc.in))
		})
	}
}

func TestDedupeAndTrimLowerLeavesInputAlone(t *testing.T) {
	in := []string{"Age", "age"}
	_ = DedupeAndTrimLower(in)
	assert.Equal(t, []string{"Age", "age"}, in)
}
