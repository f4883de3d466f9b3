package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "Belgium (French)", want: "Belgium (French)"},
		{name: "specials", in: "a_b*c`d[e]", want: `a\_b\*c` + "\\`" + `d\[e]`},
		{name: "snake case", in: "snake_case", want: `snake\_case`},
		{name: "v2 only characters untouched", in: "Côte d'Ivoire. #1!", want: "Côte d'Ivoire. #1!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Escape(tt.in))
		})
	}
}

func TestCode(t *testing.T) {
	assert.Equal(t, "`Jean Dupont`", Code("Jean Dupont"))
	assert.Equal(t, "`aˋb`", Code("a`b"))
}
