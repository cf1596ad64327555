package termcap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasSixelAttribute(t *testing.T) {
	tests := []struct {
		resp string
		want bool
	}{
		{"\x1b[?62;4;22c", true},
		{"\x1b[?4c", true},
		{"\x1b[?1;2c", false},
		{"\x1b[?62;14c", false},
		{"\x1b[?62;22;4c", true},
		{"\x1b[62;4c", false},
		{"nonsense", false},
		{"", false},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, hasSixelAttribute([]byte(test.resp)),
			"response %q", test.resp)
	}
}
