package sixel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPutDecimal(t *testing.T) {
	tests := []struct {
		value int
		want  string
	}{
		{0, "0"},
		{7, "7"},
		{10, "10"},
		{42, "42"},
		{100, "100"},
		{255, "255"},
		{999, "999"},
	}
	for _, test := range tests {
		buf := make([]byte, 8)
		pos := putDecimal(test.value, buf, 2)
		assert.Equal(t, test.want, string(buf[2:pos]), "value %d", test.value)
	}
}

func TestPutRunShort(t *testing.T) {
	// Short runs advance by exactly count but may store up to three
	// bytes; the overflow is reclaimed by the next token.
	for count := 1; count <= 3; count++ {
		buf := make([]byte, 8)
		pos := putRun(1, count, buf, 0)
		assert.Equal(t, count, pos)
		for i := 0; i < count; i++ {
			assert.EqualValues(t, '@', buf[i])
		}
	}
}

func TestPutRunRepeat(t *testing.T) {
	buf := make([]byte, 8)
	pos := putRun(63, 200, buf, 0)
	assert.Equal(t, "!200~", string(buf[:pos]))

	buf = make([]byte, 8)
	pos = putRun(0, 4, buf, 0)
	assert.Equal(t, "!4?", string(buf[:pos]))
}

func TestZeroTest(t *testing.T) {
	assert.EqualValues(t, 0x80808080, zero4(0))
	assert.EqualValues(t, 0x00808000, zero4(0x7f0000ff))
	assert.EqualValues(t, 0, zero4(0x01010101))
	assert.EqualValues(t, 0x80008000, zero4(0x00800080))
	assert.EqualValues(t, 0x8080, zero2(0))
	assert.EqualValues(t, 0x0080, zero2(0xff00))
	assert.EqualValues(t, 0, zero2(0x8001))
}

func TestPackSlot(t *testing.T) {
	assert.Equal(t, 0x3f, pack6(0x80808080, 0x8080))
	assert.Equal(t, 0x01, pack6(0x00000080, 0))
	assert.Equal(t, 0x30, pack6(0, 0x8080))
	assert.Equal(t, 0x2a, pack6(0x00800080<<8, 0x8000))

	assert.Equal(t, 0x3f, slot0(0x01010101, 0x0101))
	assert.Equal(t, 0x09, slot0(0x01000001, 0))
	assert.Equal(t, 0x20, slot0(0, 0x0100))
}
