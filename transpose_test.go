package sixel

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestTransposeExact checks the interleaved fast path and the scalar
// fallback against the defining formula, byte r of column x ==
// pix[off+r*stride+x], over odd widths, strides and offsets.
func TestTransposeExact(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, width := range []int{1, 2, 3, 4, 5, 7, 8, 13, 32, 35} {
		for _, rows := range []int{1, 2, 3, 4, 5, 6} {
			for _, extra := range []int{0, 3} {
				stride := width + extra
				off := rng.Intn(5)
				pix := make([]byte, off+6*stride+width)
				rng.Read(pix)

				var b band
				b.grow(width)
				b.transpose(pix, off, rows, stride)

				for x := 0; x < width; x++ {
					for r := 0; r < 6; r++ {
						var got byte
						if r < 4 {
							got = byte(b.data4[x] >> uint(8*r))
						} else {
							got = byte(b.data2[x] >> uint(8*(r-4)))
						}
						var want byte
						if r < rows {
							want = pix[off+r*stride+x]
						}
						require.Equal(t, want, got,
							"width=%d rows=%d stride=%d off=%d x=%d r=%d",
							width, rows, stride, off, x, r)
					}
				}
			}
		}
	}
}

func TestLoadWrapColumns(t *testing.T) {
	// The shadow columns past the edge duplicate the leading columns,
	// wrapping for images narrower than the window.
	pix := []byte{9, 8, 7}
	var b band
	b.grow(3)
	b.load(pix, 0, 1, 3, -1)
	for k := 0; k < lookahead; k++ {
		require.Equal(t, b.data4[k%3], b.data4[3+k])
		require.Equal(t, b.data2[k%3], b.data2[3+k])
	}
}
