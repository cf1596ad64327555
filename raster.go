package sixel

// Color is a palette entry with components in [0, 1].
type Color struct {
	R, G, B float64
}

// Raster is a bare paletted pixel buffer: one palette index byte per
// pixel. It is the lowest level input the encoder accepts; image.Paletted
// values are adapted onto it by EncodePaletted.
//
// The encoder reads Pix[Offset+y*Stride+x] for every pixel it visits and
// never writes to it. Callers must size Pix accordingly; that invariant is
// documented, not checked.
type Raster struct {
	Pix    []byte
	Width  int
	Height int

	// Stride is the byte distance between vertically adjacent pixels.
	// Zero means Width.
	Stride int

	// Offset is the index of the top-left pixel in Pix.
	Offset int

	// Palette entries are addressed by pixel value.
	Palette []Color

	// Transparent is a palette index whose pixels are never drawn and
	// show the terminal background instead. Negative means none;
	// anything outside the byte range is treated as none.
	Transparent int
}

// Raster dimensions are coerced into the range a sixel raster attribute
// can carry.
const (
	minDim = 1
	maxDim = 0xffff
)

func clampDim(v int) int {
	if v < minDim {
		return minDim
	}
	if v > maxDim {
		return maxDim
	}
	return v
}
