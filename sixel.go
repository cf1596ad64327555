// Package sixel encodes paletted raster images into DEC sixel graphics
// streams for display in sixel-capable terminals.
//
// The encoder works in bands of six pixel rows. Within a band it greedily
// schedules color "pens" with a seven column lookahead window and
// compresses repeated sixels with the protocol's repeat introducer, so a
// band usually needs far fewer color passes than it has colors.
package sixel

import (
	"image"
	"io"

	"golang.org/x/exp/slog"

	"github.com/termforge/sixel/octreequant"
)

var log = slog.New(slog.NewTextHandler(io.Discard, nil))

// SetLogger directs the package's debug logging to l. The default logger
// discards everything.
func SetLogger(l *slog.Logger) {
	if l != nil {
		log = l
	}
}

// Alpha below which a palette entry is left to the terminal background
// rather than drawn.
const transparentEnough = 50

// Encoder writes sixel streams to an io.Writer. The zero Colors value
// quantizes non-paletted images to 256 colors.
//
// An Encoder reuses its scratch buffers between Encode calls; sequential
// reuse is cheap, concurrent use of one Encoder is not allowed. Each pass
// line is handed to the writer as a slice of scratch memory that is
// overwritten on the next call, per the usual io.Writer contract.
type Encoder struct {
	w io.Writer

	// Colors caps the palette used when Encode quantizes a non-paletted
	// image. Values outside [2, 256] mean 256.
	Colors int

	band      band
	out       []byte
	firstLine bool
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode writes img as a sixel stream. Paletted images with at most 256
// entries are encoded directly; anything else is first quantized down to
// Colors entries.
func (e *Encoder) Encode(img image.Image) error {
	if p, ok := img.(*image.Paletted); ok && len(p.Palette) <= 256 {
		return e.EncodePaletted(p)
	}
	colors := e.Colors
	if colors < 2 || colors > 256 {
		colors = 256
	}
	return e.EncodePaletted(octreequant.Paletted(img, colors))
}

// EncodePaletted writes p as a sixel stream. Palette entries with alpha
// below 50 are transparent: their pixels are skipped and show the terminal
// background. The first such entry becomes the transparent index and any
// further ones are folded onto it.
func (e *Encoder) EncodePaletted(p *image.Paletted) error {
	bounds := p.Bounds()
	if bounds.Empty() {
		// A zero-size image still yields a well-formed stream: the
		// header around a single undrawn pixel, then the terminator.
		return e.EncodeRaster(Raster{Pix: []byte{0}, Transparent: 0})
	}
	r := Raster{
		Pix:         p.Pix,
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		Stride:      p.Stride,
		Offset:      p.PixOffset(bounds.Min.X, bounds.Min.Y),
		Palette:     make([]Color, len(p.Palette)),
		Transparent: -1,
	}
	var clear []bool
	transparent := 0
	for i, c := range p.Palette {
		cr, cg, cb, ca := c.RGBA()
		if ca>>8 < transparentEnough {
			if clear == nil {
				clear = make([]bool, len(p.Palette))
			}
			clear[i] = true
			transparent++
			if r.Transparent < 0 {
				r.Transparent = i
			}
			continue
		}
		// RGBA is alpha-premultiplied; scale back out.
		r.Palette[i] = Color{
			R: float64(cr) / float64(ca),
			G: float64(cg) / float64(ca),
			B: float64(cb) / float64(ca),
		}
	}
	if transparent > 1 {
		// Every transparent entry shares the one transparent index.
		// The image's pixel buffer is caller-owned, so remap a copy.
		pix := make([]byte, len(r.Pix))
		for i, v := range r.Pix {
			if int(v) < len(clear) && clear[v] {
				v = uint8(r.Transparent)
			}
			pix[i] = v
		}
		r.Pix = pix
	}
	return e.EncodeRaster(r)
}
