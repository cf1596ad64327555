package sixel

import "strconv"

// EncodeRaster writes r as a complete sixel stream: header, one sixel row
// per band of six pixel rows, and the string terminator. Out-of-range
// dimensions are clamped rather than rejected and an out-of-range
// transparent index turns transparency off.
func (e *Encoder) EncodeRaster(r Raster) error {
	w := clampDim(r.Width)
	h := clampDim(r.Height)
	stride := r.Stride
	if stride == 0 {
		stride = w
	}
	transparent := r.Transparent
	if transparent > 0xff {
		transparent = -1
	}

	// Worst case per pass line is five bytes per column (a pen select
	// and a sixel), plus separator, terminator and the short-run
	// overwrite slack.
	if cap(e.out) < w*5+5 {
		e.out = make([]byte, w*5+5)
	}
	out := e.out[:w*5+5]
	e.band.grow(w)
	e.firstLine = true

	if err := e.writeHeader(w, h, r.Palette); err != nil {
		return err
	}

	bands := (h + bandHeight - 1) / bandHeight
	log.Debug("sixel encode",
		"width", w, "height", h, "bands", bands, "colors", len(r.Palette))
	off := r.Offset
	for i := 0; i < bands; i++ {
		rows := h - i*bandHeight
		if rows > bandHeight {
			rows = bandHeight
		}
		e.band.load(r.Pix, off, rows, stride, transparent)
		if err := e.encodeBand(out, i == bands-1); err != nil {
			return err
		}
		// The forced full-width blank run belongs to the first band
		// only, even when that band is empty and runs no pass.
		e.firstLine = false
		off += stride * bandHeight
	}
	return nil
}

// encodeBand runs color passes over the loaded band until nothing is
// pending, writing one pass line per Write call. A band with no pending
// pixels at all contributes only its separator.
func (e *Encoder) encodeBand(out []byte, last bool) error {
	b := &e.band
	for b.anyPending() {
		pos := b.pass(out, e.firstLine)
		e.firstLine = false
		if b.anyPending() {
			out[pos] = gcr
			if _, err := e.w.Write(out[:pos+1]); err != nil {
				return err
			}
			continue
		}
		return e.endBand(out, pos, last)
	}
	return e.endBand(out, 0, last)
}

// endBand closes the band's final pass line with the next-line token, or
// with the string terminator when the whole image is drawn.
func (e *Encoder) endBand(out []byte, pos int, last bool) error {
	if last {
		out[pos] = esc
		out[pos+1] = '\\'
		pos += 2
	} else {
		out[pos] = gnl
		pos++
	}
	_, err := e.w.Write(out[:pos])
	return err
}

// writeHeader emits the DCS introducer, the raster attributes and one
// color definition per palette entry, channels scaled to [0, 100].
// P2=1 keeps undrawn pixels at the terminal background, matching the
// transparent index semantics.
func (e *Encoder) writeHeader(w, h int, palette []Color) error {
	buf := make([]byte, 32+18*len(palette))
	pos := copy(buf, "\x1bP0;1;8q\"1;1;")
	pos += copy(buf[pos:], strconv.Itoa(w))
	buf[pos] = ';'
	pos++
	pos += copy(buf[pos:], strconv.Itoa(h))
	for i, c := range palette {
		buf[pos] = '#'
		pos = putDecimal(i, buf, pos+1)
		pos += copy(buf[pos:], ";2;")
		pos = putDecimal(scale100(c.R), buf, pos)
		buf[pos] = ';'
		pos = putDecimal(scale100(c.G), buf, pos+1)
		buf[pos] = ';'
		pos = putDecimal(scale100(c.B), buf, pos+1)
	}
	_, err := e.w.Write(buf[:pos])
	return err
}

// scale100 maps a [0, 1] channel onto the protocol's [0, 100] range,
// rounding half up.
func scale100(v float64) int {
	return int(v*100 + 0.5)
}
