package sixel

const (
	// bandHeight is the number of pixel rows a single sixel row covers.
	bandHeight = 6

	// lookahead is the width of the pen scheduling window beyond the
	// current column. The column buffers carry this many wrap-around
	// shadow columns so window reads never run out of bounds.
	lookahead = 7
)

// band is the working state for one group of up to six pixel rows. It is
// owned by an Encoder and reset for every band; only allocations survive
// between bands.
type band struct {
	width int
	rows  int

	// Column-major pixel words: byte r of data4[x] holds the palette
	// index of row r in column x, data2 holds rows 4 and 5. Splitting at
	// four bytes keeps every mask trick inside native 32-bit arithmetic.
	data4 []uint32
	data2 []uint16

	// Pending flags, one byte per row: 0x80 while the pixel still awaits
	// a pass, 0x00 once drawn, transparent, or beyond the image. Flags
	// only ever clear within a band.
	pend4 []uint32
	pend2 []uint16

	// Flag bytes for the rows that exist in this band.
	valid4 uint32
	valid2 uint16
}

func (b *band) grow(width int) {
	b.width = width
	n := width + lookahead
	if cap(b.data4) < n {
		b.data4 = make([]uint32, n)
		b.data2 = make([]uint16, n)
		b.pend4 = make([]uint32, n)
		b.pend2 = make([]uint16, n)
		return
	}
	b.data4 = b.data4[:n]
	b.data2 = b.data2[:n]
	b.pend4 = b.pend4[:n]
	b.pend2 = b.pend2[:n]
}

// load resets the band over rows pixel rows starting at pix[off],
// transposing them into column words, duplicating the leading columns into
// the wrap-around slots and seeding the pending flags.
func (b *band) load(pix []byte, off, rows, stride, transparent int) {
	b.rows = rows
	b.transpose(pix, off, rows, stride)
	for k := 0; k < lookahead; k++ {
		b.data4[b.width+k] = b.data4[k%b.width]
		b.data2[b.width+k] = b.data2[k%b.width]
	}
	b.seed(transparent)
}

// seed marks every row below rows as pending, then clears pixels matching
// the transparent index with a parallel compare across all row bytes.
func (b *band) seed(transparent int) {
	var p4 uint32
	var p2 uint16
	for r := 0; r < b.rows && r < 4; r++ {
		p4 |= 0x80 << uint(8*r)
	}
	for r := 4; r < b.rows; r++ {
		p2 |= 0x80 << uint(8*(r-4))
	}
	b.valid4, b.valid2 = p4, p2
	if transparent < 0 {
		for x := range b.pend4 {
			b.pend4[x] = p4
			b.pend2[x] = p2
		}
		return
	}
	t4 := uint32(transparent) * 0x01010101
	t2 := uint16(transparent) * 0x0101
	for x := range b.pend4 {
		b.pend4[x] = p4 &^ zero4(b.data4[x]^t4)
		b.pend2[x] = p2 &^ zero2(b.data2[x]^t2)
	}
}

// anyPending reports whether any image column still has a pixel awaiting a
// pass. Wrap-around columns are ignored; their flags are private copies
// that only steer the lookahead.
func (b *band) anyPending() bool {
	for x := 0; x < b.width; x++ {
		if b.pend4[x]|uint32(b.pend2[x]) != 0 {
			return true
		}
	}
	return false
}

// topColor returns the palette index of the topmost pending row of column
// x. The top four rows win over the bottom two.
func (b *band) topColor(x int) uint8 {
	d, p := b.data4[x], b.pend4[x]
	for r := 0; r < 4; r++ {
		if p&0x80 != 0 {
			return uint8(d)
		}
		d >>= 8
		p >>= 8
	}
	if b.pend2[x]&0x80 != 0 {
		return uint8(b.data2[x])
	}
	return uint8(b.data2[x] >> 8)
}

// penRows returns the 6-bit mask of rows in column x whose palette index
// equals the pen, restricted to rows that exist in this band. A run may
// repeat its pattern over exactly these rows without painting a pixel some
// other color owns.
func (b *band) penRows(x int, pen4 uint32, pen2 uint16) int {
	return pack6(zero4(b.data4[x]^pen4)&b.valid4, zero2(b.data2[x]^pen2)&b.valid2)
}

// pass sweeps the band once left to right, drawing every pixel it can
// reach with greedily chosen pens, and writes the resulting tokens into
// out. It returns the number of bytes written. keepBlank forces the
// trailing all-zero run out (used on the very first pass of an image so
// width-inferring decoders see a full row).
func (b *band) pass(out []byte, keepBlank bool) int {
	pos := 0
	gotPen := false
	var pen4 uint32
	var pen2 uint16
	// Lookahead shift register: bit k of row byte r means column x+k has
	// row r pending in the pen's color. Pending flags clear only when a
	// column is actually drawn, so a released pen forfeits nothing.
	var reg4 uint32
	var reg2 uint16
	cur := 0 // pattern of the open run
	run := 0 // its length; 0 means no open run
	for x := 0; x < b.width; x++ {
		if gotPen {
			// Slide the window one column. The shift moves every
			// column flag down a slot; the mask stops row bytes
			// bleeding into each other. Column x+lookahead becomes
			// visible and its matches are folded in.
			reg4 = (reg4 >> 1) & 0x7f7f7f7f
			reg2 = (reg2 >> 1) & 0x7f7f
			m4 := zero4(b.data4[x+lookahead]^pen4) & b.pend4[x+lookahead]
			m2 := zero2(b.data2[x+lookahead]^pen2) & b.pend2[x+lookahead]
			reg4 |= ((m4 >> 7) & 0x01010101) << lookahead
			reg2 |= ((m2 >> 7) & 0x0101) << lookahead
			sx := slot0(reg4, reg2)
			switch {
			case sx == 0 && pack6(b.pend4[x], b.pend2[x]) != 0:
				// The pen draws nothing in a column that still
				// needs color: force-release so this column can
				// pick the pen it needs. This is what keeps a
				// band within one pass per stacked color.
				pos = putRun(cur, run, out, pos)
				cur, run = 0, 0
				gotPen = false
			case run > 0 && run < runMax && sx&^cur == 0 &&
				cur&^b.penRows(x, pen4, pen2) == 0:
				// The open run absorbs this column: repeating
				// its pattern draws everything sx needs and
				// touches no row the pen does not own outright.
				run++
				b.pend4[x] &^= flag4(sx)
				b.pend2[x] &^= flag2(sx)
			default:
				if run > 0 {
					pos = putRun(cur, run, out, pos)
				}
				cur, run = sx, 1
				b.pend4[x] &^= flag4(sx)
				b.pend2[x] &^= flag2(sx)
			}
		}
		if !gotPen {
			if pack6(b.pend4[x], b.pend2[x]) == 0 {
				// Nothing to draw here and no pen to carry:
				// extend or open an all-zero run.
				if run > 0 && cur == 0 && run < runMax {
					run++
				} else {
					if run > 0 {
						pos = putRun(cur, run, out, pos)
					}
					cur, run = 0, 1
				}
				continue
			}
			pen := b.topColor(x)
			pen4 = uint32(pen) * 0x01010101
			pen2 = uint16(pen) * 0x0101
			gotPen = true
			if run > 0 {
				pos = putRun(cur, run, out, pos)
			}
			out[pos] = '#'
			pos = putDecimal(int(pen), out, pos+1)
			// Fill the window with the pen's pending matches.
			reg4, reg2 = 0, 0
			for k := 0; k <= lookahead; k++ {
				m4 := zero4(b.data4[x+k]^pen4) & b.pend4[x+k]
				m2 := zero2(b.data2[x+k]^pen2) & b.pend2[x+k]
				reg4 |= ((m4 >> 7) & 0x01010101) << uint(k)
				reg2 |= ((m2 >> 7) & 0x0101) << uint(k)
			}
			sx := slot0(reg4, reg2)
			b.pend4[x] &^= flag4(sx)
			b.pend2[x] &^= flag2(sx)
			cur, run = sx, 1
		}
		// Once the window ahead holds no more matches the pen is
		// released, so the next column is free to select whatever
		// color it needs.
		if gotPen && reg4&^0x01010101 == 0 && reg2&^0x0101 == 0 {
			pos = putRun(cur, run, out, pos)
			cur, run = 0, 0
			gotPen = false
		}
	}
	if run > 0 && (cur != 0 || keepBlank) {
		pos = putRun(cur, run, out, pos)
	}
	return pos
}
