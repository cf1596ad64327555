package sixel

import "encoding/binary"

// transpose repacks rows pixel rows of width bytes each, starting at
// pix[off] with the given stride, into the band's column words. Byte r of
// column x always equals pix[off+r*stride+x]; rows beyond rows are zero.
//
// Full-height bands take a fast path that transposes a 4x4 byte block per
// step with word-level interleaving; short bands and the trailing columns
// fall back to the scalar loop. Both paths are bit-exact.
func (b *band) transpose(pix []byte, off, rows, stride int) {
	x := 0
	if rows == bandHeight {
		for ; x+4 <= b.width; x += 4 {
			r0 := binary.LittleEndian.Uint32(pix[off+x:])
			r1 := binary.LittleEndian.Uint32(pix[off+stride+x:])
			r2 := binary.LittleEndian.Uint32(pix[off+2*stride+x:])
			r3 := binary.LittleEndian.Uint32(pix[off+3*stride+x:])
			// Interleave rows pairwise, then stitch 16-bit halves:
			// ab0 carries columns 0 and 2 of rows 0-1, ab1 columns
			// 1 and 3, likewise cd for rows 2-3.
			ab0 := r0&0x00ff00ff | (r1&0x00ff00ff)<<8
			ab1 := (r0>>8)&0x00ff00ff | r1&0xff00ff00
			cd0 := r2&0x00ff00ff | (r3&0x00ff00ff)<<8
			cd1 := (r2>>8)&0x00ff00ff | r3&0xff00ff00
			b.data4[x] = ab0&0xffff | cd0<<16
			b.data4[x+1] = ab1&0xffff | cd1<<16
			b.data4[x+2] = ab0>>16 | cd0&0xffff0000
			b.data4[x+3] = ab1>>16 | cd1&0xffff0000

			r4 := binary.LittleEndian.Uint32(pix[off+4*stride+x:])
			r5 := binary.LittleEndian.Uint32(pix[off+5*stride+x:])
			ef0 := r4&0x00ff00ff | (r5&0x00ff00ff)<<8
			ef1 := (r4>>8)&0x00ff00ff | r5&0xff00ff00
			b.data2[x] = uint16(ef0)
			b.data2[x+1] = uint16(ef1)
			b.data2[x+2] = uint16(ef0 >> 16)
			b.data2[x+3] = uint16(ef1 >> 16)
		}
	}
	for ; x < b.width; x++ {
		var d4 uint32
		for r := 0; r < rows && r < 4; r++ {
			d4 |= uint32(pix[off+r*stride+x]) << uint(8*r)
		}
		var d2 uint16
		for r := 4; r < rows; r++ {
			d2 |= uint16(pix[off+r*stride+x]) << uint(8*(r-4))
		}
		b.data4[x] = d4
		b.data2[x] = d2
	}
}
