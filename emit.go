package sixel

const (
	esc = 0x1b

	// gcr returns the sixel cursor to the start of the band for another
	// color pass; gnl advances it to the next band.
	gcr = '$'
	gnl = '-'

	// rle introduces a repeat count for the following character.
	rle = '!'

	runMax = 255
)

// putDecimal writes v as 1-3 ASCII digits at buf[pos] and returns the
// position past the last digit. v must be in [0, 999]; callers guarantee
// this (palette indices and run lengths both fit in a byte) and it is not
// checked here.
func putDecimal(v int, buf []byte, pos int) int {
	switch {
	case v >= 100:
		buf[pos] = '0' + byte(v/100)
		buf[pos+1] = '0' + byte(v/10%10)
		buf[pos+2] = '0' + byte(v%10)
		return pos + 3
	case v >= 10:
		buf[pos] = '0' + byte(v/10)
		buf[pos+1] = '0' + byte(v%10)
		return pos + 2
	default:
		buf[pos] = '0' + byte(v)
		return pos + 1
	}
}

// putRun writes a run of count identical sixels at buf[pos] and returns the
// position past the run. bits is the 6-bit row pattern, count is in
// [1, 255]. Short runs are written as up to three bare characters; the
// write always stores three bytes but only advances pos by count, so the
// buffer needs two bytes of slack past the logical end.
func putRun(bits, count int, buf []byte, pos int) int {
	ch := byte(0x3f + bits)
	if count > 3 {
		buf[pos] = rle
		pos = putDecimal(count, buf, pos+1)
		buf[pos] = ch
		return pos + 1
	}
	buf[pos] = ch
	buf[pos+1] = ch
	buf[pos+2] = ch
	return pos + count
}

// zero4 yields 0x80 in every byte of w that is zero, via the parallel
// subtract-and-mask zero test. Per-byte subtraction from 0x80 cannot borrow
// across bytes once the high bits are masked off.
func zero4(w uint32) uint32 {
	return (0x80808080 - w&0x7f7f7f7f) &^ w & 0x80808080
}

func zero2(w uint16) uint16 {
	return (0x8080 - w&0x7f7f) &^ w & 0x8080
}

// pack6 collapses the flag bit (bit 7) of each row byte into a 6-bit row
// mask, rows 0-3 from lo and rows 4-5 from hi.
func pack6(lo uint32, hi uint16) int {
	return int((lo>>7)&1|(lo>>14)&2|(lo>>21)&4|(lo>>28)&8) |
		int(hi>>7&1)<<4 | int(hi>>15)<<5
}

// slot0 reads the current column out of the lookahead register: bit 0 of
// each row byte, packed into a 6-bit sixel pattern.
func slot0(r4 uint32, r2 uint16) int {
	return int(r4&1|(r4>>7)&2|(r4>>14)&4|(r4>>21)&8) |
		int(r2&1)<<4 | int(r2>>8&1)<<5
}

// flag4 and flag2 spread a 6-bit row mask back out to per-byte pending
// flags, the inverse of pack6.
func flag4(sx int) uint32 {
	return uint32(sx&1)<<7 | uint32(sx&2)<<14 | uint32(sx&4)<<21 | uint32(sx&8)<<28
}

func flag2(sx int) uint16 {
	return uint16(sx>>4&1)<<7 | uint16(sx>>5&1)<<15
}
