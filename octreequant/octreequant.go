// Package octreequant reduces true-color images to paletted images ahead
// of sixel encoding.
//
// It builds an octree over the image's colors, collapses the deepest
// branches until the leaf count fits the requested palette size, and maps
// every pixel to the mean color of its leaf. Sufficiently transparent
// pixels are gathered into one fully transparent palette entry at the end
// of the palette, which the sixel encoder turns into its transparent
// index.
package octreequant

import (
	"image"
	"image/color"
)

// Tree depth; one level per bit of each channel.
const depth = 8

// Alpha (8-bit) below which a pixel is considered transparent. Matches the
// encoder's threshold for skipping palette entries.
const alphaOpaque = 50

type node struct {
	r, g, b int // channel sums over absorbed pixels
	n       int // absorbed pixel count; leaves have n > 0
	index   int // palette slot, assigned when the palette is built
	child   [8]*node
}

// branch selects the child slot for c at the given level from one bit of
// each channel.
func branch(c color.NRGBA, level int) int {
	bit := uint(7 - level)
	return int(c.R>>bit&1)<<2 | int(c.G>>bit&1)<<1 | int(c.B>>bit&1)
}

type quantizer struct {
	root *node
	// Interior nodes by level, candidates for collapsing bottom-up.
	reducible [depth][]*node
	leaves    int
	clear     bool // image has transparent pixels
}

func (q *quantizer) insert(c color.NRGBA) {
	n := q.root
	for level := 0; ; level++ {
		if level == depth {
			if n.n == 0 {
				q.leaves++
			}
			n.r += int(c.R)
			n.g += int(c.G)
			n.b += int(c.B)
			n.n++
			return
		}
		next := n.child[branch(c, level)]
		if next == nil {
			next = &node{}
			n.child[branch(c, level)] = next
			if level < depth-1 {
				q.reducible[level] = append(q.reducible[level], next)
			}
		}
		n = next
	}
}

// collapse folds every child of n into n, making it a leaf, and returns
// how many leaves were lost.
func (q *quantizer) collapse(n *node) int {
	lost := 0
	for i, c := range n.child {
		if c == nil {
			continue
		}
		n.r += c.r
		n.g += c.g
		n.b += c.b
		n.n += c.n
		n.child[i] = nil
		lost++
	}
	q.leaves -= lost - 1
	return lost - 1
}

// reduce collapses deepest-first until at most max leaves remain.
func (q *quantizer) reduce(max int) {
	for level := depth - 2; level >= 0 && q.leaves > max; level-- {
		for _, n := range q.reducible[level] {
			if q.leaves <= max {
				break
			}
			if n.n > 0 {
				// Already absorbed by a collapse above it.
				continue
			}
			q.collapse(n)
		}
		q.reducible[level] = nil
	}
	if q.leaves > max {
		// Only the root's direct children are left; fold them too.
		q.collapse(q.root)
	}
}

// palette flattens the remaining leaves, assigning each its slot. The
// transparent entry, when present, goes last.
func (q *quantizer) palette(max int) color.Palette {
	if q.clear {
		max--
	}
	q.reduce(max)
	pal := make(color.Palette, 0, q.leaves+1)
	q.walk(q.root, &pal)
	if q.clear {
		pal = append(pal, color.NRGBA{})
	}
	return pal
}

func (q *quantizer) walk(n *node, pal *color.Palette) {
	if n.n > 0 {
		n.index = len(*pal)
		*pal = append(*pal, color.NRGBA{
			R: uint8(n.r / n.n),
			G: uint8(n.g / n.n),
			B: uint8(n.b / n.n),
			A: 0xff,
		})
		return
	}
	for _, c := range n.child {
		if c != nil {
			q.walk(c, pal)
		}
	}
}

// lookup returns the palette slot for c, following the branch the pixel
// was inserted along until it hits a leaf.
func (q *quantizer) lookup(c color.NRGBA) int {
	n := q.root
	for level := 0; n.n == 0; level++ {
		next := n.child[branch(c, level)]
		if next == nil {
			// The branch was collapsed sideways; any surviving
			// sibling holds colors within the same prefix.
			for _, s := range n.child {
				if s != nil {
					next = s
					break
				}
			}
		}
		n = next
	}
	return n.index
}

func nrgba(c color.Color) (color.NRGBA, bool) {
	r, g, b, a := c.RGBA()
	if a>>8 < alphaOpaque {
		return color.NRGBA{}, false
	}
	return color.NRGBA{
		R: uint8(r * 0xff / a),
		G: uint8(g * 0xff / a),
		B: uint8(b * 0xff / a),
		A: 0xff,
	}, true
}

// Paletted quantizes img down to at most colors palette entries. When the
// image has transparent pixels one entry is reserved for them, so at most
// colors-1 opaque colors survive.
func Paletted(img image.Image, colors int) *image.Paletted {
	bounds := img.Bounds()
	q := &quantizer{root: &node{}}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c, opaque := nrgba(img.At(x, y))
			if !opaque {
				q.clear = true
				continue
			}
			q.insert(c)
		}
	}
	pal := q.palette(colors)
	out := image.NewPaletted(bounds, pal)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c, opaque := nrgba(img.At(x, y))
			if !opaque {
				out.SetColorIndex(x, y, uint8(len(pal)-1))
				continue
			}
			out.SetColorIndex(x, y, uint8(q.lookup(c)))
		}
	}
	return out
}
