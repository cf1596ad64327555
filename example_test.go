package sixel_test

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/termforge/sixel"
)

func ExampleEncoder_Encode() {
	img := image.NewPaletted(image.Rect(0, 0, 2, 2), color.Palette{
		color.Black,
		color.White,
	})
	img.SetColorIndex(1, 0, 1)
	img.SetColorIndex(0, 1, 1)

	var buf bytes.Buffer
	if err := sixel.NewEncoder(&buf).Encode(img); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%q\n", buf.String())
	// Output:
	// "\x1bP0;1;8q\"1;1;2;2#0;2;0;0;0#1;2;100;100;100#0@A$#1A@\x1b\\"
}
