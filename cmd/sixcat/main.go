// Command sixcat renders an image in a sixel-capable terminal.
package main

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/ericpauley/go-quantize/quantize"
	"github.com/lmittmann/tint"
	"github.com/urfave/cli/v2"
	"golang.org/x/exp/slog"
	"golang.org/x/image/draw"

	"github.com/termforge/sixel"
	"github.com/termforge/sixel/octreequant"
	"github.com/termforge/sixel/termcap"
)

var log = slog.New(slog.NewTextHandler(io.Discard, nil))

func main() {
	app := &cli.App{
		Name:      "sixcat",
		Usage:     "render images in a sixel-capable terminal",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "colors",
				Aliases: []string{"c"},
				Value:   256,
				Usage:   "palette size used when quantizing",
			},
			&cli.StringFlag{
				Name:    "quantizer",
				Aliases: []string{"q"},
				Value:   "octree",
				Usage:   "quantizer to use: octree or mediancut",
			},
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
				Usage:   "skip the sixel capability probe",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "debug logging on stderr",
			},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowAppHelpAndExit(c, 1)
	}
	if c.Bool("verbose") {
		handler := tint.NewHandler(os.Stderr, &tint.Options{
			AddSource:  true,
			Level:      slog.LevelDebug,
			TimeFormat: "15:04:05.000",
		})
		log = slog.New(handler)
		sixel.SetLogger(log)
	}

	f, err := os.Open(c.Args().First())
	if err != nil {
		return err
	}
	defer f.Close()
	img, format, err := image.Decode(f)
	if err != nil {
		return err
	}
	log.Debug("decoded image", "format", format,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())

	tty := os.Stdout
	if !c.Bool("force") {
		ok, err := termcap.SupportsSixel(tty)
		if err != nil {
			return fmt.Errorf("sixel probe: %w", err)
		}
		if !ok {
			return fmt.Errorf("terminal does not advertise sixel support (use --force to override)")
		}
	}
	if ws, err := termcap.Size(tty); err == nil && ws.Rows > 0 && ws.XPixel > 0 && ws.YPixel > 0 {
		// Leave one cell row free so the shell prompt has somewhere
		// to land after the image.
		img = fit(img, ws.XPixel, ws.YPixel-ws.YPixel/ws.Rows)
	}

	colors := c.Int("colors")
	var p *image.Paletted
	switch c.String("quantizer") {
	case "octree":
		p = octreequant.Paletted(img, colors)
	case "mediancut":
		q := quantize.MedianCutQuantizer{}
		pal := q.Quantize(make(color.Palette, 0, colors), img)
		p = image.NewPaletted(img.Bounds(), pal)
		draw.Draw(p, p.Rect, img, img.Bounds().Min, draw.Src)
	default:
		return fmt.Errorf("unknown quantizer %q", c.String("quantizer"))
	}
	return sixel.NewEncoder(os.Stdout).EncodePaletted(p)
}

// fit scales img down to the given pixel bounds, preserving its aspect
// ratio. Images that already fit are returned as is.
func fit(img image.Image, maxW, maxH int) image.Image {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	if w <= maxW && h <= maxH {
		return img
	}
	sf := float64(maxW) / float64(w)
	if s := float64(maxH) / float64(h); s < sf {
		sf = s
	}
	dst := image.NewRGBA(image.Rect(0, 0, int(sf*float64(w)), int(sf*float64(h))))
	draw.NearestNeighbor.Scale(dst, dst.Rect, img, img.Bounds(), draw.Over, nil)
	return dst
}
