package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/rovshanmuradov/esports-earnings/internal/chart"
	"github.com/rovshanmuradov/esports-earnings/internal/earnings"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var titleColor = color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}

// Render draws the donut for entries on a white canvas with the title above it.
func Render(entries []earnings.Entry, opts Options) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	drawTitle(img, opts)

	slices := chart.Layout(entries)
	ring := ChartRing(opts)
	left := (opts.Width - opts.ChartSize) / 2
	bounds := image.Rect(left, opts.ChartTop, left+opts.ChartSize, opts.ChartTop+opts.ChartSize).
		Intersect(img.Bounds())

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			p := chart.Point{X: float64(x) + 0.5, Y: float64(y) + 0.5}
			i, ok := chart.HitTest(slices, p, ring)
			if !ok {
				continue
			}
			img.SetRGBA(x, y, chart.ColorAt(slices[i].ColorIndex))
		}
	}
	return img
}

// ChartRing returns where the donut sits on the export canvas.
func ChartRing(opts Options) chart.Ring {
	radius := float64(opts.ChartSize) / 2
	return chart.Ring{
		Center: chart.Point{
			X: float64(opts.Width) / 2,
			Y: float64(opts.ChartTop) + radius,
		},
		Radius:     radius,
		InnerRatio: opts.InnerRatio,
	}
}

func drawTitle(img *image.RGBA, opts Options) {
	if opts.Title == "" {
		return
	}
	face := basicfont.Face7x13
	width := font.MeasureString(face, opts.Title).Ceil()

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(titleColor),
		Face: face,
		Dot:  fixed.P((opts.Width-width)/2, opts.TitleY),
	}
	d.DrawString(opts.Title)
}

// WritePNG renders entries and encodes the image as PNG.
func WritePNG(w io.Writer, entries []earnings.Entry, opts Options) error {
	if err := png.Encode(w, Render(entries, opts)); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// WriteJPEG renders entries and encodes the image as JPEG.
func WriteJPEG(w io.Writer, entries []earnings.Entry, opts Options) error {
	quality := opts.JPEGQuality
	if quality <= 0 || quality > 100 {
		quality = jpeg.DefaultQuality
	}
	if err := jpeg.Encode(w, Render(entries, opts), &jpeg.Options{Quality: quality}); err != nil {
		return fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return nil
}
