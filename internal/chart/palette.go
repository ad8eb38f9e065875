package chart

import (
	"fmt"
	"image/color"
)

// Palette is the fixed slice color cycle.
var Palette = []color.RGBA{
	{70, 130, 180, 255},
	{255, 99, 71, 255},
	{50, 205, 50, 255},
	{255, 215, 0, 255},
	{186, 85, 211, 255},
	{30, 144, 255, 255},
	{255, 127, 80, 255},
	{154, 205, 50, 255},
	{255, 105, 180, 255},
	{100, 149, 237, 255},
	{255, 165, 0, 255},
	{34, 139, 34, 255},
	{220, 20, 60, 255},
	{0, 191, 255, 255},
	{139, 69, 19, 255},
	{75, 0, 130, 255},
	{128, 128, 0, 255},
	{25, 25, 112, 255},
	{210, 105, 30, 255},
	{0, 128, 128, 255},
}

// highlightBoost is added to each channel of a hovered slice.
const highlightBoost = 30

// ColorAt returns the palette color for a slice index, cycling past the end.
func ColorAt(i int) color.RGBA {
	if i < 0 {
		i = -i
	}
	return Palette[i%len(Palette)]
}

// Highlight brightens c for the hovered slice.
func Highlight(c color.RGBA) color.RGBA {
	return color.RGBA{
		R: boost(c.R),
		G: boost(c.G),
		B: boost(c.B),
		A: c.A,
	}
}

func boost(v uint8) uint8 {
	if int(v)+highlightBoost > 255 {
		return 255
	}
	return v + highlightBoost
}

// Hex formats c as #rrggbb.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
