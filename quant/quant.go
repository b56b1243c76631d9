/*
Package quant reduces full-color page rasters to the Mega Drive color
space: at most 15 colors per slide at 3 bits per channel, with a choice
of dithering methods to soften the loss.

A CRAM palette line holds 16 entries but entry 0 doubles as the plane's
transparent color, so slides quantize to 15 colors at most.
*/
package quant

import (
	"image"
	"image/color"

	"github.com/ericpauley/go-quantize/quantize"
)

const (
	// MaxColors is the number of usable entries in one CRAM palette line.
	MaxColors = 15

	channelLevels = 8 // 3 bits per channel
)

// reduce snaps an 8-bit channel to one of the 8 levels the VDP can
// display, expanded back to full range so palette colors stay bright.
func reduce(v uint8) uint8 {
	return uint8(int(v) >> 5 * 255 / (channelLevels - 1))
}

// Posterize returns a copy of m with every channel reduced to the VDP's
// 3-bit depth. Computing the palette from the posterized raster keeps
// median-cut from wasting entries on colors the hardware cannot show.
func Posterize(m image.Image) *image.RGBA {
	b := m.Bounds()
	dst := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, b2, _ := m.At(x, y).RGBA()
			dst.SetRGBA(x, y, color.RGBA{
				reduce(uint8(r >> 8)),
				reduce(uint8(g >> 8)),
				reduce(uint8(b2 >> 8)),
				0xff,
			})
		}
	}
	return dst
}

// MakePalette derives a palette of at most max colors from m. The result
// is deterministic for identical input and every entry is unique and
// snapped to the VDP channel depth.
func MakePalette(m image.Image, max int) color.Palette {
	q := quantize.MedianCutQuantizer{}
	p := q.Quantize(make(color.Palette, 0, max), Posterize(m))

	// Median-cut averages buckets, so entries can land between hardware
	// levels; snapping afterwards can also collapse entries together.
	seen := make(map[color.RGBA]struct{}, len(p))
	out := make(color.Palette, 0, len(p))
	for _, c := range p {
		r, g, b, _ := c.RGBA()
		rgba := color.RGBA{
			reduce(uint8(r >> 8)),
			reduce(uint8(g >> 8)),
			reduce(uint8(b >> 8)),
			0xff,
		}
		if _, ok := seen[rgba]; ok {
			continue
		}
		seen[rgba] = struct{}{}
		out = append(out, rgba)
	}
	return out
}

// Copied from color.sqDiff
func sqDiff(x, y uint32) uint32 {
	d := x - y
	return (d * d) >> 2
}

// Nearest returns the index of the palette entry closest to c by squared
// distance in RGB space. Ties break to the lowest index so repeated runs
// are bit-identical.
func Nearest(p color.Palette, c color.Color) uint8 {
	cr, cg, cb, _ := c.RGBA()
	best, bestSum := 0, uint32(1<<32-1)
	for i, e := range p {
		er, eg, eb, _ := e.RGBA()
		sum := sqDiff(cr, er) + sqDiff(cg, eg) + sqDiff(cb, eb)
		if sum < bestSum {
			best, bestSum = i, sum
		}
	}
	return uint8(best)
}

// Map assigns every pixel of m its nearest entry in p with no error
// diffusion. This is the undithered quantization path.
func Map(m image.Image, p color.Palette) *image.Paletted {
	b := m.Bounds()
	dst := image.NewPaletted(b, p)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.SetColorIndex(x, y, Nearest(p, m.At(x, y)))
		}
	}
	return dst
}
