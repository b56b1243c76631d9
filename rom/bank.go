/*
Package rom packages converted slides into the asset bank consumed by
the on-device viewer: one shared tile store, one name-table style map
per slide, deduplicated palettes, and a slide table preserving page
order.

The serialized layout is big-endian to match the 68000 and is
byte-deterministic: identical input pages and dithering produce an
identical bank.
*/
package rom

import (
	"errors"
	"image"
	"image/color"

	"github.com/joeyparrish/sega-slides/tile"
)

const (
	colorsPerPalette = 16

	// maxTiles is the largest index the 14-bit map entry can reference.
	maxTiles = 1 << 14
)

var (
	// ErrTooManyTiles reports a deck whose deduplicated tiles overflow
	// the map entry index field.
	ErrTooManyTiles = errors.New("rom: tile store exceeds 16384 tiles")

	errPaletteSize = errors.New("rom: palette exceeds 16 colors")
)

// Slide is one converted page: a tile map plus the palette line it
// references.
type Slide struct {
	Palette int
	Map     *tile.Map
}

// Bank is an ordered set of slides sharing one tile store. Slides are
// appended in page order and immutable thereafter.
type Bank struct {
	Store    *tile.Store
	Palettes []color.Palette
	Slides   []Slide
}

// NewBank returns an empty bank.
func NewBank() *Bank {
	return &Bank{Store: tile.NewStore()}
}

// AddPalette interns p, reusing an existing palette line with identical
// CRAM content.
func (b *Bank) AddPalette(p color.Palette) (int, error) {
	if len(p) > colorsPerPalette {
		return 0, errPaletteSize
	}
	key := paletteKey(p)
	for i, q := range b.Palettes {
		if paletteKey(q) == key {
			return i, nil
		}
	}
	b.Palettes = append(b.Palettes, append(color.Palette(nil), p...))
	return len(b.Palettes) - 1, nil
}

// AddSlide tile-encodes one quantized page raster and appends it to the
// slide table. Slides must be added in the requested page order.
func (b *Bank) AddSlide(m *image.Paletted) error {
	pal, err := b.AddPalette(m.Palette)
	if err != nil {
		return err
	}
	tm, err := tile.EncodeMap(b.Store, m)
	if err != nil {
		return err
	}
	if b.Store.Len() > maxTiles {
		return ErrTooManyTiles
	}
	b.Slides = append(b.Slides, Slide{Palette: pal, Map: tm})
	return nil
}

// SlideImage reconstructs the quantized raster for slide i.
func (b *Bank) SlideImage(i int) *image.Paletted {
	s := b.Slides[i]
	return tile.DecodeMap(b.Store, s.Map, b.Palettes[s.Palette])
}

func paletteKey(p color.Palette) [colorsPerPalette]uint16 {
	var key [colorsPerPalette]uint16
	for i, c := range p {
		key[i] = cramWord(c)
	}
	for i := len(p); i < colorsPerPalette; i++ {
		key[i] = 0xffff // unused slot, distinct from black
	}
	return key
}

// cramWord packs c into the CRAM 0000BBB0GGG0RRR0 layout, keeping the
// top three bits of each channel.
func cramWord(c color.Color) uint16 {
	r, g, b, _ := c.RGBA()
	return uint16(b>>4&0x0e00 | g>>8&0x00e0 | r>>12&0x000e)
}

// cramColor expands a CRAM word back to 8-bit channels using the same
// level expansion as the quantizer, so a decoded bank reproduces the
// quantized palette exactly.
func cramColor(w uint16) color.RGBA {
	expand := func(level uint16) uint8 {
		return uint8(int(level) * 255 / 7)
	}
	return color.RGBA{
		expand(w >> 1 & 0x07),
		expand(w >> 5 & 0x07),
		expand(w >> 9 & 0x07),
		0xff,
	}
}
