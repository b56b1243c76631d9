/*
Package tile partitions quantized slide rasters into the VDP's 8 by 8
pixel patterns and deduplicates them through a content-addressed store
shared by every slide in a deck.

A tile holds 64 palette indices packed two to a byte, high nibble first,
so each tile can reference only one 16-color palette line.
*/
package tile

import (
	"errors"
	"image"
)

const (
	// Width and Height are the VDP pattern dimensions in pixels.
	Width  = 8
	Height = Width

	pixels = Width * Height

	// Bytes is the size of one packed 4bpp tile.
	Bytes = pixels >> 1
)

var (
	// ErrDimensions reports a raster whose size is not an exact multiple
	// of the tile size. The hardware has no notion of a partial tile, so
	// there is no implicit padding or cropping.
	ErrDimensions = errors.New("tile: raster dimensions not a multiple of 8")

	// ErrPaletteSize reports a raster whose palette does not fit in one
	// 16-color line. The quantizer never produces one; seeing this means
	// an invariant was violated upstream.
	ErrPaletteSize = errors.New("tile: palette exceeds 16 colors")
)

// Tile is one packed 8x8 pattern. It is a value type so it can key the
// store's content-addressed index directly.
type Tile [Bytes]byte

func (t Tile) pixel(x, y int) byte {
	b := t[(y*Width+x)>>1]
	if x&1 == 0 {
		return b >> 4
	}
	return b & 0x0f
}

func (t *Tile) setPixel(x, y int, v byte) {
	i := (y*Width + x) >> 1
	if x&1 == 0 {
		t[i] = t[i]&0x0f | v<<4
	} else {
		t[i] = t[i]&0xf0 | v&0x0f
	}
}

// flipH mirrors the tile left to right.
func (t Tile) flipH() Tile {
	var out Tile
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			out.setPixel(Width-1-x, y, t.pixel(x, y))
		}
	}
	return out
}

// flipV mirrors the tile top to bottom.
func (t Tile) flipV() Tile {
	var out Tile
	for y := 0; y < Height; y++ {
		copy(out[(Height-1-y)*Width>>1:(Height-y)*Width>>1], t[y*Width>>1:(y+1)*Width>>1])
	}
	return out
}

// fromPaletted packs the 8x8 block of m whose top-left tile coordinate
// is (tx, ty).
func fromPaletted(m *image.Paletted, tx, ty int) Tile {
	var t Tile
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x += 2 {
			dx := m.Bounds().Min.X + tx*Width + x
			dy := m.Bounds().Min.Y + ty*Height + y
			t[(y*Width+x)>>1] = m.ColorIndexAt(dx, dy)&0x0f<<4 | m.ColorIndexAt(dx+1, dy)&0x0f
		}
	}
	return t
}
