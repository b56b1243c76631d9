package tile

import (
	"image"
	"image/color"
)

// Entry is one name-table cell: which stored tile to draw and whether
// the VDP should flip it.
type Entry struct {
	Tile  int
	HFlip bool
	VFlip bool
}

// Map is the tile arrangement that reconstructs one slide. W and H are
// measured in tiles.
type Map struct {
	W, H    int
	Entries []Entry
}

// EncodeMap partitions m into 8x8 tiles left-to-right, top-to-bottom,
// interning each into s. The raster dimensions must be exact multiples
// of the tile size.
func EncodeMap(s *Store, m *image.Paletted) (*Map, error) {
	b := m.Bounds()
	if b.Dx()%Width != 0 || b.Dy()%Height != 0 {
		return nil, ErrDimensions
	}
	if len(m.Palette) > 16 {
		return nil, ErrPaletteSize
	}

	tm := &Map{
		W:       b.Dx() / Width,
		H:       b.Dy() / Height,
		Entries: make([]Entry, 0, b.Dx()/Width*b.Dy()/Height),
	}
	for ty := 0; ty < tm.H; ty++ {
		for tx := 0; tx < tm.W; tx++ {
			idx, hf, vf := s.Add(fromPaletted(m, tx, ty))
			tm.Entries = append(tm.Entries, Entry{Tile: idx, HFlip: hf, VFlip: vf})
		}
	}
	return tm, nil
}

// DecodeMap renders tm back into a paletted raster using the tiles in s.
// It is the inverse of EncodeMap for any map produced from p.
func DecodeMap(s *Store, tm *Map, p color.Palette) *image.Paletted {
	dst := image.NewPaletted(image.Rect(0, 0, tm.W*Width, tm.H*Height), p)
	for i, e := range tm.Entries {
		t := s.At(e.Tile)
		if e.HFlip {
			t = t.flipH()
		}
		if e.VFlip {
			t = t.flipV()
		}
		tx, ty := i%tm.W, i/tm.W
		for y := 0; y < Height; y++ {
			for x := 0; x < Width; x++ {
				dst.SetColorIndex(tx*Width+x, ty*Height+y, t.pixel(x, y))
			}
		}
	}
	return dst
}
