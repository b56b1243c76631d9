package rom

import (
	"encoding/binary"
	"io"

	"github.com/joeyparrish/sega-slides/tile"
)

// Bank layout, all multi-byte values big-endian:
//
//	magic "SGSL", version byte, pad byte
//	u16 tile count, u16 palette count, u16 slide count
//	tiles: 32 bytes each, in store order
//	palettes: u8 entry count, pad byte, then one CRAM word per entry
//	slides: u16 palette ref, u16 map width, u16 map height, then one
//	    u16 map entry per cell in raster order
//
// A map entry carries the horizontal flip in bit 15, the vertical flip
// in bit 14 and the tile index in the low 14 bits. The device-side
// loader rebases indices into VDP name-table format.
const (
	magic   = "SGSL"
	version = 1

	entryHFlip = 1 << 15
	entryVFlip = 1 << 14
	entryIndex = entryVFlip - 1
)

type encoder struct {
	w io.Writer
}

func (e *encoder) writeUint16(v uint16) error {
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], v)
	_, err := e.w.Write(tmp[:])
	return err
}

func (e *encoder) writeHeader(b *Bank) error {
	if _, err := io.WriteString(e.w, magic); err != nil {
		return err
	}
	if _, err := e.w.Write([]byte{version, 0}); err != nil {
		return err
	}
	for _, v := range []uint16{uint16(b.Store.Len()), uint16(len(b.Palettes)), uint16(len(b.Slides))} {
		if err := e.writeUint16(v); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) writeTiles(b *Bank) error {
	for _, t := range b.Store.Tiles() {
		if _, err := e.w.Write(t[:]); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) writePalettes(b *Bank) error {
	for _, p := range b.Palettes {
		if _, err := e.w.Write([]byte{byte(len(p)), 0}); err != nil {
			return err
		}
		for _, c := range p {
			if err := e.writeUint16(cramWord(c)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *encoder) writeSlides(b *Bank) error {
	for _, s := range b.Slides {
		for _, v := range []uint16{uint16(s.Palette), uint16(s.Map.W), uint16(s.Map.H)} {
			if err := e.writeUint16(v); err != nil {
				return err
			}
		}
		for _, entry := range s.Map.Entries {
			if err := e.writeUint16(mapWord(entry)); err != nil {
				return err
			}
		}
	}
	return nil
}

func mapWord(e tile.Entry) uint16 {
	w := uint16(e.Tile) & entryIndex
	if e.HFlip {
		w |= entryHFlip
	}
	if e.VFlip {
		w |= entryVFlip
	}
	return w
}

// Encode writes b to w in bank format.
func (b *Bank) Encode(w io.Writer) error {
	if b.Store.Len() > maxTiles {
		return ErrTooManyTiles
	}
	e := encoder{w: w}
	if err := e.writeHeader(b); err != nil {
		return err
	}
	if err := e.writeTiles(b); err != nil {
		return err
	}
	if err := e.writePalettes(b); err != nil {
		return err
	}
	return e.writeSlides(b)
}
