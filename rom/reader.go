package rom

import (
	"errors"
	"image/color"
	"io"

	"github.com/joeyparrish/sega-slides/tile"
)

var (
	errBadMagic   = errors.New("rom: not a slide bank")
	errBadVersion = errors.New("rom: unsupported bank version")
	errNotEnough  = errors.New("rom: not enough bank data")
	errBadRef     = errors.New("rom: reference out of range")
)

type decoder struct {
	r    io.Reader
	bank *Bank

	numTiles    int
	numPalettes int
	numSlides   int
}

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

func (d *decoder) readUint16() (uint16, error) {
	var tmp [2]byte
	if err := readFull(d.r, tmp[:]); err != nil {
		return 0, err
	}
	return uint16(tmp[0])<<8 | uint16(tmp[1]), nil
}

func (d *decoder) readHeader() error {
	var tmp [6]byte
	if err := readFull(d.r, tmp[:]); err != nil {
		return err
	}
	if string(tmp[:4]) != magic {
		return errBadMagic
	}
	if tmp[4] != version {
		return errBadVersion
	}
	for _, n := range []*int{&d.numTiles, &d.numPalettes, &d.numSlides} {
		v, err := d.readUint16()
		if err != nil {
			return err
		}
		*n = int(v)
	}
	return nil
}

func (d *decoder) readTiles() error {
	for i := 0; i < d.numTiles; i++ {
		var t tile.Tile
		if err := readFull(d.r, t[:]); err != nil {
			return err
		}
		d.bank.Store.Restore(t)
	}
	return nil
}

func (d *decoder) readPalettes() error {
	for i := 0; i < d.numPalettes; i++ {
		var tmp [2]byte
		if err := readFull(d.r, tmp[:]); err != nil {
			return err
		}
		n := int(tmp[0])
		if n > colorsPerPalette {
			return errPaletteSize
		}
		p := make(color.Palette, n)
		for j := range p {
			w, err := d.readUint16()
			if err != nil {
				return err
			}
			p[j] = cramColor(w)
		}
		d.bank.Palettes = append(d.bank.Palettes, p)
	}
	return nil
}

func (d *decoder) readSlides() error {
	for i := 0; i < d.numSlides; i++ {
		var pal, w, h int
		for _, n := range []*int{&pal, &w, &h} {
			v, err := d.readUint16()
			if err != nil {
				return err
			}
			*n = int(v)
		}
		if pal >= d.numPalettes {
			return errBadRef
		}
		tm := &tile.Map{W: w, H: h, Entries: make([]tile.Entry, 0, w*h)}
		for j := 0; j < w*h; j++ {
			v, err := d.readUint16()
			if err != nil {
				return err
			}
			if int(v&entryIndex) >= d.numTiles {
				return errBadRef
			}
			tm.Entries = append(tm.Entries, tile.Entry{
				Tile:  int(v & entryIndex),
				HFlip: v&entryHFlip != 0,
				VFlip: v&entryVFlip != 0,
			})
		}
		d.bank.Slides = append(d.bank.Slides, Slide{Palette: pal, Map: tm})
	}
	return nil
}

// Decode reads a bank from r. Decoding the output of Encode reproduces
// the original slides, palettes, and tile indices exactly.
func Decode(r io.Reader) (*Bank, error) {
	d := decoder{r: r, bank: NewBank()}
	if err := d.readHeader(); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, errNotEnough
		}
		return nil, err
	}
	for _, step := range []func() error{d.readTiles, d.readPalettes, d.readSlides} {
		if err := step(); err != nil {
			if errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, errNotEnough
			}
			return nil, err
		}
	}
	return d.bank, nil
}
