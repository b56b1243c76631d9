package rom

import (
	"fmt"
	"io"
)

// C emission for the external SGDK build step. The generated pair
// slide_data.h/slide_data.c carries the same data as the binary bank;
// the viewer template in the project scaffold consumes it directly.

const cHeader = `#ifndef _RES_SLIDE_DATA_H_
#define _RES_SLIDE_DATA_H_

#include <genesis.h>

typedef struct {
    u16 palette;
    u16 map_w;
    u16 map_h;
    u32 map_offset;
} SlideInfo;

#define SLIDE_MAP_HFLIP 0x8000
#define SLIDE_MAP_VFLIP 0x4000
#define SLIDE_MAP_INDEX 0x3fff

extern const u16 num_slides;
extern const u16 num_slide_tiles;
extern const u32 slide_tiles[][8];
extern const u16 slide_palettes[][16];
extern const u16 slide_maps[];
extern const SlideInfo slides[];

#endif // _RES_SLIDE_DATA_H_
`

// WriteCHeader writes slide_data.h.
func (b *Bank) WriteCHeader(w io.Writer) error {
	_, err := io.WriteString(w, cHeader)
	return err
}

type cWriter struct {
	w   io.Writer
	err error
}

func (c *cWriter) printf(format string, args ...interface{}) {
	if c.err != nil {
		return
	}
	_, c.err = fmt.Fprintf(c.w, format, args...)
}

// WriteCSource writes slide_data.c: tile pixel data, palettes in CRAM
// format, concatenated map words, and the slide table in page order.
func (b *Bank) WriteCSource(w io.Writer) error {
	if b.Store.Len() > maxTiles {
		return ErrTooManyTiles
	}

	c := &cWriter{w: w}

	c.printf("#include \"slide_data.h\"\n\n")
	c.printf("const u16 num_slides = %d;\n", len(b.Slides))
	c.printf("const u16 num_slide_tiles = %d;\n\n", b.Store.Len())

	c.printf("const u32 slide_tiles[][8] = {\n")
	for _, t := range b.Store.Tiles() {
		c.printf("    {")
		for y := 0; y < 8; y++ {
			row := uint32(t[y*4])<<24 | uint32(t[y*4+1])<<16 | uint32(t[y*4+2])<<8 | uint32(t[y*4+3])
			if y > 0 {
				c.printf(", ")
			}
			c.printf("0x%08x", row)
		}
		c.printf("},\n")
	}
	c.printf("};\n\n")

	c.printf("const u16 slide_palettes[][16] = {\n")
	for _, p := range b.Palettes {
		c.printf("    {")
		for i := 0; i < colorsPerPalette; i++ {
			var word uint16
			if i < len(p) {
				word = cramWord(p[i])
			}
			if i > 0 {
				c.printf(", ")
			}
			c.printf("0x%04x", word)
		}
		c.printf("},\n")
	}
	c.printf("};\n\n")

	c.printf("const u16 slide_maps[] = {\n")
	for _, s := range b.Slides {
		for i, e := range s.Map.Entries {
			if i%s.Map.W == 0 {
				if i > 0 {
					c.printf("\n")
				}
				c.printf("   ")
			}
			c.printf(" 0x%04x,", mapWord(e))
		}
		c.printf("\n")
	}
	c.printf("};\n\n")

	c.printf("const SlideInfo slides[] = {\n")
	offset := 0
	for _, s := range b.Slides {
		c.printf("    {%d, %d, %d, %d},\n", s.Palette, s.Map.W, s.Map.H, offset)
		offset += len(s.Map.Entries)
	}
	c.printf("};\n")

	return c.err
}
