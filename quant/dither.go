package quant

import (
	"fmt"
	"image"
	"image/color"

	"github.com/makeworld-the-better-one/dither/v2"
)

// Method selects how quantization error is spread across neighboring
// pixels. The set is closed; selection happens once at startup.
type Method int

const (
	// None maps each pixel to its nearest palette entry with no error
	// diffusion.
	None Method = iota
	// FloydSteinberg diffuses error to unprocessed neighbors with the
	// classic 7/16, 3/16, 5/16, 1/16 weights.
	FloydSteinberg
	// Ordered8x8 offsets each pixel by a Bayer 8x8 threshold before
	// quantizing. No sequential dependency between pixels.
	Ordered8x8
	// Checkerboard alternates a fixed threshold offset on (x+y) parity.
	Checkerboard
)

var methodNames = []string{
	None:           "none",
	FloydSteinberg: "floyd-steinberg",
	Ordered8x8:     "ordered-8x8",
	Checkerboard:   "checkerboard",
}

func (m Method) String() string {
	if m < None || int(m) >= len(methodNames) {
		return fmt.Sprintf("method(%d)", int(m))
	}
	return methodNames[m]
}

// ParseMethod maps a configuration string to a Method. Unrecognized
// values are rejected here, before any conversion work begins.
func ParseMethod(s string) (Method, error) {
	for m, name := range methodNames {
		if s == name {
			return Method(m), nil
		}
	}
	return None, fmt.Errorf("quant: unrecognized dithering method %q", s)
}

var checkerboardMatrix = dither.OrderedDitherMatrix{
	Matrix: [][]uint{
		{0, 1},
		{1, 0},
	},
	Max: 2,
}

// Apply quantizes src against p using the selected method. Every method
// is deterministic: identical input yields byte-identical output.
func (m Method) Apply(src image.Image, p color.Palette) *image.Paletted {
	if m == None {
		return Map(src, p)
	}

	d := dither.NewDitherer(p)
	switch m {
	case FloydSteinberg:
		d.Matrix = dither.FloydSteinberg
	case Ordered8x8:
		d.Mapper = dither.Bayer(8, 8, 1.0)
	case Checkerboard:
		d.Mapper = dither.PixelMapperFromMatrix(checkerboardMatrix, 1.0)
	}
	return d.DitherPaletted(src)
}
