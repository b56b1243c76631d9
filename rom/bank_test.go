package rom

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Channels must sit on the 3-bit hardware levels or CRAM packing would
// lose precision and the round trip could not be exact.
var testPalette = color.Palette{
	color.RGBA{0, 0, 0, 0xff},
	color.RGBA{255, 0, 0, 0xff},
	color.RGBA{0, 255, 0, 0xff},
	color.RGBA{36, 72, 109, 0xff},
}

func testSlide(t *testing.T, seed uint8) *image.Paletted {
	t.Helper()
	m := image.NewPaletted(image.Rect(0, 0, 32, 16), testPalette)
	for i := range m.Pix {
		m.Pix[i] = (uint8(i) + seed) % uint8(len(testPalette))
	}
	return m
}

func testBank(t *testing.T) *Bank {
	t.Helper()
	b := NewBank()
	for seed := uint8(0); seed < 3; seed++ {
		require.NoError(t, b.AddSlide(testSlide(t, seed)))
	}
	return b
}

func TestAddSlideOrder(t *testing.T) {
	b := testBank(t)
	require.Len(t, b.Slides, 3)

	for seed := uint8(0); seed < 3; seed++ {
		assert.Equal(t, testSlide(t, seed).Pix, b.SlideImage(int(seed)).Pix, "slide %d out of order", seed)
	}
}

func TestAddPaletteDedup(t *testing.T) {
	b := NewBank()

	i, err := b.AddPalette(testPalette)
	require.NoError(t, err)
	j, err := b.AddPalette(append(color.Palette(nil), testPalette...))
	require.NoError(t, err)
	assert.Equal(t, i, j)

	k, err := b.AddPalette(color.Palette{color.RGBA{255, 255, 255, 0xff}})
	require.NoError(t, err)
	assert.NotEqual(t, i, k)

	assert.Len(t, b.Palettes, 2)
}

func TestAddPaletteTooBig(t *testing.T) {
	p := make(color.Palette, 17)
	for i := range p {
		p[i] = color.RGBA{uint8(i), 0, 0, 0xff}
	}
	_, err := NewBank().AddPalette(p)
	assert.Error(t, err)
}

func TestEncodeDeterministic(t *testing.T) {
	var a, b bytes.Buffer
	require.NoError(t, testBank(t).Encode(&a))
	require.NoError(t, testBank(t).Encode(&b))
	assert.Equal(t, a.Bytes(), b.Bytes())
}

func TestRoundTrip(t *testing.T) {
	b := testBank(t)

	var buf bytes.Buffer
	require.NoError(t, b.Encode(&buf))

	got, err := Decode(&buf)
	require.NoError(t, err)

	require.Len(t, got.Slides, len(b.Slides))
	assert.Equal(t, b.Store.Len(), got.Store.Len())
	assert.Equal(t, b.Palettes, got.Palettes)

	for i := range b.Slides {
		assert.Equal(t, b.Slides[i].Palette, got.Slides[i].Palette)
		assert.Equal(t, b.Slides[i].Map, got.Slides[i].Map)

		want := b.SlideImage(i)
		have := got.SlideImage(i)
		assert.Equal(t, want.Pix, have.Pix, "slide %d pixels differ after round trip", i)
		assert.Equal(t, want.Palette, have.Palette, "slide %d palette differs after round trip", i)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	for _, blob := range [][]byte{
		nil,
		[]byte("MEGA"),
		[]byte("SGSL\x02\x00"),
		[]byte("SGSL\x01\x00\x00\x01"),
	} {
		_, err := Decode(bytes.NewReader(blob))
		assert.Error(t, err)
	}
}

func TestCramRoundTrip(t *testing.T) {
	for _, c := range testPalette {
		assert.Equal(t, c, color.Color(cramColor(cramWord(c))))
	}
}

func TestWriteCSource(t *testing.T) {
	b := testBank(t)

	var buf bytes.Buffer
	require.NoError(t, b.WriteCSource(&buf))
	src := buf.String()

	assert.True(t, strings.Contains(src, "const u16 num_slides = 3;"))
	assert.True(t, strings.Contains(src, "const u32 slide_tiles[][8]"))
	assert.True(t, strings.Contains(src, "const SlideInfo slides[]"))

	var again bytes.Buffer
	require.NoError(t, testBank(t).WriteCSource(&again))
	assert.Equal(t, src, again.String())
}
