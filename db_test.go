package segaslides

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeyparrish/sega-slides/quant"
)

func cachedPage(t *testing.T) *image.Paletted {
	t.Helper()
	p := color.Palette{
		color.RGBA{0, 0, 0, 0xff},
		color.RGBA{255, 0, 0, 0xff},
		color.RGBA{36, 72, 109, 0xff},
	}
	m := image.NewPaletted(image.Rect(0, 0, 16, 8), p)
	for i := range m.Pix {
		m.Pix[i] = uint8(i) % uint8(len(p))
	}
	return m
}

func TestPalettedBlobRoundTrip(t *testing.T) {
	m := cachedPage(t)

	blob, err := marshalPaletted(m)
	require.NoError(t, err)

	out, err := unmarshalPaletted(blob)
	require.NoError(t, err)
	assert.Equal(t, m.Bounds(), out.Bounds())
	assert.Equal(t, m.Palette, out.Palette)
	assert.Equal(t, m.Pix, out.Pix)
}

func TestUnmarshalPalettedTruncated(t *testing.T) {
	m := cachedPage(t)
	blob, err := marshalPaletted(m)
	require.NoError(t, err)

	_, err = unmarshalPaletted(blob[:len(blob)-1])
	assert.Error(t, err)
}

func TestCacheLookupMiss(t *testing.T) {
	cache, err := OpenCache(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	defer cache.Close()

	m, err := cache.Lookup("no-such-key", quant.None)
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestCacheStoreAndLookup(t *testing.T) {
	cache, err := OpenCache(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	defer cache.Close()

	m := cachedPage(t)
	require.NoError(t, cache.Store("abc123", quant.FloydSteinberg, m))

	out, err := cache.Lookup("abc123", quant.FloydSteinberg)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, m.Pix, out.Pix)
	assert.Equal(t, m.Palette, out.Palette)

	// The same page under a different method is a separate entry.
	out, err = cache.Lookup("abc123", quant.None)
	require.NoError(t, err)
	assert.Nil(t, out)
}
