package segaslides

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInput(t *testing.T) {
	in, err := ParseInput("deck.pdf")
	require.NoError(t, err)
	assert.Equal(t, Input{Path: "deck.pdf"}, in)

	in, err = ParseInput("deck.pdf@2-3")
	require.NoError(t, err)
	assert.Equal(t, Input{Path: "deck.pdf", Start: 2, End: 3}, in)

	in, err = ParseInput("deck.pdf@7-7")
	require.NoError(t, err)
	assert.Equal(t, Input{Path: "deck.pdf", Start: 7, End: 7}, in)
}

func TestParseInputInvalid(t *testing.T) {
	for _, s := range []string{
		"deck.pdf@3-2",  // backwards
		"deck.pdf@0-2",  // pages are 1-based
		"deck.pdf@a-b",  // non-numeric
		"deck.pdf@1",    // missing end
		"deck.pdf@1-2-3",
		"deck.pdf@",
	} {
		_, err := ParseInput(s)
		require.Error(t, err, "expected %q to be rejected", s)
		assert.IsType(t, &ConfigError{}, err)
	}
}

func TestInputPages(t *testing.T) {
	pages, err := Input{Path: "x"}.Pages(3)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, pages, "omitted range selects all pages")

	pages, err = Input{Path: "x", Start: 2, End: 3}.Pages(3)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, pages)
}

func TestInputPagesOutOfBounds(t *testing.T) {
	_, err := Input{Path: "x", Start: 1, End: 99}.Pages(3)
	require.Error(t, err)
	assert.IsType(t, &ConfigError{}, err)
}

func TestParseRegions(t *testing.T) {
	for _, s := range []string{"J", "U", "E", "JUE", "EU"} {
		_, err := parseRegions(s)
		assert.NoError(t, err, "region %q", s)
	}
	for _, s := range []string{"", "X", "JJ", "JUEX"} {
		_, err := parseRegions(s)
		assert.Error(t, err, "region %q", s)
	}
}

func TestDefaultHeader(t *testing.T) {
	h := DefaultHeader()
	_, err := parseRegions(h.Region)
	assert.NoError(t, err)
}

func TestLoadHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slides.toml")
	require.NoError(t, os.WriteFile(path, []byte("title = \"MY TALK\"\nregion = \"U\"\n"), 0o644))

	h, err := LoadHeader(path)
	require.NoError(t, err)
	assert.Equal(t, "MY TALK", h.Title)
	assert.Equal(t, "U", h.Region)
	// Omitted fields keep their defaults.
	assert.Equal(t, DefaultHeader().Serial, h.Serial)
}

func TestLoadHeaderInvalid(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadHeader(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)

	path := filepath.Join(dir, "bad-region.toml")
	require.NoError(t, os.WriteFile(path, []byte("region = \"XYZ\"\n"), 0o644))
	_, err = LoadHeader(path)
	assert.Error(t, err)
}
