package viewer

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeyparrish/sega-slides/rom"
)

var testPalette = color.Palette{
	color.RGBA{0, 0, 0, 0xff},
	color.RGBA{255, 0, 0, 0xff},
	color.RGBA{0, 255, 0, 0xff},
	color.RGBA{0, 0, 255, 0xff},
}

func testDeck(t *testing.T, slides int) *Deck {
	t.Helper()
	bank := rom.NewBank()
	for s := 0; s < slides; s++ {
		m := image.NewPaletted(image.Rect(0, 0, 16, 16), testPalette)
		for i := range m.Pix {
			m.Pix[i] = (uint8(i) + uint8(s)) % uint8(len(testPalette))
		}
		require.NoError(t, bank.AddSlide(m))
	}
	return NewDeck(bank)
}

// recorder counts renders so tests can assert on the exact redraw
// behavior of the state machine.
type recorder struct {
	draws []int
}

func (r *recorder) Draw(i int, m *image.Paletted) {
	r.draws = append(r.draws, i)
}

func TestInitialRender(t *testing.T) {
	r := &recorder{}
	s := New(testDeck(t, 3), r)

	assert.Equal(t, 0, s.Current())
	assert.Equal(t, []int{0}, r.draws, "slide 0 must be rendered at startup")
}

func TestNavigation(t *testing.T) {
	r := &recorder{}
	s := New(testDeck(t, 3), r)

	assert.True(t, s.Handle(Next))
	assert.Equal(t, 1, s.Current())
	assert.True(t, s.Handle(Next))
	assert.Equal(t, 2, s.Current())
	assert.True(t, s.Handle(Previous))
	assert.Equal(t, 1, s.Current())

	assert.Equal(t, []int{0, 1, 2, 1}, r.draws)
}

func TestBoundaryClamping(t *testing.T) {
	r := &recorder{}
	s := New(testDeck(t, 3), r)

	// Previous from the first slide is ignored: no transition, no render.
	assert.False(t, s.Handle(Previous))
	assert.Equal(t, 0, s.Current())

	s.Handle(Next)
	s.Handle(Next)
	require.Equal(t, 2, s.Current())

	// Next from the last slide likewise.
	assert.False(t, s.Handle(Next))
	assert.Equal(t, 2, s.Current())

	assert.Equal(t, []int{0, 1, 2}, r.draws)
}

func TestEdges(t *testing.T) {
	assert.Equal(t, Next, Edges(0, Right))
	assert.Equal(t, Previous, Edges(0, Left))
	assert.Equal(t, Nothing, Edges(0, 0))

	// Held buttons are not edges.
	assert.Equal(t, Nothing, Edges(Right, Right))
	assert.Equal(t, Nothing, Edges(Left, Left))

	// Releases are not edges either.
	assert.Equal(t, Nothing, Edges(Right, 0))

	// Simultaneous new presses resolve to next.
	assert.Equal(t, Next, Edges(0, Left|Right))

	// A new press while the other direction is held still registers.
	assert.Equal(t, Next, Edges(Left, Left|Right))
}

func TestTickHeldButtonAdvancesOnce(t *testing.T) {
	r := &recorder{}
	s := New(testDeck(t, 3), r)

	for i := 0; i < 5; i++ {
		s.Tick(Right)
	}
	assert.Equal(t, 1, s.Current(), "holding right must advance a single slide")

	s.Tick(0)
	s.Tick(Right)
	assert.Equal(t, 2, s.Current())
}

func TestReadDeckRoundTrip(t *testing.T) {
	bank := rom.NewBank()
	m := image.NewPaletted(image.Rect(0, 0, 16, 8), testPalette)
	for i := range m.Pix {
		m.Pix[i] = uint8(i) % uint8(len(testPalette))
	}
	require.NoError(t, bank.AddSlide(m))

	var buf bytes.Buffer
	require.NoError(t, bank.Encode(&buf))

	deck, err := ReadDeck(&buf)
	require.NoError(t, err)
	require.Equal(t, 1, deck.Len())

	assert.Equal(t, m.Pix, deck.Slide(0).Pix)
	assert.Equal(t, image.Rect(0, 0, 16, 8), deck.Bounds(0))
}
