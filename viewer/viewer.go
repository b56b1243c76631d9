/*
Package viewer implements the slide navigation state machine that runs
on the device: a single current-slide index advanced and retreated by
newly-pressed directional input, clamped to the slide table bounds.

The machine is driven by one Tick per frame. Input is polled once per
tick; a slide change redraws the whole slide through the Renderer rather
than diffing tiles, trading bandwidth for simplicity.
*/
package viewer

import (
	"image"
	"io"

	"github.com/joeyparrish/sega-slides/rom"
	"github.com/joeyparrish/sega-slides/tile"
)

// Buttons is the raw directional controller state for one tick.
type Buttons uint8

const (
	// Left is the "previous slide" direction.
	Left Buttons = 1 << iota
	// Right is the "next slide" direction.
	Right
)

// Input is a debounced navigation event derived from controller edges.
type Input int

const (
	Nothing Input = iota
	Previous
	Next
)

// Edges derives the navigation input from buttons pressed this tick that
// were not pressed last tick. Held buttons produce no input. When both
// directions assert on the same tick, next wins.
func Edges(prev, cur Buttons) Input {
	pressed := cur &^ prev
	switch {
	case pressed&Right != 0:
		return Next
	case pressed&Left != 0:
		return Previous
	}
	return Nothing
}

// Deck is the read-only slide table the viewer navigates. It holds
// indices into the packaged bank and never mutates it.
type Deck struct {
	bank *rom.Bank
}

// ReadDeck decodes a packaged bank from r.
func ReadDeck(r io.Reader) (*Deck, error) {
	bank, err := rom.Decode(r)
	if err != nil {
		return nil, err
	}
	return &Deck{bank: bank}, nil
}

// NewDeck wraps an in-memory bank, for converters that preview without
// serializing first.
func NewDeck(bank *rom.Bank) *Deck {
	return &Deck{bank: bank}
}

// Len returns the number of slides in the deck.
func (d *Deck) Len() int {
	return len(d.bank.Slides)
}

// Slide reconstructs slide i from its tile map, tiles, and palette.
func (d *Deck) Slide(i int) *image.Paletted {
	return d.bank.SlideImage(i)
}

// Bounds returns the pixel dimensions of slide i.
func (d *Deck) Bounds(i int) image.Rectangle {
	m := d.bank.Slides[i].Map
	return image.Rect(0, 0, m.W*tile.Width, m.H*tile.Height)
}

// Renderer receives the fully redrawn slide whenever the current slide
// changes. Draw must complete within one tick.
type Renderer interface {
	Draw(i int, m *image.Paletted)
}

// State is the viewer state machine. The current index is its only
// mutable state and always satisfies 0 <= index < deck length.
type State struct {
	deck     *Deck
	renderer Renderer
	current  int
	prev     Buttons
}

// New creates the machine showing slide 0, which is rendered
// immediately; no tick elapses before the first slide is visible.
func New(d *Deck, r Renderer) *State {
	s := &State{deck: d, renderer: r}
	s.draw()
	return s
}

// Current returns the current slide index.
func (s *State) Current() int {
	return s.current
}

// Handle applies one navigation input. Navigation past either end is a
// no-op, not an error: the index stays put and nothing is redrawn. It
// reports whether the slide changed.
func (s *State) Handle(in Input) bool {
	switch in {
	case Next:
		if s.current >= s.deck.Len()-1 {
			return false
		}
		s.current++
	case Previous:
		if s.current <= 0 {
			return false
		}
		s.current--
	default:
		return false
	}
	s.draw()
	return true
}

// Tick polls the controller state once per frame boundary and applies
// any newly asserted direction.
func (s *State) Tick(b Buttons) {
	in := Edges(s.prev, b)
	s.prev = b
	s.Handle(in)
}

func (s *State) draw() {
	if s.renderer == nil || s.deck.Len() == 0 {
		return
	}
	s.renderer.Draw(s.current, s.deck.Slide(s.current))
}
