package tile

import "sync"

// Store is a content-addressed tile store. Adding a tile whose content is
// already present, directly or as a flip of an existing tile, returns the
// existing reference instead of allocating a new one. The store is shared
// by every slide in a deck and is safe for concurrent use.
type Store struct {
	mu    sync.Mutex
	tiles []Tile
	index map[Tile]int
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		index: make(map[Tile]int),
	}
}

// Add interns t and returns its index along with the flips the renderer
// must apply to reconstruct t from the stored tile. Variants are probed
// in a fixed order so repeated runs allocate identical indices.
func (s *Store) Add(t Tile) (idx int, hflip, vflip bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.index[t]; ok {
		return i, false, false
	}
	h := t.flipH()
	if i, ok := s.index[h]; ok {
		return i, true, false
	}
	v := t.flipV()
	if i, ok := s.index[v]; ok {
		return i, false, true
	}
	if i, ok := s.index[h.flipV()]; ok {
		return i, true, true
	}

	i := len(s.tiles)
	s.tiles = append(s.tiles, t)
	s.index[t] = i
	return i, false, false
}

// Len returns the number of distinct tiles allocated so far.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tiles)
}

// At returns the tile at index i.
func (s *Store) At(i int) Tile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tiles[i]
}

// Tiles returns a copy of the store contents in allocation order.
func (s *Store) Tiles() []Tile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Tile(nil), s.tiles...)
}

// Restore appends a tile decoded from a packaged deck, bypassing dedup
// so indices survive a round trip unchanged.
func (s *Store) Restore(t Tile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.index[t]; !ok {
		s.index[t] = len(s.tiles)
	}
	s.tiles = append(s.tiles, t)
}
