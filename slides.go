/*
Package segaslides converts PDF slide decks into Sega Mega Drive ROM
assets. Each selected page becomes one slide of deduplicated 8 by 8
tiles with a single 15-color palette; the packaged slide table is paged
through on the console with left and right on the controller.
*/
package segaslides

import (
	"io"
	"log"
)

var discard = log.New(io.Discard, "", 0)

// Converter drives the page conversion pipeline. The cache is optional;
// without one every page is quantized from scratch.
type Converter struct {
	cache  *Cache
	logger *log.Logger
}

// New returns a Converter using the given cache and logger. Either may
// be nil; a nil logger discards all output.
func New(cache *Cache, logger *log.Logger) *Converter {
	if logger == nil {
		logger = discard
	}
	return &Converter{
		cache:  cache,
		logger: logger,
	}
}
