package segaslides

import (
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Input is a parsed "path[@start-end]" argument. Start and End are
// 1-based and inclusive; zero values mean the range was omitted and all
// pages are selected.
type Input struct {
	Path  string
	Start int
	End   int
}

var rangeRE = regexp.MustCompile(`^(\d+)-(\d+)$`)

// ParseInput splits an input argument into its path and optional page
// range. A "@" suffix that is not a well-formed range is a configuration
// error rather than a funny filename.
func ParseInput(s string) (Input, error) {
	at := strings.LastIndex(s, "@")
	if at < 0 {
		return Input{Path: s}, nil
	}

	m := rangeRE.FindStringSubmatch(s[at+1:])
	if m == nil {
		return Input{}, configErrorf("malformed page range %q, expected START-END", s[at+1:])
	}

	start, err := strconv.Atoi(m[1])
	if err != nil {
		return Input{}, configErrorf("malformed page range %q: %v", s[at+1:], err)
	}
	end, err := strconv.Atoi(m[2])
	if err != nil {
		return Input{}, configErrorf("malformed page range %q: %v", s[at+1:], err)
	}

	if start < 1 {
		return Input{}, configErrorf("page range starts at page %d, pages are numbered from 1", start)
	}
	if start > end {
		return Input{}, configErrorf("page range %d-%d is backwards", start, end)
	}

	return Input{Path: s[:at], Start: start, End: end}, nil
}

// Pages resolves the range against the document's page count, returning
// the selected 1-based page numbers in order. Out-of-bounds ranges fail
// before any page is touched.
func (in Input) Pages(count int) ([]int, error) {
	start, end := in.Start, in.End
	if start == 0 {
		start, end = 1, count
	}
	if end > count {
		return nil, configErrorf("page range %d-%d exceeds document length %d", start, end, count)
	}

	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages, nil
}

// Header is the static boot metadata compiled verbatim into the ROM
// header. None of it is computed from the slides.
type Header struct {
	Title     string `toml:"title"`
	Copyright string `toml:"copyright"`
	Serial    string `toml:"serial"`
	Region    string `toml:"region"`
}

// DefaultHeader mirrors the stock template header.
func DefaultHeader() Header {
	return Header{
		Title:     "SLIDE SHOW",
		Copyright: "(C) SEGA SLIDES",
		Serial:    "GM 08765309-01",
		Region:    "JUE",
	}
}

// LoadHeader reads a TOML header config, filling omitted fields from the
// defaults and validating the region string.
func LoadHeader(path string) (Header, error) {
	h := DefaultHeader()
	if _, err := toml.DecodeFile(path, &h); err != nil {
		if os.IsNotExist(err) {
			return Header{}, configErrorf("header config %q not found", path)
		}
		return Header{}, configErrorf("header config %q: %v", path, err)
	}
	if _, err := parseRegions(h.Region); err != nil {
		return Header{}, err
	}
	return h, nil
}
