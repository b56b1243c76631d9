package segaslides

import (
	"bytes"
	"crypto/sha1"
	"database/sql"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	_ "github.com/mattn/go-sqlite3"

	"github.com/joeyparrish/sega-slides/quant"
)

// Cache stores quantized page rasters keyed by the SHA-1 of the rendered
// page and the dithering method, so rebuilding an unchanged deck skips
// the quantization work. Conversion output is identical with or without
// a cache.
type Cache struct {
	db *sql.DB
}

// OpenCache opens or creates a cache database at file.
func OpenCache(file string) (*Cache, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS page (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL, method TEXT NOT NULL, data BLOB NOT NULL, UNIQUE(sha1, method))"); err != nil {
		return nil, err
	}

	return &Cache{db: db}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// rasterKey hashes the raw pixels of a rendered page.
func rasterKey(m *image.RGBA) string {
	h := sha1.New()
	h.Write(m.Pix)
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Lookup returns the cached quantized raster for key and method, or nil
// on a miss.
func (c *Cache) Lookup(key string, method quant.Method) (*image.Paletted, error) {
	var blob []byte
	err := c.db.QueryRow("SELECT data FROM page WHERE sha1 = ? AND method = ?", key, method.String()).Scan(&blob)
	switch {
	case err == sql.ErrNoRows:
		return nil, nil
	case err != nil:
		return nil, err
	}
	return unmarshalPaletted(blob)
}

// Store records the quantized raster for key and method, replacing any
// previous entry.
func (c *Cache) Store(key string, method quant.Method, m *image.Paletted) error {
	blob, err := marshalPaletted(m)
	if err != nil {
		return err
	}
	_, err = c.db.Exec("INSERT OR REPLACE INTO page (sha1, method, data) VALUES (?, ?, ?)", key, method.String(), blob)
	return err
}

// Cache blob layout: u16 width, u16 height, u8 palette length, then one
// RGB triple per entry, then the raw index bytes. Big-endian, same as
// the bank format.

func marshalPaletted(m *image.Paletted) ([]byte, error) {
	b := m.Bounds()
	buf := new(bytes.Buffer)

	for _, v := range []uint16{uint16(b.Dx()), uint16(b.Dy())} {
		if err := binary.Write(buf, binary.BigEndian, v); err != nil {
			return nil, err
		}
	}
	if err := buf.WriteByte(byte(len(m.Palette))); err != nil {
		return nil, err
	}
	for _, c := range m.Palette {
		r, g, b2, _ := c.RGBA()
		if _, err := buf.Write([]byte{byte(r >> 8), byte(g >> 8), byte(b2 >> 8)}); err != nil {
			return nil, err
		}
	}
	if _, err := buf.Write(m.Pix); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func unmarshalPaletted(blob []byte) (*image.Paletted, error) {
	r := bytes.NewReader(blob)

	var w, h uint16
	for _, v := range []*uint16{&w, &h} {
		if err := binary.Read(r, binary.BigEndian, v); err != nil {
			return nil, err
		}
	}
	n, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	p := make(color.Palette, n)
	for i := range p {
		var rgb [3]byte
		if _, err := io.ReadFull(r, rgb[:]); err != nil {
			return nil, err
		}
		p[i] = color.RGBA{rgb[0], rgb[1], rgb[2], 0xff}
	}

	m := image.NewPaletted(image.Rect(0, 0, int(w), int(h)), p)
	if len(m.Pix) != r.Len() {
		return nil, errors.New("cache: truncated page entry")
	}
	if _, err := io.ReadFull(r, m.Pix); err != nil {
		return nil, err
	}
	return m, nil
}
