/*
Package pdf is the rasterized page source boundary. Pages are rendered
by an external tool (pdftoppm from poppler-utils) and scaled onto the
Mega Drive's 320 by 224 pixel plane; this package never interprets PDF
content itself beyond counting pages.
*/
package pdf

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	xdraw "golang.org/x/image/draw"
)

// Width and Height are the target resolution: the 40 by 28 tile plane.
const (
	Width  = 320
	Height = 224
)

// PageCount returns the number of pages in the PDF at path, so page
// ranges can be validated before any rasterization work begins.
func PageCount(path string) (int, error) {
	return api.PageCountFile(path)
}

// Source produces one full-color raster per selected page at the target
// resolution.
type Source interface {
	Render(ctx context.Context, page int) (image.Image, error)
}

// Poppler renders pages by shelling out to pdftoppm, one page per
// invocation so pages can render concurrently.
type Poppler struct {
	// Path is the input PDF.
	Path string
	// Dir is a scratch directory for intermediate page images.
	Dir string
}

// Render rasterizes the 1-based page and fits it to the target plane.
func (p *Poppler) Render(ctx context.Context, page int) (image.Image, error) {
	prefix := filepath.Join(p.Dir, "page-"+strconv.Itoa(page))

	cmd := exec.CommandContext(ctx, "pdftoppm",
		"-png",
		"-f", strconv.Itoa(page),
		"-l", strconv.Itoa(page),
		"-singlefile",
		p.Path,
		prefix,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("pdf: pdftoppm page %d: %w: %s", page, err, out)
	}

	f, err := os.Open(prefix + ".png")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("pdf: decode page %d: %w", page, err)
	}
	return Fit(m), nil
}

// Fit scales m to fit the target plane preserving aspect ratio and
// centers it on a black letterbox, so the output is always exactly
// 320x224 and tile-aligned.
func Fit(m image.Image) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, Width, Height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	b := m.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return dst
	}

	w, h := Width, b.Dy()*Width/b.Dx()
	if h > Height {
		w, h = b.Dx()*Height/b.Dy(), Height
	}
	x := (Width - w) / 2
	y := (Height - h) / 2

	xdraw.CatmullRom.Scale(dst, image.Rect(x, y, x+w, y+h), m, b, xdraw.Src, nil)
	return dst
}
