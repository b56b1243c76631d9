package segaslides

import (
	"context"
	"errors"
	"image"
	"image/draw"
	"runtime"
	"sync"

	"github.com/joeyparrish/sega-slides/pdf"
	"github.com/joeyparrish/sega-slides/quant"
	"github.com/joeyparrish/sega-slides/rom"
	"github.com/joeyparrish/sega-slides/tile"
)

type pageJob struct {
	slot int // position in the requested order
	page int // 1-based page number
}

func (c *Converter) generatePages(ctx context.Context, pages []int) (<-chan pageJob, <-chan error) {
	out := make(chan pageJob)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		for slot, page := range pages {
			select {
			case out <- pageJob{slot: slot, page: page}:
			case <-ctx.Done():
				errc <- errors.New("conversion cancelled")
				return
			}
		}
	}()
	return out, errc
}

func (c *Converter) pageWorker(ctx context.Context, src pdf.Source, method quant.Method, in <-chan pageJob, results []*image.Paletted) <-chan error {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for job := range in {
			m, err := c.convertPage(ctx, src, job.page, method)
			if err != nil {
				errc <- &ConversionError{Page: job.page, Err: err}
				return
			}
			// Each job owns a distinct slot, so no lock is needed.
			results[job.slot] = m
		}
	}()
	return errc
}

// convertPage renders one page and quantizes it, consulting the cache
// keyed by the rendered pixels and the dithering method.
func (c *Converter) convertPage(ctx context.Context, src pdf.Source, page int, method quant.Method) (*image.Paletted, error) {
	m, err := src.Render(ctx, page)
	if err != nil {
		return nil, err
	}
	raster := toRGBA(m)

	var key string
	if c.cache != nil {
		key = rasterKey(raster)
		if cached, err := c.cache.Lookup(key, method); err != nil {
			return nil, err
		} else if cached != nil {
			c.logger.Printf("page %d: cached\n", page)
			return cached, nil
		}
	}

	p := quant.MakePalette(raster, quant.MaxColors)
	q := method.Apply(raster, p)

	if c.cache != nil {
		if err := c.cache.Store(key, method, q); err != nil {
			return nil, err
		}
	}
	c.logger.Printf("page %d: %d colors\n", page, len(p))

	return q, nil
}

func toRGBA(m image.Image) *image.RGBA {
	if r, ok := m.(*image.RGBA); ok {
		return r
	}
	b := m.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, m, b.Min, draw.Src)
	return dst
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Convert renders and quantizes the selected pages concurrently, then
// tile-encodes them sequentially in the requested order so the shared
// tile store allocates identical indices on every run. One slide is
// produced per requested page, in requested order.
func (c *Converter) Convert(ctx context.Context, src pdf.Source, pages []int, method quant.Method) (*rom.Bank, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]*image.Paletted, len(pages))

	jobs, errc := c.generatePages(ctx, pages)
	errcList := []<-chan error{errc}

	workers := runtime.NumCPU()
	if workers > len(pages) {
		workers = len(pages)
	}
	for i := 0; i < workers; i++ {
		errcList = append(errcList, c.pageWorker(ctx, src, method, jobs, results))
	}

	if err := waitForPipeline(errcList...); err != nil {
		return nil, err
	}

	bank := rom.NewBank()
	for i, m := range results {
		if err := bank.AddSlide(m); err != nil {
			if errors.Is(err, tile.ErrDimensions) {
				return nil, configErrorf("page %d: %v", pages[i], err)
			}
			return nil, &PackagingError{Err: err}
		}
	}
	c.logger.Printf("%d slides, %d tiles, %d palettes\n", len(bank.Slides), bank.Store.Len(), len(bank.Palettes))

	return bank, nil
}
