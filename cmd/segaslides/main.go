package main

import (
	"context"
	"fmt"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	segaslides "github.com/joeyparrish/sega-slides"
	"github.com/joeyparrish/sega-slides/pdf"
	"github.com/joeyparrish/sega-slides/quant"
	"github.com/joeyparrish/sega-slides/rom"
	"github.com/joeyparrish/sega-slides/viewer"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func newConverter(c *cli.Context) (*segaslides.Converter, func(), error) {
	var cache *segaslides.Cache
	cleanup := func() {}

	if file := c.String("cache"); file != "" {
		var err error
		cache, err = segaslides.OpenCache(file)
		if err != nil {
			return nil, nil, err
		}
		cleanup = func() { cache.Close() }
	}

	return segaslides.New(cache, newLogger(c)), cleanup, nil
}

// convert runs the shared front half of the convert and rom commands:
// range validation, rasterization, quantization, and tile encoding.
func convert(c *cli.Context) (*rom.Bank, error) {
	in, err := segaslides.ParseInput(c.Args().First())
	if err != nil {
		return nil, err
	}

	method, err := quant.ParseMethod(c.String("dithering"))
	if err != nil {
		return nil, err
	}

	count, err := pdf.PageCount(in.Path)
	if err != nil {
		return nil, err
	}
	pages, err := in.Pages(count)
	if err != nil {
		return nil, err
	}

	conv, cleanup, err := newConverter(c)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	scratch, err := os.MkdirTemp("", "sega-slides-pages-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(scratch)

	src := &pdf.Poppler{Path: in.Path, Dir: scratch}
	return conv.Convert(context.Background(), src, pages, method)
}

func ditheringFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "dithering",
		Value: "none",
		Usage: "dithering method: none, floyd-steinberg, ordered-8x8, or checkerboard",
	}
}

func main() {
	app := cli.NewApp()

	app.Name = "segaslides"
	app.Usage = "turn a PDF slide deck into a Sega Mega Drive slide show"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "cache",
			EnvVars: []string{"SEGA_SLIDES_CACHE"},
			Usage:   "path to conversion cache database",
		},
		&cli.StringFlag{
			Name:  "config",
			Usage: "path to TOML ROM header config",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "convert",
			Usage:     "Convert PDF pages into a slide asset bank",
			ArgsUsage: "INPUT.PDF[@START-END] OUTPUT.BIN",
			Flags:     []cli.Flag{ditheringFlag()},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				bank, err := convert(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				f, err := os.Create(c.Args().Get(1))
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer f.Close()

				if err := bank.Encode(f); err != nil {
					return cli.Exit(err, 1)
				}
				return nil
			},
		},
		{
			Name:      "rom",
			Usage:     "Convert PDF pages and compile a bootable ROM via SGDK",
			ArgsUsage: "INPUT.PDF[@START-END] OUTPUT.BIN",
			Flags:     []cli.Flag{ditheringFlag()},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				hdr := segaslides.DefaultHeader()
				if file := c.String("config"); file != "" {
					var err error
					if hdr, err = segaslides.LoadHeader(file); err != nil {
						return cli.Exit(err, 1)
					}
				}

				bank, err := convert(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				conv, cleanup, err := newConverter(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer cleanup()

				if err := conv.BuildROM(context.Background(), bank, hdr, c.Args().Get(1)); err != nil {
					return cli.Exit(err, 1)
				}
				return nil
			},
		},
		{
			Name:      "preview",
			Usage:     "Decode a slide asset bank and write each slide as PNG",
			ArgsUsage: "BANK.BIN DIRECTORY",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				f, err := os.Open(c.Args().First())
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer f.Close()

				deck, err := viewer.ReadDeck(f)
				if err != nil {
					return cli.Exit(err, 1)
				}

				dir := c.Args().Get(1)
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return cli.Exit(err, 1)
				}

				for i := 0; i < deck.Len(); i++ {
					name := filepath.Join(dir, fmt.Sprintf("slide-%03d.png", i+1))
					out, err := os.Create(name)
					if err != nil {
						return cli.Exit(err, 1)
					}
					if err := png.Encode(out, deck.Slide(i)); err != nil {
						out.Close()
						return cli.Exit(err, 1)
					}
					out.Close()
				}
				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
