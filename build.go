package segaslides

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/joeyparrish/sega-slides/checksum"
	"github.com/joeyparrish/sega-slides/rom"
)

// sgdkImage is the docker image used to compile the ROM.
const sgdkImage = "ghcr.io/stephane-d/sgdk:latest"

//go:embed template/main.c
var mainSource string

// pad right-pads or truncates s to exactly n characters, as the fixed
// width ROM header fields require.
func pad(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s + strings.Repeat(" ", n-len(s))
}

// romHead renders the boot header source. All strings are included
// verbatim apart from width fixing; nothing is computed from the slides.
func romHead(h Header) string {
	return fmt.Sprintf(`#include <genesis.h>

__attribute__((externally_visible))
const ROMHeader rom_header = {
  "SEGA MEGA DRIVE ",
  "%s",
  "%s",
  "%s",
  "%s",
  0x0000,
  "J               ",
  0x00000000,
  0x003FFFFF,
  0x00FF0000,
  0x00FFFFFF,
  "  ",
  0xA020,
  0x00000000,
  0x00000000,
  "            ",
  "                                        ",
  "%s"
};
`,
		pad(h.Copyright, 16),
		pad(h.Title, 48),
		pad(h.Title, 48),
		pad(h.Serial, 14),
		pad(h.Region, 16))
}

// Scaffold writes a complete SGDK project for bank into dir: the viewer
// source, the generated boot header, and the slide data.
func Scaffold(bank *rom.Bank, hdr Header, dir string) error {
	for _, sub := range []string{"src", filepath.Join("src", "boot"), "res"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			return err
		}
	}

	if err := os.WriteFile(filepath.Join(dir, "src", "main.c"), []byte(mainSource), 0o644); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "src", "boot", "rom_head.c"), []byte(romHead(hdr)), 0o644); err != nil {
		return err
	}

	header, err := os.Create(filepath.Join(dir, "src", "slide_data.h"))
	if err != nil {
		return err
	}
	defer header.Close()
	if err := bank.WriteCHeader(header); err != nil {
		return err
	}

	source, err := os.Create(filepath.Join(dir, "src", "slide_data.c"))
	if err != nil {
		return err
	}
	defer source.Close()
	return bank.WriteCSource(source)
}

// BuildROM scaffolds an SGDK project for bank, compiles it with the
// SGDK docker image, patches the header checksum, and writes the
// bootable ROM to out.
func (c *Converter) BuildROM(ctx context.Context, bank *rom.Bank, hdr Header, out string) error {
	dir, err := os.MkdirTemp("", "sega-slides-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	if err := Scaffold(bank, hdr, dir); err != nil {
		return err
	}

	c.logger.Printf("pulling %s\n", sgdkImage)
	if err := runCommand(ctx, "docker", "pull", sgdkImage); err != nil {
		return err
	}

	args := []string{"run", "--rm", "-v", dir + ":/src"}
	if runtime.GOOS != "windows" {
		// Run as the invoking user so the build output is not root-owned.
		args = append(args, "-u", fmt.Sprintf("%d:%d", os.Getuid(), os.Getgid()))
	}
	args = append(args, sgdkImage)

	c.logger.Println("compiling ROM")
	if err := runCommand(ctx, "docker", args...); err != nil {
		return err
	}

	image, err := os.ReadFile(filepath.Join(dir, "out", "rom.bin"))
	if err != nil {
		return err
	}
	checksum.Patch(image)

	// Not executable; to SGDK it is an "executable" but it should not be
	// one to the host system.
	return os.WriteFile(out, image, 0o644)
}

func runCommand(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, out)
	}
	return nil
}
