/*
Package checksum implements the Mega Drive ROM header checksum: the
16-bit sum of every big-endian word from offset 0x200 to the end of the
ROM, truncated to 16 bits.

The console's BIOS never verifies it, but some emulators and flash cart
menus warn when it is wrong, so the build patches it after compiling.
*/
package checksum

import "encoding/binary"

const (
	// Offset is where the checksum word lives in the ROM header.
	Offset = 0x18e

	// start is the first byte covered by the sum; the header and vector
	// table before it are excluded.
	start = 0x200
)

// Sum computes the header checksum of rom. ROMs are padded to an even
// length by the toolchain; a trailing odd byte counts as the high byte
// of a final word.
func Sum(rom []byte) uint16 {
	if len(rom) <= start {
		return 0
	}

	var sum uint16
	data := rom[start:]
	for len(data) >= 2 {
		sum += binary.BigEndian.Uint16(data)
		data = data[2:]
	}
	if len(data) == 1 {
		sum += uint16(data[0]) << 8
	}
	return sum
}

// Patch writes the checksum of rom into its header in place and returns
// the value written. ROMs shorter than the header are left untouched.
func Patch(rom []byte) uint16 {
	sum := Sum(rom)
	if len(rom) >= Offset+2 {
		binary.BigEndian.PutUint16(rom[Offset:], sum)
	}
	return sum
}
