// Package cart decodes the cartridge header at 0x0100-0x014F. The core runs
// ROM-only images, so the header is used to describe and vet an image before
// it is mapped, not to pick a banking controller.
package cart

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/FabianRolfMatthiasNoll/gbcore/internal/translate"
)

var f = translate.From

var ErrShortROM = errors.New(f("rom too small to contain a header"))

const (
	headerEnd = 0x014F

	// FlatSize is the largest image that maps without a banking controller.
	FlatSize = 0x8000
)

var nintendoLogo = [48]byte{
	0xCE, 0xED, 0x66, 0x66, 0xCC, 0x0D, 0x00, 0x0B, 0x03, 0x73, 0x00, 0x83, 0x00, 0x0C, 0x00, 0x0D,
	0x00, 0x08, 0x11, 0x1F, 0x88, 0x89, 0x00, 0x0E, 0xDC, 0xCC, 0x6E, 0xE6, 0xDD, 0xDD, 0xD9, 0x99,
	0xBB, 0xBB, 0x67, 0x63, 0x6E, 0x0E, 0xEC, 0xCC, 0xDD, 0xDC, 0x99, 0x9F, 0xBB, 0xB9, 0x33, 0x3E,
}

type Header struct {
	Title          string // trimmed ASCII, 0x0134-0x0143
	CGBFlag        byte   // 0x0143
	CartType       byte   // 0x0147
	ROMSizeCode    byte   // 0x0148
	RAMSizeCode    byte   // 0x0149
	HeaderChecksum byte   // 0x014D
	GlobalChecksum uint16 // 0x014E-0x014F, big-endian

	ROMSize int
	RAMSize int
	LogoOK  bool
}

// Parse reads the header of rom. Only a truncated image is an error; a bad
// logo or checksum is reported through the returned Header.
func Parse(rom []byte) (Header, error) {
	if len(rom) <= headerEnd {
		return Header{}, fmt.Errorf("parse header of %d bytes: %w", len(rom), ErrShortROM)
	}
	h := Header{
		Title:          strings.TrimRight(string(rom[0x0134:0x0144]), "\x00"),
		CGBFlag:        rom[0x0143],
		CartType:       rom[0x0147],
		ROMSizeCode:    rom[0x0148],
		RAMSizeCode:    rom[0x0149],
		HeaderChecksum: rom[0x014D],
		GlobalChecksum: binary.BigEndian.Uint16(rom[0x014E:0x0150]),
		LogoOK:         [48]byte(rom[0x0104:0x0134]) == nintendoLogo,
	}
	h.ROMSize = romSize(h.ROMSizeCode)
	h.RAMSize = ramSize(h.RAMSizeCode)
	return h, nil
}

// ChecksumOK verifies the header checksum over 0x0134-0x014C.
func ChecksumOK(rom []byte) bool {
	if len(rom) <= 0x014D {
		return false
	}
	var sum byte
	for _, b := range rom[0x0134:0x014D] {
		sum = sum - b - 1
	}
	return sum == rom[0x014D]
}

// Flat reports whether the image declares no banking hardware.
func (h Header) Flat() bool {
	return h.CartType == 0x00 && h.ROMSize <= FlatSize
}

// Kind names the controller family from the cartridge type byte.
func (h Header) Kind() string {
	switch h.CartType {
	case 0x00:
		return "ROM ONLY"
	case 0x01, 0x02, 0x03:
		return "MBC1"
	case 0x05, 0x06:
		return "MBC2"
	case 0x0F, 0x10, 0x11, 0x12, 0x13:
		return "MBC3"
	case 0x19, 0x1A, 0x1B, 0x1C, 0x1D, 0x1E:
		return "MBC5"
	}
	return fmt.Sprintf("type $%02X", h.CartType)
}

func (h Header) String() string {
	return fmt.Sprintf("%q %s rom=%dKiB ram=%dKiB", h.Title, h.Kind(), h.ROMSize/1024, h.RAMSize/1024)
}

func romSize(code byte) int {
	switch {
	case code <= 0x08:
		return FlatSize << code
	case code == 0x52:
		return 1152 * 1024
	case code == 0x53:
		return 1280 * 1024
	case code == 0x54:
		return 1536 * 1024
	}
	return 0
}

func ramSize(code byte) int {
	switch code {
	case 0x02:
		return 8 * 1024
	case 0x03:
		return 32 * 1024
	case 0x04:
		return 128 * 1024
	case 0x05:
		return 64 * 1024
	}
	return 0
}
