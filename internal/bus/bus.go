package bus

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/FabianRolfMatthiasNoll/gbcore/internal/translate"
)

var f = translate.From

var (
	ErrImageTooLarge = errors.New(f("image does not fit the address space"))
	ErrROMTooLarge   = errors.New(f("rom larger than 32KiB without a mapper"))
)

// Memory is the byte and word view of the 16-bit address space that the CPU
// drives. Words are little-endian. Whether a write lands is up to the
// implementation.
type Memory interface {
	ReadByte(addr uint16) byte
	WriteByte(addr uint16, value byte)
	ReadWord(addr uint16) uint16
	WriteWord(addr uint16, value uint16)
}

// I/O registers the bus itself interprets.
const (
	AddrSB uint16 = 0xFF01 // serial data
	AddrSC uint16 = 0xFF02 // serial control
	AddrIF uint16 = 0xFF0F // interrupt request
	AddrIE uint16 = 0xFFFF // interrupt enable

	AddrDIV  uint16 = 0xFF04
	AddrTIMA uint16 = 0xFF05
	AddrTMA  uint16 = 0xFF06
	AddrTAC  uint16 = 0xFF07

	IntTimer  byte = 1 << 2
	IntSerial byte = 1 << 3
)

// Bus is a 64KiB address space. A bus built with New maps a ROM-only
// cartridge: 0000-7FFF ignores writes, E000-FDFF mirrors work RAM,
// FEA0-FEFF is unusable and FF04-FF07 are the timer. NewFlat returns plain
// RAM across the whole range.
type Bus struct {
	mem    [0x10000]byte
	mapped bool
	serial io.Writer

	divInternal    uint16
	tima, tma, tac byte
	// T cycles left before TIMA reloads from TMA, 0 when none is pending
	reloadIn int
}

// New creates a mapped bus with rom at 0x0000.
func New(rom []byte) *Bus {
	b := &Bus{mapped: true}
	copy(b.mem[:0x8000], rom)
	return b
}

// NewFlat creates a bus where every address is readable and writable.
func NewFlat() *Bus {
	return &Bus{}
}

// SetSerialWriter receives every byte shifted out through SB/SC.
func (b *Bus) SetSerialWriter(w io.Writer) { b.serial = w }

func (b *Bus) ReadByte(addr uint16) byte {
	if b.mapped {
		switch {
		case addr >= 0xE000 && addr < 0xFE00: // echo of C000-DDFF
			return b.mem[addr-0x2000]
		case addr >= 0xFEA0 && addr < 0xFF00:
			return 0xFF
		case addr == AddrIF:
			return 0xE0 | b.mem[addr]&0x1F
		case addr >= AddrDIV && addr <= AddrTAC:
			return b.readTimer(addr)
		}
	}
	return b.mem[addr]
}

func (b *Bus) WriteByte(addr uint16, value byte) {
	if b.mapped {
		switch {
		case addr < 0x8000: // ROM, no mapper
			return
		case addr >= 0xE000 && addr < 0xFE00:
			b.mem[addr-0x2000] = value
			return
		case addr >= 0xFEA0 && addr < 0xFF00:
			return
		case addr == AddrIF:
			b.mem[addr] = value & 0x1F
			return
		case addr == AddrSC:
			b.mem[addr] = value
			if value&0x80 != 0 {
				b.transfer()
			}
			return
		case addr >= AddrDIV && addr <= AddrTAC:
			b.writeTimer(addr, value)
			return
		}
	}
	b.mem[addr] = value
}

// transfer shifts SB out at once. The transfer completes whether or not a
// writer is attached.
func (b *Bus) transfer() {
	if b.serial != nil {
		_, _ = b.serial.Write([]byte{b.mem[AddrSB]})
	}
	b.mem[AddrSC] &^= 0x80
	b.mem[AddrIF] |= IntSerial
}

func (b *Bus) ReadWord(addr uint16) uint16 {
	lo := uint16(b.ReadByte(addr))
	hi := uint16(b.ReadByte(addr + 1))
	return lo | hi<<8
}

func (b *Bus) WriteWord(addr uint16, value uint16) {
	b.WriteByte(addr, byte(value))
	b.WriteByte(addr+1, byte(value>>8))
}

// Load copies data to addr, bypassing write protection.
func (b *Bus) Load(addr uint16, data []byte) error {
	if int(addr)+len(data) > len(b.mem) {
		return fmt.Errorf("load %d bytes at %#04x: %w", len(data), addr, ErrImageTooLarge)
	}
	copy(b.mem[addr:], data)
	return nil
}

// LoadROM replaces the cartridge area with rom.
func (b *Bus) LoadROM(rom []byte) error {
	if len(rom) > 0x8000 {
		return fmt.Errorf("load rom of %d bytes: %w", len(rom), ErrROMTooLarge)
	}
	clear(b.mem[:0x8000])
	copy(b.mem[:0x8000], rom)
	return nil
}

// Randomize fills the whole address space from rng.
func (b *Bus) Randomize(rng *rand.Rand) {
	for i := range b.mem {
		b.mem[i] = byte(rng.Uint32())
	}
}
