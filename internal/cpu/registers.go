package cpu

import (
	"fmt"
	"math/rand/v2"
)

// Flag bits in F. The low nibble is always zero.
const (
	flagZ byte = 1 << 7
	flagN byte = 1 << 6
	flagH byte = 1 << 5
	flagC byte = 1 << 4
)

// Reg names an 8-bit register for byte-addressed access.
type Reg byte

const (
	RegA Reg = iota
	RegB
	RegC
	RegD
	RegE
	RegF
	RegH
	RegL
)

var regNames = [...]string{"A", "B", "C", "D", "E", "F", "H", "L"}

func (r Reg) String() string {
	if int(r) < len(regNames) {
		return regNames[r]
	}
	return fmt.Sprintf("Reg(%d)", byte(r))
}

// Registers is the SM83 register file. The 16-bit pairs are views over the
// byte fields and are never stored separately.
type Registers struct {
	A, F byte
	B, C byte
	D, E byte
	H, L byte

	SP uint16
	PC uint16

	// IME is the interrupt master enable.
	IME bool

	// Cost of the most recently executed instruction. M is always T/4.
	LastClockT uint32
	LastClockM uint32
}

// Reset puts the register file into its power-on state.
func (r *Registers) Reset() { *r = Registers{} }

// ResetPostBoot sets the DMG register values left behind by the boot ROM.
func (r *Registers) ResetPostBoot() {
	*r = Registers{
		A: 0x01, F: 0xB0,
		B: 0x00, C: 0x13,
		D: 0x00, E: 0xD8,
		H: 0x01, L: 0x4D,
		SP: 0xFFFE,
		PC: 0x0100,
	}
}

// Clone returns an independent snapshot.
func (r *Registers) Clone() Registers { return *r }

// Randomize loads every register from rng, keeping F's low nibble clear.
func (r *Registers) Randomize(rng *rand.Rand) {
	r.A, r.F = byte(rng.Uint32()), byte(rng.Uint32())&0xF0
	r.B, r.C = byte(rng.Uint32()), byte(rng.Uint32())
	r.D, r.E = byte(rng.Uint32()), byte(rng.Uint32())
	r.H, r.L = byte(rng.Uint32()), byte(rng.Uint32())
	r.SP = uint16(rng.Uint32())
	r.PC = uint16(rng.Uint32())
	r.IME = rng.IntN(2) == 1
}

func (r *Registers) AF() uint16     { return uint16(r.A)<<8 | uint16(r.F&0xF0) }
func (r *Registers) SetAF(v uint16) { r.A = byte(v >> 8); r.F = byte(v) & 0xF0 }
func (r *Registers) BC() uint16     { return uint16(r.B)<<8 | uint16(r.C) }
func (r *Registers) SetBC(v uint16) { r.B = byte(v >> 8); r.C = byte(v) }
func (r *Registers) DE() uint16     { return uint16(r.D)<<8 | uint16(r.E) }
func (r *Registers) SetDE(v uint16) { r.D = byte(v >> 8); r.E = byte(v) }
func (r *Registers) HL() uint16     { return uint16(r.H)<<8 | uint16(r.L) }
func (r *Registers) SetHL(v uint16) { r.H = byte(v >> 8); r.L = byte(v) }

// Get reads a register by name. Unknown names read as zero.
func (r *Registers) Get(reg Reg) byte {
	switch reg {
	case RegA:
		return r.A
	case RegB:
		return r.B
	case RegC:
		return r.C
	case RegD:
		return r.D
	case RegE:
		return r.E
	case RegF:
		return r.F
	case RegH:
		return r.H
	case RegL:
		return r.L
	}
	return 0
}

// Set writes a register by name. Writes to F drop the low nibble.
func (r *Registers) Set(reg Reg, v byte) {
	switch reg {
	case RegA:
		r.A = v
	case RegB:
		r.B = v
	case RegC:
		r.C = v
	case RegD:
		r.D = v
	case RegE:
		r.E = v
	case RegF:
		r.F = v & 0xF0
	case RegH:
		r.H = v
	case RegL:
		r.L = v
	}
}

func (r *Registers) FlagZero() bool      { return r.F&flagZ != 0 }
func (r *Registers) FlagSub() bool       { return r.F&flagN != 0 }
func (r *Registers) FlagHalfCarry() bool { return r.F&flagH != 0 }
func (r *Registers) FlagCarry() bool     { return r.F&flagC != 0 }

func (r *Registers) SetFlagZero(on bool)      { r.setFlag(flagZ, on) }
func (r *Registers) SetFlagSub(on bool)       { r.setFlag(flagN, on) }
func (r *Registers) SetFlagHalfCarry(on bool) { r.setFlag(flagH, on) }
func (r *Registers) SetFlagCarry(on bool)     { r.setFlag(flagC, on) }

func (r *Registers) setFlag(mask byte, on bool) {
	if on {
		r.F |= mask
	} else {
		r.F &^= mask
	}
}

// setZNHC replaces all four flags at once.
func (r *Registers) setZNHC(z, n, h, carry bool) {
	var f byte
	if z {
		f |= flagZ
	}
	if n {
		f |= flagN
	}
	if h {
		f |= flagH
	}
	if carry {
		f |= flagC
	}
	r.F = f
}

// carryBit is the carry flag as 0 or 1.
func (r *Registers) carryBit() byte {
	if r.F&flagC != 0 {
		return 1
	}
	return 0
}

func (r *Registers) setClock(t uint32) {
	r.LastClockT = t
	r.LastClockM = t / 4
}

func (r Registers) String() string {
	return fmt.Sprintf("A=%02X F=%02X B=%02X C=%02X D=%02X E=%02X H=%02X L=%02X SP=%04X PC=%04X IME=%t",
		r.A, r.F, r.B, r.C, r.D, r.E, r.H, r.L, r.SP, r.PC, r.IME)
}
