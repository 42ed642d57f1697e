package cpu

import (
	"github.com/FabianRolfMatthiasNoll/gbcore/internal/bus"
	"github.com/FabianRolfMatthiasNoll/gbcore/internal/disasm"
	"github.com/FabianRolfMatthiasNoll/gbcore/internal/translate"
)

var f = translate.From

// CPU is an SM83 core bound to one memory bus. It is not safe for
// concurrent use; drive each instance from a single goroutine.
type CPU struct {
	Registers

	mem bus.Memory
	cfg Config

	halted bool
	// EI enables IME after the following instruction when cfg.DelayEI is set
	eiPending bool

	// unused opcodes already reported
	warned [256]bool

	clockT, clockM uint64
}

// New creates a CPU in its power-on state.
func New(mem bus.Memory, cfg Config) *CPU {
	cfg.Defaults()
	return &CPU{mem: mem, cfg: cfg}
}

// Memory exposes the underlying bus for tests/tools.
func (c *CPU) Memory() bus.Memory { return c.mem }

// Reset restores the power-on state and clears the cycle totals.
func (c *CPU) Reset() {
	c.Registers.Reset()
	c.halted = false
	c.eiPending = false
	c.clockT, c.clockM = 0, 0
}

// ResetPostBoot sets typical DMG post-boot state.
// Useful when running without a boot ROM.
func (c *CPU) ResetPostBoot() {
	c.Reset()
	c.Registers.ResetPostBoot()
}

// Halted reports whether HALT parked the CPU.
func (c *CPU) Halted() bool { return c.halted }

// Clock returns the T and M cycles consumed since the last reset.
func (c *CPU) Clock() (t, m uint64) { return c.clockT, c.clockM }

// Step executes one instruction and returns its cost in T cycles. The same
// cost is left in LastClockT and LastClockM.
func (c *CPU) Step() int {
	if c.halted {
		c.setClock(4)
		c.account()
		return 4
	}

	pc := c.PC
	pending := c.eiPending
	op := c.fetch8()
	baseOps[op](c)
	if pending && c.eiPending {
		c.IME = true
		c.eiPending = false
	}
	c.account()

	if c.cfg.Trace {
		text, _ := disasm.Disassemble(c.mem, pc)
		c.cfg.Logger.Printf("PC=%04X OP=%02X %-14s cyc=%d %s", pc, op, text, c.LastClockT, c.Registers)
	}
	return int(c.LastClockT)
}

// Exec runs the base-table handler for op against the current state without
// fetching it from memory. PC is expected to point past the opcode.
func (c *CPU) Exec(op byte) { baseOps[op](c) }

// ExecCB runs the CB-prefixed handler for op the same way as Exec.
func (c *CPU) ExecCB(op byte) { cbOps[op](c) }

// Interrupt enters an interrupt handler at vector on behalf of an external
// controller. It wakes a halted CPU either way, but only jumps when IME is
// set. The 20 T-cycle entry cost is reported like an instruction.
func (c *CPU) Interrupt(vector uint16) bool {
	c.halted = false
	if !c.IME {
		return false
	}
	c.IME = false
	c.eiPending = false
	c.push16(c.PC)
	c.PC = vector
	c.setClock(20)
	c.account()
	return true
}

func (c *CPU) account() {
	c.clockT += uint64(c.LastClockT)
	c.clockM += uint64(c.LastClockM)
}

func (c *CPU) read8(addr uint16) byte     { return c.mem.ReadByte(addr) }
func (c *CPU) write8(addr uint16, v byte) { c.mem.WriteByte(addr, v) }

func (c *CPU) fetch8() byte {
	b := c.read8(c.PC)
	c.PC++
	return b
}

func (c *CPU) fetch16() uint16 {
	v := c.mem.ReadWord(c.PC)
	c.PC += 2
	return v
}

// operand reads the 8-bit operand encoded in the low three opcode bits:
// B, C, D, E, H, L, [HL], A.
func (c *CPU) operand(idx byte) byte {
	switch idx & 7 {
	case 0:
		return c.B
	case 1:
		return c.C
	case 2:
		return c.D
	case 3:
		return c.E
	case 4:
		return c.H
	case 5:
		return c.L
	case 6:
		return c.read8(c.HL())
	}
	return c.A
}

func (c *CPU) setOperand(idx byte, v byte) {
	switch idx & 7 {
	case 0:
		c.B = v
	case 1:
		c.C = v
	case 2:
		c.D = v
	case 3:
		c.E = v
	case 4:
		c.H = v
	case 5:
		c.L = v
	case 6:
		c.write8(c.HL(), v)
	case 7:
		c.A = v
	}
}

// pair reads the 16-bit register encoded in bits 4-5: BC, DE, HL, SP.
func (c *CPU) pair(idx byte) uint16 {
	switch idx & 3 {
	case 0:
		return c.BC()
	case 1:
		return c.DE()
	case 2:
		return c.HL()
	}
	return c.SP
}

func (c *CPU) setPair(idx byte, v uint16) {
	switch idx & 3 {
	case 0:
		c.SetBC(v)
	case 1:
		c.SetDE(v)
	case 2:
		c.SetHL(v)
	case 3:
		c.SP = v
	}
}

func (c *CPU) warnUnused(op byte) {
	if c.cfg.SilenceUnused || c.warned[op] {
		return
	}
	c.warned[op] = true
	c.cfg.Logger.Print(f("cpu: unused opcode 0x%02X near 0x%04X executed as NOP", op, c.PC-1))
}
