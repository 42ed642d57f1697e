// Package emu wires the CPU core to a bus and drives it. Each step runs an
// instruction or an interrupt entry, then advances the timer by the cycles
// it took.
package emu

import (
	"errors"
	"fmt"
	"io"
	"math/bits"
	"os"

	"github.com/FabianRolfMatthiasNoll/gbcore/internal/bus"
	"github.com/FabianRolfMatthiasNoll/gbcore/internal/cart"
	"github.com/FabianRolfMatthiasNoll/gbcore/internal/cpu"
	"github.com/FabianRolfMatthiasNoll/gbcore/internal/disasm"
	"github.com/FabianRolfMatthiasNoll/gbcore/internal/translate"
)

var f = translate.From

var ErrNoROM = errors.New(f("no rom loaded"))

// CyclesPerFrame is one DMG video frame in T cycles.
const CyclesPerFrame = 70224

// Interrupt request bits in IE and IF, highest priority first.
const (
	IntVBlank byte = 1 << iota
	IntLCDStat
	IntTimer
	IntSerial
	IntJoypad
)

const vectorBase uint16 = 0x0040

// Machine is a DMG without video or sound: CPU, bus, timer and a loaded
// ROM-only cartridge. It is driven from a single goroutine.
type Machine struct {
	cfg Config

	bus *bus.Bus
	cpu *cpu.CPU

	romPath string
	header  cart.Header
	loaded  bool
}

// New creates a Machine with an empty cartridge area in its reset state.
func New(cfg Config) *Machine {
	cfg.Defaults()
	b := bus.New(nil)
	m := &Machine{
		cfg: cfg,
		bus: b,
		cpu: cpu.New(b, cfg.cpuConfig()),
	}
	m.Reset()
	return m
}

// LoadROM maps rom into 0000-7FFF and resets the machine. Images larger than
// 32KiB need a banking controller and are rejected.
func (m *Machine) LoadROM(rom []byte) error {
	h, err := cart.Parse(rom)
	if err != nil {
		return fmt.Errorf("load rom: %w", err)
	}
	if err := m.bus.LoadROM(rom); err != nil {
		return err
	}
	if !cart.ChecksumOK(rom) {
		m.cfg.Logger.Print(f("emu: header checksum mismatch for %s", h.Title))
	}
	if !h.Flat() {
		m.cfg.Logger.Print(f("emu: %s declares %s; running without banking", h.Title, h.Kind()))
	}
	m.header = h
	m.loaded = true
	m.Reset()
	return nil
}

// LoadROMFromFile reads path and loads it with LoadROM.
func (m *Machine) LoadROMFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := m.LoadROM(data); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	m.romPath = path
	m.cfg.Logger.Print(f("emu: loaded %s", m.header))
	return nil
}

// ROMPath returns the currently loaded ROM file path, if any.
func (m *Machine) ROMPath() string { return m.romPath }

// Header returns the header of the loaded ROM.
func (m *Machine) Header() (cart.Header, error) {
	if !m.loaded {
		return cart.Header{}, ErrNoROM
	}
	return m.header, nil
}

// Reset puts the CPU into its power-on or post-boot state and stops the
// timer, keeping the loaded cartridge and RAM contents.
func (m *Machine) Reset() {
	m.bus.ResetTimer()
	if !m.cfg.PostBoot {
		m.cpu.Reset()
		return
	}
	m.cpu.ResetPostBoot()
	m.bus.WriteByte(bus.AddrIF, 0x01)
	m.bus.WriteByte(bus.AddrIE, 0x00)
}

// CPU returns the core for inspection and direct register access.
func (m *Machine) CPU() *cpu.CPU { return m.cpu }

// Bus returns the address space the core runs against.
func (m *Machine) Bus() *bus.Bus { return m.bus }

// SetSerialWriter connects w to receive bytes written to the serial port
// (FF01/FF02). Test ROMs report their results this way.
func (m *Machine) SetSerialWriter(w io.Writer) { m.bus.SetSerialWriter(w) }

// RequestInterrupt raises the IF bits in mask.
func (m *Machine) RequestInterrupt(mask byte) {
	m.bus.WriteByte(bus.AddrIF, m.bus.ReadByte(bus.AddrIF)|mask)
}

// Step services the highest priority pending interrupt if IME allows it,
// otherwise executes one instruction. The timer then advances by the T
// cycles used, which Step returns.
func (m *Machine) Step() int {
	cyc := m.serviceInterrupt()
	if cyc == 0 {
		cyc = m.cpu.Step()
	}
	m.bus.Tick(cyc)
	return cyc
}

func (m *Machine) serviceInterrupt() int {
	ifReg := m.bus.ReadByte(bus.AddrIF) & 0x1F
	pending := m.bus.ReadByte(bus.AddrIE) & ifReg
	if pending == 0 {
		return 0
	}
	bit := bits.TrailingZeros8(pending)
	if !m.cpu.Interrupt(vectorBase + uint16(bit)*8) {
		// IME clear: HALT ends but the request stays pending
		return 0
	}
	m.bus.WriteByte(bus.AddrIF, ifReg&^(1<<bit))
	return int(m.cpu.LastClockT)
}

// RunCycles steps until at least budget T cycles have elapsed and returns
// the number actually used. The overshoot is at most one instruction.
func (m *Machine) RunCycles(budget int) int {
	used := 0
	for used < budget {
		used += m.Step()
	}
	return used
}

// StepFrame advances one video frame worth of cycles.
func (m *Machine) StepFrame() int { return m.RunCycles(CyclesPerFrame) }

// Disassemble lists n instructions starting at PC.
func (m *Machine) Disassemble(n int) []string {
	return disasm.Lines(m.bus, m.cpu.PC, n)
}
