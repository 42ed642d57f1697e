package cpu

import (
	"testing"

	"github.com/FabianRolfMatthiasNoll/gbcore/internal/bus"
)

func TestCPU_NopAndPC(t *testing.T) {
	c := newCPUWithROM([]byte{0x00}) // NOP
	if cycles := c.Step(); cycles != 4 {
		t.Fatalf("NOP cycles got %d want 4", cycles)
	}
	if c.PC != 1 {
		t.Fatalf("PC after NOP got %#04x want 0x0001", c.PC)
	}
}

func TestCPU_LD_A_d8_And_XOR_A(t *testing.T) {
	c := newCPUWithROM([]byte{0x3E, 0x12, 0xAF}) // LD A,0x12; XOR A
	c.Step()                                     // LD
	if c.A != 0x12 {
		t.Fatalf("A after LD got %02x want 12", c.A)
	}
	c.Step() // XOR A
	if c.A != 0x00 {
		t.Fatalf("A after XOR got %02x want 00", c.A)
	}
	if (c.F & 0x80) == 0 {
		t.Fatalf("Z flag not set after XOR A")
	}
}

func TestCPU_LD_a16_A_and_LD_A_a16(t *testing.T) {
	// LD A,0x77; LD [0xC000],A; LD A,0x00; LD A,[0xC000]
	prog := []byte{0x3E, 0x77, 0xEA, 0x00, 0xC0, 0x3E, 0x00, 0xFA, 0x00, 0xC0}
	c := newCPUWithROM(prog)
	c.Step()
	c.Step()
	if a := c.Memory().ReadByte(0xC000); a != 0x77 {
		t.Fatalf("WRAM at C000 got %02x want 77", a)
	}
	c.Step()
	if cyc := c.Step(); cyc != 16 || c.A != 0x77 {
		t.Fatalf("LD A,[C000] got A=%02x cyc=%d", c.A, cyc)
	}
}

func TestCPU_JP_and_JR(t *testing.T) {
	rom := make([]byte, 0x8000)
	copy(rom, []byte{0xC3, 0x10, 0x00}) // JP 0x0010
	rom[0x0010] = 0x18                  // JR -2, back onto itself
	rom[0x0011] = 0xFE
	c := New(bus.New(rom), Config{})

	cycles := c.Step()
	if cycles != 16 || c.PC != 0x0010 {
		t.Fatalf("JP cycles=%d PC=%#04x want cycles=16 PC=0x0010", cycles, c.PC)
	}
	if cycles := c.Step(); cycles != 12 || c.PC != 0x0010 {
		t.Fatalf("JR -2 cycles=%d PC=%#04x", cycles, c.PC)
	}
}

func TestCPU_INC_B_Flags(t *testing.T) {
	c := newCPUWithROM([]byte{0x04, 0x04}) // INC B twice
	c.B = 0x0F
	c.F = 0x10
	c.Step()
	if c.B != 0x10 {
		t.Fatalf("INC B result got %02x want 10", c.B)
	}
	if (c.F & 0x20) == 0 {
		t.Fatalf("INC B should set H flag")
	}
	if (c.F & 0x10) == 0 {
		t.Fatalf("INC B should preserve C flag")
	}
	c.B = 0xFF
	c.Step()
	if c.B != 0x00 || (c.F&0x80) == 0 {
		t.Fatalf("INC B to 0 should set Z flag, B=%02x, F=%02x", c.B, c.F)
	}
}

func TestCPU_LD_16bit_and_LDH(t *testing.T) {
	prog := []byte{
		0x21, 0x00, 0xC0, // LD HL,C000
		0x36, 0x5A, // LD [HL],5A
		0x3E, 0x00, // LD A,00
		0xF0, 0x80, // LDH A,[FF80]
		0xE0, 0x81, // LDH [FF81],A
	}
	c := newCPUWithROM(prog)
	c.Memory().WriteByte(0xFF80, 0xA7)

	for range 5 {
		c.Step()
	}
	if v := c.Memory().ReadByte(0xC000); v != 0x5A {
		t.Fatalf("WRAM C000 got %02x want 5A", v)
	}
	if c.A != 0xA7 {
		t.Fatalf("LDH A,[FF80] got %02x want A7", c.A)
	}
	if v := c.Memory().ReadByte(0xFF81); v != 0xA7 {
		t.Fatalf("LDH [FF81],A got %02x want A7", v)
	}
}

func TestCPU_CALL_RET(t *testing.T) {
	// 0000: CALL 0005; NOP; NOP; RET
	rom := make([]byte, 0x8000)
	copy(rom, []byte{0xCD, 0x05, 0x00, 0x00, 0x00, 0xC9})
	c := New(bus.New(rom), Config{})
	c.SP = 0xD000
	if cyc := c.Step(); cyc != 24 || c.PC != 0x0005 {
		t.Fatalf("CALL got PC=%04x cyc=%d", c.PC, cyc)
	}
	if c.SP != 0xCFFE || c.Memory().ReadWord(0xCFFE) != 0x0003 {
		t.Fatalf("CALL pushed %04x at SP=%04x", c.Memory().ReadWord(c.SP), c.SP)
	}
	retCycles := c.Step()
	if c.PC != 0x0003 || retCycles != 16 || c.SP != 0xD000 {
		t.Fatalf("RET did not return to 0003; PC=%04x cyc=%d", c.PC, retCycles)
	}
}

func TestCPU_DAA_AddAndSub(t *testing.T) {
	rom := make([]byte, 0x8000)
	copy(rom, []byte{
		0x3E, 0x45, // LD A,45
		0xC6, 0x38, // ADD A,38
		0x27, // DAA
	})
	copy(rom[0x0010:], []byte{
		0x3E, 0x45, // LD A,45
		0xD6, 0x06, // SUB 06
		0x27, // DAA
	})
	c := New(bus.New(rom), Config{})
	c.Step()
	c.Step()
	c.Step()
	if c.A != 0x83 {
		t.Fatalf("DAA after add got A=%02X want 83", c.A)
	}
	if c.F != 0 {
		t.Fatalf("DAA flags unexpected F=%02X", c.F)
	}

	// 0x45 - 0x06 = 0x3F with H set; DAA subtracts 0x06
	c.PC = 0x0010
	c.Step()
	c.Step()
	c.Step()
	if c.A != 0x39 || (c.F&0x40) == 0 || (c.F&0x20) != 0 {
		t.Fatalf("DAA after sub got A=%02X F=%02X", c.A, c.F)
	}
}

func TestCPU_STOP_ConsumesPadding(t *testing.T) {
	c := newCPUWithROM([]byte{0x10, 0x00, 0x00}) // STOP 00; NOP
	if cycles := c.Step(); cycles != 4 {
		t.Fatalf("STOP cycles got %d want 4", cycles)
	}
	if c.PC != 0x0002 {
		t.Fatalf("PC after STOP got %04X want 0002", c.PC)
	}
	c.Step()
	if c.PC != 0x0003 {
		t.Fatalf("PC after NOP got %04X want 0003", c.PC)
	}
}

func TestCPU_CB_Prefix_CyclesAndBehavior(t *testing.T) {
	rom := make([]byte, 0x8000)
	i := 0
	emit := func(b ...byte) { copy(rom[i:], b); i += len(b) }
	emit(0x21, 0x00, 0xC0) // LD HL,C000
	emit(0x36, 0x80)       // LD [HL],80
	emit(0xCB, 0x7E)       // BIT 7,[HL]
	emit(0xCB, 0xBE)       // RES 7,[HL]
	emit(0xCB, 0xC6)       // SET 0,[HL]
	emit(0xCB, 0x00)       // RLC B

	c := New(bus.New(rom), Config{})
	mem := c.Memory()
	c.Step()
	c.Step()

	cyc := c.Step()
	if cyc != 16 || (c.F&0x80) != 0 {
		t.Fatalf("BIT 7,[HL] cycles/Z got cyc=%d F=%02X", cyc, c.F)
	}
	cyc = c.Step()
	if cyc != 16 || mem.ReadByte(0xC000) != 0x00 {
		t.Fatalf("RES 7,[HL] got cyc=%d mem=%02X", cyc, mem.ReadByte(0xC000))
	}
	cyc = c.Step()
	if cyc != 16 || mem.ReadByte(0xC000) != 0x01 {
		t.Fatalf("SET 0,[HL] got cyc=%d mem=%02X", cyc, mem.ReadByte(0xC000))
	}
	c.B = 0x80
	cyc = c.Step()
	if cyc != 8 || c.B != 0x01 || (c.F&0x10) == 0 {
		t.Fatalf("RLC B got cyc=%d B=%02X F=%02X", cyc, c.B, c.F)
	}
}

func TestCPU_ADD_HL_FlagsAndCarry(t *testing.T) {
	rom := make([]byte, 0x8000)
	i := 0
	emit := func(b ...byte) { copy(rom[i:], b); i += len(b) }
	emit(0x21, 0xFF, 0x0F) // LD HL,0x0FFF
	emit(0x01, 0x01, 0x00) // LD BC,0x0001
	emit(0x09)             // ADD HL,BC
	emit(0x21, 0xFF, 0xFF) // LD HL,0xFFFF
	emit(0x01, 0x01, 0x00) // LD BC,0x0001
	emit(0x09)             // ADD HL,BC

	c := New(bus.New(rom), Config{})
	c.Step()
	c.Step()
	c.F = 0x80
	c.Step() // 0x0FFF + 1 = 0x1000
	if c.HL() != 0x1000 || c.F != 0xA0 {
		t.Fatalf("ADD HL,BC #1 HL=%04X F=%02X (expect Z=1 N=0 H=1 C=0)", c.HL(), c.F)
	}
	c.Step()
	c.Step()
	c.F = 0x00
	c.Step() // 0xFFFF + 1 wraps to 0x0000
	if c.HL() != 0x0000 || c.F != 0x30 {
		t.Fatalf("ADD HL,BC #2 HL=%04X F=%02X (expect Z=0 N=0 H=1 C=1)", c.HL(), c.F)
	}
}

func TestCPU_16bit_INC_DEC_DoNotAffectFlags(t *testing.T) {
	prog := []byte{
		0x03, // INC BC
		0x0B, // DEC BC
		0x23, // INC HL
		0x2B, // DEC HL
		0x13, // INC DE
		0x1B, // DEC DE
		0x33, // INC SP
		0x3B, // DEC SP
	}
	c := newCPUWithROM(prog)
	c.F = 0xF0
	for range prog {
		if cyc := c.Step(); cyc != 8 {
			t.Fatalf("16-bit INC/DEC cycles got %d want 8", cyc)
		}
		if c.F != 0xF0 {
			t.Fatalf("16-bit INC/DEC should not change flags; F=%02X", c.F)
		}
	}
	if c.BC() != 0 || c.DE() != 0 || c.HL() != 0 || c.SP != 0 {
		t.Fatalf("16-bit INC/DEC pairs did not cancel: BC=%04X DE=%04X HL=%04X SP=%04X", c.BC(), c.DE(), c.HL(), c.SP)
	}
}

func TestCPU_Conditional_Cycles(t *testing.T) {
	rom := make([]byte, 0x8000)
	copy(rom, []byte{0x20, 0x02, 0x00, 0x00}) // JR NZ,+2; NOP; NOP
	copy(rom[0x0010:], []byte{0xD2, 0x34, 0x12}) // JP NC,1234
	copy(rom[0x0020:], []byte{0xC4, 0x00, 0x40}) // CALL NZ,4000
	rom[0x4000] = 0xD8                           // RET C
	c := New(bus.New(rom), Config{})
	c.SP = 0xD000

	c.F = 0x00
	if cyc := c.Step(); cyc != 12 || c.PC != 0x0004 {
		t.Fatalf("JR NZ taken cycles/PC: cyc=%d PC=%04X", cyc, c.PC)
	}
	c.PC = 0x0000
	c.F = 0x80
	if cyc := c.Step(); cyc != 8 || c.PC != 0x0002 {
		t.Fatalf("JR NZ not-taken cycles/PC: cyc=%d PC=%04X", cyc, c.PC)
	}

	c.PC = 0x0010
	c.F = 0x00
	if cyc := c.Step(); cyc != 16 || c.PC != 0x1234 {
		t.Fatalf("JP NC taken cycles/PC: cyc=%d PC=%04X", cyc, c.PC)
	}
	c.PC = 0x0010
	c.F = 0x10
	if cyc := c.Step(); cyc != 12 || c.PC != 0x0013 {
		t.Fatalf("JP NC not-taken cycles/PC: cyc=%d PC=%04X", cyc, c.PC)
	}

	c.PC = 0x0020
	c.F = 0x00
	if cyc := c.Step(); cyc != 24 || c.PC != 0x4000 {
		t.Fatalf("CALL NZ taken cycles/PC: cyc=%d PC=%04X", cyc, c.PC)
	}
	c.F = 0x00
	if cyc := c.Step(); cyc != 8 || c.PC != 0x4001 {
		t.Fatalf("RET C not-taken cycles/PC: cyc=%d PC=%04X", cyc, c.PC)
	}
	c.PC = 0x4000
	c.F = 0x10
	if cyc := c.Step(); cyc != 20 || c.PC != 0x0023 {
		t.Fatalf("RET C taken cycles/PC: cyc=%d PC=%04X", cyc, c.PC)
	}
}

func TestCPU_ADC_SBC_HalfCarry(t *testing.T) {
	// ADC: 0x0F + 0x00 + carry = 0x10, H=1, C=0
	c := newCPUWithROM([]byte{0x3E, 0x0F, 0xCE, 0x00})
	c.F = 0x10
	c.Step()
	c.Step()
	if c.A != 0x10 || (c.F&0x20) == 0 || (c.F&0x10) != 0 {
		t.Fatalf("ADC half-carry failed: A=%02X F=%02X", c.A, c.F)
	}
	// SBC: 0x10 - 0x01 - 0 = 0x0F, H=1, C=0
	c2 := newCPUWithROM([]byte{0x3E, 0x10, 0xDE, 0x01})
	c2.Step()
	c2.Step()
	if c2.A != 0x0F || (c2.F&0x20) == 0 || (c2.F&0x10) != 0 {
		t.Fatalf("SBC half-borrow failed: A=%02X F=%02X", c2.A, c2.F)
	}
	// SBC: 0x00 - 0x01 = 0xFF, H=1, C=1
	c3 := newCPUWithROM([]byte{0x3E, 0x00, 0xDE, 0x01})
	c3.Step()
	c3.Step()
	if c3.A != 0xFF || (c3.F&0x20) == 0 || (c3.F&0x10) == 0 {
		t.Fatalf("SBC borrow flags failed: A=%02X F=%02X", c3.A, c3.F)
	}
}

func TestCPU_LD_HL_SP_plus_r8_and_ADD_SP_r8_Flags(t *testing.T) {
	c := newCPUWithROM([]byte{
		0x31, 0x0F, 0xFF, // LD SP,FF0F
		0xF8, 0xFF, // LD HL,SP-1
		0xE8, 0x01, // ADD SP,+1
		0xE8, 0xFE, // ADD SP,-2
	})
	c.Step()
	if cyc := c.Step(); cyc != 12 || c.HL() != 0xFF0E || c.F != 0x30 {
		t.Fatalf("LD HL,SP-1 wrong: HL=%04X F=%02X cyc=%d", c.HL(), c.F, cyc)
	}
	if cyc := c.Step(); cyc != 16 || c.SP != 0xFF10 || c.F != 0x20 {
		t.Fatalf("ADD SP,+1 wrong: SP=%04X F=%02X cyc=%d", c.SP, c.F, cyc)
	}
	if c.Step(); c.SP != 0xFF0E || c.F != 0x10 {
		t.Fatalf("ADD SP,-2 wrong: SP=%04X F=%02X", c.SP, c.F)
	}
}

func TestCPU_POP_AF_MasksFlagsLowNibble(t *testing.T) {
	c := newCPUWithROM([]byte{0xF5, 0xF1, 0x00}) // PUSH AF; POP AF; NOP
	c.A = 0x12
	c.F = 0xF0
	c.SP = 0xFFFE
	c.Step()

	mem := c.Memory()
	mem.WriteByte(c.SP, 0x34)   // F
	mem.WriteByte(c.SP+1, 0x56) // A
	c.Step()
	if c.A != 0x56 {
		t.Fatalf("POP AF A got %02X want 56", c.A)
	}
	if c.F != 0x30 {
		t.Fatalf("POP AF should clear low nibble of F, got F=%02X", c.F)
	}
}

func TestCPU_UnprefixedRotates_ClearZ(t *testing.T) {
	c := newCPUWithROM([]byte{0x07, 0x0F, 0x17, 0x1F}) // RLCA; RRCA; RLA; RRA
	for i, f := range []byte{0x80, 0x80, 0xE0, 0xC0} {
		c.A = 0x00
		c.F = f
		c.Step()
		if c.F&0xE0 != 0 {
			t.Fatalf("rotate %d should clear Z/N/H, F=%02X", i, c.F)
		}
	}
}

func TestCPU_CCF_SCF_CPL_Flags(t *testing.T) {
	c := newCPUWithROM([]byte{
		0x3E, 0x00, // LD A,00
		0x37, // SCF
		0x3F, // CCF
		0x2F, // CPL
	})
	c.F = 0xE0
	c.Step()
	c.Step()
	if c.F != 0x90 {
		t.Fatalf("SCF flags unexpected F=%02X", c.F)
	}
	c.Step()
	if c.F != 0x80 {
		t.Fatalf("CCF flags unexpected F=%02X", c.F)
	}
	c.Step()
	if c.A != 0xFF {
		t.Fatalf("CPL A got %02X want FF", c.A)
	}
	if c.F != 0xE0 {
		t.Fatalf("CPL flags unexpected F=%02X", c.F)
	}
}

func TestCPU_RETI_EnablesIME_AndCycles(t *testing.T) {
	rom := make([]byte, 0x8000)
	rom[0x0040] = 0xD9 // RETI at the vector
	c := New(bus.New(rom), Config{})
	c.PC = 0x0100
	c.SP = 0xFFFE
	c.IME = true

	if !c.Interrupt(0x0040) || c.IME {
		t.Fatalf("interrupt entry failed: PC=%04X IME=%t", c.PC, c.IME)
	}

	cyc := c.Step()
	if cyc != 16 {
		t.Fatalf("RETI cycles got %d want 16", cyc)
	}
	if !c.IME {
		t.Fatalf("RETI should enable IME immediately")
	}
	if c.PC != 0x0100 || c.SP != 0xFFFE {
		t.Fatalf("RETI returned to PC=%04X SP=%04X", c.PC, c.SP)
	}
}

func TestCPU_LD_r_from_HL_CyclesAndBehavior(t *testing.T) {
	loads := []struct {
		op  byte
		reg Reg
	}{
		{0x46, RegB}, {0x4E, RegC}, {0x56, RegD}, {0x5E, RegE},
		{0x66, RegH}, {0x6E, RegL}, {0x7E, RegA},
	}
	rom := make([]byte, 0x8000)
	i := 0
	for _, ld := range loads {
		copy(rom[i:], []byte{0x21, 0x00, 0xC0, ld.op}) // LD HL,C000; LD r,[HL]
		i += 4
	}
	c := New(bus.New(rom), Config{})
	c.Memory().WriteByte(0xC000, 0x5A)

	for _, ld := range loads {
		if cyc := c.Step(); cyc != 12 || c.HL() != 0xC000 {
			t.Fatalf("LD HL,d16 failed: cyc=%d HL=%04X", cyc, c.HL())
		}
		if cyc := c.Step(); cyc != 8 || c.Get(ld.reg) != 0x5A {
			t.Fatalf("LD %s,[HL] cyc=%d got %02X", ld.reg, cyc, c.Get(ld.reg))
		}
	}
}
