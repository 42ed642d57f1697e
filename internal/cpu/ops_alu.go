package cpu

type aluOp byte

const (
	aluAdd aluOp = iota
	aluAdc
	aluSub
	aluSbc
	aluAnd
	aluXor
	aluOr
	aluCp
)

// alu applies op to A and v. CP only updates the flags.
func (c *CPU) alu(op aluOp, v byte) {
	var (
		res           byte
		z, n, h, cy   bool
		discardResult bool
	)
	switch op {
	case aluAdd:
		res, z, n, h, cy = add8(c.A, v, 0)
	case aluAdc:
		res, z, n, h, cy = add8(c.A, v, c.carryBit())
	case aluSub:
		res, z, n, h, cy = sub8(c.A, v, 0)
	case aluSbc:
		res, z, n, h, cy = sub8(c.A, v, c.carryBit())
	case aluAnd:
		res, z, n, h, cy = and8(c.A, v)
	case aluXor:
		res, z, n, h, cy = xor8(c.A, v)
	case aluOr:
		res, z, n, h, cy = or8(c.A, v)
	case aluCp:
		_, z, n, h, cy = sub8(c.A, v, 0)
		discardResult = true
	}
	if !discardResult {
		c.A = res
	}
	c.setZNHC(z, n, h, cy)
}

// ALU A,r and ALU A,[HL].
func (c *CPU) aluOperand(op aluOp, src byte) {
	c.alu(op, c.operand(src))
	if src == 6 {
		c.setClock(8)
		return
	}
	c.setClock(4)
}

// ALU A,d8.
func (c *CPU) aluImm(op aluOp) {
	c.alu(op, c.fetch8())
	c.setClock(8)
}

// INC r / INC [HL]. Carry is left alone.
func (c *CPU) inc8(idx byte) {
	old := c.operand(idx)
	v := old + 1
	c.setOperand(idx, v)
	c.setZNHC(v == 0, false, (old&0x0F)+1 > 0x0F, c.FlagCarry())
	if idx == 6 {
		c.setClock(12)
		return
	}
	c.setClock(4)
}

// DEC r / DEC [HL]. Carry is left alone.
func (c *CPU) dec8(idx byte) {
	old := c.operand(idx)
	v := old - 1
	c.setOperand(idx, v)
	c.setZNHC(v == 0, true, old&0x0F == 0, c.FlagCarry())
	if idx == 6 {
		c.setClock(12)
		return
	}
	c.setClock(4)
}

func (c *CPU) inc16(rr byte) {
	c.setPair(rr, c.pair(rr)+1)
	c.setClock(8)
}

func (c *CPU) dec16(rr byte) {
	c.setPair(rr, c.pair(rr)-1)
	c.setClock(8)
}

// ADD HL,rr keeps Z from before the instruction.
func (c *CPU) addHL(rr byte) {
	res, h, cy := add16(c.HL(), c.pair(rr))
	c.SetHL(res)
	c.setZNHC(c.FlagZero(), false, h, cy)
	c.setClock(8)
}

// ADD SP,r8
func opADDSPn(c *CPU) {
	res, h, cy := addSPOffset(c.SP, c.fetch8())
	c.SP = res
	c.setZNHC(false, false, h, cy)
	c.setClock(16)
}

// The accumulator rotates always clear Z, unlike their CB counterparts.

func opRLCA(c *CPU) {
	var cy bool
	c.A, cy = rlc(c.A)
	c.setZNHC(false, false, false, cy)
	c.setClock(4)
}

func opRRCA(c *CPU) {
	var cy bool
	c.A, cy = rrc(c.A)
	c.setZNHC(false, false, false, cy)
	c.setClock(4)
}

func opRLA(c *CPU) {
	var cy bool
	c.A, cy = rl(c.A, c.carryBit())
	c.setZNHC(false, false, false, cy)
	c.setClock(4)
}

func opRRA(c *CPU) {
	var cy bool
	c.A, cy = rr(c.A, c.carryBit())
	c.setZNHC(false, false, false, cy)
	c.setClock(4)
}

// opDAA adjusts A using the flags left by the previous instruction. A single
// correction is applied: 0x06 when the low digit needs it, otherwise 0x60.
// Z is taken from the unmasked result, so an adjustment that reaches 0x100
// leaves Z clear and sets C.
func opDAA(c *CPU) {
	a := int(c.A)
	if c.FlagSub() {
		if c.FlagHalfCarry() {
			a -= 0x06
		} else {
			a -= 0x60
		}
	} else {
		if c.FlagHalfCarry() || a&0x0F > 0x09 {
			a += 0x06
		} else {
			a += 0x60
		}
	}
	cy := a&0x100 != 0 || c.FlagCarry()
	c.A = byte(a)
	c.setZNHC(a == 0, c.FlagSub(), false, cy)
	c.setClock(4)
}

func opCPL(c *CPU) {
	c.A = ^c.A
	c.F |= flagN | flagH
	c.setClock(4)
}

func opSCF(c *CPU) {
	c.F = c.F&flagZ | flagC
	c.setClock(4)
}

func opCCF(c *CPU) {
	c.F = c.F&flagZ | (c.F&flagC ^ flagC)
	c.setClock(4)
}
