package cpu

// CB-prefixed table. The second opcode byte decodes as
//
//	bits 6-7  group: shift/rotate, BIT, RES, SET
//	bits 3-5  shift kind or bit index
//	bits 0-2  operand: B, C, D, E, H, L, [HL], A
//
// Unlike RLCA and friends, every shift here sets Z from its result.

type shiftOp byte

const (
	shiftRLC shiftOp = iota
	shiftRRC
	shiftRL
	shiftRR
	shiftSLA
	shiftSRA
	shiftSWAP
	shiftSRL
)

func initCBOps() {
	for op := 0; op < 256; op++ {
		idx, y := byte(op)&7, byte(op>>3)&7
		switch op >> 6 {
		case 0:
			kind := shiftOp(y)
			cbOps[op] = func(c *CPU) { c.cbShift(kind, idx) }
		case 1:
			cbOps[op] = func(c *CPU) { c.cbBit(y, idx) }
		case 2:
			cbOps[op] = func(c *CPU) { c.cbRes(y, idx) }
		case 3:
			cbOps[op] = func(c *CPU) { c.cbSet(y, idx) }
		}
	}
}

// cbClock charges the full two-byte instruction.
func (c *CPU) cbClock(idx byte) {
	if idx == 6 {
		c.setClock(16)
		return
	}
	c.setClock(8)
}

func (c *CPU) cbShift(kind shiftOp, idx byte) {
	v := c.operand(idx)
	var cy bool
	switch kind {
	case shiftRLC:
		v, cy = rlc(v)
	case shiftRRC:
		v, cy = rrc(v)
	case shiftRL:
		v, cy = rl(v, c.carryBit())
	case shiftRR:
		v, cy = rr(v, c.carryBit())
	case shiftSLA:
		v, cy = sla(v)
	case shiftSRA:
		v, cy = sra(v)
	case shiftSWAP:
		v, cy = swap(v)
	case shiftSRL:
		v, cy = srl(v)
	}
	c.setOperand(idx, v)
	c.setZNHC(v == 0, false, false, cy)
	c.cbClock(idx)
}

// BIT n: Z is set when the bit is clear. Carry is kept.
func (c *CPU) cbBit(bit, idx byte) {
	v := c.operand(idx)
	c.setZNHC(v&(1<<bit) == 0, false, true, c.FlagCarry())
	c.cbClock(idx)
}

func (c *CPU) cbRes(bit, idx byte) {
	c.setOperand(idx, c.operand(idx)&^(1<<bit))
	c.cbClock(idx)
}

func (c *CPU) cbSet(bit, idx byte) {
	c.setOperand(idx, c.operand(idx)|1<<bit)
	c.cbClock(idx)
}
