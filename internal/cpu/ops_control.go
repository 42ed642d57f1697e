package cpu

// cond is a branch condition as encoded in bits 3-4 of the opcode.
type cond byte

const (
	condNZ cond = iota
	condZ
	condNC
	condC
)

func (c *CPU) check(cc cond) bool {
	switch cc {
	case condNZ:
		return !c.FlagZero()
	case condZ:
		return c.FlagZero()
	case condNC:
		return !c.FlagCarry()
	}
	return c.FlagCarry()
}

// stackPairs lists the PUSH/POP register pairs as (high, low).
var stackPairs = [4][2]Reg{
	{RegB, RegC},
	{RegD, RegE},
	{RegH, RegL},
	{RegA, RegF},
}

func (c *CPU) push16(v uint16) {
	c.SP -= 2
	c.mem.WriteWord(c.SP, v)
}

func (c *CPU) pop16() uint16 {
	v := c.mem.ReadWord(c.SP)
	c.SP += 2
	return v
}

// pushRegs stores the low register at the new SP and the high register
// above it.
func (c *CPU) pushRegs(hi, lo Reg) {
	c.SP -= 2
	c.write8(c.SP, c.Get(lo))
	c.write8(c.SP+1, c.Get(hi))
	c.setClock(16)
}

// popRegs restores a pair from the stack bytes. Popping AF drops F's low
// nibble.
func (c *CPU) popRegs(hi, lo Reg) {
	c.Set(lo, c.read8(c.SP))
	c.Set(hi, c.read8(c.SP+1))
	c.SP += 2
	c.setClock(12)
}

func (c *CPU) jumpRelative(off byte) {
	c.PC += uint16(int16(int8(off)))
}

func opJP(c *CPU) {
	c.PC = c.fetch16()
	c.setClock(16)
}

func opJPHL(c *CPU) {
	c.PC = c.HL()
	c.setClock(4)
}

func (c *CPU) jpIf(cc cond) {
	addr := c.fetch16()
	if c.check(cc) {
		c.PC = addr
		c.setClock(16)
		return
	}
	c.setClock(12)
}

// opJR jumps relative to the address after the displacement byte.
func opJR(c *CPU) {
	c.jumpRelative(c.fetch8())
	c.setClock(12)
}

func (c *CPU) jrIf(cc cond) {
	off := c.fetch8()
	if c.check(cc) {
		c.jumpRelative(off)
		c.setClock(12)
		return
	}
	c.setClock(8)
}

func opCALL(c *CPU) {
	addr := c.fetch16()
	c.push16(c.PC)
	c.PC = addr
	c.setClock(24)
}

func (c *CPU) callIf(cc cond) {
	addr := c.fetch16()
	if c.check(cc) {
		c.push16(c.PC)
		c.PC = addr
		c.setClock(24)
		return
	}
	c.setClock(12)
}

func opRET(c *CPU) {
	c.PC = c.pop16()
	c.setClock(16)
}

func opRETI(c *CPU) {
	c.PC = c.pop16()
	c.IME = true
	c.eiPending = false
	c.setClock(16)
}

func (c *CPU) retIf(cc cond) {
	if c.check(cc) {
		c.PC = c.pop16()
		c.setClock(20)
		return
	}
	c.setClock(8)
}

func (c *CPU) rst(target uint16) {
	c.push16(c.PC)
	c.PC = target
	c.setClock(16)
}
