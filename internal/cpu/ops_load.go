package cpu

// LD r,r' including the [HL] forms.
func (c *CPU) ldOperands(dst, src byte) {
	c.setOperand(dst, c.operand(src))
	if dst == 6 || src == 6 {
		c.setClock(8)
		return
	}
	c.setClock(4)
}

// LD r,d8 and LD [HL],d8.
func (c *CPU) ldImm8(dst byte) {
	c.setOperand(dst, c.fetch8())
	if dst == 6 {
		c.setClock(12)
		return
	}
	c.setClock(8)
}

// LD rr,d16. The low byte comes first in memory and lands in the low
// register of the pair.
func (c *CPU) ldImm16(rr byte) {
	c.setPair(rr, c.fetch16())
	c.setClock(12)
}

func opLDBCmA(c *CPU) {
	c.write8(c.BC(), c.A)
	c.setClock(8)
}

func opLDDEmA(c *CPU) {
	c.write8(c.DE(), c.A)
	c.setClock(8)
}

func opLDABCm(c *CPU) {
	c.A = c.read8(c.BC())
	c.setClock(8)
}

func opLDADEm(c *CPU) {
	c.A = c.read8(c.DE())
	c.setClock(8)
}

// LD [HL+],A
func opLDHLIA(c *CPU) {
	hl := c.HL()
	c.write8(hl, c.A)
	c.SetHL(hl + 1)
	c.setClock(8)
}

// LD A,[HL+]
func opLDAHLI(c *CPU) {
	hl := c.HL()
	c.A = c.read8(hl)
	c.SetHL(hl + 1)
	c.setClock(8)
}

// LD [HL-],A
func opLDHLDA(c *CPU) {
	hl := c.HL()
	c.write8(hl, c.A)
	c.SetHL(hl - 1)
	c.setClock(8)
}

// LD A,[HL-]
func opLDAHLD(c *CPU) {
	hl := c.HL()
	c.A = c.read8(hl)
	c.SetHL(hl - 1)
	c.setClock(8)
}

func opLDmmA(c *CPU) {
	addr := c.fetch16()
	c.write8(addr, c.A)
	c.setClock(16)
}

func opLDAmm(c *CPU) {
	addr := c.fetch16()
	c.A = c.read8(addr)
	c.setClock(16)
}

func opLDmmSP(c *CPU) {
	addr := c.fetch16()
	c.mem.WriteWord(addr, c.SP)
	c.setClock(20)
}

// LDH [$FF00+a8],A
func opLDIOnA(c *CPU) {
	n := uint16(c.fetch8())
	c.write8(0xFF00+n, c.A)
	c.setClock(12)
}

// LDH A,[$FF00+a8]
func opLDAIOn(c *CPU) {
	n := uint16(c.fetch8())
	c.A = c.read8(0xFF00 + n)
	c.setClock(12)
}

// LD [$FF00+C],A
func opLDIOCA(c *CPU) {
	c.write8(0xFF00+uint16(c.C), c.A)
	c.setClock(8)
}

// LD A,[$FF00+C]
func opLDAIOC(c *CPU) {
	c.A = c.read8(0xFF00 + uint16(c.C))
	c.setClock(8)
}

func opLDSPHL(c *CPU) {
	c.SP = c.HL()
	c.setClock(8)
}

// LD HL,SP+r8
func opLDHLSPn(c *CPU) {
	res, h, cy := addSPOffset(c.SP, c.fetch8())
	c.SetHL(res)
	c.setZNHC(false, false, h, cy)
	c.setClock(12)
}
