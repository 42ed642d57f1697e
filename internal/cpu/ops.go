package cpu

// handler executes one decoded instruction. The opcode byte has already been
// consumed; operand bytes are fetched by the handler itself. Every handler
// sets LastClockT/LastClockM before returning.
type handler func(c *CPU)

var (
	baseOps [256]handler
	cbOps   [256]handler
)

func init() {
	initBaseOps()
	initCBOps()
}

func initBaseOps() {
	for i := range baseOps {
		baseOps[i] = opUnused(byte(i))
	}

	baseOps[0x00] = opNOP
	baseOps[0x10] = opSTOP
	baseOps[0x76] = opHALT
	baseOps[0xF3] = opDI
	baseOps[0xFB] = opEI
	baseOps[0xCB] = opCBPrefix

	// 8-bit loads
	for op := 0x40; op <= 0x7F; op++ {
		if op == 0x76 {
			continue
		}
		dst, src := byte(op>>3)&7, byte(op)&7
		baseOps[op] = func(c *CPU) { c.ldOperands(dst, src) }
	}
	for idx := byte(0); idx < 8; idx++ {
		dst := idx
		baseOps[0x06|dst<<3] = func(c *CPU) { c.ldImm8(dst) }
		baseOps[0x04|dst<<3] = func(c *CPU) { c.inc8(dst) }
		baseOps[0x05|dst<<3] = func(c *CPU) { c.dec8(dst) }
	}
	baseOps[0x02] = opLDBCmA
	baseOps[0x12] = opLDDEmA
	baseOps[0x0A] = opLDABCm
	baseOps[0x1A] = opLDADEm
	baseOps[0x22] = opLDHLIA
	baseOps[0x2A] = opLDAHLI
	baseOps[0x32] = opLDHLDA
	baseOps[0x3A] = opLDAHLD
	baseOps[0xEA] = opLDmmA
	baseOps[0xFA] = opLDAmm
	baseOps[0xE0] = opLDIOnA
	baseOps[0xF0] = opLDAIOn
	baseOps[0xE2] = opLDIOCA
	baseOps[0xF2] = opLDAIOC

	// 16-bit loads and arithmetic
	for idx := byte(0); idx < 4; idx++ {
		rr := idx
		baseOps[0x01|rr<<4] = func(c *CPU) { c.ldImm16(rr) }
		baseOps[0x03|rr<<4] = func(c *CPU) { c.inc16(rr) }
		baseOps[0x0B|rr<<4] = func(c *CPU) { c.dec16(rr) }
		baseOps[0x09|rr<<4] = func(c *CPU) { c.addHL(rr) }
	}
	baseOps[0x08] = opLDmmSP
	baseOps[0xF8] = opLDHLSPn
	baseOps[0xF9] = opLDSPHL
	baseOps[0xE8] = opADDSPn

	// 8-bit ALU
	for op := 0x80; op <= 0xBF; op++ {
		kind, src := aluOp(op>>3)&7, byte(op)&7
		baseOps[op] = func(c *CPU) { c.aluOperand(kind, src) }
	}
	for kind := aluAdd; kind <= aluCp; kind++ {
		k := kind
		baseOps[0xC6|byte(k)<<3] = func(c *CPU) { c.aluImm(k) }
	}

	// accumulator and flag ops
	baseOps[0x07] = opRLCA
	baseOps[0x0F] = opRRCA
	baseOps[0x17] = opRLA
	baseOps[0x1F] = opRRA
	baseOps[0x27] = opDAA
	baseOps[0x2F] = opCPL
	baseOps[0x37] = opSCF
	baseOps[0x3F] = opCCF

	// control flow
	baseOps[0xC3] = opJP
	baseOps[0xE9] = opJPHL
	baseOps[0x18] = opJR
	baseOps[0xCD] = opCALL
	baseOps[0xC9] = opRET
	baseOps[0xD9] = opRETI
	for cc := condNZ; cc <= condC; cc++ {
		k := cc
		baseOps[0x20|byte(k)<<3] = func(c *CPU) { c.jrIf(k) }
		baseOps[0xC2|byte(k)<<3] = func(c *CPU) { c.jpIf(k) }
		baseOps[0xC4|byte(k)<<3] = func(c *CPU) { c.callIf(k) }
		baseOps[0xC0|byte(k)<<3] = func(c *CPU) { c.retIf(k) }
	}
	for n := byte(0); n < 8; n++ {
		target := uint16(n) * 8
		baseOps[0xC7|n<<3] = func(c *CPU) { c.rst(target) }
	}

	// stack
	for idx, p := range stackPairs {
		hi, lo := p[0], p[1]
		baseOps[0xC5|byte(idx)<<4] = func(c *CPU) { c.pushRegs(hi, lo) }
		baseOps[0xC1|byte(idx)<<4] = func(c *CPU) { c.popRegs(hi, lo) }
	}
}

// opUnused covers the opcodes the SM83 leaves undefined. They run as NOPs
// so a stray jump into data never stops the step loop.
func opUnused(op byte) handler {
	return func(c *CPU) {
		c.warnUnused(op)
		c.setClock(4)
	}
}

func opNOP(c *CPU) { c.setClock(4) }

func opHALT(c *CPU) {
	c.halted = true
	c.setClock(4)
}

// opSTOP skips the padding byte that follows the opcode.
func opSTOP(c *CPU) {
	c.PC++
	c.setClock(4)
}

func opDI(c *CPU) {
	c.IME = false
	c.eiPending = false
	c.setClock(4)
}

func opEI(c *CPU) {
	if c.cfg.DelayEI {
		c.eiPending = true
	} else {
		c.IME = true
	}
	c.setClock(4)
}

// opCBPrefix fetches the second opcode byte and dispatches through the CB
// table, whose handlers report the cost of the full two-byte instruction.
func opCBPrefix(c *CPU) {
	op := c.fetch8()
	cbOps[op](c)
}
