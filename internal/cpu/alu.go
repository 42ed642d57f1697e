package cpu

// 8-bit ALU primitives. Each returns the result and the four flags it
// produces; callers decide which of them land in F.

func add8(a, b, carryIn byte) (res byte, z, n, h, cy bool) {
	r := uint16(a) + uint16(b) + uint16(carryIn)
	res = byte(r)
	z = res == 0
	h = (a&0x0F)+(b&0x0F)+carryIn > 0x0F
	cy = r > 0xFF
	return
}

func sub8(a, b, carryIn byte) (res byte, z, n, h, cy bool) {
	r := int16(a) - int16(b) - int16(carryIn)
	res = byte(r)
	z = res == 0
	n = true
	h = int16(a&0x0F) < int16(b&0x0F)+int16(carryIn)
	cy = r < 0
	return
}

func and8(a, b byte) (res byte, z, n, h, cy bool) {
	res = a & b
	return res, res == 0, false, true, false
}

func xor8(a, b byte) (res byte, z, n, h, cy bool) {
	res = a ^ b
	return res, res == 0, false, false, false
}

func or8(a, b byte) (res byte, z, n, h, cy bool) {
	res = a | b
	return res, res == 0, false, false, false
}

// Rotates and shifts return the shifted value and the bit pushed out.

func rlc(v byte) (byte, bool)         { return v<<1 | v>>7, v&0x80 != 0 }
func rrc(v byte) (byte, bool)         { return v>>1 | v<<7, v&0x01 != 0 }
func rl(v, carryIn byte) (byte, bool) { return v<<1 | carryIn, v&0x80 != 0 }
func rr(v, carryIn byte) (byte, bool) { return v>>1 | carryIn<<7, v&0x01 != 0 }
func sla(v byte) (byte, bool)         { return v << 1, v&0x80 != 0 }
func sra(v byte) (byte, bool)         { return v>>1 | v&0x80, v&0x01 != 0 }
func srl(v byte) (byte, bool)         { return v >> 1, v&0x01 != 0 }
func swap(v byte) (byte, bool)        { return v<<4 | v>>4, false }

// add16 returns a+b with the half-carry out of bit 11 and carry out of bit 15.
func add16(a, b uint16) (res uint16, h, cy bool) {
	return a + b, (a&0x0FFF)+(b&0x0FFF) > 0x0FFF, uint32(a)+uint32(b) > 0xFFFF
}

// addSPOffset computes SP+r8. Flags come from the unsigned addition of the
// low bytes regardless of the sign of r8.
func addSPOffset(sp uint16, r8 byte) (res uint16, h, cy bool) {
	res = sp + uint16(int16(int8(r8)))
	h = (sp&0x0F)+uint16(r8&0x0F) > 0x0F
	cy = (sp&0xFF)+uint16(r8) > 0xFF
	return
}
