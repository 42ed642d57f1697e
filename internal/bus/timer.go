package bus

// TIMA counts falling edges of the divider bit selected by TAC bits 0-1:
// 4096, 262144, 65536 and 16384 Hz.
var tacBit = [4]uint{9, 3, 5, 7}

// timerInput is the AND of the TAC enable bit and the selected divider bit.
func (b *Bus) timerInput() bool {
	return b.tac&0x04 != 0 && b.divInternal>>tacBit[b.tac&0x03]&1 != 0
}

// Tick advances the divider and timer by cycles T cycles. An overflowing
// TIMA reads 00 for four cycles, then reloads from TMA and requests the
// timer interrupt. Buses built with NewFlat have no timer.
func (b *Bus) Tick(cycles int) {
	if !b.mapped {
		return
	}
	for range cycles {
		if b.reloadIn > 0 {
			b.reloadIn--
			if b.reloadIn == 0 {
				b.tima = b.tma
				b.mem[AddrIF] |= IntTimer
			}
		}
		in := b.timerInput()
		b.divInternal++
		if in && !b.timerInput() {
			b.incTIMA()
		}
	}
}

// ResetTimer zeroes the divider and the timer registers.
func (b *Bus) ResetTimer() {
	b.divInternal = 0
	b.tima, b.tma, b.tac = 0, 0, 0
	b.reloadIn = 0
}

func (b *Bus) incTIMA() {
	if b.reloadIn > 0 {
		return
	}
	b.tima++
	if b.tima == 0 {
		b.reloadIn = 4
	}
}

func (b *Bus) readTimer(addr uint16) byte {
	switch addr {
	case AddrDIV:
		return byte(b.divInternal >> 8)
	case AddrTIMA:
		return b.tima
	case AddrTMA:
		return b.tma
	}
	return 0xF8 | b.tac
}

// writeTimer applies a register write. DIV and TAC writes can drop the timer
// input and count an edge like the divider does.
func (b *Bus) writeTimer(addr uint16, value byte) {
	in := b.timerInput()
	switch addr {
	case AddrDIV:
		b.divInternal = 0
	case AddrTIMA:
		// a write during the reload delay cancels the reload
		b.tima = value
		b.reloadIn = 0
		return
	case AddrTMA:
		b.tma = value
		return
	case AddrTAC:
		b.tac = value & 0x07
	}
	if in && !b.timerInput() {
		b.incTIMA()
	}
}
