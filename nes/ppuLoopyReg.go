package nes

// Loopy registers are 15 bit internal PPU registers used for implementing
// scrolling. The same layout backs both the VRAM address written through
// $2006 and the scroll position written through $2005.
// Loopy register layout:
//   yyy NN YYYYY XXXXX
//
//   yyy   - fine Y scroll
//   NN    - nametable select
//   YYYYY - coarse Y scroll
//   XXXXX - coarse X scroll
type PpuLoopyReg uint16

const (
	loopyCoarseX   PpuLoopyReg = 0b11111
	loopyCoarseY   PpuLoopyReg = 0b11111 << 5
	loopyNametable PpuLoopyReg = 0b11 << 10
	loopyFineY     PpuLoopyReg = 0b111 << 12

	// PPU address space is 14 bits wide.
	loopyAddrMask uint16 = 0x3FFF
)

// Returns the value of the loopy register as a PPU address.
func (r PpuLoopyReg) value() uint16 {
	return uint16(r) & loopyAddrMask
}

// Sets the high 6 bits of the address from the first $2006 write.
func (r *PpuLoopyReg) setHi(val byte) {
	*r = PpuLoopyReg(uint16(val&0x3F)<<8 | uint16(*r)&0x00FF)
}

// Sets the low 8 bits of the address from the second $2006 write.
func (r *PpuLoopyReg) setLo(val byte) {
	*r = *r&0xFF00 | PpuLoopyReg(val)
}

// Advances the address, wrapping at the top of PPU address space.
func (r *PpuLoopyReg) increment(n uint16) {
	*r = PpuLoopyReg((uint16(*r) + n) & loopyAddrMask)
}

// Sets coarse X (bits 0-4) of the loopy register with the low 5 bits of the
// given value.
func (r *PpuLoopyReg) setCoarseX(val byte) {
	// Clear bits about to be set
	*r &^= loopyCoarseX

	// Set new bits
	*r |= PpuLoopyReg(val) & 0b11111
}

// Sets coarse Y (bits 5-9) of the loopy register with the low 5 bits of the
// given value.
func (r *PpuLoopyReg) setCoarseY(val byte) {
	*r &^= loopyCoarseY
	*r |= (PpuLoopyReg(val) & 0b11111) << 5
}

// Sets fine Y (bits 12-14) of the loopy register with the low 3 bits of the
// given value.
func (r *PpuLoopyReg) setFineY(val byte) {
	*r &^= loopyFineY
	*r |= (PpuLoopyReg(val) & 0b111) << 12
}

func (r PpuLoopyReg) getCoarseX() byte { return byte(r & loopyCoarseX) }
func (r PpuLoopyReg) getCoarseY() byte { return byte((r & loopyCoarseY) >> 5) }
func (r PpuLoopyReg) getFineY() byte   { return byte((r & loopyFineY) >> 12) }
