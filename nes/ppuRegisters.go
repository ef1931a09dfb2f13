package nes

// PPU Registers
type PpuReg byte
type PpuRegFlag byte

// PPUCTRL flags - $2000
const (
	ctrlNameTblLo PpuRegFlag = 1 << iota
	ctrlNameTblHi
	ctrlVramInc
	ctrlSpritePatternTbl
	ctrlBgPatternTbl
	ctrlSpriteSize
	ctrlExtMode
	ctrlNmi
)

// PPUMASK flags - $2001
const (
	maskGreyscale PpuRegFlag = 1 << iota
	maskBgLeft
	maskSpriteLeft
	maskBgShow
	maskSpriteShow
	maskEmphasizeRed
	maskEmphasizeGreen
	maskEmphasizeBlue
)

// PPUSTATUS flags - $2002
const (
	statusSpriteOverflow PpuRegFlag = 1 << (iota + 5)
	statusSprite0Hit
	statusVBlank
)

// Register offsets from $2000.
const (
	regCtrl    uint16 = 0x0000
	regMask    uint16 = 0x0001
	regStatus  uint16 = 0x0002
	regOamAddr uint16 = 0x0003
	regOamData uint16 = 0x0004
	regScroll  uint16 = 0x0005
	regAddr    uint16 = 0x0006
	regData    uint16 = 0x0007
)

func (r *PpuReg) setFlag(flag PpuRegFlag) {
	*r |= PpuReg(flag)
}

func (r *PpuReg) clearFlag(flag PpuRegFlag) {
	*r &^= PpuReg(flag)
}

func (r PpuReg) getFlag(flag PpuRegFlag) bool {
	return r&PpuReg(flag) != 0
}

// Nametable base address selected by PPUCTRL bits 0-1.
func (r PpuReg) nameTableAddr() uint16 {
	return nameTblAddr + uint16(r&0x03)*nameTblSize
}

// Background pattern table base address.
func (r PpuReg) bgPatternAddr() uint16 {
	if r.getFlag(ctrlBgPatternTbl) {
		return patternTblSize
	}
	return patternTblAddr
}

// VRAM address increment after each $2007 access: across (1) or down (32).
func (r PpuReg) vramIncrement() uint16 {
	if r.getFlag(ctrlVramInc) {
		return 32
	}
	return 1
}
