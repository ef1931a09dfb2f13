package nes

// Mapper000 (NROM) has no bank switching.
type Mapper000 struct {
	PrgBanks byte
	ChrBanks byte
}

func NewMapper000(prgRomChunks, chrRomChunks byte) Mapper000 {
	return Mapper000{
		PrgBanks: prgRomChunks,
		ChrBanks: chrRomChunks,
	}
}

// Address Mapping
//
// if 16KB ROM size:
// 	 0x8000-0xBFFF -> 0x0000-0x3FFF
//   0xC000-0xFFFF -> 0x0000-0x3FFF (mirror)
//
// if 32KB ROM size:
//   0x8000-0xFFFF -> 0x0000-0x7FFF

func (m Mapper000) cpuMapRead(addr uint16) uint32 {
	if m.PrgBanks > 1 {
		return uint32(addr & 0x7FFF) // 32KB ROM
	}
	return uint32(addr & 0x3FFF) // 16KB ROM, need to mirror
}

// 8KB of CHR at 0x0000-0x1FFF, ROM or RAM.
func (m Mapper000) ppuMapRead(addr uint16) uint32 {
	return uint32(addr & 0x1FFF)
}
