package nes

// Mapper translates CPU and PPU bus addresses into offsets in the
// cartridge's PRG and CHR data.
type Mapper interface {
	cpuMapRead(addr uint16) uint32
	ppuMapRead(addr uint16) uint32
}
