package nes

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
)

// iNES file layout.
// Reference: http://wiki.nesdev.com/w/index.php/INES
const (
	inesHeaderSize  = 16
	inesTrainerSize = 512
	prgBankSize     = 0x4000 // 16KB
	chrBankSize     = 0x2000 // 8KB
)

var inesMagic = []byte{'N', 'E', 'S', 0x1A}

// Flags 6
const (
	flag6Vertical   byte = 1 << 0
	flag6Battery    byte = 1 << 1
	flag6Trainer    byte = 1 << 2
	flag6FourScreen byte = 1 << 3
)

// Mirroring is the nametable arrangement wired on the cartridge board.
type Mirroring byte

const (
	MirrorHorizontal Mirroring = iota
	MirrorVertical
	MirrorFourScreen
)

func (m Mirroring) String() string {
	switch m {
	case MirrorHorizontal:
		return "horizontal"
	case MirrorVertical:
		return "vertical"
	case MirrorFourScreen:
		return "four-screen"
	}
	return "unknown"
}

// Cartridge holds the program and graphics data of a ROM image. It is parsed
// once at load time and not changed afterwards, except for CHR-RAM.
type Cartridge struct {
	Prg       []byte // PRG-ROM, 16KB or 32KB
	Chr       []byte // CHR-ROM, or 8KB of CHR-RAM if the image has none
	Trainer   []byte // 512 byte trainer, nil if absent
	MapperID  byte
	Mirroring Mirroring
	Battery   bool

	chrRAM bool
	mapper Mapper
}

// LoadCartridge reads a complete iNES image from r.
func LoadCartridge(r io.Reader) (*Cartridge, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading iNES image")
	}
	return NewCartridge(data)
}

// NewCartridge parses an iNES image held in memory. Any error is a
// *FormatError (possibly wrapped).
func NewCartridge(data []byte) (*Cartridge, error) {
	if len(data) < inesHeaderSize {
		return nil, errors.WithStack(formatErrorf("image is %d bytes, shorter than the header", len(data)))
	}
	header := data[:inesHeaderSize]

	if !bytes.Equal(header[0:4], inesMagic) {
		return nil, errors.WithStack(formatErrorf("missing NES<EOF> magic"))
	}

	// Bits 2-3 of flags 7 select the format version; only iNES 1.0 is handled.
	if version := (header[7] >> 2) & 0x03; version != 0 {
		return nil, errors.WithStack(formatErrorf("unsupported version %d", version))
	}

	mapperID := (header[7] & 0xF0) | (header[6] >> 4)
	if mapperID != 0 {
		return nil, errors.WithStack(formatErrorf("unsupported mapper %d", mapperID))
	}

	prgBanks := int(header[4])
	chrBanks := int(header[5])
	if prgBanks == 0 {
		return nil, errors.WithStack(formatErrorf("no PRG-ROM banks"))
	}
	if prgBanks > 2 {
		return nil, errors.WithStack(formatErrorf("%d PRG-ROM banks, mapper 0 allows at most 2", prgBanks))
	}

	cart := &Cartridge{
		MapperID: mapperID,
		Battery:  header[6]&flag6Battery != 0,
	}

	switch {
	case header[6]&flag6FourScreen != 0:
		cart.Mirroring = MirrorFourScreen
	case header[6]&flag6Vertical != 0:
		cart.Mirroring = MirrorVertical
	default:
		cart.Mirroring = MirrorHorizontal
	}

	offset := inesHeaderSize
	if header[6]&flag6Trainer != 0 {
		if len(data) < offset+inesTrainerSize {
			return nil, errors.WithStack(formatErrorf("truncated trainer"))
		}
		cart.Trainer = data[offset : offset+inesTrainerSize]
		offset += inesTrainerSize
	}

	prgSize := prgBanks * prgBankSize
	if len(data) < offset+prgSize {
		return nil, errors.WithStack(formatErrorf("truncated PRG-ROM: want %d bytes, have %d", prgSize, len(data)-offset))
	}
	cart.Prg = data[offset : offset+prgSize]
	offset += prgSize

	if chrBanks == 0 {
		cart.Chr = make([]byte, chrBankSize)
		cart.chrRAM = true
	} else {
		chrSize := chrBanks * chrBankSize
		if len(data) < offset+chrSize {
			return nil, errors.WithStack(formatErrorf("truncated CHR-ROM: want %d bytes, have %d", chrSize, len(data)-offset))
		}
		cart.Chr = data[offset : offset+chrSize]
	}

	cart.mapper = NewMapper000(byte(prgBanks), byte(chrBanks))

	return cart, nil
}

// HasChrRAM reports whether the pattern tables are writable RAM.
func (c *Cartridge) HasChrRAM() bool { return c.chrRAM }

// Communicate with main (CPU) bus.
func (c *Cartridge) cpuRead(addr uint16) byte {
	return c.Prg[c.mapper.cpuMapRead(addr)]
}

// Communicate with PPU bus.
func (c *Cartridge) ppuRead(addr uint16) byte {
	return c.Chr[c.mapper.ppuMapRead(addr)]
}

// Writes to CHR-ROM are dropped.
func (c *Cartridge) ppuWrite(addr uint16, data byte) {
	if c.chrRAM {
		c.Chr[c.mapper.ppuMapRead(addr)] = data
	}
}
