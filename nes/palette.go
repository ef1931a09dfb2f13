package nes

import (
	"image/color"
	"io"

	"github.com/pkg/errors"
)

const paletteSize = 0x40

// SystemPalette maps the PPU's 64 color indices to RGB.
type SystemPalette [paletteSize]color.RGBA

// DefaultPalette is a 2C02 NTSC palette.
var DefaultPalette SystemPalette

func init() {
	colors := []uint32{
		0x666666, 0x002A88, 0x1412A7, 0x3B00A4, 0x5C007E, 0x6E0040, 0x6C0600, 0x561D00,
		0x333500, 0x0B4800, 0x005200, 0x004F08, 0x00404D, 0x000000, 0x000000, 0x000000,
		0xADADAD, 0x155FD9, 0x4240FF, 0x7527FE, 0xA01ACC, 0xB71E7B, 0xB53120, 0x994E00,
		0x6B6D00, 0x388700, 0x0C9300, 0x008F32, 0x007C8D, 0x000000, 0x000000, 0x000000,
		0xFFFEFF, 0x64B0FF, 0x9290FF, 0xC676FF, 0xF36AFF, 0xFE6ECC, 0xFE8170, 0xEA9E22,
		0xBCBE00, 0x88D800, 0x5CE430, 0x45E082, 0x48CDDE, 0x4F4F4F, 0x000000, 0x000000,
		0xFFFEFF, 0xC0DFFF, 0xD3D2FF, 0xE8C8FF, 0xFBC2FF, 0xFEC4EA, 0xFECCC5, 0xF7D8A5,
		0xE4E594, 0xCFEF96, 0xBDF4AB, 0xB3F3CC, 0xB5EBF2, 0xB8B8B8, 0x000000, 0x000000,
	}
	for i, c := range colors {
		DefaultPalette[i] = color.RGBA{byte(c >> 16), byte(c >> 8), byte(c), 0xFF}
	}
}

// Color returns the RGB value of a palette index; the top two bits are
// ignored.
func (sp *SystemPalette) Color(idx byte) color.RGBA {
	return sp[idx&(paletteSize-1)]
}

// LoadPalette reads a .pal file: 64 RGB triplets. Longer files (with
// emphasis variants) are accepted and only the first 64 entries used.
func LoadPalette(r io.Reader) (SystemPalette, error) {
	var palette SystemPalette

	data, err := io.ReadAll(r)
	if err != nil {
		return palette, errors.Wrap(err, "reading palette")
	}
	if len(data) < paletteSize*3 {
		return palette, errors.Errorf("palette is %d bytes, want at least %d", len(data), paletteSize*3)
	}

	for i := 0; i < paletteSize; i++ {
		r := data[i*3]
		g := data[i*3+1]
		b := data[i*3+2]
		palette[i] = color.RGBA{r, g, b, 255}
	}

	return palette, nil
}
