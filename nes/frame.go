package nes

import (
	"image"

	"golang.org/x/image/draw"
)

const (
	FrameWidth  = 256
	FrameHeight = 240
)

// Frame is one screen of palette indices, row major.
type Frame struct {
	Pix [FrameWidth * FrameHeight]byte
}

// At returns the palette index at x, y.
func (f *Frame) At(x, y int) byte {
	return f.Pix[y*FrameWidth+x]
}

// Image converts the frame to RGBA using palette.
func (f *Frame) Image(palette *SystemPalette) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, FrameWidth, FrameHeight))
	f.Draw(img, palette)
	return img
}

// Draw writes the frame into img, which must be FrameWidth x FrameHeight.
func (f *Frame) Draw(img *image.RGBA, palette *SystemPalette) {
	for i, idx := range f.Pix {
		c := palette.Color(idx)
		o := i * 4
		img.Pix[o+0] = c.R
		img.Pix[o+1] = c.G
		img.Pix[o+2] = c.B
		img.Pix[o+3] = c.A
	}
}

// Scaled returns the frame enlarged by an integer factor with hard pixel
// edges.
func (f *Frame) Scaled(palette *SystemPalette, scale int) *image.RGBA {
	src := f.Image(palette)
	if scale <= 1 {
		return src
	}

	dst := image.NewRGBA(image.Rect(0, 0, FrameWidth*scale, FrameHeight*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// PatternTable renders pattern table i (0 or 1) as a 128x128 image of 16x16
// tiles, colored with background palette pal.
//
// Pattern tables are 16x16 grids of tiles or sprites. Each tile is 8x8 pixels
// and 16 bytes of memory.
func (p *Ppu) PatternTable(i int, pal byte, palette *SystemPalette) *image.RGBA {
	rgba := image.NewRGBA(image.Rect(0, 0, 128, 128))
	base := patternTblSize * uint16(i&1)

	for tileY := 0; tileY < 16; tileY++ {
		for tileX := 0; tileX < 16; tileX++ {
			// Tile
			memOffset := uint16(tileY*(16*16) + tileX*16)

			for row := 0; row < 8; row++ {
				// 2 bytes represent an 8 pixel row.
				tileLo := p.ppuRead(base + memOffset + uint16(row))
				tileHi := p.ppuRead(base + memOffset + uint16(row) + 8)

				for col := 0; col < 8; col++ {
					pixel := (tileLo & 0x01) + ((tileHi & 0x01) << 1)
					tileLo >>= 1
					tileHi >>= 1

					// Pixel position
					x := tileX*8 + (7 - col) // Invert x-axis
					y := tileY*8 + row

					rgba.Set(x, y, palette.Color(p.colorFromPalette(pal, pixel)))
				}
			}
		}
	}

	return rgba
}

func (p *Ppu) colorFromPalette(palette, pixel byte) byte {
	return p.ppuRead(paletteAddr + uint16((palette&0x07)<<2+pixel))
}
