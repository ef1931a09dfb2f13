package nes

import (
	"testing"

	"github.com/n-ulricksen/nescore/internal/test"
)

const dotsPerFrame = dotsPerScanline * scanlinesPerFrame

func newTestPpu(t *testing.T, flags6 byte) *Ppu {
	t.Helper()
	cart, err := NewCartridge(inesImage(1, 0, flags6, 0))
	test.DemandSuccess(t, err)
	return NewPpu(cart)
}

// setAddr writes a VRAM address through $2006.
func setAddr(p *Ppu, addr uint16) {
	p.cpuWrite(regAddr, byte(addr>>8))
	p.cpuWrite(regAddr, byte(addr))
}

func TestPpuFrameTiming(t *testing.T) {
	p := newTestPpu(t, 0)

	test.ExpectEquality(t, p.Tick(vblankScanline*dotsPerScanline), false)
	test.ExpectEquality(t, p.Scanline(), vblankScanline)
	test.ExpectEquality(t, p.status.getFlag(statusVBlank), true, "vblank set")

	test.ExpectEquality(t, p.Tick(dotsPerFrame-vblankScanline*dotsPerScanline-1), false)
	test.ExpectEquality(t, p.Tick(1), true, "frame done")

	test.ExpectEquality(t, p.Scanline(), 0)
	test.ExpectEquality(t, p.Cycle(), 0)
	test.ExpectEquality(t, p.FrameCount(), uint64(1))
	test.ExpectEquality(t, p.status.getFlag(statusVBlank), false, "vblank cleared")
}

func TestPpuNmiOncePerFrame(t *testing.T) {
	p := newTestPpu(t, 0)
	p.cpuWrite(regCtrl, 0x80)

	nmis := 0
	for i := 0; i < 3*dotsPerFrame; i++ {
		p.Tick(1)
		if p.pollNMI() {
			nmis++
			test.ExpectEquality(t, p.Scanline(), vblankScanline)
		}
	}
	test.ExpectEquality(t, nmis, 3)
}

func TestPpuNmiDisabled(t *testing.T) {
	p := newTestPpu(t, 0)
	p.Tick(dotsPerFrame)
	test.ExpectEquality(t, p.pollNMI(), false)
}

func TestPpuNmiEnabledDuringVBlank(t *testing.T) {
	p := newTestPpu(t, 0)
	p.Tick(vblankScanline * dotsPerScanline)
	test.DemandEquality(t, p.pollNMI(), false)

	p.cpuWrite(regCtrl, 0x80)
	test.ExpectEquality(t, p.pollNMI(), true, "0 to 1 during vblank")

	p.cpuWrite(regCtrl, 0x80)
	test.ExpectEquality(t, p.pollNMI(), false, "already enabled")

	// Outside vblank enabling does nothing.
	p.Tick(dotsPerFrame - vblankScanline*dotsPerScanline)
	p.cpuWrite(regCtrl, 0x00)
	p.cpuWrite(regCtrl, 0x80)
	test.ExpectEquality(t, p.pollNMI(), false, "outside vblank")
}

func TestPpuStatusReadResetsLatch(t *testing.T) {
	p := newTestPpu(t, 0)
	p.status.setFlag(statusVBlank)

	p.cpuWrite(regAddr, 0x21) // first half, then abandoned
	status := p.cpuRead(regStatus)
	test.ExpectEquality(t, status&0x80, byte(0x80))
	test.ExpectEquality(t, p.status.getFlag(statusVBlank), false)

	setAddr(p, 0x2305)
	test.ExpectEquality(t, p.vramAddr.value(), uint16(0x2305))

	// Writes to $2002 are ignored.
	p.cpuWrite(regStatus, 0xFF)
	test.ExpectEquality(t, byte(p.status), byte(0))
}

func TestPpuDataReadBuffer(t *testing.T) {
	p := newTestPpu(t, 0)

	setAddr(p, 0x2000)
	p.cpuWrite(regData, 0x11)
	p.cpuWrite(regData, 0x22)

	setAddr(p, 0x2000)
	p.cpuRead(regData) // stale buffer
	test.ExpectEquality(t, p.cpuRead(regData), byte(0x11))
	test.ExpectEquality(t, p.cpuRead(regData), byte(0x22))
}

func TestPpuPaletteReadImmediate(t *testing.T) {
	p := newTestPpu(t, 0)

	setAddr(p, 0x3F01)
	p.cpuWrite(regData, 0x2C)

	setAddr(p, 0x3F01)
	test.ExpectEquality(t, p.cpuRead(regData), byte(0x2C))
}

func TestPpuPaletteMirrors(t *testing.T) {
	p := newTestPpu(t, 0)

	for _, addr := range []uint16{0x3F10, 0x3F14, 0x3F18, 0x3F1C} {
		p.ppuWrite(addr, byte(addr))
		test.ExpectEquality(t, p.ppuRead(addr-0x10), byte(addr), addr)
	}

	// $3F20-$3FFF repeat the 32 entries.
	p.ppuWrite(0x3F05, 0x15)
	test.ExpectEquality(t, p.ppuRead(0x3FE5), byte(0x15))
}

func TestPpuVramIncrement(t *testing.T) {
	p := newTestPpu(t, 0)
	p.cpuWrite(regCtrl, byte(ctrlVramInc))

	setAddr(p, 0x2000)
	p.cpuWrite(regData, 0xAA)
	p.cpuWrite(regData, 0xBB)

	test.ExpectEquality(t, p.ppuRead(0x2000), byte(0xAA))
	test.ExpectEquality(t, p.ppuRead(0x2020), byte(0xBB))
	test.ExpectEquality(t, p.vramAddr.value(), uint16(0x2040))

	// The address wraps at the top of PPU space.
	p.cpuWrite(regCtrl, 0)
	setAddr(p, 0x3FFF)
	p.cpuWrite(regData, 0x01)
	test.ExpectEquality(t, p.vramAddr.value(), uint16(0x0000))
}

func TestPpuNameTableMirroring(t *testing.T) {
	tests := []struct {
		name   string
		flags6 byte
		same   [][2]uint16
		differ [][2]uint16
	}{
		{
			"vertical", flag6Vertical,
			[][2]uint16{{0x2000, 0x2800}, {0x2400, 0x2C00}, {0x2000, 0x3000}},
			[][2]uint16{{0x2000, 0x2400}},
		},
		{
			"horizontal", 0,
			[][2]uint16{{0x2000, 0x2400}, {0x2800, 0x2C00}, {0x2BFF, 0x2FFF}},
			[][2]uint16{{0x2000, 0x2800}},
		},
		{
			"four-screen", flag6FourScreen,
			nil,
			[][2]uint16{{0x2000, 0x2400}, {0x2000, 0x2800}, {0x2000, 0x2C00}, {0x2400, 0x2C00}},
		},
	}

	for _, tc := range tests {
		p := newTestPpu(t, tc.flags6)
		for i, pair := range tc.same {
			p.ppuWrite(pair[0], byte(i+1))
			test.ExpectEquality(t, p.ppuRead(pair[1]), byte(i+1), tc.name, pair)
		}
		for _, pair := range tc.differ {
			p.ppuWrite(pair[0], 0x77)
			p.ppuWrite(pair[1], 0x00)
			test.ExpectEquality(t, p.ppuRead(pair[0]), byte(0x77), tc.name, pair)
		}
	}
}

func TestPpuScrollAndOam(t *testing.T) {
	p := newTestPpu(t, 0)

	p.cpuWrite(regScroll, 0x7D)
	p.cpuWrite(regScroll, 0x5E)
	x, y := p.Scroll()
	test.ExpectEquality(t, x, byte(0x7D))
	test.ExpectEquality(t, y, byte(0x5E))

	p.cpuWrite(regOamAddr, 0x10)
	p.cpuWrite(regOamData, 0xAB)
	test.ExpectEquality(t, p.oamAddr, byte(0x11))

	p.cpuWrite(regOamAddr, 0x10)
	test.ExpectEquality(t, p.cpuRead(regOamData), byte(0xAB))
}

// Tile 1, row 0: pixels 1, 2, 3, 0, then zeroes.
func loadTestTile(p *Ppu, base uint16) {
	p.ppuWrite(base+0x10, 0xA0) // low plane
	p.ppuWrite(base+0x18, 0x60) // high plane
}

func TestPpuRender(t *testing.T) {
	p := newTestPpu(t, 0)
	loadTestTile(p, 0x0000)

	p.ppuWrite(0x3F00, 0x0F)
	p.ppuWrite(0x3F01, 0x01)
	p.ppuWrite(0x3F02, 0x02)
	p.ppuWrite(0x3F03, 0x03)
	p.ppuWrite(0x3F05, 0x11)
	p.ppuWrite(0x3F06, 0x12)
	p.ppuWrite(0x3F07, 0x13)

	p.ppuWrite(0x2000, 0x01) // tile (0,0)
	p.ppuWrite(0x2002, 0x01) // tile (2,0)
	p.ppuWrite(0x23C0, 0x04) // top right quadrant uses palette 1

	var f Frame
	p.Render(&f)
	test.ExpectEquality(t, f.At(0, 0), byte(0x0F), "background disabled")

	p.cpuWrite(regMask, byte(maskBgShow))
	p.Render(&f)

	tests := []struct {
		x, y int
		want byte
	}{
		{0, 0, 0x01},
		{1, 0, 0x02},
		{2, 0, 0x03},
		{3, 0, 0x0F},
		{0, 1, 0x0F},
		{16, 0, 0x11},
		{17, 0, 0x12},
		{18, 0, 0x13},
		{255, 239, 0x0F},
	}
	for _, tc := range tests {
		test.ExpectEquality(t, f.At(tc.x, tc.y), tc.want, tc.x, tc.y)
	}
}

func TestPpuRenderPatternTableSelect(t *testing.T) {
	p := newTestPpu(t, 0)
	loadTestTile(p, 0x1000)
	p.ppuWrite(0x3F01, 0x01)
	p.ppuWrite(0x2000, 0x01)
	p.cpuWrite(regMask, byte(maskBgShow))

	var f Frame
	p.Render(&f)
	test.ExpectEquality(t, f.At(0, 0), byte(0x00), "table 0 is empty")

	p.cpuWrite(regCtrl, byte(ctrlBgPatternTbl))
	p.Render(&f)
	test.ExpectEquality(t, f.At(0, 0), byte(0x01), "table 1")
}

func TestPatternTableImage(t *testing.T) {
	p := newTestPpu(t, 0)
	loadTestTile(p, 0x0000)
	p.ppuWrite(0x3F01, 0x01)

	img := p.PatternTable(0, 0, &DefaultPalette)
	test.ExpectEquality(t, img.Bounds().Dx(), 128)

	// Tile 1 is the second tile of the first row.
	test.ExpectEquality(t, img.RGBAAt(8, 0), DefaultPalette[0x01])
	test.ExpectEquality(t, img.RGBAAt(11, 0), DefaultPalette[0x00])
}
