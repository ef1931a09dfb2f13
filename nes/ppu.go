package nes

const (
	// PPU addresses
	patternTblAddr    uint16 = 0x0000
	patternTblAddrEnd uint16 = 0x1FFF
	patternTblSize    uint16 = 0x1000 // Single pattern table - size in bytes

	nameTblAddr    uint16 = 0x2000
	nameTblAddrEnd uint16 = 0x3EFF
	nameTblSize    uint16 = 0x0400
	attrTblOffset  uint16 = 0x03C0

	paletteAddr    uint16 = 0x3F00
	paletteAddrEnd uint16 = 0x3FFF

	// Timing
	dotsPerScanline    = 341
	scanlinesPerFrame  = 262
	vblankScanline     = 241
	ppuDotsPerCpuCycle = 3
)

// References:
// http://wiki.nesdev.com/w/index.php/PPU_registers
// https://www.youtube.com/watch?v=xdzOvpYPmGE (javidx9)
type Ppu struct {
	Cart *Cartridge

	// Nametable RAM. The console has 2KB; four-screen boards supply the
	// other 2KB, which is folded in here.
	vram         [4 * nameTblSize]byte
	paletteTable [32]byte
	oam          objectAttributeMemory

	ctrl    PpuReg
	mask    PpuReg
	status  PpuReg
	oamAddr byte

	vramAddr PpuLoopyReg // $2006
	scroll   PpuLoopyReg // $2005, fine X kept apart
	fineX    byte

	// Write toggle shared by $2005 and $2006; false means the next write
	// is the first of a pair.
	writeLatch bool

	// $2007 reads below the palette return the previous read.
	dataBuffer byte

	// Intertal PPU variables
	scanline      int    // Scanline count in the current frame
	cycle         int    // Cycle count in the current scanline
	frame         uint64 // Frames completed since reset
	frameComplete bool   // Whether or not the current frame is finished rendering
	nmiPending    bool
}

func NewPpu(cart *Cartridge) *Ppu {
	p := &Ppu{
		Cart: cart,
		oam:  newOAM(oamSprites),
	}
	p.oam.clear()
	return p
}

// Reset returns the registers and timing to their power-up state. Nametable
// and palette memory keep their contents.
func (p *Ppu) Reset() {
	p.ctrl = 0
	p.mask = 0
	p.status = 0
	p.oamAddr = 0
	p.vramAddr = 0
	p.scroll = 0
	p.fineX = 0
	p.writeLatch = false
	p.dataBuffer = 0
	p.scanline = 0
	p.cycle = 0
	p.frame = 0
	p.frameComplete = false
	p.nmiPending = false
	p.oam.clear()
}

func (p *Ppu) Scanline() int      { return p.scanline }
func (p *Ppu) Cycle() int         { return p.cycle }
func (p *Ppu) FrameCount() uint64 { return p.frame }

// Scroll returns the scroll position last written through $2005.
func (p *Ppu) Scroll() (x, y byte) {
	return p.scroll.getCoarseX()<<3 | p.fineX, p.scroll.getCoarseY()<<3 | p.scroll.getFineY()
}

// Tick advances the PPU by n dots and reports whether a frame finished.
// 1 frame = 262 scanlines
// 1 scanline = 341 PPU clock cycles
func (p *Ppu) Tick(n int) bool {
	done := false
	for i := 0; i < n; i++ {
		if p.clock() {
			done = true
		}
	}
	return done
}

// PPU clock cycle.
func (p *Ppu) clock() bool {
	p.cycle++
	if p.cycle < dotsPerScanline {
		return false
	}

	p.cycle = 0
	p.scanline++

	switch p.scanline {
	case vblankScanline:
		p.status.setFlag(statusVBlank)
		p.status.clearFlag(statusSprite0Hit)
		if p.ctrl.getFlag(ctrlNmi) {
			p.nmiPending = true
		}

	case scanlinesPerFrame:
		p.scanline = 0
		p.status.clearFlag(statusVBlank)
		p.status.clearFlag(statusSprite0Hit)
		p.nmiPending = false
		p.frame++
		p.frameComplete = true
		return true
	}

	return false
}

// pollNMI reports and clears a pending NMI.
func (p *Ppu) pollNMI() bool {
	pending := p.nmiPending
	p.nmiPending = false
	return pending
}

// Communicate with main (CPU) bus - used for PPU register access. addr is
// the register offset, 0-7.
func (p *Ppu) cpuRead(addr uint16) byte {
	var data byte

	switch addr {
	case regStatus:
		data = byte(p.status)
		p.status.clearFlag(statusVBlank)
		p.writeLatch = false
	case regOamData:
		data = p.oam.read(p.oamAddr)
	case regData:
		data = p.readData()
	default:
		// Write-only registers read as zero.
	}

	return data
}

func (p *Ppu) cpuWrite(addr uint16, data byte) {
	switch addr {
	case regCtrl:
		wasEnabled := p.ctrl.getFlag(ctrlNmi)
		p.ctrl = PpuReg(data)

		// Enabling NMI during vblank raises one immediately.
		if !wasEnabled && p.ctrl.getFlag(ctrlNmi) && p.status.getFlag(statusVBlank) {
			p.nmiPending = true
		}
	case regMask:
		p.mask = PpuReg(data)
	case regStatus:
		// Read-only.
	case regOamAddr:
		p.oamAddr = data
	case regOamData:
		p.oam.write(p.oamAddr, data)
		p.oamAddr++
	case regScroll:
		if !p.writeLatch {
			p.scroll.setCoarseX(data >> 3)
			p.fineX = data & 0x07
		} else {
			p.scroll.setCoarseY(data >> 3)
			p.scroll.setFineY(data & 0x07)
		}
		p.writeLatch = !p.writeLatch
	case regAddr:
		if !p.writeLatch {
			p.vramAddr.setHi(data)
		} else {
			p.vramAddr.setLo(data)
		}
		p.writeLatch = !p.writeLatch
	case regData:
		p.ppuWrite(p.vramAddr.value(), data)
		p.vramAddr.increment(p.ctrl.vramIncrement())
	}
}

// peekRegister returns what cpuRead would without changing any state.
func (p *Ppu) peekRegister(addr uint16) byte {
	switch addr {
	case regStatus:
		return byte(p.status)
	case regOamData:
		return p.oam.read(p.oamAddr)
	case regData:
		if a := p.vramAddr.value(); a >= paletteAddr {
			return p.ppuRead(a)
		}
		return p.dataBuffer
	}
	return 0
}

func (p *Ppu) readData() byte {
	addr := p.vramAddr.value()
	p.vramAddr.increment(p.ctrl.vramIncrement())

	if addr >= paletteAddr {
		// Palette reads are immediate; the buffer picks up the nametable
		// byte underneath.
		p.dataBuffer = p.ppuRead(addr - 0x1000)
		return p.ppuRead(addr)
	}

	data := p.dataBuffer
	p.dataBuffer = p.ppuRead(addr)
	return data
}

// writeOam is the OAM DMA path; it stores starting at the current OAM address.
func (p *Ppu) writeOam(data []byte) {
	for _, b := range data {
		p.oam.write(p.oamAddr, b)
		p.oamAddr++
	}
}

// Communicate with PPU bus.
func (p *Ppu) ppuRead(addr uint16) byte {
	addr &= loopyAddrMask

	var data byte

	if addr <= patternTblAddrEnd {
		data = p.Cart.ppuRead(addr)
	} else if addr <= nameTblAddrEnd {
		data = p.vram[p.mirrorNameTable(addr)]
	} else {
		data = p.paletteTable[mirrorPalette(addr)]
	}

	return data
}

func (p *Ppu) ppuWrite(addr uint16, data byte) {
	addr &= loopyAddrMask // Max addressable range.

	if addr <= patternTblAddrEnd {
		p.Cart.ppuWrite(addr, data)
	} else if addr <= nameTblAddrEnd {
		p.vram[p.mirrorNameTable(addr)] = data
	} else {
		p.paletteTable[mirrorPalette(addr)] = data
	}
}

// Map a nametable address ($2000-$3EFF) to an index into vram.
//
// Horizontal:
//	[ A ] [ a ]
//	[ B ] [ b ]
//
// Vertical:
//	[ A ] [ B ]
//	[ a ] [ b ]
func (p *Ppu) mirrorNameTable(addr uint16) uint16 {
	// $3000-$3EFF mirrors $2000-$2EFF.
	idx := (addr & 0x2FFF) - nameTblAddr
	table := idx / nameTblSize

	switch p.Cart.Mirroring {
	case MirrorVertical:
		if table >= 2 {
			idx -= 2 * nameTblSize
		}
	case MirrorHorizontal:
		switch table {
		case 1, 2:
			idx -= nameTblSize
		case 3:
			idx -= 2 * nameTblSize
		}
	}

	return idx
}

// Palette entries $3F10/$3F14/$3F18/$3F1C mirror $3F00/$3F04/$3F08/$3F0C.
func mirrorPalette(addr uint16) uint16 {
	idx := addr & 0x1F
	if idx >= 0x10 && idx%4 == 0 {
		idx -= 0x10
	}
	return idx
}

// Render draws the background of the selected nametable into f. Scrolling
// and sprites are not drawn.
func (p *Ppu) Render(f *Frame) {
	universal := p.paletteTable[0]
	if !p.mask.getFlag(maskBgShow) {
		for i := range f.Pix {
			f.Pix[i] = universal
		}
		return
	}

	base := p.ctrl.nameTableAddr()
	pattern := p.ctrl.bgPatternAddr()

	for tileY := 0; tileY < FrameHeight/8; tileY++ {
		for tileX := 0; tileX < FrameWidth/8; tileX++ {
			id := p.ppuRead(base + uint16(tileY*32+tileX))
			palette := p.bgPalette(base, tileX, tileY)
			tile := pattern + uint16(id)*16

			for row := 0; row < 8; row++ {
				// 2 bytes represent an 8 pixel row.
				tileLo := p.ppuRead(tile + uint16(row))
				tileHi := p.ppuRead(tile + uint16(row) + 8)

				for col := 0; col < 8; col++ {
					// Calculate each pixel's value (0-3). The LSB represents
					// the last pixel in the row of 8.
					pixel := (tileLo & 0x01) | (tileHi&0x01)<<1
					tileLo >>= 1
					tileHi >>= 1

					x := tileX*8 + (7 - col) // Invert x-axis
					y := tileY*8 + row

					f.Pix[y*FrameWidth+x] = palette[pixel]
				}
			}
		}
	}
}

// The four palette indices used by a background tile. Each attribute byte
// covers a 4x4 tile area split into 2x2 tile quadrants.
func (p *Ppu) bgPalette(base uint16, tileX, tileY int) [4]byte {
	attr := p.ppuRead(base + attrTblOffset + uint16(tileY/4*8+tileX/4))
	shift := uint((tileY%4)/2*4 + (tileX%4)/2*2)
	start := int(attr>>shift&0x03) * 4

	return [4]byte{
		p.paletteTable[0],
		p.paletteTable[start+1],
		p.paletteTable[start+2],
		p.paletteTable[start+3],
	}
}
