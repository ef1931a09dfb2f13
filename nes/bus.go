package nes

// Main bus used by the CPU.
//
// Addresses with nothing mapped (APU and I/O registers other than $4014,
// and $4020-$7FFF) read as zero and ignore writes.
type Bus struct {
	Ram  [2 * 1024]byte // 2KB internal RAM.
	Ppu  *Ppu           // Picture processing unit.
	Cart *Cartridge     // NES Cartridge.

	dmaStall int // CPU cycles owed to the last OAM DMA
}

const (
	// RAM
	ramMinAddr uint16 = 0x0000
	ramMaxAddr uint16 = 0x1FFF
	ramMirror  uint16 = 0x07FF // mirror every 2KB.

	// PPU
	ppuMinAddr uint16 = 0x2000
	ppuMaxAddr uint16 = 0x3FFF
	ppuMirror  uint16 = 0x0007 // mirror every 8 bytes.

	// OAM DMA
	oamDmaAddr   uint16 = 0x4014
	oamDmaCycles        = 513

	// Cartridge
	prgMinAddr uint16 = 0x8000
	prgMaxAddr uint16 = 0xFFFF
)

// NewBus attaches a cartridge to the bus and to a new PPU.
func NewBus(cart *Cartridge) *Bus {
	return &Bus{
		Ppu:  NewPpu(cart),
		Cart: cart,
	}
}

// Used by the CPU to read data from the main bus at a specified address.
func (b *Bus) CpuRead(addr uint16) byte {
	var data byte

	if addr <= ramMaxAddr {
		data = b.Ram[addr&ramMirror]
	} else if addr >= ppuMinAddr && addr <= ppuMaxAddr {
		data = b.Ppu.cpuRead(addr & ppuMirror)
	} else if addr >= prgMinAddr {
		data = b.Cart.cpuRead(addr)
	}

	return data
}

// Used by the CPU to write data to the main bus at a specified address.
func (b *Bus) CpuWrite(addr uint16, data byte) {
	if addr <= ramMaxAddr {
		b.Ram[addr&ramMirror] = data
	} else if addr >= ppuMinAddr && addr <= ppuMaxAddr {
		b.Ppu.cpuWrite(addr&ppuMirror, data)
	} else if addr == oamDmaAddr {
		b.oamDma(data)
	}
	// PRG-ROM is read-only.
}

// Peek reads like CpuRead but leaves the PPU registers untouched.
func (b *Bus) Peek(addr uint16) byte {
	var data byte

	if addr <= ramMaxAddr {
		data = b.Ram[addr&ramMirror]
	} else if addr >= ppuMinAddr && addr <= ppuMaxAddr {
		data = b.Ppu.peekRegister(addr & ppuMirror)
	} else if addr >= prgMinAddr {
		data = b.Cart.cpuRead(addr)
	}

	return data
}

// Copy page $XX00-$XXFF into OAM. The CPU is stalled while the copy runs.
func (b *Bus) oamDma(page byte) {
	var buf [256]byte
	base := uint16(page) << 8
	for i := range buf {
		buf[i] = b.CpuRead(base | uint16(i))
	}
	b.Ppu.writeOam(buf[:])
	b.dmaStall += oamDmaCycles
}

// TakeStall returns and clears the CPU cycles owed to OAM DMA.
func (b *Bus) TakeStall() int {
	stall := b.dmaStall
	b.dmaStall = 0
	return stall
}

func (b *Bus) PollNMI() bool { return b.Ppu.pollNMI() }

// NmiPending reports a pending NMI without clearing it.
func (b *Bus) NmiPending() bool { return b.Ppu.nmiPending }

func (b *Bus) TickPpu(dots int) { b.Ppu.Tick(dots) }

// Reset the devices on the bus. RAM keeps its contents.
func (b *Bus) Reset() {
	b.Ppu.Reset()
	b.dmaStall = 0
}
