package nes

// flatBus is 64KB of plain RAM, for exercising the CPU on its own.
type flatBus struct {
	mem  [0x10000]byte
	nmi  bool
	dots int
}

func (b *flatBus) CpuRead(addr uint16) byte { return b.mem[addr] }
func (b *flatBus) CpuWrite(addr uint16, data byte) { b.mem[addr] = data }
func (b *flatBus) TickPpu(dots int) { b.dots += dots }
func (b *flatBus) Peek(addr uint16) byte { return b.mem[addr] }
func (b *flatBus) load(addr uint16, program ...byte) { copy(b.mem[addr:], program) }

func (b *flatBus) PollNMI() bool {
	pending := b.nmi
	b.nmi = false
	return pending
}

func (b *flatBus) setWord(addr, value uint16) {
	b.mem[addr] = byte(value)
	b.mem[addr+1] = byte(value >> 8)
}

// newFlatCpu resets a CPU on a flatBus with program loaded at $8000.
func newFlatCpu(program ...byte) (*Cpu6502, *flatBus) {
	bus := &flatBus{}
	bus.load(0x8000, program...)
	bus.setWord(resetVectAddr, 0x8000)
	cpu := NewCpu6502()
	cpu.Reset(bus)
	return cpu, bus
}

// step runs one instruction and returns its cycle count, failing on error.
func step(cpu *Cpu6502, bus CpuBus) int {
	cycles, err := cpu.Step(bus)
	if err != nil {
		panic(err)
	}
	return cycles
}

// inesImage builds an iNES image. PRG bank n is filled with byte n and CHR
// bank n with 0x80|n, so tests can tell banks apart.
func inesImage(prgBanks, chrBanks int, flags6, flags7 byte) []byte {
	data := []byte{'N', 'E', 'S', 0x1A, byte(prgBanks), byte(chrBanks), flags6, flags7}
	data = append(data, make([]byte, 8)...)
	if flags6&flag6Trainer != 0 {
		data = append(data, make([]byte, inesTrainerSize)...)
	}
	for i := 0; i < prgBanks; i++ {
		data = append(data, bytesOf(byte(i), prgBankSize)...)
	}
	for i := 0; i < chrBanks; i++ {
		data = append(data, bytesOf(0x80|byte(i), chrBankSize)...)
	}
	return data
}

func bytesOf(b byte, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = b
	}
	return out
}

// Vectors used by consoles built with newTestConsole.
const (
	testResetAddr uint16 = 0x8000
	testNmiAddr   uint16 = 0x9000
	testIrqAddr   uint16 = 0xA000
)

// newTestConsole returns a reset console running program from $8000 on a
// 16KB NROM board with CHR-RAM. The NMI handler at $9000 is RTI.
func newTestConsole(mirroring Mirroring, program ...byte) *Console {
	var flags6 byte
	switch mirroring {
	case MirrorVertical:
		flags6 = flag6Vertical
	case MirrorFourScreen:
		flags6 = flag6FourScreen
	}

	image := inesImage(1, 0, flags6, 0)
	prg := image[inesHeaderSize:]
	for i := range prg {
		prg[i] = 0xEA // NOP
	}
	copy(prg[testResetAddr&0x3FFF:], program)
	prg[testNmiAddr&0x3FFF] = 0x40 // RTI

	setWord := func(vector, addr uint16) {
		prg[vector&0x3FFF] = byte(addr)
		prg[(vector+1)&0x3FFF] = byte(addr >> 8)
	}
	setWord(nmiVectAddr, testNmiAddr)
	setWord(resetVectAddr, testResetAddr)
	setWord(irqVectAddr, testIrqAddr)

	cart, err := NewCartridge(image)
	if err != nil {
		panic(err)
	}
	c := NewConsole(cart)
	c.Reset()
	return c
}
