package nes

import (
	"testing"

	"github.com/n-ulricksen/nescore/internal/test"
)

func newTestBus(t *testing.T) *Bus {
	t.Helper()
	cart, err := NewCartridge(inesImage(1, 0, 0, 0))
	test.DemandSuccess(t, err)
	return NewBus(cart)
}

func TestBusRamMirroring(t *testing.T) {
	bus := newTestBus(t)

	bus.CpuWrite(0x0001, 0x42)
	for _, addr := range []uint16{0x0001, 0x0801, 0x1001, 0x1801} {
		test.ExpectEquality(t, bus.CpuRead(addr), byte(0x42), addr)
	}

	bus.CpuWrite(0x1FFF, 0x24)
	test.ExpectEquality(t, bus.Ram[0x07FF], byte(0x24))
}

func TestBusPpuRegisterMirroring(t *testing.T) {
	bus := newTestBus(t)

	// $3FFE is $2006, $3FFF is $2007.
	bus.CpuWrite(0x3FFE, 0x21)
	bus.CpuWrite(0x2006, 0x08)
	bus.CpuWrite(0x3FFF, 0x55)

	test.ExpectEquality(t, bus.Ppu.ppuRead(0x2108), byte(0x55))
}

func TestBusUnmapped(t *testing.T) {
	bus := newTestBus(t)

	for _, addr := range []uint16{0x4000, 0x4015, 0x4016, 0x4020, 0x5000, 0x6000, 0x7FFF} {
		bus.CpuWrite(addr, 0xFF)
		test.ExpectEquality(t, bus.CpuRead(addr), byte(0), addr)
	}

	// Write-only PPU registers read as zero.
	bus.CpuWrite(0x2000, 0x80)
	bus.CpuWrite(0x2001, 0x1E)
	test.ExpectEquality(t, bus.CpuRead(0x2000), byte(0))
	test.ExpectEquality(t, bus.CpuRead(0x2001), byte(0))
	test.ExpectEquality(t, bus.CpuRead(0x2005), byte(0))

	// PRG-ROM ignores writes.
	before := bus.CpuRead(0x8000)
	bus.CpuWrite(0x8000, before+1)
	test.ExpectEquality(t, bus.CpuRead(0x8000), before)
}

func TestBusOamDma(t *testing.T) {
	bus := newTestBus(t)
	for i := 0; i < 256; i++ {
		bus.CpuWrite(0x0200+uint16(i), byte(i))
	}

	bus.CpuWrite(0x4014, 0x02)

	for i := 0; i < 256; i++ {
		if !test.ExpectEquality(t, bus.Ppu.oam.read(byte(i)), byte(i), i) {
			break
		}
	}
	test.ExpectEquality(t, bus.TakeStall(), oamDmaCycles)
	test.ExpectEquality(t, bus.TakeStall(), 0)
}

func TestBusPeek(t *testing.T) {
	bus := newTestBus(t)
	bus.Ppu.status.setFlag(statusVBlank)

	test.ExpectEquality(t, bus.Peek(0x2002)&0x80, byte(0x80))
	test.ExpectEquality(t, bus.Ppu.status.getFlag(statusVBlank), true, "peek leaves vblank")

	test.ExpectEquality(t, bus.CpuRead(0x2002)&0x80, byte(0x80))
	test.ExpectEquality(t, bus.Ppu.status.getFlag(statusVBlank), false, "read clears vblank")

	bus.CpuWrite(0x0010, 0x99)
	test.ExpectEquality(t, bus.Peek(0x0810), byte(0x99))
	test.ExpectEquality(t, bus.Peek(0x6000), byte(0))
}
