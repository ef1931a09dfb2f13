package nes

import (
	"testing"

	"github.com/n-ulricksen/nescore/internal/test"
)

func TestDisassembleOne(t *testing.T) {
	bus := &flatBus{}
	bus.load(0x8000,
		0xA9, 0x10,
		0x9D, 0x00, 0x02,
		0xD0, 0xFC,
		0x6C, 0x34, 0x12,
		0xB1, 0x10,
		0x0A,
		0xB6, 0x20,
		0x02,
	)

	tests := []struct {
		addr uint16
		text string
		size int
	}{
		{0x8000, "LDA #$10", 2},
		{0x8002, "STA $0200,X", 3},
		{0x8005, "BNE $8003", 2},
		{0x8007, "JMP ($1234)", 3},
		{0x800A, "LDA ($10),Y", 2},
		{0x800C, "ASL A", 1},
		{0x800D, "LDX $20,Y", 2},
		{0x800F, "XXX", 1},
	}

	for _, tc := range tests {
		text, size := DisassembleOne(bus, tc.addr)
		test.ExpectEquality(t, text, tc.text, tc.addr)
		test.ExpectEquality(t, size, tc.size, tc.addr)
	}
}

func TestDisassembleRange(t *testing.T) {
	bus := &flatBus{}
	bus.load(0x8000, 0xA9, 0x10, 0xEA, 0x4C, 0x00, 0x80)

	lines := Disassemble(bus, 0x8000, 0x8005)
	test.DemandEquality(t, len(lines), 3)
	test.ExpectEquality(t, lines[0x8000], "$8000: LDA #$10 {IMM}")
	test.ExpectEquality(t, lines[0x8002], "$8002: NOP {IMP}")
	test.ExpectEquality(t, lines[0x8003], "$8003: JMP $8000 {ABS}")
}
