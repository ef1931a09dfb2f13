package nes

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/n-ulricksen/nescore/internal/test"
)

func TestConsoleReset(t *testing.T) {
	c := newTestConsole(MirrorHorizontal)

	test.ExpectEquality(t, c.Cpu.Pc, testResetAddr)
	test.ExpectEquality(t, c.Cpu.Cycles, uint64(7))
	test.ExpectEquality(t, c.Bus.Ppu.Scanline(), 0)
	test.ExpectEquality(t, c.Bus.Ppu.Cycle(), 21)
}

func TestConsoleStep(t *testing.T) {
	c := newTestConsole(MirrorHorizontal, 0xEA) // NOP

	cycles, err := c.Step()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, cycles, 2)
	test.ExpectEquality(t, c.Bus.Ppu.Cycle(), 27)

	total, err := c.StepN(10)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, total, 20)
	test.ExpectEquality(t, c.Cpu.Pc, uint16(0x800B))
}

func TestConsoleStepFrame(t *testing.T) {
	c := newTestConsole(MirrorHorizontal, 0x4C, 0x00, 0x80) // JMP $8000

	test.DemandSuccess(t, c.StepFrame())
	test.ExpectEquality(t, c.Bus.Ppu.FrameCount(), uint64(1))

	start := c.Cpu.Cycles
	test.DemandSuccess(t, c.StepFrame())
	test.ExpectEquality(t, c.Bus.Ppu.FrameCount(), uint64(2))

	// A frame ends on an instruction boundary, so allow one JMP either way.
	elapsed := int(c.Cpu.Cycles - start)
	test.ExpectSuccess(t, elapsed >= CyclesPerFrame-3 && elapsed <= CyclesPerFrame+3, elapsed)
}

func TestConsoleNmi(t *testing.T) {
	// LDA #$80; STA $2000; JMP $8005
	c := newTestConsole(MirrorHorizontal, 0xA9, 0x80, 0x8D, 0x00, 0x20, 0x4C, 0x05, 0x80)

	var handlers []uint16
	c.Cpu.SetTracer(TracerFunc(func(ev TraceEvent) {
		if ev.Kind == TraceNmi {
			handlers = append(handlers, ev.Addr)
		}
	}))

	for i := 0; i < 3; i++ {
		test.DemandSuccess(t, c.StepFrame())
	}

	test.ExpectEquality(t, len(handlers), 3)
	for _, addr := range handlers {
		test.ExpectEquality(t, addr, testNmiAddr)
	}

	// Every handler returned to the loop.
	test.ExpectEquality(t, c.Cpu.Sp, byte(0xFD))
}

func TestConsoleOamDmaStall(t *testing.T) {
	// LDA #$02; STA $4014
	c := newTestConsole(MirrorHorizontal, 0xA9, 0x02, 0x8D, 0x14, 0x40)

	_, err := c.Step()
	test.DemandSuccess(t, err)

	// The store ends on cycle 13, odd, costing the extra alignment cycle.
	cycles, err := c.Step()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, cycles, 4+oamDmaCycles+1)
	test.ExpectEquality(t, c.Cpu.Cycles, uint64(7+2+4+oamDmaCycles+1))
}

func TestConsoleIllegalOpcode(t *testing.T) {
	c := newTestConsole(MirrorHorizontal, 0x02)

	_, err := c.Step()
	var illegal *IllegalOpcodeError
	test.DemandSuccess(t, errors.As(err, &illegal))
	test.ExpectEquality(t, illegal.Pc, testResetAddr)
	test.ExpectFailure(t, c.StepFrame())
	test.ExpectEquality(t, c.Cpu.Pc, testResetAddr)

	nop := newTestConsole(MirrorHorizontal, 0x02)
	WithIllegalOpcodes(IllegalNop)(nop)
	cycles, err := nop.Step()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, cycles, 2)
}

func TestConsoleFrame(t *testing.T) {
	// Fill the palette through $2006/$2007 and turn the background on.
	c := newTestConsole(MirrorVertical,
		0xA9, 0x3F, 0x8D, 0x06, 0x20, // LDA #$3F; STA $2006
		0xA9, 0x00, 0x8D, 0x06, 0x20, // LDA #$00; STA $2006
		0xA9, 0x21, 0x8D, 0x07, 0x20, // LDA #$21; STA $2007
		0xA9, 0x08, 0x8D, 0x01, 0x20, // LDA #$08; STA $2001
		0x4C, 0x14, 0x80,             // JMP $8014
	)

	test.DemandSuccess(t, c.StepFrame())
	f := c.Frame()
	test.ExpectEquality(t, f.At(0, 0), byte(0x21))
	test.ExpectEquality(t, f.At(FrameWidth-1, FrameHeight-1), byte(0x21))
}

func TestConsoleTrace(t *testing.T) {
	var buf bytes.Buffer
	tracer := NewLogTracer(log.New(&buf, "", 0))

	cart := newTestConsole(MirrorHorizontal, 0x4C, 0x00, 0x80).Bus.Cart
	c := NewConsole(cart, WithTracer(tracer))
	c.Reset()

	_, err := c.StepN(2)
	test.DemandSuccess(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	test.DemandEquality(t, len(lines), 2)

	want := "8000  4C 00 80  JMP $8000" + strings.Repeat(" ", 23) +
		"A:00 X:00 Y:00 P:24 SP:FD PPU:  0, 21 CYC:7"
	test.ExpectEquality(t, lines[0], want)
	test.ExpectSuccess(t, strings.HasSuffix(lines[1], "PPU:  0, 30 CYC:10"), lines[1])
}
