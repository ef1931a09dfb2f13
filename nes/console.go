package nes

import (
	"io"
	"log"
)

// CyclesPerFrame is the number of CPU cycles in one NTSC frame.
const CyclesPerFrame = 29781

// Console ties the CPU, bus, PPU and cartridge together. It is not safe for
// concurrent use; hosts that step and render from different goroutines must
// serialize access.
type Console struct {
	Cpu *Cpu6502
	Bus *Bus

	logger *log.Logger
	tracer Tracer
	frame  Frame
}

// Option configures a Console.
type Option func(*Console)

// WithLogger sends console diagnostics to l.
func WithLogger(l *log.Logger) Option {
	return func(c *Console) { c.logger = l }
}

// WithTracer installs a tracer for CPU activity.
func WithTracer(t Tracer) Option {
	return func(c *Console) { c.tracer = t }
}

// WithIllegalOpcodes selects the unofficial opcode policy.
func WithIllegalOpcodes(p IllegalOpcodePolicy) Option {
	return func(c *Console) { c.Cpu.Illegal = p }
}

// NewConsole inserts cart into a new console. Call Reset before stepping.
func NewConsole(cart *Cartridge, opts ...Option) *Console {
	c := &Console{
		Cpu:    NewCpu6502(),
		Bus:    NewBus(cart),
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.Cpu.SetTracer(c.tracer)

	c.logger.Printf("cartridge: %d KB PRG, %d KB CHR (ram=%v), %v mirroring",
		len(cart.Prg)/1024, len(cart.Chr)/1024, cart.HasChrRAM(), cart.Mirroring)

	return c
}

// Reset the NES. The CPU reloads its program counter from $FFFC and the PPU
// is advanced by the reset sequence's 7 CPU cycles.
func (c *Console) Reset() {
	c.Bus.Reset()
	c.Cpu.Reset(c.Bus)
	c.Bus.TickPpu(resetCycles * ppuDotsPerCpuCycle)

	c.logger.Printf("reset: PC=$%04X", c.Cpu.Pc)
}

// Step runs one CPU step, an instruction or an NMI entry, and advances the
// PPU to match. It returns the CPU cycles spent, DMA stalls included.
func (c *Console) Step() (int, error) {
	if c.tracer != nil && !c.Bus.NmiPending() {
		c.tracer.Record(TraceEvent{Kind: TraceSnapshot, State: c.State()})
	}

	cycles, err := c.Cpu.Step(c.Bus)
	if err != nil {
		c.logger.Printf("cpu halted: %v", err)
		return 0, err
	}

	if stall := c.Bus.TakeStall(); stall > 0 {
		// DMA waits one more cycle when it starts on an odd CPU cycle.
		if c.Cpu.Cycles%2 == 1 {
			stall++
		}
		c.Cpu.Cycles += uint64(stall)
		cycles += stall
	}

	c.Bus.TickPpu(cycles * ppuDotsPerCpuCycle)

	return cycles, nil
}

// StepN runs n steps, stopping early on error. It returns the total CPU
// cycles spent.
func (c *Console) StepN(n int) (int, error) {
	total := 0
	for i := 0; i < n; i++ {
		cycles, err := c.Step()
		total += cycles
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// StepFrame runs until the PPU finishes the current frame, then renders it.
func (c *Console) StepFrame() error {
	c.Bus.Ppu.frameComplete = false
	for !c.Bus.Ppu.frameComplete {
		if _, err := c.Step(); err != nil {
			return err
		}
	}
	c.Bus.Ppu.frameComplete = false
	c.Bus.Ppu.Render(&c.frame)
	return nil
}

// Frame renders the background as it stands and returns it. The returned
// frame is reused by later calls.
func (c *Console) Frame() *Frame {
	c.Bus.Ppu.Render(&c.frame)
	return &c.frame
}

// Disassemble the instruction at the program counter.
func (c *Console) Disassemble() string {
	text, _ := DisassembleOne(c.Bus, c.Cpu.Pc)
	return text
}

// State captures the CPU registers and PPU position before the next
// instruction. Reading it has no side effects.
func (c *Console) State() *CpuState {
	pc := c.Cpu.Pc
	inst := instLookup[c.Bus.Peek(pc)]

	s := &CpuState{
		Pc:       pc,
		Inst:     inst,
		A:        c.Cpu.A,
		X:        c.Cpu.X,
		Y:        c.Cpu.Y,
		Sp:       c.Cpu.Sp,
		P:        c.Cpu.Status,
		Cycles:   c.Cpu.Cycles,
		Scanline: c.Bus.Ppu.scanline,
		Dot:      c.Bus.Ppu.cycle,
	}
	for i := byte(0); i+1 < inst.Bytes; i++ {
		s.Operand[i] = c.Bus.Peek(pc + 1 + uint16(i))
	}
	return s
}
