package nes

import (
	"fmt"
	"log"
	"strings"
)

// TraceKind identifies what a TraceEvent reports.
type TraceKind byte

const (
	TraceInstructionFetch TraceKind = iota // Opcode read at Addr
	TraceOperandFetch                      // Operand byte read at Addr
	TraceMemoryRead                        // Data read by an instruction
	TraceMemoryWrite                       // Data written by an instruction
	TraceStackPush
	TraceStackPull
	TraceNmi      // NMI taken; Addr is the handler address
	TraceSnapshot // State holds the CPU before the next instruction
)

var traceKindNames = [...]string{
	"fetch", "operand", "read", "write", "push", "pull", "nmi", "snapshot",
}

func (k TraceKind) String() string {
	if int(k) < len(traceKindNames) {
		return traceKindNames[k]
	}
	return fmt.Sprintf("TraceKind(%d)", int(k))
}

// TraceEvent is one observable step of execution.
type TraceEvent struct {
	Kind  TraceKind
	Addr  uint16
	Data  byte
	State *CpuState // Only for TraceSnapshot
}

// CpuState is a snapshot of the console taken before an instruction runs.
type CpuState struct {
	Pc       uint16
	Inst     Instruction
	Operand  [2]byte
	A        byte
	X        byte
	Y        byte
	Sp       byte
	P        SF6502
	Cycles   uint64
	Scanline int
	Dot      int
}

// Tracer receives trace events. A console without a tracer does no tracing
// work; a tracer must not change emulation state.
type Tracer interface {
	Record(ev TraceEvent)
}

// TracerFunc adapts a function to the Tracer interface.
type TracerFunc func(ev TraceEvent)

func (f TracerFunc) Record(ev TraceEvent) { f(ev) }

// LogTracer writes one line per instruction in the nestest.log layout. With
// Verbose set, bus traffic is logged as well.
type LogTracer struct {
	Logger  *log.Logger
	Verbose bool
}

func NewLogTracer(logger *log.Logger) *LogTracer {
	return &LogTracer{Logger: logger}
}

func (t *LogTracer) Record(ev TraceEvent) {
	switch {
	case ev.Kind == TraceSnapshot:
		t.Logger.Print(FormatTraceLine(ev.State))
	case ev.Kind == TraceNmi:
		t.Logger.Printf("NMI -> $%04X", ev.Addr)
	case t.Verbose:
		t.Logger.Printf("      %-8v $%04X = %02X", ev.Kind, ev.Addr, ev.Data)
	}
}

// FormatTraceLine renders s the way nestest.log does, e.g.
//
//	C000  4C F5 C5  JMP $C5F5                       A:00 X:00 Y:00 P:24 SP:FD PPU:  0, 21 CYC:7
func FormatTraceLine(s *CpuState) string {
	raw := make([]string, 0, 3)
	raw = append(raw, fmt.Sprintf("%02X", s.Inst.Opcode))
	for i := byte(0); i+1 < s.Inst.Bytes; i++ {
		raw = append(raw, fmt.Sprintf("%02X", s.Operand[i]))
	}

	return fmt.Sprintf("%04X  %-8s  %-32sA:%02X X:%02X Y:%02X P:%02X SP:%02X PPU:%3d,%3d CYC:%d",
		s.Pc, strings.Join(raw, " "), formatInstruction(s.Inst, s.Operand, s.Pc),
		s.A, s.X, s.Y, byte(s.P), s.Sp, s.Scanline, s.Dot, s.Cycles)
}
