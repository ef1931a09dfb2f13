package nes

// CpuBus is the CPU's view of the system. The CPU holds no reference to it;
// the bus is passed to every operation that touches memory.
type CpuBus interface {
	CpuRead(addr uint16) byte
	CpuWrite(addr uint16, data byte)

	// PollNMI reports and clears a pending non-maskable interrupt.
	PollNMI() bool

	// TickPpu advances the PPU by the given number of dots.
	TickPpu(dots int)
}

type Cpu6502 struct {
	Pc     uint16 // Program Counter
	Sp     byte   // Stack Pointer: low 8 bits of next free location on stack.
	A      byte   // Accumulator Register
	X      byte   // X Register
	Y      byte   // Y Register
	Status SF6502 // Processor Status Flags

	Cycles uint64 // Total # of cycles executed by the CPU

	// Illegal selects how unofficial opcodes are handled.
	Illegal IllegalOpcodePolicy

	tracer Tracer

	inst Instruction // Instruction being executed
}

const (
	stackBase uint16 = 0x0100

	nmiVectAddr   uint16 = 0xFFFA
	resetVectAddr uint16 = 0xFFFC
	irqVectAddr   uint16 = 0xFFFE

	resetCycles  = 7
	nmiPpuCycles = 2
)

func NewCpu6502() *Cpu6502 {
	return &Cpu6502{
		Sp:     0xFD,
		Status: StatusFlagU | StatusFlagI,
	}
}

// SetTracer installs t; nil disables tracing.
func (cpu *Cpu6502) SetTracer(t Tracer) { cpu.tracer = t }

func (cpu *Cpu6502) trace(kind TraceKind, addr uint16, data byte) {
	if cpu.tracer != nil {
		cpu.tracer.Record(TraceEvent{Kind: kind, Addr: addr, Data: data})
	}
}

// Read from the bus.
func (cpu *Cpu6502) read(bus CpuBus, addr uint16) byte {
	data := bus.CpuRead(addr)
	cpu.trace(TraceMemoryRead, addr, data)
	return data
}

// Write to the bus.
func (cpu *Cpu6502) write(bus CpuBus, addr uint16, data byte) {
	bus.CpuWrite(addr, data)
	cpu.trace(TraceMemoryWrite, addr, data)
}

// Read a word from memory (little endian order).
func (cpu *Cpu6502) readWord(bus CpuBus, addr uint16) uint16 {
	lo := cpu.read(bus, addr)
	hi := cpu.read(bus, addr+1)

	return (uint16(hi) << 8) | uint16(lo)
}

// Read the next byte of the instruction stream.
func (cpu *Cpu6502) fetchByte(bus CpuBus, kind TraceKind) byte {
	data := bus.CpuRead(cpu.Pc)
	cpu.trace(kind, cpu.Pc, data)
	cpu.Pc++
	return data
}

// Functions to push and pop from the stack. The stack pointer wraps within
// page one.
func (cpu *Cpu6502) stackPush(bus CpuBus, data byte) {
	addr := stackBase | uint16(cpu.Sp)
	bus.CpuWrite(addr, data)
	cpu.trace(TraceStackPush, addr, data)
	cpu.Sp--
}

func (cpu *Cpu6502) stackPop(bus CpuBus) byte {
	cpu.Sp++
	addr := stackBase | uint16(cpu.Sp)
	data := bus.CpuRead(addr)
	cpu.trace(TraceStackPull, addr, data)
	return data
}

// Words go on the stack high byte first.
func (cpu *Cpu6502) stackPushWord(bus CpuBus, data uint16) {
	cpu.stackPush(bus, byte(data>>8))
	cpu.stackPush(bus, byte(data))
}

func (cpu *Cpu6502) stackPopWord(bus CpuBus) uint16 {
	lo := cpu.stackPop(bus)
	hi := cpu.stackPop(bus)
	return uint16(hi)<<8 | uint16(lo)
}

////////////////////////////////////////////////////////////////
// Status Flags
type SF6502 byte // 6502 Status Flag

const (
	StatusFlagC SF6502 = 1 << iota // Carry
	StatusFlagZ                    // Zero
	StatusFlagI                    // Interrupt Disable
	StatusFlagD                    // Decimal Mode (not used on NES)
	StatusFlagB                    // Break Command
	StatusFlagU                    // UNUSED, always reads 1
	StatusFlagV                    // Overflow
	StatusFlagN                    // Negative
)

// Get reports whether every flag in f is set.
func (s SF6502) Get(f SF6502) bool { return s&f == f }

// Set sets or clears the flags in f.
func (s *SF6502) Set(f SF6502, b bool) {
	if b {
		*s |= f
	} else {
		*s &^= f
	}
}

// String renders the register NV-BDIZC style, upper case for set flags.
func (s SF6502) String() string {
	const names = "czidbuvn"
	out := make([]byte, 8)
	for i := 0; i < 8; i++ {
		c := names[i]
		if s&(1<<i) != 0 {
			c -= 'a' - 'A'
		}
		out[7-i] = c
	}
	return string(out)
}

// Convenience functions used to get and set CPU status flags.
func (cpu *Cpu6502) getFlag(f SF6502) bool { return cpu.Status.Get(f) }

func (cpu *Cpu6502) setFlag(f SF6502, b bool) { cpu.Status.Set(f, b) }

// Zero and Negative follow most results.
func (cpu *Cpu6502) setZN(v byte) {
	cpu.setFlag(StatusFlagZ, v == 0)
	cpu.setFlag(StatusFlagN, v&0x80 != 0)
}

////////////////////////////////////////////////////////////////
// Interrupts

// Reset puts the CPU in its power-up state and loads the program counter
// from the reset vector.
func (cpu *Cpu6502) Reset(bus CpuBus) {
	// Clear registers, reset stack pointer
	cpu.A = 0x00
	cpu.X = 0x00
	cpu.Y = 0x00
	cpu.Status = StatusFlagU | StatusFlagI
	cpu.Sp = 0xFD

	// Get the program counter from the reset vector location.
	cpu.Pc = cpu.readWord(bus, resetVectAddr)

	// Spend time on reset
	cpu.Cycles = resetCycles
}

// Non-Maskable Interrupt
func (cpu *Cpu6502) nmi(bus CpuBus) {
	cpu.stackPushWord(bus, cpu.Pc)

	// B is clear on the pushed copy, only BRK and PHP set it.
	flags := cpu.Status
	flags.Set(StatusFlagB, false)
	flags.Set(StatusFlagU, true)
	cpu.stackPush(bus, byte(flags))

	cpu.setFlag(StatusFlagI, true)
	bus.TickPpu(nmiPpuCycles)

	cpu.Pc = cpu.readWord(bus, nmiVectAddr)
	cpu.trace(TraceNmi, cpu.Pc, 0)
}

// Step services a pending NMI or runs one instruction, and returns the CPU
// cycles spent. Taking an NMI runs no instruction and costs no CPU cycles.
//
// With the IllegalHalt policy an unofficial opcode returns an
// *IllegalOpcodeError and leaves the CPU untouched, Pc still pointing at the
// offending opcode.
func (cpu *Cpu6502) Step(bus CpuBus) (int, error) {
	if bus.PollNMI() {
		cpu.nmi(bus)
		return 0, nil
	}

	start := cpu.Cycles
	pc := cpu.Pc

	// Get the next opcode by reading from the bus at the location of the
	// current program counter.
	opcode := bus.CpuRead(pc)

	// Lookup by opcode the instruction to be executed.
	inst, err := Decode(opcode)
	if err != nil && cpu.Illegal == IllegalHalt {
		err.(*IllegalOpcodeError).Pc = pc
		return 0, err
	}

	cpu.trace(TraceInstructionFetch, pc, opcode)
	cpu.Pc++
	cpu.inst = inst
	cpu.Cycles += uint64(inst.Cycles)

	// Execute the instruction. Page crossings and taken branches add to
	// cpu.Cycles as they happen.
	opHandlers[inst.Mnemonic](cpu, bus)

	return int(cpu.Cycles - start), nil
}

////////////////////////////////////////////////////////////////
// Operands

// Read the raw operand bytes of the current instruction.
func (cpu *Cpu6502) operand(bus CpuBus) uint16 {
	switch cpu.inst.Mode.operandBytes() {
	case 1:
		return uint16(cpu.fetchByte(bus, TraceOperandFetch))
	case 2:
		lo := cpu.fetchByte(bus, TraceOperandFetch)
		hi := cpu.fetchByte(bus, TraceOperandFetch)
		return uint16(hi)<<8 | uint16(lo)
	}
	return 0
}

// Consume the operand and return the effective address, charging the
// instruction's page penalty if indexing crossed a page.
func (cpu *Cpu6502) address(bus CpuBus) uint16 {
	addr, crossed := cpu.effectiveAddress(bus, cpu.inst.Mode, cpu.operand(bus))
	if crossed {
		cpu.Cycles += uint64(cpu.inst.PageCycles)
	}
	return addr
}

// Consume the operand and return the value it names, inline for Immediate.
func (cpu *Cpu6502) fetch(bus CpuBus) byte {
	if cpu.inst.Mode == IMM {
		return byte(cpu.operand(bus))
	}
	return cpu.read(bus, cpu.address(bus))
}

// Read-modify-write on the accumulator or on memory, depending on the mode.
func (cpu *Cpu6502) modify(bus CpuBus, f func(byte) byte) {
	if cpu.inst.Mode == ACC {
		cpu.A = f(cpu.A)
		cpu.setZN(cpu.A)
		return
	}
	addr := cpu.address(bus)
	result := f(cpu.read(bus, addr))
	cpu.write(bus, addr, result)
	cpu.setZN(result)
}
