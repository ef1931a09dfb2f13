package nes

import "fmt"

type AddressingMode int

const (
	IMP AddressingMode = iota // Implied
	ACC                       // Accumulator
	IMM                       // Immediate
	REL                       // Relative
	ZP0                       // Zero Page
	ZPX                       // Zero Page, X
	ZPY                       // Zero Page, Y
	ABS                       // Absolute
	ABX                       // Absolute, X
	ABY                       // Absolute, Y
	IND                       // Indirect
	IZX                       // Indexed Indirect, (zp,X)
	IZY                       // Indirect Indexed, (zp),Y
)

var addressingModeNames = [...]string{
	IMP: "IMP", ACC: "ACC", IMM: "IMM", REL: "REL",
	ZP0: "ZP0", ZPX: "ZPX", ZPY: "ZPY",
	ABS: "ABS", ABX: "ABX", ABY: "ABY",
	IND: "IND", IZX: "IZX", IZY: "IZY",
}

func (m AddressingMode) String() string {
	if m < 0 || int(m) >= len(addressingModeNames) {
		return fmt.Sprintf("AddressingMode(%d)", int(m))
	}
	return addressingModeNames[m]
}

// Number of operand bytes following the opcode.
func (m AddressingMode) operandBytes() byte {
	switch m {
	case IMP, ACC:
		return 0
	case ABS, ABX, ABY, IND:
		return 2
	}
	return 1
}

// AddressingMisuse is the panic value raised when an effective address is
// requested for a mode that has none. It is a bug in the caller, never a
// property of the program being run.
type AddressingMisuse struct {
	Mode AddressingMode
}

func (e AddressingMisuse) Error() string {
	return fmt.Sprintf("nes: addressing mode %v has no effective address", e.Mode)
}

// effectiveAddress resolves the raw operand of the current instruction to the
// address it names. The operand bytes must already be consumed, so cpu.Pc
// points at the next instruction. The second result reports whether indexing
// (or a relative branch) moved into a different page.
//
// Implied, Accumulator and Immediate have no address; asking for one panics.
func (cpu *Cpu6502) effectiveAddress(bus CpuBus, mode AddressingMode, raw uint16) (uint16, bool) {
	switch mode {
	case ZP0:
		// Use the second byte of the instruction to index into page zero.
		return raw & 0x00FF, false

	case ZPX:
		// Indexing never leaves page zero.
		return uint16(byte(raw) + cpu.X), false

	case ZPY:
		return uint16(byte(raw) + cpu.Y), false

	case ABS:
		// The second byte of the instruction contains the low order byte of the
		// address. The third byte of the instruction contains the high order byte.
		return raw, false

	case ABX:
		addr := raw + uint16(cpu.X)
		return addr, addr&0xFF00 != raw&0xFF00

	case ABY:
		addr := raw + uint16(cpu.Y)
		return addr, addr&0xFF00 != raw&0xFF00

	case IND:
		// The 6502 does not carry into the high byte of the pointer: a pointer
		// at $xxFF takes its high byte from $xx00.
		lo := cpu.read(bus, raw)
		hi := cpu.read(bus, (raw&0xFF00)|uint16(byte(raw)+1))
		return uint16(hi)<<8 | uint16(lo), false

	case IZX:
		// Add the second byte of the instruction with the contents of register X.
		// This result is a zero page memory location pointing to the low order byte
		// of the effective address. The next memory location contains the high
		// order byte. Both memory locations must be in page zero.
		ptr := byte(raw) + cpu.X
		lo := cpu.read(bus, uint16(ptr))
		hi := cpu.read(bus, uint16(ptr+1))
		return uint16(hi)<<8 | uint16(lo), false

	case IZY:
		// The second byte of the instruction points to a zero page memory location.
		// The contents of this memory location are added to the contents of
		// register Y to form the low order byte of the effective address. The carry
		// from this addition is added to the contents of the next page zero memory
		// location to form the high order byte of the effective address.
		ptr := byte(raw)
		lo := cpu.read(bus, uint16(ptr))
		hi := cpu.read(bus, uint16(ptr+1))
		base := uint16(hi)<<8 | uint16(lo)
		addr := base + uint16(cpu.Y)
		return addr, addr&0xFF00 != base&0xFF00

	case REL:
		// Offset is signed and counted from the instruction after the branch.
		addr := cpu.Pc + uint16(int8(raw))
		return addr, addr&0xFF00 != cpu.Pc&0xFF00
	}

	panic(AddressingMisuse{Mode: mode})
}
