package nes

import (
	"bytes"
	"fmt"
)

// Peeker reads memory without side effects. Bus implements it.
type Peeker interface {
	Peek(addr uint16) byte
}

// Disassemble the 6502 program in mem into human-readable CPU instructions
// mapped to their respective memory address.
//
// Much help from https://github.com/OneLoneCoder/olcNES
func Disassemble(mem Peeker, startAddr, endAddr uint16) map[uint16]string {
	// Current CPU instruction, disassembled
	var lineDiss bytes.Buffer

	// this needs to be bigger than uint16, to determine when larger than endAddr
	var addr uint32 = uint32(startAddr)

	disassembly := make(map[uint16]string)

	for addr <= uint32(endAddr) {
		lineAddr := uint16(addr)
		text, size := DisassembleOne(mem, lineAddr)
		inst := instLookup[mem.Peek(lineAddr)]

		lineDiss.WriteString(fmt.Sprintf("$%04X: %s {%v}", lineAddr, text, inst.Mode))

		disassembly[lineAddr] = lineDiss.String()
		lineDiss.Reset()

		addr += uint32(size)
	}

	return disassembly
}

// DisassembleOne renders the instruction at addr in assembler syntax and
// returns it with the instruction's length in bytes. Unofficial opcodes
// render as a one byte "XXX".
func DisassembleOne(mem Peeker, addr uint16) (string, int) {
	inst := instLookup[mem.Peek(addr)]
	var operand [2]byte
	for i := byte(0); i < inst.Bytes-1; i++ {
		operand[i] = mem.Peek(addr + 1 + uint16(i))
	}
	return formatInstruction(inst, operand, addr), int(inst.Bytes)
}

// formatInstruction renders inst, located at pc, with its operand bytes.
func formatInstruction(inst Instruction, operand [2]byte, pc uint16) string {
	lo := operand[0]
	word := uint16(operand[1])<<8 | uint16(lo)
	name := inst.Mnemonic.String()

	switch inst.Mode {
	case ACC:
		return name + " A"
	case IMM:
		return fmt.Sprintf("%s #$%02X", name, lo)
	case REL:
		return fmt.Sprintf("%s $%04X", name, pc+2+uint16(int8(lo)))
	case ZP0:
		return fmt.Sprintf("%s $%02X", name, lo)
	case ZPX:
		return fmt.Sprintf("%s $%02X,X", name, lo)
	case ZPY:
		return fmt.Sprintf("%s $%02X,Y", name, lo)
	case ABS:
		return fmt.Sprintf("%s $%04X", name, word)
	case ABX:
		return fmt.Sprintf("%s $%04X,X", name, word)
	case ABY:
		return fmt.Sprintf("%s $%04X,Y", name, word)
	case IND:
		return fmt.Sprintf("%s ($%04X)", name, word)
	case IZX:
		return fmt.Sprintf("%s ($%02X,X)", name, lo)
	case IZY:
		return fmt.Sprintf("%s ($%02X),Y", name, lo)
	}
	return name
}
