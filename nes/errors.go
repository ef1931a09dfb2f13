package nes

import (
	"fmt"

	"github.com/pkg/errors"
)

// FormatError is returned when a ROM image can not be loaded: bad magic
// bytes, an unsupported header version or mapper, or a truncated image.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return "iNES format error: " + e.Reason
}

func formatErrorf(format string, args ...interface{}) *FormatError {
	return &FormatError{Reason: fmt.Sprintf(format, args...)}
}

// IllegalOpcodeError is returned by the CPU when it fetches an opcode with no
// entry in the instruction table and the console halts on illegal opcodes.
type IllegalOpcodeError struct {
	Opcode byte
	Pc     uint16 // Address the opcode was fetched from.
}

func (e *IllegalOpcodeError) Error() string {
	return fmt.Sprintf("illegal opcode $%02X at $%04X", e.Opcode, e.Pc)
}

// IllegalOpcodePolicy selects what the CPU does with unofficial opcodes. The
// choice applies to every unofficial opcode alike.
type IllegalOpcodePolicy int

const (
	// IllegalHalt stops execution with an *IllegalOpcodeError.
	IllegalHalt IllegalOpcodePolicy = iota
	// IllegalNop treats the opcode as a 1 byte, 2 cycle NOP.
	IllegalNop
)

// ParseIllegalOpcodePolicy converts a command line value ("halt" or "nop").
func ParseIllegalOpcodePolicy(s string) (IllegalOpcodePolicy, error) {
	switch s {
	case "halt", "":
		return IllegalHalt, nil
	case "nop":
		return IllegalNop, nil
	}
	return IllegalHalt, errors.Errorf("unknown illegal opcode policy %q (want halt or nop)", s)
}
