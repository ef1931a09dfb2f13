package nes

// Mnemonic names one of the 56 official 6502 operations. XXX marks the
// unofficial opcodes, which this CPU does not implement.
type Mnemonic byte

const (
	XXX Mnemonic = iota
	ADC
	AND
	ASL
	BCC
	BCS
	BEQ
	BIT
	BMI
	BNE
	BPL
	BRK
	BVC
	BVS
	CLC
	CLD
	CLI
	CLV
	CMP
	CPX
	CPY
	DEC
	DEX
	DEY
	EOR
	INC
	INX
	INY
	JMP
	JSR
	LDA
	LDX
	LDY
	LSR
	NOP
	ORA
	PHA
	PHP
	PLA
	PLP
	ROL
	ROR
	RTI
	RTS
	SBC
	SEC
	SED
	SEI
	STA
	STX
	STY
	TAX
	TAY
	TSX
	TXA
	TXS
	TYA

	mnemonicCount
)

var mnemonicNames = [mnemonicCount]string{
	"XXX", "ADC", "AND", "ASL", "BCC", "BCS", "BEQ", "BIT", "BMI", "BNE", "BPL",
	"BRK", "BVC", "BVS", "CLC", "CLD", "CLI", "CLV", "CMP", "CPX", "CPY", "DEC",
	"DEX", "DEY", "EOR", "INC", "INX", "INY", "JMP", "JSR", "LDA", "LDX", "LDY",
	"LSR", "NOP", "ORA", "PHA", "PHP", "PLA", "PLP", "ROL", "ROR", "RTI", "RTS",
	"SBC", "SEC", "SED", "SEI", "STA", "STX", "STY", "TAX", "TAY", "TSX", "TXA",
	"TXS", "TYA",
}

func (m Mnemonic) String() string {
	if m >= mnemonicCount {
		return "???"
	}
	return mnemonicNames[m]
}

// Instruction describes one opcode.
type Instruction struct {
	Mnemonic   Mnemonic
	Mode       AddressingMode
	Opcode     byte
	Bytes      byte // Length including the opcode, 1-3
	Cycles     byte // Base cycle cost
	PageCycles byte // Extra cycles when an indexed read crosses a page
}

// Legal reports whether the instruction is one of the official opcodes.
func (inst Instruction) Legal() bool { return inst.Mnemonic != XXX }

func (inst Instruction) String() string {
	return inst.Mnemonic.String() + " " + inst.Mode.String()
}

// Decode returns the instruction for an opcode, or an *IllegalOpcodeError
// (with a zero Pc) for the unofficial opcodes. The returned Instruction is
// valid in both cases.
func Decode(opcode byte) (Instruction, error) {
	inst := instLookup[opcode]
	if !inst.Legal() {
		return inst, &IllegalOpcodeError{Opcode: opcode}
	}
	return inst, nil
}

// Create the lookup table containing all the CPU instructions, indexed by
// opcode. Each entry is {mnemonic, addressing mode, cycles, page cycles};
// opcode and length are filled in by init.
// Reference: http://archive.6502.org/datasheets/rockwell_r650x_r651x.pdf
var instLookup = [16 * 16]Instruction{
	{BRK, IMP, 0, 0, 7, 0}, {ORA, IZX, 0, 0, 6, 0}, {XXX, IMP, 0, 0, 2, 0}, {XXX, IMP, 0, 0, 2, 0}, {XXX, IMP, 0, 0, 2, 0}, {ORA, ZP0, 0, 0, 3, 0}, {ASL, ZP0, 0, 0, 5, 0}, {XXX, IMP, 0, 0, 2, 0}, {PHP, IMP, 0, 0, 3, 0}, {ORA, IMM, 0, 0, 2, 0}, {ASL, ACC, 0, 0, 2, 0}, {XXX, IMP, 0, 0, 2, 0}, {XXX, IMP, 0, 0, 2, 0}, {ORA, ABS, 0, 0, 4, 0}, {ASL, ABS, 0, 0, 6, 0}, {XXX, IMP, 0, 0, 2, 0},

	{BPL, REL, 0, 0, 2, 0}, {ORA, IZY, 0, 0, 5, 1}, {XXX, IMP, 0, 0, 2, 0}, {XXX, IMP, 0, 0, 2, 0}, {XXX, IMP, 0, 0, 2, 0}, {ORA, ZPX, 0, 0, 4, 0}, {ASL, ZPX, 0, 0, 6, 0}, {XXX, IMP, 0, 0, 2, 0}, {CLC, IMP, 0, 0, 2, 0}, {ORA, ABY, 0, 0, 4, 1}, {XXX, IMP, 0, 0, 2, 0}, {XXX, IMP, 0, 0, 2, 0}, {XXX, IMP, 0, 0, 2, 0}, {ORA, ABX, 0, 0, 4, 1}, {ASL, ABX, 0, 0, 7, 0}, {XXX, IMP, 0, 0, 2, 0},

	{JSR, ABS, 0, 0, 6, 0}, {AND, IZX, 0, 0, 6, 0}, {XXX, IMP, 0, 0, 2, 0}, {XXX, IMP, 0, 0, 2, 0}, {BIT, ZP0, 0, 0, 3, 0}, {AND, ZP0, 0, 0, 3, 0}, {ROL, ZP0, 0, 0, 5, 0}, {XXX, IMP, 0, 0, 2, 0}, {PLP, IMP, 0, 0, 4, 0}, {AND, IMM, 0, 0, 2, 0}, {ROL, ACC, 0, 0, 2, 0}, {XXX, IMP, 0, 0, 2, 0}, {BIT, ABS, 0, 0, 4, 0}, {AND, ABS, 0, 0, 4, 0}, {ROL, ABS, 0, 0, 6, 0}, {XXX, IMP, 0, 0, 2, 0},

	{BMI, REL, 0, 0, 2, 0}, {AND, IZY, 0, 0, 5, 1}, {XXX, IMP, 0, 0, 2, 0}, {XXX, IMP, 0, 0, 2, 0}, {XXX, IMP, 0, 0, 2, 0}, {AND, ZPX, 0, 0, 4, 0}, {ROL, ZPX, 0, 0, 6, 0}, {XXX, IMP, 0, 0, 2, 0}, {SEC, IMP, 0, 0, 2, 0}, {AND, ABY, 0, 0, 4, 1}, {XXX, IMP, 0, 0, 2, 0}, {XXX, IMP, 0, 0, 2, 0}, {XXX, IMP, 0, 0, 2, 0}, {AND, ABX, 0, 0, 4, 1}, {ROL, ABX, 0, 0, 7, 0}, {XXX, IMP, 0, 0, 2, 0},

	{RTI, IMP, 0, 0, 6, 0}, {EOR, IZX, 0, 0, 6, 0}, {XXX, IMP, 0, 0, 2, 0}, {XXX, IMP, 0, 0, 2, 0}, {XXX, IMP, 0, 0, 2, 0}, {EOR, ZP0, 0, 0, 3, 0}, {LSR, ZP0, 0, 0, 5, 0}, {XXX, IMP, 0, 0, 2, 0}, {PHA, IMP, 0, 0, 3, 0}, {EOR, IMM, 0, 0, 2, 0}, {LSR, ACC, 0, 0, 2, 0}, {XXX, IMP, 0, 0, 2, 0}, {JMP, ABS, 0, 0, 3, 0}, {EOR, ABS, 0, 0, 4, 0}, {LSR, ABS, 0, 0, 6, 0}, {XXX, IMP, 0, 0, 2, 0},

	{BVC, REL, 0, 0, 2, 0}, {EOR, IZY, 0, 0, 5, 1}, {XXX, IMP, 0, 0, 2, 0}, {XXX, IMP, 0, 0, 2, 0}, {XXX, IMP, 0, 0, 2, 0}, {EOR, ZPX, 0, 0, 4, 0}, {LSR, ZPX, 0, 0, 6, 0}, {XXX, IMP, 0, 0, 2, 0}, {CLI, IMP, 0, 0, 2, 0}, {EOR, ABY, 0, 0, 4, 1}, {XXX, IMP, 0, 0, 2, 0}, {XXX, IMP, 0, 0, 2, 0}, {XXX, IMP, 0, 0, 2, 0}, {EOR, ABX, 0, 0, 4, 1}, {LSR, ABX, 0, 0, 7, 0}, {XXX, IMP, 0, 0, 2, 0},

	{RTS, IMP, 0, 0, 6, 0}, {ADC, IZX, 0, 0, 6, 0}, {XXX, IMP, 0, 0, 2, 0}, {XXX, IMP, 0, 0, 2, 0}, {XXX, IMP, 0, 0, 2, 0}, {ADC, ZP0, 0, 0, 3, 0}, {ROR, ZP0, 0, 0, 5, 0}, {XXX, IMP, 0, 0, 2, 0}, {PLA, IMP, 0, 0, 4, 0}, {ADC, IMM, 0, 0, 2, 0}, {ROR, ACC, 0, 0, 2, 0}, {XXX, IMP, 0, 0, 2, 0}, {JMP, IND, 0, 0, 5, 0}, {ADC, ABS, 0, 0, 4, 0}, {ROR, ABS, 0, 0, 6, 0}, {XXX, IMP, 0, 0, 2, 0},

	{BVS, REL, 0, 0, 2, 0}, {ADC, IZY, 0, 0, 5, 1}, {XXX, IMP, 0, 0, 2, 0}, {XXX, IMP, 0, 0, 2, 0}, {XXX, IMP, 0, 0, 2, 0}, {ADC, ZPX, 0, 0, 4, 0}, {ROR, ZPX, 0, 0, 6, 0}, {XXX, IMP, 0, 0, 2, 0}, {SEI, IMP, 0, 0, 2, 0}, {ADC, ABY, 0, 0, 4, 1}, {XXX, IMP, 0, 0, 2, 0}, {XXX, IMP, 0, 0, 2, 0}, {XXX, IMP, 0, 0, 2, 0}, {ADC, ABX, 0, 0, 4, 1}, {ROR, ABX, 0, 0, 7, 0}, {XXX, IMP, 0, 0, 2, 0},

	{XXX, IMP, 0, 0, 2, 0}, {STA, IZX, 0, 0, 6, 0}, {XXX, IMP, 0, 0, 2, 0}, {XXX, IMP, 0, 0, 2, 0}, {STY, ZP0, 0, 0, 3, 0}, {STA, ZP0, 0, 0, 3, 0}, {STX, ZP0, 0, 0, 3, 0}, {XXX, IMP, 0, 0, 2, 0}, {DEY, IMP, 0, 0, 2, 0}, {XXX, IMP, 0, 0, 2, 0}, {TXA, IMP, 0, 0, 2, 0}, {XXX, IMP, 0, 0, 2, 0}, {STY, ABS, 0, 0, 4, 0}, {STA, ABS, 0, 0, 4, 0}, {STX, ABS, 0, 0, 4, 0}, {XXX, IMP, 0, 0, 2, 0},

	{BCC, REL, 0, 0, 2, 0}, {STA, IZY, 0, 0, 6, 0}, {XXX, IMP, 0, 0, 2, 0}, {XXX, IMP, 0, 0, 2, 0}, {STY, ZPX, 0, 0, 4, 0}, {STA, ZPX, 0, 0, 4, 0}, {STX, ZPY, 0, 0, 4, 0}, {XXX, IMP, 0, 0, 2, 0}, {TYA, IMP, 0, 0, 2, 0}, {STA, ABY, 0, 0, 5, 0}, {TXS, IMP, 0, 0, 2, 0}, {XXX, IMP, 0, 0, 2, 0}, {XXX, IMP, 0, 0, 2, 0}, {STA, ABX, 0, 0, 5, 0}, {XXX, IMP, 0, 0, 2, 0}, {XXX, IMP, 0, 0, 2, 0},

	{LDY, IMM, 0, 0, 2, 0}, {LDA, IZX, 0, 0, 6, 0}, {LDX, IMM, 0, 0, 2, 0}, {XXX, IMP, 0, 0, 2, 0}, {LDY, ZP0, 0, 0, 3, 0}, {LDA, ZP0, 0, 0, 3, 0}, {LDX, ZP0, 0, 0, 3, 0}, {XXX, IMP, 0, 0, 2, 0}, {TAY, IMP, 0, 0, 2, 0}, {LDA, IMM, 0, 0, 2, 0}, {TAX, IMP, 0, 0, 2, 0}, {XXX, IMP, 0, 0, 2, 0}, {LDY, ABS, 0, 0, 4, 0}, {LDA, ABS, 0, 0, 4, 0}, {LDX, ABS, 0, 0, 4, 0}, {XXX, IMP, 0, 0, 2, 0},

	{BCS, REL, 0, 0, 2, 0}, {LDA, IZY, 0, 0, 5, 1}, {XXX, IMP, 0, 0, 2, 0}, {XXX, IMP, 0, 0, 2, 0}, {LDY, ZPX, 0, 0, 4, 0}, {LDA, ZPX, 0, 0, 4, 0}, {LDX, ZPY, 0, 0, 4, 0}, {XXX, IMP, 0, 0, 2, 0}, {CLV, IMP, 0, 0, 2, 0}, {LDA, ABY, 0, 0, 4, 1}, {TSX, IMP, 0, 0, 2, 0}, {XXX, IMP, 0, 0, 2, 0}, {LDY, ABX, 0, 0, 4, 1}, {LDA, ABX, 0, 0, 4, 1}, {LDX, ABY, 0, 0, 4, 1}, {XXX, IMP, 0, 0, 2, 0},

	{CPY, IMM, 0, 0, 2, 0}, {CMP, IZX, 0, 0, 6, 0}, {XXX, IMP, 0, 0, 2, 0}, {XXX, IMP, 0, 0, 2, 0}, {CPY, ZP0, 0, 0, 3, 0}, {CMP, ZP0, 0, 0, 3, 0}, {DEC, ZP0, 0, 0, 5, 0}, {XXX, IMP, 0, 0, 2, 0}, {INY, IMP, 0, 0, 2, 0}, {CMP, IMM, 0, 0, 2, 0}, {DEX, IMP, 0, 0, 2, 0}, {XXX, IMP, 0, 0, 2, 0}, {CPY, ABS, 0, 0, 4, 0}, {CMP, ABS, 0, 0, 4, 0}, {DEC, ABS, 0, 0, 6, 0}, {XXX, IMP, 0, 0, 2, 0},

	{BNE, REL, 0, 0, 2, 0}, {CMP, IZY, 0, 0, 5, 1}, {XXX, IMP, 0, 0, 2, 0}, {XXX, IMP, 0, 0, 2, 0}, {XXX, IMP, 0, 0, 2, 0}, {CMP, ZPX, 0, 0, 4, 0}, {DEC, ZPX, 0, 0, 6, 0}, {XXX, IMP, 0, 0, 2, 0}, {CLD, IMP, 0, 0, 2, 0}, {CMP, ABY, 0, 0, 4, 1}, {XXX, IMP, 0, 0, 2, 0}, {XXX, IMP, 0, 0, 2, 0}, {XXX, IMP, 0, 0, 2, 0}, {CMP, ABX, 0, 0, 4, 1}, {DEC, ABX, 0, 0, 7, 0}, {XXX, IMP, 0, 0, 2, 0},

	{CPX, IMM, 0, 0, 2, 0}, {SBC, IZX, 0, 0, 6, 0}, {XXX, IMP, 0, 0, 2, 0}, {XXX, IMP, 0, 0, 2, 0}, {CPX, ZP0, 0, 0, 3, 0}, {SBC, ZP0, 0, 0, 3, 0}, {INC, ZP0, 0, 0, 5, 0}, {XXX, IMP, 0, 0, 2, 0}, {INX, IMP, 0, 0, 2, 0}, {SBC, IMM, 0, 0, 2, 0}, {NOP, IMP, 0, 0, 2, 0}, {XXX, IMP, 0, 0, 2, 0}, {CPX, ABS, 0, 0, 4, 0}, {SBC, ABS, 0, 0, 4, 0}, {INC, ABS, 0, 0, 6, 0}, {XXX, IMP, 0, 0, 2, 0},

	{BEQ, REL, 0, 0, 2, 0}, {SBC, IZY, 0, 0, 5, 1}, {XXX, IMP, 0, 0, 2, 0}, {XXX, IMP, 0, 0, 2, 0}, {XXX, IMP, 0, 0, 2, 0}, {SBC, ZPX, 0, 0, 4, 0}, {INC, ZPX, 0, 0, 6, 0}, {XXX, IMP, 0, 0, 2, 0}, {SED, IMP, 0, 0, 2, 0}, {SBC, ABY, 0, 0, 4, 1}, {XXX, IMP, 0, 0, 2, 0}, {XXX, IMP, 0, 0, 2, 0}, {XXX, IMP, 0, 0, 2, 0}, {SBC, ABX, 0, 0, 4, 1}, {INC, ABX, 0, 0, 7, 0}, {XXX, IMP, 0, 0, 2, 0},
}

func init() {
	for i := range instLookup {
		inst := &instLookup[i]
		inst.Opcode = byte(i)
		inst.Bytes = 1 + inst.Mode.operandBytes()
	}
}
