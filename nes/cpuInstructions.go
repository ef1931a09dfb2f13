package nes

// Handlers indexed by mnemonic. Each consumes its own operand bytes.
var opHandlers [mnemonicCount]func(cpu *Cpu6502, bus CpuBus)

func init() {
	opHandlers = [mnemonicCount]func(*Cpu6502, CpuBus){
		XXX: (*Cpu6502).opXXX,
		ADC: (*Cpu6502).opADC, AND: (*Cpu6502).opAND, ASL: (*Cpu6502).opASL,
		BCC: (*Cpu6502).opBCC, BCS: (*Cpu6502).opBCS, BEQ: (*Cpu6502).opBEQ,
		BIT: (*Cpu6502).opBIT, BMI: (*Cpu6502).opBMI, BNE: (*Cpu6502).opBNE,
		BPL: (*Cpu6502).opBPL, BRK: (*Cpu6502).opBRK, BVC: (*Cpu6502).opBVC,
		BVS: (*Cpu6502).opBVS, CLC: (*Cpu6502).opCLC, CLD: (*Cpu6502).opCLD,
		CLI: (*Cpu6502).opCLI, CLV: (*Cpu6502).opCLV, CMP: (*Cpu6502).opCMP,
		CPX: (*Cpu6502).opCPX, CPY: (*Cpu6502).opCPY, DEC: (*Cpu6502).opDEC,
		DEX: (*Cpu6502).opDEX, DEY: (*Cpu6502).opDEY, EOR: (*Cpu6502).opEOR,
		INC: (*Cpu6502).opINC, INX: (*Cpu6502).opINX, INY: (*Cpu6502).opINY,
		JMP: (*Cpu6502).opJMP, JSR: (*Cpu6502).opJSR, LDA: (*Cpu6502).opLDA,
		LDX: (*Cpu6502).opLDX, LDY: (*Cpu6502).opLDY, LSR: (*Cpu6502).opLSR,
		NOP: (*Cpu6502).opNOP, ORA: (*Cpu6502).opORA, PHA: (*Cpu6502).opPHA,
		PHP: (*Cpu6502).opPHP, PLA: (*Cpu6502).opPLA, PLP: (*Cpu6502).opPLP,
		ROL: (*Cpu6502).opROL, ROR: (*Cpu6502).opROR, RTI: (*Cpu6502).opRTI,
		RTS: (*Cpu6502).opRTS, SBC: (*Cpu6502).opSBC, SEC: (*Cpu6502).opSEC,
		SED: (*Cpu6502).opSED, SEI: (*Cpu6502).opSEI, STA: (*Cpu6502).opSTA,
		STX: (*Cpu6502).opSTX, STY: (*Cpu6502).opSTY, TAX: (*Cpu6502).opTAX,
		TAY: (*Cpu6502).opTAY, TSX: (*Cpu6502).opTSX, TXA: (*Cpu6502).opTXA,
		TXS: (*Cpu6502).opTXS, TYA: (*Cpu6502).opTYA,
	}
}

////////////////////////////////////////////////////////////////
// Shared helpers

// Add m and the carry into the accumulator.
func (cpu *Cpu6502) addWithCarry(m byte) {
	// 16-bit to keep any carry.
	sum := uint16(cpu.A) + uint16(m)
	if cpu.getFlag(StatusFlagC) {
		sum++
	}
	result := byte(sum)

	cpu.setFlag(StatusFlagC, sum > 0xFF)

	// Overflow when both inputs share a sign the result does not.
	cpu.setFlag(StatusFlagV, (m^result)&(result^cpu.A)&0x80 != 0)

	cpu.A = result
	cpu.setZN(result)
}

func (cpu *Cpu6502) compare(reg, m byte) {
	cpu.setFlag(StatusFlagC, reg >= m)
	cpu.setFlag(StatusFlagZ, reg == m)
	cpu.setFlag(StatusFlagN, (reg-m)&0x80 != 0)
}

// Taken branches cost one cycle, and one more to land in another page.
func (cpu *Cpu6502) branch(bus CpuBus, cond bool) {
	raw := cpu.operand(bus)
	if !cond {
		return
	}
	addr, crossed := cpu.effectiveAddress(bus, REL, raw)
	cpu.Cycles++
	if crossed {
		cpu.Cycles++
	}
	cpu.Pc = addr
}

// Install a status byte pulled from the stack. B does not exist in the
// register and U always reads 1.
func (cpu *Cpu6502) pullStatus(bus CpuBus) {
	cpu.Status = SF6502(cpu.stackPop(bus))&^StatusFlagB | StatusFlagU
}

////////////////////////////////////////////////////////////////
// Instructions

// ADC - Add with Carry
func (cpu *Cpu6502) opADC(bus CpuBus) {
	cpu.addWithCarry(cpu.fetch(bus))
}

// AND - Logical AND
func (cpu *Cpu6502) opAND(bus CpuBus) {
	cpu.A &= cpu.fetch(bus)
	cpu.setZN(cpu.A)
}

// ASL - Arithmetic Shift Left
func (cpu *Cpu6502) opASL(bus CpuBus) {
	cpu.modify(bus, func(v byte) byte {
		// Set carry flag to old bit 7.
		cpu.setFlag(StatusFlagC, v&0x80 != 0)
		return v << 1
	})
}

// BCC - Branch if Carry Clear
func (cpu *Cpu6502) opBCC(bus CpuBus) { cpu.branch(bus, !cpu.getFlag(StatusFlagC)) }

// BCS - Branch if Carry Set
func (cpu *Cpu6502) opBCS(bus CpuBus) { cpu.branch(bus, cpu.getFlag(StatusFlagC)) }

// BEQ - Branch if Equal
func (cpu *Cpu6502) opBEQ(bus CpuBus) { cpu.branch(bus, cpu.getFlag(StatusFlagZ)) }

// BIT - Bit Test
func (cpu *Cpu6502) opBIT(bus CpuBus) {
	m := cpu.fetch(bus)
	cpu.setFlag(StatusFlagZ, cpu.A&m == 0)
	cpu.setFlag(StatusFlagN, m&0x80 != 0)
	cpu.setFlag(StatusFlagV, m&0x40 != 0)
}

// BMI - Branch if Minus
func (cpu *Cpu6502) opBMI(bus CpuBus) { cpu.branch(bus, cpu.getFlag(StatusFlagN)) }

// BNE - Branch if Not Equal
func (cpu *Cpu6502) opBNE(bus CpuBus) { cpu.branch(bus, !cpu.getFlag(StatusFlagZ)) }

// BPL - Branch if Positive
func (cpu *Cpu6502) opBPL(bus CpuBus) { cpu.branch(bus, !cpu.getFlag(StatusFlagN)) }

// BRK - Force Interrupt
func (cpu *Cpu6502) opBRK(bus CpuBus) {
	// The byte after BRK is padding; the return address skips it.
	cpu.Pc++
	cpu.stackPushWord(bus, cpu.Pc)
	cpu.stackPush(bus, byte(cpu.Status|StatusFlagB|StatusFlagU))
	cpu.setFlag(StatusFlagI, true)
	cpu.Pc = cpu.readWord(bus, irqVectAddr)
}

// BVC - Branch if Overflow Clear
func (cpu *Cpu6502) opBVC(bus CpuBus) { cpu.branch(bus, !cpu.getFlag(StatusFlagV)) }

// BVS - Branch if Overflow Set
func (cpu *Cpu6502) opBVS(bus CpuBus) { cpu.branch(bus, cpu.getFlag(StatusFlagV)) }

// CLC - Clear Carry Flag
func (cpu *Cpu6502) opCLC(bus CpuBus) { cpu.setFlag(StatusFlagC, false) }

// CLD - Clear Decimal Mode
func (cpu *Cpu6502) opCLD(bus CpuBus) { cpu.setFlag(StatusFlagD, false) }

// CLI - Clear Interrupt Disable
func (cpu *Cpu6502) opCLI(bus CpuBus) { cpu.setFlag(StatusFlagI, false) }

// CLV - Clear Overflow Flag
func (cpu *Cpu6502) opCLV(bus CpuBus) { cpu.setFlag(StatusFlagV, false) }

// CMP - Compare
func (cpu *Cpu6502) opCMP(bus CpuBus) { cpu.compare(cpu.A, cpu.fetch(bus)) }

// CPX - Compare X Register
func (cpu *Cpu6502) opCPX(bus CpuBus) { cpu.compare(cpu.X, cpu.fetch(bus)) }

// CPY - Compare Y Register
func (cpu *Cpu6502) opCPY(bus CpuBus) { cpu.compare(cpu.Y, cpu.fetch(bus)) }

// DEC - Decrement Memory
func (cpu *Cpu6502) opDEC(bus CpuBus) {
	cpu.modify(bus, func(v byte) byte { return v - 1 })
}

// DEX - Decrement X Register
func (cpu *Cpu6502) opDEX(bus CpuBus) {
	cpu.X--
	cpu.setZN(cpu.X)
}

// DEY - Decrement Y Register
func (cpu *Cpu6502) opDEY(bus CpuBus) {
	cpu.Y--
	cpu.setZN(cpu.Y)
}

// EOR - Exclusive OR
func (cpu *Cpu6502) opEOR(bus CpuBus) {
	cpu.A ^= cpu.fetch(bus)
	cpu.setZN(cpu.A)
}

// INC - Increment Memory
func (cpu *Cpu6502) opINC(bus CpuBus) {
	cpu.modify(bus, func(v byte) byte { return v + 1 })
}

// INX - Increment X Register
func (cpu *Cpu6502) opINX(bus CpuBus) {
	cpu.X++
	cpu.setZN(cpu.X)
}

// INY - Increment Y Register
func (cpu *Cpu6502) opINY(bus CpuBus) {
	cpu.Y++
	cpu.setZN(cpu.Y)
}

// JMP - Jump
func (cpu *Cpu6502) opJMP(bus CpuBus) { cpu.Pc = cpu.address(bus) }

// JSR - Jump to Subroutine
func (cpu *Cpu6502) opJSR(bus CpuBus) {
	target := cpu.address(bus)

	// Push the address of the last byte of this instruction.
	cpu.stackPushWord(bus, cpu.Pc-1)
	cpu.Pc = target
}

// LDA - Load Accumulator
func (cpu *Cpu6502) opLDA(bus CpuBus) {
	cpu.A = cpu.fetch(bus)
	cpu.setZN(cpu.A)
}

// LDX - Load X Register
func (cpu *Cpu6502) opLDX(bus CpuBus) {
	cpu.X = cpu.fetch(bus)
	cpu.setZN(cpu.X)
}

// LDY - Load Y Register
func (cpu *Cpu6502) opLDY(bus CpuBus) {
	cpu.Y = cpu.fetch(bus)
	cpu.setZN(cpu.Y)
}

// LSR - Logical Shift Right
func (cpu *Cpu6502) opLSR(bus CpuBus) {
	cpu.modify(bus, func(v byte) byte {
		cpu.setFlag(StatusFlagC, v&0x01 != 0)
		return v >> 1
	})
}

// NOP - No Operation
func (cpu *Cpu6502) opNOP(bus CpuBus) {}

// ORA - Logical Inclusive OR
func (cpu *Cpu6502) opORA(bus CpuBus) {
	cpu.A |= cpu.fetch(bus)
	cpu.setZN(cpu.A)
}

// PHA - Push Accumulator
func (cpu *Cpu6502) opPHA(bus CpuBus) { cpu.stackPush(bus, cpu.A) }

// PHP - Push Processor Status
func (cpu *Cpu6502) opPHP(bus CpuBus) {
	cpu.stackPush(bus, byte(cpu.Status|StatusFlagB|StatusFlagU))
}

// PLA - Pull Accumulator
func (cpu *Cpu6502) opPLA(bus CpuBus) {
	cpu.A = cpu.stackPop(bus)
	cpu.setZN(cpu.A)
}

// PLP - Pull Processor Status
func (cpu *Cpu6502) opPLP(bus CpuBus) { cpu.pullStatus(bus) }

// ROL - Rotate Left
func (cpu *Cpu6502) opROL(bus CpuBus) {
	cpu.modify(bus, func(v byte) byte {
		result := v << 1
		if cpu.getFlag(StatusFlagC) {
			result |= 0x01
		}
		cpu.setFlag(StatusFlagC, v&0x80 != 0)
		return result
	})
}

// ROR - Rotate Right
func (cpu *Cpu6502) opROR(bus CpuBus) {
	cpu.modify(bus, func(v byte) byte {
		result := v >> 1
		if cpu.getFlag(StatusFlagC) {
			result |= 0x80
		}
		cpu.setFlag(StatusFlagC, v&0x01 != 0)
		return result
	})
}

// RTI - Return from Interrupt
func (cpu *Cpu6502) opRTI(bus CpuBus) {
	cpu.pullStatus(bus)
	cpu.Pc = cpu.stackPopWord(bus)
}

// RTS - Return from Subroutine
func (cpu *Cpu6502) opRTS(bus CpuBus) {
	cpu.Pc = cpu.stackPopWord(bus) + 1
}

// SBC - Subtract with Carry
func (cpu *Cpu6502) opSBC(bus CpuBus) {
	// A - M - (1 - C) is A + ^M + C in two's complement.
	cpu.addWithCarry(^cpu.fetch(bus))
}

// SEC - Set Carry Flag
func (cpu *Cpu6502) opSEC(bus CpuBus) { cpu.setFlag(StatusFlagC, true) }

// SED - Set Decimal Flag
func (cpu *Cpu6502) opSED(bus CpuBus) { cpu.setFlag(StatusFlagD, true) }

// SEI - Set Interrupt Disable
func (cpu *Cpu6502) opSEI(bus CpuBus) { cpu.setFlag(StatusFlagI, true) }

// STA - Store Accumulator
func (cpu *Cpu6502) opSTA(bus CpuBus) { cpu.write(bus, cpu.address(bus), cpu.A) }

// STX - Store X Register
func (cpu *Cpu6502) opSTX(bus CpuBus) { cpu.write(bus, cpu.address(bus), cpu.X) }

// STY - Store Y Register
func (cpu *Cpu6502) opSTY(bus CpuBus) { cpu.write(bus, cpu.address(bus), cpu.Y) }

// TAX - Transfer Accumulator to X
func (cpu *Cpu6502) opTAX(bus CpuBus) {
	cpu.X = cpu.A
	cpu.setZN(cpu.X)
}

// TAY - Transfer Accumulator to Y
func (cpu *Cpu6502) opTAY(bus CpuBus) {
	cpu.Y = cpu.A
	cpu.setZN(cpu.Y)
}

// TSX - Transfer Stack Pointer to X
func (cpu *Cpu6502) opTSX(bus CpuBus) {
	cpu.X = cpu.Sp
	cpu.setZN(cpu.X)
}

// TXA - Transfer X to Accumulator
func (cpu *Cpu6502) opTXA(bus CpuBus) {
	cpu.A = cpu.X
	cpu.setZN(cpu.A)
}

// TXS - Transfer X to Stack Pointer
func (cpu *Cpu6502) opTXS(bus CpuBus) { cpu.Sp = cpu.X }

// TYA - Transfer Y to Accumulator
func (cpu *Cpu6502) opTYA(bus CpuBus) {
	cpu.A = cpu.Y
	cpu.setZN(cpu.A)
}

// Unofficial opcodes run as a one byte NOP when the console is configured
// to continue past them.
func (cpu *Cpu6502) opXXX(bus CpuBus) {}
