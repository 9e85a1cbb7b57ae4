package cpu

// execOpcode decodes and executes the instruction at opcode, having already
// consumed the opcode byte itself via fetch8 in Step.
func execOpcode(c *CPU, opcode uint8) {
	mode := modes[opcode]

	addr, pageCrossed := resolveOperand(c, mode)

	c.Clock += uint64(baseCycles[opcode])
	if pageCrossed {
		c.Clock += uint64(pageCycles[opcode])
	}

	switch mnemonics[opcode] {
	case "ADC":
		adc(c, c.readOperand(mode, addr))
	case "AND":
		c.A &= c.readOperand(mode, addr)
		c.P.checkNZ(c.A)
	case "ASL":
		shiftLeft(c, mode, addr, false)
	case "BCC":
		branch(c, addr, c.PC, !c.P.has(flagC))
	case "BCS":
		branch(c, addr, c.PC, c.P.has(flagC))
	case "BEQ":
		branch(c, addr, c.PC, c.P.has(flagZ))
	case "BIT":
		v := c.readOperand(mode, addr)
		c.P.set(flagZ, c.A&v == 0)
		c.P.set(flagV, v&0x40 != 0)
		c.P.set(flagN, v&0x80 != 0)
	case "BMI":
		branch(c, addr, c.PC, c.P.has(flagN))
	case "BNE":
		branch(c, addr, c.PC, !c.P.has(flagZ))
	case "BPL":
		branch(c, addr, c.PC, !c.P.has(flagN))
	case "BRK":
		c.serviceInterrupt(IRQVector, true)
	case "BVC":
		branch(c, addr, c.PC, !c.P.has(flagV))
	case "BVS":
		branch(c, addr, c.PC, c.P.has(flagV))
	case "CLC":
		c.P.set(flagC, false)
	case "CLD":
		c.P.set(flagD, false)
	case "CLI":
		c.P.set(flagI, false)
	case "CLV":
		c.P.set(flagV, false)
	case "CMP":
		compare(c, c.A, c.readOperand(mode, addr))
	case "CPX":
		compare(c, c.X, c.readOperand(mode, addr))
	case "CPY":
		compare(c, c.Y, c.readOperand(mode, addr))
	case "DEC":
		v := c.read8(addr)
		c.write8(addr, v) // dummy write of original value
		v--
		c.write8(addr, v)
		c.P.checkNZ(v)
	case "DEX":
		c.X--
		c.P.checkNZ(c.X)
	case "DEY":
		c.Y--
		c.P.checkNZ(c.Y)
	case "DCP": // unofficial: DEC then CMP
		v := c.read8(addr)
		c.write8(addr, v)
		v--
		c.write8(addr, v)
		compare(c, c.A, v)
	case "EOR":
		c.A ^= c.readOperand(mode, addr)
		c.P.checkNZ(c.A)
	case "INC":
		v := c.read8(addr)
		c.write8(addr, v) // dummy write of original value
		v++
		c.write8(addr, v)
		c.P.checkNZ(v)
	case "INX":
		c.X++
		c.P.checkNZ(c.X)
	case "INY":
		c.Y++
		c.P.checkNZ(c.Y)
	case "ISC": // unofficial: INC then SBC
		v := c.read8(addr)
		c.write8(addr, v)
		v++
		c.write8(addr, v)
		adc(c, ^v)
	case "JMP":
		c.PC = addr
	case "JSR":
		c.push16(c.PC - 1)
		c.PC = addr
	case "LAX": // unofficial: LDA + LDX
		v := c.readOperand(mode, addr)
		c.A, c.X = v, v
		c.P.checkNZ(v)
	case "LDA":
		c.A = c.readOperand(mode, addr)
		c.P.checkNZ(c.A)
	case "LDX":
		c.X = c.readOperand(mode, addr)
		c.P.checkNZ(c.X)
	case "LDY":
		c.Y = c.readOperand(mode, addr)
		c.P.checkNZ(c.Y)
	case "LSR":
		shiftRight(c, mode, addr, false)
	case "NOP", "OTHER":
		// documented-length/cycle no-op (spec.md §4.1 Failure policy)
	case "ORA":
		c.A |= c.readOperand(mode, addr)
		c.P.checkNZ(c.A)
	case "PHA":
		c.push8(c.A)
	case "PHP":
		c.push8(uint8(c.P | flagB | flagU))
	case "PLA":
		c.A = c.pull8()
		c.P.checkNZ(c.A)
	case "PLP":
		c.P = P(c.pull8())&^flagB | flagU
	case "RLA": // unofficial: ROL then AND
		v := c.read8(addr)
		c.write8(addr, v) // dummy write of original value
		v = shiftLeftVal(c, v, true)
		c.write8(addr, v)
		c.A &= v
		c.P.checkNZ(c.A)
	case "ROL":
		shiftLeft(c, mode, addr, true)
	case "ROR":
		shiftRight(c, mode, addr, true)
	case "RRA": // unofficial: ROR then ADC
		v := c.read8(addr)
		c.write8(addr, v) // dummy write of original value
		v = shiftRightVal(c, v, true)
		c.write8(addr, v)
		adc(c, v)
	case "RTI":
		c.P = P(c.pull8())&^flagB | flagU
		c.PC = c.pull16()
	case "RTS":
		c.PC = c.pull16() + 1
	case "SAX": // unofficial: store A & X
		c.write8(addr, c.A&c.X)
	case "SBC":
		adc(c, ^c.readOperand(mode, addr))
	case "SEC":
		c.P.set(flagC, true)
	case "SED":
		c.P.set(flagD, true)
	case "SEI":
		c.P.set(flagI, true)
	case "SLO": // unofficial: ASL then ORA
		v := c.read8(addr)
		c.write8(addr, v) // dummy write of original value
		v = shiftLeftVal(c, v, false)
		c.write8(addr, v)
		c.A |= v
		c.P.checkNZ(c.A)
	case "SRE": // unofficial: LSR then EOR
		v := c.read8(addr)
		c.write8(addr, v) // dummy write of original value
		v = shiftRightVal(c, v, false)
		c.write8(addr, v)
		c.A ^= v
		c.P.checkNZ(c.A)
	case "STA":
		c.write8(addr, c.A)
	case "STX":
		c.write8(addr, c.X)
	case "STY":
		c.write8(addr, c.Y)
	case "TAX":
		c.X = c.A
		c.P.checkNZ(c.X)
	case "TAY":
		c.Y = c.A
		c.P.checkNZ(c.Y)
	case "TSX":
		c.X = c.SP
		c.P.checkNZ(c.X)
	case "TXA":
		c.A = c.X
		c.P.checkNZ(c.A)
	case "TXS":
		c.SP = c.X
	case "TYA":
		c.A = c.Y
		c.P.checkNZ(c.A)
	}
}

// resolveOperand computes the effective address for mode (or 0 for
// implied/accumulator/relative-branch-target-only variants aren't included
// here), consuming the operand bytes and any addressing-mode dummy cycles
// exactly as real 6502 hardware does. Immediate mode returns the address of
// the operand byte itself (PC, pre-increment) so readOperand can fetch it.
func resolveOperand(c *CPU, mode addrMode) (addr uint16, pageCrossed bool) {
	switch mode {
	case modeImplied, modeAccumulator:
		return 0, false
	case modeImmediate:
		addr = c.PC
		c.PC++
		return addr, false
	case modeZeroPage:
		addr = uint16(c.read8(c.PC))
		c.PC++
		return addr, false
	case modeZeroPageX:
		base := c.read8(c.PC)
		c.PC++
		return uint16(base + c.X), false
	case modeZeroPageY:
		base := c.read8(c.PC)
		c.PC++
		return uint16(base + c.Y), false
	case modeAbsolute:
		addr = c.read16(c.PC)
		c.PC += 2
		return addr, false
	case modeAbsoluteX:
		base := c.read16(c.PC)
		c.PC += 2
		addr = base + uint16(c.X)
		return addr, pagesDiffer(base, addr)
	case modeAbsoluteY:
		base := c.read16(c.PC)
		c.PC += 2
		addr = base + uint16(c.Y)
		return addr, pagesDiffer(base, addr)
	case modeIndirect:
		ptr := c.read16(c.PC)
		c.PC += 2
		return c.read16bug(ptr), false
	case modeIndexedIndirect:
		zp := c.read8(c.PC)
		c.PC++
		lo := c.read8(uint16(zp + c.X))
		hi := c.read8(uint16(zp + c.X + 1))
		return uint16(hi)<<8 | uint16(lo), false
	case modeIndirectIndexed:
		zp := c.read8(c.PC)
		c.PC++
		lo := c.read8(uint16(zp))
		hi := c.read8(uint16(zp + 1))
		base := uint16(hi)<<8 | uint16(lo)
		addr = base + uint16(c.Y)
		return addr, pagesDiffer(base, addr)
	case modeRelative:
		off := int8(c.read8(c.PC))
		c.PC++
		return uint16(int32(c.PC) + int32(off)), false
	}
	return 0, false
}

// readOperand fetches the operand's value for read-only instructions (LDA,
// ADC, ...). For accumulator mode there is no memory operand.
func (c *CPU) readOperand(mode addrMode, addr uint16) uint8 {
	if mode == modeAccumulator {
		return c.A
	}
	return c.read8(addr)
}

func adc(c *CPU, operand uint8) {
	a := c.A
	carry := uint16(0)
	if c.P.has(flagC) {
		carry = 1
	}
	sum := uint16(a) + uint16(operand) + carry
	c.A = uint8(sum)
	c.P.set(flagC, sum > 0xFF)
	c.P.set(flagV, (a^operand)&0x80 == 0 && (a^c.A)&0x80 != 0)
	c.P.checkNZ(c.A)
}

func compare(c *CPU, reg, operand uint8) {
	c.P.set(flagC, reg >= operand)
	c.P.checkNZ(reg - operand)
}

// shiftLeft implements ASL (rotate=false) and ROL (rotate=true) for both the
// accumulator and memory operands, including the read-modify-write dummy
// write of the original value before the modified value (spec.md §4.1
// Cycle accounting).
func shiftLeft(c *CPU, mode addrMode, addr uint16, rotate bool) {
	if mode == modeAccumulator {
		c.A = shiftLeftVal(c, c.A, rotate)
		return
	}
	v := c.read8(addr)
	c.write8(addr, v) // dummy write of original value
	nv := shiftLeftVal(c, v, rotate)
	c.write8(addr, nv)
}

func shiftLeftVal(c *CPU, v uint8, rotate bool) uint8 {
	carryIn := uint8(0)
	if rotate && c.P.has(flagC) {
		carryIn = 1
	}
	c.P.set(flagC, v&0x80 != 0)
	nv := (v << 1) | carryIn
	c.P.checkNZ(nv)
	return nv
}

func shiftRight(c *CPU, mode addrMode, addr uint16, rotate bool) {
	if mode == modeAccumulator {
		c.A = shiftRightVal(c, c.A, rotate)
		return
	}
	v := c.read8(addr)
	c.write8(addr, v)
	nv := shiftRightVal(c, v, rotate)
	c.write8(addr, nv)
}

func shiftRightVal(c *CPU, v uint8, rotate bool) uint8 {
	carryIn := uint8(0)
	if rotate && c.P.has(flagC) {
		carryIn = 0x80
	}
	c.P.set(flagC, v&1 != 0)
	nv := (v >> 1) | carryIn
	c.P.checkNZ(nv)
	return nv
}

// branch implements the conditional-branch opcodes' extra cycle accounting:
// +1 cycle when taken, +1 more if the branch crosses a page boundary
// (spec.md §4.1 Cycle accounting). nextPC is the address of the instruction
// following the branch (not the offset byte's own address), since that is
// the PC the 6502 actually adds the signed offset to.
func branch(c *CPU, target, nextPC uint16, take bool) {
	if !take {
		return
	}
	c.Clock++
	if pagesDiffer(nextPC, target) {
		c.Clock++
	}
	c.PC = target
}
