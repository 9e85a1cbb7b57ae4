package cpu

// addrMode identifies one of the 6502's addressing modes.
type addrMode uint8

const (
	modeImplied addrMode = iota
	modeAccumulator
	modeImmediate
	modeZeroPage
	modeZeroPageX
	modeZeroPageY
	modeAbsolute
	modeAbsoluteX
	modeAbsoluteY
	modeIndirect
	modeIndexedIndirect // (zp,X)
	modeIndirectIndexed // (zp),Y
	modeRelative
)

// modes, baseCycles and pageCycles are the standard 6502 opcode timing
// tables (all 256 opcodes, official and unofficial), indexed by opcode
// byte. Instruction length isn't tabulated: PC advancement is driven
// entirely by resolveOperand consuming operand bytes per addrMode.
var modes = [256]addrMode{
	modeImplied, modeIndexedIndirect, modeImplied, modeIndexedIndirect, modeZeroPage, modeZeroPage, modeZeroPage, modeZeroPage, modeImplied, modeImmediate, modeAccumulator, modeImmediate, modeAbsolute, modeAbsolute, modeAbsolute, modeAbsolute,
	modeRelative, modeIndirectIndexed, modeImplied, modeIndirectIndexed, modeZeroPageX, modeZeroPageX, modeZeroPageX, modeZeroPageX, modeImplied, modeAbsoluteY, modeImplied, modeAbsoluteY, modeAbsoluteX, modeAbsoluteX, modeAbsoluteX, modeAbsoluteX,
	modeAbsolute, modeIndexedIndirect, modeImplied, modeIndexedIndirect, modeZeroPage, modeZeroPage, modeZeroPage, modeZeroPage, modeImplied, modeImmediate, modeAccumulator, modeImmediate, modeAbsolute, modeAbsolute, modeAbsolute, modeAbsolute,
	modeRelative, modeIndirectIndexed, modeImplied, modeIndirectIndexed, modeZeroPageX, modeZeroPageX, modeZeroPageX, modeZeroPageX, modeImplied, modeAbsoluteY, modeImplied, modeAbsoluteY, modeAbsoluteX, modeAbsoluteX, modeAbsoluteX, modeAbsoluteX,
	modeImplied, modeIndexedIndirect, modeImplied, modeIndexedIndirect, modeZeroPage, modeZeroPage, modeZeroPage, modeZeroPage, modeImplied, modeImmediate, modeAccumulator, modeImmediate, modeAbsolute, modeAbsolute, modeAbsolute, modeAbsolute,
	modeRelative, modeIndirectIndexed, modeImplied, modeIndirectIndexed, modeZeroPageX, modeZeroPageX, modeZeroPageX, modeZeroPageX, modeImplied, modeAbsoluteY, modeImplied, modeAbsoluteY, modeAbsoluteX, modeAbsoluteX, modeAbsoluteX, modeAbsoluteX,
	modeImplied, modeIndexedIndirect, modeImplied, modeIndexedIndirect, modeZeroPage, modeZeroPage, modeZeroPage, modeZeroPage, modeImplied, modeImmediate, modeAccumulator, modeImmediate, modeIndirect, modeAbsolute, modeAbsolute, modeAbsolute,
	modeRelative, modeIndirectIndexed, modeImplied, modeIndirectIndexed, modeZeroPageX, modeZeroPageX, modeZeroPageX, modeZeroPageX, modeImplied, modeAbsoluteY, modeImplied, modeAbsoluteY, modeAbsoluteX, modeAbsoluteX, modeAbsoluteX, modeAbsoluteX,
	modeImmediate, modeIndexedIndirect, modeImmediate, modeIndexedIndirect, modeZeroPage, modeZeroPage, modeZeroPage, modeZeroPage, modeImplied, modeImmediate, modeImplied, modeImmediate, modeAbsolute, modeAbsolute, modeAbsolute, modeAbsolute,
	modeRelative, modeIndirectIndexed, modeImplied, modeIndirectIndexed, modeZeroPageX, modeZeroPageX, modeZeroPageY, modeZeroPageY, modeImplied, modeAbsoluteY, modeImplied, modeAbsoluteY, modeAbsoluteX, modeAbsoluteX, modeAbsoluteY, modeAbsoluteY,
	modeImmediate, modeIndexedIndirect, modeImmediate, modeIndexedIndirect, modeZeroPage, modeZeroPage, modeZeroPage, modeZeroPage, modeImplied, modeImmediate, modeImplied, modeImmediate, modeAbsolute, modeAbsolute, modeAbsolute, modeAbsolute,
	modeRelative, modeIndirectIndexed, modeImplied, modeIndirectIndexed, modeZeroPageX, modeZeroPageX, modeZeroPageY, modeZeroPageY, modeImplied, modeAbsoluteY, modeImplied, modeAbsoluteY, modeAbsoluteX, modeAbsoluteX, modeAbsoluteY, modeAbsoluteY,
	modeImmediate, modeIndexedIndirect, modeImmediate, modeIndexedIndirect, modeZeroPage, modeZeroPage, modeZeroPage, modeZeroPage, modeImplied, modeImmediate, modeImplied, modeImmediate, modeAbsolute, modeAbsolute, modeAbsolute, modeAbsolute,
	modeRelative, modeIndirectIndexed, modeImplied, modeIndirectIndexed, modeZeroPageX, modeZeroPageX, modeZeroPageX, modeZeroPageX, modeImplied, modeAbsoluteY, modeImplied, modeAbsoluteY, modeAbsoluteX, modeAbsoluteX, modeAbsoluteX, modeAbsoluteX,
	modeImmediate, modeIndexedIndirect, modeImmediate, modeIndexedIndirect, modeZeroPage, modeZeroPage, modeZeroPage, modeZeroPage, modeImplied, modeImmediate, modeImplied, modeImmediate, modeAbsolute, modeAbsolute, modeAbsolute, modeAbsolute,
	modeRelative, modeIndirectIndexed, modeImplied, modeIndirectIndexed, modeZeroPageX, modeZeroPageX, modeZeroPageX, modeZeroPageX, modeImplied, modeAbsoluteY, modeImplied, modeAbsoluteY, modeAbsoluteX, modeAbsoluteX, modeAbsoluteX, modeAbsoluteX,
}

var baseCycles = [256]uint8{
	7, 6, 2, 8, 3, 3, 5, 5, 3, 2, 2, 2, 4, 4, 6, 6,
	2, 5, 2, 8, 4, 4, 6, 6, 2, 4, 2, 7, 4, 4, 7, 7,
	6, 6, 2, 8, 3, 3, 5, 5, 4, 2, 2, 2, 4, 4, 6, 6,
	2, 5, 2, 8, 4, 4, 6, 6, 2, 4, 2, 7, 4, 4, 7, 7,
	6, 6, 2, 8, 3, 3, 5, 5, 3, 2, 2, 2, 3, 4, 6, 6,
	2, 5, 2, 8, 4, 4, 6, 6, 2, 4, 2, 7, 4, 4, 7, 7,
	6, 6, 2, 8, 3, 3, 5, 5, 4, 2, 2, 2, 5, 4, 6, 6,
	2, 5, 2, 8, 4, 4, 6, 6, 2, 4, 2, 7, 4, 4, 7, 7,
	2, 6, 2, 6, 3, 3, 3, 3, 2, 2, 2, 2, 4, 4, 4, 4,
	2, 6, 2, 6, 4, 4, 4, 4, 2, 5, 2, 5, 5, 5, 5, 5,
	2, 6, 2, 6, 3, 3, 3, 3, 2, 2, 2, 2, 4, 4, 4, 4,
	2, 5, 2, 5, 4, 4, 4, 4, 2, 4, 2, 4, 4, 4, 4, 4,
	2, 6, 2, 8, 3, 3, 5, 5, 2, 2, 2, 2, 4, 4, 6, 6,
	2, 5, 2, 8, 4, 4, 6, 6, 2, 4, 2, 7, 4, 4, 7, 7,
	2, 6, 2, 8, 3, 3, 5, 5, 2, 2, 2, 2, 4, 4, 6, 6,
	2, 5, 2, 8, 4, 4, 6, 6, 2, 4, 2, 7, 4, 4, 7, 7,
}

var pageCycles = [256]uint8{
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	1, 1, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 1, 1, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	1, 1, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 1, 1, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	1, 1, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 1, 1, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	1, 1, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 1, 1, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	1, 1, 0, 1, 0, 0, 0, 0, 0, 1, 0, 1, 1, 1, 1, 1,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	1, 1, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 1, 1, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	1, 1, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 1, 1, 0, 0,
}

// mnemonics names each opcode; "OTHER" collects the unofficial opcodes the
// spec does not require real semantics for (spec.md §4.1 Failure policy,
// §9 Open questions), which are executed as documented-length/cycle NOPs.
var mnemonics = [256]string{
	"BRK", "ORA", "OTHER", "SLO", "NOP", "ORA", "ASL", "SLO",
	"PHP", "ORA", "ASL", "OTHER", "NOP", "ORA", "ASL", "SLO",
	"BPL", "ORA", "OTHER", "SLO", "NOP", "ORA", "ASL", "SLO",
	"CLC", "ORA", "NOP", "SLO", "NOP", "ORA", "ASL", "SLO",
	"JSR", "AND", "OTHER", "RLA", "BIT", "AND", "ROL", "RLA",
	"PLP", "AND", "ROL", "OTHER", "BIT", "AND", "ROL", "RLA",
	"BMI", "AND", "OTHER", "RLA", "NOP", "AND", "ROL", "RLA",
	"SEC", "AND", "NOP", "RLA", "NOP", "AND", "ROL", "RLA",
	"RTI", "EOR", "OTHER", "SRE", "NOP", "EOR", "LSR", "SRE",
	"PHA", "EOR", "LSR", "OTHER", "JMP", "EOR", "LSR", "SRE",
	"BVC", "EOR", "OTHER", "SRE", "NOP", "EOR", "LSR", "SRE",
	"CLI", "EOR", "NOP", "SRE", "NOP", "EOR", "LSR", "SRE",
	"RTS", "ADC", "OTHER", "RRA", "NOP", "ADC", "ROR", "RRA",
	"PLA", "ADC", "ROR", "OTHER", "JMP", "ADC", "ROR", "RRA",
	"BVS", "ADC", "OTHER", "RRA", "NOP", "ADC", "ROR", "RRA",
	"SEI", "ADC", "NOP", "RRA", "NOP", "ADC", "ROR", "RRA",
	"NOP", "STA", "NOP", "SAX", "STY", "STA", "STX", "SAX",
	"DEY", "NOP", "TXA", "OTHER", "STY", "STA", "STX", "SAX",
	"BCC", "STA", "OTHER", "OTHER", "STY", "STA", "STX", "SAX",
	"TYA", "STA", "TXS", "OTHER", "OTHER", "STA", "OTHER", "OTHER",
	"LDY", "LDA", "LDX", "LAX", "LDY", "LDA", "LDX", "LAX",
	"TAY", "LDA", "TAX", "OTHER", "LDY", "LDA", "LDX", "LAX",
	"BCS", "LDA", "OTHER", "LAX", "LDY", "LDA", "LDX", "LAX",
	"CLV", "LDA", "TSX", "OTHER", "LDY", "LDA", "LDX", "LAX",
	"CPY", "CMP", "NOP", "DCP", "CPY", "CMP", "DEC", "DCP",
	"INY", "CMP", "DEX", "OTHER", "CPY", "CMP", "DEC", "DCP",
	"BNE", "CMP", "OTHER", "DCP", "NOP", "CMP", "DEC", "DCP",
	"CLD", "CMP", "NOP", "DCP", "NOP", "CMP", "DEC", "DCP",
	"CPX", "SBC", "NOP", "ISC", "CPX", "SBC", "INC", "ISC",
	"INX", "SBC", "NOP", "SBC", "CPX", "SBC", "INC", "ISC",
	"BEQ", "SBC", "OTHER", "ISC", "NOP", "SBC", "INC", "ISC",
	"SED", "SBC", "NOP", "ISC", "NOP", "SBC", "INC", "ISC",
}
