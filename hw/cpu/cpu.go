// Package cpu implements the 6502-family CPU core: official and the
// commonly-relied-upon unofficial opcodes, with exact cycle accounting
// (spec.md §4.1).
package cpu

// Bus is the CPU's view of the memory-mapped interconnect. The CPU holds a
// non-owning reference to a Bus for the duration of a Step and never
// outlives it (spec.md §9).
type Bus interface {
	Read8(addr uint16) uint8
	Write8(addr uint16, val uint8)
}

// Vector addresses for hardware interrupts.
const (
	NMIVector   = 0xFFFA
	ResetVector = 0xFFFC
	IRQVector   = 0xFFFE
)

// P is the 6502 processor status register.
type P uint8

const (
	flagC P = 1 << iota
	flagZ
	flagI
	flagD
	flagB
	flagU // always 1
	flagV
	flagN
)

func (p P) has(f P) bool { return p&f != 0 }

func (p *P) set(f P, v bool) {
	if v {
		*p |= f
	} else {
		*p &^= f
	}
}

func (p *P) checkNZ(v uint8) {
	p.set(flagN, v&0x80 != 0)
	p.set(flagZ, v == 0)
}

// CPU holds all 6502 register and timing state (spec.md §3 CPU state).
type CPU struct {
	Bus Bus

	A, X, Y, SP uint8
	PC          uint16
	P           P

	Clock uint64 // cumulative CPU cycle counter

	nmiPending bool
	nmiLine    bool // raw level from the PPU, used to detect the falling edge
	irqLine    bool // level-sensitive

	stallCycles int
}

// New creates a CPU with no Bus attached. Bus must be set before Reset/Step
// are called; it is split out of New so the bus can construct the CPU first
// and wire itself in afterwards (breaks the CPU<->Bus construction cycle).
func New() *CPU {
	return &CPU{SP: 0xFD}
}

// Reset loads PC from the reset vector and sets I, consuming 7 CPU cycles'
// worth of time as far as the caller's bookkeeping is concerned (spec.md
// §4.1 Reset): SP is decremented by three with no actual push.
func (c *CPU) Reset() {
	c.PC = c.read16(ResetVector)
	c.SP -= 3
	c.P.set(flagI, true)
	c.P |= flagU
	c.Clock += 7
}

// PowerUp initializes registers to the documented 6502 power-on state.
func (c *CPU) PowerUp() {
	c.A, c.X, c.Y = 0, 0, 0
	c.SP = 0xFD
	c.P = flagU | flagI
	c.Clock = 0
	c.nmiPending, c.nmiLine, c.irqLine = false, false, false
	c.stallCycles = 0
}

// Stall pays n CPU cycles without executing an instruction (used by OAM-DMA,
// spec.md §4.3).
func (c *CPU) Stall(n int) { c.stallCycles += n }

// SetNMILine updates the NMI input level; an NMI is latched on the edge
// where the line asserts (false -> true), to be serviced at the next
// instruction boundary (spec.md §4.1 Interrupts). The PPU asserts the line
// at VBlank start and deasserts it at pre-render dot 1 and on a PPUSTATUS
// read, so the line must actually fall before it can rise again.
func (c *CPU) SetNMILine(level bool) {
	if !c.nmiLine && level {
		c.nmiPending = true
	}
	c.nmiLine = level
}

// SetIRQLine sets the level-sensitive IRQ line state.
func (c *CPU) SetIRQLine(level bool) { c.irqLine = level }

// CurrentCycle returns the CPU's cumulative cycle counter, used by mappers
// (e.g. MMC1) that need to detect back-to-back writes.
func (c *CPU) CurrentCycle() uint64 { return c.Clock }

// Step performs one unit of CPU work and returns the number of CPU cycles it
// consumed: pending stall cycles are paid all at once, otherwise a pending
// NMI or IRQ is serviced, otherwise exactly one instruction is executed.
// Stalling or servicing an interrupt executes no instruction in that call.
func (c *CPU) Step() int {
	before := c.Clock

	if c.stallCycles > 0 {
		n := c.stallCycles
		c.stallCycles = 0
		c.Clock += uint64(n)
		return n
	}

	if c.nmiPending {
		c.nmiPending = false
		c.serviceInterrupt(NMIVector, false)
		c.Clock += 7
		return int(c.Clock - before)
	}
	if c.irqLine && !c.P.has(flagI) {
		c.serviceInterrupt(IRQVector, false)
		c.Clock += 7
		return int(c.Clock - before)
	}

	opcode := c.fetch8()
	execOpcode(c, opcode)
	return int(c.Clock - before)
}

// serviceInterrupt pushes PC/status and jumps to vector. brk selects BRK's
// PC+2/B=1 semantics versus NMI/IRQ's unmodified PC/B=0. Cycle accounting is
// the caller's responsibility: Step charges hardware interrupts 7 cycles
// directly, while software BRK's 7 cycles come from baseCycles[0x00] via the
// normal per-opcode charge in execOpcode.
func (c *CPU) serviceInterrupt(vector uint16, brk bool) {
	if brk {
		c.push16(c.PC + 1)
	} else {
		c.push16(c.PC)
	}
	status := c.P | flagU
	status.set(flagB, brk)
	c.push8(uint8(status))
	c.P.set(flagI, true)
	c.PC = c.read16(vector)
}

func (c *CPU) read8(addr uint16) uint8 { return c.Bus.Read8(addr) }

func (c *CPU) write8(addr uint16, val uint8) { c.Bus.Write8(addr, val) }

func (c *CPU) read16(addr uint16) uint16 {
	lo := c.read8(addr)
	hi := c.read8(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

// read16bug reproduces the 6502 JMP (indirect) page-wrap bug: the high byte
// is fetched from (addr & 0xFF00) | ((addr+1) & 0x00FF).
func (c *CPU) read16bug(addr uint16) uint16 {
	lo := c.read8(addr)
	hi := c.read8((addr & 0xFF00) | ((addr + 1) & 0x00FF))
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) fetch8() uint8 {
	v := c.read8(c.PC)
	c.PC++
	return v
}

func (c *CPU) push8(v uint8) {
	c.write8(0x100|uint16(c.SP), v)
	c.SP--
}

func (c *CPU) pull8() uint8 {
	c.SP++
	return c.read8(0x100 | uint16(c.SP))
}

func (c *CPU) push16(v uint16) {
	c.push8(uint8(v >> 8))
	c.push8(uint8(v))
}

func (c *CPU) pull16() uint16 {
	lo := c.pull8()
	hi := c.pull8()
	return uint16(hi)<<8 | uint16(lo)
}

func pagesDiffer(a, b uint16) bool { return a&0xFF00 != b&0xFF00 }
