package cpu

// State is the CPU's serializable state, used by the snapshot package
// (spec.md §6 Save state).
type State struct {
	A, X, Y, SP uint8
	PC          uint16
	P           uint8
	Clock       uint64

	NMIPending  bool
	NMILine     bool
	IRQLine     bool
	StallCycles int
}

// State captures the CPU's current register and timing state.
func (c *CPU) State() State {
	return State{
		A: c.A, X: c.X, Y: c.Y, SP: c.SP, PC: c.PC, P: uint8(c.P), Clock: c.Clock,
		NMIPending: c.nmiPending, NMILine: c.nmiLine, IRQLine: c.irqLine,
		StallCycles: c.stallCycles,
	}
}

// SetState restores a previously captured State.
func (c *CPU) SetState(s State) {
	c.A, c.X, c.Y, c.SP, c.PC = s.A, s.X, s.Y, s.SP, s.PC
	c.P = P(s.P)
	c.Clock = s.Clock
	c.nmiPending, c.nmiLine, c.irqLine = s.NMIPending, s.NMILine, s.IRQLine
	c.stallCycles = s.StallCycles
}
