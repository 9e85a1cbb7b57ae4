package apu

// State is the APU's serializable state (spec.md §6 Save state). Blip's
// internal resampling buffer is not part of the snapshot: it holds only
// in-flight audio for the current frame, not guest-observable state.
type State struct {
	Pulse1, Pulse2 PulseState
	Triangle       TriangleState
	Noise          NoiseState

	FiveStepMode bool
	IRQInhibit   bool
	IRQFlag      bool
	FrameCycle   uint64
}

type LengthState struct {
	Halt, Enabled bool
	Value         uint8
}

type EnvelopeState struct {
	Loop, Constant bool
	Volume         uint8
	Start          bool
	Divider, Decay uint8
}

type PulseState struct {
	Length      LengthState
	Env         EnvelopeState
	Duty        uint8
	Sequence    uint8
	TimerPeriod uint16
	TimerValue  uint16

	SweepEnabled bool
	SweepPeriod  uint8
	SweepNegate  bool
	SweepShift   uint8
	SweepReload  bool
	SweepDivider uint8
}

type TriangleState struct {
	Length       LengthState
	LinearPeriod uint8
	LinearValue  uint8
	LinearReload bool
	ControlHalt  bool
	TimerPeriod  uint16
	TimerValue   uint16
	Sequence     uint8
}

type NoiseState struct {
	Length      LengthState
	Env         EnvelopeState
	Mode        bool
	TimerPeriod uint16
	TimerValue  uint16
	Shift       uint16
}

func lengthState(l lengthCounter) LengthState {
	return LengthState{Halt: l.halt, Enabled: l.enabled, Value: l.value}
}

func setLengthState(l *lengthCounter, s LengthState) {
	l.halt, l.enabled, l.value = s.Halt, s.Enabled, s.Value
}

func envelopeState(e envelope) EnvelopeState {
	return EnvelopeState{Loop: e.loop, Constant: e.constant, Volume: e.volume, Start: e.start, Divider: e.divider, Decay: e.decay}
}

func setEnvelopeState(e *envelope, s EnvelopeState) {
	e.loop, e.constant, e.volume, e.start, e.divider, e.decay = s.Loop, s.Constant, s.Volume, s.Start, s.Divider, s.Decay
}

func pulseState(p pulse) PulseState {
	return PulseState{
		Length: lengthState(p.length), Env: envelopeState(p.env),
		Duty: p.duty, Sequence: p.sequence,
		TimerPeriod: p.timerPeriod, TimerValue: p.timerValue,
		SweepEnabled: p.sweepEnabled, SweepPeriod: p.sweepPeriod, SweepNegate: p.sweepNegate,
		SweepShift: p.sweepShift, SweepReload: p.sweepReload, SweepDivider: p.sweepDivider,
	}
}

func setPulseState(p *pulse, s PulseState) {
	setLengthState(&p.length, s.Length)
	setEnvelopeState(&p.env, s.Env)
	p.duty, p.sequence = s.Duty, s.Sequence
	p.timerPeriod, p.timerValue = s.TimerPeriod, s.TimerValue
	p.sweepEnabled, p.sweepPeriod, p.sweepNegate = s.SweepEnabled, s.SweepPeriod, s.SweepNegate
	p.sweepShift, p.sweepReload, p.sweepDivider = s.SweepShift, s.SweepReload, s.SweepDivider
}

// State captures the APU's current state.
func (a *APU) State() State {
	return State{
		Pulse1: pulseState(a.Pulse1), Pulse2: pulseState(a.Pulse2),
		Triangle: TriangleState{
			Length: lengthState(a.Triangle.length), LinearPeriod: a.Triangle.linearPeriod,
			LinearValue: a.Triangle.linearValue, LinearReload: a.Triangle.linearReload,
			ControlHalt: a.Triangle.controlHalt, TimerPeriod: a.Triangle.timerPeriod,
			TimerValue: a.Triangle.timerValue, Sequence: a.Triangle.sequence,
		},
		Noise: NoiseState{
			Length: lengthState(a.Noise.length), Env: envelopeState(a.Noise.env),
			Mode: a.Noise.mode, TimerPeriod: a.Noise.timerPeriod,
			TimerValue: a.Noise.timerValue, Shift: a.Noise.shift,
		},
		FiveStepMode: a.fiveStepMode, IRQInhibit: a.irqInhibit, IRQFlag: a.irqFlag,
		FrameCycle: a.frameCycle,
	}
}

// SetState restores a previously captured State.
func (a *APU) SetState(s State) {
	setPulseState(&a.Pulse1, s.Pulse1)
	setPulseState(&a.Pulse2, s.Pulse2)

	setLengthState(&a.Triangle.length, s.Triangle.Length)
	a.Triangle.linearPeriod, a.Triangle.linearValue = s.Triangle.LinearPeriod, s.Triangle.LinearValue
	a.Triangle.linearReload, a.Triangle.controlHalt = s.Triangle.LinearReload, s.Triangle.ControlHalt
	a.Triangle.timerPeriod, a.Triangle.timerValue, a.Triangle.sequence = s.Triangle.TimerPeriod, s.Triangle.TimerValue, s.Triangle.Sequence

	setLengthState(&a.Noise.length, s.Noise.Length)
	setEnvelopeState(&a.Noise.env, s.Noise.Env)
	a.Noise.mode = s.Noise.Mode
	a.Noise.timerPeriod, a.Noise.timerValue, a.Noise.shift = s.Noise.TimerPeriod, s.Noise.TimerValue, s.Noise.Shift

	a.fiveStepMode, a.irqInhibit, a.irqFlag = s.FiveStepMode, s.IRQInhibit, s.IRQFlag
	a.frameCycle = s.FrameCycle
}
