// Package apu implements the audio processing unit: two pulse channels, one
// triangle channel, one noise channel, the frame sequencer that drives their
// length/envelope/sweep/linear counters, and a mixer that resamples to the
// host audio rate (spec.md §4.5). The DMC channel and expansion-audio chips
// are out of scope (spec.md §1 Non-goals; §4.5 lists only pulse/triangle/
// noise).
package apu

import "github.com/arl/blip"

// NTSC CPU clock rate in Hz, used to set the blip resampling ratio.
const cpuClockHz = 1789773

// Frame-sequencer step boundaries in CPU cycles (spec.md §4.5).
const (
	step1 = 3729
	step2 = 7457
	step3 = 11186
	step4 = 14915
	step5 = 18641
)

// APU holds all four channels' state, the frame sequencer, and the output
// mixer (spec.md §3 APU state).
type APU struct {
	Pulse1   pulse
	Pulse2   pulse
	Triangle triangle
	Noise    *noise

	fiveStepMode bool
	irqInhibit   bool
	irqFlag      bool
	frameCycle   uint64

	apuCycleParity bool // pulse/noise timers tick every other CPU cycle

	blipBuf      *blip.Buffer
	cycleInFrame int
	lastSample   int16
}

// New creates an APU that resamples its mixed output to sampleRate.
func New(sampleRate int) *APU {
	buf := blip.NewBuffer(sampleRate / 10)
	buf.SetRates(cpuClockHz, float64(sampleRate))

	a := &APU{
		Noise:   newNoise(),
		blipBuf: buf,
	}
	a.Pulse2.channelTwo = true
	return a
}

// ReadStatus implements a $4015 read (spec.md §4.3, §4.5): channel-active
// bits plus the frame IRQ flag, which is cleared as a read side effect.
func (a *APU) ReadStatus() uint8 {
	var v uint8
	if a.Pulse1.length.active() {
		v |= 0x01
	}
	if a.Pulse2.length.active() {
		v |= 0x02
	}
	if a.Triangle.length.active() {
		v |= 0x04
	}
	if a.Noise.length.active() {
		v |= 0x08
	}
	if a.irqFlag {
		v |= 0x40
	}
	a.irqFlag = false
	return v
}

// WriteRegister dispatches a CPU write in $4000-$4017 (excluding $4014,
// which the Bus handles directly as OAM-DMA).
func (a *APU) WriteRegister(addr uint16, val uint8) {
	switch addr {
	case 0x4000:
		a.Pulse1.writeControl(val)
	case 0x4001:
		a.Pulse1.writeSweep(val)
	case 0x4002:
		a.Pulse1.writeTimerLo(val)
	case 0x4003:
		a.Pulse1.writeTimerHi(val)
	case 0x4004:
		a.Pulse2.writeControl(val)
	case 0x4005:
		a.Pulse2.writeSweep(val)
	case 0x4006:
		a.Pulse2.writeTimerLo(val)
	case 0x4007:
		a.Pulse2.writeTimerHi(val)
	case 0x4008:
		a.Triangle.writeControl(val)
	case 0x400A:
		a.Triangle.writeTimerLo(val)
	case 0x400B:
		a.Triangle.writeTimerHi(val)
	case 0x400C:
		a.Noise.writeControl(val)
	case 0x400E:
		a.Noise.writePeriod(val)
	case 0x400F:
		a.Noise.writeLength(val)
	case 0x4015:
		a.writeStatus(val)
	case 0x4017:
		a.writeFrameCounter(val)
	}
}

func (a *APU) writeStatus(val uint8) {
	a.Pulse1.length.setEnabled(val&0x01 != 0)
	a.Pulse2.length.setEnabled(val&0x02 != 0)
	a.Triangle.length.setEnabled(val&0x04 != 0)
	a.Noise.length.setEnabled(val&0x08 != 0)
}

// writeFrameCounter resets the sequencer and, in 5-step mode, immediately
// clocks length and envelope units (spec.md §4.5).
func (a *APU) writeFrameCounter(val uint8) {
	a.fiveStepMode = val&0x80 != 0
	a.irqInhibit = val&0x40 != 0
	if a.irqInhibit {
		a.irqFlag = false
	}
	a.frameCycle = 0
	if a.fiveStepMode {
		a.clockQuarterFrame()
		a.clockHalfFrame()
	}
}

// Tick advances the APU by n CPU cycles (spec.md §4.7 Frame scheduler).
func (a *APU) Tick(n int) {
	for i := 0; i < n; i++ {
		a.tickOne()
	}
}

func (a *APU) tickOne() {
	a.Triangle.tickTimer()
	a.apuCycleParity = !a.apuCycleParity
	if a.apuCycleParity {
		a.Pulse1.tickTimer()
		a.Pulse2.tickTimer()
		a.Noise.tickTimer()
	}

	a.tickFrameSequencer()
	a.sampleOutput()
}

func (a *APU) tickFrameSequencer() {
	a.frameCycle++
	if !a.fiveStepMode {
		switch a.frameCycle {
		case step1, step3:
			a.clockQuarterFrame()
		case step2:
			a.clockQuarterFrame()
			a.clockHalfFrame()
		case step4:
			a.clockQuarterFrame()
			a.clockHalfFrame()
			if !a.irqInhibit {
				a.irqFlag = true
			}
			a.frameCycle = 0
		}
	} else {
		switch a.frameCycle {
		case step1, step3:
			a.clockQuarterFrame()
		case step2:
			a.clockQuarterFrame()
			a.clockHalfFrame()
		case step5:
			a.clockQuarterFrame()
			a.clockHalfFrame()
			a.frameCycle = 0
		}
	}
}

func (a *APU) clockQuarterFrame() {
	a.Pulse1.env.tick()
	a.Pulse2.env.tick()
	a.Triangle.tickLinear()
	a.Noise.env.tick()
}

func (a *APU) clockHalfFrame() {
	a.Pulse1.length.tick()
	a.Pulse2.length.tick()
	a.Triangle.length.tick()
	a.Noise.length.tick()
	a.Pulse1.tickSweep()
	a.Pulse2.tickSweep()
}

// IRQPending reports whether the frame sequencer's IRQ flag is set; the bus
// ORs this into the CPU's level-sensitive IRQ line.
func (a *APU) IRQPending() bool { return a.irqFlag }

func (a *APU) sampleOutput() {
	mixed := mix(a.Pulse1.output(), a.Pulse2.output(), a.Triangle.output(), a.Noise.output())
	sample := clampToPCM16(mixed)
	if sample != a.lastSample {
		a.blipBuf.AddDelta(uint64(a.cycleInFrame), int32(sample)-int32(a.lastSample))
		a.lastSample = sample
	}
	a.cycleInFrame++
}

// EndFrame closes out the current video frame's worth of audio and returns
// the resampled 16-bit PCM samples produced since the last call.
func (a *APU) EndFrame() []int16 {
	a.blipBuf.EndFrame(a.cycleInFrame)
	a.cycleInFrame = 0

	n := a.blipBuf.SamplesAvailable()
	out := make([]int16, n)
	a.blipBuf.ReadSamples(out, n, blip.Mono)
	return out
}
