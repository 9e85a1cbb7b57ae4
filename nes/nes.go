// Package nes wires the CPU, PPU, APU, Bus and Cartridge together and drives
// the frame scheduler (spec.md §2, §4.7, §9 Design notes).
package nes

import (
	"nescore/hw"
	"nescore/hw/apu"
	"nescore/hw/cpu"
	"nescore/hw/ppu"
	"nescore/ines"
)

// System owns one running console: one cartridge, one CPU/PPU/APU triple,
// the bus connecting them, and two gamepad ports.
type System struct {
	CPU  *cpu.CPU
	PPU  *ppu.PPU
	APU  *apu.APU
	Bus  *hw.Bus
	Cart *hw.Cartridge

	Pad1, Pad2 *hw.Controller
}

// New builds a System from a parsed ROM. sampleRate is the host audio rate
// the APU resamples its mixed output to.
func New(rom *ines.ROM, sampleRate int) (*System, error) {
	cart, err := hw.NewCartridge(rom)
	if err != nil {
		return nil, err
	}

	c := cpu.New()
	bus := hw.NewBus()
	p := ppu.New(cart, c)
	a := apu.New(sampleRate)
	pad1, pad2 := &hw.Controller{}, &hw.Controller{}

	bus.PPU = p
	bus.APU = a
	bus.Cart = cart
	bus.CPU = c
	bus.Pad1, bus.Pad2 = pad1, pad2
	c.Bus = bus

	s := &System{
		CPU: c, PPU: p, APU: a, Bus: bus, Cart: cart,
		Pad1: pad1, Pad2: pad2,
	}
	s.Reset()
	return s, nil
}

// Reset powers the CPU/PPU back to their post-reset state (spec.md §4.1
// Reset). The cartridge and its PRG-RAM are untouched.
func (s *System) Reset() {
	s.CPU.PowerUp()
	s.CPU.Reset()
	s.PPU.Reset()
}

// RunFrame drives the CPU/PPU/APU in lockstep until the PPU signals the end
// of a frame (spec.md §4.7 Frame scheduler), and returns the audio samples
// produced during that frame. NMI is delivered to the CPU as a side effect
// of PPU ticks and PPU register writes (SetNMILine); IRQ is sampled once per CPU
// instruction from the APU's frame-sequencer flag.
func (s *System) RunFrame() []int16 {
	for {
		cycles := s.CPU.Step()

		endOfFrame := false
		for i := 0; i < cycles; i++ {
			for dot := 0; dot < 3; dot++ {
				s.PPU.Tick()
				if s.PPU.EndOfFrame() {
					endOfFrame = true
				}
			}
			s.APU.Tick(1)
		}

		s.CPU.SetIRQLine(s.APU.IRQPending())

		if endOfFrame {
			return s.APU.EndFrame()
		}
	}
}
