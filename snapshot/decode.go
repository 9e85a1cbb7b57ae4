package snapshot

import (
	"nescore/hw/apu"
	"nescore/hw/cpu"
	"nescore/hw/mappers"
	"nescore/hw/ppu"

	"github.com/go-faster/jx"
)

// Unmarshal decodes a JSON document produced by Marshal. It does not
// validate Version against the caller's expected Version; call sites compare
// Snapshot.Version themselves (Restore does this).
func Unmarshal(data []byte) (*Snapshot, error) {
	d := jx.DecodeBytes(data)
	s := &Snapshot{}
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "version":
			s.Version, err = d.Int()
		case "cpu":
			s.CPU, err = decodeCPU(d)
		case "ppu":
			s.PPU, err = decodePPU(d)
		case "apu":
			s.APU, err = decodeAPU(d)
		case "mapper":
			s.Mapper, err = decodeMapper(d)
		case "ram":
			s.RAM, err = decodeBytes(d)
		case "sram":
			s.SRAM, err = decodeBytes(d)
		default:
			err = d.Skip()
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func decodeBytes(d *jx.Decoder) ([]byte, error) {
	var b []byte
	err := d.Arr(func(d *jx.Decoder) error {
		v, err := d.UInt8()
		if err != nil {
			return err
		}
		b = append(b, v)
		return nil
	})
	return b, err
}

func decodeLength(d *jx.Decoder) (apu.LengthState, error) {
	var l apu.LengthState
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "halt":
			l.Halt, err = d.Bool()
		case "enabled":
			l.Enabled, err = d.Bool()
		case "value":
			l.Value, err = d.UInt8()
		default:
			err = d.Skip()
		}
		return err
	})
	return l, err
}

func decodeEnvelope(d *jx.Decoder) (apu.EnvelopeState, error) {
	var v apu.EnvelopeState
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "loop":
			v.Loop, err = d.Bool()
		case "constant":
			v.Constant, err = d.Bool()
		case "volume":
			v.Volume, err = d.UInt8()
		case "start":
			v.Start, err = d.Bool()
		case "divider":
			v.Divider, err = d.UInt8()
		case "decay":
			v.Decay, err = d.UInt8()
		default:
			err = d.Skip()
		}
		return err
	})
	return v, err
}

func decodePulse(d *jx.Decoder) (apu.PulseState, error) {
	var p apu.PulseState
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "length":
			p.Length, err = decodeLength(d)
		case "env":
			p.Env, err = decodeEnvelope(d)
		case "duty":
			p.Duty, err = d.UInt8()
		case "sequence":
			p.Sequence, err = d.UInt8()
		case "timer_period":
			p.TimerPeriod, err = d.UInt16()
		case "timer_value":
			p.TimerValue, err = d.UInt16()
		case "sweep_enabled":
			p.SweepEnabled, err = d.Bool()
		case "sweep_period":
			p.SweepPeriod, err = d.UInt8()
		case "sweep_negate":
			p.SweepNegate, err = d.Bool()
		case "sweep_shift":
			p.SweepShift, err = d.UInt8()
		case "sweep_reload":
			p.SweepReload, err = d.Bool()
		case "sweep_divider":
			p.SweepDivider, err = d.UInt8()
		default:
			err = d.Skip()
		}
		return err
	})
	return p, err
}

func decodeCPU(d *jx.Decoder) (cpu.State, error) {
	var s cpu.State
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "a":
			s.A, err = d.UInt8()
		case "x":
			s.X, err = d.UInt8()
		case "y":
			s.Y, err = d.UInt8()
		case "sp":
			s.SP, err = d.UInt8()
		case "pc":
			s.PC, err = d.UInt16()
		case "p":
			s.P, err = d.UInt8()
		case "clock":
			s.Clock, err = d.UInt64()
		case "nmi_pending":
			s.NMIPending, err = d.Bool()
		case "nmi_line":
			s.NMILine, err = d.Bool()
		case "irq_line":
			s.IRQLine, err = d.Bool()
		case "stall_cycles":
			s.StallCycles, err = d.Int()
		default:
			err = d.Skip()
		}
		return err
	})
	return s, err
}

func decodePPU(d *jx.Decoder) (ppu.State, error) {
	var s ppu.State
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "scanline":
			s.Scanline, err = d.Int()
		case "dot":
			s.Dot, err = d.Int()
		case "frame":
			s.Frame, err = d.UInt64()
		case "ctrl":
			s.Ctrl, err = d.UInt8()
		case "mask":
			s.Mask, err = d.UInt8()
		case "status":
			s.Status, err = d.UInt8()
		case "oam_addr":
			s.OAMAddr, err = d.UInt8()
		case "oam":
			var b []byte
			if b, err = decodeBytes(d); err == nil {
				copy(s.OAM[:], b)
			}
		case "v":
			s.V, err = d.UInt16()
		case "t":
			s.T, err = d.UInt16()
		case "x":
			s.X, err = d.UInt8()
		case "w":
			s.W, err = d.Bool()
		case "read_buffer":
			s.ReadBuffer, err = d.UInt8()
		case "open_bus":
			s.OpenBus, err = d.UInt8()
		case "palette":
			var b []byte
			if b, err = decodeBytes(d); err == nil {
				copy(s.Palette[:], b)
			}
		case "nt":
			s.NT, err = decodeBytes(d)
		case "bg_pattern_shift_lo":
			s.BGPatternShiftLo, err = d.UInt16()
		case "bg_pattern_shift_hi":
			s.BGPatternShiftHi, err = d.UInt16()
		case "bg_attr_shift_lo":
			s.BGAttrShiftLo, err = d.UInt16()
		case "bg_attr_shift_hi":
			s.BGAttrShiftHi, err = d.UInt16()
		case "nt_byte":
			s.NTByte, err = d.UInt8()
		case "at_byte":
			s.ATByte, err = d.UInt8()
		case "bg_lo":
			s.BGLo, err = d.UInt8()
		case "bg_hi":
			s.BGHi, err = d.UInt8()
		case "secondary_count":
			s.SecondaryCount, err = d.Int()
		case "sprite_shift_lo":
			var b []byte
			if b, err = decodeBytes(d); err == nil {
				copy(s.SpriteShiftLo[:], b)
			}
		case "sprite_shift_hi":
			var b []byte
			if b, err = decodeBytes(d); err == nil {
				copy(s.SpriteShiftHi[:], b)
			}
		case "secondary_oam":
			i := 0
			err = d.Arr(func(d *jx.Decoder) error {
				if i >= len(s.SecondaryOAM) {
					return d.Skip()
				}
				idx := i
				i++
				return d.Obj(func(d *jx.Decoder, key string) error {
					var err error
					switch key {
					case "x":
						s.SecondaryOAM[idx].X, err = d.UInt8()
					case "y":
						s.SecondaryOAM[idx].Y, err = d.UInt8()
					case "tile":
						s.SecondaryOAM[idx].Tile, err = d.UInt8()
					case "attr":
						s.SecondaryOAM[idx].Attr, err = d.UInt8()
					case "is_sprite_zero":
						s.SecondaryOAM[idx].IsSpriteZero, err = d.Bool()
					default:
						err = d.Skip()
					}
					return err
				})
			})
		default:
			err = d.Skip()
		}
		return err
	})
	return s, err
}

func decodeAPU(d *jx.Decoder) (apu.State, error) {
	var s apu.State
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "pulse1":
			s.Pulse1, err = decodePulse(d)
		case "pulse2":
			s.Pulse2, err = decodePulse(d)
		case "triangle":
			err = d.Obj(func(d *jx.Decoder, key string) error {
				var err error
				switch key {
				case "length":
					s.Triangle.Length, err = decodeLength(d)
				case "linear_period":
					s.Triangle.LinearPeriod, err = d.UInt8()
				case "linear_value":
					s.Triangle.LinearValue, err = d.UInt8()
				case "linear_reload":
					s.Triangle.LinearReload, err = d.Bool()
				case "control_halt":
					s.Triangle.ControlHalt, err = d.Bool()
				case "timer_period":
					s.Triangle.TimerPeriod, err = d.UInt16()
				case "timer_value":
					s.Triangle.TimerValue, err = d.UInt16()
				case "sequence":
					s.Triangle.Sequence, err = d.UInt8()
				default:
					err = d.Skip()
				}
				return err
			})
		case "noise":
			err = d.Obj(func(d *jx.Decoder, key string) error {
				var err error
				switch key {
				case "length":
					s.Noise.Length, err = decodeLength(d)
				case "env":
					s.Noise.Env, err = decodeEnvelope(d)
				case "mode":
					s.Noise.Mode, err = d.Bool()
				case "timer_period":
					s.Noise.TimerPeriod, err = d.UInt16()
				case "timer_value":
					s.Noise.TimerValue, err = d.UInt16()
				case "shift":
					s.Noise.Shift, err = d.UInt16()
				default:
					err = d.Skip()
				}
				return err
			})
		case "five_step_mode":
			s.FiveStepMode, err = d.Bool()
		case "irq_inhibit":
			s.IRQInhibit, err = d.Bool()
		case "irq_flag":
			s.IRQFlag, err = d.Bool()
		case "frame_cycle":
			s.FrameCycle, err = d.UInt64()
		default:
			err = d.Skip()
		}
		return err
	})
	return s, err
}

func decodeMapper(d *jx.Decoder) (mappers.State, error) {
	var s mappers.State
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "kind":
			var k int
			if k, err = d.Int(); err == nil {
				s.Kind = mappers.Kind(k)
			}
		case "chr":
			s.CHR, err = decodeBytes(d)
		case "prg_ram":
			var b []byte
			if b, err = decodeBytes(d); err == nil {
				copy(s.PRGRAM[:], b)
			}
		case "prg_ram_dirty":
			s.PRGRAMDirty, err = d.Bool()
		case "mmc1_shift":
			s.MMC1Shift, err = d.UInt8()
		case "mmc1_shift_count":
			s.MMC1ShiftCount, err = d.UInt8()
		case "mmc1_control":
			s.MMC1Control, err = d.UInt8()
		case "mmc1_chr0":
			s.MMC1CHR0, err = d.UInt8()
		case "mmc1_chr1":
			s.MMC1CHR1, err = d.UInt8()
		case "mmc1_prg":
			s.MMC1PRG, err = d.UInt8()
		case "mmc1_last_cycle":
			s.MMC1LastCycle, err = d.UInt64()
		case "mmc1_has_cycle":
			s.MMC1HasCycle, err = d.Bool()
		case "ux_prg_bank":
			s.UxPRGBank, err = d.UInt8()
		case "chr_bank":
			s.CHRBank, err = d.UInt8()
		default:
			err = d.Skip()
		}
		return err
	})
	return s, err
}
