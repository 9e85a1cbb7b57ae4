package snapshot

import (
	"nescore/hw/apu"
	"nescore/hw/cpu"
	"nescore/hw/mappers"
	"nescore/hw/ppu"

	"github.com/go-faster/jx"
)

// Marshal encodes s as a versioned JSON document.
func Marshal(s *Snapshot) ([]byte, error) {
	e := jx.Encoder{}
	e.ObjStart()

	e.FieldStart("version")
	e.Int(s.Version)

	e.FieldStart("cpu")
	encodeCPU(&e, s.CPU)

	e.FieldStart("ppu")
	encodePPU(&e, s.PPU)

	e.FieldStart("apu")
	encodeAPU(&e, s.APU)

	e.FieldStart("mapper")
	encodeMapper(&e, s.Mapper)

	e.FieldStart("ram")
	encodeBytes(&e, s.RAM)

	e.FieldStart("sram")
	encodeBytes(&e, s.SRAM)

	e.ObjEnd()
	return e.Bytes(), nil
}

func encodeBytes(e *jx.Encoder, b []byte) {
	e.ArrStart()
	for _, v := range b {
		e.UInt8(v)
	}
	e.ArrEnd()
}

func encodeCPU(e *jx.Encoder, s cpu.State) {
	e.ObjStart()
	e.FieldStart("a")
	e.UInt8(s.A)
	e.FieldStart("x")
	e.UInt8(s.X)
	e.FieldStart("y")
	e.UInt8(s.Y)
	e.FieldStart("sp")
	e.UInt8(s.SP)
	e.FieldStart("pc")
	e.UInt16(s.PC)
	e.FieldStart("p")
	e.UInt8(s.P)
	e.FieldStart("clock")
	e.UInt64(s.Clock)
	e.FieldStart("nmi_pending")
	e.Bool(s.NMIPending)
	e.FieldStart("nmi_line")
	e.Bool(s.NMILine)
	e.FieldStart("irq_line")
	e.Bool(s.IRQLine)
	e.FieldStart("stall_cycles")
	e.Int(s.StallCycles)
	e.ObjEnd()
}

func encodePPU(e *jx.Encoder, s ppu.State) {
	e.ObjStart()
	e.FieldStart("scanline")
	e.Int(s.Scanline)
	e.FieldStart("dot")
	e.Int(s.Dot)
	e.FieldStart("frame")
	e.UInt64(s.Frame)
	e.FieldStart("ctrl")
	e.UInt8(s.Ctrl)
	e.FieldStart("mask")
	e.UInt8(s.Mask)
	e.FieldStart("status")
	e.UInt8(s.Status)
	e.FieldStart("oam_addr")
	e.UInt8(s.OAMAddr)
	e.FieldStart("oam")
	encodeBytes(e, s.OAM[:])
	e.FieldStart("v")
	e.UInt16(s.V)
	e.FieldStart("t")
	e.UInt16(s.T)
	e.FieldStart("x")
	e.UInt8(s.X)
	e.FieldStart("w")
	e.Bool(s.W)
	e.FieldStart("read_buffer")
	e.UInt8(s.ReadBuffer)
	e.FieldStart("open_bus")
	e.UInt8(s.OpenBus)
	e.FieldStart("palette")
	encodeBytes(e, s.Palette[:])
	e.FieldStart("nt")
	encodeBytes(e, s.NT)
	e.FieldStart("bg_pattern_shift_lo")
	e.UInt16(s.BGPatternShiftLo)
	e.FieldStart("bg_pattern_shift_hi")
	e.UInt16(s.BGPatternShiftHi)
	e.FieldStart("bg_attr_shift_lo")
	e.UInt16(s.BGAttrShiftLo)
	e.FieldStart("bg_attr_shift_hi")
	e.UInt16(s.BGAttrShiftHi)
	e.FieldStart("nt_byte")
	e.UInt8(s.NTByte)
	e.FieldStart("at_byte")
	e.UInt8(s.ATByte)
	e.FieldStart("bg_lo")
	e.UInt8(s.BGLo)
	e.FieldStart("bg_hi")
	e.UInt8(s.BGHi)
	e.FieldStart("secondary_count")
	e.Int(s.SecondaryCount)
	e.FieldStart("sprite_shift_lo")
	encodeBytes(e, s.SpriteShiftLo[:])
	e.FieldStart("sprite_shift_hi")
	encodeBytes(e, s.SpriteShiftHi[:])
	e.FieldStart("secondary_oam")
	e.ArrStart()
	for _, sp := range s.SecondaryOAM {
		e.ObjStart()
		e.FieldStart("x")
		e.UInt8(sp.X)
		e.FieldStart("y")
		e.UInt8(sp.Y)
		e.FieldStart("tile")
		e.UInt8(sp.Tile)
		e.FieldStart("attr")
		e.UInt8(sp.Attr)
		e.FieldStart("is_sprite_zero")
		e.Bool(sp.IsSpriteZero)
		e.ObjEnd()
	}
	e.ArrEnd()
	e.ObjEnd()
}

func encodeLength(e *jx.Encoder, l apu.LengthState) {
	e.ObjStart()
	e.FieldStart("halt")
	e.Bool(l.Halt)
	e.FieldStart("enabled")
	e.Bool(l.Enabled)
	e.FieldStart("value")
	e.UInt8(l.Value)
	e.ObjEnd()
}

func encodeEnvelope(e *jx.Encoder, v apu.EnvelopeState) {
	e.ObjStart()
	e.FieldStart("loop")
	e.Bool(v.Loop)
	e.FieldStart("constant")
	e.Bool(v.Constant)
	e.FieldStart("volume")
	e.UInt8(v.Volume)
	e.FieldStart("start")
	e.Bool(v.Start)
	e.FieldStart("divider")
	e.UInt8(v.Divider)
	e.FieldStart("decay")
	e.UInt8(v.Decay)
	e.ObjEnd()
}

func encodePulse(e *jx.Encoder, p apu.PulseState) {
	e.ObjStart()
	e.FieldStart("length")
	encodeLength(e, p.Length)
	e.FieldStart("env")
	encodeEnvelope(e, p.Env)
	e.FieldStart("duty")
	e.UInt8(p.Duty)
	e.FieldStart("sequence")
	e.UInt8(p.Sequence)
	e.FieldStart("timer_period")
	e.UInt16(p.TimerPeriod)
	e.FieldStart("timer_value")
	e.UInt16(p.TimerValue)
	e.FieldStart("sweep_enabled")
	e.Bool(p.SweepEnabled)
	e.FieldStart("sweep_period")
	e.UInt8(p.SweepPeriod)
	e.FieldStart("sweep_negate")
	e.Bool(p.SweepNegate)
	e.FieldStart("sweep_shift")
	e.UInt8(p.SweepShift)
	e.FieldStart("sweep_reload")
	e.Bool(p.SweepReload)
	e.FieldStart("sweep_divider")
	e.UInt8(p.SweepDivider)
	e.ObjEnd()
}

func encodeAPU(e *jx.Encoder, s apu.State) {
	e.ObjStart()
	e.FieldStart("pulse1")
	encodePulse(e, s.Pulse1)
	e.FieldStart("pulse2")
	encodePulse(e, s.Pulse2)

	e.FieldStart("triangle")
	e.ObjStart()
	e.FieldStart("length")
	encodeLength(e, s.Triangle.Length)
	e.FieldStart("linear_period")
	e.UInt8(s.Triangle.LinearPeriod)
	e.FieldStart("linear_value")
	e.UInt8(s.Triangle.LinearValue)
	e.FieldStart("linear_reload")
	e.Bool(s.Triangle.LinearReload)
	e.FieldStart("control_halt")
	e.Bool(s.Triangle.ControlHalt)
	e.FieldStart("timer_period")
	e.UInt16(s.Triangle.TimerPeriod)
	e.FieldStart("timer_value")
	e.UInt16(s.Triangle.TimerValue)
	e.FieldStart("sequence")
	e.UInt8(s.Triangle.Sequence)
	e.ObjEnd()

	e.FieldStart("noise")
	e.ObjStart()
	e.FieldStart("length")
	encodeLength(e, s.Noise.Length)
	e.FieldStart("env")
	encodeEnvelope(e, s.Noise.Env)
	e.FieldStart("mode")
	e.Bool(s.Noise.Mode)
	e.FieldStart("timer_period")
	e.UInt16(s.Noise.TimerPeriod)
	e.FieldStart("timer_value")
	e.UInt16(s.Noise.TimerValue)
	e.FieldStart("shift")
	e.UInt16(s.Noise.Shift)
	e.ObjEnd()

	e.FieldStart("five_step_mode")
	e.Bool(s.FiveStepMode)
	e.FieldStart("irq_inhibit")
	e.Bool(s.IRQInhibit)
	e.FieldStart("irq_flag")
	e.Bool(s.IRQFlag)
	e.FieldStart("frame_cycle")
	e.UInt64(s.FrameCycle)
	e.ObjEnd()
}

func encodeMapper(e *jx.Encoder, s mappers.State) {
	e.ObjStart()
	e.FieldStart("kind")
	e.Int(int(s.Kind))
	e.FieldStart("chr")
	encodeBytes(e, s.CHR)
	e.FieldStart("prg_ram")
	encodeBytes(e, s.PRGRAM[:])
	e.FieldStart("prg_ram_dirty")
	e.Bool(s.PRGRAMDirty)
	e.FieldStart("mmc1_shift")
	e.UInt8(s.MMC1Shift)
	e.FieldStart("mmc1_shift_count")
	e.UInt8(s.MMC1ShiftCount)
	e.FieldStart("mmc1_control")
	e.UInt8(s.MMC1Control)
	e.FieldStart("mmc1_chr0")
	e.UInt8(s.MMC1CHR0)
	e.FieldStart("mmc1_chr1")
	e.UInt8(s.MMC1CHR1)
	e.FieldStart("mmc1_prg")
	e.UInt8(s.MMC1PRG)
	e.FieldStart("mmc1_last_cycle")
	e.UInt64(s.MMC1LastCycle)
	e.FieldStart("mmc1_has_cycle")
	e.Bool(s.MMC1HasCycle)
	e.FieldStart("ux_prg_bank")
	e.UInt8(s.UxPRGBank)
	e.FieldStart("chr_bank")
	e.UInt8(s.CHRBank)
	e.ObjEnd()
}
