package ppu

// State is the PPU's serializable state, including the internal loopy
// latches and secondary OAM (spec.md §6 Save state).
type State struct {
	Scanline int
	Dot      int
	Frame    uint64

	Ctrl, Mask, Status uint8
	OAMAddr            uint8
	OAM                [256]uint8

	V, T uint16
	X    uint8
	W    bool

	ReadBuffer uint8
	OpenBus    uint8

	Palette [32]uint8
	NT      []uint8

	BGPatternShiftLo, BGPatternShiftHi uint16
	BGAttrShiftLo, BGAttrShiftHi       uint16
	NTByte, ATByte, BGLo, BGHi         uint8

	SecondaryOAM   [8]spriteState
	SecondaryCount int
	SpriteShiftLo  [8]uint8
	SpriteShiftHi  [8]uint8
}

type spriteState struct {
	X, Y, Tile, Attr uint8
	IsSpriteZero     bool
}

// State captures the PPU's current state.
func (p *PPU) State() State {
	s := State{
		Scanline: p.Scanline, Dot: p.Dot, Frame: p.frame,
		Ctrl: p.ctrl, Mask: p.mask, Status: p.status,
		OAMAddr: p.oamAddr, OAM: p.OAM,
		V: p.v, T: p.t, X: p.x, W: p.w,
		ReadBuffer: p.readBuffer, OpenBus: p.openBus,
		Palette: p.Palette,
		NT:      append([]uint8(nil), p.nt.Data...),

		BGPatternShiftLo: p.bgPatternShiftLo, BGPatternShiftHi: p.bgPatternShiftHi,
		BGAttrShiftLo: p.bgAttrShiftLo, BGAttrShiftHi: p.bgAttrShiftHi,
		NTByte: p.ntByte, ATByte: p.atByte, BGLo: p.bgLo, BGHi: p.bgHi,

		SecondaryCount: p.secondaryCount,
		SpriteShiftLo:  p.spriteShiftLo,
		SpriteShiftHi:  p.spriteShiftHi,
	}
	for i, sp := range p.secondaryOAM {
		s.SecondaryOAM[i] = spriteState{X: sp.x, Y: sp.y, Tile: sp.tile, Attr: sp.attr, IsSpriteZero: sp.isSpriteZero}
	}
	return s
}

// SetState restores a previously captured State.
func (p *PPU) SetState(s State) {
	p.Scanline, p.Dot, p.frame = s.Scanline, s.Dot, s.Frame
	p.ctrl, p.mask, p.status = s.Ctrl, s.Mask, s.Status
	p.oamAddr, p.OAM = s.OAMAddr, s.OAM
	p.v, p.t, p.x, p.w = s.V, s.T, s.X, s.W
	p.readBuffer, p.openBus = s.ReadBuffer, s.OpenBus
	p.Palette = s.Palette
	copy(p.nt.Data, s.NT)

	p.bgPatternShiftLo, p.bgPatternShiftHi = s.BGPatternShiftLo, s.BGPatternShiftHi
	p.bgAttrShiftLo, p.bgAttrShiftHi = s.BGAttrShiftLo, s.BGAttrShiftHi
	p.ntByte, p.atByte, p.bgLo, p.bgHi = s.NTByte, s.ATByte, s.BGLo, s.BGHi

	p.secondaryCount = s.SecondaryCount
	p.spriteShiftLo = s.SpriteShiftLo
	p.spriteShiftHi = s.SpriteShiftHi
	for i, sp := range s.SecondaryOAM {
		p.secondaryOAM[i] = sprite{x: sp.X, y: sp.Y, tile: sp.Tile, attr: sp.Attr, isSpriteZero: sp.IsSpriteZero}
	}
}
