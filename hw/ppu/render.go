package ppu

// Tick advances the PPU by one dot (spec.md §4.2 Scanline timing). The
// caller (the frame scheduler) invokes this three times per CPU cycle.
func (p *PPU) Tick() {
	p.processScanline()
	p.advanceDot()
}

func (p *PPU) advanceDot() {
	// Odd-frame skip: pre-render line is one dot shorter when rendering is
	// enabled and the frame count is odd (spec.md §4.2).
	if p.Scanline == -1 && p.Dot == 339 && p.frame%2 == 1 && p.renderingEnabled() {
		p.Dot = 340
	}
	p.Dot++
	if p.Dot >= NumDots {
		p.Dot = 0
		p.Scanline++
		if p.Scanline >= 261 {
			p.Scanline = -1
			p.frame++
		}
	}
}

func (p *PPU) processScanline() {
	switch {
	case p.Scanline == -1:
		p.preRenderDot()
	case p.Scanline >= 0 && p.Scanline <= 239:
		p.visibleDot()
	case p.Scanline == 241 && p.Dot == 1:
		p.status |= statusVBlank
		if p.ctrl&ctrlNMIEnable != 0 {
			p.raiseNMI()
		}
	}
}

func (p *PPU) preRenderDot() {
	if p.Dot == 1 {
		p.status &^= statusVBlank | statusSprite0 | statusOverflow
		p.NMI.SetNMILine(false) // re-arms the line ahead of the next VBlank
	}
	if p.renderingEnabled() {
		p.shiftBackgroundRegisters()
		p.backgroundFetchCycle()
		if p.Dot == 257 {
			p.copyHorizontalBits()
		}
		if p.Dot >= 280 && p.Dot <= 304 {
			p.copyVerticalBits()
		}
	}
}

func (p *PPU) visibleDot() {
	if p.Dot >= 1 && p.Dot <= 256 {
		if p.renderingEnabled() {
			p.shiftBackgroundRegisters()
			p.renderPixel()
		}
		p.backgroundFetchCycle()
		if p.Dot == 256 {
			p.incrementY()
		}
	}
	if p.Dot == 257 {
		if p.renderingEnabled() {
			p.copyHorizontalBits()
		}
		p.evaluateSprites()
	}
	if p.Dot >= 1 && p.Dot <= 256 && p.Dot%8 == 0 && p.renderingEnabled() {
		p.incrementCoarseX()
	}
}

// backgroundFetchCycle performs the nametable/attribute/pattern fetches that
// feed the background shift registers, on an 8-dot cadence matching real
// hardware's fetch pipeline (spec.md §4.2 dots 1..256/321..336).
func (p *PPU) backgroundFetchCycle() {
	if !(p.Dot >= 1 && p.Dot <= 256 || p.Dot >= 321 && p.Dot <= 336) {
		return
	}
	p.reloadShiftersIfBoundary()

	switch p.Dot % 8 {
	case 1:
		ntAddr := 0x2000 | (p.v & 0x0FFF)
		p.ntByte = p.nametableByte(ntAddr)
	case 3:
		atAddr := 0x23C0 | (p.v & 0x0C00) | ((p.v >> 4) & 0x38) | ((p.v >> 2) & 0x07)
		shift := ((p.v >> 4) & 4) | (p.v & 2)
		p.atByte = (p.nametableByte(atAddr) >> shift) & 0b11
	case 5:
		p.bgLo = p.Cart.PPURead8(p.bgPatternAddr(0))
	case 7:
		p.bgHi = p.Cart.PPURead8(p.bgPatternAddr(8))
	}
}

func (p *PPU) bgPatternAddr(plane uint16) uint16 {
	base := uint16(0)
	if p.ctrl&ctrlBGTable != 0 {
		base = 0x1000
	}
	fineY := (p.v >> 12) & 0b111
	return base + uint16(p.ntByte)*16 + fineY + plane
}

// reloadShiftersIfBoundary loads the fetched tile into the low byte of the
// shift registers every 8 dots. Coarse X is incremented separately, in
// visibleDot.
func (p *PPU) reloadShiftersIfBoundary() {
	if p.Dot%8 != 1 || p.Dot == 1 {
		return
	}
	p.bgPatternShiftLo = (p.bgPatternShiftLo &^ 0xFF) | uint16(p.bgLo)
	p.bgPatternShiftHi = (p.bgPatternShiftHi &^ 0xFF) | uint16(p.bgHi)
	attrLo, attrHi := uint16(0), uint16(0)
	if p.atByte&0b01 != 0 {
		attrLo = 0xFF
	}
	if p.atByte&0b10 != 0 {
		attrHi = 0xFF
	}
	p.bgAttrShiftLo = (p.bgAttrShiftLo &^ 0xFF) | attrLo
	p.bgAttrShiftHi = (p.bgAttrShiftHi &^ 0xFF) | attrHi
}

func (p *PPU) shiftBackgroundRegisters() {
	p.bgPatternShiftLo <<= 1
	p.bgPatternShiftHi <<= 1
	p.bgAttrShiftLo <<= 1
	p.bgAttrShiftHi <<= 1
}

func (p *PPU) incrementCoarseX() {
	if p.v&0x001F == 31 {
		p.v &^= 0x001F
		p.v ^= 0x0400 // switch horizontal nametable
	} else {
		p.v++
	}
}

// incrementY advances fine Y, then coarse Y with the nametable-bit flip at
// coarse Y = 29 (spec.md §4.2 Scroll register updates).
func (p *PPU) incrementY() {
	if p.v&0x7000 != 0x7000 {
		p.v += 0x1000
		return
	}
	p.v &^= 0x7000
	coarseY := (p.v & 0x03E0) >> 5
	switch coarseY {
	case 29:
		coarseY = 0
		p.v ^= 0x0800
	case 31:
		coarseY = 0
	default:
		coarseY++
	}
	p.v = (p.v &^ 0x03E0) | (coarseY << 5)
}

func (p *PPU) copyHorizontalBits() {
	p.v = (p.v &^ 0x041F) | (p.t & 0x041F)
}

func (p *PPU) copyVerticalBits() {
	p.v = (p.v &^ 0x7BE0) | (p.t & 0x7BE0)
}

// renderPixel composes the final pixel at (Dot-1, Scanline) from the
// background and sprite pipelines per spec.md §4.2 Pixel composition.
func (p *PPU) renderPixel() {
	x := p.Dot - 1

	bgPixel, bgPalette := p.backgroundPixel(x)
	spritePixel, spritePalette, spritePriority, spriteIsZero := p.spritePixel(x)

	var paletteAddr uint16
	switch {
	case bgPixel == 0 && spritePixel == 0:
		paletteAddr = 0x3F00
	case bgPixel == 0:
		paletteAddr = 0x3F10 + uint16(spritePalette)*4 + uint16(spritePixel)
	case spritePixel == 0:
		paletteAddr = 0x3F00 + uint16(bgPalette)*4 + uint16(bgPixel)
	case spritePriority: // sprite behind background
		paletteAddr = 0x3F00 + uint16(bgPalette)*4 + uint16(bgPixel)
	default:
		paletteAddr = 0x3F10 + uint16(spritePalette)*4 + uint16(spritePixel)
	}

	if bgPixel != 0 && spritePixel != 0 && spriteIsZero && x >= 1 && x <= 254 {
		p.status |= statusSprite0
	}

	p.Framebuffer[p.Scanline][x] = p.readVRAM(paletteAddr)
}

func (p *PPU) backgroundPixel(x int) (pixel, palette uint8) {
	if p.mask&maskShowBG == 0 || (x < 8 && p.mask&maskShowBGLeft == 0) {
		return 0, 0
	}
	shift := uint(15 - p.x)
	lo := uint8((p.bgPatternShiftLo >> shift) & 1)
	hi := uint8((p.bgPatternShiftHi >> shift) & 1)
	pal0 := uint8((p.bgAttrShiftLo >> shift) & 1)
	pal1 := uint8((p.bgAttrShiftHi >> shift) & 1)
	return hi<<1 | lo, pal1<<1 | pal0
}

func (p *PPU) spritePixel(x int) (pixel, palette uint8, behindBG bool, isZero bool) {
	if p.mask&maskShowSprites == 0 || (x < 8 && p.mask&maskShowSpriteLeft == 0) {
		return 0, 0, false, false
	}
	for i := 0; i < p.secondaryCount; i++ {
		s := p.secondaryOAM[i]
		offset := x - int(s.x)
		if offset < 0 || offset > 7 {
			continue
		}
		lo := (p.spriteShiftLo[i] >> uint(7-offset)) & 1
		hi := (p.spriteShiftHi[i] >> uint(7-offset)) & 1
		px := hi<<1 | lo
		if px == 0 {
			continue
		}
		return px, s.attr & 0b11, s.attr&0x20 != 0, s.isSpriteZero
	}
	return 0, 0, false, false
}

// evaluateSprites fills secondary OAM for the next scanline, reproducing the
// hardware's off-by-one sprite-overflow quirk (spec.md §4.2 dots 257..320).
func (p *PPU) evaluateSprites() {
	height := 8
	if p.ctrl&ctrlSpriteSize != 0 {
		height = 16
	}

	p.secondaryCount = 0
	n := 0
	for i := 0; i < 64 && p.secondaryCount < 8; i++ {
		y := p.OAM[i*4]
		row := p.Scanline - int(y)
		if row < 0 || row >= height {
			n++
			continue
		}
		idx := p.secondaryCount
		s := sprite{
			y:            y,
			tile:         p.OAM[i*4+1],
			attr:         p.OAM[i*4+2],
			x:            p.OAM[i*4+3],
			isSpriteZero: i == 0,
		}
		p.loadSpritePattern(&s, row, height)
		p.secondaryOAM[idx] = s
		p.secondaryCount++
		n++
	}

	// Hardware continues scanning for a 9th in-range sprite using a buggy
	// incrementing scheme: on every miss the byte index m advances along with
	// the sprite index n, so tile/attribute/X bytes get compared as Y. This
	// reproduces that walk, including its false positives and negatives.
	overflow := false
	m := 0
	for ; n < 64; n++ {
		y := p.OAM[n*4+m]
		row := p.Scanline - int(y)
		if row >= 0 && row < height {
			overflow = true
			break
		}
		m = (m + 1) & 3
	}
	if overflow {
		p.status |= statusOverflow
	}
}

func (p *PPU) loadSpritePattern(s *sprite, row, height int) {
	if s.attr&0x80 != 0 { // vertical flip
		row = height - 1 - row
	}
	var addr uint16
	if height == 16 {
		table := uint16(0)
		if s.tile&1 != 0 {
			table = 0x1000
		}
		tile := uint16(s.tile &^ 1)
		if row >= 8 {
			tile++
			row -= 8
		}
		addr = table + tile*16 + uint16(row)
	} else {
		table := uint16(0)
		if p.ctrl&ctrlSpriteTable != 0 {
			table = 0x1000
		}
		addr = table + uint16(s.tile)*16 + uint16(row)
	}

	lo := p.Cart.PPURead8(addr)
	hi := p.Cart.PPURead8(addr + 8)
	if s.attr&0x40 != 0 { // horizontal flip
		lo, hi = reverseBits(lo), reverseBits(hi)
	}
	idx := p.secondaryCount
	p.spriteShiftLo[idx] = lo
	p.spriteShiftHi[idx] = hi
}

func reverseBits(b uint8) uint8 {
	b = (b&0xF0)>>4 | (b&0x0F)<<4
	b = (b&0xCC)>>2 | (b&0x33)<<2
	b = (b&0xAA)>>1 | (b&0x55)<<1
	return b
}

// Frame returns the number of fully rendered frames since Reset.
func (p *PPU) Frame() uint64 { return p.frame }

// EndOfFrame reports whether the dot just ticked was the last of a frame:
// the PPU has wrapped from scanline 260 back to dot 0 of the pre-render
// scanline and advanced the frame counter. The scheduler uses this to know
// when to present the framebuffer (spec.md §4.7 "until PPU signals
// end-of-frame").
func (p *PPU) EndOfFrame() bool {
	return p.Scanline == -1 && p.Dot == 0
}
