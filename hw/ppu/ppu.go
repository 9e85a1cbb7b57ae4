// Package ppu implements the picture processing unit: the scanline/dot
// engine, the internal "loopy" v/t/x/w scroll-latch model, background and
// sprite pixel pipelines, and the $2000-$2007 register side effects
// (spec.md §4.2).
package ppu

import "nescore/hw/hwio"

// NumScanlines and NumDots are the PPU's raster dimensions (spec.md §4.2
// Scanline timing).
const (
	NumScanlines = 262
	NumDots      = 341

	ScreenWidth  = 256
	ScreenHeight = 240
)

// PPUCTRL ($2000) bit positions.
const (
	ctrlNametable     = 0b11 // mask, bits 0-1
	ctrlVRAMIncrement = 1 << 2
	ctrlSpriteTable   = 1 << 3
	ctrlBGTable       = 1 << 4
	ctrlSpriteSize    = 1 << 5
	ctrlMasterSlave   = 1 << 6
	ctrlNMIEnable     = 1 << 7
)

// PPUMASK ($2001) bit positions.
const (
	maskGreyscale      = 1 << 0
	maskShowBGLeft     = 1 << 1
	maskShowSpriteLeft = 1 << 2
	maskShowBG         = 1 << 3
	maskShowSprites    = 1 << 4
	maskEmphasizeRed   = 1 << 5
	maskEmphasizeGreen = 1 << 6
	maskEmphasizeBlue  = 1 << 7
)

// PPUSTATUS ($2002) bit positions.
const (
	statusOverflow = 1 << 5
	statusSprite0  = 1 << 6
	statusVBlank   = 1 << 7
)

// Chip is the cartridge's PPU-side (CHR) port plus the nametable mirroring
// mode the mapper currently selects (spec.md §4.4).
type Chip interface {
	PPURead8(addr uint16) uint8
	PPUWrite8(addr uint16, val uint8)
	Mirror(addr uint16) uint16 // maps a $2000-$2FFF nametable address through the cartridge's mirroring
}

// NMILine receives the PPU's edge-triggered NMI output.
type NMILine interface {
	SetNMILine(level bool)
}

// sprite is one entry of secondary OAM as loaded for the next scanline.
type sprite struct {
	x, y         uint8
	tile         uint8
	attr         uint8
	isSpriteZero bool
}

// PPU holds all picture-processing state (spec.md §3 PPU).
type PPU struct {
	Cart Chip
	NMI  NMILine

	Scanline int // -1 (pre-render) .. 260
	Dot      int // 0..340
	frame    uint64

	// Registers exposed to the CPU at $2000-$2007.
	ctrl   uint8
	mask   uint8
	status uint8

	oamAddr uint8
	OAM     [256]uint8

	// Internal scroll latches ("loopy" registers, spec.md §3/§9).
	v, t uint16 // 15-bit VRAM address / temp address
	x    uint8  // fine X scroll, 3 bits
	w    bool   // write toggle

	readBuffer uint8
	openBus    uint8

	Palette [32]uint8
	nt      *hwio.Mem // 2KiB internal nametable VRAM

	// Background shift registers.
	bgPatternShiftLo, bgPatternShiftHi uint16
	bgAttrShiftLo, bgAttrShiftHi       uint16
	ntByte, atByte, bgLo, bgHi         uint8

	secondaryOAM   [8]sprite
	secondaryCount int
	spriteShiftLo  [8]uint8
	spriteShiftHi  [8]uint8

	Framebuffer [ScreenHeight][ScreenWidth]uint8 // NES palette indices 0x00-0x3F
}

// New creates a PPU wired to cart and nmi. Both must be non-nil before
// Tick/ReadRegister/WriteRegister are used.
func New(cart Chip, nmi NMILine) *PPU {
	return &PPU{Cart: cart, NMI: nmi, Scanline: -1, nt: hwio.NewMem("ppu-nt", 0x800)}
}

// Reset returns the PPU to its post-power-on state.
func (p *PPU) Reset() {
	p.Scanline, p.Dot = -1, 0
	p.frame = 0
	p.ctrl, p.mask, p.status = 0, 0, 0
	p.oamAddr = 0
	p.v, p.t, p.x, p.w = 0, 0, 0, false
	p.readBuffer = 0
}

func (p *PPU) renderingEnabled() bool {
	return p.mask&(maskShowBG|maskShowSprites) != 0
}

// ReadRegister implements the CPU-facing read side effects of $2000-$2007
// (spec.md §4.2's table); addr is taken modulo 8 by the caller (Bus).
func (p *PPU) ReadRegister(reg uint16) uint8 {
	switch reg {
	case 2: // PPUSTATUS
		val := (p.status & (statusVBlank | statusSprite0 | statusOverflow)) | (p.openBus & 0x1F)
		p.status &^= statusVBlank
		p.w = false
		p.NMI.SetNMILine(false) // re-arms the line for the next VBlank
		return val
	case 4: // OAMDATA
		return p.OAM[p.oamAddr]
	case 7: // PPUDATA
		return p.readPPUDATA()
	default:
		return p.openBus // $2000, $2001, $2003, $2005, $2006 are write-only
	}
}

// WriteRegister implements the CPU-facing write side effects.
func (p *PPU) WriteRegister(reg uint16, val uint8) {
	p.openBus = val
	switch reg {
	case 0: // PPUCTRL
		wasNMIEnabled := p.ctrl&ctrlNMIEnable != 0
		p.ctrl = val
		p.t = (p.t &^ (0b11 << 10)) | (uint16(val&ctrlNametable) << 10)
		if !wasNMIEnabled && p.ctrl&ctrlNMIEnable != 0 && p.status&statusVBlank != 0 {
			p.raiseNMI()
		}
		if p.ctrl&ctrlNMIEnable == 0 {
			p.NMI.SetNMILine(false)
		}
	case 1: // PPUMASK
		p.mask = val
	case 3: // OAMADDR
		p.oamAddr = val
	case 4: // OAMDATA
		p.OAM[p.oamAddr] = val
		p.oamAddr++
	case 5: // PPUSCROLL
		if !p.w {
			p.t = (p.t &^ 0b11111) | uint16(val>>3)
			p.x = val & 0b111
		} else {
			p.t = (p.t &^ 0b111_00_11111_00000) | (uint16(val&0b111) << 12) | (uint16(val&0b11111000) << 2)
		}
		p.w = !p.w
	case 6: // PPUADDR
		if !p.w {
			p.t = (p.t &^ 0b0111111_00000000) | (uint16(val&0x3F) << 8)
			p.t &^= 1 << 14
		} else {
			p.t = (p.t &^ 0xFF) | uint16(val)
			p.v = p.t
		}
		p.w = !p.w
	case 7: // PPUDATA
		p.writeVRAM(p.v&0x3FFF, val)
		p.incrementV()
	}
}

func (p *PPU) readPPUDATA() uint8 {
	addr := p.v & 0x3FFF
	var val uint8
	if addr < 0x3F00 {
		val = p.readBuffer
		p.readBuffer = p.readVRAM(addr)
	} else {
		val = p.readVRAM(addr)
		p.readBuffer = p.readVRAM(addr - 0x1000) // underlying nametable mirror
	}
	p.incrementV()
	return val
}

func (p *PPU) incrementV() {
	if p.ctrl&ctrlVRAMIncrement != 0 {
		p.v += 32
	} else {
		p.v++
	}
	p.v &= 0x7FFF
}

// readVRAM/writeVRAM implement the 14-bit PPU address space: CHR from the
// cartridge, nametables through the cartridge's mirroring, palette RAM with
// the $3F10/$14/$18/$1C mirrors (spec.md §3 Addressing, §4.2 Failure
// semantics).
func (p *PPU) readVRAM(addr uint16) uint8 {
	switch {
	case addr < 0x2000:
		return p.Cart.PPURead8(addr)
	case addr < 0x3F00:
		return p.nametableByte(addr)
	default:
		return p.Palette[paletteIndex(addr)] & p.grayscaleMask()
	}
}

func (p *PPU) writeVRAM(addr uint16, val uint8) {
	switch {
	case addr < 0x2000:
		p.Cart.PPUWrite8(addr, val)
	case addr < 0x3F00:
		p.setNametableByte(addr, val)
	default:
		p.Palette[paletteIndex(addr)] = val
	}
}

func paletteIndex(addr uint16) uint16 {
	i := addr & 0x1F
	if i&0x13 == 0x10 { // $3F10/$14/$18/$1C mirror $3F00/$04/$08/$0C
		i &^= 0x10
	}
	return i
}

func (p *PPU) grayscaleMask() uint8 {
	if p.mask&maskGreyscale != 0 {
		return 0x30
	}
	return 0x3F
}

// nametableByte/setNametableByte address the 2KiB internal VRAM; mirroring
// beyond that is resolved by the cartridge (spec.md §4.4: "the mirroring
// mode used by the PPU for $2000-$2FFF").
func (p *PPU) nametableByte(addr uint16) uint8 {
	return p.nt.Read8(p.Cart.Mirror(addr) & 0x7FF)
}

func (p *PPU) setNametableByte(addr uint16, val uint8) {
	p.nt.Write8(p.Cart.Mirror(addr)&0x7FF, val)
}

func (p *PPU) raiseNMI() {
	p.NMI.SetNMILine(true)
}
