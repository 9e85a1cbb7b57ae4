package ppu

import "testing"

type fakeChip struct {
	chr [0x2000]uint8
}

func (c *fakeChip) PPURead8(addr uint16) uint8       { return c.chr[addr&0x1FFF] }
func (c *fakeChip) PPUWrite8(addr uint16, val uint8) { c.chr[addr&0x1FFF] = val }
func (c *fakeChip) Mirror(addr uint16) uint16        { return addr & 0x0FFF } // vertical-ish for tests

type fakeNMI struct {
	level bool
}

func (n *fakeNMI) SetNMILine(level bool) { n.level = level }

func newTestPPU() (*PPU, *fakeChip, *fakeNMI) {
	chip := &fakeChip{}
	nmi := &fakeNMI{}
	return New(chip, nmi), chip, nmi
}

func TestPPUADDRTwoWriteSequence(t *testing.T) {
	p, _, _ := newTestPPU()
	p.WriteRegister(6, 0x23) // high byte
	p.WriteRegister(6, 0x45) // low byte
	if p.v != 0x2345 {
		t.Fatalf("v = %04X, want 2345", p.v)
	}
	if p.w {
		t.Error("w should toggle back to false after second write")
	}
}

func TestPPUSTATUSReadClearsVBlankAndW(t *testing.T) {
	p, _, _ := newTestPPU()
	p.status |= statusVBlank
	p.w = true

	val := p.ReadRegister(2)
	if val&statusVBlank == 0 {
		t.Error("read should report vblank as set before clearing it")
	}
	if p.status&statusVBlank != 0 {
		t.Error("reading $2002 should clear vblank")
	}
	if p.w {
		t.Error("reading $2002 should clear the write toggle")
	}
}

func TestOAMDATAReadWrite(t *testing.T) {
	p, _, _ := newTestPPU()
	p.WriteRegister(3, 0x10) // OAMADDR
	p.WriteRegister(4, 0x99) // OAMDATA
	if p.OAM[0x10] != 0x99 {
		t.Fatalf("OAM[0x10] = %02X, want 99", p.OAM[0x10])
	}
	if p.oamAddr != 0x11 {
		t.Fatalf("OAMADDR = %02X, want 11 (incremented on write)", p.oamAddr)
	}

	p.oamAddr = 0x10
	if got := p.ReadRegister(4); got != 0x99 {
		t.Fatalf("OAMDATA read = %02X, want 99", got)
	}
	if p.oamAddr != 0x10 {
		t.Error("reading OAMDATA must not increment OAMADDR")
	}
}

func TestPPUDATABufferedReadOutsidePalette(t *testing.T) {
	p, chip, _ := newTestPPU()
	chip.chr[0x0010] = 0xAB

	p.WriteRegister(6, 0x00)
	p.WriteRegister(6, 0x10) // v = $0010, inside CHR

	first := p.ReadRegister(7)
	if first != 0 {
		t.Fatalf("first PPUDATA read should return stale buffer (0), got %02X", first)
	}
	second := p.ReadRegister(7)
	if second != 0xAB {
		t.Fatalf("second PPUDATA read should return the buffered value, got %02X", second)
	}
}

func TestPPUDATAPaletteReadIsImmediate(t *testing.T) {
	p, _, _ := newTestPPU()
	p.Palette[0] = 0x0F

	p.WriteRegister(6, 0x3F)
	p.WriteRegister(6, 0x00) // v = $3F00

	if got := p.ReadRegister(7); got != 0x0F {
		t.Fatalf("palette read = %02X, want 0F (immediate, no buffering)", got)
	}
}

func TestPPUCTRLNametableBitsGoToT(t *testing.T) {
	p, _, _ := newTestPPU()
	p.WriteRegister(0, 0b10)
	if p.t&(0b11<<10) != 1<<11 {
		t.Fatalf("t = %04X, want nametable bit 1 set at bit 11", p.t)
	}
}

func TestNMIRaisedImmediatelyWhenEnabledDuringVBlank(t *testing.T) {
	p, _, nmi := newTestPPU()
	p.status |= statusVBlank
	p.WriteRegister(0, ctrlNMIEnable)
	if !nmi.level {
		t.Error("enabling NMI while vblank is set should raise NMI immediately")
	}
}

func TestVBlankSetAtScanline241Dot1(t *testing.T) {
	p, _, nmi := newTestPPU()
	p.WriteRegister(0, ctrlNMIEnable)
	p.Scanline, p.Dot = 241, 0

	p.Tick() // advances Dot from 0 to 1, processing dot 0 (idle)
	if p.status&statusVBlank != 0 {
		t.Fatalf("vblank should not be set before dot 1")
	}

	p.Tick()
	if p.status&statusVBlank == 0 {
		t.Fatalf("vblank should be set at scanline 241 dot 1")
	}
	if !nmi.level {
		t.Error("NMI should fire at vblank start when enabled")
	}
}

func TestOddFrameSkipShortensPreRenderLine(t *testing.T) {
	p, _, _ := newTestPPU()
	p.mask = maskShowBG
	p.Scanline, p.Dot = -1, 339
	p.frame = 1 // odd frame

	p.Tick()
	if p.Dot != 341%NumDots { // after the skip, Dot wraps straight to the next scanline
		t.Fatalf("Dot = %d, want wraparound to 0 after the skipped dot", p.Dot)
	}
	if p.Scanline != 0 {
		t.Fatalf("Scanline = %d, want 0", p.Scanline)
	}
}
