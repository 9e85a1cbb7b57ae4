package hw

import "testing"

type fakePPU struct {
	oamAddr int
	oam     [256]uint8
	regs    [8]uint8
}

func (p *fakePPU) ReadRegister(reg uint16) uint8 {
	if reg == 4 {
		return p.oam[p.oamAddr]
	}
	return p.regs[reg]
}

func (p *fakePPU) WriteRegister(reg uint16, val uint8) {
	if reg == 4 {
		p.oam[p.oamAddr] = val
		p.oamAddr++
		return
	}
	p.regs[reg] = val
}

type fakeAPU struct {
	status  uint8
	written map[uint16]uint8
}

func (a *fakeAPU) ReadStatus() uint8 { return a.status }
func (a *fakeAPU) WriteRegister(addr uint16, val uint8) {
	if a.written == nil {
		a.written = map[uint16]uint8{}
	}
	a.written[addr] = val
}

type fakeCart struct {
	data [0xC000]uint8 // covers $4020-$FFFF
}

func (c *fakeCart) CPURead8(addr uint16) uint8       { return c.data[addr-0x4020] }
func (c *fakeCart) CPUWrite8(addr uint16, val uint8, _ uint64) { c.data[addr-0x4020] = val }

type fakeStaller struct {
	stalled int
	cycle   uint64
}

func (s *fakeStaller) Stall(n int)          { s.stalled += n }
func (s *fakeStaller) CurrentCycle() uint64 { return s.cycle }

func newTestBus() (*Bus, *fakePPU, *fakeAPU, *fakeCart, *fakeStaller) {
	b := NewBus()
	ppu, apu, cart, staller := &fakePPU{}, &fakeAPU{}, &fakeCart{}, &fakeStaller{}
	b.PPU, b.APU, b.Cart, b.CPU = ppu, apu, cart, staller
	b.Pad1, b.Pad2 = &Controller{}, &Controller{}
	return b, ppu, apu, cart, staller
}

func TestRAMMirrorsEvery2KiB(t *testing.T) {
	b, _, _, _, _ := newTestBus()
	b.Write8(0x0000, 0x42)
	if got := b.Read8(0x0800); got != 0x42 {
		t.Fatalf("mirrored RAM read = %02X, want 42", got)
	}
}

func TestPPURegistersMirrorEvery8Bytes(t *testing.T) {
	b, ppu, _, _, _ := newTestBus()
	b.Write8(0x2000, 0x11)
	b.Write8(0x2008, 0x22) // mirrors $2000
	if ppu.regs[0] != 0x22 {
		t.Fatalf("PPU reg 0 = %02X, want 22 (second write should land on the same register)", ppu.regs[0])
	}
}

func TestOAMDMACopies256BytesAndStalls(t *testing.T) {
	b, ppu, _, _, staller := newTestBus()
	for i := 0; i < 256; i++ {
		b.RAM.Write8(uint16(0x0200+i)&0x7FF, uint8(i))
	}
	staller.cycle = 10 // even
	b.Write8(0x4014, 0x02)

	if ppu.oam[0x10] != 0x10 {
		t.Fatalf("OAM[0x10] = %02X, want 10", ppu.oam[0x10])
	}
	if staller.stalled != 513 {
		t.Fatalf("stalled = %d, want 513 on an even starting cycle", staller.stalled)
	}
}

func TestOAMDMAOnOddCycleStalls514(t *testing.T) {
	b, _, _, _, staller := newTestBus()
	staller.cycle = 11 // odd
	b.Write8(0x4014, 0x00)
	if staller.stalled != 514 {
		t.Fatalf("stalled = %d, want 514 on an odd starting cycle", staller.stalled)
	}
}

func TestControllerStrobeAndRead(t *testing.T) {
	b, _, _, _, _ := newTestBus()
	b.Pad1.Buttons.A = true
	b.Write8(0x4016, 1)
	b.Write8(0x4016, 0)
	if got := b.Read8(0x4016) & 1; got != 1 {
		t.Fatalf("$4016 read = %d, want 1", got)
	}
}

func TestCartridgeWriteReceivesCPUCycle(t *testing.T) {
	b, _, _, _, staller := newTestBus()
	staller.cycle = 99
	b.Write8(0x8000, 0x55)
	if b.Cart.CPURead8(0x8000) != 0x55 {
		t.Fatal("cartridge write should be visible on read-back")
	}
}
