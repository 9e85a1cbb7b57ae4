// Package hw wires together the CPU-side memory map, the cartridge, and the
// gamepad ports (spec.md §4.3 Bus and DMA). The PPU and APU packages live
// under hw/ppu and hw/apu; Bus is the single mutating authority over
// CPU-RAM, PPU ports, APU ports and controller latches (spec.md §5).
package hw

import (
	"nescore/emu/log"
	"nescore/hw/hwio"
)

// PPUChip is the Bus's view of the PPU's eight memory-mapped registers.
type PPUChip interface {
	ReadRegister(reg uint16) uint8
	WriteRegister(reg uint16, val uint8)
}

// APUChip is the Bus's view of the APU's register file.
type APUChip interface {
	ReadStatus() uint8
	WriteRegister(addr uint16, val uint8)
}

// CartChip is the Bus's view of the cartridge's CPU-side port.
type CartChip interface {
	CPURead8(addr uint16) uint8
	CPUWrite8(addr uint16, val uint8, cycle uint64)
}

// CPUStaller is the Bus's view of the CPU, used only for OAM-DMA stalling
// and to give mappers a cycle count (spec.md §4.3, §4.4). The Bus never
// reads or writes CPU registers directly.
type CPUStaller interface {
	Stall(n int)
	CurrentCycle() uint64
}

// Bus is the CPU-side memory-mapped interconnect (spec.md §2, §4.3).
type Bus struct {
	RAM  *hwio.Mem
	PPU  PPUChip
	APU  APUChip
	Cart CartChip
	CPU  CPUStaller

	Pad1, Pad2 *Controller

	openBus uint8
}

// NewBus creates a Bus with its internal 2KiB CPU RAM allocated. The other
// fields are wired in by the caller (nes.New) once all components exist,
// breaking the CPU<->Bus<->PPU<->Cartridge construction cycle (spec.md §9).
func NewBus() *Bus {
	return &Bus{RAM: hwio.NewMem("cpu-ram", 0x800)}
}

// Read8 dispatches a CPU read by address region (spec.md §3 invariants).
func (b *Bus) Read8(addr uint16) uint8 {
	var val uint8
	switch {
	case addr < 0x2000:
		val = b.RAM.Read8(addr)
	case addr < 0x4000:
		val = b.PPU.ReadRegister(addr & 7)
	case addr == 0x4015:
		val = b.APU.ReadStatus()
	case addr == 0x4016:
		val = b.openBus&0xE0 | b.Pad1.Read()
	case addr == 0x4017:
		val = b.openBus&0xE0 | b.Pad2.Read()
	case addr < 0x4020:
		val = b.openBus // other APU/IO registers are write-only or unused
	default:
		val = b.Cart.CPURead8(addr)
	}
	b.openBus = val
	return val
}

// Write8 dispatches a CPU write by address region.
func (b *Bus) Write8(addr uint16, val uint8) {
	b.openBus = val
	switch {
	case addr < 0x2000:
		b.RAM.Write8(addr, val)
	case addr < 0x4000:
		b.PPU.WriteRegister(addr&7, val)
	case addr == 0x4014:
		b.oamDMA(val)
	case addr == 0x4016:
		b.Pad1.Write(val)
		b.Pad2.Write(val) // both ports share the $4016 strobe line
	case addr < 0x4018:
		b.APU.WriteRegister(addr, val)
	case addr < 0x4020:
		// APU/IO test registers: not modelled.
	default:
		b.Cart.CPUWrite8(addr, val, b.CPU.CurrentCycle())
	}
}

// oamDMA implements the $4014 write: copy 256 bytes from page (val<<8) into
// PPU OAM starting at the current OAMADDR, stalling the CPU 513 cycles (514
// if the transfer began on an odd CPU cycle, spec.md §4.3).
func (b *Bus) oamDMA(page uint8) {
	base := uint16(page) << 8
	for i := 0; i < 256; i++ {
		b.PPU.WriteRegister(4, b.Read8(base+uint16(i)))
	}
	stall := 513
	if b.CPU.CurrentCycle()%2 == 1 {
		stall = 514
	}
	b.CPU.Stall(stall)
	log.ModIO.DebugZ("oam dma").Uint8("page", page).Int("stall", stall).End()
}
