package hw

import (
	"nescore/hw/mappers"
	"nescore/ines"
)

// Cartridge owns the loaded ROM's PRG/CHR data and its mapper, and exposes
// the CPU-side and PPU-side ports the Bus and PPU talk to (spec.md §2, §4.4).
type Cartridge struct {
	Mapper *mappers.Mapper
}

// NewCartridge builds a Cartridge from a parsed iNES ROM.
func NewCartridge(rom *ines.ROM) (*Cartridge, error) {
	m, err := mappers.New(rom)
	if err != nil {
		return nil, err
	}
	return &Cartridge{Mapper: m}, nil
}

// CPURead8 services CPU reads in $4020-$FFFF (and $6000-$7FFF PRG-RAM).
func (c *Cartridge) CPURead8(addr uint16) uint8 {
	return c.Mapper.CPURead(addr)
}

// CPUWrite8 services CPU writes in $4020-$FFFF. cycle is the CPU's current
// cycle count, required by MMC1's same-cycle write-suppression rule.
func (c *Cartridge) CPUWrite8(addr uint16, val uint8, cycle uint64) {
	c.Mapper.CPUWrite(addr, val, cycle)
}

// PPURead8/PPUWrite8 service the PPU's $0000-$1FFF CHR window.
func (c *Cartridge) PPURead8(addr uint16) uint8       { return c.Mapper.PPURead(addr) }
func (c *Cartridge) PPUWrite8(addr uint16, val uint8) { c.Mapper.PPUWrite(addr, val) }

// Mirror resolves a nametable address through the mapper's current
// mirroring mode, for the PPU's $2000-$2FFF window.
func (c *Cartridge) Mirror(addr uint16) uint16 { return c.Mapper.Mirror(addr) }

// SRAMDirty reports whether PRG-RAM has been written since the last save.
func (c *Cartridge) SRAMDirty() bool { return c.Mapper.PRGRAMDirty }

// SRAM returns the current 8KiB PRG-RAM contents for battery-save
// persistence (spec.md §6 Battery save).
func (c *Cartridge) SRAM() []byte {
	b := make([]byte, len(c.Mapper.PRGRAM))
	copy(b, c.Mapper.PRGRAM[:])
	return b
}

// LoadSRAM restores PRG-RAM from a battery-save dump and clears the dirty
// flag.
func (c *Cartridge) LoadSRAM(data []byte) {
	copy(c.Mapper.PRGRAM[:], data)
	c.Mapper.PRGRAMDirty = false
}

// ClearSRAMDirty marks PRG-RAM as persisted.
func (c *Cartridge) ClearSRAMDirty() { c.Mapper.PRGRAMDirty = false }
