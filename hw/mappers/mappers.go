// Package mappers implements the cartridge bank-switching logic for the five
// supported boards (spec.md §4.4): NROM, MMC1, UxROM, CNROM and Mapper87.
//
// Mappers are represented as a single tagged-variant struct rather than a
// virtual-dispatch hierarchy (spec.md §9 Mapper polymorphism): dispatch is a
// handful of cases on every cartridge access, which is hot enough that a
// flat switch beats an interface call.
package mappers

import (
	"fmt"

	"nescore/emu/log"
	"nescore/ines"
)

// Kind identifies which board a Mapper's inline state belongs to.
type Kind int

const (
	NROM Kind = iota
	MMC1
	UxROM
	CNROM
	Mapper87
)

func (k Kind) String() string {
	switch k {
	case NROM:
		return "NROM"
	case MMC1:
		return "MMC1"
	case UxROM:
		return "UxROM"
	case CNROM:
		return "CNROM"
	case Mapper87:
		return "Mapper87"
	default:
		return "unknown"
	}
}

// FromINES maps an iNES header mapper number to a Kind.
func FromINES(number uint8) (Kind, bool) {
	switch number {
	case 0:
		return NROM, true
	case 1:
		return MMC1, true
	case 2:
		return UxROM, true
	case 3:
		return CNROM, true
	case 87:
		return Mapper87, true
	default:
		return 0, false
	}
}

// Mapper holds the state for all five boards; only the fields relevant to
// its Kind are meaningful.
type Mapper struct {
	Kind Kind

	PRG      []byte
	CHR      []byte // ROM or RAM depending on ChrIsRAM
	ChrIsRAM bool

	PRGRAM      [0x2000]byte
	PRGRAMDirty bool

	headerMirroring ines.Mirroring

	// MMC1 shift register and banking state.
	mmc1Shift      uint8
	mmc1ShiftCount uint8
	mmc1Control    uint8 // bit4=chrmode, bits3:2=prgmode, bits1:0=mirroring select
	mmc1CHR0       uint8
	mmc1CHR1       uint8
	mmc1PRG        uint8
	mmc1LastCycle  uint64
	mmc1HasCycle   bool

	// UxROM
	uxPRGBank uint8

	// CNROM / Mapper87
	chrBank uint8
}

// New builds a Mapper for rom, whose Kind is derived from the iNES header.
func New(rom *ines.ROM) (*Mapper, error) {
	kind, ok := FromINES(rom.Mapper)
	if !ok {
		log.ModMapper.ErrorZ("unsupported mapper number").Int("number", int(rom.Mapper)).End()
		return nil, fmt.Errorf("mappers: unsupported mapper number %d", rom.Mapper)
	}
	log.ModMapper.InfoZ("mapper selected").String("kind", kind.String()).End()

	m := &Mapper{
		Kind:            kind,
		PRG:             rom.PRG,
		headerMirroring: rom.Mirroring,
	}

	if rom.HasCHRRAM() {
		size := 0x2000
		if kind == UxROM {
			size = 0x2000 // spec.md §4.4: UxROM CHR is always 8KiB RAM
		}
		m.CHR = make([]byte, size)
		m.ChrIsRAM = true
	} else {
		m.CHR = rom.CHR
	}

	switch kind {
	case MMC1:
		// Power-on state: PRG-mode 3 (fix last bank at $C000), matching
		// spec.md §8's reset scenario.
		m.mmc1Control = 0x0C
	case UxROM:
		m.uxPRGBank = 0
	}
	return m, nil
}

func (m *Mapper) prgBankCount16K() int {
	if len(m.PRG) == 0 {
		return 0
	}
	return len(m.PRG) / 0x4000
}

// CPURead implements the $4020-$FFFF PRG window, including $6000-$7FFF
// PRG-RAM.
func (m *Mapper) CPURead(addr uint16) uint8 {
	if addr >= 0x6000 && addr < 0x8000 {
		return m.PRGRAM[addr-0x6000]
	}
	if addr < 0x8000 {
		return 0
	}

	switch m.Kind {
	case NROM:
		return m.PRG[int(addr-0x8000)%len(m.PRG)]
	case MMC1:
		return m.PRG[m.mmc1PRGOffset(addr)]
	case UxROM:
		return m.PRG[m.uxPRGOffset(addr)]
	case CNROM, Mapper87:
		return m.PRG[int(addr-0x8000)%len(m.PRG)]
	default:
		return 0
	}
}

// CPUWrite implements $4020-$FFFF PRG-RAM writes and each board's bank
// register writes. cycle is the CPU's current cycle counter, needed by MMC1
// to drop shift-register writes issued on consecutive CPU cycles.
func (m *Mapper) CPUWrite(addr uint16, val uint8, cycle uint64) {
	if addr >= 0x6000 && addr < 0x8000 {
		switch m.Kind {
		case Mapper87:
			m.chrBank = ((val >> 1) & 1) | ((val & 1) << 1)
		default:
			m.PRGRAM[addr-0x6000] = val
			m.PRGRAMDirty = true
		}
		return
	}
	if addr < 0x8000 {
		return
	}

	switch m.Kind {
	case MMC1:
		m.mmc1Write(addr, val, cycle)
	case UxROM:
		m.uxPRGBank = val
	case CNROM:
		m.chrBank = val
	}
}

// mmc1PRGOffset resolves a CPU address in $8000-$FFFF to a PRG-ROM byte
// offset per the current PRG-bank mode (spec.md §4.4).
func (m *Mapper) mmc1PRGOffset(addr uint16) int {
	banks := m.prgBankCount16K()
	if banks == 0 {
		return 0
	}
	prgMode := (m.mmc1Control >> 2) & 0x3
	bank := int(m.mmc1PRG) & 0xF

	var bankLo, bankHi int
	switch prgMode {
	case 0, 1: // 32KiB mode: ignore low bit of bank number
		b := (bank &^ 1) % banks
		if addr < 0xC000 {
			return b*0x4000 + int(addr-0x8000)
		}
		return (b+1)%banks*0x4000 + int(addr-0xC000)
	case 2: // fix first bank at $8000, switch $C000
		bankLo, bankHi = 0, bank%banks
	default: // 3: switch $8000, fix last bank at $C000
		bankLo, bankHi = bank%banks, banks-1
	}
	if addr < 0xC000 {
		return bankLo*0x4000 + int(addr-0x8000)
	}
	return bankHi*0x4000 + int(addr-0xC000)
}

func (m *Mapper) uxPRGOffset(addr uint16) int {
	banks := m.prgBankCount16K()
	if banks == 0 {
		return 0
	}
	if addr < 0xC000 {
		return int(m.uxPRGBank)%banks*0x4000 + int(addr-0x8000)
	}
	return (banks-1)*0x4000 + int(addr-0xC000)
}

// mmc1Write clocks the 5-bit serial shift register (spec.md §4.4).
func (m *Mapper) mmc1Write(addr uint16, val uint8, cycle uint64) {
	if val&0x80 != 0 {
		m.mmc1Shift = 0
		m.mmc1ShiftCount = 0
		m.mmc1Control |= 0x0C
		m.mmc1LastCycle = cycle
		m.mmc1HasCycle = true
		return
	}

	// Drop the write if the previous shift-register write happened on the
	// immediately preceding CPU cycle (spec.md §4.4).
	if m.mmc1HasCycle && cycle == m.mmc1LastCycle+1 {
		m.mmc1LastCycle = cycle
		return
	}
	m.mmc1LastCycle = cycle
	m.mmc1HasCycle = true

	m.mmc1Shift = (m.mmc1Shift >> 1) | ((val & 1) << 4)
	m.mmc1ShiftCount++
	if m.mmc1ShiftCount < 5 {
		return
	}

	reg := m.mmc1Shift
	m.mmc1Shift = 0
	m.mmc1ShiftCount = 0

	switch (addr >> 13) & 0x3 {
	case 0:
		m.mmc1Control = reg & 0x1F
	case 1:
		m.mmc1CHR0 = reg & 0x1F
	case 2:
		m.mmc1CHR1 = reg & 0x1F
	case 3:
		m.mmc1PRG = reg & 0x1F
	}
}

// PPURead implements the $0000-$1FFF CHR window.
func (m *Mapper) PPURead(addr uint16) uint8 {
	return m.CHR[m.chrOffset(addr)]
}

// PPUWrite implements CHR-RAM writes; CHR-ROM writes are ignored.
func (m *Mapper) PPUWrite(addr uint16, val uint8) {
	if !m.ChrIsRAM {
		return
	}
	m.CHR[m.chrOffset(addr)] = val
}

func (m *Mapper) chrOffset(addr uint16) int {
	addr &= 0x1FFF
	if len(m.CHR) == 0 {
		return 0
	}

	switch m.Kind {
	case MMC1:
		chrMode := (m.mmc1Control >> 4) & 1
		if chrMode == 0 { // 8KiB mode, low bit of bank ignored
			bank := int(m.mmc1CHR0 &^ 1)
			return (bank*0x1000 + int(addr)) % len(m.CHR)
		}
		if addr < 0x1000 {
			return (int(m.mmc1CHR0)*0x1000 + int(addr)) % len(m.CHR)
		}
		return (int(m.mmc1CHR1)*0x1000 + int(addr-0x1000)) % len(m.CHR)
	case CNROM, Mapper87:
		return (int(m.chrBank)*0x2000 + int(addr)) % len(m.CHR)
	default:
		return int(addr) % len(m.CHR)
	}
}

// Mirror resolves a $2000-$3EFF PPU address to a flat 0-0x7FF offset into
// the PPU's 2KiB internal nametable RAM, per the mapper's current mirroring
// mode (spec.md §3, §4.4).
func (m *Mapper) Mirror(addr uint16) uint16 {
	addr &= 0x2FFF
	table := (addr >> 10) & 0x3
	offset := addr & 0x3FF

	var physical uint16
	switch m.mirroring() {
	case ines.MirrorHorizontal:
		if table < 2 {
			physical = 0
		} else {
			physical = 1
		}
	case ines.MirrorVertical:
		physical = table & 1
	case ines.MirrorSingleA:
		physical = 0
	case ines.MirrorSingleB:
		physical = 1
	default: // four-screen: approximate with the two physical banks we have
		physical = table & 1
	}
	return physical*0x400 + offset
}

func (m *Mapper) mirroring() ines.Mirroring {
	if m.Kind != MMC1 {
		return m.headerMirroring
	}
	switch m.mmc1Control & 0x3 {
	case 0:
		return ines.MirrorSingleA
	case 1:
		return ines.MirrorSingleB
	case 2:
		return ines.MirrorVertical
	default:
		return ines.MirrorHorizontal
	}
}
