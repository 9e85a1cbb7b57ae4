package mappers

// State is a Mapper's serializable state (spec.md §6 Save state). PRG-ROM
// and CHR-ROM contents are not included: they come from the cartridge image
// and never change, except CHR when ChrIsRAM, which is captured here.
type State struct {
	Kind Kind

	CHR         []byte
	PRGRAM      [0x2000]byte
	PRGRAMDirty bool

	MMC1Shift      uint8
	MMC1ShiftCount uint8
	MMC1Control    uint8
	MMC1CHR0       uint8
	MMC1CHR1       uint8
	MMC1PRG        uint8
	MMC1LastCycle  uint64
	MMC1HasCycle   bool

	UxPRGBank uint8

	CHRBank uint8
}

// State captures the mapper's current bank-switching and PRG-RAM state.
func (m *Mapper) State() State {
	s := State{
		Kind:           m.Kind,
		PRGRAM:         m.PRGRAM,
		PRGRAMDirty:    m.PRGRAMDirty,
		MMC1Shift:      m.mmc1Shift,
		MMC1ShiftCount: m.mmc1ShiftCount,
		MMC1Control:    m.mmc1Control,
		MMC1CHR0:       m.mmc1CHR0,
		MMC1CHR1:       m.mmc1CHR1,
		MMC1PRG:        m.mmc1PRG,
		MMC1LastCycle:  m.mmc1LastCycle,
		MMC1HasCycle:   m.mmc1HasCycle,
		UxPRGBank:      m.uxPRGBank,
		CHRBank:        m.chrBank,
	}
	if m.ChrIsRAM {
		s.CHR = append([]byte(nil), m.CHR...)
	}
	return s
}

// SetState restores a previously captured State.
func (m *Mapper) SetState(s State) {
	m.PRGRAM = s.PRGRAM
	m.PRGRAMDirty = s.PRGRAMDirty
	m.mmc1Shift = s.MMC1Shift
	m.mmc1ShiftCount = s.MMC1ShiftCount
	m.mmc1Control = s.MMC1Control
	m.mmc1CHR0 = s.MMC1CHR0
	m.mmc1CHR1 = s.MMC1CHR1
	m.mmc1PRG = s.MMC1PRG
	m.mmc1LastCycle = s.MMC1LastCycle
	m.mmc1HasCycle = s.MMC1HasCycle
	m.uxPRGBank = s.UxPRGBank
	m.chrBank = s.CHRBank
	if m.ChrIsRAM && len(s.CHR) == len(m.CHR) {
		copy(m.CHR, s.CHR)
	}
}
