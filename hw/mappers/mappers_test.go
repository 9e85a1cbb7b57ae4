package mappers

import (
	"testing"

	"nescore/ines"
)

func romWithPRG(mapper uint8, prgBanks16k int) *ines.ROM {
	prg := make([]byte, prgBanks16k*0x4000)
	for i := range prg {
		prg[i] = byte(i / 0x4000) // tag each bank with its index
	}
	return &ines.ROM{Mapper: mapper, PRG: prg, CHR: make([]byte, 0x2000)}
}

func TestNROMMirrorsA16KBankAcrossTheFullWindow(t *testing.T) {
	rom := romWithPRG(0, 1)
	m, err := New(rom)
	if err != nil {
		t.Fatal(err)
	}
	if got := m.CPURead(0x8000); got != m.CPURead(0xC000) {
		t.Fatalf("16KiB NROM should mirror: %02X != %02X", got, m.CPURead(0xC000))
	}
}

func TestUxROMFixesLastBankAtC000(t *testing.T) {
	rom := romWithPRG(2, 4)
	m, err := New(rom)
	if err != nil {
		t.Fatal(err)
	}
	if got := m.CPURead(0xC000); got != 3 {
		t.Fatalf("UxROM $C000 should read bank 3 (last), got tag %d", got)
	}
	m.CPUWrite(0x8000, 2, 0)
	if got := m.CPURead(0x8000); got != 2 {
		t.Fatalf("UxROM $8000 should read the selected bank, got tag %d", got)
	}
}

func TestMMC1FiveWriteSequenceSetsControl(t *testing.T) {
	rom := romWithPRG(1, 4)
	m, err := New(rom)
	if err != nil {
		t.Fatal(err)
	}

	var cycle uint64
	for i := 0; i < 5; i++ {
		m.CPUWrite(0x8000, 0x00, cycle)
		cycle += 2 // spaced out so writes aren't dropped
	}
	if m.mmc1Control&0x1F != 0 {
		t.Fatalf("control = %02X, want 0 after five 0-bit writes", m.mmc1Control)
	}
	if m.mirroring() != ines.MirrorSingleA {
		t.Fatalf("mirroring = %v, want single-screen A", m.mirroring())
	}

	// Bit-7 reset forces PRG mode back to fix-last-at-$C000.
	m.CPUWrite(0x8000, 0x80, cycle)
	if m.mmc1Control&0x0C != 0x0C {
		t.Fatalf("control PRG-mode bits = %02X, want 0C after reset write", m.mmc1Control&0x0C)
	}
}

func TestMMC1DropsConsecutiveCycleWrites(t *testing.T) {
	rom := romWithPRG(1, 4)
	m, _ := New(rom)

	m.CPUWrite(0x8000, 1, 0)
	m.CPUWrite(0x8000, 1, 1) // immediately-following cycle: dropped
	m.CPUWrite(0x8000, 1, 3)
	m.CPUWrite(0x8000, 1, 5)
	m.CPUWrite(0x8000, 1, 7)
	if m.mmc1ShiftCount != 4 {
		t.Fatalf("shiftCount = %d, want 4 (one write dropped)", m.mmc1ShiftCount)
	}
}

func TestCNROMSelectsCHRBank(t *testing.T) {
	rom := romWithPRG(3, 2)
	rom.CHR = make([]byte, 0x2000*4)
	for i := range rom.CHR {
		rom.CHR[i] = byte(i / 0x2000)
	}
	m, _ := New(rom)
	m.CPUWrite(0x8000, 2, 0)
	if got := m.PPURead(0); got != 2 {
		t.Fatalf("CHR bank 2 not selected, got tag %d", got)
	}
}

func TestMapper87BankEncoding(t *testing.T) {
	rom := romWithPRG(87, 2)
	rom.CHR = make([]byte, 0x2000*4)
	for i := range rom.CHR {
		rom.CHR[i] = byte(i / 0x2000)
	}
	m, _ := New(rom)
	// v=0b01 -> bank = (0>>1&1)|((1&1)<<1) = 0|2 = 2
	m.CPUWrite(0x6000, 0b01, 0)
	if got := m.PPURead(0); got != 2 {
		t.Fatalf("bank = %d, want 2", got)
	}
}

func TestMirrorHorizontalAndVertical(t *testing.T) {
	rom := romWithPRG(0, 1)
	rom.Mirroring = ines.MirrorHorizontal
	m, _ := New(rom)
	if m.Mirror(0x2000) != m.Mirror(0x2400) {
		t.Fatal("horizontal mirroring: top row should share the same physical nametable")
	}
	rom.Mirroring = ines.MirrorVertical
	m2, _ := New(rom)
	if m2.Mirror(0x2000) != m2.Mirror(0x2800) {
		t.Fatal("vertical mirroring: left column should share the same physical nametable")
	}
}
