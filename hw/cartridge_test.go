package hw

import (
	"testing"

	"nescore/ines"
)

func TestCartridgeSRAMRoundTrip(t *testing.T) {
	rom := &ines.ROM{Mapper: 0, Battery: true, PRG: make([]byte, 0x4000), CHR: make([]byte, 0x2000)}
	cart, err := NewCartridge(rom)
	if err != nil {
		t.Fatal(err)
	}

	cart.CPUWrite8(0x6000, 0xAB, 0)
	if !cart.SRAMDirty() {
		t.Fatal("writing PRG-RAM should set the dirty flag")
	}

	saved := cart.SRAM()
	cart.ClearSRAMDirty()

	cart2, _ := NewCartridge(rom)
	cart2.LoadSRAM(saved)
	if got := cart2.CPURead8(0x6000); got != 0xAB {
		t.Fatalf("restored PRG-RAM byte = %02X, want AB", got)
	}
	if cart2.SRAMDirty() {
		t.Fatal("LoadSRAM should not leave the dirty flag set")
	}
}
