package snapshot

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"nescore/ines"
	"nescore/nes"
)

func buildROM() *ines.ROM {
	prg := make([]byte, 0x8000)
	prg[0x7FFC] = 0x00
	prg[0x7FFD] = 0x80 // reset vector -> $8000
	prg[0x0000] = 0xEA // NOP
	prg[0x0001] = 0x4C // JMP $8000
	prg[0x0002] = 0x00
	prg[0x0003] = 0x80
	return &ines.ROM{Mapper: 0, Battery: true, PRG: prg, CHR: make([]byte, 0x2000)}
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	sys, err := nes.New(buildROM(), 44100)
	if err != nil {
		t.Fatal(err)
	}
	sys.RunFrame()

	snap := Capture(sys)
	data, err := Marshal(snap)
	if err != nil {
		t.Fatal(err)
	}

	got, err := Unmarshal(data)
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(snap.CPU, got.CPU); diff != "" {
		t.Fatalf("CPU state mismatch after round-trip (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(snap.PPU, got.PPU); diff != "" {
		t.Fatalf("PPU state mismatch after round-trip (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(snap.APU, got.APU); diff != "" {
		t.Fatalf("APU state mismatch after round-trip (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(snap.Mapper, got.Mapper); diff != "" {
		t.Fatalf("mapper state mismatch after round-trip (-want +got):\n%s", diff)
	}
	if len(got.RAM) != len(snap.RAM) {
		t.Fatalf("RAM length mismatch: got %d, want %d", len(got.RAM), len(snap.RAM))
	}
}

func TestRestoreRejectsVersionMismatch(t *testing.T) {
	sys, err := nes.New(buildROM(), 44100)
	if err != nil {
		t.Fatal(err)
	}
	snap := Capture(sys)
	snap.Version = Version + 1

	if err := Restore(sys, snap); err == nil {
		t.Fatal("expected an error restoring a mismatched version")
	}
}

func TestRestoreProducesIdenticalExecution(t *testing.T) {
	rom := buildROM()
	sysA, err := nes.New(rom, 44100)
	if err != nil {
		t.Fatal(err)
	}
	sysA.RunFrame()
	snap := Capture(sysA)

	sysB, err := nes.New(rom, 44100)
	if err != nil {
		t.Fatal(err)
	}
	if err := Restore(sysB, snap); err != nil {
		t.Fatal(err)
	}

	wantA := sysA.RunFrame()
	wantB := sysB.RunFrame()
	if len(wantA) != len(wantB) {
		t.Fatalf("post-restore frame sample counts differ: %d vs %d", len(wantA), len(wantB))
	}
	if diff := cmp.Diff(sysA.CPU.State(), sysB.CPU.State()); diff != "" {
		t.Fatalf("post-restore CPU state diverged (-a +b):\n%s", diff)
	}
	if diff := cmp.Diff(sysA.PPU.State(), sysB.PPU.State()); diff != "" {
		t.Fatalf("post-restore PPU state diverged (-a +b):\n%s", diff)
	}
}
