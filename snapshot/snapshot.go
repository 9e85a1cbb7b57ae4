// Package snapshot implements versioned save states and battery-backed
// PRG-RAM persistence (spec.md §6 Save state, Battery save). A snapshot is a
// self-describing JSON document; loading one built by a different Version
// fails cleanly without touching the running machine's state.
package snapshot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"nescore/emu/log"
	"nescore/hw"
	"nescore/hw/apu"
	"nescore/hw/cpu"
	"nescore/hw/mappers"
	"nescore/hw/ppu"
	"nescore/nes"
)

// Version identifies the snapshot encoding. Bump it whenever a Snapshot
// field's meaning changes.
const Version = 1

// Slots is the number of save-state slots exposed per ROM.
const Slots = 4

// ErrVersionMismatch is returned by Load when a snapshot was produced by an
// incompatible Version. The caller's current state is left untouched.
var ErrVersionMismatch = errors.New("snapshot: version mismatch")

// Snapshot is the full serializable emulator state.
type Snapshot struct {
	Version int

	CPU    cpu.State
	PPU    ppu.State
	APU    apu.State
	Mapper mappers.State

	RAM  []byte
	SRAM []byte
}

// Capture builds a Snapshot of sys's current state.
func Capture(sys *nes.System) *Snapshot {
	return &Snapshot{
		Version: Version,
		CPU:     sys.CPU.State(),
		PPU:     sys.PPU.State(),
		APU:     sys.APU.State(),
		Mapper:  sys.Cart.Mapper.State(),
		RAM:     append([]byte(nil), sys.Bus.RAM.Data...),
		SRAM:    sys.Cart.SRAM(),
	}
}

// Restore applies s to sys. sys must have been constructed from the same ROM
// the snapshot was captured from; Restore does not itself validate that.
func Restore(sys *nes.System, s *Snapshot) error {
	if s.Version != Version {
		return fmt.Errorf("%w: got %d, want %d", ErrVersionMismatch, s.Version, Version)
	}
	if len(s.RAM) != len(sys.Bus.RAM.Data) {
		return fmt.Errorf("snapshot: RAM size %d, want %d", len(s.RAM), len(sys.Bus.RAM.Data))
	}

	sys.CPU.SetState(s.CPU)
	sys.PPU.SetState(s.PPU)
	sys.APU.SetState(s.APU)
	sys.Cart.Mapper.SetState(s.Mapper)
	copy(sys.Bus.RAM.Data, s.RAM)
	sys.Cart.LoadSRAM(s.SRAM)
	return nil
}

// SlotPath returns the on-disk path for a ROM's save-state slot.
func SlotPath(dir, romName string, slot int) string {
	return filepath.Join(dir, fmt.Sprintf("%s.state%d", romName, slot))
}

// SRAMPath returns the on-disk path for a ROM's battery save.
func SRAMPath(dir, romName string) string {
	return filepath.Join(dir, romName+".sav")
}

// Save writes sys's snapshot to slot, and its cartridge PRG-RAM to the
// battery-save file, concurrently (spec.md §10: errgroup-coordinated I/O).
// The two files are independent; a failure writing one does not affect the
// other's outcome.
func Save(sys *nes.System, dir, romName string, slot int) error {
	snap := Capture(sys)
	data, err := Marshal(snap)
	if err != nil {
		return err
	}

	var g errgroup.Group
	g.Go(func() error {
		return os.WriteFile(SlotPath(dir, romName, slot), data, 0o644)
	})
	if sys.Cart.SRAMDirty() {
		sram := snap.SRAM
		g.Go(func() error {
			return os.WriteFile(SRAMPath(dir, romName), sram, 0o644)
		})
	}
	if err := g.Wait(); err != nil {
		log.ModSnapshot.ErrorZ("save failed").String("rom", romName).Int("slot", slot).Err(err).End()
		return err
	}
	sys.Cart.ClearSRAMDirty()
	log.ModSnapshot.InfoZ("saved state").String("rom", romName).Int("slot", slot).End()
	return nil
}

// Load reads a snapshot from slot and restores it onto sys. On any error,
// sys is left unmodified.
func Load(sys *nes.System, dir, romName string, slot int) error {
	data, err := os.ReadFile(SlotPath(dir, romName, slot))
	if err != nil {
		return err
	}
	snap, err := Unmarshal(data)
	if err != nil {
		return err
	}
	if err := Restore(sys, snap); err != nil {
		return err
	}
	log.ModSnapshot.InfoZ("loaded state").String("rom", romName).Int("slot", slot).End()
	return nil
}

// LoadSRAM restores battery-backed PRG-RAM from disk, if present. It is not
// an error for the file to be absent, which is the normal case for a ROM's
// first run.
func LoadSRAM(cart *hw.Cartridge, dir, romName string) error {
	data, err := os.ReadFile(SRAMPath(dir, romName))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	cart.LoadSRAM(data)
	return nil
}

// SaveSRAM persists battery-backed PRG-RAM if it has been written to since
// the last save (spec.md §6: "written ... only if the game actually used
// battery-backed PRG-RAM").
func SaveSRAM(cart *hw.Cartridge, dir, romName string) error {
	if !cart.SRAMDirty() {
		return nil
	}
	if err := os.WriteFile(SRAMPath(dir, romName), cart.SRAM(), 0o644); err != nil {
		return err
	}
	cart.ClearSRAMDirty()
	return nil
}
