// Command nesctl loads an iNES ROM and runs it headlessly: it drives the
// frame scheduler, optionally loads/saves a numbered save-state slot, and
// persists battery-backed PRG-RAM on exit. Host video/audio output and
// window-system integration are out of scope (spec.md §1) and are not
// implemented by this entry point.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"nescore/config"
	"nescore/emu/log"
	"nescore/ines"
	"nescore/nes"
	"nescore/snapshot"
)

func main() {
	cli := parseArgs(os.Args[1:])

	rom, err := ines.Load(cli.RomPath)
	checkf(err, "failed to load ROM %q", cli.RomPath)

	if cli.RomInfos {
		printRomInfos(rom)
		return
	}

	cfg := config.LoadOrDefault()
	config.ApplyDebug(cfg)
	applyDebugEnv()

	sys, err := nes.New(rom, sampleRateOrDefault(cli.SampleRate, cfg))
	checkf(err, "failed to power up emulator")

	romName := romBaseName(cli.RomPath)
	saveDir, err := config.Dir()
	checkf(err, "failed to resolve save directory")

	if err := snapshot.LoadSRAM(sys.Cart, saveDir, romName); err != nil {
		log.ModSnapshot.WarnZ("failed to load battery save").Err(err).End()
	}
	if err := snapshot.Load(sys, saveDir, romName, cli.SaveSlot); err != nil && !os.IsNotExist(err) {
		log.ModSnapshot.WarnZ("failed to load save state").Int("slot", cli.SaveSlot).Err(err).End()
	}

	sd := newShutdown()
	exitCode := runHeadless(sys, cli.HeadlessFrames, sd)

	if err := snapshot.Save(sys, saveDir, romName, cli.SaveSlot); err != nil {
		log.ModSnapshot.WarnZ("failed to save state").Int("slot", cli.SaveSlot).Err(err).End()
	}

	if err := snapshot.SaveSRAM(sys.Cart, saveDir, romName); err != nil {
		log.ModSnapshot.ErrorZ("failed to persist battery save").Err(err).End()
		if exitCode == 0 {
			exitCode = 1
		}
	}

	os.Exit(exitCode)
}

// runHeadless drives frames until frames have been rendered (0 means run
// until a shutdown is requested) or sd records a quit request, and returns
// the exit code sd settled on.
func runHeadless(sys *nes.System, frames int, sd *shutdown) int {
	for i := 0; frames == 0 || i < frames; i++ {
		sys.RunFrame()
		if sd.requested() {
			break
		}
	}
	return sd.exitCode()
}

func sampleRateOrDefault(flagRate int, cfg config.Config) int {
	if flagRate > 0 {
		return flagRate
	}
	if cfg.Audio.SampleRate > 0 {
		return cfg.Audio.SampleRate
	}
	return 44100
}

func romBaseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func printRomInfos(rom *ines.ROM) {
	fmt.Printf("mapper:    %d\n", rom.Mapper)
	fmt.Printf("mirroring: %v\n", rom.Mirroring)
	fmt.Printf("battery:   %v\n", rom.Battery)
	fmt.Printf("PRG-ROM:   %d KiB\n", len(rom.PRG)/1024)
	if rom.HasCHRRAM() {
		fmt.Printf("CHR-RAM:   8 KiB\n")
	} else {
		fmt.Printf("CHR-ROM:   %d KiB\n", len(rom.CHR)/1024)
	}
}
