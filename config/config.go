// Package config holds the emulator's user-editable configuration, loaded
// from and saved to a TOML file. It is constructed once at startup and
// threaded explicitly through the rest of the program — there are no
// package-level configuration globals.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"nescore/emu/log"
)

// Config is the full on-disk configuration for the emulator.
type Config struct {
	Input   InputConfig   `toml:"input"`
	Audio   AudioConfig   `toml:"audio"`
	General GeneralConfig `toml:"general"`
	Debug   DebugConfig   `toml:"debug"`
}

// InputConfig maps host key codes to NES pad buttons, and the save-slot
// chord modifier described in spec.md §6 (Host input).
type InputConfig struct {
	AssignModifier string            `toml:"assign_modifier"`
	ButtonMap      map[string]string `toml:"button_map"`
}

// AudioConfig controls APU sample generation.
type AudioConfig struct {
	SampleRate int `toml:"sample_rate"`
}

// GeneralConfig holds miscellaneous top-level options.
type GeneralConfig struct {
	SRAMDir      string `toml:"sram_dir"`
	SaveStateDir string `toml:"save_state_dir"`
}

// DebugConfig controls the logging subsystem.
type DebugConfig struct {
	LogModules []string `toml:"log_modules"`
}

// Default returns the configuration used when no config file is present.
func Default() Config {
	return Config{
		Input: InputConfig{
			AssignModifier: "Shift",
			ButtonMap: map[string]string{
				"A": "Z", "B": "X", "Select": "RShift", "Start": "Return",
				"Up": "Up", "Down": "Down", "Left": "Left", "Right": "Right",
			},
		},
		Audio:   AudioConfig{SampleRate: 44100},
		General: GeneralConfig{SRAMDir: ".", SaveStateDir: "."},
	}
}

const filename = "config.toml"

// Dir returns the directory config.toml lives in, creating it if needed.
func Dir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir = filepath.Join(dir, "nescore")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// LoadOrDefault loads config.toml from the config directory, or returns the
// default configuration if it can't be read.
func LoadOrDefault() Config {
	dir, err := Dir()
	if err != nil {
		return Default()
	}

	var cfg Config
	if _, err := toml.DecodeFile(filepath.Join(dir, filename), &cfg); err != nil {
		log.ModEmu.DebugZ("no usable config file, using defaults").Err(err).End()
		return Default()
	}
	return cfg
}

// Save writes cfg to the config directory.
func Save(cfg Config) error {
	dir, err := Dir()
	if err != nil {
		return err
	}

	f, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// ApplyDebug enables the log modules named in cfg.Debug.LogModules.
func ApplyDebug(cfg Config) {
	var mask log.ModuleMask
	for _, name := range cfg.Debug.LogModules {
		if name == "all" {
			mask |= log.ModuleMaskAll
			continue
		}
		if m, ok := log.ModuleByName(name); ok {
			mask |= m.Mask()
		}
	}
	log.EnableDebugModules(mask)
}
