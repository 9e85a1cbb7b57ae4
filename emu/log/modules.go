// Package log provides structured, per-subsystem logging for the emulator
// core, backed by logrus. Modules can be selectively enabled so that hot-path
// call sites compile down to a single bitmask check when their module is
// disabled.
package log

import "gopkg.in/Sirupsen/logrus.v0"

type Module uint
type ModuleMask uint64

const ModuleMaskAll ModuleMask = 0xFFFFFFFFFFFFFFFF

const (
	ModEmu Module = iota
	ModCPU
	ModPPU
	ModAPU
	ModMapper
	ModIO
	ModSnapshot

	numModules
)

var modNames = [numModules]string{
	ModEmu:      "emu",
	ModCPU:      "cpu",
	ModPPU:      "ppu",
	ModAPU:      "apu",
	ModMapper:   "mapper",
	ModIO:       "io",
	ModSnapshot: "snapshot",
}

func (m Module) Mask() ModuleMask { return 1 << ModuleMask(m) }

func (m Module) String() string {
	if int(m) < len(modNames) {
		return modNames[m]
	}
	return "<unknown>"
}

func ModuleByName(name string) (Module, bool) {
	for i, n := range modNames {
		if n == name {
			return Module(i), true
		}
	}
	return 0, false
}

// AllModules returns every known module, for printing CLI help.
func AllModules() []Module {
	mods := make([]Module, numModules)
	for i := range mods {
		mods[i] = Module(i)
	}
	return mods
}

var enabledMask ModuleMask

// EnableDebugModules turns on debug-level logging for the modules in mask.
func EnableDebugModules(mask ModuleMask) { enabledMask |= mask }

// DisableDebugModules turns off debug-level logging for the modules in mask.
func DisableDebugModules(mask ModuleMask) { enabledMask &^= mask }

func (m Module) debugEnabled() bool { return enabledMask&m.Mask() != 0 }

// DebugZ starts a zero-overhead-when-disabled structured log entry at Debug level.
func (m Module) DebugZ(msg string) *Entry { return newEntry(m, logrus.DebugLevel, msg) }

// InfoZ starts a structured log entry at Info level.
func (m Module) InfoZ(msg string) *Entry { return newEntry(m, logrus.InfoLevel, msg) }

// WarnZ starts a structured log entry at Warn level.
func (m Module) WarnZ(msg string) *Entry { return newEntry(m, logrus.WarnLevel, msg) }

// ErrorZ starts a structured log entry at Error level.
func (m Module) ErrorZ(msg string) *Entry { return newEntry(m, logrus.ErrorLevel, msg) }

// Fatalf logs at Fatal level and terminates the process, matching the
// teacher's convention for unrecoverable startup errors.
func (m Module) Fatalf(format string, args ...any) {
	logrus.WithField("mod", m.String()).Fatalf(format, args...)
}
