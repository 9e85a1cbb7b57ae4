package main

import (
	"os"
	"strings"
	"sync"

	"nescore/emu/log"
)

// applyDebugEnvOnce layers NESCORE_DEBUG_MODULES on top of whatever
// config.ApplyDebug already enabled, read once per process (adapted from
// original_source/debug_flags.rs's memoized env-var toggles).
var applyDebugEnvOnce sync.Once

// applyDebugEnv enables the log modules named in NESCORE_DEBUG_MODULES, a
// comma-separated list (or "all"), for debugging without editing config.toml.
func applyDebugEnv() {
	applyDebugEnvOnce.Do(func() {
		val := os.Getenv("NESCORE_DEBUG_MODULES")
		if val == "" {
			return
		}

		var mask log.ModuleMask
		for _, name := range strings.Split(val, ",") {
			name = strings.TrimSpace(name)
			if name == "all" {
				mask |= log.ModuleMaskAll
				continue
			}
			if m, ok := log.ModuleByName(name); ok {
				mask |= m.Mask()
			} else {
				log.ModEmu.WarnZ("unknown log module in NESCORE_DEBUG_MODULES").String("name", name).End()
			}
		}
		log.EnableDebugModules(mask)
	})
}
