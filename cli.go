package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"nescore/emu/log"
)

// CLI is nesctl's flag set (spec.md §9 Ambient Stack: a single positional
// ROM path plus a handful of flags).
type CLI struct {
	RomPath string `arg:"" name:"rom" help:"Path to an iNES ROM file." type:"existingfile"`

	Log            logModMask `help:"${log_help}" placeholder:"mod0,mod1,..."`
	RomInfos       bool       `name:"rom-infos" help:"Print ROM header information and exit."`
	SaveSlot       int        `name:"save-slot" default:"0" help:"Save-state slot to load at startup and save to on exit."`
	HeadlessFrames int        `name:"headless-frames" help:"Run N frames with no host window, then exit (smoke test)."`
	SampleRate     int        `name:"sample-rate" default:"44100" help:"Audio sample rate in Hz."`
}

var cliVars = kong.Vars{
	"log_help": "Enable logging for specified modules.",
}

func parseArgs(args []string) CLI {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("nesctl"),
		kong.Description("NES-family emulator core."),
		kong.UsageOnError(),
		kong.Help(printHelp),
		cliVars,
	)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args)
	checkf(err, "failed to parse command line")
	checkf(ctx.Error, "failed to parse command line")
	return cli
}

func printHelp(options kong.HelpOptions, ctx *kong.Context) error {
	if err := kong.DefaultHelpPrinter(options, ctx); err != nil {
		return err
	}

	var names []string
	for _, m := range log.AllModules() {
		names = append(names, "    - "+m.String())
	}
	fmt.Fprintf(os.Stderr, "\nLog modules:\n  The --log flag accepts a comma-separated list of modules.\n\n%s\n    - all\n", strings.Join(names, "\n"))
	return nil
}

// logModMask decodes --log's comma-separated module list into a log.ModuleMask.
type logModMask log.ModuleMask

// Decode implements kong.MapperValue.
func (lm *logModMask) Decode(ctx *kong.DecodeContext) error {
	tok := ctx.Scan.Pop()
	var mask log.ModuleMask
	for _, name := range strings.Split(tok.Value.(string), ",") {
		if name == "all" {
			mask |= log.ModuleMaskAll
			continue
		}
		mod, ok := log.ModuleByName(name)
		if !ok {
			return fmt.Errorf("unknown log module %q", name)
		}
		mask |= mod.Mask()
	}
	*lm = logModMask(mask)
	log.EnableDebugModules(mask)
	return nil
}

func checkf(err error, format string, args ...any) {
	if err == nil {
		return
	}
	fatalf(format+": %s", append(args, err.Error())...)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "fatal error: %s\n", fmt.Sprintf(format, args...))
	os.Exit(1)
}
