// Command weft runs a script file through the engine (spec.md §6's
// "Command-line runner"), grounded on the teacher's main.go flag handling
// and logging setup.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/weft-lang/weft"
	"github.com/weft-lang/weft/internal/flushio"
	"github.com/weft-lang/weft/internal/logio"
)

var (
	flagFile    = flag.String("f", "", "script file to run (required)")
	flagTimeout = flag.Duration("timeout", 0, "abort the run after this long (0 disables)")
	flagTrace   = flag.Bool("trace", false, "log every executed cell")
	flagDump    = flag.Bool("dump", false, "print a diagnostic dump of the final Context state")
)

var log logio.Logger

func main() {
	log.SetOutput(os.Stderr)
	flag.Parse()
	if err := run(); err != nil {
		log.Errorf("%v", err)
	}
	os.Exit(log.ExitCode())
}

func run() error {
	if *flagFile == "" {
		return errors.New("weft: -f PATH is required")
	}
	src, err := os.ReadFile(*flagFile)
	if err != nil {
		return err
	}

	var opts []weft.MachineOption
	if *flagTrace {
		opts = append(opts, weft.WithMachineLogf(log.Printf))
	}
	m := weft.NewMachine(opts...)
	ctx := m.NewContext(string(src))

	if *flagTimeout > 0 {
		timer := time.AfterFunc(*flagTimeout, func() {
			ctx.Halt(fmt.Errorf("weft: timed out after %v", *flagTimeout))
		})
		defer timer.Stop()
	}

	runErr := ctx.Run()

	if *flagDump {
		dumpOut := flushio.NewWriteFlusher(os.Stderr)
		ctx.Dump(dumpOut)
		if ferr := dumpOut.Flush(); ferr != nil && runErr == nil {
			runErr = ferr
		}
	}

	if runErr != nil {
		return fmt.Errorf("%s: %w", *flagFile, runErr)
	}
	if err := ctx.TerminalErr(); err != nil {
		return fmt.Errorf("%s: %w", *flagFile, err)
	}
	return nil
}
