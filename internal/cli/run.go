// Package cli wires the trainer together: flags, config, logging, the
// vocabulary source, the snapshot store, and the interactive menu.
package cli

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"vocab/internal/config"
	"vocab/internal/deck"
	"vocab/internal/export"
	"vocab/internal/logging"
	"vocab/internal/state"
	"vocab/internal/vocab"
)

// Run is the main entry point. Returns exit code.
func Run(stdin io.Reader, out, errOut io.Writer, args []string, env map[string]string, sig <-chan os.Signal) int {
	ioCtx := NewIO(out, errOut)

	flags := flag.NewFlagSet("vocab", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	workDirFlag := flags.StringP("cwd", "C", "", "run as if started in this directory")
	configPath := flags.StringP("config", "c", "", "use the specified config file")
	vocabFile := flags.String("vocab", "", "vocabulary file (overrides config)")
	stateFile := flags.String("state", "", "state file (overrides config)")
	rowsPerSlide := flags.Int("rows-per-slide", 0, "rows per exported slide, 1-5 (overrides config)")

	parseErr := flags.Parse(args[1:])
	if parseErr != nil {
		if errors.Is(parseErr, flag.ErrHelp) {
			printUsage(ioCtx, flags)

			return 0
		}

		ioCtx.ErrPrintln("error:", parseErr)
		printUsage(ioCtx, flags)

		return 1
	}

	workDir := *workDirFlag
	if workDir == "" {
		var err error

		workDir, err = os.Getwd()
		if err != nil {
			ioCtx.ErrPrintln("error: cannot get working directory:", err)

			return 1
		}
	}

	overrides := config.Config{
		VocabFile:    *vocabFile,
		StateFile:    *stateFile,
		RowsPerSlide: *rowsPerSlide,
	}

	cfg, cfgSource, err := config.Load(workDir, *configPath, overrides)
	if err != nil {
		ioCtx.ErrPrintln("error:", err)

		return 1
	}

	level := logging.ParseLevel(env["VOCAB_LOG_LEVEL"])

	log, logCloser, logErr := logging.Open(resolve(workDir, cfg.LogFile), level)
	if logErr != nil {
		ioCtx.ErrPrintln("warning: logging disabled:", logErr)

		log = logging.Discard()
	} else {
		defer func() { _ = logCloser.Close() }()
	}

	if cfgSource != "" {
		log.Info("config loaded", "path", cfgSource)
	}

	normalized, inRange := export.NormalizeRows(cfg.RowsPerSlide)
	if !inRange {
		log.Warn("rows_per_slide out of range, using default",
			"requested", cfg.RowsPerSlide, "default", normalized)
	}

	cfg.RowsPerSlide = normalized

	if sig != nil {
		go func() {
			s, ok := <-sig
			if ok {
				// In-memory mutations since the last save are lost;
				// a snapshot is only ever written after a completed
				// action.
				ioCtx.ErrPrintln()
				ioCtx.ErrPrintln("received", s, "- exiting")
				os.Exit(1)
			}
		}()
	}

	source := vocab.NewFileSource(resolve(workDir, cfg.VocabFile), log)
	store := state.NewFileStore(resolve(workDir, cfg.StateFile), log)

	prog, err := deck.Load(source, store, log)
	if err != nil {
		ioCtx.ErrPrintln("error:", err)

		return 1
	}

	in := newLineSource(stdin, out)
	defer func() { _ = in.Close() }()

	m := &menu{
		io:         ioCtx,
		in:         in,
		log:        log,
		prog:       prog,
		exportPath: resolve(workDir, cfg.ExportFile),
		cfg:        cfg,
	}

	m.run()

	return 0
}

func resolve(workDir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(workDir, path)
}

func printUsage(o *IO, flags *flag.FlagSet) {
	o.Println(`vocab - spaced-repetition vocabulary trainer

Usage: vocab [options]

Loads the vocabulary file, reconciles it with the saved learning state,
and opens an interactive menu (review, list, advance session, export).

Options:`)
	o.Printf("%s", flags.FlagUsages())
}
