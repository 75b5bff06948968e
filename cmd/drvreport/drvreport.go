package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/akamensky/argparse"
	"github.com/google/uuid"

	"github.com/latortuga71/GoDriverReport/internal/analysis"
	"github.com/latortuga71/GoDriverReport/internal/config"
	"github.com/latortuga71/GoDriverReport/internal/driverquery"
	"github.com/latortuga71/GoDriverReport/internal/elevation"
	"github.com/latortuga71/GoDriverReport/internal/log"
	"github.com/latortuga71/GoDriverReport/internal/report"
)

const (
	exitPrivilege = 2
	exitQuery     = 3
	exitWrite     = 4
)

// collectFunc acquires the driver inventory. Injected so the run sequence can
// be exercised without the real enumeration utility.
type collectFunc func(ctx context.Context) (*driverquery.Inventory, error)

func main() {
	parser := argparse.NewParser("drvreport", "Analyzes Windows driver state and writes a diagnostic report flagging stopped and unsigned drivers. Read-only; never changes driver state.")
	configPath := parser.String("c", "config", &argparse.Options{Help: "Path to a drvreport.yaml config file"})
	outputPath := parser.String("o", "output", &argparse.Options{Help: "Report output path (overrides config)"})
	timeoutStr := parser.String("t", "timeout", &argparse.Options{Help: "Per-query timeout, e.g. 90s (overrides config)"})
	noPause := parser.Flag("", "no-pause", &argparse.Options{Help: "Do not pause before exiting on error"})
	debug := parser.Flag("d", "debug", &argparse.Options{Help: "Enable debug logging"})
	if err := parser.Parse(os.Args); err != nil {
		fmt.Print(parser.Usage(err))
		os.Exit(1)
	}
	if *debug {
		log.SetLevelDebug()
	} else {
		log.SetLevelInfo()
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Log.Error().Msg(err.Error())
		os.Exit(1)
	}
	if *outputPath != "" {
		cfg.OutputPath = *outputPath
	}
	if *timeoutStr != "" {
		if _, err := time.ParseDuration(*timeoutStr); err != nil {
			log.Log.Error().Msgf("Invalid --timeout value %q: %v", *timeoutStr, err)
			os.Exit(1)
		}
		cfg.QueryTimeout = *timeoutStr
	}
	pause := cfg.ParsedPause()
	if *noPause {
		pause = 0
	}

	verboseArgv, err := cfg.VerboseArgv()
	if err != nil {
		log.Log.Error().Msg(err.Error())
		os.Exit(1)
	}
	signatureArgv, err := cfg.SignatureArgv()
	if err != nil {
		log.Log.Error().Msg(err.Error())
		os.Exit(1)
	}
	runner := &driverquery.Runner{
		Timeout:       cfg.ParsedQueryTimeout(),
		VerboseArgv:   verboseArgv,
		SignatureArgv: signatureArgv,
	}

	os.Exit(run(cfg, pause, elevation.Check, runner.Collect))
}

// run drives the full sequence: privilege check, acquire, classify, render,
// persist. The privilege check comes first; no query is issued and no report
// file is touched without elevation. The report is written only after both
// queries and both filters succeed, so a failed run never leaves a half
// rewritten file behind.
func run(cfg *config.Config, pause time.Duration, checkElevation func() error, collect collectFunc) int {
	if err := checkElevation(); err != nil {
		return fail(exitPrivilege, pause, err)
	}

	log.Log.Info().Msg("Starting driver analysis. This may take a moment...")
	inventory, err := collect(context.Background())
	if err != nil {
		return fail(exitQuery, pause, err)
	}

	stopped := analysis.Stopped(inventory.Drivers)
	unsigned := analysis.Unsigned(inventory.Signatures)
	log.Log.Info().Msgf("Found %d stopped drivers.", len(stopped))
	log.Log.Info().Msgf("Found %d unsigned drivers.", len(unsigned))

	rendered, err := report.Build(report.Params{
		GeneratedAt: time.Now(),
		RunID:       uuid.New().String(),
		Stopped:     stopped,
		Unsigned:    unsigned,
	}).Render()
	if err != nil {
		return fail(exitWrite, pause, err)
	}
	absPath, err := report.WriteFile(cfg.OutputPath, rendered)
	if err != nil {
		return fail(exitWrite, pause, err)
	}
	log.Log.Info().Msgf("A detailed report has been saved to %s", absPath)
	return 0
}

// loadConfig loads an explicit --config path strictly, probes the default
// location otherwise, and falls back to defaults when no file exists.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	if _, err := os.Stat(config.DefaultPath); err == nil {
		return config.Load(config.DefaultPath)
	}
	return config.Default(), nil
}

// fail reports a terminal error and returns the exit code. The pause keeps the
// message on screen for users who launched the tool by double-click.
func fail(code int, pause time.Duration, err error) int {
	log.Log.Error().Msg(err.Error())
	if pause > 0 {
		log.Log.Info().Msgf("Exiting in %s...", pause)
		time.Sleep(pause)
	}
	return code
}
