// Command inertialize runs a one-channel inertialization scenario and writes
// the trace as CSV.
//
// Usage:
//
//	inertialize                               # built-in demo to stdout
//	inertialize -scenario jumps.yaml -o out.csv
//	inertialize -halflife 0.2 -exact -v
//
// The scenario file is YAML:
//
//	half_life: 0.5
//	delta_time: 0.0166667
//	duration: 6
//	velocity_x: 1
//	frequency: 1
//	amplitude: 1
//	transitions:
//	  - time: 2
//	    amplitude: 5
//	random_transitions: 3
//	seed: 7
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/tphakala/go-inertialization/internal/logging"
	"github.com/tphakala/go-inertialization/internal/scenario"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() (err error) {
	scenarioPath := flag.String("scenario", "", "YAML scenario file (default: built-in demo)")
	outputPath := flag.String("o", "", "Output CSV file (default: stdout)")
	halfLife := flag.Float64(halfLifeFlag, defaultHalfLife, "Override the scenario half-life in seconds")
	exact := flag.Bool("exact", false, "Use math.Exp instead of the fast decay approximation")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	logger, err := logging.New("inertialize", *verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	s, err := loadScenario(*scenarioPath)
	if err != nil {
		return err
	}
	if err := applyOverrides(s, flag.CommandLine, *halfLife, *exact); err != nil {
		return err
	}

	logger.Debug("scenario loaded",
		zap.String("source", scenarioSource(*scenarioPath)),
		zap.Float64("half_life", s.HalfLife),
		zap.Float64("delta_time", s.DeltaTime),
		zap.Int("steps", s.Steps()),
		zap.Int("transitions", len(s.Transitions)+s.RandomTransitions),
		zap.Bool("exact_decay", s.ExactDecay),
	)

	start := time.Now()
	samples, err := s.Run()
	if err != nil {
		return err
	}
	logger.Info("scenario finished",
		zap.Int("samples", len(samples)),
		zap.Duration("elapsed", time.Since(start)),
	)

	out := io.Writer(os.Stdout)
	if *outputPath != "" {
		f, createErr := os.Create(*outputPath)
		if createErr != nil {
			return fmt.Errorf("failed to create output file: %w", createErr)
		}
		defer func() {
			if closeErr := f.Close(); err == nil {
				err = closeErr
			}
		}()
		out = f
	}

	if err := writeCSV(out, samples); err != nil {
		return fmt.Errorf("failed to write trace: %w", err)
	}
	if *outputPath != "" {
		logger.Info("trace written", zap.String("path", *outputPath))
	}

	return nil
}

// loadScenario reads a scenario file, or returns the demo for an empty path.
func loadScenario(path string) (*scenario.Scenario, error) {
	if path == "" {
		return scenario.Default(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scenario: %w", err)
	}
	defer func() { _ = f.Close() }()

	return scenario.LoadYAML(f)
}

// applyOverrides copies the command-line settings that were set explicitly
// onto s and validates the result.
func applyOverrides(s *scenario.Scenario, fs *flag.FlagSet, halfLife float64, exact bool) error {
	fs.Visit(func(f *flag.Flag) {
		if f.Name == halfLifeFlag {
			s.HalfLife = halfLife
		}
	})
	if exact {
		s.ExactDecay = true
	}
	return s.Validate()
}

func scenarioSource(path string) string {
	if path == "" {
		return "built-in"
	}
	return path
}

// writeCSV writes one row per sample after a header row.
func writeCSV(w io.Writer, samples []scenario.Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	row := make([]string, len(csvHeader))
	for _, s := range samples {
		row[0] = formatFloat(s.Time)
		row[1] = formatFloat(s.Target)
		row[2] = formatFloat(s.Output)
		row[3] = formatFloat(s.Offset)
		row[4] = strconv.FormatBool(s.Transition)
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, floatFormat, floatPrecision, floatBits)
}
