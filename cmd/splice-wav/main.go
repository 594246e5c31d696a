// Command splice-wav joins two WAV files at a point in time without a click.
//
// Usage:
//
//	splice-wav -at 1.5 a.wav b.wav out.wav
//	splice-wav -at 1.5 -halflife 5 a.wav b.wav out.wav    # 5ms splice half-life
//	splice-wav -at 0.75 -parallel=false a.wav b.wav out.wav
//
// The output plays a.wav up to -at seconds and continues with b.wav from the
// same position. The jump between the two signals at the splice point is
// inertialized per channel, so it fades out instead of producing a click.
// Both inputs must share sample rate, channel count and bit depth.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/tphakala/go-inertialization/internal/logging"
)

const (
	// Channel count constants for fast paths
	monoChannels   = 1
	stereoChannels = 2

	// Sample format constants
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	// Conversion constants
	msToSeconds = 1.0 / 1000
	maxInt16    = 32767.0
	maxInt24    = 8388607.0
	maxInt32    = 2147483647.0

	// CLI defaults
	defaultHalfLifeMs = 5.0
	requiredArgs      = 3

	// WAV format constants
	wavFormatPCM = 1
)

var errUsage = errors.New("insufficient arguments")

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	at := flag.Float64("at", 0, "Splice point in seconds")
	halfLifeMs := flag.Float64("halflife", defaultHalfLifeMs, "Splice half-life in milliseconds")
	parallel := flag.Bool("parallel", true, "Enable parallel channel processing (faster for stereo/multichannel)")
	exact := flag.Bool("exact", false, "Use math.Exp instead of the fast decay approximation")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	args := flag.Args()
	if len(args) < requiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] a.wav b.wav output.wav\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -at 1.5 take1.wav take2.wav edit.wav     # Switch takes at 1.5s\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -at 1.5 -halflife 20 a.wav b.wav out.wav  # Softer splice\n", os.Args[0])
		return errUsage
	}

	logger, err := logging.New("splice-wav", *verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	opts := spliceOptions{
		at:       *at,
		halfLife: *halfLifeMs * msToSeconds,
		parallel: *parallel,
		exact:    *exact,
	}
	logger.Debug("splicing",
		zap.String("a", args[0]),
		zap.String("b", args[1]),
		zap.String("output", args[2]),
		zap.Float64("at_seconds", opts.at),
		zap.Float64("half_life_seconds", opts.halfLife),
		zap.Bool("parallel", opts.parallel),
		zap.Bool("exact_decay", opts.exact),
	)

	start := time.Now()
	stats, err := spliceWAV(args[0], args[1], args[2], opts, logger)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	// Print summary
	fmt.Printf("Spliced %s + %s -> %s\n", filepath.Base(args[0]), filepath.Base(args[1]), filepath.Base(args[2]))
	fmt.Printf("  %d Hz, %d channels, %d-bit\n", stats.rate, stats.channels, stats.bitDepth)
	fmt.Printf("  Splice at sample %d of %d, raw jump %.4f\n", stats.spliceSample, stats.samples, stats.rawJump)
	fmt.Printf("  Duration: %.2fs\n", elapsed.Seconds())

	return nil
}
