package main

import (
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	inertialization "github.com/tphakala/go-inertialization"
)

// spliceOptions holds the command-line settings for one splice.
type spliceOptions struct {
	at       float64 // seconds
	halfLife float64 // seconds
	parallel bool
	exact    bool
}

type spliceStats struct {
	rate         int
	channels     int
	bitDepth     int
	samples      int
	spliceSample int
	rawJump      float64
}

// wavInputInfo holds validated input file information.
type wavInputInfo struct {
	file     *os.File
	decoder  *wav.Decoder
	rate     int
	channels int
	bitDepth int
}

// openWAVInput opens and validates a WAV file, returning format information.
func openWAVInput(path string, logger *zap.Logger) (*wavInputInfo, error) {
	inputFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	decoder := wav.NewDecoder(inputFile)
	if !decoder.IsValidFile() {
		_ = inputFile.Close()
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	format := decoder.Format()
	info := &wavInputInfo{
		file:     inputFile,
		decoder:  decoder,
		rate:     format.SampleRate,
		channels: format.NumChannels,
		bitDepth: int(decoder.BitDepth),
	}

	logger.Debug("input format",
		zap.String("path", path),
		zap.Int("rate", info.rate),
		zap.Int("channels", info.channels),
		zap.Int("bit_depth", info.bitDepth),
	)

	return info, nil
}

// Close closes the input file.
func (w *wavInputInfo) Close() error {
	return w.file.Close()
}

// readChannels decodes the whole file into normalized per-channel slices.
func (w *wavInputInfo) readChannels() ([][]float64, error) {
	buf, err := w.decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read audio data: %w", err)
	}

	samplesPerChannel := len(buf.Data) / w.channels
	channelBufs := make([][]float64, w.channels)
	for ch := range channelBufs {
		channelBufs[ch] = make([]float64, samplesPerChannel)
	}
	deinterleaveInto(buf.Data, channelBufs, w.channels, samplesPerChannel, 1/getMaxValue(w.bitDepth))

	return channelBufs, nil
}

// checkCompatible verifies that two inputs can be spliced.
func checkCompatible(a, b *wavInputInfo) error {
	if a.rate != b.rate {
		return fmt.Errorf("sample rate mismatch: %d Hz vs %d Hz", a.rate, b.rate)
	}
	if a.channels != b.channels {
		return fmt.Errorf("channel count mismatch: %d vs %d", a.channels, b.channels)
	}
	if a.bitDepth != b.bitDepth {
		return fmt.Errorf("bit depth mismatch: %d vs %d", a.bitDepth, b.bitDepth)
	}
	return nil
}

// spliceWAV reads both inputs, splices them and writes the result.
func spliceWAV(pathA, pathB, outputPath string, opts spliceOptions, logger *zap.Logger) (*spliceStats, error) {
	inputA, err := openWAVInput(pathA, logger)
	if err != nil {
		return nil, err
	}
	defer func() { _ = inputA.Close() }()

	inputB, err := openWAVInput(pathB, logger)
	if err != nil {
		return nil, err
	}
	defer func() { _ = inputB.Close() }()

	if err := checkCompatible(inputA, inputB); err != nil {
		return nil, err
	}

	a, err := inputA.readChannels()
	if err != nil {
		return nil, err
	}
	b, err := inputB.readChannels()
	if err != nil {
		return nil, err
	}

	a, b = trimToShorter(a, b)
	if len(a[0]) == 0 {
		return nil, fmt.Errorf("no audio data in %s or %s", pathA, pathB)
	}
	n := len(a[0])
	at := min(int(math.Round(opts.at*float64(inputA.rate))), n)
	if at < 0 {
		return nil, fmt.Errorf("splice point %vs is negative", opts.at)
	}

	stats := &spliceStats{
		rate:         inputA.rate,
		channels:     inputA.channels,
		bitDepth:     inputA.bitDepth,
		samples:      n,
		spliceSample: at,
		rawJump:      rawJump(a, b, at),
	}
	logger.Info("splice point",
		zap.Int("sample", at),
		zap.Int("samples", n),
		zap.Float64("raw_jump", stats.rawJump),
	)

	spliced, err := spliceChannels(a, b, at, 1/float64(inputA.rate), opts)
	if err != nil {
		return nil, err
	}

	if err := writeWAV(outputPath, inputA.rate, inputA.bitDepth, spliced); err != nil {
		return nil, err
	}

	return stats, nil
}

// trimToShorter cuts both signals to the length of the shorter one.
func trimToShorter(a, b [][]float64) (aOut, bOut [][]float64) {
	n := min(len(a[0]), len(b[0]))
	aOut = make([][]float64, len(a))
	bOut = make([][]float64, len(b))
	for ch := range a {
		aOut[ch] = a[ch][:n]
		bOut[ch] = b[ch][:n]
	}
	return aOut, bOut
}

// rawJump returns the largest per-channel discontinuity an unsmoothed splice
// at sample at would produce.
func rawJump(a, b [][]float64, at int) float64 {
	var jump float64
	for ch := range a {
		if at == 0 || at >= len(a[ch]) {
			continue
		}
		jump = max(jump, math.Abs(b[ch][at]-a[ch][at-1]))
	}
	return jump
}

// spliceChannels splices every channel. Channels are independent, so in
// parallel mode each one is spliced on its own goroutine.
func spliceChannels(a, b [][]float64, at int, deltaTime float64, opts spliceOptions) ([][]float64, error) {
	config := &inertialization.Config{
		ExactDecay: opts.exact,
		EnableSIMD: true,
	}
	channels := len(a)

	if !opts.parallel || channels == monoChannels {
		return inertialization.SpliceMulti(a, b, at, opts.halfLife, deltaTime, config)
	}

	spliced := make([][]float64, channels)
	var g errgroup.Group
	for ch := range channels {
		g.Go(func() error {
			out, err := inertialization.SpliceMulti(a[ch:ch+1], b[ch:ch+1], at, opts.halfLife, deltaTime, config)
			if err != nil {
				return fmt.Errorf("splice failed on channel %d: %w", ch, err)
			}
			spliced[ch] = out[0]
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return spliced, nil
}

// writeWAV encodes per-channel samples as PCM with go-audio's encoder.
func writeWAV(path string, sampleRate, bitDepth int, channels [][]float64) (err error) {
	outputFile, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := outputFile.Close(); err == nil {
			err = closeErr
		}
	}()

	numChannels := len(channels)
	data := make([]int, len(channels[0])*numChannels)
	interleaveInto(channels, data, getMaxValue(bitDepth))

	encoder := wav.NewEncoder(outputFile, sampleRate, bitDepth, numChannels, wavFormatPCM)
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: numChannels,
			SampleRate:  sampleRate,
		},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	if err := encoder.Write(buf); err != nil {
		return fmt.Errorf("failed to write audio data: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to finalize WAV header: %w", err)
	}

	return nil
}

// getMaxValue returns the maximum sample value for the given bit depth.
func getMaxValue(bitDepth int) float64 {
	switch bitDepth {
	case bitsPerSample16:
		return maxInt16
	case bitsPerSample24:
		return maxInt24
	case bitsPerSample32:
		return maxInt32
	default:
		return maxInt16
	}
}

// deinterleaveInto converts interleaved int samples into preallocated per-channel buffers.
func deinterleaveInto(data []int, channelBufs [][]float64, numChannels, samplesPerChannel int, invMaxVal float64) {
	// Fast path for mono
	if numChannels == monoChannels {
		buf := channelBufs[0]
		for i := range samplesPerChannel {
			buf[i] = float64(data[i]) * invMaxVal
		}
		return
	}

	// Fast path for stereo: normalize in one pass, then split
	if numChannels == stereoChannels {
		interleaved := make([]float64, samplesPerChannel*stereoChannels)
		for i := range interleaved {
			interleaved[i] = float64(data[i]) * invMaxVal
		}
		left, right := inertialization.DeinterleaveFromStereo(interleaved)
		copy(channelBufs[0], left)
		copy(channelBufs[1], right)
		return
	}

	// General case
	for i := range samplesPerChannel {
		base := i * numChannels
		for ch := range numChannels {
			channelBufs[ch][i] = float64(data[base+ch]) * invMaxVal
		}
	}
}

// interleaveInto converts per-channel float slices into a preallocated int
// buffer, clamping to [-1, 1]. Returns the number of elements written.
func interleaveInto(channels [][]float64, dst []int, maxVal float64) int {
	if len(channels) == 0 || len(channels[0]) == 0 {
		return 0
	}

	numChannels := len(channels)
	samplesPerChannel := len(channels[0])
	totalLen := samplesPerChannel * numChannels
	if len(dst) < totalLen {
		return 0 // Caller should handle this
	}

	// Fast path for stereo: SIMD interleave, then convert in one pass
	if numChannels == stereoChannels {
		interleaved := inertialization.InterleaveToStereo(channels[0], channels[1])
		for i, s := range interleaved {
			dst[i] = toPCM(s, maxVal)
		}
		return totalLen
	}

	for i := range samplesPerChannel {
		base := i * numChannels
		for ch := range numChannels {
			dst[base+ch] = toPCM(channels[ch][i], maxVal)
		}
	}

	return totalLen
}

// toPCM clamps a sample to [-1, 1] and scales it to the integer range.
func toPCM(sample, maxVal float64) int {
	return int(max(-1, min(1, sample)) * maxVal)
}
