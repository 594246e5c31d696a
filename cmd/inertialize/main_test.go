package main

import (
	"bytes"
	"encoding/csv"
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-inertialization/internal/scenario"
)

func TestLoadScenario_Default(t *testing.T) {
	s, err := loadScenario("")
	require.NoError(t, err)
	assert.Equal(t, scenario.Default(), s)
	assert.Equal(t, "built-in", scenarioSource(""))
}

func TestLoadScenario_FileNotFound(t *testing.T) {
	_, err := loadScenario("/nonexistent/scenario.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open scenario")
}

func TestLoadScenario_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jumps.yaml")
	doc := "half_life: 0.25\nduration: 1\ntransitions:\n  - time: 0.5\n    amplitude: 4\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	s, err := loadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, 0.25, s.HalfLife)
	assert.Len(t, s.Transitions, 1)
}

func TestApplyOverrides(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		want     float64
		wantErr  bool
		wantSnap bool
	}{
		{"Unset keeps scenario", nil, scenario.DefaultHalfLife, false, false},
		{"Explicit value", []string{"-halflife", "0.2"}, 0.2, false, false},
		{"Explicit zero snaps", []string{"-halflife", "0"}, 0, false, true},
		{"Negative rejected", []string{"-halflife", "-1"}, 0, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := flag.NewFlagSet("inertialize", flag.ContinueOnError)
			fs.SetOutput(io.Discard)
			halfLife := fs.Float64(halfLifeFlag, defaultHalfLife, "")
			require.NoError(t, fs.Parse(tt.args))

			s := scenario.Default()
			err := applyOverrides(s, fs, *halfLife, true)
			if tt.wantErr {
				require.ErrorIs(t, err, scenario.ErrInvalidScenario)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, s.HalfLife, 0)
			assert.True(t, s.ExactDecay)

			if tt.wantSnap {
				samples, err := s.Run()
				require.NoError(t, err)
				for _, sample := range samples {
					assert.InDelta(t, sample.Target, sample.Output, 1e-4, "t=%v", sample.Time)
				}
			}
		})
	}
}

func TestWriteCSV(t *testing.T) {
	samples := []scenario.Sample{
		{Time: 0.5, Target: 1, Output: 0.25, Offset: -0.75, Transition: true},
		{Time: 1, Target: -2.125, Output: -2.125},
	}

	var buf bytes.Buffer
	require.NoError(t, writeCSV(&buf, samples))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, csvHeader, records[0])
	assert.Equal(t, []string{"0.500000", "1.000000", "0.250000", "-0.750000", "true"}, records[1])
	assert.Equal(t, []string{"1.000000", "-2.125000", "-2.125000", "0.000000", "false"}, records[2])
}

func TestWriteCSV_DemoTrace(t *testing.T) {
	samples, err := scenario.Default().Run()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeCSV(&buf, samples))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, len(samples)+1)
}
