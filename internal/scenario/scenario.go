// Package scenario drives a one-channel blender with a sinusoidal target
// whose amplitude is reassigned at trigger times, and records the trace.
package scenario

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"slices"

	"gopkg.in/yaml.v3"

	inertialization "github.com/tphakala/go-inertialization"
)

// ErrInvalidScenario indicates invalid scenario parameters.
var ErrInvalidScenario = errors.New("invalid scenario")

// Transition reassigns the target amplitude at Time seconds.
type Transition struct {
	Time      float64 `yaml:"time"`
	Amplitude float64 `yaml:"amplitude"`
}

// Scenario describes a target y = Amplitude·sin(Frequency·x) where x
// advances at VelocityX units per second.
type Scenario struct {
	HalfLife  float64 `yaml:"half_life"`
	DeltaTime float64 `yaml:"delta_time"`
	Duration  float64 `yaml:"duration"`
	VelocityX float64 `yaml:"velocity_x"`
	Frequency float64 `yaml:"frequency"`
	Amplitude float64 `yaml:"amplitude"`

	Transitions []Transition `yaml:"transitions"`

	// RandomTransitions adds that many transitions at uniformly drawn times
	// with amplitudes in [1, 10), reproducible through Seed.
	RandomTransitions int   `yaml:"random_transitions,omitempty"`
	Seed              int64 `yaml:"seed,omitempty"`

	ExactDecay bool `yaml:"exact_decay,omitempty"`
}

// Sample is one step of a scenario trace.
type Sample struct {
	Time       float64
	Target     float64
	Output     float64
	Offset     float64
	Transition bool
}

// Default returns the built-in demo scenario.
func Default() *Scenario {
	return &Scenario{
		HalfLife:  DefaultHalfLife,
		DeltaTime: DefaultDeltaTime,
		Duration:  DefaultDuration,
		VelocityX: DefaultVelocityX,
		Frequency: DefaultFrequency,
		Amplitude: DefaultAmplitude,
		Transitions: []Transition{
			{Time: defaultJumpTime, Amplitude: defaultJumpHeight},
		},
	}
}

// LoadYAML loads a scenario from a YAML reader. Fields missing from the
// document keep the values of Default, except transitions which are replaced.
func LoadYAML(r io.Reader) (*Scenario, error) {
	s := Default()
	s.Transitions = nil

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil {
		return nil, fmt.Errorf("failed to decode scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks if the scenario is valid.
func (s *Scenario) Validate() error {
	// Comparisons are written so that NaN fails them.
	if !(s.HalfLife >= 0) {
		return fmt.Errorf("%w: half_life must not be negative", ErrInvalidScenario)
	}

	if !(s.DeltaTime > 0) || !(s.Duration > 0) {
		return fmt.Errorf("%w: delta_time and duration must be positive", ErrInvalidScenario)
	}

	if !(s.Duration/s.DeltaTime <= maxSteps) {
		return fmt.Errorf("%w: too many steps (max %d)", ErrInvalidScenario, maxSteps)
	}

	if s.RandomTransitions < 0 {
		return fmt.Errorf("%w: random_transitions must not be negative", ErrInvalidScenario)
	}

	for _, f := range []struct {
		name  string
		value float64
	}{
		{"velocity_x", s.VelocityX},
		{"frequency", s.Frequency},
		{"amplitude", s.Amplitude},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s must be finite", ErrInvalidScenario, f.name)
		}
	}

	for i, tr := range s.Transitions {
		if !(tr.Time >= 0 && tr.Time <= s.Duration) {
			return fmt.Errorf("%w: transition %d at %vs is outside [0, %v]", ErrInvalidScenario, i, tr.Time, s.Duration)
		}
		if math.IsNaN(tr.Amplitude) || math.IsInf(tr.Amplitude, 0) {
			return fmt.Errorf("%w: transition %d amplitude must be finite", ErrInvalidScenario, i)
		}
	}

	return nil
}

// Steps returns the number of samples Run produces.
func (s *Scenario) Steps() int {
	return int(math.Round(s.Duration / s.DeltaTime))
}

// schedule returns the explicit and random transitions sorted by time.
func (s *Scenario) schedule() []Transition {
	all := slices.Clone(s.Transitions)
	if s.RandomTransitions > 0 {
		rng := rand.New(rand.NewSource(s.Seed))
		for range s.RandomTransitions {
			all = append(all, Transition{
				Time:      rng.Float64() * s.Duration,
				Amplitude: minRandomAmplitude + rng.Float64()*(maxRandomAmplitude-minRandomAmplitude),
			})
		}
	}
	slices.SortStableFunc(all, func(a, b Transition) int {
		switch {
		case a.Time < b.Time:
			return -1
		case a.Time > b.Time:
			return 1
		default:
			return 0
		}
	})
	return all
}

// target returns the sine value and its backward difference at x.
func (s *Scenario) target(amplitude, x float64) (value, rate float64) {
	value = amplitude * math.Sin(s.Frequency*x)
	prev := amplitude * math.Sin(s.Frequency*(x-s.VelocityX*s.DeltaTime))
	return value, (value - prev) / s.DeltaTime
}

// Run simulates the scenario and returns one sample per step.
//
// On a transition the source is the target just before the amplitude
// change, so a transition while an offset is still decaying folds the new
// jump onto the residual offset.
func (s *Scenario) Run() ([]Sample, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	blend, err := inertialization.NewScalarWithConfig(&inertialization.Config{
		Channels:   1,
		ExactDecay: s.ExactDecay,
	})
	if err != nil {
		return nil, err
	}

	schedule := s.schedule()
	next := 0
	amplitude := s.Amplitude

	steps := s.Steps()
	samples := make([]Sample, 0, steps)
	target := make([]float64, 1)
	targetRate := make([]float64, 1)

	for k := 1; k <= steps; k++ {
		t := float64(k) * s.DeltaTime
		x := t * s.VelocityX
		target[0], targetRate[0] = s.target(amplitude, x)

		triggered := false
		for next < len(schedule) && schedule[next].Time <= t {
			source, sourceRate := target[0], targetRate[0]
			amplitude = schedule[next].Amplitude
			target[0], targetRate[0] = s.target(amplitude, x)
			if err := blend.Transition([]float64{source}, []float64{sourceRate}, target, targetRate); err != nil {
				return nil, err
			}
			triggered = true
			next++
		}

		if err := blend.Update(target, targetRate, s.HalfLife, s.DeltaTime); err != nil {
			return nil, err
		}

		samples = append(samples, Sample{
			Time:       t,
			Target:     target[0],
			Output:     blend.Values()[0],
			Offset:     blend.Offsets()[0],
			Transition: triggered,
		})
	}

	return samples, nil
}
