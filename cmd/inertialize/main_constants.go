package main

// CLI defaults
const (
	// halfLifeFlag overrides the scenario half-life only when set explicitly,
	// so -halflife 0 selects an instant snap.
	halfLifeFlag    = "halflife"
	defaultHalfLife = 0.0

	// CSV formatting
	floatFormat    = 'f'
	floatPrecision = 6
	floatBits      = 64
)

// csvHeader names the columns written for each sample.
var csvHeader = []string{"time", "target", "output", "offset", "transition"}
