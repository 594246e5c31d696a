package scenario

// Defaults for the built-in demo: a unit sine sampled at 60Hz whose
// amplitude jumps to 5 after two seconds.
const (
	DefaultHalfLife   = 0.5
	DefaultDeltaTime  = 1.0 / 60.0
	DefaultDuration   = 6.0
	DefaultVelocityX  = 1.0
	DefaultFrequency  = 1.0
	DefaultAmplitude  = 1.0
	defaultJumpTime   = 2.0
	defaultJumpHeight = 5.0
)

// Random transition amplitudes are drawn from [minRandomAmplitude, maxRandomAmplitude).
const (
	minRandomAmplitude = 1.0
	maxRandomAmplitude = 10.0
)

// maxSteps bounds Duration/DeltaTime so a bad file cannot allocate without limit.
const maxSteps = 10_000_000
