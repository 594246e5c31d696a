package inertialization

// Channel limits
const (
	stereoChannels = 2       // Stereo channel count (used by SpliceStereo)
	maxChannels    = 1 << 24 // Maximum supported channel count per set
)

// Half-life defaults in seconds
const (
	// DefaultHalfLife suits character motion blending at 30-60Hz.
	DefaultHalfLife = 0.1

	// DefaultSpliceHalfLife removes clicks at an audio splice without
	// audibly smearing the transient.
	DefaultSpliceHalfLife = 0.005
)
