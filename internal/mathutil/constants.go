package mathutil

// Damping constants
const (
	ln2 = 0.69314718056 // Natural logarithm of 2

	// halfLifeDampingScale converts a half-life into a damping coefficient:
	// y = (4·ln2) / halfLife.
	halfLifeDampingScale = 4.0 * ln2

	// DefaultDampingEpsilon keeps HalfLifeToDamping finite at halfLife == 0.
	DefaultDampingEpsilon = 1e-5
)

// Rational approximation coefficients for e^(-x):
// 1 / (1 + x + 0.48x² + 0.235x³)
const (
	negExpCoeff1 = 1.0
	negExpCoeff2 = 0.48
	negExpCoeff3 = 0.235
)

// Rotation mapping constants
const (
	// DefaultRotationEpsilon gates the first-order branches of Log and Exp.
	DefaultRotationEpsilon = 1e-8

	// scaledAngleAxisFactor converts between half-angle rotation vectors
	// (Log/Exp) and full-angle scaled angle-axis vectors.
	scaledAngleAxisFactor = 2.0
	halfFactor            = 0.5
)
