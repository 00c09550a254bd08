package wheel

// Wheel animation constants
const (
	// FullRotationDegrees is one complete revolution of the wheel
	FullRotationDegrees = 360.0

	// MinExtraRotations is the minimum number of full revolutions added to
	// the target angle so the wheel visibly spins before settling
	MinExtraRotations = 3

	// MaxExtraRotations is the maximum number of full revolutions
	MaxExtraRotations = 6

	// AnimationMinMs is the shortest spin animation duration
	AnimationMinMs = 3000

	// AnimationMaxMs is the longest spin animation duration
	AnimationMaxMs = 5000
)

// Request validation constants
const (
	// MaxSessionIDLength bounds client-supplied session identifiers
	MaxSessionIDLength = 100
)

// Award code cache constants
const (
	// codeCacheSize is the maximum number of awards held in the lookup cache
	codeCacheSize = 4096
)
