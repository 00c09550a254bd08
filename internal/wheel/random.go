package wheel

import (
	"time"

	"github.com/promokit/wheel-service/internal/utils"
)

// Clock provides the current time. Injectable for testing time-dependent
// behavior such as cooldowns and day boundaries.
type Clock interface {
	Now() time.Time
}

// Random provides the randomness used for outcome selection and animation
// parameters. Injectable so tests can drive deterministic draws.
type Random interface {
	// Float64 returns a value in [0.0, 1.0)
	Float64() float64
	// IntBetween returns a value between min and max (inclusive)
	IntBetween(min, max int) int
}

type systemClock struct{}

// NewSystemClock returns a Clock backed by time.Now
func NewSystemClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

type systemRandom struct{}

// NewSystemRandom returns the production Random source. Discount code
// suffixes come from crypto/rand since codes must be unguessable; the
// animation values do not need that and use the cheaper math/rand path.
func NewSystemRandom() Random {
	return systemRandom{}
}

func (systemRandom) Float64() float64 {
	return utils.RandomFloat()
}

func (systemRandom) IntBetween(min, max int) int {
	n, err := utils.SecureRandomInt(min, max)
	if err != nil {
		return utils.RandomInt(min, max)
	}
	return n
}
