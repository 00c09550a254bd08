package wheel

import (
	"fmt"

	"github.com/promokit/wheel-service/internal/domain"
)

// Selector performs the weighted outcome draw and derives the animation
// parameters the frontend needs to render the spin.
type Selector struct {
	outcomes   []domain.Outcome
	total      float64
	sliceWidth float64
	indexOf    map[domain.Section]int
}

// NewSelector builds a selector over the given outcome table. The table is
// validated once here so every later draw can assume it is well-formed.
func NewSelector(outcomes []domain.Outcome) (*Selector, error) {
	if err := domain.ValidateOutcomeTable(outcomes); err != nil {
		return nil, fmt.Errorf("failed to build selector: %w", err)
	}

	total := 0.0
	indexOf := make(map[domain.Section]int, len(outcomes))
	for i, o := range outcomes {
		total += o.Probability
		indexOf[o.Section] = i
	}

	return &Selector{
		outcomes:   outcomes,
		total:      total,
		sliceWidth: FullRotationDegrees / float64(len(outcomes)),
		indexOf:    indexOf,
	}, nil
}

// Outcomes returns the table the selector draws from, in wheel order.
func (s *Selector) Outcomes() []domain.Outcome {
	return s.outcomes
}

// Draw selects one outcome with probability proportional to its weight.
// A single uniform roll walks the cumulative distribution; the last row
// absorbs any floating point shortfall.
func (s *Selector) Draw(rng Random) domain.Outcome {
	roll := rng.Float64() * s.total

	cumulative := 0.0
	for _, outcome := range s.outcomes {
		cumulative += outcome.Probability
		if roll < cumulative {
			return outcome
		}
	}

	// Fallback (should never happen)
	return s.outcomes[len(s.outcomes)-1]
}

// TargetAngle returns the final rotation in degrees for the given outcome:
// the outcome's slice plus a random offset within it, plus several full
// revolutions so the wheel spins convincingly before stopping.
func (s *Selector) TargetAngle(outcome domain.Outcome, rng Random) float64 {
	idx, ok := s.indexOf[outcome.Section]
	if !ok {
		idx = 0
	}

	base := float64(idx) * s.sliceWidth
	offset := rng.Float64() * s.sliceWidth
	rotations := rng.IntBetween(MinExtraRotations, MaxExtraRotations)

	return base + offset + float64(rotations)*FullRotationDegrees
}

// SpinDuration returns the animation duration in milliseconds.
func (s *Selector) SpinDuration(rng Random) int {
	return rng.IntBetween(AnimationMinMs, AnimationMaxMs)
}
