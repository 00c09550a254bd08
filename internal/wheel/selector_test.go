package wheel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promokit/wheel-service/internal/domain"
)

func TestNewSelector_RejectsInvalidTable(t *testing.T) {
	_, err := NewSelector(nil)
	assert.ErrorIs(t, err, domain.ErrInvalidOutcomeTable)

	bad := []domain.Outcome{
		{Section: domain.SectionDiscount5, Label: "5% OFF", DiscountPercent: 5, Probability: 60},
		{Section: domain.SectionNoPrize, Label: "Try Again", Probability: 60},
	}
	_, err = NewSelector(bad)
	assert.ErrorIs(t, err, domain.ErrInvalidOutcomeTable)
}

func TestDraw_FixedRollsLandOnExpectedSections(t *testing.T) {
	selector, err := NewSelector(domain.WheelOutcomes)
	require.NoError(t, err)

	// Cumulative weights: 25, 45, 60, 75, 85, 92, 97, 100
	tests := []struct {
		roll    float64
		section domain.Section
	}{
		{roll: 0.0, section: domain.SectionDiscount5},
		{roll: 0.249, section: domain.SectionDiscount5},
		{roll: 0.25, section: domain.SectionDiscount10},
		{roll: 0.50, section: domain.SectionNoPrize},
		{roll: 0.70, section: domain.SectionDiscount15},
		{roll: 0.80, section: domain.SectionDiscount20},
		{roll: 0.90, section: domain.SectionDiscount25},
		{roll: 0.95, section: domain.SectionDiscount30},
		{roll: 0.999, section: domain.SectionDiscount50},
	}

	for _, tt := range tests {
		got := selector.Draw(fixedRandom{f: tt.roll})
		assert.Equal(t, tt.section, got.Section, "roll %v", tt.roll)
	}
}

func TestDraw_DistributionMatchesWeights(t *testing.T) {
	selector, err := NewSelector(domain.WheelOutcomes)
	require.NoError(t, err)

	rng := newSeededRandom(20250615)
	const draws = 100000

	counts := make(map[domain.Section]int)
	for i := 0; i < draws; i++ {
		counts[selector.Draw(rng).Section]++
	}

	for _, outcome := range domain.WheelOutcomes {
		observed := 100 * float64(counts[outcome.Section]) / draws
		assert.InDelta(t, outcome.Probability, observed, 2.0,
			"section %s drawn %.2f%% of the time, want %.2f%%",
			outcome.Section, observed, outcome.Probability)
	}
}

func TestTargetAngle_WithinAnimationRange(t *testing.T) {
	selector, err := NewSelector(domain.WheelOutcomes)
	require.NoError(t, err)

	rng := newSeededRandom(7)
	sliceWidth := FullRotationDegrees / float64(len(domain.WheelOutcomes))

	for i := 0; i < 1000; i++ {
		outcome := selector.Draw(rng)
		angle := selector.TargetAngle(outcome, rng)

		minAngle := float64(MinExtraRotations) * FullRotationDegrees
		maxAngle := float64(MaxExtraRotations+1) * FullRotationDegrees
		assert.GreaterOrEqual(t, angle, minAngle)
		assert.Less(t, angle, maxAngle)
		assert.LessOrEqual(t, angle, domain.MaxSpinAngle)

		// The settled position must sit inside the drawn outcome's slice
		settled := math.Mod(angle, FullRotationDegrees)
		idx := -1
		for j, o := range domain.WheelOutcomes {
			if o.Section == outcome.Section {
				idx = j
				break
			}
		}
		require.NotEqual(t, -1, idx)
		assert.GreaterOrEqual(t, settled, float64(idx)*sliceWidth)
		assert.Less(t, settled, float64(idx+1)*sliceWidth)
	}
}

func TestSpinDuration_WithinRange(t *testing.T) {
	selector, err := NewSelector(domain.WheelOutcomes)
	require.NoError(t, err)

	rng := newSeededRandom(11)
	for i := 0; i < 1000; i++ {
		d := selector.SpinDuration(rng)
		assert.GreaterOrEqual(t, d, AnimationMinMs)
		assert.LessOrEqual(t, d, AnimationMaxMs)
	}
}
