package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWheelOutcomesProbabilitySum(t *testing.T) {
	// The configured table must sum to exactly 100.
	sum := 0.0
	for _, o := range WheelOutcomes {
		sum += o.Probability
	}
	assert.Equal(t, 100.0, sum)
	assert.Len(t, WheelOutcomes, 8)

	require.NoError(t, ValidateOutcomeTable(WheelOutcomes))
}

func TestWheelOutcomesHasSingleNoPrize(t *testing.T) {
	noPrize := 0
	for _, o := range WheelOutcomes {
		if o.Section == SectionNoPrize {
			noPrize++
			assert.Zero(t, o.DiscountPercent)
			assert.False(t, o.IsWinning())
		} else {
			assert.True(t, o.IsWinning())
		}
	}
	assert.Equal(t, 1, noPrize)
}

func TestValidateOutcomeTableRejections(t *testing.T) {
	valid := func() []Outcome {
		out := make([]Outcome, len(WheelOutcomes))
		copy(out, WheelOutcomes)
		return out
	}

	tests := []struct {
		name   string
		mutate func([]Outcome) []Outcome
	}{
		{"empty table", func([]Outcome) []Outcome { return nil }},
		{"bad sum", func(o []Outcome) []Outcome { o[0].Probability += 1; return o }},
		{"zero probability", func(o []Outcome) []Outcome { o[0].Probability = 0; return o }},
		{"negative probability", func(o []Outcome) []Outcome { o[0].Probability = -5; return o }},
		{"missing section", func(o []Outcome) []Outcome { o[0].Section = ""; return o }},
		{"duplicate section", func(o []Outcome) []Outcome { o[1].Section = o[0].Section; return o }},
		{"discount above cap", func(o []Outcome) []Outcome { o[0].DiscountPercent = 60; return o }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutcomeTable(tt.mutate(valid()))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidOutcomeTable)
		})
	}
}

func TestOutcomeBySection(t *testing.T) {
	o, ok := OutcomeBySection(WheelOutcomes, SectionDiscount50)
	require.True(t, ok)
	assert.Equal(t, 50, o.DiscountPercent)

	_, ok = OutcomeBySection(WheelOutcomes, Section("UNKNOWN"))
	assert.False(t, ok)
}
