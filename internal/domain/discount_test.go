package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDiscountPercentageBounds(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		wantErr bool
	}{
		{"zero", 0, false},
		{"hundred", 100, false},
		{"mid", 25.5, false},
		{"negative", -1, true},
		{"over hundred", 101, true},
		{"NaN", math.NaN(), true},
		{"positive infinity", math.Inf(1), true},
		{"negative infinity", math.Inf(-1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewDiscountPercentage(tt.value)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidDiscount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.value, d.Value())
		})
	}
}

func TestNewDiscountPercentageRounding(t *testing.T) {
	d, err := NewDiscountPercentage(33.333333)
	require.NoError(t, err)
	assert.Equal(t, 33.33, d.Value())

	d, err = NewDiscountPercentage(12.345)
	require.NoError(t, err)
	assert.Equal(t, 12.35, d.Value())
}

func TestDiscountPercentageCalculators(t *testing.T) {
	d := MustDiscountPercentage(25)

	assert.Equal(t, 0.25, d.Decimal())
	assert.Equal(t, 50.0, d.DiscountAmount(200))
	assert.Equal(t, 150.0, d.FinalPrice(200))
	assert.False(t, d.IsZero())
	assert.True(t, MustDiscountPercentage(0).IsZero())
}

func TestDiscountPercentageTier(t *testing.T) {
	tests := []struct {
		value float64
		want  DiscountTier
	}{
		{0, TierLow},
		{10, TierLow},
		{10.01, TierMedium},
		{25, TierMedium},
		{26, TierHigh},
		{40, TierHigh},
		{41, TierPremium},
		{100, TierPremium},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MustDiscountPercentage(tt.value).Tier(), "value %v", tt.value)
	}
}

func TestDiscountPercentageString(t *testing.T) {
	assert.Equal(t, "15%", MustDiscountPercentage(15).String())
	assert.Equal(t, "12.5%", MustDiscountPercentage(12.5).String())
	assert.Equal(t, "0%", DiscountPercentage{}.String())
}

func TestDiscountPercentageJSONRoundTrip(t *testing.T) {
	d := MustDiscountPercentage(33.33)

	data, err := d.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "33.33", string(data))

	var parsed DiscountPercentage
	require.NoError(t, parsed.UnmarshalJSON(data))
	assert.Equal(t, d, parsed)

	var invalid DiscountPercentage
	assert.Error(t, invalid.UnmarshalJSON([]byte("101")))
}
