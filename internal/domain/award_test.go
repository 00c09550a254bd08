package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func winningParams() NewAwardParams {
	outcome, _ := OutcomeBySection(WheelOutcomes, SectionDiscount20)
	return NewAwardParams{
		SessionID:      "session-1",
		Outcome:        outcome,
		Code:           "WHEEL20ABC123",
		SpinAngle:      1500,
		SpinDurationMs: 4000,
		CreatedAt:      testNow,
		ExpiresAt:      testNow.Add(24 * time.Hour),
	}
}

func TestNewAwardValidatesRanges(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*NewAwardParams)
		wantErr error
	}{
		{"angle below range", func(p *NewAwardParams) { p.SpinAngle = -1 }, ErrInvalidSpinAngle},
		{"angle above range", func(p *NewAwardParams) { p.SpinAngle = 3601 }, ErrInvalidSpinAngle},
		{"duration below range", func(p *NewAwardParams) { p.SpinDurationMs = 999 }, ErrInvalidDuration},
		{"duration above range", func(p *NewAwardParams) { p.SpinDurationMs = 10001 }, ErrInvalidDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := winningParams()
			tt.mutate(&p)
			_, err := NewAward(p)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	award, err := NewAward(winningParams())
	require.NoError(t, err)
	assert.NotEqual(t, "", award.ID.String())
	assert.Equal(t, SectionDiscount20, award.Section)
	assert.Equal(t, 20.0, award.Discount.Value())
	assert.True(t, award.IsWinning())
	assert.False(t, award.IsRedeemed)
}

func TestAwardExpiry(t *testing.T) {
	award, err := NewAward(winningParams())
	require.NoError(t, err)

	assert.False(t, award.IsExpired(testNow))
	assert.False(t, award.IsExpired(testNow.Add(24*time.Hour-time.Second)))
	assert.True(t, award.IsExpired(testNow.Add(24*time.Hour)))
	assert.True(t, award.IsExpired(testNow.Add(48*time.Hour)))
}

func TestMarkRedeemed(t *testing.T) {
	award, err := NewAward(winningParams())
	require.NoError(t, err)

	redeemTime := testNow.Add(time.Hour)
	require.NoError(t, award.MarkRedeemed(redeemTime))
	assert.True(t, award.IsRedeemed)
	require.NotNil(t, award.RedeemedAt)
	assert.Equal(t, redeemTime, *award.RedeemedAt)

	// Second redemption fails
	err = award.MarkRedeemed(redeemTime.Add(time.Minute))
	assert.ErrorIs(t, err, ErrAwardAlreadyRedeemed)
}

func TestMarkRedeemedRejectsNoPrize(t *testing.T) {
	p := winningParams()
	p.Outcome, _ = OutcomeBySection(WheelOutcomes, SectionNoPrize)
	p.Code = ""

	award, err := NewAward(p)
	require.NoError(t, err)
	assert.False(t, award.IsWinning())

	err = award.MarkRedeemed(testNow)
	assert.ErrorIs(t, err, ErrAwardNotWinning)
	assert.False(t, award.IsRedeemed)
}

func TestMarkRedeemedRejectsExpired(t *testing.T) {
	award, err := NewAward(winningParams())
	require.NoError(t, err)

	err = award.MarkRedeemed(testNow.Add(25 * time.Hour))
	assert.ErrorIs(t, err, ErrAwardExpired)
	assert.False(t, award.IsRedeemed)
}

func TestSpinHistoryCounting(t *testing.T) {
	mkAward := func(at time.Time) *Award {
		p := winningParams()
		p.CreatedAt = at
		p.ExpiresAt = at.Add(24 * time.Hour)
		a, err := NewAward(p)
		require.NoError(t, err)
		return a
	}

	h := &SpinHistory{SessionID: "session-1"}
	assert.Nil(t, h.LastSpinAt())
	assert.Zero(t, h.SpinsInSession())
	assert.Zero(t, h.SpinsOnDay(testNow))

	yesterday := testNow.Add(-24 * time.Hour)
	h.Awards = []*Award{
		mkAward(yesterday),
		mkAward(testNow.Add(-2 * time.Hour)),
		mkAward(testNow.Add(-5 * time.Minute)),
	}

	assert.Equal(t, 3, h.SpinsInSession())
	assert.Equal(t, 2, h.SpinsOnDay(testNow))
	assert.Equal(t, 1, h.SpinsOnDay(yesterday))
	require.NotNil(t, h.LastSpinAt())
	assert.Equal(t, testNow.Add(-5*time.Minute), *h.LastSpinAt())
}

func TestSpinsOnDayUsesUTCBoundary(t *testing.T) {
	// 23:30 UTC and 00:30 UTC the next day are different days even though
	// they are an hour apart.
	lateNight := time.Date(2025, 6, 14, 23, 30, 0, 0, time.UTC)
	earlyMorning := time.Date(2025, 6, 15, 0, 30, 0, 0, time.UTC)

	p := winningParams()
	p.CreatedAt = lateNight
	a1, err := NewAward(p)
	require.NoError(t, err)

	h := &SpinHistory{SessionID: "session-1", Awards: []*Award{a1}}
	assert.Equal(t, 1, h.SpinsOnDay(lateNight))
	assert.Equal(t, 0, h.SpinsOnDay(earlyMorning))
}
