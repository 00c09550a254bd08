package wheel

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promokit/wheel-service/internal/domain"
)

var limiterNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func testLimits() domain.SpinLimits {
	return domain.SpinLimits{
		MaxSpinsPerSession:   3,
		MaxSpinsPerDay:       10,
		CooldownBetweenSpins: 5 * time.Minute,
	}
}

func historyAt(times ...time.Time) *domain.SpinHistory {
	h := &domain.SpinHistory{SessionID: "sess-1"}
	for _, t := range times {
		h.Awards = append(h.Awards, &domain.Award{SessionID: "sess-1", CreatedAt: t})
	}
	return h
}

func TestCheckEligibility_EmptyHistory(t *testing.T) {
	l := NewLimiter(testLimits())

	elig := l.CheckEligibility(historyAt(), limiterNow)

	assert.True(t, elig.Eligible)
	assert.Equal(t, 10, elig.SpinsRemainingToday)
	assert.Nil(t, elig.NextSpinAllowedAt)
}

func TestCheckEligibility_Cooldown(t *testing.T) {
	l := NewLimiter(testLimits())
	last := limiterNow.Add(-1 * time.Minute)

	elig := l.CheckEligibility(historyAt(last), limiterNow)

	assert.False(t, elig.Eligible)
	assert.Equal(t, domain.ReasonCooldown, elig.Reason)
	assert.Equal(t, 4*time.Minute, elig.CooldownRemaining)
	require.NotNil(t, elig.NextSpinAllowedAt)
	assert.Equal(t, last.Add(5*time.Minute), *elig.NextSpinAllowedAt)
	assert.Equal(t, 9, elig.SpinsRemainingToday)
}

func TestCheckEligibility_CooldownElapsed(t *testing.T) {
	l := NewLimiter(testLimits())

	elig := l.CheckEligibility(historyAt(limiterNow.Add(-5*time.Minute)), limiterNow)

	assert.True(t, elig.Eligible)
	assert.Equal(t, 9, elig.SpinsRemainingToday)
}

func TestCheckEligibility_DailyLimit(t *testing.T) {
	limits := testLimits()
	limits.MaxSpinsPerSession = 100
	l := NewLimiter(limits)

	times := make([]time.Time, limits.MaxSpinsPerDay)
	for i := range times {
		// All today, all past cooldown
		times[i] = limiterNow.Add(-time.Duration(i+2) * time.Hour)
	}

	elig := l.CheckEligibility(historyAt(times...), limiterNow)

	assert.False(t, elig.Eligible)
	assert.Equal(t, domain.ReasonDailyLimit, elig.Reason)
	assert.Equal(t, 0, elig.SpinsRemainingToday)
	require.NotNil(t, elig.NextSpinAllowedAt)
	assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), *elig.NextSpinAllowedAt)
}

func TestCheckEligibility_SpinsYesterdayDoNotCountToday(t *testing.T) {
	limits := testLimits()
	limits.MaxSpinsPerSession = 100
	l := NewLimiter(limits)

	times := make([]time.Time, limits.MaxSpinsPerDay)
	for i := range times {
		// 23:59 the previous UTC day
		times[i] = time.Date(2025, 6, 14, 23, 59, 0, 0, time.UTC).Add(-time.Duration(i) * time.Minute)
	}

	elig := l.CheckEligibility(historyAt(times...), limiterNow)

	assert.True(t, elig.Eligible)
	assert.Equal(t, 10, elig.SpinsRemainingToday)
}

func TestCheckEligibility_SessionLimit(t *testing.T) {
	l := NewLimiter(testLimits())

	// Session exhausted by spins on a previous day, so the daily cap is clear
	yesterday := limiterNow.Add(-24 * time.Hour)
	elig := l.CheckEligibility(historyAt(yesterday, yesterday.Add(time.Hour), yesterday.Add(2*time.Hour)), limiterNow)

	assert.False(t, elig.Eligible)
	assert.Equal(t, domain.ReasonSessionLimit, elig.Reason)
	assert.Nil(t, elig.NextSpinAllowedAt, "session caps never lift")
	assert.Equal(t, 10, elig.SpinsRemainingToday)
}

func TestCheckEligibility_CooldownReportedBeforeOtherLimits(t *testing.T) {
	l := NewLimiter(testLimits())

	// Three spins just now: on cooldown AND session-capped
	elig := l.CheckEligibility(historyAt(
		limiterNow.Add(-10*time.Minute),
		limiterNow.Add(-6*time.Minute),
		limiterNow.Add(-1*time.Minute),
	), limiterNow)

	assert.False(t, elig.Eligible)
	assert.Equal(t, domain.ReasonCooldown, elig.Reason)
}

func TestCheckEligibility_DailyReportedBeforeSession(t *testing.T) {
	limits := testLimits()
	limits.MaxSpinsPerSession = 5
	limits.MaxSpinsPerDay = 5
	l := NewLimiter(limits)

	times := make([]time.Time, 5)
	for i := range times {
		times[i] = limiterNow.Add(-time.Duration(i+1) * time.Hour)
	}

	elig := l.CheckEligibility(historyAt(times...), limiterNow)

	assert.False(t, elig.Eligible)
	assert.Equal(t, domain.ReasonDailyLimit, elig.Reason)
}

func TestRateLimitError_UnwrapsToSentinels(t *testing.T) {
	tests := []struct {
		reason   domain.LimitReason
		sentinel error
	}{
		{reason: domain.ReasonCooldown, sentinel: domain.ErrOnCooldown},
		{reason: domain.ReasonDailyLimit, sentinel: domain.ErrDailyLimitReached},
		{reason: domain.ReasonSessionLimit, sentinel: domain.ErrSessionLimitReached},
	}

	for _, tt := range tests {
		err := &RateLimitError{Eligibility: domain.Eligibility{Reason: tt.reason}}
		assert.True(t, errors.Is(err, tt.sentinel), "reason %s", tt.reason)
		assert.True(t, domain.IsRateLimit(err), "reason %s", tt.reason)
	}
}
