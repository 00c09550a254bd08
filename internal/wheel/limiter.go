package wheel

import (
	"fmt"
	"time"

	"github.com/promokit/wheel-service/internal/domain"
)

// Limiter enforces the anti-abuse spin caps. Checks run in order of how
// soon the restriction lifts: cooldown first, then the daily cap, then the
// session cap, so the caller always learns about the shortest wait.
type Limiter struct {
	limits domain.SpinLimits
}

// NewLimiter creates a limiter with the given caps
func NewLimiter(limits domain.SpinLimits) *Limiter {
	return &Limiter{limits: limits}
}

// Limits returns the configured caps
func (l *Limiter) Limits() domain.SpinLimits {
	return l.limits
}

// CheckEligibility decides whether the session may spin at the given
// instant. Daily counting uses UTC calendar days.
func (l *Limiter) CheckEligibility(history *domain.SpinHistory, now time.Time) domain.Eligibility {
	spinsToday := history.SpinsOnDay(now)
	remainingToday := l.limits.MaxSpinsPerDay - spinsToday
	if remainingToday < 0 {
		remainingToday = 0
	}

	if last := history.LastSpinAt(); last != nil {
		elapsed := now.Sub(*last)
		if elapsed < l.limits.CooldownBetweenSpins {
			next := last.Add(l.limits.CooldownBetweenSpins)
			return domain.Eligibility{
				Eligible:            false,
				Reason:              domain.ReasonCooldown,
				CooldownRemaining:   l.limits.CooldownBetweenSpins - elapsed,
				NextSpinAllowedAt:   &next,
				SpinsRemainingToday: remainingToday,
			}
		}
	}

	if spinsToday >= l.limits.MaxSpinsPerDay {
		next := nextUTCMidnight(now)
		return domain.Eligibility{
			Eligible:            false,
			Reason:              domain.ReasonDailyLimit,
			NextSpinAllowedAt:   &next,
			SpinsRemainingToday: 0,
		}
	}

	if history.SpinsInSession() >= l.limits.MaxSpinsPerSession {
		// Session caps never lift, so there is no next allowed time
		return domain.Eligibility{
			Eligible:            false,
			Reason:              domain.ReasonSessionLimit,
			SpinsRemainingToday: remainingToday,
		}
	}

	return domain.Eligibility{
		Eligible:            true,
		SpinsRemainingToday: remainingToday,
	}
}

// nextUTCMidnight returns the start of the next UTC calendar day
func nextUTCMidnight(now time.Time) time.Time {
	t := now.UTC()
	return time.Date(t.Year(), t.Month(), t.Day()+1, 0, 0, 0, 0, time.UTC)
}

// RateLimitError carries the full eligibility verdict so handlers can tell
// the client when to retry.
type RateLimitError struct {
	Eligibility domain.Eligibility
}

func (e *RateLimitError) Error() string {
	switch e.Eligibility.Reason {
	case domain.ReasonCooldown:
		return fmt.Sprintf("spin on cooldown: %s remaining", e.Eligibility.CooldownRemaining.Round(time.Second))
	case domain.ReasonDailyLimit:
		return "daily spin limit reached"
	case domain.ReasonSessionLimit:
		return "session spin limit reached"
	default:
		return "spin not allowed"
	}
}

// Unwrap maps the verdict onto the matching sentinel so errors.Is works
func (e *RateLimitError) Unwrap() error {
	switch e.Eligibility.Reason {
	case domain.ReasonCooldown:
		return domain.ErrOnCooldown
	case domain.ReasonDailyLimit:
		return domain.ErrDailyLimitReached
	case domain.ReasonSessionLimit:
		return domain.ErrSessionLimitReached
	default:
		return domain.ErrInvalidRequest
	}
}
