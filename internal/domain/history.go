package domain

import "time"

// SpinHistory is one caller's past awards, ordered oldest to newest. The
// limiter only reads it; appending happens through the store after a
// successful spin.
type SpinHistory struct {
	SessionID string
	Awards    []*Award
}

// LastSpinAt returns the creation time of the most recent spin, or nil for
// an empty history.
func (h *SpinHistory) LastSpinAt() *time.Time {
	if len(h.Awards) == 0 {
		return nil
	}
	last := h.Awards[len(h.Awards)-1].CreatedAt
	return &last
}

// SpinsOnDay counts spins whose UTC calendar date matches the given time's.
func (h *SpinHistory) SpinsOnDay(day time.Time) int {
	y, m, d := day.UTC().Date()
	count := 0
	for _, a := range h.Awards {
		ay, am, ad := a.CreatedAt.UTC().Date()
		if ay == y && am == m && ad == d {
			count++
		}
	}
	return count
}

// SpinsInSession counts spins recorded for this session.
func (h *SpinHistory) SpinsInSession() int {
	return len(h.Awards)
}

// SpinLimits is the process-wide spin-limiting configuration.
type SpinLimits struct {
	MaxSpinsPerSession   int
	MaxSpinsPerDay       int
	CooldownBetweenSpins time.Duration
}

// LimitReason identifies which check rejected a spin.
type LimitReason string

const (
	ReasonCooldown     LimitReason = "cooldown"
	ReasonDailyLimit   LimitReason = "daily_limit"
	ReasonSessionLimit LimitReason = "session_limit"
)

// Eligibility is the outcome of running the spin-limiting checks.
type Eligibility struct {
	Eligible            bool
	Reason              LimitReason // set when not eligible
	CooldownRemaining   time.Duration
	NextSpinAllowedAt   *time.Time // nil when blocked only by the session cap
	SpinsRemainingToday int
}

// SpinResult is what a successful spin returns to the caller: the award plus
// the post-spin eligibility so the client can gate its UI without another
// round trip.
type SpinResult struct {
	Award               *Award
	CanSpinAgain        bool
	NextSpinAllowedAt   *time.Time
	SpinsRemainingToday int
}
