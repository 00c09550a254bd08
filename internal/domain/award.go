package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Spin presentation ranges. The stored angle includes the extra animation
// rotations, so its ceiling is well above a single revolution.
const (
	MinSpinAngle      = 0.0
	MaxSpinAngle      = 3600.0
	MinSpinDurationMs = 1000
	MaxSpinDurationMs = 10000
)

// Award is the persisted result of one wheel spin. It is created once by the
// spin orchestrator and mutated only by redemption; records are never
// deleted, they expire logically.
type Award struct {
	ID              uuid.UUID          `json:"id"`
	SessionID       string             `json:"session_id"`
	Section         Section            `json:"section"`
	Label           string             `json:"label"`
	Discount        DiscountPercentage `json:"discount_percentage"`
	Code            string             `json:"discount_code,omitempty"` // empty for no-prize spins
	SpinAngle       float64            `json:"spin_angle"`
	SpinDurationMs  int                `json:"spin_duration"`
	UserID          string             `json:"user_id,omitempty"`
	UserIP          string             `json:"user_ip,omitempty"`
	UserAgent       string             `json:"user_agent,omitempty"`
	Metadata        map[string]string  `json:"metadata,omitempty"`
	CreatedAt       time.Time          `json:"timestamp"`
	ExpiresAt       time.Time          `json:"expires_at"`
	IsRedeemed      bool               `json:"is_redeemed"`
	RedeemedAt      *time.Time         `json:"redeemed_at,omitempty"`
}

// NewAwardParams carries the inputs for constructing an Award.
type NewAwardParams struct {
	SessionID      string
	Outcome        Outcome
	Code           string
	SpinAngle      float64
	SpinDurationMs int
	UserID         string
	UserIP         string
	UserAgent      string
	Metadata       map[string]string
	CreatedAt      time.Time
	ExpiresAt      time.Time
}

// NewAward validates presentation ranges and constructs an Award with a
// freshly generated id.
func NewAward(p NewAwardParams) (*Award, error) {
	if p.SpinAngle < MinSpinAngle || p.SpinAngle > MaxSpinAngle {
		return nil, fmt.Errorf("%w: got %v, want [%v, %v]",
			ErrInvalidSpinAngle, p.SpinAngle, MinSpinAngle, MaxSpinAngle)
	}
	if p.SpinDurationMs < MinSpinDurationMs || p.SpinDurationMs > MaxSpinDurationMs {
		return nil, fmt.Errorf("%w: got %d, want [%d, %d]",
			ErrInvalidDuration, p.SpinDurationMs, MinSpinDurationMs, MaxSpinDurationMs)
	}

	discount, err := NewDiscountPercentage(float64(p.Outcome.DiscountPercent))
	if err != nil {
		return nil, err
	}

	return &Award{
		ID:             uuid.New(),
		SessionID:      p.SessionID,
		Section:        p.Outcome.Section,
		Label:          p.Outcome.Label,
		Discount:       discount,
		Code:           p.Code,
		SpinAngle:      p.SpinAngle,
		SpinDurationMs: p.SpinDurationMs,
		UserID:         p.UserID,
		UserIP:         p.UserIP,
		UserAgent:      p.UserAgent,
		Metadata:       p.Metadata,
		CreatedAt:      p.CreatedAt,
		ExpiresAt:      p.ExpiresAt,
	}, nil
}

// IsWinning reports whether the spin landed on a discount section.
func (a *Award) IsWinning() bool {
	return a.Section != SectionNoPrize && !a.Discount.IsZero()
}

// IsExpired reports whether the award is past its expiry at the given time.
func (a *Award) IsExpired(now time.Time) bool {
	return !now.Before(a.ExpiresAt)
}

// MarkRedeemed transitions the award to redeemed. It fails for no-prize
// outcomes, double redemption, and expired awards, in that order.
func (a *Award) MarkRedeemed(now time.Time) error {
	if !a.IsWinning() {
		return fmt.Errorf("%w: section %s", ErrAwardNotWinning, a.Section)
	}
	if a.IsRedeemed {
		return ErrAwardAlreadyRedeemed
	}
	if a.IsExpired(now) {
		return fmt.Errorf("%w: expired at %s", ErrAwardExpired, a.ExpiresAt.Format(time.RFC3339))
	}

	a.IsRedeemed = true
	redeemedAt := now
	a.RedeemedAt = &redeemedAt
	return nil
}
