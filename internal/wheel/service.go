package wheel

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/promokit/wheel-service/internal/config"
	"github.com/promokit/wheel-service/internal/discountcode"
	"github.com/promokit/wheel-service/internal/domain"
	"github.com/promokit/wheel-service/internal/event"
	"github.com/promokit/wheel-service/internal/logger"
	"github.com/promokit/wheel-service/internal/repository"
)

// Publisher delivers wheel lifecycle events to downstream consumers
// without blocking the request path.
type Publisher interface {
	PublishWithRetry(ctx context.Context, e event.Event)
}

// SpinRequest carries the client-supplied inputs for one spin
type SpinRequest struct {
	SessionID string
	UserID    string
	UserIP    string
	UserAgent string
	Metadata  map[string]string
}

// ClientSection is one wheel slice as rendered by the frontend. The draw
// probabilities deliberately stay server-side.
type ClientSection struct {
	Section         domain.Section `json:"section"`
	Label           string         `json:"label"`
	DiscountPercent int            `json:"discount_percent"`
	Color           string         `json:"color"`
	TextColor       string         `json:"text_color"`
}

// ClientConfig is the wheel description served to the frontend so it can
// render sections and pace its retry behavior.
type ClientConfig struct {
	Enabled              bool            `json:"enabled"`
	Sections             []ClientSection `json:"sections"`
	MaxSpinsPerSession   int             `json:"max_spins_per_session"`
	MaxSpinsPerDay       int             `json:"max_spins_per_day"`
	CooldownSeconds      int             `json:"cooldown_seconds"`
	AwardValiditySeconds int             `json:"award_validity_seconds"`
}

// Service defines the interface for wheel operations
type Service interface {
	// Spin runs one full spin for the session: eligibility, weighted draw,
	// award creation, persistence.
	Spin(ctx context.Context, req SpinRequest) (*domain.SpinResult, error)

	// Redeem consumes a winning discount code exactly once.
	Redeem(ctx context.Context, code string) (*domain.Award, error)

	// GetAwardByCode returns the award behind a code without changing it.
	GetAwardByCode(ctx context.Context, code string) (*domain.Award, error)

	// ValidateCode structurally validates a code without touching storage.
	ValidateCode(code string) discountcode.ValidationResult

	// ClientConfig returns the wheel layout and limits for the frontend.
	ClientConfig() ClientConfig
}

type service struct {
	repo      repository.History
	selector  *Selector
	limiter   *Limiter
	clock     Clock
	rng       Random
	cfg       config.WheelConfig
	publisher Publisher
	codeCache *expirable.LRU[string, *domain.Award]
}

// NewService creates a new wheel service
func NewService(repo repository.History, selector *Selector, cfg config.WheelConfig, clock Clock, rng Random, publisher Publisher) Service {
	limits := domain.SpinLimits{
		MaxSpinsPerSession:   cfg.MaxSpinsPerSession,
		MaxSpinsPerDay:       cfg.MaxSpinsPerDay,
		CooldownBetweenSpins: cfg.CooldownBetweenSpins,
	}

	return &service{
		repo:      repo,
		selector:  selector,
		limiter:   NewLimiter(limits),
		clock:     clock,
		rng:       rng,
		cfg:       cfg,
		publisher: publisher,
		codeCache: expirable.NewLRU[string, *domain.Award](codeCacheSize, nil, cfg.AwardValidity),
	}
}

// Spin processes one wheel spin for the given session
func (s *service) Spin(ctx context.Context, req SpinRequest) (*domain.SpinResult, error) {
	log := logger.FromContext(ctx)

	req.SessionID = strings.TrimSpace(req.SessionID)
	if err := validateSpinRequest(req); err != nil {
		return nil, err
	}

	if !s.cfg.Enabled {
		return nil, domain.ErrWheelDisabled
	}

	now := s.clock.Now()

	// Cheap unlocked check first so throttled sessions never pay for a lock
	history, err := s.repo.LoadHistory(ctx, req.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load spin history: %w", err)
	}
	if elig := s.limiter.CheckEligibility(history, now); !elig.Eligible {
		s.publisher.PublishWithRetry(ctx, event.NewSpinRejectedEvent(req.SessionID, string(elig.Reason)))
		return nil, &RateLimitError{Eligibility: elig}
	}

	var result *domain.SpinResult

	err = s.repo.WithSessionLock(ctx, req.SessionID, func(ctx context.Context, tx repository.HistoryTx) error {
		// Recheck under the lock - a concurrent spin may have landed since
		locked, err := tx.LoadHistory(ctx, req.SessionID)
		if err != nil {
			return fmt.Errorf("failed to reload spin history: %w", err)
		}
		if elig := s.limiter.CheckEligibility(locked, now); !elig.Eligible {
			return &RateLimitError{Eligibility: elig}
		}

		award, err := s.produceAward(req, now)
		if err != nil {
			return err
		}

		if err := tx.AppendAward(ctx, award); err != nil {
			return fmt.Errorf("failed to store award: %w", err)
		}

		locked.Awards = append(locked.Awards, award)
		result = s.buildResult(award, locked, now)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Award.IsWinning() {
		s.codeCache.Add(result.Award.Code, result.Award)
	}

	award := result.Award
	s.publisher.PublishWithRetry(ctx, event.NewAwardIssuedEvent(
		award.ID.String(),
		award.SessionID,
		string(award.Section),
		award.Label,
		award.Discount.Value(),
		award.Code,
		award.ExpiresAt,
	))

	log.Info("Wheel spin completed",
		"session_id", req.SessionID,
		"section", result.Award.Section,
		"winning", result.Award.IsWinning(),
		"spins_remaining_today", result.SpinsRemainingToday)

	return result, nil
}

// produceAward draws the outcome and assembles the award record
func (s *service) produceAward(req SpinRequest, now time.Time) (*domain.Award, error) {
	outcome := s.selector.Draw(s.rng)

	code := ""
	if outcome.IsWinning() {
		var err error
		code, err = discountcode.Encode(outcome.DiscountPercent, s.rng.IntBetween)
		if err != nil {
			return nil, fmt.Errorf("failed to generate discount code: %w", err)
		}
	}

	award, err := domain.NewAward(domain.NewAwardParams{
		SessionID:      req.SessionID,
		Outcome:        outcome,
		Code:           code,
		SpinAngle:      s.selector.TargetAngle(outcome, s.rng),
		SpinDurationMs: s.selector.SpinDuration(s.rng),
		UserID:         req.UserID,
		UserIP:         req.UserIP,
		UserAgent:      req.UserAgent,
		Metadata:       req.Metadata,
		CreatedAt:      now,
		ExpiresAt:      now.Add(s.cfg.AwardValidity),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build award: %w", err)
	}
	return award, nil
}

// buildResult derives the post-spin pacing hints from the updated history
func (s *service) buildResult(award *domain.Award, history *domain.SpinHistory, now time.Time) *domain.SpinResult {
	limits := s.limiter.Limits()

	spinsToday := history.SpinsOnDay(now)
	remainingToday := limits.MaxSpinsPerDay - spinsToday
	if remainingToday < 0 {
		remainingToday = 0
	}

	sessionOpen := history.SpinsInSession() < limits.MaxSpinsPerSession
	canSpinAgain := sessionOpen && remainingToday > 0

	result := &domain.SpinResult{
		Award:               award,
		CanSpinAgain:        canSpinAgain,
		SpinsRemainingToday: remainingToday,
	}
	switch {
	case canSpinAgain:
		next := now.Add(limits.CooldownBetweenSpins)
		result.NextSpinAllowedAt = &next
	case sessionOpen:
		// Daily cap hit; it lifts at the UTC day boundary. Exhausted
		// sessions get no next time because that cap never resets.
		next := nextUTCMidnight(now)
		result.NextSpinAllowedAt = &next
	}
	return result
}

// Redeem marks the award behind code as redeemed, exactly once
func (s *service) Redeem(ctx context.Context, code string) (*domain.Award, error) {
	log := logger.FromContext(ctx)

	if _, err := discountcode.Decode(code); err != nil {
		return nil, err
	}

	var redeemed *domain.Award
	err := s.repo.WithAwardLock(ctx, code, func(ctx context.Context, tx repository.HistoryTx, award *domain.Award) error {
		if err := award.MarkRedeemed(s.clock.Now()); err != nil {
			return err
		}
		if err := tx.UpdateAward(ctx, award); err != nil {
			return fmt.Errorf("failed to persist redemption: %w", err)
		}
		redeemed = award
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Drop the stale cached copy; the next lookup reloads the redeemed row
	s.codeCache.Remove(code)

	s.publisher.PublishWithRetry(ctx, event.NewAwardRedeemedEvent(
		redeemed.ID.String(),
		redeemed.SessionID,
		string(redeemed.Section),
		redeemed.Discount.Value(),
		redeemed.Code,
	))

	log.Info("Discount code redeemed",
		"session_id", redeemed.SessionID,
		"section", redeemed.Section,
		"discount", redeemed.Discount.String())

	return redeemed, nil
}

// GetAwardByCode returns the award behind a code, serving repeat lookups
// from the cache
func (s *service) GetAwardByCode(ctx context.Context, code string) (*domain.Award, error) {
	if _, err := discountcode.Decode(code); err != nil {
		return nil, err
	}

	if award, ok := s.codeCache.Get(code); ok {
		return award, nil
	}

	award, err := s.repo.FindAwardByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	s.codeCache.Add(code, award)
	return award, nil
}

// ValidateCode structurally validates a presented code
func (s *service) ValidateCode(code string) discountcode.ValidationResult {
	return discountcode.Validate(code)
}

// ClientConfig returns the wheel layout and pacing limits
func (s *service) ClientConfig() ClientConfig {
	outcomes := s.selector.Outcomes()
	sections := make([]ClientSection, 0, len(outcomes))
	for _, o := range outcomes {
		sections = append(sections, ClientSection{
			Section:         o.Section,
			Label:           o.Label,
			DiscountPercent: o.DiscountPercent,
			Color:           o.Color,
			TextColor:       o.TextColor,
		})
	}

	return ClientConfig{
		Enabled:              s.cfg.Enabled,
		Sections:             sections,
		MaxSpinsPerSession:   s.cfg.MaxSpinsPerSession,
		MaxSpinsPerDay:       s.cfg.MaxSpinsPerDay,
		CooldownSeconds:      int(s.cfg.CooldownBetweenSpins.Seconds()),
		AwardValiditySeconds: int(s.cfg.AwardValidity.Seconds()),
	}
}

// validateSpinRequest checks the client-supplied fields before any storage
// work happens
func validateSpinRequest(req SpinRequest) error {
	if req.SessionID == "" {
		return domain.ErrSessionIDMissing
	}
	if len(req.SessionID) > MaxSessionIDLength {
		return fmt.Errorf("%w: %d characters, max %d", domain.ErrSessionIDTooLong, len(req.SessionID), MaxSessionIDLength)
	}
	if req.UserIP != "" {
		// IPv4 only; To4 rejects IPv6 literals that ParseIP accepts
		if ip := net.ParseIP(req.UserIP); ip == nil || ip.To4() == nil {
			return fmt.Errorf("%w: %q", domain.ErrInvalidUserIP, req.UserIP)
		}
	}
	return nil
}
