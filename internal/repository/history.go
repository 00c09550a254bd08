package repository

import (
	"context"
	"time"

	"github.com/promokit/wheel-service/internal/domain"
)

// History defines the interface for spin award persistence
type History interface {
	// LoadHistory returns the full spin history for a session, newest last.
	// A session with no spins yields an empty history, not an error.
	LoadHistory(ctx context.Context, sessionID string) (*domain.SpinHistory, error)

	// AppendAward stores a freshly produced award outside any lock. Used
	// only by tooling; the spin path goes through WithSessionLock.
	AppendAward(ctx context.Context, award *domain.Award) error

	// FindAwardByCode returns the award carrying the given discount code,
	// or domain.ErrAwardNotFound.
	FindAwardByCode(ctx context.Context, code string) (*domain.Award, error)

	// WithSessionLock runs fn while holding an exclusive lock on the
	// session. Concurrent calls for the same session serialize; different
	// sessions do not contend. The transaction commits iff fn returns nil.
	WithSessionLock(ctx context.Context, sessionID string, fn func(ctx context.Context, tx HistoryTx) error) error

	// WithAwardLock runs fn with the award for code loaded and row-locked,
	// so redemption state cannot change underneath fn. The transaction
	// commits iff fn returns nil.
	WithAwardLock(ctx context.Context, code string, fn func(ctx context.Context, tx HistoryTx, award *domain.Award) error) error

	// PurgeExpired deletes unredeemed awards that expired before the given
	// cutoff and returns the number removed. Redeemed awards are kept for
	// bookkeeping.
	PurgeExpired(ctx context.Context, before time.Time) (int64, error)
}

// HistoryTx defines the operations available inside a History lock
type HistoryTx interface {
	LoadHistory(ctx context.Context, sessionID string) (*domain.SpinHistory, error)
	AppendAward(ctx context.Context, award *domain.Award) error
	UpdateAward(ctx context.Context, award *domain.Award) error
}
