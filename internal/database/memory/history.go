// Package memory provides an in-process spin history store. It backs local
// development and demo deployments where running PostgreSQL is not worth
// the setup; state is lost on restart.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/promokit/wheel-service/internal/concurrency"
	"github.com/promokit/wheel-service/internal/domain"
	"github.com/promokit/wheel-service/internal/repository"
)

// HistoryRepository implements the spin history repository in memory
type HistoryRepository struct {
	mu       sync.Mutex
	sessions map[string][]*domain.Award
	byCode   map[string]*domain.Award
	locks    *concurrency.LockManager
}

// NewHistoryRepository creates an empty in-memory HistoryRepository
func NewHistoryRepository() *HistoryRepository {
	return &HistoryRepository{
		sessions: make(map[string][]*domain.Award),
		byCode:   make(map[string]*domain.Award),
		locks:    concurrency.NewLockManager(),
	}
}

// LoadHistory returns all awards for a session in creation order
func (r *HistoryRepository) LoadHistory(_ context.Context, sessionID string) (*domain.SpinHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadLocked(sessionID), nil
}

// AppendAward stores an award outside any session lock
func (r *HistoryRepository) AppendAward(_ context.Context, award *domain.Award) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appendLocked(award)
	return nil
}

// FindAwardByCode returns the award carrying the given discount code
func (r *HistoryRepository) FindAwardByCode(_ context.Context, code string) (*domain.Award, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	award, ok := r.byCode[code]
	if !ok {
		return nil, domain.ErrAwardNotFound
	}
	return clone(award), nil
}

// WithSessionLock serializes fn against other calls for the same session.
// Distinct sessions proceed in parallel, mirroring the per-session advisory
// locks of the PostgreSQL backend.
func (r *HistoryRepository) WithSessionLock(ctx context.Context, sessionID string, fn func(ctx context.Context, tx repository.HistoryTx) error) error {
	lock := r.locks.GetLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	return fn(ctx, &historyTx{store: r})
}

// WithAwardLock runs fn with exclusive access to the award behind code
func (r *HistoryRepository) WithAwardLock(ctx context.Context, code string, fn func(ctx context.Context, tx repository.HistoryTx, award *domain.Award) error) error {
	r.mu.Lock()
	stored, ok := r.byCode[code]
	if !ok {
		r.mu.Unlock()
		return domain.ErrAwardNotFound
	}
	sessionID := stored.SessionID
	r.mu.Unlock()

	lock := r.locks.GetLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	award, err := r.FindAwardByCode(ctx, code)
	if err != nil {
		return err
	}
	return fn(ctx, &historyTx{store: r}, award)
}

// PurgeExpired removes unredeemed awards that expired before the cutoff
func (r *HistoryRepository) PurgeExpired(_ context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed int64
	for sessionID, awards := range r.sessions {
		kept := awards[:0]
		for _, award := range awards {
			if !award.IsRedeemed && award.ExpiresAt.Before(before) {
				if award.Code != "" {
					delete(r.byCode, award.Code)
				}
				removed++
				continue
			}
			kept = append(kept, award)
		}
		if len(kept) == 0 {
			delete(r.sessions, sessionID)
		} else {
			r.sessions[sessionID] = kept
		}
	}
	return removed, nil
}

func (r *HistoryRepository) loadLocked(sessionID string) *domain.SpinHistory {
	history := &domain.SpinHistory{SessionID: sessionID}
	for _, award := range r.sessions[sessionID] {
		history.Awards = append(history.Awards, clone(award))
	}
	return history
}

func (r *HistoryRepository) appendLocked(award *domain.Award) {
	stored := clone(award)
	r.sessions[stored.SessionID] = append(r.sessions[stored.SessionID], stored)
	if stored.Code != "" {
		r.byCode[stored.Code] = stored
	}
}

// historyTx performs the in-lock operations. Writes apply immediately;
// there is no rollback, which the spin path tolerates because it validates
// before its single write.
type historyTx struct {
	store *HistoryRepository
}

func (t *historyTx) LoadHistory(_ context.Context, sessionID string) (*domain.SpinHistory, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	return t.store.loadLocked(sessionID), nil
}

func (t *historyTx) AppendAward(_ context.Context, award *domain.Award) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	t.store.appendLocked(award)
	return nil
}

func (t *historyTx) UpdateAward(_ context.Context, award *domain.Award) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	stored := clone(award)
	for i, existing := range t.store.sessions[award.SessionID] {
		if existing.ID == award.ID {
			t.store.sessions[award.SessionID][i] = stored
			if stored.Code != "" {
				t.store.byCode[stored.Code] = stored
			}
			return nil
		}
	}
	return domain.ErrAwardNotFound
}

func clone(a *domain.Award) *domain.Award {
	cp := *a
	if a.RedeemedAt != nil {
		t := *a.RedeemedAt
		cp.RedeemedAt = &t
	}
	if a.Metadata != nil {
		cp.Metadata = make(map[string]string, len(a.Metadata))
		for k, v := range a.Metadata {
			cp.Metadata[k] = v
		}
	}
	return &cp
}
