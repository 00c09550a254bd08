package wheel

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/promokit/wheel-service/internal/domain"
	"github.com/promokit/wheel-service/internal/event"
	"github.com/promokit/wheel-service/internal/repository"
)

// fixedClock is a Clock frozen at a settable instant
type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

func (c *fixedClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// seededRandom backs Random with a deterministic math/rand source
type seededRandom struct {
	r *rand.Rand
}

func newSeededRandom(seed int64) *seededRandom {
	return &seededRandom{r: rand.New(rand.NewSource(seed))}
}

func (s *seededRandom) Float64() float64 {
	return s.r.Float64()
}

func (s *seededRandom) IntBetween(min, max int) int {
	return min + s.r.Intn(max-min+1)
}

// fixedRandom always returns the same float and the minimum integer, which
// pins the drawn section, the rotations, the duration and the code suffix
type fixedRandom struct {
	f float64
}

func (r fixedRandom) Float64() float64 {
	return r.f
}

func (r fixedRandom) IntBetween(min, _ int) int {
	return min
}

// fakeHistory is an in-memory repository.History with error injection.
// Reads hand out clones so service-side mutation cannot leak into the
// store without an explicit UpdateAward.
type fakeHistory struct {
	mu        sync.Mutex
	sessions  map[string][]*domain.Award
	byCode    map[string]*domain.Award
	loadErr   error
	appendErr error
}

func newFakeHistory() *fakeHistory {
	return &fakeHistory{
		sessions: make(map[string][]*domain.Award),
		byCode:   make(map[string]*domain.Award),
	}
}

func cloneAward(a *domain.Award) *domain.Award {
	cp := *a
	if a.RedeemedAt != nil {
		t := *a.RedeemedAt
		cp.RedeemedAt = &t
	}
	return &cp
}

func (f *fakeHistory) LoadHistory(_ context.Context, sessionID string) (*domain.SpinHistory, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	awards := make([]*domain.Award, 0, len(f.sessions[sessionID]))
	for _, a := range f.sessions[sessionID] {
		awards = append(awards, cloneAward(a))
	}
	return &domain.SpinHistory{SessionID: sessionID, Awards: awards}, nil
}

func (f *fakeHistory) AppendAward(_ context.Context, award *domain.Award) error {
	if f.appendErr != nil {
		return f.appendErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	stored := cloneAward(award)
	f.sessions[award.SessionID] = append(f.sessions[award.SessionID], stored)
	if stored.Code != "" {
		f.byCode[stored.Code] = stored
	}
	return nil
}

func (f *fakeHistory) FindAwardByCode(_ context.Context, code string) (*domain.Award, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	award, ok := f.byCode[code]
	if !ok {
		return nil, domain.ErrAwardNotFound
	}
	return cloneAward(award), nil
}

func (f *fakeHistory) WithSessionLock(ctx context.Context, _ string, fn func(ctx context.Context, tx repository.HistoryTx) error) error {
	return fn(ctx, &fakeTx{store: f})
}

func (f *fakeHistory) WithAwardLock(ctx context.Context, code string, fn func(ctx context.Context, tx repository.HistoryTx, award *domain.Award) error) error {
	award, err := f.FindAwardByCode(ctx, code)
	if err != nil {
		return err
	}
	return fn(ctx, &fakeTx{store: f}, award)
}

func (f *fakeHistory) PurgeExpired(_ context.Context, before time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var removed int64
	for sessionID, awards := range f.sessions {
		kept := awards[:0]
		for _, award := range awards {
			if !award.IsRedeemed && award.ExpiresAt.Before(before) {
				delete(f.byCode, award.Code)
				removed++
				continue
			}
			kept = append(kept, award)
		}
		f.sessions[sessionID] = kept
	}
	return removed, nil
}

func (f *fakeHistory) spinCount(sessionID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sessions[sessionID])
}

type fakeTx struct {
	store *fakeHistory
}

func (t *fakeTx) LoadHistory(ctx context.Context, sessionID string) (*domain.SpinHistory, error) {
	return t.store.LoadHistory(ctx, sessionID)
}

func (t *fakeTx) AppendAward(ctx context.Context, award *domain.Award) error {
	return t.store.AppendAward(ctx, award)
}

func (t *fakeTx) UpdateAward(_ context.Context, award *domain.Award) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	stored := cloneAward(award)
	if stored.Code != "" {
		t.store.byCode[stored.Code] = stored
	}
	for i, a := range t.store.sessions[award.SessionID] {
		if a.ID == award.ID {
			t.store.sessions[award.SessionID][i] = stored
			return nil
		}
	}
	return domain.ErrAwardNotFound
}

// noopPublisher discards events; tests that care use capturingPublisher
type noopPublisher struct{}

func (noopPublisher) PublishWithRetry(context.Context, event.Event) {}

// capturingPublisher records published events for assertions
type capturingPublisher struct {
	mu     sync.Mutex
	events []event.Event
}

func (p *capturingPublisher) PublishWithRetry(_ context.Context, e event.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *capturingPublisher) byType(t event.Type) []event.Event {
	p.mu.Lock()
	defer p.mu.Unlock()

	var out []event.Event
	for _, e := range p.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}
