package postgres

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/promokit/wheel-service/internal/domain"
	"github.com/promokit/wheel-service/internal/repository"
)

// HistoryRepository implements the spin history repository for PostgreSQL
type HistoryRepository struct {
	db *pgxpool.Pool
}

// NewHistoryRepository creates a new HistoryRepository
func NewHistoryRepository(db *pgxpool.Pool) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx so the read and
// write helpers work inside and outside transactions
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// LoadHistory returns all awards for a session in creation order
func (r *HistoryRepository) LoadHistory(ctx context.Context, sessionID string) (*domain.SpinHistory, error) {
	return loadHistory(ctx, r.db, sessionID)
}

// AppendAward stores an award outside any session lock
func (r *HistoryRepository) AppendAward(ctx context.Context, award *domain.Award) error {
	return insertAward(ctx, r.db, award)
}

// FindAwardByCode returns the award carrying the given discount code
func (r *HistoryRepository) FindAwardByCode(ctx context.Context, code string) (*domain.Award, error) {
	award, err := scanAward(r.db.QueryRow(ctx, SQLSelectAwardByCode, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAwardNotFound
		}
		return nil, err
	}
	return award, nil
}

// WithSessionLock runs fn inside a transaction holding an advisory lock on
// the session. Advisory locks work even before the session has any rows,
// unlike SELECT FOR UPDATE.
func (r *HistoryRepository) WithSessionLock(ctx context.Context, sessionID string, fn func(ctx context.Context, tx repository.HistoryTx) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx, SQLAdvisoryLock, hashSessionKey(sessionID)); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToAcquireLock, err)
	}

	if err := fn(ctx, &historyTx{tx: tx}); err != nil {
		return err
	}

	// Commit releases the advisory lock automatically
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

// WithAwardLock runs fn with the award row locked so its redemption state
// cannot change concurrently
func (r *HistoryRepository) WithAwardLock(ctx context.Context, code string, fn func(ctx context.Context, tx repository.HistoryTx, award *domain.Award) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	award, err := scanAward(tx.QueryRow(ctx, SQLSelectAwardByCodeForUpdate, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrAwardNotFound
		}
		return err
	}

	if err := fn(ctx, &historyTx{tx: tx}, award); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

// historyTx exposes the in-transaction operations
type historyTx struct {
	tx pgx.Tx
}

func (t *historyTx) LoadHistory(ctx context.Context, sessionID string) (*domain.SpinHistory, error) {
	return loadHistory(ctx, t.tx, sessionID)
}

func (t *historyTx) AppendAward(ctx context.Context, award *domain.Award) error {
	return insertAward(ctx, t.tx, award)
}

func (t *historyTx) UpdateAward(ctx context.Context, award *domain.Award) error {
	tag, err := t.tx.Exec(ctx, SQLUpdateAwardRedemption, award.ID, award.IsRedeemed, award.RedeemedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateAward, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAwardNotFound
	}
	return nil
}

func loadHistory(ctx context.Context, q querier, sessionID string) (*domain.SpinHistory, error) {
	rows, err := q.Query(ctx, SQLSelectHistory, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToLoadHistory, err)
	}
	defer rows.Close()

	history := &domain.SpinHistory{SessionID: sessionID}
	for rows.Next() {
		award, err := scanAward(rows)
		if err != nil {
			return nil, err
		}
		history.Awards = append(history.Awards, award)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToLoadHistory, err)
	}
	return history, nil
}

func insertAward(ctx context.Context, q querier, award *domain.Award) error {
	var code *string
	if award.Code != "" {
		code = &award.Code
	}

	_, err := q.Exec(ctx, SQLInsertAward,
		award.ID,
		award.SessionID,
		award.Section,
		award.Label,
		award.Discount.Value(),
		code,
		award.SpinAngle,
		award.SpinDurationMs,
		nullable(award.UserID),
		nullable(award.UserIP),
		nullable(award.UserAgent),
		award.Metadata,
		award.CreatedAt,
		award.ExpiresAt,
		award.IsRedeemed,
		award.RedeemedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertAward, err)
	}
	return nil
}

// scanAward reads one award row; callers translate pgx.ErrNoRows themselves
func scanAward(row pgx.Row) (*domain.Award, error) {
	var (
		award      domain.Award
		id         uuid.UUID
		percentage float64
		code       *string
		userID     *string
		userIP     *string
		userAgent  *string
		redeemedAt *time.Time
	)

	err := row.Scan(
		&id,
		&award.SessionID,
		&award.Section,
		&award.Label,
		&percentage,
		&code,
		&award.SpinAngle,
		&award.SpinDurationMs,
		&userID,
		&userIP,
		&userAgent,
		&award.Metadata,
		&award.CreatedAt,
		&award.ExpiresAt,
		&award.IsRedeemed,
		&redeemedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanAward, err)
	}

	award.ID = id
	award.Discount, err = domain.NewDiscountPercentage(percentage)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanAward, err)
	}
	award.Code = deref(code)
	award.UserID = deref(userID)
	award.UserIP = deref(userIP)
	award.UserAgent = deref(userAgent)
	award.RedeemedAt = redeemedAt

	return &award, nil
}

// PurgeExpired removes unredeemed awards that expired before the cutoff
func (r *HistoryRepository) PurgeExpired(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, SQLDeleteExpiredAwards, before)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToPurgeAwards, err)
	}
	return tag.RowsAffected(), nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// hashSessionKey creates a consistent positive int64 from the session id
// for advisory locking
func hashSessionKey(sessionID string) int64 {
	h := sha256.Sum256([]byte("wheel:" + sessionID))
	return int64(binary.BigEndian.Uint64(h[:8]) & HashMaskPositiveInt64)
}
