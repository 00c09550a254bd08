package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// Advisory Lock Constants
const (
	// HashMaskPositiveInt64 is the bit mask to ensure advisory lock keys are positive int64 values
	HashMaskPositiveInt64 = 0x7FFFFFFFFFFFFFFF
)

// SQL Statements
const (
	// SQLAdvisoryLock acquires a PostgreSQL advisory transaction lock
	SQLAdvisoryLock = "SELECT pg_advisory_xact_lock($1)"

	awardColumns = `award_id, session_id, section, label, discount_percentage, discount_code,
		spin_angle, spin_duration_ms, user_id, user_ip, user_agent, metadata,
		created_at, expires_at, is_redeemed, redeemed_at`

	SQLSelectHistory = `SELECT ` + awardColumns + `
		FROM wheel_awards
		WHERE session_id = $1
		ORDER BY created_at ASC, award_id ASC`

	SQLSelectAwardByCode = `SELECT ` + awardColumns + `
		FROM wheel_awards
		WHERE discount_code = $1`

	SQLSelectAwardByCodeForUpdate = SQLSelectAwardByCode + ` FOR UPDATE`

	SQLInsertAward = `INSERT INTO wheel_awards (` + awardColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	SQLUpdateAwardRedemption = `UPDATE wheel_awards
		SET is_redeemed = $2, redeemed_at = $3
		WHERE award_id = $1`

	SQLDeleteExpiredAwards = `DELETE FROM wheel_awards
		WHERE expires_at < $1 AND NOT is_redeemed`
)

// Error Messages
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
	ErrMsgFailedToAcquireLock       = "failed to acquire session lock"
	ErrMsgFailedToLoadHistory       = "failed to load spin history"
	ErrMsgFailedToInsertAward       = "failed to insert award"
	ErrMsgFailedToUpdateAward       = "failed to update award"
	ErrMsgFailedToScanAward         = "failed to scan award row"
	ErrMsgFailedToPurgeAwards       = "failed to purge expired awards"
)
