package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Validation errors
	ErrMsgInvalidRequest   = "invalid request"
	ErrMsgSessionIDMissing = "session id is required"
	ErrMsgSessionIDTooLong = "session id exceeds maximum length"
	ErrMsgInvalidUserIP    = "user ip is not a valid IPv4 address"
	ErrMsgInvalidDiscount  = "invalid discount percentage"
	ErrMsgInvalidSpinAngle = "spin angle out of range"
	ErrMsgInvalidDuration  = "spin duration out of range"

	// Rate-limit errors
	ErrMsgOnCooldown          = "spin is on cooldown"
	ErrMsgDailyLimitReached   = "daily spin limit reached"
	ErrMsgSessionLimitReached = "session spin limit reached"

	// Wheel availability
	ErrMsgWheelDisabled = "wheel is disabled"

	// Award/redemption errors
	ErrMsgAwardNotFound       = "award not found"
	ErrMsgAwardExpired        = "award has expired"
	ErrMsgAwardAlreadyRedeemed = "award already redeemed"
	ErrMsgAwardNotWinning     = "award is not a winning spin"
	ErrMsgCodeMalformed       = "discount code is malformed"

	// Configuration errors
	ErrMsgInvalidOutcomeTable = "invalid outcome table"

	// Database/System errors
	ErrMsgDatabaseError = "database error"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Validation errors - caller bug, not retryable without fixing input
	ErrInvalidRequest   = errors.New(ErrMsgInvalidRequest)
	ErrSessionIDMissing = errors.New(ErrMsgSessionIDMissing)
	ErrSessionIDTooLong = errors.New(ErrMsgSessionIDTooLong)
	ErrInvalidUserIP    = errors.New(ErrMsgInvalidUserIP)
	ErrInvalidDiscount  = errors.New(ErrMsgInvalidDiscount)
	ErrInvalidSpinAngle = errors.New(ErrMsgInvalidSpinAngle)
	ErrInvalidDuration  = errors.New(ErrMsgInvalidDuration)

	// Rate-limit errors - expected steady-state control flow, never logged as
	// system errors
	ErrOnCooldown          = errors.New(ErrMsgOnCooldown)
	ErrDailyLimitReached   = errors.New(ErrMsgDailyLimitReached)
	ErrSessionLimitReached = errors.New(ErrMsgSessionLimitReached)

	// Wheel availability
	ErrWheelDisabled = errors.New(ErrMsgWheelDisabled)

	// Award/redemption errors
	ErrAwardNotFound        = errors.New(ErrMsgAwardNotFound)
	ErrAwardExpired         = errors.New(ErrMsgAwardExpired)
	ErrAwardAlreadyRedeemed = errors.New(ErrMsgAwardAlreadyRedeemed)
	ErrAwardNotWinning      = errors.New(ErrMsgAwardNotWinning)
	ErrCodeMalformed        = errors.New(ErrMsgCodeMalformed)

	// Configuration errors - fatal at startup
	ErrInvalidOutcomeTable = errors.New(ErrMsgInvalidOutcomeTable)

	// Database/System errors
	ErrDatabaseError = errors.New(ErrMsgDatabaseError)
)

// IsRateLimit reports whether err is one of the spin-limiting rejections.
// These are expected control flow and must stay distinguishable from
// infrastructure failures.
func IsRateLimit(err error) bool {
	return errors.Is(err, ErrOnCooldown) ||
		errors.Is(err, ErrDailyLimitReached) ||
		errors.Is(err, ErrSessionLimitReached)
}
