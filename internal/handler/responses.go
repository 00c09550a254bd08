package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/promokit/wheel-service/internal/domain"
	"github.com/promokit/wheel-service/internal/wheel"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// RateLimitResponse tells a throttled client when it may spin again
type RateLimitResponse struct {
	Error               string     `json:"error"`
	Reason              string     `json:"reason"`
	RetryAfterSeconds   int        `json:"retry_after_seconds,omitempty"`
	NextSpinAllowedAt   *time.Time `json:"next_spin_allowed_at,omitempty"`
	SpinsRemainingToday int        `json:"spins_remaining_today"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Get a buffer from the pool to reduce allocations
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent, all we can do is log
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondRateLimit sends 429 with the retry guidance the frontend uses to
// pace its UI
func respondRateLimit(w http.ResponseWriter, rateErr *wheel.RateLimitError) {
	elig := rateErr.Eligibility

	resp := RateLimitResponse{
		Error:               rateLimitMessage(elig.Reason),
		Reason:              string(elig.Reason),
		NextSpinAllowedAt:   elig.NextSpinAllowedAt,
		SpinsRemainingToday: elig.SpinsRemainingToday,
	}
	if elig.CooldownRemaining > 0 {
		resp.RetryAfterSeconds = int(elig.CooldownRemaining.Round(time.Second).Seconds())
	}

	respondJSON(w, http.StatusTooManyRequests, resp)
}

func rateLimitMessage(reason domain.LimitReason) string {
	switch reason {
	case domain.ReasonCooldown:
		return ErrMsgCooldownActive
	case domain.ReasonDailyLimit:
		return ErrMsgDailyLimitReached
	case domain.ReasonSessionLimit:
		return ErrMsgSessionLimitReached
	default:
		return ErrMsgTooManyRequestsError
	}
}

// User-facing error messages for service errors
const (
	// Generic messages
	ErrMsgGenericServerError   = "Something went wrong"
	ErrMsgUnknownError         = "Unknown error"
	ErrMsgTooManyRequestsError = "Too many requests. Please try again later."
	ErrMsgWheelDisabledError   = "The discount wheel is currently unavailable"

	// Spin request messages
	ErrMsgSessionMissingError = "Session identifier is required"
	ErrMsgSessionTooLongError = "Session identifier is too long"
	ErrMsgInvalidIPError      = "Invalid client address"

	// Spin limiting messages
	ErrMsgCooldownActive      = "Please wait before spinning again"
	ErrMsgDailyLimitReached   = "Daily spin limit reached. Come back tomorrow"
	ErrMsgSessionLimitReached = "No spins left in this session"

	// Redemption messages
	ErrMsgCodeMalformedError   = "That discount code is not valid"
	ErrMsgAwardNotFoundError   = "Discount code not found"
	ErrMsgAwardExpiredError    = "This discount code has expired"
	ErrMsgAlreadyRedeemedError = "This discount code was already redeemed"
	ErrMsgNotWinningError      = "This spin did not win a discount"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP
// responses. Rate-limit errors are handled separately by respondRateLimit
// since they carry retry metadata.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrSessionIDMissing):
		return http.StatusBadRequest, ErrMsgSessionMissingError
	case errors.Is(err, domain.ErrSessionIDTooLong):
		return http.StatusBadRequest, ErrMsgSessionTooLongError
	case errors.Is(err, domain.ErrInvalidUserIP):
		return http.StatusBadRequest, ErrMsgInvalidIPError
	case errors.Is(err, domain.ErrWheelDisabled):
		return http.StatusServiceUnavailable, ErrMsgWheelDisabledError
	case errors.Is(err, domain.ErrCodeMalformed):
		return http.StatusBadRequest, ErrMsgCodeMalformedError
	case errors.Is(err, domain.ErrAwardNotFound):
		return http.StatusNotFound, ErrMsgAwardNotFoundError
	case errors.Is(err, domain.ErrAwardExpired):
		return http.StatusGone, ErrMsgAwardExpiredError
	case errors.Is(err, domain.ErrAwardAlreadyRedeemed):
		return http.StatusConflict, ErrMsgAlreadyRedeemedError
	case errors.Is(err, domain.ErrAwardNotWinning):
		return http.StatusUnprocessableEntity, ErrMsgNotWinningError
	case errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest, ErrMsgInvalidRequestSummary
	}

	// Storage and other internal failures stay opaque to clients
	return http.StatusInternalServerError, ErrMsgGenericServerError
}
