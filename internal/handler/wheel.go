package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/promokit/wheel-service/internal/domain"
	"github.com/promokit/wheel-service/internal/logger"
	"github.com/promokit/wheel-service/internal/metrics"
	"github.com/promokit/wheel-service/internal/wheel"
)

// WheelHandler handles wheel-related HTTP requests
type WheelHandler struct {
	service wheel.Service
}

// NewWheelHandler creates a new wheel handler
func NewWheelHandler(service wheel.Service) *WheelHandler {
	return &WheelHandler{service: service}
}

// SpinRequest represents a request to spin the wheel
type SpinRequest struct {
	SessionID string            `json:"session_id" validate:"required,max=100"`
	UserID    string            `json:"user_id,omitempty" validate:"omitempty,max=100"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// SpinResponse is the API shape of a completed spin
type SpinResponse struct {
	Award               *domain.Award `json:"award"`
	CanSpinAgain        bool          `json:"can_spin_again"`
	NextSpinAllowedAt   *time.Time    `json:"next_spin_allowed_at,omitempty"`
	SpinsRemainingToday int           `json:"spins_remaining_today"`
}

// RedeemRequest represents a request to redeem a discount code
type RedeemRequest struct {
	Code string `json:"code" validate:"required,max=32"`
}

// ValidateCodeRequest represents a structural code validation request
type ValidateCodeRequest struct {
	Code string `json:"code" validate:"required,max=64"`
}

// HandleSpin processes a wheel spin request
// @Summary Spin the discount wheel
// @Description Runs one spin for the session and returns the award with animation parameters
// @Tags wheel
// @Accept json
// @Produce json
// @Param request body SpinRequest true "Spin request"
// @Success 200 {object} SpinResponse
// @Failure 400 {object} ValidationErrorResponse
// @Failure 429 {object} RateLimitResponse
// @Router /wheel/spin [post]
func (h *WheelHandler) HandleSpin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	var req SpinRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Spin"); err != nil {
		return
	}

	result, err := h.service.Spin(ctx, wheel.SpinRequest{
		SessionID: req.SessionID,
		UserID:    req.UserID,
		UserIP:    ClientIP(r),
		UserAgent: r.UserAgent(),
		Metadata:  req.Metadata,
	})
	if err != nil {
		var rateErr *wheel.RateLimitError
		if errors.As(err, &rateErr) {
			metrics.SpinsRejected.WithLabelValues(string(rateErr.Eligibility.Reason)).Inc()
			respondRateLimit(w, rateErr)
			return
		}

		log.Error("Failed to process spin", "error", err, "session_id", req.SessionID)
		status, message := mapServiceErrorToUserMessage(err)
		respondError(w, status, message)
		return
	}

	metrics.SpinsTotal.WithLabelValues(string(result.Award.Section)).Inc()

	respondJSON(w, http.StatusOK, SpinResponse{
		Award:               result.Award,
		CanSpinAgain:        result.CanSpinAgain,
		NextSpinAllowedAt:   result.NextSpinAllowedAt,
		SpinsRemainingToday: result.SpinsRemainingToday,
	})
}

// HandleRedeem consumes a winning discount code
// @Summary Redeem a discount code
// @Description Marks the code as redeemed; each code redeems exactly once
// @Tags wheel
// @Accept json
// @Produce json
// @Param request body RedeemRequest true "Redeem request"
// @Success 200 {object} domain.Award
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 410 {object} ErrorResponse
// @Router /wheel/redeem [post]
func (h *WheelHandler) HandleRedeem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	var req RedeemRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Redeem"); err != nil {
		return
	}

	award, err := h.service.Redeem(ctx, req.Code)
	if err != nil {
		log.Warn("Redemption rejected", "error", err)
		status, message := mapServiceErrorToUserMessage(err)
		metrics.RedemptionsFailed.WithLabelValues(redemptionFailureReason(err)).Inc()
		respondError(w, status, message)
		return
	}

	metrics.Redemptions.Inc()
	respondJSON(w, http.StatusOK, award)
}

// HandleValidateCode structurally validates a code without consuming it
// @Summary Validate a discount code
// @Description Checks code structure only; does not touch redemption state
// @Tags wheel
// @Accept json
// @Produce json
// @Param request body ValidateCodeRequest true "Validate request"
// @Success 200 {object} discountcode.ValidationResult
// @Router /wheel/validate-code [post]
func (h *WheelHandler) HandleValidateCode(w http.ResponseWriter, r *http.Request) {
	var req ValidateCodeRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Validate code"); err != nil {
		return
	}

	result := h.service.ValidateCode(req.Code)
	metrics.CodeValidations.WithLabelValues(result.Reason).Inc()

	respondJSON(w, http.StatusOK, result)
}

// HandleGetAward returns the award behind a code without changing it
// @Summary Look up an award by code
// @Tags wheel
// @Produce json
// @Param code query string true "Discount code"
// @Success 200 {object} domain.Award
// @Failure 404 {object} ErrorResponse
// @Router /wheel/award [get]
func (h *WheelHandler) HandleGetAward(w http.ResponseWriter, r *http.Request) {
	code, ok := GetQueryParam(r, w, "code")
	if !ok {
		return
	}

	award, err := h.service.GetAwardByCode(r.Context(), code)
	if err != nil {
		status, message := mapServiceErrorToUserMessage(err)
		respondError(w, status, message)
		return
	}

	respondJSON(w, http.StatusOK, award)
}

// HandleGetConfig returns the wheel layout and limits for the frontend
// @Summary Wheel configuration
// @Description Sections, probabilities are server-side; clients receive layout and pacing limits
// @Tags wheel
// @Produce json
// @Success 200 {object} wheel.ClientConfig
// @Router /wheel/config [get]
func (h *WheelHandler) HandleGetConfig(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.service.ClientConfig())
}

func redemptionFailureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrCodeMalformed):
		return "malformed"
	case errors.Is(err, domain.ErrAwardNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrAwardExpired):
		return "expired"
	case errors.Is(err, domain.ErrAwardAlreadyRedeemed):
		return "already_redeemed"
	case errors.Is(err, domain.ErrAwardNotWinning):
		return "not_winning"
	default:
		return "internal"
	}
}
