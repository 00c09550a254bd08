package event

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}
	return nil
}

// Common event types
const (
	AwardIssued   Type = "wheel.award.issued"
	AwardRedeemed Type = "wheel.award.redeemed"
	SpinRejected  Type = "wheel.spin.rejected"
)

// Typed event payloads for type safety

// AwardIssuedPayloadV1 is the typed payload for award issuance events
type AwardIssuedPayloadV1 struct {
	AwardID         string  `json:"award_id"`
	SessionID       string  `json:"session_id"`
	Section         string  `json:"section"`
	Label           string  `json:"label"`
	DiscountPercent float64 `json:"discount_percent"`
	DiscountCode    string  `json:"discount_code,omitempty"`
	ExpiresAt       int64   `json:"expires_at"`
	Timestamp       int64   `json:"timestamp"`
}

// AwardRedeemedPayloadV1 is the typed payload for redemption events
type AwardRedeemedPayloadV1 struct {
	AwardID         string  `json:"award_id"`
	SessionID       string  `json:"session_id"`
	Section         string  `json:"section"`
	DiscountPercent float64 `json:"discount_percent"`
	DiscountCode    string  `json:"discount_code"`
	Timestamp       int64   `json:"timestamp"`
}

// SpinRejectedPayloadV1 is the typed payload for throttled spin attempts
type SpinRejectedPayloadV1 struct {
	SessionID string `json:"session_id"`
	Reason    string `json:"reason"`
	Timestamp int64  `json:"timestamp"`
}

// Type-safe event constructors

// NewAwardIssuedEvent creates a new award issued event with type-safe payload
func NewAwardIssuedEvent(awardID, sessionID, section, label string, discountPercent float64, discountCode string, expiresAt time.Time) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    AwardIssued,
		Payload: AwardIssuedPayloadV1{
			AwardID:         awardID,
			SessionID:       sessionID,
			Section:         section,
			Label:           label,
			DiscountPercent: discountPercent,
			DiscountCode:    discountCode,
			ExpiresAt:       expiresAt.Unix(),
			Timestamp:       time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewAwardRedeemedEvent creates a new award redeemed event
func NewAwardRedeemedEvent(awardID, sessionID, section string, discountPercent float64, discountCode string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    AwardRedeemed,
		Payload: AwardRedeemedPayloadV1{
			AwardID:         awardID,
			SessionID:       sessionID,
			Section:         section,
			DiscountPercent: discountPercent,
			DiscountCode:    discountCode,
			Timestamp:       time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewSpinRejectedEvent creates a new spin rejected event
func NewSpinRejectedEvent(sessionID, reason string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    SpinRejected,
		Payload: SpinRejectedPayloadV1{
			SessionID: sessionID,
			Reason:    reason,
			Timestamp: time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
