package event

import (
	"context"
	"sync"
	"time"

	"github.com/promokit/wheel-service/internal/logger"
)

// retryEntry tracks an event pending retry
type retryEntry struct {
	event   Event
	attempt int
	lastErr error
}

// ResilientPublisher wraps an event Bus with bounded-queue retries and a
// dead-letter file for events that exhaust them. PublishWithRetry never
// blocks the caller on downstream failures.
type ResilientPublisher struct {
	bus        Bus
	retryQueue chan retryEntry
	maxRetries int
	retryDelay time.Duration
	shutdown   chan struct{}
	deadLetter *DeadLetterWriter
	wg         sync.WaitGroup
	closeOnce  sync.Once
}

// NewResilientPublisher creates a ResilientPublisher and starts its retry worker
func NewResilientPublisher(bus Bus, maxRetries int, retryDelay time.Duration, deadLetterPath string) (*ResilientPublisher, error) {
	deadLetter, err := NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, err
	}

	p := &ResilientPublisher{
		bus:        bus,
		retryQueue: make(chan retryEntry, RetryQueueBufferSize),
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		shutdown:   make(chan struct{}),
		deadLetter: deadLetter,
	}

	p.wg.Add(1)
	go p.retryWorker()

	return p, nil
}

// PublishWithRetry attempts to publish an event, queuing it for background
// retry on failure. Returns immediately once the event is accepted.
func (p *ResilientPublisher) PublishWithRetry(ctx context.Context, event Event) {
	if id, ok := logger.RequestIDFromContext(ctx); ok && event.Metadata == nil {
		event.Metadata = map[string]interface{}{MetadataKeyRequestID: id}
	}

	err := p.bus.Publish(ctx, event)
	if err == nil {
		return
	}

	logger.Warn(LogMsgEventPublishFailed,
		"event_type", event.Type,
		"error", err)

	select {
	case p.retryQueue <- retryEntry{event: event, attempt: 1, lastErr: err}:
	default:
		logger.Warn(LogMsgRetryQueueFull, "event_type", event.Type)
		if dlErr := p.deadLetter.Write(event, 1, err); dlErr != nil {
			logger.Error(LogMsgDeadLetterWriteFailed, "error", dlErr)
		}
	}
}

// Subscribe delegates to the inner bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.bus.Subscribe(eventType, handler)
}

// retryWorker processes queued events until shutdown, then drains the queue
func (p *ResilientPublisher) retryWorker() {
	defer p.wg.Done()

	for {
		select {
		case entry := <-p.retryQueue:
			p.process(entry)
		case <-p.shutdown:
			for {
				select {
				case entry := <-p.retryQueue:
					logger.Info(LogMsgQueueDrainedShutdown, "event_type", entry.event.Type)
					p.process(entry)
				default:
					return
				}
			}
		}
	}
}

// process retries a single event with exponential backoff until it publishes
// or retries are exhausted
func (p *ResilientPublisher) process(entry retryEntry) {
	ctx := context.Background()
	lastErr := entry.lastErr

	for attempt := entry.attempt; attempt <= p.maxRetries; attempt++ {
		time.Sleep(CalculateRetryDelay(p.retryDelay, attempt))

		err := p.bus.Publish(ctx, entry.event)
		if err == nil {
			logger.Info(LogMsgEventRetrySucceeded,
				"event_type", entry.event.Type,
				"attempt", attempt)
			return
		}

		lastErr = err
		logger.Warn(LogMsgEventRetryFailed,
			"event_type", entry.event.Type,
			"attempt", attempt,
			"error", err)
	}

	logger.Warn(LogMsgEventRetryExhausted, "event_type", entry.event.Type)
	if err := p.deadLetter.Write(entry.event, p.maxRetries+1, lastErr); err != nil {
		logger.Error(LogMsgDeadLetterWriteFailed, "error", err)
	}
}

// Shutdown stops the retry worker, draining pending events first
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	p.closeOnce.Do(func() {
		close(p.shutdown)
	})

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return p.deadLetter.Close()
	case <-ctx.Done():
		logger.Warn(LogMsgShutdownTimeout)
		return ctx.Err()
	}
}
