package resilience

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ErrorClassification tells the executor how to treat a failure.
type ErrorClassification struct {
	Retryable     bool
	RecordFailure bool
}

// ErrorClassifier maps an error to its classification. Callers supply one per
// provider so HTTP status semantics stay out of this package.
type ErrorClassifier func(err error) ErrorClassification

// Executor wraps provider calls with an outbound rate limit, a per-operation
// circuit breaker and bounded exponential-backoff retries, in that order.
type Executor struct {
	cfg     Config
	logger  *zap.Logger
	limiter *rate.Limiter

	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker[any]
}

func NewExecutor(cfg Config, logger *zap.Logger) *Executor {
	cfg = cfg.normalize()
	e := &Executor{
		cfg:      cfg,
		logger:   logger,
		breakers: make(map[string]*gobreaker.CircuitBreaker[any]),
	}
	if cfg.OutboundRPS > 0 {
		e.limiter = rate.NewLimiter(rate.Limit(cfg.OutboundRPS), cfg.OutboundBurst)
	}
	return e
}

func (e *Executor) Execute(
	ctx context.Context,
	operation string,
	fn func(context.Context) error,
	classifier ErrorClassifier,
) error {
	if fn == nil {
		return fmt.Errorf("resilience: operation callback is nil")
	}
	op := strings.TrimSpace(operation)
	if op == "" {
		op = "unknown"
	}
	if classifier == nil {
		classifier = defaultClassifier
	}

	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	if !e.cfg.BreakerEnabled {
		return e.executeWithRetry(ctx, op, fn, classifier)
	}

	breaker := e.circuitBreaker(op, classifier)
	_, err := breaker.Execute(func() (any, error) {
		return nil, e.executeWithRetry(ctx, op, fn, classifier)
	})
	return err
}

func (e *Executor) executeWithRetry(
	ctx context.Context,
	operation string,
	fn func(context.Context) error,
	classifier ErrorClassifier,
) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = e.cfg.RetryInitialBackoff
	bo.MaxInterval = e.cfg.RetryMaxBackoff
	bo.MaxElapsedTime = e.cfg.RetryMaxElapsed

	attempt := 0
	call := func() error {
		attempt++
		if err := ctx.Err(); err != nil {
			return backoff.Permanent(err)
		}

		err := fn(ctx)
		if err == nil {
			return nil
		}

		class := classifier(err)
		if !class.Retryable {
			return backoff.Permanent(err)
		}

		if e.logger != nil {
			e.logger.Warn("⚠️ Provider call failed, will retry",
				zap.String("operation", operation),
				zap.Int("attempt", attempt),
				zap.Int("max_attempts", e.cfg.RetryMaxAttempts),
				zap.Error(err))
		}
		return err
	}

	budget := backoff.WithMaxRetries(bo, uint64(e.cfg.RetryMaxAttempts-1))
	return backoff.Retry(call, backoff.WithContext(budget, ctx))
}

func (e *Executor) circuitBreaker(operation string, classifier ErrorClassifier) *gobreaker.CircuitBreaker[any] {
	e.mu.Lock()
	defer e.mu.Unlock()

	if breaker, ok := e.breakers[operation]; ok {
		return breaker
	}

	settings := gobreaker.Settings{
		Name:        operation,
		MaxRequests: e.cfg.BreakerHalfOpenMaxCalls,
		Timeout:     e.cfg.BreakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < e.cfg.BreakerMinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= e.cfg.BreakerFailureRatio
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			class := classifier(err)
			return !class.RecordFailure
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			if e.logger != nil {
				e.logger.Warn("🔌 Circuit breaker state change",
					zap.String("operation", name),
					zap.String("from", from.String()),
					zap.String("to", to.String()))
			}
		},
	}

	breaker := gobreaker.NewCircuitBreaker[any](settings)
	e.breakers[operation] = breaker
	return breaker
}

// IsCircuitOpen reports whether err came from an open or saturated breaker
// rather than from the provider itself.
func IsCircuitOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

func defaultClassifier(error) ErrorClassification {
	return ErrorClassification{
		Retryable:     false,
		RecordFailure: true,
	}
}
