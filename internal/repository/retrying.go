package repository

import (
	"context"
	"time"

	"service-dispatch/internal/logx"
	"service-dispatch/internal/ports/dispatchtx"
)

type counter interface {
	Inc()
}

// RetryConfig описывает поведение RetryingRunner
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RetryingRunner reruns a whole transaction that failed on a deadlock or serialization conflict.
type RetryingRunner struct {
	next    dispatchtx.Runner
	logger  logx.Logger
	retries counter
	cfg     RetryConfig
}

// NewRetryingRunner конструктор который проверяет, что next не nil и возвращает RetryingRunner
func NewRetryingRunner(next dispatchtx.Runner, logger logx.Logger, retries counter, cfg RetryConfig) *RetryingRunner {
	if next == nil {
		return nil
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &RetryingRunner{next: next, logger: logger, retries: retries, cfg: cfg}
}

// WithTx runs fn in a transaction, retrying the whole transaction on retryable failures.
func (r *RetryingRunner) WithTx(ctx context.Context, fn func(tx dispatchtx.Repository) error) error {
	var lastErr error
	for attempt := 1; attempt <= r.cfg.MaxAttempts; attempt++ {
		err := r.next.WithTx(ctx, fn)
		if err == nil {
			return nil
		}
		lastErr = err
		// проверяем условия повтора
		if ctx.Err() != nil || attempt == r.cfg.MaxAttempts || !IsRetryable(err) {
			break
		}
		delay := backoff(r.cfg.BaseDelay, r.cfg.MaxDelay, attempt)
		if r.retries != nil {
			r.retries.Inc()
		}
		r.logger.Warn("tx retry",
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Any("err", err),
		)
		if !sleepWithContext(ctx, delay) {
			break
		}
	}
	return lastErr
}

// backoff вычисляет задержку повтора
func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d > max || d < 0 {
		return max
	}
	return d
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
