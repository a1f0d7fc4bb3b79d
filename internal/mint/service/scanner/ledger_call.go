package scanner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/mintwatch-backend/internal/mint/model"
	"github.com/goodnatureofminers/mintwatch-backend/pkg/retry"
	"go.uber.org/zap"
)

// ledgerCall runs ledger requests under a per-attempt timeout and retries
// transport failures.
type ledgerCall struct {
	logger  *zap.Logger
	policy  retry.Policy
	timeout time.Duration
	onRetry func(operation string)
}

func newLedgerCall(logger *zap.Logger, policy retry.Policy, timeout time.Duration, onRetry func(string)) ledgerCall {
	if timeout <= 0 {
		timeout = defaultCallTimeout
	}
	policy.Retryable = model.IsTransport
	return ledgerCall{logger: logger, policy: policy, timeout: timeout, onRetry: onRetry}
}

func (c ledgerCall) do(ctx context.Context, operation string, fn func(ctx context.Context) error) error {
	return retry.Do(ctx, c.policy, func(ctx context.Context) error {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		err := fn(callCtx)
		if err != nil && ctx.Err() == nil && errors.Is(callCtx.Err(), context.DeadlineExceeded) && !model.IsTransport(err) {
			err = fmt.Errorf("%s timed out: %w: %w", operation, model.ErrTransport, err)
		}
		return err
	}, func(attempt int, err error, wait time.Duration) {
		c.logger.Warn("ledger call failed, retrying",
			zap.String("operation", operation),
			zap.Int("attempt", attempt),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
		if c.onRetry != nil {
			c.onRetry(operation)
		}
	})
}
