package store

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"
)

const (
	retryAttempts = 3
	retryBase     = 100 * time.Millisecond
)

// withRetry runs fn and runs it again, with exponential backoff, while the
// classifier reports its error as retryable.
func withRetry(ctx context.Context, classifier ErrorClassificator, fn func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(retryAttempts, retry.NewExponential(retryBase))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if classifier != nil && classifier.Classify(err) == Retryable {
			return retry.RetryableError(err)
		}
		return err
	})
}
