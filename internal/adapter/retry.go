package adapter

import (
	"context"
	"errors"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sethvargo/go-retry"
)

// retryPolicy retries transport failures and 502/503/504 responses with
// exponential backoff. Remote error codes are never retried here: rate
// limits and auth expiry are handled by the sync service.
type retryPolicy struct {
	maxRetries int
	baseDelay  time.Duration
}

func (p retryPolicy) backoff() retry.Backoff {
	base := p.baseDelay
	if base <= 0 {
		base = 100 * time.Millisecond
	}
	maxRetries := p.maxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	return retry.WithMaxRetries(uint64(maxRetries), retry.NewExponential(base))
}

// do runs send until it succeeds, fails permanently or retries run out.
func (p retryPolicy) do(ctx context.Context, send func(ctx context.Context) (*resty.Response, error)) (*resty.Response, error) {
	var resp *resty.Response

	err := retry.Do(ctx, p.backoff(), func(ctx context.Context) error {
		var err error
		resp, err = send(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return err
			}
			return retry.RetryableError(err)
		}

		if err = mapHTTPError(resp); err != nil {
			if errors.Is(err, ErrServiceUnavailable) {
				return retry.RetryableError(err)
			}
			return err
		}
		return nil
	})

	return resp, err
}
