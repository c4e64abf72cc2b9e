// internal/inference/http.go
package inference

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sethvargo/go-retry"

	"mitoseqfix-core/alphabet"
)

// HTTPOptions configures the model-server backend.
type HTTPOptions struct {
	URL     string
	Timeout time.Duration
	Retries int
	// Backoff is the first retry delay; it doubles per attempt.
	Backoff time.Duration
}

// HTTP posts each window to a model server:
//
//	POST <url>  {"codes":[0,1,...]}  ->  {"codes":[0,1,...]}
//
// Transport errors, 5xx and 429 are retried with exponential backoff.
type HTTP struct {
	client  *resty.Client
	url     string
	retries int
	backoff time.Duration
}

type predictBody struct {
	Codes []int `json:"codes"`
}

func NewHTTP(opts HTTPOptions) (*HTTP, error) {
	u, err := url.Parse(opts.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("inference url %q: must be an absolute http(s) url", opts.URL)
	}
	if opts.Backoff <= 0 {
		opts.Backoff = 100 * time.Millisecond
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	}
	client := resty.New().
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}
	return &HTTP{client: client, url: u.String(), retries: opts.Retries, backoff: opts.Backoff}, nil
}

func (h *HTTP) Predict(ctx context.Context, window []alphabet.Code) ([]alphabet.Code, error) {
	backoff := retry.WithMaxRetries(uint64(h.retries), retry.NewExponential(h.backoff)) // #nosec G115 -- clamped in NewHTTP

	var out predictBody
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		out = predictBody{}
		resp, err := h.client.R().
			SetContext(ctx).
			SetBody(predictBody{Codes: alphabet.Ints(window)}).
			SetResult(&out).
			Post(h.url)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return retry.RetryableError(fmt.Errorf("model server: %w", err))
		}
		switch code := resp.StatusCode(); {
		case code == http.StatusTooManyRequests || code >= 500:
			return retry.RetryableError(fmt.Errorf("model server: %s", resp.Status()))
		case code != http.StatusOK:
			return fmt.Errorf("%w: model server: %s", ErrResponseInvalid, resp.Status())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	pred, err := alphabet.FromInts(out.Codes)
	if err != nil {
		return nil, errors.Join(ErrResponseInvalid, err)
	}
	if err := checkOutput(window, pred); err != nil {
		return nil, err
	}
	return pred, nil
}
