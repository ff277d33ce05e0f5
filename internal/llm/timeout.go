package llm

import (
	"context"
	"errors"
	"time"
)

// TimeoutProvider bounds every Generate call of the wrapped provider.
type TimeoutProvider struct {
	inner   Provider
	timeout time.Duration
}

// WithTimeout wraps p so that each call is cancelled after d.
// A non-positive d returns p unchanged.
func WithTimeout(p Provider, d time.Duration) Provider {
	if d <= 0 {
		return p
	}
	return &TimeoutProvider{inner: p, timeout: d}
}

func (t *TimeoutProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	resp, err := t.inner.Generate(ctx, req)
	if err != nil {
		var inv *ErrProviderInvocation
		if !errors.As(err, &inv) {
			err = &ErrProviderInvocation{Provider: t.inner.Name(), Err: err}
		}
		return nil, err
	}
	return resp, nil
}

func (t *TimeoutProvider) Name() string {
	return t.inner.Name()
}

func (t *TimeoutProvider) ModelID() string {
	return t.inner.ModelID()
}
