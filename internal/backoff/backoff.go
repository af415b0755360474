// SPDX-License-Identifier: Apache-2.0

package backoff

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
)

type Backoff interface {
	RetryNotify(Operation, Notify) error
	Retry(Operation) error
}

type (
	Operation func() error
	Notify    func(error, time.Duration)
)

// Config configures an exponential backoff. A nil config disables retries.
type Config struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
	MaxRetries      uint
}

// ErrPermanent can be wrapped by an operation error to stop retrying.
var ErrPermanent = errors.New("permanent error, do not retry")

type Provider func(ctx context.Context) Backoff

func DefaultConfig() *Config {
	return &Config{
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     5 * time.Second,
		MaxElapsedTime:  time.Minute,
		MaxRetries:      5,
	}
}

// NewProvider returns a backoff provider based on the config on input. If no
// config is provided, a no retry backoff provider is returned instead.
func NewProvider(cfg *Config) Provider {
	if cfg == nil {
		return func(context.Context) Backoff {
			return NewStopBackoff()
		}
	}
	return func(ctx context.Context) Backoff {
		return NewExponentialBackoff(ctx, cfg)
	}
}

type retrier struct {
	bo backoff.BackOff
}

func NewExponentialBackoff(ctx context.Context, cfg *Config) Backoff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = cfg.InitialInterval
	if cfg.MaxInterval > 0 {
		exp.MaxInterval = cfg.MaxInterval
	}
	exp.MaxElapsedTime = cfg.MaxElapsedTime

	var bo backoff.BackOff = exp
	if cfg.MaxRetries > 0 {
		bo = backoff.WithMaxRetries(bo, uint64(cfg.MaxRetries))
	}
	return &retrier{bo: backoff.WithContext(bo, ctx)}
}

// NewStopBackoff returns a backoff that runs the operation exactly once.
func NewStopBackoff() Backoff {
	return &retrier{bo: &backoff.StopBackOff{}}
}

func (r *retrier) Retry(op Operation) error {
	return r.RetryNotify(op, nil)
}

func (r *retrier) RetryNotify(op Operation, notify Notify) error {
	boOp := func() error {
		err := op()
		if errors.Is(err, ErrPermanent) {
			return backoff.Permanent(err)
		}
		return err
	}
	return backoff.RetryNotify(boOp, r.bo, backoff.Notify(notify))
}
