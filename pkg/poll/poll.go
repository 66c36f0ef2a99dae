// Package poll paces repeated checks with a token bucket so a tight loop
// never hammers the thing it is waiting on.
package poll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultInterval = time.Second
	minInterval     = 10 * time.Millisecond
)

// ErrTimeout is returned by Until when the configured timeout elapses first.
var ErrTimeout = errors.New("poll: timed out")

type Poller struct {
	interval time.Duration
	timeout  time.Duration
}

// New returns a Poller checking every interval. A zero timeout waits until
// the context is cancelled.
func New(interval, timeout time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	if interval < minInterval {
		interval = minInterval
	}
	if timeout < 0 {
		timeout = 0
	}
	return &Poller{interval: interval, timeout: timeout}
}

func (p *Poller) Interval() time.Duration { return p.interval }
func (p *Poller) Timeout() time.Duration  { return p.timeout }

// Until calls check until it reports done or returns an error. The first
// check runs immediately.
func (p *Poller) Until(ctx context.Context, check func(ctx context.Context) (bool, error)) error {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	limiter := rate.NewLimiter(rate.Every(p.interval), 1)
	attempts := 0
	for {
		if err := limiter.Wait(ctx); err != nil {
			return p.waitErr(ctx, attempts, err)
		}
		attempts++
		done, err := check(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

func (p *Poller) waitErr(ctx context.Context, attempts int, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) && p.timeout > 0 {
		return fmt.Errorf("%w after %s (%d attempts)", ErrTimeout, p.timeout, attempts)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	// rate.Limiter refuses waits that would overrun the deadline.
	if p.timeout > 0 {
		return fmt.Errorf("%w after %d attempts: %v", ErrTimeout, attempts, err)
	}
	return err
}
