package sim

import (
	"context"
	"time"

	"github.com/younwookim/bountyhunter/internal/application/system"
)

// InputSource returns the input snapshot for the next tick
type InputSource func() system.InputState

// Runner drives a Host from a fixed-interval ticker.
// Every host call goes through the loop goroutine, so the host keeps a
// single writer even when commands come from other goroutines.
type Runner struct {
	host  *Host
	input InputSource
	cmds  chan func(*Host)
	done  chan struct{}
}

// NewRunner creates a runner; a nil input source sends empty input
func NewRunner(h *Host, input InputSource) *Runner {
	if input == nil {
		input = func() system.InputState { return system.InputState{} }
	}
	return &Runner{
		host:  h,
		input: input,
		cmds:  make(chan func(*Host)),
		done:  make(chan struct{}),
	}
}

// Run ticks the host until ctx is cancelled or the host is stopped
func (r *Runner) Run(ctx context.Context) error {
	defer close(r.done)

	ticker := time.NewTicker(time.Duration(r.host.DT() * float64(time.Second)))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.host.Stop()
			return ctx.Err()
		case cmd := <-r.cmds:
			cmd(r.host)
			if r.host.Stopped() {
				return nil
			}
		case <-ticker.C:
			r.host.Tick(r.input())
		}
	}
}

// Do runs fn on the loop goroutine and waits for it to finish
func (r *Runner) Do(ctx context.Context, fn func(*Host)) error {
	finished := make(chan struct{})
	cmd := func(h *Host) {
		defer close(finished)
		fn(h)
	}

	select {
	case r.cmds <- cmd:
	case <-r.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Runner) call(ctx context.Context, fn func(*Host) error) error {
	var err error
	if doErr := r.Do(ctx, func(h *Host) { err = fn(h) }); doErr != nil {
		return doErr
	}
	return err
}

// Start starts a round on the loop goroutine
func (r *Runner) Start(ctx context.Context) error {
	return r.call(ctx, func(h *Host) error { return h.Start(ctx) })
}

// Pause suspends the round
func (r *Runner) Pause(ctx context.Context) error {
	return r.call(ctx, (*Host).Pause)
}

// Resume continues the round
func (r *Runner) Resume(ctx context.Context) error {
	return r.call(ctx, (*Host).Resume)
}

// Reset returns the host to Idle
func (r *Runner) Reset(ctx context.Context) error {
	return r.Do(ctx, (*Host).Reset)
}

// Stop stops the host and ends Run
func (r *Runner) Stop(ctx context.Context) error {
	return r.Do(ctx, (*Host).Stop)
}
