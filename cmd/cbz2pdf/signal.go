package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
)

// ErrInterrupted is the cancellation cause when a shutdown signal arrives.
var ErrInterrupted = errors.New("interrupted")

// notifyContext returns a context canceled with ErrInterrupted on the first
// shutdown signal. Later signals get the default behavior, so a second
// Ctrl-C kills a stuck conversion. Call stop() to release resources.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancelCause(parent)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, shutdownSignals...)

	done := make(chan struct{})
	go func() {
		defer signal.Stop(sigs)
		select {
		case sig := <-sigs:
			cancel(fmt.Errorf("%w by %s", ErrInterrupted, sig))
		case <-done:
		}
	}()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			close(done)
			cancel(context.Canceled)
		})
	}
	return ctx, stop
}

// interruptCause returns the signal cause of ctx, or nil.
func interruptCause(ctx context.Context) error {
	if cause := context.Cause(ctx); errors.Is(cause, ErrInterrupted) {
		return cause
	}
	return nil
}
