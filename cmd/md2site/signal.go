package main

import (
	"context"
	"os/signal"
)

// notifyContext cancels the build on the first stop signal. A second signal
// falls through to the default handler and kills the process.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(parent, stopSignals...)
	go func() {
		<-ctx.Done()
		stop()
	}()
	return ctx, stop
}
