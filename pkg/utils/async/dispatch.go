package async

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
)

// Dispatch runs task in a new goroutine, detached from the cancellation of ctx.
// The logger stored in ctx is carried over. Errors and panics of the task are
// logged with its name and reported to Sentry when a client is initialized.
func Dispatch(ctx context.Context, name string, task func(ctx context.Context) error) {
	logger := ctxlog.From(ctx).With("task", name)
	newCtx := ctxlog.With(context.Background(), logger)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic in async task",
					"recover", r,
					"stack", string(debug.Stack()),
				)
				sentry.CaptureException(fmt.Errorf("panic in async task %s: %v", name, r))
			}
		}()

		if err := task(newCtx); err != nil {
			logger.Error("async task failed", "error", err)
			sentry.CaptureException(err)
		}
	}()
}
