package async_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/herald/pkg/utils/async"
)

// logRecorder collects log output and signals on every error record
type logRecorder struct {
	mu      sync.Mutex
	buf     bytes.Buffer
	written chan struct{}
}

func newLogRecorder() *logRecorder {
	return &logRecorder{written: make(chan struct{}, 8)}
}

func (r *logRecorder) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, err := r.buf.Write(p)
	r.written <- struct{}{}
	return n, err
}

func (r *logRecorder) String() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buf.String()
}

func (r *logRecorder) wait(t *testing.T) {
	t.Helper()
	select {
	case <-r.written:
	case <-time.After(time.Second):
		t.Fatal("log was not written within timeout")
	}
}

func (r *logRecorder) context() context.Context {
	logger := slog.New(slog.NewTextHandler(r, &slog.HandlerOptions{Level: slog.LevelError}))
	return ctxlog.With(context.Background(), logger)
}

func TestDispatch(t *testing.T) {
	t.Run("runs task", func(t *testing.T) {
		done := make(chan struct{})
		async.Dispatch(context.Background(), "test", func(ctx context.Context) error {
			close(done)
			return nil
		})

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("task did not run within timeout")
		}
	})

	t.Run("logs task error with task name", func(t *testing.T) {
		rec := newLogRecorder()
		async.Dispatch(rec.context(), "notify_release", func(ctx context.Context) error {
			return errors.New("webhook returned 500")
		})

		rec.wait(t)
		gt.String(t, rec.String()).Contains("async task failed")
		gt.String(t, rec.String()).Contains("task=notify_release")
		gt.String(t, rec.String()).Contains("webhook returned 500")
	})

	t.Run("recovers from panic", func(t *testing.T) {
		rec := newLogRecorder()
		async.Dispatch(rec.context(), "test", func(ctx context.Context) error {
			panic("boom")
		})

		rec.wait(t)
		gt.String(t, rec.String()).Contains("panic in async task")
		gt.String(t, rec.String()).Contains("boom")
		gt.String(t, rec.String()).Contains("dispatch_test.go")
	})

	t.Run("detached from caller cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		result := make(chan error, 1)
		async.Dispatch(ctx, "test", func(newCtx context.Context) error {
			gt.NotNil(t, ctxlog.From(newCtx))
			result <- newCtx.Err()
			return nil
		})

		select {
		case err := <-result:
			gt.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("task did not run within timeout")
		}
	})
}
