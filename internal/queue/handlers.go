package queue

import (
	"context"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

// HandlersRegistry collects the dictionary task handlers and wraps each one
// with timing and error logging before it reaches the asynq server.
type HandlersRegistry struct {
	mux *asynq.ServeMux
}

func NewHandlersRegistry() *HandlersRegistry {
	return &HandlersRegistry{
		mux: asynq.NewServeMux(),
	}
}

func (r *HandlersRegistry) RegisterFunc(taskType string, fn func(context.Context, *asynq.Task) error) {
	r.mux.Handle(taskType, instrument(taskType, asynq.HandlerFunc(fn)))
}

func (r *HandlersRegistry) Mux() *asynq.ServeMux {
	return r.mux
}

func instrument(taskType string, next asynq.Handler) asynq.Handler {
	return asynq.HandlerFunc(func(ctx context.Context, task *asynq.Task) error {
		start := time.Now()
		err := next.ProcessTask(ctx, task)
		if err != nil {
			slog.Error("task failed", "type", taskType, "duration", time.Since(start), "error", err)
			return err
		}
		slog.Info("task processed", "type", taskType, "duration", time.Since(start))
		return nil
	})
}
