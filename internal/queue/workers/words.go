package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/Await-d/maple-blog-sub003/internal/filter"
	"github.com/Await-d/maple-blog-sub003/internal/queue"
	"github.com/Await-d/maple-blog-sub003/internal/words"
)

// WordImportWorker applies bulk dictionary imports submitted through the
// queue, so a multi-thousand-word upload never blocks an admin request.
type WordImportWorker struct {
	svc *words.Service
}

func NewWordImportWorker(svc *words.Service) *WordImportWorker {
	return &WordImportWorker{svc: svc}
}

func (w *WordImportWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload queue.WordImportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	tier, err := filter.ParseTier(payload.Tier)
	if err != nil {
		// A bad tier will not get better on retry; drop the task.
		slog.Warn("discarding word import with unknown tier", "tier", payload.Tier, "words", len(payload.Words))
		return nil
	}

	added, err := w.svc.AddWords(ctx, payload.Words, tier)
	if err != nil {
		return fmt.Errorf("import %d words: %w", len(payload.Words), err)
	}

	slog.Info("word import completed",
		"tier", tier.String(), "submitted", len(payload.Words), "added", added, "requested_by", payload.RequestedBy)
	return nil
}

// DictionaryReloadWorker re-syncs an instance's dictionary from all
// sources on demand.
type DictionaryReloadWorker struct {
	svc *words.Service
}

func NewDictionaryReloadWorker(svc *words.Service) *DictionaryReloadWorker {
	return &DictionaryReloadWorker{svc: svc}
}

func (w *DictionaryReloadWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload queue.DictionaryReloadPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	w.svc.Reload(ctx)
	slog.Info("dictionary reload completed", "reason", payload.Reason)
	return nil
}
