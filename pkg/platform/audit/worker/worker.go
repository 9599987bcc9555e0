package worker

import (
	"context"
	"log/slog"

	audit "hrcc/pkg/platform/audit"
)

// Worker drains queued audit events into a store. A failed append is logged
// and the event dropped; the audit trail never blocks the request path.
type Worker struct {
	store  audit.Store
	inbox  <-chan audit.Event
	logger *slog.Logger
}

func NewWorker(store audit.Store, inbox <-chan audit.Event, logger *slog.Logger) *Worker {
	return &Worker{store: store, inbox: inbox, logger: logger}
}

// Run persists events until the inbox is closed.
func (w *Worker) Run(ctx context.Context) {
	for event := range w.inbox {
		if err := w.store.Append(ctx, event); err != nil {
			w.logger.ErrorContext(ctx, "audit append failed",
				"action", event.Action,
				"event_id", event.ID,
				"error", err,
			)
		}
	}
}
