package publisher

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	audit "hrcc/pkg/platform/audit"
	"hrcc/pkg/platform/audit/worker"
	"hrcc/pkg/requestcontext"
)

// ErrBufferFull is returned by Emit in async mode when the queue is full.
var ErrBufferFull = errors.New("audit buffer full")

// Publisher stamps events with id, time, request id and actor, logs them and
// hands them to the store, either inline or through a buffered worker.
type Publisher struct {
	store  audit.Store
	logger *slog.Logger
	now    func() time.Time

	buffer int
	queue  chan audit.Event
	done   chan struct{}
	once   sync.Once
}

type Option func(*Publisher)

// WithAsyncBuffer queues up to n events for a background worker.
func WithAsyncBuffer(n int) Option {
	return func(p *Publisher) {
		p.buffer = n
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func WithClock(now func() time.Time) Option {
	return func(p *Publisher) {
		p.now = now
	}
}

func NewPublisher(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{store: store, logger: slog.Default(), now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	if p.buffer > 0 {
		p.queue = make(chan audit.Event, p.buffer)
		p.done = make(chan struct{})
		w := worker.NewWorker(store, p.queue, p.logger)
		go func() {
			defer close(p.done)
			w.Run(context.Background())
		}()
	}
	return p
}

// Emit records the event. In async mode it never blocks: a full queue
// returns ErrBufferFull and a cancelled context returns ctx.Err().
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = p.now().UTC()
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if event.ActorID == "" {
		if id := requestcontext.AdminID(ctx); !id.IsZero() {
			event.ActorID = id.Hex()
		}
	}

	p.logger.InfoContext(ctx, "audit",
		"action", event.Action,
		"actor_id", event.ActorID,
		"domain", event.Domain,
		"subjects", len(event.Subjects),
		"request_id", event.RequestID,
	)

	if p.queue == nil {
		return p.store.Append(ctx, event)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case p.queue <- event:
		return nil
	default:
		return ErrBufferFull
	}
}

// List returns the actor's events from the store.
func (p *Publisher) List(ctx context.Context, actorID string) ([]audit.Event, error) {
	return p.store.ListByActor(ctx, actorID)
}

// Close stops accepting async events and waits until queued ones are stored.
// Emit must not be called after Close.
func (p *Publisher) Close() {
	if p.queue == nil {
		return
	}
	p.once.Do(func() {
		close(p.queue)
		<-p.done
	})
}
