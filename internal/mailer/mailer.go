// Package mailer delivers applicant email. Senders are interchangeable: SMTP
// through one of the configured relays, or a logging sender when mail is
// disabled.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ErrDelivery wraps every failure to hand a message to the relay.
var ErrDelivery = errors.New("email delivery failed")

// DefaultConcurrency bounds parallel SMTP sessions during fan-out.
const DefaultConcurrency = 4

// Message is one outbound email. HTML is required; Text is the plain
// alternative.
type Message struct {
	ToEmail string
	ToName  string
	Subject string
	HTML    string
	Text    string
}

// Sender delivers a single message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Result records the outcome for one recipient.
type Result struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Sent  bool   `json:"sent"`
	Error string `json:"error,omitempty"`
}

// SendAll delivers every message with at most limit concurrent sends and
// returns one Result per message in input order. A failed send does not stop
// the others; the returned error joins all failures.
func SendAll(ctx context.Context, sender Sender, msgs []Message, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	results := make([]Result, len(msgs))
	var (
		mu   sync.Mutex
		errs []error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, msg := range msgs {
		results[i] = Result{Email: msg.ToEmail, Name: msg.ToName}
		g.Go(func() error {
			if err := sender.Send(gctx, msg); err != nil {
				results[i].Error = err.Error()
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", msg.ToEmail, err))
				mu.Unlock()
				return nil
			}
			results[i].Sent = true
			return nil
		})
	}
	_ = g.Wait()
	return results, errors.Join(errs...)
}
