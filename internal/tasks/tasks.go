// Package tasks defines the background jobs exchanged between the API and the
// worker over the asynq queue.
package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/aumatic/backend-quote/internal/notify"
	"github.com/aumatic/backend-quote/internal/quote"
)

// TypeQuoteSubmitted carries a freshly persisted quote to the notification pipeline.
const TypeQuoteSubmitted = "quote:submitted"

// NewQuoteSubmittedTask builds the asynq task for a submitted quote.
func NewQuoteSubmittedTask(q quote.SubmittedQuote) (*asynq.Task, error) {
	payload, err := json.Marshal(q)
	if err != nil {
		return nil, fmt.Errorf("tasks: marshal quote: %w", err)
	}
	return asynq.NewTask(TypeQuoteSubmitted, payload,
		asynq.MaxRetry(5),
		asynq.Timeout(30*time.Second),
	), nil
}

// Client enqueues tasks from the API process. It satisfies quote.Enqueuer.
type Client struct {
	A *asynq.Client
}

// EnqueueQuoteSubmitted pushes the notification task onto the queue.
func (c Client) EnqueueQuoteSubmitted(ctx context.Context, q quote.SubmittedQuote) error {
	if c.A == nil {
		return nil
	}
	task, err := NewQuoteSubmittedTask(q)
	if err != nil {
		return err
	}
	if _, err := c.A.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("tasks: enqueue %s: %w", TypeQuoteSubmitted, err)
	}
	return nil
}

// Handler processes tasks on the worker side.
type Handler struct {
	Notifier *notify.Notifier
}

// HandleQuoteSubmitted decodes the quote and runs the notification fan-out.
func (h *Handler) HandleQuoteSubmitted(ctx context.Context, t *asynq.Task) error {
	var q quote.SubmittedQuote
	if err := json.Unmarshal(t.Payload(), &q); err != nil {
		// malformed payloads never succeed on retry
		return fmt.Errorf("tasks: decode quote: %w: %w", err, asynq.SkipRetry)
	}
	return h.Notifier.QuoteSubmitted(ctx, q)
}

// NewMux registers all task handlers.
func NewMux(h *Handler) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeQuoteSubmitted, h.HandleQuoteSubmitted)
	return mux
}
