package tasks_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/aumatic/backend-quote/internal/common"
	"github.com/aumatic/backend-quote/internal/notify"
	"github.com/aumatic/backend-quote/internal/quote"
	"github.com/aumatic/backend-quote/internal/tasks"
)

func TestQuoteSubmittedTaskRoundTrip(t *testing.T) {
	q := quote.SubmittedQuote{
		ID:      uuid.New(),
		Contact: quote.Contact{Name: "Laura Medina", Email: "laura@example.com"},
	}
	task, err := tasks.NewQuoteSubmittedTask(q)
	require.NoError(t, err)
	require.Equal(t, tasks.TypeQuoteSubmitted, task.Type())

	mail := &common.InMemoryEmail{}
	h := &tasks.Handler{Notifier: &notify.Notifier{
		Email:        mail,
		EmailEnabled: true,
		EmailTo:      "ventas@example.com",
		Logger:       zerolog.Nop(),
	}}
	require.NoError(t, h.HandleQuoteSubmitted(context.Background(), task))
	require.Len(t, mail.Outbox, 1)
}

func TestHandleQuoteSubmittedMalformedPayloadSkipsRetry(t *testing.T) {
	h := &tasks.Handler{Notifier: &notify.Notifier{Logger: zerolog.Nop()}}
	task := asynq.NewTask(tasks.TypeQuoteSubmitted, []byte("not json"))

	err := h.HandleQuoteSubmitted(context.Background(), task)
	require.Error(t, err)
	require.True(t, errors.Is(err, asynq.SkipRetry))
}
