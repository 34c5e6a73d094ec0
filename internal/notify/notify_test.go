package notify_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/aumatic/backend-quote/internal/common"
	"github.com/aumatic/backend-quote/internal/notify"
	"github.com/aumatic/backend-quote/internal/quote"
)

func sampleQuote() quote.SubmittedQuote {
	return quote.SubmittedQuote{
		ID: uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"),
		Contact: quote.Contact{
			Name:    "Laura Medina",
			Email:   "laura@example.com",
			Company: "Acme SA",
		},
		Result: quote.Result{
			GrandTotalInitial:     decimal.RequireFromString("107831"),
			RecurringMonthlyTotal: decimal.RequireFromString("23453"),
			FirstYearTotal:        decimal.RequireFromString("389267"),
			Currency:              "MXN",
		},
		ValidUntil: time.Date(2026, 9, 28, 0, 0, 0, 0, time.UTC),
	}
}

func TestQuoteSubmittedEmail(t *testing.T) {
	mail := &common.InMemoryEmail{}
	n := &notify.Notifier{
		Email:        mail,
		EmailEnabled: true,
		EmailTo:      "ventas@example.com",
		Logger:       zerolog.Nop(),
	}

	require.NoError(t, n.QuoteSubmitted(context.Background(), sampleQuote()))
	require.Len(t, mail.Outbox, 1)
	require.Equal(t, "ventas@example.com", mail.Outbox[0].To)
	require.Contains(t, mail.Outbox[0].Subject, "Laura Medina")
	require.Contains(t, mail.Outbox[0].HTML, "107831.00")
}

func TestQuoteSubmittedEmailDisabled(t *testing.T) {
	mail := &common.InMemoryEmail{}
	n := &notify.Notifier{Email: mail, EmailEnabled: false, EmailTo: "ventas@example.com", Logger: zerolog.Nop()}

	require.NoError(t, n.QuoteSubmitted(context.Background(), sampleQuote()))
	require.Empty(t, mail.Outbox)
}

func TestQuoteSubmittedWebhook(t *testing.T) {
	var received quote.SubmittedQuote
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	n := &notify.Notifier{
		Webhook: notify.NewWebhook(srv.URL, time.Second),
		Logger:  zerolog.Nop(),
	}

	q := sampleQuote()
	require.NoError(t, n.QuoteSubmitted(context.Background(), q))
	require.Equal(t, q.ID, received.ID)
	require.True(t, received.Result.GrandTotalInitial.Equal(q.Result.GrandTotalInitial))
}

func TestQuoteSubmittedWebhookFailureIsReturned(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	n := &notify.Notifier{Webhook: notify.NewWebhook(srv.URL, time.Second), Logger: zerolog.Nop()}
	require.Error(t, n.QuoteSubmitted(context.Background(), sampleQuote()))
}
