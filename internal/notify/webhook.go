package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/aumatic/backend-quote/internal/quote"
)

// Webhook posts submitted quotes to the document-generation collaborator,
// which renders the PDF proposal from the stored selection and totals.
type Webhook struct {
	URL    string
	Client *http.Client
}

// NewWebhook builds a Webhook with an instrumented HTTP client. An empty url
// disables delivery.
func NewWebhook(url string, timeout time.Duration) *Webhook {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Webhook{
		URL: url,
		Client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// Post delivers the quote payload. Non-2xx responses are errors so the task
// queue retries the delivery.
func (w *Webhook) Post(ctx context.Context, q quote.SubmittedQuote) error {
	if w == nil || w.URL == "" {
		return nil
	}
	body, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("notify: marshal quote: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("notify: build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.Client.Do(req)
	if err != nil {
		return fmt.Errorf("notify: webhook post: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("notify: webhook returned status %d", resp.StatusCode)
	}
	return nil
}
