// Package notify delivers submitted-quote notifications to the back office
// over email and to the document-generation webhook.
package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/aumatic/backend-quote/internal/common"
	"github.com/aumatic/backend-quote/internal/obs"
	"github.com/aumatic/backend-quote/internal/quote"
)

// Notifier fans a submitted quote out to the configured channels.
type Notifier struct {
	Email        common.EmailSender
	EmailEnabled bool
	EmailFrom    string
	EmailTo      string
	Webhook      *Webhook
	Logger       zerolog.Logger
}

// QuoteSubmitted delivers the notification on every enabled channel. Channel
// failures are joined so the task queue retries the whole delivery; channels
// are individually idempotent.
func (n *Notifier) QuoteSubmitted(ctx context.Context, q quote.SubmittedQuote) error {
	var joined error

	if n.EmailEnabled && n.Email != nil && n.EmailTo != "" {
		subject := fmt.Sprintf("Nueva cotización de %s", q.Contact.Name)
		if err := n.Email.Send(n.EmailTo, subject, quoteSummaryHTML(q)); err != nil {
			observeDelivery("email", "error")
			joined = errors.Join(joined, fmt.Errorf("notify: email: %w", err))
		} else {
			observeDelivery("email", "ok")
		}
	}

	if n.Webhook != nil && n.Webhook.URL != "" {
		if err := n.Webhook.Post(ctx, q); err != nil {
			observeDelivery("webhook", "error")
			joined = errors.Join(joined, err)
		} else {
			observeDelivery("webhook", "ok")
		}
	}

	if joined != nil {
		n.Logger.Error().Err(joined).Stringer("quote_id", q.ID).Msg("quote notification delivery failed")
	}
	return joined
}

func quoteSummaryHTML(q quote.SubmittedQuote) string {
	var b strings.Builder
	b.WriteString("<h2>Nueva cotización</h2>")
	fmt.Fprintf(&b, "<p><b>Contacto:</b> %s &lt;%s&gt;", q.Contact.Name, q.Contact.Email)
	if q.Contact.Company != "" {
		fmt.Fprintf(&b, " (%s)", q.Contact.Company)
	}
	b.WriteString("</p>")
	fmt.Fprintf(&b, "<p><b>Inversión inicial:</b> %s %s</p>", q.Result.GrandTotalInitial.StringFixed(2), q.Result.Currency)
	fmt.Fprintf(&b, "<p><b>Mensualidad:</b> %s %s</p>", q.Result.RecurringMonthlyTotal.StringFixed(2), q.Result.Currency)
	fmt.Fprintf(&b, "<p><b>Total primer año:</b> %s %s</p>", q.Result.FirstYearTotal.StringFixed(2), q.Result.Currency)
	fmt.Fprintf(&b, "<p><b>Vigencia:</b> hasta %s</p>", q.ValidUntil.Format("2006-01-02"))
	fmt.Fprintf(&b, "<p>Folio: %s</p>", q.ID)
	return b.String()
}

func observeDelivery(channel, result string) {
	if obs.NotifyDeliveriesTotal != nil {
		obs.NotifyDeliveriesTotal.WithLabelValues(channel, result).Inc()
	}
}
