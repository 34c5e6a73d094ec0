package quote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aumatic/backend-quote/internal/common"
	"github.com/aumatic/backend-quote/internal/obs"
)

// Enqueuer hands a submitted quote to the background notification pipeline.
type Enqueuer interface {
	EnqueueQuoteSubmitted(ctx context.Context, q SubmittedQuote) error
}

// Store persists and retrieves submitted quotes. *Service implements it.
type Store interface {
	Save(ctx context.Context, q *SubmittedQuote) error
	Get(ctx context.Context, id uuid.UUID) (SubmittedQuote, error)
	List(ctx context.Context, limit, offset int) ([]SubmittedQuote, error)
}

// Handler serves quote preview, submission and admin listing.
type Handler struct {
	Catalog  Catalog
	Store    Store
	Enqueue  Enqueuer
	Validate *validator.Validate
	Limits   Limits
	Strict   bool

	// Memo short-circuits repeated previews of an unchanged selection.
	Memo Memo
}

type submitRequest struct {
	Contact   Contact   `json:"contact" validate:"required"`
	Selection Selection `json:"selection"`
}

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// Preview computes totals for a selection without persisting anything.
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	var sel Selection
	if err := json.NewDecoder(r.Body).Decode(&sel); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}
	res, err := h.compute(&sel)
	if err != nil {
		renderComputeError(w, err)
		return
	}
	common.JSONData(w, http.StatusOK, res)
}

// Submit recomputes the totals server-side, persists the quote, and enqueues
// the notification task. Client-supplied totals are never trusted.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}
	if err := h.validateContact(req.Contact); err != nil {
		common.RenderError(w, err)
		return
	}

	res, err := h.compute(&req.Selection)
	if err != nil {
		renderComputeError(w, err)
		return
	}

	// The result may come out of the memo; the persisted quote is stamped
	// with the submission time, never the first computation's.
	now := time.Now().UTC()
	res.ComputedAt = now
	q := SubmittedQuote{
		ID:            uuid.New(),
		Contact:       req.Contact,
		Selection:     req.Selection,
		Result:        res,
		ValidUntil:    now.AddDate(0, 0, req.Selection.ValidityDays),
		SubmissionKey: r.Header.Get("Idempotency-Key"),
	}
	if err := h.Store.Save(r.Context(), &q); err != nil {
		observeSubmit("error")
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("quote save failed")
		common.RenderError(w, err)
		return
	}
	observeSubmit("ok")

	if h.Enqueue != nil {
		if err := h.Enqueue.EnqueueQuoteSubmitted(r.Context(), q); err != nil {
			// submission already succeeded; notification failure is logged, not surfaced
			zerolog.Ctx(r.Context()).Error().Err(err).Stringer("quote_id", q.ID).Msg("enqueue quote notification failed")
		}
	}

	common.JSONData(w, http.StatusCreated, q)
}

// Get returns a previously submitted quote.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid quote id", nil)
		return
	}
	q, err := h.Store.Get(r.Context(), id)
	if err != nil {
		common.RenderError(w, err)
		return
	}
	common.JSONData(w, http.StatusOK, q)
}

// AdminList pages through submitted quotes, newest first.
func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", defaultListLimit)
	if limit < 1 || limit > maxListLimit {
		limit = defaultListLimit
	}
	offset := queryInt(r, "offset", 0)
	if offset < 0 {
		offset = 0
	}
	quotes, err := h.Store.List(r.Context(), limit, offset)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("quote list failed")
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "could not list quotes", nil)
		return
	}
	common.JSONData(w, http.StatusOK, quotes)
}

func (h *Handler) compute(sel *Selection) (Result, error) {
	if err := ValidateSelection(sel, h.Limits); err != nil {
		observeCompute("invalid", 0)
		return Result{}, err
	}
	if res, ok := h.Memo.Get(*sel); ok {
		observeCompute("memo", 0)
		return res, nil
	}
	var opts []Option
	if h.Strict {
		opts = append(opts, Strict())
	}
	start := time.Now()
	res, err := Compute(h.Catalog, *sel, opts...)
	if err != nil {
		observeCompute("error", time.Since(start))
		return Result{}, err
	}
	observeCompute("ok", time.Since(start))
	h.Memo.Put(*sel, res)
	return res, nil
}

func (h *Handler) validateContact(c Contact) error {
	if h.Validate == nil {
		return nil
	}
	type contactRules struct {
		Name  string `validate:"required,min=2,max=120"`
		Email string `validate:"required,email"`
		Phone string `validate:"omitempty,min=7,max=20"`
	}
	err := h.Validate.Struct(contactRules{Name: c.Name, Email: c.Email, Phone: c.Phone})
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return common.ValidationError(verrs[0].Field(), "invalid contact field")
	}
	return common.ValidationError("contact", "invalid contact")
}

func renderComputeError(w http.ResponseWriter, err error) {
	code := ""
	switch {
	case errors.Is(err, ErrUnknownAgent):
		code = "UNKNOWN_AGENT"
	case errors.Is(err, ErrUnknownService):
		code = "UNKNOWN_SERVICE"
	case errors.Is(err, ErrUnknownPlan):
		code = "UNKNOWN_PLAN"
	case errors.Is(err, ErrUnknownPaymentTerm):
		code = "UNKNOWN_PAYMENT_TERM"
	case errors.Is(err, ErrUnknownWarranty):
		code = "UNKNOWN_WARRANTY"
	}
	if code != "" {
		common.JSONError(w, http.StatusUnprocessableEntity, code, err.Error(), nil)
		return
	}
	common.RenderError(w, err)
}

func observeCompute(result string, elapsed time.Duration) {
	if obs.QuoteComputeTotal != nil {
		obs.QuoteComputeTotal.WithLabelValues(result).Inc()
	}
	if obs.QuoteComputeDuration != nil && elapsed > 0 {
		obs.QuoteComputeDuration.Observe(obs.DurationMillis(elapsed))
	}
}

func observeSubmit(result string) {
	if obs.QuoteSubmittedTotal != nil {
		obs.QuoteSubmittedTotal.WithLabelValues(result).Inc()
	}
}

func queryInt(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
