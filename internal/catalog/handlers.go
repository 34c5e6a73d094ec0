package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aumatic/backend-quote/internal/common"
)

// Handler serves the read-only catalog endpoints from the startup snapshot.
type Handler struct {
	Snapshot *Snapshot
	Cache    *Cache
}

// Bundle aggregates the full catalog for the quote wizard's initial load.
type Bundle struct {
	Agents          []Agent          `json:"agents"`
	Plans           []Plan           `json:"plans"`
	Services        []Service        `json:"services"`
	PaymentTerms    []PaymentTerm    `json:"paymentTerms"`
	WarrantyOptions []WarrantyOption `json:"warrantyOptions"`
}

const bundleCacheKey = "catalog:bundle"

// Full returns the entire catalog in a single payload.
func (h *Handler) Full(w http.ResponseWriter, r *http.Request) {
	if h.Snapshot == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog not loaded", nil)
		return
	}
	var cached Bundle
	if ok, err := h.Cache.GetJSON(r.Context(), bundleCacheKey, &cached); err == nil && ok {
		common.JSONData(w, http.StatusOK, cached)
		return
	}
	bundle := Bundle{
		Agents:          h.Snapshot.Agents(),
		Plans:           h.Snapshot.Plans(),
		Services:        h.Snapshot.Services(),
		PaymentTerms:    h.Snapshot.PaymentTerms(),
		WarrantyOptions: h.Snapshot.WarrantyOptions(),
	}
	if err := h.Cache.SetJSON(r.Context(), bundleCacheKey, bundle); err != nil {
		// the response is served from the snapshot either way
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("catalog bundle cache write failed")
	}
	common.JSONData(w, http.StatusOK, bundle)
}

// Agents lists the selectable agents.
func (h *Handler) Agents(w http.ResponseWriter, r *http.Request) {
	common.JSONData(w, http.StatusOK, h.Snapshot.Agents())
}

// AgentByID returns a single agent.
func (h *Handler) AgentByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid agent id", nil)
		return
	}
	agent, ok := h.Snapshot.AgentByID(id)
	if !ok {
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "agent not found", nil)
		return
	}
	common.JSONData(w, http.StatusOK, agent)
}

// Plans lists the subscription plans.
func (h *Handler) Plans(w http.ResponseWriter, r *http.Request) {
	common.JSONData(w, http.StatusOK, h.Snapshot.Plans())
}

// Services lists the optional add-on services.
func (h *Handler) Services(w http.ResponseWriter, r *http.Request) {
	common.JSONData(w, http.StatusOK, h.Snapshot.Services())
}

// PaymentTerms lists the payment term options.
func (h *Handler) PaymentTerms(w http.ResponseWriter, r *http.Request) {
	common.JSONData(w, http.StatusOK, h.Snapshot.PaymentTerms())
}

// WarrantyOptions lists the warranty options.
func (h *Handler) WarrantyOptions(w http.ResponseWriter, r *http.Request) {
	common.JSONData(w, http.StatusOK, h.Snapshot.WarrantyOptions())
}
