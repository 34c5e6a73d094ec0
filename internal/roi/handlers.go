package roi

import (
	"encoding/json"
	"net/http"

	"github.com/aumatic/backend-quote/internal/common"
	"github.com/aumatic/backend-quote/internal/obs"
)

// Handler serves the ROI estimate endpoint.
type Handler struct{}

// Estimate computes the return breakdown for the posted cost structure.
func (h *Handler) Estimate(w http.ResponseWriter, r *http.Request) {
	var in Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}
	est, err := Compute(in)
	if err != nil {
		observeEstimate("invalid")
		common.RenderError(w, err)
		return
	}
	observeEstimate("ok")
	common.JSONData(w, http.StatusOK, est)
}

func observeEstimate(result string) {
	if obs.ROIEstimateTotal != nil {
		obs.ROIEstimateTotal.WithLabelValues(result).Inc()
	}
}
