package quote_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aumatic/backend-quote/internal/quote"
)

type previewResponse struct {
	Data quote.Result `json:"data"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func previewHandler(t *testing.T) *quote.Handler {
	t.Helper()
	return &quote.Handler{
		Catalog: fixtureCatalog(t),
		Limits:  quote.Limits{DefaultCurrency: "MXN", MaxValidityDays: 365, DefaultValidityDays: 30},
	}
}

func postPreview(t *testing.T, h *quote.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes/preview", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Preview(rec, req)
	return rec
}

func TestPreviewComputesTotals(t *testing.T) {
	h := previewHandler(t)
	body := `{
		"agentIds": ["11111111-1111-1111-1111-111111111111"],
		"planId": "22222222-2222-2222-2222-222222222222",
		"paymentTermKey": "50-50",
		"warrantyKey": "3-meses"
	}`
	rec := postPreview(t, h, body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp previewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Data.GrandTotalInitial.Equal(dec("107831")))
	require.True(t, resp.Data.FirstYearTotal.Equal(dec("389267")))
	require.Equal(t, "MXN", resp.Data.Currency)
}

func TestPreviewBadBody(t *testing.T) {
	rec := postPreview(t, previewHandler(t), `{"agentIds": not-json`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPreviewUnknownAgentMapsTo422(t *testing.T) {
	body := `{"agentIds": ["99999999-9999-9999-9999-999999999999"]}`
	rec := postPreview(t, previewHandler(t), body)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "UNKNOWN_AGENT", resp.Error.Code)
}

func TestPreviewUnknownTermStrictMode(t *testing.T) {
	h := previewHandler(t)
	h.Strict = true
	body := `{"paymentTermKey": "typo"}`
	rec := postPreview(t, h, body)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "UNKNOWN_PAYMENT_TERM", resp.Error.Code)
}

func TestPreviewInvalidCurrency(t *testing.T) {
	rec := postPreview(t, previewHandler(t), `{"currency": "pesos"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "VALIDATION", resp.Error.Code)
}
