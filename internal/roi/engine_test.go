package roi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/aumatic/backend-quote/internal/roi"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestComputeEstimate(t *testing.T) {
	est, err := roi.Compute(roi.Input{
		HoursAutomatedPerWeek: dec("20"),
		HourlyCost:            dec("150"),
		ImplementationCost:    dec("90000"),
		MonthlyCost:           dec("8500"),
	})
	require.NoError(t, err)

	// 20 * 4.3333 * 150 = 12999.90 per month
	require.True(t, est.MonthlySavings.Equal(dec("12999.9")), "monthly=%s", est.MonthlySavings)
	require.True(t, est.YearlySavings.Equal(dec("155998.8")), "yearly=%s", est.YearlySavings)
	require.True(t, est.NetMonthly.Equal(dec("4499.9")), "net=%s", est.NetMonthly)
	require.True(t, est.PaybackMonths.Equal(dec("20")), "payback=%s", est.PaybackMonths)
	require.False(t, est.NeverPaysBack)

	// first-year cost 192000, ROI = (155998.8 - 192000) / 192000 * 100
	require.True(t, est.FirstYearROIPct.Equal(dec("-18.75")), "roi=%s", est.FirstYearROIPct)
}

func TestComputeNeverPaysBack(t *testing.T) {
	est, err := roi.Compute(roi.Input{
		HoursAutomatedPerWeek: dec("1"),
		HourlyCost:            dec("100"),
		ImplementationCost:    dec("50000"),
		MonthlyCost:           dec("9000"),
	})
	require.NoError(t, err)
	require.True(t, est.NetMonthly.IsNegative())
	require.True(t, est.PaybackMonths.IsZero())
	require.True(t, est.NeverPaysBack)
}

func TestComputeZeroInput(t *testing.T) {
	est, err := roi.Compute(roi.Input{})
	require.NoError(t, err)
	require.True(t, est.MonthlySavings.IsZero())
	require.True(t, est.FirstYearROIPct.IsZero())
	require.False(t, est.NeverPaysBack)
}

func TestComputeRejectsNegatives(t *testing.T) {
	_, err := roi.Compute(roi.Input{HourlyCost: dec("-1")})
	require.Error(t, err)
}

func TestEstimateHandler(t *testing.T) {
	h := &roi.Handler{}

	body := `{"hoursAutomatedPerWeek": "20", "hourlyCost": "150", "implementationCost": "90000", "monthlyCost": "8500"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/roi/estimate", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Estimate(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data roi.Estimate `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Data.PaybackMonths.Equal(dec("20")))

	bad := httptest.NewRequest(http.MethodPost, "/api/v1/roi/estimate", strings.NewReader(`{"hourlyCost": "-5"}`))
	recBad := httptest.NewRecorder()
	h.Estimate(recBad, bad)
	require.Equal(t, http.StatusUnprocessableEntity, recBad.Code)
}
