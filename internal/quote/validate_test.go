package quote_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aumatic/backend-quote/internal/common"
	"github.com/aumatic/backend-quote/internal/quote"
)

func TestValidateSelectionFillsDefaults(t *testing.T) {
	sel := quote.Selection{}
	err := quote.ValidateSelection(&sel, quote.Limits{DefaultCurrency: "MXN", MaxValidityDays: 365, DefaultValidityDays: 30})
	require.NoError(t, err)
	require.Equal(t, "MXN", sel.Currency)
	require.Equal(t, 30, sel.ValidityDays)
}

func TestValidateSelectionRejectsBadCurrency(t *testing.T) {
	for _, currency := range []string{"MX", "mxn", "PESO"} {
		sel := quote.Selection{Currency: currency}
		err := quote.ValidateSelection(&sel, quote.Limits{DefaultCurrency: "MXN"})
		require.Error(t, err, "currency %q", currency)
		require.True(t, common.IsAppError(err))
	}
}

func TestValidateSelectionValidityBounds(t *testing.T) {
	sel := quote.Selection{Currency: "MXN", ValidityDays: -1}
	require.Error(t, quote.ValidateSelection(&sel, quote.Limits{}))

	// zero without a configured default is not a valid validity
	sel = quote.Selection{Currency: "MXN"}
	require.Error(t, quote.ValidateSelection(&sel, quote.Limits{MaxValidityDays: 365}))

	sel = quote.Selection{Currency: "MXN", ValidityDays: 400}
	err := quote.ValidateSelection(&sel, quote.Limits{MaxValidityDays: 365})
	require.Error(t, err)

	var appErr *common.AppError
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, "VALIDATION", appErr.Code)

	sel = quote.Selection{Currency: "MXN", ValidityDays: 30}
	require.NoError(t, quote.ValidateSelection(&sel, quote.Limits{MaxValidityDays: 365}))
}
