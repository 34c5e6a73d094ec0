package quote_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/aumatic/backend-quote/internal/quote"
)

func TestSelectionToggleSemantics(t *testing.T) {
	var sel quote.Selection
	a := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	b := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	require.True(t, sel.ToggleAgent(a))
	require.True(t, sel.ToggleAgent(b))
	require.Equal(t, []uuid.UUID{a, b}, sel.AgentIDs)

	// toggling again removes, preserving the order of the rest
	require.False(t, sel.ToggleAgent(a))
	require.Equal(t, []uuid.UUID{b}, sel.AgentIDs)

	require.True(t, sel.ToggleAgent(a))
	require.Equal(t, []uuid.UUID{b, a}, sel.AgentIDs)
}

func TestSelectionPlanLastWriteWins(t *testing.T) {
	var sel quote.Selection
	first := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	second := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	sel.ChoosePlan(first)
	sel.ChoosePlan(second)
	require.NotNil(t, sel.PlanID)
	require.Equal(t, second, *sel.PlanID)

	sel.ClearPlan()
	require.Nil(t, sel.PlanID)
}

func TestSelectionNormalizeDedupes(t *testing.T) {
	a := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	b := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	sel := quote.Selection{
		AgentIDs:   []uuid.UUID{a, b, a, a},
		ServiceIDs: []uuid.UUID{b, b},
	}
	sel.Normalize()
	require.Equal(t, []uuid.UUID{a, b}, sel.AgentIDs)
	require.Equal(t, []uuid.UUID{b}, sel.ServiceIDs)
}

func TestSelectionCloneIsDeep(t *testing.T) {
	a := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	p := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	sel := quote.Selection{AgentIDs: []uuid.UUID{a}, PlanID: &p}

	clone := sel.Clone()
	clone.AgentIDs[0] = uuid.MustParse("99999999-9999-9999-9999-999999999999")
	*clone.PlanID = uuid.MustParse("99999999-9999-9999-9999-999999999999")

	require.Equal(t, a, sel.AgentIDs[0])
	require.Equal(t, p, *sel.PlanID)
}

func TestSelectionEqual(t *testing.T) {
	a := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	sel := quote.Selection{AgentIDs: []uuid.UUID{a}, PaymentTermKey: "50-50", Currency: "MXN"}

	require.True(t, sel.Equal(sel.Clone()))

	other := sel.Clone()
	other.PaymentTermKey = "100-0"
	require.False(t, sel.Equal(other))

	other = sel.Clone()
	other.ChoosePlan(a)
	require.False(t, sel.Equal(other))
}
