package catalog_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/aumatic/backend-quote/internal/catalog"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func fixtureSnapshot(t *testing.T) (*catalog.Snapshot, catalog.Agent, catalog.Plan, catalog.Service) {
	t.Helper()
	agent := catalog.Agent{
		ID:           uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		Slug:         "asistente-ventas",
		Name:         "Asistente de Ventas",
		Complexity:   catalog.ComplexityAdvanced,
		BasePrice:    dec("74831"),
		MonthlyPrice: dec("14953"),
		SetupPrice:   dec("18000"),
	}
	plan := catalog.Plan{
		ID:                   uuid.MustParse("22222222-2222-2222-2222-222222222222"),
		Slug:                 "nube-compartida",
		Name:                 "Nube Compartida",
		MonthlyPrice:         dec("8500"),
		SetupFee:             dec("15000"),
		AgentPriceMultiplier: dec("1.0"),
	}
	service := catalog.Service{
		ID:      uuid.MustParse("33333333-3333-3333-3333-333333333333"),
		Slug:    "capacitacion",
		Name:    "Capacitación del equipo",
		Price:   dec("5000"),
		Billing: catalog.BillingOneTime,
	}
	snap := catalog.NewSnapshot(
		[]catalog.Agent{agent},
		[]catalog.Plan{plan},
		[]catalog.Service{service},
		[]catalog.PaymentTerm{{Key: "50-50", Label: "50% anticipo, 50% a la entrega", TotalMultiplier: dec("1.0")}},
		[]catalog.WarrantyOption{{Key: "3-meses", Label: "3 meses incluidos", SurchargePct: dec("0")}},
	)
	return snap, agent, plan, service
}

func TestSnapshotLookups(t *testing.T) {
	snap, agent, plan, service := fixtureSnapshot(t)

	got, ok := snap.AgentByID(agent.ID)
	require.True(t, ok)
	require.Equal(t, agent.Slug, got.Slug)
	require.True(t, got.BasePrice.Equal(dec("74831")))

	_, ok = snap.AgentByID(uuid.MustParse("99999999-9999-9999-9999-999999999999"))
	require.False(t, ok)

	gotPlan, ok := snap.PlanByID(plan.ID)
	require.True(t, ok)
	require.True(t, gotPlan.AgentPriceMultiplier.Equal(dec("1.0")))

	gotSvc, ok := snap.ServiceByID(service.ID)
	require.True(t, ok)
	require.Equal(t, catalog.BillingOneTime, gotSvc.Billing)

	term, ok := snap.PaymentTermByKey("50-50")
	require.True(t, ok)
	require.True(t, term.TotalMultiplier.Equal(dec("1.0")))

	_, ok = snap.PaymentTermByKey("typo")
	require.False(t, ok)

	warranty, ok := snap.WarrantyByKey("3-meses")
	require.True(t, ok)
	require.True(t, warranty.SurchargePct.IsZero())
}

func TestSnapshotListsPreserveOrderAndCopy(t *testing.T) {
	snap, agent, _, _ := fixtureSnapshot(t)

	agents := snap.Agents()
	require.Len(t, agents, 1)
	require.Equal(t, agent.ID, agents[0].ID)

	// mutating the returned slice must not leak into the snapshot
	agents[0].Slug = "mutated"
	again := snap.Agents()
	require.Equal(t, "asistente-ventas", again[0].Slug)
}
