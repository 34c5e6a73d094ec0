package quote

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aumatic/backend-quote/internal/catalog"
)

var (
	// ErrUnknownAgent is returned when the selection references an agent absent from the catalog.
	ErrUnknownAgent = errors.New("quote: unknown agent")
	// ErrUnknownService is returned when the selection references a service absent from the catalog.
	ErrUnknownService = errors.New("quote: unknown service")
	// ErrUnknownPlan is returned when the selected plan does not exist.
	ErrUnknownPlan = errors.New("quote: unknown plan")
	// ErrUnknownPaymentTerm is returned in strict mode for an unrecognised payment term key.
	ErrUnknownPaymentTerm = errors.New("quote: unknown payment term")
	// ErrUnknownWarranty is returned in strict mode for an unrecognised warranty key.
	ErrUnknownWarranty = errors.New("quote: unknown warranty option")
)

// Catalog is the read-only lookup surface the engine computes against.
// *catalog.Snapshot satisfies it.
type Catalog interface {
	AgentByID(uuid.UUID) (catalog.Agent, bool)
	PlanByID(uuid.UUID) (catalog.Plan, bool)
	ServiceByID(uuid.UUID) (catalog.Service, bool)
	PaymentTermByKey(string) (catalog.PaymentTerm, bool)
	WarrantyByKey(string) (catalog.WarrantyOption, bool)
}

// Result is the immutable totals breakdown produced by a single computation.
// All figures are rounded to two decimal places exactly once, when the result
// is assembled. ComputedAt is informational and excluded from Equal.
type Result struct {
	OneTimeSubtotal       decimal.Decimal `json:"oneTimeSubtotal"`
	RecurringMonthlyTotal decimal.Decimal `json:"recurringMonthlyTotal"`
	SetupTotal            decimal.Decimal `json:"setupTotal"`
	WarrantySurcharge     decimal.Decimal `json:"warrantySurcharge"`
	GrandTotalInitial     decimal.Decimal `json:"grandTotalInitial"`
	FirstYearTotal        decimal.Decimal `json:"firstYearTotal"`
	Currency              string          `json:"currency"`
	ComputedAt            time.Time       `json:"computedAt"`
}

// Equal compares totals and currency, ignoring ComputedAt.
func (r Result) Equal(other Result) bool {
	return r.OneTimeSubtotal.Equal(other.OneTimeSubtotal) &&
		r.RecurringMonthlyTotal.Equal(other.RecurringMonthlyTotal) &&
		r.SetupTotal.Equal(other.SetupTotal) &&
		r.WarrantySurcharge.Equal(other.WarrantySurcharge) &&
		r.GrandTotalInitial.Equal(other.GrandTotalInitial) &&
		r.FirstYearTotal.Equal(other.FirstYearTotal) &&
		r.Currency == other.Currency
}

type options struct {
	strict bool
	now    func() time.Time
}

// Option configures a computation.
type Option func(*options)

// Strict makes unknown payment-term and warranty keys fail instead of
// degrading to the neutral defaults.
func Strict() Option {
	return func(o *options) { o.strict = true }
}

// WithClock overrides the timestamp source, used by tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

var (
	one    = decimal.NewFromInt(1)
	twelve = decimal.NewFromInt(12)
)

// Compute derives the totals breakdown for a selection against the catalog.
// It is pure and deterministic: the same selection and catalog always produce
// the same totals. Referential misses abort with no partial result.
//
// Accumulation order is fixed for reproducibility: agents, plan, services,
// payment-term adjustment on the one-time subtotal, warranty surcharge on the
// adjusted subtotal, grand totals. No intermediate rounding happens; the six
// returned figures are rounded to two decimals at the end.
func Compute(cat Catalog, sel Selection, opts ...Option) (Result, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	now := time.Now
	if o.now != nil {
		now = o.now
	}

	planMultiplier := one
	var plan catalog.Plan
	planSelected := false
	if sel.PlanID != nil {
		p, ok := cat.PlanByID(*sel.PlanID)
		if !ok {
			return Result{}, fmt.Errorf("%w: %s", ErrUnknownPlan, sel.PlanID)
		}
		plan = p
		planSelected = true
		planMultiplier = p.AgentPriceMultiplier
	}

	var oneTime, monthly, setup decimal.Decimal

	for _, id := range sel.AgentIDs {
		agent, ok := cat.AgentByID(id)
		if !ok {
			return Result{}, fmt.Errorf("%w: %s", ErrUnknownAgent, id)
		}
		oneTime = oneTime.Add(agent.BasePrice.Mul(planMultiplier))
		monthly = monthly.Add(agent.MonthlyPrice)
		setup = setup.Add(agent.SetupPrice)
	}

	if planSelected {
		monthly = monthly.Add(plan.MonthlyPrice)
		setup = setup.Add(plan.SetupFee)
	}

	for _, id := range sel.ServiceIDs {
		svc, ok := cat.ServiceByID(id)
		if !ok {
			return Result{}, fmt.Errorf("%w: %s", ErrUnknownService, id)
		}
		if svc.Billing == catalog.BillingMonthly {
			monthly = monthly.Add(svc.Price)
		} else {
			oneTime = oneTime.Add(svc.Price)
		}
	}

	termMultiplier := one
	if sel.PaymentTermKey != "" {
		if term, ok := cat.PaymentTermByKey(sel.PaymentTermKey); ok {
			termMultiplier = term.TotalMultiplier
		} else if o.strict {
			return Result{}, fmt.Errorf("%w: %q", ErrUnknownPaymentTerm, sel.PaymentTermKey)
		}
	}
	oneTime = oneTime.Mul(termMultiplier)

	surchargePct := decimal.Zero
	if sel.WarrantyKey != "" {
		if warranty, ok := cat.WarrantyByKey(sel.WarrantyKey); ok {
			surchargePct = warranty.SurchargePct
		} else if o.strict {
			return Result{}, fmt.Errorf("%w: %q", ErrUnknownWarranty, sel.WarrantyKey)
		}
	}
	surcharge := oneTime.Mul(surchargePct)

	grandInitial := oneTime.Add(setup).Add(surcharge)
	firstYear := grandInitial.Add(monthly.Mul(twelve))

	return Result{
		OneTimeSubtotal:       oneTime.Round(2),
		RecurringMonthlyTotal: monthly.Round(2),
		SetupTotal:            setup.Round(2),
		WarrantySurcharge:     surcharge.Round(2),
		GrandTotalInitial:     grandInitial.Round(2),
		FirstYearTotal:        firstYear.Round(2),
		Currency:              sel.Currency,
		ComputedAt:            now().UTC(),
	}, nil
}
