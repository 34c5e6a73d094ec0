package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Store loads the reference catalog from Postgres. The snapshot it produces is
// taken once at startup; the tables are treated as read-only at runtime.
type Store struct {
	Pool *pgxpool.Pool
}

// LoadSnapshot reads all catalog tables and assembles an immutable snapshot.
func (s Store) LoadSnapshot(ctx context.Context) (*Snapshot, error) {
	agents, err := s.loadAgents(ctx)
	if err != nil {
		return nil, fmt.Errorf("load agents: %w", err)
	}
	plans, err := s.loadPlans(ctx)
	if err != nil {
		return nil, fmt.Errorf("load plans: %w", err)
	}
	services, err := s.loadServices(ctx)
	if err != nil {
		return nil, fmt.Errorf("load services: %w", err)
	}
	terms, err := s.loadPaymentTerms(ctx)
	if err != nil {
		return nil, fmt.Errorf("load payment terms: %w", err)
	}
	warranties, err := s.loadWarranties(ctx)
	if err != nil {
		return nil, fmt.Errorf("load warranty options: %w", err)
	}
	return NewSnapshot(agents, plans, services, terms, warranties), nil
}

func (s Store) loadAgents(ctx context.Context) ([]Agent, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT id, slug, name, complexity,
		       base_price::text, monthly_price::text, setup_price::text
		FROM agents
		WHERE active
		ORDER BY sort_order, slug`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Agent
	for rows.Next() {
		var (
			a                    Agent
			id                   string
			complexity           string
			base, monthly, setup string
		)
		if err := rows.Scan(&id, &a.Slug, &a.Name, &complexity, &base, &monthly, &setup); err != nil {
			return nil, err
		}
		if a.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("agent id: %w", err)
		}
		a.Complexity = Complexity(complexity)
		if a.BasePrice, a.MonthlyPrice, a.SetupPrice, err = parseThree(base, monthly, setup); err != nil {
			return nil, fmt.Errorf("agent %s: %w", a.Slug, err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s Store) loadPlans(ctx context.Context) ([]Plan, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT id, slug, name,
		       monthly_price::text, setup_fee::text, agent_price_multiplier::text
		FROM plans
		WHERE active
		ORDER BY sort_order, slug`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Plan
	for rows.Next() {
		var (
			p                    Plan
			id                   string
			monthly, setup, mult string
		)
		if err := rows.Scan(&id, &p.Slug, &p.Name, &monthly, &setup, &mult); err != nil {
			return nil, err
		}
		if p.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("plan id: %w", err)
		}
		if p.MonthlyPrice, p.SetupFee, p.AgentPriceMultiplier, err = parseThree(monthly, setup, mult); err != nil {
			return nil, fmt.Errorf("plan %s: %w", p.Slug, err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s Store) loadServices(ctx context.Context) ([]Service, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT id, slug, name, price::text, billing
		FROM services
		WHERE active
		ORDER BY sort_order, slug`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Service
	for rows.Next() {
		var (
			svc            Service
			id             string
			price, billing string
		)
		if err := rows.Scan(&id, &svc.Slug, &svc.Name, &price, &billing); err != nil {
			return nil, err
		}
		if svc.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("service id: %w", err)
		}
		if svc.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("service %s price: %w", svc.Slug, err)
		}
		svc.Billing = Billing(billing)
		out = append(out, svc)
	}
	return out, rows.Err()
}

func (s Store) loadPaymentTerms(ctx context.Context) ([]PaymentTerm, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT key, label, total_multiplier::text
		FROM payment_terms
		ORDER BY sort_order, key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PaymentTerm
	for rows.Next() {
		var (
			t    PaymentTerm
			mult string
		)
		if err := rows.Scan(&t.Key, &t.Label, &mult); err != nil {
			return nil, err
		}
		if t.TotalMultiplier, err = decimal.NewFromString(mult); err != nil {
			return nil, fmt.Errorf("payment term %s: %w", t.Key, err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s Store) loadWarranties(ctx context.Context) ([]WarrantyOption, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT key, label, surcharge_pct::text
		FROM warranty_options
		ORDER BY sort_order, key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []WarrantyOption
	for rows.Next() {
		var (
			w   WarrantyOption
			pct string
		)
		if err := rows.Scan(&w.Key, &w.Label, &pct); err != nil {
			return nil, err
		}
		if w.SurchargePct, err = decimal.NewFromString(pct); err != nil {
			return nil, fmt.Errorf("warranty %s: %w", w.Key, err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func parseThree(a, b, c string) (decimal.Decimal, decimal.Decimal, decimal.Decimal, error) {
	da, err := decimal.NewFromString(a)
	if err != nil {
		return decimal.Zero, decimal.Zero, decimal.Zero, err
	}
	db, err := decimal.NewFromString(b)
	if err != nil {
		return decimal.Zero, decimal.Zero, decimal.Zero, err
	}
	dc, err := decimal.NewFromString(c)
	if err != nil {
		return decimal.Zero, decimal.Zero, decimal.Zero, err
	}
	return da, db, dc, nil
}
