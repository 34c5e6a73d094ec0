package main

import (
	"context"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/aumatic/backend-quote/internal/db"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	if err := db.Migrate(dbURL); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("Failed to ping DB: %v", err)
	}

	seedAgents(ctx, pool)
	seedPlans(ctx, pool)
	seedServices(ctx, pool)
	seedPaymentTerms(ctx, pool)
	seedWarrantyOptions(ctx, pool)

	log.Println("Seeding completed successfully!")
}

func seedAgents(ctx context.Context, pool *pgxpool.Pool) {
	agents := []struct {
		Slug       string
		Name       string
		Complexity string
		Base       string
		Monthly    string
		Setup      string
		Sort       int
	}{
		{"asistente-ventas", "Asistente de Ventas", "advanced", "74831", "14953", "18000", 1},
		{"atencion-clientes", "Atención a Clientes", "medium", "52400", "10900", "12000", 2},
		{"cobranza", "Agente de Cobranza", "medium", "48750", "9800", "12000", 3},
		{"agenda-citas", "Agenda de Citas", "basic", "31200", "6500", "8000", 4},
		{"calificacion-leads", "Calificación de Leads", "advanced", "68900", "13200", "16000", 5},
	}

	log.Println("Seeding agents...")
	for _, a := range agents {
		_, err := pool.Exec(ctx, `
			INSERT INTO agents (slug, name, complexity, base_price, monthly_price, setup_price, sort_order)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (slug) DO UPDATE SET
				name = EXCLUDED.name,
				complexity = EXCLUDED.complexity,
				base_price = EXCLUDED.base_price,
				monthly_price = EXCLUDED.monthly_price,
				setup_price = EXCLUDED.setup_price,
				sort_order = EXCLUDED.sort_order`,
			a.Slug, a.Name, a.Complexity, a.Base, a.Monthly, a.Setup, a.Sort)
		if err != nil {
			log.Fatalf("Failed to seed agent %s: %v", a.Slug, err)
		}
	}
}

func seedPlans(ctx context.Context, pool *pgxpool.Pool) {
	plans := []struct {
		Slug       string
		Name       string
		Monthly    string
		Setup      string
		Multiplier string
		Sort       int
	}{
		{"nube-compartida", "Nube Compartida", "8500", "15000", "1.0", 1},
		{"nube-dedicada", "Nube Dedicada", "19500", "35000", "0.9", 2},
		{"on-premise", "On Premise", "32000", "60000", "0.85", 3},
	}

	log.Println("Seeding plans...")
	for _, p := range plans {
		_, err := pool.Exec(ctx, `
			INSERT INTO plans (slug, name, monthly_price, setup_fee, agent_price_multiplier, sort_order)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (slug) DO UPDATE SET
				name = EXCLUDED.name,
				monthly_price = EXCLUDED.monthly_price,
				setup_fee = EXCLUDED.setup_fee,
				agent_price_multiplier = EXCLUDED.agent_price_multiplier,
				sort_order = EXCLUDED.sort_order`,
			p.Slug, p.Name, p.Monthly, p.Setup, p.Multiplier, p.Sort)
		if err != nil {
			log.Fatalf("Failed to seed plan %s: %v", p.Slug, err)
		}
	}
}

func seedServices(ctx context.Context, pool *pgxpool.Pool) {
	services := []struct {
		Slug    string
		Name    string
		Price   string
		Billing string
		Sort    int
	}{
		{"capacitacion", "Capacitación del equipo", "5000", "one_time", 1},
		{"integracion-crm", "Integración con CRM", "12000", "one_time", 2},
		{"soporte-extendido", "Soporte extendido", "2500", "monthly", 3},
		{"reportes-avanzados", "Reportes avanzados", "1800", "monthly", 4},
	}

	log.Println("Seeding services...")
	for _, s := range services {
		_, err := pool.Exec(ctx, `
			INSERT INTO services (slug, name, price, billing, sort_order)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (slug) DO UPDATE SET
				name = EXCLUDED.name,
				price = EXCLUDED.price,
				billing = EXCLUDED.billing,
				sort_order = EXCLUDED.sort_order`,
			s.Slug, s.Name, s.Price, s.Billing, s.Sort)
		if err != nil {
			log.Fatalf("Failed to seed service %s: %v", s.Slug, err)
		}
	}
}

func seedPaymentTerms(ctx context.Context, pool *pgxpool.Pool) {
	terms := []struct {
		Key        string
		Label      string
		Multiplier string
		Sort       int
	}{
		{"50-50", "50% anticipo, 50% a la entrega", "1.0", 1},
		{"100-0", "100% anticipado", "0.95", 2},
		{"3-pagos", "3 pagos mensuales", "1.05", 3},
	}

	log.Println("Seeding payment terms...")
	for _, t := range terms {
		_, err := pool.Exec(ctx, `
			INSERT INTO payment_terms (key, label, total_multiplier, sort_order)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (key) DO UPDATE SET
				label = EXCLUDED.label,
				total_multiplier = EXCLUDED.total_multiplier,
				sort_order = EXCLUDED.sort_order`,
			t.Key, t.Label, t.Multiplier, t.Sort)
		if err != nil {
			log.Fatalf("Failed to seed payment term %s: %v", t.Key, err)
		}
	}
}

func seedWarrantyOptions(ctx context.Context, pool *pgxpool.Pool) {
	options := []struct {
		Key   string
		Label string
		Pct   string
		Sort  int
	}{
		{"3-meses", "3 meses incluidos", "0", 1},
		{"6-meses", "6 meses", "0.05", 2},
		{"12-meses", "12 meses", "0.10", 3},
	}

	log.Println("Seeding warranty options...")
	for _, o := range options {
		_, err := pool.Exec(ctx, `
			INSERT INTO warranty_options (key, label, surcharge_pct, sort_order)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (key) DO UPDATE SET
				label = EXCLUDED.label,
				surcharge_pct = EXCLUDED.surcharge_pct,
				sort_order = EXCLUDED.sort_order`,
			o.Key, o.Label, o.Pct, o.Sort)
		if err != nil {
			log.Fatalf("Failed to seed warranty option %s: %v", o.Key, err)
		}
	}
}
