package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Complexity classifies how involved an agent implementation is.
type Complexity string

// Complexity levels exposed by the catalog.
const (
	ComplexityBasic    Complexity = "basic"
	ComplexityMedium   Complexity = "medium"
	ComplexityAdvanced Complexity = "advanced"
)

// Billing describes how a service add-on is charged.
type Billing string

// Billing units.
const (
	BillingOneTime Billing = "one_time"
	BillingMonthly Billing = "monthly"
)

// Agent is a purchasable automation unit. Prices are stored as exact decimals;
// BasePrice is the one-time implementation cost, MonthlyPrice the recurring
// operation cost, SetupPrice the onboarding cost.
type Agent struct {
	ID           uuid.UUID       `json:"id"`
	Slug         string          `json:"slug"`
	Name         string          `json:"name"`
	Complexity   Complexity      `json:"complexity"`
	BasePrice    decimal.Decimal `json:"basePrice"`
	MonthlyPrice decimal.Decimal `json:"monthlyPrice"`
	SetupPrice   decimal.Decimal `json:"setupPrice"`
}

// Plan is a subscription model. Its multiplier scales agent base prices; the
// plan's own cost lands on the recurring and setup totals only.
type Plan struct {
	ID                   uuid.UUID       `json:"id"`
	Slug                 string          `json:"slug"`
	Name                 string          `json:"name"`
	MonthlyPrice         decimal.Decimal `json:"monthlyPrice"`
	SetupFee             decimal.Decimal `json:"setupFee"`
	AgentPriceMultiplier decimal.Decimal `json:"agentPriceMultiplier"`
}

// Service is an optional add-on billed once or monthly.
type Service struct {
	ID      uuid.UUID       `json:"id"`
	Slug    string          `json:"slug"`
	Name    string          `json:"name"`
	Price   decimal.Decimal `json:"price"`
	Billing Billing         `json:"billing"`
}

// PaymentTerm adjusts the one-time subtotal. A multiplier below 1 models an
// upfront-payment discount, above 1 a deferred-payment surcharge.
type PaymentTerm struct {
	Key             string          `json:"key"`
	Label           string          `json:"label"`
	TotalMultiplier decimal.Decimal `json:"totalMultiplier"`
}

// WarrantyOption adds a percentage surcharge on the adjusted one-time subtotal.
type WarrantyOption struct {
	Key          string          `json:"key"`
	Label        string          `json:"label"`
	SurchargePct decimal.Decimal `json:"surchargePct"`
}
