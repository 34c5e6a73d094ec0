package quote

import (
	"slices"

	"github.com/google/uuid"
)

// Selection captures the user's current choices in the quote wizard. Agent
// and service ids behave as toggle-sets; the plan is single-valued with
// last-write-wins semantics, matching the UI behaviour.
type Selection struct {
	AgentIDs       []uuid.UUID `json:"agentIds"`
	PlanID         *uuid.UUID  `json:"planId,omitempty"`
	ServiceIDs     []uuid.UUID `json:"serviceIds"`
	PaymentTermKey string      `json:"paymentTermKey"`
	WarrantyKey    string      `json:"warrantyKey"`
	Currency       string      `json:"currency"`
	ValidityDays   int         `json:"validityDays"`
}

// ToggleAgent adds the agent when absent and removes it when present.
// It reports whether the agent is selected after the call.
func (s *Selection) ToggleAgent(id uuid.UUID) bool {
	s.AgentIDs, _ = toggle(s.AgentIDs, id)
	return slices.Contains(s.AgentIDs, id)
}

// ToggleService adds the service when absent and removes it when present.
// It reports whether the service is selected after the call.
func (s *Selection) ToggleService(id uuid.UUID) bool {
	s.ServiceIDs, _ = toggle(s.ServiceIDs, id)
	return slices.Contains(s.ServiceIDs, id)
}

// ChoosePlan selects the plan, replacing any previous choice.
func (s *Selection) ChoosePlan(id uuid.UUID) {
	s.PlanID = &id
}

// ClearPlan removes the plan selection.
func (s *Selection) ClearPlan() {
	s.PlanID = nil
}

// Normalize removes duplicate ids while preserving first-seen order.
// Externally supplied selections may carry duplicates; the toggle API never
// produces them.
func (s *Selection) Normalize() {
	s.AgentIDs = dedupe(s.AgentIDs)
	s.ServiceIDs = dedupe(s.ServiceIDs)
}

// Clone returns a deep copy of the selection.
func (s Selection) Clone() Selection {
	out := s
	out.AgentIDs = append([]uuid.UUID(nil), s.AgentIDs...)
	out.ServiceIDs = append([]uuid.UUID(nil), s.ServiceIDs...)
	if s.PlanID != nil {
		id := *s.PlanID
		out.PlanID = &id
	}
	return out
}

// Equal reports whether two selections are identical, including order.
func (s Selection) Equal(other Selection) bool {
	if !slices.Equal(s.AgentIDs, other.AgentIDs) || !slices.Equal(s.ServiceIDs, other.ServiceIDs) {
		return false
	}
	if (s.PlanID == nil) != (other.PlanID == nil) {
		return false
	}
	if s.PlanID != nil && *s.PlanID != *other.PlanID {
		return false
	}
	return s.PaymentTermKey == other.PaymentTermKey &&
		s.WarrantyKey == other.WarrantyKey &&
		s.Currency == other.Currency &&
		s.ValidityDays == other.ValidityDays
}

func toggle(ids []uuid.UUID, id uuid.UUID) ([]uuid.UUID, bool) {
	for i, existing := range ids {
		if existing == id {
			return append(ids[:i:i], ids[i+1:]...), false
		}
	}
	return append(ids, id), true
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	if len(ids) < 2 {
		return ids
	}
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
