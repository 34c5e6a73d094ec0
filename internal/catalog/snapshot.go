package catalog

import "github.com/google/uuid"

// Snapshot is an immutable in-memory view of the reference catalog. It is
// loaded once at startup and shared across requests; all accessors are safe
// for concurrent use because nothing mutates the snapshot after construction.
type Snapshot struct {
	agents     map[uuid.UUID]Agent
	plans      map[uuid.UUID]Plan
	services   map[uuid.UUID]Service
	terms      map[string]PaymentTerm
	warranties map[string]WarrantyOption

	agentOrder   []Agent
	planOrder    []Plan
	serviceOrder []Service
	termOrder    []PaymentTerm
	warrOrder    []WarrantyOption
}

// NewSnapshot builds a snapshot from loaded catalog rows, preserving order.
func NewSnapshot(agents []Agent, plans []Plan, services []Service, terms []PaymentTerm, warranties []WarrantyOption) *Snapshot {
	s := &Snapshot{
		agents:       make(map[uuid.UUID]Agent, len(agents)),
		plans:        make(map[uuid.UUID]Plan, len(plans)),
		services:     make(map[uuid.UUID]Service, len(services)),
		terms:        make(map[string]PaymentTerm, len(terms)),
		warranties:   make(map[string]WarrantyOption, len(warranties)),
		agentOrder:   append([]Agent(nil), agents...),
		planOrder:    append([]Plan(nil), plans...),
		serviceOrder: append([]Service(nil), services...),
		termOrder:    append([]PaymentTerm(nil), terms...),
		warrOrder:    append([]WarrantyOption(nil), warranties...),
	}
	for _, a := range agents {
		s.agents[a.ID] = a
	}
	for _, p := range plans {
		s.plans[p.ID] = p
	}
	for _, svc := range services {
		s.services[svc.ID] = svc
	}
	for _, t := range terms {
		s.terms[t.Key] = t
	}
	for _, w := range warranties {
		s.warranties[w.Key] = w
	}
	return s
}

// AgentByID resolves an agent, reporting whether it exists.
func (s *Snapshot) AgentByID(id uuid.UUID) (Agent, bool) {
	a, ok := s.agents[id]
	return a, ok
}

// PlanByID resolves a plan, reporting whether it exists.
func (s *Snapshot) PlanByID(id uuid.UUID) (Plan, bool) {
	p, ok := s.plans[id]
	return p, ok
}

// ServiceByID resolves a service add-on, reporting whether it exists.
func (s *Snapshot) ServiceByID(id uuid.UUID) (Service, bool) {
	svc, ok := s.services[id]
	return svc, ok
}

// PaymentTermByKey resolves a payment term, reporting whether it exists.
func (s *Snapshot) PaymentTermByKey(key string) (PaymentTerm, bool) {
	t, ok := s.terms[key]
	return t, ok
}

// WarrantyByKey resolves a warranty option, reporting whether it exists.
func (s *Snapshot) WarrantyByKey(key string) (WarrantyOption, bool) {
	w, ok := s.warranties[key]
	return w, ok
}

// Agents returns agents in load order.
func (s *Snapshot) Agents() []Agent { return append([]Agent(nil), s.agentOrder...) }

// Plans returns plans in load order.
func (s *Snapshot) Plans() []Plan { return append([]Plan(nil), s.planOrder...) }

// Services returns services in load order.
func (s *Snapshot) Services() []Service { return append([]Service(nil), s.serviceOrder...) }

// PaymentTerms returns payment terms in load order.
func (s *Snapshot) PaymentTerms() []PaymentTerm { return append([]PaymentTerm(nil), s.termOrder...) }

// WarrantyOptions returns warranty options in load order.
func (s *Snapshot) WarrantyOptions() []WarrantyOption {
	return append([]WarrantyOption(nil), s.warrOrder...)
}
