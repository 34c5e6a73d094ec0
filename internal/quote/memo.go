package quote

import "sync"

// Memo caches the most recent computation so repeated previews of an
// unchanged selection skip the engine. A single slot is enough: the quote
// wizard mutates one selection at a time.
type Memo struct {
	mu     sync.Mutex
	valid  bool
	sel    Selection
	result Result
}

// Get returns the cached result when the selection matches the last one computed.
func (m *Memo) Get(sel Selection) (Result, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.valid || !m.sel.Equal(sel) {
		return Result{}, false
	}
	return m.result, true
}

// Put stores the result for the given selection, replacing any prior entry.
func (m *Memo) Put(sel Selection, res Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sel = sel.Clone()
	m.result = res
	m.valid = true
}

// Invalidate clears the cached entry.
func (m *Memo) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.valid = false
}
