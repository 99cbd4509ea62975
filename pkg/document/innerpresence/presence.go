// Package innerpresence implements the per-actor presence data carried
// alongside a document: ephemeral key/value state such as cursor position
// or display name that rides the same change stream as the document but
// never enters the CRDT tree itself.
package innerpresence

// Presence is a bag of string key/value pairs describing one actor's
// ephemeral state.
type Presence map[string]string

// NewPresence creates a new, empty Presence.
func NewPresence() Presence {
	return make(Presence)
}

// DeepCopy returns a copy of p.
func (p Presence) DeepCopy() Presence {
	if p == nil {
		return nil
	}
	copied := make(Presence, len(p))
	for k, v := range p {
		copied[k] = v
	}
	return copied
}

// Map is a concurrency-unsafe registry of Presence keyed by actor ID
// string, mutated only within a single Document's critical sections.
type Map struct {
	presences map[string]Presence
}

// NewMap creates a new, empty Map.
func NewMap() *Map {
	return &Map{presences: make(map[string]Presence)}
}

// Load returns the presence registered for key.
func (m *Map) Load(key string) (Presence, bool) {
	p, ok := m.presences[key]
	return p, ok
}

// LoadOrStore returns the presence registered for key, storing def under key
// first if none exists yet.
func (m *Map) LoadOrStore(key string, def Presence) Presence {
	if p, ok := m.presences[key]; ok {
		return p
	}
	m.presences[key] = def
	return def
}

// Store registers p under key, replacing any previous value.
func (m *Map) Store(key string, p Presence) {
	m.presences[key] = p
}

// Delete removes the presence registered for key.
func (m *Map) Delete(key string) {
	delete(m.presences, key)
}

// Range calls f for every key/presence pair, stopping early if f returns
// false.
func (m *Map) Range(f func(key string, p Presence) bool) {
	for k, p := range m.presences {
		if !f(k, p) {
			return
		}
	}
}

// DeepCopy returns a copy of m and every presence it holds.
func (m *Map) DeepCopy() *Map {
	if m == nil {
		return NewMap()
	}
	copied := NewMap()
	for k, p := range m.presences {
		copied.presences[k] = p.DeepCopy()
	}
	return copied
}
