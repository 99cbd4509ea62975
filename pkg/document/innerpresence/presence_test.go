package innerpresence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPresenceDeepCopyIsIndependent(t *testing.T) {
	p := NewPresence()
	p["color"] = "red"

	copied := p.DeepCopy()
	copied["color"] = "blue"

	assert.Equal(t, "red", p["color"])
	assert.Equal(t, "blue", copied["color"])
}

func TestPresenceDeepCopyOfNilIsNil(t *testing.T) {
	var p Presence
	assert.Nil(t, p.DeepCopy())
}

func TestMapLoadOrStore(t *testing.T) {
	m := NewMap()
	def := NewPresence()
	def["name"] = "a"

	got := m.LoadOrStore("actor-1", def)
	assert.Equal(t, def, got)

	other := NewPresence()
	other["name"] = "b"
	got = m.LoadOrStore("actor-1", other)
	assert.Equal(t, def, got, "LoadOrStore must not overwrite an existing entry")
}

func TestMapStoreAndDelete(t *testing.T) {
	m := NewMap()
	m.Store("actor-1", Presence{"k": "v"})

	p, ok := m.Load("actor-1")
	assert.True(t, ok)
	assert.Equal(t, "v", p["k"])

	m.Delete("actor-1")
	_, ok = m.Load("actor-1")
	assert.False(t, ok)
}

func TestMapRangeStopsEarly(t *testing.T) {
	m := NewMap()
	m.Store("a", NewPresence())
	m.Store("b", NewPresence())
	m.Store("c", NewPresence())

	seen := 0
	m.Range(func(key string, p Presence) bool {
		seen++
		return seen < 2
	})
	assert.Equal(t, 2, seen)
}

func TestMapDeepCopyIsIndependent(t *testing.T) {
	m := NewMap()
	m.Store("actor-1", Presence{"cursor": "0"})

	copied := m.DeepCopy()
	copiedPresence, _ := copied.Load("actor-1")
	copiedPresence["cursor"] = "5"

	original, _ := m.Load("actor-1")
	assert.Equal(t, "0", original["cursor"])
}

func TestMapDeepCopyOfNilReturnsEmptyMap(t *testing.T) {
	var m *Map
	copied := m.DeepCopy()
	_, ok := copied.Load("anything")
	assert.False(t, ok)
}
