package crdt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackerwins/riftdoc/pkg/document/crdt"
)

func TestObjectSetGetDelete(t *testing.T) {
	_, next := newTestActor()
	obj := crdt.NewEmptyObject(next())

	obj.Set("name", crdt.NewPrimitive("alice", next()))
	v, ok := obj.Get("name")
	require.True(t, ok)
	assert.Equal(t, "alice", v.(*crdt.Primitive).Value())

	key, ok := obj.KeyOf(v.CreatedAt())
	require.True(t, ok)
	assert.Equal(t, "name", key)

	removed := obj.DeleteByKey("name", next())
	require.NotNil(t, removed)
	assert.False(t, obj.Has("name"))

	// KeyOf must still resolve the tombstoned element's original key.
	key, ok = obj.KeyOf(removed.CreatedAt())
	require.True(t, ok)
	assert.Equal(t, "name", key)
}

func TestObjectLastWriterWins(t *testing.T) {
	_, next := newTestActor()
	obj := crdt.NewEmptyObject(next())

	first := crdt.NewPrimitive("v1", next())
	obj.Set("k", first)
	second := crdt.NewPrimitive("v2", next())
	obj.Set("k", second)

	v, ok := obj.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v2", v.(*crdt.Primitive).Value())
}

func TestArrayAddMoveDelete(t *testing.T) {
	_, next := newTestActor()
	arr := crdt.NewArray(crdt.NewRGATreeList(), next())

	a := crdt.NewPrimitive("a", next())
	b := crdt.NewPrimitive("b", next())
	c := crdt.NewPrimitive("c", next())
	arr.Add(a)
	arr.Add(b)
	arr.Add(c)
	assert.Equal(t, 3, arr.Len())

	prev, err := arr.PrevCreatedAt(c.CreatedAt())
	require.NoError(t, err)
	assert.True(t, prev.Equal(b.CreatedAt()))

	require.NoError(t, arr.MoveAfter(arr.Head(), c.CreatedAt(), next()))
	first, err := arr.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "c", first.(*crdt.Primitive).Value())

	_, err = arr.DeleteByCreatedAt(a.CreatedAt(), next())
	require.NoError(t, err)
	assert.Equal(t, 2, arr.Len())
}
