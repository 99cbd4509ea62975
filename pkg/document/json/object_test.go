package json_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackerwins/riftdoc/pkg/document/change"
	"github.com/hackerwins/riftdoc/pkg/document/crdt"
	jsonpkg "github.com/hackerwins/riftdoc/pkg/document/json"
	"github.com/hackerwins/riftdoc/pkg/document/time"
)

func newTestContext() (*change.Context, *crdt.Root) {
	actor := time.NewActorID()
	root := crdt.NewRoot(crdt.NewEmptyObject(time.NewTicket(0, 0, actor)))
	ctx := change.NewContext(change.InitialID.SetActor(actor), "test", root)
	return ctx, root
}

func TestObjectSetAndGetPrimitives(t *testing.T) {
	ctx, root := newTestContext()
	obj := jsonpkg.NewObject(ctx, root.Object())

	obj.SetString("title", "hello").SetBool("done", true).SetInteger("count", 3)

	assert.True(t, obj.Has("title"))
	assert.Contains(t, obj.Keys(), "count")
	assert.JSONEq(t, `{"title":"hello","done":true,"count":3}`, obj.Marshal())
}

func TestObjectSetNewNestedContainers(t *testing.T) {
	ctx, root := newTestContext()
	obj := jsonpkg.NewObject(ctx, root.Object())

	nested := obj.SetNewObject("profile")
	nested.SetString("name", "yorkie")

	arr := obj.SetNewArray("todos")
	arr.AddString("wash dishes").AddString("walk dog")

	text := obj.SetNewText("body")
	text.Edit(0, 0, "hi", nil)

	counter := obj.SetNewCounter("views", crdt.IntegerCnt, 0)
	counter.Increase(5)

	require.NotNil(t, obj.GetObject("profile"))
	assert.JSONEq(t, `{"name":"yorkie"}`, obj.GetObject("profile").Marshal())
	assert.Equal(t, 2, obj.GetArray("todos").Len())
	assert.Equal(t, "hi", obj.GetText("body").String())
	assert.Equal(t, int64(5), obj.GetCounter("views").Value())
}

func TestObjectDeleteRemovesKey(t *testing.T) {
	ctx, root := newTestContext()
	obj := jsonpkg.NewObject(ctx, root.Object())
	obj.SetString("k", "v")
	require.True(t, obj.Has("k"))

	obj.Delete("k")
	assert.False(t, obj.Has("k"))
}

func TestObjectGetWrongTypeReturnsNil(t *testing.T) {
	ctx, root := newTestContext()
	obj := jsonpkg.NewObject(ctx, root.Object())
	obj.SetString("k", "v")

	assert.Nil(t, obj.GetArray("k"))
	assert.Nil(t, obj.GetObject("k"))
	assert.Nil(t, obj.GetText("k"))
	assert.Nil(t, obj.GetCounter("k"))
}

func TestArrayAddMoveSetDelete(t *testing.T) {
	ctx, root := newTestContext()
	obj := jsonpkg.NewObject(ctx, root.Object())
	arr := obj.SetNewArray("list")

	arr.AddString("a").AddString("b").AddString("c")
	require.Equal(t, 3, arr.Len())

	first, err := arr.Get(0)
	require.NoError(t, err)
	third, err := arr.Get(2)
	require.NoError(t, err)

	arr.MoveAfter(third.CreatedAt(), first.CreatedAt())
	moved, err := arr.Get(2)
	require.NoError(t, err)
	assert.Equal(t, first.CreatedAt(), moved.CreatedAt())

	arr.SetByIndex(0, "z")
	elem, err := arr.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "z", elem.(*crdt.Primitive).Value())

	arr.Delete(1)
	assert.Equal(t, 2, arr.Len())
}

func TestArrayAddToEmptyArrayUsesHeadSentinel(t *testing.T) {
	ctx, root := newTestContext()
	obj := jsonpkg.NewObject(ctx, root.Object())
	arr := obj.SetNewArray("empty")

	arr.AddString("only")
	require.Equal(t, 1, arr.Len())
	elem, err := arr.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "only", elem.(*crdt.Primitive).Value())
}
