package crdt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackerwins/riftdoc/pkg/document/time"
)

func TestSnapshotRoundTripPreservesLiveContent(t *testing.T) {
	actor := time.NewActorID()
	lamport := uint64(0)
	next := func() *time.Ticket {
		lamport++
		return time.NewTicket(lamport, 0, actor)
	}

	obj := NewEmptyObject(next())
	obj.Set("title", NewPrimitive("hello", next()))
	obj.Set("done", NewPrimitive(true, next()))

	counter := NewCounter(IntegerCnt, 1, next())
	obj.Set("views", counter)

	arr := NewArray(NewRGATreeList(), next())
	arr.Add(NewPrimitive("a", next()))
	arr.Add(NewPrimitive("b", next()))
	obj.Set("items", arr)

	text := NewText(NewRGATreeSplit(), next())
	from, to := text.CreateRange(0, 0)
	_, _, _, _, err := text.Edit(from, to, nil, "hi", nil, next())
	require.NoError(t, err)
	obj.Set("body", text)

	root := NewRoot(obj)
	data, err := root.Bytes()
	require.NoError(t, err)

	restored, err := RootFromBytes(data)
	require.NoError(t, err)

	restoredTitle, ok := restored.Object().Get("title")
	require.True(t, ok)
	assert.Equal(t, "hello", restoredTitle.(*Primitive).Value())

	restoredCounter, ok := restored.Object().Get("views")
	require.True(t, ok)
	assert.Equal(t, int64(1), restoredCounter.(*Counter).Value())

	restoredArr, ok := restored.Object().Get("items")
	require.True(t, ok)
	assert.Equal(t, 2, restoredArr.(*Array).Len())

	restoredText, ok := restored.Object().Get("body")
	require.True(t, ok)
	assert.Equal(t, "hi", restoredText.(*Text).String())
}

func TestSnapshotRoundTripRejectsNonObjectRoot(t *testing.T) {
	_, err := RootFromBytes([]byte(`{"type":"primitive","createdAt":{"lamport":0,"delimiter":0,"actor":"00000000000000000000000000000000"}}`))
	assert.Error(t, err)
}
