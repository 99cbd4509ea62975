package operations_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackerwins/riftdoc/pkg/document/crdt"
	"github.com/hackerwins/riftdoc/pkg/document/operations"
	"github.com/hackerwins/riftdoc/pkg/document/time"
)

func newRootAndClock() (*crdt.Root, func() *time.Ticket) {
	actor := time.NewActorID()
	lamport := uint64(0)
	next := func() *time.Ticket {
		lamport++
		return time.NewTicket(lamport, 0, actor)
	}
	root := crdt.NewRoot(crdt.NewEmptyObject(next()))
	return root, next
}

func TestSetThenRemoveReverses(t *testing.T) {
	root, next := newRootAndClock()
	rootObj := root.Object()

	value := crdt.NewPrimitive("hello", next())
	setOp := operations.NewSet(rootObj.CreatedAt(), "greeting", value, next())
	result, err := setOp.Execute(root, operations.SourceLocal, nil)
	require.NoError(t, err)
	require.Len(t, result.ReverseOps, 1)

	v, ok := rootObj.Get("greeting")
	require.True(t, ok)
	assert.Equal(t, "hello", v.(*crdt.Primitive).Value())

	removeOp := operations.NewRemove(rootObj.CreatedAt(), value.CreatedAt(), next())
	removeResult, err := removeOp.Execute(root, operations.SourceLocal, nil)
	require.NoError(t, err)
	assert.False(t, rootObj.Has("greeting"))
	require.Len(t, removeResult.ReverseOps, 1)

	// replaying the remove's reverse op restores the key.
	restoreOp := removeResult.ReverseOps[0].Rebind(next())
	_, err = restoreOp.Execute(root, operations.SourceUndoRedo, nil)
	require.NoError(t, err)
	v, ok = rootObj.Get("greeting")
	require.True(t, ok)
	assert.Equal(t, "hello", v.(*crdt.Primitive).Value())
}

func TestIncreaseReverseNegatesDelta(t *testing.T) {
	root, next := newRootAndClock()
	rootObj := root.Object()

	counter := crdt.NewCounter(crdt.LongCnt, 0, next())
	setOp := operations.NewSet(rootObj.CreatedAt(), "views", counter, next())
	_, err := setOp.Execute(root, operations.SourceLocal, nil)
	require.NoError(t, err)

	delta := crdt.NewPrimitive(int64(5), next())
	incOp := operations.NewIncrease(counter.CreatedAt(), delta, next())
	result, err := incOp.Execute(root, operations.SourceLocal, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(5), counter.Value())

	require.Len(t, result.ReverseOps, 1)
	_, err = result.ReverseOps[0].Execute(root, operations.SourceUndoRedo, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), counter.Value())
}

func TestEditReverseRestoresDeletedText(t *testing.T) {
	root, next := newRootAndClock()
	rootObj := root.Object()

	text := crdt.NewText(crdt.NewRGATreeSplit(), next())
	setOp := operations.NewSet(rootObj.CreatedAt(), "body", text, next())
	_, err := setOp.Execute(root, operations.SourceLocal, nil)
	require.NoError(t, err)

	insertOp := operations.NewEdit(text.CreatedAt(), 0, 0, "Hello", nil, next())
	_, err = insertOp.Execute(root, operations.SourceLocal, nil)
	require.NoError(t, err)
	assert.Equal(t, "Hello", text.String())

	deleteOp := operations.NewEdit(text.CreatedAt(), 0, 5, "", nil, next())
	result, err := deleteOp.Execute(root, operations.SourceLocal, nil)
	require.NoError(t, err)
	assert.Equal(t, "", text.String())

	require.Len(t, result.ReverseOps, 1)
	_, err = result.ReverseOps[0].Execute(root, operations.SourceUndoRedo, nil)
	require.NoError(t, err)
	assert.Equal(t, "Hello", text.String())
}

func TestEditReverseRestoresMultiByteText(t *testing.T) {
	root, next := newRootAndClock()
	rootObj := root.Object()

	text := crdt.NewText(crdt.NewRGATreeSplit(), next())
	setOp := operations.NewSet(rootObj.CreatedAt(), "body", text, next())
	_, err := setOp.Execute(root, operations.SourceLocal, nil)
	require.NoError(t, err)

	// "café" is 4 runes but 5 bytes; appending "!" after it must land at the
	// correct byte offset for the undo to round-trip cleanly.
	insertOp := operations.NewEdit(text.CreatedAt(), 0, 0, "café", nil, next())
	_, err = insertOp.Execute(root, operations.SourceLocal, nil)
	require.NoError(t, err)
	require.Equal(t, "café", text.String())

	appendOp := operations.NewEdit(text.CreatedAt(), len("café"), len("café"), "!", nil, next())
	result, err := appendOp.Execute(root, operations.SourceLocal, nil)
	require.NoError(t, err)
	require.Equal(t, "café!", text.String())

	require.Len(t, result.ReverseOps, 1)
	_, err = result.ReverseOps[0].Execute(root, operations.SourceUndoRedo, nil)
	require.NoError(t, err)
	assert.Equal(t, "café", text.String())
}

func TestStyleProducesNoReverseOp(t *testing.T) {
	root, next := newRootAndClock()
	rootObj := root.Object()

	text := crdt.NewText(crdt.NewRGATreeSplit(), next())
	setOp := operations.NewSet(rootObj.CreatedAt(), "body", text, next())
	_, err := setOp.Execute(root, operations.SourceLocal, nil)
	require.NoError(t, err)

	insertOp := operations.NewEdit(text.CreatedAt(), 0, 0, "Hello", nil, next())
	_, err = insertOp.Execute(root, operations.SourceLocal, nil)
	require.NoError(t, err)

	styleOp := operations.NewStyle(text.CreatedAt(), 0, 5, map[string]string{"bold": "true"}, next())
	result, err := styleOp.Execute(root, operations.SourceLocal, nil)
	require.NoError(t, err)
	assert.Empty(t, result.ReverseOps)
}

func TestSetOnMissingParentFails(t *testing.T) {
	root, next := newRootAndClock()
	bogusParent := next()

	setOp := operations.NewSet(bogusParent, "k", crdt.NewPrimitive("v", next()), next())
	_, err := setOp.Execute(root, operations.SourceLocal, nil)
	assert.Error(t, err)
}
