package crdt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackerwins/riftdoc/pkg/document/crdt"
	"github.com/hackerwins/riftdoc/pkg/document/time"
)

func newTestActor() (*time.ActorID, func() *time.Ticket) {
	actor := time.NewActorID()
	lamport := uint64(0)
	return actor, func() *time.Ticket {
		lamport++
		return time.NewTicket(lamport, 0, actor)
	}
}

func TestTextEditAndStyle(t *testing.T) {
	_, next := newTestActor()
	text := crdt.NewText(crdt.NewRGATreeSplit(), next())
	vv := time.NewVersionVector()

	from, to := text.CreateRange(0, 0)
	_, _, _, _, err := text.Edit(from, to, vv, "Hello", nil, next())
	require.NoError(t, err)
	assert.Equal(t, "Hello", text.String())

	from, to = text.CreateRange(5, 5)
	_, _, _, _, err = text.Edit(from, to, vv, ", world", nil, next())
	require.NoError(t, err)
	assert.Equal(t, "Hello, world", text.String())

	from, to = text.CreateRange(0, 5)
	_, _, err2 := text.Style(from, to, map[string]string{"bold": "true"}, vv, next())
	require.NoError(t, err2)
}

func TestTextSubstringDoesNotMutate(t *testing.T) {
	_, next := newTestActor()
	text := crdt.NewText(crdt.NewRGATreeSplit(), next())
	vv := time.NewVersionVector()

	from, to := text.CreateRange(0, 0)
	_, _, _, _, err := text.Edit(from, to, vv, "Hello, world", nil, next())
	require.NoError(t, err)

	lenBefore := text.Len()
	sub := text.Substring(0, 5)
	assert.Equal(t, "Hello", sub)
	assert.Equal(t, lenBefore, text.Len())
	// a second, identical call must produce the same slice, proving no
	// hidden node splitting occurred on the first call.
	assert.Equal(t, sub, text.Substring(0, 5))
}

func TestTextDeleteProducesGCPairs(t *testing.T) {
	_, next := newTestActor()
	text := crdt.NewText(crdt.NewRGATreeSplit(), next())
	vv := time.NewVersionVector()

	from, to := text.CreateRange(0, 0)
	_, _, _, _, err := text.Edit(from, to, vv, "Hello", nil, next())
	require.NoError(t, err)

	from, to = text.CreateRange(0, 5)
	// a nil version vector marks a local edit that has seen every node; the
	// empty vv above would count the inserting actor as lamport 0.
	_, gcPairs, _, _, err := text.Edit(from, to, nil, "", nil, next())
	require.NoError(t, err)
	assert.NotEmpty(t, gcPairs)
	assert.Equal(t, "", text.String())
}
