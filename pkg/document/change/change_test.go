package change_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackerwins/riftdoc/pkg/document/change"
	"github.com/hackerwins/riftdoc/pkg/document/crdt"
	"github.com/hackerwins/riftdoc/pkg/document/innerpresence"
	"github.com/hackerwins/riftdoc/pkg/document/operations"
	"github.com/hackerwins/riftdoc/pkg/document/time"
)

func TestContextIssueTimeTicketSharesLamport(t *testing.T) {
	root := crdt.NewRoot(crdt.NewEmptyObject(time.InitialTicket))
	ctx := change.NewContext(change.InitialID, "", root)

	t1 := ctx.IssueTimeTicket()
	t2 := ctx.IssueTimeTicket()
	assert.Equal(t, t1.Lamport(), t2.Lamport())
	assert.NotEqual(t, t1.Delimiter(), t2.Delimiter())

	require.NoError(t, ctx.Push(operations.NewSet(root.Object().CreatedAt(), "k", crdt.NewPrimitive("v", t1), t1)))
	c := ctx.ToChange()
	assert.Equal(t, t1.Lamport(), c.ID().Lamport(), "an issued ticket must share its lamport with the change that carries it")
}

func TestToChangeAdvancesLamportOnlyWithOperations(t *testing.T) {
	root := crdt.NewRoot(crdt.NewEmptyObject(time.InitialTicket))

	presenceOnly := change.NewContext(change.InitialID, "", root)
	presenceOnly.SetPresenceChange(&change.PresenceChange{Type: change.PresencePut, Presence: innerpresence.NewPresence()})
	c := presenceOnly.ToChange()
	assert.Equal(t, change.InitialID.Lamport(), c.ID().Lamport())

	withOps := change.NewContext(change.InitialID, "", root)
	ticket := withOps.IssueTimeTicket()
	require.NoError(t, withOps.Push(operations.NewSet(root.Object().CreatedAt(), "k", crdt.NewPrimitive("v", ticket), ticket)))
	c2 := withOps.ToChange()
	assert.Greater(t, c2.ID().Lamport(), change.InitialID.Lamport())
}

func TestChangeExecuteAppliesPresence(t *testing.T) {
	root := crdt.NewRoot(crdt.NewEmptyObject(time.InitialTicket))
	presences := innerpresence.NewMap()

	ctx := change.NewContext(change.InitialID, "", root)
	p := innerpresence.NewPresence()
	p["color"] = "red"
	ctx.SetPresenceChange(&change.PresenceChange{Type: change.PresencePut, Presence: p})
	c := ctx.ToChange()

	_, _, err := c.Execute(root, presences, operations.SourceLocal)
	require.NoError(t, err)

	stored, ok := presences.Load(c.ID().ActorID().String())
	require.True(t, ok)
	assert.Equal(t, "red", stored["color"])
}

func TestIDSyncClocksAdvancesPastRemote(t *testing.T) {
	actorA := time.NewActorID()
	actorB := time.NewActorID()

	local := change.NewID(0, 0, 3, actorA, nil)
	remote := change.NewID(0, 0, 10, actorB, nil)

	synced := local.SyncClocks(remote)
	assert.Equal(t, uint64(11), synced.Lamport())
	assert.Equal(t, uint64(11), synced.VersionVector().Get(actorA))
}
