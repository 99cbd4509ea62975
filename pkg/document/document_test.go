package document_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackerwins/riftdoc/pkg/document"
	"github.com/hackerwins/riftdoc/pkg/document/change"
	"github.com/hackerwins/riftdoc/pkg/document/json"
	"github.com/hackerwins/riftdoc/pkg/document/key"
	"github.com/hackerwins/riftdoc/pkg/document/presence"
	"github.com/hackerwins/riftdoc/pkg/document/time"
)

func newTestDocument(t *testing.T) *document.Document {
	t.Helper()
	d := document.New(key.Key("test-doc"))
	d.SetActor(time.NewActorID())
	return d
}

func TestUpdateSetsAndMarshals(t *testing.T) {
	d := newTestDocument(t)
	err := d.Update(func(root *json.Object, p *presence.Presence) error {
		root.SetString("title", "hello")
		return nil
	})
	require.NoError(t, err)
	assert.Contains(t, d.Marshal(), `"title":"hello"`)
}

func TestUpdateRollsBackOnUpdaterError(t *testing.T) {
	d := newTestDocument(t)
	err := d.Update(func(root *json.Object, p *presence.Presence) error {
		root.SetString("title", "hello")
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)
	assert.NotContains(t, d.Marshal(), "title")
}

func TestUndoRedoRoundTrip(t *testing.T) {
	d := newTestDocument(t)
	require.NoError(t, d.Update(func(root *json.Object, p *presence.Presence) error {
		root.SetString("title", "v1")
		return nil
	}))
	assert.True(t, d.CanUndo())
	assert.False(t, d.CanRedo())

	require.NoError(t, d.Undo())
	assert.NotContains(t, d.Marshal(), "title")
	assert.True(t, d.CanRedo())

	require.NoError(t, d.Redo())
	assert.Contains(t, d.Marshal(), `"title":"v1"`)
}

func TestPresenceChangeEmitsEvent(t *testing.T) {
	d := newTestDocument(t)
	require.NoError(t, d.Update(func(root *json.Object, p *presence.Presence) error {
		p.Set("color", "blue")
		return nil
	}))

	select {
	case e := <-d.Events():
		assert.Equal(t, document.PresenceChangedEvent, e.Type)
	default:
		t.Fatal("expected a presence-changed event")
	}

	my, ok := d.MyPresence()
	require.True(t, ok)
	assert.Equal(t, "blue", my["color"])
}

func TestLocalChangeEmitsEventWithOpInfos(t *testing.T) {
	d := newTestDocument(t)
	require.NoError(t, d.Update(func(root *json.Object, p *presence.Presence) error {
		root.SetString("title", "hello")
		return nil
	}))

	select {
	case e := <-d.Events():
		require.Equal(t, document.LocalChangeEvent, e.Type)
		require.Len(t, e.OpInfos, 1)
		assert.Equal(t, "set", e.OpInfos[0].Type)
	default:
		t.Fatal("expected a local-change event")
	}
}

func TestRemoteChangeEmitsEventWithOpInfos(t *testing.T) {
	local := newTestDocument(t)
	remote := document.New(key.Key("test-doc"))
	remote.SetActor(time.NewActorID())

	require.NoError(t, local.Update(func(root *json.Object, p *presence.Presence) error {
		root.SetString("title", "from local")
		return nil
	}))
	// drain local's own local-change event before syncing.
	<-local.Events()

	require.NoError(t, remote.ApplyChangePack(local.CreateChangePack()))

	select {
	case e := <-remote.Events():
		require.Equal(t, document.RemoteChangeEvent, e.Type)
		require.Len(t, e.OpInfos, 1)
		assert.Equal(t, "set", e.OpInfos[0].Type)
	default:
		t.Fatal("expected a remote-change event")
	}
}

func TestApplyChangePackSyncsRemoteChanges(t *testing.T) {
	local := newTestDocument(t)
	remote := document.New(key.Key("test-doc"))
	remote.SetActor(time.NewActorID())

	require.NoError(t, local.Update(func(root *json.Object, p *presence.Presence) error {
		root.SetString("title", "from local")
		todos := root.SetNewArray("todos")
		todos.AddString("first")
		return nil
	}))

	require.NoError(t, remote.ApplyChangePack(local.CreateChangePack()))
	assert.Contains(t, remote.Marshal(), `"title":"from local"`)
	assert.Contains(t, remote.Marshal(), `"first"`)

	require.NoError(t, remote.Update(func(root *json.Object, p *presence.Presence) error {
		root.GetArray("todos").AddString("second")
		return nil
	}))
	require.NoError(t, local.ApplyChangePack(remote.CreateChangePack()))
	assert.Contains(t, local.Marshal(), `"second"`)

	// Both sides have now observed every change; their sorted-key views must
	// converge byte for byte regardless of which peer authored which edit.
	if diff := cmp.Diff(local.RootObject().MarshalSortedJSON(), remote.RootObject().MarshalSortedJSON()); diff != "" {
		t.Fatalf("documents diverged after sync (-local +remote):\n%s", diff)
	}
}

func TestGarbageCollectPurgesOnceAllPeersHaveSeen(t *testing.T) {
	d := document.New(key.Key("gc-doc"))
	actor := time.NewActorID()
	d.SetActor(actor)

	require.NoError(t, d.Update(func(root *json.Object, p *presence.Presence) error {
		root.SetString("k", "v1")
		return nil
	}))
	require.NoError(t, d.Update(func(root *json.Object, p *presence.Presence) error {
		root.SetString("k", "v2")
		return nil
	}))
	assert.Equal(t, 1, d.GarbageLen())

	// every peer (here, only this actor) has observed everything up to
	// its own latest lamport, so a GC pass with that as the minimum
	// synced version vector should purge the tombstoned value.
	everyoneHasSeen := time.NewVersionVector()
	everyoneHasSeen.Set(actor, time.MaxLamport)
	ackPack := change.NewPack(key.Key("gc-doc"), d.Checkpoint(), nil, everyoneHasSeen)
	require.NoError(t, d.ApplyChangePack(ackPack))
	assert.Equal(t, 0, d.GarbageLen())
}

func TestSchemaValidationBlocksCommit(t *testing.T) {
	d := document.New(key.Key("schema-doc"), document.WithSchemaRules(document.SchemaRule{Path: "title", Type: "string"}))
	d.SetActor(time.NewActorID())

	err := d.Update(func(root *json.Object, p *presence.Presence) error {
		root.SetString("body", "no title here")
		return nil
	})
	assert.Error(t, err)
}

func TestMaxSizeLimitBlocksCommit(t *testing.T) {
	d := document.New(key.Key("size-doc"), document.WithMaxSizeLimit(1))
	d.SetActor(time.NewActorID())

	err := d.Update(func(root *json.Object, p *presence.Presence) error {
		root.SetString("body", "this is definitely more than one byte")
		return nil
	})
	assert.Error(t, err)
}
