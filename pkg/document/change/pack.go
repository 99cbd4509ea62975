package change

import (
	"github.com/hackerwins/riftdoc/pkg/document/key"
	"github.com/hackerwins/riftdoc/pkg/document/time"
)

// Pack is the wire-facing batch exchanged with a remote peer: a checkpoint
// to acknowledge, the changes produced since the last sync, and (for the
// initial sync of a large document) a full snapshot in place of changes.
type Pack struct {
	// DocumentKey identifies the document this pack belongs to.
	DocumentKey key.Key

	// Checkpoint is the server/client sequence pair this pack advances to.
	Checkpoint Checkpoint

	// IsRemoved marks that the document was removed on the sender's side.
	IsRemoved bool

	// Changes are the individual mutations carried by this pack. Empty when
	// Snapshot is set.
	Changes []*Change

	// Snapshot, when non-nil, is a full document replacement (the
	// serialized crdt.Root) rather than an incremental Changes list.
	Snapshot []byte

	// SnapshotVersionVector is the version vector Snapshot was taken at,
	// needed to resume incremental sync correctly after loading it.
	SnapshotVersionVector time.VersionVector

	// VersionVector is the sender's version vector at the time this pack
	// was built, used by the receiver to compute a minimum synced version
	// vector across every peer for garbage collection.
	VersionVector time.VersionVector
}

// NewPack creates a new instance of Pack.
func NewPack(documentKey key.Key, checkpoint Checkpoint, changes []*Change, vector time.VersionVector) *Pack {
	return &Pack{
		DocumentKey:   documentKey,
		Checkpoint:    checkpoint,
		Changes:       changes,
		VersionVector: vector,
	}
}

// HasChanges reports whether this pack carries any changes.
func (p *Pack) HasChanges() bool {
	return len(p.Changes) > 0
}

// ChangesLen returns the number of changes this pack carries.
func (p *Pack) ChangesLen() int {
	return len(p.Changes)
}
