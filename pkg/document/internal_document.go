package document

import (
	"github.com/hackerwins/riftdoc/pkg/document/change"
	"github.com/hackerwins/riftdoc/pkg/document/crdt"
	"github.com/hackerwins/riftdoc/pkg/document/errs"
	"github.com/hackerwins/riftdoc/pkg/document/innerpresence"
	"github.com/hackerwins/riftdoc/pkg/document/key"
	"github.com/hackerwins/riftdoc/pkg/document/operations"
	"github.com/hackerwins/riftdoc/pkg/document/time"
	"github.com/hackerwins/riftdoc/pkg/log"
)

// StatusType represents the lifecycle state of a document relative to a
// peer connection.
type StatusType int

// Supported document statuses.
const (
	StatusDetached StatusType = iota
	StatusAttached
	StatusRemoved
)

// String implements fmt.Stringer.
func (s StatusType) String() string {
	switch s {
	case StatusAttached:
		return "attached"
	case StatusRemoved:
		return "removed"
	default:
		return "detached"
	}
}

// InternalDocument is the authoritative, non-speculative half of a
// Document: the committed root, the committed presence map, and the
// bookkeeping needed to build outgoing change packs and apply incoming
// ones.
type InternalDocument struct {
	key          key.Key
	status       StatusType
	root         *crdt.Root
	presences    *innerpresence.Map
	changeID     *change.ID
	checkpoint   change.Checkpoint
	localChanges []*change.Change
	opts         Options
}

// NewInternalDocument creates a new, empty, detached InternalDocument.
func NewInternalDocument(k key.Key, opts ...Option) *InternalDocument {
	options := newOptions(opts)
	return &InternalDocument{
		key:        k,
		status:     StatusDetached,
		root:       crdt.NewRoot(crdt.NewEmptyObject(time.InitialTicket)),
		presences:  innerpresence.NewMap(),
		changeID:   change.InitialID,
		checkpoint: change.InitialCheckpoint,
		opts:       options,
	}
}

// Key returns this document's key.
func (d *InternalDocument) Key() key.Key {
	return d.key
}

// RootObject returns the internal root object.
func (d *InternalDocument) RootObject() *crdt.Object {
	return d.root.Object()
}

// Marshal returns the JSON encoding of this document.
func (d *InternalDocument) Marshal() string {
	return d.root.Marshal()
}

// ActorID returns the actor currently editing this document.
func (d *InternalDocument) ActorID() *time.ActorID {
	return d.changeID.ActorID()
}

// SetActor assigns actor to this document and every local change still
// pending acknowledgement, used once a detached document attaches.
func (d *InternalDocument) SetActor(actor *time.ActorID) {
	d.changeID = d.changeID.SetActor(actor)
	for _, c := range d.localChanges {
		c.SetActor(c.ID().SetActor(actor))
	}
}

// HasLocalChanges reports whether this document has changes pending
// acknowledgement from a remote peer.
func (d *InternalDocument) HasLocalChanges() bool {
	return len(d.localChanges) > 0
}

// GarbageLen returns the count of elements pending garbage collection.
func (d *InternalDocument) GarbageLen() int {
	return d.root.GarbageLen()
}

// DocSize returns the current live/gc byte accounting.
func (d *InternalDocument) DocSize() crdt.DocSize {
	return d.root.DocSize()
}

// GarbageCollect purges elements and GC pairs every peer has observed, per
// minSyncedVersionVector.
func (d *InternalDocument) GarbageCollect(minSyncedVersionVector time.VersionVector) (int, error) {
	if d.opts.disableGC {
		return 0, nil
	}
	return d.root.GarbageCollect(minSyncedVersionVector)
}

// ApplyChanges applies remote changes in order, committing them against the
// authoritative root and presence map. For each change it returns a
// RemoteChangeEvent when the change produced OpInfos and a
// PresenceChangedEvent when it carries a presence change.
func (d *InternalDocument) ApplyChanges(changes ...*change.Change) ([]DocEvent, error) {
	var events []DocEvent

	for _, c := range changes {
		_, opInfos, err := c.Execute(d.root, d.presences, operations.SourceRemote)
		if err != nil {
			return events, err
		}
		d.changeID = d.changeID.SyncClocks(c.ID())

		if len(opInfos) > 0 {
			events = append(events, DocEvent{
				Type:    RemoteChangeEvent,
				OpInfos: opInfos,
			})
		}
		if c.PresenceChange() != nil {
			events = append(events, DocEvent{
				Type:      PresenceChangedEvent,
				Presences: d.snapshotPresences(),
			})
		}
	}

	log.Logger.Debugw("document: applied remote changes", "count", len(changes), "key", d.key)
	return events, nil
}

func (d *InternalDocument) snapshotPresences() map[string]innerpresence.Presence {
	out := make(map[string]innerpresence.Presence)
	d.presences.Range(func(k string, v innerpresence.Presence) bool {
		out[k] = v
		return true
	})
	return out
}

// CreateChangePack builds the outgoing Pack of every local change not yet
// acknowledged by the checkpoint.
func (d *InternalDocument) CreateChangePack() *change.Pack {
	changes := make([]*change.Change, len(d.localChanges))
	copy(changes, d.localChanges)
	return change.NewPack(d.key, d.checkpoint, changes, d.changeID.VersionVector())
}

// ApplyCheckpoint advances this document's checkpoint and drops every local
// change the remote peer has acknowledged.
func (d *InternalDocument) ApplyCheckpoint(cp change.Checkpoint) {
	d.checkpoint = d.checkpoint.Forward(cp)

	for len(d.localChanges) > 0 {
		c := d.localChanges[0]
		if c.ClientSeq() > d.checkpoint.ClientSeq {
			break
		}
		d.localChanges = d.localChanges[1:]
	}
}

// SetStatus updates this document's lifecycle status.
func (d *InternalDocument) SetStatus(status StatusType) {
	d.status = status
}

// Status returns this document's lifecycle status.
func (d *InternalDocument) Status() StatusType {
	return d.status
}

// IsAttached reports whether this document is attached to a remote peer.
func (d *InternalDocument) IsAttached() bool {
	return d.status == StatusAttached
}

// ValidateSize checks the committed root's current byte footprint against
// the configured maximum, per errs.ErrSizeExceedsLimit.
func (d *InternalDocument) ValidateSize() error {
	return d.validateSizeOf(d.root)
}

// validateSizeOf checks root's byte footprint, used to reject a clone
// before its operations are committed against the authoritative root.
func (d *InternalDocument) validateSizeOf(root *crdt.Root) error {
	if d.opts.maxSizeLimit <= 0 {
		return nil
	}
	total := root.DocSize().Total()
	if total > d.opts.maxSizeLimit {
		return errs.SizeExceedsLimit(total, d.opts.maxSizeLimit)
	}
	return nil
}
