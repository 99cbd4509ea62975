// Package document implements the top-level document loop: the
// clone-mutate-commit cycle a single Update call runs through, remote
// change pack application, and the undo/redo stacks layered on top of the
// reverse-operation trail every operation produces.
package document

import (
	"fmt"

	"github.com/hackerwins/riftdoc/pkg/document/change"
	"github.com/hackerwins/riftdoc/pkg/document/crdt"
	"github.com/hackerwins/riftdoc/pkg/document/errs"
	"github.com/hackerwins/riftdoc/pkg/document/innerpresence"
	"github.com/hackerwins/riftdoc/pkg/document/json"
	"github.com/hackerwins/riftdoc/pkg/document/key"
	"github.com/hackerwins/riftdoc/pkg/document/operations"
	"github.com/hackerwins/riftdoc/pkg/document/presence"
	"github.com/hackerwins/riftdoc/pkg/document/time"
	"github.com/hackerwins/riftdoc/pkg/log"
)

// DocEventType identifies the kind of event a Document emits on its Events
// channel.
type DocEventType string

// Supported event kinds.
const (
	// WatchedEvent names a document attaching to a peer connection; nothing
	// in this package publishes it.
	WatchedEvent DocEventType = "watched"
	// PresenceChangedEvent fires whenever any actor's presence changes.
	PresenceChangedEvent DocEventType = "presence-changed"
	// SnapshotEvent fires when a remote snapshot replaces the local root.
	SnapshotEvent DocEventType = "snapshot"
	// LocalChangeEvent fires after a local Update commits a change carrying
	// document operations.
	LocalChangeEvent DocEventType = "local-change"
	// RemoteChangeEvent fires after a remote change carrying document
	// operations is applied.
	RemoteChangeEvent DocEventType = "remote-change"
)

// DocEvent describes one notable thing that happened to a Document.
type DocEvent struct {
	Type      DocEventType
	Presences map[string]innerpresence.Presence
	OpInfos   []operations.OpInfo
}

// Document is a JSON-like CRDT document: a single logical document editable
// through Update, synchronized with a remote peer through change packs.
type Document struct {
	doc *InternalDocument

	cloneRoot      *crdt.Root
	clonePresences *innerpresence.Map

	undoStack [][]operations.Operation
	redoStack [][]operations.Operation

	inUndoRedo bool

	events chan DocEvent
}

// New creates a new, detached Document identified by k.
func New(k key.Key, opts ...Option) *Document {
	return &Document{
		doc:    NewInternalDocument(k, opts...),
		events: make(chan DocEvent, 64),
	}
}

// Key returns this document's key.
func (d *Document) Key() key.Key {
	return d.doc.Key()
}

// Status returns this document's lifecycle status.
func (d *Document) Status() StatusType {
	return d.doc.Status()
}

// IsAttached reports whether this document is attached to a remote peer.
func (d *Document) IsAttached() bool {
	return d.doc.IsAttached()
}

// ActorID returns the actor currently editing this document.
func (d *Document) ActorID() *time.ActorID {
	return d.doc.ActorID()
}

// SetActor assigns actor to this document, used once a detached document
// attaches to a peer connection.
func (d *Document) SetActor(actor *time.ActorID) {
	d.doc.SetActor(actor)
}

// Checkpoint returns this document's current checkpoint.
func (d *Document) Checkpoint() change.Checkpoint {
	return d.doc.checkpoint
}

// Marshal returns the JSON encoding of this document.
func (d *Document) Marshal() string {
	return d.doc.Marshal()
}

// RootObject returns the internal root object, for read-only inspection.
func (d *Document) RootObject() *crdt.Object {
	return d.doc.RootObject()
}

// HasLocalChanges reports whether this document has unacknowledged local
// changes.
func (d *Document) HasLocalChanges() bool {
	return d.doc.HasLocalChanges()
}

// GarbageLen returns the count of elements pending garbage collection.
func (d *Document) GarbageLen() int {
	return d.doc.GarbageLen()
}

// DocSize returns the current live/gc byte accounting.
func (d *Document) DocSize() crdt.DocSize {
	return d.doc.DocSize()
}

// Events returns the channel this document publishes DocEvents on.
func (d *Document) Events() <-chan DocEvent {
	return d.events
}

// Update runs updater against a clone of the committed root, committing the
// resulting operations and presence change atomically if updater succeeds.
// msgAndArgs is formatted with fmt.Sprintf when more than one value is
// given, matching testify's assertion-message convention.
func (d *Document) Update(
	updater func(root *json.Object, p *presence.Presence) error,
	msgAndArgs ...interface{},
) error {
	if d.doc.Status() == StatusRemoved {
		return errs.ErrDocumentRemoved
	}
	if d.inUndoRedo {
		return errs.Refused("Update called re-entrantly from a mutator")
	}

	if err := d.ensureClone(); err != nil {
		return err
	}

	ctx := change.NewContext(d.doc.changeID, message(msgAndArgs...), d.cloneRoot)
	actor := d.doc.ActorID().String()
	p := presence.New(ctx, d.clonePresences.LoadOrStore(actor, innerpresence.NewPresence()))

	if err := updater(json.NewObject(ctx, d.cloneRoot.Object()), p); err != nil {
		d.cloneRoot = nil
		d.clonePresences = nil
		return err
	}

	if err := d.validateSchema(); err != nil {
		d.cloneRoot = nil
		d.clonePresences = nil
		return err
	}
	if err := d.doc.validateSizeOf(d.cloneRoot); err != nil {
		d.cloneRoot = nil
		d.clonePresences = nil
		return err
	}

	if !ctx.HasChange() {
		return nil
	}

	c := ctx.ToChange()
	reverseOps, opInfos, err := c.Execute(d.doc.root, d.doc.presences, operations.SourceLocal)
	if err != nil {
		return err
	}

	d.doc.localChanges = append(d.doc.localChanges, c)
	d.doc.changeID = c.ID()

	if len(reverseOps) > 0 {
		d.undoStack = append(d.undoStack, reverseOps)
		d.redoStack = nil
	}

	if len(opInfos) > 0 {
		d.publish(DocEvent{Type: LocalChangeEvent, OpInfos: opInfos})
	}
	if c.PresenceChange() != nil {
		d.publish(DocEvent{Type: PresenceChangedEvent, Presences: d.Presences()})
	}

	return nil
}

// CanUndo reports whether Undo has a frame to replay.
func (d *Document) CanUndo() bool {
	return len(d.undoStack) > 0
}

// CanRedo reports whether Redo has a frame to replay.
func (d *Document) CanRedo() bool {
	return len(d.redoStack) > 0
}

// Undo replays the most recent local change's reverse operations, pushing
// their own reverse onto the redo stack.
func (d *Document) Undo() error {
	return d.replay(&d.undoStack, &d.redoStack)
}

// Redo replays the most recently undone change's reverse operations, in
// effect reapplying the original edit.
func (d *Document) Redo() error {
	return d.replay(&d.redoStack, &d.undoStack)
}

func (d *Document) replay(from, to *[][]operations.Operation) error {
	if len(*from) == 0 {
		return errs.Refused("no changes to replay")
	}
	if err := d.ensureClone(); err != nil {
		return err
	}

	frame := (*from)[len(*from)-1]
	*from = (*from)[:len(*from)-1]

	ctx := change.NewContext(d.doc.changeID, "undo/redo", d.cloneRoot)
	d.inUndoRedo = true
	var pushErr error
	for _, op := range frame {
		if pushErr = ctx.Push(op.Rebind(ctx.IssueTimeTicket())); pushErr != nil {
			break
		}
	}
	d.inUndoRedo = false
	if pushErr != nil {
		d.cloneRoot = nil
		d.clonePresences = nil
		return pushErr
	}

	if !ctx.HasChange() {
		return nil
	}

	c := ctx.ToChange()
	reverseOps, opInfos, err := c.Execute(d.doc.root, d.doc.presences, operations.SourceUndoRedo)
	if err != nil {
		return err
	}

	d.doc.localChanges = append(d.doc.localChanges, c)
	d.doc.changeID = c.ID()
	if len(reverseOps) > 0 {
		*to = append(*to, reverseOps)
	}
	if len(opInfos) > 0 {
		d.publish(DocEvent{Type: LocalChangeEvent, OpInfos: opInfos})
	}
	return nil
}

// ApplyChangePack applies a snapshot or an incremental set of remote
// changes, advances the checkpoint, garbage collects, and updates status.
func (d *Document) ApplyChangePack(pack *change.Pack) error {
	if len(pack.Snapshot) > 0 {
		d.cloneRoot = nil
		d.clonePresences = nil
		if err := d.applySnapshot(pack.Snapshot, pack.SnapshotVersionVector); err != nil {
			return err
		}
		d.publish(DocEvent{Type: SnapshotEvent, Presences: d.Presences()})
	} else {
		if err := d.ensureClone(); err != nil {
			return err
		}
		for _, c := range pack.Changes {
			if _, _, err := c.Execute(d.cloneRoot, d.clonePresences, operations.SourceRemote); err != nil {
				return err
			}
		}

		events, err := d.doc.ApplyChanges(pack.Changes...)
		if err != nil {
			return err
		}
		for _, e := range events {
			d.publish(e)
		}
	}

	d.doc.ApplyCheckpoint(pack.Checkpoint)

	if pack.VersionVector != nil {
		if n, err := d.doc.GarbageCollect(pack.VersionVector); err != nil {
			return err
		} else if n > 0 {
			log.Logger.Debugw("document: garbage collected", "count", n, "key", d.Key())
		}
	}

	if pack.IsRemoved {
		d.doc.SetStatus(StatusRemoved)
	}

	return nil
}

// CreateChangePack builds the outgoing Pack of unacknowledged local changes.
func (d *Document) CreateChangePack() *change.Pack {
	return d.doc.CreateChangePack()
}

// Presences returns a snapshot of every actor's committed presence.
func (d *Document) Presences() map[string]innerpresence.Presence {
	out := make(map[string]innerpresence.Presence)
	d.doc.presences.Range(func(k string, v innerpresence.Presence) bool {
		out[k] = v
		return true
	})
	return out
}

// MyPresence returns this document's own actor's committed presence.
func (d *Document) MyPresence() (innerpresence.Presence, bool) {
	return d.doc.presences.Load(d.ActorID().String())
}

func (d *Document) ensureClone() error {
	if d.cloneRoot == nil {
		copied, err := d.doc.root.DeepCopy()
		if err != nil {
			return err
		}
		d.cloneRoot = copied
	}
	if d.clonePresences == nil {
		d.clonePresences = d.doc.presences.DeepCopy()
	}
	return nil
}

func (d *Document) applySnapshot(snapshot []byte, vector time.VersionVector) error {
	root, err := crdt.RootFromBytes(snapshot)
	if err != nil {
		return err
	}
	d.doc.root = root
	if vector != nil {
		d.doc.changeID = d.doc.changeID.SetVersionVector(d.doc.changeID.VersionVector().Max(vector))
	}
	return nil
}

func (d *Document) validateSchema() error {
	if len(d.doc.opts.schemaRules) == 0 {
		return nil
	}
	var ruleErrors []error
	for _, rule := range d.doc.opts.schemaRules {
		if _, ok := d.cloneRoot.Object().Get(rule.Path); !ok {
			ruleErrors = append(ruleErrors, fmt.Errorf("missing required path %q", rule.Path))
		}
	}
	return errs.SchemaValidationFailed(ruleErrors)
}

func (d *Document) publish(event DocEvent) {
	select {
	case d.events <- event:
	default:
		log.Logger.Warnw("document: event channel full, dropping event", "key", d.Key(), "type", event.Type)
	}
}

func message(msgAndArgs ...interface{}) string {
	if len(msgAndArgs) == 0 {
		return ""
	}
	if len(msgAndArgs) == 1 {
		if s, ok := msgAndArgs[0].(string); ok {
			return s
		}
		return fmt.Sprintf("%+v", msgAndArgs[0])
	}
	format, ok := msgAndArgs[0].(string)
	if !ok {
		return fmt.Sprintf("%+v", msgAndArgs)
	}
	return fmt.Sprintf(format, msgAndArgs[1:]...)
}
