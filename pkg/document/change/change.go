package change

import (
	"github.com/hackerwins/riftdoc/pkg/document/crdt"
	"github.com/hackerwins/riftdoc/pkg/document/innerpresence"
	"github.com/hackerwins/riftdoc/pkg/document/operations"
)

// Change is one immutable, already-ordered unit of mutation: a batch of
// operations plus at most one presence change, carrying the ChangeID that
// was minted for it. A Change applies identically whether it originated
// locally, arrived from a remote peer, or is replayed during undo/redo.
type Change struct {
	id             *ID
	message        string
	ops            []operations.Operation
	presenceChange *PresenceChange
}

// NewChange creates a new instance of Change.
func NewChange(id *ID, message string, ops []operations.Operation, presenceChange *PresenceChange) *Change {
	return &Change{id: id, message: message, ops: ops, presenceChange: presenceChange}
}

// ID returns this change's ID.
func (c *Change) ID() *ID {
	return c.id
}

// Message returns the caller-supplied description of this change.
func (c *Change) Message() string {
	return c.message
}

// Operations returns the operations this change carries.
func (c *Change) Operations() []operations.Operation {
	return c.ops
}

// PresenceChange returns the presence change this change carries, if any.
func (c *Change) PresenceChange() *PresenceChange {
	return c.presenceChange
}

// SetActor replaces this change's ID, used once a detached document
// attaches. The tickets inside its operations are left unchanged.
func (c *Change) SetActor(id *ID) {
	c.id = id
}

// ClientSeq returns the client sequence of this change's ID.
func (c *Change) ClientSeq() uint32 {
	return c.id.ClientSeq()
}

// Execute applies this change's operations to root and folds its presence
// change into presences. It returns the reverse operations the applied
// operations produced, in reverse application order, for the undo stack, and
// their OpInfos in application order. Operations get this change's version
// vector only when source is SourceRemote; otherwise they run with a nil
// vector, as local edits.
func (c *Change) Execute(
	root *crdt.Root,
	presences *innerpresence.Map,
	source operations.Source,
) ([]operations.Operation, []operations.OpInfo, error) {
	var reverseOps []operations.Operation
	var opInfos []operations.OpInfo

	vector := c.id.VersionVector()
	if source != operations.SourceRemote {
		vector = nil
	}

	for _, op := range c.ops {
		result, err := op.Execute(root, source, vector)
		if err != nil {
			return nil, nil, err
		}
		// Reverse ops replay in the opposite order they were applied.
		reverseOps = append(result.ReverseOps, reverseOps...)
		opInfos = append(opInfos, result.OpInfos...)
	}

	if c.presenceChange != nil && presences != nil {
		actor := c.id.ActorID().String()
		switch c.presenceChange.Type {
		case PresencePut:
			presences.Store(actor, c.presenceChange.Presence)
		case PresenceClear:
			presences.Delete(actor)
		}
	}

	return reverseOps, opInfos, nil
}
