package change

import (
	"github.com/hackerwins/riftdoc/pkg/document/crdt"
	"github.com/hackerwins/riftdoc/pkg/document/innerpresence"
	"github.com/hackerwins/riftdoc/pkg/document/operations"
	"github.com/hackerwins/riftdoc/pkg/document/time"
)

// PresenceChangeType identifies what an Update call did to its own
// presence entry, if anything.
type PresenceChangeType int

// Supported presence change kinds.
const (
	PresencePut PresenceChangeType = iota
	PresenceClear
)

// PresenceChange carries a Put/Clear decision plus the new presence value,
// when the kind is Put.
type PresenceChange struct {
	Type     PresenceChangeType
	Presence innerpresence.Presence
}

// Context is a one-shot scratchpad threaded through a single Update call: it
// issues tickets sharing the call's ChangeID, collects the operations the
// proxy layer generates as the caller mutates the cloned root, and records
// at most one presence change.
type Context struct {
	id             *ID
	prevID         *ID
	root           *crdt.Root
	message        string
	delimiter      uint32
	ops            []operations.Operation
	presenceChange *PresenceChange
}

// NewContext creates a new instance of Context. prevID is the document's
// ChangeID before this call; tickets are issued from prevID.Next(false) so
// they share a lamport with the Change ToChange eventually produces.
func NewContext(prevID *ID, message string, root *crdt.Root) *Context {
	return &Context{
		id:      prevID.Next(false),
		prevID:  prevID,
		root:    root,
		message: message,
	}
}

// ID returns the ChangeID this context's tickets are issued under.
func (c *Context) ID() *ID {
	return c.id
}

// Root returns the cloned root this context's operations mutate.
func (c *Context) Root() *crdt.Root {
	return c.root
}

// IssueTimeTicket returns the next ticket for this change, sharing its
// lamport and actor but carrying a fresh delimiter.
func (c *Context) IssueTimeTicket() *time.Ticket {
	c.delimiter++
	return c.id.CreateTimeTicket(c.delimiter)
}

// Push appends op to the list of operations this change will carry, and
// immediately executes it against the cloned root so later reads in the
// same Update call observe its effect.
func (c *Context) Push(op operations.Operation) error {
	if _, err := op.Execute(c.root, operations.SourceLocal, nil); err != nil {
		return err
	}
	c.ops = append(c.ops, op)
	return nil
}

// SetPresenceChange records this call's presence mutation, replacing any
// earlier one recorded in the same Update call.
func (c *Context) SetPresenceChange(change *PresenceChange) {
	c.presenceChange = change
}

// HasChange reports whether this context accumulated any operations or a
// presence change, i.e. whether ToChange should be called at all.
func (c *Context) HasChange() bool {
	return len(c.ops) > 0 || c.presenceChange != nil
}

// HasOperations reports whether this context accumulated any document
// operations, as opposed to only a presence change.
func (c *Context) HasOperations() bool {
	return len(c.ops) > 0
}

// ToChange finalizes the accumulated operations and presence change into an
// immutable Change. When the call carried document operations, the Change's
// ID is the same prevID.Next(false) that IssueTimeTicket minted tickets
// from, so every ticket this call issued shares the committed Change's
// lamport. A presence-only call never issued a ticket, so it instead
// consumes prevID.Next(true): a client sequence advances but the lamport
// and version vector do not.
func (c *Context) ToChange() *Change {
	if !c.HasOperations() {
		return NewChange(c.prevID.Next(true), c.message, c.ops, c.presenceChange)
	}
	return NewChange(c.id, c.message, c.ops, c.presenceChange)
}
