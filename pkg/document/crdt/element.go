// Package crdt implements the CRDT element hierarchy (object, array,
// counter, text, primitive), the replicated hash table, the RGA-based
// split-list for rich text, and the document root that ties them together
// with a garbage collector.
package crdt

import (
	"github.com/hackerwins/riftdoc/pkg/document/time"
)

// Element is the common capability set every CRDT value in the document
// tree implements: creation/move/removal timestamps, deep copy, byte-size
// accounting, and the two marshal forms used for snapshots and for
// deterministic convergence comparisons.
type Element interface {
	CreatedAt() *time.Ticket
	MovedAt() *time.Ticket
	SetMovedAt(movedAt *time.Ticket)
	RemovedAt() *time.Ticket
	SetRemovedAt(removedAt *time.Ticket)
	Remove(removedAt *time.Ticket) bool

	DeepCopy() (Element, error)
	DataSize() DataSize

	Marshal() string
	MarshalSortedJSON() string
}

// Container is implemented by Elements that hold other Elements: Object and
// Array. The root and the garbage collector use this to recurse.
type Container interface {
	Element
	Purge(child Element) error
	DeleteByCreatedAt(createdAt *time.Ticket, removedAt *time.Ticket) (Element, error)
	GCPairs() []GCPair
}

// DataSize is the {data, meta} byte pair every element reports so the root
// can maintain live/gc size buckets (I6).
type DataSize struct {
	Data int
	Meta int
}

// Add returns the pointwise sum of d and other.
func (d DataSize) Add(other DataSize) DataSize {
	return DataSize{Data: d.Data + other.Data, Meta: d.Meta + other.Meta}
}

// Sub returns the pointwise difference of d and other.
func (d DataSize) Sub(other DataSize) DataSize {
	return DataSize{Data: d.Data - other.Data, Meta: d.Meta - other.Meta}
}

// Total returns Data + Meta.
func (d DataSize) Total() int {
	return d.Data + d.Meta
}

// metaNodeSize approximates the fixed overhead a CRDT node carries: a
// ticket plus linkage, independent of its payload.
const metaNodeSize = 24

// baseElement is embedded by every concrete Element and supplies the
// createdAt/movedAt/removedAt bookkeeping shared by all of them.
type baseElement struct {
	createdAt *time.Ticket
	movedAt   *time.Ticket
	removedAt *time.Ticket
}

func (b *baseElement) CreatedAt() *time.Ticket {
	return b.createdAt
}

func (b *baseElement) MovedAt() *time.Ticket {
	return b.movedAt
}

func (b *baseElement) SetMovedAt(movedAt *time.Ticket) {
	b.movedAt = movedAt
}

func (b *baseElement) RemovedAt() *time.Ticket {
	return b.removedAt
}

func (b *baseElement) SetRemovedAt(removedAt *time.Ticket) {
	b.removedAt = removedAt
}

// Remove tombstones this element iff removedAt postdates createdAt and any
// prior removal, matching the rule every concrete Element type applies.
func (b *baseElement) Remove(removedAt *time.Ticket) bool {
	if removedAt != nil && removedAt.After(b.createdAt) &&
		(b.removedAt == nil || removedAt.After(b.removedAt)) {
		b.removedAt = removedAt
		return true
	}
	return false
}
