package crdt

import "github.com/hackerwins/riftdoc/pkg/document/time"

// GCParent is implemented by containers that can purge one of their own
// sub-nodes once the garbage collector proves it's safe: RGATreeSplit (text
// block nodes) and RHT (replaced attribute entries).
type GCParent interface {
	Purge(child GCChild) error
}

// GCChild is a sub-element a GCParent can purge: it must report the ticket
// at which it was logically removed so the collector can compare it against
// a version vector.
type GCChild interface {
	IDString() string
	RemovedAt() *time.Ticket
}

// GCPair links a removed sub-node to the container that can purge it, once
// every participant has observed the removal.
type GCPair struct {
	Parent GCParent
	Child  GCChild
}

// gcPairsProvider is implemented by Elements that can enumerate their own
// (and their descendants') tombstoned sub-nodes: Text for split blocks,
// Object/Array for tombstoned members plus whatever their live members
// contribute recursively.
type gcPairsProvider interface {
	GCPairs() []GCPair
}
