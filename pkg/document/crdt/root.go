package crdt

import (
	"fmt"

	"github.com/hackerwins/riftdoc/pkg/document/time"
	"go.uber.org/multierr"
)

// DocSize is the running byte-size accountant described by spec.md §3:
// separate live and gc buckets, each split into data and meta.
type DocSize struct {
	Live DataSize
	GC   DataSize
}

// Total returns the combined live+gc byte total (I6).
func (d DocSize) Total() int {
	return d.Live.Total() + d.GC.Total()
}

// Root owns the document's element registry, its garbage-collection
// bookkeeping, and the running size accountant.
type Root struct {
	rootObject               *Object
	elementMapByCreatedAt    map[string]Element
	removedElementSetByCreatedAt map[string]Element
	gcPairMap                 map[string]GCPair
	docSize                   DocSize
}

// NewRoot creates a new Root wrapping the given top-level object, and
// registers every element already present in it.
func NewRoot(rootObject *Object) *Root {
	root := &Root{
		rootObject:                   rootObject,
		elementMapByCreatedAt:        make(map[string]Element),
		removedElementSetByCreatedAt: make(map[string]Element),
		gcPairMap:                    make(map[string]GCPair),
	}

	root.registerElement(rootObject)
	for _, member := range rootObject.members.Members() {
		root.registerElementRecursively(member.elem)
	}
	for _, pair := range rootObject.GCPairs() {
		root.RegisterGCPair(pair)
	}

	return root
}

func (r *Root) registerElementRecursively(elem Element) {
	r.registerElement(elem)
	if elem.RemovedAt() != nil {
		r.removedElementSetByCreatedAt[elem.CreatedAt().Key()] = elem
	}

	switch typed := elem.(type) {
	case *Object:
		for _, member := range typed.members.Members() {
			r.registerElementRecursively(member.elem)
		}
	case *Array:
		for _, child := range typed.elements.AllNodes() {
			r.registerElementRecursively(child)
		}
	}
}

// Object returns the top-level object.
func (r *Root) Object() *Object {
	return r.rootObject
}

// FindByCreatedAt returns the element registered under createdAt, per I1.
func (r *Root) FindByCreatedAt(createdAt *time.Ticket) Element {
	return r.elementMapByCreatedAt[createdAt.Key()]
}

// registerElement inserts elem into the registry (I1: unique createdAt).
func (r *Root) registerElement(elem Element) {
	r.elementMapByCreatedAt[elem.CreatedAt().Key()] = elem
}

// RegisterElement is the exported form used by operations after creating a
// new element.
func (r *Root) RegisterElement(elem Element) {
	r.registerElement(elem)
}

// RegisterRemovedElement records elem in the removed set and moves its
// accounted bytes from the live bucket to the gc bucket (I2).
func (r *Root) RegisterRemovedElement(elem Element) {
	r.removedElementSetByCreatedAt[elem.CreatedAt().Key()] = elem
	size := elem.DataSize()
	r.Acc(DataSize{Data: -size.Data, Meta: -size.Meta})
}

// RegisterGCPair records pair, keyed by the child's IDString, replacing any
// prior pair registered for that child.
func (r *Root) RegisterGCPair(pair GCPair) {
	r.gcPairMap[pair.Child.IDString()] = pair
}

// ElementMapLen returns the number of elements currently registered.
func (r *Root) ElementMapLen() int {
	return len(r.elementMapByCreatedAt)
}

// GarbageLen returns the number of elements pending garbage collection.
func (r *Root) GarbageLen() int {
	return len(r.removedElementSetByCreatedAt)
}

// DocSize returns the current live/gc byte accounting.
func (r *Root) DocSize() DocSize {
	return r.docSize
}

// Acc adds diff to the live bucket. A negative diff (bytes leaving the live
// tree, e.g. on tombstoning) is also moved into the gc bucket rather than
// simply vanishing, per §4.4 acc.
func (r *Root) Acc(diff DataSize) {
	if diff.Data < 0 || diff.Meta < 0 {
		moved := DataSize{Data: -diff.Data, Meta: -diff.Meta}
		r.docSize.Live = r.docSize.Live.Sub(moved)
		r.docSize.GC = r.docSize.GC.Add(moved)
		return
	}
	r.docSize.Live = r.docSize.Live.Add(diff)
}

// GarbageCollect purges every removed element and GC pair that every
// participant has observed, per §4.4 garbageCollect. It returns the total
// number of nodes purged.
func (r *Root) GarbageCollect(minSyncedVersionVector time.VersionVector) (int, error) {
	purged := 0
	var errs error

	for key, elem := range r.removedElementSetByCreatedAt {
		removedAt := elem.RemovedAt()
		if removedAt == nil {
			continue
		}
		if minSyncedVersionVector.Get(removedAt.ActorID()) < removedAt.Lamport() {
			continue
		}

		size := elem.DataSize()
		r.docSize.GC = r.docSize.GC.Sub(size)
		delete(r.elementMapByCreatedAt, key)
		delete(r.removedElementSetByCreatedAt, key)
		purged++
	}

	for key, pair := range r.gcPairMap {
		removedAt := pair.Child.RemovedAt()
		if removedAt == nil {
			delete(r.gcPairMap, key)
			continue
		}
		if minSyncedVersionVector.Get(removedAt.ActorID()) < removedAt.Lamport() {
			continue
		}

		if err := pair.Parent.Purge(pair.Child); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		delete(r.gcPairMap, key)
		purged++
	}

	if errs != nil {
		return purged, fmt.Errorf("crdt: GarbageCollect: %w", errs)
	}
	return purged, nil
}

// DeepCopy returns a copy of the root, re-registering every element and GC
// pair against the new object graph.
func (r *Root) DeepCopy() (*Root, error) {
	copied, err := r.rootObject.DeepCopy()
	if err != nil {
		return nil, err
	}
	newRoot := NewRoot(copied.(*Object))
	newRoot.docSize = r.docSize
	return newRoot, nil
}

// Marshal returns the JSON encoding of the document.
func (r *Root) Marshal() string {
	return r.rootObject.Marshal()
}

// MarshalSortedJSON returns the key-sorted JSON encoding used for
// convergence comparisons.
func (r *Root) MarshalSortedJSON() string {
	return r.rootObject.MarshalSortedJSON()
}
