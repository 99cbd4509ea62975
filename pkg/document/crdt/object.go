package crdt

import (
	"sort"
	"strings"

	"github.com/hackerwins/riftdoc/pkg/document/time"
)

// elementRHTNode is one entry of elementRHT: a key mapped to a live or
// tombstoned Element, last-writer-wins by the element's CreatedAt/RemovedAt.
type elementRHTNode struct {
	key  string
	elem Element
}

// elementRHT is the Object-flavored counterpart of RHT: it maps string keys
// to CRDT Elements rather than opaque string values, so that Set/Remove
// compose with the same createdAt/removedAt bookkeeping every element
// already carries.
type elementRHT struct {
	nodeMapByKey      map[string]*elementRHTNode
	nodeMapByCreated  map[string]*elementRHTNode
	order             []string
}

func newElementRHT() *elementRHT {
	return &elementRHT{
		nodeMapByKey:     make(map[string]*elementRHTNode),
		nodeMapByCreated: make(map[string]*elementRHTNode),
	}
}

// Set inserts elem under key. If a live element already occupies key, it is
// tombstoned with elem's own CreatedAt (the conventional "last writer wins,
// keyed by insertion ticket" rule for RHT-backed objects) and returned so
// the caller can register it for garbage collection.
func (rht *elementRHT) Set(key string, elem Element) Element {
	existing, ok := rht.nodeMapByKey[key]
	rht.nodeMapByKey[key] = &elementRHTNode{key: key, elem: elem}
	rht.nodeMapByCreated[elem.CreatedAt().Key()] = rht.nodeMapByKey[key]
	if !ok {
		rht.order = append(rht.order, key)
	}

	if ok && existing.elem.RemovedAt() == nil {
		existing.elem.Remove(elem.CreatedAt())
		return existing.elem
	}
	return nil
}

// Get returns the live element stored at key.
func (rht *elementRHT) Get(key string) (Element, bool) {
	node, ok := rht.nodeMapByKey[key]
	if !ok || node.elem.RemovedAt() != nil {
		return nil, false
	}
	return node.elem, true
}

// Has reports whether key currently maps to a live element.
func (rht *elementRHT) Has(key string) bool {
	_, ok := rht.Get(key)
	return ok
}

// DeleteByKey tombstones the live element at key.
func (rht *elementRHT) DeleteByKey(key string, removedAt *time.Ticket) Element {
	node, ok := rht.nodeMapByKey[key]
	if !ok {
		return nil
	}
	node.elem.Remove(removedAt)
	return node.elem
}

// DeleteByCreatedAt tombstones the element that was created at createdAt,
// regardless of whether it still occupies its original key.
func (rht *elementRHT) DeleteByCreatedAt(createdAt *time.Ticket, removedAt *time.Ticket) Element {
	node, ok := rht.nodeMapByCreated[createdAt.Key()]
	if !ok {
		return nil
	}
	node.elem.Remove(removedAt)
	return node.elem
}

// Members returns every key->element pair, live and tombstoned, in
// insertion order.
func (rht *elementRHT) Members() []*elementRHTNode {
	nodes := make([]*elementRHTNode, 0, len(rht.order))
	for _, key := range rht.order {
		nodes = append(nodes, rht.nodeMapByKey[key])
	}
	return nodes
}

// Keys returns the live keys in insertion order.
func (rht *elementRHT) Keys() []string {
	var keys []string
	for _, key := range rht.order {
		if rht.Has(key) {
			keys = append(keys, key)
		}
	}
	return keys
}

// Object is a last-writer-wins map of string keys to CRDT Elements.
type Object struct {
	baseElement
	members *elementRHT
}

// NewObject creates a new instance of Object.
func NewObject(members *elementRHT, createdAt *time.Ticket) *Object {
	if members == nil {
		members = newElementRHT()
	}
	return &Object{
		baseElement: baseElement{createdAt: createdAt},
		members:     members,
	}
}

// NewEmptyObject creates a new, empty Object created at createdAt, for use
// as the document root.
func NewEmptyObject(createdAt *time.Ticket) *Object {
	return NewObject(newElementRHT(), createdAt)
}

// Set inserts elem under key, returning the replaced element (if any) so
// the caller can register a GC pair for it.
func (o *Object) Set(key string, elem Element) Element {
	return o.members.Set(key, elem)
}

// Get returns the live element at key.
func (o *Object) Get(key string) (Element, bool) {
	return o.members.Get(key)
}

// Has reports whether key is currently live.
func (o *Object) Has(key string) bool {
	return o.members.Has(key)
}

// DeleteByKey tombstones the element at key.
func (o *Object) DeleteByKey(key string, removedAt *time.Ticket) Element {
	return o.members.DeleteByKey(key, removedAt)
}

// DeleteByCreatedAt tombstones the element created at createdAt, wherever it
// currently lives.
func (o *Object) DeleteByCreatedAt(createdAt *time.Ticket, removedAt *time.Ticket) (Element, error) {
	return o.members.DeleteByCreatedAt(createdAt, removedAt), nil
}

// Keys returns the live keys of this object in insertion order.
func (o *Object) Keys() []string {
	return o.members.Keys()
}

// KeyOf returns the key the element created at createdAt was inserted under,
// even if it has since been tombstoned.
func (o *Object) KeyOf(createdAt *time.Ticket) (string, bool) {
	node, ok := o.members.nodeMapByCreated[createdAt.Key()]
	if !ok {
		return "", false
	}
	return node.key, true
}

// Purge is a no-op for Object: a tombstoned member stays addressable via
// nodeMapByCreated until the GC pair map purges it directly, so there is
// nothing extra for the container itself to release.
func (o *Object) Purge(child Element) error {
	return nil
}

// GCPairs returns a pair for every tombstoned direct member, and recurses
// into container members.
func (o *Object) GCPairs() []GCPair {
	var pairs []GCPair
	for _, member := range o.members.Members() {
		if member.elem.RemovedAt() != nil {
			pairs = append(pairs, GCPair{Parent: objectGCParent{o.members}, Child: objectGCChild{member.elem}})
		}
		if provider, ok := member.elem.(gcPairsProvider); ok {
			pairs = append(pairs, provider.GCPairs()...)
		}
	}
	return pairs
}

type objectGCParent struct {
	members *elementRHT
}

func (p objectGCParent) Purge(child GCChild) error {
	c := child.(objectGCChild)
	delete(p.members.nodeMapByCreated, c.elem.CreatedAt().Key())
	return nil
}

type objectGCChild struct {
	elem Element
}

func (c objectGCChild) IDString() string {
	return c.elem.CreatedAt().Key()
}

func (c objectGCChild) RemovedAt() *time.Ticket {
	return c.elem.RemovedAt()
}

// DeepCopy returns a copy of this object and its members.
func (o *Object) DeepCopy() (Element, error) {
	members := newElementRHT()
	for _, member := range o.members.Members() {
		copied, err := member.elem.DeepCopy()
		if err != nil {
			return nil, err
		}
		members.nodeMapByKey[member.key] = &elementRHTNode{key: member.key, elem: copied}
		members.nodeMapByCreated[copied.CreatedAt().Key()] = members.nodeMapByKey[member.key]
	}
	members.order = append([]string(nil), o.members.order...)

	return &Object{
		baseElement: baseElement{
			createdAt: o.createdAt,
			movedAt:   o.movedAt,
			removedAt: o.removedAt,
		},
		members: members,
	}, nil
}

// DataSize sums the byte footprint of the keys and every member value.
func (o *Object) DataSize() DataSize {
	size := DataSize{Meta: metaNodeSize}
	for _, member := range o.members.Members() {
		size.Data += len(member.key)
		size = size.Add(member.elem.DataSize())
	}
	return size
}

// Marshal returns the JSON encoding of this object in insertion order.
func (o *Object) Marshal() string {
	var sb strings.Builder
	sb.WriteString("{")
	first := true
	for _, member := range o.members.Members() {
		if member.elem.RemovedAt() != nil {
			continue
		}
		if !first {
			sb.WriteString(",")
		}
		sb.WriteString(`"` + EscapeString(member.key) + `":` + member.elem.Marshal())
		first = false
	}
	sb.WriteString("}")
	return sb.String()
}

// MarshalSortedJSON returns the JSON encoding of this object with keys
// sorted, used for cross-replica convergence comparisons (P2) where
// insertion order may legitimately differ between two causally-consistent
// replicas.
func (o *Object) MarshalSortedJSON() string {
	keys := o.Keys()
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString("{")
	for i, key := range keys {
		if i > 0 {
			sb.WriteString(",")
		}
		elem, _ := o.Get(key)
		sb.WriteString(`"` + EscapeString(key) + `":` + elem.MarshalSortedJSON())
	}
	sb.WriteString("}")
	return sb.String()
}
