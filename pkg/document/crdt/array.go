package crdt

import (
	"github.com/hackerwins/riftdoc/pkg/document/time"
)

// Array is an ordered, RGA-based sequence of Elements.
type Array struct {
	baseElement
	elements *RGATreeList
}

// NewArray creates a new instance of Array.
func NewArray(elements *RGATreeList, createdAt *time.Ticket) *Array {
	return &Array{
		baseElement: baseElement{createdAt: createdAt},
		elements:    elements,
	}
}

// Add appends elem to this array.
func (a *Array) Add(elem Element) {
	a.elements.Add(elem)
}

// InsertAfter inserts elem after the element created at prevCreatedAt.
func (a *Array) InsertAfter(prevCreatedAt *time.Ticket, elem Element) {
	a.elements.InsertAfter(prevCreatedAt, elem)
}

// Get returns the live element at idx.
func (a *Array) Get(idx int) (Element, error) {
	node, err := a.elements.Get(idx)
	if err != nil {
		return nil, err
	}
	return node.elem, nil
}

// Elements returns the live elements of this array in order.
func (a *Array) Elements() []Element {
	return a.elements.Elements()
}

// Len returns the number of live elements.
func (a *Array) Len() int {
	return a.elements.Len()
}

// DeleteByCreatedAt tombstones and, per the Container contract, returns the
// removed element.
func (a *Array) DeleteByCreatedAt(createdAt *time.Ticket, removedAt *time.Ticket) (Element, error) {
	node, err := a.elements.DeleteByCreatedAt(createdAt, removedAt)
	if err != nil {
		return nil, err
	}
	return node.elem, nil
}

// MoveAfter relocates the element created at createdAt to after
// prevCreatedAt.
func (a *Array) MoveAfter(prevCreatedAt, createdAt, executedAt *time.Ticket) error {
	return a.elements.MoveAfter(prevCreatedAt, createdAt, executedAt)
}

// SetByCreatedAt replaces the element created at createdAt in place with
// newElem, tombstoning the old element.
func (a *Array) SetByCreatedAt(createdAt *time.Ticket, newElem Element, executedAt *time.Ticket) (Element, error) {
	return a.elements.SetByCreatedAt(createdAt, newElem, executedAt)
}

// PrevCreatedAt returns the createdAt of the element immediately preceding
// createdAt in list order, for building reverse Add/Move operations.
func (a *Array) PrevCreatedAt(createdAt *time.Ticket) (*time.Ticket, error) {
	return a.elements.PrevCreatedAt(createdAt)
}

// Head returns the sentinel ticket identifying the position before the
// first element, used as prevCreatedAt when inserting into an empty array.
func (a *Array) Head() *time.Ticket {
	return a.elements.dummyHead.elem.CreatedAt()
}

// Purge forwards to the backing RGATreeList.
func (a *Array) Purge(child Element) error {
	return a.elements.Purge(child)
}

// GCPairs returns a pair for every tombstoned direct child, and recurses
// into container children.
func (a *Array) GCPairs() []GCPair {
	var pairs []GCPair
	for _, elem := range a.elements.AllNodes() {
		if elem.RemovedAt() != nil {
			pairs = append(pairs, GCPair{Parent: arrayGCParent{a.elements}, Child: arrayGCChild{elem}})
		}
		if provider, ok := elem.(gcPairsProvider); ok {
			pairs = append(pairs, provider.GCPairs()...)
		}
	}
	return pairs
}

// arrayGCChild adapts an Element to the GCChild interface using its
// CreatedAt ticket as the IDString, matching how RGATreeList keys its
// internal map.
type arrayGCChild struct {
	elem Element
}

func (c arrayGCChild) IDString() string {
	return c.elem.CreatedAt().Key()
}

func (c arrayGCChild) RemovedAt() *time.Ticket {
	return c.elem.RemovedAt()
}

// arrayGCParent adapts the backing RGATreeList to the GCParent interface,
// unwrapping the arrayGCChild it is given.
type arrayGCParent struct {
	elements *RGATreeList
}

func (p arrayGCParent) Purge(child GCChild) error {
	return p.elements.Purge(child.(arrayGCChild).elem)
}

// DeepCopy returns a copy of this array and its elements.
func (a *Array) DeepCopy() (Element, error) {
	elements := NewRGATreeList()
	for _, elem := range a.elements.AllNodes() {
		copied, err := elem.DeepCopy()
		if err != nil {
			return nil, err
		}
		elements.InsertAfter(elements.last.elem.CreatedAt(), copied)
	}

	return &Array{
		baseElement: baseElement{
			createdAt: a.createdAt,
			movedAt:   a.movedAt,
			removedAt: a.removedAt,
		},
		elements: elements,
	}, nil
}

// DataSize sums the byte footprint of every element, tombstones included,
// plus list overhead.
func (a *Array) DataSize() DataSize {
	size := DataSize{Meta: metaNodeSize}
	for _, elem := range a.elements.AllNodes() {
		elemSize := elem.DataSize()
		size = size.Add(elemSize)
	}
	return size
}

// Marshal returns the JSON encoding of this array.
func (a *Array) Marshal() string {
	return a.elements.marshal()
}

// MarshalSortedJSON is the same as Marshal: array order already is the
// deterministic document order.
func (a *Array) MarshalSortedJSON() string {
	return a.Marshal()
}
