package operations

import (
	"github.com/hackerwins/riftdoc/pkg/document/crdt"
	"github.com/hackerwins/riftdoc/pkg/document/time"
)

// Set sets a key of an object to a newly created element.
type Set struct {
	parentCreatedAt *time.Ticket
	key             string
	value           crdt.Element
	executedAt      *time.Ticket
}

// NewSet creates a new instance of Set.
func NewSet(parentCreatedAt *time.Ticket, key string, value crdt.Element, executedAt *time.Ticket) *Set {
	return &Set{parentCreatedAt: parentCreatedAt, key: key, value: value, executedAt: executedAt}
}

// ParentCreatedAt returns the ticket of the object this operation addresses.
func (o *Set) ParentCreatedAt() *time.Ticket {
	return o.parentCreatedAt
}

// ExecutedAt returns this operation's own ticket.
func (o *Set) ExecutedAt() *time.Ticket {
	return o.executedAt
}

// EffectedCreatedAt returns the new value's creation ticket.
func (o *Set) EffectedCreatedAt() *time.Ticket {
	return o.value.CreatedAt()
}

// Key returns the key this operation writes.
func (o *Set) Key() string {
	return o.key
}

// Value returns the value this operation writes.
func (o *Set) Value() crdt.Element {
	return o.value
}

// Rebind returns a copy of this Set with executedAt in place of its own ticket.
func (o *Set) Rebind(executedAt *time.Ticket) Operation {
	return NewSet(o.parentCreatedAt, o.key, o.value, executedAt)
}

// Execute sets key to value on the parent object.
func (o *Set) Execute(root *crdt.Root, source Source, vector time.VersionVector) (*ExecutionResult, error) {
	obj, err := findParentObject(root, o.parentCreatedAt)
	if err != nil {
		return nil, err
	}

	previous, hadPrevious := obj.Get(o.key)

	replaced := obj.Set(o.key, o.value)
	root.RegisterElement(o.value)
	root.Acc(o.value.DataSize())
	if replaced != nil {
		root.RegisterRemovedElement(replaced)
	}

	var reverseOps []Operation
	if hadPrevious {
		reverseOps = append(reverseOps, NewSet(o.parentCreatedAt, o.key, previous, o.executedAt))
	} else {
		reverseOps = append(reverseOps, NewRemove(o.parentCreatedAt, o.value.CreatedAt(), o.executedAt))
	}

	return &ExecutionResult{
		OpInfos:    []OpInfo{{Path: o.key, Type: "set"}},
		ReverseOps: reverseOps,
	}, nil
}
