package operations

import (
	"github.com/hackerwins/riftdoc/pkg/document/crdt"
	"github.com/hackerwins/riftdoc/pkg/document/time"
)

// Add inserts a newly created element into an array, immediately after the
// element created at prevCreatedAt.
type Add struct {
	parentCreatedAt *time.Ticket
	prevCreatedAt   *time.Ticket
	value           crdt.Element
	executedAt      *time.Ticket
}

// NewAdd creates a new instance of Add.
func NewAdd(parentCreatedAt, prevCreatedAt *time.Ticket, value crdt.Element, executedAt *time.Ticket) *Add {
	return &Add{parentCreatedAt: parentCreatedAt, prevCreatedAt: prevCreatedAt, value: value, executedAt: executedAt}
}

// ParentCreatedAt returns the ticket of the array this operation addresses.
func (o *Add) ParentCreatedAt() *time.Ticket {
	return o.parentCreatedAt
}

// ExecutedAt returns this operation's own ticket.
func (o *Add) ExecutedAt() *time.Ticket {
	return o.executedAt
}

// EffectedCreatedAt returns the new value's creation ticket.
func (o *Add) EffectedCreatedAt() *time.Ticket {
	return o.value.CreatedAt()
}

// PrevCreatedAt returns the ticket of the element this one is inserted after.
func (o *Add) PrevCreatedAt() *time.Ticket {
	return o.prevCreatedAt
}

// Value returns the value this operation inserts.
func (o *Add) Value() crdt.Element {
	return o.value
}

// Rebind returns a copy of this Add with executedAt in place of its own ticket.
func (o *Add) Rebind(executedAt *time.Ticket) Operation {
	return NewAdd(o.parentCreatedAt, o.prevCreatedAt, o.value, executedAt)
}

// Execute inserts value into the parent array after prevCreatedAt.
func (o *Add) Execute(root *crdt.Root, source Source, vector time.VersionVector) (*ExecutionResult, error) {
	arr, err := findParentArray(root, o.parentCreatedAt)
	if err != nil {
		return nil, err
	}

	arr.InsertAfter(o.prevCreatedAt, o.value)
	root.RegisterElement(o.value)
	root.Acc(o.value.DataSize())

	reverseOps := []Operation{NewRemove(o.parentCreatedAt, o.value.CreatedAt(), o.executedAt)}

	return &ExecutionResult{
		OpInfos:    []OpInfo{{Path: "", Type: "add"}},
		ReverseOps: reverseOps,
	}, nil
}
