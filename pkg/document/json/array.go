package json

import (
	"github.com/hackerwins/riftdoc/pkg/document/change"
	"github.com/hackerwins/riftdoc/pkg/document/crdt"
	"github.com/hackerwins/riftdoc/pkg/document/operations"
	"github.com/hackerwins/riftdoc/pkg/document/time"
)

// Array is the mutator-facing proxy over a crdt.Array.
type Array struct {
	ctx   *change.Context
	array *crdt.Array
}

// NewArray creates a new instance of Array, proxying target.
func NewArray(ctx *change.Context, target *crdt.Array) *Array {
	return &Array{ctx: ctx, array: target}
}

// Len returns the number of live elements.
func (a *Array) Len() int {
	return a.array.Len()
}

// Marshal returns the JSON encoding of this array.
func (a *Array) Marshal() string {
	return a.array.Marshal()
}

func (a *Array) lastCreatedAt() *time.Ticket {
	elements := a.array.Elements()
	if len(elements) == 0 {
		return a.array.Head()
	}
	return elements[len(elements)-1].CreatedAt()
}

// AddString appends a string primitive.
func (a *Array) AddString(value string) *Array {
	ticket := a.ctx.IssueTimeTicket()
	prim := crdt.NewPrimitive(value, ticket)
	_ = a.ctx.Push(operations.NewAdd(a.array.CreatedAt(), a.lastCreatedAt(), prim, ticket))
	return a
}

// AddInteger appends an integer primitive.
func (a *Array) AddInteger(value int32) *Array {
	ticket := a.ctx.IssueTimeTicket()
	prim := crdt.NewPrimitive(value, ticket)
	_ = a.ctx.Push(operations.NewAdd(a.array.CreatedAt(), a.lastCreatedAt(), prim, ticket))
	return a
}

// AddLong appends a 64-bit integer primitive.
func (a *Array) AddLong(value int64) *Array {
	ticket := a.ctx.IssueTimeTicket()
	prim := crdt.NewPrimitive(value, ticket)
	_ = a.ctx.Push(operations.NewAdd(a.array.CreatedAt(), a.lastCreatedAt(), prim, ticket))
	return a
}

// AddBool appends a boolean primitive.
func (a *Array) AddBool(value bool) *Array {
	ticket := a.ctx.IssueTimeTicket()
	prim := crdt.NewPrimitive(value, ticket)
	_ = a.ctx.Push(operations.NewAdd(a.array.CreatedAt(), a.lastCreatedAt(), prim, ticket))
	return a
}

// AddNewObject appends a new, empty nested object and returns a proxy over
// it.
func (a *Array) AddNewObject() *Object {
	ticket := a.ctx.IssueTimeTicket()
	nested := crdt.NewEmptyObject(ticket)
	_ = a.ctx.Push(operations.NewAdd(a.array.CreatedAt(), a.lastCreatedAt(), nested, ticket))
	return NewObject(a.ctx, nested)
}

// AddNewArray appends a new, empty nested array and returns a proxy over it.
func (a *Array) AddNewArray() *Array {
	ticket := a.ctx.IssueTimeTicket()
	nested := crdt.NewArray(crdt.NewRGATreeList(), ticket)
	_ = a.ctx.Push(operations.NewAdd(a.array.CreatedAt(), a.lastCreatedAt(), nested, ticket))
	return NewArray(a.ctx, nested)
}

// AddNewText appends a new, empty text and returns a proxy over it.
func (a *Array) AddNewText() *Text {
	ticket := a.ctx.IssueTimeTicket()
	nested := crdt.NewText(crdt.NewRGATreeSplit(), ticket)
	_ = a.ctx.Push(operations.NewAdd(a.array.CreatedAt(), a.lastCreatedAt(), nested, ticket))
	return NewText(a.ctx, nested)
}

// Get returns a read-only view of the live element at idx.
func (a *Array) Get(idx int) (crdt.Element, error) {
	return a.array.Get(idx)
}

// GetObject returns a proxy over the nested object at idx.
func (a *Array) GetObject(idx int) *Object {
	elem, err := a.array.Get(idx)
	if err != nil {
		return nil
	}
	nested, ok := elem.(*crdt.Object)
	if !ok {
		return nil
	}
	return NewObject(a.ctx, nested)
}

// GetArray returns a proxy over the nested array at idx.
func (a *Array) GetArray(idx int) *Array {
	elem, err := a.array.Get(idx)
	if err != nil {
		return nil
	}
	nested, ok := elem.(*crdt.Array)
	if !ok {
		return nil
	}
	return NewArray(a.ctx, nested)
}

// Delete removes the element at idx.
func (a *Array) Delete(idx int) {
	elem, err := a.array.Get(idx)
	if err != nil {
		return
	}
	ticket := a.ctx.IssueTimeTicket()
	_ = a.ctx.Push(operations.NewRemove(a.array.CreatedAt(), elem.CreatedAt(), ticket))
}

// MoveAfter relocates the element created at createdAt to just after
// prevCreatedAt.
func (a *Array) MoveAfter(prevCreatedAt, createdAt *time.Ticket) {
	ticket := a.ctx.IssueTimeTicket()
	_ = a.ctx.Push(operations.NewMove(a.array.CreatedAt(), prevCreatedAt, createdAt, ticket))
}

// SetByIndex replaces, in place, the element at idx with a new string
// primitive.
func (a *Array) SetByIndex(idx int, value string) {
	elem, err := a.array.Get(idx)
	if err != nil {
		return
	}
	ticket := a.ctx.IssueTimeTicket()
	prim := crdt.NewPrimitive(value, ticket)
	_ = a.ctx.Push(operations.NewArraySet(a.array.CreatedAt(), elem.CreatedAt(), prim, ticket))
}
