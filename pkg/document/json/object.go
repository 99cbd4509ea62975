// Package json exposes the mutator-facing proxy types an Update callback
// uses to read and write a document's CRDT tree: every mutating method
// builds an operations.Operation, pushes it through the bound ChangeContext
// (which executes it immediately against the cloned root), and returns a
// proxy over the freshly created element so calls can be chained.
package json

import (
	"github.com/hackerwins/riftdoc/pkg/document/change"
	"github.com/hackerwins/riftdoc/pkg/document/crdt"
	"github.com/hackerwins/riftdoc/pkg/document/operations"
)

// Object is the mutator-facing proxy over a crdt.Object.
type Object struct {
	ctx    *change.Context
	object *crdt.Object
}

// NewObject creates a new instance of Object, proxying target.
func NewObject(ctx *change.Context, target *crdt.Object) *Object {
	return &Object{ctx: ctx, object: target}
}

// Keys returns the live keys of this object.
func (o *Object) Keys() []string {
	return o.object.Keys()
}

// Has reports whether key is currently set.
func (o *Object) Has(key string) bool {
	return o.object.Has(key)
}

// Marshal returns the JSON encoding of this object.
func (o *Object) Marshal() string {
	return o.object.Marshal()
}

// SetString sets key to a string primitive.
func (o *Object) SetString(key, value string) *Object {
	ticket := o.ctx.IssueTimeTicket()
	prim := crdt.NewPrimitive(value, ticket)
	_ = o.ctx.Push(operations.NewSet(o.object.CreatedAt(), key, prim, ticket))
	return o
}

// SetBool sets key to a boolean primitive.
func (o *Object) SetBool(key string, value bool) *Object {
	ticket := o.ctx.IssueTimeTicket()
	prim := crdt.NewPrimitive(value, ticket)
	_ = o.ctx.Push(operations.NewSet(o.object.CreatedAt(), key, prim, ticket))
	return o
}

// SetInteger sets key to an integer primitive.
func (o *Object) SetInteger(key string, value int32) *Object {
	ticket := o.ctx.IssueTimeTicket()
	prim := crdt.NewPrimitive(value, ticket)
	_ = o.ctx.Push(operations.NewSet(o.object.CreatedAt(), key, prim, ticket))
	return o
}

// SetLong sets key to a 64-bit integer primitive.
func (o *Object) SetLong(key string, value int64) *Object {
	ticket := o.ctx.IssueTimeTicket()
	prim := crdt.NewPrimitive(value, ticket)
	_ = o.ctx.Push(operations.NewSet(o.object.CreatedAt(), key, prim, ticket))
	return o
}

// SetNull sets key to a null primitive.
func (o *Object) SetNull(key string) *Object {
	ticket := o.ctx.IssueTimeTicket()
	prim := crdt.NewPrimitive(nil, ticket)
	_ = o.ctx.Push(operations.NewSet(o.object.CreatedAt(), key, prim, ticket))
	return o
}

// SetNewObject sets key to a new, empty nested object and returns a proxy
// over it.
func (o *Object) SetNewObject(key string) *Object {
	ticket := o.ctx.IssueTimeTicket()
	nested := crdt.NewEmptyObject(ticket)
	_ = o.ctx.Push(operations.NewSet(o.object.CreatedAt(), key, nested, ticket))
	return NewObject(o.ctx, nested)
}

// SetNewArray sets key to a new, empty nested array and returns a proxy
// over it.
func (o *Object) SetNewArray(key string) *Array {
	ticket := o.ctx.IssueTimeTicket()
	nested := crdt.NewArray(crdt.NewRGATreeList(), ticket)
	_ = o.ctx.Push(operations.NewSet(o.object.CreatedAt(), key, nested, ticket))
	return NewArray(o.ctx, nested)
}

// SetNewText sets key to a new, empty text and returns a proxy over it.
func (o *Object) SetNewText(key string) *Text {
	ticket := o.ctx.IssueTimeTicket()
	nested := crdt.NewText(crdt.NewRGATreeSplit(), ticket)
	_ = o.ctx.Push(operations.NewSet(o.object.CreatedAt(), key, nested, ticket))
	return NewText(o.ctx, nested)
}

// SetNewCounter sets key to a new counter seeded with value.
func (o *Object) SetNewCounter(key string, valueType crdt.CounterType, value int64) *Counter {
	ticket := o.ctx.IssueTimeTicket()
	nested := crdt.NewCounter(valueType, value, ticket)
	_ = o.ctx.Push(operations.NewSet(o.object.CreatedAt(), key, nested, ticket))
	return NewCounter(o.ctx, nested)
}

// Delete removes key from this object.
func (o *Object) Delete(key string) {
	elem, ok := o.object.Get(key)
	if !ok {
		return
	}
	ticket := o.ctx.IssueTimeTicket()
	_ = o.ctx.Push(operations.NewRemove(o.object.CreatedAt(), elem.CreatedAt(), ticket))
}

// GetObject returns a proxy over the nested object stored at key.
func (o *Object) GetObject(key string) *Object {
	elem, ok := o.object.Get(key)
	if !ok {
		return nil
	}
	nested, ok := elem.(*crdt.Object)
	if !ok {
		return nil
	}
	return NewObject(o.ctx, nested)
}

// GetArray returns a proxy over the nested array stored at key.
func (o *Object) GetArray(key string) *Array {
	elem, ok := o.object.Get(key)
	if !ok {
		return nil
	}
	nested, ok := elem.(*crdt.Array)
	if !ok {
		return nil
	}
	return NewArray(o.ctx, nested)
}

// GetText returns a proxy over the nested text stored at key.
func (o *Object) GetText(key string) *Text {
	elem, ok := o.object.Get(key)
	if !ok {
		return nil
	}
	nested, ok := elem.(*crdt.Text)
	if !ok {
		return nil
	}
	return NewText(o.ctx, nested)
}

// GetCounter returns a proxy over the counter stored at key.
func (o *Object) GetCounter(key string) *Counter {
	elem, ok := o.object.Get(key)
	if !ok {
		return nil
	}
	nested, ok := elem.(*crdt.Counter)
	if !ok {
		return nil
	}
	return NewCounter(o.ctx, nested)
}
