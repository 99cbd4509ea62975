package operations

import (
	"github.com/hackerwins/riftdoc/pkg/document/crdt"
	"github.com/hackerwins/riftdoc/pkg/document/time"
)

// Remove tombstones the element created at createdAt under its parent
// container, which may be an Object or an Array.
type Remove struct {
	parentCreatedAt *time.Ticket
	createdAt       *time.Ticket
	executedAt      *time.Ticket
}

// NewRemove creates a new instance of Remove.
func NewRemove(parentCreatedAt, createdAt, executedAt *time.Ticket) *Remove {
	return &Remove{parentCreatedAt: parentCreatedAt, createdAt: createdAt, executedAt: executedAt}
}

// ParentCreatedAt returns the ticket of the container this operation addresses.
func (o *Remove) ParentCreatedAt() *time.Ticket {
	return o.parentCreatedAt
}

// ExecutedAt returns this operation's own ticket.
func (o *Remove) ExecutedAt() *time.Ticket {
	return o.executedAt
}

// EffectedCreatedAt returns the removed element's creation ticket.
func (o *Remove) EffectedCreatedAt() *time.Ticket {
	return o.createdAt
}

// CreatedAt returns the creation ticket of the element being removed.
func (o *Remove) CreatedAt() *time.Ticket {
	return o.createdAt
}

// Rebind returns a copy of this Remove with executedAt in place of its own ticket.
func (o *Remove) Rebind(executedAt *time.Ticket) Operation {
	return NewRemove(o.parentCreatedAt, o.createdAt, executedAt)
}

// Execute tombstones the addressed element under its parent container.
func (o *Remove) Execute(root *crdt.Root, source Source, vector time.VersionVector) (*ExecutionResult, error) {
	container, err := findParentContainer(root, o.parentCreatedAt)
	if err != nil {
		return nil, err
	}

	var prevCreatedAt *time.Ticket
	var key string
	switch typed := container.(type) {
	case *crdt.Object:
		key, _ = typed.KeyOf(o.createdAt)
	case *crdt.Array:
		prevCreatedAt, _ = typed.PrevCreatedAt(o.createdAt)
	}

	removed, err := container.DeleteByCreatedAt(o.createdAt, o.executedAt)
	if err != nil {
		return nil, err
	}
	if removed == nil {
		return &ExecutionResult{}, nil
	}
	root.RegisterRemovedElement(removed)

	var reverseOps []Operation
	restored, err := removed.DeepCopy()
	if err == nil {
		restored.SetRemovedAt(nil)
		switch container.(type) {
		case *crdt.Object:
			reverseOps = append(reverseOps, NewSet(o.parentCreatedAt, key, restored, o.executedAt))
		case *crdt.Array:
			reverseOps = append(reverseOps, NewAdd(o.parentCreatedAt, prevCreatedAt, restored, o.executedAt))
		}
	}

	path := key
	return &ExecutionResult{
		OpInfos:    []OpInfo{{Path: path, Type: "remove"}},
		ReverseOps: reverseOps,
	}, nil
}
