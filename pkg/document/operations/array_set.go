package operations

import (
	"github.com/hackerwins/riftdoc/pkg/document/crdt"
	"github.com/hackerwins/riftdoc/pkg/document/time"
)

// ArraySet replaces, in place, the array element created at createdAt with a
// newly created value, without disturbing its position.
type ArraySet struct {
	parentCreatedAt *time.Ticket
	createdAt       *time.Ticket
	value           crdt.Element
	executedAt      *time.Ticket
}

// NewArraySet creates a new instance of ArraySet.
func NewArraySet(parentCreatedAt, createdAt *time.Ticket, value crdt.Element, executedAt *time.Ticket) *ArraySet {
	return &ArraySet{parentCreatedAt: parentCreatedAt, createdAt: createdAt, value: value, executedAt: executedAt}
}

// ParentCreatedAt returns the ticket of the array this operation addresses.
func (o *ArraySet) ParentCreatedAt() *time.Ticket {
	return o.parentCreatedAt
}

// ExecutedAt returns this operation's own ticket.
func (o *ArraySet) ExecutedAt() *time.Ticket {
	return o.executedAt
}

// EffectedCreatedAt returns the new value's creation ticket.
func (o *ArraySet) EffectedCreatedAt() *time.Ticket {
	return o.value.CreatedAt()
}

// Rebind returns a copy of this ArraySet with executedAt in place of its own ticket.
func (o *ArraySet) Rebind(executedAt *time.Ticket) Operation {
	return NewArraySet(o.parentCreatedAt, o.createdAt, o.value, executedAt)
}

// Execute replaces the addressed array element with value, in place.
func (o *ArraySet) Execute(root *crdt.Root, source Source, vector time.VersionVector) (*ExecutionResult, error) {
	arr, err := findParentArray(root, o.parentCreatedAt)
	if err != nil {
		return nil, err
	}

	replaced, err := arr.SetByCreatedAt(o.createdAt, o.value, o.executedAt)
	if err != nil {
		return nil, err
	}
	root.RegisterElement(o.value)
	root.Acc(o.value.DataSize())
	if replaced != nil {
		root.RegisterRemovedElement(replaced)
	}

	var reverseOps []Operation
	if restored, err := replaced.DeepCopy(); err == nil {
		restored.SetRemovedAt(nil)
		reverseOps = append(reverseOps, NewArraySet(o.parentCreatedAt, o.value.CreatedAt(), restored, o.executedAt))
	}

	return &ExecutionResult{
		OpInfos:    []OpInfo{{Path: "", Type: "array-set"}},
		ReverseOps: reverseOps,
	}, nil
}
