package operations

import (
	"github.com/hackerwins/riftdoc/pkg/document/crdt"
	"github.com/hackerwins/riftdoc/pkg/document/time"
)

// Move relocates the element created at createdAt to just after the element
// created at prevCreatedAt, within the same array.
type Move struct {
	parentCreatedAt *time.Ticket
	prevCreatedAt   *time.Ticket
	createdAt       *time.Ticket
	executedAt      *time.Ticket
}

// NewMove creates a new instance of Move.
func NewMove(parentCreatedAt, prevCreatedAt, createdAt, executedAt *time.Ticket) *Move {
	return &Move{parentCreatedAt: parentCreatedAt, prevCreatedAt: prevCreatedAt, createdAt: createdAt, executedAt: executedAt}
}

// ParentCreatedAt returns the ticket of the array this operation addresses.
func (o *Move) ParentCreatedAt() *time.Ticket {
	return o.parentCreatedAt
}

// ExecutedAt returns this operation's own ticket.
func (o *Move) ExecutedAt() *time.Ticket {
	return o.executedAt
}

// EffectedCreatedAt returns the moved element's creation ticket.
func (o *Move) EffectedCreatedAt() *time.Ticket {
	return o.createdAt
}

// Rebind returns a copy of this Move with executedAt in place of its own ticket.
func (o *Move) Rebind(executedAt *time.Ticket) Operation {
	return NewMove(o.parentCreatedAt, o.prevCreatedAt, o.createdAt, executedAt)
}

// Execute relocates the addressed element within its parent array.
func (o *Move) Execute(root *crdt.Root, source Source, vector time.VersionVector) (*ExecutionResult, error) {
	arr, err := findParentArray(root, o.parentCreatedAt)
	if err != nil {
		return nil, err
	}

	prevCreatedAt, err := arr.PrevCreatedAt(o.createdAt)
	if err != nil {
		return nil, err
	}

	if err := arr.MoveAfter(o.prevCreatedAt, o.createdAt, o.executedAt); err != nil {
		return nil, err
	}

	reverseOps := []Operation{NewMove(o.parentCreatedAt, prevCreatedAt, o.createdAt, o.executedAt)}

	return &ExecutionResult{
		OpInfos:    []OpInfo{{Path: "", Type: "move"}},
		ReverseOps: reverseOps,
	}, nil
}
