package operations

import (
	"github.com/hackerwins/riftdoc/pkg/document/crdt"
	"github.com/hackerwins/riftdoc/pkg/document/time"
)

// Increase adds value (commutatively) to a Counter. Negative values
// decrease it.
type Increase struct {
	parentCreatedAt *time.Ticket
	value           crdt.Element
	executedAt      *time.Ticket
}

// NewIncrease creates a new instance of Increase. value carries the delta as
// an Integer or Long Primitive.
func NewIncrease(parentCreatedAt *time.Ticket, value crdt.Element, executedAt *time.Ticket) *Increase {
	return &Increase{parentCreatedAt: parentCreatedAt, value: value, executedAt: executedAt}
}

// ParentCreatedAt returns the ticket of the counter this operation addresses.
func (o *Increase) ParentCreatedAt() *time.Ticket {
	return o.parentCreatedAt
}

// ExecutedAt returns this operation's own ticket.
func (o *Increase) ExecutedAt() *time.Ticket {
	return o.executedAt
}

// EffectedCreatedAt returns the counter's own creation ticket: an increase
// never creates a new element.
func (o *Increase) EffectedCreatedAt() *time.Ticket {
	return o.parentCreatedAt
}

// Value returns the delta Primitive this operation applies.
func (o *Increase) Value() crdt.Element {
	return o.value
}

// Rebind returns a copy of this Increase with executedAt in place of its own ticket.
func (o *Increase) Rebind(executedAt *time.Ticket) Operation {
	return NewIncrease(o.parentCreatedAt, o.value, executedAt)
}

// Execute applies the delta to the addressed counter.
func (o *Increase) Execute(root *crdt.Root, source Source, vector time.VersionVector) (*ExecutionResult, error) {
	counter, err := findParentCounter(root, o.parentCreatedAt)
	if err != nil {
		return nil, err
	}

	primitive, ok := o.value.(*crdt.Primitive)
	if !ok {
		return nil, invalidArgument("increase value must be a numeric primitive")
	}

	delta, ok := toInt64(primitive.Value())
	if !ok {
		return nil, invalidArgument("increase value must be an integer or long")
	}
	counter.Increase(delta)

	reverseValue := crdt.NewPrimitive(-delta, o.executedAt)
	reverseOps := []Operation{NewIncrease(o.parentCreatedAt, reverseValue, o.executedAt)}

	return &ExecutionResult{
		OpInfos:    []OpInfo{{Path: "", Type: "increase"}},
		ReverseOps: reverseOps,
	}, nil
}

func toInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	default:
		return 0, false
	}
}
