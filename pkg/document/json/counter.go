package json

import (
	"github.com/hackerwins/riftdoc/pkg/document/change"
	"github.com/hackerwins/riftdoc/pkg/document/crdt"
	"github.com/hackerwins/riftdoc/pkg/document/operations"
)

// Counter is the mutator-facing proxy over a crdt.Counter.
type Counter struct {
	ctx     *change.Context
	counter *crdt.Counter
}

// NewCounter creates a new instance of Counter, proxying target.
func NewCounter(ctx *change.Context, target *crdt.Counter) *Counter {
	return &Counter{ctx: ctx, counter: target}
}

// Value returns the current value of this counter.
func (c *Counter) Value() int64 {
	return c.counter.Value()
}

// Increase adds delta (possibly negative) to this counter's value.
func (c *Counter) Increase(delta int64) *Counter {
	ticket := c.ctx.IssueTimeTicket()
	deltaValue := crdt.NewPrimitive(delta, ticket)
	_ = c.ctx.Push(operations.NewIncrease(c.counter.CreatedAt(), deltaValue, ticket))
	return c
}
