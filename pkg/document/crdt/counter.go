package crdt

import (
	"fmt"

	"github.com/hackerwins/riftdoc/pkg/document/time"
)

// CounterType identifies the numeric representation backing a Counter.
type CounterType int

// Supported counter value representations.
const (
	IntegerCnt CounterType = iota
	LongCnt
)

// Counter is a grow-only-by-delta numeric CRDT: concurrent Increase
// operations commute because they only ever add.
type Counter struct {
	baseElement
	valueType CounterType
	value     int64
}

// NewCounter creates a new instance of Counter.
func NewCounter(valueType CounterType, value int64, createdAt *time.Ticket) *Counter {
	return &Counter{
		baseElement: baseElement{createdAt: createdAt},
		valueType:   valueType,
		value:       value,
	}
}

// Value returns the current value of this counter.
func (c *Counter) Value() int64 {
	return c.value
}

// Increase adds delta to this counter's value and returns the applied
// delta, matching the reverse-operation contract Increase relies on (a
// negative delta undoes a prior increase).
func (c *Counter) Increase(delta int64) int64 {
	c.value += delta
	return delta
}

// DeepCopy returns a copy of this counter.
func (c *Counter) DeepCopy() (Element, error) {
	return &Counter{
		baseElement: baseElement{
			createdAt: c.createdAt,
			movedAt:   c.movedAt,
			removedAt: c.removedAt,
		},
		valueType: c.valueType,
		value:     c.value,
	}, nil
}

// DataSize returns the byte footprint of the counter's scalar value.
func (c *Counter) DataSize() DataSize {
	return DataSize{Data: 8, Meta: metaNodeSize}
}

// Marshal returns the JSON encoding of this counter's value.
func (c *Counter) Marshal() string {
	return fmt.Sprintf("%d", c.value)
}

// MarshalSortedJSON is the same as Marshal for a scalar leaf.
func (c *Counter) MarshalSortedJSON() string {
	return c.Marshal()
}
