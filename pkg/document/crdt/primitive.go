package crdt

import (
	"fmt"

	"github.com/hackerwins/riftdoc/pkg/document/time"
)

// Primitive represents scalar JSON values (bool, number, string, null) as a
// leaf Element.
type Primitive struct {
	baseElement
	value interface{}
}

// NewPrimitive creates a new instance of Primitive.
func NewPrimitive(value interface{}, createdAt *time.Ticket) *Primitive {
	return &Primitive{
		baseElement: baseElement{createdAt: createdAt},
		value:       value,
	}
}

// Value returns the underlying Go value.
func (p *Primitive) Value() interface{} {
	return p.value
}

// DeepCopy returns a copy of this primitive; since its value is immutable,
// only the timestamps need to carry over.
func (p *Primitive) DeepCopy() (Element, error) {
	return &Primitive{
		baseElement: baseElement{
			createdAt: p.createdAt,
			movedAt:   p.movedAt,
			removedAt: p.removedAt,
		},
		value: p.value,
	}, nil
}

// DataSize returns the byte footprint of this primitive's value plus one
// ticket's worth of metadata.
func (p *Primitive) DataSize() DataSize {
	size := 0
	switch v := p.value.(type) {
	case string:
		size = len(v)
	case bool:
		size = 1
	case nil:
		size = 0
	default:
		size = 8
	}
	return DataSize{Data: size, Meta: metaNodeSize}
}

// Marshal returns the JSON encoding of this primitive.
func (p *Primitive) Marshal() string {
	switch v := p.value.(type) {
	case nil:
		return "null"
	case bool:
		return fmt.Sprintf("%t", v)
	case string:
		return fmt.Sprintf(`"%s"`, EscapeString(v))
	default:
		return fmt.Sprintf("%v", v)
	}
}

// MarshalSortedJSON is the same as Marshal for a scalar leaf.
func (p *Primitive) MarshalSortedJSON() string {
	return p.Marshal()
}
