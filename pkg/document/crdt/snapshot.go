package crdt

import (
	"encoding/json"
	"fmt"

	"github.com/hackerwins/riftdoc/pkg/document/time"
)

// snapshotTicket is the JSON-serializable form of a time.Ticket.
type snapshotTicket struct {
	Lamport   uint64 `json:"lamport"`
	Delimiter uint32 `json:"delimiter"`
	Actor     string `json:"actor"`
}

func ticketToSnapshot(t *time.Ticket) *snapshotTicket {
	if t == nil {
		return nil
	}
	return &snapshotTicket{Lamport: t.Lamport(), Delimiter: t.Delimiter(), Actor: t.ActorIDHex()}
}

func snapshotToTicket(s *snapshotTicket) (*time.Ticket, error) {
	if s == nil {
		return nil, nil
	}
	actor, err := time.ActorIDFromHex(s.Actor)
	if err != nil {
		return nil, err
	}
	return time.NewTicket(s.Lamport, s.Delimiter, actor), nil
}

// snapshotNode is the JSON-serializable form of one Element in the tree.
// Only the fields relevant to its Type are populated.
type snapshotNode struct {
	Type      string          `json:"type"`
	CreatedAt *snapshotTicket `json:"createdAt"`
	MovedAt   *snapshotTicket `json:"movedAt,omitempty"`
	RemovedAt *snapshotTicket `json:"removedAt,omitempty"`

	// object
	Keys     []string        `json:"keys,omitempty"`
	Members  []*snapshotNode `json:"members,omitempty"`

	// array
	Elements []*snapshotNode `json:"elements,omitempty"`

	// primitive
	Value json.RawMessage `json:"value,omitempty"`

	// counter
	CounterType CounterType `json:"counterType,omitempty"`
	IntValue    int64       `json:"intValue,omitempty"`

	// text, stored as its current plain content; tombstone history is not
	// preserved across a snapshot round trip.
	Text string `json:"text,omitempty"`
}

func elementToSnapshot(elem Element) (*snapshotNode, error) {
	node := &snapshotNode{
		CreatedAt: ticketToSnapshot(elem.CreatedAt()),
		MovedAt:   ticketToSnapshot(elem.MovedAt()),
		RemovedAt: ticketToSnapshot(elem.RemovedAt()),
	}

	switch typed := elem.(type) {
	case *Object:
		node.Type = "object"
		for _, member := range typed.members.Members() {
			childNode, err := elementToSnapshot(member.elem)
			if err != nil {
				return nil, err
			}
			node.Keys = append(node.Keys, member.key)
			node.Members = append(node.Members, childNode)
		}
	case *Array:
		node.Type = "array"
		for _, child := range typed.elements.AllNodes() {
			childNode, err := elementToSnapshot(child)
			if err != nil {
				return nil, err
			}
			node.Elements = append(node.Elements, childNode)
		}
	case *Primitive:
		node.Type = "primitive"
		raw, err := json.Marshal(typed.Value())
		if err != nil {
			return nil, err
		}
		node.Value = raw
	case *Counter:
		node.Type = "counter"
		node.CounterType = typed.valueType
		node.IntValue = typed.Value()
	case *Text:
		node.Type = "text"
		node.Text = typed.String()
	default:
		return nil, fmt.Errorf("crdt: elementToSnapshot: unsupported element type %T", elem)
	}

	return node, nil
}

func snapshotToElement(node *snapshotNode) (Element, error) {
	createdAt, err := snapshotToTicket(node.CreatedAt)
	if err != nil {
		return nil, err
	}
	movedAt, err := snapshotToTicket(node.MovedAt)
	if err != nil {
		return nil, err
	}
	removedAt, err := snapshotToTicket(node.RemovedAt)
	if err != nil {
		return nil, err
	}

	var elem Element
	switch node.Type {
	case "object":
		members := newElementRHT()
		for i, childNode := range node.Members {
			child, err := snapshotToElement(childNode)
			if err != nil {
				return nil, err
			}
			members.Set(node.Keys[i], child)
		}
		elem = NewObject(members, createdAt)
	case "array":
		elements := NewRGATreeList()
		for _, childNode := range node.Elements {
			child, err := snapshotToElement(childNode)
			if err != nil {
				return nil, err
			}
			elements.Add(child)
		}
		elem = NewArray(elements, createdAt)
	case "primitive":
		var value interface{}
		if len(node.Value) > 0 {
			if err := json.Unmarshal(node.Value, &value); err != nil {
				return nil, err
			}
		}
		elem = NewPrimitive(value, createdAt)
	case "counter":
		elem = NewCounter(node.CounterType, node.IntValue, createdAt)
	case "text":
		split := NewRGATreeSplit()
		text := NewText(split, createdAt)
		if node.Text != "" {
			from, to := text.CreateRange(0, 0)
			if _, _, _, _, err := text.Edit(from, to, nil, node.Text, nil, createdAt); err != nil {
				return nil, err
			}
		}
		elem = text
	default:
		return nil, fmt.Errorf("crdt: snapshotToElement: unknown type %q", node.Type)
	}

	elem.SetMovedAt(movedAt)
	elem.SetRemovedAt(removedAt)
	return elem, nil
}

// Bytes serializes this root into a self-contained snapshot, losing only
// text tombstone history (the plain content survives).
func (r *Root) Bytes() ([]byte, error) {
	node, err := elementToSnapshot(r.rootObject)
	if err != nil {
		return nil, err
	}
	return json.Marshal(node)
}

// RootFromBytes reconstructs a Root from a snapshot produced by Bytes.
func RootFromBytes(data []byte) (*Root, error) {
	var node snapshotNode
	if err := json.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	elem, err := snapshotToElement(&node)
	if err != nil {
		return nil, err
	}
	obj, ok := elem.(*Object)
	if !ok {
		return nil, fmt.Errorf("crdt: RootFromBytes: root element is not an object")
	}
	return NewRoot(obj), nil
}
