package crdt

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hackerwins/riftdoc/pkg/document/time"
)

// RHTNode is a single entry of an RHT: a value and the ticket it was last
// written at.
type RHTNode struct {
	key       string
	value     string
	updatedAt *time.Ticket
	removedAt *time.Ticket
}

func newRHTNode(key, value string, updatedAt *time.Ticket) *RHTNode {
	return &RHTNode{key: key, value: value, updatedAt: updatedAt}
}

// Key returns the attribute key of this node.
func (n *RHTNode) Key() string {
	return n.key
}

// Value returns the attribute value of this node.
func (n *RHTNode) Value() string {
	return n.value
}

// UpdatedAt returns the ticket this node's value was last set at.
func (n *RHTNode) UpdatedAt() *time.Ticket {
	return n.updatedAt
}

// IDString identifies this node for the GC pair map: key+ticket is unique
// because a later write always carries a later ticket.
func (n *RHTNode) IDString() string {
	return fmt.Sprintf("%s:%s", n.key, n.updatedAt.Key())
}

// RemovedAt returns the ticket this node was tombstoned at, i.e. replaced by
// a newer write, or nil if it's still live.
func (n *RHTNode) RemovedAt() *time.Ticket {
	return n.removedAt
}

// RHT is a replicated hash table: an insertion-ordered, last-writer-wins map
// from key to (value, updatedAt). A replaced entry becomes a tombstone kept
// around as a GC child until every participant has observed the replace.
type RHT struct {
	nodeMapByKey map[string]*RHTNode
	order        []string
}

// NewRHT creates a new, empty RHT.
func NewRHT() *RHT {
	return &RHT{nodeMapByKey: make(map[string]*RHTNode)}
}

// Get returns the current live value for key, if any.
func (rht *RHT) Get(key string) (string, bool) {
	node, ok := rht.nodeMapByKey[key]
	if !ok || node.removedAt != nil {
		return "", false
	}
	return node.value, true
}

// Has reports whether key currently has a live value.
func (rht *RHT) Has(key string) bool {
	_, ok := rht.Get(key)
	return ok
}

// Set replaces the value for key iff ticket sorts after the existing entry's
// updatedAt. The replaced node, if any, is returned as a GC pair so the
// caller can register it with the root.
func (rht *RHT) Set(key, value string, ticket *time.Ticket) *GCPair {
	existing, ok := rht.nodeMapByKey[key]
	if ok && !ticket.After(existing.updatedAt) {
		return nil
	}

	node := newRHTNode(key, value, ticket)
	rht.nodeMapByKey[key] = node
	if !ok {
		rht.order = append(rht.order, key)
	}

	if ok {
		existing.removedAt = ticket
		return &GCPair{Parent: rht, Child: existing}
	}
	return nil
}

// Purge is the RHT's half of the GCParent contract. Set already drops a
// replaced node from nodeMapByKey, so there is nothing left to unlink; Purge
// only checks the child's type.
func (rht *RHT) Purge(child GCChild) error {
	node, ok := child.(*RHTNode)
	if !ok {
		return fmt.Errorf("crdt: RHT.Purge: unexpected child type %T", child)
	}
	if current, ok := rht.nodeMapByKey[node.key]; ok && current == node {
		// current live value, nothing to purge
		return nil
	}
	return nil
}

// Elements returns the live (key, value) pairs of this RHT.
func (rht *RHT) Elements() map[string]string {
	elements := make(map[string]string)
	for key, node := range rht.nodeMapByKey {
		if node.removedAt == nil {
			elements[key] = node.value
		}
	}
	return elements
}

// Nodes returns the node currently held for each key. A node replaced by Set
// is no longer held, so it is not included.
func (rht *RHT) Nodes() []*RHTNode {
	nodes := make([]*RHTNode, 0, len(rht.nodeMapByKey))
	for _, node := range rht.nodeMapByKey {
		nodes = append(nodes, node)
	}
	return nodes
}

// DeepCopy returns a copy of this RHT's current nodes; nodes already
// replaced by Set are not held and so are not copied.
func (rht *RHT) DeepCopy() *RHT {
	copied := NewRHT()
	for _, key := range rht.order {
		node := rht.nodeMapByKey[key]
		copied.nodeMapByKey[key] = &RHTNode{
			key:       node.key,
			value:     node.value,
			updatedAt: node.updatedAt,
			removedAt: node.removedAt,
		}
		copied.order = append(copied.order, key)
	}
	return copied
}

// Marshal returns the JSON encoding of the live attributes of this RHT, keys
// sorted for determinism.
func (rht *RHT) Marshal() string {
	if len(rht.nodeMapByKey) == 0 {
		return "{}"
	}

	keys := make([]string, 0, len(rht.nodeMapByKey))
	for key, node := range rht.nodeMapByKey {
		if node.removedAt == nil {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString("{")
	for i, key := range keys {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(fmt.Sprintf(`"%s":"%s"`, key, EscapeString(rht.nodeMapByKey[key].value)))
	}
	sb.WriteString("}")
	return sb.String()
}
