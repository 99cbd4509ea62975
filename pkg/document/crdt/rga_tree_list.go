package crdt

import (
	"fmt"
	"strings"

	"github.com/hackerwins/riftdoc/pkg/document/time"
	"github.com/hackerwins/riftdoc/pkg/splay"
)

// rgaTreeListNode wraps an Element in the array's RGA-ordered linked list,
// with a splay-tree index node for O(log n) index lookups.
type rgaTreeListNode struct {
	indexNode *splay.Node
	elem      Element

	prev *rgaTreeListNode
	next *rgaTreeListNode
}

func newRGATreeListNode(elem Element) *rgaTreeListNode {
	node := &rgaTreeListNode{elem: elem}
	node.indexNode = splay.NewNode(node)
	return node
}

func (n *rgaTreeListNode) Len() int {
	if n.isRemoved() {
		return 0
	}
	return 1
}

func (n *rgaTreeListNode) String() string {
	return n.elem.Marshal()
}

func (n *rgaTreeListNode) isRemoved() bool {
	return n.elem.RemovedAt() != nil
}

func (n *rgaTreeListNode) positionedAt() *time.Ticket {
	if n.elem.MovedAt() != nil {
		return n.elem.MovedAt()
	}
	return n.elem.CreatedAt()
}

// RGATreeList is an RGA-ordered list of Elements with a splay-tree index for
// fast index<->node lookups, used as the backing store of Array.
type RGATreeList struct {
	dummyHead          *rgaTreeListNode
	last               *rgaTreeListNode
	size               int
	nodeMapByIndex     *splay.Tree
	nodeMapByCreatedAt map[string]*rgaTreeListNode
}

// NewRGATreeList creates a new, empty RGATreeList.
func NewRGATreeList() *RGATreeList {
	dummyValue := NewPrimitive(nil, time.InitialTicket)
	dummyValue.SetRemovedAt(time.InitialTicket)
	dummyHead := newRGATreeListNode(dummyValue)

	nodeMapByIndex := splay.NewTree()
	nodeMapByIndex.Insert(dummyHead.indexNode)

	nodeMapByCreatedAt := make(map[string]*rgaTreeListNode)
	nodeMapByCreatedAt[dummyHead.elem.CreatedAt().Key()] = dummyHead

	return &RGATreeList{
		dummyHead:          dummyHead,
		last:               dummyHead,
		nodeMapByIndex:     nodeMapByIndex,
		nodeMapByCreatedAt: nodeMapByCreatedAt,
	}
}

// Len returns the number of live elements.
func (a *RGATreeList) Len() int {
	return a.size
}

// Add appends elem at the end of the list.
func (a *RGATreeList) Add(elem Element) {
	a.insertAfter(a.last.elem.CreatedAt(), elem, elem.CreatedAt())
}

// InsertAfter inserts elem immediately after the element created at
// prevCreatedAt.
func (a *RGATreeList) InsertAfter(prevCreatedAt *time.Ticket, elem Element) {
	a.insertAfter(prevCreatedAt, elem, elem.CreatedAt())
}

// Get returns the node at visible index idx.
func (a *RGATreeList) Get(idx int) (*rgaTreeListNode, error) {
	splayNode, offset := a.nodeMapByIndex.Find(idx)
	if splayNode == nil {
		return nil, fmt.Errorf("crdt: RGATreeList.Get: index %d out of range", idx)
	}
	node := splayNode.Value().(*rgaTreeListNode)

	if (idx == 0 && splayNode == a.dummyHead.indexNode) || offset > 0 {
		for node.next != nil {
			node = node.next
			if !node.isRemoved() {
				break
			}
		}
	}
	return node, nil
}

// DeleteByCreatedAt tombstones the element created at createdAt.
func (a *RGATreeList) DeleteByCreatedAt(createdAt *time.Ticket, deletedAt *time.Ticket) (*rgaTreeListNode, error) {
	node, ok := a.nodeMapByCreatedAt[createdAt.Key()]
	if !ok {
		return nil, fmt.Errorf("crdt: RGATreeList.DeleteByCreatedAt: node not found for %s", createdAt.AnnotatedString())
	}

	alreadyRemoved := node.isRemoved()
	if node.elem.Remove(deletedAt) && !alreadyRemoved {
		a.nodeMapByIndex.Splay(node.indexNode)
		a.nodeMapByIndex.UpdateSubtree(node.indexNode)
		a.size--
	}
	return node, nil
}

// MoveAfter relocates the element created at createdAt to just after the
// element created at prevCreatedAt.
func (a *RGATreeList) MoveAfter(prevCreatedAt, createdAt, executedAt *time.Ticket) error {
	prevNode, ok := a.nodeMapByCreatedAt[prevCreatedAt.Key()]
	if !ok {
		return fmt.Errorf("crdt: RGATreeList.MoveAfter: prev node not found for %s", prevCreatedAt.AnnotatedString())
	}
	node, ok := a.nodeMapByCreatedAt[createdAt.Key()]
	if !ok {
		return fmt.Errorf("crdt: RGATreeList.MoveAfter: node not found for %s", createdAt.AnnotatedString())
	}

	if node.elem.MovedAt() == nil || executedAt.After(node.elem.MovedAt()) {
		a.release(node)
		a.insertAfter(prevNode.elem.CreatedAt(), node.elem, executedAt)
		node.elem.SetMovedAt(executedAt)
	}
	return nil
}

// SetByCreatedAt replaces the value stored at the position of the element
// created at createdAt, tombstoning the old element at executedAt and
// inserting newElem immediately after it. It returns the replaced element.
func (a *RGATreeList) SetByCreatedAt(createdAt *time.Ticket, newElem Element, executedAt *time.Ticket) (Element, error) {
	node, ok := a.nodeMapByCreatedAt[createdAt.Key()]
	if !ok {
		return nil, fmt.Errorf("crdt: RGATreeList.SetByCreatedAt: node not found for %s", createdAt.AnnotatedString())
	}

	old := node.elem
	alreadyRemoved := node.isRemoved()
	if old.Remove(executedAt) && !alreadyRemoved {
		a.nodeMapByIndex.Splay(node.indexNode)
		a.nodeMapByIndex.UpdateSubtree(node.indexNode)
		a.size--
	}
	a.insertAfter(createdAt, newElem, executedAt)
	return old, nil
}

// PrevCreatedAt returns the createdAt ticket of the node immediately
// preceding createdAt in list order (including tombstones), for building the
// reverse operation of a Remove or MoveAfter.
func (a *RGATreeList) PrevCreatedAt(createdAt *time.Ticket) (*time.Ticket, error) {
	node, ok := a.nodeMapByCreatedAt[createdAt.Key()]
	if !ok {
		return nil, fmt.Errorf("crdt: RGATreeList.PrevCreatedAt: node not found for %s", createdAt.AnnotatedString())
	}
	if node.prev == nil {
		return a.dummyHead.elem.CreatedAt(), nil
	}
	return node.prev.elem.CreatedAt(), nil
}

// Purge physically removes elem's node from the list's internal structures.
func (a *RGATreeList) Purge(elem Element) error {
	node, ok := a.nodeMapByCreatedAt[elem.CreatedAt().Key()]
	if !ok {
		return fmt.Errorf("crdt: RGATreeList.Purge: node not found for %s", elem.CreatedAt().AnnotatedString())
	}
	a.release(node)
	return nil
}

// Elements returns the live elements of this list in document order.
func (a *RGATreeList) Elements() []Element {
	var elements []Element
	node := a.dummyHead.next
	for node != nil {
		if !node.isRemoved() {
			elements = append(elements, node.elem)
		}
		node = node.next
	}
	return elements
}

// AllNodes returns every node including tombstones, for deep copy and GC
// pair enumeration.
func (a *RGATreeList) AllNodes() []Element {
	var elements []Element
	node := a.dummyHead.next
	for node != nil {
		elements = append(elements, node.elem)
		node = node.next
	}
	return elements
}

func (a *RGATreeList) release(node *rgaTreeListNode) {
	if a.last == node {
		a.last = node.prev
	}

	node.prev.next = node.next
	if node.next != nil {
		node.next.prev = node.prev
	}
	node.prev, node.next = nil, nil

	a.nodeMapByIndex.Delete(node.indexNode)
	delete(a.nodeMapByCreatedAt, node.elem.CreatedAt().Key())

	if !node.isRemoved() {
		a.size--
	}
}

func (a *RGATreeList) insertAfter(prevCreatedAt *time.Ticket, value Element, executedAt *time.Ticket) {
	prevNode := a.findNextBeforeExecutedAt(prevCreatedAt, executedAt)
	newNode := newRGATreeListNode(value)

	next := prevNode.next
	prevNode.next = newNode
	newNode.prev = prevNode
	newNode.next = next
	if next != nil {
		next.prev = newNode
	}
	if prevNode == a.last {
		a.last = newNode
	}

	a.nodeMapByIndex.InsertAfter(prevNode.indexNode, newNode.indexNode)
	a.nodeMapByCreatedAt[value.CreatedAt().Key()] = newNode

	a.size++
}

func (a *RGATreeList) findNextBeforeExecutedAt(createdAt *time.Ticket, executedAt *time.Ticket) *rgaTreeListNode {
	node, ok := a.nodeMapByCreatedAt[createdAt.Key()]
	if !ok {
		panic("crdt: RGATreeList.findNextBeforeExecutedAt: node not found for " + createdAt.AnnotatedString())
	}

	for node.next != nil && node.next.positionedAt().After(executedAt) {
		node = node.next
	}
	return node
}

func (a *RGATreeList) marshal() string {
	var sb strings.Builder
	sb.WriteString("[")
	first := true
	node := a.dummyHead.next
	for node != nil {
		if !node.isRemoved() {
			if !first {
				sb.WriteString(",")
			}
			sb.WriteString(node.elem.Marshal())
			first = false
		}
		node = node.next
	}
	sb.WriteString("]")
	return sb.String()
}
