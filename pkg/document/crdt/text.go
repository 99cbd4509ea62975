package crdt

import (
	"fmt"
	"strings"

	"github.com/hackerwins/riftdoc/pkg/document/time"
	"github.com/hackerwins/riftdoc/pkg/llrb"
	"github.com/hackerwins/riftdoc/pkg/log"
	"github.com/hackerwins/riftdoc/pkg/splay"
)

var initialNodeID = NewRGATreeSplitNodeID(time.InitialTicket, 0)

// RGATreeSplitNodeID identifies a split block: the ticket of the edit that
// created its original, un-split node, plus the offset this block starts at
// within that original node's content.
type RGATreeSplitNodeID struct {
	createdAt *time.Ticket
	offset    int
}

// NewRGATreeSplitNodeID creates a new instance of RGATreeSplitNodeID.
func NewRGATreeSplitNodeID(createdAt *time.Ticket, offset int) *RGATreeSplitNodeID {
	return &RGATreeSplitNodeID{createdAt: createdAt, offset: offset}
}

// CreatedAt returns the ticket of the edit that created the original node.
func (id *RGATreeSplitNodeID) CreatedAt() *time.Ticket {
	return id.createdAt
}

// Offset returns the content offset of this block within the original node.
func (id *RGATreeSplitNodeID) Offset() int {
	return id.offset
}

// Compare implements llrb.Key: createdAt ascending, then offset ascending.
func (id *RGATreeSplitNodeID) Compare(other llrb.Key) int {
	o := other.(*RGATreeSplitNodeID)
	compare := id.createdAt.Compare(o.createdAt)
	if compare != 0 {
		return compare
	}
	if id.offset < o.offset {
		return -1
	}
	if id.offset > o.offset {
		return 1
	}
	return 0
}

// Equal reports whether id and other name the same block.
func (id *RGATreeSplitNodeID) Equal(other *RGATreeSplitNodeID) bool {
	return id.Compare(other) == 0
}

func (id *RGATreeSplitNodeID) hasSameCreatedAt(other *RGATreeSplitNodeID) bool {
	return id.createdAt.Compare(other.createdAt) == 0
}

func (id *RGATreeSplitNodeID) split(offset int) *RGATreeSplitNodeID {
	return NewRGATreeSplitNodeID(id.createdAt, id.offset+offset)
}

// AnnotatedString returns a debug string for this ID.
func (id *RGATreeSplitNodeID) AnnotatedString() string {
	return fmt.Sprintf("%s:%d", id.createdAt.AnnotatedString(), id.offset)
}

// RGATreeSplitNodePos is a position within the split list: the ID of the
// node it was computed against, plus an offset relative to that node's
// current start.
type RGATreeSplitNodePos struct {
	id             *RGATreeSplitNodeID
	relativeOffset int
}

// NewRGATreeSplitNodePos creates a new instance of RGATreeSplitNodePos.
func NewRGATreeSplitNodePos(id *RGATreeSplitNodeID, relativeOffset int) *RGATreeSplitNodePos {
	return &RGATreeSplitNodePos{id: id, relativeOffset: relativeOffset}
}

// ID returns the node ID this position is relative to.
func (p *RGATreeSplitNodePos) ID() *RGATreeSplitNodeID {
	return p.id
}

// RelativeOffset returns the offset of this position relative to ID.
func (p *RGATreeSplitNodePos) RelativeOffset() int {
	return p.relativeOffset
}

func (p *RGATreeSplitNodePos) absoluteID() *RGATreeSplitNodeID {
	return NewRGATreeSplitNodeID(p.id.createdAt, p.id.offset+p.relativeOffset)
}

// AnnotatedString returns a debug string for this position.
func (p *RGATreeSplitNodePos) AnnotatedString() string {
	return fmt.Sprintf("%s:%d", p.id.AnnotatedString(), p.relativeOffset)
}

// TextValue is the payload of an RGATreeSplitNode for rich text: a content
// string plus the RHT of style attributes applied to it.
type TextValue struct {
	value string
	attrs *RHT
}

// NewTextValue creates a value of Text.
func NewTextValue(value string, attrs *RHT) *TextValue {
	if attrs == nil {
		attrs = NewRHT()
	}
	return &TextValue{value: value, attrs: attrs}
}

// Attrs returns the attributes of this value.
func (t *TextValue) Attrs() *RHT {
	return t.attrs
}

// Value returns the content string of this value.
func (t *TextValue) Value() string {
	return t.value
}

// Len returns the length of this value, used by the splay tree as weight.
func (t *TextValue) Len() int {
	return len(t.value)
}

// String returns the content string, satisfying splay.Value.
func (t *TextValue) String() string {
	return t.value
}

// split splits this value at offset, keeping the left half in place and
// returning the right half.
func (t *TextValue) split(offset int) *TextValue {
	value := t.value
	t.value = value[0:offset]
	return NewTextValue(value[offset:], t.attrs.DeepCopy())
}

// DeepCopy returns a copy of this value.
func (t *TextValue) DeepCopy() *TextValue {
	return &TextValue{value: t.value, attrs: t.attrs.DeepCopy()}
}

func (t *TextValue) marshal() string {
	if len(t.attrs.Elements()) == 0 {
		return fmt.Sprintf(`{"val":"%s"}`, EscapeString(t.value))
	}
	return fmt.Sprintf(`{"attrs":%s,"val":"%s"}`, t.attrs.Marshal(), EscapeString(t.value))
}

// RGATreeSplitNode is one block of the split list: a value, a removal
// ticket, document-order links (prev/next) and insertion-time links
// (insPrev/insNext) used to locate a split ancestor after its siblings are
// garbage collected.
type RGATreeSplitNode struct {
	id        *RGATreeSplitNodeID
	indexNode *splay.Node
	value     *TextValue
	removedAt *time.Ticket

	prev    *RGATreeSplitNode
	next    *RGATreeSplitNode
	insPrev *RGATreeSplitNode
	insNext *RGATreeSplitNode
}

func newRGATreeSplitNode(id *RGATreeSplitNodeID, value *TextValue) *RGATreeSplitNode {
	node := &RGATreeSplitNode{id: id, value: value}
	node.indexNode = splay.NewNode(node)
	return node
}

// ID returns the ID of this node.
func (n *RGATreeSplitNode) ID() *RGATreeSplitNodeID {
	return n.id
}

// InsPrevID returns the ID of this node's insertion-time predecessor, if
// any.
func (n *RGATreeSplitNode) InsPrevID() *RGATreeSplitNodeID {
	if n.insPrev == nil {
		return nil
	}
	return n.insPrev.id
}

// Value returns the payload of this node.
func (n *RGATreeSplitNode) Value() *TextValue {
	return n.value
}

// RemovedAt returns the tombstone ticket of this node, or nil if live.
func (n *RGATreeSplitNode) RemovedAt() *time.Ticket {
	return n.removedAt
}

// IDString satisfies GCChild.
func (n *RGATreeSplitNode) IDString() string {
	return n.id.AnnotatedString()
}

func (n *RGATreeSplitNode) contentLen() int {
	return n.value.Len()
}

// Len reports the current visible length of this node: 0 once removed.
func (n *RGATreeSplitNode) Len() int {
	if n.removedAt != nil {
		return 0
	}
	return n.contentLen()
}

// String returns the content of this node, satisfying splay.Value.
func (n *RGATreeSplitNode) String() string {
	return n.value.String()
}

// DeepCopy returns a copy of this node without structural links.
func (n *RGATreeSplitNode) DeepCopy() *RGATreeSplitNode {
	node := &RGATreeSplitNode{
		id:        n.id,
		value:     n.value.DeepCopy(),
		removedAt: n.removedAt,
	}
	node.indexNode = splay.NewNode(node)
	return node
}

func (n *RGATreeSplitNode) createdAt() *time.Ticket {
	return n.id.createdAt
}

func (n *RGATreeSplitNode) setInsPrev(node *RGATreeSplitNode) {
	n.insPrev = node
	node.insNext = n
}

func (n *RGATreeSplitNode) setPrev(node *RGATreeSplitNode) {
	n.prev = node
	node.next = n
}

// split divides this node into two at offset, returning the new right half.
// The right half inherits removedAt so a tombstoned node stays tombstoned
// across a later split.
func (n *RGATreeSplitNode) split(offset int) *RGATreeSplitNode {
	right := newRGATreeSplitNode(n.id.split(offset), n.value.split(offset))
	right.removedAt = n.removedAt
	return right
}

// canDelete reports whether an edit at editedAt, by an actor who has seen up
// to clientLamportAtChange, is allowed to delete this node (I4 + the
// edit() filter rule of spec.md §4.3 step 3).
func (n *RGATreeSplitNode) canDelete(editedAt *time.Ticket, clientLamportAtChange uint64) bool {
	return n.createdAt().Lamport() <= clientLamportAtChange &&
		(n.removedAt == nil || editedAt.After(n.removedAt))
}

// canStyle is the styling counterpart of canDelete.
func (n *RGATreeSplitNode) canStyle(editedAt *time.Ticket, clientLamportAtChange uint64) bool {
	nodeExisted := n.createdAt().Lamport() <= clientLamportAtChange
	return nodeExisted && (n.removedAt == nil || editedAt.After(n.removedAt))
}

func (n *RGATreeSplitNode) annotatedString() string {
	return fmt.Sprintf("%s %s", n.id.AnnotatedString(), n.value.String())
}

// ValueChange describes a single user-visible delete or insert produced by
// RGATreeSplit.edit, using indexes computed before the insertion step.
type ValueChange struct {
	From    int
	To      int
	Actor   *time.ActorID
	Content string
}

// RGATreeSplit is a doubly linked block list with two auxiliary indexes: a
// splay tree keyed by subtree weight for O(log n) index<->node lookups, and
// an LLRB tree keyed by RGATreeSplitNodeID for floor-entry position
// resolution.
type RGATreeSplit struct {
	initialHead *RGATreeSplitNode
	treeByIndex *splay.Tree
	treeByID    *llrb.Tree
}

// NewRGATreeSplit creates a new RGATreeSplit seeded with an empty head node.
func NewRGATreeSplit() *RGATreeSplit {
	head := newRGATreeSplitNode(initialNodeID, NewTextValue("", nil))
	treeByIndex := splay.NewTree()
	treeByID := llrb.NewTree()

	treeByIndex.Insert(head.indexNode)
	treeByID.Put(head.id, head)

	return &RGATreeSplit{initialHead: head, treeByIndex: treeByIndex, treeByID: treeByID}
}

// InitialHead returns the sentinel head node of this split list.
func (s *RGATreeSplit) InitialHead() *RGATreeSplitNode {
	return s.initialHead
}

// Len returns the total visible length of this split list.
func (s *RGATreeSplit) Len() int {
	return s.treeByIndex.Len()
}

// IndexToPos returns the position at the given visible index (§4.3
// indexToPos).
func (s *RGATreeSplit) IndexToPos(index int) *RGATreeSplitNodePos {
	splayNode, offset := s.treeByIndex.Find(index)
	node := splayNode.Value().(*RGATreeSplitNode)
	return NewRGATreeSplitNodePos(node.id, offset)
}

// PosToIndex resolves pos back to a visible index (§4.3 posToIndex).
// preferLeft controls the tie-break at a split boundary: when pos names an
// exact node-start offset, walk insPrev to find the closer live ancestor.
func (s *RGATreeSplit) PosToIndex(pos *RGATreeSplitNodePos, preferLeft bool) (int, error) {
	absoluteID := pos.absoluteID()
	var node *RGATreeSplitNode
	if preferLeft {
		node = s.findFloorNodePreferToLeft(absoluteID)
	} else {
		n, err := s.findFloorNode(absoluteID)
		if err != nil {
			return 0, err
		}
		node = n
	}
	if node == nil {
		return 0, fmt.Errorf("crdt: PosToIndex: node not found for %s", absoluteID.AnnotatedString())
	}

	index := s.treeByIndex.IndexOf(node.indexNode)
	if node.removedAt != nil {
		return index, nil
	}
	return index + (absoluteID.offset - node.id.offset), nil
}

// FindNode returns the floor node for id when it shares id's createdAt (its
// offset may be lower than id's), or nil.
func (s *RGATreeSplit) FindNode(id *RGATreeSplitNodeID) *RGATreeSplitNode {
	if id == nil {
		return nil
	}
	node, _ := s.findFloorNode(id)
	return node
}

func (s *RGATreeSplit) findFloorNode(id *RGATreeSplitNodeID) (*RGATreeSplitNode, error) {
	key, value := s.treeByID.Floor(id)
	if key == nil {
		return nil, nil
	}

	foundID := key.(*RGATreeSplitNodeID)
	foundValue := value.(*RGATreeSplitNode)

	if !foundID.Equal(id) && !foundID.hasSameCreatedAt(id) {
		return nil, nil
	}
	return foundValue, nil
}

func (s *RGATreeSplit) findFloorNodePreferToLeft(id *RGATreeSplitNodeID) *RGATreeSplitNode {
	node, err := s.findFloorNode(id)
	if err != nil || node == nil {
		log.Logger.Error(s.AnnotatedString())
		panic("crdt: the node of the given id should be found")
	}

	if id.offset > 0 && node.id.offset == id.offset {
		if node.insPrev == nil {
			log.Logger.Error(s.AnnotatedString())
			panic("crdt: insPrev should be present")
		}
		node = node.insPrev
	}

	return node
}

// findNodeWithSplit implements §4.3 findNodeWithSplit: split the floor node
// at pos's exact offset, then walk forward past any concurrent inserts that
// must sort between the target and editedAt (RGA tie-break).
func (s *RGATreeSplit) findNodeWithSplit(
	pos *RGATreeSplitNodePos,
	editedAt *time.Ticket,
) (*RGATreeSplitNode, *RGATreeSplitNode, error) {
	absoluteID := pos.absoluteID()
	node := s.findFloorNodePreferToLeft(absoluteID)

	relativeOffset := absoluteID.offset - node.id.offset
	if err := s.splitNode(node, relativeOffset); err != nil {
		return nil, nil, err
	}

	for node.next != nil && node.next.createdAt().After(editedAt) {
		node = node.next
	}

	return node, node.next, nil
}

func (s *RGATreeSplit) splitNode(node *RGATreeSplitNode, offset int) error {
	if offset > node.contentLen() {
		return fmt.Errorf("crdt: splitNode: offset %d exceeds length %d", offset, node.contentLen())
	}
	if offset == 0 || offset == node.contentLen() {
		return nil
	}

	split := node.split(offset)
	s.treeByIndex.UpdateSubtree(node.indexNode)
	s.insertAfterInternal(node, split)

	insNext := node.insNext
	if insNext != nil {
		insNext.setInsPrev(split)
	}
	split.setInsPrev(node)

	return nil
}

func (s *RGATreeSplit) insertAfterInternal(prev *RGATreeSplitNode, node *RGATreeSplitNode) *RGATreeSplitNode {
	next := prev.next
	node.setPrev(prev)
	if next != nil {
		next.setPrev(node)
	}

	s.treeByID.Put(node.id, node)
	s.treeByIndex.InsertAfter(prev.indexNode, node.indexNode)

	return node
}

// InsertAfter inserts a node with value immediately after prev, and returns
// it.
func (s *RGATreeSplit) InsertAfter(prev *RGATreeSplitNode, value *RGATreeSplitNode) *RGATreeSplitNode {
	return s.insertAfterInternal(prev, value)
}

func (s *RGATreeSplit) findBetween(from, to *RGATreeSplitNode) []*RGATreeSplitNode {
	var nodes []*RGATreeSplitNode
	current := from
	for current != nil && current != to {
		nodes = append(nodes, current)
		current = current.next
	}
	return nodes
}

// Edit applies the split-list edit algorithm of spec.md §4.3: splits at the
// range boundaries, deletes the causally-visible nodes strictly between
// them, optionally inserts new content, and returns the caret position, the
// GC pairs produced, the bytes the inserted node adds (content plus node
// metadata; deleted content is not subtracted), and the user-visible changes.
func (s *RGATreeSplit) Edit(
	from, to *RGATreeSplitNodePos,
	vector time.VersionVector,
	content string,
	attributes map[string]string,
	editedAt *time.Ticket,
) (*RGATreeSplitNodePos, []GCPair, int, []ValueChange, error) {
	fromLeft, fromRight, err := s.findNodeWithSplit(from, editedAt)
	if err != nil {
		return nil, nil, 0, nil, err
	}
	toLeft, toRight, err := s.findNodeWithSplit(to, editedAt)
	if err != nil {
		return nil, nil, 0, nil, err
	}
	_ = toLeft

	candidates := s.findBetween(fromRight, toRight)

	var changes []ValueChange
	var gcPairs []GCPair
	var keptBoundary []*RGATreeSplitNode
	diff := 0

	var run []*RGATreeSplitNode
	flushRun := func() {
		run = nil
	}

	for _, candidate := range candidates {
		var clientLamportAtChange uint64
		if vector != nil {
			clientLamportAtChange = vector.Get(candidate.createdAt().ActorID())
		} else {
			clientLamportAtChange = time.MaxLamport
		}

		if candidate.canDelete(editedAt, clientLamportAtChange) {
			fromIdx := s.treeByIndex.IndexOf(candidate.indexNode)
			wasRemoved := candidate.removedAt != nil
			deletedLen := candidate.contentLen()
			candidate.removedAt = editedAt
			s.treeByIndex.Splay(candidate.indexNode)
			s.treeByIndex.UpdateSubtree(candidate.indexNode)
			if !wasRemoved {
				if len(run) == 0 {
					changes = append(changes, ValueChange{From: fromIdx, To: fromIdx + deletedLen, Actor: editedAt.ActorID()})
				} else {
					changes[len(changes)-1].To += deletedLen
				}
				run = append(run, candidate)
			}
			gcPairs = append(gcPairs, GCPair{Parent: s, Child: candidate})
		} else {
			flushRun()
			keptBoundary = append(keptBoundary, candidate)
		}
	}
	_ = keptBoundary

	var caretID *RGATreeSplitNodeID
	if toRight == nil {
		caretID = toLeft.id
	} else {
		caretID = toRight.id
	}
	caretPos := NewRGATreeSplitNodePos(caretID, 0)

	if content != "" || len(attributes) > 0 {
		val := NewTextValue(content, NewRHT())
		for key, value := range attributes {
			val.attrs.Set(key, value, editedAt)
		}
		inserted := s.insertAfterInternal(fromLeft, newRGATreeSplitNode(NewRGATreeSplitNodeID(editedAt, 0), val))
		diff += inserted.contentLen() + metaNodeSize

		insertionIndex := s.treeByIndex.IndexOf(inserted.indexNode)
		if len(changes) > 0 && changes[len(changes)-1].To == insertionIndex {
			changes[len(changes)-1].Content = content
		} else {
			changes = append(changes, ValueChange{From: insertionIndex, To: insertionIndex, Content: content, Actor: editedAt.ActorID()})
		}

		caretPos = NewRGATreeSplitNodePos(inserted.id, inserted.contentLen())
	}

	return caretPos, gcPairs, diff, changes, nil
}

// SetStyle applies attributes to every causally-visible node in [from, to),
// per spec.md §4.3 setStyle.
func (s *RGATreeSplit) SetStyle(
	from, to *RGATreeSplitNodePos,
	attributes map[string]string,
	vector time.VersionVector,
	editedAt *time.Ticket,
) ([]GCPair, []ValueChange, error) {
	_, fromRight, err := s.findNodeWithSplit(from, editedAt)
	if err != nil {
		return nil, nil, err
	}
	_, toRight, err := s.findNodeWithSplit(to, editedAt)
	if err != nil {
		return nil, nil, err
	}

	nodes := s.findBetween(fromRight, toRight)

	var gcPairs []GCPair
	var changes []ValueChange
	for _, node := range nodes {
		var clientLamportAtChange uint64
		if vector != nil {
			clientLamportAtChange = vector.Get(node.createdAt().ActorID())
		} else {
			clientLamportAtChange = time.MaxLamport
		}

		if !node.canStyle(editedAt, clientLamportAtChange) {
			continue
		}

		for key, value := range attributes {
			if pair := node.value.attrs.Set(key, value, editedAt); pair != nil {
				gcPairs = append(gcPairs, *pair)
			}
		}

		fromIdx := s.treeByIndex.IndexOf(node.indexNode)
		changes = append(changes, ValueChange{From: fromIdx, To: fromIdx + node.Len(), Actor: editedAt.ActorID()})
	}

	return gcPairs, changes, nil
}

// Substring returns the live plain-text content of the index range
// [fromIdx, toIdx), read without mutating the split list, used to capture
// what an Edit is about to delete so undo can restore it.
func (s *RGATreeSplit) Substring(fromIdx, toIdx int) string {
	var sb strings.Builder
	index := 0
	node := s.initialHead.next
	for node != nil {
		if node.removedAt == nil {
			start := index
			end := index + node.contentLen()
			if end > fromIdx && start < toIdx {
				loFromStart := 0
				if fromIdx > start {
					loFromStart = fromIdx - start
				}
				hiFromStart := node.contentLen()
				if toIdx < end {
					hiFromStart = toIdx - start
				}
				sb.WriteString(node.value.value[loFromStart:hiFromStart])
			}
			index = end
		}
		node = node.next
	}
	return sb.String()
}

// Purge removes child from the splay and LLRB indexes and unlinks it from
// the document-order and insertion-order chains, satisfying GCParent.
func (s *RGATreeSplit) Purge(child GCChild) error {
	node, ok := child.(*RGATreeSplitNode)
	if !ok {
		return fmt.Errorf("crdt: RGATreeSplit.Purge: unexpected child type %T", child)
	}

	s.treeByIndex.Delete(node.indexNode)
	s.treeByID.Delete(node.id)

	if node.prev != nil {
		node.prev.next = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	}
	if node.insPrev != nil {
		node.insPrev.insNext = node.insNext
	}
	if node.insNext != nil {
		node.insNext.insPrev = node.insPrev
	}
	node.prev, node.next, node.insPrev, node.insNext = nil, nil, nil, nil

	return nil
}

func (s *RGATreeSplit) nodes() []*RGATreeSplitNode {
	var nodes []*RGATreeSplitNode
	node := s.initialHead.next
	for node != nil {
		nodes = append(nodes, node)
		node = node.next
	}
	return nodes
}

func (s *RGATreeSplit) marshal() string {
	var values []string
	node := s.initialHead.next
	for node != nil {
		if node.removedAt == nil {
			values = append(values, node.value.marshal())
		}
		node = node.next
	}
	return strings.Join(values, ",")
}

func (s *RGATreeSplit) plainString() string {
	var sb strings.Builder
	node := s.initialHead.next
	for node != nil {
		if node.removedAt == nil {
			sb.WriteString(node.value.value)
		}
		node = node.next
	}
	return sb.String()
}

// AnnotatedString returns a debug string for the split list.
func (s *RGATreeSplit) AnnotatedString() string {
	var result []string
	node := s.initialHead
	for node != nil {
		if node.removedAt != nil {
			result = append(result, fmt.Sprintf("{%s}", node.annotatedString()))
		} else {
			result = append(result, fmt.Sprintf("[%s]", node.annotatedString()))
		}
		node = node.next
	}
	return strings.Join(result, "")
}

// Text is the rich-text CRDT: an RGATreeSplit of TextValue blocks.
type Text struct {
	baseElement
	rgaTreeSplit *RGATreeSplit
}

// NewText creates a new instance of Text.
func NewText(elements *RGATreeSplit, createdAt *time.Ticket) *Text {
	return &Text{
		baseElement:  baseElement{createdAt: createdAt},
		rgaTreeSplit: elements,
	}
}

// CreateRange returns the pair of positions bounding [from, to).
func (t *Text) CreateRange(from, to int) (*RGATreeSplitNodePos, *RGATreeSplitNodePos) {
	fromPos := t.rgaTreeSplit.IndexToPos(from)
	if from == to {
		return fromPos, fromPos
	}
	return fromPos, t.rgaTreeSplit.IndexToPos(to)
}

// Edit edits the given range with content and attributes, returning the
// caret position and the GC pairs produced by deletions/replacements.
func (t *Text) Edit(
	from, to *RGATreeSplitNodePos,
	vector time.VersionVector,
	content string,
	attributes map[string]string,
	executedAt *time.Ticket,
) (*RGATreeSplitNodePos, []GCPair, int, []ValueChange, error) {
	return t.rgaTreeSplit.Edit(from, to, vector, content, attributes, executedAt)
}

// Style applies attributes to [from, to).
func (t *Text) Style(
	from, to *RGATreeSplitNodePos,
	attributes map[string]string,
	vector time.VersionVector,
	executedAt *time.Ticket,
) ([]GCPair, []ValueChange, error) {
	return t.rgaTreeSplit.SetStyle(from, to, attributes, vector, executedAt)
}

// Len returns the current visible length of this text.
func (t *Text) Len() int {
	return t.rgaTreeSplit.Len()
}

// Substring returns the live plain-text content of [fromIdx, toIdx).
func (t *Text) Substring(fromIdx, toIdx int) string {
	return t.rgaTreeSplit.Substring(fromIdx, toIdx)
}

// String returns the plain-text content of this Text.
func (t *Text) String() string {
	return t.rgaTreeSplit.plainString()
}

// Nodes returns the internal nodes of this Text.
func (t *Text) Nodes() []*RGATreeSplitNode {
	return t.rgaTreeSplit.nodes()
}

// GCPairs returns a pair for every tombstoned block node so the root can
// register them for later collection, e.g. after DeepCopy rebuilds the split
// list. Replaced attribute entries are not included.
func (t *Text) GCPairs() []GCPair {
	var pairs []GCPair
	for _, node := range t.Nodes() {
		if node.removedAt != nil {
			pairs = append(pairs, GCPair{Parent: t.rgaTreeSplit, Child: node})
		}
	}
	return pairs
}

// DeepCopy returns a copy of this Text with a freshly rebuilt split list,
// preserving insPrev linkage across the copy.
func (t *Text) DeepCopy() (Element, error) {
	rgaTreeSplit := NewRGATreeSplit()

	current := rgaTreeSplit.InitialHead()
	for _, node := range t.Nodes() {
		current = rgaTreeSplit.InsertAfter(current, node.DeepCopy())
		if insPrevID := node.InsPrevID(); insPrevID != nil {
			insPrevNode := rgaTreeSplit.FindNode(insPrevID)
			if insPrevNode == nil {
				log.Logger.Warn("crdt: insPrevNode should be present")
			} else {
				current.setInsPrev(insPrevNode)
			}
		}
	}

	return &Text{
		baseElement: baseElement{
			createdAt: t.createdAt,
			movedAt:   t.movedAt,
			removedAt: t.removedAt,
		},
		rgaTreeSplit: rgaTreeSplit,
	}, nil
}

// DataSize sums the byte footprint of every block node.
func (t *Text) DataSize() DataSize {
	size := DataSize{}
	for _, node := range t.Nodes() {
		size.Meta += metaNodeSize
		size.Data += len(node.value.value)
	}
	return size
}

// Marshal returns the JSON encoding of this Text.
func (t *Text) Marshal() string {
	return fmt.Sprintf("[%s]", t.rgaTreeSplit.marshal())
}

// MarshalSortedJSON is the same as Marshal: text blocks are already in a
// deterministic document order.
func (t *Text) MarshalSortedJSON() string {
	return t.Marshal()
}

// AnnotatedString returns a debug string for this Text.
func (t *Text) AnnotatedString() string {
	return t.rgaTreeSplit.AnnotatedString()
}
