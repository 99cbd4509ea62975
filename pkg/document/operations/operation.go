// Package operations implements the operation taxonomy of spec.md §4.5: Set,
// Add, Move, Remove, Increase, Edit, Style, ArraySet, each carrying a
// parentCreatedAt and its own executedAt ticket, and producing both
// user-visible OpInfos and a reverse-operation trail for undo.
package operations

import (
	"github.com/hackerwins/riftdoc/pkg/document/crdt"
	"github.com/hackerwins/riftdoc/pkg/document/time"
)

// Source identifies whether a Change is being applied because of a local
// mutator, a remote change pack, or an undo/redo replay.
type Source int

// Sources an Operation can be executed under.
const (
	SourceLocal Source = iota
	SourceRemote
	SourceUndoRedo
)

// OpInfo is a user-visible description of one applied operation. Path is
// the object key for Set and for Remove from an object, and empty for every
// other operation; it is not a full JSON path from the root.
type OpInfo struct {
	Path string
	Type string
}

// ExecutionResult is returned by Operation.Execute: the OpInfos produced,
// and the reverse operations that would undo this one.
type ExecutionResult struct {
	OpInfos    []OpInfo
	ReverseOps []Operation
}

// Operation is implemented by every concrete operation kind.
type Operation interface {
	// Execute looks up its parent by ParentCreatedAt, mutates root, and
	// returns the resulting OpInfos/reverse ops. vector is nil for local
	// edits (meaning "the editor has seen everything"); it carries the
	// version vector of the originating actor for remote changes.
	Execute(root *crdt.Root, source Source, vector time.VersionVector) (*ExecutionResult, error)

	// ParentCreatedAt returns the ticket of the element this operation
	// addresses.
	ParentCreatedAt() *time.Ticket

	// ExecutedAt returns this operation's own ticket.
	ExecutedAt() *time.Ticket

	// EffectedCreatedAt returns the creation ticket of the element this
	// operation affects.
	EffectedCreatedAt() *time.Ticket

	// Rebind returns a copy of this operation with executedAt replacing
	// its own ticket. Undo/redo calls this to give a replayed reverse
	// operation a fresh ticket from the replaying ChangeContext, per
	// spec.md §4.7.
	Rebind(executedAt *time.Ticket) Operation
}

func findParentObject(root *crdt.Root, parentCreatedAt *time.Ticket) (*crdt.Object, error) {
	parent := root.FindByCreatedAt(parentCreatedAt)
	if parent == nil {
		return nil, invalidArgument("parent element not found for %s", parentCreatedAt.AnnotatedString())
	}
	obj, ok := parent.(*crdt.Object)
	if !ok {
		return nil, invalidArgument("parent element %s is not an object", parentCreatedAt.AnnotatedString())
	}
	return obj, nil
}

func findParentArray(root *crdt.Root, parentCreatedAt *time.Ticket) (*crdt.Array, error) {
	parent := root.FindByCreatedAt(parentCreatedAt)
	if parent == nil {
		return nil, invalidArgument("parent element not found for %s", parentCreatedAt.AnnotatedString())
	}
	arr, ok := parent.(*crdt.Array)
	if !ok {
		return nil, invalidArgument("parent element %s is not an array", parentCreatedAt.AnnotatedString())
	}
	return arr, nil
}

func findParentContainer(root *crdt.Root, parentCreatedAt *time.Ticket) (crdt.Container, error) {
	parent := root.FindByCreatedAt(parentCreatedAt)
	if parent == nil {
		return nil, invalidArgument("parent element not found for %s", parentCreatedAt.AnnotatedString())
	}
	container, ok := parent.(crdt.Container)
	if !ok {
		return nil, invalidArgument("parent element %s is not a container", parentCreatedAt.AnnotatedString())
	}
	return container, nil
}

func findParentText(root *crdt.Root, parentCreatedAt *time.Ticket) (*crdt.Text, error) {
	parent := root.FindByCreatedAt(parentCreatedAt)
	if parent == nil {
		return nil, invalidArgument("parent element not found for %s", parentCreatedAt.AnnotatedString())
	}
	text, ok := parent.(*crdt.Text)
	if !ok {
		return nil, invalidArgument("parent element %s is not a text", parentCreatedAt.AnnotatedString())
	}
	return text, nil
}

func findParentCounter(root *crdt.Root, parentCreatedAt *time.Ticket) (*crdt.Counter, error) {
	parent := root.FindByCreatedAt(parentCreatedAt)
	if parent == nil {
		return nil, invalidArgument("parent element not found for %s", parentCreatedAt.AnnotatedString())
	}
	counter, ok := parent.(*crdt.Counter)
	if !ok {
		return nil, invalidArgument("parent element %s is not a counter", parentCreatedAt.AnnotatedString())
	}
	return counter, nil
}

func registerGCPairs(root *crdt.Root, pairs []crdt.GCPair) {
	for _, pair := range pairs {
		root.RegisterGCPair(pair)
	}
}
