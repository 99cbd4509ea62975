package operations

import (
	"github.com/hackerwins/riftdoc/pkg/document/crdt"
	"github.com/hackerwins/riftdoc/pkg/document/time"
)

// Edit replaces the index range [from, to) of a Text with content, applying
// attributes to the freshly-inserted block.
type Edit struct {
	parentCreatedAt *time.Ticket
	from            int
	to              int
	content         string
	attributes      map[string]string
	executedAt      *time.Ticket
}

// NewEdit creates a new instance of Edit.
func NewEdit(parentCreatedAt *time.Ticket, from, to int, content string, attributes map[string]string, executedAt *time.Ticket) *Edit {
	return &Edit{
		parentCreatedAt: parentCreatedAt,
		from:            from,
		to:              to,
		content:         content,
		attributes:      attributes,
		executedAt:      executedAt,
	}
}

// ParentCreatedAt returns the ticket of the text this operation addresses.
func (o *Edit) ParentCreatedAt() *time.Ticket {
	return o.parentCreatedAt
}

// ExecutedAt returns this operation's own ticket.
func (o *Edit) ExecutedAt() *time.Ticket {
	return o.executedAt
}

// EffectedCreatedAt returns the text's own creation ticket: an edit never
// creates a new top-level element.
func (o *Edit) EffectedCreatedAt() *time.Ticket {
	return o.parentCreatedAt
}

// Rebind returns a copy of this Edit with executedAt in place of its own ticket.
func (o *Edit) Rebind(executedAt *time.Ticket) Operation {
	return NewEdit(o.parentCreatedAt, o.from, o.to, o.content, o.attributes, executedAt)
}

// Execute replaces [from, to) of the addressed text with content.
func (o *Edit) Execute(root *crdt.Root, source Source, vector time.VersionVector) (*ExecutionResult, error) {
	text, err := findParentText(root, o.parentCreatedAt)
	if err != nil {
		return nil, err
	}

	deleted := text.Substring(o.from, o.to)

	from, to := text.CreateRange(o.from, o.to)
	_, gcPairs, diff, _, err := text.Edit(from, to, vector, o.content, o.attributes, o.executedAt)
	if err != nil {
		return nil, err
	}
	registerGCPairs(root, gcPairs)
	root.Acc(crdt.DataSize{Data: diff - len(deleted)})

	// The text layer indexes by byte, not rune (TextValue.Len, splay weight,
	// CreateRange all use len(value)), so the undo range must match.
	insertedLen := len(o.content)
	reverseOps := []Operation{
		NewEdit(o.parentCreatedAt, o.from, o.from+insertedLen, deleted, nil, o.executedAt),
	}

	return &ExecutionResult{
		OpInfos:    []OpInfo{{Path: "", Type: "edit"}},
		ReverseOps: reverseOps,
	}, nil
}
